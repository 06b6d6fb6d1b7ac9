package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/swagcheck/swagcheck/cmd/swagcheck/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getVersionInfo prefers values set through ldflags and falls back to the build info.
func getVersionInfo() (string, string, string) {
	if version != "dev" || commit != "none" || date != "unknown" {
		return version, commit, date
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	moduleVersion := version
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		moduleVersion = buildInfo.Main.Version
	}

	vcsCommit, vcsTime := commit, date
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsCommit = setting.Value
			if len(vcsCommit) > 7 {
				vcsCommit = vcsCommit[:7]
			}
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	return moduleVersion, vcsCommit, vcsTime
}

func versionTemplate(commit, date string) string {
	var b strings.Builder
	b.WriteString(`{{printf "%s" .Version}}`)
	if commit != "none" && commit != "" {
		b.WriteString("\nBuild: " + commit)
	}
	if date != "unknown" && date != "" {
		b.WriteString("\nBuilt: " + date)
	}
	b.WriteString("\n")
	return b.String()
}

func main() {
	currentVersion, currentCommit, currentDate := getVersionInfo()

	rootCmd := commands.NewRootCommand(currentVersion)
	rootCmd.SetVersionTemplate(versionTemplate(currentCommit, currentDate))

	if err := rootCmd.Execute(); err != nil {
		// findings were already printed
		if !errors.Is(err, commands.ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
