// Package config loads the command line configuration from defaults, an optional YAML file
// and flags, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/swagcheck/swagcheck/internal/logging"
	"github.com/swagcheck/swagcheck/validator"
)

// DefaultFile is read when present and no --config flag is given.
const DefaultFile = ".swagcheck.yaml"

type Config struct {
	Log        LogConfig      `koanf:"log"`
	Validation ValidateConfig `koanf:"validate"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ValidateConfig struct {
	// Strict makes warnings fail validation.
	Strict bool `koanf:"strict"`
	// Concurrency is the number of files validated at once.
	Concurrency int      `koanf:"concurrency"`
	Checks      []string `koanf:"checks"`
	// BaseDir is prepended to relative file arguments.
	BaseDir string `koanf:"base-dir"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() map[string]any {
	checks := make([]string, 0, len(validator.AllChecks()))
	for _, c := range validator.AllChecks() {
		checks = append(checks, string(c))
	}

	return map[string]any{
		"log.level":            "warn",
		"log.format":           logging.FormatText,
		"validate.strict":      false,
		"validate.concurrency": runtime.NumCPU(),
		"validate.checks":      checks,
		"validate.base-dir":    "",
	}
}

// BindGlobalFlags binds the flags every command accepts.
func BindGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: "+DefaultFile+" when present)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")
}

// BindValidateFlags binds the flags of the validate command.
func BindValidateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.Bool("strict", false, "Fail on warnings")
	flags.IntP("concurrency", "j", 0, "Number of files validated concurrently")
	flags.StringSlice("checks", nil, "Checks to run (schema, model, duplicates, references)")
	flags.String("base-dir", "", "Directory relative file arguments are resolved against")
}

// flagKeys maps flag names to configuration keys.
var flagKeys = []struct {
	flag string
	key  string
}{
	{flag: "log-level", key: "log.level"},
	{flag: "log-format", key: "log.format"},
	{flag: "strict", key: "validate.strict"},
	{flag: "concurrency", key: "validate.concurrency"},
	{flag: "checks", key: "validate.checks"},
	{flag: "base-dir", key: "validate.base-dir"},
}

// Load builds the configuration for cmd. Only flags set on the command line override the file.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd.Flags())
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(flags *pflag.FlagSet) map[string]any {
	m := make(map[string]any)

	for _, fk := range flagKeys {
		f := flags.Lookup(fk.flag)
		if f == nil || !f.Changed {
			continue
		}

		switch f.Value.Type() {
		case "bool":
			v, _ := flags.GetBool(fk.flag)
			m[fk.key] = v
		case "int":
			v, _ := flags.GetInt(fk.flag)
			m[fk.key] = v
		case "stringSlice":
			v, _ := flags.GetStringSlice(fk.flag)
			m[fk.key] = v
		default:
			m[fk.key] = f.Value.String()
		}
	}

	return m
}

func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}

	validFormats := map[string]bool{logging.FormatText: true, logging.FormatJSON: true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Log.Format)
	}

	if c.Validation.Concurrency <= 0 {
		return fmt.Errorf("invalid concurrency: %d (must be positive)", c.Validation.Concurrency)
	}

	if len(c.Validation.Checks) == 0 {
		return fmt.Errorf("no checks enabled")
	}
	for _, check := range c.Validation.Checks {
		if !slices.Contains(validator.AllChecks(), validator.Check(check)) {
			return fmt.Errorf("invalid check: %s (valid: schema, model, duplicates, references)", check)
		}
	}

	return nil
}

// EnabledChecks returns the configured checks.
func (c *Config) EnabledChecks() []validator.Check {
	checks := make([]validator.Check, 0, len(c.Validation.Checks))
	for _, check := range c.Validation.Checks {
		checks = append(checks, validator.Check(check))
	}
	return checks
}
