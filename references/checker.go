package references

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/swagcheck/swagcheck/document"
	"github.com/swagcheck/swagcheck/internal/logging"
	"github.com/swagcheck/swagcheck/jsonpointer"
	"github.com/swagcheck/swagcheck/system"
	"github.com/swagcheck/swagcheck/validation"
	"github.com/swagcheck/swagcheck/yml"
	"gopkg.in/yaml.v3"
)

const refKey = "$ref"

// Checker reports $ref entries that are malformed or point nowhere.
type Checker struct {
	fs     system.VirtualFS
	logger logging.Logger
}

// Option configures a Checker.
type Option func(*Checker)

func WithLogger(l logging.Logger) Option {
	return func(c *Checker) {
		c.logger = logging.OrNop(l)
	}
}

// NewChecker returns a Checker that reads referenced files through fsys.
// A nil fsys reads from the host file system.
func NewChecker(fsys system.VirtualFS, opts ...Option) *Checker {
	if fsys == nil {
		fsys = &system.FileSystem{}
	}
	c := &Checker{
		fs:     fsys,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// check holds the state of one Check call.
type check struct {
	*Checker
	baseURI string
	root    *yaml.Node
	// files caches parsed external documents by path; failed loads are stored as nil.
	files       map[string]*yaml.Node
	diagnostics []validation.Diagnostic
}

// Check inspects every $ref entry of doc. baseURI is the location doc was loaded from and
// is used to find relatively referenced files; when empty, file references are not checked.
func (c *Checker) Check(ctx context.Context, baseURI string, doc *document.Document) []validation.Diagnostic {
	root := doc.Root()
	if root == nil {
		return nil
	}

	chk := &check{
		Checker: c,
		baseURI: baseURI,
		root:    root,
		files:   map[string]*yaml.Node{},
	}

	err := yml.Walk(ctx, root, func(ctx context.Context, v yml.Visit) error {
		if v.Key == nil || v.Key.Value != refKey {
			return nil
		}
		chk.checkEntry(v.Key, v.Node)
		return nil
	})
	if err != nil {
		c.logger.Warn("reference check interrupted", "error", err)
	}

	return chk.diagnostics
}

func (c *check) checkEntry(key, value *yaml.Node) {
	line := key.Line

	raw, ok := yml.StringValue(value)
	if !ok {
		c.diagnostics = append(c.diagnostics, validation.NewError(line, fmt.Sprintf(validation.MessageInvalidReference, yml.ResolveAlias(value).Value)))
		return
	}

	ref := Reference(raw)
	if err := ref.Validate(); err != nil {
		c.logger.Debug("malformed reference", "ref", raw, "line", line, "error", err)
		c.diagnostics = append(c.diagnostics, validation.NewError(line, fmt.Sprintf(validation.MessageInvalidReference, raw)))
		return
	}

	if !c.resolves(ref) {
		c.diagnostics = append(c.diagnostics, validation.NewWarning(line, fmt.Sprintf(validation.MessageUnresolvedReference, raw)))
	}
}

// resolves reports whether ref can be followed. References that cannot be checked count as resolving.
func (c *check) resolves(ref Reference) bool {
	if ref.IsLocal() {
		_, err := jsonpointer.GetYAMLNode(c.root, ref.GetJSONPointer())
		return err == nil
	}

	if ref.IsRemote() {
		c.logger.Debug("skipping remote reference", "ref", ref)
		return true
	}

	target, ok := c.targetPath(ref)
	if !ok {
		return true
	}

	root := c.load(target)
	if root == nil {
		return false
	}

	_, err := jsonpointer.GetYAMLNode(root, ref.GetJSONPointer())
	if err != nil {
		c.logger.Debug("pointer not found in referenced file", "ref", ref, "file", target, "error", err)
		return false
	}
	return true
}

// targetPath locates the file ref names relative to the base location.
func (c *check) targetPath(ref Reference) (string, bool) {
	u, err := url.Parse(ref.GetURI())
	if err != nil {
		return "", false
	}
	refPath := u.Path

	if isAbs(refPath) {
		return refPath, true
	}

	if c.baseURI == "" {
		c.logger.Debug("skipping file reference without a base location", "ref", ref)
		return "", false
	}

	base, err := url.Parse(c.baseURI)
	if err != nil || (base.Scheme != "" && base.Scheme != "file" && len(base.Scheme) > 1) {
		c.logger.Debug("skipping file reference with a remote base", "ref", ref, "base", c.baseURI)
		return "", false
	}

	basePath := c.baseURI
	if base.Scheme == "file" {
		basePath = base.Path
		if basePath == "" {
			basePath = base.Opaque
		}
	}

	return path.Join(path.Dir(filepath.ToSlash(basePath)), refPath), true
}

func (c *check) load(name string) *yaml.Node {
	if root, ok := c.files[name]; ok {
		return root
	}

	var root *yaml.Node
	data, err := system.ReadFile(c.fs, name)
	if err != nil {
		c.logger.Debug("failed to read referenced file", "file", name, "error", err)
	} else {
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			c.logger.Debug("failed to parse referenced file", "file", name, "error", err)
		} else {
			root = &node
		}
	}

	c.files[name] = root
	return root
}

func isAbs(p string) bool {
	return path.IsAbs(p) || filepath.IsAbs(p)
}
