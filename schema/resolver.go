package schema

import (
	"strconv"

	"github.com/swagcheck/swagcheck/jsonpointer"
)

// Pointerer is anything addressed by a structural path, such as a model node.
type Pointerer interface {
	Pointer() jsonpointer.JSONPointer
}

// Resolver answers which schema type applies to a location of a document described by the
// catalog's primary grammar.
type Resolver struct {
	catalog *Catalog
}

// NewResolver returns a Resolver over catalog.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Catalog returns the catalog the resolver reads.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// TypeOfNode returns the type of a document node, see TypeOf.
func (r *Resolver) TypeOfNode(node Pointerer) *TypeDefinition {
	if node == nil {
		return nil
	}
	return r.TypeOf(node.Pointer())
}

// TypeOf walks path from the primary root type one segment at a time. References are
// followed at every step. When a segment cannot be resolved the last resolved type is
// returned, so a document that is only valid up to some depth still resolves that prefix.
func (r *Resolver) TypeOf(path jsonpointer.JSONPointer) *TypeDefinition {
	primary := r.catalog.Primary()
	if primary == nil {
		return nil
	}

	current := primary.RootType().Resolve()
	if current == nil {
		return nil
	}

	for _, segment := range path.Parts() {
		next := childType(current, segment).Resolve()
		if next == nil {
			break
		}
		current = next
	}

	return current
}

func childType(t *TypeDefinition, segment string) *TypeDefinition {
	index, err := strconv.Atoi(segment)
	isIndex := err == nil && index >= 0

	switch {
	case t == nil:
		return nil
	case t.kind == KindArray:
		if !isIndex {
			return nil
		}
		return t.ItemsTypeAt(index)
	case t.kind.IsComposite():
		if p := t.PropertyType(segment); p != nil || !isIndex {
			return p
		}
		return t.ItemsTypeAt(index)
	default:
		return t.PropertyType(segment)
	}
}

// SchemaType returns the type reachable by a pointer or reference inside the primary
// grammar, such as "/definitions/info" or "#/definitions/info". Empty means the root.
func (r *Resolver) SchemaType(ref string) *TypeDefinition {
	primary := r.catalog.Primary()
	if primary == nil {
		return nil
	}
	if ref == "" {
		return primary.RootType()
	}
	return r.Resolve(nil, ref)
}

// Resolve resolves ref relative to context. Without a base id the reference points into the
// context's document, or the primary grammar when context is nil. Unknown ids resolve to nil.
// The returned type may itself be a reference; TypeDefinition.Resolve follows such chains.
func (r *Resolver) Resolve(context *TypeDefinition, ref string) *TypeDefinition {
	doc := r.catalog.Primary()
	if context != nil {
		doc = context.document
	}
	if doc == nil {
		return nil
	}

	return doc.resolveReference(ref)
}
