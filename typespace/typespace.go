// Package typespace implements the Type Namespace (spec.md §3, §4.5, C5):
// the per-compilation registry against which every type reference is
// resolved and legality-checked. Two back-end variants share the same
// registry, the same primitive set and the same container shapes; they
// differ only in whether a non-array primitive argument may be passed
// "out" or "inout".
//
// The registry is backed by a radix tree keyed by canonical dotted name,
// grounded on protocompile/linker's use of the same library (art.New())
// as its descriptor index — the payoff here is the same: iterating the
// registry always visits entries in canonical-name order, independent of
// the order in which files were gathered, which is what makes manifest
// writing and diagnostic ordering reproducible across runs (spec.md §5,
// §8).
package typespace

import (
	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/marvinyane/aidl-upstream/ast"
	"github.com/marvinyane/aidl-upstream/reporter"
)

// Kind discriminates the four shapes a namespace entry can have.
type Kind int

const (
	KindPrimitive Kind = iota
	KindParcelable
	KindInterface
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindParcelable:
		return "parcelable"
	case KindInterface:
		return "interface"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Entry is one registered type: its canonical name, kind, and (if it was
// declared in source, as opposed to being a primitive or a synthesized
// container) the file and line it was declared at.
type Entry struct {
	CanonicalName string
	Kind          Kind
	File          string
	Line          int
}

// Namespace is the capability interface spec.md §3/§4.5 describes: a
// registry of known types plus back-end-specific legality rules. Two
// concrete implementations exist: NativeNamespace and ManagedNamespace.
type Namespace interface {
	// Has reports whether canonicalName is already registered.
	Has(canonicalName string) bool
	// Entries returns every registered entry, in canonical-name order.
	Entries() []Entry

	// AddParcelable registers decl as declared in file. Redeclaring the
	// same (name, kind) from the same file is idempotent; redeclaring
	// with a conflicting kind, or from a different file, is an error.
	AddParcelable(decl ast.Parcelable, file string) error
	// AddInterface registers decl as declared in file, under the same
	// rules as AddParcelable.
	AddInterface(decl *ast.Interface, file string) error

	// BindImport records that, within file, the bare alias resolves to
	// canonical. Used so that a type reference written as a bare class
	// name (as opposed to its fully dotted form) can be resolved back to
	// the single canonical entry it names, preserving cross-file type
	// identity (spec.md §3).
	BindImport(file, alias, canonical string)

	// AddContainer inspects name; if it denotes a parameterized
	// container shape (List<T>, Map<K,V>), it validates the parameter
	// count, resolves every element type against the registry (as seen
	// from file), and registers the instantiation. If name is not a
	// container shape, AddContainer is a no-op that returns nil.
	AddContainer(name, file string) error

	// IsValidReturnType reports whether ref is legal as a method's return
	// type in file, emitting a diagnostic through h and returning false
	// otherwise.
	IsValidReturnType(h *reporter.Handler, ref ast.TypeRef, file string) bool
	// IsValidArg reports whether arg (at 1-based position index) is
	// legal in file, emitting a diagnostic through h and returning false
	// otherwise.
	IsValidArg(h *reporter.Handler, arg ast.Argument, index int, file string) bool
}

// registry is the shared storage and resolution logic used by both
// Namespace implementations.
type registry struct {
	tree   art.Tree
	scopes map[string]map[string]string // file -> alias -> canonical name
}

func newRegistry(primitives []string) *registry {
	r := &registry{tree: art.New(), scopes: map[string]map[string]string{}}
	for _, p := range primitives {
		r.tree.Insert(art.Key(p), &Entry{CanonicalName: p, Kind: KindPrimitive})
	}
	return r
}

func (r *registry) get(canonicalName string) (*Entry, bool) {
	v, found := r.tree.Search(art.Key(canonicalName))
	if !found {
		return nil, false
	}
	return v.(*Entry), true
}

func (r *registry) Has(canonicalName string) bool {
	_, ok := r.get(canonicalName)
	return ok
}

func (r *registry) Entries() []Entry {
	var out []Entry
	r.tree.ForEach(func(node art.Node) bool {
		out = append(out, *(node.Value().(*Entry)))
		return true
	})
	return out
}

func (r *registry) add(canonicalName string, kind Kind, file string, line int) error {
	if existing, ok := r.get(canonicalName); ok {
		if existing.Kind != kind || existing.File != file {
			return reporter.AlreadyDefined(canonicalName, reporter.Pos{File: existing.File, Line: existing.Line})
		}
		return nil // idempotent redeclaration from the same file
	}
	r.tree.Insert(art.Key(canonicalName), &Entry{CanonicalName: canonicalName, Kind: kind, File: file, Line: line})
	return nil
}

func (r *registry) AddParcelable(decl ast.Parcelable, file string) error {
	canonical := decl.CanonicalName()
	if err := r.add(canonical, KindParcelable, file, decl.Line); err != nil {
		return err
	}
	r.BindImport(file, decl.Name, canonical)
	return nil
}

func (r *registry) AddInterface(decl *ast.Interface, file string) error {
	canonical := decl.CanonicalName()
	if err := r.add(canonical, KindInterface, file, decl.Line); err != nil {
		return err
	}
	r.BindImport(file, decl.Name, canonical)
	return nil
}

func (r *registry) BindImport(file, alias, canonical string) {
	scope, ok := r.scopes[file]
	if !ok {
		scope = map[string]string{}
		r.scopes[file] = scope
	}
	scope[alias] = canonical
}

// resolve maps a written type name (bare identifier, already-dotted name,
// or container instantiation) to its canonical registered name, as seen
// from file. Returns ok=false if the name cannot be resolved to any
// registered entry.
func (r *registry) resolve(name, file string) (string, bool) {
	if r.Has(name) {
		return name, true
	}
	if scope, ok := r.scopes[file]; ok {
		if canonical, ok := scope[name]; ok && r.Has(canonical) {
			return canonical, true
		}
	}
	return "", false
}

// resolveEntry is resolve plus the registered Entry, letting callers
// branch on Kind (e.g. to reject interfaces as out/inout arguments).
func (r *registry) resolveEntry(name, file string) (*Entry, bool) {
	canonical, ok := r.resolve(name, file)
	if !ok {
		return nil, false
	}
	return r.get(canonical)
}

func containerDiagnostic(h *reporter.Handler, file string, line int, format string, args ...interface{}) {
	_ = h.HandleErrorf(reporter.Pos{File: file, Line: line}, format, args...)
}
