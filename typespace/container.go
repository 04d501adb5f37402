package typespace

import (
	"strings"

	art "github.com/plar/go-adaptive-radix-tree"
)

// containerShape is a parsed parameterized container reference, e.g.
// "List<String>" or "Map<String,com.x.Foo>".
type containerShape struct {
	head   string
	params []string
}

// parseContainerShape splits name into its head identifier and generic
// parameter list. ok is false if name carries no "<...>" suffix at all,
// meaning it is not a container reference.
func parseContainerShape(name string) (containerShape, bool) {
	open := strings.IndexByte(name, '<')
	if open < 0 {
		return containerShape{}, false
	}
	if !strings.HasSuffix(name, ">") {
		return containerShape{}, false
	}
	head := name[:open]
	inner := name[open+1 : len(name)-1]
	var params []string
	depth := 0
	start := 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	params = append(params, strings.TrimSpace(inner[start:]))
	return containerShape{head: head, params: params}, true
}

// knownContainerArity is the set of container heads this registry
// recognizes, along with how many type parameters each expects. A
// generic shape outside this set (a user-defined "Foo<T>") is rejected:
// AIDL's grammar has no facility for declaring new generic types.
var knownContainerArity = map[string]int{
	"List": 1,
	"Map":  2,
}

// AddContainer validates and registers name if it denotes a recognized
// container shape. Unrecognized generic shapes, a wrong parameter
// count, or an element type that does not resolve in file all return an
// error; plain (non-generic) names are a no-op.
func (r *registry) AddContainer(name, file string) error {
	shape, ok := parseContainerShape(name)
	if !ok {
		return nil
	}
	arity, known := knownContainerArity[shape.head]
	if !known {
		return &errUnknownContainer{name: shape.head}
	}
	if len(shape.params) != arity {
		return &errContainerArity{name: shape.head, want: arity, got: len(shape.params)}
	}
	for _, param := range shape.params {
		if err := r.checkElementType(param, file); err != nil {
			return &errContainerElement{container: name, element: param, cause: err}
		}
	}
	if !r.Has(name) {
		r.tree.Insert(art.Key(name), &Entry{CanonicalName: name, Kind: KindContainer, File: file})
	}
	return nil
}

// checkElementType resolves a single container type parameter, either a
// primitive/declared name (looked up in file's scope) or, recursively,
// another container shape (e.g. the inner List<String> of
// Map<String,List<String>>).
func (r *registry) checkElementType(name, file string) error {
	if _, ok := parseContainerShape(name); ok {
		return r.AddContainer(name, file)
	}
	if _, ok := r.resolve(name, file); ok {
		return nil
	}
	return &errUnknownType{name: name}
}

type errUnknownContainer struct{ name string }

func (e *errUnknownContainer) Error() string {
	return "unknown container type \"" + e.name + "\""
}

type errContainerArity struct {
	name      string
	want, got int
}

func (e *errContainerArity) Error() string {
	return "container type \"" + e.name + "\" takes the wrong number of type parameters"
}

type errUnknownType struct{ name string }

func (e *errUnknownType) Error() string {
	return "unknown type \"" + e.name + "\""
}

type errContainerElement struct {
	container, element string
	cause               error
}

func (e *errContainerElement) Error() string {
	return "container type \"" + e.container + "\": element \"" + e.element + "\": " + e.cause.Error()
}

func (e *errContainerElement) Unwrap() error { return e.cause }
