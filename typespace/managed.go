package typespace

import (
	"github.com/marvinyane/aidl-upstream/ast"
	"github.com/marvinyane/aidl-upstream/reporter"
)

// ManagedNamespace implements the Java-flavored back-end's type legality
// rules (named for aidl_language's type_java.h split): primitives may be
// passed "out" or "inout" as well as "in", since the managed back end
// boxes primitives and can hand back a mutated value through a holder
// type. Interface types remain "in"-only in both flavors: neither back
// end has a convention for returning a remote-object reference through
// an out parameter.
type ManagedNamespace struct {
	*registry
}

var _ Namespace = (*ManagedNamespace)(nil)

// NewManagedNamespace returns a ManagedNamespace seeded with the shared
// primitive set.
func NewManagedNamespace() *ManagedNamespace {
	return &ManagedNamespace{registry: newRegistry(commonPrimitives)}
}

func (n *ManagedNamespace) isPrimitive(name string) bool {
	for _, p := range commonPrimitives {
		if p == name {
			return true
		}
	}
	return false
}

func (n *ManagedNamespace) IsValidReturnType(h *reporter.Handler, ref ast.TypeRef, file string) bool {
	if ref.Name == voidType {
		if ref.IsArray {
			containerDiagnostic(h, file, ref.Line, "void cannot be an array type")
			return false
		}
		return true
	}
	return n.checkTypeRef(h, ref, file)
}

func (n *ManagedNamespace) IsValidArg(h *reporter.Handler, arg ast.Argument, index int, file string) bool {
	if arg.Type.Name == voidType {
		containerDiagnostic(h, file, arg.Line, "argument %d (%s): void is not a valid argument type", index, arg.Name)
		return false
	}
	if !n.checkTypeRef(h, arg.Type, file) {
		return false
	}
	if entry, ok := n.resolveEntry(arg.Type.Name, file); ok && entry.Kind == KindInterface && arg.Direction != ast.DirIn {
		containerDiagnostic(h, file, arg.Line, "argument %d (%s): interface type %q may only be passed \"in\"", index, arg.Name, arg.Type.Name)
		return false
	}
	return true
}

func (n *ManagedNamespace) checkTypeRef(h *reporter.Handler, ref ast.TypeRef, file string) bool {
	if n.isPrimitive(ref.Name) {
		return true
	}
	if _, ok := parseContainerShape(ref.Name); ok {
		if err := n.AddContainer(ref.Name, file); err != nil {
			containerDiagnostic(h, file, ref.Line, "%s", err.Error())
			return false
		}
		return true
	}
	if _, ok := n.resolve(ref.Name, file); ok {
		return true
	}
	containerDiagnostic(h, file, ref.Line, "unknown type %q", ref.Name)
	return false
}
