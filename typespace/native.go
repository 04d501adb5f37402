package typespace

import (
	"github.com/marvinyane/aidl-upstream/ast"
	"github.com/marvinyane/aidl-upstream/reporter"
)

// commonPrimitives are the primitive type names legal in both back-end
// flavors. "void" is special-cased separately since it is legal only as
// a method return type, never as an argument.
var commonPrimitives = []string{
	"boolean", "byte", "char", "int", "long", "float", "double",
	"String", "CharSequence", "IBinder", "FileDescriptor", "ParcelFileDescriptor",
}

const voidType = "void"

// NativeNamespace implements the C++-flavored back-end's type legality
// rules (named for aidl.cpp's type_cpp.h split): primitives may only be
// passed "in"; "out"/"inout" primitives are rejected because the C++
// back end has no mutable-primitive-by-reference convention to generate
// against. Arrays of primitives ("int[]") are an additional container
// shape this flavor recognizes that the managed flavor does not need to
// special-case the same way.
type NativeNamespace struct {
	*registry
}

var _ Namespace = (*NativeNamespace)(nil)

// NewNativeNamespace returns a NativeNamespace seeded with the shared
// primitive set.
func NewNativeNamespace() *NativeNamespace {
	return &NativeNamespace{registry: newRegistry(commonPrimitives)}
}

func (n *NativeNamespace) isPrimitive(name string) bool {
	for _, p := range commonPrimitives {
		if p == name {
			return true
		}
	}
	return false
}

func (n *NativeNamespace) IsValidReturnType(h *reporter.Handler, ref ast.TypeRef, file string) bool {
	if ref.Name == voidType {
		if ref.IsArray {
			containerDiagnostic(h, file, ref.Line, "void cannot be an array type")
			return false
		}
		return true
	}
	return n.checkTypeRef(h, ref, file)
}

func (n *NativeNamespace) IsValidArg(h *reporter.Handler, arg ast.Argument, index int, file string) bool {
	if arg.Type.Name == voidType {
		containerDiagnostic(h, file, arg.Line, "argument %d (%s): void is not a valid argument type", index, arg.Name)
		return false
	}
	if !n.checkTypeRef(h, arg.Type, file) {
		return false
	}
	if n.isPrimitive(arg.Type.Name) && !arg.Type.IsArray && arg.Direction != ast.DirIn {
		containerDiagnostic(h, file, arg.Line, "argument %d (%s): primitive type %q may only be passed \"in\"", index, arg.Name, arg.Type.Name)
		return false
	}
	if entry, ok := n.resolveEntry(arg.Type.Name, file); ok && entry.Kind == KindInterface && arg.Direction != ast.DirIn {
		containerDiagnostic(h, file, arg.Line, "argument %d (%s): interface type %q may only be passed \"in\"", index, arg.Name, arg.Type.Name)
		return false
	}
	return true
}

// checkTypeRef reports whether ref names a known type (primitive,
// registered declaration, or recognized container shape) as seen from
// file.
func (n *NativeNamespace) checkTypeRef(h *reporter.Handler, ref ast.TypeRef, file string) bool {
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
