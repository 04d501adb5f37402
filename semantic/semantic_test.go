package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marvinyane/aidl-upstream/ast"
	"github.com/marvinyane/aidl-upstream/reporter"
	"github.com/marvinyane/aidl-upstream/semantic"
	"github.com/marvinyane/aidl-upstream/typespace"
)

func TestCheckFilename_Agrees(t *testing.T) {
	h := reporter.NewHandler(nil)
	require.True(t, semantic.CheckFilename(h, "com/x/IFoo.aidl", "com.x", "IFoo"))
	require.False(t, h.ReportedErrors())
}

func TestCheckFilename_Disagrees(t *testing.T) {
	h := reporter.NewHandler(nil)
	require.False(t, semantic.CheckFilename(h, "com/x/Wrong.aidl", "com.x", "IFoo"))
	require.True(t, h.ReportedErrors())
}

func TestCheckMethodUniqueness_CitesFirstDefinition(t *testing.T) {
	var seen []reporter.ErrorWithPos
	h := reporter.NewHandler(reporter.ReporterFunc(func(err reporter.ErrorWithPos) error {
		seen = append(seen, err)
		return nil
	}))
	iface := &ast.Interface{
		Name: "IFoo",
		Methods: []ast.Method{
			{Name: "a", Line: 2},
			{Name: "b", Line: 3},
			{Name: "a", Line: 5},
		},
	}
	require.False(t, semantic.CheckMethodUniqueness(h, "f.aidl", iface))
	require.Len(t, seen, 1)
	require.Equal(t, 5, seen[0].GetPosition().Line)
	require.Contains(t, seen[0].Error(), "line 2")
}

func TestAssignTransactionIDs_AllImplicit(t *testing.T) {
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{Methods: []ast.Method{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	require.True(t, semantic.AssignTransactionIDs(h, "f.aidl", iface))
	require.Equal(t, []int{0, 1, 2}, []int{iface.Methods[0].ID, iface.Methods[1].ID, iface.Methods[2].ID})
}

func TestAssignTransactionIDs_AllExplicit(t *testing.T) {
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{Methods: []ast.Method{
		{Name: "a", HasID: true, ID: 10},
		{Name: "b", HasID: true, ID: 3},
	}}
	require.True(t, semantic.AssignTransactionIDs(h, "f.aidl", iface))
	require.Equal(t, 10, iface.Methods[0].ID)
	require.Equal(t, 3, iface.Methods[1].ID)
}

func TestAssignTransactionIDs_MixedRejected(t *testing.T) {
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{Methods: []ast.Method{
		{Name: "a", HasID: true, ID: 1},
		{Name: "b"},
	}}
	require.False(t, semantic.AssignTransactionIDs(h, "f.aidl", iface))
	require.ErrorIs(t, h.Error(), reporter.ErrInvalidSource)
}

func TestAssignTransactionIDs_DuplicateRejected(t *testing.T) {
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{Methods: []ast.Method{
		{Name: "a", HasID: true, ID: 4, Line: 2},
		{Name: "b", HasID: true, ID: 4, Line: 3},
	}}
	require.False(t, semantic.AssignTransactionIDs(h, "f.aidl", iface))
}

func TestAssignTransactionIDs_OutOfRangeRejected(t *testing.T) {
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{Methods: []ast.Method{
		{Name: "a", HasID: true, ID: semantic.MaxUserTransactionID + 1, Line: 2},
	}}
	require.False(t, semantic.AssignTransactionIDs(h, "f.aidl", iface))
}

func TestCheckTypes_AccumulatesAllFailures(t *testing.T) {
	ns := typespace.NewNativeNamespace()
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{
		Name: "IFoo",
		Methods: []ast.Method{
			{Name: "a", Return: ast.TypeRef{Name: "Bogus1"}, Line: 2},
			{Name: "b", Return: ast.TypeRef{Name: "void"}, Arguments: []ast.Argument{
				{Name: "x", Type: ast.TypeRef{Name: "Bogus2"}, Line: 3},
			}, Line: 3},
		},
	}
	require.False(t, semantic.CheckTypes(h, "f.aidl", iface, ns))
	require.Equal(t, 2, h.ErrorCount())
}

func TestCheckTypes_OneWayMethodMustReturnVoid(t *testing.T) {
	ns := typespace.NewNativeNamespace()
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{
		Name: "IFoo",
		Methods: []ast.Method{
			{Name: "a", OneWay: true, Return: ast.TypeRef{Name: "int"}, Line: 2},
		},
	}
	require.False(t, semantic.CheckTypes(h, "f.aidl", iface, ns))
	require.ErrorIs(t, h.Error(), reporter.ErrInvalidSource)
}

func TestCheckTypes_OneWayMethodRejectsOutArgument(t *testing.T) {
	ns := typespace.NewNativeNamespace()
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{
		Name: "IFoo",
		Methods: []ast.Method{
			{Name: "a", OneWay: true, Return: ast.TypeRef{Name: "void"}, Arguments: []ast.Argument{
				{Name: "x", Type: ast.TypeRef{Name: "int"}, Direction: ast.DirOut, Line: 2},
			}, Line: 2},
		},
	}
	require.False(t, semantic.CheckTypes(h, "f.aidl", iface, ns))
}

func TestCheckTypes_OneWayInterfacePropagatesToEveryMethod(t *testing.T) {
	ns := typespace.NewNativeNamespace()
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{
		Name:   "IFoo",
		OneWay: true,
		Methods: []ast.Method{
			{Name: "a", Return: ast.TypeRef{Name: "int"}, Line: 2},
		},
	}
	require.False(t, semantic.CheckTypes(h, "f.aidl", iface, ns))
}

func TestCheckTypes_OneWayVoidMethodWithInArgumentsAccepted(t *testing.T) {
	ns := typespace.NewNativeNamespace()
	h := reporter.NewHandler(nil)
	iface := &ast.Interface{
		Name: "IFoo",
		Methods: []ast.Method{
			{Name: "a", OneWay: true, Return: ast.TypeRef{Name: "void"}, Arguments: []ast.Argument{
				{Name: "x", Type: ast.TypeRef{Name: "int"}, Direction: ast.DirIn, Line: 2},
			}, Line: 2},
		},
	}
	require.True(t, semantic.CheckTypes(h, "f.aidl", iface, ns))
	require.False(t, h.ReportedErrors())
}
