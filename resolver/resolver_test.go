package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marvinyane/aidl-upstream/fsio"
	"github.com/marvinyane/aidl-upstream/resolver"
)

func TestFindImportFile_FirstRootWins(t *testing.T) {
	fs := fsio.MapFileSystem{
		"root1/com/z/Bar.aidl": []byte("parcelable Bar;"),
		"root2/com/z/Bar.aidl": []byte("parcelable Bar;"),
	}
	r := &resolver.Resolver{Roots: []string{"root1", "root2"}, FileSystem: fs}
	require.Equal(t, "root1/com/z/Bar.aidl", r.FindImportFile("com.z.Bar"))

	swapped := &resolver.Resolver{Roots: []string{"root2", "root1"}, FileSystem: fs}
	require.Equal(t, "root2/com/z/Bar.aidl", swapped.FindImportFile("com.z.Bar"))
}

func TestFindImportFile_NotFound(t *testing.T) {
	r := &resolver.Resolver{Roots: []string{"root1"}, FileSystem: fsio.MapFileSystem{}}
	require.Equal(t, "", r.FindImportFile("com.z.Bar"))
}

func TestRelativePath(t *testing.T) {
	r := &resolver.Resolver{}
	require.Equal(t, "com/z/Bar.aidl", r.RelativePath("com.z.Bar"))
}
