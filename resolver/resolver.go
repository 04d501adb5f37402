// Package resolver maps a dotted import name ("com.x.Foo") to a file path
// by searching an ordered list of roots (spec.md §4.4, C4). It is
// grounded on protocompile's SourceResolver: an ordered list of search
// paths and a storage seam (here fsio.FileSystem instead of a raw
// Accessor function), with the same "first match wins, no recursion
// beyond the computed relative path" contract.
package resolver

import (
	"errors"
	"path"
	"strings"

	"github.com/marvinyane/aidl-upstream/fsio"
)

// ErrImportUnresolved is returned when no root contains the requested
// class.
var ErrImportUnresolved = errors.New("resolver: import could not be resolved")

// Resolver searches an ordered list of roots for the file backing a
// dotted class name.
type Resolver struct {
	// Roots is the ordered list of search roots. Earliest root wins.
	Roots []string
	// FileSystem is the storage seam used to check existence and
	// readability. Defaults to fsio.OSFileSystem if left nil.
	FileSystem fsio.FileSystem
	// Ext is the source file extension, without a leading dot. Defaults
	// to "aidl".
	Ext string
}

func (r *Resolver) fs() fsio.FileSystem {
	if r.FileSystem == nil {
		return fsio.OSFileSystem{}
	}
	return r.FileSystem
}

func (r *Resolver) ext() string {
	if r.Ext == "" {
		return "aidl"
	}
	return r.Ext
}

// RelativePath converts a dotted class name such as "a.b.C" into the
// relative path "a/b/C.<ext>" it would be searched for under each root.
func (r *Resolver) RelativePath(dottedName string) string {
	segments := strings.Split(dottedName, ".")
	return path.Join(strings.Join(segments, "/")) + "." + r.ext()
}

// FindImportFile returns the path of the readable file the dotted class
// name resolves to under the first root that has one, formed by joining
// that root with RelativePath (absolute only when the root is), or "" if none of the
// roots contain it. Root order is searched in the order given; swapping
// two roots that both contain the class changes which one is selected,
// satisfying the determinism law in spec.md §8.
func (r *Resolver) FindImportFile(dottedName string) string {
	rel := r.RelativePath(dottedName)
	for _, root := range r.Roots {
		candidate := path.Join(root, rel)
		if r.fs().IsReadable(candidate) {
			return candidate
		}
	}
	return ""
}
