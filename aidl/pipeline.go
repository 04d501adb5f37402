// Package aidl implements the pipeline driver (spec.md §4.8, C8): the
// entry point that sequences parsing, import resolution, type gathering,
// semantic validation, and transaction id assignment for one interface
// file, then hands the validated result to a Backend. Code generation
// itself is out of scope; Backend exists only so the hand-off contract
// is exercised and testable.
//
// Pipeline is configured entirely through its fields, the same
// field-based idiom protocompile.Compiler uses rather than a file-based
// configuration format.
package aidl

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/marvinyane/aidl-upstream/ast"
	"github.com/marvinyane/aidl-upstream/fsio"
	"github.com/marvinyane/aidl-upstream/manifest"
	"github.com/marvinyane/aidl-upstream/parser"
	"github.com/marvinyane/aidl-upstream/reporter"
	"github.com/marvinyane/aidl-upstream/resolver"
	"github.com/marvinyane/aidl-upstream/semantic"
	"github.com/marvinyane/aidl-upstream/typespace"
)

// ErrNotAnInterface is returned when the input file declares only
// parcelables: Compile's entry point exists to produce a compilable
// interface, and a parcelable-only file has nothing to generate a
// back end for.
var ErrNotAnInterface = errors.New("aidl: input file does not declare an interface")

// Backend receives a validated Result and is responsible for everything
// this package does not do: emitting target-language source. It is
// invoked exactly once per successful Compile.
type Backend interface {
	Generate(*Result) error
}

// Result bundles everything a Backend needs: the validated interface,
// the namespace it was checked against (populated with every type
// declared by the input file, by the files its own imports resolve to,
// and by preprocessed manifest entries; imports of imported files are
// not followed), and the list of imports that were resolved on its
// behalf.
type Result struct {
	Interface *ast.Interface
	Namespace typespace.Namespace
	Imports   []*ast.Import
}

// Pipeline configures one compilation. FileSystem, Namespace, and
// Reporter default to fsio.OSFileSystem, a fresh typespace.NativeNamespace,
// and a stderr-printing reporter respectively when left zero.
type Pipeline struct {
	// Roots is the ordered list of import search roots.
	Roots []string
	// ManifestPaths lists preprocessed manifest files to load before
	// parsing the input, in order.
	ManifestPaths []string
	// FileSystem is the storage seam used throughout the pipeline.
	FileSystem fsio.FileSystem
	// Namespace is the type registry compilation validates against. If
	// nil, a NativeNamespace is constructed for this Compile call.
	Namespace typespace.Namespace
	// Reporter receives every diagnostic produced during compilation.
	Reporter reporter.Reporter
	// Backend, if set, is invoked with the Result once compilation
	// succeeds.
	Backend Backend
}

func (p *Pipeline) fs() fsio.FileSystem {
	if p.FileSystem == nil {
		return fsio.OSFileSystem{}
	}
	return p.FileSystem
}

func (p *Pipeline) namespace() typespace.Namespace {
	if p.Namespace == nil {
		return typespace.NewNativeNamespace()
	}
	return p.Namespace
}

// Compile runs the full pipeline against the file at inputPath: loading
// preprocessed manifests, parsing the input and the files its own imports
// resolve to (imports of those files are not followed), gathering their
// declared types into the namespace, validating types, checking method
// uniqueness, and assigning transaction ids. The returned error wraps
// reporter.ErrInvalidSource iff any stage reported a diagnostic; a failure
// to read or load a manifest or to read the input, an input without an
// interface, and a Backend failure are returned as other errors, with no
// diagnostic reported. Compile never stops at the first error
// within a stage, so every caller sees the full set of problems in one
// invocation, matching aidl.cpp's load_and_validate_aidl driver
// sequence.
func (p *Pipeline) Compile(inputPath string) (*Result, error) {
	h := reporter.NewHandler(p.Reporter)
	ns := p.namespace()

	// 1. Load preprocessed manifests.
	for _, mp := range p.ManifestPaths {
		content, err := p.fs().ReadFile(mp)
		if err != nil {
			return nil, fmt.Errorf("aidl: reading manifest %s: %w", mp, err)
		}
		if err := manifest.Load(mp, content, ns); err != nil {
			return nil, fmt.Errorf("aidl: loading manifest %s: %w", mp, err)
		}
		slog.Debug("manifest loaded", "path", mp)
	}

	// 2. Parse the input file.
	src, err := p.fs().ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("aidl: reading %s: %w", inputPath, err)
	}
	res, err := parser.Parse(inputPath, src, h)
	if err != nil {
		return nil, err
	}
	if !res.Document.IsInterface() {
		return nil, fmt.Errorf("%w: %s", ErrNotAnInterface, inputPath)
	}
	iface := res.Document.Interface

	// 3. Filename/package agreement.
	semantic.CheckFilename(h, inputPath, res.Package, iface.Name)

	// 4. Resolve and parse imports, tolerating names already known via a
	// preprocessed manifest (the legacy "silent fallback" rule).
	imp := &resolver.Resolver{Roots: p.Roots, FileSystem: p.fs()}
	for _, im := range res.Imports {
		if ns.Has(im.NeededClass) {
			ns.BindImport(inputPath, lastSegment(im.NeededClass), im.NeededClass)
			continue
		}
		path := imp.FindImportFile(im.NeededClass)
		if path == "" {
			_ = h.HandleErrorf(reporter.Pos{File: inputPath, Line: im.Line},
				"%w: %s", resolver.ErrImportUnresolved, im.NeededClass)
			continue
		}
		im.ResolvedPath = path
		importSrc, err := p.fs().ReadFile(path)
		if err != nil {
			_ = h.HandleErrorf(reporter.Pos{File: inputPath, Line: im.Line}, "reading import %s: %v", path, err)
			continue
		}
		importRes, err := parser.Parse(path, importSrc, h)
		if err != nil || importRes == nil {
			continue
		}
		// 5. Gather the imported declarations into the namespace.
		gather(h, importRes, path, ns)
		ns.BindImport(inputPath, lastSegment(im.NeededClass), im.NeededClass)
		slog.Debug("import resolved", "class", im.NeededClass, "path", path)
	}

	// 5 (continued). Gather this file's own declarations.
	gather(h, res, inputPath, ns)
	slog.Debug("types gathered", "file", inputPath, "count", len(ns.Entries()))

	// 6. Validate types.
	semantic.CheckTypes(h, inputPath, iface, ns)

	// Method uniqueness.
	semantic.CheckMethodUniqueness(h, inputPath, iface)

	// 7. Assign and validate transaction ids.
	semantic.AssignTransactionIDs(h, inputPath, iface)

	if h.ReportedErrors() {
		return nil, h.Error()
	}
	slog.Debug("validation complete", "file", inputPath, "interface", iface.CanonicalName())

	result := &Result{Interface: iface, Namespace: ns, Imports: res.Imports}

	// 8. Hand off to the backend, if any, only on success.
	if p.Backend != nil {
		if err := p.Backend.Generate(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func gather(h *reporter.Handler, res *parser.Result, file string, ns typespace.Namespace) {
	if res.Document.Interface != nil {
		if err := ns.AddInterface(res.Document.Interface, file); err != nil {
			_ = h.HandleError(reporter.Error(reporter.Pos{File: file, Line: res.Document.Interface.Line}, err))
		}
	}
	for _, p := range res.Document.Parcelables {
		if err := ns.AddParcelable(p, file); err != nil {
			_ = h.HandleError(reporter.Error(reporter.Pos{File: file, Line: p.Line}, err))
		}
	}
}

func lastSegment(dotted string) string {
	return ast.ParseQualifiedName(dotted).Name()
}
