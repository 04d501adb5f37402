// Package semantic implements the validator (spec.md §4.7, C7): filename
// and package agreement, type legality, method uniqueness, and
// transaction id assignment. Every check here accumulates diagnostics
// through a reporter.Handler rather than stopping at the first failure,
// so a single invocation surfaces every problem in a file at once, the
// way aidl.cpp's check_types/check_and_assign_method_ids do.
package semantic

import (
	"errors"
	"path"
	"runtime"
	"strings"

	"github.com/marvinyane/aidl-upstream/ast"
	"github.com/marvinyane/aidl-upstream/reporter"
	"github.com/marvinyane/aidl-upstream/typespace"
)

// ErrMixedTransactionIDs is reported once per file when some methods
// carry an explicit "= N" id and others don't: a file must pick exactly
// one of the two id-assignment policies.
var ErrMixedTransactionIDs = errors.New("semantic: method ids must be either all explicit or all implicit")

// ErrDuplicateMethod is reported when two methods in the same interface
// share a name.
var ErrDuplicateMethod = errors.New("semantic: duplicate method name")

// ErrTransactionIDOutOfRange is reported when an explicit method id
// falls outside the legal user transaction id space.
var ErrTransactionIDOutOfRange = errors.New("semantic: transaction id out of range")

// ErrDuplicateTransactionID is reported when two methods in the same
// interface are assigned the same transaction id.
var ErrDuplicateTransactionID = errors.New("semantic: duplicate transaction id")

// ErrFilenameMismatch is reported when the declared package/type name
// does not agree with the path the file was found at.
var ErrFilenameMismatch = errors.New("semantic: filename does not match declared package and type")

// ErrOneWayReturnType is reported when a oneway method declares a return
// type other than void: a oneway call never waits for a reply, so it has
// nowhere to deliver one.
var ErrOneWayReturnType = errors.New("semantic: oneway method must return void")

// ErrOneWayOutArgument is reported when a oneway method has an out or
// inout argument, for the same reason: there is no reply through which
// to hand a value back.
var ErrOneWayOutArgument = errors.New("semantic: oneway method may not have out or inout arguments")

// FirstCallTransaction is the lowest transaction id the binder runtime
// reserves for user-defined methods; ids below it are used internally
// and are never available for assignment here. User-assigned ids occupy
// [0, MaxUserTransactionID] in source, offset by FirstCallTransaction on
// the wire.
const FirstCallTransaction = 1

// MaxUserTransactionID is the highest id a method may be assigned,
// leaving room below the 32-bit transaction code ceiling for the
// reserved interface-descriptor transactions binder appends above user
// range.
const MaxUserTransactionID = 16_777_214

// CheckFilename reports whether file's path agrees with the package and
// type name declared inside it. On non-Linux hosts the comparison is
// case-insensitive, matching common case-insensitive filesystems; this
// is a known, intentionally preserved limitation (spec.md §9).
func CheckFilename(h *reporter.Handler, file, pkg, typeName string) bool {
	want := path.Join(strings.ReplaceAll(pkg, ".", "/"), typeName+".aidl")
	got := file
	match := strings.HasSuffix(got, want)
	if !match && runtime.GOOS != "linux" {
		match = strings.HasSuffix(strings.ToLower(got), strings.ToLower(want))
	}
	if !match {
		_ = h.HandleErrorf(reporter.Pos{File: file, Line: 1}, "%w: expected path ending in %q for %s.%s, found %q", ErrFilenameMismatch, want, pkg, typeName, got)
		return false
	}
	return true
}

// CheckTypes validates every return type and argument of every method
// against ns, continuing through all methods and arguments even after a
// failure so every problem is reported in one pass. It also enforces the
// oneway constraints: a method that is oneway itself, or that belongs to
// a oneway interface, must return void and may not have any out/inout
// arguments.
func CheckTypes(h *reporter.Handler, file string, iface *ast.Interface, ns typespace.Namespace) bool {
	ok := true
	for i := range iface.Methods {
		m := &iface.Methods[i]
		if !ns.IsValidReturnType(h, m.Return, file) {
			ok = false
		}
		for idx, arg := range m.Arguments {
			if !ns.IsValidArg(h, arg, idx+1, file) {
				ok = false
			}
		}
		if !checkOneWay(h, file, iface, m) {
			ok = false
		}
	}
	return ok
}

// checkOneWay enforces that a method which is oneway, either directly or
// because it belongs to a oneway interface, returns void and has no
// out/inout arguments.
func checkOneWay(h *reporter.Handler, file string, iface *ast.Interface, m *ast.Method) bool {
	if !iface.OneWay && !m.OneWay {
		return true
	}
	ok := true
	if m.Return.Name != voidTypeName || m.Return.IsArray {
		_ = h.HandleErrorf(reporter.Pos{File: file, Line: m.Line}, "%w: method %q returns %s", ErrOneWayReturnType, m.Name, m.Return.String())
		ok = false
	}
	for _, arg := range m.Arguments {
		if arg.Direction != ast.DirIn {
			_ = h.HandleErrorf(reporter.Pos{File: file, Line: arg.Line},
				"%w: method %q argument %q is %s", ErrOneWayOutArgument, m.Name, arg.Name, arg.Direction)
			ok = false
		}
	}
	return ok
}

// voidTypeName is the spelling of the one return type a oneway method may
// declare.
const voidTypeName = "void"

// CheckMethodUniqueness reports every method name used more than once in
// iface, citing both the offending redeclaration and the first
// definition's line.
func CheckMethodUniqueness(h *reporter.Handler, file string, iface *ast.Interface) bool {
	firstLine := map[string]int{}
	ok := true
	for _, m := range iface.Methods {
		if prev, seen := firstLine[m.Name]; seen {
			_ = h.HandleErrorf(reporter.Pos{File: file, Line: m.Line},
				"%w: method %q already defined at line %d", ErrDuplicateMethod, m.Name, prev)
			ok = false
			continue
		}
		firstLine[m.Name] = m.Line
	}
	return ok
}

// AssignTransactionIDs assigns a transaction id to every method in
// iface. If every method already carries an explicit id, those ids are
// validated for range and uniqueness and left as-is. If no method
// carries one, ids are assigned sequentially in declaration order
// starting at 0. Mixing the two styles within one file is reported once,
// for the file as a whole, rather than once per offending method.
func AssignTransactionIDs(h *reporter.Handler, file string, iface *ast.Interface) bool {
	explicitCount := 0
	for _, m := range iface.Methods {
		if m.HasID {
			explicitCount++
		}
	}
	if explicitCount > 0 && explicitCount < len(iface.Methods) {
		_ = h.HandleErrorf(reporter.Pos{File: file, Line: iface.Line}, "%w", ErrMixedTransactionIDs)
		return false
	}

	ok := true
	if explicitCount == 0 {
		for i := range iface.Methods {
			iface.Methods[i].ID = i
			iface.Methods[i].HasID = true
		}
		return true
	}

	seenAt := map[int]int{}
	for i := range iface.Methods {
		m := &iface.Methods[i]
		if m.ID < 0 || m.ID > MaxUserTransactionID {
			_ = h.HandleErrorf(reporter.Pos{File: file, Line: m.Line},
				"%w: method %q has id %d, must be in [0, %d]", ErrTransactionIDOutOfRange, m.Name, m.ID, MaxUserTransactionID)
			ok = false
			continue
		}
		if prevLine, dup := seenAt[m.ID]; dup {
			_ = h.HandleErrorf(reporter.Pos{File: file, Line: m.Line},
				"%w: method %q reuses id %d, first assigned at line %d", ErrDuplicateTransactionID, m.Name, m.ID, prevLine)
			ok = false
			continue
		}
		seenAt[m.ID] = m.Line
	}
	return ok
}
