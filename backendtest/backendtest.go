// Package backendtest provides a Backend implementation for tests that
// need to observe the pipeline's hand-off contract without generating
// any real target-language output (spec.md §4.8: generation itself is
// out of scope).
package backendtest

import "github.com/marvinyane/aidl-upstream/aidl"

// Recorder implements aidl.Backend by recording every Result it is
// handed. It never fails, so it proves only that the hand-off happened,
// not anything about the result's shape; callers assert on Results
// directly.
type Recorder struct {
	Results []*aidl.Result
}

var _ aidl.Backend = (*Recorder)(nil)

// Generate records result and returns nil.
func (r *Recorder) Generate(result *aidl.Result) error {
	r.Results = append(r.Results, result)
	return nil
}

// Called reports whether Generate has been invoked at least once.
func (r *Recorder) Called() bool {
	return len(r.Results) > 0
}
