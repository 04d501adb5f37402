package reporter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marvinyane/aidl-upstream/reporter"
)

func TestHandler_AccumulatesAndFormats(t *testing.T) {
	var seen []string
	h := reporter.NewHandler(reporter.ReporterFunc(func(err reporter.ErrorWithPos) error {
		seen = append(seen, err.Error())
		return nil
	}))

	require.NoError(t, h.HandleErrorf(reporter.Pos{File: "com/x/IFoo.aidl", Line: 3}, "something went wrong"))
	require.NoError(t, h.HandleErrorf(reporter.Pos{File: "com/x/IFoo.aidl", Line: 5}, "something else"))

	require.True(t, h.ReportedErrors())
	require.Equal(t, 2, h.ErrorCount())
	require.ErrorIs(t, h.Error(), reporter.ErrInvalidSource)
	require.Equal(t, []string{
		"com/x/IFoo.aidl:3 something went wrong",
		"com/x/IFoo.aidl:5 something else",
	}, seen)
}

func TestHandler_NoErrors(t *testing.T) {
	h := reporter.NewHandler(nil)
	require.False(t, h.ReportedErrors())
	require.NoError(t, h.Error())
}

func TestHandler_AbortsWhenReporterReturnsError(t *testing.T) {
	abort := errors.New("boom")
	h := reporter.NewHandler(reporter.ReporterFunc(func(reporter.ErrorWithPos) error {
		return abort
	}))
	err := h.HandleErrorf(reporter.Pos{File: "f", Line: 1}, "x")
	require.ErrorIs(t, err, abort)
}

func TestAlreadyDefinedError(t *testing.T) {
	err := reporter.AlreadyDefined("com.x.Foo", reporter.Pos{File: "com/x/Foo.aidl", Line: 1})
	require.Contains(t, err.Error(), "com.x.Foo already declared")
	require.Contains(t, err.Error(), "com/x/Foo.aidl:1")
}
