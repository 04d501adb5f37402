package aidl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marvinyane/aidl-upstream/aidl"
	"github.com/marvinyane/aidl-upstream/backendtest"
	"github.com/marvinyane/aidl-upstream/fsio"
	"github.com/marvinyane/aidl-upstream/reporter"
)

func TestCompile_HappyPath(t *testing.T) {
	fs := fsio.MapFileSystem{
		"com/x/IFoo.aidl": []byte(`package com.x;
import com.z.Bar;
interface IFoo {
  void a(in Bar b);
  int b();
}
`),
		"com/z/Bar.aidl": []byte(`package com.z;
parcelable Bar;
`),
	}
	rec := &backendtest.Recorder{}
	p := &aidl.Pipeline{Roots: []string{"."}, FileSystem: fs, Backend: rec}
	result, err := p.Compile("com/x/IFoo.aidl")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.Namespace.Has("com.z.Bar"))
	require.True(t, rec.Called())
	require.Equal(t, 0, result.Interface.Methods[0].ID)
	require.Equal(t, 1, result.Interface.Methods[1].ID)
}

func TestCompile_FilenameMismatch(t *testing.T) {
	fs := fsio.MapFileSystem{
		"com/x/Wrong.aidl": []byte(`package com.x;
interface IFoo {
  void a();
}
`),
	}
	p := &aidl.Pipeline{FileSystem: fs}
	_, err := p.Compile("com/x/Wrong.aidl")
	require.Error(t, err)
}

func TestCompile_ExplicitIDsValid(t *testing.T) {
	fs := fsio.MapFileSystem{
		"com/x/IFoo.aidl": []byte(`package com.x;
interface IFoo {
  void a() = 0;
  void b() = 5;
}
`),
	}
	p := &aidl.Pipeline{FileSystem: fs}
	result, err := p.Compile("com/x/IFoo.aidl")
	require.NoError(t, err)
	require.Equal(t, 0, result.Interface.Methods[0].ID)
	require.Equal(t, 5, result.Interface.Methods[1].ID)
}

func TestCompile_MixedIDsRejected(t *testing.T) {
	fs := fsio.MapFileSystem{
		"com/x/IFoo.aidl": []byte(`package com.x;
interface IFoo {
  void a() = 0;
  void b();
}
`),
	}
	p := &aidl.Pipeline{FileSystem: fs}
	_, err := p.Compile("com/x/IFoo.aidl")
	require.Error(t, err)
	require.ErrorIs(t, err, reporter.ErrInvalidSource)
}

func TestCompile_DuplicateMethodRejected(t *testing.T) {
	fs := fsio.MapFileSystem{
		"com/x/IFoo.aidl": []byte(`package com.x;
interface IFoo {
  void a();
  int a();
}
`),
	}
	p := &aidl.Pipeline{FileSystem: fs}
	_, err := p.Compile("com/x/IFoo.aidl")
	require.Error(t, err)
}

func TestCompile_UnresolvedImportRejected(t *testing.T) {
	fs := fsio.MapFileSystem{
		"com/x/IFoo.aidl": []byte(`package com.x;
import com.z.Bar;
interface IFoo {
  void a(in Bar b);
}
`),
	}
	p := &aidl.Pipeline{Roots: []string{"."}, FileSystem: fs}
	_, err := p.Compile("com/x/IFoo.aidl")
	require.Error(t, err)
	require.ErrorIs(t, err, reporter.ErrInvalidSource)
}

func TestCompile_UnresolvedImportToleratedViaManifest(t *testing.T) {
	fs := fsio.MapFileSystem{
		"com/x/IFoo.aidl": []byte(`package com.x;
import com.z.Bar;
interface IFoo {
  void a(in Bar b);
}
`),
		"preprocessed.aidl": []byte("parcelable com.z.Bar;\n"),
	}
	p := &aidl.Pipeline{Roots: []string{"."}, ManifestPaths: []string{"preprocessed.aidl"}, FileSystem: fs}
	result, err := p.Compile("com/x/IFoo.aidl")
	require.NoError(t, err)
	require.True(t, result.Namespace.Has("com.z.Bar"))
}

func TestCompile_BackendNotInvokedOnFailure(t *testing.T) {
	fs := fsio.MapFileSystem{
		"com/x/IFoo.aidl": []byte(`package com.x;
interface IFoo {
  void a();
  int a();
}
`),
	}
	rec := &backendtest.Recorder{}
	p := &aidl.Pipeline{FileSystem: fs, Backend: rec}
	_, err := p.Compile("com/x/IFoo.aidl")
	require.Error(t, err)
	require.False(t, rec.Called())
}
