package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/marvinyane/aidl-upstream/manifest"
	"github.com/marvinyane/aidl-upstream/typespace"
)

func TestLoad_RegistersInterfacesAndParcelables(t *testing.T) {
	content := []byte(`// preprocessed manifest
interface com.z.IFoo;
parcelable com.z.Bar;

interface com.w.IBaz;
`)
	ns := typespace.NewNativeNamespace()
	require.NoError(t, manifest.Load("out/preprocessed.aidl", content, ns))
	require.True(t, ns.Has("com.z.IFoo"))
	require.True(t, ns.Has("com.z.Bar"))
	require.True(t, ns.Has("com.w.IBaz"))
}

func TestLoad_CountsEveryPhysicalLine(t *testing.T) {
	content := []byte("// header\n\ninterface com.z.IFoo;\n")
	ns := typespace.NewNativeNamespace()
	require.NoError(t, manifest.Load("out/preprocessed.aidl", content, ns))
	for _, e := range ns.Entries() {
		if e.CanonicalName == "com.z.IFoo" {
			require.Equal(t, "out/preprocessed.aidl", e.File)
			require.Equal(t, 3, e.Line)
		}
	}
}

func TestLoad_UnknownKindIsError(t *testing.T) {
	ns := typespace.NewNativeNamespace()
	err := manifest.Load("p.aidl", []byte("struct com.z.Foo;\n"), ns)
	require.ErrorIs(t, err, manifest.ErrUnknownKind)
}

func TestLoad_MalformedLineIsError(t *testing.T) {
	ns := typespace.NewNativeNamespace()
	err := manifest.Load("p.aidl", []byte("interface\n"), ns)
	require.ErrorIs(t, err, manifest.ErrMalformedLine)
}

func TestWrite_RoundTripsInCanonicalOrder(t *testing.T) {
	archive := txtar.Parse([]byte(`
-- a.aidl --
interface com.z.IFoo;
-- b.aidl --
parcelable com.a.Bar;
`))
	ns := typespace.NewNativeNamespace()
	for _, f := range archive.Files {
		require.NoError(t, manifest.Load(f.Name, f.Data, ns))
	}

	out := manifest.Write(ns)
	reloaded := typespace.NewNativeNamespace()
	require.NoError(t, manifest.Load("reloaded.aidl", out, reloaded))
	require.True(t, reloaded.Has("com.z.IFoo"))
	require.True(t, reloaded.Has("com.a.Bar"))

	require.Equal(t, string(out), string(manifest.Write(reloaded)))
}
