package confkit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("COINWATCH_ETC", "/opt/coinwatch/etc")

	tests := []struct {
		name string
		base string
		file string
		want string
	}{
		{name: "absolute", base: "/base", file: "/abs/pricesource.yaml", want: "/abs/pricesource.yaml"},
		{name: "relative", base: "/base/etc", file: "pricesource.yaml", want: "/base/etc/pricesource.yaml"},
		{name: "env absolute", base: "/base", file: "${COINWATCH_ETC}/pricesource.yaml", want: "/opt/coinwatch/etc/pricesource.yaml"},
		{name: "parent dir", base: "/base/etc", file: "../pricesource.yaml", want: "/base/pricesource.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolvePath(tt.base, tt.file))
		})
	}
}

func TestSectionHydrate(t *testing.T) {
	t.Run("empty file is a no-op", func(t *testing.T) {
		s := &Section[string]{}
		err := s.Hydrate("/base", func(string) (*string, error) {
			t.Fatal("loader must not run for an empty section")
			return nil, nil
		})
		require.NoError(t, err)
		require.Nil(t, s.Value)
	})

	t.Run("resolves and stores value", func(t *testing.T) {
		s := &Section[string]{File: "pricesource.yaml"}
		want := "loaded"
		err := s.Hydrate("/etc/coinwatch", func(p string) (*string, error) {
			require.Equal(t, "/etc/coinwatch/pricesource.yaml", p)
			return &want, nil
		})
		require.NoError(t, err)
		require.Equal(t, &want, s.Value)
		require.Equal(t, "/etc/coinwatch/pricesource.yaml", s.File)
	})

	t.Run("loader error is returned", func(t *testing.T) {
		s := &Section[string]{File: "missing.yaml"}
		boom := errors.New("boom")
		err := s.Hydrate("/x", func(string) (*string, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
		require.Nil(t, s.Value)
		require.Equal(t, "missing.yaml", s.File)
	})
}

func TestAncestors(t *testing.T) {
	require.Equal(t, []string{"/a/b/c", "/a/b", "/a", "/"}, ancestors("/a/b/c"))
	require.Len(t, ancestors("/1/2/3/4/5/6/7/8/9/10"), maxRootDepth)
}

func TestProjectRootContainsGoMod(t *testing.T) {
	root, err := ProjectRoot()
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(root, "go.mod"))
	require.NoError(t, statErr)
	require.Equal(t, filepath.Join(root, "etc", "pricesource.yaml"), MustProjectPath("etc/pricesource.yaml"))
}
