package fsutil

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, name := range []string{
		"res/page/index.htm",
		"res/page/index.css",
		"res/compo/menu/menu.htm",
		"lib/util.js",
	} {
		require.NoError(t, afero.WriteFile(fsys, name, []byte("x"), 0o644))
	}

	t.Run("filters and sorts", func(t *testing.T) {
		files, err := FindFiles(fsys, "res", func(path string) bool { return strings.HasSuffix(path, ".htm") })
		require.NoError(t, err)
		assert.Equal(t, []string{"res/compo/menu/menu.htm", "res/page/index.htm"}, files)
	})

	t.Run("missing root", func(t *testing.T) {
		files, err := FindFiles(fsys, "gen", func(string) bool { return true })
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("nil filter panics", func(t *testing.T) {
		assert.Panics(t, func() { _, _ = FindFiles(fsys, "res", nil) })
	})
}
