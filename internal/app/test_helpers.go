package app

import (
	"os"
	"path"
	"testing"

	"github.com/specialistvlad/woodgo/internal/hcl_adapter"
	"github.com/specialistvlad/woodgo/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest creates a new app instance over an in-memory project built
// from files, for system testing.
func SetupAppTest(t *testing.T, appConfig *Config, files map[string]string) (*App, *testutil.SafeBuffer) {
	t.Helper()

	rooted := make(map[string]string, len(files))
	for name, content := range files {
		rooted[path.Join(appConfig.ProjectDir, name)] = content
	}
	fsys := testutil.ProjectFS(t, rooted)
	require.NoError(t, fsys.MkdirAll(appConfig.ProjectDir, 0o755))

	logBuffer := &testutil.SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp, err := NewApp(logBuffer, appConfig, hcl_adapter.NewLoader(), fsys)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("WOOD_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
