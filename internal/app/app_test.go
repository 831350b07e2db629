package app

import (
	"context"
	"maps"
	"strings"
	"testing"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/hcl_adapter"
	"github.com/specialistvlad/woodgo/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteDescriptor = `
project "site" {
  locales = ["en", "de"]
}
`

func siteFiles(descriptor string) map[string]string {
	files := maps.Clone(testutil.Site)
	if descriptor != "" {
		files[DefaultConfigFile] = descriptor
	}
	return files
}

func TestAppRun(t *testing.T) {
	cfg, err := NewConfig(Config{ProjectDir: "/site", WorkerCount: 2})
	require.NoError(t, err)
	testApp, out := SetupAppTest(t, cfg, siteFiles(siteDescriptor))

	require.NoError(t, testApp.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "project site: 2 pages, 4 units")
	assert.Contains(t, output, "res/page/index/index.htm [de]")
	assert.Contains(t, output, "\tindex.css @media all (weight 1)\n")
	assert.Contains(t, output, "\tindex_lgd.css @media ( min-width: 1200px ) (weight 4)\n")
	assert.Contains(t, output, "Project descriptor loaded.")
}

func TestAppRunSelectedLocale(t *testing.T) {
	cfg, err := NewConfig(Config{ProjectDir: "/site", Locales: []string{"de"}})
	require.NoError(t, err)
	testApp, out := SetupAppTest(t, cfg, siteFiles(siteDescriptor))

	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, out.String(), "project site: 2 pages, 2 units")
	assert.NotContains(t, out.String(), "[en]")
}

func TestAppRunWithoutDescriptorUsesDefaults(t *testing.T) {
	cfg, err := NewConfig(Config{ProjectDir: "/site"})
	require.NoError(t, err)
	testApp, out := SetupAppTest(t, cfg, siteFiles(""))

	assert.Equal(t, []string{"en"}, testApp.Model().Locales)
	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, out.String(), ": 2 pages, 2 units")
}

func TestAppRunEmptyProjectWarns(t *testing.T) {
	cfg, err := NewConfig(Config{ProjectDir: "/site"})
	require.NoError(t, err)
	testApp, out := SetupAppTest(t, cfg, nil)

	require.NoError(t, testApp.Run(context.Background()))
	assert.Contains(t, out.String(), "No pages found in project")
}

func TestAppRunBuildError(t *testing.T) {
	cfg, err := NewConfig(Config{ProjectDir: "/site"})
	require.NoError(t, err)
	files := siteFiles("")
	files["res/page/about/about.htm"] = "<body>@string/missing</body>"
	testApp, _ := SetupAppTest(t, cfg, files)

	err = testApp.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "build failed: "))
	assert.True(t, fault.Is(err, fault.Resolution))
}

func TestNewApp(t *testing.T) {
	t.Run("missing project directory", func(t *testing.T) {
		cfg, err := NewConfig(Config{ProjectDir: "/nowhere"})
		require.NoError(t, err)
		_, err = NewApp(&testutil.SafeBuffer{}, cfg, hcl_adapter.NewLoader(), afero.NewMemMapFs())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("broken descriptor", func(t *testing.T) {
		fsys := testutil.ProjectFS(t, map[string]string{"/site/project.hcl": `project "x" {`})
		cfg, err := NewConfig(Config{ProjectDir: "/site"})
		require.NoError(t, err)
		_, err = NewApp(&testutil.SafeBuffer{}, cfg, hcl_adapter.NewLoader(), fsys)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load project descriptor")
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		message string
	}{
		{name: "valid", cfg: Config{ProjectDir: "."}},
		{name: "no project", cfg: Config{}, message: "ProjectDir is a required"},
		{name: "absolute config file", cfg: Config{ProjectDir: ".", ConfigFile: "/etc/project.hcl"}, message: "must be relative"},
		{name: "bad locale", cfg: Config{ProjectDir: ".", Locales: []string{"EN_us"}}, message: `invalid locale "EN_us"`},
		{name: "negative workers", cfg: Config{ProjectDir: ".", WorkerCount: -1}, message: "cannot be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.message == "" {
				require.NoError(t, err)
				assert.Equal(t, DefaultConfigFile, cfg.ConfigFile)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestNewLogger(t *testing.T) {
	out := &testutil.SafeBuffer{}
	logger, err := newLogger("WARN", "json", out)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
	assert.Contains(t, out.String(), `"k":"v"`)

	out = &testutil.SafeBuffer{}
	logger, err = newLogger("", "", out)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "msg=shown")
}

func TestNewLoggerRejectsUnknownSettings(t *testing.T) {
	testCases := []struct {
		name    string
		level   string
		format  string
		message string
	}{
		{name: "level", level: "verbose", message: `invalid log level "verbose"`},
		{name: "format", format: "xml", message: `invalid log format "xml"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newLogger(tc.level, tc.format, &testutil.SafeBuffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}

	cfg, err := NewConfig(Config{ProjectDir: "/site", LogLevel: "loud"})
	require.NoError(t, err)
	_, err = NewApp(&testutil.SafeBuffer{}, cfg, hcl_adapter.NewLoader(), afero.NewMemMapFs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
