package variables

import (
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/reference"
	"github.com/specialistvlad/woodgo/internal/woodpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	local, assets, theme *Store
	resolver             *Resolver
}

func newFixture(t *testing.T, local, assets, theme map[string]string) *fixture {
	t.Helper()
	build := func(scope string, files map[string]string) *Store {
		b := NewBuilder(scope)
		for path, source := range files {
			load(t, b, path, source)
		}
		return b.Build()
	}
	f := &fixture{
		local:  build("res/page/", local),
		assets: build("res/asset/", assets),
		theme:  build("res/theme/", theme),
	}
	f.resolver = NewResolver(f.assets, f.theme, en, nil)
	return f
}

func (f *fixture) request() Request {
	return Request{Locale: en, Source: woodpath.MustParseFile("res/page/page.htm"), Scope: f.local}
}

func TestResolveLocaleFallbackInAssets(t *testing.T) {
	f := newFixture(t, nil, map[string]string{
		"res/asset/strings.xml": `<string><title>Title</title></string>`,
	}, nil)

	for _, locale := range []string{"en", "de", "ro"} {
		t.Run(locale, func(t *testing.T) {
			req := f.request()
			req.Locale.Language = locale

			v, err := f.resolver.Resolve(req, reference.MustParse("@string/title"))
			require.NoError(t, err)
			assert.Equal(t, "Title", v)
		})
	}
}

func TestResolveScopeCascade(t *testing.T) {
	f := newFixture(t,
		map[string]string{"res/page/strings.xml": `<string><both>local</both></string>`},
		map[string]string{"res/asset/strings.xml": `<string><both>asset</both><shared>asset</shared></string>`},
		map[string]string{"res/theme/strings.xml": `<string><shared>theme</shared><themed>theme</themed></string>`},
	)
	req := f.request()

	testCases := map[string]string{
		"@string/both":   "local",
		"@string/shared": "asset",
		"@string/themed": "theme",
	}
	for raw, expected := range testCases {
		v, err := f.resolver.Resolve(req, reference.MustParse(raw))
		require.NoError(t, err)
		assert.Equal(t, expected, v, raw)
	}

	// An asset source never consults its own scope twice but still sees the theme.
	assetReq := Request{Locale: en, Source: woodpath.MustParseFile("res/asset/site.css"), Scope: f.assets}
	v, err := f.resolver.Resolve(assetReq, reference.MustParse("@string/themed"))
	require.NoError(t, err)
	assert.Equal(t, "theme", v)

	// A theme source resolves against the theme alone.
	themeReq := Request{Locale: en, Source: woodpath.MustParseFile("res/theme/site.css"), Scope: f.theme}
	v, err = f.resolver.Resolve(themeReq, reference.MustParse("@string/shared"))
	require.NoError(t, err)
	assert.Equal(t, "theme", v)

	_, err = f.resolver.Resolve(themeReq, reference.MustParse("@string/both"))
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Resolution))
}

func TestResolveExactLocaleBeatsLocalDefault(t *testing.T) {
	f := newFixture(t,
		map[string]string{
			"res/page/strings.xml":    `<string><title>Local</title></string>`,
			"res/page/strings_de.xml": `<string><title>Lokal</title></string>`,
		},
		map[string]string{"res/asset/strings_ro.xml": `<string><title>Asset</title></string>`},
		nil,
	)
	req := f.request()

	req.Locale = de
	v, err := f.resolver.Resolve(req, reference.MustParse("@string/title"))
	require.NoError(t, err)
	assert.Equal(t, "Lokal", v)

	req.Locale = ro
	v, err = f.resolver.Resolve(req, reference.MustParse("@string/title"))
	require.NoError(t, err)
	assert.Equal(t, "Local", v, "the local default locale wins over the asset exact locale")
}

func TestResolveNested(t *testing.T) {
	f := newFixture(t,
		map[string]string{"res/page/strings.xml": `<string><greeting>Welcome to @string/site</greeting></string>`},
		map[string]string{
			"res/asset/strings.xml": `<string><site>WOOD</site></string>`,
			"res/asset/colors.xml":  `<color><accent>#f00</accent></color>`,
			"res/asset/styles.xml": `<style>
				<parent-name><margin>0</margin></parent-name>
				<title parent="parent-name"><color>@color/accent</color></title>
			</style>`,
		},
		nil,
	)
	req := f.request()

	v, err := f.resolver.Resolve(req, reference.MustParse("@string/greeting"))
	require.NoError(t, err)
	assert.Equal(t, "Welcome to WOOD", v)

	v, err = f.resolver.Resolve(req, reference.MustParse("@style/title"))
	require.NoError(t, err)
	assert.Equal(t, "margin: 0;\n\tcolor: #f00;", v)

	out, err := f.resolver.Expand(req, `<h1 style="@style/title">@string/greeting</h1><img src="@image/logo">`)
	require.NoError(t, err)
	assert.Equal(t, "<h1 style=\"margin: 0;\n\tcolor: #f00;\">Welcome to WOOD</h1><img src=\"@image/logo\">", out)
}

func TestResolveMediaCallback(t *testing.T) {
	f := newFixture(t, map[string]string{"res/page/strings.xml": `<string><hero>@image/hero</hero></string>`}, nil, nil)
	var seen []string
	resolver := NewResolver(f.assets, f.theme, en, func(req Request, ref reference.Reference) (string, error) {
		seen = append(seen, req.Source.String()+" "+ref.String())
		return "media/hero.png", nil
	})

	v, err := resolver.Resolve(f.request(), reference.MustParse("@string/hero"))
	require.NoError(t, err)
	assert.Equal(t, "media/hero.png", v)
	assert.Equal(t, []string{"res/page/page.htm @image/hero"}, seen)
}

func TestResolveMissing(t *testing.T) {
	f := newFixture(t, nil, map[string]string{"res/asset/strings.xml": `<string><title>T</title></string>`}, nil)

	_, err := f.resolver.Resolve(f.request(), reference.MustParse("@string/titel"))
	var e *fault.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, fault.Resolution, e.Kind)
	assert.Equal(t, "@string/titel", e.Subject)
	assert.Equal(t, "res/page/page.htm", e.File)
	assert.Equal(t, "title", e.Hint)

	_, err = f.resolver.Expand(f.request(), "@widget/x")
	require.ErrorAs(t, err, &e)
	assert.Equal(t, fault.Grammar, e.Kind)
	assert.Equal(t, "res/page/page.htm", e.File)
}

func TestResolveCycle(t *testing.T) {
	f := newFixture(t, map[string]string{
		"res/page/strings.xml": `<string><a>A then @string/b</a><b>B then @string/a</b><self>@string/self</self></string>`,
	}, nil, nil)

	for _, start := range []string{"@string/a", "@string/b", "@string/self"} {
		t.Run(start, func(t *testing.T) {
			_, err := f.resolver.Resolve(f.request(), reference.MustParse(start))
			var e *fault.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, fault.Consistency, e.Kind)
			assert.Contains(t, err.Error(), "circular variable references")
			require.NotEmpty(t, e.Trace)
			assert.Equal(t, "res/page/page.htm:"+start, e.Trace[0])
			assert.Equal(t, e.Trace[0], e.Trace[len(e.Trace)-1])
		})
	}
}

func TestResolveSharedReferenceIsNotACycle(t *testing.T) {
	f := newFixture(t, map[string]string{
		"res/page/strings.xml": `<string><name>WOOD</name><pair>@string/name and @string/name</pair></string>`,
	}, nil, nil)

	v, err := f.resolver.Resolve(f.request(), reference.MustParse("@string/pair"))
	require.NoError(t, err)
	assert.Equal(t, "WOOD and WOOD", v)
}

func TestResolveConcurrentRequestsKeepPrivateTraces(t *testing.T) {
	f := newFixture(t, map[string]string{
		"res/page/strings.xml": `<string><leaf>x</leaf><mid>@string/leaf@string/leaf</mid><top>@string/mid:@string/mid</top></string>`,
	}, nil, nil)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.resolver.Resolve(f.request(), reference.MustParse("@string/top"))
			assert.NoError(t, err)
			assert.Equal(t, "xx:xx", v)
		}()
	}
	wg.Wait()
	assert.Empty(t, f.request().Trace())
}

func TestRequestPushDoesNotAlias(t *testing.T) {
	base := Request{}.push("a")
	left := base.push("b")
	right := base.push("c")

	assert.Equal(t, []string{"a", "b"}, left.Trace())
	assert.Equal(t, []string{"a", "c"}, right.Trace())
	assert.Equal(t, "a", strings.Join(base.Trace(), ","))
}

func TestExpandKeepsEscapedReferences(t *testing.T) {
	f := newFixture(t, map[string]string{
		"res/page/strings.xml": `<string><title>T</title><hint>type @@string/title to insert it</hint></string>`,
	}, nil, nil)
	req := f.request()

	out, err := f.resolver.Expand(req, "<h1>@@string/title</h1><p>@string/title</p>")
	require.NoError(t, err)
	assert.Equal(t, "<h1>@string/title</h1><p>T</p>", out)

	v, err := f.resolver.Resolve(req, reference.MustParse("@string/hint"))
	require.NoError(t, err)
	assert.Equal(t, "type @string/title to insert it", v)
}
