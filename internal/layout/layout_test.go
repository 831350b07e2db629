package layout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/woodgo/internal/ctxlog"
	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/operator"
	"github.com/specialistvlad/woodgo/internal/woodpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileSet is an in-memory woodpath.Checker over a list of files.
type fileSet map[string]bool

func (f fileSet) Exists(path string) bool { return f[path] }

func (f fileSet) IsDir(path string) bool {
	for p := range f {
		if strings.HasPrefix(p, path) {
			return true
		}
	}
	return false
}

func scan(t *testing.T, path, source string) *Descriptor {
	t.Helper()
	addressing, err := operator.Lookup(operator.XMLNS)
	require.NoError(t, err)
	d, err := Scan(woodpath.MustParseFile(path), strings.NewReader(source), addressing)
	require.NoError(t, err)
	return d
}

// buildRegistry scans every layout in sources and freezes a registry.
func buildRegistry(t *testing.T, sources map[string]string) *Registry {
	t.Helper()
	files := make(fileSet)
	for path := range sources {
		files[path] = true
	}
	b := NewRegistryBuilder(files)
	for path, source := range sources {
		require.NoError(t, b.Add(scan(t, path, source)))
	}
	r, err := b.Build()
	require.NoError(t, err)
	return r
}

func lookup(t *testing.T, r *Registry, path string) *Descriptor {
	t.Helper()
	d, ok := r.Lookup(woodpath.MustParseFile(path))
	require.True(t, ok, path)
	return d
}

func TestScan(t *testing.T) {
	d := scan(t, "res/page/index/index.htm", `
<body>
	<section wood:template="template/page#body">
		<h1 wood:template="template/page#title">Hello</h1>
		<nav wood:compo="widget/menu"></nav>
		<div wood:editable="sidebar"></div>
		<div wood:editable="sidebar"></div>
	</section>
</body>`)

	assert.True(t, d.HasBody)
	assert.Equal(t, []string{"sidebar"}, d.Editables)
	assert.Equal(t, []string{"body", "title"}, d.Templates)
	require.NotNil(t, d.Template)
	assert.Equal(t, "res/template/page#title", d.Template.String())
	assert.Equal(t, []woodpath.CompoPath{woodpath.MustParseCompo("widget/menu")}, d.Components)
	assert.Equal(t, "res/page/index/", d.Compo().String())
}

func TestScanFirstElementDecidesBody(t *testing.T) {
	d := scan(t, "res/a/a.htm", `<div><body></body></div>`)
	assert.False(t, d.HasBody)

	d = scan(t, "res/b/b.htm", `<!-- header --><BODY class="x"></BODY>`)
	assert.True(t, d.HasBody)

	d = scan(t, "res/c/c.htm", `<section wood:template="template/page#body"></section>`)
	assert.False(t, d.HasBody)
	assert.Equal(t, []string{"body"}, d.Templates, "markers on the first element count")
}

func TestScanAddressingSchemes(t *testing.T) {
	source := `<div data-editable="main" editable="plain"></div>`
	file := woodpath.MustParseFile("res/t/t.htm")

	data, err := operator.Lookup(operator.DataAttr)
	require.NoError(t, err)
	d, err := Scan(file, strings.NewReader(source), data)
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, d.Editables)

	plain, err := operator.Lookup(operator.Attr)
	require.NoError(t, err)
	d, err = Scan(file, strings.NewReader(source), plain)
	require.NoError(t, err)
	assert.Equal(t, []string{"plain"}, d.Editables)
}

func TestScanErrors(t *testing.T) {
	addressing := operator.NewNamespaced("wood")
	file := woodpath.MustParseFile("res/page/page.htm")

	_, err := Scan(file, strings.NewReader(`<body wood:template="template/page"></body>`), addressing)
	var e *fault.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, fault.Grammar, e.Kind)
	assert.Equal(t, "res/page/page.htm", e.File)

	_, err = Scan(file, strings.NewReader(`<div wood:template="a#x"></div><div wood:template="b#y"></div>`), addressing)
	assert.True(t, fault.Is(err, fault.Structural))
}

func TestRegistryResolve(t *testing.T) {
	r := buildRegistry(t, map[string]string{
		"res/template/page/page.htm": `<body><main wood:editable="body"></main></body>`,
		"res/widget/menu.htm":        `<ul></ul>`,
	})
	assert.Equal(t, 2, r.Len())

	first, err := r.Resolve(woodpath.MustParseCompo("template/page"), "")
	require.NoError(t, err)
	second, err := r.Resolve(woodpath.MustParseCompo("res/template/page/"), "")
	require.NoError(t, err)
	assert.Same(t, first, second)

	inline, err := r.Resolve(woodpath.MustParseCompo("widget/menu"), "")
	require.NoError(t, err)
	assert.Equal(t, "res/widget/menu.htm", inline.Path.String())

	_, err = r.Resolve(woodpath.MustParseCompo("widget/missing"), "res/x/x.htm")
	assert.True(t, fault.Is(err, fault.Resolution))
}

func TestRegistryBuildChecksComponents(t *testing.T) {
	files := fileSet{"res/page/page.htm": true}
	b := NewRegistryBuilder(files)
	require.NoError(t, b.Add(scan(t, "res/page/page.htm", `<body><div wood:compo="widget/gone"></div></body>`)))

	_, err := b.Build()
	var e *fault.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, fault.Resolution, e.Kind)
	assert.Equal(t, "res/page/page.htm", e.File)

	assert.Error(t, b.Add(scan(t, "res/page/page.htm", `<body></body>`)), "duplicate layout")
}

func TestClassify(t *testing.T) {
	r := buildRegistry(t, map[string]string{
		"res/template/page/page.htm": `<body><header></header><main wood:editable="body"></main></body>`,
		"res/template/app/app.htm":   `<div wood:template="template/page#body"><aside wood:editable="menu"></aside></div>`,
		"res/page/index/index.htm":   `<section wood:template="template/page#body"><h1>Index</h1></section>`,
		"res/page/admin/admin.htm":   `<section wood:template="template/app#menu"><ul></ul></section>`,
		"res/page/plain/plain.htm":   `<body><p>plain</p></body>`,
		"res/page/tpl/tpl.htm":       `<body><div wood:editable="sidebar"></div></body>`,
		"res/widget/card/card.htm":   `<div class="card"></div>`,
		"res/widget/frag/frag.htm":   `<div wood:template="template/card#body"></div>`,
		"res/template/card/card.htm": `<div><p wood:editable="body"></p></div>`,
	})
	c := NewClassifier(r)
	ctx := context.Background()

	testCases := []struct {
		layout   string
		expected bool
	}{
		{layout: "res/page/index/index.htm", expected: true},
		{layout: "res/page/admin/admin.htm", expected: true},
		{layout: "res/page/plain/plain.htm", expected: true},
		{layout: "res/page/tpl/tpl.htm", expected: false},
		{layout: "res/template/page/page.htm", expected: false},
		{layout: "res/template/app/app.htm", expected: false},
		{layout: "res/widget/card/card.htm", expected: false},
		{layout: "res/widget/frag/frag.htm", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.layout, func(t *testing.T) {
			page, err := c.IsPage(ctx, lookup(t, r, tc.layout))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, page)
		})
	}

	cl, err := c.Classify(ctx, lookup(t, r, "res/page/admin/admin.htm"))
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"body", "menu"}, cl.Editables); diff != "" {
		t.Errorf("editables mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, cl.Consistent)
}

func TestClassifyInconsistentHierarchyWarns(t *testing.T) {
	r := buildRegistry(t, map[string]string{
		"res/template/page/page.htm": `<body><main wood:editable="body"></main><aside wood:editable="unused"></aside></body>`,
		"res/page/index/index.htm":   `<section wood:template="template/page#body"></section>`,
	})

	var buf strings.Builder
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	cl, err := NewClassifier(r).Classify(ctx, lookup(t, r, "res/page/index/index.htm"))
	require.NoError(t, err)
	assert.True(t, cl.Page)
	assert.False(t, cl.Consistent)
	assert.Contains(t, buf.String(), "Inconsistent templates hierarchy.")
	assert.Contains(t, buf.String(), "res/page/index/index.htm")
}

func TestClassifyErrors(t *testing.T) {
	r := buildRegistry(t, map[string]string{
		"res/template/page/page.htm": `<body><main wood:editable="body"></main></body>`,
		"res/template/mid/mid.htm":   `<div wood:template="template/page#body"><p wood:editable="body"></p></div>`,
		"res/page/dup/dup.htm":       `<section wood:template="template/mid#body"></section>`,
		"res/page/unres/unres.htm":   `<section wood:template="template/page#footer"></section>`,
		"res/loop/a/a.htm":           `<div wood:template="loop/b#x"></div>`,
		"res/loop/b/b.htm":           `<div wood:template="loop/a#y"></div>`,
		"res/page/lost/lost.htm":     `<div wood:template="template/none#body"></div>`,
	})
	c := NewClassifier(r)
	ctx := context.Background()

	testCases := []struct {
		layout  string
		kind    fault.Kind
		message string
	}{
		{layout: "res/page/dup/dup.htm", kind: fault.Consistency, message: "editable overwritten"},
		{layout: "res/page/unres/unres.htm", kind: fault.Resolution, message: "unresolved templates"},
		{layout: "res/loop/a/a.htm", kind: fault.Consistency, message: "circular template references"},
		{layout: "res/loop/b/b.htm", kind: fault.Consistency, message: "circular template references"},
		{layout: "res/page/lost/lost.htm", kind: fault.Resolution, message: "missing component path"},
	}

	for _, tc := range testCases {
		t.Run(tc.layout, func(t *testing.T) {
			_, err := c.IsPage(ctx, lookup(t, r, tc.layout))
			require.Error(t, err)
			assert.True(t, fault.Is(err, tc.kind), err.Error())
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestClassifyDepthGuard(t *testing.T) {
	sources := map[string]string{
		"res/level/l0/l0.htm":     `<body><main wood:editable="e0"></main></body>`,
		"res/level/fit/fit.htm":   `<div wood:template="level/l5#e5"></div>`,
		"res/level/edge/edge.htm": `<div wood:template="level/l6#e6"></div>`,
		"res/level/deep/deep.htm": `<div wood:template="level/l7#e7"></div>`,
	}
	for i := 1; i < MaxTemplateDepth; i++ {
		sources[fmt.Sprintf("res/level/l%d/l%d.htm", i, i)] = fmt.Sprintf(
			`<div wood:template="level/l%d#e%d"><p wood:editable="e%d"></p></div>`, i-1, i-1, i)
	}
	r := buildRegistry(t, sources)
	c := NewClassifier(r)
	ctx := context.Background()

	testCases := []struct {
		name   string
		layout string
		legal  bool
	}{
		{name: "seven layouts", layout: "res/level/fit/fit.htm", legal: true},
		{name: "eight layouts ending at the root", layout: "res/level/edge/edge.htm"},
		{name: "nine layouts", layout: "res/level/deep/deep.htm"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := c.IsPage(ctx, lookup(t, r, tc.layout))
			if tc.legal {
				require.NoError(t, err)
				assert.True(t, page)
				return
			}
			require.Error(t, err)
			assert.True(t, fault.Is(err, fault.Consistency))
			assert.Contains(t, err.Error(), "circular template references suspicion")
		})
	}
}

func TestClassifyConcurrentCallersShareResult(t *testing.T) {
	r := buildRegistry(t, map[string]string{
		"res/template/page/page.htm": `<body><main wood:editable="body"></main></body>`,
		"res/page/index/index.htm":   `<section wood:template="template/page#body"></section>`,
	})
	c := NewClassifier(r)
	d := lookup(t, r, "res/page/index/index.htm")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page, err := c.IsPage(context.Background(), d)
			assert.NoError(t, err)
			assert.True(t, page)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.memo.Len())
}
