package build

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sort"

	"github.com/specialistvlad/woodgo/internal/ctxlog"
	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/layout"
	"github.com/specialistvlad/woodgo/internal/media"
	"github.com/specialistvlad/woodgo/internal/mediaquery"
	"github.com/specialistvlad/woodgo/internal/project"
	"github.com/specialistvlad/woodgo/internal/reference"
	"github.com/specialistvlad/woodgo/internal/variables"
	"github.com/specialistvlad/woodgo/internal/variant"
	"github.com/specialistvlad/woodgo/internal/woodpath"
	"golang.org/x/sync/errgroup"
)

// Options tune a build.
type Options struct {
	// Workers bounds the number of concurrent units; zero uses GOMAXPROCS.
	Workers int
	// Locales restricts the build to a subset of the project locales.
	Locales []variant.Locale
}

// StyleSheet is one expanded style file of a page.
type StyleSheet struct {
	Path    woodpath.FilePath
	Media   string
	Weight  uint64
	Content string
}

// Unit is one page compiled for one locale.
type Unit struct {
	Page   woodpath.FilePath
	Locale variant.Locale
	Layout string
	Styles []StyleSheet
}

// Report is the outcome of a build, sorted by page path and then by the
// order of the requested locales.
type Report struct {
	Project string
	Pages   []woodpath.FilePath
	Units   []Unit
}

// Run builds proj. The first failing unit cancels the others and its error
// is returned.
func Run(ctx context.Context, proj *project.Project, opts Options) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	locales, err := selectLocales(proj, opts.Locales)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger.Info("Build started.", "project", proj.Name(), "locales", len(locales), "workers", workers)

	scan, err := proj.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	pages, err := discoverPages(ctx, scan, workers)
	if err != nil {
		return nil, fmt.Errorf("page discovery failed: %w", err)
	}
	logger.Info("Pages discovered.", "count", len(pages))

	c := newCompiler(scan)
	units := make([]Unit, len(pages)*len(locales))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, page := range pages {
		for j, locale := range locales {
			slot := &units[i*len(locales)+j]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				unitCtx := ctxlog.With(gctx, "page", page.String(), "locale", locale.String())
				unit, err := c.compile(unitCtx, page, locale)
				if err != nil {
					return err
				}
				*slot = unit
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Build finished.", "pages", len(pages), "units", len(units))
	return &Report{Project: proj.Name(), Pages: pages, Units: units}, nil
}

// selectLocales validates the requested locales against the project.
func selectLocales(proj *project.Project, requested []variant.Locale) ([]variant.Locale, error) {
	if len(requested) == 0 {
		return proj.Locales(), nil
	}
	for _, l := range requested {
		if !slices.Contains(proj.Locales(), l) {
			return nil, fmt.Errorf("locale %q is not declared by project %q", l, proj.Name())
		}
	}
	return requested, nil
}

// discoverPages classifies every layout that is not excluded, in parallel,
// and returns the pages sorted by path.
func discoverPages(ctx context.Context, scan *project.Scan, workers int) ([]woodpath.FilePath, error) {
	proj := scan.Project()
	classifier := layout.NewClassifier(scan.Registry())

	var candidates []*layout.Descriptor
	for _, d := range scan.Registry().Layouts() {
		if proj.Excluded(d.Path.String()) {
			ctxlog.FromContext(ctx).Debug("Layout excluded.", "layout", d.Path.String())
			continue
		}
		candidates = append(candidates, d)
	}

	isPage := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range candidates {
		g.Go(func() error {
			page, err := classifier.IsPage(gctx, d)
			isPage[i] = page
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pages []woodpath.FilePath
	for i, d := range candidates {
		if isPage[i] {
			pages = append(pages, d.Path)
		}
	}
	return pages, nil
}

// compiler expands pages and their style sheets. It is shared by all units.
type compiler struct {
	scan     *project.Scan
	resolver *variables.Resolver
	locator  *media.Locator
}

func newCompiler(scan *project.Scan) *compiler {
	proj := scan.Project()
	c := &compiler{
		scan:    scan,
		locator: media.NewLocator(scan, proj.AssetDir(), proj.DefaultLocale()),
	}
	c.resolver = variables.NewResolver(scan.Assets(), scan.Theme(), proj.DefaultLocale(), c.locateMedia)
	return c
}

// locateMedia substitutes a media reference with the path of the file it
// addresses, searched from the directory of the file being built.
func (c *compiler) locateMedia(req variables.Request, ref reference.Reference) (string, error) {
	f, err := c.locator.Locate(req.Locale, ref, req.Source.Dir())
	if err != nil {
		return "", fault.Attribute(err, req.Source.String())
	}
	return f.String(), nil
}

func (c *compiler) compile(ctx context.Context, page woodpath.FilePath, locale variant.Locale) (Unit, error) {
	logger := ctxlog.FromContext(ctx)
	scope := c.scan.StoreFor(page.Dir())

	layoutText, err := c.expand(page, locale, scope)
	if err != nil {
		return Unit{}, err
	}

	table := c.scan.Project().MediaTable()
	var styles []StyleSheet
	for _, f := range c.scan.Files(page.Dir()) {
		if f.Kind() != woodpath.StyleFile || f.Base() != page.Base() {
			continue
		}
		if l := f.Variants().Locale; !l.IsZero() && l != locale {
			continue
		}
		content, err := c.expand(f, locale, scope)
		if err != nil {
			return Unit{}, err
		}
		expression, weight := mediaquery.Compute(f.Variants(), table)
		styles = append(styles, StyleSheet{Path: f, Media: expression, Weight: weight, Content: content})
	}
	sort.Slice(styles, func(i, j int) bool {
		a, b := styles[i], styles[j]
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		if a.Media != b.Media {
			return a.Media < b.Media
		}
		return a.Path.String() < b.Path.String()
	})

	logger.Debug("Unit compiled.", "styles", len(styles))
	return Unit{Page: page, Locale: locale, Layout: layoutText, Styles: styles}, nil
}

func (c *compiler) expand(file woodpath.FilePath, locale variant.Locale, scope *variables.Store) (string, error) {
	content, err := c.scan.Project().Read(file)
	if err != nil {
		return "", err
	}
	return c.resolver.Expand(variables.Request{Locale: locale, Source: file, Scope: scope}, content)
}
