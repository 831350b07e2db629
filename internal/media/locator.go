// Package media locates the files addressed by image, audio and video
// references.
package media

import (
	"slices"

	"github.com/specialistvlad/woodgo/internal/fault"
	"github.com/specialistvlad/woodgo/internal/reference"
	"github.com/specialistvlad/woodgo/internal/variant"
	"github.com/specialistvlad/woodgo/internal/woodpath"
)

// Index lists the files directly inside a directory.
type Index interface {
	Files(dir woodpath.DirPath) []woodpath.FilePath
}

// Locator finds media files in a source directory and then in the asset
// directory.
type Locator struct {
	index         Index
	assetDir      woodpath.DirPath
	defaultLocale variant.Locale
}

// NewLocator creates a locator over index.
func NewLocator(index Index, assetDir woodpath.DirPath, defaultLocale variant.Locale) *Locator {
	return &Locator{index: index, assetDir: assetDir, defaultLocale: defaultLocale}
}

// Locate returns the file ref addresses for locale, searching below from and
// then below the asset directory. A file for the exact locale is preferred
// over a locale neutral one, which is preferred over the default locale.
func (l *Locator) Locate(locale variant.Locale, ref reference.Reference, from woodpath.DirPath) (woodpath.FilePath, error) {
	if ref.IsVariable() {
		return woodpath.FilePath{}, fault.New(fault.Grammar, ref.String(), "not a media reference")
	}

	var searched []woodpath.DirPath
	for _, base := range []woodpath.DirPath{from, l.assetDir} {
		if base.IsZero() {
			continue
		}
		dir, err := base.Join(ref.Path)
		if err != nil {
			return woodpath.FilePath{}, err
		}
		if slices.Contains(searched, dir) {
			continue
		}
		searched = append(searched, dir)

		if f, ok := l.pick(dir, locale, ref); ok {
			return f, nil
		}
	}
	return woodpath.FilePath{}, fault.New(fault.Resolution, ref.String(), "missing media file")
}

func (l *Locator) pick(dir woodpath.DirPath, locale variant.Locale, ref reference.Reference) (woodpath.FilePath, bool) {
	var (
		best     woodpath.FilePath
		bestRank = -1
	)
	for _, f := range l.index.Files(dir) {
		if f.Base() != ref.Name || !slices.Contains(ref.Kind.Extensions(), f.Ext()) {
			continue
		}
		rank := l.rank(f.Variants(), locale)
		if rank < 0 {
			continue
		}
		if bestRank < 0 || rank < bestRank || rank == bestRank && f.String() < best.String() {
			best, bestRank = f, rank
		}
	}
	return best, bestRank >= 0
}

// rank orders candidate variants; lower is better and -1 rejects.
func (l *Locator) rank(v variant.Set, locale variant.Locale) int {
	fileLocale := v.Locale
	v.Locale = variant.Locale{}
	if !v.IsEmpty() {
		return -1
	}
	switch {
	case !fileLocale.IsZero() && fileLocale == locale:
		return 0
	case fileLocale.IsZero():
		return 1
	case fileLocale == l.defaultLocale:
		return 2
	default:
		return -1
	}
}
