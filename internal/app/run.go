package app

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/woodgo/internal/build"
	"github.com/specialistvlad/woodgo/internal/ctxlog"
	"github.com/specialistvlad/woodgo/internal/project"
	"github.com/specialistvlad/woodgo/internal/variant"
)

// Run builds the project and prints the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	proj, err := project.New(a.fs, a.model)
	if err != nil {
		return err
	}

	var locales []variant.Locale
	for _, raw := range a.config.Locales {
		l, _ := variant.ParseLocale(raw)
		locales = append(locales, l)
	}

	report, err := build.Run(ctx, proj, build.Options{Workers: a.config.WorkerCount, Locales: locales})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if len(report.Pages) == 0 {
		a.logger.Warn("No pages found in project, nothing was built.")
	}

	printReport(a.outW, report)
	a.logger.Debug("App.Run method finished.")
	return nil
}

func printReport(w io.Writer, report *build.Report) {
	fmt.Fprintf(w, "project %s: %d pages, %d units\n", report.Project, len(report.Pages), len(report.Units))
	for _, u := range report.Units {
		fmt.Fprintf(w, "%s [%s] %d bytes\n", u.Page, u.Locale, len(u.Layout))
		for _, s := range u.Styles {
			media := s.Media
			if media == "" {
				media = "all"
			}
			fmt.Fprintf(w, "\t%s @media %s (weight %d)\n", s.Path.Name(), media, s.Weight)
		}
	}
}
