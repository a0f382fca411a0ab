// Package cli implements the bm command line: argument parsing, dispatch
// to the bookmark manager and the console report.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/MrSnakeDoc/bm/internal/bookmarks"
)

// ErrUsage is returned after the usage text was printed.
var ErrUsage = errors.New("usage")

const usage = `Usage:
  bm <url>... [--tags tag1,tag2]
  bm list [--table]
  bm remove <url-or-slug>...

  bm --perl <url>... [--note "description"]
  bm --perl list [--table]
  bm --perl remove <url-or-title>...

  bm serve
  bm version`

// Runner executes parsed invocations and prints the report. Successes go to
// out, skips, errors and usage to errOut.
type Runner struct {
	manager *bookmarks.Manager
	out     io.Writer
	errOut  io.Writer
}

// NewRunner creates a runner writing to out and errOut.
func NewRunner(m *bookmarks.Manager, out, errOut io.Writer) *Runner {
	return &Runner{manager: m, out: out, errOut: errOut}
}

// Run dispatches args. Per-item failures are reported, not returned: the
// only errors are ErrUsage and fatal setup errors.
func (r *Runner) Run(ctx context.Context, args Args) error {
	if args.Action == ActionList {
		if args.Perl {
			return r.listResources(args.Table)
		}
		return r.listLinks(args.Table)
	}

	if len(args.Positional) == 0 {
		fmt.Fprintln(r.errOut, usage)
		return ErrUsage
	}

	switch {
	case args.Action == ActionRemove && args.Perl:
		return r.removeResources(args.Positional)
	case args.Action == ActionRemove:
		return r.removeLinks(args.Positional)
	case args.Perl:
		return r.addResources(ctx, args.Positional, args.Note)
	default:
		r.addLinks(ctx, args.Positional, args.Tags)
		return nil
	}
}

func (r *Runner) addLinks(ctx context.Context, urls, tags []string) {
	report := r.manager.AddLinks(ctx, urls, tags)
	dir := r.manager.Links().Dir()

	for _, res := range report.Results {
		switch res.Status {
		case bookmarks.StatusCreated:
			fmt.Fprintf(r.out, "[ok]   %s → %s\n", res.URL, filepath.ToSlash(filepath.Join(dir, res.File)))
			fmt.Fprintf(r.out, "       title: %s\n", res.Title)
		case bookmarks.StatusSkipped:
			fmt.Fprintf(r.errOut, "[skip] %s — %s\n", res.URL, res.Error)
		default:
			fmt.Fprintf(r.errOut, "[err]  %s — %s\n", res.URL, res.Error)
		}
	}

	if len(urls) > 1 {
		fmt.Fprintf(r.out, "\nDone: %d created, %d failed\n", report.Created, report.Failed)
	}
}

func (r *Runner) addResources(ctx context.Context, urls []string, note string) error {
	report, err := r.manager.AddResources(ctx, urls, note)
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		switch res.Status {
		case bookmarks.StatusCreated:
			fmt.Fprintf(r.out, "[ok]   %s\n", res.URL)
			fmt.Fprintf(r.out, "       title: %s\n", res.Title)
		case bookmarks.StatusSkipped:
			fmt.Fprintf(r.errOut, "[skip] %s — %s\n", res.URL, res.Error)
		default:
			fmt.Fprintf(r.errOut, "[err]  %s — %s\n", res.URL, res.Error)
		}
	}

	if len(urls) > 1 {
		fmt.Fprintf(r.out, "\nDone: %d created, %d failed (%d total)\n", report.Created, report.Failed, report.Total)
	}
	return nil
}

func (r *Runner) removeLinks(targets []string) error {
	report, err := r.manager.RemoveLinks(targets)
	if err != nil {
		return err
	}
	r.printRemoved(report, len(targets))
	return nil
}

func (r *Runner) removeResources(targets []string) error {
	report, err := r.manager.RemoveResources(targets)
	if err != nil {
		return err
	}
	r.printRemoved(report, len(targets))
	return nil
}

func (r *Runner) printRemoved(report bookmarks.RemoveReport, targets int) {
	for _, res := range report.Results {
		if res.Error != "" {
			fmt.Fprintf(r.errOut, "[err]  %s — %s\n", res.Target, res.Error)
		}
		if !res.Found() {
			if res.Error == "" {
				fmt.Fprintf(r.errOut, "[skip] %s — not found\n", res.Target)
			}
			continue
		}
		for _, name := range res.Removed {
			fmt.Fprintf(r.out, "[ok]   removed %s\n", name)
		}
	}

	if targets > 1 {
		fmt.Fprintf(r.out, "\nDone: %d removed\n", report.Removed)
	}
}

func (r *Runner) listLinks(table bool) error {
	all, err := r.manager.ListLinks()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(r.out, "No links yet.")
		return nil
	}

	if table {
		renderLinksTable(r.out, all)
	} else {
		for _, l := range all {
			fmt.Fprintf(r.out, "%s\n  %s\n\n", l.Title, l.URL)
		}
	}
	fmt.Fprintf(r.out, "%d links\n", len(all))
	return nil
}

func (r *Runner) listResources(table bool) error {
	all, err := r.manager.ListResources()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(r.out, "No perl resources yet.")
		return nil
	}

	if table {
		renderResourcesTable(r.out, all)
	} else {
		for _, res := range all {
			fmt.Fprintf(r.out, "%s\n  %s\n", res.Title, res.URL)
			if res.Note != "" {
				fmt.Fprintf(r.out, "  %s\n", res.Note)
			}
			fmt.Fprintln(r.out)
		}
	}
	fmt.Fprintf(r.out, "%d resources\n", len(all))
	return nil
}
