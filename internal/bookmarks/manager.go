// Package bookmarks runs the add, list and remove batches over the link and
// resource stores.
//
// Batches are processed sequentially in input order. A failing item never
// aborts the batch: it is recorded in the report and the loop moves on.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/bm/internal/domain"
	"github.com/MrSnakeDoc/bm/internal/fetcher"
	"github.com/MrSnakeDoc/bm/internal/logger"
	"github.com/MrSnakeDoc/bm/internal/store/links"
	"github.com/MrSnakeDoc/bm/internal/store/resources"
)

// ErrNoStore is returned by RemoveLinks when the links directory is missing.
var ErrNoStore = links.ErrNoStore

// Manager coordinates the fetcher and both stores.
type Manager struct {
	fetcher   fetcher.Fetcher
	links     *links.Store
	resources *resources.Store
	logger    logger.Logger
	now       func() time.Time
}

// NewManager wires a manager. now defaults to time.Now when nil.
func NewManager(f fetcher.Fetcher, ls *links.Store, rs *resources.Store, log logger.Logger, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		fetcher:   f,
		links:     ls,
		resources: rs,
		logger:    log,
		now:       now,
	}
}

// Links returns the link store.
func (m *Manager) Links() *links.Store { return m.links }

// Resources returns the resource store.
func (m *Manager) Resources() *resources.Store { return m.resources }

// ─────────────────────────────────────────────────────────────────
// Links
// ─────────────────────────────────────────────────────────────────

// AddLinks fetches each URL and writes one document per URL. A document
// whose file name already exists is skipped.
func (m *Manager) AddLinks(ctx context.Context, urls []string, tags []string) AddReport {
	report := AddReport{Results: make([]AddResult, 0, len(urls))}
	date := m.now()

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			report.add(AddResult{URL: u, Status: StatusFailed, Error: err.Error()})
			continue
		}

		meta, err := m.fetcher.Fetch(ctx, u)
		if err != nil {
			m.logger.Debug("fetch failed", logger.String("url", u), logger.Error(err))
			report.add(AddResult{URL: u, Status: StatusFailed, Error: err.Error()})
			continue
		}

		link, err := m.links.Create(domain.NewLink(u, meta, tags, date))
		switch {
		case errors.Is(err, links.ErrExists):
			report.add(AddResult{URL: u, Status: StatusSkipped, Title: link.Title, File: link.File, Error: err.Error()})
		case err != nil:
			report.add(AddResult{URL: u, Status: StatusFailed, Title: link.Title, Error: err.Error()})
		default:
			m.logger.Info("link created", logger.String("url", u), logger.String("file", link.File))
			report.add(AddResult{URL: u, Status: StatusCreated, Title: link.Title, File: link.File})
		}
	}

	return report
}

// ListLinks returns every link of the store, sorted by file name.
func (m *Manager) ListLinks() ([]domain.Link, error) {
	return m.links.List()
}

// RemoveLinks deletes, for each target, every document matching it by file
// name, slug or URL. It fails with ErrNoStore when there is no links
// directory at all.
func (m *Manager) RemoveLinks(targets []string) (RemoveReport, error) {
	ok, err := m.links.Exists()
	if err != nil {
		return RemoveReport{}, err
	}
	if !ok {
		return RemoveReport{}, ErrNoStore
	}

	current, err := m.links.List()
	if err != nil {
		return RemoveReport{}, err
	}

	report := RemoveReport{Results: make([]RemoveResult, 0, len(targets))}
	gone := make(map[string]bool)

	for _, target := range targets {
		res := RemoveResult{Target: target, Removed: []string{}}
		for _, link := range current {
			if gone[link.File] || !m.links.Matches(link, target) {
				continue
			}
			if err := m.links.Delete(link.File); err != nil {
				res.Error = err.Error()
				continue
			}
			gone[link.File] = true
			res.Removed = append(res.Removed, link.File)
			report.Removed++
		}
		report.Results = append(report.Results, res)
	}

	return report, nil
}

// ─────────────────────────────────────────────────────────────────
// Resources
// ─────────────────────────────────────────────────────────────────

// AddResources appends one resource per URL not already in the collection.
// Duplicates are detected before fetching, and pages are fetched without
// holding the store lock. The file is only rewritten when at least one
// resource was added.
func (m *Manager) AddResources(ctx context.Context, urls []string, note string) (AddReport, error) {
	report := AddReport{Results: make([]AddResult, 0, len(urls))}

	current, err := m.resources.Load()
	if err != nil {
		return report, err
	}

	seen := make(map[string]bool, len(current)+len(urls))
	for _, r := range current {
		seen[r.URL] = true
	}

	type pending struct {
		result   int
		resource domain.Resource
	}
	var fresh []pending

	for _, u := range urls {
		if seen[u] {
			report.add(AddResult{URL: u, Status: StatusSkipped, Error: resources.ErrExists.Error()})
			continue
		}
		if err := ctx.Err(); err != nil {
			report.add(AddResult{URL: u, Status: StatusFailed, Error: err.Error()})
			continue
		}

		meta, err := m.fetcher.Fetch(ctx, u)
		if err != nil {
			m.logger.Debug("fetch failed", logger.String("url", u), logger.Error(err))
			report.add(AddResult{URL: u, Status: StatusFailed, Error: err.Error()})
			continue
		}

		seen[u] = true
		fresh = append(fresh, pending{
			result:   len(report.Results),
			resource: domain.Resource{Title: meta.Title, URL: u, Note: note},
		})
		report.add(AddResult{URL: u, Status: StatusCreated, Title: meta.Title})
	}

	if len(fresh) == 0 {
		report.Total = len(current)
		return report, nil
	}

	err = m.resources.Update(func(latest []domain.Resource) ([]domain.Resource, bool, error) {
		added := 0
		for _, p := range fresh {
			// another process may have stored it since the first read
			if containsURL(latest, p.resource.URL) {
				report.Results[p.result].Status = StatusSkipped
				report.Results[p.result].Error = resources.ErrExists.Error()
				report.Created--
				report.Failed++
				continue
			}
			latest = append(latest, p.resource)
			added++
		}
		report.Total = len(latest)
		return latest, added > 0, nil
	})
	if err != nil {
		return report, fmt.Errorf("failed to update resources: %w", err)
	}
	return report, nil
}

// ListResources returns the collection in file order.
func (m *Manager) ListResources() ([]domain.Resource, error) {
	return m.resources.Load()
}

// RemoveResources deletes, for each target, every entry whose URL equals it
// or whose title contains it (case-insensitive). Survivors keep their order.
// The store is left untouched when no target matches.
func (m *Manager) RemoveResources(targets []string) (RemoveReport, error) {
	current, err := m.resources.Load()
	if err != nil {
		return RemoveReport{}, err
	}
	if _, report := removeMatching(current, targets); report.Removed == 0 {
		return report, nil
	}

	var report RemoveReport
	err = m.resources.Update(func(latest []domain.Resource) ([]domain.Resource, bool, error) {
		var kept []domain.Resource
		kept, report = removeMatching(latest, targets)
		return kept, report.Removed > 0, nil
	})
	if err != nil {
		return report, fmt.Errorf("failed to update resources: %w", err)
	}
	return report, nil
}

func removeMatching(current []domain.Resource, targets []string) ([]domain.Resource, RemoveReport) {
	report := RemoveReport{Results: make([]RemoveResult, 0, len(targets))}
	for _, target := range targets {
		res := RemoveResult{Target: target, Removed: []string{}}
		kept := current[:0:0]
		for _, r := range current {
			if r.Matches(target) {
				res.Removed = append(res.Removed, r.Title)
				continue
			}
			kept = append(kept, r)
		}
		current = kept
		report.Removed += len(res.Removed)
		report.Results = append(report.Results, res)
	}
	return current, report
}

func containsURL(rs []domain.Resource, url string) bool {
	for _, r := range rs {
		if r.URL == url {
			return true
		}
	}
	return false
}
