package bookmarks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bm/internal/domain"
	"github.com/MrSnakeDoc/bm/internal/logger"
	"github.com/MrSnakeDoc/bm/internal/store/links"
	"github.com/MrSnakeDoc/bm/internal/store/resources"
)

// stubFetcher serves canned metadata per URL and records calls.
type stubFetcher struct {
	pages map[string]domain.PageMeta
	calls []string
}

func (s *stubFetcher) Fetch(_ context.Context, u string) (domain.PageMeta, error) {
	s.calls = append(s.calls, u)
	meta, ok := s.pages[u]
	if !ok {
		return domain.PageMeta{}, errors.New("failed to fetch: connection refused")
	}
	return meta, nil
}

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newTestManager(t *testing.T, pages map[string]domain.PageMeta) (*Manager, *stubFetcher) {
	t.Helper()
	root := t.TempDir()
	f := &stubFetcher{pages: pages}
	m := NewManager(
		f,
		links.NewStore(filepath.Join(root, "src", "content", "links"), ".mdx"),
		resources.NewStore(filepath.Join(root, "perl", "resources.json")),
		logger.Nop(),
		func() time.Time { return fixedNow },
	)
	return m, f
}

func TestAddLinkScenario(t *testing.T) {
	m, _ := newTestManager(t, map[string]domain.PageMeta{
		"https://example.com": {Title: "Example"},
	})

	report := m.AddLinks(context.Background(), []string{"https://example.com"}, nil)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusCreated, report.Results[0].Status)
	assert.Equal(t, "example.mdx", report.Results[0].File)

	content, err := os.ReadFile(filepath.Join(m.Links().Dir(), "example.mdx"))
	require.NoError(t, err)
	assert.Equal(t, "---\n"+
		"url: \"https://example.com\"\n"+
		"title: \"Example\"\n"+
		"description: \"\"\n"+
		"date: 2026-10-19\n"+
		"---\n", string(content))
}

func TestAddLinksDuplicateInOneBatch(t *testing.T) {
	m, f := newTestManager(t, map[string]domain.PageMeta{
		"https://a.com": {Title: "A site", Description: "desc"},
	})

	report := m.AddLinks(context.Background(), []string{"https://a.com", "https://a.com"}, []string{"x"})

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, StatusSkipped, report.Results[1].Status)
	assert.Equal(t, "a-site.mdx already exists", report.Results[1].Error)
	assert.Len(t, f.calls, 2)

	entries, err := os.ReadDir(m.Links().Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddLinksIsolatesFailures(t *testing.T) {
	m, _ := newTestManager(t, map[string]domain.PageMeta{
		"https://ok.com":    {Title: "OK"},
		"https://later.com": {Title: "Later"},
	})

	report := m.AddLinks(context.Background(), []string{"https://ok.com", "https://down.com", "https://later.com"}, nil)

	require.Len(t, report.Results, 3)
	assert.Equal(t, StatusCreated, report.Results[0].Status)
	assert.Equal(t, StatusFailed, report.Results[1].Status)
	assert.Contains(t, report.Results[1].Error, "connection refused")
	assert.Equal(t, StatusCreated, report.Results[2].Status)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Failed)
}

func TestAddLinksSameURLDifferentTitle(t *testing.T) {
	m, f := newTestManager(t, map[string]domain.PageMeta{"https://a.com": {Title: "Old"}})
	m.AddLinks(context.Background(), []string{"https://a.com"}, nil)

	f.pages["https://a.com"] = domain.PageMeta{Title: "New"}
	report := m.AddLinks(context.Background(), []string{"https://a.com"}, nil)

	// Identity is the file name, so a retitled page is stored twice.
	assert.Equal(t, 1, report.Created)
	all, err := m.ListLinks()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRemoveLinksByURL(t *testing.T) {
	m, f := newTestManager(t, map[string]domain.PageMeta{
		"https://a.com":  {Title: "First"},
		"https://b.com":  {Title: "Other"},
		"https://a.com/": {Title: "Slash"},
	})
	m.AddLinks(context.Background(), []string{"https://a.com", "https://b.com", "https://a.com/"}, nil)
	f.pages["https://a.com"] = domain.PageMeta{Title: "Second"}
	m.AddLinks(context.Background(), []string{"https://a.com"}, nil)

	report, err := m.RemoveLinks([]string{"https://a.com"})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Removed)
	assert.ElementsMatch(t, []string{"first.mdx", "second.mdx"}, report.Results[0].Removed)

	left, err := m.ListLinks()
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, "other.mdx", left[0].File)
	assert.Equal(t, "slash.mdx", left[1].File)
}

func TestRemoveLinksBySlugAndFile(t *testing.T) {
	m, _ := newTestManager(t, map[string]domain.PageMeta{
		"https://a.com": {Title: "Alpha"},
		"https://b.com": {Title: "Beta"},
	})
	m.AddLinks(context.Background(), []string{"https://a.com", "https://b.com"}, nil)

	report, err := m.RemoveLinks([]string{"alpha", "beta.mdx", "alpha", "nonexistent-slug"})
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.Equal(t, []string{"alpha.mdx"}, report.Results[0].Removed)
	assert.Equal(t, []string{"beta.mdx"}, report.Results[1].Removed)
	assert.False(t, report.Results[2].Found(), "already removed file matched again")
	assert.False(t, report.Results[3].Found())
	assert.Equal(t, 2, report.Removed)
}

func TestRemoveLinksWithoutStore(t *testing.T) {
	m, _ := newTestManager(t, nil)

	_, err := m.RemoveLinks([]string{"anything"})
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestAddResourceScenario(t *testing.T) {
	m, _ := newTestManager(t, map[string]domain.PageMeta{
		"https://p.org": {Title: "Perl Tutorial", Description: "ignored"},
	})

	report, err := m.AddResources(context.Background(), []string{"https://p.org"}, "great tutorial")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Total)

	data, err := os.ReadFile(m.Resources().Path())
	require.NoError(t, err)
	assert.Equal(t, "[\n"+
		"    {\n"+
		"        \"title\": \"Perl Tutorial\",\n"+
		"        \"url\": \"https://p.org\",\n"+
		"        \"note\": \"great tutorial\"\n"+
		"    }\n"+
		"]\n", string(data))
}

func TestAddResourcesDuplicateURL(t *testing.T) {
	m, f := newTestManager(t, map[string]domain.PageMeta{
		"https://p.org": {Title: "P"},
		"https://q.org": {Title: "Q"},
	})
	_, err := m.AddResources(context.Background(), []string{"https://p.org"}, "")
	require.NoError(t, err)

	report, err := m.AddResources(context.Background(), []string{"https://p.org", "https://q.org", "https://q.org"}, "")
	require.NoError(t, err)

	assert.Equal(t, StatusSkipped, report.Results[0].Status)
	assert.Equal(t, "already exists", report.Results[0].Error)
	assert.Equal(t, StatusCreated, report.Results[1].Status)
	assert.Equal(t, StatusSkipped, report.Results[2].Status)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 2, report.Total)
	// Duplicates are detected without fetching.
	assert.Equal(t, []string{"https://p.org", "https://q.org"}, f.calls)

	all, err := m.ListResources()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddResourcesNothingAddedLeavesFileAlone(t *testing.T) {
	m, _ := newTestManager(t, nil)

	report, err := m.AddResources(context.Background(), []string{"https://down.org"}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)

	assert.NoFileExists(t, m.Resources().Path())
	assert.NoDirExists(t, filepath.Dir(m.Resources().Path()))
}

func TestAddResourcesLeavesOnlyTheCollection(t *testing.T) {
	m, _ := newTestManager(t, map[string]domain.PageMeta{
		"https://p.org": {Title: "P"},
	})

	_, err := m.AddResources(context.Background(), []string{"https://p.org"}, "")
	require.NoError(t, err)
	_, err = m.RemoveResources([]string{"https://p.org"})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(m.Resources().Path()))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"resources.json"}, names)
}

// concurrentFetcher stores the URL through a second store handle while the
// page is being fetched, like another bm process would.
type concurrentFetcher struct {
	other *resources.Store
}

func (c concurrentFetcher) Fetch(_ context.Context, u string) (domain.PageMeta, error) {
	err := c.other.Update(func(cur []domain.Resource) ([]domain.Resource, bool, error) {
		return append(cur, domain.Resource{Title: "Other", URL: u}), true, nil
	})
	return domain.PageMeta{Title: "Mine"}, err
}

func TestAddResourcesRechecksUnderLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perl", "resources.json")
	m := NewManager(
		concurrentFetcher{other: resources.NewStore(path)},
		links.NewStore(filepath.Join(t.TempDir(), "links"), ".mdx"),
		resources.NewStore(path),
		logger.Nop(),
		nil,
	)

	report, err := m.AddResources(context.Background(), []string{"https://p.org"}, "")
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusSkipped, report.Results[0].Status)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Total)

	all, err := m.ListResources()
	require.NoError(t, err)
	assert.Equal(t, []domain.Resource{{Title: "Other", URL: "https://p.org"}}, all)
}

func TestRemoveResourcesByTitleSubstring(t *testing.T) {
	m, _ := newTestManager(t, map[string]domain.PageMeta{
		"https://1.org": {Title: "Learn Perl"},
		"https://2.org": {Title: "Raku guide"},
		"https://3.org": {Title: "PERL one-liners"},
		"https://4.org": {Title: "Regex cheat sheet"},
	})
	_, err := m.AddResources(context.Background(), []string{"https://1.org", "https://2.org", "https://3.org", "https://4.org"}, "")
	require.NoError(t, err)

	report, err := m.RemoveResources([]string{"perl"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Removed)
	assert.Equal(t, []string{"Learn Perl", "PERL one-liners"}, report.Results[0].Removed)

	left, err := m.ListResources()
	require.NoError(t, err)
	assert.Equal(t, []domain.Resource{
		{Title: "Raku guide", URL: "https://2.org"},
		{Title: "Regex cheat sheet", URL: "https://4.org"},
	}, left)
}

func TestRemoveResourcesPerTarget(t *testing.T) {
	m, _ := newTestManager(t, map[string]domain.PageMeta{
		"https://1.org": {Title: "One"},
		"https://2.org": {Title: "Two"},
	})
	_, err := m.AddResources(context.Background(), []string{"https://1.org", "https://2.org"}, "")
	require.NoError(t, err)

	report, err := m.RemoveResources([]string{"https://2.org", "missing"})
	require.NoError(t, err)

	assert.True(t, report.Results[0].Found())
	assert.False(t, report.Results[1].Found())
	assert.Equal(t, 1, report.Removed)
}

func TestRemoveResourcesEmptyStore(t *testing.T) {
	m, _ := newTestManager(t, nil)

	report, err := m.RemoveResources([]string{"anything"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Removed)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Found())
	assert.NoFileExists(t, m.Resources().Path())
	assert.NoDirExists(t, filepath.Dir(m.Resources().Path()))
}
