package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/bm/internal/bookmarks"
	"github.com/MrSnakeDoc/bm/internal/domain"
	"github.com/MrSnakeDoc/bm/internal/logger"
	"github.com/MrSnakeDoc/bm/internal/store/links"
	"github.com/MrSnakeDoc/bm/internal/store/resources"
)

type pages map[string]domain.PageMeta

func (p pages) Fetch(_ context.Context, u string) (domain.PageMeta, error) {
	if meta, ok := p[u]; ok {
		return meta, nil
	}
	return domain.PageMeta{}, errors.New("failed to fetch: no such host")
}

type harness struct {
	runner *Runner
	out    *bytes.Buffer
	errOut *bytes.Buffer
	links  string
	perl   string
}

func newHarness(t *testing.T, p pages) *harness {
	t.Helper()
	root := t.TempDir()
	h := &harness{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		links:  filepath.Join(root, "links"),
		perl:   filepath.Join(root, "perl", "resources.json"),
	}
	m := bookmarks.NewManager(p,
		links.NewStore(h.links, ".mdx"),
		resources.NewStore(h.perl),
		logger.Nop(),
		func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) })
	h.runner = NewRunner(m, h.out, h.errOut)
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.out.Reset()
	h.errOut.Reset()
	return h.runner.Run(context.Background(), ParseArgs(args))
}

func TestRunUsage(t *testing.T) {
	h := newHarness(t, nil)

	for _, args := range [][]string{{}, {"remove"}, {"--perl"}, {"--tags", "a,b"}} {
		err := h.run(t, args...)
		assert.ErrorIs(t, err, ErrUsage, "args %v", args)
		assert.Contains(t, h.errOut.String(), "Usage:")
	}
}

func TestRunAddSingleLink(t *testing.T) {
	h := newHarness(t, pages{"https://example.com": {Title: "Example"}})

	require.NoError(t, h.run(t, "https://example.com"))

	assert.Equal(t, "[ok]   https://example.com → "+filepath.ToSlash(filepath.Join(h.links, "example.mdx"))+"\n"+
		"       title: Example\n", h.out.String())
	assert.Empty(t, h.errOut.String())
	assert.FileExists(t, filepath.Join(h.links, "example.mdx"))
}

func TestRunAddDuplicateSummary(t *testing.T) {
	h := newHarness(t, pages{"https://a.com": {Title: "A"}})

	require.NoError(t, h.run(t, "https://a.com", "https://a.com"))

	assert.Contains(t, h.out.String(), "\nDone: 1 created, 1 failed\n")
	assert.Equal(t, "[skip] https://a.com — a.mdx already exists\n", h.errOut.String())
}

func TestRunAddFetchError(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.run(t, "https://down.example"))

	assert.Equal(t, "[err]  https://down.example — failed to fetch: no such host\n", h.errOut.String())
	assert.NotContains(t, h.out.String(), "Done:")
}

func TestRunAddWithTags(t *testing.T) {
	h := newHarness(t, pages{"https://go.dev": {Title: "Go"}})

	require.NoError(t, h.run(t, "https://go.dev", "--tags", "go, lang"))

	content, err := os.ReadFile(filepath.Join(h.links, "go.mdx"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "tags: [\"go\", \"lang\"]\n")
}

func TestRunListLinks(t *testing.T) {
	h := newHarness(t, pages{
		"https://a.com": {Title: "Alpha"},
		"https://b.com": {Title: "Beta"},
	})

	require.NoError(t, h.run(t, "list"))
	assert.Equal(t, "No links yet.\n", h.out.String())

	require.NoError(t, h.run(t, "https://b.com", "https://a.com"))
	require.NoError(t, h.run(t, "list"))
	assert.Equal(t, "Alpha\n  https://a.com\n\nBeta\n  https://b.com\n\n2 links\n", h.out.String())

	require.NoError(t, h.run(t, "list", "--table"))
	assert.Contains(t, h.out.String(), "Alpha")
	assert.Contains(t, h.out.String(), "2026-10-19")
	assert.Contains(t, h.out.String(), "2 links\n")
}

func TestRunRemoveLinks(t *testing.T) {
	h := newHarness(t, pages{"https://a.com": {Title: "Alpha"}})

	err := h.run(t, "remove", "alpha")
	assert.ErrorIs(t, err, bookmarks.ErrNoStore)

	require.NoError(t, h.run(t, "https://a.com"))

	require.NoError(t, h.run(t, "remove", "nonexistent-slug"))
	assert.Equal(t, "[skip] nonexistent-slug — not found\n", h.errOut.String())
	assert.Empty(t, h.out.String())

	require.NoError(t, h.run(t, "remove", "https://a.com", "nonexistent-slug"))
	assert.Equal(t, "[ok]   removed alpha.mdx\n\nDone: 1 removed\n", h.out.String())
	assert.NoFileExists(t, filepath.Join(h.links, "alpha.mdx"))
}

func TestRunPerlScenario(t *testing.T) {
	h := newHarness(t, pages{"https://p.org": {Title: "Perl Maven"}})

	require.NoError(t, h.run(t, "--perl", "add", "https://p.org", "--note", "great tutorial"))
	assert.Equal(t, "[ok]   https://p.org\n       title: Perl Maven\n", h.out.String())

	data, err := os.ReadFile(h.perl)
	require.NoError(t, err)
	rs, err := resources.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []domain.Resource{{Title: "Perl Maven", URL: "https://p.org", Note: "great tutorial"}}, rs)

	require.NoError(t, h.run(t, "--perl", "https://p.org", "https://q.org"))
	assert.Contains(t, h.errOut.String(), "[skip] https://p.org — already exists\n")
	assert.Contains(t, h.errOut.String(), "[err]  https://q.org — failed to fetch: no such host\n")
	assert.Contains(t, h.out.String(), "Done: 0 created, 2 failed (1 total)")

	require.NoError(t, h.run(t, "--perl", "list"))
	assert.Equal(t, "Perl Maven\n  https://p.org\n  great tutorial\n\n1 resources\n", h.out.String())

	require.NoError(t, h.run(t, "--perl", "remove", "MAVEN"))
	assert.Equal(t, "[ok]   removed Perl Maven\n", h.out.String())

	require.NoError(t, h.run(t, "--perl", "list"))
	assert.Equal(t, "No perl resources yet.\n", h.out.String())
}

func TestRootCommandDispatch(t *testing.T) {
	h := newHarness(t, pages{"https://a.com": {Title: "A"}})
	served := false
	cmd := NewRootCommand(h.runner, func(ctx context.Context) error {
		served = true
		return nil
	})

	cmd.SetArgs([]string{"--perl", "list"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "No perl resources yet.\n", h.out.String())

	h.out.Reset()
	cmd.SetArgs([]string{"https://a.com", "--tags", "x"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.FileExists(t, filepath.Join(h.links, "a.mdx"))

	cmd.SetArgs([]string{"serve"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.True(t, served)

	cmd.SetArgs([]string{})
	assert.ErrorIs(t, cmd.ExecuteContext(context.Background()), ErrUsage)
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t, nil)
	cmd := NewRootCommand(h.runner, nil)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "bm dev")
}
