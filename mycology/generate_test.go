package mycology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f5xs-0000a/rusty-website/accesslog"
	"github.com/f5xs-0000a/rusty-website/common"
)

func newTestGenerator(t *testing.T, withData bool) (*Generator, string) {
	t.Helper()

	root := t.TempDir()
	pagesDir := filepath.Join(root, "pages")
	errLogPath := filepath.Join(root, "log.txt")
	dataFile := filepath.Join(root, "mycology.yaml")

	require.NoError(t, os.Mkdir(pagesDir, 0o755))
	templates := map[string]string{
		menuPage:     "<html><ul>{MENU}</ul></html>",
		menuFragment: `<li><a href="/{LABEL}">{TITLE}</a></li>`,
		categoryPage: "<h1>{TITLE}</h1><main>{DATA}</main>",
	}
	for name, content := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(pagesDir, name), []byte(content), 0o644))
	}
	if withData {
		require.NoError(t, os.WriteFile(dataFile, []byte(sampleData), 0o644))
	}

	return &Generator{
		DataFile: dataFile,
		PagesDir: pagesDir,
		ErrLog:   accesslog.NewFallback(errLogPath),
	}, errLogPath
}

func TestGetMenu(t *testing.T) {
	g, _ := newTestGenerator(t, true)

	resp, err := g.Get("/")
	require.NoError(t, err)

	assert.Equal(t, common.Status200, resp.Status)
	assert.Equal(t, "text/html", resp.MimeType)
	assert.Equal(t,
		`<html><ul><li><a href="/polypores">Bracket Fungi</a></li>`+
			`<li><a href="/amanitas">The Amanitas</a></li></ul></html>`,
		string(resp.Content))
}

func TestGetCategoryPage(t *testing.T) {
	g, _ := newTestGenerator(t, true)

	resp, err := g.Get("/amanitas")
	require.NoError(t, err)

	page := string(resp.Content)
	assert.Contains(t, page, "<h1>The Amanitas</h1>")
	assert.Contains(t, page, "<h2>amanita</h2>")
	assert.Contains(t, page, `<div class="species" id="fly_agaric">`)
	assert.Contains(t, page, "<h4>Fly Agaric</h4>")
	assert.Contains(t, page, "<p>Iconic red cap.</p>")
}

func TestGetUnknownCategory(t *testing.T) {
	g, _ := newTestGenerator(t, true)

	_, err := g.Get("/boletes")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

// A missing dataset degrades: the menu renders empty, category lookups miss,
// and the failure lands in the error log instead of crashing anything.
func TestGetWithMissingDataset(t *testing.T) {
	g, errLogPath := newTestGenerator(t, false)

	resp, err := g.Get("/")
	require.NoError(t, err)
	assert.Equal(t, "<html><ul></ul></html>", string(resp.Content))

	_, err = g.Get("/amanitas")
	assert.ErrorIs(t, err, common.ErrNotFound)

	content, err := os.ReadFile(errLogPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "ERROR - ")
	assert.Contains(t, string(content), "cannot read dataset")
}

func TestGetWithMissingTemplate(t *testing.T) {
	g, _ := newTestGenerator(t, true)
	require.NoError(t, os.Remove(filepath.Join(g.PagesDir, menuPage)))

	_, err := g.Get("/")
	assert.Error(t, err)
}
