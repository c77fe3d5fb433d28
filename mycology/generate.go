package mycology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/f5xs-0000a/rusty-website/accesslog"
	"github.com/f5xs-0000a/rusty-website/common"
)

// Template file names under PagesDir. Templates use literal placeholders
// ({MENU}, {TITLE}, {DATA}, {LABEL}) substituted by plain string replace;
// there is exactly one consumer per template, so a template engine would
// buy nothing.
const (
	menuPage     = "menu.html"
	menuFragment = "menu_frag.html"
	categoryPage = "shroompage.html"
)

// Generator serves the mycology host. The dataset is re-read per request so
// edits to the data file show up without a restart.
type Generator struct {
	DataFile string
	PagesDir string
	ErrLog   *accesslog.Fallback
}

// Get renders the page for one request path: "/" is the category menu,
// "/{label}" is that category's page, anything else is a miss.
func (g *Generator) Get(path string) (common.Response, error) {
	requested := strings.ReplaceAll(path, "/", "")

	if requested == "" {
		return g.menu()
	}

	categories := load(g.DataFile, true, g.ErrLog)
	for _, cat := range categories {
		if cat.Label == requested {
			return g.category(requested)
		}
	}
	return common.Response{}, common.ErrNotFound
}

// menu renders the landing page: one menu-fragment instance per category,
// substituted into the {MENU} slot of the menu template.
func (g *Generator) menu() (common.Response, error) {
	tpl, err := g.page(menuPage)
	if err != nil {
		return common.Response{}, err
	}
	frag, err := g.page(menuFragment)
	if err != nil {
		return common.Response{}, err
	}

	var items strings.Builder
	for _, cat := range load(g.DataFile, true, g.ErrLog) {
		item := strings.ReplaceAll(frag, "{LABEL}", cat.Label)
		items.WriteString(strings.ReplaceAll(item, "{TITLE}", cat.Title))
	}

	return htmlResponse(strings.Replace(tpl, "{MENU}", items.String(), 1)), nil
}

// category renders one category's page from the fully-parsed tree.
func (g *Generator) category(label string) (common.Response, error) {
	tpl, err := g.page(categoryPage)
	if err != nil {
		return common.Response{}, err
	}

	var data Category
	for _, cat := range load(g.DataFile, false, g.ErrLog) {
		if cat.Label == label {
			data = cat
			break
		}
	}

	filled := strings.ReplaceAll(tpl, "{TITLE}", data.Title)
	filled = strings.Replace(filled, "{DATA}", htmlify(data), 1)
	return htmlResponse(filled), nil
}

// page reads one template, reporting misses through the fallback logger.
func (g *Generator) page(name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(g.PagesDir, name))
	if err != nil {
		g.ErrLog.LogError(fmt.Sprintf("cannot read template - %v %s", err, name))
		return "", err
	}
	return string(raw), nil
}

// htmlify renders a category's genera and species as nested sections for
// the {DATA} slot.
func htmlify(cat Category) string {
	var b strings.Builder
	for _, genus := range cat.Genera {
		fmt.Fprintf(&b, "<div class=\"genus\">\n<h2>%s</h2>\n", genus.Title)
		for _, sp := range genus.Species {
			fmt.Fprintf(&b, "<div class=\"species\" id=%q>\n<h3>%s</h3>\n<h4>%s</h4>\n<p>%s</p>\n</div>\n",
				sp.Title, sp.Title, sp.Name, sp.Blurb)
		}
		b.WriteString("</div>\n")
	}
	return b.String()
}

func htmlResponse(content string) common.Response {
	return common.Response{
		Status:   common.Status200,
		MimeType: "text/html",
		Content:  []byte(content),
	}
}
