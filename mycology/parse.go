// Package mycology is the content provider for the mycology host. It parses
// a hand-maintained, indentation-structured dataset into a tree of
// categories, genera and species, and renders it through literal-placeholder
// HTML templates.
package mycology

import (
	"fmt"
	"os"
	"strings"

	"github.com/f5xs-0000a/rusty-website/accesslog"
)

// Category is one top-level dataset section, addressable as /{Label} on the
// mycology host.
type Category struct {
	Label  string
	Title  string
	Genera []Genus
}

// Genus groups the species listed under it.
type Genus struct {
	Title   string
	Species []Species
}

// Species is one dataset leaf: a heading, a common name and a blurb.
type Species struct {
	Title string
	Name  string
	Blurb string
}

// The dataset nests by indentation: section headers end with a colon, and
// the depth is fixed at two spaces per level.
//
//	amanita:
//	  title: The Amanitas
//	  muscaria:
//	    fly_agaric:
//	      common_name: Fly Agaric
//	      blurb: ...
func isCategoryLine(s string) bool {
	return !strings.HasPrefix(s, "  ") && strings.HasSuffix(s, ":")
}

func isGenusLine(s string) bool {
	return strings.HasPrefix(s, "  ") && !strings.HasPrefix(s, "   ") && strings.HasSuffix(s, ":")
}

func isSpeciesLine(s string) bool {
	return strings.HasPrefix(s, "    ") && strings.HasSuffix(s, ":")
}

// sanitize strips indentation, the known attribute prefixes and any colons
// from one dataset line, leaving the bare value.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "blurb: ")
	s = strings.TrimPrefix(s, "common_name: ")
	s = strings.TrimPrefix(s, "title: ")
	return strings.ReplaceAll(s, ":", "")
}

// splitBy chunks lines at every line matching cond; each chunk runs from one
// match up to (excluding) the next. Lines before the first match belong to
// the enclosing layer and are dropped.
func splitBy(lines []string, cond func(string) bool) [][]string {
	var divisions []int
	for i, line := range lines {
		if cond(line) {
			divisions = append(divisions, i)
		}
	}

	chunks := make([][]string, 0, len(divisions))
	for i, start := range divisions {
		end := len(lines)
		if i+1 < len(divisions) {
			end = divisions[i+1]
		}
		chunks = append(chunks, lines[start:end])
	}
	return chunks
}

// Parse builds the category tree from raw dataset text. With justCats set it
// stops at the category layer, which is all the menu page needs.
func Parse(text string, justCats bool) []Category {
	lines := strings.Split(text, "\n")

	var categories []Category
	for _, chunk := range splitBy(lines, isCategoryLine) {
		cat := Category{Label: sanitize(chunk[0])}
		for _, line := range chunk {
			if strings.HasPrefix(strings.TrimSpace(line), "title:") {
				cat.Title = sanitize(line)
				break
			}
		}
		if !justCats {
			cat.Genera = parseGenera(splitBy(chunk, isGenusLine))
		}
		categories = append(categories, cat)
	}
	return categories
}

func parseGenera(chunks [][]string) []Genus {
	genera := make([]Genus, 0, len(chunks))
	for _, chunk := range chunks {
		genera = append(genera, Genus{
			Title:   sanitize(chunk[0]),
			Species: parseSpecies(splitBy(chunk, isSpeciesLine)),
		})
	}
	return genera
}

func parseSpecies(chunks [][]string) []Species {
	species := make([]Species, 0, len(chunks))
	for _, chunk := range chunks {
		sp := Species{Title: sanitize(chunk[0])}
		if len(chunk) > 1 {
			sp.Name = sanitize(chunk[1])
		}
		var blurb strings.Builder
		for i := 2; i < len(chunk); i++ {
			blurb.WriteString(sanitize(chunk[i]))
		}
		sp.Blurb = blurb.String()
		species = append(species, sp)
	}
	return species
}

// load reads and parses the dataset. A read failure goes through the
// fallback error logger, since there is no live connection to report on,
// and yields an empty tree so the caller degrades to a 404.
func load(path string, justCats bool, errLog *accesslog.Fallback) []Category {
	raw, err := os.ReadFile(path)
	if err != nil {
		errLog.LogError(fmt.Sprintf("cannot read dataset - %v %s", err, path))
		return nil
	}
	return Parse(string(raw), justCats)
}
