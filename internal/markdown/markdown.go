// Package markdown renders the activity list as a markdown checklist with
// YAML front matter.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/todo/internal/models"
)

// FrontMatter is the metadata block written at the top of an export.
type FrontMatter struct {
	File      string `yaml:"file"`
	Exported  string `yaml:"exported"`
	Total     int    `yaml:"total"`
	Completed int    `yaml:"completed"`
	Sort      string `yaml:"sort"`
	Reverse   bool   `yaml:"reverse,omitempty"`
}

// NewFrontMatter builds the front matter for rows read from file at now.
func NewFrontMatter(file string, rows []models.Row, key models.SortKey, reverse bool, now time.Time) FrontMatter {
	fm := FrontMatter{
		File:     file,
		Exported: now.UTC().Format(time.RFC3339),
		Total:    len(rows),
		Sort:     string(key),
		Reverse:  reverse,
	}
	for _, r := range rows {
		if r.Completed {
			fm.Completed++
		}
	}
	return fm
}

// RenderItem produces a single checklist line for r, without a newline.
func RenderItem(r models.Row) string {
	box := "[ ]"
	if r.Completed {
		box = "[x]"
	}
	return fmt.Sprintf("- %s %s (id %d, priority %d)", box, singleLine(r.Name), r.ID, r.Priority)
}

// Render produces the full markdown document for rows in the given order.
func Render(fm FrontMatter, rows []models.Row) (string, error) {
	head, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("markdown.Render: front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(head)
	sb.WriteString("---\n\n# To-do\n\n")

	if len(rows) == 0 {
		sb.WriteString("_No activities._\n")
		return sb.String(), nil
	}
	for _, r := range rows {
		sb.WriteString(RenderItem(r))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// singleLine collapses line breaks so a name cannot escape its list item.
func singleLine(s string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)), " ")
}
