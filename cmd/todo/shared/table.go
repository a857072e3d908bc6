package shared

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-ports/todo/internal/models"
)

// MaxNameWidth is the longest name printed before truncation.
const MaxNameWidth = 27

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// CheckFormat validates a --format value.
func CheckFormat(f string) error {
	switch f {
	case FormatTable, FormatJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q (want table or json)", f)
}

// TruncateName shortens names longer than MaxNameWidth runes and marks the
// cut with an ellipsis.
func TruncateName(name string) string {
	runes := []rune(name)
	if len(runes) > MaxNameWidth {
		return string(runes[:MaxNameWidth]) + "..."
	}
	return name
}

// WriteTable prints rows as a fixed-width table. The ID column shows the
// file position instead of the stored id when byPosition is set, since that
// is the number remove and edit expect.
func WriteTable(w io.Writer, rows []models.Row, byPosition bool) {
	fmt.Fprintf(w, "%-4s %-30s %-10s %-10s\n", "ID", "Name", "Priority", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, r := range rows {
		id := r.ID
		if byPosition {
			id = uint(r.Position) // #nosec G115 -- positions start at 1
		}
		fmt.Fprintf(w, "%-4d %-30s %-10d %-10s\n", id, TruncateName(r.Name), r.Priority, r.Status())
	}
}

// WriteJSON prints rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []models.Row) error {
	if rows == nil {
		rows = make([]models.Row, 0)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
