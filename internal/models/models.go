// Package models defines the core data types for the to-do list.
package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Activity is a single stored to-do record.
type Activity struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Priority  uint8  `json:"priority"`
	Completed bool   `json:"completed"`
}

// Status returns the display label for the completion flag.
func (a Activity) Status() string {
	if a.Completed {
		return "Done"
	}
	return "Not Done"
}

// Row is an Activity together with its 1-based position in the stored list.
type Row struct {
	Activity
	Position int `json:"position"`
}

// Rows wraps list in Rows, numbering positions from 1 in stored order.
func Rows(list []Activity) []Row {
	rows := make([]Row, len(list))
	for i, a := range list {
		rows[i] = Row{Activity: a, Position: i + 1}
	}
	return rows
}

// ---------------------------------------------------------------------------
// Filter
// ---------------------------------------------------------------------------

// Filter holds optional search criteria. A nil field matches every activity.
type Filter struct {
	ID        *uint
	Name      *string // case-insensitive substring
	Priority  *uint8
	Completed *bool
}

// Matches reports whether a satisfies every criterion set on f.
func (f Filter) Matches(a Activity) bool {
	if f.ID != nil && a.ID != *f.ID {
		return false
	}
	if f.Name != nil && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(*f.Name)) {
		return false
	}
	if f.Priority != nil && a.Priority != *f.Priority {
		return false
	}
	if f.Completed != nil && a.Completed != *f.Completed {
		return false
	}
	return true
}

// Apply returns the rows whose activity matches f, preserving order.
func (f Filter) Apply(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Matches(r.Activity) {
			out = append(out, r)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Patch
// ---------------------------------------------------------------------------

// Patch holds the optional field updates for an edit. Nil fields are left as-is.
type Patch struct {
	Name      *string
	Priority  *uint8
	Completed *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Priority == nil && p.Completed == nil
}

// ApplyTo overwrites the supplied fields of a.
func (p Patch) ApplyTo(a *Activity) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	if p.Completed != nil {
		a.Completed = *p.Completed
	}
}

// ---------------------------------------------------------------------------
// Sorting
// ---------------------------------------------------------------------------

// SortKey selects the field used to order a listing.
type SortKey string

const (
	SortByID        SortKey = "id"
	SortByName      SortKey = "name"
	SortByPriority  SortKey = "priority"
	SortByCompleted SortKey = "completed"
)

// ValidSortKeys lists the accepted sort key values.
var ValidSortKeys = []SortKey{SortByID, SortByName, SortByPriority, SortByCompleted}

// ParseSortKey validates s as a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidSortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want one of: id, name, priority, completed)", s)
}

// Sort orders rows ascending by key with a stable sort, then reverses the
// result when reverse is set.
func Sort(rows []Row, key SortKey, reverse bool) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		switch key {
		case SortByName:
			return strings.Compare(a.Name, b.Name)
		case SortByPriority:
			return cmp.Compare(a.Priority, b.Priority)
		case SortByCompleted:
			return cmp.Compare(boolRank(a.Completed), boolRank(b.Completed))
		default:
			return cmp.Compare(a.ID, b.ID)
		}
	})
	if reverse {
		slices.Reverse(rows)
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
