package checkers_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/todo/internal/checkers"
)

const doc = `{"total": 2, "matches": [{"id": 3, "name": "Buy milk", "completed": false}]}`

func TestJSONPathEquals_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Assert(doc, checkers.JSONPathEquals("$.total"), float64(2))
	c.Assert([]byte(doc), checkers.JSONPathEquals("$.matches[0].name"), "Buy milk")
	c.Assert(doc, checkers.JSONPathEquals("$.matches[0].completed"), false)
	c.Assert(doc, checkers.JSONPathEquals("$.matches[*].id"), []any{float64(3)})
}

func TestJSONPathEquals_FailurePath(t *testing.T) {
	c := qt.New(t)

	checker := checkers.JSONPathEquals("$.total")
	noop := func(string, any) {}

	c.Run("different value", func(c *qt.C) {
		err := checker.Check(doc, []any{float64(3)}, noop)
		c.Assert(err, qt.ErrorMatches, "values are not equal")
	})

	c.Run("int is not float64", func(c *qt.C) {
		err := checker.Check(doc, []any{2}, noop)
		c.Assert(err, qt.IsNotNil)
	})

	c.Run("invalid json", func(c *qt.C) {
		err := checker.Check("{not json", []any{float64(2)}, noop)
		c.Assert(err, qt.ErrorMatches, "got is not valid JSON: .*")
	})

	c.Run("missing key", func(c *qt.C) {
		err := checkers.JSONPathEquals("$.nope").Check(doc, []any{nil}, noop)
		c.Assert(err, qt.ErrorMatches, "cannot evaluate JSON path: .*")
	})

	c.Run("unsupported got type", func(c *qt.C) {
		err := checker.Check(42, []any{float64(2)}, noop)
		c.Assert(qt.IsBadCheck(err), qt.IsTrue)
	})
}
