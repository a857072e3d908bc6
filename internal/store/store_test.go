package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/store"
)

// openTestStore opens a store on a fresh file in a temp directory.
func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "todo.json"))
	if err != nil {
		t.Fatalf("openTestStore: %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Open
// ---------------------------------------------------------------------------

func TestOpen_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("missing file is created empty", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "todo.json")
		s, err := store.Open(path)
		c.Assert(err, qt.IsNil)
		c.Assert(s.Path(), qt.Equals, path)

		st, err := os.Stat(path)
		c.Assert(err, qt.IsNil)
		c.Assert(st.Size(), qt.Equals, int64(0))
	})

	c.Run("existing content is left alone", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "todo.json")
		c.Assert(os.WriteFile(path, []byte(`[{"id":1,"name":"a","priority":1,"completed":false}]`), 0o600), qt.IsNil)
		_, err := store.Open(path)
		c.Assert(err, qt.IsNil)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Contains, `"name":"a"`)
	})
}

func TestOpen_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("missing parent directory", func(c *qt.C) {
		_, err := store.Open(filepath.Join(c.TB.TempDir(), "nope", "todo.json"))
		c.Assert(err, qt.ErrorMatches, "store.Open: .*")
		c.Assert(errors.Is(err, os.ErrNotExist), qt.IsTrue)
	})

	c.Run("empty path", func(c *qt.C) {
		_, err := store.Open("")
		c.Assert(err, qt.IsNotNil)
	})
}

// ---------------------------------------------------------------------------
// Load / Save
// ---------------------------------------------------------------------------

func TestLoad_EmptyFile_HappyPath(t *testing.T) {
	c := qt.New(t)
	s := openTestStore(t)

	list, err := s.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(list, qt.HasLen, 0)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := qt.New(t)
	s := openTestStore(t)

	want := []models.Activity{
		{ID: 1, Name: "Buy milk", Priority: 2},
		{ID: 7, Name: "Ship release", Priority: 255, Completed: true},
		{ID: 3, Name: "ünïcödé name", Priority: 0},
	}
	c.Assert(s.Save(context.Background(), want), qt.IsNil)

	got, err := s.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, want)
}

func TestSave_WritesIndentedArray(t *testing.T) {
	c := qt.New(t)
	s := openTestStore(t)

	c.Assert(s.Save(context.Background(), []models.Activity{{ID: 1, Name: "a", Priority: 1}}), qt.IsNil)

	data, err := os.ReadFile(s.Path())
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "[\n  {\n    \"id\": 1,\n    \"name\": \"a\",\n    \"priority\": 1,\n    \"completed\": false\n  }\n]\n")
}

func TestLoad_FailurePath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json"},
		{"object instead of array", `{"id":1}`},
		{"wrong field type", `[{"id":"one","name":"a"}]`},
		{"negative priority", `[{"id":1,"name":"a","priority":-1}]`},
		{"truncated", `[{"id":1,"name":"a"`},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			path := filepath.Join(c.TB.TempDir(), "todo.json")
			c.Assert(os.WriteFile(path, []byte(tc.content), 0o600), qt.IsNil)
			s, err := store.Open(path)
			c.Assert(err, qt.IsNil)

			_, err = s.Load()
			c.Assert(errors.Is(err, store.ErrCorrupt), qt.IsTrue)
			c.Assert(err, qt.ErrorMatches, ".*"+filepath.Base(path)+".*")
		})
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUpdate_HappyPath(t *testing.T) {
	c := qt.New(t)
	s := openTestStore(t)
	ctx := context.Background()

	for i := uint(1); i <= 3; i++ {
		err := s.Update(ctx, func(list []models.Activity) ([]models.Activity, error) {
			return append(list, models.Activity{ID: i, Name: "task", Priority: 1}), nil
		})
		c.Assert(err, qt.IsNil)
	}

	got, err := s.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 3)
	c.Assert(got[2].ID, qt.Equals, uint(3))
}

func TestUpdate_FailurePath(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	c.Run("callback error leaves file untouched", func(c *qt.C) {
		s := openTestStore(t)
		c.Assert(s.Save(ctx, []models.Activity{{ID: 1, Name: "keep"}}), qt.IsNil)
		before, err := os.ReadFile(s.Path())
		c.Assert(err, qt.IsNil)

		boom := errors.New("boom")
		err = s.Update(ctx, func([]models.Activity) ([]models.Activity, error) {
			return nil, boom
		})
		c.Assert(errors.Is(err, boom), qt.IsTrue)

		after, err := os.ReadFile(s.Path())
		c.Assert(err, qt.IsNil)
		c.Assert(string(after), qt.Equals, string(before))
	})

	c.Run("corrupt file is not overwritten", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "todo.json")
		c.Assert(os.WriteFile(path, []byte("garbage"), 0o600), qt.IsNil)
		s, err := store.Open(path)
		c.Assert(err, qt.IsNil)

		called := false
		err = s.Update(ctx, func(list []models.Activity) ([]models.Activity, error) {
			called = true
			return list, nil
		})
		c.Assert(errors.Is(err, store.ErrCorrupt), qt.IsTrue)
		c.Assert(called, qt.IsFalse)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Equals, "garbage")
	})
}

// ---------------------------------------------------------------------------
// Decode / Encode
// ---------------------------------------------------------------------------

func TestDecode_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name    string
		in      string
		wantLen int
	}{
		{"zero bytes", "", 0},
		{"whitespace only", " \n\t", 0},
		{"json null", "null", 0},
		{"empty array", "[]", 0},
		{"compact array", `[{"id":1,"name":"a","priority":1,"completed":false},{"id":2,"name":"b","priority":3,"completed":true}]`, 2},
		{"unknown keys ignored", `[{"id":1,"name":"a","due":"tomorrow"}]`, 1},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			got, err := store.Decode([]byte(tc.in))
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.IsNotNil)
			c.Assert(got, qt.HasLen, tc.wantLen)
		})
	}
}

func TestEncode_NilList(t *testing.T) {
	c := qt.New(t)
	data, err := store.Encode(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "[]\n")
}
