package shared_test

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/pflag"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/models"
)

func TestTruncateName_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"short", "Buy milk", "Buy milk"},
		{"exactly the limit", strings.Repeat("a", 27), strings.Repeat("a", 27)},
		{"one over the limit", strings.Repeat("a", 28), strings.Repeat("a", 27) + "..."},
		{"multibyte runes count once", strings.Repeat("é", 30), strings.Repeat("é", 27) + "..."},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(shared.TruncateName(tc.in), qt.Equals, tc.want)
		})
	}
}

func TestWriteTable_HappyPath(t *testing.T) {
	c := qt.New(t)

	rows := models.Rows([]models.Activity{
		{ID: 9, Name: "Buy milk", Priority: 2},
		{ID: 4, Name: "Call Alice", Priority: 10, Completed: true},
	})

	c.Run("stored ids", func(c *qt.C) {
		var buf bytes.Buffer
		shared.WriteTable(&buf, rows, false)
		c.Assert(buf.String(), qt.Equals, ""+
			"ID   Name                           Priority   Status    \n"+
			strings.Repeat("-", 60)+"\n"+
			"9    Buy milk                       2          Not Done  \n"+
			"4    Call Alice                     10         Done      \n")
	})

	c.Run("positions", func(c *qt.C) {
		var buf bytes.Buffer
		shared.WriteTable(&buf, rows, true)
		lines := strings.Split(buf.String(), "\n")
		c.Assert(strings.HasPrefix(lines[2], "1    Buy milk"), qt.IsTrue)
		c.Assert(strings.HasPrefix(lines[3], "2    Call Alice"), qt.IsTrue)
	})
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	c.Assert(shared.WriteJSON(&buf, nil), qt.IsNil)
	c.Assert(buf.String(), qt.Equals, "[]\n")
}

func TestCheckFormat(t *testing.T) {
	c := qt.New(t)
	c.Assert(shared.CheckFormat("table"), qt.IsNil)
	c.Assert(shared.CheckFormat("json"), qt.IsNil)
	c.Assert(shared.CheckFormat("csv"), qt.ErrorMatches, `unknown format "csv".*`)
}

func TestBoolValue_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		args []string
		want bool
	}{
		{"unset keeps default", nil, false},
		{"separate argument", []string{"--completed", "true"}, true},
		{"equals form", []string{"--completed=true"}, true},
		{"explicit false", []string{"--completed", "false"}, false},
		{"numeric", []string{"--completed", "1"}, true},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			var done bool
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fs.Var(shared.NewBoolValue(&done, false), "completed", "")
			c.Assert(fs.Parse(tc.args), qt.IsNil)
			c.Assert(done, qt.Equals, tc.want)
		})
	}
}

func TestBoolValue_FailurePath(t *testing.T) {
	c := qt.New(t)

	var done bool
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	fs.Var(shared.NewBoolValue(&done, false), "completed", "")

	c.Assert(fs.Parse([]string{"--completed", "yes"}), qt.ErrorMatches, `.*invalid boolean "yes".*`)
	c.Assert(fs.Parse([]string{"--completed"}), qt.ErrorMatches, `.*flag needs an argument.*`)
}
