// Package checkers provides quicktest checkers shared by the test suites.
package checkers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

// JSONPathEquals returns a checker that decodes got as JSON, evaluates path
// against it and compares the result with want using reflect.DeepEqual.
//
// got may be a string, a []byte or a json.RawMessage. Numbers decode as
// float64, so want must use float64 for numeric values:
//
//	c.Assert(text, checkers.JSONPathEquals("$.total"), float64(1))
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

type jsonPathChecker struct {
	path string
}

func (j *jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

func (j *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var data []byte
	switch v := got.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		return qt.BadCheckf("got must be a string or []byte, not %T", got)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("got is not valid JSON: %w", err)
	}

	value, err := jsonpath.Read(doc, j.path)
	if err != nil {
		note("path", j.path)
		return fmt.Errorf("cannot evaluate JSON path: %w", err)
	}

	if !reflect.DeepEqual(value, args[0]) {
		note("path", j.path)
		note("value at path", value)
		return errors.New("values are not equal")
	}
	return nil
}
