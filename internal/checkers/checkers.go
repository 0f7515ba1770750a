// Package checkers provides quicktest checkers shared by the test suites.
package checkers

import (
	"encoding/json"
	"fmt"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

type jsonPathChecker struct {
	path string
}

// JSONPathEquals returns a checker that parses got (a string or []byte of
// JSON), evaluates the JSONPath expression path against it and compares the
// selected value with the expected argument using deep equality.
//
//	c.Assert(text, checkers.JSONPathEquals("$.name"), "RPG")
//
// Numbers decode as float64.
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path}
}

func (*jsonPathChecker) ArgNames() []string {
	return []string{"got", "want"}
}

func (j *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var data []byte
	switch v := got.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return qt.BadCheckf("got must be string or []byte, not %T", got)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("cannot parse JSON: %w", err)
	}

	selected, err := jsonpath.Read(decoded, j.path)
	if err != nil {
		note("path", j.path)
		return fmt.Errorf("cannot evaluate JSONPath: %w", err)
	}

	note("path", j.path)
	note("selected", selected)
	return qt.DeepEquals.Check(selected, args, note)
}
