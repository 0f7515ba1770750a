package mcp

// White-box: the handlers are called directly with hand-built requests so
// argument parsing and error mapping are covered without a transport.

import (
	"context"
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/go-ports/gameshelf/internal/ident"
	"github.com/go-ports/gameshelf/internal/service"
)

func newTestService(c *qt.C) *service.Service {
	c.TB.Helper()
	svc, err := service.New(c.TB.TempDir())
	c.Assert(err, qt.IsNil)
	c.TB.Cleanup(func() { _ = svc.Close() })
	return svc
}

func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText returns a function extracting the text content and error flag
// of a tool result, so a handler call can be passed to it directly:
//
//	text, isErr := resultText(c)(handleList(ctx, svc, req))
func resultText(c *qt.C) func(*mcp.CallToolResult, error) (string, bool) {
	return func(res *mcp.CallToolResult, err error) (string, bool) {
		c.Assert(err, qt.IsNil)
		c.Assert(res.Content, qt.HasLen, 1)
		tc, ok := mcp.AsTextContent(res.Content[0])
		c.Assert(ok, qt.IsTrue)
		return tc.Text, res.IsError
	}
}

func TestHandleAddAndList(t *testing.T) {
	c := qt.New(t)
	svc := newTestService(c)
	ctx := context.Background()

	text, isErr := resultText(c)(handleAdd(ctx, svc, request(map[string]any{"name": "RPG"})))
	c.Assert(isErr, qt.IsFalse)
	var cat map[string]any
	c.Assert(json.Unmarshal([]byte(text), &cat), qt.IsNil)
	c.Assert(cat["id"], qt.Equals, ident.NineDigit("RPG"))
	c.Assert(cat["games"], qt.DeepEquals, []any{})

	text, isErr = resultText(c)(handleList(ctx, svc, request(nil)))
	c.Assert(isErr, qt.IsFalse)
	var doc []map[string]any
	c.Assert(json.Unmarshal([]byte(text), &doc), qt.IsNil)
	c.Assert(doc, qt.HasLen, 1)
	c.Assert(doc[0]["name"], qt.Equals, "RPG")
}

func TestHandleList_EmptyIsArray(t *testing.T) {
	c := qt.New(t)
	svc := newTestService(c)

	text, isErr := resultText(c)(handleList(context.Background(), svc, request(nil)))
	c.Assert(isErr, qt.IsFalse)
	c.Assert(text, qt.Equals, "[]")
}

func TestHandlers_FailurePath(t *testing.T) {
	c := qt.New(t)
	svc := newTestService(c)
	ctx := context.Background()

	cases := []struct {
		name    string
		h       handler
		args    map[string]any
		wantMsg string
	}{
		{"add without name", handleAdd, map[string]any{}, "name is required"},
		{"rename unknown", handleRename, map[string]any{"category_id": "1", "name": "x"}, "category not found"},
		{"move bad direction", handleMove, map[string]any{"category_id": "1", "direction": "left"}, "invalid direction"},
		{"move unknown", handleMove, map[string]any{"category_id": "1", "direction": "up"}, "category not found"},
		{"add game unknown", handleAddGame, map[string]any{"category_id": "1", "game_id": "g"}, "category not found"},
		{"remove game unknown", handleRemoveGame, map[string]any{"category_id": "1", "game_id": "g"}, "category not found"},
		{"move game bad direction", handleMoveGame, map[string]any{"category_id": "1", "game_id": "g", "direction": ""}, "invalid direction"},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			text, isErr := resultText(c)(tc.h(ctx, svc, request(tc.args)))
			c.Assert(isErr, qt.IsTrue)
			c.Assert(text, qt.Contains, tc.wantMsg)
		})
	}
}

func TestHandleGenerateID(t *testing.T) {
	c := qt.New(t)

	text, isErr := resultText(c)(handleGenerateID(context.Background(), nil, request(map[string]any{"name": "abc"})))
	c.Assert(isErr, qt.IsFalse)
	c.Assert(text, qt.Contains, `"id":"716005272"`)
}

func TestJSONResult(t *testing.T) {
	c := qt.New(t)

	text, isErr := resultText(c)(jsonResult(map[string]any{"moved": true}))
	c.Assert(isErr, qt.IsFalse)
	c.Assert(text, qt.Equals, `{"moved":true}`)

	_, isErr = resultText(c)(jsonResult(make(chan int)))
	c.Assert(isErr, qt.IsTrue)
}
