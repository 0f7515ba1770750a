// Package mcp provides the stdio MCP server exposing category tools to a
// front end or agent.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/gameshelf/internal/buildinfo"
	"github.com/go-ports/gameshelf/internal/category"
	"github.com/go-ports/gameshelf/internal/ident"
	"github.com/go-ports/gameshelf/internal/service"
)

var directions = []string{"up", "down"}

const listDescription = `List every category in display order, each with its ordered game ids. Re-read this after every change; the tools do not push updates.`

// NewServer creates and registers all category tools on a new MCP server.
// It is separate from Serve so that tests can obtain a configured server
// without the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("gameshelf", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server for the library at home, blocking until
// stdin closes.
func Serve(_ context.Context, home string) error {
	svc, err := service.New(home)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	defer svc.Close()

	return mcpserver.ServeStdio(NewServer(svc))
}

type handler func(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

func bind(svc *service.Service, h handler) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return h(ctx, svc, req)
	}
}

// registerTools wires every category tool into the server.
func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	categoryID := mcp.WithString("category_id",
		mcp.Description("Nine-digit category id from category_list."),
		mcp.Required(),
	)
	gameID := mcp.WithString("game_id",
		mcp.Description("Game identifier."),
		mcp.Required(),
	)
	direction := mcp.WithString("direction",
		mcp.Description("Swap with the previous (up) or next (down) neighbour."),
		mcp.Required(),
		mcp.Enum(directions...),
	)

	s.AddTool(mcp.NewTool("category_list",
		mcp.WithDescription(listDescription),
	), bind(svc, handleList))

	s.AddTool(mcp.NewTool("category_add",
		mcp.WithDescription("Append a new, empty category. Its id is derived from the name."),
		mcp.WithString("name", mcp.Description("Display name."), mcp.Required()),
	), bind(svc, handleAdd))

	s.AddTool(mcp.NewTool("category_rename",
		mcp.WithDescription("Rename a category."),
		categoryID,
		mcp.WithString("name", mcp.Description("New display name."), mcp.Required()),
	), bind(svc, handleRename))

	s.AddTool(mcp.NewTool("category_delete",
		mcp.WithDescription("Delete a category. Games stay in the library."),
		categoryID,
	), bind(svc, handleDelete))

	s.AddTool(mcp.NewTool("category_move",
		mcp.WithDescription("Move a category one position up or down."),
		categoryID,
		direction,
	), bind(svc, handleMove))

	s.AddTool(mcp.NewTool("category_add_game",
		mcp.WithDescription("Add a game to the end of a category. Adding a member again does nothing."),
		categoryID,
		gameID,
	), bind(svc, handleAddGame))

	s.AddTool(mcp.NewTool("category_remove_game",
		mcp.WithDescription("Remove a game from one category."),
		categoryID,
		gameID,
	), bind(svc, handleRemoveGame))

	s.AddTool(mcp.NewTool("category_purge_game",
		mcp.WithDescription("Remove a game from every category, e.g. after it is deleted from the library."),
		gameID,
	), bind(svc, handlePurgeGame))

	s.AddTool(mcp.NewTool("category_move_game",
		mcp.WithDescription("Move a game one position up or down inside a category."),
		categoryID,
		gameID,
		direction,
	), bind(svc, handleMoveGame))

	s.AddTool(mcp.NewTool("generate_id",
		mcp.WithDescription("Return the deterministic nine-digit id for a category or game name."),
		mcp.WithString("name", mcp.Description("Name to hash."), mcp.Required()),
	), bind(svc, handleGenerateID))
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleList(_ context.Context, svc *service.Service, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(svc.List())
}

func handleAdd(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat, err := svc.AddCategory(req.GetString("name", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(cat)
}

func handleRename(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("category_id", "")
	name := req.GetString("name", "")
	if err := svc.RenameCategory(id, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"id": id, "name": name})
}

func handleDelete(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deleted, err := svc.DeleteCategory(req.GetString("category_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"deleted": deleted})
}

func handleMove(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := category.ParseDirection(req.GetString("direction", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	moved, err := svc.MoveCategory(req.GetString("category_id", ""), dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"moved": moved})
}

func handleAddGame(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	added, err := svc.AddGame(req.GetString("category_id", ""), req.GetString("game_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"added": added})
}

func handleRemoveGame(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	removed, err := svc.RemoveGame(req.GetString("category_id", ""), req.GetString("game_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"removed": removed})
}

func handlePurgeGame(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	touched, err := svc.PurgeGame(req.GetString("game_id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"categories": touched})
}

func handleMoveGame(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := category.ParseDirection(req.GetString("direction", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	moved, err := svc.MoveGame(req.GetString("category_id", ""), req.GetString("game_id", ""), dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"moved": moved})
}

func handleGenerateID(_ context.Context, _ *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	return jsonResult(map[string]any{"name": name, "id": ident.NineDigit(name)})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
