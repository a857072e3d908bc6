// Package mcp provides the stdio MCP server exposing the activity list as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/todo/internal/buildinfo"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/service"
)

var sortKeys = []string{
	string(models.SortByID),
	string(models.SortByName),
	string(models.SortByPriority),
	string(models.SortByCompleted),
}

const idDescription = "Activity id. Matches the stored id, or the 1-based list position when the user's config sets addressing: position."

// NewServer creates and registers all activity tools on a new MCP server.
// It is separate from Serve so tests can attach an in-process client.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("todo", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve runs the stdio MCP server until stdin closes or ctx is cancelled.
func Serve(ctx context.Context, svc *service.Service) error {
	return mcpserver.NewStdioServer(NewServer(svc)).Listen(ctx, os.Stdin, os.Stdout)
}

func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("todo_add",
		mcp.WithDescription("Add an activity to the to-do list."),
		mcp.WithNumber("id", mcp.Description("Activity id chosen by the caller."), mcp.Required()),
		mcp.WithString("name", mcp.Description("What needs doing."), mcp.Required()),
		mcp.WithNumber("priority", mcp.Description("Priority 0-255 (default 1).")),
		mcp.WithBoolean("completed", mcp.Description("Whether it is already done (default false).")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("todo_list",
		mcp.WithDescription("List every activity, sorted."),
		mcp.WithString("sort", mcp.Description("Sort key (default from config)."), mcp.Enum(sortKeys...)),
		mcp.WithBoolean("reverse", mcp.Description("Reverse the order.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("todo_remove",
		mcp.WithDescription("Remove one activity."),
		mcp.WithNumber("id", mcp.Description(idDescription), mcp.Required()),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRemove(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("todo_edit",
		mcp.WithDescription("Change the name, priority, or completion status of one activity. Omitted fields are kept."),
		mcp.WithNumber("id", mcp.Description(idDescription), mcp.Required()),
		mcp.WithString("name", mcp.Description("New name.")),
		mcp.WithNumber("priority", mcp.Description("New priority 0-255.")),
		mcp.WithBoolean("completed", mcp.Description("New completion status.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleEdit(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("todo_search",
		mcp.WithDescription("Find activities matching every given criterion. With no criteria, returns all."),
		mcp.WithNumber("id", mcp.Description("Stored id to match.")),
		mcp.WithString("name", mcp.Description("Case-insensitive substring of the name.")),
		mcp.WithNumber("priority", mcp.Description("Priority to match.")),
		mcp.WithBoolean("completed", mcp.Description("Completion status to match.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearch(ctx, svc, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleAdd(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requiredID(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	priority := uint8(1)
	if v, ok, err := uintArg(args, "priority", math.MaxUint8); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		priority = uint8(v) // #nosec G115 -- bounded by uintArg
	}

	a := models.Activity{
		ID:        id,
		Name:      req.GetString("name", ""),
		Priority:  priority,
		Completed: req.GetBool("completed", false),
	}
	if err := svc.Add(ctx, a); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"added": a})
}

func handleList(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := svc.Config.SortKey()
	if raw := req.GetString("sort", ""); raw != "" {
		k, err := models.ParseSortKey(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		key = k
	}
	reverse := req.GetBool("reverse", svc.Config.List.Reverse)

	rows, err := svc.List(ctx, key, reverse)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"total":      len(rows),
		"activities": rows,
	})
}

func handleRemove(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredID(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	removed, err := svc.Remove(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"removed": removed})
}

func handleEdit(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requiredID(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var patch models.Patch
	if _, ok := args["name"]; ok {
		name := req.GetString("name", "")
		patch.Name = &name
	}
	if v, ok, err := uintArg(args, "priority", math.MaxUint8); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		p := uint8(v) // #nosec G115 -- bounded by uintArg
		patch.Priority = &p
	}
	if _, ok := args["completed"]; ok {
		done := req.GetBool("completed", false)
		patch.Completed = &done
	}
	if patch.Empty() {
		return mcp.NewToolResultError("nothing to change: pass at least one of name, priority, completed"), nil
	}

	updated, err := svc.Edit(ctx, id, patch)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"updated": updated})
}

func handleSearch(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	var filter models.Filter
	if v, ok, err := uintArg(args, "id", math.MaxUint32); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		filter.ID = &v
	}
	if _, ok := args["name"]; ok {
		name := req.GetString("name", "")
		filter.Name = &name
	}
	if v, ok, err := uintArg(args, "priority", math.MaxUint8); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		p := uint8(v) // #nosec G115 -- bounded by uintArg
		filter.Priority = &p
	}
	if _, ok := args["completed"]; ok {
		done := req.GetBool("completed", false)
		filter.Completed = &done
	}

	rows, total, err := svc.Search(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if rows == nil {
		rows = make([]models.Row, 0)
	}
	return jsonResult(map[string]any{
		"total":   total,
		"showing": len(rows),
		"matches": rows,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// uintArg reads a non-negative whole number no larger than maxVal from args.
// ok is false when the key is absent.
func uintArg(args map[string]any, key string, maxVal uint64) (v uint, ok bool, err error) {
	raw, present := args[key]
	if !present || raw == nil {
		return 0, false, nil
	}

	var f float64
	switch n := raw.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		if f, err = n.Float64(); err != nil {
			return 0, false, fmt.Errorf("%s: %w", key, err)
		}
	default:
		return 0, false, fmt.Errorf("%s: expected a number, got %T", key, raw)
	}

	if f < 0 || f != math.Trunc(f) || f > float64(maxVal) {
		return 0, false, fmt.Errorf("%s: %v is not a whole number in 0-%d", key, raw, maxVal)
	}
	return uint(f), true, nil
}

func requiredID(args map[string]any) (uint, error) {
	id, ok, err := uintArg(args, "id", math.MaxUint32)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("id is required")
	}
	return id, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
