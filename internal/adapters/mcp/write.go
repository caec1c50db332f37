package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

// RegisterWriteTools adds all mutating tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, d Deps) {
	s.AddTool(addEventTool(), addEventHandler(d))
	s.AddTool(deleteEventTool(), deleteEventHandler(d))
	s.AddTool(markMessageReadTool(), markMessageReadHandler(d))
}

// --- add_event ---

func addEventTool() mcp.Tool {
	return mcp.NewTool("add_event",
		mcp.WithDescription("Record a countdown or a yearly anniversary on a solar or lunar date."),
		mcp.WithString("title",
			mcp.Description("Event title"),
			mcp.Required(),
		),
		mcp.WithString("date",
			mcp.Description("Event date: "+dateFormatHelp),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("countdown (default) or anniversary"),
		),
		mcp.WithString("category",
			mcp.Description("One of "+strings.Join(domain.Categories, ", ")+"; default "+domain.DefaultCategory),
		),
		mcp.WithString("reminder",
			mcp.Description("none, same_day, 1d, 3d, 1w or 1m"),
		),
		mcp.WithString("description",
			mcp.Description("Free text"),
		),
	)
}

func addEventHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(req, "date")
		if err != nil {
			return toolError(err)
		}
		kind, err := domain.ParseEventType(req.GetString("type", ""))
		if err != nil {
			return toolError(err)
		}
		reminder, err := domain.ParseReminder(req.GetString("reminder", ""))
		if err != nil {
			return toolError(err)
		}

		e := domain.Event{
			Title:       req.GetString("title", ""),
			Date:        date,
			Type:        kind,
			Category:    req.GetString("category", ""),
			Reminder:    reminder,
			Description: req.GetString("description", ""),
		}
		result, err := commands.NewAddEventCommand(d.Store, d.Cal, d.Env.Clock, e).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s\nid: %s", result.Message, result.Event.ID)), nil
	}
}

// --- delete_event ---

func deleteEventTool() mcp.Tool {
	return mcp.NewTool("delete_event",
		mcp.WithDescription("Delete an event permanently."),
		mcp.WithString("id",
			mcp.Description("Event ID"),
			mcp.Required(),
		),
	)
}

func deleteEventHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteEventCommand(d.Store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- mark_message_read ---

func markMessageReadTool() mcp.Tool {
	return mcp.NewTool("mark_message_read",
		mcp.WithDescription("Mark a message in the feed as read."),
		mcp.WithString("id",
			mcp.Description("Message ID"),
			mcp.Required(),
		),
	)
}

func markMessageReadHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if err := commands.NewMarkMessageReadCommand(d.Store, id).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Marked %s as read", id)), nil
	}
}
