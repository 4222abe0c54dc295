// Package mcptools provides the MCP tool handlers exposed to the
// insurance assistant.
//
// Each tool follows the same pattern:
// - A struct with dependencies (dispatch.Dispatcher) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// The tools never touch the database directly: everything funnels
// through the dispatcher's closed operation set, so the assistant can
// only reach the queries registered there.
package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/safedrive/safedrive/internal/dispatch"
)

// ─── QueryTool ──────────────────────────────────────────────────────────────

// QueryTool handles the database_query MCP tool: one named operation
// per call, selected by query_type.
type QueryTool struct {
	dispatcher *dispatch.Dispatcher
}

// NewQueryTool creates a QueryTool backed by the given dispatcher.
func NewQueryTool(d *dispatch.Dispatcher) *QueryTool {
	return &QueryTool{dispatcher: d}
}

// Definition returns the MCP tool definition for database_query.
func (t *QueryTool) Definition() mcp.Tool {
	return mcp.NewTool("database_query",
		mcp.WithDescription(
			"Query the insurance database. Supported query types: "+
				"list_products, user_info, user_vehicles, user_quotes, "+
				"calculate_quote, search_user, recent_quotes, general_quote, "+
				"policy_details, search_vehicles, search_user_details.",
		),
		mcp.WithString("query_type",
			mcp.Required(),
			mcp.Description("The named query to run"),
		),
		mcp.WithNumber("userId",
			mcp.Description("User ID (user_info, user_vehicles, user_quotes)"),
		),
		mcp.WithString("username",
			mcp.Description("Exact username (search_user)"),
		),
		mcp.WithNumber("vehicleId",
			mcp.Description("Vehicle ID (calculate_quote)"),
		),
		mcp.WithNumber("productId",
			mcp.Description("Product ID (calculate_quote)"),
		),
		mcp.WithNumber("policyNumber",
			mcp.Description("Policy number (policy_details)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (recent_quotes, default 10)"),
		),
		mcp.WithString("licensePlate",
			mcp.Description("License plate, partial match (search_vehicles, search_user_details)"),
		),
		mcp.WithString("firstName",
			mcp.Description("First name, partial match (search_user_details)"),
		),
		mcp.WithString("lastName",
			mcp.Description("Last name, partial match (search_user_details)"),
		),
		mcp.WithString("make",
			mcp.Description("Vehicle make, partial match (search_vehicles)"),
		),
		mcp.WithString("model",
			mcp.Description("Vehicle model, partial match (search_vehicles)"),
		),
		mcp.WithNumber("maxMileage",
			mcp.Description("Maximum mileage (search_vehicles)"),
		),
		mcp.WithNumber("minValue",
			mcp.Description("Minimum vehicle value (search_vehicles)"),
		),
		mcp.WithString("modelDescription",
			mcp.Description("Free-form vehicle description (general_quote)"),
		),
		mcp.WithNumber("driverAge",
			mcp.Description("Driver age in years (general_quote)"),
		),
	)
}

// Handle processes a database_query call. Domain errors surface as
// tool error results, never as protocol failures, so the assistant can
// relay them to the user.
func (t *QueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	queryType := req.GetString("query_type", "")
	if queryType == "" {
		return mcp.NewToolResultError("'query_type' is required"), nil
	}

	args := dispatch.Args{}
	for k, v := range req.GetArguments() {
		if k == "query_type" {
			continue
		}
		args[k] = v
	}

	text, err := t.dispatcher.Dispatch(ctx, queryType, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
