package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/safedrive/safedrive/internal/dispatch"
)

// ─── EstimateTool ───────────────────────────────────────────────────────────

// EstimateTool handles the premium_estimate MCP tool: a rough,
// non-binding premium from a vehicle description and driver age, for
// conversations where no stored vehicle exists yet.
type EstimateTool struct {
	dispatcher *dispatch.Dispatcher
}

// NewEstimateTool creates an EstimateTool backed by the given dispatcher.
func NewEstimateTool(d *dispatch.Dispatcher) *EstimateTool {
	return &EstimateTool{dispatcher: d}
}

// Definition returns the MCP tool definition for premium_estimate.
func (t *EstimateTool) Definition() mcp.Tool {
	return mcp.NewTool("premium_estimate",
		mcp.WithDescription(
			"Estimate an annual insurance premium from a free-form vehicle "+
				"description and the driver's age. Non-binding; use "+
				"database_query with calculate_quote for a stored vehicle.",
		),
		mcp.WithString("model_description",
			mcp.Required(),
			mcp.Description("Free-form vehicle description, e.g. 'red sport convertible'"),
		),
		mcp.WithNumber("driver_age",
			mcp.Required(),
			mcp.Description("Driver age in years"),
		),
	)
}

// Handle processes a premium_estimate call by delegating to the
// general_quote operation.
func (t *EstimateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := req.GetString("model_description", "")
	if model == "" {
		return mcp.NewToolResultError("'model_description' is required"), nil
	}

	args := dispatch.Args{
		"modelDescription": model,
		"driverAge":        req.GetArguments()["driver_age"],
	}

	text, err := t.dispatcher.Dispatch(ctx, dispatch.OpGeneralQuote, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
