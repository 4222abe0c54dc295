package mcptools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/safedrive/safedrive/internal/db"
	"github.com/safedrive/safedrive/internal/dispatch"
	"github.com/safedrive/safedrive/internal/migrations"
	"github.com/safedrive/safedrive/internal/quote"
	"github.com/safedrive/safedrive/internal/store"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// newTestDispatcher creates a dispatcher over a migrated temp database
// seeded with one user, one vehicle and one product.
func newTestDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "mcptools-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	seed := []string{
		`INSERT INTO users (username, password_hash, email, first_name, last_name, phone, created_at)
		 VALUES ('johndoe', 'x', 'john.doe@example.com', 'John', 'Doe', '555-123-4567', '2024-01-15 09:30:00')`,
		`INSERT INTO vehicles (user_id, make, model, year, license_plate, value, mileage, created_at)
		 VALUES (1, 'Volkswagen', 'Golf', 2018, '181-D-12345', 18000, 56000, '2024-02-01 10:00:00')`,
		`INSERT INTO products (name, description, coverage_type, base_price, features)
		 VALUES ('Comprehensive', 'Full protection', 'premium', 1100, 'Own damage, Fire, Theft')`,
	}
	for _, q := range seed {
		if _, err := database.Exec(q); err != nil {
			t.Fatalf("seed fixture: %v", err)
		}
	}

	st := store.New(database)
	return dispatch.New(st, quote.NewCalculator(st), 2024)
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// ─── QueryTool Tests ─────────────────────────────────────────────────────────

func TestQueryTool_Definition(t *testing.T) {
	tool := NewQueryTool(newTestDispatcher(t))
	def := tool.Definition()

	if def.Name != "database_query" {
		t.Errorf("tool name = %q, want %q", def.Name, "database_query")
	}

	props := def.InputSchema.Properties
	for _, p := range []string{"query_type", "userId", "username", "vehicleId", "productId", "policyNumber", "modelDescription", "driverAge"} {
		if _, ok := props[p]; !ok {
			t.Errorf("missing %q parameter", p)
		}
	}
	if len(def.InputSchema.Required) != 1 || def.InputSchema.Required[0] != "query_type" {
		t.Errorf("required = %v, want [query_type]", def.InputSchema.Required)
	}
}

func TestQueryTool_MissingQueryType(t *testing.T) {
	tool := NewQueryTool(newTestDispatcher(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for missing query_type")
	}
}

func TestQueryTool_UnknownQueryType(t *testing.T) {
	tool := NewQueryTool(newTestDispatcher(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"query_type": "drop_table",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for unknown query type")
	}
	if !strings.Contains(resultText(result), "unknown query type") {
		t.Errorf("unexpected error text: %s", resultText(result))
	}
}

func TestQueryTool_CalculateQuote(t *testing.T) {
	tool := NewQueryTool(newTestDispatcher(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"query_type": "calculate_quote",
		"vehicleId":  float64(1),
		"productId":  float64(1),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(result))
	}

	text := resultText(result)
	if !strings.Contains(text, "Volkswagen Golf") || !strings.Contains(text, "€1320/year") {
		t.Errorf("unexpected quote text:\n%s", text)
	}
}

func TestQueryTool_DomainErrorBecomesToolError(t *testing.T) {
	tool := NewQueryTool(newTestDispatcher(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"query_type": "user_info",
		"userId":     float64(9999),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for a missing user")
	}
}

// ─── EstimateTool Tests ──────────────────────────────────────────────────────

func TestEstimateTool_Definition(t *testing.T) {
	tool := NewEstimateTool(newTestDispatcher(t))
	def := tool.Definition()

	if def.Name != "premium_estimate" {
		t.Errorf("tool name = %q, want %q", def.Name, "premium_estimate")
	}
	props := def.InputSchema.Properties
	if _, ok := props["model_description"]; !ok {
		t.Error("missing 'model_description' parameter")
	}
	if _, ok := props["driver_age"]; !ok {
		t.Error("missing 'driver_age' parameter")
	}
}

func TestEstimateTool_Handle(t *testing.T) {
	tool := NewEstimateTool(newTestDispatcher(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"model_description": "Luxury Convertible",
		"driver_age":        float64(22),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(result))
	}
	if !strings.Contains(resultText(result), "€1350.00/year") {
		t.Errorf("unexpected estimate text:\n%s", resultText(result))
	}
}

func TestEstimateTool_MissingDriverAge(t *testing.T) {
	tool := NewEstimateTool(newTestDispatcher(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"model_description": "sedan",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for missing driver_age")
	}
}
