package dispatch

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/safedrive/safedrive/internal/db"
	"github.com/safedrive/safedrive/internal/domain"
	"github.com/safedrive/safedrive/internal/migrations"
	"github.com/safedrive/safedrive/internal/quote"
	"github.com/safedrive/safedrive/internal/store"
)

type fixture struct {
	d       *Dispatcher
	db      *sql.DB
	johnID  int64
	janeID  int64
	golfID  int64
	basicID int64
	fullID  int64
}

func newEmptyDispatcher(t *testing.T) *Dispatcher {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "dispatch-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	st := store.New(database)
	return New(st, quote.NewCalculator(st), 2024)
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	d := newEmptyDispatcher(t)
	f := fixture{d: d, db: d.store.DB()}

	f.johnID = mustExec(t, f.db, `
		INSERT INTO users (username, password_hash, email, first_name, last_name, phone, created_at)
		VALUES ('johndoe', 'x', 'john.doe@example.com', 'John', 'Doe', '555-123-4567', '2024-01-15 09:30:00')`)
	f.janeID = mustExec(t, f.db, `
		INSERT INTO users (username, password_hash, email, first_name, last_name, phone, created_at)
		VALUES ('janedoe', 'x', 'jane.doe@example.com', 'Jane', 'Doe', '555-987-6543', '2024-01-16 09:30:00')`)
	f.golfID = mustExec(t, f.db, `
		INSERT INTO vehicles (user_id, make, model, year, license_plate, value, mileage, created_at)
		VALUES (?, 'Volkswagen', 'Golf', 2018, '181-D-12345', 18000, 56000, '2024-02-01 10:00:00')`, f.johnID)
	f.basicID = mustExec(t, f.db, `
		INSERT INTO products (name, description, coverage_type, base_price, features)
		VALUES ('Third Party Only', 'Basic legal minimum cover', 'basic', 400, 'Third party liability, Legal protection')`)
	f.fullID = mustExec(t, f.db, `
		INSERT INTO products (name, description, coverage_type, base_price, features)
		VALUES ('Comprehensive', 'Full protection for your vehicle', 'premium', 1100, 'Own damage, Fire, Theft, Windscreen')`)
	mustExec(t, f.db, `
		INSERT INTO quotes (user_id, vehicle_id, product_id, price, status, created_at)
		VALUES (?, ?, ?, 550, 'pending', '2024-03-01 10:00:00')`, f.johnID, f.golfID, f.basicID)
	mustExec(t, f.db, `
		INSERT INTO quotes (user_id, vehicle_id, product_id, price, status, created_at)
		VALUES (?, ?, ?, 1320, 'approved', '2024-03-02 10:00:00')`, f.johnID, f.golfID, f.fullID)

	return f
}

func mustExec(t *testing.T, d *sql.DB, query string, args ...any) int64 {
	t.Helper()
	res, err := d.Exec(query, args...)
	if err != nil {
		t.Fatalf("exec fixture: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func TestDispatchUnknownOperation(t *testing.T) {
	d := newEmptyDispatcher(t)

	_, err := d.Dispatch(context.Background(), "drop_all_tables", Args{})
	if !errors.Is(err, domain.ErrUnknownOperation) {
		t.Fatalf("error = %v, want ErrUnknownOperation", err)
	}
}

func TestListProductsEmptyCatalogIsNotAnError(t *testing.T) {
	d := newEmptyDispatcher(t)

	text, err := d.Dispatch(context.Background(), OpListProducts, Args{})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "No insurance products") {
		t.Fatalf("expected explicit no-products message, got: %s", text)
	}
}

func TestListProductsRendersCatalog(t *testing.T) {
	f := newFixture(t)

	text, err := f.d.Dispatch(context.Background(), OpListProducts, Args{})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	// Ordered by base price: Third Party Only before Comprehensive.
	if strings.Index(text, "Third Party Only") > strings.Index(text, "Comprehensive") {
		t.Fatalf("products not ordered by base price:\n%s", text)
	}
	if !strings.Contains(text, "€400/year") {
		t.Fatalf("missing base price, got:\n%s", text)
	}
}

func TestUserInfoValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.d.Dispatch(ctx, OpUserInfo, Args{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing userId: error = %v, want ErrInvalidInput", err)
	}
	if _, err := f.d.Dispatch(ctx, OpUserInfo, Args{"userId": "abc"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("non-numeric userId: error = %v, want ErrInvalidInput", err)
	}
	if _, err := f.d.Dispatch(ctx, OpUserInfo, Args{"userId": 9999}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing user: error = %v, want ErrNotFound", err)
	}

	text, err := f.d.Dispatch(ctx, OpUserInfo, Args{"userId": float64(f.johnID)})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "johndoe") || !strings.Contains(text, "John Doe") {
		t.Fatalf("unexpected profile:\n%s", text)
	}
}

func TestUserVehiclesEmptyResultIsNotAFailure(t *testing.T) {
	f := newFixture(t)

	text, err := f.d.Dispatch(context.Background(), OpUserVehicles, Args{"userId": f.janeID})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "No vehicles found") {
		t.Fatalf("expected empty-result message, got:\n%s", text)
	}
}

func TestUserQuotesJoinedRendering(t *testing.T) {
	f := newFixture(t)

	text, err := f.d.Dispatch(context.Background(), OpUserQuotes, Args{"userId": f.johnID})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "Comprehensive") || !strings.Contains(text, "Golf") {
		t.Fatalf("quotes not joined with product/vehicle:\n%s", text)
	}
}

func TestCalculateQuoteProducesItemizedFactors(t *testing.T) {
	f := newFixture(t)

	// Use the structured record directly: no string matching needed
	// for the numeric assertions.
	rec, err := f.d.calculateQuote(context.Background(), Args{
		"vehicleId": f.golfID,
		"productId": f.fullID,
	})
	if err != nil {
		t.Fatalf("calculateQuote: %v", err)
	}

	bd := rec.(quoteBreakdown).Quote.Breakdown
	if bd.ValueFactor != 1.2 || bd.AgeFactor != 1.0 || bd.MileageFactor != 1.0 {
		t.Fatalf("unexpected factors: %+v", bd)
	}
	if bd.Premium != 1320 {
		t.Fatalf("premium = %v, want 1320", bd.Premium)
	}

	text, err := f.d.Dispatch(context.Background(), OpCalculateQuote, Args{
		"vehicleId": f.golfID,
		"productId": f.fullID,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "Value Factor: 1.20") || !strings.Contains(text, "€1320/year") {
		t.Fatalf("unexpected rendering:\n%s", text)
	}
}

func TestCalculateQuoteMissingIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.d.Dispatch(ctx, OpCalculateQuote, Args{"vehicleId": 9999, "productId": f.fullID}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing vehicle: error = %v, want ErrNotFound", err)
	}
	if _, err := f.d.Dispatch(ctx, OpCalculateQuote, Args{"vehicleId": f.golfID, "productId": 9999}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing product: error = %v, want ErrNotFound", err)
	}
	if _, err := f.d.Dispatch(ctx, OpCalculateQuote, Args{"vehicleId": f.golfID}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing productId: error = %v, want ErrInvalidInput", err)
	}
}

func TestSearchUserDelegatesToProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	text, err := f.d.Dispatch(ctx, OpSearchUser, Args{"username": "janedoe"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "jane.doe@example.com") {
		t.Fatalf("unexpected profile:\n%s", text)
	}

	if _, err := f.d.Dispatch(ctx, OpSearchUser, Args{"username": "ghost"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing user: error = %v, want ErrNotFound", err)
	}
	if _, err := f.d.Dispatch(ctx, OpSearchUser, Args{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing username: error = %v, want ErrInvalidInput", err)
	}
}

func TestRecentQuotesDefaultLimit(t *testing.T) {
	f := newFixture(t)

	rec, err := f.d.recentQuotes(context.Background(), Args{})
	if err != nil {
		t.Fatalf("recentQuotes: %v", err)
	}
	list := rec.(recentQuoteList)
	if list.Limit != defaultRecentLimit {
		t.Fatalf("limit = %d, want %d", list.Limit, defaultRecentLimit)
	}
	if len(list.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(list.Quotes))
	}

	// Explicit limit caps the result.
	rec, err = f.d.recentQuotes(context.Background(), Args{"limit": 1})
	if err != nil {
		t.Fatalf("recentQuotes: %v", err)
	}
	list = rec.(recentQuoteList)
	if len(list.Quotes) != 1 {
		t.Fatalf("expected 1 quote with limit=1, got %d", len(list.Quotes))
	}
}

func TestGeneralQuoteEstimate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.d.generalQuote(Args{"modelDescription": "Luxury Convertible", "driverAge": "22"})
	if err != nil {
		t.Fatalf("generalQuote: %v", err)
	}
	est := rec.(estimateRecord).Estimate
	if est.Premium != 1350 {
		t.Fatalf("premium = %v, want 1350", est.Premium)
	}

	if _, err := f.d.Dispatch(ctx, OpGeneralQuote, Args{"modelDescription": "sedan", "driverAge": "twenty"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unparseable age: error = %v, want ErrInvalidInput", err)
	}
	if _, err := f.d.Dispatch(ctx, OpGeneralQuote, Args{"driverAge": 30}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing model: error = %v, want ErrInvalidInput", err)
	}
}

func TestPolicyDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.d.Dispatch(ctx, OpPolicyDetails, Args{"policyNumber": "POL-7"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("non-numeric policy number: error = %v, want ErrInvalidInput", err)
	}
	if _, err := f.d.Dispatch(ctx, OpPolicyDetails, Args{"policyNumber": 9999}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing policy: error = %v, want ErrNotFound", err)
	}

	rec, err := f.d.policyDetails(ctx, Args{"policyNumber": "2"})
	if err != nil {
		t.Fatalf("policyDetails: %v", err)
	}
	policy := rec.(policyRecord)
	if policy.User.Username != "johndoe" || policy.Vehicle.Model != "Golf" || policy.Product.Name != "Comprehensive" {
		t.Fatalf("policy joins mismatch: %+v", policy)
	}

	text := policy.render()
	if !strings.Contains(text, "Status: Approved") {
		t.Fatalf("expected capitalized status, got:\n%s", text)
	}
}

func TestSearchVehiclesValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.d.Dispatch(ctx, OpSearchVehicles, Args{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("no criteria: error = %v, want ErrInvalidInput", err)
	}
	if _, err := f.d.Dispatch(ctx, OpSearchVehicles, Args{"maxMileage": "lots"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unparseable mileage: error = %v, want ErrInvalidInput", err)
	}

	// Empty match renders a distinct message, not an error.
	text, err := f.d.Dispatch(ctx, OpSearchVehicles, Args{"make": "Ferrari"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "No vehicles found matching") {
		t.Fatalf("expected no-match message, got:\n%s", text)
	}

	text, err = f.d.Dispatch(ctx, OpSearchVehicles, Args{"licensePlate": "181-D"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "Golf") {
		t.Fatalf("plate search missed the Golf:\n%s", text)
	}
}

func TestSearchUserDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.d.Dispatch(ctx, OpSearchUserDetails, Args{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("no criteria: error = %v, want ErrInvalidInput", err)
	}

	text, err := f.d.Dispatch(ctx, OpSearchUserDetails, Args{"licensePlate": "181-D"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(text, "johndoe") || !strings.Contains(text, "Golf") {
		t.Fatalf("plate search should surface owner and vehicles:\n%s", text)
	}
}
