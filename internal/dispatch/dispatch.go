// Package dispatch maps named query operations with typed arguments
// onto the closed set of domain reads and computations exposed to the
// assistant and the web flow.
//
// The dispatcher is the safety boundary between free-form assistant
// input and the data store: only the operations registered here are
// reachable, each with its own argument validation. Every operation
// first builds a structured record and only formats it to text at the
// boundary, so the logic is testable without string matching.
package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/safedrive/safedrive/internal/domain"
	"github.com/safedrive/safedrive/internal/quote"
	"github.com/safedrive/safedrive/internal/store"
)

// Operation names. The set is closed: anything else yields
// UnknownOperation.
const (
	OpListProducts      = "list_products"
	OpUserInfo          = "user_info"
	OpUserVehicles      = "user_vehicles"
	OpUserQuotes        = "user_quotes"
	OpCalculateQuote    = "calculate_quote"
	OpSearchUser        = "search_user"
	OpRecentQuotes      = "recent_quotes"
	OpGeneralQuote      = "general_quote"
	OpPolicyDetails     = "policy_details"
	OpSearchVehicles    = "search_vehicles"
	OpSearchUserDetails = "search_user_details"
)

// defaultRecentLimit applies when recent_quotes is called without a
// limit argument.
const defaultRecentLimit = 10

// Args is the bag of named arguments for one operation. Values arrive
// as strings or JSON numbers depending on the transport.
type Args map[string]any

// Dispatcher resolves operation names to domain reads and premium
// calculations. It holds no per-call state and is safe for concurrent
// use.
type Dispatcher struct {
	store         *store.Store
	calc          *quote.Calculator
	referenceYear int
}

// New creates a Dispatcher. The reference year is fixed at
// construction so repeated calls with identical inputs stay
// deterministic.
func New(st *store.Store, calc *quote.Calculator, referenceYear int) *Dispatcher {
	return &Dispatcher{store: st, calc: calc, referenceYear: referenceYear}
}

// record is one structured operation result, formatted to text only at
// the dispatch boundary.
type record interface {
	render() string
}

// Dispatch runs the named operation. All failures come back as typed
// domain errors, never as panics; an unrecognized name yields an
// UnknownOperation error the caller can surface as a plain message.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args Args) (string, error) {
	var (
		rec record
		err error
	)

	switch name {
	case OpListProducts:
		rec, err = d.listProducts(ctx)
	case OpUserInfo:
		rec, err = d.userInfo(ctx, args)
	case OpUserVehicles:
		rec, err = d.userVehicles(ctx, args)
	case OpUserQuotes:
		rec, err = d.userQuotes(ctx, args)
	case OpCalculateQuote:
		rec, err = d.calculateQuote(ctx, args)
	case OpSearchUser:
		rec, err = d.searchUser(ctx, args)
	case OpRecentQuotes:
		rec, err = d.recentQuotes(ctx, args)
	case OpGeneralQuote:
		rec, err = d.generalQuote(args)
	case OpPolicyDetails:
		rec, err = d.policyDetails(ctx, args)
	case OpSearchVehicles:
		rec, err = d.searchVehicles(ctx, args)
	case OpSearchUserDetails:
		rec, err = d.searchUserDetails(ctx, args)
	default:
		return "", domain.UnknownOperationf("unknown query type: %s", name)
	}

	if err != nil {
		return "", err
	}
	return rec.render(), nil
}

// ─── Argument helpers ────────────────────────────────────────────────

// stringArg returns the trimmed string value for key, or "" when the
// key is absent.
func stringArg(args Args, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// intArg parses an integer argument, accepting JSON numbers and
// numeric strings. Missing keys report ok=false; present but
// unparseable values report an InvalidInput error.
func intArg(args Args, key string) (int64, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch t := v.(type) {
	case float64:
		return int64(t), true, nil
	case int:
		return int64(t), true, nil
	case int64:
		return t, true, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false, domain.InvalidInputf("%s must be a number, got '%s'", key, s)
		}
		return n, true, nil
	default:
		return 0, false, domain.InvalidInputf("%s must be a number", key)
	}
}

// floatArg parses a float argument with the same conventions as
// intArg.
func floatArg(args Args, key string) (float64, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch t := v.(type) {
	case float64:
		return t, true, nil
	case int:
		return float64(t), true, nil
	case int64:
		return float64(t), true, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, domain.InvalidInputf("%s must be a number, got '%s'", key, s)
		}
		return f, true, nil
	default:
		return 0, false, domain.InvalidInputf("%s must be a number", key)
	}
}

// requiredID extracts a mandatory positive id argument.
func requiredID(args Args, key string) (int64, error) {
	id, ok, err := intArg(args, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.InvalidInputf("%s is required", key)
	}
	if id <= 0 {
		return 0, domain.InvalidInputf("%s must be positive, got %d", key, id)
	}
	return id, nil
}

// dateOnly trims a stored "YYYY-MM-DD HH:MM:SS" timestamp to its date.
func dateOnly(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// dateTime trims a stored timestamp to minute precision.
func dateTime(ts string) string {
	if len(ts) >= 16 {
		return ts[:16]
	}
	return ts
}
