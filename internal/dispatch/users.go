package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/safedrive/safedrive/internal/domain"
)

// userProfile is the structured result of user_info and search_user.
type userProfile struct {
	User domain.User
}

func (d *Dispatcher) userInfo(ctx context.Context, args Args) (record, error) {
	userID, err := requiredID(args, "userId")
	if err != nil {
		return nil, err
	}

	user, err := d.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userProfile{User: user}, nil
}

// searchUser resolves an exact username and delegates to the profile
// record.
func (d *Dispatcher) searchUser(ctx context.Context, args Args) (record, error) {
	username := stringArg(args, "username")
	if username == "" {
		return nil, domain.InvalidInputf("username is required")
	}

	user, err := d.store.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return userProfile{User: user}, nil
}

func (r userProfile) render() string {
	u := r.User
	var b strings.Builder
	b.WriteString("User Information:")
	fmt.Fprintf(&b, "\n  Username: %s", u.Username)
	fmt.Fprintf(&b, "\n  Name: %s", u.FullName())
	fmt.Fprintf(&b, "\n  Email: %s", u.Email)
	fmt.Fprintf(&b, "\n  Phone: %s", u.Phone)
	fmt.Fprintf(&b, "\n  Member since: %s", dateOnly(u.CreatedAt))
	return b.String()
}

// userMatches is the structured result of search_user_details: each
// matched user carries their vehicles.
type userMatches struct {
	Matches []userWithVehicles
}

type userWithVehicles struct {
	User     domain.User
	Vehicles []domain.Vehicle
}

func (d *Dispatcher) searchUserDetails(ctx context.Context, args Args) (record, error) {
	filter := domain.UserFilter{
		LicensePlate: stringArg(args, "licensePlate"),
		FirstName:    stringArg(args, "firstName"),
		LastName:     stringArg(args, "lastName"),
	}
	if filter.Empty() {
		return nil, domain.InvalidInputf("provide at least one search criterion: licensePlate, firstName, or lastName")
	}

	users, err := d.store.SearchUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	matches := make([]userWithVehicles, 0, len(users))
	for _, u := range users {
		vehicles, err := d.store.ListVehiclesByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		matches = append(matches, userWithVehicles{User: u, Vehicles: vehicles})
	}
	return userMatches{Matches: matches}, nil
}

func (r userMatches) render() string {
	if len(r.Matches) == 0 {
		return "No users found matching the specified criteria."
	}

	parts := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		section := userProfile{User: m.User}.render()
		section += "\n\n" + vehicleList{Vehicles: m.Vehicles}.render()
		parts = append(parts, section)
	}
	return "Found Users:\n\n" + strings.Join(parts, "\n\n")
}
