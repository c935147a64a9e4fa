// Package guard decides whether an authenticated view may be shown
package guard

import (
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

// Allowed reports whether a user is loaded and a credential is persisted.
// Neither is enough alone: the credential may have been removed by another
// process while the identity is still in memory.
func Allowed(user *models.User, creds storage.CredentialStore) bool {
	return user != nil && creds != nil && storage.HasToken(creds)
}

// Protected reports whether route requires a signed-in user
func Protected(route constants.Route) bool {
	switch route {
	case constants.RouteDashboard, constants.RouteHabits:
		return true
	default:
		return false
	}
}

// Check returns the route to show for a navigation to route. Protected
// routes redirect to the sign-in view unless Allowed.
func Check(route constants.Route, user *models.User, creds storage.CredentialStore) constants.Route {
	if !Protected(route) || Allowed(user, creds) {
		return route
	}
	return constants.RouteAuth
}
