package guard

import (
	"testing"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
)

func TestCheck(t *testing.T) {
	ava := &models.User{ID: "u1", Name: "Ava"}

	tests := []struct {
		name  string
		route constants.Route
		user  *models.User
		token string
		want  constants.Route
	}{
		{name: "identity and credential", route: constants.RouteDashboard, user: ava, token: "t1", want: constants.RouteDashboard},
		{name: "habits allowed", route: constants.RouteHabits, user: ava, token: "t1", want: constants.RouteHabits},
		{name: "identity without credential", route: constants.RouteDashboard, user: ava, token: "", want: constants.RouteAuth},
		{name: "credential without identity", route: constants.RouteHabits, user: nil, token: "t1", want: constants.RouteAuth},
		{name: "neither", route: constants.RouteDashboard, user: nil, token: "", want: constants.RouteAuth},
		{name: "public route", route: constants.RoutePublic, user: nil, token: "", want: constants.RoutePublic},
		{name: "auth route", route: constants.RouteAuth, user: nil, token: "", want: constants.RouteAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := storage.NewMemoryStore(tt.token)
			if got := Check(tt.route, tt.user, creds); got != tt.want {
				t.Errorf("Check() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAllowedReadsCredentialEveryTime(t *testing.T) {
	ava := &models.User{ID: "u1", Name: "Ava"}
	creds := storage.NewMemoryStore("t1")

	if !Allowed(ava, creds) {
		t.Fatal("Allowed() = false with identity and credential")
	}
	creds.Set("")
	if Allowed(ava, creds) {
		t.Error("Allowed() = true after the credential was removed")
	}
	if Allowed(ava, nil) {
		t.Error("Allowed() = true without a store")
	}
}
