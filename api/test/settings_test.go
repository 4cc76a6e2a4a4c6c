package test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/core/settings"
)

func TestSettings(t *testing.T) {
	env, err := NewTestEnv(t, defaultLoginBurst)
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ctx := context.Background()
	admin := env.SignedIn(t, env.AdminEmail, env.AdminPass)

	logo := "https://cdn.realtyonegroupmexico.mx/logo.png"
	theme := settings.ThemeLight
	if err := admin.Settings.Save(ctx, settings.SettingsUp{LogoURL: &logo, Theme: &theme}); err != nil {
		t.Fatalf("saving settings: %v", err)
	}

	want := settings.Defaults()
	want.LogoURL = logo
	want.Theme = theme

	// Settings are public.
	w, err := Do(env.Server, http.MethodGet, "/settings", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	var got settings.Settings
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("cannot unmarshal settings: %v", err)
	}

	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(settings.Settings{}, "UpdatedAt")); diff != "" {
		t.Fatalf("unexpected settings (-want +got):\n%s", diff)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatal("expected updatedAt to be set")
	}

	agent := env.SignedIn(t, env.UserEmail, env.UserPass)
	company := "Someone else"
	if err := agent.Settings.Save(ctx, settings.SettingsUp{CompanyName: &company}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := Login(env.Server, env.UserEmail, env.UserPass); err != nil {
		t.Fatal(err)
	}
	expectStatus(t, env.Server, http.MethodPut, "/settings", settings.SettingsUp{CompanyName: &company}, http.StatusForbidden)
	if err := Logout(env.Server); err != nil {
		t.Fatal(err)
	}

	if err := Login(env.Server, env.AdminEmail, env.AdminPass); err != nil {
		t.Fatal(err)
	}
	bad := "blue"
	expectStatus(t, env.Server, http.MethodPut, "/settings", settings.SettingsUp{Theme: &bad}, http.StatusUnprocessableEntity)
	if err := Logout(env.Server); err != nil {
		t.Fatal(err)
	}
}
