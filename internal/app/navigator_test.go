package app_test

import (
	"testing"

	"dogslife-quiz/internal/app"
)

func TestNavigatorParticipantFlow(t *testing.T) {
	nav := app.NewNavigator()

	steps := []func(app.Navigator) (app.Navigator, bool){
		app.Navigator.ChooseParticipant,
		app.Navigator.StartGame,
		app.Navigator.FinishGame,
		app.Navigator.Restart,
	}
	want := []app.View{app.ViewSelection, app.ViewGame, app.ViewResult, app.ViewSelection}
	for i, step := range steps {
		var ok bool
		nav, ok = step(nav)
		if !ok || nav.View != want[i] {
			t.Fatalf("step %d: ok=%v view=%s", i, ok, nav.View)
		}
	}
	if nav.Role != app.RoleParticipant {
		t.Fatalf("expected participant role, got %q", nav.Role)
	}
}

func TestNavigatorAdminFlow(t *testing.T) {
	nav := app.NewNavigator()

	if _, ok := nav.AdminAuthenticated(); ok {
		t.Fatalf("dashboard must require the login view")
	}
	nav, _ = nav.ChooseAdmin()
	if nav.View != app.ViewAdminLogin || nav.Role != app.RoleNone {
		t.Fatalf("unexpected navigator %+v", nav)
	}
	nav, ok := nav.AdminAuthenticated()
	if !ok || nav.View != app.ViewAdminDashboard || nav.Role != app.RoleAdmin {
		t.Fatalf("unexpected navigator %+v", nav)
	}
	if nav = nav.Home(); nav.View != app.ViewStart || nav.Role != app.RoleNone {
		t.Fatalf("home must reset, got %+v", nav)
	}
}

func TestNavigatorRejectsInvalidMoves(t *testing.T) {
	nav := app.NewNavigator()
	if next, ok := nav.StartGame(); ok || next != nav {
		t.Fatalf("start game from start view must be rejected")
	}
	if _, ok := nav.FinishGame(); ok {
		t.Fatalf("finish from start view must be rejected")
	}
	if _, ok := nav.Restart(); ok {
		t.Fatalf("restart from start view must be rejected")
	}
}
