package app

// View is a top-level screen.
type View string

const (
	ViewStart          View = "start"
	ViewAdminLogin     View = "admin_login"
	ViewAdminDashboard View = "admin_dashboard"
	ViewSelection      View = "selection"
	ViewGame           View = "game"
	ViewResult         View = "result"
)

// Role is who is using the application.
type Role string

const (
	RoleNone        Role = ""
	RoleParticipant Role = "participant"
	RoleAdmin       Role = "admin"
)

// Navigator is the view router. Transitions return a new Navigator and whether
// the move was allowed from the current view.
type Navigator struct {
	View View
	Role Role
}

func NewNavigator() Navigator {
	return Navigator{View: ViewStart}
}

func (n Navigator) ChooseParticipant() (Navigator, bool) {
	if n.View != ViewStart {
		return n, false
	}
	return Navigator{View: ViewSelection, Role: RoleParticipant}, true
}

func (n Navigator) ChooseAdmin() (Navigator, bool) {
	if n.View != ViewStart {
		return n, false
	}
	return Navigator{View: ViewAdminLogin}, true
}

// AdminAuthenticated is called after a successful password check.
func (n Navigator) AdminAuthenticated() (Navigator, bool) {
	if n.View != ViewAdminLogin {
		return n, false
	}
	return Navigator{View: ViewAdminDashboard, Role: RoleAdmin}, true
}

func (n Navigator) StartGame() (Navigator, bool) {
	if n.View != ViewSelection {
		return n, false
	}
	n.View = ViewGame
	return n, true
}

func (n Navigator) FinishGame() (Navigator, bool) {
	if n.View != ViewGame {
		return n, false
	}
	n.View = ViewResult
	return n, true
}

// Restart goes from the result back to the selection screen.
func (n Navigator) Restart() (Navigator, bool) {
	if n.View != ViewResult {
		return n, false
	}
	n.View = ViewSelection
	return n, true
}

// Home is always allowed and drops the role.
func (n Navigator) Home() Navigator {
	return NewNavigator()
}
