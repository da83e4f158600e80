package guard

// Session is the slice of session state the guard decides on.
type Session struct {
	Loading       bool
	Authenticated bool
	Admin         bool
}

// Action is the routing decision for a requested destination.
type Action int

const (
	// ActionRender serves the requested destination.
	ActionRender Action = iota
	// ActionLoading renders a neutral placeholder while the session
	// bootstrap is still in flight.
	ActionLoading
	// ActionRedirectLogin sends the visitor to the login destination,
	// preserving the originally requested path.
	ActionRedirectLogin
	// ActionRedirectHome denies an admin-only destination.
	ActionRedirectHome
)

// Decision carries the action plus the path to return to after login.
type Decision struct {
	Action     Action
	ReturnPath string
}

// Requirements describe what the requested destination demands.
type Requirements struct {
	Auth  bool
	Admin bool
}

// Decide is a pure function of current session state; it holds no state
// of its own and is recomputed on every navigation.
func Decide(sess Session, requestedPath string, req Requirements) Decision {
	if sess.Loading {
		return Decision{Action: ActionLoading}
	}
	needsAuth := req.Auth || req.Admin
	if needsAuth && !sess.Authenticated {
		return Decision{Action: ActionRedirectLogin, ReturnPath: requestedPath}
	}
	if req.Admin && !sess.Admin {
		return Decision{Action: ActionRedirectHome}
	}
	return Decision{Action: ActionRender}
}
