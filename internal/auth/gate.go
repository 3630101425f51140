package auth

import "sync"

// State classifies a client session for navigation purposes.
type State int

const (
	StateUnauthenticated State = iota
	StateGuest
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateGuest:
		return "guest"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// RoutesApp reports whether the state routes to the full application
// navigation. Only Unauthenticated is held at the login flow.
func (s State) RoutesApp() bool {
	return s == StateGuest || s == StateAuthenticated
}

// Gate is the session classifier driving which navigation tree a client
// sees. It starts pending: until the initial session check resolves,
// nothing may be routed at all.
type Gate struct {
	mu       sync.Mutex
	state    State
	pending  bool
	watchers []chan State
}

func NewGate() *Gate {
	return &Gate{
		state:   StateUnauthenticated,
		pending: true,
	}
}

// Pending reports whether the initial session check is still outstanding.
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}

// State returns the current classification. Meaningless while Pending.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Resolve completes the initial session check: a signed-in identity routes
// to Authenticated, none to Unauthenticated. Resolving an already resolved
// gate re-classifies the same way, mirroring a repeated auth-state event.
func (g *Gate) Resolve(identity *Identity) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pending = false
	switch {
	case identity == nil:
		g.transition(StateUnauthenticated)
	case identity.Guest:
		g.transition(StateGuest)
	default:
		g.transition(StateAuthenticated)
	}
}

// Guest moves an unauthenticated client into guest browsing. Only valid
// from the resolved Unauthenticated state; elsewhere it is a no-op.
func (g *Gate) Guest() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending || g.state != StateUnauthenticated {
		return
	}
	g.transition(StateGuest)
}

// SignIn records a successful sign-in or registration.
func (g *Gate) SignIn() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pending = false
	g.transition(StateAuthenticated)
}

// SignOut returns the client to the login flow. This is the only path out
// of Guest as well; guests leave by signing out through profile
// management.
func (g *Gate) SignOut() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.pending = false
	g.transition(StateUnauthenticated)
}

// Watch delivers every subsequent state change, mirroring an auth-state
// observer. The channel is buffered; a slow receiver drops updates rather
// than blocking the gate.
func (g *Gate) Watch() <-chan State {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch := make(chan State, 8)
	g.watchers = append(g.watchers, ch)
	return ch
}

// transition must be called with g.mu held.
func (g *Gate) transition(next State) {
	if g.state == next {
		return
	}
	g.state = next
	for _, ch := range g.watchers {
		select {
		case ch <- next:
		default:
		}
	}
}
