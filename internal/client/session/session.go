// Package session holds the client's authentication state: an explicit
// observable context object passed to every view, wrapping the external
// identity capability.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/avolkov/StaffKeeper/internal/models"
)

// Provider is the external identity capability.
type Provider interface {
	Login(ctx context.Context, email, password string) (models.Identity, error)
	Register(ctx context.Context, email, password string) (models.Identity, error)
	Logout(ctx context.Context) error
	// Current resolves the active identity, or nil when none.
	Current(ctx context.Context) (*models.Identity, error)
}

// State is the session's authentication state.
type State int

const (
	// Unknown is the initial state, before the first Current lookup
	// resolves. Views must not assume it has passed at mount time.
	Unknown State = iota
	// Anonymous means no identity is signed in.
	Anonymous
	// Authenticated means an identity is signed in.
	Authenticated
)

// Context tracks the current authenticated identity and notifies
// subscribers on every change. All methods are safe for use from the
// single UI flow plus the asynchronous bootstrap.
type Context struct {
	provider Provider

	mu     sync.Mutex
	state  State
	user   *models.Identity
	subs   map[int]func()
	nextID int
}

// New constructs a session context in the Unknown state.
func New(provider Provider) *Context {
	return &Context{
		provider: provider,
		state:    Unknown,
		subs:     make(map[int]func()),
	}
}

// Bootstrap resolves the current identity from the provider and leaves
// the Unknown state. A lookup failure is treated as Anonymous.
func (c *Context) Bootstrap(ctx context.Context) {
	user, err := c.provider.Current(ctx)

	c.mu.Lock()
	if err != nil || user == nil {
		c.state = Anonymous
		c.user = nil
	} else {
		c.state = Authenticated
		c.user = user
	}
	c.mu.Unlock()

	c.notify()
}

// Login signs in with the given credentials. On failure the state stays
// Anonymous and the error carries the user-facing message.
func (c *Context) Login(ctx context.Context, email, password string) error {
	user, err := c.provider.Login(ctx, email, password)
	if err != nil {
		c.setAnonymous()
		return fmt.Errorf("Failed to log in: %w", err)
	}

	c.setAuthenticated(user)
	return nil
}

// Register creates an account and signs it in; same shape as Login.
func (c *Context) Register(ctx context.Context, email, password string) error {
	user, err := c.provider.Register(ctx, email, password)
	if err != nil {
		c.setAnonymous()
		return fmt.Errorf("Failed to register: %w", err)
	}

	c.setAuthenticated(user)
	return nil
}

// Logout clears the local session. The local state clears even when the
// remote call fails; the failure is still reported.
func (c *Context) Logout(ctx context.Context) error {
	err := c.provider.Logout(ctx)

	c.setAnonymous()

	if err != nil {
		return fmt.Errorf("Failed to log out: %w", err)
	}
	return nil
}

// Current returns the signed-in identity, or nil.
func (c *Context) Current() *models.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// State returns the current authentication state.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Ready reports whether the initial identity lookup has resolved.
func (c *Context) Ready() bool {
	return c.State() != Unknown
}

// Subscribe registers a change callback and returns its unsubscribe
// function. Callbacks run after every state transition.
func (c *Context) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Context) setAuthenticated(user models.Identity) {
	c.mu.Lock()
	c.state = Authenticated
	c.user = &user
	c.mu.Unlock()
	c.notify()
}

func (c *Context) setAnonymous() {
	c.mu.Lock()
	c.state = Anonymous
	c.user = nil
	c.mu.Unlock()
	c.notify()
}

// notify runs callbacks outside the lock so they may call back into the
// context.
func (c *Context) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
