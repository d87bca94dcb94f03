package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/StaffKeeper/internal/models"
)

type fakeProvider struct {
	loginErr    error
	registerErr error
	logoutErr   error
	current     *models.Identity
	currentErr  error
	user        models.Identity
}

func (f *fakeProvider) Login(ctx context.Context, email, password string) (models.Identity, error) {
	if f.loginErr != nil {
		return models.Identity{}, f.loginErr
	}
	return f.user, nil
}
func (f *fakeProvider) Register(ctx context.Context, email, password string) (models.Identity, error) {
	if f.registerErr != nil {
		return models.Identity{}, f.registerErr
	}
	return f.user, nil
}
func (f *fakeProvider) Logout(ctx context.Context) error {
	return f.logoutErr
}
func (f *fakeProvider) Current(ctx context.Context) (*models.Identity, error) {
	return f.current, f.currentErr
}

func TestStartsUnknown(t *testing.T) {
	c := New(&fakeProvider{})
	require.Equal(t, Unknown, c.State())
	require.False(t, c.Ready())
}

func TestBootstrap(t *testing.T) {
	tests := []struct {
		name      string
		provider  *fakeProvider
		wantState State
	}{
		{"no identity", &fakeProvider{}, Anonymous},
		{"active identity", &fakeProvider{current: &models.Identity{ID: "u1", Email: "ada@x.com"}}, Authenticated},
		{"lookup failure", &fakeProvider{currentErr: errors.New("offline")}, Anonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.provider)
			c.Bootstrap(context.Background())
			require.Equal(t, tt.wantState, c.State())
			require.True(t, c.Ready())
		})
	}
}

func TestLogin_SuccessNotifiesSubscribers(t *testing.T) {
	c := New(&fakeProvider{user: models.Identity{ID: "u1", Email: "ada@x.com"}})

	notified := 0
	unsub := c.Subscribe(func() { notified++ })
	defer unsub()

	require.NoError(t, c.Login(context.Background(), "ada@x.com", "pw"))
	require.Equal(t, Authenticated, c.State())
	require.Equal(t, "ada@x.com", c.Current().Email)
	require.Equal(t, 1, notified)
}

func TestLogin_FailureStaysAnonymous(t *testing.T) {
	c := New(&fakeProvider{loginErr: errors.New("invalid email or password")})

	err := c.Login(context.Background(), "ada@x.com", "wrong")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to log in: ")
	require.Equal(t, Anonymous, c.State())
	require.Nil(t, c.Current())
}

func TestLogout_ClearsLocalStateEvenOnRemoteFailure(t *testing.T) {
	provider := &fakeProvider{user: models.Identity{ID: "u1", Email: "ada@x.com"}}
	c := New(provider)
	require.NoError(t, c.Login(context.Background(), "ada@x.com", "pw"))

	provider.logoutErr = errors.New("server unreachable")
	err := c.Logout(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to log out: ")
	require.Equal(t, Anonymous, c.State())
	require.Nil(t, c.Current())
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	c := New(&fakeProvider{user: models.Identity{ID: "u1"}})

	notified := 0
	unsub := c.Subscribe(func() { notified++ })

	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw"))
	unsub()
	require.NoError(t, c.Logout(context.Background()))

	require.Equal(t, 1, notified)
}
