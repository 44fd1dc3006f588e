package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmorita/sage/internal/model"
	"github.com/dmorita/sage/internal/session"
)

// fakeAPI scripts the network client for manager tests.
type fakeAPI struct {
	loginResp    model.AuthResponse
	loginErr     error
	registerMsg  string
	registerErr  error
	loginCalls   int
	registerCall int
}

func (f *fakeAPI) Login(_ context.Context, _ model.UserLogin) (model.AuthResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, _ model.UserRegistration) (string, error) {
	f.registerCall++
	return f.registerMsg, f.registerErr
}

func authResponse() model.AuthResponse {
	return model.AuthResponse{
		Token: "tok-123",
		User: model.AuthUser{
			ID:        "u1",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			CreatedAt: "2024-01-01T00:00:00Z",
			LastLogin: "2024-06-01T12:00:00Z",
		},
	}
}

func TestLoginPopulatesSession(t *testing.T) {
	apiClient := &fakeAPI{loginResp: authResponse()}
	store := session.NewMemoryStore()
	mgr := session.NewManager(apiClient, store, zap.NewNop())

	require.NoError(t, mgr.Login(context.Background(), "ada@example.com", "secret1"))

	assert.True(t, mgr.Authenticated())

	token, ok := mgr.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	user, ok := mgr.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", user.FullName())

	want := model.User{
		ID:        "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LastLogin: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, user); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}

	// Token persisted for the next process start.
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored)
}

func TestLoginDateRoundTrip(t *testing.T) {
	apiClient := &fakeAPI{loginResp: authResponse()}
	mgr := session.NewManager(apiClient, session.NewMemoryStore(), zap.NewNop())

	require.NoError(t, mgr.Login(context.Background(), "ada@example.com", "secret1"))

	user, ok := mgr.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "2024-01-01T00:00:00Z", user.CreatedAt.Format(time.RFC3339))
}

func TestLoginUnparseableDatesFallBackToNow(t *testing.T) {
	resp := authResponse()
	resp.User.CreatedAt = "not-a-date"
	resp.User.LastLogin = ""
	apiClient := &fakeAPI{loginResp: resp}
	mgr := session.NewManager(apiClient, session.NewMemoryStore(), zap.NewNop())

	before := time.Now()
	require.NoError(t, mgr.Login(context.Background(), "ada@example.com", "secret1"))
	after := time.Now()

	user, ok := mgr.CurrentUser()
	require.True(t, ok)
	assert.False(t, user.CreatedAt.Before(before))
	assert.False(t, user.CreatedAt.After(after))
	assert.False(t, user.LastLogin.Before(before))
}

func TestLoginFailureLeavesAnonymous(t *testing.T) {
	apiClient := &fakeAPI{loginErr: errors.New("server error with code: 401")}
	store := session.NewMemoryStore()
	mgr := session.NewManager(apiClient, store, zap.NewNop())

	err := mgr.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)

	assert.False(t, mgr.Authenticated())
	_, ok := mgr.Token()
	assert.False(t, ok)
	_, ok = mgr.CurrentUser()
	assert.False(t, ok)
	assert.False(t, store.Has())
}

func TestRegisterDoesNotChangeState(t *testing.T) {
	apiClient := &fakeAPI{registerMsg: "account created"}
	mgr := session.NewManager(apiClient, session.NewMemoryStore(), zap.NewNop())

	msg, err := mgr.Register(context.Background(), "Ada", "Lovelace", "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "account created", msg)

	assert.False(t, mgr.Authenticated())
	_, ok := mgr.Token()
	assert.False(t, ok)
}

func TestRegisterSurfacesErrorUnchanged(t *testing.T) {
	wantErr := errors.New("server error with code: 409")
	apiClient := &fakeAPI{registerErr: wantErr}
	mgr := session.NewManager(apiClient, session.NewMemoryStore(), zap.NewNop())

	_, err := mgr.Register(context.Background(), "Ada", "Lovelace", "ada@example.com", "secret1")
	assert.ErrorIs(t, err, wantErr)
}

func TestLogoutClearsEverything(t *testing.T) {
	apiClient := &fakeAPI{loginResp: authResponse()}
	store := session.NewMemoryStore()
	mgr := session.NewManager(apiClient, store, zap.NewNop())

	require.NoError(t, mgr.Login(context.Background(), "ada@example.com", "secret1"))
	mgr.Logout()

	assert.False(t, mgr.Authenticated())
	_, ok := mgr.Token()
	assert.False(t, ok)
	_, ok = mgr.CurrentUser()
	assert.False(t, ok)
	assert.False(t, store.Has())
}

func TestLogoutWhileAnonymousIsHarmless(t *testing.T) {
	mgr := session.NewManager(&fakeAPI{}, session.NewMemoryStore(), zap.NewNop())
	mgr.Logout()
	assert.False(t, mgr.Authenticated())
}

func TestRestorePopulatesTokenOnly(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Save("stale-token"))

	mgr := session.NewManager(&fakeAPI{}, store, zap.NewNop())
	mgr.Restore()

	// The token is usable again, but the session still looks anonymous:
	// the stored token is never re-validated against the server.
	token, ok := mgr.Token()
	require.True(t, ok)
	assert.Equal(t, "stale-token", token)
	assert.False(t, mgr.Authenticated())
	_, ok = mgr.CurrentUser()
	assert.False(t, ok)
}

func TestRestoreWithEmptyStoreIsNoOp(t *testing.T) {
	mgr := session.NewManager(&fakeAPI{}, session.NewMemoryStore(), zap.NewNop())
	mgr.Restore()
	_, ok := mgr.Token()
	assert.False(t, ok)
}
