package stub_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmorita/sage/internal/api"
	"github.com/dmorita/sage/internal/chat"
	"github.com/dmorita/sage/internal/session"
)

// The full client stack against the stub backend: register, login, chat,
// logout, restore.
func TestClientAgainstStub(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	client := api.New(api.Config{BaseURL: srv.URL + "/api"})
	store := session.NewMemoryStore()
	mgr := session.NewManager(client, store, zap.NewNop())

	msg, err := mgr.Register(ctx, "Alan", "Turing", "alan@example.com", "enigma1")
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)
	assert.False(t, mgr.Authenticated())

	require.NoError(t, mgr.Login(ctx, "alan@example.com", "enigma1"))
	assert.True(t, mgr.Authenticated())

	user, ok := mgr.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Alan Turing", user.FullName())

	sess := chat.NewSession(client, mgr, zap.NewNop())
	sess.Send(ctx, "explain the halting problem")

	msgs := sess.Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].FromUser)
	assert.Contains(t, msgs[1].Content, "halting problem")

	// A fresh manager sharing the store picks the token back up on
	// restore, but stays anonymous until the next login.
	restored := session.NewManager(client, store, zap.NewNop())
	restored.Restore()
	token, ok := restored.Token()
	require.True(t, ok)
	assert.NotEmpty(t, token)
	assert.False(t, restored.Authenticated())

	// The restored token is still honored by the prompt endpoint.
	restoredChat := chat.NewSession(client, restored, zap.NewNop())
	restoredChat.Send(ctx, "still there?")
	require.Len(t, restoredChat.Messages(), 2)
	assert.NotContains(t, restoredChat.Messages()[1].Content, "log in")

	mgr.Logout()
	assert.False(t, mgr.Authenticated())
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestChatWithoutLoginAgainstStub(t *testing.T) {
	srv := newTestServer(t)

	client := api.New(api.Config{BaseURL: srv.URL + "/api"})
	mgr := session.NewManager(client, session.NewMemoryStore(), zap.NewNop())

	sess := chat.NewSession(client, mgr, zap.NewNop())
	sess.Send(context.Background(), "hello?")

	msgs := sess.Messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Content, "log in")
}
