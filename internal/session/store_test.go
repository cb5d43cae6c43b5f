package session_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/session"
)

func openStore(t *testing.T, dir string) *session.Store {
	t.Helper()
	store, err := session.Open(context.Background(),
		filepath.Join(dir, "session.db"), filepath.Join(dir, "session.db.key"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, t.TempDir())

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok, "fresh store must report no credential")

	require.NoError(t, store.SaveToken(ctx, "bearer-token-1"))
	tok, err = store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "bearer-token-1", tok)

	// saving again replaces, never appends
	require.NoError(t, store.SaveToken(ctx, "bearer-token-2"))
	tok, err = store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "bearer-token-2", tok)

	require.NoError(t, store.Clear(ctx))
	tok, err = store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestStore_TokenSealedAtRest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := openStore(t, dir)

	const secret = "very-recognizable-token-value"
	require.NoError(t, store.SaveToken(ctx, secret))
	require.NoError(t, store.Close())

	raw, err := os.ReadFile(filepath.Join(dir, "session.db"))
	require.NoError(t, err)
	require.False(t, bytes.Contains(raw, []byte(secret)),
		"token must not appear in plaintext on disk")
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := openStore(t, dir)
	require.NoError(t, store.SaveToken(ctx, "persisted"))
	require.NoError(t, store.Close())

	reopened := openStore(t, dir)
	tok, err := reopened.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "persisted", tok)
}

func TestStore_WrongKeyCannotUnseal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := openStore(t, dir)
	require.NoError(t, store.SaveToken(ctx, "sealed"))
	require.NoError(t, store.Close())

	// losing the key file forces a fresh key; the old blob must not unseal
	require.NoError(t, os.Remove(filepath.Join(dir, "session.db.key")))
	reopened := openStore(t, dir)
	_, err := reopened.Token(ctx)
	require.Error(t, err)
}
