package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token BLOB NOT NULL,
	saved_at INTEGER NOT NULL
);`

// Store persists the single bearer credential between runs. The token is
// sealed at rest with a locally generated key so a copied session file is
// useless without the key file next to it.
type Store struct {
	conn   *sql.DB
	key    [32]byte
	logger *slog.Logger
}

// Open creates or opens the session store at path. The sealing key is read
// from keyPath, generated with 0600 permissions on first use.
func Open(ctx context.Context, path, keyPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping session store: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init session schema: %w", err)
	}

	s := &Store{conn: conn, logger: logger}
	if err := s.loadKey(keyPath); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) loadKey(keyPath string) error {
	b, err := os.ReadFile(keyPath)
	switch {
	case err == nil:
		if len(b) != len(s.key) {
			return fmt.Errorf("sealing key %s has wrong size", keyPath)
		}
		copy(s.key[:], b)
		return nil
	case errors.Is(err, os.ErrNotExist):
		if _, err := rand.Read(s.key[:]); err != nil {
			return fmt.Errorf("generate sealing key: %w", err)
		}
		if err := os.WriteFile(keyPath, s.key[:], 0o600); err != nil {
			return fmt.Errorf("write sealing key: %w", err)
		}
		s.logger.Info("session: generated new sealing key", slog.String("path", keyPath))
		return nil
	default:
		return fmt.Errorf("read sealing key: %w", err)
	}
}

// Token returns the stored credential, or an empty string when none is
// persisted. It implements placement.TokenSource.
func (s *Store) Token(ctx context.Context) (string, error) {
	var sealed []byte
	err := s.conn.QueryRowContext(ctx, `SELECT token FROM session WHERE id = 1`).Scan(&sealed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("read credential: %w", err)
	}

	if len(sealed) < 24 {
		return "", fmt.Errorf("stored credential is malformed")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, &s.key)
	if !ok {
		return "", fmt.Errorf("stored credential cannot be unsealed")
	}
	return string(plain), nil
}

// SaveToken seals and persists the credential, replacing any previous one.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key)

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO session (id, token, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at`,
		sealed, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Clear wipes the persisted credential. Called exactly once per session, on
// authentication failure or explicit logout.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	s.logger.Info("session: credential cleared")
	return nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.conn.Close()
}
