package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

// ErrNoCredential means no token is persisted; the caller goes straight to
// the login surface without touching the network.
var ErrNoCredential = errors.New("session: no stored credential")

// Session is the identity resolved at bootstrap. It is built once, injected
// into every component that needs it, and immutable for the page lifetime;
// nothing reads identity through ambient state.
type Session struct {
	User models.User
	Role string
}

// Bootstrap validates the stored credential and resolves the identity.
// Any validation failure wipes the store and fails closed: the only
// recovery is a fresh login.
func Bootstrap(ctx context.Context, store *Store, client *placement.Client, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tok, err := store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, ErrNoCredential
	}

	// A locally expired token cannot succeed; skip the round trip. The
	// claims are not trusted beyond the expiry timestamp.
	if expired(tok) {
		logger.Info("session: stored token expired")
		if cerr := store.Clear(ctx); cerr != nil {
			logger.Error("session: clear after expiry", slog.Any("err", cerr))
		}
		return nil, placement.ErrAuthExpired
	}

	user, err := client.Me(ctx)
	if err != nil {
		logger.Warn("session: identity fetch failed", slog.Any("err", err))
		if cerr := store.Clear(ctx); cerr != nil {
			logger.Error("session: clear after failed bootstrap", slog.Any("err", cerr))
		}
		return nil, fmt.Errorf("%w: %w", placement.ErrAuthExpired, err)
	}

	sess := &Session{User: user, Role: strings.ToLower(user.Role)}
	logger.Info("session: bootstrapped",
		slog.String("username", user.Username),
		slog.String("role", sess.Role),
	)
	return sess, nil
}

// Login authenticates, persists the returned token and resolves the full
// identity behind it.
func Login(ctx context.Context, store *Store, client *placement.Client, username, password string) (*Session, error) {
	res, err := client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := store.SaveToken(ctx, res.AccessToken); err != nil {
		return nil, err
	}

	user, err := client.Me(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Role: strings.ToLower(user.Role)}, nil
}

// Register creates a company account against a verified company id,
// persists the returned token and resolves the identity, same as Login.
func Register(ctx context.Context, store *Store, client *placement.Client, companyID, companyName, password string) (*Session, error) {
	res, err := client.RegisterCompany(ctx, companyID, companyName, password)
	if err != nil {
		return nil, err
	}
	if err := store.SaveToken(ctx, res.AccessToken); err != nil {
		return nil, err
	}

	user, err := client.Me(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Role: strings.ToLower(user.Role)}, nil
}

// Logout clears the persisted credential and tells the backend, best
// effort, that the session is over.
func Logout(ctx context.Context, store *Store, client *placement.Client, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := client.Logout(ctx); err != nil {
		logger.Warn("session: server logout failed", slog.Any("err", err))
	}
	return store.Clear(ctx)
}

// expired reports whether the token carries an exp claim in the past. The
// signature is not checked here; the server remains the authority.
func expired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		// Unparseable tokens go through Me and fail there.
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
