// internal/session/session.go
//
// Browser session identity.
// Responsibilities:
//   - Issue a random session ID (UUID) inside an HS256 JWT cookie.
//   - Read the token back from the Authorization header or the cookie.
//   - Middleware that guarantees every request carries a session ID in its context.
//
// Notes:
//   - The signing key is derived from the configured secret with HKDF-SHA256.
//   - Invalid or expired tokens are replaced by a fresh session, never rejected.

package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"
)

const issuer = "guessgame"

// ErrNoSession is returned when a request carries no valid session token.
var ErrNoSession = errors.New("session: no valid session")

// Options configures a Manager.
type Options struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool // Secure + SameSite=None cookies (production)
}

// Manager issues and verifies session tokens.
type Manager struct {
	key    []byte
	cookie string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager derives the signing key from opts.Secret.
func NewManager(opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, errors.New("session: empty secret")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(opts.Secret), nil, []byte("guessgame session v1")), key); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	if opts.CookieName == "" {
		opts.CookieName = "guessgame_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 180 * 24 * time.Hour
	}
	return &Manager{key: key, cookie: opts.CookieName, ttl: opts.TTL, secure: opts.Secure, now: time.Now}, nil
}

// Sign creates a token for id.
func (m *Manager) Sign(id string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(m.key)
	return ss, exp, err
}

// Parse verifies token and returns the session ID.
func (m *Manager) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !t.Valid {
		return "", fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: bad subject", ErrNoSession)
	}
	return claims.Subject, nil
}

// FromRequest returns the session ID carried by r.
func (m *Manager) FromRequest(r *http.Request) (string, error) {
	tok := m.bearerOrCookie(r)
	if tok == "" {
		return "", ErrNoSession
	}
	return m.Parse(tok)
}

// Issue creates a new session, sets its cookie on w and returns the ID.
func (m *Manager) Issue(w http.ResponseWriter) (string, error) {
	id := uuid.NewString()
	tok, exp, err := m.Sign(id)
	if err != nil {
		return "", err
	}
	sameSite := http.SameSiteLaxMode
	if m.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
	return id, nil
}

// bearerOrCookie extracts a bearer token from Authorization header or the session cookie.
func (m *Manager) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(m.cookie); err == nil {
		return c.Value
	}
	return ""
}

type ctxKey struct{}

// Middleware ensures a session ID is in the request context, issuing one if needed.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.FromRequest(r)
		if err != nil {
			id, err = m.Issue(w)
			if err != nil {
				log.Error().Err(err).Msg("issue session")
				http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
				return
			}
			log.Debug().Str("session", id).Msg("new session")
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

// WithID returns ctx carrying the session ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the session ID from ctx, or "".
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
