package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/evently/internal/common"
	"github.com/dmitrijs2005/evently/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock"
)

// Store is the persistent client store the session reads the token from.
// metadata.Repository satisfies it.
//
// Get must return a nil slice for a missing key and a non-nil one for a key
// holding an empty value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Claims mirrors the payload issued by the backend at login/registration.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Identity is the decoded token.
type Identity struct {
	ExpiresAt time.Time
	UserID    string
	Name      string
	Email     string
	IsAdmin   bool
}

// User is the identity without its expiry.
type User struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
}

type Session struct {
	store  Store
	clock  clock.Clock
	parser *jwt.Parser
	log    logging.Logger
}

// New builds a Session over store. A nil clk means the wall clock.
func New(store Store, clk clock.Clock, log logging.Logger) *Session {
	if clk == nil {
		clk = clock.WallClock
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Session{
		store:  store,
		clock:  clk,
		parser: jwt.NewParser(),
		log:    log,
	}
}

// StoreToken persists token as-is.
func (s *Session) StoreToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, common.TokenKey, []byte(token))
}

// ClearToken removes the token. Calling it with no token stored is a no-op.
func (s *Session) ClearToken(ctx context.Context) error {
	return s.store.Delete(ctx, common.TokenKey)
}

// CurrentToken returns the raw stored token. A stored empty string is
// returned as present; a missing key or a store read failure counts as no
// token.
func (s *Session) CurrentToken(ctx context.Context) (string, bool) {
	b, err := s.store.Get(ctx, common.TokenKey)
	if err != nil {
		s.log.Warn(ctx, "token store read failed", "error", err)
		return "", false
	}
	if b == nil {
		return "", false
	}
	return string(b), true
}

// Decode extracts the identity from the stored token without verifying its
// signature.
func (s *Session) Decode(ctx context.Context) (*Identity, bool) {
	token, ok := s.CurrentToken(ctx)
	if !ok {
		return nil, false
	}
	id, err := s.decode(token)
	if err != nil {
		s.log.Debug(ctx, "token decode failed", "error", err)
		return nil, false
	}
	return id, true
}

func (s *Session) decode(token string) (*Identity, error) {
	var claims Claims
	if _, _, err := s.parser.ParseUnverified(token, &claims); err != nil {
		return nil, err
	}
	if claims.ExpiresAt == nil || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}
	return &Identity{
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
		UserID:    claims.UserID,
		Name:      claims.Name,
		Email:     claims.Email,
		IsAdmin:   claims.IsAdmin,
	}, nil
}

// IsSessionValid reports whether a decodable token is stored and has not
// expired yet.
func (s *Session) IsSessionValid(ctx context.Context) bool {
	id, ok := s.Decode(ctx)
	if !ok {
		return false
	}
	return id.ExpiresAt.After(s.clock.Now())
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.IsSessionValid(ctx)
}

// CurrentUser projects the decoded identity. It does not look at expiry.
func (s *Session) CurrentUser(ctx context.Context) (*User, bool) {
	id, ok := s.Decode(ctx)
	if !ok {
		return nil, false
	}
	return &User{
		UserID:  id.UserID,
		Name:    id.Name,
		Email:   id.Email,
		IsAdmin: id.IsAdmin,
	}, true
}

// IsAdminUser reports the isAdmin claim; false on any decode failure.
func (s *Session) IsAdminUser(ctx context.Context) bool {
	id, ok := s.Decode(ctx)
	return ok && id.IsAdmin
}

// CanMutate guards create, update, delete and navigate-to-edit. It must be
// asked right before acting, never cached.
func (s *Session) CanMutate(ctx context.Context) bool {
	return s.IsAdminUser(ctx)
}

// BearerToken returns the token for the Authorization header, only while the
// session is valid.
func (s *Session) BearerToken(ctx context.Context) (string, bool) {
	if !s.IsSessionValid(ctx) {
		return "", false
	}
	return s.CurrentToken(ctx)
}
