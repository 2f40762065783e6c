package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evently/internal/client/client"
	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/client/session"
	"github.com/dmitrijs2005/evently/internal/common"
	"github.com/dmitrijs2005/evently/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate credentials locally, authenticate, persist the token and
//     remember (or forget) the email.
//   - Register: validate, create the account, persist the token.
//   - Logout: drop the token.
//   - RememberedEmail: the email saved by the last "remember me" login.
type AuthService interface {
	Login(ctx context.Context, in models.LoginInput, remember bool) (*session.User, error)
	Register(ctx context.Context, in models.UserRegistration) (*session.User, error)
	Logout(ctx context.Context) error
	RememberedEmail(ctx context.Context) string
}

type authService struct {
	client  client.Client
	session *session.Session
	store   session.Store
	log     logging.Logger
}

// NewAuthService binds an AuthService to the backend client and the session.
// store must be the store the session was built over.
func NewAuthService(c client.Client, s *session.Session, store session.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop{}
	}
	return &authService{client: c, session: s, store: store, log: log}
}

func (a *authService) Login(ctx context.Context, in models.LoginInput, remember bool) (*session.User, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	resp, err := a.client.Login(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.acceptToken(ctx, resp); err != nil {
		return nil, err
	}

	if remember {
		err = a.store.Set(ctx, common.RememberedEmailKey, []byte(in.Email))
	} else {
		err = a.store.Delete(ctx, common.RememberedEmailKey)
	}
	if err != nil {
		a.log.Warn(ctx, "remembered email not updated", "err", err)
	}

	return a.userFrom(ctx, resp), nil
}

func (a *authService) Register(ctx context.Context, in models.UserRegistration) (*session.User, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	resp, err := a.client.Register(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := a.acceptToken(ctx, resp); err != nil {
		return nil, err
	}
	return a.userFrom(ctx, resp), nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.ClearToken(ctx)
}

func (a *authService) RememberedEmail(ctx context.Context) string {
	v, err := a.store.Get(ctx, common.RememberedEmailKey)
	if err != nil {
		a.log.Warn(ctx, "remembered email unreadable", "err", err)
		return ""
	}
	return string(v)
}

func (a *authService) acceptToken(ctx context.Context, resp *models.AuthResponse) error {
	if resp == nil || resp.Token == "" {
		return fmt.Errorf("auth response without token: %w", client.ErrRequestFailed)
	}
	if err := a.session.StoreToken(ctx, resp.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// userFrom prefers the token claims and falls back to the profile echoed in
// the response body.
func (a *authService) userFrom(ctx context.Context, resp *models.AuthResponse) *session.User {
	if u, ok := a.session.CurrentUser(ctx); ok {
		return u
	}
	p := resp.Data.User
	return &session.User{UserID: p.ID, Name: p.Name, Email: p.Email, IsAdmin: p.IsAdmin}
}

// LoginErrorMessage is the single message shown for a failed login.
func LoginErrorMessage(err error) string {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		return verrs[0].Message
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, common.ErrorNotFound):
		return "Invalid email or password"
	case errors.Is(err, client.ErrInvalidData):
		return "Invalid login data"
	default:
		return "Login failed. Please try again."
	}
}

// RegisterErrorMessage is the single message shown for a failed registration.
func RegisterErrorMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, client.ErrInvalidData):
		return "Invalid registration data"
	case errors.Is(err, client.ErrAlreadyExists):
		return "Email already exists"
	default:
		return "Registration failed. Please try again."
	}
}
