package client

import (
	"context"

	"github.com/dmitrijs2005/evently/internal/client/models"
)

// Client is the backend API as the Evently client consumes it. Mutating calls
// take the bearer token explicitly; the caller decides whether it may act.
type Client interface {
	Register(ctx context.Context, in models.UserRegistration) (*models.AuthResponse, error)
	Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error)

	ListServices(ctx context.Context) ([]models.ServiceRecord, error)
	GetService(ctx context.Context, id string) (*models.ServiceRecord, error)
	CreateService(ctx context.Context, token string, in models.ServiceRegistration) (*models.ServiceRecord, error)
	UpdateService(ctx context.Context, token string, id string, in models.ServiceRegistration) (*models.ServiceRecord, error)
	DeleteService(ctx context.Context, token string, id string) error
}
