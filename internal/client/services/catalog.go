package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evently/internal/client/catalog"
	"github.com/dmitrijs2005/evently/internal/client/client"
	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/client/session"
	"github.com/dmitrijs2005/evently/internal/common"
	"github.com/dmitrijs2005/evently/internal/logging"
)

// Listing is a query result together with its summary.
type Listing struct {
	Services []models.ServiceRecord
	Summary  catalog.Summary
}

// CatalogService reads the catalog and performs admin mutations.
//
// Create, Update and Delete ask the session whether the current user may
// mutate immediately before dispatching, and fail with common.ErrorForbidden
// without touching the network when not.
type CatalogService interface {
	List(ctx context.Context, state catalog.State) (*Listing, error)
	Get(ctx context.Context, id string) (*models.ServiceRecord, error)
	Create(ctx context.Context, in models.ServiceRegistration) (*models.ServiceRecord, error)
	Update(ctx context.Context, id string, in models.ServiceRegistration) (*models.ServiceRecord, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	client   client.Client
	session  *session.Session
	pipeline *catalog.Pipeline
	log      logging.Logger
}

func NewCatalogService(c client.Client, s *session.Session, p *catalog.Pipeline, log logging.Logger) CatalogService {
	if log == nil {
		log = logging.Nop{}
	}
	return &catalogService{client: c, session: s, pipeline: p, log: log}
}

// List fetches every service and applies state to the result. Nothing is
// returned when the fetch fails.
func (c *catalogService) List(ctx context.Context, state catalog.State) (*Listing, error) {
	all, err := c.client.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	shown := c.pipeline.Query(all, state)
	return &Listing{
		Services: shown,
		Summary:  catalog.Summarize(len(all), len(shown), state),
	}, nil
}

func (c *catalogService) Get(ctx context.Context, id string) (*models.ServiceRecord, error) {
	rec, err := c.client.GetService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service %s: %w", id, err)
	}
	return rec, nil
}

func (c *catalogService) Create(ctx context.Context, in models.ServiceRegistration) (*models.ServiceRecord, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}
	token, err := c.authorize(ctx, "create")
	if err != nil {
		return nil, err
	}
	rec, err := c.client.CreateService(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return rec, nil
}

func (c *catalogService) Update(ctx context.Context, id string, in models.ServiceRegistration) (*models.ServiceRecord, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}
	token, err := c.authorize(ctx, "update")
	if err != nil {
		return nil, err
	}
	rec, err := c.client.UpdateService(ctx, token, id, in)
	if err != nil {
		return nil, fmt.Errorf("update service %s: %w", id, err)
	}
	return rec, nil
}

func (c *catalogService) Delete(ctx context.Context, id string) error {
	token, err := c.authorize(ctx, "delete")
	if err != nil {
		return err
	}
	if err := c.client.DeleteService(ctx, token, id); err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	return nil
}

// authorize is the mutation gate. It must run after any user interaction and
// right before the request goes out.
func (c *catalogService) authorize(ctx context.Context, op string) (string, error) {
	if !c.session.CanMutate(ctx) {
		c.log.Info(ctx, "mutation refused", "op", op)
		return "", fmt.Errorf("%s service: %w", op, common.ErrorForbidden)
	}
	token, ok := c.session.BearerToken(ctx)
	if !ok {
		return "", fmt.Errorf("%s service: session expired: %w", op, common.ErrorUnauthorized)
	}
	return token, nil
}

// MutationErrorMessage is the notification shown when op ("create", "update"
// or "delete") fails.
func MutationErrorMessage(op string, err error) string {
	var verrs models.ValidationErrors
	switch {
	case errors.Is(err, common.ErrorForbidden):
		return fmt.Sprintf("Only administrators can %s services", op)
	case errors.Is(err, common.ErrorUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.As(err, &verrs) && len(verrs) > 0:
		return verrs.Error()
	case errors.Is(err, common.ErrorNotFound):
		return "Service not found"
	default:
		return fmt.Sprintf("Failed to %s service", op)
	}
}
