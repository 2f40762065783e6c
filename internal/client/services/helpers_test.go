package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/evently/internal/client/client"
	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/evently/internal/client/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	db      *sql.DB
	store   *metadata.SQLiteRepository
	clock   *testclock.Clock
	session *session.Session
	client  *fakeClient
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "evently.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := metadata.NewSQLiteRepository(db)
	clk := testclock.NewClock(now)
	return &env{
		db:      db,
		store:   store,
		clock:   clk,
		session: session.New(store, clk, nil),
		client:  &fakeClient{},
	}
}

func mint(t *testing.T, admin bool, exp time.Time) string {
	t.Helper()
	claims := session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
		UserID:           "u-1",
		Name:             "Asha",
		Email:            "asha@example.com",
		IsAdmin:          admin,
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func (e *env) login(t *testing.T, admin bool, exp time.Time) string {
	t.Helper()
	tok := mint(t, admin, exp)
	require.NoError(t, e.session.StoreToken(context.Background(), tok))
	return tok
}

// ---- fake client ----

type call struct {
	op    string
	token string
	id    string
}

type fakeClient struct {
	calls []call

	authResp *models.AuthResponse
	authErr  error

	list    []models.ServiceRecord
	listErr error

	rec    *models.ServiceRecord
	recErr error
	delErr error
}

func (f *fakeClient) Register(_ context.Context, _ models.UserRegistration) (*models.AuthResponse, error) {
	f.calls = append(f.calls, call{op: "register"})
	return f.authResp, f.authErr
}

func (f *fakeClient) Login(_ context.Context, _ models.LoginInput) (*models.AuthResponse, error) {
	f.calls = append(f.calls, call{op: "login"})
	return f.authResp, f.authErr
}

func (f *fakeClient) ListServices(context.Context) ([]models.ServiceRecord, error) {
	f.calls = append(f.calls, call{op: "list"})
	return f.list, f.listErr
}

func (f *fakeClient) GetService(_ context.Context, id string) (*models.ServiceRecord, error) {
	f.calls = append(f.calls, call{op: "get", id: id})
	return f.rec, f.recErr
}

func (f *fakeClient) CreateService(_ context.Context, token string, _ models.ServiceRegistration) (*models.ServiceRecord, error) {
	f.calls = append(f.calls, call{op: "create", token: token})
	return f.rec, f.recErr
}

func (f *fakeClient) UpdateService(_ context.Context, token, id string, _ models.ServiceRegistration) (*models.ServiceRecord, error) {
	f.calls = append(f.calls, call{op: "update", token: token, id: id})
	return f.rec, f.recErr
}

func (f *fakeClient) DeleteService(_ context.Context, token, id string) error {
	f.calls = append(f.calls, call{op: "delete", token: token, id: id})
	return f.delErr
}

var _ client.Client = (*fakeClient)(nil)
