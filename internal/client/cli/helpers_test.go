package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/evently/internal/client/catalog"
	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/client/services"
	"github.com/dmitrijs2005/evently/internal/client/session"
	"github.com/dmitrijs2005/evently/internal/common"
	"github.com/dmitrijs2005/evently/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// ------------ helpers ------------

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// readerFromLines feeds each line terminated by a newline.
func readerFromLines(lines ...string) *bufio.Reader {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	return bufio.NewReader(strings.NewReader(b.String()))
}

type memStore struct{ data map[string][]byte }

func (m *memStore) Get(_ context.Context, k string) ([]byte, error) { return m.data[k], nil }
func (m *memStore) Set(_ context.Context, k string, v []byte) error {
	m.data[k] = v
	return nil
}
func (m *memStore) Delete(_ context.Context, k string) error {
	delete(m.data, k)
	return nil
}

type testApp struct {
	*App
	out       *bytes.Buffer
	store     *memStore
	auth      *fakeAuth
	catalog   *fakeCatalog
	bookmarks *fakeBookmarks
	images    *fakeEncoder
}

// newTestApp builds an App over fakes, reading the given input lines. Password
// prompts read from the same input.
func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()

	prevTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = prevTerm })

	store := &memStore{data: map[string][]byte{}}
	clk := testclock.NewClock(now)
	sess := session.New(store, clk, nil)
	out := &bytes.Buffer{}

	ta := &testApp{
		out:       out,
		store:     store,
		auth:      &fakeAuth{},
		catalog:   &fakeCatalog{pipeline: catalog.New(language.English)},
		bookmarks: &fakeBookmarks{},
		images:    &fakeEncoder{},
	}
	ta.App = &App{
		session:         sess,
		authService:     ta.auth,
		catalogService:  ta.catalog,
		bookmarkService: ta.bookmarks,
		images:          ta.images,
		clock:           clk,
		log:             logging.Nop{},
		reader:          readerFromLines(lines...),
		out:             out,
		state:           catalog.DefaultState(),
	}
	ta.auth.store = store
	return ta
}

func (ta *testApp) loginAs(t *testing.T, admin bool, exp time.Time) {
	t.Helper()
	ta.store.data["token"] = []byte(mint(t, admin, exp))
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

// ------------ fakes ------------

type fakeAuth struct {
	store *memStore

	loginIn       models.LoginInput
	loginRemember bool
	loginUser     *session.User
	loginErr      error

	registerIn   models.UserRegistration
	registerUser *session.User
	registerErr  error

	remembered string
	logouts    int
}

func (f *fakeAuth) Login(_ context.Context, in models.LoginInput, remember bool) (*session.User, error) {
	f.loginIn, f.loginRemember = in, remember
	return f.loginUser, f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, in models.UserRegistration) (*session.User, error) {
	f.registerIn = in
	return f.registerUser, f.registerErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	delete(f.store.data, "token")
	return nil
}

func (f *fakeAuth) RememberedEmail(context.Context) string { return f.remembered }

type fakeCatalog struct {
	pipeline *catalog.Pipeline

	records []models.ServiceRecord
	listErr error
	states  []catalog.State

	getErr error

	created  []models.ServiceRegistration
	updated  map[string]models.ServiceRegistration
	deleted  []string
	mutErr   error
	gotCalls int
}

func (f *fakeCatalog) List(_ context.Context, state catalog.State) (*services.Listing, error) {
	f.states = append(f.states, state)
	if f.listErr != nil {
		return nil, f.listErr
	}
	shown := f.pipeline.Query(f.records, state)
	return &services.Listing{Services: shown, Summary: catalog.Summarize(len(f.records), len(shown), state)}, nil
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*models.ServiceRecord, error) {
	f.gotCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.records {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCatalog) Create(_ context.Context, in models.ServiceRegistration) (*models.ServiceRecord, error) {
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.created = append(f.created, in)
	return &models.ServiceRecord{ID: "new-1", Name: in.Name}, nil
}

func (f *fakeCatalog) Update(_ context.Context, id string, in models.ServiceRegistration) (*models.ServiceRecord, error) {
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	if f.updated == nil {
		f.updated = map[string]models.ServiceRegistration{}
	}
	f.updated[id] = in
	return &models.ServiceRecord{ID: id, Name: in.Name}, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id string) error {
	if f.mutErr != nil {
		return f.mutErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBookmarks struct {
	ids []string
	err error
}

func (f *fakeBookmarks) Toggle(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i, v := range f.ids {
		if v == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			return false, nil
		}
	}
	f.ids = append([]string{id}, f.ids...)
	return true, nil
}

func (f *fakeBookmarks) IsBookmarked(_ context.Context, id string) (bool, error) {
	for _, v := range f.ids {
		if v == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookmarks) List(context.Context) ([]string, error) {
	return f.ids, f.err
}

type fakeEncoder struct {
	paths []string
	ret   string
	err   error
}

func (f *fakeEncoder) Encode(_ context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	return f.ret, f.err
}

func sampleRecords() []models.ServiceRecord {
	return []models.ServiceRecord{
		{ID: "s1", Name: "Sunset Hall", Description: "Rooftop venue", BasePrice: 50000, Category: models.CategoryVenue,
			CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "s2", Name: "DJ Nova", Description: "Live music and lights", BasePrice: 15000, Category: models.CategoryEntertainment,
			CreatedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "s3", Name: "Bloom Decor", Description: "Floral arrangements", BasePrice: 8000, Category: models.CategoryDecor,
			CreatedAt: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
}
