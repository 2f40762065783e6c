package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/evently/internal/client/catalog"
	"github.com/dmitrijs2005/evently/internal/client/client"
	"github.com/dmitrijs2005/evently/internal/client/config"
	"github.com/dmitrijs2005/evently/internal/client/images"
	"github.com/dmitrijs2005/evently/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/evently/internal/client/services"
	"github.com/dmitrijs2005/evently/internal/client/session"
	"github.com/dmitrijs2005/evently/internal/logging"
	"github.com/juju/clock"
	"golang.org/x/text/language"
)

type App struct {
	config          *config.Config
	session         *session.Session
	authService     services.AuthService
	catalogService  services.CatalogService
	bookmarkService services.BookmarkService
	images          images.Encoder
	clock           clock.Clock
	log             logging.Logger
	db              *sql.DB

	reader *bufio.Reader
	out    io.Writer

	// list view state, kept for the lifetime of the REPL
	state      catalog.State
	listFailed bool
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "err", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIURL, c.RequestTimeout,
		client.WithLogger(log.With("component", "api")))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := newImageEncoder(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	lang, err := language.Parse(c.Locale)
	if err != nil {
		log.Warn(ctx, "unknown locale, using English", "locale", c.Locale)
		lang = language.English
	}

	store := metadata.NewSQLiteRepository(db)
	sess := session.New(store, clock.WallClock, log.With("component", "session"))

	return &App{
		config:          c,
		session:         sess,
		authService:     services.NewAuthService(apiClient, sess, store, log),
		catalogService:  services.NewCatalogService(apiClient, sess, catalog.New(lang), log),
		bookmarkService: services.NewBookmarkService(db, clock.WallClock),
		images:          enc,
		clock:           clock.WallClock,
		log:             log,
		db:              db,
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
		state:           catalog.DefaultState(),
	}, nil
}

func newImageEncoder(ctx context.Context, c *config.Config) (images.Encoder, error) {
	if !c.ImagesEnabled() {
		return images.DataURLEncoder{}, nil
	}
	return images.NewS3Uploader(ctx, images.S3Options{
		Bucket:    c.ImageBucket,
		Region:    c.ImageRegion,
		Endpoint:  c.ImageEndpoint,
		BaseURL:   c.ImageBaseURL,
		AccessKey: c.ImageAccessKey,
		SecretKey: c.ImageSecretKey,
	})
}

// Run prints the banner and blocks in the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	a.banner()
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) banner() {
	fmt.Fprintln(a.out, "Evently: find and book services for your event")
	if u, ok := a.session.CurrentUser(context.Background()); ok && a.session.IsSessionValid(context.Background()) {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	} else {
		fmt.Fprintln(a.out, "Browse the catalog with 'list', or 'login' / 'register' to get started.")
	}
	fmt.Fprintln(a.out, "Type 'help' for commands.")
}

func (a *App) getStatus() string {
	ctx := context.Background()
	u, ok := a.session.CurrentUser(ctx)
	if !ok || !a.session.IsSessionValid(ctx) {
		return "(guest)"
	}
	if u.IsAdmin {
		return fmt.Sprintf("(%s admin)", u.Name)
	}
	return fmt.Sprintf("(%s)", u.Name)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

func (a *App) canMutate(ctx context.Context) bool {
	return a.session.CanMutate(ctx)
}

func (a *App) notify(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) say(args ...any) {
	fmt.Fprintln(a.out, args...)
}
