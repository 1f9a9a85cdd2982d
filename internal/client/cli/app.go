package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/storefront/internal/client/catalog"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// sessionService is the session manager surface the App drives.
type sessionService interface {
	session.Service
	Restore(ctx context.Context)
	Subscribe(fn func(session.Snapshot)) (cancel func())
	Close(ctx context.Context) error
}

type productService interface {
	Create(ctx context.Context, form catalog.ProductForm) (*catalog.Product, error)
	Update(ctx context.Context, id string, form catalog.ProductForm) (*catalog.Product, error)
}

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	sessions sessionService
	products productService
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logging.New(level, os.Stderr)

	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	api := gateway.New(c.ServerURL, gateway.WithLogger(log.With("component", "gateway")))
	sessions := session.NewManager(api, metadata.NewSQLiteRepository(db), log)
	products := catalog.NewService(api, sessions)

	return &App{
		config:   c,
		log:      log,
		db:       db,
		sessions: sessions,
		products: products,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run restores the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	cancel := a.sessions.Subscribe(func(s session.Snapshot) {
		a.log.Debug(ctx, "session changed", "state", s.State)
	})
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to Storefront CLI (type 'help' for commands)")
	a.sessions.Restore(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close flushes pending sign-out work and closes the database.
func (a *App) Close(ctx context.Context) {
	if err := a.sessions.Close(ctx); err != nil {
		a.log.Warn(ctx, "pending session work not finished", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Session().Authenticated()
}

func (a *App) getStatus() string {
	s := a.sessions.Session()
	switch s.State {
	case session.StateAuthenticated:
		return fmt.Sprintf("(%s %s)", s.User.Name, s.User.Role)
	case session.StateAnonymous:
		return "(anonymous)"
	default:
		return "(loading)"
	}
}
