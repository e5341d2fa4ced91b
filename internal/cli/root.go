package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/gradeboard/internal/client"
	"github.com/julianstephens/gradeboard/internal/dashboard"
	"github.com/julianstephens/gradeboard/internal/keyring"
	"github.com/julianstephens/gradeboard/internal/logger"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/storage"
	"github.com/julianstephens/gradeboard/internal/validation"
)

type Context struct {
	Store storage.Provider

	// BaseURL and StudentID override the stored settings when set.
	BaseURL   string
	StudentID string

	Out        io.Writer
	HTTPClient *http.Client
	Clock      func() time.Time
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

func (c *Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

// Settings returns the stored settings with flag overrides applied,
// rejecting values that fail validation.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if c.BaseURL != "" {
		settings.BaseURL = c.BaseURL
	}
	if c.StudentID != "" {
		settings.StudentID = c.StudentID
	}
	if result := validation.New().ValidateSettings(settings); result.HasConflicts() {
		return models.Settings{}, fmt.Errorf("invalid settings:\n%s", strings.TrimSpace(result.FormatReport()))
	}
	return settings, nil
}

// NewClient builds a service client for settings, attaching the student's
// saved session when there is one.
func (c *Context) NewClient(settings models.Settings) (*client.Client, error) {
	opts := []client.Option{}
	if c.HTTPClient != nil {
		opts = append(opts, client.WithHTTPClient(c.HTTPClient))
	}
	if settings.StudentID != "" {
		session, err := keyring.GetSession(settings.StudentID)
		switch {
		case err == nil:
			opts = append(opts, client.WithSession(session))
		case errors.Is(err, keyring.ErrNotFound):
		default:
			logger.Warn("Could not read session from keyring", "student", settings.StudentID, "error", err)
		}
	}
	return client.New(settings.BaseURL, opts...)
}

// NewLoader wires a dashboard loader to the service and the store.
func (c *Context) NewLoader(settings models.Settings) (*dashboard.Loader, error) {
	cl, err := c.NewClient(settings)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(settings.CacheTTLSeconds) * time.Second
	return dashboard.NewLoader(cl, c.Store, ttl), nil
}

// LoadView fetches the signed in student's document and builds the view.
func (c *Context) LoadView(ctx context.Context) (dashboard.View, dashboard.Result, error) {
	settings, err := c.Settings()
	if err != nil {
		return dashboard.View{}, dashboard.Result{}, err
	}
	loader, err := c.NewLoader(settings)
	if err != nil {
		return dashboard.View{}, dashboard.Result{}, err
	}
	res, err := loader.Load(ctx, settings.StudentID)
	if err != nil {
		return dashboard.View{}, dashboard.Result{}, err
	}
	if res.Source == dashboard.SourceSnapshot {
		c.Printf("(offline: showing data from %s)\n", res.FetchedAt.Local().Format("2006-01-02 15:04"))
	}
	return dashboard.Build(res.Document, settings, c.Now()), res, nil
}
