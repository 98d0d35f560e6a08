//go:build integration

package integration

import (
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/jsamuelsen/notekeeper/internal/adapters/http"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/handlers"
	"github.com/jsamuelsen/notekeeper/internal/adapters/http/views"
	"github.com/jsamuelsen/notekeeper/internal/app"
	"github.com/jsamuelsen/notekeeper/internal/platform/metrics"
	"github.com/jsamuelsen/notekeeper/internal/ports"
)

// appMessages are the banner texts the feature files expect.
var appMessages = handlers.Messages{
	Created: "Note added",
	Updated: "Note updated",
	Deleted: "Note deleted",
}

// newAppHandler wires the full middleware and route stack over store, the
// same way cmd/service does.
func newAppHandler(store ports.NoteStore) (*gin.Engine, error) {
	renderer, err := views.New("notekeeper")
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()

	service := app.NewNoteService(app.NoteServiceConfig{
		Store:   store,
		Logger:  slog.New(slog.DiscardHandler),
		Metrics: metrics.New(registry, "notekeeper"),
	})

	health := ports.NewHealthRegistry()
	if checker, ok := store.(ports.HealthChecker); ok {
		if err := health.Register(checker); err != nil {
			return nil, err
		}
	}

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName: "notekeeper-integration",
		Renderer:    renderer,
		HealthHandler: handlers.NewHealthHandler(health,
			handlers.NewBuildInfo("test", "test", "test"),
			handlers.WithGatherer(registry),
		),
		Pages:          handlers.NewNoteHTMLHandler(service, appMessages),
		API:            handlers.NewNoteAPIHandler(service),
		RequestTimeout: httpadapter.DefaultRequestTimeout,
	})

	return engine, nil
}

// startAppServer serves the full stack on a loopback port for the test.
func startAppServer(t testing.TB, store ports.NoteStore) *httptest.Server {
	t.Helper()

	engine, err := newAppHandler(store)
	if err != nil {
		t.Fatalf("wiring app: %v", err)
	}

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return srv
}
