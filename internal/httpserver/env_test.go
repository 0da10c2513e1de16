package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/buildmart/internal/events"
	"github.com/Skotchmaster/buildmart/internal/schema"
	"github.com/Skotchmaster/buildmart/internal/service"
	"github.com/Skotchmaster/buildmart/internal/store"
	"github.com/Skotchmaster/buildmart/internal/store/sqlstore"
	"github.com/Skotchmaster/buildmart/internal/validation"
)

type published struct {
	Topic string
	Key   string
	Event events.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{Topic: topic, Key: key, Event: ev})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	Store   store.Store
	Events  *recordingPublisher
	Catalog *CatalogHTTP
	Orders  *OrderHTTP
	Status  *StatusHTTP
}

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlstore.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestEnv(t *testing.T, s store.Store) *testEnv {
	t.Helper()

	v := validation.New()
	pub := &recordingPublisher{}
	env := &testEnv{
		T:       t,
		E:       echo.New(),
		Store:   s,
		Events:  pub,
		Catalog: &CatalogHTTP{Svc: &service.CatalogService{Store: s, Validator: v}, Publisher: pub},
		Orders:  &OrderHTTP{Svc: &service.OrderService{Store: s, Validator: v}, Publisher: pub},
		Status:  &StatusHTTP{Store: s, Schemas: schema.Build(), DatabaseURLSet: store.IsAvailable(s)},
	}
	Register(env.E, &Deps{
		CatalogHandler: env.Catalog,
		OrderHandler:   env.Orders,
		StatusHandler:  env.Status,
	})
	return env
}

// doJSONRequest builds an echo context for calling a handler directly.
// A string body is sent verbatim, anything else is JSON encoded.
func (env *testEnv) doJSONRequest(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, env.encode(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

// serve routes the request through the full echo stack, error handler included.
func (env *testEnv) serve(method, path string, body any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, env.encode(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) encode(body any) *bytes.Buffer {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(env.T, json.NewEncoder(&buf).Encode(b))
	}
	return &buf
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func httpError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he
}
