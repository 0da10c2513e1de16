package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buildmart/internal/logging"
	"github.com/Skotchmaster/buildmart/internal/schema"
	"github.com/Skotchmaster/buildmart/internal/store"
)

const maxReportedCollections = 10

type StatusHTTP struct {
	Store          store.Store
	Schemas        schema.Descriptors
	DatabaseURLSet bool
}

type message struct {
	Message string `json:"message"`
}

func (h *StatusHTTP) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, message{Message: "Civil Engineering Store Backend Running"})
}

func (h *StatusHTTP) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, message{Message: "Hello from the backend API!"})
}

func (h *StatusHTTP) Schema(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Schemas)
}

type statusReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name,omitempty"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Error            string   `json:"error,omitempty"`
}

// Test reports backend and database state. It always answers 200.
func (h *StatusHTTP) Test(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "status.test")

	report := statusReport{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      "not set",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if h.DatabaseURLSet {
		report.DatabaseURL = "set"
	}
	if u, ok := h.Store.(store.Unavailable); ok && u.Reason != "" {
		report.Error = u.Reason
	}

	if store.IsAvailable(h.Store) {
		report.Database = "available"
		report.DatabaseName = h.Store.Name()
		report.ConnectionStatus = "Connected"

		names, err := h.Store.Collections(ctx)
		if err != nil {
			l.Warn("list_collections_failed", "error", err)
			report.Database = "connected with errors"
			report.Error = err.Error()
		} else {
			if len(names) > maxReportedCollections {
				names = names[:maxReportedCollections]
			}
			report.Collections = append(report.Collections, names...)
			report.Database = "connected"
		}
	}

	return c.JSON(http.StatusOK, report)
}

func (h *StatusHTTP) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *StatusHTTP) Ready(c echo.Context) error {
	if !store.IsAvailable(h.Store) {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
