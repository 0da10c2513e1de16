package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buildmart/internal/events"
	"github.com/Skotchmaster/buildmart/internal/store"
	"github.com/Skotchmaster/buildmart/internal/validation"
)

type validationResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

func validationFailure(err error) (*echo.HTTPError, bool) {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, validationResponse{
		Message: "validation failed",
		Errors:  verr.Fields,
	}), true
}

func storeFailure(err error, msg string) *echo.HTTPError {
	if errors.Is(err, store.ErrUnavailable) {
		msg = "database not available"
	}
	return echo.NewHTTPError(http.StatusInternalServerError, msg)
}

// publish never fails the request; a lost event is only logged.
func publish(ctx context.Context, l *slog.Logger, p events.Publisher, topic, key string, ev events.Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, topic, key, ev); err != nil {
		l.Error("publish_event_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}
