package httpserver

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buildmart/internal/events"
	"github.com/Skotchmaster/buildmart/internal/logging"
	"github.com/Skotchmaster/buildmart/internal/service"
)

type OrderHTTP struct {
	Svc       *service.OrderService
	Publisher events.Publisher
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "cannot read body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read body")
	}

	order, err := h.Svc.CreateOrder(ctx, body)
	if err != nil {
		if resp, ok := validationFailure(err); ok {
			l.Warn("create_order_failed", "status", 422, "reason", "invalid body", "error", err)
			return resp
		}
		l.Error("create_order_failed", "status", 500, "reason", "cannot create order", "error", err)
		return storeFailure(err, "cannot create order")
	}

	publish(ctx, l, h.Publisher, events.OrderTopic, order.ID,
		events.New(events.TypeOrderCreated, order.ID, order))

	l.Info("create_order_success", "order_id", order.ID, "subtotal", order.Subtotal, "items", len(order.Items))
	return c.JSON(http.StatusCreated, order)
}
