package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/buildmart/internal/events"
	"github.com/Skotchmaster/buildmart/internal/logging"
	"github.com/Skotchmaster/buildmart/internal/service"
	"github.com/Skotchmaster/buildmart/internal/store"
)

type CatalogHTTP struct {
	Svc       *service.CatalogService
	Publisher events.Publisher
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.ListProducts(ctx, c.QueryParam("category"), c.QueryParam("q"))
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	l.Debug("get_products_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	product, err := h.Svc.GetProduct(ctx, c.Param("id"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, product)
	case errors.Is(err, store.ErrInvalidID):
		l.Warn("get_product_failed", "status", 400, "reason", "invalid product id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	case errors.Is(err, store.ErrNotFound):
		l.Warn("get_product_failed", "status", 404, "reason", "product not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	default:
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return storeFailure(err, "cannot get product")
	}
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "cannot read body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read body")
	}

	product, err := h.Svc.CreateProduct(ctx, body)
	if err != nil {
		if resp, ok := validationFailure(err); ok {
			l.Warn("create_product_failed", "status", 422, "reason", "invalid body", "error", err)
			return resp
		}
		l.Error("create_product_failed", "status", 500, "reason", "cannot create product", "error", err)
		return storeFailure(err, "cannot create product")
	}

	publish(ctx, l, h.Publisher, events.ProductTopic, product.ID,
		events.New(events.TypeProductCreated, product.ID, product))

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

type seedResponse struct {
	Inserted int    `json:"inserted"`
	Message  string `json:"message,omitempty"`
}

func (h *CatalogHTTP) SeedProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.seed_products")

	n, err := h.Svc.SeedProducts(ctx)
	if err != nil {
		l.Error("seed_products_failed", "status", 500, "reason", "cannot seed products", "error", err)
		return storeFailure(err, "cannot seed products")
	}
	if n == 0 {
		l.Info("seed_products_skipped", "reason", "products already exist")
		return c.JSON(http.StatusOK, seedResponse{Message: "Products already exist"})
	}

	publish(ctx, l, h.Publisher, events.ProductTopic, "",
		events.New(events.TypeProductsSeeded, "", map[string]int{"inserted": n}))

	l.Info("seed_products_success", "inserted", n)
	return c.JSON(http.StatusOK, seedResponse{Inserted: n})
}
