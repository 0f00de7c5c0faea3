package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-system/internal/api/metrics"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

// PortfolioHandler handles HTTP requests for portfolio operations.
type PortfolioHandler struct {
	service ports.PortfolioService
}

func NewPortfolioHandler(service ports.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// Create handles POST /portfolios.
//
// @Summary      Create a portfolio
// @Tags         portfolios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPortfolioRequest  true  "Portfolio details"
// @Success      201   {object}  envelope{data=domain.Portfolio}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /portfolios [post]
func (h *PortfolioHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createPortfolioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Create(c.Request().Context(), userID, toCreateInput(req))
	if err != nil {
		return err
	}

	template := p.Template
	if template == "" {
		template = "default"
	}
	metrics.PortfoliosCreatedTotal.WithLabelValues(template).Inc()

	return c.JSON(http.StatusCreated, envelope{Data: p})
}

// Get handles GET /portfolios/:id. Private portfolios are only returned to
// their owner; anonymous callers see public ones.
//
// @Summary      Get a portfolio by id
// @Tags         portfolios
// @Produce      json
// @Param        id  path      string  true  "Portfolio id"
// @Success      200  {object}  envelope{data=domain.Portfolio}
// @Failure      404  {object}  errorResponse
// @Router       /portfolios/{id} [get]
func (h *PortfolioHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"), ctxOptionalUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: p})
}

// ListMine handles GET /portfolios/user — all portfolios of the caller, in
// creation order.
//
// @Summary      List own portfolios
// @Tags         portfolios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Portfolio}
// @Failure      401  {object}  errorResponse
// @Router       /portfolios/user [get]
func (h *PortfolioHandler) ListMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	portfolios, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: portfolios})
}

// Update handles PUT /portfolios/:id.
//
// @Summary      Update a portfolio
// @Tags         portfolios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Portfolio id"
// @Param        body  body      updatePortfolioRequest  true  "Fields to update"
// @Success      200   {object}  envelope{data=domain.Portfolio}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /portfolios/{id} [put]
func (h *PortfolioHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updatePortfolioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: p})
}

// Delete handles DELETE /portfolios/:id.
//
// @Summary      Delete a portfolio
// @Tags         portfolios
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Portfolio id"
// @Success      200  {object}  envelope{data=messageResponse}
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /portfolios/{id} [delete]
func (h *PortfolioHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: messageResponse{Message: "portfolio deleted"}})
}

// ListPublic handles GET /portfolios/public.
//
// @Summary      List public portfolios
// @Tags         portfolios
// @Produce      json
// @Param        limit   query     int  false  "Page size (max 100)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  envelope{data=[]domain.Portfolio}
// @Router       /portfolios/public [get]
func (h *PortfolioHandler) ListPublic(c echo.Context) error {
	limit, offset := pageParams(c)

	start := time.Now()
	portfolios, err := h.service.ListPublic(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	metrics.PublicQueryDuration.WithLabelValues("list").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, envelope{Data: portfolios})
}

// Search handles GET /portfolios/search.
//
// @Summary      Search public portfolios
// @Tags         portfolios
// @Produce      json
// @Param        q       query     string  true   "Search query"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Param        offset  query     int     false  "Offset"
// @Success      200     {object}  envelope{data=[]domain.Portfolio}
// @Router       /portfolios/search [get]
func (h *PortfolioHandler) Search(c echo.Context) error {
	limit, offset := pageParams(c)

	start := time.Now()
	portfolios, err := h.service.Search(c.Request().Context(), c.QueryParam("q"), limit, offset)
	if err != nil {
		return err
	}
	metrics.PublicQueryDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, envelope{Data: portfolios})
}

// Enhance handles POST /portfolios/enhance.
//
// @Summary      Enhance portfolio content
// @Tags         portfolios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      enhanceRequest  true  "Enhancement request"
// @Success      200   {object}  envelope{data=domain.Portfolio}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /portfolios/enhance [post]
func (h *PortfolioHandler) Enhance(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req enhanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.Enhance(c.Request().Context(), userID, ports.EnhanceInput{
		PortfolioID: req.PortfolioID,
		Fields:      req.Fields,
		Context:     req.Context,
	})
	if err != nil {
		metrics.EnhanceRequestsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.EnhanceRequestsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, envelope{Data: p})
}

func pageParams(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
