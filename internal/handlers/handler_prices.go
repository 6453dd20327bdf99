package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/sarrafhq/sarraf-backend/internal/middleware"
)

// priceHandler serves the quoting and price administration endpoints for
// both instrument kinds. The kind is fixed per route group at registration.
type priceHandler struct {
	priceService portssvc.PriceSvcFacade
}

func newPriceHandler(ps portssvc.PriceSvcFacade) *priceHandler {
	return &priceHandler{priceService: ps}
}

// registerPublicPriceRoutes mounts the read-only quoting endpoints of one
// kind onto a public route group. listPath is the kind's listing segment
// ("prices" for gold, "rates" for currencies).
func registerPublicPriceRoutes(rg *gin.RouterGroup, h *priceHandler, kind domain.InstrumentKind, listPath string) {
	rg.GET("/"+listPath, h.listCurrent(kind))
	rg.GET("/current/:id", h.getCurrent(kind))
	rg.GET("/history/:id", h.history(kind))
	rg.GET("/statistics/:id", h.statistics(kind))
	rg.GET("/compare", h.compare(kind))
	rg.POST("/convert", h.convert(kind))
}

// registerAdminPriceRoutes mounts the price mutations of one kind onto an
// authenticated route group.
func registerAdminPriceRoutes(rg *gin.RouterGroup, h *priceHandler, kind domain.InstrumentKind) {
	rg.POST("/prices", h.create(kind))
	rg.PUT("/prices/:id", h.update)
	rg.DELETE("/prices/:id", h.delete)
}

// listCurrent godoc
// @Summary List current prices
// @Description Returns the price record in force right now for every instrument of the kind
// @Tags prices
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.PriceResponse}
// @Router /gold/prices [get]
func (h *priceHandler) listCurrent(kind domain.InstrumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.priceService.ListCurrentPrices(c.Request.Context(), kind)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.ToPriceResponseSlice(records)))
	}
}

// getCurrent godoc
// @Summary Get the current price of one instrument
// @Tags prices
// @Produce json
// @Param id path string true "Instrument ID (currency ISO code accepted)"
// @Success 200 {object} dto.Response{data=dto.PriceResponse}
// @Failure 404 {object} dto.Response
// @Router /gold/current/{id} [get]
func (h *priceHandler) getCurrent(kind domain.InstrumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := h.priceService.GetCurrentPrice(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.ToPriceResponse(record)))
	}
}

// history godoc
// @Summary Page an instrument's price history
// @Tags prices
// @Produce json
// @Param id path string true "Instrument ID"
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param limit query int false "Page size (default 50, max 500)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.Response{data=[]dto.PriceResponse}
// @Router /gold/history/{id} [get]
func (h *priceHandler) history(kind domain.InstrumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.HistoryQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondBindError(c, err)
			return
		}

		filter := domain.HistoryFilter{
			StartDate: q.StartDate,
			EndDate:   q.EndDate,
			Limit:     q.Limit,
			Offset:    q.Offset,
		}
		records, err := h.priceService.GetPriceHistory(c.Request.Context(), kind, c.Param("id"), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.ToPriceResponseSlice(records)))
	}
}

// statistics godoc
// @Summary Aggregate an instrument's trailing price window
// @Tags prices
// @Produce json
// @Param id path string true "Instrument ID"
// @Param windowDays query int false "Trailing window in days (default 30)"
// @Success 200 {object} dto.Response{data=dto.StatisticsResponse}
// @Router /gold/statistics/{id} [get]
func (h *priceHandler) statistics(kind domain.InstrumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowDays, err := strconv.Atoi(c.DefaultQuery("windowDays", "30"))
		if err != nil || windowDays <= 0 {
			c.JSON(http.StatusBadRequest, dto.Error("windowDays must be a positive integer", apperrors.CodeValidation))
			return
		}

		instrumentID := c.Param("id")
		stats, err := h.priceService.GetPriceStatistics(c.Request.Context(), kind, instrumentID, windowDays)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(dto.StatisticsResponse{
			InstrumentID: instrumentID,
			WindowDays:   windowDays,
			Count:        stats.Count,
			MinBuy:       stats.MinBuy,
			MaxBuy:       stats.MaxBuy,
			AvgBuy:       stats.AvgBuy,
			MinSell:      stats.MinSell,
			MaxSell:      stats.MaxSell,
			AvgSell:      stats.AvgSell,
		}))
	}
}

// compare godoc
// @Summary Compare instruments against the first
// @Description Quotes each instrument's final rates plus cross rates against the first id
// @Tags prices
// @Produce json
// @Param ids query string true "Comma separated instrument ids (at least two)"
// @Success 200 {object} dto.Response{data=[]dto.CompareEntry}
// @Router /gold/compare [get]
func (h *priceHandler) compare(kind domain.InstrumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.Split(c.Query("ids"), ",")
		ids := make([]string, 0, len(raw))
		for _, id := range raw {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}

		entries, err := h.priceService.Compare(c.Request.Context(), kind, ids)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(entries))
	}
}

// convert godoc
// @Summary Convert an amount between two instruments
// @Tags prices
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertRequest true "Conversion parameters"
// @Success 200 {object} dto.Response{data=dto.ConvertResponse}
// @Failure 400 {object} dto.Response
// @Router /currencies/convert [post]
func (h *priceHandler) convert(kind domain.InstrumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ConvertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		result, err := h.priceService.Convert(c.Request.Context(), kind, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.OK(result))
	}
}

// create godoc
// @Summary Open a new price version
// @Description Closes the instrument's open record and inserts a new one effective now
// @Tags prices
// @Accept json
// @Produce json
// @Param price body dto.CreatePriceRequest true "Price details"
// @Success 201 {object} dto.Response{data=dto.PriceResponse}
// @Failure 400 {object} dto.Response
// @Security SessionAuth
// @Router /gold/prices [post]
func (h *priceHandler) create(kind domain.InstrumentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		var req dto.CreatePriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for create price", slog.String("error", err.Error()))
			respondBindError(c, err)
			return
		}

		actorUserID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
			return
		}

		record, err := h.priceService.CreatePrice(c.Request.Context(), kind, req, actorUserID)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.Info("Price version created",
			slog.String("price_record_id", record.PriceRecordID),
			slog.String("instrument_id", record.InstrumentID),
		)
		c.JSON(http.StatusCreated, dto.OK(dto.ToPriceResponse(record)))
	}
}

// update godoc
// @Summary Patch a price record
// @Description Open records are revised into a new version; closed records are amended in place
// @Tags prices
// @Accept json
// @Produce json
// @Param id path string true "Price record ID"
// @Param patch body dto.UpdatePriceRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.PriceResponse}
// @Failure 404 {object} dto.Response
// @Security SessionAuth
// @Router /gold/prices/{id} [put]
func (h *priceHandler) update(c *gin.Context) {
	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	record, err := h.priceService.UpdatePrice(c.Request.Context(), c.Param("id"), req, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToPriceResponse(record)))
}

// delete godoc
// @Summary Delete a price record
// @Tags prices
// @Produce json
// @Param id path string true "Price record ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security SessionAuth
// @Router /gold/prices/{id} [delete]
func (h *priceHandler) delete(c *gin.Context) {
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	if err := h.priceService.DeletePrice(c.Request.Context(), c.Param("id"), actorUserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("price record deleted"))
}

// autoUpdateGold godoc
// @Summary Derive all karat prices from a 24k base price
// @Tags prices
// @Accept json
// @Produce json
// @Param base body dto.AutoUpdateGoldRequest true "24k base price"
// @Success 200 {object} dto.Response{data=[]dto.PriceResponse}
// @Security SessionAuth
// @Router /gold/auto-update [post]
func (h *priceHandler) autoUpdateGold(c *gin.Context) {
	var req dto.AutoUpdateGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	records, err := h.priceService.AutoUpdateGold(c.Request.Context(), req.BasePrice24k, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToPriceResponseSlice(records)))
}

// bulkUpdateCurrencies godoc
// @Summary Update many currency rates in one call
// @Description Versions each listed currency's price; failures are reported per code
// @Tags prices
// @Accept json
// @Produce json
// @Param rates body dto.BulkUpdateCurrenciesRequest true "Rate entries"
// @Success 200 {object} dto.Response{data=dto.BulkUpdateResult}
// @Security SessionAuth
// @Router /currencies/bulk-update [post]
func (h *priceHandler) bulkUpdateCurrencies(c *gin.Context) {
	var req dto.BulkUpdateCurrenciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	result, err := h.priceService.BulkUpdateCurrencies(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(result))
}
