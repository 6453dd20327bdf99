package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/sarrafhq/sarraf-backend/internal/middleware"
)

// instrumentHandler serves the gold grade and currency catalogues.
type instrumentHandler struct {
	goldTypeService portssvc.GoldTypeSvcFacade
	currencyService portssvc.CurrencySvcFacade
}

func newInstrumentHandler(gs portssvc.GoldTypeSvcFacade, cs portssvc.CurrencySvcFacade) *instrumentHandler {
	return &instrumentHandler{goldTypeService: gs, currencyService: cs}
}

// listGoldTypes godoc
// @Summary List gold grades
// @Tags instruments
// @Produce json
// @Param includeInactive query bool false "Include deactivated grades"
// @Success 200 {object} dto.Response{data=[]dto.GoldTypeResponse}
// @Router /gold/types [get]
func (h *instrumentHandler) listGoldTypes(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	goldTypes, err := h.goldTypeService.ListGoldTypes(c.Request.Context(), !includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToGoldTypeResponseSlice(goldTypes)))
}

// createGoldType godoc
// @Summary Add a gold grade
// @Tags instruments
// @Accept json
// @Produce json
// @Param goldType body dto.CreateGoldTypeRequest true "Gold grade details"
// @Success 201 {object} dto.Response{data=dto.GoldTypeResponse}
// @Failure 400 {object} dto.Response
// @Security SessionAuth
// @Router /gold/types [post]
func (h *instrumentHandler) createGoldType(c *gin.Context) {
	var req dto.CreateGoldTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	goldType, err := h.goldTypeService.CreateGoldType(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.ToGoldTypeResponse(goldType)))
}

// updateGoldType godoc
// @Summary Patch a gold grade
// @Tags instruments
// @Accept json
// @Produce json
// @Param id path string true "Gold type ID"
// @Param patch body dto.UpdateGoldTypeRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.GoldTypeResponse}
// @Failure 404 {object} dto.Response
// @Security SessionAuth
// @Router /gold/types/{id} [put]
func (h *instrumentHandler) updateGoldType(c *gin.Context) {
	var req dto.UpdateGoldTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	goldType, err := h.goldTypeService.UpdateGoldType(c.Request.Context(), c.Param("id"), req, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToGoldTypeResponse(goldType)))
}

// listCurrencies godoc
// @Summary List currencies
// @Tags instruments
// @Produce json
// @Param includeInactive query bool false "Include deactivated currencies"
// @Success 200 {object} dto.Response{data=[]dto.CurrencyResponse}
// @Router /currencies/codes [get]
func (h *instrumentHandler) listCurrencies(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context(), !includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToCurrencyResponseSlice(currencies)))
}

// createCurrency godoc
// @Summary Add a currency
// @Tags instruments
// @Accept json
// @Produce json
// @Param currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.Response{data=dto.CurrencyResponse}
// @Failure 400 {object} dto.Response
// @Security SessionAuth
// @Router /currencies/codes [post]
func (h *instrumentHandler) createCurrency(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.ToCurrencyResponse(currency)))
}

// updateCurrency godoc
// @Summary Patch a currency
// @Tags instruments
// @Accept json
// @Produce json
// @Param id path string true "Currency ID"
// @Param patch body dto.UpdateCurrencyRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.CurrencyResponse}
// @Failure 404 {object} dto.Response
// @Security SessionAuth
// @Router /currencies/codes/{id} [put]
func (h *instrumentHandler) updateCurrency(c *gin.Context) {
	var req dto.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Request.Context(), c.Param("id"), req, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToCurrencyResponse(currency)))
}
