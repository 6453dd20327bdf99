package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/sarrafhq/sarraf-backend/internal/middleware"
)

// settingsHandler serves the typed settings store and the public market
// status endpoint.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// list godoc
// @Summary List all settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.SettingResponse}
// @Security SessionAuth
// @Router /settings [get]
func (h *settingsHandler) list(c *gin.Context) {
	settings, err := h.settingsService.ListSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToSettingResponseSlice(settings)))
}

// get godoc
// @Summary Get one setting
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} dto.Response{data=dto.SettingResponse}
// @Failure 404 {object} dto.Response
// @Security SessionAuth
// @Router /settings/{key} [get]
func (h *settingsHandler) get(c *gin.Context) {
	setting, err := h.settingsService.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToSettingResponse(setting)))
}

// put godoc
// @Summary Upsert one typed setting
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param setting body dto.UpdateSettingRequest true "Typed value"
// @Success 200 {object} dto.Response{data=dto.SettingResponse}
// @Failure 400 {object} dto.Response
// @Security SessionAuth
// @Router /settings/{key} [put]
func (h *settingsHandler) put(c *gin.Context) {
	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	value, err := domain.CoerceSetting(domain.SettingKind(req.Type), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	setting, err := h.settingsService.Set(c.Request.Context(), c.Param("key"), value, req.Description, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToSettingResponse(setting)))
}

// reset godoc
// @Summary Restore every seeded default setting
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Response
// @Security SessionAuth
// @Router /settings/reset [post]
func (h *settingsHandler) reset(c *gin.Context) {
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	if err := h.settingsService.Reset(c.Request.Context(), actorUserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("settings restored to defaults"))
}

// storeInfo godoc
// @Summary Get the storefront identity settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Response{data=dto.StoreInfoResponse}
// @Security SessionAuth
// @Router /settings/groups/store-info [get]
func (h *settingsHandler) storeInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK(h.settingsService.StoreInfo(c.Request.Context())))
}

// marketHours godoc
// @Summary Get the trading-hours settings with the derived open state
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Response{data=dto.MarketHoursResponse}
// @Security SessionAuth
// @Router /settings/groups/market-hours [get]
func (h *settingsHandler) marketHours(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK(h.settingsService.MarketHours(c.Request.Context())))
}

// margins godoc
// @Summary Get the default margin settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Response{data=dto.MarginsResponse}
// @Security SessionAuth
// @Router /settings/groups/margins [get]
func (h *settingsHandler) margins(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK(h.settingsService.Margins(c.Request.Context())))
}

// security godoc
// @Summary Get the security thresholds
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Response{data=dto.SecurityThresholdsResponse}
// @Security SessionAuth
// @Router /settings/groups/security [get]
func (h *settingsHandler) security(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK(h.settingsService.SecurityThresholds(c.Request.Context())))
}

// marketStatus godoc
// @Summary Get the public market-open indicator
// @Tags settings
// @Produce json
// @Success 200 {object} dto.Response{data=dto.MarketStatusResponse}
// @Router /settings/market-status [get]
func (h *settingsHandler) marketStatus(c *gin.Context) {
	hours := h.settingsService.MarketHours(c.Request.Context())

	loc, err := time.LoadLocation(hours.Timezone)
	if err != nil {
		loc = time.UTC
	}
	c.JSON(http.StatusOK, dto.OK(dto.MarketStatusResponse{
		IsOpen:    hours.IsOpen,
		Timezone:  hours.Timezone,
		LocalTime: time.Now().In(loc).Format("15:04"),
	}))
}
