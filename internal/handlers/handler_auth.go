package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/sarrafhq/sarraf-backend/internal/middleware"
	"github.com/sarrafhq/sarraf-backend/pkg/config"
)

// authHandler serves login, logout, session and credential management.
type authHandler struct {
	authService     portssvc.AuthSvcFacade
	apiTokenService portssvc.APITokenSvc
	lockout         *middleware.Lockout
	cfg             *config.Config
}

func newAuthHandler(as portssvc.AuthSvcFacade, ts portssvc.APITokenSvc, lockout *middleware.Lockout, cfg *config.Config) *authHandler {
	return &authHandler{
		authService:     as,
		apiTokenService: ts,
		lockout:         lockout,
		cfg:             cfg,
	}
}

func (h *authHandler) setAuthCookies(c *gin.Context, session *domain.Session) {
	maxAge := int(h.authService.SessionTTL().Seconds())
	// Session cookie is httpOnly; the CSRF cookie must be readable by the
	// frontend so it can echo the token in X-CSRF-Token.
	c.SetCookie(h.cfg.SessionCookieName, session.Token, maxAge, "/", h.cfg.CookieDomain, h.cfg.IsProduction, true)
	c.SetCookie(h.cfg.CSRFCookieName, session.CSRFToken, maxAge, "/", h.cfg.CookieDomain, h.cfg.IsProduction, false)
}

func (h *authHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.IsProduction, true)
	c.SetCookie(h.cfg.CSRFCookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.IsProduction, false)
}

func loginMeta(c *gin.Context) portssvc.LoginMeta {
	return portssvc.LoginMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// login godoc
// @Summary Log in with username and password
// @Description Issues an httpOnly session cookie and a readable CSRF cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response{data=dto.SessionResponse}
// @Failure 401 {object} dto.Response
// @Failure 423 {object} dto.Response "Locked out after repeated failures"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password, loginMeta(c))
	if err != nil {
		status, _ := apperrors.StatusAndCode(err)
		if status == http.StatusUnauthorized {
			locked := h.lockout.Fail(c.Request.Context(), c.ClientIP())
			logger.Warn("Login failed",
				slog.String("username", req.Username),
				slog.Bool("locked", locked),
			)
		}
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, session)
	logger.Info("Login succeeded", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.OK(dto.ToSessionResponse(session, user)))
}

// googleExchangeCode godoc
// @Summary Log in with a Google OAuth authorization code
// @Description Verifies the code against Google and issues a session for the matching existing user
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.Response{data=dto.SessionResponse}
// @Failure 401 {object} dto.Response
// @Router /auth/google/exchange-code [post]
func (h *authHandler) googleExchangeCode(c *gin.Context) {
	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, user, err := h.authService.LoginWithGoogle(c.Request.Context(), req.Code, loginMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, session)
	c.JSON(http.StatusOK, dto.OK(dto.ToSessionResponse(session, user)))
}

// logout godoc
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Security SessionAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	token, err := c.Cookie(h.cfg.SessionCookieName)
	if err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Logout failed",
				slog.String("error", err.Error()))
		}
	}
	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, dto.OKMessage("logged out"))
}

// session godoc
// @Summary Get the current identity snapshot
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.SessionResponse}
// @Failure 401 {object} dto.Response
// @Security SessionAuth
// @Router /auth/session [get]
func (h *authHandler) session(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToSessionResponse(session, user)))
}

// csrf godoc
// @Summary Get the CSRF token bound to the session
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.CSRFResponse}
// @Failure 401 {object} dto.Response
// @Security SessionAuth
// @Router /auth/csrf [get]
func (h *authHandler) csrf(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	// Re-set the readable cookie in case the frontend lost it.
	maxAge := int(h.authService.SessionTTL().Seconds())
	c.SetCookie(h.cfg.CSRFCookieName, session.CSRFToken, maxAge, "/", h.cfg.CookieDomain, h.cfg.IsProduction, false)
	c.JSON(http.StatusOK, dto.OK(dto.CSRFResponse{CSRFToken: session.CSRFToken}))
}

// refresh godoc
// @Summary Rotate the session token and extend its expiry
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.SessionResponse}
// @Failure 401 {object} dto.Response
// @Security SessionAuth
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	token, err := c.Cookie(h.cfg.SessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	session, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, session)
	c.JSON(http.StatusOK, dto.OK(dto.ToSessionResponse(session, nil)))
}

// changePassword godoc
// @Summary Change the caller's password
// @Description Revokes every session of the user, including the current one
// @Tags auth
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security SessionAuth
// @Router /auth/change-password [post]
func (h *authHandler) changePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, dto.OKMessage("password changed, please log in again"))
}

// mintAPIToken godoc
// @Summary Mint an API token for programmatic access
// @Tags auth
// @Produce json
// @Success 201 {object} dto.Response{data=map[string]string}
// @Failure 403 {object} dto.Response
// @Security SessionAuth
// @Router /auth/api-tokens [post]
func (h *authHandler) mintAPIToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("authentication required", apperrors.CodeUnauthenticated))
		return
	}

	token, err := h.apiTokenService.MintToken(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(gin.H{"token": token}))
}
