package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront-admin/internal/hash"
	"github.com/Skotchmaster/storefront-admin/internal/logging"
	"github.com/Skotchmaster/storefront-admin/internal/models"
	"github.com/Skotchmaster/storefront-admin/internal/mykafka"
	"github.com/Skotchmaster/storefront-admin/internal/service/token"
)

type AuthHandler struct {
	DB            *gorm.DB
	Tokens        *token.Service
	Producer      *mykafka.Producer
	SecureCookies bool
}

func (h *AuthHandler) setTokenCookies(c echo.Context, pair *token.Pair) {
	c.SetCookie(CreateCookie("accessToken", pair.AccessToken, "/", pair.AccessExp, h.SecureCookies))
	c.SetCookie(CreateCookie("refreshToken", pair.RefreshToken, "/", pair.RefreshExp, h.SecureCookies))
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password are required")
	}

	var existing models.User
	err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return fail(c, http.StatusBadRequest, "user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_error", "error", err)
		return fail(c, http.StatusInternalServerError, "registration failed")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "error", err)
		return fail(c, http.StatusInternalServerError, "registration failed")
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := h.DB.WithContext(ctx).Create(&user).Error; err != nil {
		l.Error("register_error", "error", err)
		return fail(c, http.StatusInternalServerError, "registration failed")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user_registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"userId":  user.ID,
		"message": "user registered successfully",
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	var user models.User
	if err := h.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		l.Error("login_error", "error", err)
		return fail(c, http.StatusInternalServerError, "login failed")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	pair, err := h.Tokens.Issue(&user)
	if err != nil {
		l.Error("login_error", "error", err)
		return fail(c, http.StatusInternalServerError, "login failed")
	}
	if err := h.Tokens.Persist(ctx, user.ID, pair.RefreshToken); err != nil {
		l.Error("login_error", "error", err)
		return fail(c, http.StatusInternalServerError, "login failed")
	}

	h.setTokenCookies(c, pair)

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("login_successful", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "login successful",
		"user": echo.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	cookie, err := c.Cookie("refreshToken")
	if err != nil {
		return fail(c, http.StatusUnauthorized, "refresh token missing")
	}

	_, pair, err := h.Tokens.Rotate(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, token.ErrRefreshNotFound) {
			return fail(c, http.StatusUnauthorized, "invalid refresh token")
		}
		l.Error("refresh_error", "error", err)
		return fail(c, http.StatusInternalServerError, "token refresh failed")
	}

	h.setTokenCookies(c, pair)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "token refreshed",
	})
}

// LogOut clears both cookies and nothing else. The stored refresh token is
// deliberately left alone: it keeps working until it is rotated away on the
// next login or refresh.
func (h *AuthHandler) LogOut(c echo.Context) error {
	c.SetCookie(DeleteCookie("accessToken", "/", h.SecureCookies))
	c.SetCookie(DeleteCookie("refreshToken", "/", h.SecureCookies))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "logged out",
	})
}
