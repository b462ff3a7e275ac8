package handlers

import (
	"errors"
	"log"
	"net/http"

	request "taller_str/internal/adapter/http/dto/request"
	"taller_str/internal/adapter/http/middleware"
	"taller_str/internal/infrastructure/token"
	"taller_str/internal/usecase"
	"taller_str/pkg"

	"github.com/gin-gonic/gin"
)

// Session cookie max-age: 7 days.
const sessionMaxAge = 7 * 24 * 60 * 60

type AuthHandler struct {
	usecase usecase.IAuthUseCase
	signer  *token.SessionSigner
}

func NewAuthHandler(uc usecase.IAuthUseCase, signer *token.SessionSigner) *AuthHandler {
	return &AuthHandler{usecase: uc, signer: signer}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.usecase.Login(c.Request.Context(), payload.Password); err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	tok, err := h.signer.Generate()
	if err != nil {
		log.Printf("[auth][handler] session token generation failed: %v", err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookie, tok, sessionMaxAge, "/", "", cookieSecure(), true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookie, "", -1, "/", "", cookieSecure(), true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var payload request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.usecase.ChangePassword(c.Request.Context(), payload.CurrentPassword, payload.NewPassword); err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrWrongPassword):
		return pkg.NewDomainErrorSimple("WRONG_PASSWORD", "Contraseña incorrecta", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPasswordTooShort):
		return pkg.NewDomainErrorSimple("PASSWORD_TOO_SHORT", "La contraseña debe tener al menos 6 caracteres", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
	}
}
