package handlers

import (
	"errors"
	"net/http"

	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgCredentialsRequired = "Phone number and password are required"
	msgInvalidCredentials  = "Invalid credentials"
	msgLoginOK             = "Login successful"
	msgRegisteredOK        = "User registered and logged in successfully"
	msgConfigError         = "Server configuration error"
	msgInternalError       = "Internal server error"
)

// Credentials payload for the unified auth endpoint.
type authCredentials struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// @Summary      Login or register
// @Description  Verifies an existing phone/password pair, or registers it if the phone number is unseen. Issues a bearer token either way.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "message, token (login)"
// @Success      201   {object}  map[string]string  "message, token (registration)"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth [post]
func (h *Handler) authenticate(c *gin.Context) {
	var input authCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": msgCredentialsRequired})
		return
	}

	if h.log != nil {
		// never log the password itself
		h.log.Infow("auth_request", "phone_number", input.PhoneNumber, "password_length", len(input.Password))
	}

	res, err := h.services.Authenticate(c.Request.Context(), input.PhoneNumber, input.Password)
	if err != nil {
		h.writeAuthError(c, input.PhoneNumber, err)
		return
	}

	if res.Created {
		c.JSON(http.StatusCreated, gin.H{"message": msgRegisteredOK, "token": res.Token})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgLoginOK, "token": res.Token})
}

// writeAuthError maps resolver failures to client responses. Storage error
// detail stays in the operator log; clients get a fixed generic message.
func (h *Handler) writeAuthError(c *gin.Context, phoneNumber string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		if h.log != nil {
			h.log.Infow("auth_invalid_credentials", "phone_number", phoneNumber)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCredentials})
	case errors.Is(err, service.ErrMissingSigningSecret):
		if h.log != nil {
			h.log.Errorw("auth_signing_secret_missing")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgConfigError})
	default:
		if h.log != nil {
			h.log.Errorw("auth_failed", "phone_number", phoneNumber, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternalError})
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Server is up and running!",
	})
}
