package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/polkiloo/courierdesk/internal/server/http/dto"
	"github.com/polkiloo/courierdesk/internal/server/http/middleware"
	"github.com/polkiloo/courierdesk/internal/server/http/validation"
)

// AuthHandler processes admin login.
type AuthHandler struct {
	facade   AuthFacade
	validate *validatorv10.Validate
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, validate *validatorv10.Validate) *AuthHandler {
	return &AuthHandler{facade: facade, validate: validate}
}

// Login handles POST /admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
