package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripnest/vacation-api/internal/service"
	"github.com/tripnest/vacation-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	e.POST("/register", handler.register)
	e.POST("/login", handler.login)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Role      string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		switch {
		case service.IsValidation(err):
			return respondErr(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			return respondErr(c, http.StatusConflict, "Email already registered")
		default:
			log.Printf("register: %v", err)
			return respondErr(c, http.StatusInternalServerError, "Internal Server Error")
		}
	}

	return respond(c, http.StatusOK, "User registered successfully", util.Envelope{
		"user": user,
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case service.IsValidation(err):
			return respondErr(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return respondErr(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			return respondErr(c, http.StatusUnauthorized, "Incorrect password")
		default:
			log.Printf("login: %v", err)
			return respondErr(c, http.StatusInternalServerError, "Internal Server Error")
		}
	}

	return respond(c, http.StatusOK, "Login successful", util.Envelope{
		"user": user,
	})
}
