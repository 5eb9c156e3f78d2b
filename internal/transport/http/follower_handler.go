package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tripnest/vacation-api/internal/service"
	"github.com/tripnest/vacation-api/internal/util"
)

type FollowerHandler struct {
	followers *service.FollowerService
}

func RegisterFollowers(e *echo.Echo, followers *service.FollowerService) {
	handler := &FollowerHandler{followers: followers}

	e.POST("/followers", handler.setStatus)
}

func (h *FollowerHandler) setStatus(c echo.Context) error {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}
	vacationID, err := parseIDParam(c, "vacation_id")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid request body")
	}

	follower, created, err := h.followers.SetStatus(c.Request().Context(), userID, vacationID, req.Status)
	if err != nil {
		if service.IsValidation(err) {
			return respondErr(c, http.StatusBadRequest, err.Error())
		}
		log.Printf("set follower status: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal Server Error")
	}

	message := "Follower status updated successfully"
	if created {
		message = "Follower stored successfully"
	}
	return respond(c, http.StatusOK, message, util.Envelope{
		"follower": follower,
	})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return id, nil
}
