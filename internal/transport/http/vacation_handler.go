package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tripnest/vacation-api/internal/media"
	"github.com/tripnest/vacation-api/internal/service"
	"github.com/tripnest/vacation-api/internal/util"
)

type VacationHandler struct {
	vacations *service.VacationService
}

func RegisterVacations(e *echo.Echo, vacations *service.VacationService) {
	handler := &VacationHandler{vacations: vacations}

	e.POST("/vacations", handler.create)
	e.PUT("/update-vacations/:id", handler.update)
	e.GET("/vacations-list", handler.list)
	e.GET("/vacations-by-id/:id", handler.get)
	e.DELETE("/delete-vacations/:id", handler.remove)
}

func (h *VacationHandler) create(c echo.Context) error {
	input, err := parseVacationForm(c)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	upload, closeUpload, err := openImageUpload(c, true)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}
	defer closeUpload()

	vacation, err := h.vacations.Create(c.Request().Context(), input, upload)
	if err != nil {
		return h.writeVacationError(c, "create vacation", err)
	}

	return respond(c, http.StatusOK, "Vacation created successfully", util.Envelope{
		"vacation": vacation,
	})
}

func (h *VacationHandler) update(c echo.Context) error {
	id, err := parseVacationID(c)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	input, err := parseVacationForm(c)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	upload, closeUpload, err := openImageUpload(c, false)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}
	defer closeUpload()

	vacation, err := h.vacations.Update(c.Request().Context(), id, input, upload)
	if err != nil {
		return h.writeVacationError(c, "update vacation", err)
	}

	return respond(c, http.StatusOK, "Vacation updated successfully", util.Envelope{
		"vacation": vacation,
	})
}

func (h *VacationHandler) list(c echo.Context) error {
	vacations, err := h.vacations.List(c.Request().Context())
	if err != nil {
		log.Printf("list vacations: %v", err)
		return respondErr(c, http.StatusInternalServerError, "Internal Server Error")
	}

	return respond(c, http.StatusOK, "Vacations fetched successfully", util.Envelope{
		"vacations": vacations,
	})
}

func (h *VacationHandler) get(c echo.Context) error {
	id, err := parseVacationID(c)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	// The by-id lookup historically returns soft-deleted vacations, unlike
	// the list endpoint. include_inactive=false opts into the filtered view.
	includeInactive := true
	if raw := strings.TrimSpace(c.QueryParam("include_inactive")); raw != "" {
		parsed, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return respondErr(c, http.StatusBadRequest, "include_inactive must be a boolean")
		}
		includeInactive = parsed
	}

	vacation, err := h.vacations.Get(c.Request().Context(), id, includeInactive)
	if err != nil {
		return h.writeVacationError(c, "get vacation", err)
	}

	return respond(c, http.StatusOK, "Vacation fetched successfully", util.Envelope{
		"vacation": vacation,
	})
}

func (h *VacationHandler) remove(c echo.Context) error {
	id, err := parseVacationID(c)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, err.Error())
	}

	if err := h.vacations.Delete(c.Request().Context(), id); err != nil {
		return h.writeVacationError(c, "delete vacation", err)
	}

	return respond(c, http.StatusOK, "Vacation deleted successfully", nil)
}

func (h *VacationHandler) writeVacationError(c echo.Context, op string, err error) error {
	switch {
	case service.IsValidation(err):
		return respondErr(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, media.ErrImageTooLarge), errors.Is(err, media.ErrUnsupportedImage):
		return respondErr(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrVacationNotFound):
		return respondErr(c, http.StatusNotFound, "Vacation not found")
	default:
		log.Printf("%s: %v", op, err)
		return respondErr(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

func parseVacationID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid vacation id")
	}
	return id, nil
}

func parseVacationForm(c echo.Context) (service.VacationInput, error) {
	var input service.VacationInput

	for field, dst := range map[string]*string{
		"destination": &input.Destination,
		"description": &input.Description,
	} {
		value := strings.TrimSpace(c.FormValue(field))
		if value == "" {
			return service.VacationInput{}, errors.New(field + " is required")
		}
		*dst = value
	}

	rawPrice := strings.TrimSpace(c.FormValue("price"))
	if rawPrice == "" {
		return service.VacationInput{}, errors.New("price is required")
	}
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return service.VacationInput{}, errors.New("price must be a number")
	}
	input.Price = price

	input.StartDate, err = parseDate(c.FormValue("start_date"), "start_date")
	if err != nil {
		return service.VacationInput{}, err
	}
	input.EndDate, err = parseDate(c.FormValue("end_date"), "end_date")
	if err != nil {
		return service.VacationInput{}, err
	}

	return input, nil
}

func parseDate(raw, field string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.New(field + " is required")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New(field + " must be a date in YYYY-MM-DD form")
}

// openImageUpload extracts the uploaded image from the multipart form. When
// required is false a missing file is not an error and a nil upload is
// returned.
func openImageUpload(c echo.Context, required bool) (*media.Upload, func(), error) {
	noop := func() {}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		if !required && (errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)) {
			return nil, noop, nil
		}
		return nil, noop, errors.New("image file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, noop, errors.New("unable to read upload")
	}

	return &media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, func() { _ = src.Close() }, nil
}
