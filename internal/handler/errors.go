package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/jengzang/a5grid/internal/service"
	"github.com/jengzang/a5grid/pkg/a5"
	"github.com/jengzang/a5grid/pkg/response"
)

// statusFor maps engine and service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrLimitExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, a5.ErrInvalidInput),
		errors.Is(err, a5.ErrInvalidCellID),
		errors.Is(err, a5.ErrResolution),
		errors.Is(err, a5.ErrNoParent),
		errors.Is(err, a5.ErrMaxResolutionExceeded),
		errors.Is(err, a5.ErrDegenerateGeometry):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		response.InternalError(c, "internal error")
		return
	}
	response.Error(c, code, err.Error())
}

// cellParam parses the :id path parameter
func cellParam(c *gin.Context) (a5.CellID, bool) {
	id, err := service.ParseCell(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return id, true
}

// optionalInt reads an integer query parameter, nil when absent
func optionalInt(c *gin.Context, name string) (*int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name+": "+raw)
		return nil, false
	}
	return &v, true
}

func hexIDs(ids []a5.CellID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
