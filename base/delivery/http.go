package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stranger-market/goapi/domain"
	"github.com/stranger-market/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// MakeJsonResp writes the envelope the frontend expects. Domain errors are
// remapped to their canonical status codes regardless of the status the
// handler proposed.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		switch {
		case errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrUnauthorized):
			status = http.StatusForbidden
		case errors.Is(err, domain.ErrNotApproved) || errors.Is(err, domain.ErrInvalidState):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrInsufficientPayment):
			status = http.StatusPaymentRequired
		case errors.Is(err, domain.ErrBadParamInput) || errors.Is(err, domain.ErrInvalidPrice) || errors.Is(err, domain.ErrInvalidAddress):
			status = http.StatusBadRequest
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
