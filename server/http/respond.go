package http_server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bazario/fulfillment-service/domain/converters"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/infrastructure/future"
)

// Future error codes are already http status codes, so the mapping is a
// plain cast. The wrapped reason stays in the log, not in the response.
func respondError(c echo.Context, errorFuture future.IErrorFuture) error {
	return c.JSON(int(errorFuture.Code()), ErrorResponse{Error: errorFuture.Message()})
}

func respondOrder(c echo.Context, status int, order *entities.Order, includeOTP bool) error {
	view, err := converters.ToOrderView(order, includeOTP)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "response conversion failed"})
	}
	return c.JSON(status, view)
}

func respondReturn(c echo.Context, status int, request *entities.ReturnRequest) error {
	view, err := converters.ToReturnRequestView(request)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "response conversion failed"})
	}
	return c.JSON(status, view)
}

func parseOrderId(c echo.Context) (uint64, error) {
	return parseUint(c.Param("orderId"))
}

func parseRequestId(c echo.Context) (uint64, error) {
	return parseUint(c.Param("requestId"))
}

func parseUint(value string) (uint64, error) {
	return strconv.ParseUint(value, 10, 64)
}

func parsePaging(c echo.Context) (page, perPage int64) {
	page, _ = strconv.ParseInt(c.QueryParam("page"), 10, 64)
	perPage, _ = strconv.ParseInt(c.QueryParam("perPage"), 10, 64)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
