package http_server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazario/fulfillment-service/domain"
	"github.com/bazario/fulfillment-service/domain/converters"
	"github.com/bazario/fulfillment-service/domain/models/entities"
)

// listOrders and getOrder back every actor facing order route; includeOTP
// decides whether the delivery otp is present in the view. Buyers and the
// assigned courier get it, vendors and operators do not.
func (server *Server) listOrders(c echo.Context, includeOTP bool) error {
	actor := actorOf(c)
	page, perPage := parsePaging(c)

	data := server.flowManager.ListOrders(c.Request().Context(), actor, page, perPage).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}

	orderPage := data.Data().(domain.OrderPage)
	views, err := converters.ToOrderViews(orderPage.Orders, includeOTP)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "response conversion failed"})
	}
	return c.JSON(http.StatusOK, OrderListResponse{
		Orders:     views,
		Page:       orderPage.Page,
		PerPage:    orderPage.PerPage,
		TotalCount: orderPage.TotalCount,
	})
}

func (server *Server) getOrder(c echo.Context, includeOTP bool) error {
	actor := actorOf(c)
	orderId, err := parseOrderId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id not parsable"})
	}

	data := server.flowManager.GetOrder(c.Request().Context(), actor, orderId).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondOrder(c, http.StatusOK, data.Data().(*entities.Order), includeOTP)
}
