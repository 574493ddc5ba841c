package http_server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	courier_action "github.com/bazario/fulfillment-service/domain/actions/courier"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
)

func (server *Server) listCourierOrders(c echo.Context) error {
	return server.listOrders(c, true)
}

func (server *Server) getCourierOrder(c echo.Context) error {
	return server.getOrder(c, true)
}

func (server *Server) deliverOrder(c echo.Context) error {
	request := DeliverRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}
	return server.courierAction(c, courier_action.Deliver,
		events.DeliverData{OTP: request.OTP, CODCollected: request.CODCollected})
}

func (server *Server) failDelivery(c echo.Context) error {
	request := ReasonRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}
	return server.courierAction(c, courier_action.DeliveryFail,
		events.DeliveryFailData{Reason: request.Reason})
}

func (server *Server) retryDelivery(c echo.Context) error {
	return server.courierAction(c, courier_action.Retry, nil)
}

func (server *Server) returnToVendor(c echo.Context) error {
	request := ReasonRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}
	return server.courierAction(c, courier_action.ReturnToVendor,
		events.ReturnToVendorData{Reason: request.Reason})
}

func (server *Server) courierAction(c echo.Context, action courier_action.ActionEnums, data interface{}) error {
	actor := actorOf(c)
	orderId, err := parseOrderId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id not parsable"})
	}

	futureData := server.flowManager.Handle(c.Request().Context(),
		events.New(actor, courier_action.New(action), orderId, data)).Get()
	if futureData.Error() != nil {
		return respondError(c, futureData.Error())
	}
	return respondOrder(c, http.StatusOK, futureData.Data().(*entities.Order), true)
}
