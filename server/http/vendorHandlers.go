package http_server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	vendor_action "github.com/bazario/fulfillment-service/domain/actions/vendor"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/domain/returnflow"
)

func (server *Server) listVendorOrders(c echo.Context) error {
	return server.listOrders(c, false)
}

func (server *Server) getVendorOrder(c echo.Context) error {
	return server.getOrder(c, false)
}

func (server *Server) confirmOrder(c echo.Context) error {
	return server.vendorAction(c, vendor_action.Confirm, nil)
}

func (server *Server) rejectOrder(c echo.Context) error {
	request := ReasonRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}
	return server.vendorAction(c, vendor_action.Reject, events.RejectData{Reason: request.Reason})
}

func (server *Server) pickOrder(c echo.Context) error {
	return server.vendorAction(c, vendor_action.Pick, nil)
}

func (server *Server) packOrder(c echo.Context) error {
	return server.vendorAction(c, vendor_action.Pack, nil)
}

func (server *Server) vendorAction(c echo.Context, action vendor_action.ActionEnums, data interface{}) error {
	actor := actorOf(c)
	orderId, err := parseOrderId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id not parsable"})
	}

	futureData := server.flowManager.Handle(c.Request().Context(),
		events.New(actor, vendor_action.New(action), orderId, data)).Get()
	if futureData.Error() != nil {
		return respondError(c, futureData.Error())
	}
	return respondOrder(c, http.StatusOK, futureData.Data().(*entities.Order), false)
}

func (server *Server) reviewReturn(c echo.Context) error {
	actor := actorOf(c)
	requestId, err := parseRequestId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request id not parsable"})
	}
	request := ReviewReturnRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	data := server.returnFlow.Review(c.Request().Context(), actor, returnflow.ReviewRequest{
		RequestId:    requestId,
		Approve:      request.Approve,
		RefundAmount: request.RefundAmount,
		Notes:        request.Notes,
	}).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondReturn(c, http.StatusOK, data.Data().(*entities.ReturnRequest))
}
