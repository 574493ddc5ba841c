package http_server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazario/fulfillment-service/domain/actions"
	system_action "github.com/bazario/fulfillment-service/domain/actions/system"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
)

func (server *Server) listOperatorOrders(c echo.Context) error {
	return server.listOrders(c, false)
}

func (server *Server) getOperatorOrder(c echo.Context) error {
	return server.getOrder(c, false)
}

// dispatchOrder assigns a courier and moves the order out for delivery.
// Dispatch is a platform action, so the operator's identity is recast as
// System for the transition itself.
func (server *Server) dispatchOrder(c echo.Context) error {
	actor := actorOf(c)
	orderId, err := parseOrderId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id not parsable"})
	}
	request := DispatchRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	systemActor := events.ActorIdentity{ID: actor.ID, Role: actions.System}
	data := server.flowManager.Handle(c.Request().Context(),
		events.New(systemActor, system_action.New(system_action.Dispatch), orderId,
			events.DispatchData{CourierId: request.CourierId})).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondOrder(c, http.StatusOK, data.Data().(*entities.Order), false)
}

func (server *Server) completeReturn(c echo.Context) error {
	actor := actorOf(c)
	requestId, err := parseRequestId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request id not parsable"})
	}

	data := server.returnFlow.Complete(c.Request().Context(), actor, requestId).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondReturn(c, http.StatusOK, data.Data().(*entities.ReturnRequest))
}
