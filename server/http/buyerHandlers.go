package http_server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazario/fulfillment-service/app"
	"github.com/bazario/fulfillment-service/domain"
	buyer_action "github.com/bazario/fulfillment-service/domain/actions/buyer"
	"github.com/bazario/fulfillment-service/domain/converters"
	"github.com/bazario/fulfillment-service/domain/events"
	"github.com/bazario/fulfillment-service/domain/models/entities"
	"github.com/bazario/fulfillment-service/domain/returnflow"
)

func (server *Server) getCart(c echo.Context) error {
	actor := actorOf(c)
	data := server.cartService.GetCart(c.Request().Context(), actor.ID).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return c.JSON(http.StatusOK, data.Data().(*entities.Cart))
}

func (server *Server) addCartItem(c echo.Context) error {
	actor := actorOf(c)
	request := AddItemRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	item := entities.CartItem{
		InventoryId:      request.InventoryId,
		Title:            request.Title,
		Brand:            request.Brand,
		Category:         request.Category,
		Image:            request.Image,
		SellUnit:         request.SellUnit,
		UnitPrice:        request.UnitPrice,
		Quantity:         request.Quantity,
		ReturnEligible:   request.ReturnEligible,
		ReturnWindowDays: request.ReturnWindowDays,
	}

	data := server.cartService.AddItem(c.Request().Context(), actor.ID, request.VendorId, item).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return c.JSON(http.StatusOK, data.Data().(*entities.Cart))
}

func (server *Server) updateCartItemQuantity(c echo.Context) error {
	actor := actorOf(c)
	request := QuantityRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	data := server.cartService.UpdateQuantity(c.Request().Context(), actor.ID,
		c.Param("inventoryId"), request.Quantity).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return c.JSON(http.StatusOK, data.Data().(*entities.Cart))
}

func (server *Server) removeCartItem(c echo.Context) error {
	actor := actorOf(c)
	data := server.cartService.RemoveItem(c.Request().Context(), actor.ID, c.Param("inventoryId")).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return c.JSON(http.StatusOK, data.Data().(*entities.Cart))
}

func (server *Server) applyCoupon(c echo.Context) error {
	actor := actorOf(c)
	request := CouponRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	data := server.cartService.ApplyCoupon(c.Request().Context(), actor.ID, request.Code).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return c.JSON(http.StatusOK, data.Data().(*entities.Cart))
}

func (server *Server) removeCoupon(c echo.Context) error {
	actor := actorOf(c)
	data := server.cartService.RemoveCoupon(c.Request().Context(), actor.ID).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return c.JSON(http.StatusOK, data.Data().(*entities.Cart))
}

// checkout snapshots the cart and the chosen address into a placement. The
// cart is not trusted from the request body; it is re-read from the store.
func (server *Server) checkout(c echo.Context) error {
	actor := actorOf(c)
	request := CheckoutRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	ctx := c.Request().Context()

	cartData := server.cartService.GetCart(ctx, actor.ID).Get()
	if cartData.Error() != nil {
		return respondError(c, cartData.Error())
	}
	cart := cartData.Data().(*entities.Cart)

	addressData := app.Globals.AddressService.GetAddress(ctx, actor.ID, request.AddressId).Get()
	if addressData.Error() != nil {
		return respondError(c, addressData.Error())
	}
	address := addressData.Data().(entities.AddressInfo)

	placeData := events.PlaceOrderData{
		Cart:    cart,
		Address: address,
		Buyer: entities.BuyerInfo{
			BuyerId:   actor.ID,
			FirstName: address.FirstName,
			LastName:  address.LastName,
			Phone:     address.Phone,
			Mobile:    address.Mobile,
			IP:        c.RealIP(),
		},
		Vendor:      entities.VendorInfo{VendorId: cart.VendorId},
		PaymentMode: request.PaymentMode,
	}

	data := server.flowManager.PlaceOrder(ctx, actor, placeData).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondOrder(c, http.StatusCreated, data.Data().(*entities.Order), true)
}

func (server *Server) listBuyerOrders(c echo.Context) error {
	return server.listOrders(c, true)
}

func (server *Server) getBuyerOrder(c echo.Context) error {
	return server.getOrder(c, true)
}

func (server *Server) cancelOrder(c echo.Context) error {
	actor := actorOf(c)
	orderId, err := parseOrderId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id not parsable"})
	}
	request := ReasonRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	data := server.flowManager.Handle(c.Request().Context(),
		events.New(actor, buyer_action.New(buyer_action.Cancel), orderId,
			events.CancelData{Reason: request.Reason})).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondOrder(c, http.StatusOK, data.Data().(*entities.Order), true)
}

func (server *Server) paymentCallback(c echo.Context) error {
	actor := actorOf(c)
	orderId, err := parseOrderId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id not parsable"})
	}
	request := PaymentCallbackRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	data := server.flowManager.PaymentCallback(c.Request().Context(), actor, domain.PaymentCallbackRequest{
		OrderId:        orderId,
		GatewayOrderId: request.GatewayOrderId,
		PaymentId:      request.PaymentId,
		Signature:      request.Signature,
	}).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondOrder(c, http.StatusOK, data.Data().(*entities.Order), true)
}

func (server *Server) createReturn(c echo.Context) error {
	actor := actorOf(c)
	orderId, err := parseOrderId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id not parsable"})
	}
	request := CreateReturnRequest{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body not parsable"})
	}

	data := server.returnFlow.Create(c.Request().Context(), actor, returnflow.CreateRequest{
		OrderId:      orderId,
		ItemId:       request.ItemId,
		Reason:       request.Reason,
		Description:  request.Description,
		EvidenceURLs: request.EvidenceURLs,
	}).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondReturn(c, http.StatusCreated, data.Data().(*entities.ReturnRequest))
}

func (server *Server) listReturns(c echo.Context) error {
	actor := actorOf(c)
	orderId, err := parseOrderId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id not parsable"})
	}

	data := server.returnFlow.ListByOrder(c.Request().Context(), actor, orderId).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	views, convertErr := converters.ToReturnRequestViews(data.Data().([]*entities.ReturnRequest))
	if convertErr != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "response conversion failed"})
	}
	return c.JSON(http.StatusOK, views)
}

func (server *Server) getReturn(c echo.Context) error {
	actor := actorOf(c)
	requestId, err := parseRequestId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request id not parsable"})
	}

	data := server.returnFlow.Get(c.Request().Context(), actor, requestId).Get()
	if data.Error() != nil {
		return respondError(c, data.Error())
	}
	return respondReturn(c, http.StatusOK, data.Data().(*entities.ReturnRequest))
}
