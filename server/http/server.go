package http_server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bazario/fulfillment-service/configs"
	"github.com/bazario/fulfillment-service/domain"
	"github.com/bazario/fulfillment-service/domain/actions"
	cart_service "github.com/bazario/fulfillment-service/domain/cart"
	"github.com/bazario/fulfillment-service/domain/returnflow"
)

type Server struct {
	echo        *echo.Echo
	config      *configs.Config
	flowManager domain.IFlowManager
	cartService cart_service.ICartService
	returnFlow  returnflow.IReturnFlow
}

func New(config *configs.Config, flowManager domain.IFlowManager,
	cartService cart_service.ICartService, returnFlow returnflow.IReturnFlow) *Server {
	server := &Server{
		echo:        echo.New(),
		config:      config,
		flowManager: flowManager,
		cartService: cartService,
		returnFlow:  returnFlow,
	}
	server.echo.HideBanner = true
	server.setupRoutes()
	return server
}

func (server *Server) setupRoutes() {
	e := server.echo

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(RequestLogMiddleware())
	e.Use(MetricsMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.Use(AuthMiddleware(server.config.JWT.Secret))

	buyer := api.Group("", RequireRole(actions.Buyer))
	buyer.GET("/cart", server.getCart)
	buyer.POST("/cart/items", server.addCartItem)
	buyer.PUT("/cart/items/:inventoryId/quantity", server.updateCartItemQuantity)
	buyer.DELETE("/cart/items/:inventoryId", server.removeCartItem)
	buyer.POST("/cart/coupon", server.applyCoupon)
	buyer.DELETE("/cart/coupon", server.removeCoupon)
	buyer.POST("/checkout", server.checkout)
	buyer.GET("/orders", server.listBuyerOrders)
	buyer.GET("/orders/:orderId", server.getBuyerOrder)
	buyer.POST("/orders/:orderId/cancel", server.cancelOrder)
	buyer.POST("/orders/:orderId/payment/callback", server.paymentCallback)
	buyer.POST("/orders/:orderId/returns", server.createReturn)
	buyer.GET("/orders/:orderId/returns", server.listReturns)
	buyer.GET("/returns/:requestId", server.getReturn)

	vendor := api.Group("/vendor", RequireRole(actions.Vendor))
	vendor.GET("/orders", server.listVendorOrders)
	vendor.GET("/orders/:orderId", server.getVendorOrder)
	vendor.POST("/orders/:orderId/confirm", server.confirmOrder)
	vendor.POST("/orders/:orderId/reject", server.rejectOrder)
	vendor.POST("/orders/:orderId/pick", server.pickOrder)
	vendor.POST("/orders/:orderId/pack", server.packOrder)
	vendor.GET("/orders/:orderId/returns", server.listReturns)
	vendor.POST("/returns/:requestId/review", server.reviewReturn)
	vendor.GET("/returns/:requestId", server.getReturn)

	courier := api.Group("/courier", RequireRole(actions.Courier))
	courier.GET("/orders", server.listCourierOrders)
	courier.GET("/orders/:orderId", server.getCourierOrder)
	courier.POST("/orders/:orderId/deliver", server.deliverOrder)
	courier.POST("/orders/:orderId/fail", server.failDelivery)
	courier.POST("/orders/:orderId/retry", server.retryDelivery)
	courier.POST("/orders/:orderId/return-to-vendor", server.returnToVendor)

	operator := api.Group("/operator", RequireRole(actions.Operator))
	operator.GET("/orders", server.listOperatorOrders)
	operator.GET("/orders/:orderId", server.getOperatorOrder)
	operator.POST("/orders/:orderId/dispatch", server.dispatchOrder)
	operator.GET("/orders/:orderId/returns", server.listReturns)
	operator.POST("/returns/:requestId/review", server.reviewReturn)
	operator.POST("/returns/:requestId/complete", server.completeReturn)
	operator.GET("/returns/:requestId", server.getReturn)
}

func (server *Server) Start(address string) error {
	return server.echo.Start(address)
}

func (server *Server) Shutdown(ctx context.Context) error {
	return server.echo.Shutdown(ctx)
}

// Echo exposes the router for handler tests.
func (server *Server) Echo() *echo.Echo {
	return server.echo
}
