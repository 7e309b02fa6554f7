package handler

import (
	"github.com/fieldsales/backend/internal/interfaces/http/router"
)

// OrderRoutes binds the order lifecycle endpoints under /orders.
// The static /draft and /validate segments must be registered alongside
// the :id parameter; gin resolves static segments first.
func OrderRoutes(draftHandler *DraftHandler, orderHandler *OrderHandler) *router.DomainGroup {
	orders := router.NewDomainGroup("orders", "/orders")

	orders.GET("/draft", draftHandler.Get)
	orders.PUT("/draft", draftHandler.Save)
	orders.DELETE("/draft", draftHandler.Delete)

	orders.POST("/validate", orderHandler.Validate)
	orders.POST("", orderHandler.Submit)
	orders.GET("", orderHandler.List)
	orders.GET("/number/:number", orderHandler.GetByNumber)
	orders.GET("/:id", orderHandler.GetByID)

	return orders
}
