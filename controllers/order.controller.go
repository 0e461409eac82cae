package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/middleware"
	"storeadmin-backend/models"
	"storeadmin-backend/services"
)

// GetOrders menangani pengambilan daftar pesanan.
func (ctrl *Controller) GetOrders(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.OrderFilter{
		Q:             c.Query("q"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		UserID:        c.Query("userId"),
		From:          dateQuery(c, "from"),
		To:            dateQuery(c, "to"),
	}
	page, err := ctrl.Orders.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetOrder menangani pengambilan satu pesanan.
func (ctrl *Controller) GetOrder(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := ctrl.Orders.Get(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, o)
}

// CreateOrder menangani pembuatan pesanan.
func (ctrl *Controller) CreateOrder(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, err := ctrl.Orders.Create(ctx, req, c.GetString(middleware.UserIDKey))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, o)
}

// UpdateOrderStatus menambah riwayat status dan memberi tahu pemilik pesanan.
func (ctrl *Controller) UpdateOrderStatus(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, err := ctrl.Orders.UpdateStatus(ctx, c.Param("id"), req.Status, req.Note, c.GetString(middleware.UserIDKey))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, o)
}

// UpdateOrderPayment menangani perubahan status pembayaran.
func (ctrl *Controller) UpdateOrderPayment(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	o, err := ctrl.Orders.UpdatePayment(ctx, c.Param("id"), req.PaymentStatus, req.PaymentMethod)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, o)
}

func (ctrl *Controller) DeleteOrder(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := ctrl.Orders.Delete(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Order deleted"})
}
