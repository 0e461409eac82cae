package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
	"storeadmin-backend/services"
)

// GetCoupons menangani pengambilan daftar kupon.
func (ctrl *Controller) GetCoupons(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.CouponFilter{Q: c.Query("q"), Status: c.Query("status"), Type: c.Query("type")}
	page, err := ctrl.Coupons.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func (ctrl *Controller) GetCoupon(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cp, err := ctrl.Coupons.Get(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cp)
}

// CreateCoupon menangani pembuatan kupon.
func (ctrl *Controller) CreateCoupon(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cp, err := ctrl.Coupons.Create(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, cp)
}

func (ctrl *Controller) UpdateCoupon(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.CouponUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cp, err := ctrl.Coupons.Update(ctx, c.Param("id"), req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cp)
}

func (ctrl *Controller) ToggleCoupon(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	// Body {"isActive": bool} opsional; tanpa body status dibalik.
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	var (
		cp  *models.Coupon
		err error
	)
	if req.IsActive != nil {
		cp, err = ctrl.Coupons.SetActive(ctx, c.Param("id"), *req.IsActive)
	} else {
		cp, err = ctrl.Coupons.ToggleActive(ctx, c.Param("id"))
	}
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cp)
}

// ValidateCoupon menghitung potongan kupon untuk nilai pesanan tanpa memakainya.
func (ctrl *Controller) ValidateCoupon(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	quote, err := ctrl.Coupons.Validate(ctx, req.Code, req.OrderValue)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, quote)
}

// SendCoupon mengirim email promosi kupon, satu email per penerima.
func (ctrl *Controller) SendCoupon(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.SendCouponRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	n, err := ctrl.Coupons.SendPromotion(ctx, c.Param("id"), req.Emails)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusAccepted, gin.H{"queued": n})
}

func (ctrl *Controller) DeleteCoupon(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := ctrl.Coupons.Delete(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Coupon deleted"})
}

// GetSubscribers menangani pengambilan daftar pelanggan email.
func (ctrl *Controller) GetSubscribers(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.SubscriberFilter{Q: c.Query("q"), IsActive: boolQuery(c, "isActive")}
	page, err := ctrl.Subscribers.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// Subscribe mendaftarkan email untuk menerima promosi.
func (ctrl *Controller) Subscribe(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := ctrl.Subscribers.Subscribe(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, sub)
}

func (ctrl *Controller) Unsubscribe(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := ctrl.Subscribers.Unsubscribe(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Subscriber removed"})
}
