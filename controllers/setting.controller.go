package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
)

// GetSettings mengembalikan pengaturan toko, dibuat dengan nilai awal bila belum ada.
func (ctrl *Controller) GetSettings(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := ctrl.Settings.Get(ctx)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}

// UpdateSettings mengganti blok pengaturan yang dikirim.
func (ctrl *Controller) UpdateSettings(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := ctrl.Settings.Update(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}
