package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
	"storeadmin-backend/services"
)

// GetComments menangani pengambilan daftar komentar.
func (ctrl *Controller) GetComments(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.CommentFilter{
		Q:         c.Query("q"),
		ProductID: c.Query("product"),
		UserID:    c.Query("user"),
		IsHidden:  boolQuery(c, "isHidden"),
	}
	page, err := ctrl.Comments.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func (ctrl *Controller) GetComment(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cm, err := ctrl.Comments.Get(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cm)
}

// ToggleComment menyembunyikan atau menampilkan komentar.
func (ctrl *Controller) ToggleComment(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cm, err := ctrl.Comments.ToggleHidden(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cm)
}

// ReplyComment menyimpan balasan admin.
func (ctrl *Controller) ReplyComment(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cm, err := ctrl.Comments.Reply(ctx, c.Param("id"), req.Content)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cm)
}

func (ctrl *Controller) DeleteComment(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := ctrl.Comments.Delete(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Comment deleted"})
}
