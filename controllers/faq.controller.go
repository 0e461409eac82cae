package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
	"storeadmin-backend/services"
)

// GetFAQCategories menangani pengambilan kategori FAQ, diurutkan menurut order.
func (ctrl *Controller) GetFAQCategories(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	active := boolQuery(c, "isActive")
	cats, err := ctrl.FAQs.ListCategories(ctx, active != nil && *active)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cats)
}

func (ctrl *Controller) CreateFAQCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.FAQCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := ctrl.FAQs.CreateCategory(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, cat)
}

func (ctrl *Controller) UpdateFAQCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.FAQCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := ctrl.FAQs.UpdateCategory(ctx, c.Param("id"), req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

func (ctrl *Controller) ToggleFAQCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := ctrl.FAQs.ToggleCategory(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

// DeleteFAQCategory menghapus kategori beserta semua FAQ di dalamnya.
func (ctrl *Controller) DeleteFAQCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	removed, err := ctrl.FAQs.DeleteCategory(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "FAQ category deleted", "faqsDeleted": removed})
}

// GetFAQs menangani pengambilan daftar FAQ.
func (ctrl *Controller) GetFAQs(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.FAQFilter{Q: c.Query("q"), CategoryID: c.Query("category"), IsActive: boolQuery(c, "isActive")}
	page, err := ctrl.FAQs.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func (ctrl *Controller) GetFAQ(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	faq, err := ctrl.FAQs.Get(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, faq)
}

func (ctrl *Controller) CreateFAQ(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	faq, err := ctrl.FAQs.Create(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, faq)
}

func (ctrl *Controller) UpdateFAQ(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	faq, err := ctrl.FAQs.Update(ctx, c.Param("id"), req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, faq)
}

func (ctrl *Controller) ToggleFAQ(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	faq, err := ctrl.FAQs.ToggleActive(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, faq)
}

// ReorderFAQs menyimpan urutan baru sesuai posisi id pada body.
func (ctrl *Controller) ReorderFAQs(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	n, err := ctrl.FAQs.Reorder(ctx, req.IDs)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"matched": n})
}

func (ctrl *Controller) DeleteFAQ(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := ctrl.FAQs.Delete(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "FAQ deleted"})
}
