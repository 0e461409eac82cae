package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
	"storeadmin-backend/services"
)

// GetCategories menangani pengambilan daftar kategori.
func (ctrl *Controller) GetCategories(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.CategoryFilter{Q: c.Query("q"), IsActive: boolQuery(c, "isActive")}
	page, err := ctrl.Categories.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetCategory menangani pengambilan satu kategori.
func (ctrl *Controller) GetCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := ctrl.Categories.Get(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

// CreateCategory menangani pembuatan kategori.
func (ctrl *Controller) CreateCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := ctrl.Categories.Create(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, cat)
}

// UpdateCategory menangani pembaruan kategori.
func (ctrl *Controller) UpdateCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := ctrl.Categories.Update(ctx, c.Param("id"), req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

func (ctrl *Controller) ToggleCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cat, err := ctrl.Categories.ToggleActive(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

// UploadCategoryImage mengunggah gambar kategori.
func (ctrl *Controller) UploadCategoryImage(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := ctrl.Categories.Get(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	url, uploaded := ctrl.uploadOne(ctx, c, "categories")
	if !uploaded {
		return
	}
	cat, err := ctrl.Categories.SetImage(ctx, c.Param("id"), url)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

// DeleteCategory menolak penghapusan bila masih dipakai produk.
func (ctrl *Controller) DeleteCategory(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := ctrl.Categories.Delete(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Category deleted"})
}
