package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
	"storeadmin-backend/services"
)

// GetProducts menangani pengambilan daftar produk dengan filter dan halaman.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.ProductFilter{
		Q:          c.Query("q"),
		CategoryID: c.Query("category"),
		IsActive:   boolQuery(c, "isActive"),
		MinPrice:   floatQuery(c, "minPrice"),
		MaxPrice:   floatQuery(c, "maxPrice"),
	}
	page, err := ctrl.Products.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetProduct menangani pengambilan satu produk berdasarkan ID.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := ctrl.Products.Get(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// GetProductBySlug menangani pengambilan produk berdasarkan slug.
func (ctrl *Controller) GetProductBySlug(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := ctrl.Products.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// CreateProduct menangani pembuatan produk baru.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.Products.Create(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// UpdateProduct menangani pembaruan data produk.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.Products.Update(ctx, c.Param("id"), req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// ToggleProduct membalik status aktif produk.
func (ctrl *Controller) ToggleProduct(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := ctrl.Products.ToggleActive(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateStock menangani perubahan stok produk.
func (ctrl *Controller) UpdateStock(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.Products.UpdateStock(ctx, c.Param("id"), req.Stock)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UploadProductImages mengunggah berkas "files" lalu menambahkan URL-nya ke produk.
func (ctrl *Controller) UploadProductImages(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := ctrl.Products.Get(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, err)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		fail(c, http.StatusBadRequest, "no files uploaded")
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		res, err := ctrl.Uploader.Upload(ctx, fh, "products")
		if err != nil {
			ctrl.handleError(c, err)
			return
		}
		urls = append(urls, res.URL)
	}
	p, err := ctrl.Products.AddImages(ctx, c.Param("id"), urls)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// RemoveProductImage melepas satu URL gambar dari produk.
func (ctrl *Controller) RemoveProductImage(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.Products.RemoveImage(ctx, c.Param("id"), req.URL)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ctrl.discardImages(ctx, req.URL)
	ok(c, http.StatusOK, p)
}

// DeleteProduct menangani penghapusan produk.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := ctrl.Products.Get(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	if err := ctrl.Products.Delete(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ctrl.discardImages(ctx, p.Images...)
	ok(c, http.StatusOK, gin.H{"message": "Product deleted"})
}
