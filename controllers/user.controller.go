package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
	"storeadmin-backend/services"
)

// GetUsers menangani pengambilan daftar pengguna.
func (ctrl *Controller) GetUsers(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.UserFilter{Q: c.Query("q"), Role: c.Query("role"), IsActive: boolQuery(c, "isActive")}
	page, err := ctrl.Users.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func (ctrl *Controller) GetUser(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := ctrl.Users.Get(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// CreateUser menangani pembuatan pengguna oleh admin.
func (ctrl *Controller) CreateUser(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := ctrl.Users.Create(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

func (ctrl *Controller) UpdateUser(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := ctrl.Users.Update(ctx, c.Param("id"), req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

func (ctrl *Controller) ToggleUser(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := ctrl.Users.ToggleActive(ctx, c.Param("id"))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// SetUserRole menangani perubahan peran pengguna.
func (ctrl *Controller) SetUserRole(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := ctrl.Users.SetRole(ctx, c.Param("id"), req.Role)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// UploadAvatar mengunggah foto profil pengguna.
func (ctrl *Controller) UploadAvatar(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := ctrl.Users.Get(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	url, uploaded := ctrl.uploadOne(ctx, c, "avatars")
	if !uploaded {
		return
	}
	u, err := ctrl.Users.UpdateAvatar(ctx, c.Param("id"), url)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// DeleteUser menghapus pengguna beserta data miliknya.
func (ctrl *Controller) DeleteUser(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := ctrl.Users.Delete(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "User deleted"})
}
