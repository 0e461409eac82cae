package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/middleware"
	"storeadmin-backend/models"
)

// Login menangani proses login.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := ctrl.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// Me mengembalikan profil pengguna yang sedang login.
func (ctrl *Controller) Me(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := ctrl.Auth.Me(ctx, c.GetString(middleware.UserIDKey))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// ChangePassword menangani penggantian kata sandi.
func (ctrl *Controller) ChangePassword(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ctrl.Auth.ChangePassword(ctx, c.GetString(middleware.UserIDKey), req.OldPassword, req.NewPassword); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Password changed"})
}

// ForgotPassword mengirim kode reset ke email pengguna.
func (ctrl *Controller) ForgotPassword(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ctrl.Auth.ForgotPassword(ctx, req.Email); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Reset code sent"})
}

// VerifyResetOTP memeriksa kode reset tanpa memakainya.
func (ctrl *Controller) VerifyResetOTP(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	verified, err := ctrl.Auth.VerifyResetOTP(ctx, req.Email, req.OTP)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"verified": verified})
}

// ResetPassword mengganti kata sandi memakai kode reset.
func (ctrl *Controller) ResetPassword(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ctrl.Auth.ResetPassword(ctx, req.Email, req.OTP, req.NewPassword); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Password has been reset"})
}

// SendRegisterOTP mengirim kode verifikasi registrasi.
func (ctrl *Controller) SendRegisterOTP(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ctrl.Registration.RequestOTP(ctx, req.Email); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyRegisterOTP memverifikasi kode registrasi.
func (ctrl *Controller) VerifyRegisterOTP(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	verified, err := ctrl.Registration.VerifyOTP(ctx, req.Email, req.OTP)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"verified": verified})
}

// CompleteRegister membuat akun setelah email terverifikasi.
func (ctrl *Controller) CompleteRegister(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := ctrl.Registration.Complete(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}
