package models

// LoginRequest mendefinisikan struktur untuk permintaan login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest mendefinisikan struktur untuk penggantian kata sandi.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// EmailRequest memuat satu alamat email.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest mendefinisikan struktur untuk verifikasi OTP.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// ResetPasswordRequest mendefinisikan struktur untuk reset kata sandi.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// RegisterRequest mendefinisikan struktur untuk menyelesaikan registrasi.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	OTP      string `json:"otp" binding:"required,len=6,numeric"`
}

// AuthResult adalah respons login.
type AuthResult struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      *User  `json:"user"`
}
