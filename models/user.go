package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role adalah peran pengguna.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User mendefinisikan struktur untuk pengguna (pelanggan maupun admin).
type User struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	Email             string             `json:"email" bson:"email"`
	Password          string             `json:"-" bson:"password"`
	Phone             string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Avatar            string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Role              Role               `json:"role" bson:"role"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	ResetOTP          string             `json:"-" bson:"resetOtp,omitempty"`
	ResetOTPExpiresAt *time.Time         `json:"-" bson:"resetOtpExpiresAt,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateUserRequest mendefinisikan struktur untuk pembuatan pengguna oleh admin.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserRequest mendefinisikan field pengguna yang boleh diubah.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	IsActive *bool   `json:"isActive"`
}

// SetRoleRequest mendefinisikan struktur untuk perubahan peran.
type SetRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=admin user"`
}
