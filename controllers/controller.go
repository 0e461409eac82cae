package controllers

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"storeadmin-backend/services"
	"storeadmin-backend/storage"
)

// Controller menampung dependensi yang akan digunakan oleh semua handler.
type Controller struct {
	DB            *mongo.Database
	Products      *services.ProductService
	Categories    *services.CategoryService
	Orders        *services.OrderService
	Users         *services.UserService
	Coupons       *services.CouponService
	Subscribers   *services.SubscriberService
	Comments      *services.CommentService
	Notifications *services.NotificationService
	Settings      *services.SettingService
	FAQs          *services.FAQService
	Auth          *services.AuthService
	Registration  *services.RegistrationService
	Uploader      storage.Uploader
	Log           *logrus.Entry
}
