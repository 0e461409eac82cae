package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GlobalSettingKey adalah kunci dokumen pengaturan tunggal.
const GlobalSettingKey = "global"

type GeneralSettings struct {
	StoreName string `json:"storeName" bson:"storeName"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Address   string `json:"address" bson:"address"`
	Logo      string `json:"logo" bson:"logo"`
	Currency  string `json:"currency" bson:"currency"`
}

type OrderSettings struct {
	ShippingFee           float64 `json:"shippingFee" bson:"shippingFee"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold" bson:"freeShippingThreshold"`
	AutoConfirm           bool    `json:"autoConfirm" bson:"autoConfirm"`
	CancelWindowHours     int     `json:"cancelWindowHours" bson:"cancelWindowHours"`
}

type NotificationSettings struct {
	EmailOnNewOrder     bool `json:"emailOnNewOrder" bson:"emailOnNewOrder"`
	EmailOnStatusChange bool `json:"emailOnStatusChange" bson:"emailOnStatusChange"`
	PushEnabled         bool `json:"pushEnabled" bson:"pushEnabled"`
}

// Setting adalah dokumen konfigurasi global toko.
type Setting struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Key          string               `json:"key" bson:"key"`
	General      GeneralSettings      `json:"general" bson:"general"`
	Order        OrderSettings        `json:"order" bson:"order"`
	Notification NotificationSettings `json:"notification" bson:"notification"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// DefaultSetting mengembalikan pengaturan awal yang ditulis saat pertama kali dibaca.
func DefaultSetting() Setting {
	return Setting{
		Key: GlobalSettingKey,
		General: GeneralSettings{
			StoreName: "My Store",
			Currency:  "VND",
		},
		Order: OrderSettings{
			ShippingFee:           30000,
			FreeShippingThreshold: 500000,
			CancelWindowHours:     24,
		},
		Notification: NotificationSettings{
			EmailOnNewOrder:     true,
			EmailOnStatusChange: true,
			PushEnabled:         true,
		},
	}
}

// UpdateSettingRequest mengganti blok pengaturan yang dikirim.
type UpdateSettingRequest struct {
	General      *GeneralSettings      `json:"general"`
	Order        *OrderSettings        `json:"order"`
	Notification *NotificationSettings `json:"notification"`
}
