package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationOrderStatus = "order_status"
	NotificationPromotion   = "promotion"
	NotificationSystem      = "system"
)

// Notification mendefinisikan struktur untuk notifikasi pengguna.
type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Type      string             `json:"type" bson:"type"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Link      string             `json:"link,omitempty" bson:"link,omitempty"`
	Reference string             `json:"reference,omitempty" bson:"reference,omitempty"`
	IsRead    bool               `json:"isRead" bson:"isRead"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// NotificationRequest mendefinisikan struktur untuk pembuatan notifikasi.
type NotificationRequest struct {
	UserID    string `json:"userId" binding:"required,objectid"`
	Type      string `json:"type" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Link      string `json:"link"`
	Reference string `json:"reference"`
}

// ChatSender menandai penulis pesan obrolan.
type ChatSender string

const (
	SenderUser  ChatSender = "user"
	SenderAdmin ChatSender = "admin"
	SenderBot   ChatSender = "bot"
)

// ChatMessage adalah satu pesan obrolan. UserID tidak harus pengguna terdaftar.
type ChatMessage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Message   string             `json:"message" bson:"message"`
	Sender    ChatSender         `json:"sender" bson:"sender"`
	IsRead    bool               `json:"isRead" bson:"isRead"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// ConversationSummary meringkas satu percakapan untuk tampilan admin.
type ConversationSummary struct {
	UserID        string     `json:"userId" bson:"_id"`
	LastMessage   string     `json:"lastMessage" bson:"lastMessage"`
	LastSender    ChatSender `json:"lastSender" bson:"lastSender"`
	LastMessageAt time.Time  `json:"lastMessageAt" bson:"lastMessageAt"`
	UnreadCount   int        `json:"unreadCount" bson:"unreadCount"`
}
