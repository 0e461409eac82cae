package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentReply adalah balasan admin pada komentar.
type CommentReply struct {
	Content   string    `json:"content" bson:"content"`
	RepliedAt time.Time `json:"repliedAt" bson:"repliedAt"`
}

// Comment mendefinisikan struktur untuk komentar produk.
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Product   primitive.ObjectID `json:"product" bson:"product"`
	Content   string             `json:"content" bson:"content"`
	Images    []string           `json:"images,omitempty" bson:"images,omitempty"`
	IsHidden  bool               `json:"isHidden" bson:"isHidden"`
	Reply     *CommentReply      `json:"reply,omitempty" bson:"reply,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ReplyRequest mendefinisikan struktur untuk balasan admin.
type ReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// FAQCategory mengelompokkan pertanyaan yang sering diajukan.
type FAQCategory struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Order     int                `json:"order" bson:"order"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FAQ adalah satu pasangan tanya-jawab.
type FAQ struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Category  primitive.ObjectID `json:"category" bson:"category"`
	Question  string             `json:"question" bson:"question"`
	Answer    string             `json:"answer" bson:"answer"`
	Order     int                `json:"order" bson:"order"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// FAQCategoryRequest mendefinisikan struktur untuk kategori FAQ.
type FAQCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Order    int    `json:"order" binding:"gte=0"`
	IsActive *bool  `json:"isActive"`
}

// FAQRequest mendefinisikan struktur untuk FAQ.
type FAQRequest struct {
	Category string `json:"category" binding:"required,objectid"`
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Order    int    `json:"order" binding:"gte=0"`
	IsActive *bool  `json:"isActive"`
}

// ReorderRequest memuat id dalam urutan yang diinginkan.
type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,objectid"`
}
