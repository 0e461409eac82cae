package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product mendefinisikan struktur untuk produk.
type Product struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Slug        string              `json:"slug" bson:"slug"`
	Description string              `json:"description" bson:"description"`
	Price       float64             `json:"price" bson:"price"`
	Discount    float64             `json:"discount" bson:"discount"`
	FinalPrice  float64             `json:"finalPrice" bson:"finalPrice"`
	Stock       int                 `json:"stock" bson:"stock"`
	Images      []string            `json:"images" bson:"images"`
	Category    *primitive.ObjectID `json:"category,omitempty" bson:"category,omitempty"`
	IsActive    bool                `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// ComputeFinalPrice menghitung harga setelah diskon persen: price - price*discount/100.
// Semua jalur tulis produk memakai fungsi ini sehingga nilai tersimpan identik.
func ComputeFinalPrice(price, discount float64) float64 {
	return price - price*discount/100
}

// Reprice menyelaraskan FinalPrice dengan Price dan Discount.
func (p *Product) Reprice() {
	p.FinalPrice = ComputeFinalPrice(p.Price, p.Discount)
}

// ProductRequest mendefinisikan struktur untuk pembuatan produk.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"gte=0"`
	Discount    float64  `json:"discount" binding:"gte=0,lte=100"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Images      []string `json:"images"`
	Category    string   `json:"category" binding:"omitempty,objectid"`
	IsActive    *bool    `json:"isActive"`
}

// ProductUpdateRequest mendefinisikan field produk yang boleh diubah.
type ProductUpdateRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Discount    *float64  `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Stock       *int      `json:"stock" binding:"omitempty,gte=0"`
	Images      *[]string `json:"images"`
	Category    *string   `json:"category" binding:"omitempty,objectid"`
	IsActive    *bool     `json:"isActive"`
}

// StockRequest mendefinisikan struktur untuk perubahan stok.
type StockRequest struct {
	Stock int `json:"stock" binding:"gte=0"`
}

// ImageRequest menunjuk satu URL gambar.
type ImageRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// Category mendefinisikan struktur untuk kategori produk.
type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CategoryRequest mendefinisikan struktur untuk pembuatan dan pembaruan kategori.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"isActive"`
}
