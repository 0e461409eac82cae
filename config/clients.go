package config

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
)

// NewRedis membuat klien Redis, atau nil jika REDIS_ADDR kosong.
func NewRedis(cfg *AppConfig) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
}

// NewCloudinary membuat klien Cloudinary, atau nil jika CLOUDINARY_URL kosong.
func NewCloudinary(cfg *AppConfig) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}
