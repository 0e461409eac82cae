package models

import (
	"fmt"
	"strings"
	"time"
)

// Envelope adalah bentuk respons seragam untuk semua endpoint REST.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Page adalah hasil daftar berhalaman.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// ListQuery menampung parameter halaman dari query string.
type ListQuery struct {
	Page  int64  `form:"page"`
	Limit int64  `form:"limit"`
	Q     string `form:"q"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate menerima tanggal RFC3339 atau tanggal polos (YYYY-MM-DD).
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
