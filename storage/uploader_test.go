package storage

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckFile(t *testing.T) {
	assert.NoError(t, CheckFile(&multipart.FileHeader{Filename: "shoe.JPG", Size: 1024}))
	assert.ErrorIs(t, CheckFile(&multipart.FileHeader{Filename: "shoe.exe", Size: 1024}), ErrInvalidFile)
	assert.ErrorIs(t, CheckFile(&multipart.FileHeader{Filename: "big.png", Size: MaxFileSize + 1}), ErrInvalidFile)
}

func TestNilUploaderIsDisabled(t *testing.T) {
	u := NewCloudinaryUploader(nil, "root")
	assert.Nil(t, u)

	_, err := u.Upload(context.Background(), &multipart.FileHeader{Filename: "a.png"}, "products")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url, want string
		ok        bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1700000000/store/products/abc.jpg", "store/products/abc", true},
		{"https://res.cloudinary.com/demo/image/upload/c_fill,w_200/v12/store/avatars/u1.png", "store/avatars/u1", true},
		{"https://res.cloudinary.com/demo/image/upload/banner.webp", "banner", true},
		{"https://example.com/images/shoe.png", "", false},
		{"not a url", "", false},
	}
	for _, tc := range cases {
		got, ok := PublicIDFromURL(tc.url)
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.want, got, tc.url)
	}
}

func TestNilUploaderDestroyIsDisabled(t *testing.T) {
	var u *CloudinaryUploader
	assert.ErrorIs(t, u.Destroy(context.Background(), "x"), ErrDisabled)
}
