package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storeadmin-backend/models"
	"storeadmin-backend/services"
	"storeadmin-backend/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("product: %w", services.ErrNotFound), http.StatusNotFound},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrInvalid, http.StatusBadRequest},
		{storage.ErrInvalidFile, http.StatusBadRequest},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{storage.ErrDisabled, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusOf(tc.err), tc.err.Error())
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	ctrl := &Controller{Log: quietLog()}
	r := gin.New()
	r.GET("/internal", func(c *gin.Context) { ctrl.handleError(c, errors.New("connection refused 10.0.0.3")) })
	r.GET("/conflict", func(c *gin.Context) { ctrl.handleError(c, fmt.Errorf("%w: slug taken", services.ErrConflict)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w).Message, "slug taken")
}

func TestQueryHelpers(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?active=true&bad=maybe&min=12.5&from=2024-03-01&to=nope&page=0&limit=500", nil)

	active := boolQuery(c, "active")
	require.NotNil(t, active)
	assert.True(t, *active)
	assert.Nil(t, boolQuery(c, "bad"))
	assert.Nil(t, boolQuery(c, "missing"))

	lo := floatQuery(c, "min")
	require.NotNil(t, lo)
	assert.InDelta(t, 12.5, *lo, 1e-9)

	from := dateQuery(c, "from")
	require.NotNil(t, from)
	assert.Equal(t, 2024, from.Year())
	assert.Nil(t, dateQuery(c, "to"))

	p := pageQuery(c)
	assert.Equal(t, int64(1), p.Page)
}

func TestGetCommentNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("missing", func(mt *mtest.T) {
		ctrl := &Controller{Comments: services.NewCommentService(mt.DB), Log: quietLog()}
		r := gin.New()
		r.GET("/comments/:id", ctrl.GetComment)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.comments", mtest.FirstBatch))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comments/"+primitive.NewObjectID().Hex(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, decode(mt.T, w).Success)
	})
}

func TestCreateFAQCategoryRejectsMissingName(t *testing.T) {
	ctrl := &Controller{Log: quietLog()}
	r := gin.New()
	r.POST("/faq-categories", ctrl.CreateFAQCategory)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/faq-categories", bytes.NewBufferString(`{"order":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)
}

type recordingUploader struct {
	mu        sync.Mutex
	destroyed []string
}

func (u *recordingUploader) Upload(context.Context, *multipart.FileHeader, string) (storage.Result, error) {
	return storage.Result{}, storage.ErrDisabled
}

func (u *recordingUploader) Destroy(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.destroyed = append(u.destroyed, publicID)
	return nil
}

func TestRemoveProductImageDeletesHostedAsset(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("remove", func(mt *mtest.T) {
		up := &recordingUploader{}
		ctrl := &Controller{Products: services.NewProductService(mt.DB), Uploader: up, Log: quietLog()}
		r := gin.New()
		r.DELETE("/products/:id/images", ctrl.RemoveProductImage)

		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Linen Shirt"},
			{Key: "images", Value: bson.A{}},
		}}))

		body := `{"url":"https://res.cloudinary.com/demo/image/upload/v1700000000/storeadmin/products/shirt.jpg"}`
		req := httptest.NewRequest(http.MethodDelete, "/products/"+id.Hex()+"/images", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Equal(mt, []string{"storeadmin/products/shirt"}, up.destroyed)
	})
}

func TestToggleCouponHonoursChunkedBody(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("explicit state", func(mt *mtest.T) {
		ctrl := &Controller{Coupons: services.NewCouponService(mt.DB, nil, nil, "Test Store", quietLog()), Log: quietLog()}
		r := gin.New()
		r.PATCH("/coupons/:id/toggle", ctrl.ToggleCoupon)

		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "code", Value: "SALE10"},
			{Key: "isActive", Value: false},
		}}))

		req := httptest.NewRequest(http.MethodPatch, "/coupons/"+id.Hex()+"/toggle",
			io.NopCloser(strings.NewReader(`{"isActive":false}`)))
		req.Header.Set("Content-Type", "application/json")
		require.Equal(mt, int64(-1), req.ContentLength)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(mt, http.StatusOK, w.Code)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		active, err := evt.Command.LookupErr("update", "$set", "isActive")
		require.NoError(mt, err)
		assert.False(mt, active.Boolean())
	})
}
