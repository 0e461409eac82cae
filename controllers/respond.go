package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/models"
	"storeadmin-backend/services"
	"storeadmin-backend/storage"
)

const requestTimeout = 10 * time.Second

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.Envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, models.Envelope{Success: false, Message: msg})
}

func badRequest(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, err.Error())
}

// statusOf maps service errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalid), errors.Is(err, storage.ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the envelope for err. Unexpected errors are logged and
// reported without detail.
func (ctrl *Controller) handleError(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		ctrl.Log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		fail(c, status, "internal server error")
		return
	}
	fail(c, status, err.Error())
}

// uploadOne stores the "file" form field and returns its URL. On failure the
// response has already been written.
func (ctrl *Controller) uploadOne(ctx context.Context, c *gin.Context, folder string) (string, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file is required")
		return "", false
	}
	res, err := ctrl.Uploader.Upload(ctx, fh, folder)
	if err != nil {
		ctrl.handleError(c, err)
		return "", false
	}
	return res.URL, true
}

// discardImages removes hosted assets that are no longer referenced. Failures
// are logged; the database change has already happened.
func (ctrl *Controller) discardImages(ctx context.Context, urls ...string) {
	if ctrl.Uploader == nil {
		return
	}
	for _, u := range urls {
		id, ok := storage.PublicIDFromURL(u)
		if !ok {
			continue
		}
		if err := ctrl.Uploader.Destroy(ctx, id); err != nil && !errors.Is(err, storage.ErrDisabled) {
			ctrl.Log.WithError(err).WithField("publicId", id).Warn("failed to delete hosted image")
		}
	}
}
