package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeadmin-backend/middleware"
	"storeadmin-backend/models"
	"storeadmin-backend/services"
)

// targetUser returns the userId query for admins and the caller's own id otherwise.
func targetUser(c *gin.Context) string {
	if c.GetString(middleware.RoleKey) == string(models.RoleAdmin) {
		if id := c.Query("userId"); id != "" {
			return id
		}
	}
	return c.GetString(middleware.UserIDKey)
}

// ownerScope returns "" for admins and the caller's id otherwise, so
// non-admin updates only reach the caller's own notifications.
func ownerScope(c *gin.Context) string {
	if c.GetString(middleware.RoleKey) == string(models.RoleAdmin) {
		return ""
	}
	return c.GetString(middleware.UserIDKey)
}

// GetNotifications menangani pengambilan notifikasi. Admin dapat melihat semua.
func (ctrl *Controller) GetNotifications(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f := services.NotificationFilter{IsRead: boolQuery(c, "isRead"), Type: c.Query("type")}
	if c.GetString(middleware.RoleKey) == string(models.RoleAdmin) {
		f.UserID = c.Query("userId")
	} else {
		f.UserID = c.GetString(middleware.UserIDKey)
	}
	page, err := ctrl.Notifications.List(ctx, f, pageQuery(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetUnreadCount menghitung notifikasi yang belum dibaca.
func (ctrl *Controller) GetUnreadCount(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := ctrl.Notifications.UnreadCount(ctx, targetUser(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"count": n})
}

// CreateNotification menyimpan notifikasi lalu mengirimkannya lewat websocket.
func (ctrl *Controller) CreateNotification(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var req models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	n, err := ctrl.Notifications.Create(ctx, req)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, n)
}

func (ctrl *Controller) MarkNotificationRead(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := ctrl.Notifications.MarkRead(ctx, c.Param("id"), ownerScope(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, n)
}

func (ctrl *Controller) ToggleNotification(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := ctrl.Notifications.ToggleRead(ctx, c.Param("id"), ownerScope(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, n)
}

// MarkAllNotificationsRead menandai semua notifikasi pengguna sebagai dibaca.
func (ctrl *Controller) MarkAllNotificationsRead(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	n, err := ctrl.Notifications.MarkAllRead(ctx, targetUser(c))
	if err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"updated": n})
}

func (ctrl *Controller) DeleteNotification(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := ctrl.Notifications.Delete(ctx, c.Param("id")); err != nil {
		ctrl.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Notification deleted"})
}
