package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"storeadmin-backend/middleware"
	"storeadmin-backend/models"
	"storeadmin-backend/token"
)

// NotificationGateway serves /ws/notifications and pushes new_notification
// events to the token subject.
type NotificationGateway struct {
	hub      *Hub
	maker    token.Maker
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

func NewNotificationGateway(hub *Hub, maker token.Maker, origins []string, log *logrus.Entry) *NotificationGateway {
	return &NotificationGateway{hub: hub, maker: maker, upgrader: newUpgrader(origins), log: log}
}

func (g *NotificationGateway) ServeWS(c *gin.Context) {
	payload, err := g.maker.VerifyToken(middleware.ExtractToken(c.Request))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.Envelope{Success: false, Message: "invalid token"})
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.WithError(err).Warn("notification upgrade failed")
		return
	}
	client := NewClient(conn)
	g.hub.RegisterUser(payload.Subject, client)
	if payload.Role == string(models.RoleAdmin) {
		g.hub.MarkAdmin(client)
	}
	go client.WritePump()
	client.ReadPump(func(*Client, Inbound) {})
	g.hub.Unregister(client)
}

// NotifyUser pushes n to the user's live connection, if any.
func (g *NotificationGateway) NotifyUser(userID string, n *models.Notification) {
	if !g.hub.SendToUser(userID, Message{Event: EventNewNotification, Data: n}) {
		g.log.WithField("user", userID).Debug("notification owner offline")
	}
}
