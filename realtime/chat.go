package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"storeadmin-backend/middleware"
	"storeadmin-backend/models"
	"storeadmin-backend/token"
)

const (
	opTimeout  = 10 * time.Second
	botMessage = "Thanks for reaching out! Our support team is offline right now and will reply as soon as possible."
)

// ChatStore persists chat messages. ChatService implements it.
type ChatStore interface {
	Save(ctx context.Context, userID, message string, sender models.ChatSender) (*models.ChatMessage, error)
	History(ctx context.Context, userID string) ([]models.ChatMessage, error)
	ActiveConversations(ctx context.Context) ([]models.ConversationSummary, error)
	MarkRead(ctx context.Context, userID string) (int64, error)
	DeleteConversation(ctx context.Context, userID string) (int64, error)
}

type historyPayload struct {
	UserID   string               `json:"userId"`
	Messages []models.ChatMessage `json:"messages"`
}

type userPayload struct {
	UserID string `json:"userId"`
}

// ChatGateway serves /ws/chat. Anyone may join a conversation by user id;
// admin events need a connection opened with an admin token.
type ChatGateway struct {
	hub      *Hub
	store    ChatStore
	maker    token.Maker
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

func NewChatGateway(hub *Hub, store ChatStore, maker token.Maker, origins []string, log *logrus.Entry) *ChatGateway {
	return &ChatGateway{
		hub:      hub,
		store:    store,
		maker:    maker,
		upgrader: newUpgrader(origins),
		log:      log,
	}
}

// newUpgrader accepts same-host requests, listed origins, or any origin when
// the list contains "*".
func newUpgrader(origins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed["*"] || allowed[origin] {
				return true
			}
			return strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://") == r.Host
		},
	}
}

func (g *ChatGateway) ServeWS(c *gin.Context) {
	admin := false
	if raw := middleware.ExtractToken(c.Request); raw != "" {
		payload, err := g.maker.VerifyToken(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.Envelope{Success: false, Message: "invalid token"})
			return
		}
		admin = payload.Role == string(models.RoleAdmin)
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.WithError(err).Warn("chat upgrade failed")
		return
	}
	client := NewClient(conn)
	if admin {
		client.setAdmin()
	}
	go client.WritePump()
	client.ReadPump(g.handle)
	g.hub.Unregister(client)
}

func (g *ChatGateway) handle(c *Client, in Inbound) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var p chatPayload
	if len(in.Data) > 0 {
		if err := json.Unmarshal(in.Data, &p); err != nil {
			g.fail(c, "malformed payload")
			return
		}
	}
	p.UserID = strings.TrimSpace(p.UserID)

	switch in.Event {
	case EventJoinChat:
		g.joinChat(ctx, c, p)
	case EventSendMessage:
		g.sendMessage(ctx, c, p)
	case EventAdminJoinChat, EventAdminReply, EventMarkAsRead, EventDeleteChat, EventAdminRequestHistory:
		if !c.IsAdmin() {
			g.fail(c, "admin access required")
			return
		}
		g.handleAdmin(ctx, c, in.Event, p)
	default:
		g.fail(c, "unknown event "+in.Event)
	}
}

func (g *ChatGateway) handleAdmin(ctx context.Context, c *Client, event string, p chatPayload) {
	if event == EventAdminJoinChat {
		g.hub.MarkAdmin(c)
		g.sendSummary(ctx, c)
		return
	}
	if p.UserID == "" {
		g.fail(c, "userId is required")
		return
	}

	switch event {
	case EventAdminReply:
		msg, err := g.store.Save(ctx, p.UserID, p.Message, models.SenderAdmin)
		if err != nil {
			g.fail(c, err.Error())
			return
		}
		out := Message{Event: EventReceiveMessage, Data: msg}
		g.hub.SendToUser(p.UserID, out)
		g.hub.SendToAdmins(out)
	case EventMarkAsRead:
		if _, err := g.store.MarkRead(ctx, p.UserID); err != nil {
			g.fail(c, err.Error())
			return
		}
		g.broadcastSummary(ctx)
	case EventDeleteChat:
		if _, err := g.store.DeleteConversation(ctx, p.UserID); err != nil {
			g.fail(c, err.Error())
			return
		}
		out := Message{Event: EventChatDeleted, Data: userPayload{UserID: p.UserID}}
		g.hub.SendToUser(p.UserID, out)
		g.hub.SendToAdmins(out)
	case EventAdminRequestHistory:
		g.sendHistory(ctx, c, p.UserID)
	}
}

func (g *ChatGateway) joinChat(ctx context.Context, c *Client, p chatPayload) {
	if p.UserID == "" {
		g.fail(c, "userId is required")
		return
	}
	g.hub.RegisterUser(p.UserID, c)
	g.sendHistory(ctx, c, p.UserID)
	g.hub.SendToAdmins(Message{Event: EventNewChatRequest, Data: userPayload{UserID: p.UserID}})
}

// sendMessage stores a user message and fans it out to every admin and to the
// user's own connection. With no admin online a bot acknowledgement follows.
func (g *ChatGateway) sendMessage(ctx context.Context, c *Client, p chatPayload) {
	if p.UserID == "" {
		p.UserID = c.UserID()
	}
	if p.UserID == "" {
		g.fail(c, "join_chat first or pass userId")
		return
	}
	if c.UserID() != p.UserID {
		g.hub.RegisterUser(p.UserID, c)
	}

	msg, err := g.store.Save(ctx, p.UserID, p.Message, models.SenderUser)
	if err != nil {
		g.fail(c, err.Error())
		return
	}
	out := Message{Event: EventReceiveMessage, Data: msg}
	g.hub.SendToUser(p.UserID, out)
	if g.hub.SendToAdmins(out) > 0 {
		g.broadcastSummary(ctx)
		return
	}

	bot, err := g.store.Save(ctx, p.UserID, botMessage, models.SenderBot)
	if err != nil {
		g.log.WithError(err).WithField("user", p.UserID).Warn("failed to store bot reply")
		return
	}
	g.hub.SendToUser(p.UserID, Message{Event: EventReceiveMessage, Data: bot})
}

func (g *ChatGateway) sendHistory(ctx context.Context, c *Client, userID string) {
	history, err := g.store.History(ctx, userID)
	if err != nil {
		g.fail(c, err.Error())
		return
	}
	c.Send(Message{Event: EventChatHistory, Data: historyPayload{UserID: userID, Messages: history}})
}

func (g *ChatGateway) sendSummary(ctx context.Context, c *Client) {
	summary, err := g.store.ActiveConversations(ctx)
	if err != nil {
		g.fail(c, err.Error())
		return
	}
	c.Send(Message{Event: EventActiveChatsSummary, Data: summary})
}

func (g *ChatGateway) broadcastSummary(ctx context.Context) {
	summary, err := g.store.ActiveConversations(ctx)
	if err != nil {
		g.log.WithError(err).Warn("active conversations failed")
		return
	}
	g.hub.SendToAdmins(Message{Event: EventActiveChatsSummary, Data: summary})
}

func (g *ChatGateway) fail(c *Client, msg string) {
	c.Send(Message{Event: EventError, Data: errorPayload{Message: msg}})
}
