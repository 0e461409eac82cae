// Package realtime carries the chat and notification websocket channels.
package realtime

import "encoding/json"

// Outbound event names.
const (
	EventChatHistory        = "chat_history"
	EventReceiveMessage     = "receive_message"
	EventNewChatRequest     = "new_chat_request"
	EventActiveChatsSummary = "active_chats_summary"
	EventChatDeleted        = "chat_deleted"
	EventError              = "error"
	EventNewNotification    = "new_notification"
)

// Inbound chat event names.
const (
	EventJoinChat            = "join_chat"
	EventSendMessage         = "send_message"
	EventAdminJoinChat       = "admin_join_chat"
	EventAdminReply          = "admin_reply"
	EventMarkAsRead          = "mark_as_read"
	EventDeleteChat          = "delete_chat"
	EventAdminRequestHistory = "admin_request_history"
)

// Message is one JSON text frame: {"event": name, "data": payload}.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Inbound is a received frame with its payload left raw until dispatched.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type chatPayload struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type errorPayload struct {
	Message string `json:"message"`
}
