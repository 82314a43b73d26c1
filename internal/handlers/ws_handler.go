package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"taskboard-api/internal/logging"
	"taskboard-api/internal/middleware"
	"taskboard-api/internal/policy"
	"taskboard-api/internal/realtime"
	"taskboard-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChannelAuthRequest represents a private channel authorization request
type ChannelAuthRequest struct {
	ChannelName string `json:"channel_name" binding:"required"`
}

// wsClient implements realtime.Client by wrapping a websocket connection.
// Writes are serialized; gorilla allows one concurrent writer.
type wsClient struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	userID  uint
	tokenID string
}

// subscriberOf selects the sockets opened by userID.
func subscriberOf(userID uint) func(realtime.Client) bool {
	return func(c realtime.Client) bool {
		wc, ok := c.(*wsClient)
		return ok && wc.userID == userID
	}
}

// subscribedWith selects the sockets opened with tokenID.
func subscribedWith(tokenID string) func(realtime.Client) bool {
	return func(c realtime.Client) bool {
		wc, ok := c.(*wsClient)
		return ok && wc.tokenID == tokenID
	}
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil || c.conn == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

func (c *wsClient) Close() {
	if c != nil && c.conn != nil {
		_ = c.conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// authorizeChannel parses name and checks that the requester may listen on it.
func authorizeChannel(c *gin.Context, name string) (realtime.Channel, bool) {
	ch, err := realtime.ParseChannel(name)
	if err != nil {
		errs := validation.Errors{}
		errs.Add("channel_name", "The channel name field is invalid.")
		abortWithValidation(c, errs)
		return realtime.Channel{}, false
	}

	switch ch.Kind {
	case realtime.UserChannel:
		if ch.ID != currentUser(c).ID {
			abortWithMessage(c, policy.Deny.Status(), policy.Deny.Message())
			return realtime.Channel{}, false
		}
	case realtime.TeamChannel:
		if !authorize(c, policy.Team{TeamID: ch.ID}, policy.View) {
			return realtime.Channel{}, false
		}
	default:
		abortWithServerError(c, "CHANNEL_AUTH_FAILED", errors.New("unhandled channel kind"))
		return realtime.Channel{}, false
	}
	return ch, true
}

// AuthorizeChannel handles POST /api/broadcasting/auth
func AuthorizeChannel(c *gin.Context) {
	var req ChannelAuthRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, ok := authorizeChannel(c, req.ChannelName)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"channel": ch.Name()})
}

// WebSocketHandler handles GET /api/broadcasting/socket?channel=...
// It upgrades the connection and subscribes it to the authorized channel.
func WebSocketHandler(c *gin.Context) {
	ch, ok := authorizeChannel(c, c.Query("channel"))
	if !ok {
		return
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Logger.Warnf("Event ID: WEBSOCKET_UPGRADE_FAILED, Description: %v", err)
		return
	}

	client := &wsClient{
		conn:    conn,
		userID:  currentUser(c).ID,
		tokenID: c.GetString(middleware.TokenIDKey),
	}
	hub := realtime.GetHub()
	hub.Register(ch.Name(), client)

	// Heartbeat: send periodic pings; close on error
	pingTicker := time.NewTicker(30 * time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pingTicker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
					// ping failed; reader loop will exit on next error
					return
				}
			}
		}
	}()
	defer func() {
		close(done)
		pingTicker.Stop()
		hub.Unregister(ch.Name(), client)
		client.Close()
	}()

	// Reader loop: drain messages and keep connection alive via pong handler
	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			// Normal close or error; exit loop
			return
		}
	}
}
