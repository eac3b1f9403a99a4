package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/teamup-dev/teamup/internal/auth"
	"github.com/teamup-dev/teamup/internal/types"
	"github.com/teamup-dev/teamup/internal/ws"
)

const (
	wsWriteWait      = 10 * time.Second
	wsReadWait       = 60 * time.Second
	wsMaxMessageSize = 512

	// Application close codes sent before authentication succeeds.
	closeInvalidToken    = 4001
	closeSubjectMismatch = 4003
)

// WSHandler upgrades notification sockets and feeds them into the hub.
type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Notifications handles GET /ws/notifications/:user_id?token=. The token is
// checked after the upgrade so the client receives a close code rather than
// an HTTP error: 4001 for a missing or invalid access token, 4003 when the
// token belongs to a different user.
func (h *WSHandler) Notifications(ctx *gin.Context) {
	rawUserID := ctx.Param("user_id")

	pathUserID, err := strconv.ParseUint(rawUserID, 10, 64)
	if err != nil || pathUserID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	token := ctx.Query("token")
	if token == "" {
		closeWith(conn, closeInvalidToken, "Missing token")
		return
	}

	tokenUserID, err := auth.VerifyToken(token, auth.TokenTypeAccess)
	if err != nil {
		closeWith(conn, closeInvalidToken, "Invalid token")
		return
	}

	if tokenUserID != uint(pathUserID) {
		closeWith(conn, closeSubjectMismatch, "Token does not match user")
		return
	}

	userID := tokenUserID

	client := h.hub.Register(userID, conn)

	defer func() {
		h.hub.Unregister(userID, conn)
		conn.Close()
		log.Printf("WebSocket connection closed for user %d", userID)
	}()

	conn.SetReadLimit(wsMaxMessageSize)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(wsReadWait)); err != nil {
			log.Printf("Failed to set read deadline for user %d: %v", userID, err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for user %d: %v", userID, err)
			}
			break
		}

		if messageType == websocket.TextMessage && string(message) == "ping" {
			// Through the client so pongs never race a hub push.
			if err := client.WriteText("pong"); err != nil {
				break
			}
		}
	}
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(wsWriteWait)
	message := websocket.FormatCloseMessage(code, reason)

	if err := conn.WriteControl(websocket.CloseMessage, message, deadline); err != nil {
		log.Printf("Failed to write close message: %v", err)
	}
	conn.Close()
}
