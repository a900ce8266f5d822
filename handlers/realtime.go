package handlers

import (
	"context"
	"net/http"
	"time"

	"toolshare/services/booking"
	"toolshare/services/realtime"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Access is gated by the token and the participant check.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RealtimeHandler streams a booking's events to a websocket.
type RealtimeHandler struct {
	BookingService booking.BookingService
	Channel        realtime.NotificationChannel
	AuthCache      *redis.Client
}

func NewRealtimeHandler(bs booking.BookingService, ch realtime.NotificationChannel, authCache *redis.Client) *RealtimeHandler {
	return &RealtimeHandler{BookingService: bs, Channel: ch, AuthCache: authCache}
}

// BookingStreamHandler handles GET /ws/bookings/:id?token=JWT.
// Browsers cannot set headers on a websocket handshake, so the access token travels in the query.
func (h *RealtimeHandler) BookingStreamHandler(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()

	token := c.Query("token")
	if token == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	claims, err := utils.ParseAccessToken(token)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}
	if h.AuthCache != nil {
		if n, err := h.AuthCache.Exists(ctx, utils.RevokedTokenPrefix+utils.HashToken(token)).Result(); err == nil && n > 0 {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, token revoked")
			return
		}
	}

	bookingID := c.Param("id")
	if _, err := h.BookingService.GetBooking(ctx, bookingID, claims.UserID); err != nil {
		utils.RespondError(c, err)
		return
	}

	subCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := h.Channel.Subscribe(subCtx, realtime.BookingTopic(bookingID))
	if err != nil {
		utils.RespondError(c, utils.NewInternalError("failed to subscribe", err))
		return
	}
	defer sub.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	logger.Info("WebSocket connected", zap.String("bookingId", bookingID), zap.String("userId", claims.UserID))

	// The read loop only exists to service pongs and notice the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("WebSocket read error", zap.String("bookingId", bookingID), zap.Error(err))
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			logger.Info("WebSocket disconnected", zap.String("bookingId", bookingID), zap.String("userId", claims.UserID))
			return
		case payload, ok := <-sub.Messages():
			if !ok {
				conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
