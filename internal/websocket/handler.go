package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/pantrylist/internal/auth"
)

// HandleWebSocket upgrades an authenticated request and runs it as a hub
// client for the caller's user id.
func HandleWebSocket(hub *Hub, originPatterns []string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			logger.Warn("accept", "error", err)
			return
		}
		defer conn.CloseNow()

		logger.Debug("client connected", "user", userID)
		NewClient(hub, conn, userID).Run(r.Context())
		logger.Debug("client disconnected", "user", userID)
	}
}
