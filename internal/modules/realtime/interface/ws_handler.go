package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"tavola/internal/modules/realtime/infrastructure"
	"tavola/internal/shared/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewAdminFeedHandler exposes /ws/admin/:token. Connected clients receive
// every reservation event; a nil validator skips token checks for local runs.
func NewAdminFeedHandler(hub *infrastructure.Hub, validator auth.TokenValidator) func(echo.Context) error {
	return func(c echo.Context) error {
		token := strings.TrimSpace(c.Param("token"))
		if token == "" {
			token = strings.TrimSpace(c.QueryParam("token"))
		}
		if token == "" {
			authz := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token = strings.TrimSpace(authz[7:])
			}
		}

		userID := "admin"
		if validator != nil {
			claims, err := validator.Validate(token)
			if err != nil {
				status := http.StatusUnauthorized
				message := "invalid token"
				if errors.Is(err, auth.ErrMissingToken) {
					status = http.StatusBadRequest
					message = "missing token"
				}
				slog.Warn("ws feed rejected", slog.Int("status", status), slog.Any("error", err))
				return echo.NewHTTPError(status, message)
			}
			userID = claims.RegisteredClaims.Subject
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws feed upgrade failed", slog.String("userId", userID), slog.Any("error", err))
			return err
		}

		// One session per socket so several admin tabs can watch at once.
		sessionID := strconv.FormatInt(time.Now().UnixNano(), 36)
		client := infrastructure.NewClient(hub, conn, userID, sessionID, 64)
		hub.AttachClientToAll(client)
		slog.Info("ws feed connected", slog.String("userId", userID), slog.String("sessionId", sessionID))

		go client.WritePump()
		go client.ReadPump()
		return nil
	}
}
