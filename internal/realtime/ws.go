package realtime

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 25 * time.Second
)

var streamedTables = map[string]bool{
	TableProperties: true,
	TableLeads:      true,
	TableWebConfig:  true,
}

// UpgradeRequired websocket upgrade olmayan istekleri reddeder.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler tablo başına websocket aboneliği açar ve hub olaylarını JSON
// olarak iletir. Bağlantı koptuğunda abonelik kapatılır.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		table := c.Params("table")
		if !streamedTables[table] {
			c.WriteJSON(fiber.Map{"error": "unknown table"})
			return
		}

		sub := hub.Subscribe(table)
		defer sub.Close()

		done := make(chan struct{})

		// İstemciden veri beklenmez; read loop sadece kapanışı yakalar.
		go func() {
			defer close(done)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(wsPingInterval)
		defer ping.Stop()

		for {
			select {
			case <-done:
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				c.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := c.WriteJSON(ev); err != nil {
					slog.Debug("realtime: write failed, closing subscriber", "table", table, "err", err)
					return
				}
			case <-ping.C:
				c.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	})
}
