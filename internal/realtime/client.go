package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	clientReadTimeout = 60 * time.Second
	clientBuffer      = 64
)

// WSStream gorilla/websocket üzerinden uzak bir sunucunun değişiklik akışına
// abone olur. internal/livesync Stream sözleşmesini karşılar; dönen kanal
// bağlantı koptuğunda veya context iptal edildiğinde kapanır. Otomatik
// reconnect yoktur, o karar çağırana aittir.
type WSStream struct {
	baseURL string
	token   string
	dialer  *websocket.Dialer
}

func NewWSStream(baseURL, token string) *WSStream {
	return &WSStream{
		baseURL: baseURL,
		token:   token,
		dialer:  websocket.DefaultDialer,
	}
}

func (s *WSStream) Changes(ctx context.Context, table string) (<-chan ChangeEvent, error) {
	url := fmt.Sprintf("%s/api/realtime/%s", s.baseURL, table)

	header := http.Header{}
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}

	ws, _, err := s.dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("could not connect to change stream: %w", err)
	}

	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(clientReadTimeout))
	})

	ch := make(chan ChangeEvent, clientBuffer)

	// Context iptali okuma döngüsünü ReadJSON hatasıyla sonlandırır.
	go func() {
		<-ctx.Done()
		ws.Close()
	}()

	go func() {
		defer close(ch)
		defer ws.Close()

		for {
			ws.SetReadDeadline(time.Now().Add(clientReadTimeout))

			var ev ChangeEvent
			if err := ws.ReadJSON(&ev); err != nil {
				if ctx.Err() == nil {
					slog.Info("realtime: stream closed", "table", table, "err", err)
				}
				return
			}

			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
