// livetail bir sunucunun değişiklik akışına bağlanır ve gelen olayları
// basar. Akış sözleşmesini uçtan uca denemek için küçük bir araç.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"casavista_backend/internal/realtime"
	"casavista_backend/pkg/logger"
)

func main() {
	var (
		baseURL = flag.String("url", "ws://localhost:3000", "server base URL")
		tables  = flag.String("tables", "properties,leads", "comma separated tables to follow")
		token   = flag.String("token", "", "bearer token")
	)
	flag.Parse()

	logger.Init(slog.LevelDebug)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stream := realtime.NewWSStream(*baseURL, *token)

	done := make(chan struct{})
	count := 0

	for _, table := range strings.Split(*tables, ",") {
		table = strings.TrimSpace(table)
		if table == "" {
			continue
		}

		ch, err := stream.Changes(ctx, table)
		if err != nil {
			slog.Error("could not subscribe", "table", table, "err", err)
			os.Exit(1)
		}
		slog.Info("subscribed", "table", table)
		count++

		go func(table string, ch <-chan realtime.ChangeEvent) {
			defer func() { done <- struct{}{} }()
			for ev := range ch {
				id, _ := ev.RowID()
				slog.Info("change",
					"table", table,
					"event", string(ev.Kind),
					"id", id,
				)
			}
		}(table, ch)
	}

	for i := 0; i < count; i++ {
		<-done
	}
}
