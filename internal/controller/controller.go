package controller

import (
	"casavista_backend/internal/livesync"
	"casavista_backend/internal/realtime"
)

// Paylaşılan bağımlılıklar main tarafından enjekte edilir.
var (
	store *livesync.GormStore
	hub   *realtime.Hub
)

func InitControllers(s *livesync.GormStore, h *realtime.Hub) {
	store = s
	hub = h
}

// publishChange commit sonrası satır değişikliğini hub'a duyurur. Event
// payload'ı yalnızca parent satırı taşır; aboneler child kayıtları kendileri
// çeker.
func publishChange(kind realtime.EventKind, table string, newRow, oldRow interface{}) {
	ev, err := realtime.NewChangeEvent(kind, table, newRow, oldRow)
	if err != nil {
		return
	}
	hub.Publish(ev)
}
