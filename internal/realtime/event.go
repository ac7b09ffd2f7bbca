package realtime

import (
	"encoding/json"
	"fmt"
)

// Event Kinds
type EventKind string

const (
	EventInsert EventKind = "INSERT"
	EventUpdate EventKind = "UPDATE"
	EventDelete EventKind = "DELETE"
)

// Table names carried on the stream
const (
	TableProperties = "properties"
	TableLeads      = "leads"
	TableWebConfig  = "web_configs"
)

// ChangeEvent tek bir satır değişikliğini taşır. INSERT/UPDATE olaylarında
// NewRow yalnızca parent satırın alanlarını içerir; ilişkili child kayıtlar
// abone tarafında ayrıca çekilir. DELETE olayında OldRow, silinen satırdır.
type ChangeEvent struct {
	Kind   EventKind       `json:"event"`
	Table  string          `json:"table"`
	NewRow json.RawMessage `json:"new_row,omitempty"`
	OldRow json.RawMessage `json:"old_row,omitempty"`
}

// NewChangeEvent satır modellerini JSON'a çevirerek bir olay üretir.
func NewChangeEvent(kind EventKind, table string, newRow, oldRow interface{}) (ChangeEvent, error) {
	ev := ChangeEvent{Kind: kind, Table: table}

	if newRow != nil {
		b, err := json.Marshal(newRow)
		if err != nil {
			return ChangeEvent{}, fmt.Errorf("could not encode new row: %w", err)
		}
		ev.NewRow = b
	}
	if oldRow != nil {
		b, err := json.Marshal(oldRow)
		if err != nil {
			return ChangeEvent{}, fmt.Errorf("could not encode old row: %w", err)
		}
		ev.OldRow = b
	}

	return ev, nil
}

type rowID struct {
	ID      uint  `json:"ID"`
	LowerID *uint `json:"id"`
}

// RowID olayın taşıdığı satırın id'sini çıkarır. INSERT/UPDATE için NewRow,
// DELETE için OldRow kullanılır.
func (e ChangeEvent) RowID() (uint, bool) {
	raw := e.NewRow
	if e.Kind == EventDelete || len(raw) == 0 {
		raw = e.OldRow
	}
	if len(raw) == 0 {
		return 0, false
	}

	var r rowID
	if err := json.Unmarshal(raw, &r); err != nil {
		return 0, false
	}
	if r.ID != 0 {
		return r.ID, true
	}
	if r.LowerID != nil && *r.LowerID != 0 {
		return *r.LowerID, true
	}
	return 0, false
}
