package livesync

import (
	"context"

	"casavista_backend/internal/model"
	"casavista_backend/internal/realtime"
)

// PropertyFilter ilan sorgularını daraltır. Sıfır değeri tüm ilanları
// newest-first döndürür.
type PropertyFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	Status        model.PropertyStatus
	TypeID        *uint
	Limit         int
	Offset        int
}

type LeadFilter struct {
	Status     model.LeadStatus
	PropertyID *uint
	UnreadOnly bool
	Limit      int
	Offset     int
}

// Source tablo-sorgu arayüzü. Tek paylaşılan global client yerine store'lara
// enjekte edilir; testler sahte implementasyon geçirir.
type Source interface {
	Properties(ctx context.Context, f PropertyFilter) ([]model.Property, error)
	PropertyByID(ctx context.Context, id uint) (model.Property, error)
	ImagesForProperties(ctx context.Context, ids []uint) ([]model.PropertyImage, error)
	FeaturesForProperties(ctx context.Context, ids []uint) ([]model.PropertyFeature, error)
	PropertyTypes(ctx context.Context) ([]model.PropertyType, error)

	Leads(ctx context.Context, f LeadFilter) ([]model.Lead, error)
	LeadByID(ctx context.Context, id uint) (model.Lead, error)
}

// ImageWrite / FeatureWrite / PropertyWrite mutasyon payload'ları. Gevşek
// tipli partial-merge yerine her operasyon için açık struct kullanılır.
type ImageWrite struct {
	URL          string `json:"url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

type FeatureWrite struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type PropertyWrite struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Price       float64              `json:"price"`
	Currency    model.Currency       `json:"currency"`
	Status      model.PropertyStatus `json:"status"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	TotalArea     float64 `json:"total_area"`
	BuiltArea     float64 `json:"built_area"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	ParkingSpaces int     `json:"parking_spaces"`

	Featured  bool `json:"featured"`
	Published bool `json:"published"`

	PropertyTypeID *uint `json:"property_type_id"`
	DevelopmentID  *uint `json:"development_id"`

	Images   []ImageWrite   `json:"images"`
	Features []FeatureWrite `json:"features"`

	ActorID uint `json:"-"`
}

type LeadWrite struct {
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Notes      string           `json:"notes"`
	Source     model.LeadSource `json:"source"`
	PropertyID *uint            `json:"property_id"`
}

// Mutator yazma arayüzü. Yazılar etkilenen satırı (child kayıtlarıyla
// birlikte) geri döner ki façade optimistic patch uygulayabilsin.
type Mutator interface {
	CreateProperty(ctx context.Context, w PropertyWrite) (model.Property, error)
	UpdateProperty(ctx context.Context, id uint, w PropertyWrite) (model.Property, error)
	DeleteProperty(ctx context.Context, id uint) error

	CreateLead(ctx context.Context, w LeadWrite) (model.Lead, error)
	UpdateLeadStatus(ctx context.Context, id uint, status model.LeadStatus) (model.Lead, error)
	MarkLeadRead(ctx context.Context, id uint) (model.Lead, error)
}

// Stream tablo başına değişiklik aboneliği açar. Dönen kanal context iptal
// edildiğinde veya taşıyıcı bağlantı koptuğunda kapanır. Hem in-process hub
// hem websocket istemcisi bu sözleşmeyi karşılar.
type Stream interface {
	Changes(ctx context.Context, table string) (<-chan realtime.ChangeEvent, error)
}
