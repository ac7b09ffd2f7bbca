package livesync

import (
	"sort"
	"strings"

	"casavista_backend/internal/model"
)

// Fallback değerler: upstream'den bozuk veya bilinmeyen değer gelirse UI
// çökmek yerine bunlara düşer.
const (
	DefaultPropertyStatus = "available"
	DefaultPropertyType   = "house"
	DefaultLeadStatus     = "pending"
)

// Admin panel lead sözlüğü
const (
	LeadViewPending   = "pending"
	LeadViewConfirmed = "confirmed"
	LeadViewCompleted = "completed"
	LeadViewCancelled = "cancelled"
)

var propertyStatusView = map[model.PropertyStatus]string{
	model.PropertyStatusAvailable:         "available",
	model.PropertyStatusReserved:          "reserved",
	model.PropertyStatusSold:              "sold",
	model.PropertyStatusUnderConstruction: "under_construction",
}

var knownPropertyTypes = map[string]bool{
	"house":      true,
	"apartment":  true,
	"condo":      true,
	"villa":      true,
	"townhouse":  true,
	"land":       true,
	"commercial": true,
	"office":     true,
}

// leadStatusView backend sözlüğünü panel sözlüğüne indirger. Bilinçli olarak
// kayıplıdır: interested ve appointment aynı panel değerine düşer.
var leadStatusView = map[model.LeadStatus]string{
	model.LeadStatusNew:         LeadViewPending,
	model.LeadStatusContacted:   LeadViewPending,
	model.LeadStatusInterested:  LeadViewConfirmed,
	model.LeadStatusAppointment: LeadViewConfirmed,
	model.LeadStatusNegotiating: LeadViewConfirmed,
	model.LeadStatusClosed:      LeadViewCompleted,
	model.LeadStatusDiscarded:   LeadViewCancelled,
}

// leadStatusWrite panel sözlüğünü backend'e geri yazar. leadStatusView'in
// tersi DEĞİLDİR: confirmed her zaman contacted olarak yazılır, interested
// veya appointment asla geri üretilmez. İki tablo ayrı tutulur, tekleştirme
// yapılmaz.
var leadStatusWrite = map[string]model.LeadStatus{
	LeadViewPending:   model.LeadStatusNew,
	LeadViewConfirmed: model.LeadStatusContacted,
	LeadViewCompleted: model.LeadStatusClosed,
	LeadViewCancelled: model.LeadStatusDiscarded,
}

// LeadStatusToView backend status değerini panel değerine çevirir.
func LeadStatusToView(s model.LeadStatus) string {
	if v, ok := leadStatusView[s]; ok {
		return v
	}
	return DefaultLeadStatus
}

// LeadStatusFromView panel status değerini backend değerine çevirir.
func LeadStatusFromView(s string) model.LeadStatus {
	if v, ok := leadStatusWrite[s]; ok {
		return v
	}
	return model.LeadStatusNew
}

// MapProperty ham satırı ve child kayıtlarını ViewProperty'ye çevirir.
// Saf ve totaldir: hiçbir girişte panic/hata üretmez.
//
// Primary resim kuralı: is_primary işaretli ilk resim; hiçbiri işaretli
// değilse listedeki ilk resim. Resimler display_order'a göre sıralanarak
// döndürülür, primary seçimi ise verilen sıradan yapılır.
func MapProperty(p model.Property, images []model.PropertyImage, features []model.PropertyFeature, ptype *model.PropertyType) ViewProperty {
	status, ok := propertyStatusView[p.Status]
	if !ok {
		status = DefaultPropertyStatus
	}

	typeCode := DefaultPropertyType
	if ptype != nil {
		code := strings.ToLower(ptype.Code)
		if knownPropertyTypes[code] {
			typeCode = code
		}
	}

	primary := ""
	for _, img := range images {
		if img.IsPrimary {
			primary = img.URL
			break
		}
	}
	if primary == "" && len(images) > 0 {
		primary = images[0].URL
	}

	viewImages := make([]ViewImage, 0, len(images))
	for _, img := range images {
		viewImages = append(viewImages, ViewImage{
			ID:           img.ID,
			URL:          img.URL,
			IsPrimary:    img.IsPrimary,
			DisplayOrder: img.DisplayOrder,
		})
	}
	sort.SliceStable(viewImages, func(i, j int) bool {
		return viewImages[i].DisplayOrder < viewImages[j].DisplayOrder
	})

	viewFeatures := make([]ViewFeature, 0, len(features))
	for _, f := range features {
		viewFeatures = append(viewFeatures, ViewFeature{Name: f.Name, Value: f.Value})
	}

	currency := string(p.Currency)
	if currency == "" {
		currency = string(model.CurrencyUSD)
	}

	return ViewProperty{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		Currency:      currency,
		Status:        status,
		Type:          typeCode,
		Address:       p.Address,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		TotalArea:     p.TotalArea,
		BuiltArea:     p.BuiltArea,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		ParkingSpaces: p.ParkingSpaces,
		Featured:      p.Featured,
		Published:     p.Published,
		PrimaryImage:  primary,
		Images:        viewImages,
		Features:      viewFeatures,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// MapLead ham lead satırını ViewLead'e çevirir. Saf ve totaldir.
func MapLead(l model.Lead) ViewLead {
	name := strings.TrimSpace(l.FirstName + " " + l.LastName)

	return ViewLead{
		ID:         l.ID,
		Name:       name,
		Email:      l.Email,
		Phone:      l.Phone,
		Status:     LeadStatusToView(l.Status),
		Notes:      l.Notes,
		Message:    l.Notes,
		Source:     string(l.Source),
		ReadStatus: l.ReadStatus,
		PropertyID: l.PropertyID,
		CreatedAt:  l.CreatedAt,
	}
}
