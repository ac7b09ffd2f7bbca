package livesync

import (
	"context"
	"time"

	"gorm.io/gorm"

	"casavista_backend/internal/model"
)

// GormStore Source ve Mutator arayüzlerinin Postgres/GORM implementasyonu.
// Controller'lar ve sunucu içi store'lar aynı implementasyonu paylaşır.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Properties(ctx context.Context, f PropertyFilter) ([]model.Property, error) {
	q := s.db.WithContext(ctx).Model(&model.Property{})

	if f.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.TypeID != nil {
		q = q.Where("property_type_id = ?", *f.TypeID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var properties []model.Property
	if err := q.Order("created_at desc").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *GormStore) PropertyByID(ctx context.Context, id uint) (model.Property, error) {
	var property model.Property
	if err := s.db.WithContext(ctx).First(&property, id).Error; err != nil {
		return model.Property{}, err
	}
	return property, nil
}

func (s *GormStore) ImagesForProperties(ctx context.Context, ids []uint) ([]model.PropertyImage, error) {
	var images []model.PropertyImage
	err := s.db.WithContext(ctx).
		Where("property_id IN ?", ids).
		Order("display_order ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (s *GormStore) FeaturesForProperties(ctx context.Context, ids []uint) ([]model.PropertyFeature, error) {
	var features []model.PropertyFeature
	err := s.db.WithContext(ctx).
		Where("property_id IN ?", ids).
		Find(&features).Error
	if err != nil {
		return nil, err
	}
	return features, nil
}

func (s *GormStore) PropertyTypes(ctx context.Context) ([]model.PropertyType, error) {
	var types []model.PropertyType
	if err := s.db.WithContext(ctx).Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *GormStore) Leads(ctx context.Context, f LeadFilter) ([]model.Lead, error) {
	q := s.db.WithContext(ctx).Model(&model.Lead{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PropertyID != nil {
		q = q.Where("property_id = ?", *f.PropertyID)
	}
	if f.UnreadOnly {
		q = q.Where("read_status = ?", false)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var leads []model.Lead
	if err := q.Order("created_at desc").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (s *GormStore) LeadByID(ctx context.Context, id uint) (model.Lead, error) {
	var lead model.Lead
	if err := s.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return model.Lead{}, err
	}
	return lead, nil
}

// normalizeImages tam olarak bir resmin primary işaretli kalmasını sağlar:
// işaretli ilk resim kazanır, hiçbiri işaretli değilse ilki primary olur.
func normalizeImages(propertyID uint, images []ImageWrite) []model.PropertyImage {
	primarySeen := false
	out := make([]model.PropertyImage, 0, len(images))

	for i, img := range images {
		isPrimary := img.IsPrimary && !primarySeen
		if isPrimary {
			primarySeen = true
		}
		order := img.DisplayOrder
		if order == 0 {
			order = i
		}
		out = append(out, model.PropertyImage{
			PropertyID:   propertyID,
			URL:          img.URL,
			IsPrimary:    isPrimary,
			DisplayOrder: order,
		})
	}

	if !primarySeen && len(out) > 0 {
		out[0].IsPrimary = true
	}

	return out
}

func (s *GormStore) CreateProperty(ctx context.Context, w PropertyWrite) (model.Property, error) {
	property := model.Property{
		Title:          w.Title,
		Description:    w.Description,
		Price:          w.Price,
		Currency:       w.Currency,
		Status:         w.Status,
		Address:        w.Address,
		Latitude:       w.Latitude,
		Longitude:      w.Longitude,
		TotalArea:      w.TotalArea,
		BuiltArea:      w.BuiltArea,
		Bedrooms:       w.Bedrooms,
		Bathrooms:      w.Bathrooms,
		ParkingSpaces:  w.ParkingSpaces,
		Featured:       w.Featured,
		Published:      w.Published,
		PropertyTypeID: w.PropertyTypeID,
		DevelopmentID:  w.DevelopmentID,
		CreatedBy:      w.ActorID,
		UpdatedBy:      w.ActorID,
	}

	tx := s.db.WithContext(ctx).Begin()

	if err := tx.Create(&property).Error; err != nil {
		tx.Rollback()
		return model.Property{}, err
	}

	for _, img := range normalizeImages(property.ID, w.Images) {
		if err := tx.Create(&img).Error; err != nil {
			tx.Rollback()
			return model.Property{}, err
		}
	}

	for _, f := range w.Features {
		feature := model.PropertyFeature{
			PropertyID: property.ID,
			Name:       f.Name,
			Value:      f.Value,
		}
		if err := tx.Create(&feature).Error; err != nil {
			tx.Rollback()
			return model.Property{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return model.Property{}, err
	}

	return s.loadProperty(ctx, property.ID)
}

func (s *GormStore) UpdateProperty(ctx context.Context, id uint, w PropertyWrite) (model.Property, error) {
	var property model.Property
	if err := s.db.WithContext(ctx).First(&property, id).Error; err != nil {
		return model.Property{}, err
	}

	property.Title = w.Title
	property.Description = w.Description
	property.Price = w.Price
	property.Currency = w.Currency
	property.Status = w.Status
	property.Address = w.Address
	property.Latitude = w.Latitude
	property.Longitude = w.Longitude
	property.TotalArea = w.TotalArea
	property.BuiltArea = w.BuiltArea
	property.Bedrooms = w.Bedrooms
	property.Bathrooms = w.Bathrooms
	property.ParkingSpaces = w.ParkingSpaces
	property.Featured = w.Featured
	property.Published = w.Published
	property.PropertyTypeID = w.PropertyTypeID
	property.DevelopmentID = w.DevelopmentID
	property.UpdatedBy = w.ActorID

	tx := s.db.WithContext(ctx).Begin()

	if err := tx.Save(&property).Error; err != nil {
		tx.Rollback()
		return model.Property{}, err
	}

	// Mevcut child kayıtları sil, yenilerini yaz
	if err := tx.Where("property_id = ?", property.ID).Delete(&model.PropertyImage{}).Error; err != nil {
		tx.Rollback()
		return model.Property{}, err
	}
	if err := tx.Where("property_id = ?", property.ID).Delete(&model.PropertyFeature{}).Error; err != nil {
		tx.Rollback()
		return model.Property{}, err
	}

	for _, img := range normalizeImages(property.ID, w.Images) {
		if err := tx.Create(&img).Error; err != nil {
			tx.Rollback()
			return model.Property{}, err
		}
	}
	for _, f := range w.Features {
		feature := model.PropertyFeature{
			PropertyID: property.ID,
			Name:       f.Name,
			Value:      f.Value,
		}
		if err := tx.Create(&feature).Error; err != nil {
			tx.Rollback()
			return model.Property{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return model.Property{}, err
	}

	return s.loadProperty(ctx, property.ID)
}

func (s *GormStore) DeleteProperty(ctx context.Context, id uint) error {
	var property model.Property
	if err := s.db.WithContext(ctx).First(&property, id).Error; err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(&property).Error
}

func (s *GormStore) loadProperty(ctx context.Context, id uint) (model.Property, error) {
	var property model.Property
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.display_order ASC")
		}).
		Preload("Features").
		Preload("PropertyType").
		First(&property, id).Error
	if err != nil {
		return model.Property{}, err
	}
	return property, nil
}

func (s *GormStore) CreateLead(ctx context.Context, w LeadWrite) (model.Lead, error) {
	source := w.Source
	if source == "" {
		source = model.LeadSourceContactForm
	}

	lead := model.Lead{
		FirstName:  w.FirstName,
		LastName:   w.LastName,
		Email:      w.Email,
		Phone:      w.Phone,
		Notes:      w.Notes,
		Status:     model.LeadStatusNew,
		Source:     source,
		PropertyID: w.PropertyID,
	}

	if err := s.db.WithContext(ctx).Create(&lead).Error; err != nil {
		return model.Lead{}, err
	}

	return lead, nil
}

func (s *GormStore) UpdateLeadStatus(ctx context.Context, id uint, status model.LeadStatus) (model.Lead, error) {
	var lead model.Lead
	if err := s.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return model.Lead{}, err
	}

	updates := map[string]interface{}{"status": status}
	if status == model.LeadStatusContacted && lead.ContactedAt == nil {
		now := time.Now()
		updates["contacted_at"] = &now
	}

	if err := s.db.WithContext(ctx).Model(&lead).Updates(updates).Error; err != nil {
		return model.Lead{}, err
	}

	return s.LeadByID(ctx, id)
}

func (s *GormStore) MarkLeadRead(ctx context.Context, id uint) (model.Lead, error) {
	var lead model.Lead
	if err := s.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return model.Lead{}, err
	}

	if err := s.db.WithContext(ctx).Model(&lead).Update("read_status", true).Error; err != nil {
		return model.Lead{}, err
	}

	return s.LeadByID(ctx, id)
}
