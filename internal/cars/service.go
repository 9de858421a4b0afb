package cars

import (
	"context"
	"fmt"
	"strings"

	"carmarket-backend/internal/domain"
	"carmarket-backend/internal/policies"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired      = fmt.Errorf("%w: title is required", policies.ErrInvalidRequest)
	ErrInvalidPrice       = fmt.Errorf("%w: price must not be negative", policies.ErrInvalidRequest)
	ErrInvalidYear        = fmt.Errorf("%w: year must be a positive integer", policies.ErrInvalidRequest)
	ErrInvalidMileage     = fmt.Errorf("%w: mileage must not be negative", policies.ErrInvalidRequest)
	ErrInvalidFuelType    = fmt.Errorf("%w: unknown fuel type", policies.ErrInvalidRequest)
	ErrInvalidTransmission = fmt.Errorf("%w: unknown transmission", policies.ErrInvalidRequest)
	ErrInvalidCondition   = fmt.Errorf("%w: unknown condition", policies.ErrInvalidRequest)
	ErrUnknownBrand       = fmt.Errorf("%w: unknown brand", policies.ErrInvalidRequest)
	ErrUnknownModel       = fmt.Errorf("%w: unknown model", policies.ErrInvalidRequest)
	ErrModelBrandMismatch = fmt.Errorf("%w: model does not belong to the given brand", policies.ErrInvalidRequest)
	ErrImageURLRequired   = fmt.Errorf("%w: image url is required", policies.ErrInvalidRequest)
)

type Service struct {
	DB *gorm.DB
	// MediaBaseURL is where the image-storage collaborator serves car
	// images from; relative image paths are resolved against it.
	MediaBaseURL string
}

// CreateCarInput carries only the client-writable listing fields. SellerID
// and IsApproved are forced server-side; the struct has no way to express
// them, so client-supplied values are dropped at the JSON boundary.
type CreateCarInput struct {
	Title        string              `json:"title"`
	BrandID      uint                `json:"brand_id"`
	ModelID      uint                `json:"model_id"`
	Price        float64             `json:"price"`
	FuelType     domain.FuelType     `json:"fuel_type"`
	Year         int                 `json:"year"`
	Transmission domain.Transmission `json:"transmission"`
	Condition    domain.Condition    `json:"condition"`
	Mileage      int                 `json:"mileage"`
	EngineType   string              `json:"engine_type"`
	Description  string              `json:"description"`
	Features     datatypes.JSON      `json:"features"`
}

func (s *Service) validateSpec(ctx context.Context, brandID, modelID uint, price float64, year, mileage int, fuel domain.FuelType, tr domain.Transmission, cond domain.Condition) error {
	if price < 0 {
		return ErrInvalidPrice
	}
	if year <= 0 {
		return ErrInvalidYear
	}
	if mileage < 0 {
		return ErrInvalidMileage
	}
	if !fuel.Valid() {
		return ErrInvalidFuelType
	}
	if !tr.Valid() {
		return ErrInvalidTransmission
	}
	if !cond.Valid() {
		return ErrInvalidCondition
	}
	return s.checkModelBrand(ctx, brandID, modelID)
}

// checkModelBrand enforces the write-time invariant model.brand_id ==
// car.brand_id.
func (s *Service) checkModelBrand(ctx context.Context, brandID, modelID uint) error {
	var brandCount int64
	if err := s.DB.WithContext(ctx).Model(&domain.Brand{}).Where("id = ?", brandID).Count(&brandCount).Error; err != nil {
		return err
	}
	if brandCount == 0 {
		return ErrUnknownBrand
	}
	var model domain.CarModel
	if err := s.DB.WithContext(ctx).First(&model, modelID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrUnknownModel
		}
		return err
	}
	if model.BrandID != brandID {
		return ErrModelBrandMismatch
	}
	return nil
}

// Create inserts a new listing for the acting seller. The created record's
// SellerID always comes from the actor and IsApproved is always false,
// whatever the client sent.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateCarInput) (*domain.Car, error) {
	if err := policies.CanCreateCar(actor); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if in.Condition == "" {
		in.Condition = domain.ConditionUsed
	}
	if err := s.validateSpec(ctx, in.BrandID, in.ModelID, in.Price, in.Year, in.Mileage, in.FuelType, in.Transmission, in.Condition); err != nil {
		return nil, err
	}

	car := &domain.Car{
		SellerID:     actor.ID(),
		Title:        in.Title,
		BrandID:      in.BrandID,
		ModelID:      in.ModelID,
		Price:        in.Price,
		FuelType:     in.FuelType,
		Year:         in.Year,
		Transmission: in.Transmission,
		Condition:    in.Condition,
		Mileage:      in.Mileage,
		EngineType:   in.EngineType,
		Description:  in.Description,
		Features:     in.Features,
		IsApproved:   false,
	}
	if err := s.DB.WithContext(ctx).Create(car).Error; err != nil {
		return nil, err
	}
	return car, nil
}

// List returns the listings the actor is entitled to enumerate, narrowed
// by the filter. The scope is applied before the filter, ordering and any
// pagination.
func (s *Service) List(ctx context.Context, actor domain.Actor, f Filter) ([]domain.Car, error) {
	q := s.DB.WithContext(ctx).
		Scopes(policies.CarScope(actor)).
		Preload("Brand").Preload("Model").Preload("Images")
	q = f.Apply(q)
	var cars []domain.Car
	if err := q.Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// Get fetches one listing. A record that does not exist and a record the
// actor may not see are the same NotFound: visibility and existence are
// deliberately indistinguishable.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id uint) (*domain.Car, error) {
	var car domain.Car
	err := s.DB.WithContext(ctx).
		Preload("Brand").Preload("Model").Preload("Images").
		First(&car, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, policies.ErrNotFound
		}
		return nil, err
	}
	if !policies.CanViewCar(actor, &car) {
		return nil, policies.ErrNotFound
	}
	return &car, nil
}

// UpdateCarInput: nil fields are untouched. SellerID and IsApproved are
// absent on purpose — they are immutable through the update path.
type UpdateCarInput struct {
	Title        *string              `json:"title"`
	BrandID      *uint                `json:"brand_id"`
	ModelID      *uint                `json:"model_id"`
	Price        *float64             `json:"price"`
	FuelType     *domain.FuelType     `json:"fuel_type"`
	Year         *int                 `json:"year"`
	Transmission *domain.Transmission `json:"transmission"`
	Condition    *domain.Condition    `json:"condition"`
	Mileage      *int                 `json:"mileage"`
	EngineType   *string              `json:"engine_type"`
	Description  *string              `json:"description"`
	Features     *datatypes.JSON      `json:"features"`
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id uint, in UpdateCarInput) (*domain.Car, error) {
	car, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := policies.CanMutateCar(actor, car); err != nil {
		return nil, err
	}

	next := *car
	if in.Title != nil {
		next.Title = *in.Title
	}
	if in.BrandID != nil {
		next.BrandID = *in.BrandID
	}
	if in.ModelID != nil {
		next.ModelID = *in.ModelID
	}
	if in.Price != nil {
		next.Price = *in.Price
	}
	if in.FuelType != nil {
		next.FuelType = *in.FuelType
	}
	if in.Year != nil {
		next.Year = *in.Year
	}
	if in.Transmission != nil {
		next.Transmission = *in.Transmission
	}
	if in.Condition != nil {
		next.Condition = *in.Condition
	}
	if in.Mileage != nil {
		next.Mileage = *in.Mileage
	}
	if in.EngineType != nil {
		next.EngineType = *in.EngineType
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Features != nil {
		next.Features = *in.Features
	}
	if next.Title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.validateSpec(ctx, next.BrandID, next.ModelID, next.Price, next.Year, next.Mileage, next.FuelType, next.Transmission, next.Condition); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        next.Title,
		"brand_id":     next.BrandID,
		"model_id":     next.ModelID,
		"price":        next.Price,
		"fuel_type":    next.FuelType,
		"year":         next.Year,
		"transmission": next.Transmission,
		"condition":    next.Condition,
		"mileage":      next.Mileage,
		"engine_type":  next.EngineType,
		"description":  next.Description,
		"features":     next.Features,
	}
	if err := s.DB.WithContext(ctx).Model(car).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, actor, id)
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	car, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := policies.CanMutateCar(actor, car); err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("car_id = ?", id).Delete(&domain.CarImage{}).Error; err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&domain.Car{}, id).Error
}

// Compare returns details for the requested ids that are currently
// approved. Unapproved listings are silently dropped — guest-level
// visibility applies to every actor here.
func (s *Service) Compare(ctx context.Context, rawIDs string) ([]domain.Car, error) {
	ids, err := policies.ParseCompareIDs(rawIDs)
	if err != nil {
		return nil, err
	}
	var cars []domain.Car
	err = s.DB.WithContext(ctx).
		Where("id IN ? AND is_approved = ?", ids, true).
		Preload("Brand").Preload("Model").Preload("Images").
		Order("id").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// SetApproval flips the moderation flag. Admin-only, idempotent,
// reversible. The decision is logged; no audit trail is kept here.
func (s *Service) SetApproval(ctx context.Context, actor domain.Actor, id uint, approved bool) (*domain.Car, error) {
	if err := policies.CanApproveCar(actor); err != nil {
		return nil, err
	}
	var car domain.Car
	if err := s.DB.WithContext(ctx).First(&car, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, policies.ErrNotFound
		}
		return nil, err
	}
	if car.IsApproved == approved {
		return &car, nil
	}
	if err := policies.SetCarApproval(actor, &car, approved); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&car).Update("is_approved", approved).Error; err != nil {
		return nil, err
	}
	log.Info().Uint("car_id", car.ID).Uint("admin_id", actor.ID()).Bool("approved", approved).Msg("listing moderation")
	return &car, nil
}

// resolveImageURL turns a storage-relative path into a full URL under
// MediaBaseURL. Absolute URLs pass through untouched.
func (s *Service) resolveImageURL(url string) string {
	if s.MediaBaseURL == "" || strings.Contains(url, "://") {
		return url
	}
	return strings.TrimSuffix(s.MediaBaseURL, "/") + "/" + strings.TrimPrefix(url, "/")
}

// AddImage attaches an image URL record to a listing the actor may mutate.
// The binary itself lives with the external storage collaborator.
func (s *Service) AddImage(ctx context.Context, actor domain.Actor, carID uint, url string) (*domain.CarImage, error) {
	if url == "" {
		return nil, ErrImageURLRequired
	}
	car, err := s.Get(ctx, actor, carID)
	if err != nil {
		return nil, err
	}
	if err := policies.CanMutateCar(actor, car); err != nil {
		return nil, err
	}
	img := &domain.CarImage{CarID: car.ID, URL: s.resolveImageURL(url)}
	if err := s.DB.WithContext(ctx).Create(img).Error; err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Service) RemoveImage(ctx context.Context, actor domain.Actor, carID, imageID uint) error {
	car, err := s.Get(ctx, actor, carID)
	if err != nil {
		return err
	}
	if err := policies.CanMutateCar(actor, car); err != nil {
		return err
	}
	var img domain.CarImage
	if err := s.DB.WithContext(ctx).Where("id = ? AND car_id = ?", imageID, carID).First(&img).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return policies.ErrNotFound
		}
		return err
	}
	return s.DB.WithContext(ctx).Delete(&img).Error
}
