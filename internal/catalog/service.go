package catalog

import (
	"context"
	"errors"
	"fmt"

	"carmarket-backend/internal/domain"
	"carmarket-backend/internal/policies"

	"gorm.io/gorm"
)

var (
	ErrAdminOnly         = fmt.Errorf("%w: catalog management is admin-only", policies.ErrPermissionDenied)
	ErrBrandNameRequired = errors.New("Brand name is required")
	ErrModelNameRequired = errors.New("Model name is required")
	ErrBrandNameTaken    = errors.New("Brand name already exists")
	ErrModelNameTaken    = errors.New("Model name already exists for this brand")
	// Deletion is restricted, not cascaded: reference data referenced by
	// listings stays put.
	ErrBrandInUse = fmt.Errorf("%w: brand has car listings and cannot be deleted", policies.ErrInvalidState)
	ErrModelInUse = fmt.Errorf("%w: model has car listings and cannot be deleted", policies.ErrInvalidState)
)

// Service manages Brand and CarModel reference data. Reads are public;
// mutation is an admin resource permission, not a policy-core concern.
type Service struct {
	DB *gorm.DB
}

func (s *Service) ListBrands(ctx context.Context, search string) ([]domain.Brand, error) {
	q := s.DB.WithContext(ctx).Order("name")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var brands []domain.Brand
	if err := q.Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (s *Service) GetBrand(ctx context.Context, id uint) (*domain.Brand, error) {
	var b domain.Brand
	if err := s.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, policies.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *Service) CreateBrand(ctx context.Context, actor domain.Actor, name string) (*domain.Brand, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if name == "" {
		return nil, ErrBrandNameRequired
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Brand{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBrandNameTaken
	}
	b := &domain.Brand{Name: name}
	if err := s.DB.WithContext(ctx).Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) UpdateBrand(ctx context.Context, actor domain.Actor, id uint, name string) (*domain.Brand, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if name == "" {
		return nil, ErrBrandNameRequired
	}
	b, err := s.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Brand{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBrandNameTaken
	}
	if err := s.DB.WithContext(ctx).Model(b).Update("name", name).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBrand(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	b, err := s.GetBrand(ctx, id)
	if err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Car{}).Where("brand_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrBrandInUse
	}
	if err := s.DB.WithContext(ctx).Where("brand_id = ?", id).Delete(&domain.CarModel{}).Error; err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(b).Error
}

func (s *Service) ListModels(ctx context.Context, brandID uint, search string) ([]domain.CarModel, error) {
	q := s.DB.WithContext(ctx).Preload("Brand").Order("name")
	if brandID != 0 {
		q = q.Where("brand_id = ?", brandID)
	}
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var models []domain.CarModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (s *Service) GetModel(ctx context.Context, id uint) (*domain.CarModel, error) {
	var m domain.CarModel
	if err := s.DB.WithContext(ctx).Preload("Brand").First(&m, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, policies.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) CreateModel(ctx context.Context, actor domain.Actor, brandID uint, name string) (*domain.CarModel, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if name == "" {
		return nil, ErrModelNameRequired
	}
	if _, err := s.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.CarModel{}).Where("brand_id = ? AND name = ?", brandID, name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrModelNameTaken
	}
	m := &domain.CarModel{BrandID: brandID, Name: name}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateModel renames a model. The brand association is fixed at creation;
// a mislinked model is deleted and recreated, not moved.
func (s *Service) UpdateModel(ctx context.Context, actor domain.Actor, id uint, name string) (*domain.CarModel, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if name == "" {
		return nil, ErrModelNameRequired
	}
	m, err := s.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.CarModel{}).Where("brand_id = ? AND name = ? AND id <> ?", m.BrandID, name, id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrModelNameTaken
	}
	if err := s.DB.WithContext(ctx).Model(m).Update("name", name).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteModel(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	m, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Car{}).Where("model_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrModelInUse
	}
	return s.DB.WithContext(ctx).Delete(m).Error
}
