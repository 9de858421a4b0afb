package inquiries

import (
	"context"
	"fmt"

	"carmarket-backend/internal/domain"
	"carmarket-backend/internal/policies"

	"gorm.io/gorm"
)

var ErrMessageRequired = fmt.Errorf("%w: message is required", policies.ErrInvalidRequest)

type Service struct {
	DB *gorm.DB
}

// CreateInquiryInput carries the only client-writable fields. BuyerID,
// SellerID and Status are forced at creation.
type CreateInquiryInput struct {
	CarID   uint   `json:"car_id"`
	Message string `json:"message"`
}

// Create sends an inquiry against an approved car. The car's approval is
// re-read inside the transaction immediately before insert, so a
// concurrent admin rejection cannot slip a stale-approved inquiry in.
// SellerID snapshots the car's seller at this moment and is never
// re-derived.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInquiryInput) (*domain.Inquiry, error) {
	if !actor.Authenticated() {
		return nil, policies.ErrInquiryRequiresAuth
	}
	if in.Message == "" {
		return nil, ErrMessageRequired
	}

	var inq *domain.Inquiry
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var car domain.Car
		if err := tx.First(&car, in.CarID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return policies.ErrNotFound
			}
			return err
		}
		if err := policies.CanCreateInquiry(actor, &car); err != nil {
			return err
		}
		inq = &domain.Inquiry{
			CarID:    car.ID,
			BuyerID:  actor.ID(),
			SellerID: car.SellerID,
			Message:  in.Message,
			Status:   domain.InquiryNew,
		}
		return tx.Create(inq).Error
	})
	if err != nil {
		return nil, err
	}
	return inq, nil
}

// Filter narrows a scoped inquiry query.
type Filter struct {
	Status domain.InquiryStatus
	CarID  uint
}

// List returns the inquiries the actor is entitled to enumerate. An
// anonymous actor gets an empty result, never an error.
func (s *Service) List(ctx context.Context, actor domain.Actor, f Filter) ([]domain.Inquiry, error) {
	q := s.DB.WithContext(ctx).
		Scopes(policies.InquiryScope(actor)).
		Preload("Car").Preload("Car.Brand").Preload("Car.Model").
		Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CarID != 0 {
		q = q.Where("car_id = ?", f.CarID)
	}
	var inqs []domain.Inquiry
	if err := q.Find(&inqs).Error; err != nil {
		return nil, err
	}
	return inqs, nil
}

// Get fetches one inquiry. Absent and not-visible are the same NotFound.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id uint) (*domain.Inquiry, error) {
	var inq domain.Inquiry
	err := s.DB.WithContext(ctx).
		Preload("Car").Preload("Car.Brand").Preload("Car.Model").
		First(&inq, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, policies.ErrNotFound
		}
		return nil, err
	}
	if !policies.CanViewInquiry(actor, &inq) {
		return nil, policies.ErrNotFound
	}
	return &inq, nil
}

// Update applies a change set to an inquiry. Message is write-once for
// everyone; otherwise only the seller of record or an admin may change
// status, and the whole mutation is rejected on any violation.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id uint, changes policies.InquiryChanges) (*domain.Inquiry, error) {
	inq, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := policies.CanMutateInquiry(actor, inq, changes); err != nil {
		return nil, err
	}
	if changes.Status == nil {
		return inq, nil
	}
	if err := policies.CheckInquiryStatus(*changes.Status); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(inq).Update("status", *changes.Status).Error; err != nil {
		return nil, err
	}
	return inq, nil
}

// Delete removes an inquiry; buyer of record, seller of record, or admin.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	inq, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := policies.CanDeleteInquiry(actor, inq); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&domain.Inquiry{}, id).Error
}
