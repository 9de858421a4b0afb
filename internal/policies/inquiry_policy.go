package policies

import "carmarket-backend/internal/domain"

// InquiryChanges is the proposed change set for an inquiry update. A nil
// field means "not touched".
type InquiryChanges struct {
	Message *string
	Status  *domain.InquiryStatus
}

// CanViewInquiry reports whether the actor may read a single inquiry.
// Inquiries are never visible anonymously; otherwise admin, the buyer of
// record, or the seller of record.
func CanViewInquiry(actor domain.Actor, inq *domain.Inquiry) bool {
	if !actor.Authenticated() {
		return false
	}
	return actor.IsAdmin() || actor.Is(inq.BuyerID) || actor.Is(inq.SellerID)
}

// CanCreateInquiry gates inquiry creation against a listing. Any
// authenticated actor may send one, but only against an approved car —
// regardless of role, an unapproved target is an invalid state, not a
// permission problem. On success the caller forces BuyerID from the actor,
// SellerID from the car's current seller, and Status to new.
func CanCreateInquiry(actor domain.Actor, car *domain.Car) error {
	if !actor.Authenticated() {
		return ErrInquiryRequiresAuth
	}
	if !car.IsApproved {
		return ErrInquiryUnapprovedCar
	}
	return nil
}

// CanMutateInquiry gates inquiry updates. Two rules stack:
//
//  1. Message is write-once. Touching it fails for everyone, admin
//     included, and the whole mutation is rejected.
//  2. Only the seller of record or an admin may change anything else.
//     The buyer can create and view but never mutate.
func CanMutateInquiry(actor domain.Actor, inq *domain.Inquiry, changes InquiryChanges) error {
	if changes.Message != nil {
		return ErrInquiryMessageFrozen
	}
	if actor.IsAdmin() || actor.Is(inq.SellerID) {
		return nil
	}
	return ErrInquiryNotSellerAdmin
}

// CanDeleteInquiry gates inquiry deletion: admin, buyer of record, or
// seller of record.
func CanDeleteInquiry(actor domain.Actor, inq *domain.Inquiry) error {
	if actor.IsAdmin() || actor.Is(inq.BuyerID) || actor.Is(inq.SellerID) {
		return nil
	}
	return ErrPermissionDenied
}
