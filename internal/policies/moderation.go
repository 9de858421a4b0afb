package policies

import (
	"fmt"

	"carmarket-backend/internal/domain"
)

// SetCarApproval applies the moderation flip on the in-memory record after
// checking the actor. The state is binary and fully reversible: approving
// an approved listing (or rejecting a rejected one) is a no-op, not an
// error, and there is no terminal state. Persistence is the caller's job.
func SetCarApproval(actor domain.Actor, car *domain.Car, approved bool) error {
	if err := CanApproveCar(actor); err != nil {
		return err
	}
	car.IsApproved = approved
	return nil
}

// CheckInquiryStatus validates the proposed status value. The core enforces
// the value set only; no transition graph is applied, so any authorized
// actor may move any status to any other in one step (closed back to new
// included).
func CheckInquiryStatus(s domain.InquiryStatus) error {
	if !s.Valid() {
		return fmt.Errorf("%w: unknown inquiry status %q", ErrInvalidRequest, string(s))
	}
	return nil
}
