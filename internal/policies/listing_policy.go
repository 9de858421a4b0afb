package policies

import (
	"strconv"
	"strings"

	"carmarket-backend/internal/domain"
)

// CanViewCar reports whether the actor may read a single listing.
// Approved listings are public; unapproved ones are visible only to admins
// and the owning seller.
func CanViewCar(actor domain.Actor, car *domain.Car) bool {
	if car.IsApproved {
		return true
	}
	return actor.IsAdmin() || actor.Is(car.SellerID)
}

// CanCreateCar gates listing creation. Only authenticated sellers may
// create; the caller must then force SellerID from the actor and
// IsApproved to false regardless of client input.
func CanCreateCar(actor domain.Actor) error {
	if !actor.IsSeller() {
		return ErrOnlySellersCanAddCars
	}
	return nil
}

// CanMutateCar gates update and delete of a single listing: owner or admin.
// SellerID and IsApproved stay immutable through this path; approval only
// changes via SetCarApproval.
func CanMutateCar(actor domain.Actor, car *domain.Car) error {
	if actor.IsAdmin() || actor.Is(car.SellerID) {
		return nil
	}
	return ErrNotListingOwner
}

// CanApproveCar gates the moderation flip.
func CanApproveCar(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return ErrAdminOnlyApproval
	}
	return nil
}

// ParseCompareIDs parses a comma-separated id list for the compare
// operation. Non-numeric entries are skipped; an empty input or one with no
// parseable positive integers is an InvalidRequest, surfaced before any
// record lookup.
func ParseCompareIDs(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrCompareIDsRequired
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n == 0 {
			continue
		}
		ids = append(ids, uint(n))
	}
	if len(ids) == 0 {
		return nil, ErrCompareIDsInvalid
	}
	return ids, nil
}
