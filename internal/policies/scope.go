package policies

import (
	"carmarket-backend/internal/domain"

	"gorm.io/gorm"
)

// CarScope returns the queryset predicate for listing enumeration. It
// narrows list/search queries before pagination and sorting; single-record
// checks stay with CanViewCar.
//
//   - admin: everything
//   - seller: the approved catalog plus their own pending listings (a
//     union — a seller browses like any buyer on top of their own stock)
//   - everyone else: approved only
func CarScope(actor domain.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case actor.IsAdmin():
			return db
		case actor.IsSeller():
			return db.Where("is_approved = ? OR seller_id = ?", true, actor.ID())
		default:
			return db.Where("is_approved = ?", true)
		}
	}
}

// InquiryScope returns the queryset predicate for inquiry enumeration.
//
//   - admin: everything
//   - seller: inquiries addressed to them OR on cars they own. Both sides
//     are set identically at creation; the union is kept so the predicate
//     tolerates the fields ever diverging.
//   - buyer: inquiries they sent
//   - anonymous: the empty set, never an error
func InquiryScope(actor domain.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case actor.IsAdmin():
			return db
		case actor.IsSeller():
			return db.Where(
				"seller_id = ? OR car_id IN (SELECT id FROM cars WHERE seller_id = ?)",
				actor.ID(), actor.ID(),
			)
		case actor.Authenticated():
			return db.Where("buyer_id = ?", actor.ID())
		default:
			return db.Where("1 = 0")
		}
	}
}
