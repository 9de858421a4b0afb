package cars

import (
	"carmarket-backend/internal/domain"

	"gorm.io/gorm"
)

// Filter narrows a scoped listing query. Zero values mean "no constraint".
// It runs on top of the visibility scope, never instead of it.
type Filter struct {
	BrandID      uint
	ModelID      uint
	FuelType     domain.FuelType
	Transmission domain.Transmission
	Condition    domain.Condition
	Year         int
	MinYear      int
	MaxYear      int
	MinPrice     float64
	MaxPrice     float64
	Search       string
	Ordering     string
}

// orderings whitelists the client-selectable sort keys.
var orderings = map[string]string{
	"price":       "price ASC",
	"-price":      "price DESC",
	"year":        "year ASC",
	"-year":       "year DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
}

// Apply adds the filter predicates and ordering to the query.
func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if f.BrandID != 0 {
		q = q.Where("brand_id = ?", f.BrandID)
	}
	if f.ModelID != 0 {
		q = q.Where("model_id = ?", f.ModelID)
	}
	if f.FuelType != "" {
		q = q.Where("fuel_type = ?", f.FuelType)
	}
	if f.Transmission != "" {
		q = q.Where("transmission = ?", f.Transmission)
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", f.Condition)
	}
	if f.Year != 0 {
		q = q.Where("year = ?", f.Year)
	}
	if f.MinYear != 0 {
		q = q.Where("year >= ?", f.MinYear)
	}
	if f.MaxYear != 0 {
		q = q.Where("year <= ?", f.MaxYear)
	}
	if f.MinPrice != 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice != 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"title LIKE ? OR description LIKE ? OR brand_id IN (SELECT id FROM brands WHERE name LIKE ?) OR model_id IN (SELECT id FROM car_models WHERE name LIKE ?)",
			like, like, like, like,
		)
	}
	if order, ok := orderings[f.Ordering]; ok {
		q = q.Order(order)
	} else {
		q = q.Order("created_at DESC")
	}
	return q
}
