package domain

import (
	"time"

	"gorm.io/datatypes"
)

// FuelType enumerates accepted fuel_type values.
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelCNG      FuelType = "cng"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid, FuelCNG:
		return true
	}
	return false
}

// Transmission enumerates accepted transmission values.
type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

func (t Transmission) Valid() bool {
	return t == TransmissionManual || t == TransmissionAutomatic
}

// Condition enumerates accepted condition values.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// Brand is reference data, admin-maintained.
type Brand struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Brand) TableName() string { return "brands" }

// CarModel belongs to a brand; model names are unique per brand.
type CarModel struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BrandID uint   `gorm:"not null;uniqueIndex:idx_brand_model_name" json:"brand_id"`
	Brand   *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Name    string `gorm:"size:100;not null;uniqueIndex:idx_brand_model_name" json:"name"`
}

func (CarModel) TableName() string { return "car_models" }

// Car is a listing. SellerID and IsApproved are forced fields: always set
// server-side from the actor and the moderation flow, never from client
// input. The model must belong to the brand; writes enforce it.
type Car struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SellerID     uint           `gorm:"not null;index" json:"seller_id"`
	Seller       *User          `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	BrandID      uint           `gorm:"not null;index" json:"brand_id"`
	Brand        *Brand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	ModelID      uint           `gorm:"not null;index" json:"model_id"`
	Model        *CarModel      `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	Price        float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	FuelType     FuelType       `gorm:"size:20;not null" json:"fuel_type"`
	Year         int            `gorm:"not null" json:"year"`
	Transmission Transmission   `gorm:"size:20;not null" json:"transmission"`
	Condition    Condition      `gorm:"size:10;not null;default:'used'" json:"condition"`
	Mileage      int            `gorm:"not null" json:"mileage"`
	EngineType   string         `gorm:"size:100" json:"engine_type"`
	Description  string         `json:"description"`
	Features     datatypes.JSON `json:"features"`
	IsApproved   bool           `gorm:"not null;default:false;index" json:"is_approved"`
	Images       []CarImage     `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Car) TableName() string { return "cars" }

// CarImage is a URL record; the binary lives with the external storage
// collaborator.
type CarImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CarID      uint      `gorm:"not null;index" json:"car_id"`
	URL        string    `gorm:"not null" json:"url"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (CarImage) TableName() string { return "car_images" }
