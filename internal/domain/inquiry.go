package domain

import "time"

// InquiryStatus enumerates inquiry states. No transition graph is enforced:
// any status is reachable from any other by an authorized actor.
type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryRead      InquiryStatus = "read"
	InquiryResponded InquiryStatus = "responded"
	InquiryClosed    InquiryStatus = "closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryRead, InquiryResponded, InquiryClosed:
		return true
	}
	return false
}

// Inquiry is a buyer-to-seller message tied to one car. BuyerID, SellerID
// and Status are forced at creation (SellerID is a snapshot of the car's
// seller); Message is write-once for everyone.
type Inquiry struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	CarID     uint          `gorm:"not null;index" json:"car_id"`
	Car       *Car          `gorm:"foreignKey:CarID" json:"car,omitempty"`
	BuyerID   uint          `gorm:"not null;index" json:"buyer_id"`
	Buyer     *User         `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	SellerID  uint          `gorm:"not null;index" json:"seller_id"`
	Seller    *User         `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Message   string        `gorm:"not null" json:"message"`
	Status    InquiryStatus `gorm:"size:20;not null;default:'new'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Inquiry) TableName() string { return "inquiries" }
