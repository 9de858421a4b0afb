package policies

import (
	"testing"

	"carmarket-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func statusPtr(s domain.InquiryStatus) *domain.InquiryStatus { return &s }

func TestCanViewInquiry(t *testing.T) {
	inq := &domain.Inquiry{ID: 1, CarID: 5, BuyerID: 2, SellerID: 10}

	assert.True(t, CanViewInquiry(domain.BuyerActor(2), inq), "buyer of record")
	assert.True(t, CanViewInquiry(domain.SellerActor(10), inq), "seller of record")
	assert.True(t, CanViewInquiry(domain.AdminActor(4), inq))

	assert.False(t, CanViewInquiry(domain.Anonymous(), inq), "no anonymous access ever")
	assert.False(t, CanViewInquiry(domain.BuyerActor(3), inq))
	assert.False(t, CanViewInquiry(domain.SellerActor(11), inq))
}

func TestCanCreateInquiry_RequiresAuth(t *testing.T) {
	car := &domain.Car{ID: 5, SellerID: 10, IsApproved: true}
	err := CanCreateInquiry(domain.Anonymous(), car)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCanCreateInquiry_UnapprovedCarIsInvalidState(t *testing.T) {
	car := &domain.Car{ID: 5, SellerID: 10, IsApproved: false}

	// InvalidState regardless of who asks — even the owner and the admin.
	for _, actor := range []domain.Actor{
		domain.BuyerActor(2),
		domain.SellerActor(10),
		domain.AdminActor(4),
	} {
		err := CanCreateInquiry(actor, car)
		require.Error(t, err, actor.Role().String())
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.NotErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestCanCreateInquiry_ApprovedCar(t *testing.T) {
	car := &domain.Car{ID: 5, SellerID: 10, IsApproved: true}
	require.NoError(t, CanCreateInquiry(domain.BuyerActor(2), car))
	require.NoError(t, CanCreateInquiry(domain.SellerActor(11), car))
}

func TestCanMutateInquiry_BuyerNeverMutates(t *testing.T) {
	inq := &domain.Inquiry{ID: 1, CarID: 5, BuyerID: 2, SellerID: 10, Status: domain.InquiryNew}

	// The buyer cannot change status on their own inquiry, even the very
	// first transition.
	err := CanMutateInquiry(domain.BuyerActor(2), inq, InquiryChanges{Status: statusPtr(domain.InquiryClosed)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = CanMutateInquiry(domain.BuyerActor(3), inq, InquiryChanges{Status: statusPtr(domain.InquiryRead)})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCanMutateInquiry_SellerAndAdminChangeStatus(t *testing.T) {
	inq := &domain.Inquiry{ID: 1, CarID: 5, BuyerID: 2, SellerID: 10, Status: domain.InquiryNew}

	require.NoError(t, CanMutateInquiry(domain.SellerActor(10), inq, InquiryChanges{Status: statusPtr(domain.InquiryRead)}))
	require.NoError(t, CanMutateInquiry(domain.AdminActor(4), inq, InquiryChanges{Status: statusPtr(domain.InquiryClosed)}))

	err := CanMutateInquiry(domain.SellerActor(11), inq, InquiryChanges{Status: statusPtr(domain.InquiryRead)})
	assert.ErrorIs(t, err, ErrPermissionDenied, "a different seller is not the seller of record")
}

func TestCanMutateInquiry_MessageIsWriteOnce(t *testing.T) {
	inq := &domain.Inquiry{ID: 1, CarID: 5, BuyerID: 2, SellerID: 10, Status: domain.InquiryNew}

	// ImmutableField beats role: even the seller of record and the admin
	// are rejected, and the rejection covers the whole change set.
	for _, actor := range []domain.Actor{
		domain.SellerActor(10),
		domain.AdminActor(4),
		domain.BuyerActor(2),
	} {
		err := CanMutateInquiry(actor, inq, InquiryChanges{
			Message: strPtr("edited"),
			Status:  statusPtr(domain.InquiryRead),
		})
		require.Error(t, err, actor.Role().String())
		assert.ErrorIs(t, err, ErrImmutableField)
	}
}

func TestCanDeleteInquiry(t *testing.T) {
	inq := &domain.Inquiry{ID: 1, CarID: 5, BuyerID: 2, SellerID: 10}

	require.NoError(t, CanDeleteInquiry(domain.BuyerActor(2), inq))
	require.NoError(t, CanDeleteInquiry(domain.SellerActor(10), inq))
	require.NoError(t, CanDeleteInquiry(domain.AdminActor(4), inq))
	assert.ErrorIs(t, CanDeleteInquiry(domain.BuyerActor(3), inq), ErrPermissionDenied)
	assert.ErrorIs(t, CanDeleteInquiry(domain.Anonymous(), inq), ErrPermissionDenied)
}
