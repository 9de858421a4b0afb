package policies

import (
	"testing"

	"carmarket-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCarApproval_AdminOnly(t *testing.T) {
	car := &domain.Car{ID: 1, SellerID: 10, IsApproved: false}

	err := SetCarApproval(domain.SellerActor(10), car, true)
	assert.ErrorIs(t, err, ErrPermissionDenied, "the owner cannot approve their own listing")
	assert.False(t, car.IsApproved)

	require.NoError(t, SetCarApproval(domain.AdminActor(4), car, true))
	assert.True(t, car.IsApproved)
}

func TestSetCarApproval_IdempotentAndReversible(t *testing.T) {
	car := &domain.Car{ID: 1, SellerID: 10, IsApproved: true}
	admin := domain.AdminActor(4)

	// Approving an approved listing is a no-op, not an error.
	require.NoError(t, SetCarApproval(admin, car, true))
	assert.True(t, car.IsApproved)

	// No terminal state: the flag flips back and forth any number of times.
	require.NoError(t, SetCarApproval(admin, car, false))
	assert.False(t, car.IsApproved)
	require.NoError(t, SetCarApproval(admin, car, false))
	require.NoError(t, SetCarApproval(admin, car, true))
	assert.True(t, car.IsApproved)
}

func TestCheckInquiryStatus(t *testing.T) {
	for _, s := range []domain.InquiryStatus{
		domain.InquiryNew, domain.InquiryRead, domain.InquiryResponded, domain.InquiryClosed,
	} {
		require.NoError(t, CheckInquiryStatus(s))
	}
	assert.ErrorIs(t, CheckInquiryStatus("archived"), ErrInvalidRequest)
	assert.ErrorIs(t, CheckInquiryStatus(""), ErrInvalidRequest)
}

// The status set has no enforced transition graph: closed goes back to new
// in one authorized step. Documented current behavior, not an oversight fix.
func TestInquiryStatus_NoTransitionGraph(t *testing.T) {
	inq := &domain.Inquiry{ID: 1, CarID: 5, BuyerID: 2, SellerID: 10, Status: domain.InquiryClosed}
	require.NoError(t, CanMutateInquiry(domain.SellerActor(10), inq, InquiryChanges{Status: statusPtr(domain.InquiryNew)}))
	require.NoError(t, CheckInquiryStatus(domain.InquiryNew))
}
