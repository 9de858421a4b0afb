package policies

import (
	"testing"

	"carmarket-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanViewCar_ApprovedIsPublic(t *testing.T) {
	car := &domain.Car{ID: 1, SellerID: 10, IsApproved: true}

	assert.True(t, CanViewCar(domain.Anonymous(), car))
	assert.True(t, CanViewCar(domain.BuyerActor(2), car))
	assert.True(t, CanViewCar(domain.SellerActor(3), car))
	assert.True(t, CanViewCar(domain.AdminActor(4), car))
}

func TestCanViewCar_UnapprovedOwnerOverride(t *testing.T) {
	car := &domain.Car{ID: 1, SellerID: 10, IsApproved: false}

	assert.True(t, CanViewCar(domain.SellerActor(10), car), "owner sees own pending listing")
	assert.True(t, CanViewCar(domain.AdminActor(4), car))
	assert.False(t, CanViewCar(domain.Anonymous(), car))
	assert.False(t, CanViewCar(domain.BuyerActor(2), car))
	assert.False(t, CanViewCar(domain.SellerActor(11), car), "other sellers never see it")
}

func TestCanViewCar_StaffSeesEverything(t *testing.T) {
	for _, approved := range []bool{true, false} {
		car := &domain.Car{ID: 1, SellerID: 10, IsApproved: approved}
		assert.True(t, CanViewCar(domain.AdminActor(99), car))
	}
}

func TestCanCreateCar(t *testing.T) {
	require.NoError(t, CanCreateCar(domain.SellerActor(10)))

	for _, actor := range []domain.Actor{
		domain.Anonymous(),
		domain.BuyerActor(2),
		domain.AdminActor(4),
	} {
		err := CanCreateCar(actor)
		require.Error(t, err, actor.Role().String())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestCanMutateCar(t *testing.T) {
	car := &domain.Car{ID: 1, SellerID: 10, IsApproved: true}

	require.NoError(t, CanMutateCar(domain.SellerActor(10), car))
	require.NoError(t, CanMutateCar(domain.AdminActor(4), car))

	for _, actor := range []domain.Actor{
		domain.Anonymous(),
		domain.BuyerActor(2),
		domain.SellerActor(11),
	} {
		err := CanMutateCar(actor, car)
		require.Error(t, err, actor.Role().String())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestCanApproveCar(t *testing.T) {
	require.NoError(t, CanApproveCar(domain.AdminActor(4)))
	assert.ErrorIs(t, CanApproveCar(domain.SellerActor(10)), ErrPermissionDenied)
	assert.ErrorIs(t, CanApproveCar(domain.BuyerActor(2)), ErrPermissionDenied)
	assert.ErrorIs(t, CanApproveCar(domain.Anonymous()), ErrPermissionDenied)
}

func TestParseCompareIDs(t *testing.T) {
	ids, err := ParseCompareIDs("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids)

	ids, err = ParseCompareIDs(" 4, abc, 5 ,")
	require.NoError(t, err, "non-numeric entries are skipped, not fatal")
	assert.Equal(t, []uint{4, 5}, ids)

	_, err = ParseCompareIDs("")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseCompareIDs("   ")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseCompareIDs("abc,def")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseCompareIDs("0,-1")
	assert.ErrorIs(t, err, ErrInvalidRequest, "ids must be positive integers")
}
