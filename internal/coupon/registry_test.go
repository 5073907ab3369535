package coupon

import (
	"testing"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_CaseInsensitive(t *testing.T) {
	for _, in := range []string{"welcome10", "Welcome10", " WELCOME10 "} {
		c, err := Default.Lookup(in)
		require.NoError(t, err, in)
		assert.Equal(t, CodeWelcome10, c.Code)
		assert.Equal(t, domain.CouponPercentage, c.Kind)
		assert.False(t, c.FreeShipping)
	}
}

func TestLookup_FreeShip(t *testing.T) {
	c, err := Default.Lookup("freeship")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponFixed, c.Kind)
	assert.True(t, c.FreeShipping)
	assert.Equal(t, "15", c.Discount.String())
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Default.Lookup("BOGUS")
	assert.ErrorIs(t, err, ErrInvalidCoupon)

	_, err = Default.Lookup("")
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestAll_SortedByCode(t *testing.T) {
	all := Default.All()
	require.Len(t, all, 2)
	assert.Equal(t, CodeFreeShip, all[0].Code)
	assert.Equal(t, CodeWelcome10, all[1].Code)
}
