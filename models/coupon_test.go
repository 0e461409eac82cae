package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponDiscount(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	maxDiscount := 50.0
	maxUses := 3

	base := func() Coupon {
		return Coupon{
			Code:       "SALE10",
			Type:       CouponPercentage,
			Value:      10,
			IsActive:   true,
			StartDate:  now.Add(-time.Hour),
			ExpiryDate: now.Add(time.Hour),
		}
	}

	t.Run("percentage", func(t *testing.T) {
		c := base()
		got, err := c.Discount(300, now)
		assert.NoError(t, err)
		assert.Equal(t, 30.0, got)
	})

	t.Run("percentage capped by max discount", func(t *testing.T) {
		c := base()
		c.MaxDiscount = &maxDiscount
		got, err := c.Discount(1000, now)
		assert.NoError(t, err)
		assert.Equal(t, 50.0, got)
	})

	t.Run("fixed never exceeds order value", func(t *testing.T) {
		c := base()
		c.Type = CouponFixed
		c.Value = 80
		got, err := c.Discount(60, now)
		assert.NoError(t, err)
		assert.Equal(t, 60.0, got)
	})

	t.Run("rejections", func(t *testing.T) {
		inactive := base()
		inactive.IsActive = false
		_, err := inactive.Discount(100, now)
		assert.ErrorIs(t, err, ErrCouponInactive)

		future := base()
		future.StartDate = now.Add(time.Hour)
		_, err = future.Discount(100, now)
		assert.ErrorIs(t, err, ErrCouponNotStarted)

		expired := base()
		expired.ExpiryDate = now
		_, err = expired.Discount(100, now)
		assert.ErrorIs(t, err, ErrCouponExpired)

		used := base()
		used.MaxUses = &maxUses
		used.UsedCount = 3
		_, err = used.Discount(100, now)
		assert.ErrorIs(t, err, ErrCouponExhausted)

		minimum := base()
		minimum.MinOrderValue = 500
		_, err = minimum.Discount(100, now)
		assert.ErrorIs(t, err, ErrOrderBelowMinimum)
	})
}
