package cart

import (
	"testing"
	"time"

	"morishcart/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_OrderInvariant(t *testing.T) {
	a := []model.CartItem{
		{ProductID: "P001", Quantity: 2},
		{ProductID: "P002", Quantity: 1},
		{ProductID: "P010", Quantity: 5},
	}
	b := []model.CartItem{
		{ProductID: "P010", Quantity: 5},
		{ProductID: "P001", Quantity: 2},
		{ProductID: "P002", Quantity: 1},
	}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_DistinguishesQuantities(t *testing.T) {
	a := []model.CartItem{{ProductID: "P001", Quantity: 2}}
	b := []model.CartItem{{ProductID: "P001", Quantity: 3}}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_DistinguishesProducts(t *testing.T) {
	a := []model.CartItem{{ProductID: "P001", Quantity: 1}}
	b := []model.CartItem{{ProductID: "P002", Quantity: 1}}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_Deterministic(t *testing.T) {
	items := []model.CartItem{
		{ProductID: "P001", Quantity: 2},
		{ProductID: "P002", Quantity: 1},
	}

	assert.Equal(t, Fingerprint(items), Fingerprint(items))
	assert.Len(t, Fingerprint(items), 64)
}

func TestDedupBucket(t *testing.T) {
	window := 60 * time.Second
	base := time.Unix(1_700_000_040, 0)

	// Same bucket within the window boundary.
	assert.Equal(t, DedupBucket(base, window), DedupBucket(base.Add(10*time.Second), window))

	// A later minute lands in a different bucket.
	assert.NotEqual(t, DedupBucket(base, window), DedupBucket(base.Add(2*time.Minute), window))
}
