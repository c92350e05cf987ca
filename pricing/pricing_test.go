package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePriceCatalogSizes(t *testing.T) {
	// Every catalog size without an override prices at its own CPM.
	for _, entry := range Sizes() {
		price := ComputePrice(entry.W, entry.H, nil)
		assert.Equalf(t, entry.CPM, price, "%dx%d", entry.W, entry.H)
	}
}

func TestComputePriceOverrideWins(t *testing.T) {
	override := 9.99
	assert.Equal(t, 9.99, ComputePrice(300, 250, &override))
	assert.Equal(t, 9.99, ComputePrice(999, 999, &override))

	zero := 0.0
	assert.Equal(t, 0.0, ComputePrice(300, 250, &zero))
}

func TestComputePriceFallbackIsFixed(t *testing.T) {
	// Unsupported sizes always price at the fixed default, independent of area.
	assert.Equal(t, DefaultCPM, ComputePrice(999, 999, nil))
	assert.Equal(t, DefaultCPM, ComputePrice(1, 1, nil))
	assert.Equal(t, DefaultCPM, ComputePrice(0, 0, nil))
}

func TestCoerceSize(t *testing.T) {
	w, h := CoerceSize(320, 50)
	assert.Equal(t, int64(320), w)
	assert.Equal(t, int64(50), h)

	w, h = CoerceSize(333, 222)
	assert.Equal(t, DefaultW, w)
	assert.Equal(t, DefaultH, h)
}

func TestComputePriceIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, 2.50, ComputePrice(300, 250, nil))
		assert.Equal(t, DefaultCPM, ComputePrice(999, 999, nil))
	}
}
