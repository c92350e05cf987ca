package pricing

const (
	// DefaultCPM is the fixed fallback price for sizes not in the catalog.
	DefaultCPM = 1.50

	// DefaultW and DefaultH are the most common rectangle in the catalog,
	// used when a request resolves to an unsupported geometry.
	DefaultW int64 = 300
	DefaultH int64 = 250
)

// ComputePrice returns the deterministic price for a resolved size.
//
// An override always wins over a catalog lookup. Callers validate overrides at
// the request boundary; a negative override must never reach this function.
// Sizes missing from the catalog price at the fixed DefaultCPM regardless of
// any geometry coercion the caller applies to the emitted bid.
func ComputePrice(w, h int64, override *float64) float64 {
	if override != nil {
		return *override
	}
	if cpm, ok := Lookup(w, h); ok {
		return cpm
	}
	return DefaultCPM
}

// CoerceSize snaps unsupported geometries to the default rectangle so creative
// markup always references a renderable size. It deliberately does not change
// which pricing branch ComputePrice takes.
func CoerceSize(w, h int64) (int64, int64) {
	if IsSupported(w, h) {
		return w, h
	}
	return DefaultW, DefaultH
}
