// Package pricing holds the size catalog and the deterministic pricing engine
// backing every bid the simulator emits. The catalog is the single source of
// truth for supported creative geometries and is an externally observable
// contract: changing an entry changes the price every consumer sees.
package pricing

import "sort"

// SizeEntry is one supported creative geometry and its base CPM.
type SizeEntry struct {
	W   int64   `json:"w"`
	H   int64   `json:"h"`
	CPM float64 `json:"cpm"`
}

// sizeCatalog lists every supported size. Entries are unique by (W, H) and
// prices are in USD CPM. Built once, never mutated, safe for concurrent reads.
var sizeCatalog = []SizeEntry{
	// Desktop & general display sizes
	{W: 300, H: 250, CPM: 2.50}, // medium rectangle
	{W: 336, H: 280, CPM: 2.60}, // large rectangle
	{W: 728, H: 90, CPM: 3.00},  // leaderboard
	{W: 970, H: 90, CPM: 3.80},  // large leaderboard
	{W: 160, H: 600, CPM: 3.20}, // wide skyscraper
	{W: 300, H: 600, CPM: 3.50}, // half page
	{W: 970, H: 250, CPM: 4.20}, // billboard
	{W: 468, H: 60, CPM: 2.00},  // banner

	// Mobile-specific sizes
	{W: 320, H: 50, CPM: 1.80},  // mobile leaderboard
	{W: 300, H: 50, CPM: 1.70},  // mobile banner
	{W: 320, H: 100, CPM: 2.20}, // large mobile banner
	{W: 320, H: 480, CPM: 2.80}, // mobile interstitial portrait
	{W: 480, H: 320, CPM: 2.80}, // mobile interstitial landscape
}

type sizeKey struct {
	w int64
	h int64
}

var cpmBySize = buildSizeIndex()

func buildSizeIndex() map[sizeKey]float64 {
	index := make(map[sizeKey]float64, len(sizeCatalog))
	for _, entry := range sizeCatalog {
		index[sizeKey{entry.W, entry.H}] = entry.CPM
	}
	return index
}

// Lookup returns the base CPM for a size. Exact match only: there is no
// interpolation or scaling for near-miss geometries.
func Lookup(w, h int64) (float64, bool) {
	cpm, ok := cpmBySize[sizeKey{w, h}]
	return cpm, ok
}

// IsSupported reports whether the size is present in the catalog.
func IsSupported(w, h int64) bool {
	_, ok := Lookup(w, h)
	return ok
}

// Sizes returns the catalog as a sorted copy. Callers may modify the returned
// slice freely.
func Sizes() []SizeEntry {
	sizes := make([]SizeEntry, len(sizeCatalog))
	copy(sizes, sizeCatalog)
	sort.Slice(sizes, func(i, j int) bool {
		if sizes[i].W != sizes[j].W {
			return sizes[i].W < sizes[j].W
		}
		return sizes[i].H < sizes[j].H
	})
	return sizes
}
