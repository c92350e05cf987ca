// Package aps implements the marketplace bid dialect modeled on the
// Transparent Ad Marketplace /e/dtb/bid exchange: named slots with candidate
// geometries in, targeting key/value payloads out.
package aps

// BidRequest is the marketplace-style request: a publisher plus named slots.
type BidRequest struct {
	PubID     string `json:"pubId"`
	Slots     []Slot `json:"slots"`
	PageURL   string `json:"pageUrl,omitempty"`
	UserAgent string `json:"ua,omitempty"`
	Timeout   int64  `json:"timeout,omitempty"`
}

// Slot is one ad slot with its ordered candidate geometries.
type Slot struct {
	SlotID   string     `json:"slotID"`
	Sizes    [][2]int64 `json:"sizes"`
	SlotName string     `json:"slotName,omitempty"`
}

// BidResponse is the marketplace envelope. Only slots that produced a bid
// appear in Contextual.Slots.
type BidResponse struct {
	Contextual Contextual `json:"contextual"`
}

type Contextual struct {
	Slots  []SlotResponse `json:"slots"`
	Host   string         `json:"host,omitempty"`
	Status string         `json:"status,omitempty"`
	CFE    bool           `json:"cfe,omitempty"`
	EV     bool           `json:"ev,omitempty"`
	CFN    string         `json:"cfn,omitempty"`
	CB     string         `json:"cb,omitempty"`
}

// SlotResponse carries the bid for one slot. Targeting key/value pairs are
// flat fields on the slot object, with their names repeated in Targeting so
// clients know which keys to forward to the ad server.
type SlotResponse struct {
	SlotID    string   `json:"slotID"`
	Size      string   `json:"size"`
	CrID      string   `json:"crid,omitempty"`
	MediaType string   `json:"mediaType,omitempty"`
	FIF       string   `json:"fif,omitempty"`
	Targeting []string `json:"targeting"`
	Meta      []string `json:"meta"`

	// Targeting key/value pairs.
	AmznIID  string `json:"amzniid,omitempty"`
	AmznBid  string `json:"amznbid,omitempty"`
	AmznP    string `json:"amznp,omitempty"`
	AmznSz   string `json:"amznsz,omitempty"`
	AmznActt string `json:"amznactt,omitempty"`
}
