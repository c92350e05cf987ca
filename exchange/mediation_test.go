package exchange

import (
	"encoding/json"
	"testing"

	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mediationImp(id string) openrtb2.Imp {
	return openrtb2.Imp{ID: id}
}

func simpleBid(impID string, price float64, adm string) MediationBid {
	return MediationBid{ImpID: impID, Price: price, AdM: adm, W: 300, H: 250}
}

func TestMediateSingleBidder(t *testing.T) {
	e := newTestExchange()

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-1",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{{
				Bidder: "bidder-a",
				Bids:   []MediationBid{simpleBid("imp1", 2.50, "<div>Ad A</div>")},
			}},
		},
	})

	assert.Equal(t, "auction-1", resp.ID)
	assert.Equal(t, "USD", resp.Cur)
	require.Len(t, resp.SeatBid, 1)
	assert.Equal(t, "bidder-a", resp.SeatBid[0].Seat)
	require.Len(t, resp.SeatBid[0].Bid, 1)

	bid := resp.SeatBid[0].Bid[0]
	assert.Equal(t, "imp1", bid.ImpID)
	assert.Equal(t, 2.50, bid.Price)
	assert.Equal(t, "<div>Ad A</div>", bid.AdM)
}

func TestMediateHighestPriceWins(t *testing.T) {
	e := newTestExchange()

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-2",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{simpleBid("imp1", 2.00, "<div>A</div>")}},
				{Bidder: "bidder-b", Bids: []MediationBid{simpleBid("imp1", 2.50, "<div>B</div>")}},
			},
		},
	})

	require.Len(t, resp.SeatBid, 1)
	assert.Equal(t, "bidder-b", resp.SeatBid[0].Seat)
	assert.Equal(t, 2.50, resp.SeatBid[0].Bid[0].Price)
}

func TestMediatePriceTieFirstBidderWins(t *testing.T) {
	e := newTestExchange()

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-3",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{simpleBid("imp1", 2.50, "<div>A</div>")}},
				{Bidder: "bidder-b", Bids: []MediationBid{simpleBid("imp1", 2.50, "<div>B</div>")}},
			},
		},
	})

	require.Len(t, resp.SeatBid, 1)
	assert.Equal(t, "bidder-a", resp.SeatBid[0].Seat)
}

func TestMediatePriceFloor(t *testing.T) {
	e := newTestExchange()
	floor := 1.50

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-4",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{simpleBid("imp1", 1.00, "<div>A</div>")}},
				{Bidder: "bidder-b", Bids: []MediationBid{simpleBid("imp1", 2.00, "<div>B</div>")}},
			},
			Config: &MediationConfig{PriceFloor: &floor},
		},
	})

	require.Len(t, resp.SeatBid, 1)
	assert.Equal(t, "bidder-b", resp.SeatBid[0].Seat)
}

func TestMediateFloorIsInclusive(t *testing.T) {
	e := newTestExchange()
	floor := 2.00

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-5",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{simpleBid("imp1", 2.00, "<div>A</div>")}},
			},
			Config: &MediationConfig{PriceFloor: &floor},
		},
	})

	// A bid exactly at the floor qualifies.
	require.Len(t, resp.SeatBid, 1)
	assert.Equal(t, 2.00, resp.SeatBid[0].Bid[0].Price)
}

func TestMediateAllBidsBelowFloor(t *testing.T) {
	e := newTestExchange()
	floor := 1.50

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-6",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{simpleBid("imp1", 1.00, "<div>A</div>")}},
			},
			Config: &MediationConfig{PriceFloor: &floor},
		},
	})

	// No winner for imp1; not an error.
	assert.Empty(t, resp.SeatBid)
}

func TestMediateMultipleImpressions(t *testing.T) {
	e := newTestExchange()

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-7",
		Imp: []openrtb2.Imp{mediationImp("imp1"), mediationImp("imp2")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{
					simpleBid("imp1", 2.50, "<div>A1</div>"),
					simpleBid("imp2", 3.00, "<div>A2</div>"),
				}},
				{Bidder: "bidder-b", Bids: []MediationBid{
					simpleBid("imp1", 3.50, "<div>B1</div>"),
					simpleBid("imp2", 2.00, "<div>B2</div>"),
				}},
			},
		},
	})

	require.Len(t, resp.SeatBid, 2)

	// Seats are ordered by first win, walking impressions in request order:
	// bidder-b wins imp1, bidder-a wins imp2.
	assert.Equal(t, "bidder-b", resp.SeatBid[0].Seat)
	require.Len(t, resp.SeatBid[0].Bid, 1)
	assert.Equal(t, "imp1", resp.SeatBid[0].Bid[0].ImpID)
	assert.Equal(t, 3.50, resp.SeatBid[0].Bid[0].Price)

	assert.Equal(t, "bidder-a", resp.SeatBid[1].Seat)
	require.Len(t, resp.SeatBid[1].Bid, 1)
	assert.Equal(t, "imp2", resp.SeatBid[1].Bid[0].ImpID)
	assert.Equal(t, 3.00, resp.SeatBid[1].Bid[0].Price)
}

func TestMediateNoBidderResponses(t *testing.T) {
	e := newTestExchange()

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-8",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
	})
	assert.Empty(t, resp.SeatBid)
}

func TestMediateMissingAdmRendersCreative(t *testing.T) {
	e := newTestExchange()

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-9",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{{
				Bidder: "amazon-aps",
				Bids: []MediationBid{{
					ImpID: "imp1",
					Price: 3.00,
					W:     300,
					H:     250,
					CrID:  "aps-creative-123",
				}},
			}},
		},
	})

	require.Len(t, resp.SeatBid, 1)
	bid := resp.SeatBid[0].Bid[0]
	assert.Contains(t, bid.AdM, "<iframe")
	assert.Contains(t, bid.AdM, "//host.test/static/creatives/300x250.html")
	assert.Contains(t, bid.AdM, "aps-creative-123")
	assert.Contains(t, bid.AdM, "bid=3.00")
}

func TestMediateDuplicateImpressionEntries(t *testing.T) {
	e := newTestExchange()

	resp := e.Mediate(&MediationRequest{
		ID:  "auction-10",
		Imp: []openrtb2.Imp{mediationImp("imp1"), mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{simpleBid("imp1", 2.50, "<div>A</div>")}},
			},
		},
	})

	// At most one winner per impression id even if the imp list repeats it.
	require.Len(t, resp.SeatBid, 1)
	assert.Len(t, resp.SeatBid[0].Bid, 1)
}

func TestMediateIsIdempotent(t *testing.T) {
	e := newTestExchange()
	floor := 1.00

	req := &MediationRequest{
		ID:  "auction-11",
		Imp: []openrtb2.Imp{mediationImp("imp1"), mediationImp("imp2"), mediationImp("imp3")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{
					simpleBid("imp1", 2.50, "<div>A1</div>"),
					simpleBid("imp2", 3.00, ""),
				}},
				{Bidder: "bidder-b", Bids: []MediationBid{
					simpleBid("imp1", 2.50, "<div>B1</div>"),
					simpleBid("imp3", 0.50, "<div>B3</div>"),
				}},
			},
			Config: &MediationConfig{PriceFloor: &floor},
		},
	}

	firstJSON, err := json.Marshal(e.Mediate(req))
	require.NoError(t, err)
	secondJSON, err := json.Marshal(e.Mediate(req))
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestMediationRequestValidate(t *testing.T) {
	floor := 1.0
	valid := MediationRequest{
		ID:  "auction",
		Imp: []openrtb2.Imp{mediationImp("imp1")},
		Ext: MediationExt{
			BidderResponses: []BidderResponse{
				{Bidder: "bidder-a", Bids: []MediationBid{simpleBid("imp1", 2.50, "<div>A</div>")}},
			},
			Config: &MediationConfig{PriceFloor: &floor},
		},
	}
	assert.Empty(t, valid.Validate())

	testCases := []struct {
		description string
		mutate      func(r *MediationRequest)
	}{
		{"empty id", func(r *MediationRequest) { r.ID = "" }},
		{"no impressions", func(r *MediationRequest) { r.Imp = nil }},
		{"no bidder responses", func(r *MediationRequest) { r.Ext.BidderResponses = nil }},
		{"empty bidder name", func(r *MediationRequest) { r.Ext.BidderResponses[0].Bidder = "" }},
		{"empty imp id", func(r *MediationRequest) { r.Ext.BidderResponses[0].Bids[0].ImpID = "" }},
		{"negative price", func(r *MediationRequest) { r.Ext.BidderResponses[0].Bids[0].Price = -1 }},
		{"zero width", func(r *MediationRequest) { r.Ext.BidderResponses[0].Bids[0].W = 0 }},
		{"negative floor", func(r *MediationRequest) { *r.Ext.Config.PriceFloor = -1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			req := valid
			req.Imp = append([]openrtb2.Imp{}, valid.Imp...)
			responses := make([]BidderResponse, len(valid.Ext.BidderResponses))
			copy(responses, valid.Ext.BidderResponses)
			for i := range responses {
				responses[i].Bids = append([]MediationBid{}, responses[i].Bids...)
			}
			floorCopy := floor
			req.Ext = MediationExt{BidderResponses: responses, Config: &MediationConfig{PriceFloor: &floorCopy}}

			tc.mutate(&req)
			assert.NotEmpty(t, req.Validate())
		})
	}
}
