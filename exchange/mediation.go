package exchange

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/mocktioneer/mocktioneer-server/errortypes"
	"github.com/mocktioneer/mocktioneer-server/util/idutil"
)

// MediationRequest carries the impressions under auction plus the
// already-priced responses from every participating bidder.
type MediationRequest struct {
	ID  string         `json:"id"`
	Imp []openrtb2.Imp `json:"imp"`
	Ext MediationExt   `json:"ext"`
}

type MediationExt struct {
	// BidderResponses in submission order. Order matters: price ties are
	// broken by the earliest-submitted bidder.
	BidderResponses []BidderResponse `json:"bidder_responses"`

	Config *MediationConfig `json:"config,omitempty"`
}

// BidderResponse is the set of bids one bidder submitted.
type BidderResponse struct {
	Bidder string         `json:"bidder"`
	Bids   []MediationBid `json:"bids"`
}

// MediationBid is a single already-priced bid from a bidder.
type MediationBid struct {
	ImpID   string   `json:"imp_id"`
	Price   float64  `json:"price"`
	AdM     string   `json:"adm,omitempty"`
	W       int64    `json:"w"`
	H       int64    `json:"h"`
	CrID    string   `json:"crid,omitempty"`
	ADomain []string `json:"adomain,omitempty"`
}

type MediationConfig struct {
	// PriceFloor is the inclusive minimum price a bid must meet to win.
	PriceFloor *float64 `json:"price_floor,omitempty"`
}

// Validate enforces the request-boundary rules for mediation. The engine
// itself never rejects: partial or empty results are normal outcomes.
func (r *MediationRequest) Validate() []error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, &errortypes.BadInput{Message: "request.id is required"})
	}
	if len(r.Imp) == 0 {
		errs = append(errs, &errortypes.BadInput{Message: "request.imp must contain at least one impression"})
	}
	if len(r.Ext.BidderResponses) == 0 {
		errs = append(errs, &errortypes.BadInput{Message: "request.ext.bidder_responses must contain at least one response"})
	}
	for i, response := range r.Ext.BidderResponses {
		if response.Bidder == "" {
			errs = append(errs, &errortypes.BadInput{Message: fmt.Sprintf("bidder_responses[%d].bidder is required", i)})
		}
		for j, bid := range response.Bids {
			if bid.ImpID == "" {
				errs = append(errs, &errortypes.BadInput{Message: fmt.Sprintf("bidder_responses[%d].bids[%d].imp_id is required", i, j)})
			}
			if bid.Price < 0 {
				errs = append(errs, &errortypes.BadInput{Message: fmt.Sprintf("bidder_responses[%d].bids[%d].price must not be negative", i, j)})
			}
			if bid.W < 1 || bid.H < 1 {
				errs = append(errs, &errortypes.BadInput{Message: fmt.Sprintf("bidder_responses[%d].bids[%d] has invalid dimensions %dx%d", i, j, bid.W, bid.H)})
			}
		}
	}
	if r.Ext.Config != nil && r.Ext.Config.PriceFloor != nil && *r.Ext.Config.PriceFloor < 0 {
		errs = append(errs, &errortypes.BadInput{Message: "ext.config.price_floor must not be negative"})
	}
	return errs
}

// Mediate selects at most one winner per impression: highest price above the
// optional inclusive floor, ties to the earliest-submitted bidder. Winners are
// grouped by seat with impressions kept in request order and seats ordered by
// first win, so identical input produces byte-identical output. Impressions
// with no qualifying bid are simply absent from the result.
func (e *Exchange) Mediate(req *MediationRequest) *openrtb2.BidResponse {
	glog.V(2).Infof("mediation %s: %d impression(s), %d bidder response(s)",
		req.ID, len(req.Imp), len(req.Ext.BidderResponses))

	var floor *float64
	if req.Ext.Config != nil {
		floor = req.Ext.Config.PriceFloor
	}

	auc := newAuction(len(req.Imp))
	for _, response := range req.Ext.BidderResponses {
		for _, bid := range response.Bids {
			auc.addBid(response.Bidder, bid, floor)
		}
	}

	var seatOrder []string
	bidsBySeat := make(map[string][]openrtb2.Bid)
	decided := make(map[string]struct{}, len(req.Imp))

	for _, imp := range req.Imp {
		if _, done := decided[imp.ID]; done {
			continue
		}
		decided[imp.ID] = struct{}{}

		win, ok := auc.winner(imp.ID)
		if !ok {
			glog.V(2).Infof("mediation %s: no qualifying bid for impression %q", req.ID, imp.ID)
			continue
		}

		adm := win.bid.AdM
		if adm == "" {
			// Bids from targeting-only marketplaces carry no markup; ask the
			// rendering collaborator for some.
			crid := win.bid.CrID
			if crid == "" {
				crid = imp.ID
			}
			price := win.bid.Price
			adm = e.renderer.Iframe(crid, win.bid.W, win.bid.H, &price, false)
		}

		if _, seen := bidsBySeat[win.seat]; !seen {
			seatOrder = append(seatOrder, win.seat)
		}
		bidsBySeat[win.seat] = append(bidsBySeat[win.seat], openrtb2.Bid{
			ID:      idutil.DeterministicID(req.ID, imp.ID, win.seat),
			ImpID:   imp.ID,
			Price:   win.bid.Price,
			AdM:     adm,
			CrID:    win.bid.CrID,
			W:       win.bid.W,
			H:       win.bid.H,
			MType:   openrtb2.MarkupBanner,
			ADomain: win.bid.ADomain,
		})

		glog.V(2).Infof("mediation %s: %q wins impression %q at %.2f", req.ID, win.seat, imp.ID, win.bid.Price)
	}

	seatBids := make([]openrtb2.SeatBid, 0, len(seatOrder))
	for _, seat := range seatOrder {
		seatBids = append(seatBids, openrtb2.SeatBid{
			Seat: seat,
			Bid:  bidsBySeat[seat],
		})
	}

	return &openrtb2.BidResponse{
		ID:      req.ID,
		Cur:     defaultCurrency,
		SeatBid: seatBids,
	}
}
