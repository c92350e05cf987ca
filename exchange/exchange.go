// Package exchange builds deterministic OpenRTB bid responses and mediates
// between already-priced bidder responses. All operations are pure
// transformations of their inputs: no clocks, no randomness, no I/O.
package exchange

import (
	"encoding/json"
	"fmt"

	"github.com/golang/glog"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/mocktioneer/mocktioneer-server/creative"
	"github.com/mocktioneer/mocktioneer-server/errortypes"
	"github.com/mocktioneer/mocktioneer-server/openrtb_ext"
	"github.com/mocktioneer/mocktioneer-server/pricing"
	"github.com/mocktioneer/mocktioneer-server/util/idutil"
)

const (
	// SeatName is the seat all simulator bids are returned under.
	SeatName = "mocktioneer"

	defaultCurrency  = "USD"
	defaultImpID     = "1"
	defaultRequestID = "req"
)

var defaultADomain = []string{"example.com"}

// Exchange builds bid responses. Creative markup comes from the renderer
// collaborator; the exchange never synthesizes markup itself.
type Exchange struct {
	renderer creative.Renderer
}

func NewExchange(renderer creative.Renderer) *Exchange {
	return &Exchange{renderer: renderer}
}

// BuildBidResponse returns a response with exactly one banner bid per
// impression. A request with zero impressions yields a response with zero
// bids, not an error. Malformed impression extensions are reported as
// warnings and the override they carried is ignored. The verified flag marks
// markup from requests whose signature checked out.
//
// Impressions resolving to a size outside the catalog get their emitted
// geometry coerced to the default rectangle while the price still follows the
// fixed fallback. The divergence is deliberate: coercion affects only the
// advertised geometry, never which pricing branch fires.
func (e *Exchange) BuildBidResponse(req *openrtb2.BidRequest, verified bool) (*openrtb2.BidResponse, []error) {
	var errs []error

	bids := make([]openrtb2.Bid, 0, len(req.Imp))
	for _, imp := range req.Imp {
		impID := imp.ID
		if impID == "" {
			impID = defaultImpID
		}

		var override *float64
		impExt, err := openrtb_ext.ParseImpExt(imp.Ext)
		if err != nil {
			errs = append(errs, err)
		} else if impExt != nil {
			override = impExt.Bid
		}

		w, h := resolveImpSize(&imp)
		price := pricing.ComputePrice(w, h, override)
		bidW, bidH := pricing.CoerceSize(w, h)

		crid := SeatName + "-" + impID
		bid := openrtb2.Bid{
			ID:      idutil.DeterministicID(requestID(req), impID),
			ImpID:   impID,
			Price:   price,
			AdM:     e.renderer.Iframe(crid, bidW, bidH, override, verified),
			CrID:    crid,
			W:       bidW,
			H:       bidH,
			MType:   openrtb2.MarkupBanner,
			ADomain: defaultADomain,
		}
		if override != nil {
			bid.Ext = json.RawMessage(fmt.Sprintf(`{"mocktioneer":{"bid":%v}}`, *override))
		}
		bids = append(bids, bid)
	}

	glog.V(2).Infof("auction %s: built %d bid(s) for %d impression(s)", requestID(req), len(bids), len(req.Imp))

	return &openrtb2.BidResponse{
		ID:  requestID(req),
		Cur: defaultCurrency,
		SeatBid: []openrtb2.SeatBid{{
			Seat: SeatName,
			Bid:  bids,
		}},
	}, errs
}

// resolveImpSize picks the requested geometry: explicit banner.w/h first,
// then the first format entry, then the default rectangle.
func resolveImpSize(imp *openrtb2.Imp) (int64, int64) {
	if imp.Banner != nil {
		if imp.Banner.W != nil && imp.Banner.H != nil {
			return *imp.Banner.W, *imp.Banner.H
		}
		if len(imp.Banner.Format) > 0 {
			return imp.Banner.Format[0].W, imp.Banner.Format[0].H
		}
	}
	return pricing.DefaultW, pricing.DefaultH
}

func requestID(req *openrtb2.BidRequest) string {
	if req.ID == "" {
		return defaultRequestID
	}
	return req.ID
}

// ValidateRequest enforces the request-boundary rules the builders rely on,
// most importantly that a negative price override never reaches the pricing
// engine.
func ValidateRequest(req *openrtb2.BidRequest) []error {
	var errs []error
	for i, imp := range req.Imp {
		impExt, err := openrtb_ext.ParseImpExt(imp.Ext)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if impExt != nil && impExt.Bid != nil && *impExt.Bid < 0 {
			errs = append(errs, &errortypes.InvalidOverride{
				Message: fmt.Sprintf("imp[%d].ext.mocktioneer.bid must not be negative: %v", i, *impExt.Bid),
			})
		}
	}
	return errs
}
