package aps

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/mocktioneer/mocktioneer-server/pricing"
	"github.com/mocktioneer/mocktioneer-server/util/idutil"
)

const (
	statusOK          = "ok"
	mediaTypeDisplay  = "d"
	fillIndicatorFill = "1"
	auctionTypeOpen   = "OPEN"
	csmScriptPath     = "bao-csm/direct/csm_othersv6.js"
	callbackVersion   = "6"
)

var targetingKeys = []string{"amzniid", "amznp", "amznsz", "amznbid", "amznactt"}
var metaFields = []string{"slotID", "mediaType", "size"}

// BuildBidResponse fills every slot that lists at least one catalog size and
// skips the rest. This skip-on-no-match policy is intentionally different from
// the OpenRTB dialect, which coerces unsupported sizes to the default
// rectangle; the two policies must never be unified.
func BuildBidResponse(req *BidRequest, host string) *BidResponse {
	slots := make([]SlotResponse, 0, len(req.Slots))

	for _, slot := range req.Slots {
		w, h, cpm, ok := bestSupportedSize(slot.Sizes)
		if !ok {
			glog.V(2).Infof("aps: skipping slot %q, no catalog sizes in %v", slot.SlotID, slot.Sizes)
			continue
		}

		sizeStr := fmt.Sprintf("%dx%d", w, h)
		encodedPrice := EncodePrice(cpm)

		slots = append(slots, SlotResponse{
			SlotID:    slot.SlotID,
			Size:      sizeStr,
			CrID:      idutil.DeterministicID(req.PubID, slot.SlotID, "crid") + "-mocktioneer",
			MediaType: mediaTypeDisplay,
			FIF:       fillIndicatorFill,
			Targeting: targetingKeys,
			Meta:      metaFields,
			AmznIID:   idutil.DeterministicID(req.PubID, slot.SlotID, "iid"),
			AmznBid:   encodedPrice,
			AmznP:     encodedPrice,
			AmznSz:    sizeStr,
			AmznActt:  auctionTypeOpen,
		})

		glog.V(2).Infof("aps: bid for slot %q (%s) at %.2f", slot.SlotID, sizeStr, cpm)
	}

	return &BidResponse{
		Contextual: Contextual{
			Slots:  slots,
			Host:   "https://" + host,
			Status: statusOK,
			CFE:    true,
			EV:     true,
			CFN:    csmScriptPath,
			CB:     callbackVersion,
		},
	}
}

// bestSupportedSize returns the catalog candidate with the highest base CPM.
// The comparison is strict, so a CPM tie keeps the earliest candidate in the
// slot's declaration order.
func bestSupportedSize(sizes [][2]int64) (w, h int64, cpm float64, ok bool) {
	for _, size := range sizes {
		candidateCPM, supported := pricing.Lookup(size[0], size[1])
		if !supported {
			continue
		}
		if !ok || candidateCPM > cpm {
			w, h, cpm, ok = size[0], size[1], candidateCPM, true
		}
	}
	return
}
