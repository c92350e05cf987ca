// Package openrtb2 hosts the OpenRTB-dialect HTTP endpoints: the auction
// builder and the mediation engine.
package openrtb2

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"
	"github.com/prebid/openrtb/v20/openrtb2"

	"github.com/mocktioneer/mocktioneer-server/errortypes"
	"github.com/mocktioneer/mocktioneer-server/exchange"
	"github.com/mocktioneer/mocktioneer-server/metrics"
	"github.com/mocktioneer/mocktioneer-server/verification"
)

// Requests past this size are rejected outright. Simulator traffic is small;
// anything bigger is a misconfigured client.
const maxRequestSize = int64(1024 * 256)

const auctionEndpoint = "/openrtb2/auction"

// NewAuctionEndpoint returns the handler for POST /openrtb2/auction. The
// verifier may be nil, which disables the signature check entirely.
func NewAuctionEndpoint(ex *exchange.Exchange, verifier *verification.Verifier, met *metrics.Engine) (httprouter.Handle, error) {
	if ex == nil || met == nil {
		return nil, fmt.Errorf("NewAuctionEndpoint requires a non-nil exchange and metrics engine")
	}
	deps := &auctionDeps{ex: ex, verifier: verifier, metrics: met}
	return deps.Auction, nil
}

type auctionDeps struct {
	ex       *exchange.Exchange
	verifier *verification.Verifier
	metrics  *metrics.Engine
}

func (deps *auctionDeps) Auction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, errs := parseRequest(r)
	if fatal := errortypes.FatalOnly(errs); len(fatal) > 0 {
		deps.metrics.RecordRequest(auctionEndpoint, "bad_input")
		writeInvalidRequest(w, fatal)
		return
	}

	verified := false
	if deps.verifier != nil {
		result := deps.verifier.VerifyRequest(req)
		deps.metrics.RecordSignatureCheck(result.Status.String())
		switch result.Status {
		case verification.StatusVerified:
			verified = true
		case verification.StatusFailed:
			// Advisory only. The request is processed regardless.
			glog.Warningf("request %q failed signature verification (kid %q): %s", req.ID, result.KID, result.Reason)
		}
	}

	response, errs := deps.ex.BuildBidResponse(req, verified)
	for _, err := range errortypes.WarningOnly(errs) {
		glog.Warningf("auction %q: %v", response.ID, err)
	}

	deps.metrics.RecordRequest(auctionEndpoint, "ok")
	if len(response.SeatBid) > 0 {
		deps.metrics.RecordBids("openrtb", len(response.SeatBid[0].Bid))
	}
	writeResponse(w, response)
}

func parseRequest(r *http.Request) (*openrtb2.BidRequest, []error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil {
		return nil, []error{&errortypes.BadInput{Message: fmt.Sprintf("failed to read request body: %v", err)}}
	}

	var req openrtb2.BidRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, []error{&errortypes.BadInput{Message: fmt.Sprintf("failed to decode request body: %v", err)}}
	}

	return &req, exchange.ValidateRequest(&req)
}

func writeResponse(w http.ResponseWriter, response *openrtb2.BidResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		glog.Errorf("failed to write bid response: %v", err)
	}
}

func writeInvalidRequest(w http.ResponseWriter, errs []error) {
	w.WriteHeader(http.StatusBadRequest)
	for _, err := range errs {
		fmt.Fprintf(w, "Invalid request: %s\n", err.Error())
	}
}
