// Package aps hosts the marketplace-dialect HTTP endpoint.
package aps

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/mocktioneer/mocktioneer-server/aps"
	"github.com/mocktioneer/mocktioneer-server/errortypes"
	"github.com/mocktioneer/mocktioneer-server/metrics"
)

const maxRequestSize = int64(1024 * 256)

const bidEndpoint = "/e/dtb/bid"

// NewBidEndpoint returns the handler for POST /e/dtb/bid. The host is baked
// into every response so client SDKs fetch follow-up assets from this server.
func NewBidEndpoint(host string, met *metrics.Engine) (httprouter.Handle, error) {
	if host == "" || met == nil {
		return nil, fmt.Errorf("NewBidEndpoint requires a host and a metrics engine")
	}
	deps := &bidDeps{host: host, metrics: met}
	return deps.Bid, nil
}

type bidDeps struct {
	host    string
	metrics *metrics.Engine
}

func (deps *bidDeps) Bid(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil {
		deps.reject(w, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	var req aps.BidRequest
	if err := json.Unmarshal(body, &req); err != nil {
		deps.reject(w, fmt.Sprintf("failed to decode request body: %v", err))
		return
	}
	if req.PubID == "" {
		deps.reject(w, "pubId is required")
		return
	}

	response := aps.BuildBidResponse(&req, deps.host)

	deps.metrics.RecordRequest(bidEndpoint, "ok")
	deps.metrics.RecordBids("aps", len(response.Contextual.Slots))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		glog.Errorf("failed to write marketplace response: %v", err)
	}
}

func (deps *bidDeps) reject(w http.ResponseWriter, message string) {
	deps.metrics.RecordRequest(bidEndpoint, "bad_input")
	err := &errortypes.BadInput{Message: message}
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Invalid request: %s\n", err.Error())
}
