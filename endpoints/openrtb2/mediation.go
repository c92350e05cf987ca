package openrtb2

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/mocktioneer/mocktioneer-server/errortypes"
	"github.com/mocktioneer/mocktioneer-server/exchange"
	"github.com/mocktioneer/mocktioneer-server/metrics"
)

const mediationEndpoint = "/openrtb2/mediation"

// NewMediationEndpoint returns the handler for POST /openrtb2/mediation.
func NewMediationEndpoint(ex *exchange.Exchange, met *metrics.Engine) (httprouter.Handle, error) {
	if ex == nil || met == nil {
		return nil, fmt.Errorf("NewMediationEndpoint requires a non-nil exchange and metrics engine")
	}
	deps := &mediationDeps{ex: ex, metrics: met}
	return deps.Mediate, nil
}

type mediationDeps struct {
	ex      *exchange.Exchange
	metrics *metrics.Engine
}

func (deps *mediationDeps) Mediate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil {
		deps.metrics.RecordRequest(mediationEndpoint, "bad_input")
		writeInvalidRequest(w, []error{&errortypes.BadInput{Message: fmt.Sprintf("failed to read request body: %v", err)}})
		return
	}

	var req exchange.MediationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		deps.metrics.RecordRequest(mediationEndpoint, "bad_input")
		writeInvalidRequest(w, []error{&errortypes.BadInput{Message: fmt.Sprintf("failed to decode request body: %v", err)}})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		deps.metrics.RecordRequest(mediationEndpoint, "bad_input")
		writeInvalidRequest(w, errs)
		return
	}

	response := deps.ex.Mediate(&req)
	for _, seatBid := range response.SeatBid {
		for range seatBid.Bid {
			deps.metrics.RecordMediationWinner(seatBid.Seat)
		}
	}

	deps.metrics.RecordRequest(mediationEndpoint, "ok")
	writeResponse(w, response)
}
