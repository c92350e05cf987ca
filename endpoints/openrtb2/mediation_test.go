package openrtb2

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	openrtb "github.com/prebid/openrtb/v20/openrtb2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocktioneer/mocktioneer-server/creative"
	"github.com/mocktioneer/mocktioneer-server/exchange"
	"github.com/mocktioneer/mocktioneer-server/metrics"
)

func newTestMediationEndpoint(t *testing.T) (httprouter.Handle, *metrics.Engine) {
	met := metrics.NewEngine()
	ex := exchange.NewExchange(creative.NewHostRenderer("mock.test"))
	endpoint, err := NewMediationEndpoint(ex, met)
	require.NoError(t, err)
	return endpoint, met
}

func doMediation(t *testing.T, endpoint httprouter.Handle, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/openrtb2/mediation", strings.NewReader(body))
	endpoint(recorder, request, nil)
	return recorder
}

func TestMediationHappyPath(t *testing.T) {
	endpoint, met := newTestMediationEndpoint(t)

	recorder := doMediation(t, endpoint, `{
		"id": "med-1",
		"imp": [{"id": "imp-1"}],
		"ext": {"bidder_responses": [
			{"bidder": "bidder-a", "bids": [{"imp_id": "imp-1", "price": 2.0, "adm": "<div>a</div>", "w": 300, "h": 250}]},
			{"bidder": "bidder-b", "bids": [{"imp_id": "imp-1", "price": 3.5, "adm": "<div>b</div>", "w": 300, "h": 250}]}
		]}
	}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	var response openrtb.BidResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.SeatBid, 1)
	assert.Equal(t, "bidder-b", response.SeatBid[0].Seat)
	require.Len(t, response.SeatBid[0].Bid, 1)
	assert.Equal(t, 3.5, response.SeatBid[0].Bid[0].Price)

	totals, err := met.Gather()
	require.NoError(t, err)
	assert.Equal(t, 1.0, totals["mocktioneer_mediation_winners_total"])
}

func TestMediationMalformedBody(t *testing.T) {
	endpoint, _ := newTestMediationEndpoint(t)
	recorder := doMediation(t, endpoint, `{{`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestMediationValidationFailure(t *testing.T) {
	endpoint, _ := newTestMediationEndpoint(t)

	// No impressions and no bidder responses.
	recorder := doMediation(t, endpoint, `{"id": "med-1"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "request.imp")
	assert.Contains(t, recorder.Body.String(), "bidder_responses")
}

func TestMediationAllBelowFloor(t *testing.T) {
	endpoint, _ := newTestMediationEndpoint(t)

	recorder := doMediation(t, endpoint, `{
		"id": "med-1",
		"imp": [{"id": "imp-1"}],
		"ext": {
			"bidder_responses": [{"bidder": "bidder-a", "bids": [{"imp_id": "imp-1", "price": 0.5, "adm": "x", "w": 300, "h": 250}]}],
			"config": {"price_floor": 1.0}
		}
	}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	var response openrtb.BidResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Empty(t, response.SeatBid)
}
