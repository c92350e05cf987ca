// Package endpoints holds the small informational and static-asset handlers.
package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/mocktioneer/mocktioneer-server/pricing"
)

// NewSizesEndpoint returns the handler for GET /info/sizes. The catalog is
// immutable, so the response body is marshalled exactly once at startup.
func NewSizesEndpoint() httprouter.Handle {
	type sizesResponse struct {
		Sizes []pricing.SizeEntry `json:"sizes"`
	}

	response, err := json.Marshal(sizesResponse{Sizes: pricing.Sizes()})
	if err != nil {
		glog.Fatalf("Failed to marshal size catalog: %v", err)
	}

	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(response)
	}
}
