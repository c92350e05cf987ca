package openrtb_ext

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/mocktioneer/mocktioneer-server/errortypes"
)

// ExtImpMocktioneer defines the contract for bidrequest.imp[i].ext.mocktioneer.
// A present Bid overrides size-based pricing for that impression.
type ExtImpMocktioneer struct {
	Bid *float64 `json:"bid,omitempty"`
}

// ParseImpExt extracts the mocktioneer impression extension, if any.
// A missing ext, missing mocktioneer object, or missing bid all yield nil
// without error; only a malformed bid value is reported.
func ParseImpExt(ext json.RawMessage) (*ExtImpMocktioneer, error) {
	if len(ext) == 0 {
		return nil, nil
	}

	bid, err := jsonparser.GetFloat(ext, "mocktioneer", "bid")
	if err == jsonparser.KeyPathNotFoundError {
		return nil, nil
	}
	if err != nil {
		return nil, &errortypes.MalformedExt{
			Message: fmt.Sprintf("imp.ext.mocktioneer.bid is invalid: %v", err),
		}
	}

	return &ExtImpMocktioneer{Bid: &bid}, nil
}
