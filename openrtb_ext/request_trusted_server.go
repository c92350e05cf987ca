package openrtb_ext

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/mocktioneer/mocktioneer-server/errortypes"
)

// ExtRequestTrustedServer defines the contract for bidrequest.ext.trusted_server,
// a detached signature over the request id.
type ExtRequestTrustedServer struct {
	Signature string `json:"signature"`
	KID       string `json:"kid"`
}

// ParseRequestTrustedServer extracts the trusted_server extension, if any.
// A missing ext or missing trusted_server object yields nil without error.
func ParseRequestTrustedServer(ext json.RawMessage) (*ExtRequestTrustedServer, error) {
	if len(ext) == 0 {
		return nil, nil
	}

	data, dataType, _, err := jsonparser.Get(ext, "trusted_server")
	if dataType == jsonparser.NotExist {
		return nil, nil
	}
	if err != nil {
		return nil, &errortypes.BadInput{
			Message: fmt.Sprintf("request.ext.trusted_server is invalid: %v", err),
		}
	}

	var trustedServer ExtRequestTrustedServer
	if err := json.Unmarshal(data, &trustedServer); err != nil {
		return nil, &errortypes.BadInput{
			Message: fmt.Sprintf("request.ext.trusted_server is invalid: %v", err),
		}
	}
	return &trustedServer, nil
}
