package aps

import (
	"encoding/base64"
	"strconv"
)

// EncodePrice returns the reversible targeting encoding of a price: base64 of
// its shortest decimal representation. The real marketplace encodes prices
// opaquely; the simulator's encoding is deliberately decodable so tests and
// client integrations can inspect what they were bid.
func EncodePrice(price float64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatFloat(price, 'f', -1, 64)))
}

// DecodePrice reverses EncodePrice. It returns false for anything that is not
// base64 over a decimal number.
func DecodePrice(encoded string) (float64, bool) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(string(decoded), 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
