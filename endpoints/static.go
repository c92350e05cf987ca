package endpoints

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/mocktioneer/mocktioneer-server/creative"
	"github.com/mocktioneer/mocktioneer-server/pricing"
)

// NewCreativeEndpoint returns the handler for GET /static/creatives/:size,
// where :size looks like "300x250.html". Sizes outside the catalog 404.
func NewCreativeEndpoint(renderer *creative.HostRenderer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		width, height, ok := parseSizeParam(ps.ByName("size"), ".html")
		if !ok {
			http.NotFound(w, r)
			return
		}

		crid := r.URL.Query().Get("crid")
		if crid == "" {
			crid = "preview"
		}
		verified := r.URL.Query().Get("v") == "1"

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(renderer.CreativePage(crid, width, height, parseBidParam(r), verified)))
	}
}

// NewImageEndpoint returns the handler for GET /static/img/:size, where :size
// looks like "300x250.svg".
func NewImageEndpoint() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		width, height, ok := parseSizeParam(ps.ByName("size"), ".svg")
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(creative.SVG(width, height, parseBidParam(r))))
	}
}

func parseSizeParam(raw, suffix string) (int64, int64, bool) {
	raw, found := strings.CutSuffix(raw, suffix)
	if !found {
		return 0, 0, false
	}
	widthStr, heightStr, found := strings.Cut(raw, "x")
	if !found {
		return 0, 0, false
	}
	width, err := strconv.ParseInt(widthStr, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	height, err := strconv.ParseInt(heightStr, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	if !pricing.IsSupported(width, height) {
		return 0, 0, false
	}
	return width, height, true
}

func parseBidParam(r *http.Request) *float64 {
	raw := r.URL.Query().Get("bid")
	if raw == "" {
		return nil
	}
	bid, err := strconv.ParseFloat(raw, 64)
	if err != nil || bid < 0 {
		return nil
	}
	return &bid
}
