package endpoints

import (
	"net/http"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/mocktioneer/mocktioneer-server/creative"
)

// NewClickEndpoint returns the handler for GET /click, the landing page the
// rendered creatives link to. Clicks are logged, never rejected.
func NewClickEndpoint(renderer *creative.HostRenderer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		query := r.URL.Query()
		crid := query.Get("crid")
		width := query.Get("w")
		height := query.Get("h")

		glog.Infof("click crid=%s, size=%sx%s", crid, width, height)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(renderer.ClickPage(crid, width, height)))
	}
}

// NewInfoEndpoint returns the handler for GET /, an informational page
// listing the service's routes.
func NewInfoEndpoint(renderer *creative.HostRenderer) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(renderer.InfoPage()))
	}
}
