// Package router wires the HTTP surface: endpoint construction, route
// registration, CORS, and the admin mux.
package router

import (
	"net/http"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/mocktioneer/mocktioneer-server/config"
	"github.com/mocktioneer/mocktioneer-server/creative"
	"github.com/mocktioneer/mocktioneer-server/endpoints"
	apsEndpoints "github.com/mocktioneer/mocktioneer-server/endpoints/aps"
	openrtb2Endpoints "github.com/mocktioneer/mocktioneer-server/endpoints/openrtb2"
	"github.com/mocktioneer/mocktioneer-server/exchange"
	"github.com/mocktioneer/mocktioneer-server/metrics"
	"github.com/mocktioneer/mocktioneer-server/verification"
)

type Router struct {
	*httprouter.Router
	MetricsEngine *metrics.Engine
}

// New builds the full route table from configuration. Everything downstream
// of the routes is constructed here exactly once.
func New(cfg *config.Configuration) (*Router, error) {
	r := &Router{
		Router:        httprouter.New(),
		MetricsEngine: metrics.NewEngine(),
	}

	renderer := creative.NewHostRenderer(cfg.ExternalURL)
	ex := exchange.NewExchange(renderer)

	var verifier *verification.Verifier
	if cfg.Verification.Enabled {
		keySet, err := verification.NewStaticKeySetFromFile(cfg.Verification.JWKSFile)
		if err != nil {
			return nil, err
		}
		verifier = verification.NewVerifier(keySet)
		glog.Infof("Request signature verification enabled with key file %s", cfg.Verification.JWKSFile)
	}

	auctionEndpoint, err := openrtb2Endpoints.NewAuctionEndpoint(ex, verifier, r.MetricsEngine)
	if err != nil {
		return nil, err
	}
	mediationEndpoint, err := openrtb2Endpoints.NewMediationEndpoint(ex, r.MetricsEngine)
	if err != nil {
		return nil, err
	}
	bidEndpoint, err := apsEndpoints.NewBidEndpoint(cfg.ExternalURL, r.MetricsEngine)
	if err != nil {
		return nil, err
	}

	r.GET("/", endpoints.NewInfoEndpoint(renderer))
	r.POST("/openrtb2/auction", auctionEndpoint)
	r.POST("/openrtb2/mediation", mediationEndpoint)
	r.POST("/e/dtb/bid", bidEndpoint)
	r.GET("/info/sizes", endpoints.NewSizesEndpoint())
	r.GET("/status", endpoints.NewStatusEndpoint(""))
	r.GET("/static/creatives/:size", endpoints.NewCreativeEndpoint(renderer))
	r.GET("/static/img/:size", endpoints.NewImageEndpoint())
	r.GET("/click", endpoints.NewClickEndpoint(renderer))

	return r, nil
}

// Admin serves the operational surface on the admin port.
func Admin(met *metrics.Engine) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", met.Handler())
	return mux
}

func SupportCORS(handler http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowCredentials: true,
		AllowOriginFunc: func(string) bool {
			return true
		},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"}})
	return c.Handler(handler)
}

type NoCache struct {
	Handler http.Handler
}

func (m NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Add("Pragma", "no-cache")
	w.Header().Add("Expires", "0")
	m.Handler.ServeHTTP(w, r)
}
