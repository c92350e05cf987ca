// Package creative renders placeholder markup for winning bids and the small
// HTML pages served around it (creative page, click landing, root info). The
// bid builders and the mediation engine treat rendering as a collaborator
// behind the Renderer interface and never synthesize markup themselves.
package creative

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/golang/glog"
)

// Renderer produces creative markup referencing a renderable catalog size.
// The verified flag marks bids from requests whose signature checked out; the
// rendered page carries a small badge for them.
type Renderer interface {
	Iframe(crid string, w, h int64, price *float64, verified bool) string
}

var iframeTemplate = template.Must(template.New("iframe").Parse(
	`<iframe src="//{{.Host}}/static/creatives/{{.W}}x{{.H}}.html?crid={{.CRID}}{{if .Bid}}&bid={{.Bid}}{{end}}{{if .Verified}}&v=1{{end}}" width="{{.W}}" height="{{.H}}" frameborder="0" scrolling="no" style="border:0;margin:0;padding:0"></iframe>`))

var pageTemplate = template.Must(template.New("page").Parse(
	`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.W}}x{{.H}}</title></head>
<body style="margin:0">
<a href="//{{.Host}}/click?crid={{.CRID}}&w={{.W}}&h={{.H}}" target="_blank"><img src="//{{.Host}}/static/img/{{.W}}x{{.H}}.svg{{if .Bid}}?bid={{.Bid}}{{end}}" width="{{.W}}" height="{{.H}}" alt="{{.W}}x{{.H}}"></a>
{{if .Verified}}<div style="position:absolute;top:2px;right:2px;font:10px system-ui,sans-serif;color:#2e7d32">verified</div>{{end}}
</body>
</html>
`))

var clickTemplate = template.Must(template.New("click").Parse(
	`<!doctype html>
<html>
<head><meta charset="utf-8"><title>mocktioneer</title></head>
<body style="font-family:system-ui,sans-serif;margin:2em">
<h1>Ad click received</h1>
<p>creative <code>{{.CRID}}</code>{{if .Size}}, size {{.Size}}{{end}}</p>
<p><a href="//{{.Host}}/">mocktioneer</a></p>
</body>
</html>
`))

var infoTemplate = template.Must(template.New("info").Parse(
	`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Mocktioneer Up</title></head>
<body style="font-family:system-ui,sans-serif;margin:2em">
<h1>Mocktioneer Up</h1>
<p>Deterministic bid simulator on <code>{{.Host}}</code>.</p>
<ul>
<li><code>POST /openrtb2/auction</code></li>
<li><code>POST /openrtb2/mediation</code></li>
<li><code>POST /e/dtb/bid</code></li>
<li><code>GET /info/sizes</code></li>
<li><code>GET /status</code></li>
</ul>
</body>
</html>
`))

type renderData struct {
	Host     string
	CRID     string
	W        int64
	H        int64
	Bid      string
	Verified bool
}

type clickData struct {
	Host string
	CRID string
	Size string
}

// HostRenderer renders markup whose asset URLs point back at the simulator
// itself. The host is fixed at startup so rendering stays deterministic.
type HostRenderer struct {
	host string
}

func NewHostRenderer(host string) *HostRenderer {
	return &HostRenderer{host: host}
}

// Iframe returns an iframe snippet loading the creative page for the size.
// The bid query parameter is only present when a price is supplied.
func (r *HostRenderer) Iframe(crid string, w, h int64, price *float64, verified bool) string {
	return render(iframeTemplate, renderData{
		Host:     r.host,
		CRID:     crid,
		W:        w,
		H:        h,
		Bid:      formatPrice(price),
		Verified: verified,
	})
}

// CreativePage returns the standalone HTML page served for a catalog size.
func (r *HostRenderer) CreativePage(crid string, w, h int64, price *float64, verified bool) string {
	return render(pageTemplate, renderData{
		Host:     r.host,
		CRID:     crid,
		W:        w,
		H:        h,
		Bid:      formatPrice(price),
		Verified: verified,
	})
}

// ClickPage returns the landing page served when a rendered creative is
// clicked. Dimensions arrive as raw query strings and are rendered as-is;
// a click on odd input is still a click worth landing.
func (r *HostRenderer) ClickPage(crid, w, h string) string {
	size := ""
	if w != "" && h != "" {
		size = w + "x" + h
	}
	return render(clickTemplate, clickData{
		Host: r.host,
		CRID: crid,
		Size: size,
	})
}

// InfoPage returns the informational page served at the root path.
func (r *HostRenderer) InfoPage() string {
	return render(infoTemplate, clickData{Host: r.host})
}

func formatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *price)
}

func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		glog.Errorf("creative template %q failed: %v", tmpl.Name(), err)
		return ""
	}
	return buf.String()
}
