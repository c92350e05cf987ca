package creative

import (
	"html/template"
	"math"
	"strconv"
)

var svgTemplate = template.Must(template.New("svg").Parse(
	`<svg xmlns="http://www.w3.org/2000/svg" width="{{.W}}" height="{{.H}}" viewBox="0 0 {{.W}} {{.H}}">
<rect width="100%" height="100%" fill="#e9e9e9" stroke="#999999"/>
<text x="50%" y="50%" font-family="system-ui,sans-serif" font-size="{{.Font}}" fill="#555555" text-anchor="middle">{{.Label}}</text>
<text x="50%" y="{{.CapY}}" font-family="system-ui,sans-serif" font-size="{{.CapFont}}" fill="#777777" text-anchor="middle">mocktioneer</text>
</svg>
`))

type svgData struct {
	W       int64
	H       int64
	Font    int64
	CapFont int64
	CapY    int64
	Label   string
}

// SVG returns a placeholder image labeled with the size and, when supplied,
// the winning price.
func SVG(w, h int64, price *float64) string {
	// Fit the "WxH" label within the box, bounded below for readability.
	font := int64(math.Max(12, math.Round(math.Min(float64(w)/5, float64(h)/2))))
	capFont := int64(math.Round(math.Min(16, math.Max(10, float64(min(w, h))*0.06))))

	label := formatSizeLabel(w, h)
	if price != nil {
		label += " - $" + formatPrice(price)
	}

	return render(svgTemplate, svgData{
		W:       w,
		H:       h,
		Font:    font,
		CapFont: capFont,
		CapY:    h/2 + int64(math.Round(float64(font)*0.7)),
		Label:   label,
	})
}

func formatSizeLabel(w, h int64) string {
	return strconv.FormatInt(w, 10) + "x" + strconv.FormatInt(h, 10)
}

