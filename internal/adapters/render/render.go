// Package render serializes GeoJSON documents and the Cesium playback page.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/okian/geoplot/internal/domain/geojson"
	"github.com/okian/geoplot/internal/domain/model"
)

//go:embed templates/geoplot.html.tmpl
var templatesFS embed.FS

const pageTemplateName = "geoplot.html.tmpl"

// pageTemplate is parsed once at init and never mutated. html/template escapes
// every value for the context it lands in: JSON inside the script, HTML text
// in the title.
var pageTemplate = template.Must(
	template.New(pageTemplateName).
		Option("missingkey=error").
		ParseFS(templatesFS, "templates/"+pageTemplateName),
)

// defaultMultiplier plays one simulated hour per wall-clock second.
const defaultMultiplier = 3600

// PageData holds every value substituted into the page.
type PageData struct {
	Title       string
	AccessToken string
	Mode        model.Mode
	StartTime   string
	StopTime    string
	MinValue    float64
	MaxValue    float64
	Multiplier  float64
	Collections geojson.Document
}

// NewPageData fills PageData from a built document, taking the value range
// from the document itself.
func NewPageData(title, token string, mode model.Mode, start, stop string, doc geojson.Document) PageData {
	lo, hi, _ := doc.ValueRange()
	return PageData{
		Title:       title,
		AccessToken: token,
		Mode:        mode,
		StartTime:   start,
		StopTime:    stop,
		MinValue:    lo,
		MaxValue:    hi,
		Multiplier:  defaultMultiplier,
		Collections: doc,
	}
}

func (d PageData) validate() error {
	var missing []string
	if d.AccessToken == "" {
		missing = append(missing, "access token")
	}
	if _, ok := model.ParseMode(string(d.Mode)); !ok {
		missing = append(missing, "visualization mode")
	}
	if d.StartTime == "" {
		missing = append(missing, "start time")
	}
	if d.StopTime == "" {
		missing = append(missing, "stop time")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingValue, strings.Join(missing, ", "))
	}
	return nil
}

// Page writes the HTML playback page for data to w.
func Page(w io.Writer, data PageData) error {
	if err := data.validate(); err != nil {
		return err
	}
	if data.Collections == nil {
		data.Collections = geojson.Document{}
	}
	if data.Multiplier <= 0 {
		data.Multiplier = defaultMultiplier
	}
	if data.Title == "" {
		data.Title = "geoplot"
	}
	if err := pageTemplate.ExecuteTemplate(w, pageTemplateName, data); err != nil {
		return fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	return nil
}

// EncodeGeoJSON writes doc as a JSON array indented by two spaces. Non-ASCII
// and HTML-significant characters are written as-is.
func EncodeGeoJSON(w io.Writer, doc geojson.Document) error {
	if doc == nil {
		doc = geojson.Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	return nil
}
