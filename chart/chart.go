// Package chart converts an accumulated dataset into a PNG image suitable
// for transmission as an image-typed tool response to a vision LLM.
package chart

import (
	"bytes"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

const (
	DefaultTitle  = "Metrics"
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Request describes one rendering. Ephemeral, never persisted.
type Request struct {
	Title  string
	Width  int
	Height int
}

// Renderer turns a dataset into raster image bytes. Rendering is
// deterministic given identical dataset and request.
type Renderer interface {
	Render(ds *vizmodel.Dataset, req Request) ([]byte, error)
}

type lineRenderer struct{}

// NewLineRenderer returns the default renderer: a line chart with one series
// per distinct label, x = sequence index, y = value.
func NewLineRenderer() Renderer {
	return lineRenderer{}
}

func (lineRenderer) Render(ds *vizmodel.Dataset, req Request) ([]byte, error) {
	if req.Title == "" {
		req.Title = DefaultTitle
	}
	if req.Width <= 0 {
		req.Width = DefaultWidth
	}
	if req.Height <= 0 {
		req.Height = DefaultHeight
	}
	if !utf8.ValidString(req.Title) {
		return nil, errors.Mark(errors.New("title is not valid UTF-8"), vizmodel.ErrRenderFailure)
	}

	empty := ds.Count() == 0
	graph := gochart.Chart{
		Title:  req.Title,
		Width:  req.Width,
		Height: req.Height,
		XAxis: gochart.XAxis{
			Name:  "Sample",
			Range: xRange(ds),
		},
		YAxis: gochart.YAxis{
			Name:  "Value",
			Range: yRange(ds),
		},
		Series: buildSeries(ds),
	}
	if !empty {
		graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to render chart"), vizmodel.ErrRenderFailure)
	}
	return buf.Bytes(), nil
}

// buildSeries groups samples by label, one line series per label in
// first-appearance order. An empty dataset gets a single transparent
// placeholder series so the chart still renders valid empty axes.
func buildSeries(ds *vizmodel.Dataset) []gochart.Series {
	if ds.Count() == 0 {
		return []gochart.Series{
			gochart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style: gochart.Style{
					StrokeColor: drawing.ColorTransparent,
					DotColor:    drawing.ColorTransparent,
				},
			},
		}
	}

	var order []string
	byLabel := map[string]*gochart.ContinuousSeries{}
	for _, s := range ds.Samples {
		cs, ok := byLabel[s.Label]
		if !ok {
			cs = &gochart.ContinuousSeries{
				Name: s.Label,
				Style: gochart.Style{
					StrokeWidth: 2,
					DotWidth:    4,
				},
			}
			byLabel[s.Label] = cs
			order = append(order, s.Label)
		}
		cs.XValues = append(cs.XValues, float64(s.SequenceIndex))
		cs.YValues = append(cs.YValues, s.Value)
	}

	series := make([]gochart.Series, 0, len(order))
	for _, label := range order {
		series = append(series, *byLabel[label])
	}
	return series
}

// Explicit axis ranges keep single-sample and constant-value datasets from
// collapsing to a zero-width range.
func xRange(ds *vizmodel.Dataset) gochart.Range {
	if ds.Count() == 0 {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	max := float64(ds.Samples[len(ds.Samples)-1].SequenceIndex)
	if max < 1 {
		max = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: max}
}

func yRange(ds *vizmodel.Dataset) gochart.Range {
	if ds.Count() == 0 {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	min, max := ds.Samples[0].Value, ds.Samples[0].Value
	for _, s := range ds.Samples[1:] {
		if s.Value < min {
			min = s.Value
		}
		if s.Value > max {
			max = s.Value
		}
	}
	pad := (max - min) * 0.1
	if pad == 0 {
		pad = 1
	}
	return &gochart.ContinuousRange{Min: min - pad, Max: max + pad}
}
