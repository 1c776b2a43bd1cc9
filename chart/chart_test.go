package chart_test

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedalus-labs/viz-mcp-example/chart"
	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

func dataset(points ...float64) *vizmodel.Dataset {
	ds := vizmodel.NewDataset()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, v := range points {
		label := "a"
		if i%2 == 1 {
			label = "b"
		}
		ds.Append(v, label, now)
	}
	return ds
}

func Test_Render(t *testing.T) {
	r := chart.NewLineRenderer()

	data, err := r.Render(dataset(20, 22, 25, 24, 28, 30, 27), chart.Request{Title: "Temperature Readings"})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, chart.DefaultWidth, img.Bounds().Dx())
	assert.Equal(t, chart.DefaultHeight, img.Bounds().Dy())
}

func Test_Render_CustomSize(t *testing.T) {
	r := chart.NewLineRenderer()

	data, err := r.Render(dataset(1, 2, 3), chart.Request{Width: 400, Height: 300})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func Test_Render_EmptyDataset(t *testing.T) {
	r := chart.NewLineRenderer()

	data, err := r.Render(vizmodel.NewDataset(), chart.Request{})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func Test_Render_SingleSample(t *testing.T) {
	r := chart.NewLineRenderer()

	data, err := r.Render(dataset(42), chart.Request{})
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func Test_Render_ConstantValues(t *testing.T) {
	r := chart.NewLineRenderer()

	data, err := r.Render(dataset(5, 5, 5, 5), chart.Request{})
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func Test_Render_Deterministic(t *testing.T) {
	r := chart.NewLineRenderer()
	ds := dataset(1, 4, 2, 8, 5, 7)
	req := chart.Request{Title: "repeatable"}

	first, err := r.Render(ds, req)
	require.NoError(t, err)
	second, err := r.Render(ds, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func Test_Render_InvalidTitle(t *testing.T) {
	r := chart.NewLineRenderer()

	_, err := r.Render(dataset(1, 2), chart.Request{Title: string([]byte{0xff, 0xfe, 0xfd})})
	require.Error(t, err)
	assert.True(t, errors.Is(err, vizmodel.ErrRenderFailure))
}
