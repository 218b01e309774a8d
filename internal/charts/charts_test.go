package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBar(t *testing.T) {
	var buf bytes.Buffer

	sink := NewEChartsSink()
	err := sink.RenderBar(&buf, []string{"2024-01-14", "2024-01-15"}, []int{3, 7})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Review Activity")
	assert.Contains(t, html, "Cards Reviewed")
	assert.Contains(t, html, "2024-01-14")
	assert.Contains(t, html, "2024-01-15")
}

func TestRenderBarLengthMismatch(t *testing.T) {
	var buf bytes.Buffer

	err := NewEChartsSink().RenderBar(&buf, []string{"2024-01-14"}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Zero(t, buf.Len())
}

var _ Sink = (*EChartsSink)(nil)
