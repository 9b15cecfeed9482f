package runner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Draw(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(4, &buf)

	bar.Draw(2)
	got := buf.String()
	assert.Contains(t, got, "Progress: [")
	assert.Contains(t, got, " 50% (2/4)")
	assert.True(t, strings.HasSuffix(got, "\r"), "bar redraws in place")
	assert.Equal(t, 30, strings.Count(got, "█"))
	assert.Equal(t, 30, strings.Count(got, "."))
}

func TestProgressBar_Complete(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(3, &buf)

	bar.Draw(3)
	assert.Contains(t, buf.String(), "100% (3/3)")
	assert.NotContains(t, buf.String(), string(progressEmpty))
}

func TestProgressBar_OutOfRangeIgnored(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(2, &buf)

	bar.Draw(-1)
	bar.Draw(3)
	assert.Empty(t, buf.String())

	empty := NewProgressBar(0, &buf)
	empty.Draw(0)
	assert.Empty(t, buf.String())
}

func TestProgressBar_Clear(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(2, &buf)

	bar.Draw(1)
	drawn := buf.Len()
	bar.Clear()
	blanked := buf.String()[drawn:]
	assert.True(t, strings.HasSuffix(blanked, "\r"))
	assert.Equal(t, strings.Repeat(" ", len(blanked)-1), blanked[:len(blanked)-1])

	// Clearing twice writes nothing the second time.
	size := buf.Len()
	bar.Clear()
	assert.Equal(t, size, buf.Len())
}

func TestProgressBar_ClearBeforeDrawIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewProgressBar(5, &buf).Clear()
	assert.Empty(t, buf.String())
}
