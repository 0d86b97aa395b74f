package transcript

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeaderAndSegments(t *testing.T) {
	var b strings.Builder
	meta := Meta{
		RecordedAt: time.Date(2025, 3, 14, 9, 26, 0, 0, time.Local),
		DeviceName: "Built-in Microphone",
	}
	segments := []Segment{
		{Start: 0.0, Text: "hello"},
		{Start: 65.5, Text: "world"},
	}

	require.NoError(t, Render(&b, meta, segments, ""))
	out := b.String()

	lines := strings.Split(out, "\n")
	assert.Equal(t, "MEETING RECORDING TRANSCRIPT", lines[0])
	assert.Equal(t, "Recorded: 2025-03-14 09:26", lines[1])
	assert.Equal(t, "Device: Built-in Microphone", lines[2])
	assert.Equal(t, strings.Repeat("=", 50), lines[3])
	assert.Equal(t, "", lines[4])

	assert.Contains(t, out, "[00:00:00] hello\n\n")
	assert.Contains(t, out, "[00:01:05] world\n\n")
}

func TestRenderFallsBackToPlainText(t *testing.T) {
	var b strings.Builder
	meta := Meta{RecordedAt: time.Now(), DeviceName: "System Default"}

	require.NoError(t, Render(&b, meta, nil, "just one block of text"))

	assert.True(t, strings.HasSuffix(b.String(), "just one block of text"))
	assert.NotContains(t, b.String(), "[00:")
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	// Re-parsing must recover the original second count for every
	// non-negative input below 24h.
	for s := 0; s < 24*3600; s++ {
		got, err := ParseTimestamp(FormatTimestamp(float64(s)))
		require.NoError(t, err)
		if got != s {
			t.Fatalf("round trip of %d gave %d", s, got)
		}
	}
}

func TestFormatTimestampTruncatesFractions(t *testing.T) {
	assert.Equal(t, "00:01:05", FormatTimestamp(65.5))
	assert.Equal(t, "01:00:00", FormatTimestamp(3600.0))
	assert.Equal(t, "00:00:00", FormatTimestamp(0.9))
}

func TestFilenameConvention(t *testing.T) {
	name := Filename(time.Date(2025, 3, 14, 9, 26, 42, 0, time.Local))
	assert.Equal(t, "2025-03-14_09-26.txt", name)
	assert.True(t, MatchesFilename(name))

	assert.False(t, MatchesFilename("notes.txt"))
	assert.False(t, MatchesFilename("2025-03-14_09-26.md"))
	assert.False(t, MatchesFilename("2025-03-14_09-26.txt.bak"))
}
