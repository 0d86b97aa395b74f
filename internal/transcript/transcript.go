// Package transcript defines the persisted transcript file format: a fixed
// header block followed by timestamped segments or a plain text body.
package transcript

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
)

const headerTitle = "MEETING RECORDING TRANSCRIPT"

// Segment is one portion of transcribed audio with its start offset in
// seconds from the beginning of the recording.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Meta is the header metadata written above the transcript body.
type Meta struct {
	RecordedAt time.Time
	DeviceName string
}

// filenamePattern matches artifact names like 2025-03-14_09-26.txt.
var filenamePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}\.txt$`)

// Filename returns the artifact file name for a session ending at t.
// Minute granularity: two sessions stopped within the same minute collide
// and the last writer wins.
func Filename(t time.Time) string {
	return t.Format("2006-01-02_15-04") + ".txt"
}

// MatchesFilename reports whether name follows the artifact naming convention.
func MatchesFilename(name string) bool {
	return filenamePattern.MatchString(name)
}

// Render writes the transcript to w: header block, then one
// "[HH:MM:SS] text" line per segment separated by blank lines. When no
// segments are available the plain text body is written instead.
func Render(w io.Writer, meta Meta, segments []Segment, text string) error {
	var b strings.Builder
	b.WriteString(headerTitle + "\n")
	fmt.Fprintf(&b, "Recorded: %s\n", meta.RecordedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Device: %s\n", meta.DeviceName)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(segments) > 0 {
		for _, seg := range segments {
			fmt.Fprintf(&b, "[%s] %s\n\n", FormatTimestamp(seg.Start), strings.TrimSpace(seg.Text))
		}
	} else {
		b.WriteString(text)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile renders the transcript to path.
func WriteFile(path string, meta Meta, segments []Segment, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating transcript: %w", err)
	}
	if err := Render(f, meta, segments, text); err != nil {
		f.Close()
		return fmt.Errorf("writing transcript: %w", err)
	}
	return f.Close()
}

// FormatTimestamp converts an offset in seconds to "HH:MM:SS". Fractional
// seconds are truncated.
func FormatTimestamp(seconds float64) string {
	s := int(seconds)
	m, s := s/60, s%60
	h, m := m/60, m%60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseTimestamp is the inverse of FormatTimestamp for whole seconds.
func ParseTimestamp(ts string) (int, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(ts, "%d:%d:%d", &h, &m, &s); err != nil {
		return 0, fmt.Errorf("parsing timestamp %q: %w", ts, err)
	}
	return h*3600 + m*60 + s, nil
}
