package output

import (
	"fmt"
	"io"
	"time"
)

// Formatter renders controller-facing messages. It is the notification
// surface: every session outcome passes through here.
type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) RecordingStarted(device string) {
	fmt.Fprintf(f.w, "🔴 Recording from %s. Press Enter to stop.\n", device)
}

func (f *Formatter) Processing() {
	fmt.Fprintf(f.w, "📝 Transcribing audio. This may take a few minutes...\n")
}

func (f *Formatter) TranscriptSaved(path string, waited time.Duration) {
	fmt.Fprintf(f.w, "✅ Transcript saved: %s (%s)\n", path, formatDuration(waited))
}

func (f *Formatter) NoTranscript() {
	fmt.Fprintf(f.w, "⚠️  No recent transcript was found. Transcription may have failed.\n")
}

func (f *Formatter) TimedOut() {
	fmt.Fprintf(f.w, "⏰ Transcription took too long and was terminated.\n")
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) DeviceListHeader() {
	fmt.Fprintf(f.w, "🎙️  Audio input devices:\n\n")
}

func (f *Formatter) DeviceListItem(id int, name string, isDefault bool) {
	marker := ""
	if isDefault {
		marker = " (default)"
	}
	fmt.Fprintf(f.w, "  [%d] %s%s\n", id, name, marker)
}

func (f *Formatter) TranscriptListHeader() {
	fmt.Fprintf(f.w, "📁 Transcripts:\n\n")
}

func (f *Formatter) TranscriptListItem(name string, modTime time.Time) {
	fmt.Fprintf(f.w, "  %s  (%s)\n", name, modTime.Format("2006-01-02 15:04"))
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
