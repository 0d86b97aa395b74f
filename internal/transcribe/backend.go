package transcribe

import "context"

// Segment is a timed portion of the transcription.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Result holds the full transcription response.
type Result struct {
	Text     string
	Duration float64
	Segments []Segment
}

// Backend is a pluggable speech-to-text backend. A call is a single
// blocking request/response; the worker makes exactly one per session.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}
