package session

import "time"

// OutcomeKind classifies how a session ended.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
	OutcomeTimedOut
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Outcome is the terminal value of a session. Immutable once constructed.
type Outcome struct {
	Kind         OutcomeKind
	ArtifactPath string // set for Success
	Reason       string // set for Failure
}

func Success(artifactPath string) Outcome {
	return Outcome{Kind: OutcomeSuccess, ArtifactPath: artifactPath}
}

func Failure(reason string) Outcome {
	return Outcome{Kind: OutcomeFailure, Reason: reason}
}

func TimedOut() Outcome {
	return Outcome{Kind: OutcomeTimedOut}
}

// Artifact is a transcript file discovered in the output directory. The
// supervisor never writes artifacts, it only observes them.
type Artifact struct {
	Path    string
	ModTime time.Time
}
