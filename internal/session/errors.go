package session

import "errors"

var (
	// ErrSessionActive is returned by Start while a session is non-terminal.
	ErrSessionActive = errors.New("a recording session is already active")

	// ErrNoActiveSession is returned by Stop and Abort when nothing is recording.
	ErrNoActiveSession = errors.New("no active recording session")

	// ErrSpawnFailure wraps errors creating the worker process. Fatal to
	// the attempted session only; the supervisor stays usable.
	ErrSpawnFailure = errors.New("could not start recorder worker")
)

// ReasonNoArtifact is the Failure reason when the worker exits cleanly but
// no transcript appears in the tolerance window. Kept distinct from worker
// errors because it signals a contract violation worth separate alerting.
const ReasonNoArtifact = "no artifact produced"

// ReasonAborted is the Failure reason when the operator aborts a session
// that was already winding down.
const ReasonAborted = "session aborted"
