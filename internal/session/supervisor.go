// Package session coordinates the recording-session lifecycle between the
// long-lived controller and the short-lived recorder worker process: launch,
// asynchronous stop, timeout enforcement, and artifact-based result
// classification.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/looplab/fsm"

	"github.com/forayconsulting/meeting-recorder/internal/logging"
)

// Supervisor states.
const (
	StateIdle      = "idle"
	StateRecording = "recording"
	StateStopping  = "stopping"
)

const (
	eventStart  = "start"
	eventStop   = "stop"
	eventFinish = "finish"
	eventAbort  = "abort"
)

const (
	// DefaultExitWait bounds how long the supervisor waits for the worker
	// to exit after the stop signal, covering the slow transcription call.
	DefaultExitWait = 120 * time.Second

	// DefaultArtifactTolerance is the mtime window, measured from the stop
	// signal, within which a discovered transcript is attributed to the
	// session. Must be >= the exit wait so a just-in-time artifact is
	// never missed.
	DefaultArtifactTolerance = 150 * time.Second
)

// Clock abstracts time for timeout tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Config holds the supervisor's tunables.
type Config struct {
	TranscriptDir     string
	ExitWait          time.Duration
	ArtifactTolerance time.Duration
}

// Session is one record-stop-transcribe cycle. At most one session is
// non-terminal at a time.
type Session struct {
	ID        string
	StartTime time.Time
	stopTime  time.Time
	worker    Worker
	aborted   atomic.Bool
}

// Exited is closed when the worker process ends. It lets a controller
// notice a worker that died before the operator asked it to stop; reading
// it does not consume anything, so the supervisor's own wait is unaffected.
func (sess *Session) Exited() <-chan struct{} {
	return sess.worker.Exited()
}

// Supervisor owns the worker lifecycle. All blocking waits happen on a
// background goroutine; callers observe the result through the one-shot
// outcome channel returned by Stop.
type Supervisor struct {
	cfg     Config
	spawner Spawner
	watcher CompletionWatcher
	clock   Clock
	log     *logging.Logger

	mu      sync.Mutex
	machine *fsm.FSM
	sess    *Session
}

// Option customizes a Supervisor, mainly for tests.
type Option func(*Supervisor)

func WithClock(c Clock) Option {
	return func(s *Supervisor) { s.clock = c }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Supervisor) { s.log = l }
}

// New builds a Supervisor. It enforces ArtifactTolerance >= ExitWait.
func New(cfg Config, spawner Spawner, watcher CompletionWatcher, opts ...Option) (*Supervisor, error) {
	if cfg.ExitWait <= 0 {
		cfg.ExitWait = DefaultExitWait
	}
	if cfg.ArtifactTolerance <= 0 {
		cfg.ArtifactTolerance = DefaultArtifactTolerance
	}
	if cfg.ArtifactTolerance < cfg.ExitWait {
		return nil, fmt.Errorf("artifact tolerance %s must be >= exit wait %s", cfg.ArtifactTolerance, cfg.ExitWait)
	}

	s := &Supervisor{
		cfg:     cfg,
		spawner: spawner,
		watcher: watcher,
		clock:   systemClock{},
		log:     logging.Nop(),
		machine: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				{Name: eventStart, Src: []string{StateIdle}, Dst: StateRecording},
				{Name: eventStop, Src: []string{StateRecording}, Dst: StateStopping},
				{Name: eventFinish, Src: []string{StateStopping}, Dst: StateIdle},
				// Abort during Stopping does not transition here; the
				// in-flight wait finishes the session via eventFinish.
				{Name: eventAbort, Src: []string{StateRecording}, Dst: StateIdle},
			},
			fsm.Callbacks{},
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the current lifecycle state.
func (s *Supervisor) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Current()
}

// Start spawns a worker process and begins a session. Non-blocking: it
// returns as soon as the process exists. Rejected (not queued) while a
// session is non-terminal. A spawn failure is reported synchronously and
// leaves the supervisor idle and usable.
func (s *Supervisor) Start() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.machine.Is(StateIdle) {
		return nil, ErrSessionActive
	}

	worker, err := s.spawner.Spawn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailure, err)
	}

	now := s.clock.Now()
	sess := &Session{
		ID:        now.Format("20060102-150405"),
		StartTime: now,
		worker:    worker,
	}

	if err := s.machine.Event(context.Background(), eventStart); err != nil {
		// Guarded by the Is check above; kill the orphan if it ever fires.
		worker.Release()
		_ = worker.Kill()
		return nil, err
	}

	s.sess = sess
	s.log.Infow("session started", "session", sess.ID)
	return sess, nil
}

// Stop signals the active worker to finish its capture and transcribe,
// then observes completion on a background goroutine. The returned channel
// delivers exactly one Outcome. Stop never blocks on the worker.
func (s *Supervisor) Stop() (<-chan Outcome, error) {
	s.mu.Lock()
	if !s.machine.Is(StateRecording) {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	sess := s.sess
	_ = s.machine.Event(context.Background(), eventStop)
	sess.stopTime = s.clock.Now()
	s.mu.Unlock()

	outcomes := make(chan Outcome, 1)
	stopErr := sess.worker.SignalStop()
	if stopErr != nil {
		s.log.Warnw("writing stop token failed, forcing termination", "session", sess.ID, "error", stopErr)
	}

	go s.await(sess, stopErr, outcomes)
	return outcomes, nil
}

// await races the worker's exit against the wall-clock deadline, classifies
// the result, and releases the handle. Runs once per session.
func (s *Supervisor) await(sess *Session, stopErr error, outcomes chan<- Outcome) {
	defer sess.worker.Release()

	var out Outcome
	switch {
	case stopErr != nil:
		// Could not deliver the stop signal; degrade to a forced kill.
		// A write failure usually means the worker already died, so its
		// own diagnostic beats the pipe error.
		_ = sess.worker.Kill()
		<-sess.worker.Exited()
		if tail := sess.worker.StderrTail(); tail != "" {
			out = Failure(tail)
		} else {
			out = Failure(fmt.Sprintf("signaling stop: %v", stopErr))
		}

	default:
		select {
		case <-sess.worker.Exited():
			out = s.classify(sess, sess.worker.ExitStatus())
		case <-s.clock.After(s.cfg.ExitWait):
			_ = sess.worker.Kill()
			<-sess.worker.Exited()
			out = TimedOut()
		}
	}

	s.log.Infow("session ended", "session", sess.ID, "outcome", out.Kind.String())

	// Deliver before accepting the next Start. The channel is buffered so
	// a controller that has not drained yet cannot wedge the supervisor.
	outcomes <- out

	s.mu.Lock()
	_ = s.machine.Event(context.Background(), eventFinish)
	s.sess = nil
	s.mu.Unlock()
}

// classify turns an exit status into an Outcome by consulting the
// completion watcher.
func (s *Supervisor) classify(sess *Session, status ExitStatus) Outcome {
	if sess.aborted.Load() {
		return Failure(ReasonAborted)
	}
	if status.Code != 0 {
		reason := sess.worker.StderrTail()
		if reason == "" {
			reason = fmt.Sprintf("worker exited with status %d", status.Code)
		}
		return Failure(reason)
	}

	artifact, found, err := s.watcher.FindRecent(s.cfg.TranscriptDir, sess.stopTime, s.cfg.ArtifactTolerance)
	if err != nil {
		return Failure(fmt.Sprintf("checking for transcript: %v", err))
	}
	if !found {
		return Failure(ReasonNoArtifact)
	}
	return Success(artifact.Path)
}

// Abort forcefully ends the active session without waiting for a
// transcript. In Recording the supervisor tears the worker down itself and
// returns to idle. In Stopping a wait goroutine already owns the handle, so
// Abort only kills the process; that wait observes the exit, reports the
// session as aborted on its outcome channel, and releases the handle.
func (s *Supervisor) Abort() error {
	s.mu.Lock()
	switch {
	case s.machine.Is(StateRecording):
		sess := s.sess
		_ = s.machine.Event(context.Background(), eventAbort)
		s.sess = nil
		s.mu.Unlock()

		_ = sess.worker.Kill()
		<-sess.worker.Exited()
		sess.worker.Release()

		s.log.Infow("session aborted", "session", sess.ID)
		return nil

	case s.machine.Is(StateStopping):
		sess := s.sess
		sess.aborted.Store(true)
		s.mu.Unlock()

		_ = sess.worker.Kill()
		s.log.Infow("session aborted while stopping", "session", sess.ID)
		return nil

	default:
		s.mu.Unlock()
		return ErrNoActiveSession
	}
}
