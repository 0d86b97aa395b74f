package session

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// ExitStatus is the observed result of the worker process exiting.
type ExitStatus struct {
	Code int
	Err  error
}

// Worker is the supervisor's handle on a spawned worker process: its stop
// channel (stdin), its diagnostics (stderr) and its exit status. The
// supervisor knows nothing else about the worker.
type Worker interface {
	// SignalStop writes the stop token to the worker's input channel.
	SignalStop() error
	// Exited is closed once the process has been reaped. Any number of
	// observers may wait on it.
	Exited() <-chan struct{}
	// ExitStatus reports how the process ended. Valid only after Exited
	// is closed.
	ExitStatus() ExitStatus
	// Kill terminates the worker and anything it spawned, without grace.
	Kill() error
	// StderrTail returns the most recent diagnostic output.
	StderrTail() string
	// Release closes the worker's input channel. Safe to call more
	// than once and after the process has exited.
	Release()
}

// Spawner creates worker processes. Injectable so supervisor tests can
// substitute a fake worker.
type Spawner interface {
	Spawn() (Worker, error)
}

// SelfSpawner launches the current binary's hidden worker subcommand as a
// separate OS process.
type SelfSpawner struct {
	// Args passed to the worker invocation.
	Args []string
}

func NewSelfSpawner() *SelfSpawner {
	return &SelfSpawner{Args: []string{"worker"}}
}

func (s *SelfSpawner) Spawn() (Worker, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving executable: %w", err)
	}

	cmd := exec.Command(exe, s.Args...)
	cmd.SysProcAttr = sysProcAttr()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("binding worker stdin: %w", err)
	}

	w := &procWorker{
		cmd:    cmd,
		stdin:  stdin,
		stderr: &tailBuffer{max: 4096},
		exited: make(chan struct{}),
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = w.stderr

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, err
	}

	// Reap in the background so exit is observable without blocking.
	go func() {
		err := cmd.Wait()
		code := 0
		if cmd.ProcessState != nil {
			code = cmd.ProcessState.ExitCode()
		}
		w.status = ExitStatus{Code: code, Err: err}
		close(w.exited)
	}()

	return w, nil
}

type procWorker struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stderr    *tailBuffer
	exited    chan struct{}
	status    ExitStatus
	killOnce  sync.Once
	stdinOnce sync.Once
}

func (w *procWorker) SignalStop() error {
	_, err := io.WriteString(w.stdin, "\n")
	return err
}

func (w *procWorker) Exited() <-chan struct{} {
	return w.exited
}

func (w *procWorker) ExitStatus() ExitStatus {
	return w.status
}

func (w *procWorker) Kill() error {
	var err error
	w.killOnce.Do(func() {
		// The worker runs its capture process in the same group;
		// killing only the worker pid would orphan a recorder still
		// writing to the temp file.
		err = killProcessGroup(w.cmd.Process)
	})
	return err
}

func (w *procWorker) StderrTail() string {
	return w.stderr.String()
}

func (w *procWorker) Release() {
	w.stdinOnce.Do(func() {
		_ = w.stdin.Close()
	})
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if len(b.buf) > b.max {
		b.buf = b.buf[len(b.buf)-b.max:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
