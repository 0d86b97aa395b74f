package audio

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

// CaptureConfig describes how the microphone should be captured.
// A nil DeviceID selects the system default input.
type CaptureConfig struct {
	DeviceID   *int
	Channels   int
	SampleRate int
}

// CaptureSession is a live microphone capture writing to a container file.
type CaptureSession interface {
	// Stop ends the capture and finalizes the file. Blocks until the
	// file is closed.
	Stop() error
}

// Capturer starts microphone capture sessions.
type Capturer interface {
	Start(cfg CaptureConfig, outputPath string) (CaptureSession, error)
}

// Recorder captures microphone audio through an ffmpeg child process.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins capturing to outputPath as WAV. ffmpeg keeps recording
// until the session is stopped.
func (r *Recorder) Start(cfg CaptureConfig, outputPath string) (CaptureSession, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found. Install with: brew install ffmpeg")
	}

	input := ":default"
	if cfg.DeviceID != nil {
		input = fmt.Sprintf(":%d", *cfg.DeviceID)
	}

	cmd := exec.Command("ffmpeg",
		"-f", "avfoundation",
		"-i", input,
		"-ac", fmt.Sprintf("%d", cfg.Channels),
		"-ar", fmt.Sprintf("%d", cfg.SampleRate),
		"-y",
		outputPath,
	)

	// Log stderr for diagnostics
	logPath := outputPath + ".ffmpeg.log"
	logFile, err := os.Create(logPath)
	if err == nil {
		cmd.Stderr = logFile
	}

	if err := cmd.Start(); err != nil {
		if logFile != nil {
			logFile.Close()
			os.Remove(logPath)
		}
		return nil, fmt.Errorf("starting capture: %w", err)
	}

	return &ffmpegSession{cmd: cmd, logFile: logFile, logPath: logPath}, nil
}

type ffmpegSession struct {
	cmd     *exec.Cmd
	logFile *os.File
	logPath string
}

// Stop interrupts ffmpeg so it finalizes the WAV header, then reaps the
// process. Falls back to a hard kill if ffmpeg ignores the interrupt.
func (s *ffmpegSession) Stop() error {
	defer func() {
		if s.logFile != nil {
			s.logFile.Close()
			os.Remove(s.logPath)
		}
	}()

	if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = s.cmd.Process.Kill()
	}

	done := make(chan error, 1)
	go func() { done <- s.cmd.Wait() }()

	select {
	case <-done:
		// ffmpeg exits non-zero on interrupt; the file is still valid.
		return nil
	case <-time.After(5 * time.Second):
		_ = s.cmd.Process.Kill()
		<-done
		return fmt.Errorf("capture process did not stop cleanly")
	}
}
