// Package worker implements the recorder worker process: capture until the
// stop signal arrives on stdin, transcribe once, write one transcript, exit.
// Exit status 0 means a transcript was written; anything else means failure
// with a diagnostic line on stderr and no transcript.
package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/forayconsulting/meeting-recorder/config"
	"github.com/forayconsulting/meeting-recorder/internal/audio"
	"github.com/forayconsulting/meeting-recorder/internal/logging"
	"github.com/forayconsulting/meeting-recorder/internal/transcribe"
	"github.com/forayconsulting/meeting-recorder/internal/transcript"
)

// Deps are the worker's collaborators, injectable for tests.
type Deps struct {
	Capturer audio.Capturer
	Backend  transcribe.Backend
	Stdin    io.Reader
	Log      *logging.Logger
	Now      func() time.Time
}

// Run performs one capture-then-transcribe session. It returns the path of
// the written transcript, or an error whose message is the diagnostic the
// supervisor will surface. The temporary capture file is removed on every
// path.
func Run(cfg *config.Config, deps Deps) (string, error) {
	log := deps.Log
	if log == nil {
		log = logging.Nop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	capturePath := filepath.Join(os.TempDir(), "capture-"+uuid.NewString()+".wav")
	defer os.Remove(capturePath)

	log.Infow("starting capture",
		"device", cfg.Audio.DeviceName,
		"channels", cfg.Audio.Channels,
		"sample_rate", cfg.Audio.SampleRate,
		"file", capturePath,
	)

	capture, err := deps.Capturer.Start(audio.CaptureConfig{
		DeviceID:   cfg.Audio.DeviceID,
		Channels:   cfg.Audio.Channels,
		SampleRate: cfg.Audio.SampleRate,
	}, capturePath)
	if err != nil {
		return "", fmt.Errorf("audio device unavailable (%s): %w", cfg.Audio.DeviceName, err)
	}

	// The first line on stdin, or stdin closing, is the stop signal.
	stop := make(chan struct{})
	go func() {
		defer close(stop)
		_, _ = bufio.NewReader(deps.Stdin).ReadString('\n')
	}()

	started := now()
	<-stop
	log.Infow("stop signal received", "captured", now().Sub(started).Round(time.Second).String())

	if err := capture.Stop(); err != nil {
		return "", fmt.Errorf("finalizing capture: %w", err)
	}

	log.Infow("transcribing", "file", capturePath)
	result, err := deps.Backend.Transcribe(context.Background(), capturePath)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		segments = append(segments, transcript.Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}

	meta := transcript.Meta{
		RecordedAt: now(),
		DeviceName: cfg.Audio.DeviceName,
	}
	outPath := filepath.Join(cfg.TranscriptDir, transcript.Filename(meta.RecordedAt))
	if err := transcript.WriteFile(outPath, meta, segments, result.Text); err != nil {
		return "", err
	}

	log.Infow("transcript written", "path", outPath, "segments", len(segments))
	return outPath, nil
}
