package audio

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Device describes an audio input device.
type Device struct {
	ID         int
	Name       string
	Channels   int
	SampleRate int
	Default    bool
}

// Enumerator lists available audio input devices.
type Enumerator interface {
	ListInputDevices() ([]Device, error)
}

// FFmpegEnumerator discovers input devices by parsing the device listing
// that ffmpeg prints for the avfoundation capture backend.
type FFmpegEnumerator struct{}

func NewEnumerator() *FFmpegEnumerator {
	return &FFmpegEnumerator{}
}

func (e *FFmpegEnumerator) CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found. Install with: brew install ffmpeg")
	}
	return nil
}

// deviceLine matches lines like: [AVFoundation ...] [0] Built-in Microphone
var deviceLine = regexp.MustCompile(`^\[AVFoundation[^\]]*\]\s+\[(\d+)\]\s+(.+)$`)

// ListInputDevices runs ffmpeg's device listing and returns the audio
// input section. ffmpeg exits non-zero for -list_devices, so the exit
// status is ignored and only the output matters.
func (e *FFmpegEnumerator) ListInputDevices() ([]Device, error) {
	if err := e.CheckFFmpeg(); err != nil {
		return nil, err
	}

	cmd := exec.Command("ffmpeg", "-f", "avfoundation", "-list_devices", "true", "-i", "")
	out, _ := cmd.CombinedOutput()

	return parseDeviceListing(string(out))
}

func parseDeviceListing(out string) ([]Device, error) {
	var devices []Device
	inAudio := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "AVFoundation audio devices"):
			inAudio = true
		case strings.Contains(line, "AVFoundation video devices"):
			inAudio = false
		case inAudio:
			m := deviceLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			id, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			devices = append(devices, Device{
				ID:         id,
				Name:       strings.TrimSpace(m[2]),
				Channels:   1,
				SampleRate: 44100,
			})
		}
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no audio input devices found")
	}
	devices[0].Default = true
	return devices, nil
}
