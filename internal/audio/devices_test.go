package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `ffmpeg version 6.1 Copyright (c) 2000-2023 the FFmpeg developers
[AVFoundation indev @ 0x7f8] AVFoundation video devices:
[AVFoundation indev @ 0x7f8] [0] FaceTime HD Camera
[AVFoundation indev @ 0x7f8] AVFoundation audio devices:
[AVFoundation indev @ 0x7f8] [0] Built-in Microphone
[AVFoundation indev @ 0x7f8] [1] USB Audio Device
: Input/output error
`

func TestParseDeviceListing(t *testing.T) {
	devices, err := parseDeviceListing(sampleListing)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, 0, devices[0].ID)
	assert.Equal(t, "Built-in Microphone", devices[0].Name)
	assert.True(t, devices[0].Default)

	assert.Equal(t, 1, devices[1].ID)
	assert.Equal(t, "USB Audio Device", devices[1].Name)
	assert.False(t, devices[1].Default)
}

func TestParseDeviceListingSkipsVideoSection(t *testing.T) {
	devices, err := parseDeviceListing(sampleListing)
	require.NoError(t, err)
	for _, d := range devices {
		assert.NotEqual(t, "FaceTime HD Camera", d.Name)
	}
}

func TestParseDeviceListingEmpty(t *testing.T) {
	_, err := parseDeviceListing("ffmpeg version 6.1\n: Input/output error\n")
	assert.Error(t, err)
}
