package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCmdHasOpenFlag(t *testing.T) {
	cmd := NewStartCmd(&Dependencies{})
	flag := cmd.Flags().Lookup("open")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestOpenerName(t *testing.T) {
	assert.Equal(t, "open", openerName("darwin"))
	assert.Equal(t, "explorer", openerName("windows"))
	assert.Equal(t, "xdg-open", openerName("linux"))
}

func TestWaitForStopRequestReturnsOnWorkerExit(t *testing.T) {
	exited := make(chan struct{})
	close(exited)

	result := make(chan bool, 1)
	go func() { result <- waitForStopRequest(exited) }()

	select {
	case diedEarly := <-result:
		assert.True(t, diedEarly)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after the worker exited")
	}
}
