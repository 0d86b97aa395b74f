//go:build !windows

package session

import (
	"bufio"
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The worker forks a capture process into its own group; killing the worker
// must take the capture process down with it, or an orphaned recorder keeps
// writing to the temp file.
func TestKillProcessGroupTerminatesChildren(t *testing.T) {
	cmd := exec.Command("sh", "-c", "sleep 30 & echo ready; wait")
	cmd.SysProcAttr = sysProcAttr()

	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	// Wait until the backgrounded child exists before killing.
	ready, err := bufio.NewReader(stdout).ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "ready\n", ready)

	pgid := cmd.Process.Pid
	require.NoError(t, killProcessGroup(cmd.Process))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shell was not reaped after the group kill")
	}

	// Signal 0 checks for surviving group members; an error means the
	// backgrounded sleep died along with its parent.
	require.Eventually(t, func() bool {
		return syscall.Kill(-pgid, 0) != nil
	}, 5*time.Second, 50*time.Millisecond)
}
