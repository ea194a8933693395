package platform

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestConfigDirOverride(t *testing.T) {
	dir, err := ConfigDir("innervation", "/tmp/custom")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", dir)
}

func TestConfigDirUsesAppName(t *testing.T) {
	dir, err := ConfigDir("innervation", "")
	if err != nil {
		t.Skipf("no config or home directory: %v", err)
	}
	assert.Equal(t, "innervation", filepath.Base(dir))
}

func TestSingleInstance(t *testing.T) {
	defer goleak.VerifyNone(t)

	guard, err := AcquireSingleInstance("innervation-test-guard")
	if err != nil {
		t.Skipf("loopback unavailable: %v", err)
	}

	_, err = AcquireSingleInstance("innervation-test-guard")
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	activated := make(chan struct{}, 1)
	guard.Serve(func() {
		activated <- struct{}{}
	})

	require.NoError(t, ActivateRunning("innervation-test-guard"))
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("activation request not delivered")
	}

	require.NoError(t, guard.Release())
	assert.NoError(t, guard.Release())

	again, err := AcquireSingleInstance("innervation-test-guard")
	require.NoError(t, err)
	assert.NotEmpty(t, again.Address())
	assert.NoError(t, again.Release())
}

func TestActivateWithoutRunningInstance(t *testing.T) {
	assert.Error(t, ActivateRunning("innervation-test-nobody-home"))
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("innervation")
	assert.Equal(t, port, portFromName("innervation"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}
