package affinity

import (
	"runtime"
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestPinWithoutCPU(t *testing.T) {
	release, err := Pin(-1)
	assert.NoError(t, err)
	assert.True(t, release != nil)

	release()
}

func TestPinCPUZero(t *testing.T) {
	release, _ := Pin(0)
	assert.True(t, release != nil)

	// Release must be callable whether or not the bind succeeded.
	release()
}

func TestPinOutOfRange(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("affinity is only enforced on linux")
	}

	release, err := Pin(1 << 20)
	defer release()

	assert.True(t, err != nil)
}
