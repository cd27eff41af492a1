// Package affinity keeps a measuring goroutine on one OS thread and, where the
// platform allows it, on one logical CPU.
package affinity

import "runtime"

// Release undoes a Pin.
type Release func()

// Pin locks the calling goroutine to its OS thread. When cpu is not negative
// the thread is also bound to that logical CPU. The returned Release restores
// the previous state and must be called from the same goroutine.
//
// A failed bind still leaves the thread locked; the error is informational and
// the Release is always usable.
func Pin(cpu int) (Release, error) {
	runtime.LockOSThread()

	if cpu < 0 {
		return runtime.UnlockOSThread, nil
	}

	restore, err := bind(cpu)

	return func() {
		restore()
		runtime.UnlockOSThread()
	}, err
}
