package rendermanager

import "sync"

// Fence is the concrete framepacket.Fence this package hands out. The
// backend has no GPU-side submitted-work-done callback wired yet, so a fence
// is signaled cooperatively: the caller that knows a frame's GPU submission
// has retired (in practice, once its command buffer has been submitted and
// the following frame has been acquired from the swap chain, which the
// current single-threaded frame loop already serializes on) calls Signal.
type Fence struct {
	once sync.Once
	done chan struct{}
}

// NewFence returns an unsignaled Fence.
func NewFence() *Fence {
	return &Fence{done: make(chan struct{})}
}

// Signal marks the fence complete. Safe to call more than once.
func (f *Fence) Signal() {
	f.once.Do(func() { close(f.done) })
}

func (f *Fence) Signaled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Fence) Wait() {
	<-f.done
}
