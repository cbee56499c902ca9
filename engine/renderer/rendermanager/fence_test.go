package rendermanager

import "testing"

func TestFenceSignaledOnlyAfterSignal(t *testing.T) {
	f := NewFence()
	if f.Signaled() {
		t.Fatal("new fence reports signaled")
	}

	f.Signal()
	if !f.Signaled() {
		t.Fatal("fence did not report signaled after Signal")
	}

	done := make(chan struct{})
	go func() {
		f.Wait()
		close(done)
	}()
	<-done
}

func TestFenceSignalIsIdempotent(t *testing.T) {
	f := NewFence()
	f.Signal()
	f.Signal() // must not panic on double-close
	if !f.Signaled() {
		t.Fatal("fence not signaled")
	}
}
