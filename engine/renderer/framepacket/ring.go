package framepacket

import "sync"

// Count is the number of frame packets kept in flight (N = 2): one being
// extracted by the game thread while the other is still rendering.
const Count = 2

// Fence reports whether the GPU work a render submission produced has
// finished. RenderManager hands out the concrete implementation; Ring only
// ever waits on it.
type Fence interface {
	// Signaled reports completion without blocking.
	Signaled() bool
	// Wait blocks until the work is complete.
	Wait()
}

// Ring cycles through Count FramePacket slots. Acquire never reuses a slot
// until the fence recorded for its previous occupant has signaled, matching
// the rule that a packet slot is reused only after its retirement fence
// signals.
type Ring struct {
	mu      sync.Mutex
	packets [Count]*FramePacket
	fences  [Count]Fence
	next    int
}

// NewRing constructs a Ring with Count empty packets ready to acquire.
func NewRing() *Ring {
	r := &Ring{}
	for i := range r.packets {
		r.packets[i] = &FramePacket{}
	}
	return r
}

// Acquire selects the next slot in the ring, blocks on its prior occupant's
// retirement fence if one is still pending, resets it, and returns the
// packet along with a function the caller must invoke with this frame's
// fence once GPU work referencing the packet has been submitted. The game
// thread blocks here and nowhere else in extraction.
func (r *Ring) Acquire() (*FramePacket, func(Fence)) {
	r.mu.Lock()
	slot := r.next
	r.next = (r.next + 1) % Count
	fence := r.fences[slot]
	r.fences[slot] = nil
	r.mu.Unlock()

	if fence != nil {
		fence.Wait()
	}

	packet := r.packets[slot]
	packet.reset()

	return packet, func(f Fence) {
		r.mu.Lock()
		r.fences[slot] = f
		r.mu.Unlock()
	}
}
