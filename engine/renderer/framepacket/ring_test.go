package framepacket

import (
	"sync/atomic"
	"testing"
)

type testFence struct {
	waited atomic.Bool
}

func (f *testFence) Signaled() bool { return f.waited.Load() }
func (f *testFence) Wait()          { f.waited.Store(true) }

func TestRingAcquireCyclesThroughCountSlots(t *testing.T) {
	r := NewRing()

	seen := make(map[*FramePacket]int)
	for i := 0; i < Count*3; i++ {
		packet, retire := r.Acquire()
		seen[packet]++
		retire(&testFence{})
	}

	if len(seen) != Count {
		t.Fatalf("got %d distinct packets, want %d", len(seen), Count)
	}
	for packet, count := range seen {
		if count != 3 {
			t.Errorf("packet %p acquired %d times, want 3", packet, count)
		}
	}
}

func TestRingAcquireWaitsOnPriorFence(t *testing.T) {
	r := NewRing()

	fences := make([]*testFence, 0, Count)
	for i := 0; i < Count; i++ {
		_, retire := r.Acquire()
		f := &testFence{}
		fences = append(fences, f)
		retire(f)
	}

	// Wrapping back around to slot 0 must wait on its recorded fence.
	r.Acquire()
	if !fences[0].Signaled() {
		t.Fatal("Acquire reused a slot without waiting on its prior fence")
	}
}

func TestRingAcquireResetsPacketContents(t *testing.T) {
	r := NewRing()

	packet, retire := r.Acquire()
	packet.AddLight(LightData{Intensity: 1})
	packet.AddMesh(MeshData{VertexCount: 8})
	packet.KeepAlive("some-gpu-handle")
	retire(&testFence{})

	for i := 0; i < Count; i++ {
		packet, retire = r.Acquire()
		retire(&testFence{})
	}

	if len(packet.Lights) != 0 || len(packet.Meshes) != 0 || len(packet.Buffers) != 0 {
		t.Fatalf("reacquired packet was not reset: %+v", packet)
	}
}

func TestFramePacketAddHelpersReturnSequentialIndices(t *testing.T) {
	p := &FramePacket{}

	if idx := p.AddLight(LightData{}); idx != 0 {
		t.Errorf("first AddLight returned %d, want 0", idx)
	}
	if idx := p.AddLight(LightData{}); idx != 1 {
		t.Errorf("second AddLight returned %d, want 1", idx)
	}

	meshIdx := p.AddMesh(MeshData{})
	submeshIdx := p.AddSubmesh(SubmeshData{MeshLocalIdx: meshIdx})
	instanceIdx := p.AddInstance(InstanceData{SubmeshLocalIdx: submeshIdx})

	if p.Submeshes[submeshIdx].MeshLocalIdx != meshIdx {
		t.Errorf("submesh does not reference its mesh by local index")
	}
	if p.Instances[instanceIdx].SubmeshLocalIdx != submeshIdx {
		t.Errorf("instance does not reference its submesh by local index")
	}
}
