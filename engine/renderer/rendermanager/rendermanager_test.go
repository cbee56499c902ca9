package rendermanager

import "testing"

func newTestManager() *renderManagerImpl {
	return &renderManagerImpl{
		tempTargets: make(map[RenderTargetDesc][]*tempRenderTargetRecord),
	}
}

func TestBeginNewFrameAdvancesFrameIndexModuloMaxInFlight(t *testing.T) {
	m := newTestManager()

	for i := 0; i < MaxFramesInFlight*2; i++ {
		if got := m.CurrentFrameIndex(); got != i%MaxFramesInFlight {
			t.Fatalf("CurrentFrameIndex() = %d, want %d", got, i%MaxFramesInFlight)
		}
		m.BeginNewFrame()
	}
}

func TestGetTemporaryRenderTargetReusesFreshlyFreedTarget(t *testing.T) {
	m := newTestManager()
	desc := RenderTargetDesc{Width: 256, Height: 256}
	rt := &RenderTarget{Desc: desc}
	m.tempTargets[desc] = []*tempRenderTargetRecord{{target: rt, ageFrames: 3}}

	got, err := m.GetTemporaryRenderTarget(desc)
	if err != nil {
		t.Fatalf("GetTemporaryRenderTarget() error = %v", err)
	}
	if got != rt {
		t.Fatalf("GetTemporaryRenderTarget() returned a different target than the pooled one")
	}
	if m.tempTargets[desc][0].ageFrames != 0 {
		t.Fatalf("reused target age not reset, got %d", m.tempTargets[desc][0].ageFrames)
	}
}

func TestBeginNewFrameEvictsStaleTargetsPastMaxAge(t *testing.T) {
	m := newTestManager()
	desc := RenderTargetDesc{Width: 128, Height: 128}
	rt := &RenderTarget{Desc: desc}
	m.tempTargets[desc] = []*tempRenderTargetRecord{{target: rt, ageFrames: maxTempRenderTargetAge}}

	m.BeginNewFrame()

	if _, ok := m.tempTargets[desc]; ok {
		t.Fatalf("stale render target was not evicted after exceeding max age")
	}
}

func TestBeginNewFrameKeepsTargetsWithinMaxAge(t *testing.T) {
	m := newTestManager()
	desc := RenderTargetDesc{Width: 128, Height: 128}
	rt := &RenderTarget{Desc: desc}
	m.tempTargets[desc] = []*tempRenderTargetRecord{{target: rt, ageFrames: maxTempRenderTargetAge - 1}}

	m.BeginNewFrame()

	records, ok := m.tempTargets[desc]
	if !ok || len(records) != 1 {
		t.Fatalf("render target within max age was evicted")
	}
	if records[0].ageFrames != maxTempRenderTargetAge {
		t.Fatalf("ageFrames = %d, want %d", records[0].ageFrames, maxTempRenderTargetAge)
	}
}

func TestKeepAliveWhileInUseScopedToCurrentFrameSlot(t *testing.T) {
	m := newTestManager()

	m.KeepAliveWhileInUse("handle-a")
	if len(m.keepAlive[0]) != 1 {
		t.Fatalf("handle not recorded in frame slot 0")
	}

	for i := 0; i < MaxFramesInFlight; i++ {
		m.BeginNewFrame()
	}

	if len(m.keepAlive[0]) != 0 {
		t.Fatalf("frame slot 0 retained handles after cycling back to it, want cleared")
	}
}
