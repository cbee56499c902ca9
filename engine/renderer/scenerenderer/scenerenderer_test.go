package scenerenderer

import (
	"testing"

	"github.com/kestrel-games/scenerender/engine/game_object"
	"github.com/kestrel-games/scenerender/engine/light"
	"github.com/kestrel-games/scenerender/engine/model"
	"github.com/kestrel-games/scenerender/engine/renderer/framepacket"
)

func TestExtractLightCopiesAllFields(t *testing.T) {
	l := light.NewLight(light.LightTypeSpot,
		light.WithPosition(1, 2, 3),
		light.WithDirection(0, -1, 0),
		light.WithColor(1, 0.5, 0.25),
		light.WithIntensity(2),
		light.WithRange(10),
		light.WithSpotCone(10, 20),
		light.WithCastsShadows(true),
	)

	got := extractLight(l)
	if got.Position != ([3]float32{1, 2, 3}) {
		t.Errorf("Position = %v, want (1,2,3)", got.Position)
	}
	if got.Color != ([3]float32{1, 0.5, 0.25}) {
		t.Errorf("Color = %v, want (1,0.5,0.25)", got.Color)
	}
	if !got.CastsShadow {
		t.Error("CastsShadow = false, want true")
	}
	if got.Type != light.LightTypeSpot {
		t.Errorf("Type = %v, want spot", got.Type)
	}
}

func TestAddModelGeometryUsesSubmeshTable(t *testing.T) {
	mdl := model.NewModel(
		model.WithBounds([3]float32{-1, -1, -1}, [3]float32{1, 1, 1}),
		model.WithSubmeshes(
			model.Submesh{IndexCount: 6, MaterialSlot: 0, BoundsMin: [3]float32{-1, 0, -1}, BoundsMax: [3]float32{1, 1, 1}},
			model.Submesh{IndexCount: 12, MaterialSlot: 1, BoundsMin: [3]float32{-1, -1, -1}, BoundsMax: [3]float32{1, 0, 1}},
		),
	)

	pkt := &framepacket.FramePacket{}
	idxs := addModelGeometry(pkt, mdl)

	if len(idxs) != 2 {
		t.Fatalf("len(idxs) = %d, want 2", len(idxs))
	}
	if len(pkt.Meshes) != 1 {
		t.Errorf("len(pkt.Meshes) = %d, want 1 (shared across submeshes)", len(pkt.Meshes))
	}
	if pkt.Submeshes[idxs[0]].IndexCount != 6 || pkt.Submeshes[idxs[1]].IndexCount != 12 {
		t.Errorf("submesh index counts = %v, %v, want 6, 12", pkt.Submeshes[idxs[0]].IndexCount, pkt.Submeshes[idxs[1]].IndexCount)
	}
}

func TestAddModelGeometryFallsBackToWholeMeshSubmesh(t *testing.T) {
	mdl := model.NewModel(model.WithIndexCount(36))

	pkt := &framepacket.FramePacket{}
	idxs := addModelGeometry(pkt, mdl)

	if len(idxs) != 1 {
		t.Fatalf("len(idxs) = %d, want 1", len(idxs))
	}
	if pkt.Submeshes[idxs[0]].IndexCount != 36 {
		t.Errorf("IndexCount = %d, want 36", pkt.Submeshes[idxs[0]].IndexCount)
	}
}

func TestExtractObjectsSharesGeometryAcrossInstances(t *testing.T) {
	mdl := model.NewModel(model.WithIndexCount(3))
	objA := game_object.NewGameObject(game_object.WithModel(mdl), game_object.WithPosition(1, 0, 0), game_object.WithScale(1, 1, 1))
	objB := game_object.NewGameObject(game_object.WithModel(mdl), game_object.WithPosition(2, 0, 0), game_object.WithScale(1, 1, 1))
	disabled := game_object.NewGameObject(game_object.WithModel(mdl), game_object.WithEnabled(false))

	pkt := &framepacket.FramePacket{}
	extractObjects(pkt, []game_object.GameObject{objA, objB, disabled})

	if len(pkt.Meshes) != 1 {
		t.Errorf("len(pkt.Meshes) = %d, want 1 (shared model)", len(pkt.Meshes))
	}
	if len(pkt.Instances) != 2 {
		t.Errorf("len(pkt.Instances) = %d, want 2 (disabled object skipped)", len(pkt.Instances))
	}
	if pkt.Instances[0].LocalToWorldMtx[12] != 1 || pkt.Instances[1].LocalToWorldMtx[12] != 2 {
		t.Errorf("instance translations = %v, %v, want 1, 2", pkt.Instances[0].LocalToWorldMtx[12], pkt.Instances[1].LocalToWorldMtx[12])
	}
}

func TestHideCulledShadowCastersSkipsOnlyInvisiblePunctualCasters(t *testing.T) {
	visible := light.NewLight(light.LightTypePoint, light.WithCastsShadows(true))
	culled := light.NewLight(light.LightTypePoint, light.WithCastsShadows(true))
	dir := light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true))

	sr := &SceneRenderer{lastLights: []light.Light{visible, culled, dir}}
	restore := sr.hideCulledShadowCasters(map[int]bool{0: true, 2: true})

	if !visible.CastsShadows() {
		t.Error("visible light's CastsShadows was disabled, want untouched")
	}
	if culled.CastsShadows() {
		t.Error("culled light's CastsShadows still true, want temporarily disabled")
	}
	if !dir.CastsShadows() {
		t.Error("directional light's CastsShadows was disabled, want always untouched")
	}

	restore()
	if !culled.CastsShadows() {
		t.Error("culled light's CastsShadows not restored after restore()")
	}
}

func TestCrossAndNormalizeVec3(t *testing.T) {
	x := crossVec3([3]float32{1, 0, 0}, [3]float32{0, 1, 0})
	if x != ([3]float32{0, 0, 1}) {
		t.Errorf("cross((1,0,0),(0,1,0)) = %v, want (0,0,1)", x)
	}

	n := normalizeVec3([3]float32{0, 3, 4})
	if n[1] < 0.599 || n[1] > 0.601 || n[2] < 0.799 || n[2] > 0.801 {
		t.Errorf("normalize(0,3,4) = %v, want ~(0, 0.6, 0.8)", n)
	}
}
