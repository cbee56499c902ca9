package model

import "testing"

func TestNewModelDefaultsToEmptySubmeshesAndSlots(t *testing.T) {
	m := NewModel(WithName("empty"))

	if got := m.Submeshes(); len(got) != 0 {
		t.Errorf("Submeshes() = %v, want empty", got)
	}
	if got := m.MaterialSlotNames(); len(got) != 0 {
		t.Errorf("MaterialSlotNames() = %v, want empty", got)
	}
	if got := m.IndexFormat(); got != IndexFormatUint16 {
		t.Errorf("IndexFormat() = %v, want IndexFormatUint16 (zero value)", got)
	}
}

func TestModelSubmeshesMaterialSlotReferencesRenderMaterials(t *testing.T) {
	submeshes := []Submesh{
		{FirstIndex: 0, IndexCount: 6, MaterialSlot: 0, BoundsMin: [3]float32{-1, -1, -1}, BoundsMax: [3]float32{1, 1, 1}},
		{FirstIndex: 6, IndexCount: 3, MaterialSlot: 1, BoundsMin: [3]float32{-1, -1, -1}, BoundsMax: [3]float32{0, 0, 0}},
	}

	m := NewModel(
		WithName("multi-submesh"),
		WithSubmeshes(submeshes...),
		WithMaterialSlotNames("body", "trim"),
		WithIndexCount(9),
		WithIndexFormat(IndexFormatUint32),
		WithBounds([3]float32{-1, -1, -1}, [3]float32{1, 1, 1}),
	)

	if got := m.Submeshes(); len(got) != len(submeshes) {
		t.Fatalf("Submeshes() length = %d, want %d", len(got), len(submeshes))
	}

	names := m.MaterialSlotNames()
	for _, sm := range m.Submeshes() {
		if sm.MaterialSlot < 0 || sm.MaterialSlot >= len(names) {
			t.Errorf("submesh material slot %d out of range for %d names", sm.MaterialSlot, len(names))
		}
	}

	totalIndices := uint32(0)
	for _, sm := range m.Submeshes() {
		totalIndices += sm.IndexCount
	}
	if int(totalIndices) != m.IndexCount() {
		t.Errorf("sum of submesh index counts = %d, want IndexCount() = %d", totalIndices, m.IndexCount())
	}

	if got := m.IndexFormat(); got != IndexFormatUint32 {
		t.Errorf("IndexFormat() = %v, want IndexFormatUint32", got)
	}

	min, max := m.Bounds()
	if min != [3]float32{-1, -1, -1} || max != [3]float32{1, 1, 1} {
		t.Errorf("Bounds() = (%v, %v), want (-1,-1,-1), (1,1,1)", min, max)
	}
}
