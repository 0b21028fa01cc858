package glyph

import "testing"

// 表中的每个符号必须有轮廓与正的度量；表是布局几何的唯一来源，
// 一个零宽符号会静默地压坏整行间距。
func TestTableComplete(t *testing.T) {
	ids := []ID{
		NoteheadWhole, NoteheadHalf, NoteheadQuarter, Dot,
		AccSharp, AccFlat, AccNatural, AccDblSharp, AccDblFlat,
		ClefG, ClefF, ClefC,
		RestWhole, RestHalf, RestQuarter, Rest8th, Rest16th, Rest32nd, Rest64th,
		FlagU8th, FlagU16th, FlagU32nd, FlagU64th,
		FlagD8th, FlagD16th, FlagD32nd, FlagD64th,
		TimeCommon, TimeCut,
		Fermata, Staccato, Accent, Mordent,
	}
	for _, id := range ids {
		g, ok := Lookup(id)
		if !ok {
			t.Errorf("缺少符号 %s", id)
			continue
		}
		if g.Path == "" {
			t.Errorf("符号 %s 缺少轮廓", id)
		}
		if g.W <= 0 || g.H <= 0 {
			t.Errorf("符号 %s 度量非法: W=%v H=%v", id, g.W, g.H)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("noteheads.cluster"); ok {
		t.Fatalf("未定义的符号不应命中")
	}
	if Known("noteheads.cluster") {
		t.Fatalf("Known 应与 Lookup 一致")
	}
	if w := Width("noteheads.cluster"); w != 0 {
		t.Fatalf("未知符号宽度应为 0，得到 %v", w)
	}
}

func TestHalfHeadsNarrowerThanWhole(t *testing.T) {
	whole, _ := Lookup(NoteheadWhole)
	quarter, _ := Lookup(NoteheadQuarter)
	if whole.W <= quarter.W {
		t.Fatalf("全音符符头应宽于四分符头: %v vs %v", whole.W, quarter.W)
	}
}
