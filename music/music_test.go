package music

import "testing"

func TestEffectiveDuration(t *testing.T) {
	e := Element{Kind: KindNote, Duration: 0.125, TripletMultiplier: 2.0 / 3.0}
	got := e.EffectiveDuration()
	want := 0.125 * 2.0 / 3.0
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("EffectiveDuration = %v, want %v", got, want)
	}
	plain := Element{Kind: KindNote, Duration: 0.25}
	if plain.EffectiveDuration() != 0.25 {
		t.Fatalf("无连音比例时有效时值应等于记谱时值")
	}
}

func TestBaseDurationStripsDots(t *testing.T) {
	cases := []struct {
		dur  float64
		dots int
		want float64
	}{
		{0.25, 0, 0.25},
		{0.375, 1, 0.25},  // 附点四分
		{0.4375, 2, 0.25}, // 双附点四分
		{0.1875, 1, 0.125},
	}
	for _, c := range cases {
		e := Element{Duration: c.dur, Dots: c.dots}
		got := e.BaseDuration()
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("BaseDuration(%v, dots=%d) = %v, want %v", c.dur, c.dots, got, c.want)
		}
	}
}

func TestDurlog(t *testing.T) {
	cases := []struct {
		d    float64
		want int
	}{
		{1, 0},
		{0.5, -1},
		{0.25, -2},
		{0.125, -3},
		{0.0625, -4},
		{0.03125, -5},
		{0, -2}, // 零时值按四分处理
	}
	for _, c := range cases {
		if got := Durlog(c.d); got != c.want {
			t.Errorf("Durlog(%v) = %d, want %d", c.d, got, c.want)
		}
	}
}

func TestPitchRange(t *testing.T) {
	e := Element{Pitches: []Pitch{{Vertical: 4}, {Vertical: -2}, {Vertical: 9}}}
	lo, hi, ok := e.PitchRange()
	if !ok || lo != -2 || hi != 9 {
		t.Fatalf("PitchRange = (%d, %d, %v), want (-2, 9, true)", lo, hi, ok)
	}
	if _, _, ok := (&Element{}).PitchRange(); ok {
		t.Fatalf("无符头的元素不应报告音高范围")
	}
}

func TestClefMiddleC(t *testing.T) {
	if ClefTreble.MiddleCPitch() != 0 {
		t.Errorf("高音谱表中央 C 应在 0")
	}
	if ClefBass.MiddleCPitch() != 12 {
		t.Errorf("低音谱表中央 C 应在 12")
	}
}

func TestLineIsMusic(t *testing.T) {
	text := Line{Text: "chorus"}
	if text.IsMusic() {
		t.Errorf("纯文本行不应视为乐谱行")
	}
	staved := Line{Staves: []Staff{{}}}
	if !staved.IsMusic() {
		t.Errorf("含谱表的行应视为乐谱行")
	}
}
