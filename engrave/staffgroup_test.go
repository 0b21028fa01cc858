package engrave

import (
	"testing"

	"github.com/ByLCY/stave/music"
)

func bandNote(above, below map[Band]float64) *Composite {
	c := newComposite(&music.Element{Kind: music.KindNote}, 0.25, 1)
	c.AddRight(&Positioned{W: 2.7, Pitch: 6, Top: 7, Bottom: 5, ScaleX: 1, ScaleY: 1})
	for band, h := range above {
		c.AddChild(&Positioned{Text: "x", H: h, Band: band, ScaleX: 1, ScaleY: 1})
	}
	for band, h := range below {
		c.AddChild(&Positioned{Text: "x", H: h, Band: band, Below: true, ScaleX: 1, ScaleY: 1})
	}
	return c
}

// 上方纵带由内到外：歌词、和弦、反复房子、力度、段落、速度。
func TestAboveBandOrder(t *testing.T) {
	agg := Bands{Lyric: 4, Chord: 4, Ending: 4, Dynamic: 4, Part: 4, Tempo: 4}
	r := resolveAbove(agg, 12, 1)
	if !(r.lyric < r.chord && r.chord < r.ending && r.ending < r.dynamic &&
		r.dynamic < r.part && r.part < r.tempo) {
		t.Fatalf("上方纵带顺序错误: %+v", r)
	}
	if r.lyric <= 12 {
		t.Fatalf("最内侧纵带应在谱表延展之外")
	}
	if r.outer <= r.tempo {
		t.Fatalf("outer 应覆盖最外侧纵带")
	}
}

// 下方纵带向下堆叠，歌词永远在最外侧（最低处）。
func TestBelowBandsStackDownward(t *testing.T) {
	agg := Bands{Lyric: 4, Chord: 4, Dynamic: 4}
	r := resolveBelow(agg, 0, 1)
	if !(r.chord > r.dynamic && r.dynamic > r.lyric) {
		t.Fatalf("下方纵带应向下堆叠且歌词最外: %+v", r)
	}
	if r.chord >= 0 {
		t.Fatalf("最内侧纵带应低于谱表延展")
	}
	if r.outer != r.lyric {
		t.Fatalf("歌词应贴着下缘: outer=%v lyric=%v", r.outer, r.lyric)
	}
}

// 其它下方纵带缺席时歌词仍是最外侧；有和弦名时歌词被推得更低。
func TestLyricOutermostBelow(t *testing.T) {
	alone := resolveBelow(Bands{Lyric: 4}, 0, 1)
	if alone.outer != alone.lyric {
		t.Fatalf("只有歌词时它就是下缘: %+v", alone)
	}
	with := resolveBelow(Bands{Lyric: 4, Chord: 4}, 0, 1)
	if with.lyric >= with.chord {
		t.Fatalf("有和弦名时歌词应被推到更外侧: %+v", with)
	}
	if with.outer != with.lyric {
		t.Fatalf("歌词应保持最外: %+v", with)
	}
}

// 空带不占空间：只有歌词时和弦带不引入额外偏移。
func TestEmptyBandsSkipped(t *testing.T) {
	only := resolveAbove(Bands{Lyric: 4}, 12, 1)
	both := resolveAbove(Bands{Lyric: 4, Chord: 4}, 12, 1)
	if only.outer >= both.outer {
		t.Fatalf("增加纵带应扩大总延展")
	}
	if only.lyric != both.lyric {
		t.Fatalf("空的外侧纵带不应影响内侧位置")
	}
}

// 力度与音量合并一层。
func TestVolumeAndDynamicShareBand(t *testing.T) {
	r := resolveAbove(Bands{Volume: 3, Dynamic: 5}, 12, 1)
	if r.volume != r.dynamic {
		t.Fatalf("力度与音量应共享基线: %v vs %v", r.volume, r.dynamic)
	}
}

// 有和弦名时反复房子额外让出空间。
func TestEndingGapWithChords(t *testing.T) {
	without := resolveAbove(Bands{Ending: 4}, 12, 1)
	with := resolveAbove(Bands{Ending: 4, Chord: 4}, 12, 1)
	gapWithout := without.ending - 12
	gapWith := with.ending - with.chord - 4 // 减去和弦带自身厚度
	if gapWith <= gapWithout {
		t.Fatalf("有和弦名时反复房子应离谱表更远")
	}
}

// 整行一次性解析：同一条带在所有元素上共享基线。
func TestResolveVerticalSharedBaseline(t *testing.T) {
	n1 := bandNote(map[Band]float64{BandChord: 4}, map[Band]float64{BandLyric: 4})
	n2 := bandNote(map[Band]float64{BandChord: 6}, map[Band]float64{BandLyric: 2})
	voices := []*voiceLine{{items: []*Composite{n1, n2}}}
	opts := DefaultOptions()
	top, bottom := resolveVertical(voices, &opts)

	pitchOfBand := func(c *Composite, band Band) float64 {
		for _, p := range c.Children() {
			if p.Band == band {
				return p.Pitch
			}
		}
		t.Fatalf("缺少纵带子单元")
		return 0
	}
	if pitchOfBand(n1, BandChord) != pitchOfBand(n2, BandChord) {
		t.Fatalf("和弦带基线应整行一致")
	}
	if pitchOfBand(n1, BandLyric) != pitchOfBand(n2, BandLyric) {
		t.Fatalf("歌词带基线应整行一致")
	}
	if top <= topLinePitch {
		t.Fatalf("上延展应超出谱线: %v", top)
	}
	if bottom >= bottomLinePitch {
		t.Fatalf("下延展应低于谱线: %v", bottom)
	}
}

// 符干伸出的延展推开纵带。
func TestStemsPushBands(t *testing.T) {
	plain := bandNote(map[Band]float64{BandChord: 4}, nil)
	voicesA := []*voiceLine{{items: []*Composite{plain}}}
	opts := DefaultOptions()
	resolveVertical(voicesA, &opts)
	basePitch := 0.0
	for _, p := range plain.Children() {
		if p.Band == BandChord {
			basePitch = p.Pitch
		}
	}

	tall := bandNote(map[Band]float64{BandChord: 4}, nil)
	tall.AddRight(&Positioned{Kind: KindStem, Pitch: 6, EndPitch: 16, Top: 16, Bottom: 6, ScaleX: 1, ScaleY: 1})
	voicesB := []*voiceLine{{items: []*Composite{tall}}}
	resolveVertical(voicesB, &opts)
	tallPitch := 0.0
	for _, p := range tall.Children() {
		if p.Band == BandChord {
			tallPitch = p.Pitch
		}
	}
	if tallPitch <= basePitch {
		t.Fatalf("高符干应把纵带推得更远: %v vs %v", tallPitch, basePitch)
	}
}
