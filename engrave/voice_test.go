package engrave

import (
	"math"
	"testing"

	"github.com/ByLCY/stave/music"
)

func makeNote(dur, w float64) *Composite {
	c := newComposite(&music.Element{Kind: music.KindNote}, dur, 1)
	c.AddRight(&Positioned{W: w, ScaleX: 1, ScaleY: 1})
	return c
}

func makeBar() *Composite {
	c := newComposite(&music.Element{Kind: music.KindBar}, 0, 1)
	c.AddRight(&Positioned{W: 0.4, ScaleX: 1, ScaleY: 1})
	return c
}

func TestDurUnits(t *testing.T) {
	if got := durUnits(0.125); math.Abs(got-1) > 1e-9 {
		t.Fatalf("八分音符应占 1 个间距单位，得到 %v", got)
	}
	if got := durUnits(0.5); math.Abs(got-2) > 1e-9 {
		t.Fatalf("二分音符应占 2 个间距单位，得到 %v", got)
	}
	if durUnits(0) != 0 {
		t.Fatalf("零时值不占间距单位")
	}
}

// 时值越长间距越宽，但按平方根而非线性比例。
func TestSpacingGrowsWithDuration(t *testing.T) {
	v := &voiceLine{items: []*Composite{
		makeNote(0.25, 2), makeNote(0.25, 2), makeNote(0.5, 2), makeNote(0.5, 2),
	}}
	spaceLine([]*voiceLine{v}, 0, 3)
	gapQuarter := v.items[1].X - v.items[0].X
	gapHalf := v.items[3].X - v.items[2].X
	if gapHalf <= gapQuarter {
		t.Fatalf("二分间距 %v 应大于四分间距 %v", gapHalf, gapQuarter)
	}
	if gapHalf >= 2*gapQuarter {
		t.Fatalf("平方根间距下二分不应达到四分的两倍: %v vs %v", gapHalf, gapQuarter)
	}
}

// 不同声部里时值索引相同的元素必须落在同一 x 上。
func TestSimultaneousElementsAlign(t *testing.T) {
	v1 := &voiceLine{items: []*Composite{makeNote(0.5, 4), makeNote(0.5, 4)}}
	v2 := &voiceLine{items: []*Composite{
		makeNote(0.25, 2), makeNote(0.25, 2), makeNote(0.25, 2), makeNote(0.25, 2),
	}}
	spaceLine([]*voiceLine{v1, v2}, 0, 3)
	if v1.items[0].X != v2.items[0].X {
		t.Fatalf("行首元素未对齐: %v vs %v", v1.items[0].X, v2.items[0].X)
	}
	if v1.items[1].X != v2.items[2].X {
		t.Fatalf("时值索引 0.5 的元素未对齐: %v vs %v", v1.items[1].X, v2.items[2].X)
	}
	// 最靠右的诉求获胜：对齐点不得早于任一声部自己的最小位置
	if v1.items[1].X < v2.items[1].X+v2.items[1].MinWidth() {
		t.Fatalf("对齐点侵入了另一声部的最小间距")
	}
}

func TestJustifyFillsTarget(t *testing.T) {
	v := &voiceLine{items: []*Composite{
		makeNote(0.25, 2), makeNote(0.25, 2), makeNote(0.25, 2), makeNote(0.25, 2), makeBar(),
	}}
	opts := DefaultOptions()
	width := justifyLine([]*voiceLine{v}, 0, 40, &opts)
	if math.Abs(width-40) > 0.5 {
		t.Fatalf("拉伸后宽度 = %v, 目标 40", width)
	}
	for i := 1; i < len(v.items); i++ {
		if v.items[i].X <= v.items[i-1].X {
			t.Fatalf("拉伸不应打乱元素顺序")
		}
	}
}

// 混合时值的行必须拉满：上限约束落在最短间隙上，长音符的间隙可以
// 超过 MaxSpacingGap，全音符不会卡住整行的拉伸。
func TestJustifyMixedDurationsFillTarget(t *testing.T) {
	items := []*Composite{makeNote(1, 2)}
	for i := 0; i < 8; i++ {
		items = append(items, makeNote(0.125, 2))
	}
	items = append(items, makeBar())
	v := &voiceLine{items: items}
	opts := DefaultOptions()
	width := justifyLine([]*voiceLine{v}, 0, 150, &opts)
	if math.Abs(width-150) > 0.5 {
		t.Fatalf("混合时值行未拉满: width=%v, 目标 150", width)
	}
	minGap, maxGap := math.Inf(1), 0.0
	for i := 1; i < len(v.items); i++ {
		gap := v.items[i].X - v.items[i-1].X
		if gap < minGap {
			minGap = gap
		}
		if gap > maxGap {
			maxGap = gap
		}
	}
	if minGap > opts.MaxSpacingGap+1e-6 {
		t.Fatalf("最短间隙 %v 超过上限 %v", minGap, opts.MaxSpacingGap)
	}
	if maxGap <= opts.MaxSpacingGap {
		t.Fatalf("全音符的间隙应按时值比例超过上限: %v", maxGap)
	}
}

// 稀疏的等时值行受间隙上限约束，不会被拉满。
func TestJustifyCappedByMaxGap(t *testing.T) {
	v := &voiceLine{items: []*Composite{makeNote(0.25, 2), makeNote(0.25, 2), makeBar()}}
	opts := DefaultOptions()
	width := justifyLine([]*voiceLine{v}, 0, 200, &opts)
	if width > 100 {
		t.Fatalf("稀疏行不应被拉满: width=%v", width)
	}
	for i := 1; i < len(v.items); i++ {
		gap := v.items[i].X - v.items[i-1].X
		if gap > opts.MaxSpacingGap+1e-6 {
			t.Fatalf("间隙 %v 超过上限 %v", gap, opts.MaxSpacingGap)
		}
	}
}

func TestWholeRestCentered(t *testing.T) {
	rest := newComposite(&music.Element{Kind: music.KindRest}, 1, 1)
	rest.AddRight(&Positioned{W: 3.5, ScaleX: 1, ScaleY: 1})
	rest.WholeRest = true
	bar1, bar2 := makeBar(), makeBar()
	v := &voiceLine{items: []*Composite{bar1, rest, bar2}}
	opts := DefaultOptions()
	justifyLine([]*voiceLine{v}, 0, 60, &opts)

	left := bar1.X + bar1.MinWidth()
	right := bar2.X
	want := (left+right)/2 - rest.MinWidth()/2
	if math.Abs(rest.X-want) > 1e-9 {
		t.Fatalf("整小节休止未居中: X=%v want %v", rest.X, want)
	}
}

// 连音留下的浮点残差在小节线处收拢，小节之后各声部重新同步。
func TestBarlineResync(t *testing.T) {
	third := 1.0 / 12.0
	v1 := &voiceLine{items: []*Composite{
		makeNote(third, 2), makeNote(third, 2), makeNote(third, 2), makeBar(), makeNote(0.25, 2),
	}}
	v2 := &voiceLine{items: []*Composite{makeNote(0.25, 2), makeBar(), makeNote(0.25, 2)}}
	spaceLine([]*voiceLine{v1, v2}, 0, 3)
	if v1.items[3].X != v2.items[1].X {
		t.Fatalf("小节线未对齐: %v vs %v", v1.items[3].X, v2.items[1].X)
	}
	if v1.items[4].X != v2.items[2].X {
		t.Fatalf("小节后的音符未重新同步: %v vs %v", v1.items[4].X, v2.items[2].X)
	}
}
