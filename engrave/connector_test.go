package engrave

import (
	"testing"
)

func anchorAt(pitch, top, bottom float64) *Positioned {
	p := &Positioned{Pitch: pitch, EndPitch: pitch, Top: top, Bottom: bottom, W: 2.7, ScaleX: 1, ScaleY: 1}
	p.x = 30
	return p
}

func TestSlurDirectionFollowsStems(t *testing.T) {
	// 上行符干 → 弧线在下
	c := newConnector(false, 0, anchorAt(4, 4, 4), true, false, false)
	if c.above {
		t.Fatalf("上行符干的圆滑线应在下方")
	}
	// 下行符干 → 弧线在上
	c = newConnector(false, 0, anchorAt(8, 8, 8), false, false, false)
	if !c.above {
		t.Fatalf("下行符干的圆滑线应在上方")
	}
	// 显式方向不受符干影响
	c = newConnector(false, 0, anchorAt(4, 4, 4), true, true, true)
	if !c.above {
		t.Fatalf("强制方向应保持调用方给定值")
	}
}

// 关闭锚点的音高等于其最高延展（符干朝下的代理）时，方向改写为上。
func TestSlurCloseOverridesDirection(t *testing.T) {
	c := newConnector(false, 0, anchorAt(4, 4, 4), true, false, false)
	if c.above {
		t.Fatalf("前置条件：起始方向应在下")
	}
	c.close(anchorAt(8, 8, 2))
	if !c.above {
		t.Fatalf("符干朝下的闭合锚点应把方向改写为上")
	}
}

func TestTieIgnoresDirectionOverride(t *testing.T) {
	c := newConnector(true, 0, anchorAt(4, 5, 3), true, false, false)
	c.close(anchorAt(8, 8, 2))
	if c.above {
		t.Fatalf("延音线不应用闭合方向改写")
	}
	// 延音线锚定字面音高而非延展
	if got := c.anchorPitch(anchorAt(4, 9, -1)); got != 4 {
		t.Fatalf("延音线锚点音高 = %v, want 4", got)
	}
}

func TestSlurPoolExactSlot(t *testing.T) {
	cp := newConnectorPool()
	a, b := anchorAt(4, 4, 4), anchorAt(6, 6, 6)
	cp.startSlur(1, a, true, false, false)
	cp.startSlur(2, b, true, false, false)
	end := anchorAt(8, 8, 8)
	cp.endSlur(2, end)
	if len(cp.done) != 1 {
		t.Fatalf("应闭合一条圆滑线")
	}
	if cp.done[0].startAnchor != b {
		t.Fatalf("槽位 2 的闭合应配对槽位 2 的起点")
	}
	if _, open := cp.openSlurs[1]; !open {
		t.Fatalf("槽位 1 应保持开放")
	}
}

// 找不到精确槽位时任取一条开放圆滑线，完全没有开放槽位时丢弃。
func TestSlurPoolFallbackAndDrop(t *testing.T) {
	cp := newConnectorPool()
	cp.startSlur(1, anchorAt(4, 4, 4), true, false, false)
	cp.endSlur(9, anchorAt(6, 6, 6))
	if len(cp.done) != 1 || len(cp.openSlurs) != 0 {
		t.Fatalf("错配槽位应回退到任一开放槽位")
	}
	cp.endSlur(9, anchorAt(6, 6, 6))
	if len(cp.done) != 1 {
		t.Fatalf("无开放槽位时关闭事件应被丢弃")
	}
}

func TestTiePoolMatchesByPitch(t *testing.T) {
	cp := newConnectorPool()
	cp.startTie(4, anchorAt(4, 5, 3), true)
	cp.startTie(8, anchorAt(8, 9, 7), true)
	cp.endTies(map[int]*Positioned{4: anchorAt(4, 5, 3)})
	if len(cp.done) != 1 {
		t.Fatalf("只有同音高的延音线应闭合")
	}
	if _, open := cp.openTies[8]; !open {
		t.Fatalf("音高 8 的延音线应保持开放")
	}
}

func TestFinishLineDegradesToFallback(t *testing.T) {
	cp := newConnectorPool()
	cp.startSlur(0, anchorAt(4, 4, 4), true, false, false)
	cp.startTie(6, anchorAt(6, 7, 5), false)
	cp.finishLine()
	if len(cp.done) != 2 || len(cp.openSlurs) != 0 || len(cp.openTies) != 0 {
		t.Fatalf("行尾应清空全部开放连线")
	}
	for _, c := range cp.done {
		if c.state != connFallback {
			t.Fatalf("行尾闭合的连线应处于回退状态")
		}
	}
}

func TestConnectorDrawEmitsCurve(t *testing.T) {
	ctx := newLayoutContext(DefaultOptions())
	ctx.lineStartX = 10
	ctx.lineEndX = 100
	sc := staffCoords{topY: 50, step: 1}

	c := newConnector(false, 0, anchorAt(4, 4, 4), true, false, false)
	c.close(anchorAt(4, 4, 4))
	sb := newScoreBuilder()
	c.draw(sb, sc, ctx)
	if len(sb.score.Paths) != 1 {
		t.Fatalf("闭合连线应输出一条弧线")
	}
	if !sb.score.Paths[0].Fill {
		t.Fatalf("弧线应为填充轮廓")
	}

	// 开放连线不绘制
	open := newConnector(false, 0, anchorAt(4, 4, 4), true, false, false)
	sb2 := newScoreBuilder()
	open.draw(sb2, sc, ctx)
	if len(sb2.score.Paths) != 0 {
		t.Fatalf("未闭合的连线不应绘制")
	}
}

// 回退到行首的连线被最近的反复小节线裁剪。
func TestFallbackClippedByRepeat(t *testing.T) {
	ctx := newLayoutContext(DefaultOptions())
	ctx.lineStartX = 10
	ctx.lineEndX = 100
	ctx.lastRepeatX = 25
	sc := staffCoords{topY: 50, step: 1}

	end := anchorAt(4, 4, 4)
	c := &Connector{state: connFallback, tie: true, endAnchor: end}
	sb := newScoreBuilder()
	c.draw(sb, sc, ctx)
	if len(sb.score.Paths) != 1 {
		t.Fatalf("回退连线应输出一条弧线")
	}
	if sb.score.Paths[0].X != 25 {
		t.Fatalf("回退起点应被反复小节线裁剪到 25，得到 %v", sb.score.Paths[0].X)
	}
}

func TestTripletRidesBeam(t *testing.T) {
	a := makeMember(10, 4, -3)
	b := makeMember(20, 4, -3)
	beam := closedBeam(a, b)
	layoutBeam(beam)

	tr := &Triplet{label: 3, startHost: a, endHost: b}
	tr.setBeam(beam)
	if tr.beam == nil {
		t.Fatalf("两端同杠时连音应骑在杠上")
	}

	ctx := newLayoutContext(DefaultOptions())
	sc := staffCoords{topY: 50, step: 1}
	sb := newScoreBuilder()
	tr.draw(sb, sc, ctx)
	if len(sb.score.Lines) != 0 {
		t.Fatalf("骑杠连音不应画括号")
	}
	if len(sb.score.Texts) != 1 || sb.score.Texts[0].Content != "3" {
		t.Fatalf("骑杠连音应只输出数字")
	}
}

func TestTripletBracketWithGap(t *testing.T) {
	a := makeMember(10, 4, -2)
	a.AddRight(&Positioned{W: 2.7, Pitch: 4, Top: 5, Bottom: 3, ScaleX: 1, ScaleY: 1})
	a.SetX(10)
	b := makeMember(30, 6, -2)
	b.AddRight(&Positioned{W: 2.7, Pitch: 6, Top: 7, Bottom: 5, ScaleX: 1, ScaleY: 1})
	b.SetX(30)
	tr := &Triplet{label: 3, startHost: a, endHost: b}

	ctx := newLayoutContext(DefaultOptions())
	sc := staffCoords{topY: 50, step: 1}
	sb := newScoreBuilder()
	tr.draw(sb, sc, ctx)
	// 两个小钩加两段横线
	if len(sb.score.Lines) != 4 {
		t.Fatalf("括号连音应输出 4 条线段，得到 %d", len(sb.score.Lines))
	}
	if len(sb.score.Texts) != 1 || sb.score.Texts[0].Content != "3" {
		t.Fatalf("括号中央应有数字")
	}
	// 中间缺口：两段横线不相接
	if sb.score.Lines[2].X2 >= sb.score.Lines[3].X1 {
		t.Fatalf("数字两侧的横线应留缺口")
	}
}

func TestSetBeamRejectsPartialMembership(t *testing.T) {
	a := makeMember(10, 4, -3)
	b := makeMember(20, 4, -3)
	outside := makeMember(40, 4, -2)
	beam := closedBeam(a, b)
	layoutBeam(beam)

	tr := &Triplet{label: 3, startHost: a, endHost: outside}
	tr.setBeam(beam)
	if tr.beam != nil {
		t.Fatalf("终点不在杠内时连音不应骑杠")
	}
}
