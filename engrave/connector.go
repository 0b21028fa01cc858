package engrave

import (
	"math"
	"sort"
	"strconv"
)

// 连线路由：延音线与圆滑线共用一个弧线模型，连音共用一个括号+数字
// 模型。连线的两端是非拥有的锚点引用；缺失的锚点按行边界回退，这
// 不是错误——跨行连线在每行各画一半。

type connectorState int

const (
	connOpen connectorState = iota
	connClosed
	connFallback // 至少一端缺失，按行边界回退
)

// Connector 是一条延音线（tie）或圆滑线（slur）。
type Connector struct {
	state connectorState

	tie  bool
	slot int

	startAnchor *Positioned // nil = 从行首延伸
	endAnchor   *Positioned // nil = 延伸到行尾

	above  bool
	forced bool // 方向被显式指定，关闭时不再改写
}

// newConnector 在元素声明连线起点时创建。方向来自创建时刻捕获的
// 符干方向（上行符干 → 弧线在下），forced 为真时保持调用方给定值。
func newConnector(tie bool, slot int, anchor *Positioned, stemsUp, forced, above bool) *Connector {
	c := &Connector{state: connOpen, tie: tie, slot: slot, startAnchor: anchor}
	if forced {
		c.above = above
		c.forced = true
	} else {
		c.above = !stemsUp
	}
	return c
}

// close 绑定终点锚点。圆滑线在此应用方向改写：若闭合锚点自身的
// 音高等于其最高延展（符干不朝上的廉价代理），方向强制为上。
// 延音线永远锚定字面音高，歌词与装饰不应干扰其位置。
func (c *Connector) close(anchor *Positioned) {
	if c.state != connOpen {
		return
	}
	c.endAnchor = anchor
	c.state = connClosed
	if c.tie || c.forced || anchor == nil {
		return
	}
	if anchor.Pitch == anchor.Top {
		c.above = true
	}
}

// closeAtLineEnd 把仍开放的连线降级为行尾回退；行尾的未配对起点
// 不是错误。
func (c *Connector) closeAtLineEnd() {
	if c.state == connOpen {
		c.state = connFallback
	}
}

// draw 解析两端坐标并输出弧线。
func (c *Connector) draw(sb *scoreBuilder, sc staffCoords, ctx *layoutContext) {
	if c.state == connOpen {
		return
	}
	dirSign := 1.0 // 弧线在上时端点上移、弓向上
	if !c.above {
		dirSign = -1
	}

	var x1, p1 float64
	if c.startAnchor != nil {
		x1 = c.startAnchor.x + c.startAnchor.W + 0.6
		p1 = c.anchorPitch(c.startAnchor)
	} else {
		x1 = ctx.lineStartX
		if ctx.lastRepeatX > x1 {
			x1 = ctx.lastRepeatX
		}
		p1 = c.fallbackPitch()
	}
	var x2, p2 float64
	if c.endAnchor != nil {
		x2 = c.endAnchor.x - 0.6
		p2 = c.anchorPitch(c.endAnchor)
	} else {
		x2 = ctx.lineEndX
		p2 = c.fallbackPitch()
	}
	if x2 <= x1 {
		x2 = x1 + 1
	}

	y1 := sc.y(p1 + dirSign*1.2)
	y2 := sc.y(p2 + dirSign*1.2)
	class := "slur"
	if c.tie {
		class = "tie"
	}
	sb.path(Path{
		Data: curvePath(x2-x1, y2-y1, c.above, sc.step),
		X:    x1, Y: y1, ScaleX: 1, ScaleY: 1, Fill: true,
	}, class)
}

// anchorPitch 返回弧线端点的音高。圆滑线挂在锚点的外侧延展上，
// 延音线贴着字面音高。
func (c *Connector) anchorPitch(a *Positioned) float64 {
	if c.tie {
		return a.Pitch
	}
	if c.above {
		return a.Top
	}
	return a.Bottom
}

func (c *Connector) fallbackPitch() float64 {
	if a := c.startAnchor; a != nil {
		return c.anchorPitch(a)
	}
	if a := c.endAnchor; a != nil {
		return c.anchorPitch(a)
	}
	return middleLinePitch
}

// curvePath 生成一条有厚度的贝塞尔弧（去程带弓高、回程略平，闭合
// 填充）。
func curvePath(dx, dy float64, above bool, step float64) string {
	bulge := math.Min(dx/3.5, 4*step) + 0.8*step
	if above {
		bulge = -bulge
	}
	thick := 0.45 * step
	if above {
		thick = -thick
	}
	cx1, cy1 := dx/4, dy/4+bulge
	cx2, cy2 := 3*dx/4, 3*dy/4+bulge
	return "M0 0" +
		" C" + ftoa(cx1) + " " + ftoa(cy1) + " " + ftoa(cx2) + " " + ftoa(cy2) + " " + ftoa(dx) + " " + ftoa(dy) +
		" C" + ftoa(cx2) + " " + ftoa(cy2-thick) + " " + ftoa(cx1) + " " + ftoa(cy1-thick) + " 0 0 Z"
}

// connectorPool 管理一个声部当前开放的连线。圆滑线按和弦内槽位
// （0 = 整和弦，1..N = 和弦内单音）索引，使同一和弦上同时起始的
// 多条圆滑线与正确的另一端配对。
type connectorPool struct {
	openSlurs map[int]*Connector
	openTies  map[int]*Connector // 按音高索引
	done      []*Connector
}

func newConnectorPool() *connectorPool {
	return &connectorPool{
		openSlurs: map[int]*Connector{},
		openTies:  map[int]*Connector{},
	}
}

// startSlur opens a slur on the given chord-position slot.
func (cp *connectorPool) startSlur(slot int, anchor *Positioned, stemsUp, forced, above bool) {
	cp.openSlurs[slot] = newConnector(false, slot, anchor, stemsUp, forced, above)
}

// endSlur 关闭槽位对应的圆滑线。找不到精确槽位时取任一开放槽位，
// 宁可错配也不丢线；完全没有开放槽位时该关闭事件被丢弃。
func (cp *connectorPool) endSlur(slot int, anchor *Positioned) {
	c, ok := cp.openSlurs[slot]
	if !ok {
		// 取最小槽位，保证错配时的选择可复现。
		for k, v := range cp.openSlurs {
			if !ok || k < slot {
				c, ok, slot = v, true, k
			}
		}
	}
	if !ok {
		return
	}
	delete(cp.openSlurs, slot)
	c.close(anchor)
	cp.done = append(cp.done, c)
}

// startTie opens a tie anchored at the given pitch.
func (cp *connectorPool) startTie(vertical int, anchor *Positioned, stemsUp bool) {
	cp.openTies[vertical] = newConnector(true, vertical, anchor, stemsUp, false, false)
}

// endTies 尝试用一个音符的各和弦音关闭同音高的延音线。按音高顺序
// 处理，绘制清单因此可复现。
func (cp *connectorPool) endTies(verticals map[int]*Positioned) {
	keys := make([]int, 0, len(verticals))
	for v := range verticals {
		keys = append(keys, v)
	}
	sort.Ints(keys)
	for _, v := range keys {
		if c, ok := cp.openTies[v]; ok {
			delete(cp.openTies, v)
			c.close(verticals[v])
			cp.done = append(cp.done, c)
		}
	}
}

// finishLine 把所有仍开放的连线降级为行边界回退，按槽位/音高顺序。
func (cp *connectorPool) finishLine() {
	drain := func(open map[int]*Connector) {
		keys := make([]int, 0, len(open))
		for k := range open {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			c := open[k]
			c.closeAtLineEnd()
			cp.done = append(cp.done, c)
			delete(open, k)
		}
	}
	drain(cp.openSlurs)
	drain(cp.openTies)
}

// Triplet 是一个连音标记：括号（或骑杠数字）加数字。
type Triplet struct {
	label int

	startHost *Composite
	endHost   *Composite // nil = 行尾未闭合，括号延伸到行尾

	beam *Beam // 两端同杠时数字骑在杠上，不画括号
}

// setBeam 记录两端共用的符杠；仅当两端都是该杠成员时生效。
func (t *Triplet) setBeam(b *Beam) {
	if b != nil && t.startHost != nil && t.endHost != nil &&
		b.Has(t.startHost) && b.Has(t.endHost) {
		t.beam = b
	}
}

// draw 输出连音标记。
func (t *Triplet) draw(sb *scoreBuilder, sc staffCoords, ctx *layoutContext) {
	opts := &ctx.opts
	label := strconv.Itoa(t.label)
	font := opts.Fonts.Annot

	if t.beam != nil {
		// 骑杠：数字在杠面外侧几个像素，与杠同侧。
		midX := (t.beam.x1 + t.beam.x2) / 2
		midP := t.beam.pitchAt(midX)
		off := 2.0
		if !t.beam.stemsUp {
			off = -3.0
		}
		sb.text(Text{
			X: midX, Y: sc.y(midP + off), Content: label,
			Font: font, Anchor: AnchorMiddle,
		}, KindTriplet)
		return
	}

	var x1, x2 float64
	p1, p2 := float64(topLinePitch), float64(topLinePitch)
	if t.startHost != nil {
		x1 = t.startHost.X
		p1 = t.startHost.Top
	} else {
		x1 = ctx.lineStartX
	}
	if t.endHost != nil {
		x2 = t.endHost.X + t.endHost.MinWidth()
		p2 = t.endHost.Top
	} else {
		x2 = ctx.lineEndX
	}
	if x2 <= x1 {
		x2 = x1 + 1
	}

	// 括号高度取两端延展中较高者加边距；斜率刻意只取音符斜率的
	// 一半，保持数字可读。
	base := math.Max(p1, p2) + 2
	slope := (p2 - p1) / 2
	if slope > 1 {
		slope = 1
	}
	if slope < -1 {
		slope = -1
	}
	py1 := base - slope/2
	py2 := base + slope/2

	midX := (x1 + x2) / 2
	gap := font.Size * 0.9
	lw := 0.25 * sc.step

	yAt := func(x float64) float64 {
		return sc.y(py1 + (py2-py1)*(x-x1)/(x2-x1))
	}
	// 两端竖直小钩朝音符方向。
	sb.line(x1, yAt(x1), x1, yAt(x1)+1.5*sc.step, lw, KindTriplet)
	sb.line(x2, yAt(x2), x2, yAt(x2)+1.5*sc.step, lw, KindTriplet)
	// 中间留缺口放数字。
	sb.line(x1, yAt(x1), midX-gap, yAt(midX-gap), lw, KindTriplet)
	sb.line(midX+gap, yAt(midX+gap), x2, yAt(x2), lw, KindTriplet)
	sb.text(Text{
		X: midX, Y: yAt(midX) + font.Size*0.35, Content: label,
		Font: font, Anchor: AnchorMiddle,
	}, KindTriplet)
}
