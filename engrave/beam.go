package engrave

import "math"

// 符杠引擎。生命周期是显式状态机：Collecting 阶段逐个收纳成员，
// Closed 由休止符、显式符杠结束记号或声部结束触发，layout 把几何
// 算定并回填每个成员的符干，之后只读。

type beamState int

const (
	beamCollecting beamState = iota
	beamClosed
	beamFinal
)

// Beam 把一串连续的短时值音符组合在一条符杠下。成员列表持有的是
// 非拥有引用：符杠只负责分组，不管理音符生命周期。
type Beam struct {
	state   beamState
	members []StemOwner

	force *bool // 强制方向（风笛、显式符干方向）；nil 表示按平均音高
	grace bool  // 装饰音符杠：豁免朝中线的收拢
	flat  bool  // 强制零斜率（风笛装饰音惯例）

	stemsUp bool

	// 主杠几何：两端 x 与音高。
	x1, x2 float64
	p1, p2 float64

	segments []beamSegment
}

// beamSegment 是一条次级符杠（十六分及更短）。level 1 为第一条
// 次级杠，依次向符头方向偏移。
type beamSegment struct {
	x1, x2 float64
	p1, p2 float64
	level  int
}

func newBeam(force *bool, grace, flat bool) *Beam {
	return &Beam{state: beamCollecting, force: force, grace: grace, flat: flat}
}

// Add 收纳一个成员；只在 Collecting 状态有效。
func (b *Beam) Add(m StemOwner) {
	if b.state != beamCollecting {
		return
	}
	b.members = append(b.members, m)
}

// Close 结束收纳。空符杠保持 Collecting，调用方随后丢弃。
func (b *Beam) Close() {
	if b.state == beamCollecting && len(b.members) > 0 {
		b.state = beamClosed
	}
}

// Closed reports whether the beam has finished collecting members.
func (b *Beam) Closed() bool { return b.state != beamCollecting }

// Size returns the member count.
func (b *Beam) Size() int { return len(b.members) }

// Members returns the grouped notes; the slice is read-only for callers.
func (b *Beam) Members() []StemOwner { return b.members }

// StemsUp reports the computed direction; valid after layout.
func (b *Beam) StemsUp() bool { return b.stemsUp }

// Has reports whether m is a member of this beam.
func (b *Beam) Has(m StemOwner) bool {
	for _, o := range b.members {
		if o == m {
			return true
		}
	}
	return false
}

// computeStemsUp 决定符干方向：有强制方向时用之，否则取成员平均
// 音高与中线比较。无音高的占位成员不参与平均（跳过而非按零计权）。
// 平均恰好等于中线时取下行，保证确定性。
func computeStemsUp(members []StemOwner, force *bool) bool {
	if force != nil {
		return *force
	}
	sum, n := 0.0, 0
	for _, m := range members {
		lo, hi, ok := m.PitchSpan()
		if !ok {
			continue
		}
		sum += (lo + hi) / 2
		n++
	}
	if n == 0 {
		return true
	}
	return sum/float64(n) < middleLinePitch
}

// layout 计算主杠位置、斜率与次级杠，并给每个成员回填符干。
// 必须在水平布局收敛之后调用：符干端点依赖成员最终 x。
func (b *Beam) layout(opts *Options) {
	if b.state != beamClosed || len(b.members) == 0 {
		return
	}
	b.stemsUp = computeStemsUp(b.members, b.force)

	avg, extreme := b.pitchStats()

	// 主杠落点：平均音高加标准符干高，但极端音至少保有最短符干。
	var pos float64
	if b.stemsUp {
		pos = math.Max(avg+opts.StemHeight, extreme+opts.ShortStemHeight)
	} else {
		pos = math.Min(avg-opts.StemHeight, extreme-opts.ShortStemHeight)
	}
	pos = math.Round(pos)

	// 整条符杠跑出谱表过远时向中线收拢；装饰音符杠豁免。
	if !b.grace {
		const overhang = 6
		if b.stemsUp && pos > topLinePitch+overhang {
			pos = topLinePitch + overhang
		} else if !b.stemsUp && pos < bottomLinePitch-overhang {
			pos = bottomLinePitch - overhang
		}
	}

	slope := b.slopeFor()

	first, last := b.members[0], b.members[len(b.members)-1]
	b.x1 = first.StemX(b.stemsUp)
	b.x2 = last.StemX(b.stemsUp)
	// 端点向符干方向的反侧微移，让杠端与符干相接而非悬在符头中心。
	const meet = 0.2
	if b.stemsUp {
		b.x1 -= meet
		b.x2 += meet
	} else {
		b.x1 += meet
		b.x2 -= meet
	}
	b.p1 = pos - slope/2
	b.p2 = pos + slope/2

	b.buildSegments(opts)
	b.attachStems(opts)
	b.state = beamFinal
}

func (b *Beam) pitchStats() (avg, extreme float64) {
	sum, n := 0.0, 0
	first := true
	for _, m := range b.members {
		lo, hi, ok := m.PitchSpan()
		if !ok {
			continue
		}
		sum += (lo + hi) / 2
		n++
		if b.stemsUp {
			if first || hi > extreme {
				extreme = hi
			}
		} else {
			if first || lo < extreme {
				extreme = lo
			}
		}
		first = false
	}
	if n == 0 {
		return middleLinePitch, middleLinePitch
	}
	return sum / float64(n), extreme
}

// slopeFor 取首末成员的音高差，收拢到 ±成员数/2；平坦符杠恒为 0。
func (b *Beam) slopeFor() float64 {
	if b.flat {
		return 0
	}
	firstLo, firstHi, ok1 := b.members[0].PitchSpan()
	lastLo, lastHi, ok2 := b.members[len(b.members)-1].PitchSpan()
	if !ok1 || !ok2 {
		return 0
	}
	slope := (lastLo+lastHi)/2 - (firstLo+firstHi)/2
	limit := float64(len(b.members)) / 2
	if slope > limit {
		slope = limit
	}
	if slope < -limit {
		slope = -limit
	}
	return slope
}

// pitchAt 沿主杠线在 x 处取音高。
func (b *Beam) pitchAt(x float64) float64 {
	if b.x2 == b.x1 {
		return b.p1
	}
	return b.p1 + (x-b.x1)*(b.p2-b.p1)/(b.x2-b.x1)
}

// buildSegments 生成次级符杠：逐层扫描成员，需要该层的成员延续同
// 一段，不再需要时封口。仅单个成员需要的层画成固定长度的残杠。
func (b *Beam) buildSegments(opts *Options) {
	maxLevel := 0
	need := make([]int, len(b.members))
	for i, m := range b.members {
		n := -m.Durlog() - 3 // 八分 0 层、十六分 1 层……
		if n < 0 {
			n = 0
		}
		need[i] = n
		if n > maxLevel {
			maxLevel = n
		}
	}

	dir := 1.0
	if b.stemsUp {
		dir = -1 // 上行符干的次级杠向下（朝符头）堆叠
	}

	for level := 1; level <= maxLevel; level++ {
		runStart := -1
		flush := func(end int) {
			if runStart < 0 {
				return
			}
			x1 := b.members[runStart].StemX(b.stemsUp)
			x2 := b.members[end].StemX(b.stemsUp)
			if runStart == end {
				// 孤立成员：残杠朝前一成员方向伸出；行首成员朝后。
				if runStart > 0 {
					x1 = x2 - opts.BeamStubLength
				} else {
					x2 = x1 + opts.BeamStubLength
				}
			}
			off := dir * float64(level) * opts.BeamSeparation
			b.segments = append(b.segments, beamSegment{
				x1: x1, x2: x2,
				p1: b.pitchAt(x1) + off, p2: b.pitchAt(x2) + off,
				level: level,
			})
			runStart = -1
		}
		for i := range b.members {
			if need[i] >= level {
				if runStart < 0 {
					runStart = i
				}
				continue
			}
			flush(i - 1)
		}
		flush(len(b.members) - 1)
	}
}

// attachStems 在主杠几何固定后给每个成员回填符干单元。装饰音成员
// 把符干转挂到其主音符上（代理对象自己不持有绘制链）。
func (b *Beam) attachStems(opts *Options) {
	scale := 1.0
	if b.grace {
		scale = 0.6
	}
	for _, m := range b.members {
		lo, hi, ok := m.PitchSpan()
		if !ok {
			continue
		}
		sx := m.StemX(b.stemsUp)
		beamP := b.pitchAt(sx)
		start := hi
		if b.stemsUp {
			start = lo
		}
		stem := &Positioned{
			Kind: KindStem, Pitch: start, EndPitch: beamP,
			ScaleX: scale, ScaleY: scale,
			LineWidth: 0.35 * opts.StaffStep * scale,
		}
		stem.x = sx
		m.AttachStem(stem)
	}
}

// draw 以平行四边形输出主杠与各次级杠。
func (b *Beam) draw(sb *scoreBuilder, sc staffCoords, opts *Options) {
	if b.state != beamFinal {
		return
	}
	thickness := opts.BeamThickness * sc.step
	if b.grace {
		thickness *= 0.6
	}
	emit := func(x1, p1, x2, p2 float64) {
		y1 := sc.y(p1)
		y2 := sc.y(p2)
		data := parallelogram(x2-x1, y2-y1, thickness)
		sb.path(Path{Data: data, X: x1, Y: y1, ScaleX: 1, ScaleY: 1, Fill: true}, "beam")
	}
	emit(b.x1, b.p1, b.x2, b.p2)
	for _, seg := range b.segments {
		emit(seg.x1, seg.p1, seg.x2, seg.p2)
	}
}

// parallelogram 生成一条给定厚度的斜杠轮廓（相对起点坐标）。
func parallelogram(dx, dy, thickness float64) string {
	h := thickness / 2
	return "M0 " + ftoa(-h) +
		" L" + ftoa(dx) + " " + ftoa(dy-h) +
		" L" + ftoa(dx) + " " + ftoa(dy+h) +
		" L0 " + ftoa(h) + " Z"
}
