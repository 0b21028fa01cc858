package engrave

import (
	"math"
	"testing"
)

// makeMember 构造一个已定位、记录了符头几何的复合对象。
func makeMember(x, pitch float64, durlog int) *Composite {
	c := newComposite(nil, math.Pow(2, float64(durlog)), 1)
	c.setHeads(pitch, pitch, 2.7, durlog)
	c.SetX(x)
	return c
}

func layoutBeam(b *Beam) {
	opts := DefaultOptions()
	b.layout(&opts)
}

func closedBeam(members ...*Composite) *Beam {
	b := newBeam(nil, false, false)
	for _, m := range members {
		b.Add(m)
	}
	b.Close()
	return b
}

func TestStemsUpBelowMiddle(t *testing.T) {
	members := []StemOwner{makeMember(10, 3, -3), makeMember(20, 4, -3)}
	if !computeStemsUp(members, nil) {
		t.Fatalf("平均音高低于中线时符干应朝上")
	}
}

// 平均音高恰在中线上时取下行，保证同一输入永远得到同一方向。
func TestStemsUpBoundaryIsDown(t *testing.T) {
	members := []StemOwner{makeMember(10, 6, -3), makeMember(20, 6, -3)}
	if computeStemsUp(members, nil) {
		t.Fatalf("平均音高等于中线时应取下行符干")
	}
}

func TestStemsUpForced(t *testing.T) {
	up := true
	members := []StemOwner{makeMember(10, 10, -3)}
	if !computeStemsUp(members, &up) {
		t.Fatalf("强制方向应覆盖平均音高")
	}
}

func TestSlopeClamped(t *testing.T) {
	a := makeMember(10, 0, -3)
	b := makeMember(30, 10, -3)
	beam := closedBeam(a, b)
	layoutBeam(beam)
	slope := beam.p2 - beam.p1
	if slope > 1.0+1e-9 {
		t.Fatalf("斜率应收拢到成员数/2 = 1，得到 %v", slope)
	}
}

func TestFlatBeamZeroSlope(t *testing.T) {
	a := makeMember(10, 0, -3)
	b := makeMember(30, 10, -3)
	beam := newBeam(nil, false, true)
	beam.Add(a)
	beam.Add(b)
	beam.Close()
	layoutBeam(beam)
	if beam.p1 != beam.p2 {
		t.Fatalf("平坦符杠斜率应为 0: p1=%v p2=%v", beam.p1, beam.p2)
	}
}

func TestStemsBackfilled(t *testing.T) {
	a := makeMember(10, 2, -3)
	b := makeMember(20, 4, -3)
	beam := closedBeam(a, b)
	layoutBeam(beam)
	for _, m := range []*Composite{a, b} {
		found := false
		for _, p := range m.Children() {
			if p.Kind == KindStem {
				found = true
				// 符干端点必须落在主杠线上
				want := beam.pitchAt(p.X())
				if math.Abs(p.EndPitch-want) > 1e-9 {
					t.Errorf("符干端点 %v 不在杠线上（应为 %v）", p.EndPitch, want)
				}
			}
		}
		if !found {
			t.Errorf("成员缺少回填的符干")
		}
	}
}

// 十六分-八分-十六分：第一层次级杠只被首末成员需要，各画一条朝向
// 相邻成员的残杠。
func TestIsolatedSecondaryStubs(t *testing.T) {
	a := makeMember(10, 4, -4)
	b := makeMember(20, 4, -3)
	c := makeMember(30, 4, -4)
	beam := closedBeam(a, b, c)
	opts := DefaultOptions()
	beam.layout(&opts)

	if len(beam.segments) != 2 {
		t.Fatalf("应有两条残杠，得到 %d", len(beam.segments))
	}
	for _, seg := range beam.segments {
		if w := seg.x2 - seg.x1; math.Abs(w-opts.BeamStubLength) > 1e-9 {
			t.Errorf("残杠长度 = %v, want %v", w, opts.BeamStubLength)
		}
	}
	// 行首成员的残杠向后伸，其余向前一成员伸
	first, last := beam.segments[0], beam.segments[1]
	if first.x1 < a.StemX(beam.stemsUp)-1e-9 {
		t.Errorf("首成员残杠应朝后伸")
	}
	if last.x2 > c.StemX(beam.stemsUp)+1e-9 {
		t.Errorf("末成员残杠应朝前一成员伸")
	}
}

// 连续十六分音符的第一层次级杠是一整条，不拆成残杠。
func TestSecondaryRunIsContinuous(t *testing.T) {
	a := makeMember(10, 4, -4)
	b := makeMember(20, 4, -4)
	beam := closedBeam(a, b)
	layoutBeam(beam)
	if len(beam.segments) != 1 {
		t.Fatalf("应有一条次级杠，得到 %d", len(beam.segments))
	}
	seg := beam.segments[0]
	if seg.x2-seg.x1 < 5 {
		t.Fatalf("连续次级杠应横跨两个符干: %v..%v", seg.x1, seg.x2)
	}
}

func TestEmptyBeamStaysOpen(t *testing.T) {
	b := newBeam(nil, false, false)
	b.Close()
	if b.Closed() {
		t.Fatalf("空符杠不应进入 Closed 状态")
	}
	layoutBeam(b)
	if b.state == beamFinal {
		t.Fatalf("空符杠不应完成布局")
	}
}

func TestAddAfterCloseIgnored(t *testing.T) {
	a := makeMember(10, 4, -3)
	b := closedBeam(a)
	b.Add(makeMember(20, 4, -3))
	if b.Size() != 1 {
		t.Fatalf("封口后的收纳应被忽略")
	}
}
