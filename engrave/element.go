package engrave

import (
	"fmt"

	"github.com/ByLCY/stave/glyph"
	"github.com/ByLCY/stave/music"
)

// 该文件实现两级元素模型：Positioned 是单个可绘制单元（符号、文本
// 或线段），Composite 把一个音乐事件的全部单元聚合成一个可整体水平
// 移动的对象，并记录每类注记要求的纵向空间。

// Band 标识注记纵带；纵向解析按固定优先级为每条带分配偏移。
type Band int

const (
	BandNone Band = iota
	BandTempo
	BandPart
	BandVolume
	BandDynamic
	BandEnding
	BandChord
	BandLyric
	BandOrnament
)

// Positioned 是一个已定位的绘制单元。创建后除布局阶段回填水平
// 坐标、纵向解析回填注记音高外不再修改。
type Positioned struct {
	// Glyph 与 Text 至多其一非空；都为空时仅占位（如命中区域）。
	Glyph glyph.ID
	Text  string
	Font  Font

	Dx float64 // 相对所属 Composite 锚点的水平偏移
	W  float64 // 最小宽度
	H  float64 // 高度（文本与纵带厚度计算用）

	Pitch    float64 // 谱表步
	EndPitch float64 // 线类单元（符干、小节线）的另一端；其余等于 Pitch
	ScaleX   float64
	ScaleY   float64

	Kind  string
	Band  Band
	Below bool // 纵带在谱表下方

	Top    float64 // 纵向延展（谱表步，含符干等）
	Bottom float64

	Anchor    Anchor
	LineWidth float64 // 线类单元的线宽

	x float64 // setX 写入的绝对坐标
}

// Positioned kind tags, used as css-style class hints in the draw list.
const (
	KindNotehead   = "notehead"
	KindAccidental = "accidental"
	KindDot        = "dot"
	KindStem       = "stem"
	KindFlag       = "flag"
	KindLedger     = "ledger"
	KindRest       = "rest"
	KindBar        = "bar"
	KindClef       = "clef"
	KindKeySig     = "key-signature"
	KindTimeSig    = "time-signature"
	KindLyric      = "lyric"
	KindChord      = "chord"
	KindDynamic    = "dynamic"
	KindEnding     = "ending"
	KindPart       = "part"
	KindTempo      = "tempo"
	KindOrnament   = "ornament"
	KindTriplet    = "triplet"
	KindDebug      = "debug"
)

// newGlyph 构造一个符号单元。未知符号退化为零宽占位符而不报错，
// 单个坏符号不应中断整页排版。
func newGlyph(id glyph.ID, dx, pitch float64, kind string) *Positioned {
	p := &Positioned{
		Glyph: id, Dx: dx, Pitch: pitch, EndPitch: pitch,
		ScaleX: 1, ScaleY: 1, Kind: kind,
	}
	if g, ok := glyph.Lookup(id); ok {
		p.W = g.W
		p.H = g.H
		p.Top = pitch + g.H/2 - g.VCenter
		p.Bottom = pitch - g.H/2 - g.VCenter
	} else {
		p.Top = pitch
		p.Bottom = pitch
	}
	return p
}

// newText 构造一个文本单元；宽高由 Options 的测量接口给出。
func newText(content string, font Font, dx, pitch float64, kind string, opts *Options) *Positioned {
	w, h := opts.measure(content, font)
	return &Positioned{
		Text: content, Font: font, Dx: dx, W: w, H: h,
		Pitch: pitch, EndPitch: pitch, ScaleX: 1, ScaleY: 1,
		Kind: kind, Top: pitch, Bottom: pitch,
	}
}

// X returns the absolute coordinate assigned during layout.
func (p *Positioned) X() float64 { return p.x }

// Composite 聚合一个音乐事件的全部绘制单元。生命周期：创建阶段
// 构造并挂接子单元；水平布局回填 x；纵向解析回填注记音高；绘制阶段
// 只读。单次渲染内一次性使用，不做池化。
type Composite struct {
	Src        *music.Element // 非拥有引用，仅用于命中回调
	Duration   float64        // 有效时值（含连音比例），驱动间距
	MinSpacing float64
	X          float64

	children []*Positioned

	minW   float64
	extraW float64 // 左侧净空（临时记号、装饰音等）

	Top    float64
	Bottom float64

	// 各注记纵带在本元素上累计的厚度，创建阶段只增不减。
	Above Bands
	Below Bands

	// 符头几何缓存，符干/符杠定位使用。
	headLo, headHi float64
	headW          float64
	hasHeads       bool
	stemsUp        bool
	durlog         int

	// WholeRest 标记整小节休止，参与居中后处理。
	WholeRest bool
	// Invisible 元素占位但不绘制（隐形休止、隐形小节线）。
	Invisible bool
}

// Bands 按名字记录八条注记纵带的厚度。
type Bands struct {
	Tempo    float64
	Part     float64
	Volume   float64
	Dynamic  float64
	Ending   float64
	Chord    float64
	Lyric    float64
	Ornament float64
}

// raise lifts the named slot to at least h; slots only ever grow.
func (b *Bands) raise(band Band, h float64) {
	slot := b.slot(band)
	if slot != nil && h > *slot {
		*slot = h
	}
}

func (b *Bands) slot(band Band) *float64 {
	switch band {
	case BandTempo:
		return &b.Tempo
	case BandPart:
		return &b.Part
	case BandVolume:
		return &b.Volume
	case BandDynamic:
		return &b.Dynamic
	case BandEnding:
		return &b.Ending
	case BandChord:
		return &b.Chord
	case BandLyric:
		return &b.Lyric
	case BandOrnament:
		return &b.Ornament
	}
	return nil
}

// fold merges another band set slot-wise by max.
func (b *Bands) fold(o Bands) {
	b.raise(BandTempo, o.Tempo)
	b.raise(BandPart, o.Part)
	b.raise(BandVolume, o.Volume)
	b.raise(BandDynamic, o.Dynamic)
	b.raise(BandEnding, o.Ending)
	b.raise(BandChord, o.Chord)
	b.raise(BandLyric, o.Lyric)
	b.raise(BandOrnament, o.Ornament)
}

func newComposite(src *music.Element, duration, minSpacing float64) *Composite {
	return &Composite{
		Src: src, Duration: duration, MinSpacing: minSpacing,
		Top: -1e9, Bottom: 1e9,
	}
}

// AddRight 挂接右链单元：宽度向右扩展。
func (c *Composite) AddRight(p *Positioned) {
	c.children = append(c.children, p)
	if w := p.Dx + p.W; w > c.minW {
		c.minW = w
	}
	c.extend(p)
}

// AddLeft 挂接左链单元（p.Dx 为负）：扩展左侧净空，使前一元素不会
// 与临时记号、左对齐和弦名等相撞。
func (c *Composite) AddLeft(p *Positioned) {
	c.children = append(c.children, p)
	if clear := -p.Dx; clear > c.extraW {
		c.extraW = clear
	}
	c.extend(p)
}

// AddCentered 挂接居中单元：宽度对半分摊到锚点两侧。
func (c *Composite) AddCentered(p *Positioned) {
	p.Dx = -p.W / 2
	c.children = append(c.children, p)
	if half := p.W / 2; half > c.minW {
		c.minW = half
	}
	if half := p.W / 2; half > c.extraW {
		c.extraW = half
	}
	c.extend(p)
}

// AddChild 通用挂接：除延展外还把子单元声明的纵带厚度并入本元素
// 的聚合（逐槽取 max，只升不降）。
func (c *Composite) AddChild(p *Positioned) {
	c.children = append(c.children, p)
	if p.Band != BandNone {
		if p.Below {
			c.Below.raise(p.Band, p.H)
		} else {
			c.Above.raise(p.Band, p.H)
		}
	}
	c.extend(p)
}

func (c *Composite) extend(p *Positioned) {
	if p.Band != BandNone {
		// 纵带单元的最终音高在纵向解析时决定，不计入谱表延展。
		return
	}
	top, bottom := p.Top, p.Bottom
	if p.EndPitch > top {
		top = p.EndPitch
	}
	if p.EndPitch < bottom {
		bottom = p.EndPitch
	}
	if top > c.Top {
		c.Top = top
	}
	if bottom < c.Bottom {
		c.Bottom = bottom
	}
}

// MinWidth 返回锚点右侧的最小宽度。仅对已挂接的子单元成立：布局
// 依赖"先挂接全部子单元、后查询宽度"的调用顺序。
func (c *Composite) MinWidth() float64 { return c.minW }

// ExtraWidth 返回锚点左侧需要的净空。
func (c *Composite) ExtraWidth() float64 { return c.extraW }

// SetX 把绝对水平坐标传播到自身与所有子单元。
func (c *Composite) SetX(x float64) {
	c.X = x
	for _, p := range c.children {
		p.x = x + p.Dx
	}
}

// ShiftX 在已有坐标基础上整体平移。
func (c *Composite) ShiftX(dx float64) {
	c.SetX(c.X + dx)
}

// Children returns the attached units in attach order.
func (c *Composite) Children() []*Positioned { return c.children }

// finalizeBands 在纵向解析完成后，把每个纵带子单元的音高设置为
// 该带解析出的偏移。对整组谱表只调用一次。
func (c *Composite) finalizeBands(above, below *resolvedBands) {
	for _, p := range c.children {
		if p.Band == BandNone {
			continue
		}
		if p.Below {
			if below != nil {
				p.Pitch = below.pitchOf(p.Band)
				p.EndPitch = p.Pitch
			}
		} else if above != nil {
			p.Pitch = above.pitchOf(p.Band)
			p.EndPitch = p.Pitch
		}
	}
}

// StemOwner 能力接口：符杠引擎同时接受完整 Composite 与轻量装饰音
// 代理，两者都给出音高范围与符干挂接点。
type StemOwner interface {
	// PitchSpan 返回符头的最低/最高音高；ok 为假表示无真实音高
	// （占位符），符杠几何会跳过它。
	PitchSpan() (lo, hi float64, ok bool)
	// StemX 返回符干的绝对 x：上行符干贴符头右缘，下行贴左缘。
	StemX(up bool) float64
	// Durlog 返回 floor(log2(时值))，决定次级符杠层数。
	Durlog() int
	// AttachStem 在符杠几何确定后回填符干单元。
	AttachStem(p *Positioned)
}

var _ StemOwner = (*Composite)(nil)

// PitchSpan implements StemOwner.
func (c *Composite) PitchSpan() (float64, float64, bool) {
	return c.headLo, c.headHi, c.hasHeads
}

// StemX implements StemOwner.
func (c *Composite) StemX(up bool) float64 {
	if up {
		return c.X + c.headW
	}
	return c.X
}

// Durlog implements StemOwner.
func (c *Composite) Durlog() int { return c.durlog }

// AttachStem implements StemOwner. The beam engine calls it once per
// member after the primary beam line is fixed.
func (c *Composite) AttachStem(p *Positioned) {
	// 符杠引擎给出的是绝对 x；换算为相对偏移，整体平移时才能跟随。
	p.Dx = p.x - c.X
	c.children = append(c.children, p)
	c.extend(p)
}

// setHeads 记录符头几何缓存。
func (c *Composite) setHeads(lo, hi float64, headW float64, durlog int) {
	c.headLo, c.headHi = lo, hi
	c.headW = headW
	c.durlog = durlog
	c.hasHeads = true
}

// draw 把全部子单元写入绘制清单，并注册整体包围盒的命中区域。
func (c *Composite) draw(sb *scoreBuilder, sc staffCoords, ctx *layoutContext) {
	if c.Invisible {
		return
	}
	step := ctx.step()
	for _, p := range c.children {
		drawPositioned(sb, p, sc, ctx)
	}
	if c.Src != nil && c.Top >= c.Bottom {
		top := sc.y(c.Top)
		bottom := sc.y(c.Bottom)
		x := c.X - c.extraW
		w := c.extraW + c.minW
		if w < step { // 退化元素也保留可点击的最小区域
			w = step
		}
		sb.hit(x, top, w, bottom-top, c.Src.CharStart, c.Src.CharEnd, string(c.Src.Kind))
	}
}

// drawPositioned 输出单个单元。符号缺失时静默跳过；Debug 开启时以
// 内联文本显示缺失的符号 id。
func drawPositioned(sb *scoreBuilder, p *Positioned, sc staffCoords, ctx *layoutContext) {
	step := ctx.step()
	switch {
	case p.Kind == KindStem || p.Kind == KindBar || p.Kind == KindLedger || p.Kind == KindEnding && p.Text == "":
		w := p.LineWidth
		if w <= 0 {
			w = 0.35 * step
		}
		sb.line(p.x, sc.y(p.Pitch), p.x+p.W, sc.y(p.EndPitch), w, p.Kind)
	case p.Glyph != "":
		g, ok := glyph.Lookup(p.Glyph)
		if !ok {
			if ctx.opts.Debug {
				sb.text(Text{
					X: p.x, Y: sc.y(p.Pitch),
					Content: fmt.Sprintf("?%s", p.Glyph),
					Font:    ctx.opts.Fonts.Annot,
				}, KindDebug)
			}
			return
		}
		sb.path(Path{
			Data:   g.Path,
			X:      p.x,
			Y:      sc.y(p.Pitch),
			ScaleX: p.ScaleX * step,
			ScaleY: p.ScaleY * step,
			Fill:   true,
		}, p.Kind)
	case p.Text != "":
		sb.text(Text{
			X: p.x, Y: sc.y(p.Pitch), Content: p.Text,
			Font: p.Font, Anchor: p.Anchor,
		}, p.Kind)
	}
}
