// Package engrave 把乐谱模型排版为纯数据绘制清单。流水线分四个阶段：
// 创建（把每个音乐事件组装成复合对象）、水平布局（平方根间距加整行
// 拉伸）、符杠解析（方向、斜率与符干回填）、纵向解析（注记纵带堆叠）。
// 每个阶段的产物是独立类型，只能由上一阶段构造，阶段顺序因此由类型
// 系统保证。
package engrave

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ByLCY/stave/glyph"
	"github.com/ByLCY/stave/music"
)

// Engrave 排版一首乐曲。输入模型只读；输出 Score 为纯数据，交由
// renderer 包落成字节。单个坏元素按跳过降级，不中断整页。
func Engrave(tune *music.Tune, opts Options) (*Score, error) {
	if tune == nil {
		return nil, errors.New("engrave: nil tune")
	}
	opts = opts.withDefaults(tune.Formatting)
	ctx := newLayoutContext(opts)
	sb := newScoreBuilder()

	y := opts.TopMargin
	y = drawHeader(sb, tune, ctx, y)

	lastMusic := -1
	for i := range tune.Lines {
		if tune.Lines[i].IsMusic() {
			lastMusic = i
		}
	}

	for li := range tune.Lines {
		line := &tune.Lines[li]
		if !line.IsMusic() {
			if line.Text != "" {
				f := opts.Fonts.Text
				y += f.Size
				sb.text(Text{X: opts.LeftMargin, Y: y, Content: line.Text, Font: f}, "text")
				y += f.Size * 0.6
			}
			continue
		}
		// 末行默认保持自然宽度，除非乐曲要求整页拉伸。
		justify := li != lastMusic || tune.Formatting.StretchLast
		cl := createLine(line, ctx, tune.Formatting.Bagpipes)
		sl := spaceMusicLine(cl, ctx, justify)
		bl := beamMusicLine(sl, ctx)
		rl := resolveMusicLine(bl, ctx)
		y = drawMusicLine(sb, rl, ctx, y)
		y += opts.LineSeparation
	}

	sb.score.Width = opts.PageWidth + 2*opts.LeftMargin
	sb.score.Height = y + opts.TopMargin - opts.LineSeparation
	if sb.score.Height < opts.TopMargin {
		sb.score.Height = opts.TopMargin * 2
	}
	return sb.score, nil
}

func drawHeader(sb *scoreBuilder, tune *music.Tune, ctx *layoutContext, y float64) float64 {
	opts := &ctx.opts
	if tune.Title != "" {
		f := opts.Fonts.Title
		y += f.Size
		sb.text(Text{
			X: opts.LeftMargin + opts.PageWidth/2, Y: y,
			Content: tune.Title, Font: f, Anchor: AnchorMiddle,
		}, "title")
		y += f.Size * 0.4
	}
	if tune.Rhythm != "" || tune.Composer != "" {
		f := opts.Fonts.Composer
		y += f.Size
		if tune.Rhythm != "" {
			sb.text(Text{X: opts.LeftMargin, Y: y, Content: tune.Rhythm, Font: f}, "rhythm")
		}
		if tune.Composer != "" {
			sb.text(Text{
				X: opts.LeftMargin + opts.PageWidth, Y: y,
				Content: tune.Composer, Font: f, Anchor: AnchorEnd,
			}, "composer")
		}
		y += f.Size * 0.4
	}
	return y + 4
}

// 流水线阶段产物。字段相同，类型不同：spacedLine 只能从 createdLine
// 产出，依此类推。

type createdStaff struct {
	src      *music.Staff
	voices   []*voiceLine
	beams    []*Beam
	pools    []*connectorPool
	triplets []*Triplet
}

type createdLine struct {
	staves []*createdStaff
}

type spacedLine struct {
	staves []*createdStaff
	width  float64
}

type beamedLine struct {
	staves []*createdStaff
	width  float64
}

type resolvedLine struct {
	staves  []*createdStaff
	width   float64
	tops    []float64 // 每条谱表含纵带的上延展（谱表步）
	bottoms []float64
}

func createLine(line *music.Line, ctx *layoutContext, bagpipes bool) *createdLine {
	cl := &createdLine{}
	for si := range line.Staves {
		staff := &line.Staves[si]
		cs := &createdStaff{src: staff}
		for vi := range staff.Voices {
			vb := newVoiceBuilder(ctx, bagpipes)
			vb.run(staff.Voices[vi].Elements)
			cs.voices = append(cs.voices, &voiceLine{items: vb.items})
			cs.beams = append(cs.beams, vb.beams...)
			cs.pools = append(cs.pools, vb.pool)
			cs.triplets = append(cs.triplets, vb.triplets...)
		}
		cl.staves = append(cl.staves, cs)
	}
	return cl
}

// spaceMusicLine 对一行的全部声部做水平布局。同组谱表共享时间轴，
// 所以跨谱表的声部一起参与同时刻对齐。
func spaceMusicLine(cl *createdLine, ctx *layoutContext, justify bool) *spacedLine {
	startX := ctx.opts.LeftMargin
	target := ctx.opts.LeftMargin + ctx.opts.PageWidth
	var all []*voiceLine
	for _, cs := range cl.staves {
		all = append(all, cs.voices...)
	}
	var width float64
	if justify {
		width = justifyLine(all, startX, target, &ctx.opts)
	} else {
		stats := spaceLine(all, startX, ctx.opts.SpacingUnit)
		for _, v := range all {
			centerWholeRests(v, startX, stats.width)
		}
		width = stats.width
	}
	return &spacedLine{staves: cl.staves, width: width}
}

// beamMusicLine 在全部 x 固定后解析符杠几何，并把骑杠的连音数字
// 绑定到所属符杠。
func beamMusicLine(sl *spacedLine, ctx *layoutContext) *beamedLine {
	for _, cs := range sl.staves {
		for _, b := range cs.beams {
			b.layout(&ctx.opts)
		}
		for _, t := range cs.triplets {
			for _, b := range cs.beams {
				t.setBeam(b)
			}
		}
	}
	return &beamedLine{staves: sl.staves, width: sl.width}
}

// resolveMusicLine 做纵向解析；符干已回填，延展此时才完整。
func resolveMusicLine(bl *beamedLine, ctx *layoutContext) *resolvedLine {
	rl := &resolvedLine{staves: bl.staves, width: bl.width}
	for _, cs := range bl.staves {
		top, bottom := resolveVertical(cs.voices, &ctx.opts)
		rl.tops = append(rl.tops, top)
		rl.bottoms = append(rl.bottoms, bottom)
	}
	return rl
}

func drawMusicLine(sb *scoreBuilder, rl *resolvedLine, ctx *layoutContext, y float64) float64 {
	opts := &ctx.opts
	step := opts.StaffStep
	ctx.lineEndX = rl.width

	for i, cs := range rl.staves {
		topY := y + (rl.tops[i]-topLinePitch)*step
		sc := staffCoords{topY: topY, step: step}
		sb.beginGroup(fmt.Sprintf("staff%d", i))

		for ln := 0; ln < cs.src.LineCount(); ln++ {
			pitch := float64(topLinePitch - 2*ln)
			sb.line(opts.LeftMargin, sc.y(pitch), rl.width, sc.y(pitch), 0.25*step, "staff-line")
		}

		setLineBounds(ctx, cs)
		for vi, v := range cs.voices {
			sb.beginGroup(fmt.Sprintf("voice%d", vi))
			for _, c := range v.items {
				c.draw(sb, sc, ctx)
			}
			sb.endGroup()
		}
		for _, b := range cs.beams {
			b.draw(sb, sc, opts)
		}
		for _, pool := range cs.pools {
			for _, cn := range pool.done {
				cn.draw(sb, sc, ctx)
			}
		}
		for _, t := range cs.triplets {
			t.draw(sb, sc, ctx)
		}
		sb.endGroup()
		y = sc.y(rl.bottoms[i]) + opts.StaffSeparation
	}
	return y - opts.StaffSeparation
}

// setLineBounds 扫描行首前缀（谱号、调号、拍号），确定连线回退到
// 行首时的 x 边界；前缀里的反复开始线另外记录，跨行延音不得越过它。
func setLineBounds(ctx *layoutContext, cs *createdStaff) {
	ctx.lineStartX = ctx.opts.LeftMargin
	ctx.lastRepeatX = 0
	if len(cs.voices) == 0 {
		return
	}
	for _, c := range cs.voices[0].items {
		if c.Src == nil {
			ctx.lineStartX = c.X + c.MinWidth()
			continue
		}
		if c.Src.Kind == music.KindBar && c.Src.Bar == music.BarRepeatStart {
			ctx.lastRepeatX = c.X + c.MinWidth()
			continue
		}
		break
	}
}

// voiceBuilder 逐元素组装一个声部。复合对象先在本地装配完整，再
// 提交进序列；符杠与连音的开放状态也在这里维护。
type voiceBuilder struct {
	opts     *Options
	bagpipes bool

	items    []*Composite
	beams    []*Beam
	pool     *connectorPool
	triplets []*Triplet

	curBeam      *Beam
	curRun       []*Composite
	openTriplets []*Triplet
}

func newVoiceBuilder(ctx *layoutContext, bagpipes bool) *voiceBuilder {
	return &voiceBuilder{opts: &ctx.opts, bagpipes: bagpipes, pool: newConnectorPool()}
}

func (vb *voiceBuilder) commit(c *Composite) {
	vb.items = append(vb.items, c)
}

func (vb *voiceBuilder) run(elems []music.Element) {
	for i := range elems {
		e := &elems[i]
		switch e.Kind {
		case music.KindNote:
			vb.note(e)
		case music.KindRest:
			vb.rest(e)
		case music.KindBar:
			vb.bar(e)
		case music.KindClef:
			vb.clef(e.Clef)
		case music.KindKey:
			if e.Key != nil {
				vb.key(e.Key)
			}
		case music.KindMeter:
			if e.Meter != nil {
				vb.meter(e.Meter)
			}
		case music.KindTempo:
			vb.tempo(e)
		}
	}
	vb.closeBeam()
	vb.pool.finishLine()
	vb.triplets = append(vb.triplets, vb.openTriplets...)
	vb.openTriplets = nil
}

func (vb *voiceBuilder) clef(clef music.Clef) {
	vb.closeBeam()
	if clef == music.ClefNone {
		return
	}
	var id glyph.ID
	var pitch float64
	switch clef {
	case music.ClefBass:
		id, pitch = glyph.ClefF, 8
	case music.ClefAlto:
		id, pitch = glyph.ClefC, 6
	case music.ClefTenor:
		id, pitch = glyph.ClefC, 8
	default:
		id, pitch = glyph.ClefG, 4
	}
	c := newComposite(nil, 0, 2)
	c.AddRight(newGlyph(id, 0, pitch, KindClef))
	vb.commit(c)
}

func (vb *voiceBuilder) key(k *music.Key) {
	vb.closeBeam()
	c := newComposite(nil, 0, 2)
	dx := 0.0
	for _, ka := range k.Accidentals {
		id := accGlyph(ka.Acc)
		if id == "" {
			continue
		}
		g := newGlyph(id, dx, float64(ka.Vertical), KindKeySig)
		c.AddRight(g)
		dx += g.W + 0.3
	}
	if len(c.Children()) > 0 {
		vb.commit(c)
	}
}

func (vb *voiceBuilder) meter(m *music.Meter) {
	vb.closeBeam()
	c := newComposite(nil, 0, 2.5)
	switch m.Symbol {
	case music.MeterCommon:
		c.AddRight(newGlyph(glyph.TimeCommon, 0, middleLinePitch, KindTimeSig))
	case music.MeterCut:
		c.AddRight(newGlyph(glyph.TimeCut, 0, middleLinePitch, KindTimeSig))
	default:
		if m.Num <= 0 || m.Den <= 0 {
			return
		}
		f := vb.opts.Fonts.Text
		f.Bold = true
		f.Size = 4 * vb.opts.StaffStep
		num := newText(strconv.Itoa(m.Num), f, 0, middleLinePitch, KindTimeSig, vb.opts)
		den := newText(strconv.Itoa(m.Den), f, 0, bottomLinePitch, KindTimeSig, vb.opts)
		w := math.Max(num.W, den.W)
		num.Dx = (w - num.W) / 2
		den.Dx = (w - den.W) / 2
		c.AddRight(num)
		c.AddRight(den)
	}
	vb.commit(c)
}

func (vb *voiceBuilder) tempo(e *music.Element) {
	label := ""
	if t := e.Tempo; t != nil {
		label = t.Text
		if t.QPM > 0 {
			if label != "" {
				label += " "
			}
			label += "♩ = " + strconv.FormatFloat(t.QPM, 'f', -1, 64)
		}
	}
	if label == "" {
		return
	}
	c := newComposite(e, 0, 1)
	p := newText(label, vb.opts.Fonts.Tempo, 0, 0, KindTempo, vb.opts)
	p.Band = BandTempo
	c.AddChild(p)
	vb.commit(c)
}

func (vb *voiceBuilder) rest(e *music.Element) {
	vb.closeBeam()
	c := newComposite(e, e.EffectiveDuration(), 1)
	switch e.Rest {
	case music.RestInvisible, music.RestSpacer:
		c.Invisible = true
	default:
		id, pitch := restGlyph(e)
		g := newGlyph(id, 0, pitch, KindRest)
		c.AddRight(g)
		addDots(c, e.Dots, g.W, int(pitch))
		if e.WholeMeasure {
			c.WholeRest = true
		}
	}
	vb.annotations(c, e)
	vb.commit(c)
}

func restGlyph(e *music.Element) (glyph.ID, float64) {
	if e.WholeMeasure {
		return glyph.RestWhole, 8
	}
	dl := music.Durlog(e.BaseDuration())
	switch {
	case dl >= 0:
		return glyph.RestWhole, 8
	case dl == -1:
		return glyph.RestHalf, middleLinePitch
	case dl == -2:
		return glyph.RestQuarter, middleLinePitch
	case dl == -3:
		return glyph.Rest8th, middleLinePitch
	case dl == -4:
		return glyph.Rest16th, middleLinePitch
	case dl == -5:
		return glyph.Rest32nd, middleLinePitch
	default:
		return glyph.Rest64th, middleLinePitch
	}
}

func (vb *voiceBuilder) bar(e *music.Element) {
	vb.closeBeam()
	c := newComposite(e, 0, 1.5)
	step := vb.opts.StaffStep
	thin := func(dx float64) *Positioned {
		return &Positioned{
			Kind: KindBar, Dx: dx, Pitch: topLinePitch, EndPitch: bottomLinePitch,
			Top: topLinePitch, Bottom: bottomLinePitch,
			ScaleX: 1, ScaleY: 1, LineWidth: 0.35 * step,
		}
	}
	thick := func(dx float64) *Positioned {
		p := thin(dx)
		p.LineWidth = step
		return p
	}
	dots := func(dx float64) {
		c.AddRight(newGlyph(glyph.Dot, dx, 5, KindBar))
		c.AddRight(newGlyph(glyph.Dot, dx, 7, KindBar))
	}
	switch e.Bar {
	case music.BarInvisible:
		c.Invisible = true
	case music.BarThinThin:
		c.AddRight(thin(0))
		c.AddRight(thin(1.2))
	case music.BarThinThick:
		c.AddRight(thin(0))
		c.AddRight(thick(1.8))
	case music.BarRepeatStart:
		c.AddRight(thick(0))
		c.AddRight(thin(1.8))
		dots(3.0)
	case music.BarRepeatEnd:
		dots(0)
		c.AddRight(thin(2.0))
		c.AddRight(thick(3.2))
	default:
		c.AddRight(thin(0))
	}
	if e.Ending != "" {
		txt := newText(e.Ending, vb.opts.Fonts.Annot, 0.8, 0, KindEnding, vb.opts)
		txt.Band = BandEnding
		c.AddChild(txt)
		bracket := &Positioned{
			Kind: KindEnding, W: 12, Band: BandEnding,
			ScaleX: 1, ScaleY: 1, LineWidth: 0.3 * step,
			H: txt.H + step,
		}
		c.AddChild(bracket)
	}
	vb.annotations(c, e)
	vb.commit(c)
}

func (vb *voiceBuilder) note(e *music.Element) {
	if len(e.Pitches) == 0 {
		return // 缺符头的音符整体跳过
	}
	c := newComposite(e, e.EffectiveDuration(), 1)

	dl := music.Durlog(e.BaseDuration())
	lo, hi, _ := e.PitchRange()
	stemsUp := vb.stemDir(e, lo, hi)
	c.stemsUp = stemsUp

	headID := headFor(dl)
	var headW float64
	if g, ok := glyph.Lookup(headID); ok {
		headW = g.W
	}

	// 符头：相邻二度的上方音让位到符干另一侧，交替复位。
	anchors := make(map[int]*Positioned, len(e.Pitches))
	accDx := -0.3
	prevV := math.MinInt32
	prevOff := false
	for _, p := range e.Pitches {
		dx := 0.0
		if p.Vertical-prevV == 1 && !prevOff {
			dx = headW * 0.95
			prevOff = true
		} else {
			prevOff = false
		}
		h := newGlyph(headID, dx, float64(p.Vertical), KindNotehead)
		c.AddRight(h)
		anchors[p.Vertical] = h
		if id := accGlyph(p.Accidental); id != "" {
			var aw float64
			if g, ok := glyph.Lookup(id); ok {
				aw = g.W
			}
			accDx -= aw
			c.AddLeft(newGlyph(id, accDx, float64(p.Vertical), KindAccidental))
			accDx -= 0.3
		}
		prevV = p.Vertical
	}
	c.setHeads(float64(lo), float64(hi), headW, dl)

	addDots(c, e.Dots, headW, hi)
	vb.ledgers(c, lo, hi, headW)
	vb.graces(c, e)
	vb.stemAndBeam(c, e, dl, stemsUp)
	vb.annotations(c, e)
	vb.connectorMarks(c, e, anchors, stemsUp)
	vb.tripletMarks(c, e)

	vb.commit(c)
}

func (vb *voiceBuilder) stemDir(e *music.Element, lo, hi int) bool {
	if vb.bagpipes {
		return false
	}
	switch e.StemDir {
	case music.DirUp:
		return true
	case music.DirDown:
		return false
	}
	return float64(lo+hi)/2 < middleLinePitch
}

func headFor(dl int) glyph.ID {
	switch {
	case dl >= 0:
		return glyph.NoteheadWhole
	case dl == -1:
		return glyph.NoteheadHalf
	default:
		return glyph.NoteheadQuarter
	}
}

// addDots 在符头右侧排附点；附点落在线间，线上音上移半格。
func addDots(c *Composite, dots int, headW float64, hi int) {
	pitch := float64(hi)
	if hi%2 == 0 {
		pitch++
	}
	for i := 0; i < dots; i++ {
		c.AddRight(newGlyph(glyph.Dot, headW+0.7+float64(i)*1.3, pitch, KindDot))
	}
}

// ledgers 为超出谱表的符头补画加线。
func (vb *voiceBuilder) ledgers(c *Composite, lo, hi int, headW float64) {
	step := vb.opts.StaffStep
	add := func(pitch int) {
		c.AddRight(&Positioned{
			Kind: KindLedger, Dx: -0.6, W: headW + 1.2,
			Pitch: float64(pitch), EndPitch: float64(pitch),
			Top: float64(pitch), Bottom: float64(pitch),
			ScaleX: 1, ScaleY: 1, LineWidth: 0.35 * step,
		})
	}
	for p := topLinePitch + 2; p <= hi; p += 2 {
		add(p)
	}
	for p := bottomLinePitch - 2; p >= lo; p -= 2 {
		add(p)
	}
}

// graceNote 是装饰音在符杠引擎里的轻量代理：自己不持有绘制链，
// 音高与挂接点取自宿主复合对象的相对偏移，符干转挂回宿主。
type graceNote struct {
	host  *Composite
	dx    float64
	pitch float64
	headW float64
}

var _ StemOwner = (*graceNote)(nil)

func (g *graceNote) PitchSpan() (float64, float64, bool) { return g.pitch, g.pitch, true }

func (g *graceNote) StemX(up bool) float64 {
	if up {
		return g.host.X + g.dx + g.headW
	}
	return g.host.X + g.dx
}

func (g *graceNote) Durlog() int { return -3 }

func (g *graceNote) AttachStem(p *Positioned) { g.host.AttachStem(p) }

const graceScale = 0.6

func (vb *voiceBuilder) graces(c *Composite, e *music.Element) {
	if len(e.Grace) == 0 {
		return
	}
	var gw float64
	if g, ok := glyph.Lookup(glyph.NoteheadQuarter); ok {
		gw = g.W * graceScale
	}
	span := float64(len(e.Grace))*(gw+0.6) + 1.0
	var owners []*graceNote
	for i, gr := range e.Grace {
		dx := -span + float64(i)*(gw+0.6)
		h := newGlyph(glyph.NoteheadQuarter, dx, float64(gr.Vertical), KindNotehead)
		h.ScaleX, h.ScaleY = graceScale, graceScale
		h.W = gw
		c.AddLeft(h)
		if id := accGlyph(gr.Accidental); id != "" {
			a := newGlyph(id, dx-1.2, float64(gr.Vertical), KindAccidental)
			a.ScaleX, a.ScaleY = graceScale, graceScale
			c.AddLeft(a)
		}
		owners = append(owners, &graceNote{host: c, dx: dx, pitch: float64(gr.Vertical), headW: gw})
	}
	if len(owners) >= 2 {
		up := true
		b := newBeam(&up, true, vb.bagpipes)
		for _, o := range owners {
			b.Add(o)
		}
		b.Close()
		vb.beams = append(vb.beams, b)
		return
	}
	// 单个装饰音：短符干加小符尾。
	o := owners[0]
	step := vb.opts.StaffStep
	stem := &Positioned{
		Kind: KindStem, Dx: o.dx + gw,
		Pitch: o.pitch, EndPitch: o.pitch + 5,
		Top: o.pitch + 5, Bottom: o.pitch,
		ScaleX: graceScale, ScaleY: graceScale,
		LineWidth: 0.35 * step * graceScale,
	}
	c.AddLeft(stem)
	flag := newGlyph(glyph.FlagU8th, o.dx+gw, o.pitch+5, KindFlag)
	flag.ScaleX, flag.ScaleY = graceScale, graceScale
	c.AddLeft(flag)
}

func (vb *voiceBuilder) stemAndBeam(c *Composite, e *music.Element, dl int, stemsUp bool) {
	if dl <= -3 {
		if e.StartBeam || vb.curBeam == nil {
			vb.closeBeam()
			var force *bool
			switch {
			case vb.bagpipes:
				f := false
				force = &f
			case e.StemDir == music.DirUp:
				f := true
				force = &f
			case e.StemDir == music.DirDown:
				f := false
				force = &f
			}
			vb.curBeam = newBeam(force, false, false)
		}
		vb.curBeam.Add(c)
		vb.curRun = append(vb.curRun, c)
		if e.EndBeam {
			vb.closeBeam()
		}
		return
	}
	vb.closeBeam()
	vb.plainStem(c, dl, stemsUp)
}

// closeBeam 封口当前符杠。单成员不构成符杠，退回普通符尾加符干。
func (vb *voiceBuilder) closeBeam() {
	b := vb.curBeam
	if b == nil {
		return
	}
	run := vb.curRun
	vb.curBeam, vb.curRun = nil, nil
	if b.Size() >= 2 {
		b.Close()
		vb.beams = append(vb.beams, b)
		return
	}
	for _, c := range run {
		vb.plainStem(c, c.durlog, c.stemsUp)
	}
}

func (vb *voiceBuilder) plainStem(c *Composite, dl int, up bool) {
	if dl >= 0 || !c.hasHeads {
		return // 全音符无符干
	}
	step := vb.opts.StaffStep
	h := vb.opts.StemHeight
	stem := &Positioned{
		Kind: KindStem, ScaleX: 1, ScaleY: 1,
		LineWidth: 0.35 * step,
	}
	if up {
		stem.Dx = c.headW
		stem.Pitch = c.headLo
		stem.EndPitch = c.headHi + h
	} else {
		stem.Pitch = c.headHi
		stem.EndPitch = c.headLo - h
	}
	stem.Top = math.Max(stem.Pitch, stem.EndPitch)
	stem.Bottom = math.Min(stem.Pitch, stem.EndPitch)
	c.AddRight(stem)
	if dl <= -3 {
		c.AddRight(newGlyph(flagFor(dl, up), stem.Dx, stem.EndPitch, KindFlag))
	}
}

func flagFor(dl int, up bool) glyph.ID {
	if up {
		switch dl {
		case -3:
			return glyph.FlagU8th
		case -4:
			return glyph.FlagU16th
		case -5:
			return glyph.FlagU32nd
		default:
			return glyph.FlagU64th
		}
	}
	switch dl {
	case -3:
		return glyph.FlagD8th
	case -4:
		return glyph.FlagD16th
	case -5:
		return glyph.FlagD32nd
	default:
		return glyph.FlagD64th
	}
}

func (vb *voiceBuilder) annotations(c *Composite, e *music.Element) {
	opts := vb.opts
	for _, ch := range e.Chords {
		p := newText(ch, opts.Fonts.Chord, 0, 0, KindChord, opts)
		p.Band = BandChord
		p.Anchor = AnchorMiddle
		c.AddChild(p)
	}
	for _, ly := range e.Lyrics {
		p := newText(ly.Syllable+ly.Divider, opts.Fonts.Lyric, 0, 0, KindLyric, opts)
		p.Band = BandLyric
		p.Below = true
		p.Anchor = AnchorMiddle
		c.AddChild(p)
	}
	for _, d := range e.Decorations {
		if id, ok := decorationGlyph(d); ok {
			g := newGlyph(id, 0, 0, KindOrnament)
			g.Band = BandOrnament
			g.H *= opts.StaffStep // 纵带厚度以页面单位计
			c.AddChild(g)
			continue
		}
		p := newText(d, opts.Fonts.Annot, 0, 0, KindOrnament, opts)
		p.Band = BandOrnament
		p.Anchor = AnchorMiddle
		c.AddChild(p)
	}
	for _, dy := range e.Dynamics {
		p := newText(dy, opts.Fonts.Dynamic, 0, 0, KindDynamic, opts)
		p.Band = BandDynamic
		p.Below = true
		p.Anchor = AnchorMiddle
		c.AddChild(p)
	}
	if e.Part != "" {
		p := newText(e.Part, opts.Fonts.Part, 0, 0, KindPart, opts)
		p.Band = BandPart
		c.AddChild(p)
	}
}

func (vb *voiceBuilder) connectorMarks(c *Composite, e *music.Element, anchors map[int]*Positioned, stemsUp bool) {
	// 先闭合指向本音符的延音线。
	vb.pool.endTies(anchors)

	// 圆滑线锚在符干对侧的露出端；锚点的 Pitch==Top 恰好在符干朝下
	// 时成立，关闭方向启发式依赖这一点。
	exposed := c.headLo
	if !stemsUp {
		exposed = c.headHi
	}
	slurAnchor := &Positioned{
		Pitch: exposed, EndPitch: exposed,
		Top: c.headHi, Bottom: c.headLo,
		W: c.headW, ScaleX: 1, ScaleY: 1,
	}
	c.AddChild(slurAnchor)
	for _, slot := range e.SlurEnds {
		vb.pool.endSlur(slot, slurAnchor)
	}
	for _, slot := range e.SlurStarts {
		vb.pool.startSlur(slot, slurAnchor, stemsUp, false, false)
	}
	for _, p := range e.Pitches {
		if p.Tie {
			vb.pool.startTie(p.Vertical, anchors[p.Vertical], stemsUp)
		}
	}
}

func (vb *voiceBuilder) tripletMarks(c *Composite, e *music.Element) {
	if e.StartTriplet > 0 {
		vb.openTriplets = append(vb.openTriplets, &Triplet{label: e.StartTriplet, startHost: c})
	}
	if e.EndTriplet && len(vb.openTriplets) > 0 {
		t := vb.openTriplets[len(vb.openTriplets)-1]
		vb.openTriplets = vb.openTriplets[:len(vb.openTriplets)-1]
		t.endHost = c
		vb.triplets = append(vb.triplets, t)
	}
}

func accGlyph(a music.Accidental) glyph.ID {
	switch a {
	case music.AccSharp:
		return glyph.AccSharp
	case music.AccFlat:
		return glyph.AccFlat
	case music.AccNatural:
		return glyph.AccNatural
	case music.AccDblSharp:
		return glyph.AccDblSharp
	case music.AccDblFlat:
		return glyph.AccDblFlat
	}
	return ""
}

func decorationGlyph(name string) (glyph.ID, bool) {
	switch name {
	case "staccato":
		return glyph.Staccato, true
	case "fermata":
		return glyph.Fermata, true
	case "accent", "emphasis", "sforzando":
		return glyph.Accent, true
	case "mordent", "lowermordent":
		return glyph.Mordent, true
	}
	return "", false
}
