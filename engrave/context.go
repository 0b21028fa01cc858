package engrave

// layoutContext 携带一次渲染的全部可变状态。它在 PerLineCreate 阶段
// 创建、Draw 结束即丢弃；任何跨次渲染的进程级可变状态都是缺陷。
type layoutContext struct {
	opts Options

	// 当前乐谱行的水平范围，作为连线缺失锚点时的回退边界。
	lineStartX float64
	lineEndX   float64
	// 最近一次反复小节线的 x；非零时裁剪向行首回退的连线。
	lastRepeatX float64
}

func newLayoutContext(opts Options) *layoutContext {
	return &layoutContext{opts: opts}
}

// step returns the vertical size of one staff step.
func (ctx *layoutContext) step() float64 { return ctx.opts.StaffStep }

// topLinePitch 是五线谱最上方谱线的音高值；谱线位于 2、4、6、8、10，
// 中线为 6（符干方向与符杠判定的参考线）。
const (
	topLinePitch    = 10
	bottomLinePitch = 2
	middleLinePitch = 6
)

// staffCoords 将谱表步音高换算为页面 y 坐标。topY 对应最上方谱线。
type staffCoords struct {
	topY float64
	step float64
}

func (sc staffCoords) y(pitch float64) float64 {
	return sc.topY + (topLinePitch-pitch)*sc.step
}
