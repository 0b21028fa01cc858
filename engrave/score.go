package engrave

import "strconv"

// 该文件定义排版输出的绘制清单。Score 是纯数据：渲染后端按序消费
// 其中的原语，调试 JSON 直接序列化同一结构。

// Score 是一次排版的完整结果：页面尺寸加上按绘制顺序排列的原语。
type Score struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Paths  []Path  `json:"paths,omitempty"`
	Lines  []Line  `json:"lines,omitempty"`
	Texts  []Text  `json:"texts,omitempty"`
	// Hits 暴露每个源元素的绝对包围盒，供点击选中与范围高亮使用。
	Hits []Hit `json:"hits,omitempty"`
}

// Path 是一段矢量轮廓：SVG path 数据加平移/缩放。Fill 为真时按非零
// 环绕规则填充，否则以 StrokeWidth 描边。
type Path struct {
	Data        string  `json:"data"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ScaleX      float64 `json:"scaleX"`
	ScaleY      float64 `json:"scaleY"`
	Fill        bool    `json:"fill,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Class       string  `json:"class,omitempty"`
}

// Line 是一条线段（谱线、符干、小节线）。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
	Class string  `json:"class,omitempty"`
}

// Text 是一段定位文本。Y 为基线位置。
type Text struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content string  `json:"content"`
	Font    Font    `json:"font"`
	Anchor  Anchor  `json:"anchor,omitempty"`
	Class   string  `json:"class,omitempty"`
}

// Anchor 文本水平锚点。
type Anchor string

const (
	AnchorStart  Anchor = ""
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Hit 是一个透明命中区域，关联回源元素的字符范围。
type Hit struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	CharStart int     `json:"charStart"`
	CharEnd   int     `json:"charEnd"`
	Class     string  `json:"class,omitempty"`
}

// ftoa formats a coordinate for inline SVG path data.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// scoreBuilder 在绘制阶段累积原语；类名前缀模拟分组层级
// （如 "staff0 note"），供渲染后端作样式提示。
type scoreBuilder struct {
	score  *Score
	prefix []string
}

func newScoreBuilder() *scoreBuilder {
	return &scoreBuilder{score: &Score{}}
}

func (sb *scoreBuilder) beginGroup(class string) {
	sb.prefix = append(sb.prefix, class)
}

func (sb *scoreBuilder) endGroup() {
	if len(sb.prefix) > 0 {
		sb.prefix = sb.prefix[:len(sb.prefix)-1]
	}
}

func (sb *scoreBuilder) class(own string) string {
	parts := make([]string, 0, len(sb.prefix)+1)
	parts = append(parts, sb.prefix...)
	if own != "" {
		parts = append(parts, own)
	}
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

func (sb *scoreBuilder) path(p Path, class string) {
	p.Class = sb.class(class)
	if p.ScaleX == 0 {
		p.ScaleX = 1
	}
	if p.ScaleY == 0 {
		p.ScaleY = 1
	}
	sb.score.Paths = append(sb.score.Paths, p)
}

func (sb *scoreBuilder) line(x1, y1, x2, y2, width float64, class string) {
	sb.score.Lines = append(sb.score.Lines, Line{
		X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Class: sb.class(class),
	})
}

func (sb *scoreBuilder) text(t Text, class string) {
	t.Class = sb.class(class)
	sb.score.Texts = append(sb.score.Texts, t)
}

func (sb *scoreBuilder) hit(x, y, w, h float64, charStart, charEnd int, class string) {
	sb.score.Hits = append(sb.score.Hits, Hit{
		X: x, Y: y, W: w, H: h,
		CharStart: charStart, CharEnd: charEnd, Class: sb.class(class),
	})
}
