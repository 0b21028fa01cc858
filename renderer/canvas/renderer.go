package canvasrenderer

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/stave/engrave"
	"github.com/ByLCY/stave/renderer"
)

// Renderer draws engraved scores via github.com/tdewolff/canvas. 同一个
// 实例同时充当排版阶段的文本测量器：测量与绘制共用字体缓存，歌词宽
// 度在两个阶段必然一致。
type Renderer struct {
	format Format

	// injected resources
	fontBlobs map[string][]byte // by family name

	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
	missing  map[string]bool
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ engrave.Measurer  = (*Renderer)(nil)
)

// Format 输出格式。
type Format string

const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Options configures the canvas renderer.
type Options struct {
	Format Format
	Fonts  map[string]Resource // 按字体族名注入
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates an SVG renderer with no injected fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		format:    opts.Format,
		fontBlobs: map[string][]byte{},
		families:  map[string]*canvas.FontFamily{},
		missing:   map[string]bool{},
	}
	if r.format == "" {
		r.format = FormatSVG
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 加载失败在实际用到时降级
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Render renders the score into an SVG or PDF byte slice.
func (r *Renderer) Render(score *engrave.Score) ([]byte, error) {
	if score == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	w, h := score.Width, score.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("页面尺寸非法: %g x %g", w, h)
	}
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点
	r.draw(ctx, score)

	var buf bytes.Buffer
	switch r.format {
	case FormatPDF:
		writer := pdf.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	default:
		writer := svg.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	}
	return buf.Bytes(), nil
}

const defaultStrokeWidth = 0.2

func (r *Renderer) draw(ctx *canvas.Context, score *engrave.Score) {
	for _, p := range score.Paths {
		path, err := canvas.ParseSVGPath(p.Data)
		if err != nil {
			continue // 坏轮廓跳过，不中断整页
		}
		if p.ScaleX != 1 || p.ScaleY != 1 {
			path = path.Scale(p.ScaleX, p.ScaleY)
		}
		if p.Fill {
			ctx.SetFillColor(canvas.Black)
			ctx.SetStrokeColor(canvas.Transparent)
		} else {
			ctx.SetFillColor(canvas.Transparent)
			ctx.SetStrokeColor(canvas.Black)
			w := p.StrokeWidth
			if w <= 0 {
				w = defaultStrokeWidth
			}
			ctx.SetStrokeWidth(w)
		}
		ctx.DrawPath(p.X, p.Y, path)
	}

	for _, ln := range score.Lines {
		w := ln.Width
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(canvas.Black)
		ctx.SetStrokeWidth(w)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}

	for _, t := range score.Texts {
		face, ok := r.face(t.Font)
		if !ok {
			continue // 字体缺失时略过文本；几何布局不受影响
		}
		align := canvas.Left
		switch t.Anchor {
		case engrave.AnchorMiddle:
			align = canvas.Center
		case engrave.AnchorEnd:
			align = canvas.Right
		}
		line := canvas.NewTextLine(face, t.Content, align)
		ctx.DrawText(t.X, t.Y, line)
	}
}

// TextSize 实现 engrave.Measurer。字体族未注入时退回按字符估算，
// 与排版引擎无测量器时的行为一致。
func (r *Renderer) TextSize(content string, font engrave.Font) (w, h float64) {
	face, ok := r.face(font)
	if !ok {
		return engrave.EstimateTextSize(content, font)
	}
	return face.TextWidth(content), face.Metrics().LineHeight
}

func (r *Renderer) face(font engrave.Font) (*canvas.FontFace, bool) {
	family, ok := r.ensureFamily(font.Family)
	if !ok {
		return nil, false
	}
	style := canvas.FontRegular
	if font.Bold {
		style = canvas.FontBold
	}
	if font.Italic {
		style |= canvas.FontItalic
	}
	return family.Face(toPt(font.Size), canvas.Black, style, canvas.FontNormal), true
}

func (r *Renderer) ensureFamily(name string) (*canvas.FontFamily, bool) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if fam, ok := r.families[name]; ok {
		return fam, true
	}
	if r.missing[name] {
		return nil, false
	}
	data, ok := r.fontBlobs[name]
	if !ok {
		r.missing[name] = true
		return nil, false
	}
	fam := canvas.NewFontFamily(name)
	if err := fam.LoadFont(data, 0, canvas.FontRegular); err != nil {
		r.missing[name] = true
		return nil, false
	}
	r.families[name] = fam
	return fam, true
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * 72.0 / 25.4 }
