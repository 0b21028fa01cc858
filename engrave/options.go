package engrave

import (
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/stave/music"
)

// Options 配置排版阶段的依赖与度量参数。所有长度单位与 Score 输出
// 一致（canvas 坐标，默认按毫米渲染）；以谱表步记的量单独注明。
type Options struct {
	// Measurer 负责文本测量（歌词、和弦记号等宽度）。为空时退回
	// 按字符数估算，保证布局可以在没有字体的环境下运行。
	Measurer Measurer

	// PageWidth 为目标行宽；LeftMargin/TopMargin 为页面留白。
	PageWidth  float64
	LeftMargin float64
	TopMargin  float64

	// StaffStep 为一个谱表步（相邻自然音级）的纵向距离。
	StaffStep float64

	// SpacingUnit 为 sqrt(8×时值) 间距项的比例因子。
	SpacingUnit float64
	// MaxSpacingGap 为拉伸求解时允许的最小音符间隙上限，防止稀疏
	// 行被过度拉宽。
	MaxSpacingGap float64

	// 符杠几何（谱表步）：主杠的符干高度、极端音的最短符干、
	// 次级杠的层间距与杠厚度、孤立次级杠的残杠长度。
	StemHeight     float64
	ShortStemHeight float64
	BeamSeparation float64
	BeamThickness  float64
	BeamStubLength float64

	// StaffSeparation 为同组相邻谱表可绘制范围之间的最小间隙；
	// LineSeparation 为相邻乐谱行之间的间隙。
	StaffSeparation float64
	LineSeparation  float64

	// Fonts 为各注记类别的默认字体。
	Fonts FontTable

	// Debug 开启时，未知符号会以内联调试文本显示而非静默留空。
	Debug bool
}

// FontTable 按注记类别给出字体。
type FontTable struct {
	Title    Font
	Composer Font
	Lyric    Font
	Chord    Font
	Dynamic  Font
	Part     Font
	Tempo    Font
	Annot    Font
	Text     Font
}

// Font 是输出原语使用的字体描述。
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
}

// Measurer 返回一段文本在给定字体下的宽高。渲染后端实现它；
// 布局通过该接口测量而不直接依赖图形库。
type Measurer interface {
	TextSize(content string, font Font) (w, h float64)
}

// DefaultOptions 返回默认参数集。数值属于视觉调校常量，可整体或
// 逐项覆盖。
func DefaultOptions() Options {
	serif := "Times New Roman"
	return Options{
		PageWidth:  180,
		LeftMargin: 15,
		TopMargin:  15,

		StaffStep: 1.0,

		SpacingUnit:   3.0,
		MaxSpacingGap: 15,

		StemHeight:      7,
		ShortStemHeight: 5,
		BeamSeparation:  1.6,
		BeamThickness:   1.0,
		BeamStubLength:  1.4,

		StaffSeparation: 6,
		LineSeparation:  8,

		Fonts: FontTable{
			Title:    Font{Family: serif, Size: 7},
			Composer: Font{Family: serif, Size: 4.2},
			Lyric:    Font{Family: serif, Size: 4.2},
			Chord:    Font{Family: serif, Size: 4.2},
			Dynamic:  Font{Family: serif, Size: 4.2, Italic: true, Bold: true},
			Part:     Font{Family: serif, Size: 5, Bold: true},
			Tempo:    Font{Family: serif, Size: 4.2, Bold: true},
			Annot:    Font{Family: serif, Size: 3.5, Italic: true},
			Text:     Font{Family: serif, Size: 4.2},
		},
	}
}

// withDefaults 用默认值补齐零值字段，并应用乐曲级覆盖。
func (o Options) withDefaults(f music.Formatting) Options {
	def := DefaultOptions()
	if o.PageWidth <= 0 {
		o.PageWidth = def.PageWidth
	}
	if o.LeftMargin <= 0 {
		o.LeftMargin = def.LeftMargin
	}
	if o.TopMargin <= 0 {
		o.TopMargin = def.TopMargin
	}
	if o.StaffStep <= 0 {
		o.StaffStep = def.StaffStep
	}
	if o.SpacingUnit <= 0 {
		o.SpacingUnit = def.SpacingUnit
	}
	if o.MaxSpacingGap <= 0 {
		o.MaxSpacingGap = def.MaxSpacingGap
	}
	if o.StemHeight <= 0 {
		o.StemHeight = def.StemHeight
	}
	if o.ShortStemHeight <= 0 {
		o.ShortStemHeight = def.ShortStemHeight
	}
	if o.BeamSeparation <= 0 {
		o.BeamSeparation = def.BeamSeparation
	}
	if o.BeamThickness <= 0 {
		o.BeamThickness = def.BeamThickness
	}
	if o.BeamStubLength <= 0 {
		o.BeamStubLength = def.BeamStubLength
	}
	if o.StaffSeparation <= 0 {
		o.StaffSeparation = def.StaffSeparation
	}
	if o.LineSeparation <= 0 {
		o.LineSeparation = def.LineSeparation
	}
	o.Fonts = o.Fonts.withDefaults(def.Fonts)

	// 乐曲自带的排版参数优先于调用方选项。
	if f.SpacingUnit > 0 {
		o.SpacingUnit = f.SpacingUnit
	}
	if f.PageWidth > 0 {
		o.PageWidth = f.PageWidth
	}
	o.Fonts.apply(f.Fonts)
	return o
}

func (t FontTable) withDefaults(def FontTable) FontTable {
	fill := func(f, d Font) Font {
		if f.Family == "" {
			f.Family = d.Family
		}
		if f.Size <= 0 {
			f.Size = d.Size
		}
		return f
	}
	t.Title = fill(t.Title, def.Title)
	t.Composer = fill(t.Composer, def.Composer)
	t.Lyric = fill(t.Lyric, def.Lyric)
	t.Chord = fill(t.Chord, def.Chord)
	t.Dynamic = fill(t.Dynamic, def.Dynamic)
	t.Part = fill(t.Part, def.Part)
	t.Tempo = fill(t.Tempo, def.Tempo)
	t.Annot = fill(t.Annot, def.Annot)
	t.Text = fill(t.Text, def.Text)
	return t
}

func (t *FontTable) apply(f music.Fonts) {
	over := func(dst *Font, src music.Font) {
		if src.IsZero() {
			return
		}
		if src.Family != "" {
			dst.Family = src.Family
		}
		if src.Size > 0 {
			dst.Size = src.Size
		}
		dst.Bold = src.Bold
		dst.Italic = src.Italic
	}
	over(&t.Title, f.Title)
	over(&t.Lyric, f.Lyric)
	over(&t.Chord, f.Chord)
	over(&t.Tempo, f.Tempo)
	over(&t.Part, f.Part)
	over(&t.Annot, f.Annot)
	over(&t.Dynamic, f.Volume)
}

// EstimateTextSize is the measurement fallback used when no Measurer is
// available: width per rune scaled by the font size, one line high. The
// same estimate backs the canvas renderer when a font fails to load.
func EstimateTextSize(content string, font Font) (w, h float64) {
	maxChars := 0
	for _, line := range strings.Split(content, "\n") {
		if n := utf8.RuneCountInString(line); n > maxChars {
			maxChars = n
		}
	}
	return font.Size * 0.55 * float64(maxChars), font.Size
}

// measure routes through the configured Measurer with the estimate as
// fallback.
func (o *Options) measure(content string, font Font) (w, h float64) {
	if content == "" {
		return 0, 0
	}
	if o.Measurer != nil {
		return o.Measurer.TextSize(content, font)
	}
	return EstimateTextSize(content, font)
}
