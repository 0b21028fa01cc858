// Package music 定义乐谱的数据模型：行、谱表、声部与音乐元素。
// 该模型由外部解析器产出（通常以 JSON 形式传入），引擎只读不改。
// 时值一律以全音符为单位（四分音符 = 0.25）；音高使用自然音级整数，
// 0 对应高音谱表的中央 C，向上递增，负数经由下加线延伸。
package music

import "math"

// Tune 是一首乐曲的完整模型：标题信息、排版开关与若干行。
type Tune struct {
	Title      string     `json:"title,omitempty"`
	Composer   string     `json:"composer,omitempty"`
	Rhythm     string     `json:"rhythm,omitempty"`
	Formatting Formatting `json:"formatting,omitempty"`
	Lines      []Line     `json:"lines"`
}

// Formatting 汇总乐曲级排版开关与参数（零值表示使用引擎默认值）。
type Formatting struct {
	Bagpipes    bool    `json:"bagpipes,omitempty"`    // 风笛惯例：强制下行符干、平坦装饰音符杠
	StretchLast bool    `json:"stretchLast,omitempty"` // 最后一行也拉伸到整页宽
	SpacingUnit float64 `json:"spacingUnit,omitempty"` // 水平间距单位（见 engrave.Options）
	PageWidth   float64 `json:"pageWidth,omitempty"`
	Fonts       Fonts   `json:"fonts,omitempty"`
}

// Fonts 按注记类别覆盖字体；空字段继承引擎默认。
type Fonts struct {
	Title  Font `json:"title,omitempty"`
	Lyric  Font `json:"lyric,omitempty"`
	Chord  Font `json:"chord,omitempty"`
	Tempo  Font `json:"tempo,omitempty"`
	Part   Font `json:"part,omitempty"`
	Annot  Font `json:"annotation,omitempty"`
	Volume Font `json:"volume,omitempty"`
}

// Font 描述一个文本类别使用的字体。
type Font struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
}

// IsZero reports whether no field of the font has been set.
func (f Font) IsZero() bool {
	return f.Family == "" && f.Size == 0 && !f.Bold && !f.Italic
}

// Line 要么是一个纯文本行（Text 非空），要么是一个含若干谱表的乐谱行。
type Line struct {
	Text   string  `json:"text,omitempty"`
	Staves []Staff `json:"staves,omitempty"`
}

// IsMusic reports whether the line carries staves rather than free text.
func (l *Line) IsMusic() bool { return len(l.Staves) > 0 }

// Staff 是一条物理谱表：谱号、调号、拍号与一个或多个声部。
type Staff struct {
	Clef   Clef    `json:"clef,omitempty"`
	Lines  int     `json:"lines,omitempty"` // 谱线数，0 按 5 处理
	Key    *Key    `json:"key,omitempty"`
	Meter  *Meter  `json:"meter,omitempty"`
	Voices []Voice `json:"voices"`
}

// LineCount returns the number of staff lines, defaulting to five.
func (s *Staff) LineCount() int {
	if s.Lines <= 0 {
		return 5
	}
	return s.Lines
}

// Voice 是按时间排序的元素序列。
type Voice struct {
	Elements []Element `json:"elements"`
}

// ElementKind 区分元素类别；使用字符串以便 JSON 直接可读。
type ElementKind string

const (
	KindNote  ElementKind = "note"
	KindRest  ElementKind = "rest"
	KindBar   ElementKind = "bar"
	KindClef  ElementKind = "clef"
	KindKey   ElementKind = "key"
	KindMeter ElementKind = "meter"
	KindTempo ElementKind = "tempo"
)

// Element 是声部里的一个音乐事件。除 Kind 与 Duration 外，其余字段
// 只在对应类别下有意义；排版引擎对缺失的子结构按"跳过"降级处理。
type Element struct {
	Kind     ElementKind `json:"kind"`
	Duration float64     `json:"duration,omitempty"` // 全音符单位，含附点、不含连音比例
	Dots     int         `json:"dots,omitempty"`

	Pitches []Pitch `json:"pitches,omitempty"` // 音符：和弦成员按音高升序
	Grace   []Grace `json:"grace,omitempty"`   // 前缀装饰音

	Rest         RestKind `json:"rest,omitempty"`
	WholeMeasure bool     `json:"wholeMeasure,omitempty"` // 整小节休止（参与居中后处理）

	Bar   BarKind `json:"bar,omitempty"`
	Clef  Clef    `json:"clef,omitempty"`
	Key   *Key    `json:"key,omitempty"`
	Meter *Meter  `json:"meter,omitempty"`
	Tempo *Tempo  `json:"tempo,omitempty"`

	// 符干与符杠
	StemDir   StemDir `json:"stemDir,omitempty"`
	StartBeam bool    `json:"startBeam,omitempty"`
	EndBeam   bool    `json:"endBeam,omitempty"`

	// 连线与连音
	SlurStarts []int   `json:"slurStarts,omitempty"` // 槽位 id：0 = 整个和弦，1..N = 和弦内单音
	SlurEnds   []int   `json:"slurEnds,omitempty"`
	StartTriplet int     `json:"startTriplet,omitempty"` // p 连音的 p（3 = 三连音）；0 表示无
	TripletMultiplier float64 `json:"tripletMultiplier,omitempty"` // 有效时值比例（三连音为 2/3）
	EndTriplet bool `json:"endTriplet,omitempty"`

	// 注记
	Chords      []string `json:"chords,omitempty"` // 和弦记号文本
	Lyrics      []Lyric  `json:"lyrics,omitempty"`
	Decorations []string `json:"decorations,omitempty"` // staccato、fermata、accent、trill…
	Dynamics    []string `json:"dynamics,omitempty"`    // p、mf、f、sfz…
	Part        string   `json:"part,omitempty"`
	Ending      string   `json:"ending,omitempty"` // 反复结尾标号（"1"、"2"），置于小节线上
	EndEnding   bool     `json:"endEnding,omitempty"`

	// 源文本范围，用于选中/高亮回调
	CharStart int `json:"charStart,omitempty"`
	CharEnd   int `json:"charEnd,omitempty"`
}

// Pitch 是和弦中的一个音。
type Pitch struct {
	Vertical   int        `json:"vertical"`
	Accidental Accidental `json:"accidental,omitempty"`
	Tie        bool       `json:"tie,omitempty"` // 与后继同音高音符相连
}

// Grace 是装饰音（不占用记谱时值）。
type Grace struct {
	Vertical   int        `json:"vertical"`
	Accidental Accidental `json:"accidental,omitempty"`
}

// Lyric 是一个歌词音节及其后缀分隔符（"-" 或空格）。
type Lyric struct {
	Syllable string `json:"syllable"`
	Divider  string `json:"divider,omitempty"`
}

// Clef 谱号。
type Clef string

const (
	ClefTreble Clef = "treble"
	ClefBass   Clef = "bass"
	ClefAlto   Clef = "alto"
	ClefTenor  Clef = "tenor"
	ClefNone   Clef = "none"
)

// MiddleCPitch returns the staff-step of middle C under the clef, so a
// producer working in absolute pitches can map into staff steps.
func (c Clef) MiddleCPitch() int {
	switch c {
	case ClefBass:
		return 12
	case ClefAlto:
		return 6
	case ClefTenor:
		return 4
	default:
		return 0
	}
}

// Accidental 变音记号。
type Accidental string

const (
	AccNone      Accidental = ""
	AccSharp     Accidental = "sharp"
	AccFlat      Accidental = "flat"
	AccNatural   Accidental = "natural"
	AccDblSharp  Accidental = "dblsharp"
	AccDblFlat   Accidental = "dblflat"
)

// StemDir 符干方向；空值表示由引擎决定。
type StemDir string

const (
	DirAuto StemDir = ""
	DirUp   StemDir = "up"
	DirDown StemDir = "down"
)

// RestKind 休止符类别。
type RestKind string

const (
	RestNormal    RestKind = "rest"
	RestInvisible RestKind = "invisible" // 占时值但不绘制
	RestSpacer    RestKind = "spacer"
)

// BarKind 小节线类别。
type BarKind string

const (
	BarThin        BarKind = "bar_thin"
	BarThinThin    BarKind = "bar_thin_thin"
	BarThinThick   BarKind = "bar_thin_thick"
	BarRepeatStart BarKind = "bar_left_repeat"
	BarRepeatEnd   BarKind = "bar_right_repeat"
	BarInvisible   BarKind = "bar_invisible"
)

// Key 调号：根音、模式与展开后的升降记号列表（由解析器给出位置）。
type Key struct {
	Root        string          `json:"root,omitempty"`
	Acc         string          `json:"acc,omitempty"`
	Mode        string          `json:"mode,omitempty"`
	Accidentals []KeyAccidental `json:"accidentals,omitempty"`
}

// KeyAccidental 是调号中一个升降记号及其谱表位置。
type KeyAccidental struct {
	Acc      Accidental `json:"acc"`
	Note     string     `json:"note"` // 音名字母，小写
	Vertical int        `json:"vertical"`
}

// Meter 拍号。Symbol 非空时绘制记号（C、¢）而非分数。
type Meter struct {
	Num    int         `json:"num,omitempty"`
	Den    int         `json:"den,omitempty"`
	Symbol MeterSymbol `json:"symbol,omitempty"`
}

// MeterSymbol 拍号记号。
type MeterSymbol string

const (
	MeterFraction MeterSymbol = ""
	MeterCommon   MeterSymbol = "common"
	MeterCut      MeterSymbol = "cut"
)

// Tempo 速度标记：文字与/或以某时值为拍的每分钟拍数。
type Tempo struct {
	Text     string  `json:"text,omitempty"`
	QPM      float64 `json:"qpm,omitempty"`
	Duration float64 `json:"duration,omitempty"` // 拍的时值，全音符单位
}

// EffectiveDuration 返回用于水平间距的有效时值：记谱时值乘以连音比例。
func (e *Element) EffectiveDuration() float64 {
	if e.TripletMultiplier > 0 {
		return e.Duration * e.TripletMultiplier
	}
	return e.Duration
}

// BaseDuration 去掉附点后的基础时值，用于选择符头/符尾字形。
func (e *Element) BaseDuration() float64 {
	if e.Dots <= 0 {
		return e.Duration
	}
	factor := 2 - math.Pow(0.5, float64(e.Dots))
	return e.Duration / factor
}

// Durlog returns floor(log2(d)) for a whole-note-unit duration, the scale
// on which note shapes change (-2 quarter, -3 eighth, -4 sixteenth…).
// Zero-duration placeholders are treated as quarters.
func Durlog(d float64) int {
	if d <= 0 {
		return -2
	}
	return int(math.Floor(math.Log2(d) + 1e-9))
}

// PitchRange returns the lowest and highest staff-steps among the note's
// pitches. ok is false when the element carries no pitch at all.
func (e *Element) PitchRange() (lo, hi int, ok bool) {
	if len(e.Pitches) == 0 {
		return 0, 0, false
	}
	lo, hi = e.Pitches[0].Vertical, e.Pitches[0].Vertical
	for _, p := range e.Pitches[1:] {
		if p.Vertical < lo {
			lo = p.Vertical
		}
		if p.Vertical > hi {
			hi = p.Vertical
		}
	}
	return lo, hi, true
}
