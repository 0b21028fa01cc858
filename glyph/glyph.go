// Package glyph 提供乐谱符号的静态查询表：每个符号 id 对应一段矢量
// 轮廓（SVG path 数据）、包围盒宽高与纵向居中修正值。
//
// 坐标约定：以谱表步（staff step，相邻自然音级的纵向距离）为单位，
// x 从符号左缘起算，y 向下为正、0 为符号的纵向锚点。排版引擎按
// Options.StaffStep 对其整体缩放。表在进程内只读，可安全共享。
package glyph

// ID identifies one symbol in the table.
type ID string

// Symbol ids. The naming follows the usual music-font scheme so that a
// producer can refer to them without a mapping layer.
const (
	NoteheadWhole   ID = "noteheads.whole"
	NoteheadHalf    ID = "noteheads.half"
	NoteheadQuarter ID = "noteheads.quarter"
	Dot             ID = "dots.dot"

	AccSharp    ID = "accidentals.sharp"
	AccFlat     ID = "accidentals.flat"
	AccNatural  ID = "accidentals.nat"
	AccDblSharp ID = "accidentals.dblsharp"
	AccDblFlat  ID = "accidentals.dblflat"

	ClefG ID = "clefs.G"
	ClefF ID = "clefs.F"
	ClefC ID = "clefs.C"

	RestWhole   ID = "rests.whole"
	RestHalf    ID = "rests.half"
	RestQuarter ID = "rests.quarter"
	Rest8th     ID = "rests.8th"
	Rest16th    ID = "rests.16th"
	Rest32nd    ID = "rests.32nd"
	Rest64th    ID = "rests.64th"

	FlagU8th  ID = "flags.u8th"
	FlagU16th ID = "flags.u16th"
	FlagU32nd ID = "flags.u32nd"
	FlagU64th ID = "flags.u64th"
	FlagD8th  ID = "flags.d8th"
	FlagD16th ID = "flags.d16th"
	FlagD32nd ID = "flags.d32nd"
	FlagD64th ID = "flags.d64th"

	TimeCommon ID = "timesig.common"
	TimeCut    ID = "timesig.cut"

	Fermata  ID = "scripts.ufermata"
	Staccato ID = "scripts.staccato"
	Accent   ID = "scripts.sforzato"
	Mordent  ID = "scripts.mordent"
)

// Glyph 保存一个符号的轮廓与度量。
type Glyph struct {
	// Path 为 SVG path 数据，单位为谱表步。
	Path string
	// W、H 为包围盒宽高（谱表步）。
	W, H float64
	// VCenter 为纵向居中修正：符号视觉中心相对锚点的偏移，
	// 正值表示视觉中心在锚点之下。
	VCenter float64
}

// Lookup returns the glyph for id. ok is false for unknown ids; callers
// are expected to degrade to a zero-size placeholder rather than fail.
func Lookup(id ID) (Glyph, bool) {
	g, ok := table[id]
	return g, ok
}

// Known reports whether id exists in the table.
func Known(id ID) bool {
	_, ok := table[id]
	return ok
}

// Width returns the bounding width of id in staff steps, 0 if unknown.
func Width(id ID) float64 {
	return table[id].W
}

// Height returns the bounding height of id in staff steps, 0 if unknown.
func Height(id ID) float64 {
	return table[id].H
}

// CenterCorrection returns the vertical-center correction of id, 0 if
// unknown.
func CenterCorrection(id ID) float64 {
	return table[id].VCenter
}
