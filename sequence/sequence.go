// Package sequence 把乐谱模型展开为按时间排序的演奏事件流（音符开、
// 音符关、速度变更）。事件以 tick 计时，四分音符 480 tick；流本身与
// 任何具体的回放格式无关，编码为 MIDI 或驱动合成器由调用方决定。
package sequence

import (
	"errors"
	"math"
	"sort"

	"github.com/ByLCY/stave/music"
)

// TicksPerQuarter 每四分音符的 tick 数。
const TicksPerQuarter = 480

const wholeTicks = TicksPerQuarter * 4

// EventKind 事件类别。
type EventKind string

const (
	NoteOn      EventKind = "note_on"
	NoteOff     EventKind = "note_off"
	TempoChange EventKind = "tempo"
)

// Event 是流中的一个事件。Note 为 MIDI 音号（60 = 中央 C），仅音符
// 事件有效；QPM 仅速度事件有效。
type Event struct {
	Tick int       `json:"tick"`
	Kind EventKind `json:"kind"`
	Note int       `json:"note,omitempty"`
	QPM  float64   `json:"qpm,omitempty"`
}

// Sequence 是一首乐曲展开后的完整事件流。
type Sequence struct {
	TicksPerQuarter int     `json:"ticksPerQuarter"`
	Events          []Event `json:"events"`
}

// Build 展开整首乐曲。各行首尾相接；一行内的多谱表多声部并行展开，
// 行的结束取最晚声部。临时记号在小节内延续，小节线清空；延音线把
// 相连音符并成一次发声；装饰音从主音符头部偷取时值。
func Build(tune *music.Tune) (*Sequence, error) {
	if tune == nil {
		return nil, errors.New("sequence: nil tune")
	}
	var events []Event
	start := 0
	for li := range tune.Lines {
		line := &tune.Lines[li]
		if !line.IsMusic() {
			continue
		}
		lineEnd := start
		for si := range line.Staves {
			staff := &line.Staves[si]
			for vi := range staff.Voices {
				end := expandVoice(&events, staff, staff.Voices[vi].Elements, start)
				if end > lineEnd {
					lineEnd = end
				}
			}
		}
		start = lineEnd
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Tick != events[j].Tick {
			return events[i].Tick < events[j].Tick
		}
		// 同一 tick 上先关后开，避免同音连续时的零长重叠。
		return rank(events[i].Kind) < rank(events[j].Kind)
	})
	return &Sequence{TicksPerQuarter: TicksPerQuarter, Events: events}, nil
}

func rank(k EventKind) int {
	switch k {
	case NoteOff:
		return 0
	case TempoChange:
		return 1
	default:
		return 2
	}
}

// graceTicks 每个装饰音的最大时值；总偷取不超过主音符的一半。
const graceTicks = 60

func expandVoice(events *[]Event, staff *music.Staff, elems []music.Element, start int) int {
	clef := staff.Clef
	key := keyTable(staff.Key)
	measure := map[int]music.Accidental{}
	tied := map[int]bool{}
	tick := start

	for i := range elems {
		e := &elems[i]
		switch e.Kind {
		case music.KindBar:
			measure = map[int]music.Accidental{}
		case music.KindClef:
			clef = e.Clef
		case music.KindKey:
			if e.Key != nil {
				key = keyTable(e.Key)
			}
		case music.KindTempo:
			if e.Tempo != nil && e.Tempo.QPM > 0 {
				*events = append(*events, Event{Tick: tick, Kind: TempoChange, QPM: e.Tempo.QPM})
			}
		case music.KindRest:
			tick += durTicks(e.EffectiveDuration())
		case music.KindNote:
			tick = expandNote(events, e, clef, key, measure, tied, tick)
		}
	}
	// 行尾残留的延音就地闭合。
	for m := range tied {
		*events = append(*events, Event{Tick: tick, Kind: NoteOff, Note: m})
		delete(tied, m)
	}
	return tick
}

func expandNote(events *[]Event, e *music.Element, clef music.Clef, key map[byte]music.Accidental, measure map[int]music.Accidental, tied map[int]bool, tick int) int {
	total := durTicks(e.EffectiveDuration())
	noteStart := tick
	mainDur := total

	if n := len(e.Grace); n > 0 && total > 0 {
		steal := graceTicks * n
		if steal > total/2 {
			steal = total / 2
		}
		per := steal / n
		gt := tick
		for _, g := range e.Grace {
			m := midiOf(g.Vertical, g.Accidental, clef, key, measure, false)
			*events = append(*events,
				Event{Tick: gt, Kind: NoteOn, Note: m},
				Event{Tick: gt + per, Kind: NoteOff, Note: m})
			gt += per
		}
		noteStart = tick + steal
		mainDur = total - steal
	}

	for _, p := range e.Pitches {
		m := midiOf(p.Vertical, p.Accidental, clef, key, measure, true)
		if !tied[m] {
			*events = append(*events, Event{Tick: noteStart, Kind: NoteOn, Note: m})
		}
		if p.Tie {
			tied[m] = true
			continue
		}
		delete(tied, m)
		*events = append(*events, Event{Tick: noteStart + mainDur, Kind: NoteOff, Note: m})
	}
	return tick + total
}

func durTicks(d float64) int {
	return int(math.Round(d * wholeTicks))
}

func keyTable(k *music.Key) map[byte]music.Accidental {
	t := map[byte]music.Accidental{}
	if k == nil {
		return t
	}
	for _, a := range k.Accidentals {
		if len(a.Note) > 0 {
			t[a.Note[0]|0x20] = a.Acc
		}
	}
	return t
}

var diatonic = [7]int{0, 2, 4, 5, 7, 9, 11}

const letters = "cdefgab"

// midiOf 把谱表步换算为 MIDI 音号。优先级：音符自带临时记号 >
// 本小节同位置的临时记号 > 调号。record 为假时（装饰音）不把临时
// 记号计入小节状态。
func midiOf(vertical int, acc music.Accidental, clef music.Clef, key map[byte]music.Accidental, measure map[int]music.Accidental, record bool) int {
	d := vertical - clef.MiddleCPitch()
	deg := ((d % 7) + 7) % 7
	oct := (d - deg) / 7
	m := 60 + 12*oct + diatonic[deg]

	eff := acc
	if eff == music.AccNone {
		if a, ok := measure[vertical]; ok {
			eff = a
		} else if a, ok := key[letters[deg]]; ok {
			eff = a
		}
	} else if record {
		measure[vertical] = eff
	}
	m += semis(eff)

	if m < 0 {
		m = 0
	}
	if m > 127 {
		m = 127
	}
	return m
}

func semis(a music.Accidental) int {
	switch a {
	case music.AccSharp:
		return 1
	case music.AccFlat:
		return -1
	case music.AccDblSharp:
		return 2
	case music.AccDblFlat:
		return -2
	}
	return 0
}
