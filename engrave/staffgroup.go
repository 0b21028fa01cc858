package engrave

// 纵向解析。八条注记纵带从谱表延展边缘逐条向外堆叠，每条带在整行
// 内共享同一基线：一行里所有歌词等高、所有和弦名等高。创建阶段各
// 元素只申报厚度，这里一次性分配偏移并回写，之后不再移动。

// resolvedBands 记录一侧各纵带解析出的基线音高（谱表步）。
type resolvedBands struct {
	tempo    float64
	part     float64
	volume   float64
	dynamic  float64
	ending   float64
	chord    float64
	lyric    float64
	ornament float64

	outer float64 // 堆叠后的最外侧音高
}

func (r *resolvedBands) pitchOf(b Band) float64 {
	switch b {
	case BandTempo:
		return r.tempo
	case BandPart:
		return r.part
	case BandVolume:
		return r.volume
	case BandDynamic:
		return r.dynamic
	case BandEnding:
		return r.ending
	case BandChord:
		return r.chord
	case BandLyric:
		return r.lyric
	case BandOrnament:
		return r.ornament
	}
	return r.outer
}

// bandGap 相邻纵带间的空隙（谱表步）。
const bandGap = 1.0

// resolveAbove 自谱表上方延展 start 向上堆叠。顺序由内到外：装饰
// 记号、歌词、和弦名、反复房子（有和弦名时额外让出空间）、力度与
// 音量合并一层、段落标记、速度。文本基线放在带的下缘，文字向上生长。
func resolveAbove(agg Bands, start float64, step float64) *resolvedBands {
	r := &resolvedBands{}
	cursor := start

	place := func(h float64) float64 {
		if h <= 0 {
			return cursor
		}
		base := cursor + bandGap
		cursor = base + h/step
		return base
	}

	r.ornament = place(agg.Ornament)
	r.lyric = place(agg.Lyric)
	r.chord = place(agg.Chord)
	if agg.Ending > 0 && agg.Chord > 0 {
		cursor += 2
	}
	r.ending = place(agg.Ending)
	dyn := agg.Dynamic
	if agg.Volume > dyn {
		dyn = agg.Volume
	}
	base := place(dyn)
	r.dynamic = base
	r.volume = base
	r.part = place(agg.Part)
	r.tempo = place(agg.Tempo)
	r.outer = cursor
	return r
}

// resolveBelow 自谱表下方延展 start 向下堆叠。基线放在带的下缘，
// 所以先移动游标再取基线。歌词永远在谱表下方的最外侧：不论其它
// 下方纵带出现与否，歌词行都贴着整行的下缘。
func resolveBelow(agg Bands, start float64, step float64) *resolvedBands {
	r := &resolvedBands{}
	cursor := start

	place := func(h float64) float64 {
		if h <= 0 {
			return cursor
		}
		cursor -= bandGap + h/step
		return cursor
	}

	r.ornament = place(agg.Ornament)
	r.chord = place(agg.Chord)
	dyn := agg.Dynamic
	if agg.Volume > dyn {
		dyn = agg.Volume
	}
	base := place(dyn)
	r.dynamic = base
	r.volume = base
	r.lyric = place(agg.Lyric)
	r.outer = cursor
	return r
}

// staffExtents 返回一行内所有元素的谱表延展（不含纵带）。没有任何
// 带音高内容时退回谱线本身。
func staffExtents(voices []*voiceLine) (top, bottom float64) {
	top = topLinePitch
	bottom = bottomLinePitch
	for _, v := range voices {
		for _, c := range v.items {
			if c.Top < c.Bottom {
				continue // 无谱表内容的占位元素
			}
			if c.Top > top {
				top = c.Top
			}
			if c.Bottom < bottom {
				bottom = c.Bottom
			}
		}
	}
	return top, bottom
}

// resolveVertical 聚合一行的纵带厚度、解析偏移并回写到每个元素。
// 整行只此一遍；返回含纵带在内的总延展，供行高计算。
func resolveVertical(voices []*voiceLine, opts *Options) (top, bottom float64) {
	var aggAbove, aggBelow Bands
	for _, v := range voices {
		for _, c := range v.items {
			aggAbove.fold(c.Above)
			aggBelow.fold(c.Below)
		}
	}

	exTop, exBottom := staffExtents(voices)
	step := opts.StaffStep
	above := resolveAbove(aggAbove, exTop, step)
	below := resolveBelow(aggBelow, exBottom, step)

	for _, v := range voices {
		for _, c := range v.items {
			c.finalizeBands(above, below)
		}
	}
	return above.outer, below.outer
}
