package engrave

import (
	"math"

	"github.com/ByLCY/stave/music"
)

// 水平布局引擎。每行乐谱的全部声部共享一条时间轴：布局游标总是推进
// 时值索引最小的声部，时值索引相同（容差内）的元素落在同一 x 上，
// 取各声部诉求中最靠右者。间距与时值的平方根成正比，这是雕版刻谱
// 的传统比例。

const simultaneityEps = 1e-6

// durUnits 把有效时值换算为间距单位数：sqrt(8d) 使四分音符恰好
// 占 sqrt(2) ≈ 1.41 个单位，八分 1 个。
func durUnits(d float64) float64 {
	if d <= 0 {
		return 0
	}
	return math.Sqrt(8 * d)
}

// voiceLine 是一个声部在一行内的元素序列。
type voiceLine struct {
	items []*Composite
}

// voiceCursor 是布局过程中单个声部的游标状态。
type voiceCursor struct {
	i        int
	durIndex float64 // 已消耗的有效时值
	nextX    float64 // 硬性最小 x：前一元素宽度加最小间距
	schedX   float64 // 理想 x：前一元素按时值排出的位置
}

// spaceStats 是一次排布的结果统计，驱动拉伸求解。
type spaceStats struct {
	width   float64 // 最右元素的右缘
	units   float64 // 全行间距单位总数
	minUnit float64 // 单个元素占用的最小非零单位数
}

// spaceLine 以给定的单位间距对整行做一遍排布，回填每个元素的 x。
// 可重入：拉伸求解会用不同 spacing 反复调用。
func spaceLine(voices []*voiceLine, startX, spacing float64) spaceStats {
	cursors := make([]voiceCursor, len(voices))
	for i := range cursors {
		cursors[i] = voiceCursor{nextX: startX, schedX: startX}
	}

	var stats spaceStats
	stats.width = startX

	for {
		// 找时值索引最小的未完成声部。
		minIdx := math.Inf(1)
		for vi, v := range voices {
			if cursors[vi].i < len(v.items) && cursors[vi].durIndex < minIdx {
				minIdx = cursors[vi].durIndex
			}
		}
		if math.IsInf(minIdx, 1) {
			break
		}

		// 同时刻的元素对齐到同一 x：最靠右的诉求获胜。
		x := 0.0
		for vi, v := range voices {
			cur := &cursors[vi]
			if cur.i >= len(v.items) || cur.durIndex > minIdx+simultaneityEps {
				continue
			}
			item := v.items[cur.i]
			want := math.Max(cur.nextX+item.ExtraWidth(), cur.schedX)
			if want > x {
				x = want
			}
		}

		for vi, v := range voices {
			cur := &cursors[vi]
			if cur.i >= len(v.items) || cur.durIndex > minIdx+simultaneityEps {
				continue
			}
			item := v.items[cur.i]
			item.SetX(x)
			cur.i++

			cur.nextX = x + item.MinWidth() + item.MinSpacing
			u := durUnits(item.Duration)
			cur.schedX = x + spacing*u
			cur.durIndex += item.Duration
			// 小节线处把时值索引收拢到 1/64 的整数倍，吸收连音乘数
			// 留下的浮点残差，保证各声部在小节边界重新同步。
			if item.Duration == 0 && item.Src != nil && item.Src.Kind == music.KindBar {
				cur.durIndex = math.Round(cur.durIndex*64) / 64
			}

			stats.units += u
			if u > 0 && (stats.minUnit == 0 || u < stats.minUnit) {
				stats.minUnit = u
			}
			if right := x + item.MinWidth(); right > stats.width {
				stats.width = right
			}
		}
	}
	return stats
}

// justifyLine 排布整行并拉伸到目标宽度。求解最多迭代三轮：平方根
// 间距下两轮内即可收敛到像素级，残差保留比无界循环可取。上限约束
// 落在最短时值的间隙上：它到达 MaxSpacingGap 时停止放大，短行因此
// 不会被拉成稀疏的几个音符，而长音符的间隙可以按比例超过上限。
func justifyLine(voices []*voiceLine, startX, targetWidth float64, opts *Options) float64 {
	spacing := opts.SpacingUnit
	stats := spaceLine(voices, startX, spacing)

	for iter := 0; iter < 3; iter++ {
		if stats.units <= 0 {
			break
		}
		slack := targetWidth - stats.width
		if math.Abs(slack) < 0.5 {
			break
		}
		next := spacing + slack/stats.units
		if next < opts.SpacingUnit {
			next = opts.SpacingUnit
		}
		if stats.minUnit > 0 && next*stats.minUnit > opts.MaxSpacingGap {
			next = opts.MaxSpacingGap / stats.minUnit
		}
		if next == spacing {
			break
		}
		spacing = next
		stats = spaceLine(voices, startX, spacing)
	}

	for _, v := range voices {
		centerWholeRests(v, startX, stats.width)
	}
	return stats.width
}

// centerWholeRests 把整小节休止移到所在小节的水平中点。定位依赖
// 左右两侧最近的小节线（或行边界），在全部 x 固定后执行。
func centerWholeRests(v *voiceLine, lineStart, lineEnd float64) {
	isBar := func(c *Composite) bool {
		return c.Src != nil && c.Src.Kind == music.KindBar
	}
	for i, item := range v.items {
		if !item.WholeRest {
			continue
		}
		left := lineStart
		for j := i - 1; j >= 0; j-- {
			if isBar(v.items[j]) {
				left = v.items[j].X + v.items[j].MinWidth()
				break
			}
		}
		right := lineEnd
		for j := i + 1; j < len(v.items); j++ {
			if isBar(v.items[j]) {
				right = v.items[j].X
				break
			}
		}
		mid := (left+right)/2 - item.MinWidth()/2
		if mid > left {
			item.SetX(mid)
		}
	}
}
