package engrave

import (
	"testing"

	"github.com/ByLCY/stave/music"
)

// stubMeasurer 以固定比例回答测量请求，使布局测试不依赖真实字体。
type stubMeasurer struct{ calls int }

func (m *stubMeasurer) TextSize(content string, font Font) (w, h float64) {
	m.calls++
	return float64(len(content)) * 2, font.Size
}

func TestMeasureRoutesThroughMeasurer(t *testing.T) {
	m := &stubMeasurer{}
	opts := DefaultOptions()
	opts.Measurer = m
	w, h := opts.measure("abc", Font{Size: 4})
	if w != 6 || h != 4 {
		t.Fatalf("测量结果 = %v, %v; want 6, 4", w, h)
	}
	if m.calls != 1 {
		t.Fatalf("应恰好调用测量器一次")
	}
	// 空文本不触发测量
	if w, h := opts.measure("", Font{Size: 4}); w != 0 || h != 0 {
		t.Fatalf("空文本应为零尺寸")
	}
	if m.calls != 1 {
		t.Fatalf("空文本不应调用测量器")
	}
}

func TestEstimateFallbackWithoutMeasurer(t *testing.T) {
	opts := DefaultOptions()
	w, h := opts.measure("hello", Font{Size: 4})
	ew, eh := EstimateTextSize("hello", Font{Size: 4})
	if w != ew || h != eh {
		t.Fatalf("无测量器时应退回估算: %v,%v vs %v,%v", w, h, ew, eh)
	}
}

// 多行文本按最宽一行估算。
func TestEstimateTextSizeMultiline(t *testing.T) {
	w1, _ := EstimateTextSize("ab\nabcdef", Font{Size: 4})
	w2, _ := EstimateTextSize("abcdef", Font{Size: 4})
	if w1 != w2 {
		t.Fatalf("多行宽度应取最宽行: %v vs %v", w1, w2)
	}
}

func TestWithDefaultsFillsZeroValues(t *testing.T) {
	var o Options
	got := o.withDefaults(music.Formatting{})
	def := DefaultOptions()
	if got.PageWidth != def.PageWidth || got.SpacingUnit != def.SpacingUnit {
		t.Fatalf("零值字段未补齐: %+v", got)
	}
	if got.Fonts.Lyric.Family == "" || got.Fonts.Lyric.Size <= 0 {
		t.Fatalf("字体表未补齐: %+v", got.Fonts.Lyric)
	}
}

func TestWithDefaultsKeepsOverrides(t *testing.T) {
	o := Options{PageWidth: 120, SpacingUnit: 5}
	got := o.withDefaults(music.Formatting{})
	if got.PageWidth != 120 || got.SpacingUnit != 5 {
		t.Fatalf("调用方覆盖被默认值冲掉: %+v", got)
	}
}

// 乐曲自带的排版参数优先于调用方选项。
func TestFormattingOverridesOptions(t *testing.T) {
	o := Options{PageWidth: 120, SpacingUnit: 5}
	got := o.withDefaults(music.Formatting{PageWidth: 200, SpacingUnit: 2})
	if got.PageWidth != 200 || got.SpacingUnit != 2 {
		t.Fatalf("乐曲参数未生效: %+v", got)
	}
}

func TestFormattingFontOverride(t *testing.T) {
	var o Options
	got := o.withDefaults(music.Formatting{
		Fonts: music.Fonts{Lyric: music.Font{Family: "Kai", Size: 6}},
	})
	if got.Fonts.Lyric.Family != "Kai" || got.Fonts.Lyric.Size != 6 {
		t.Fatalf("乐曲字体覆盖未生效: %+v", got.Fonts.Lyric)
	}
	// 未覆盖的类别保持默认
	if got.Fonts.Chord.Family == "" {
		t.Fatalf("未覆盖类别不应被清空")
	}
}
