package tween

import "github.com/lucasb-eyer/go-colorful"

// ColorBlend 颜色插值适配器
//
// 把一对端点颜色之间的混合进度暴露为单个可插值属性 "t"，
// 使颜色过渡可以像普通数值属性一样交给 Task 驱动。
// 混合在 HCL 空间进行（感知均匀，不会途经灰色），
// 这是 go-colorful 相对逐通道 RGB 插值的主要优势。
//
// 用法：
//
//	blend := tween.NewColorBlend(from, to)
//	task, _ := tween.NewTask(tween.TaskConfig{
//	    Target:   blend,
//	    End:      map[string]float64{"t": 1},
//	    Start:    map[string]float64{"t": 0},
//	    Duration: 0.8,
//	})
//
// 每帧读取 blend.Color() 作为当前颜色。
type ColorBlend struct {
	from colorful.Color
	to   colorful.Color
	t    float64
	cur  colorful.Color
}

// NewColorBlend 创建颜色插值适配器，初始进度为 0（即 from 颜色）
func NewColorBlend(from, to colorful.Color) *ColorBlend {
	return &ColorBlend{from: from, to: to, cur: from}
}

// Property 读取属性值（仅支持 "t"）
func (b *ColorBlend) Property(name string) (float64, bool) {
	if name != "t" {
		return 0, false
	}
	return b.t, true
}

// SetProperty 写入属性值（仅响应 "t"，其余静默忽略）
// 缓动过冲允许 t 超出 [0,1]，混合前钳制到合法范围。
func (b *ColorBlend) SetProperty(name string, v float64) {
	if name != "t" {
		return
	}
	b.t = v
	clamped := v
	if clamped < 0 {
		clamped = 0
	} else if clamped > 1 {
		clamped = 1
	}
	b.cur = b.from.BlendHcl(b.to, clamped).Clamped()
}

// Color 返回当前混合结果
func (b *ColorBlend) Color() colorful.Color {
	return b.cur
}
