package tween

import "github.com/fogleman/ease"

// Easing 缓动函数 (Easing Functions)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
//
// 约定：f(0)=0，f(1)=1。Back/Elastic 类曲线在中间允许超出 [0, 1]
// （过冲效果），引擎不会在中途对缓动值做截断。
//
// 参考：https://easings.net/
type Easing func(t float64) float64

// Linear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func Linear(t float64) float64 {
	return t
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Catalog 命名缓动函数目录
//
// 目录由宿主应用持有，仅在构建 Task / 解析配置时按名称查找；
// 引擎内部只接受显式传入的 Easing 函数值，不做任何按名称的环境查找。
type Catalog map[string]Easing

// DefaultCatalog 返回内置缓动目录
//
// 曲线实现来自 github.com/fogleman/ease，键名与 easings.net 的
// 小驼峰命名一致（如 "outCubic", "inOutQuad"）。
func DefaultCatalog() Catalog {
	return Catalog{
		"linear":       Linear,
		"inQuad":       ease.InQuad,
		"outQuad":      ease.OutQuad,
		"inOutQuad":    ease.InOutQuad,
		"inCubic":      ease.InCubic,
		"outCubic":     ease.OutCubic,
		"inOutCubic":   ease.InOutCubic,
		"inQuart":      ease.InQuart,
		"outQuart":     ease.OutQuart,
		"inOutQuart":   ease.InOutQuart,
		"inQuint":      ease.InQuint,
		"outQuint":     ease.OutQuint,
		"inOutQuint":   ease.InOutQuint,
		"inSine":       ease.InSine,
		"outSine":      ease.OutSine,
		"inOutSine":    ease.InOutSine,
		"inExpo":       ease.InExpo,
		"outExpo":      ease.OutExpo,
		"inOutExpo":    ease.InOutExpo,
		"inCirc":       ease.InCirc,
		"outCirc":      ease.OutCirc,
		"inOutCirc":    ease.InOutCirc,
		"inBack":       ease.InBack,
		"outBack":      ease.OutBack,
		"inOutBack":    ease.InOutBack,
		"inElastic":    ease.InElastic,
		"outElastic":   ease.OutElastic,
		"inOutElastic": ease.InOutElastic,
		"inBounce":     ease.InBounce,
		"outBounce":    ease.OutBounce,
		"inOutBounce":  ease.InOutBounce,
	}
}

// Lookup 按名称查找缓动函数
// 找不到时返回 Linear 和 false（调用方负责记录警告）
func (c Catalog) Lookup(name string) (Easing, bool) {
	if fn, ok := c[name]; ok && fn != nil {
		return fn, true
	}
	return Linear, false
}
