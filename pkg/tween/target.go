package tween

// Tweenable 可插值目标
//
// 任何暴露具名数值属性的对象都可以作为插值目标。目标由外部持有，
// 引擎只通过属性名读写其中的数值字段，从不复制、从不接管生命周期。
//
// 调用约定：
//   - Property 对未知属性名返回 ok=false（引擎会跳过该属性并记录警告）
//   - SetProperty 对未知属性名应当静默忽略，不得 panic
//
// 共享目标约定（调用方契约）：多个 Task 可以同时驱动同一目标的
// 不相交属性集；两个活动 Task 写同一个属性的结果未定义
// （同一帧内后写者生效）。可用 Manager.SetConflictCheck 在调试时检测。
type Tweenable interface {
	Property(name string) (float64, bool)
	SetProperty(name string, v float64)
}

// Props 基于 map 的通用插值目标
//
// 适合测试和临时对象；游戏实体通常自己实现 Tweenable，
// 把属性名映射到结构体字段。始终以指针形式使用：
// 目标按引用同一性识别（RemoveAllOf 等依赖指针比较）。
type Props struct {
	values map[string]float64
}

// NewProps 创建通用插值目标（initial 可为 nil）
func NewProps(initial map[string]float64) *Props {
	p := &Props{values: make(map[string]float64, len(initial))}
	for k, v := range initial {
		p.values[k] = v
	}
	return p
}

// Property 读取属性值
func (p *Props) Property(name string) (float64, bool) {
	v, ok := p.values[name]
	return v, ok
}

// SetProperty 写入属性值
func (p *Props) SetProperty(name string, v float64) {
	p.values[name] = v
}

// Get 读取属性值，缺失时返回 0（测试和调试用的便捷方法）
func (p *Props) Get(name string) float64 {
	return p.values[name]
}
