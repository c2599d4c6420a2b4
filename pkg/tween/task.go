package tween

import (
	"fmt"
	"log"
	"sort"
)

// State 插值任务状态
type State int

const (
	// StateIdle 已创建，尚未 Play
	StateIdle State = iota
	// StateDelaying 已 Play，正在等待 delay 结束
	StateDelaying
	// StateActive 正在插值
	StateActive
	// StateFinished 已结束（正常完成或被 Stop）
	StateFinished
)

// LoopMode 循环模式
type LoopMode int

const (
	// LoopNone 播放一个周期后结束
	LoopNone LoopMode = iota
	// LoopRepeat 每个周期结束后从原始起点重新播放
	LoopRepeat
	// LoopYoyo 每个周期结束后反向播放（起点终点互换）
	LoopYoyo
)

// Direction 播放方向（仅在 LoopYoyo 下有意义）
type Direction int

const (
	// Forward 正向（起点 → 终点）
	Forward Direction = iota
	// Backward 反向（终点 → 起点）
	Backward
)

// TaskConfig 插值任务构造参数
//
// Target、End、Duration 为必填项，其余字段均可缺省。
// 缓动函数必须在构造时显式传入（缺省为 Linear），
// 引擎内部不做任何按名称的缓动查找。
type TaskConfig struct {
	// Target 插值目标（外部持有，引擎只读写其具名数值属性）
	Target Tweenable

	// End 属性名 → 目标值（构造后不可变）
	End map[string]float64

	// Start 属性名 → 起始值（可选的显式覆盖）
	// 缺省时在首个活动帧从目标上快照；
	// 显式提供时，End 会被过滤到 Start 覆盖的键集（见 captureValues）
	Start map[string]float64

	// Duration 插值时长（秒），必须 > 0
	Duration float64

	// Delay 播放前延迟（秒），必须 >= 0
	Delay float64

	// Easing 缓动函数，nil 时使用 Linear
	Easing Easing

	// Loop 循环模式
	Loop LoopMode

	// 生命周期回调（均可为 nil；回调 panic 会被捕获并记录，不会传播）
	OnStart    func()
	OnUpdate   func(target Tweenable, raw, eased float64)
	OnComplete func()
	OnStop     func()
}

// Task 插值任务
//
// 在一个周期内把目标对象的一组数值属性从起始快照推进到终点快照，
// 支持 delay / loop / yoyo。状态机：
//
//	Idle --Play()--> Delaying --delay 结束--> Active --周期完成--> Finished（不循环）
//	Active --周期完成--> Active（Repeat：时间归零，值恢复原始快照）
//	Active --周期完成--> Active（Yoyo：方向翻转，起终点用原始快照互换）
//
// Pause 只冻结时间累积，不改变状态；Stop 从任意非 Finished 状态
// 进入 Finished 并触发 OnStop。循环任务被 Stop 后可以再次 Play
// （这是唯一能把任务从 Finished 拉回来的路径），非循环任务不行。
type Task struct {
	target Tweenable
	easing Easing

	duration float64
	delay    float64
	loop     LoopMode

	// endValues 构造时声明的终点集（原始，不可变）
	endValues map[string]float64
	// explicitStart 显式起点覆盖（可为 nil）
	explicitStart map[string]float64

	// originalStart / originalEnd 首个活动帧捕获的原始快照，
	// 整个任务生命周期只捕获一次（跨循环周期不重新捕获）
	originalStart map[string]float64
	originalEnd   map[string]float64
	// curStart / curEnd 当前周期使用的起终点（Yoyo 下是原始快照的互换）
	curStart map[string]float64
	curEnd   map[string]float64

	state     State
	direction Direction
	playing   bool
	captured  bool
	started   bool

	elapsed      float64
	delayElapsed float64

	onStart    func()
	onUpdate   func(target Tweenable, raw, eased float64)
	onComplete func()
	onStop     func()
}

// NewTask 创建插值任务
//
// 构造期错误（目标缺失、终点集为空、时长非法）立即返回，
// 绝不推迟到 tick 阶段才暴露。
func NewTask(cfg TaskConfig) (*Task, error) {
	if cfg.Target == nil {
		return nil, fmt.Errorf("tween: target is nil")
	}
	if len(cfg.End) == 0 {
		return nil, fmt.Errorf("tween: no end properties")
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("tween: duration must be > 0, got %v", cfg.Duration)
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("tween: delay must be >= 0, got %v", cfg.Delay)
	}

	easing := cfg.Easing
	if easing == nil {
		easing = Linear
	}

	t := &Task{
		target:        cfg.Target,
		easing:        easing,
		duration:      cfg.Duration,
		delay:         cfg.Delay,
		loop:          cfg.Loop,
		endValues:     copyValues(cfg.End),
		explicitStart: copyValues(cfg.Start),
		state:         StateIdle,
		direction:     Forward,
		onStart:       cfg.OnStart,
		onUpdate:      cfg.OnUpdate,
		onComplete:    cfg.OnComplete,
		onStop:        cfg.OnStop,
	}
	return t, nil
}

// Play 开始播放，或从 Pause 处恢复
//
// 对 Finished 的任务：循环任务会清除 Finished 并从头重新播放
// （重启契约），非循环任务则是无操作。
func (t *Task) Play() {
	switch t.state {
	case StateIdle:
		t.state = StateDelaying
		t.playing = true
	case StateDelaying, StateActive:
		// 从暂停点恢复
		t.playing = true
	case StateFinished:
		if t.loop == LoopNone {
			log.Printf("[Tween] Play ignored: task already finished (non-looping)")
			return
		}
		// 循环任务重启：这是唯一清除 Finished 的路径
		t.reset()
		t.state = StateDelaying
		t.playing = true
	}
}

// Pause 暂停时间累积（仅在 Delaying / Active 下有效）
// 不改变插值进度，Play 从冻结点继续。
func (t *Task) Pause() {
	if t.state == StateDelaying || t.state == StateActive {
		t.playing = false
	}
}

// Stop 停止任务
//
// 从任意非 Finished 状态触发 OnStop（至多一次）并进入 Finished，
// 所有瞬态计时器清零。对已 Finished 的任务是无操作。
func (t *Task) Stop() {
	if t.state == StateFinished {
		return
	}
	t.state = StateFinished
	t.playing = false
	t.elapsed = 0
	t.delayElapsed = 0
	safeCall("OnStop", t.onStop)
}

// Update 推进任务一帧
//
// 由 Manager 每帧调用；非活动状态下直接返回。
func (t *Task) Update(dt float64) {
	if !t.playing || (t.state != StateDelaying && t.state != StateActive) {
		return
	}

	// 延迟门控：delay 未结束前不碰目标、不触发 OnStart。
	// 跨过边界的溢出量计入本帧活动时间，保证确定性。
	if t.state == StateDelaying {
		t.delayElapsed += dt
		if t.delayElapsed < t.delay {
			return
		}
		dt = t.delayElapsed - t.delay
		t.state = StateActive
	}

	if !t.captured {
		t.captureValues()
	}
	if !t.started {
		t.started = true
		safeCall("OnStart", t.onStart)
	}

	t.elapsed += dt
	cycleDone := t.elapsed >= t.duration
	if t.elapsed > t.duration {
		t.elapsed = t.duration
	}

	raw := t.elapsed / t.duration
	if raw < 0 {
		raw = 0
	} else if raw > 1 {
		raw = 1
	}
	eased := t.easing(raw)

	for key, end := range t.curEnd {
		start := t.curStart[key]
		t.target.SetProperty(key, start+(end-start)*eased)
	}

	if t.onUpdate != nil {
		cb := t.onUpdate
		target, r, e := t.target, raw, eased
		safeCall("OnUpdate", func() { cb(target, r, e) })
	}

	if cycleDone {
		safeCall("OnComplete", t.onComplete)
		t.applyLoopPolicy()
	}
}

// applyLoopPolicy 周期结束后的循环策略
func (t *Task) applyLoopPolicy() {
	switch t.loop {
	case LoopNone:
		t.state = StateFinished
		t.playing = false
	case LoopRepeat:
		// 时间归零，值恢复到原始快照（不重新捕获）
		t.elapsed = 0
		t.curStart = copyValues(t.originalStart)
		t.curEnd = copyValues(t.originalEnd)
	case LoopYoyo:
		// 方向翻转；起终点永远用原始快照互换，避免漂移
		t.elapsed = 0
		if t.direction == Forward {
			t.direction = Backward
			t.curStart = copyValues(t.originalEnd)
			t.curEnd = copyValues(t.originalStart)
		} else {
			t.direction = Forward
			t.curStart = copyValues(t.originalStart)
			t.curEnd = copyValues(t.originalEnd)
		}
	}
}

// captureValues 捕获原始起终点快照（任务生命周期内只执行一次）
//
// 显式起点优先于活动目标快照；显式起点只覆盖部分键时，
// 终点集被过滤到相同键集，被丢弃的键记录警告（不是错误）。
func (t *Task) captureValues() {
	t.captured = true

	if t.explicitStart != nil {
		t.originalStart = copyValues(t.explicitStart)
		t.originalEnd = make(map[string]float64, len(t.explicitStart))
		dropped := make([]string, 0)
		for key, end := range t.endValues {
			if _, ok := t.explicitStart[key]; ok {
				t.originalEnd[key] = end
			} else {
				dropped = append(dropped, key)
			}
		}
		if len(dropped) > 0 {
			sort.Strings(dropped)
			log.Printf("[Tween] 显式起点未覆盖终点键 %v，已忽略这些属性", dropped)
		}
	} else {
		t.originalStart = make(map[string]float64, len(t.endValues))
		t.originalEnd = make(map[string]float64, len(t.endValues))
		for key, end := range t.endValues {
			v, ok := t.target.Property(key)
			if !ok {
				// 目标上解析不到的属性：跳过并记录，绝不 panic
				log.Printf("[Tween] 目标缺少属性 %q，已跳过", key)
				continue
			}
			t.originalStart[key] = v
			t.originalEnd[key] = end
		}
	}

	t.curStart = copyValues(t.originalStart)
	t.curEnd = copyValues(t.originalEnd)
}

// reset 恢复到可重新播放的初始状态（仅循环任务重启时使用）
func (t *Task) reset() {
	t.elapsed = 0
	t.delayElapsed = 0
	t.direction = Forward
	t.started = false
	t.playing = false
	t.state = StateIdle
	if t.captured {
		t.curStart = copyValues(t.originalStart)
		t.curEnd = copyValues(t.originalEnd)
	}
}

// State 返回当前状态
func (t *Task) State() State { return t.state }

// IsFinished 返回任务是否已结束
func (t *Task) IsFinished() bool { return t.state == StateFinished }

// IsActive 返回任务是否仍存活（Manager 用它决定是否回收）
// 暂停中的任务仍然存活，不会被回收。
func (t *Task) IsActive() bool { return t.state != StateFinished }

// IsPlaying 返回任务是否正在推进（未暂停且未结束）
func (t *Task) IsPlaying() bool { return t.playing }

// Target 返回插值目标引用
func (t *Task) Target() Tweenable { return t.target }

// Direction 返回当前播放方向
func (t *Task) Direction() Direction { return t.direction }

// PropertyKeys 返回当前驱动的属性键集（按字典序）
// 捕获前返回声明的终点键集；捕获后返回过滤后的活动键集。
func (t *Task) PropertyKeys() []string {
	src := t.endValues
	if t.captured {
		src = t.curEnd
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// safeCall 执行生命周期回调，捕获 panic 并记录
// 一个行为异常的游戏逻辑回调不能卡死调度器。
func safeCall(name string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Tween] %s callback panicked: %v", name, r)
		}
	}()
	fn()
}

// copyValues 复制属性值表（nil 安全）
func copyValues(src map[string]float64) map[string]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
