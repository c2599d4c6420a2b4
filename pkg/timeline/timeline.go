package timeline

import (
	"log"

	"github.com/Sellitus/chromatic-glitch-sub001/pkg/tween"
)

// State 时间轴状态
type State int

const (
	// StateIdle 已创建，尚未 Play
	StateIdle State = iota
	// StatePlaying 正在执行
	StatePlaying
	// StatePaused 已暂停（在飞行中的子项一并冻结）
	StatePaused
	// StateFinished 已结束（正常走完或被 Stop）
	StateFinished
)

// stepRuntime 活动步骤的瞬态执行状态
//
// Step 本身是纯数据且在执行期间不可变；每次步骤开始时
// 创建对应的 runtime，步骤完成或时间轴 Stop 时丢弃。
type stepRuntime struct {
	step *Step

	// task 在飞行中的插值任务（stepTween）
	task *tween.Task

	// timer 已累计等待时间（stepWait）
	timer float64

	// children 尚未完成的并行分支（stepParallel）
	children []*stepRuntime
}

// Timeline 步骤序列器
//
// 把有序步骤表当作一段小程序执行：每帧只推进当前活动步骤，
// 步骤完成后同步推进到下一步。瞬时步骤（回调、零时长等待、
// 非等待播放）在同一次 Update 内用有界迭代链式推进，
// 绝不递归，回调密集的时间轴不会打爆调用栈。
//
// 单线程协作式：没有抢占、没有后台 goroutine，"挂起"只是
// "尚未推进"，由下一次 Update(dt) 观察到等待条件满足后恢复。
type Timeline struct {
	steps  []Step
	cursor int // -1 表示未开始
	state  State
	loop   bool

	registry  TaskRegistry
	active    *stepRuntime
	timeScale float64

	onComplete func()
}

// NewTimeline 创建空时间轴
// 通过 Add* 系列方法追加步骤后调用 Play。
func NewTimeline() *Timeline {
	return &Timeline{cursor: -1, timeScale: 1}
}

// SetRegistry 配置插值任务管理器句柄
// 只有包含 wait=true 的 TweenStep 时才必须配置。
func (tl *Timeline) SetRegistry(r TaskRegistry) *Timeline {
	tl.registry = r
	return tl
}

// SetLoop 设置是否循环（最后一步完成后从第一步重新开始）
func (tl *Timeline) SetLoop(loop bool) *Timeline {
	tl.loop = loop
	return tl
}

// SetOnComplete 设置完成回调
// 循环时间轴每走完一轮触发一次；非循环时间轴结束时触发一次。
func (tl *Timeline) SetOnComplete(fn func()) *Timeline {
	tl.onComplete = fn
	return tl
}

// SetTimeScale 设置时间缩放（慢动作 / 快进）
// 只接受 > 0 的值，非法值记录并忽略。
func (tl *Timeline) SetTimeScale(scale float64) *Timeline {
	if scale <= 0 {
		log.Printf("[Timeline] 非法时间缩放 %v，已忽略", scale)
		return tl
	}
	tl.timeScale = scale
	return tl
}

// AddStep 追加步骤
// 执行期间（Playing / Paused）不允许修改步骤表，违规调用记录并忽略。
func (tl *Timeline) AddStep(s Step) *Timeline {
	if tl.state == StatePlaying || tl.state == StatePaused {
		log.Printf("[Timeline] 执行期间不允许追加步骤，已忽略")
		return tl
	}
	tl.steps = append(tl.steps, s)
	return tl
}

// AddPlay 追加按名播放动画步骤
func (tl *Timeline) AddPlay(target Playable, name string, wait bool) *Timeline {
	return tl.AddStep(PlayStep(target, name, wait))
}

// AddTween 追加插值任务步骤
func (tl *Timeline) AddTween(cfg tween.TaskConfig, wait bool) *Timeline {
	return tl.AddStep(TweenStep(cfg, wait))
}

// AddWait 追加定时等待步骤
func (tl *Timeline) AddWait(seconds float64) *Timeline {
	return tl.AddStep(WaitStep(seconds))
}

// AddCallback 追加同步回调步骤
func (tl *Timeline) AddCallback(fn func()) *Timeline {
	return tl.AddStep(CallbackStep(fn))
}

// AddParallel 追加并行块步骤
func (tl *Timeline) AddParallel(children ...Step) *Timeline {
	return tl.AddStep(ParallelStep(children...))
}

// AddSubTimeline 追加嵌套时间轴步骤
func (tl *Timeline) AddSubTimeline(child *Timeline, wait bool) *Timeline {
	return tl.AddStep(SubTimelineStep(child, wait))
}

// Play 开始执行，或从 Pause 处恢复
//
// 对 Finished 的时间轴：循环时间轴从第一步重新开始，
// 非循环时间轴是无操作（与插值任务的重启不对称契约一致）。
func (tl *Timeline) Play() {
	switch tl.state {
	case StateIdle:
		tl.state = StatePlaying
	case StatePaused:
		tl.state = StatePlaying
		if tl.active != nil {
			tl.resumeRuntime(tl.active)
		}
	case StatePlaying:
		// 已在执行，无操作
	case StateFinished:
		if !tl.loop {
			log.Printf("[Timeline] Play ignored: timeline already finished (non-looping)")
			return
		}
		tl.restart()
	}
}

// Pause 暂停执行并传播到在飞行中的子项
//
// 插值任务和子时间轴会被冻结；等待计时器因 Update 不再被调用
// 而自然冻结。Playable 目标没有暂停语义，继续自行播放。
func (tl *Timeline) Pause() {
	if tl.state != StatePlaying {
		return
	}
	tl.state = StatePaused
	if tl.active != nil {
		tl.pauseRuntime(tl.active)
	}
}

// Stop 停止执行
//
// 同步且彻底：传播到全部在飞行中的子项（触发各自的停止契约），
// 清空游标和瞬态子状态，进入 Finished。此后除非显式 Play
// （仅循环时间轴合法），本时间轴不再产生任何回调。
// 对已 Finished 的时间轴是无操作（幂等）。
func (tl *Timeline) Stop() {
	if tl.state == StateFinished {
		return
	}
	if tl.active != nil {
		tl.stopRuntime(tl.active)
		tl.active = nil
	}
	tl.cursor = -1
	tl.state = StateFinished
}

// Update 推进时间轴一帧
//
// 宿主循环每帧调用。一次调用内：瞬时步骤链完整跑完
// （以步骤表长度为界的迭代，而非递归），
// 遇到需要等待的步骤则把控制权交还宿主直到下一帧。
func (tl *Timeline) Update(dt float64) {
	if tl.state != StatePlaying {
		return
	}
	dt *= tl.timeScale

	if tl.active == nil {
		tl.advance()
		if tl.state != StatePlaying || tl.active == nil {
			return
		}
	}

	if tl.progressStep(tl.active, dt) {
		tl.advance()
	}
}

// State 返回当前状态
func (tl *Timeline) State() State { return tl.state }

// IsFinished 返回时间轴是否已结束
func (tl *Timeline) IsFinished() bool { return tl.state == StateFinished }

// Len 返回步骤数
func (tl *Timeline) Len() int { return len(tl.steps) }

// restart 无条件从第一步重新开始（内部使用：循环重启、嵌套重播）
func (tl *Timeline) restart() {
	tl.active = nil
	tl.cursor = -1
	tl.state = StatePlaying
}

// advance 推进到下一个需要等待的步骤
//
// 迭代链：瞬时步骤连续开始并完成，直到遇到等待步骤、走到表尾
// 或达到单帧推进上限（步骤表长度一轮），上限命中时留待下一帧继续。
func (tl *Timeline) advance() {
	tl.active = nil

	if len(tl.steps) == 0 {
		tl.state = StateFinished
		tl.fireOnComplete()
		return
	}

	for hops := 0; hops <= len(tl.steps); hops++ {
		tl.cursor++
		if tl.cursor >= len(tl.steps) {
			tl.fireOnComplete()
			if tl.loop {
				tl.cursor = -1
				continue
			}
			tl.state = StateFinished
			return
		}
		if rt := tl.beginStep(&tl.steps[tl.cursor]); rt != nil {
			tl.active = rt
			return
		}
	}
}

// beginStep 步骤启动契约
// 返回 nil 表示瞬时步骤（立即推进），否则返回需跟踪的执行状态。
func (tl *Timeline) beginStep(step *Step) *stepRuntime {
	switch step.kind {
	case stepPlay:
		step.anim.Play(step.animName, true)
		if !step.wait {
			return nil
		}
		return &stepRuntime{step: step}

	case stepTween:
		task, err := tween.NewTask(step.taskCfg)
		if err != nil {
			log.Printf("[Timeline] 创建插值任务失败: %v，按瞬时步处理", err)
			return nil
		}
		wait := step.wait
		if tl.registry != nil {
			tl.registry.Add(task)
		} else if wait {
			log.Printf("[Timeline] 未配置任务管理器，等待型插值步骤降级为非等待")
			wait = false
		}
		task.Play()
		if !wait {
			return nil
		}
		return &stepRuntime{step: step, task: task}

	case stepWait:
		if step.seconds <= 0 {
			return nil
		}
		return &stepRuntime{step: step}

	case stepCallback:
		safeCall("Callback", step.callback)
		return nil

	case stepParallel:
		rt := &stepRuntime{step: step}
		for i := range step.children {
			if crt := tl.beginStep(&step.children[i]); crt != nil {
				rt.children = append(rt.children, crt)
			}
		}
		if len(rt.children) == 0 {
			return nil
		}
		return rt

	case stepSubTimeline:
		step.sub.restart()
		if !step.wait {
			// 独立运行：由宿主循环驱动，父时间轴立即推进
			return nil
		}
		return &stepRuntime{step: step}
	}
	// stepInvalid：构造时已记录，按瞬时步跳过
	return nil
}

// progressStep 推进活动步骤一帧，返回等待条件是否已满足
func (tl *Timeline) progressStep(rt *stepRuntime, dt float64) bool {
	switch rt.step.kind {
	case stepPlay:
		return rt.step.anim.IsFinished()

	case stepTween:
		// 数值推进由任务管理器负责，这里只查询完成状态
		return rt.task.IsFinished()

	case stepWait:
		rt.timer += dt
		return rt.timer >= rt.step.seconds

	case stepParallel:
		remaining := rt.children[:0]
		for _, crt := range rt.children {
			if !tl.progressStep(crt, dt) {
				remaining = append(remaining, crt)
			}
		}
		rt.children = remaining
		return len(rt.children) == 0

	case stepSubTimeline:
		rt.step.sub.Update(dt)
		return rt.step.sub.IsFinished()
	}
	return true
}

// pauseRuntime 把暂停传播到在飞行中的子项
func (tl *Timeline) pauseRuntime(rt *stepRuntime) {
	switch rt.step.kind {
	case stepTween:
		rt.task.Pause()
	case stepSubTimeline:
		rt.step.sub.Pause()
	case stepParallel:
		for _, crt := range rt.children {
			tl.pauseRuntime(crt)
		}
	}
}

// resumeRuntime 把恢复传播到在飞行中的子项
func (tl *Timeline) resumeRuntime(rt *stepRuntime) {
	switch rt.step.kind {
	case stepTween:
		rt.task.Play()
	case stepSubTimeline:
		rt.step.sub.Play()
	case stepParallel:
		for _, crt := range rt.children {
			tl.resumeRuntime(crt)
		}
	}
}

// stopRuntime 把停止传播到在飞行中的子项（触发各自的停止契约）
func (tl *Timeline) stopRuntime(rt *stepRuntime) {
	switch rt.step.kind {
	case stepPlay:
		rt.step.anim.Stop()
	case stepTween:
		rt.task.Stop()
		if tl.registry != nil {
			tl.registry.Remove(rt.task)
		}
	case stepSubTimeline:
		rt.step.sub.Stop()
	case stepParallel:
		for _, crt := range rt.children {
			tl.stopRuntime(crt)
		}
		rt.children = nil
	}
}

// fireOnComplete 触发完成回调（panic 安全）
func (tl *Timeline) fireOnComplete() {
	safeCall("OnComplete", tl.onComplete)
}

// safeCall 执行回调，捕获 panic 并记录
// 行为异常的游戏逻辑回调按成功处理，步骤照常推进。
func safeCall(name string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Timeline] %s callback panicked: %v", name, r)
		}
	}()
	fn()
}
