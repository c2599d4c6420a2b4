package timeline

import (
	"log"

	"github.com/Sellitus/chromatic-glitch-sub001/pkg/tween"
)

// stepKind 步骤变体标签
type stepKind int

const (
	stepInvalid stepKind = iota
	stepPlay
	stepTween
	stepWait
	stepCallback
	stepParallel
	stepSubTimeline
)

// Step 时间轴步骤（带标签的联合类型，纯数据）
//
// 六种变体：按名播放动画、运行插值任务、定时等待、同步回调、
// 并行块、嵌套时间轴。通过下面的构造函数创建；
// 非法参数在构造调用点被拒绝（记录日志并退化为无操作步骤），
// 而不是在调度器深处失败。
type Step struct {
	kind stepKind

	// stepPlay
	anim     Playable
	animName string

	// stepTween
	taskCfg tween.TaskConfig

	// stepWait
	seconds float64

	// stepCallback
	callback func()

	// stepParallel
	children []Step

	// stepSubTimeline
	sub *Timeline

	// wait 是否等待本步完成后再推进（stepPlay / stepTween / stepSubTimeline）
	wait bool
}

// PlayStep 按名播放动画
//
// wait=true 时每帧轮询目标的 IsFinished；wait=false 时触发后立即推进。
func PlayStep(target Playable, name string, wait bool) Step {
	if target == nil {
		log.Printf("[Timeline] PlayStep 目标为 nil，步骤退化为无操作")
		return Step{kind: stepInvalid}
	}
	return Step{kind: stepPlay, anim: target, animName: name, wait: wait}
}

// TweenStep 运行插值任务
//
// 步骤开始时按 cfg 构造 tween.Task 并注册到时间轴配置的任务管理器
// （数值推进由管理器驱动，时间轴只持引用查询完成状态）。
// wait=true 但未配置管理器时，记录日志并强制 wait=false。
// cfg 的合法性在步骤开始时由 tween.NewTask 检查，失败按瞬时步处理。
func TweenStep(cfg tween.TaskConfig, wait bool) Step {
	return Step{kind: stepTween, taskCfg: cfg, wait: wait}
}

// WaitStep 定时等待
// seconds <= 0 时为瞬时步。
func WaitStep(seconds float64) Step {
	return Step{kind: stepWait, seconds: seconds}
}

// CallbackStep 同步回调
//
// 总是瞬时推进；回调中的 panic 会被捕获并记录，
// 不会让时间轴永久卡死。
func CallbackStep(fn func()) Step {
	if fn == nil {
		log.Printf("[Timeline] CallbackStep 回调为 nil，步骤退化为无操作")
		return Step{kind: stepInvalid}
	}
	return Step{kind: stepCallback, callback: fn}
}

// ParallelStep 并行块
//
// 所有子步骤同时启动，全部完成后才推进。子步骤可以是
// PlayStep / TweenStep / WaitStep / CallbackStep / SubTimelineStep；
// 并行块内的 WaitStep 拥有独立计时器，会真实延迟该分支的完成
// （不再像源实现那样按瞬时处理）。不支持并行块嵌套并行块。
func ParallelStep(children ...Step) Step {
	kept := make([]Step, 0, len(children))
	for _, c := range children {
		if c.kind == stepParallel {
			log.Printf("[Timeline] 并行块不支持嵌套并行块，已忽略该子步骤")
			continue
		}
		kept = append(kept, c)
	}
	return Step{kind: stepParallel, children: kept}
}

// SubTimelineStep 嵌套时间轴
//
// 步骤开始时重置并播放子时间轴。wait=true 时父时间轴每帧把
// Update(dt) 转发给子时间轴并轮询其 Finished；wait=false 时
// 子时间轴独立运行——宿主循环须像对待任何顶层时间轴一样
// 每帧调用它的 Update，父时间轴立即推进。
func SubTimelineStep(child *Timeline, wait bool) Step {
	if child == nil {
		log.Printf("[Timeline] SubTimelineStep 子时间轴为 nil，步骤退化为无操作")
		return Step{kind: stepInvalid}
	}
	return Step{kind: stepSubTimeline, sub: child, wait: wait}
}
