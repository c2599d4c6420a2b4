package timeline

import "github.com/Sellitus/chromatic-glitch-sub001/pkg/tween"

// Playable 可按名播放的动画对象
//
// PlayStep 的协作方契约：由外部系统（骨骼动画、帧动画等）实现，
// 时间轴只负责触发播放和轮询完成标志，不关心播放细节。
//
// 源设计中"有 play 方法和 isFinished 布尔"的鸭子类型检查
// 在这里收紧为编译期接口。
type Playable interface {
	// Play 按名称播放动画；restart=true 时从头播放
	Play(name string, restart bool)
	// Stop 停止播放（时间轴 Stop 时会传播到这里）
	Stop()
	// IsFinished 非循环动画是否已播完
	IsFinished() bool
}

// TaskRegistry 插值任务注册句柄
//
// 等待型 TweenStep 需要把新建任务交给外部的任务管理器
// 做每帧数值推进；*tween.Manager 满足此接口。
// 时间轴持有任务的直接引用来查询完成状态，不会向管理器轮询。
type TaskRegistry interface {
	Add(task tween.Progressable) bool
	Remove(task tween.Progressable)
}
