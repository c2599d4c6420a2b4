package timeline

import (
	"math"
	"testing"

	"github.com/Sellitus/chromatic-glitch-sub001/pkg/tween"
)

// fakeAnim 测试用 Playable 实现
type fakeAnim struct {
	played   []string
	stopped  bool
	finished bool
}

func (f *fakeAnim) Play(name string, restart bool) {
	f.played = append(f.played, name)
	f.finished = false
}

func (f *fakeAnim) Stop() { f.stopped = true }

func (f *fakeAnim) IsFinished() bool { return f.finished }

func TestTimelineInstantStepChaining(t *testing.T) {
	var order []int
	tl := NewTimeline().
		AddCallback(func() { order = append(order, 1) }).
		AddCallback(func() { order = append(order, 2) }).
		AddWait(0).
		AddCallback(func() { order = append(order, 3) })

	tl.Play()
	tl.Update(0)

	if !tl.IsFinished() {
		t.Errorf("Expected timeline finished after a single update, state=%v", tl.State())
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Expected callbacks [1 2 3] in list order, got=%v", order)
	}
}

func TestTimelineWaitGatesCallback(t *testing.T) {
	calls := 0
	tl := NewTimeline().
		AddWait(0.5).
		AddCallback(func() { calls++ })
	tl.Play()

	tl.Update(0.4)
	if calls != 0 {
		t.Errorf("Expected callback gated at 0.4s, got %d calls", calls)
	}
	if tl.IsFinished() {
		t.Errorf("Expected timeline still playing at 0.4s")
	}

	tl.Update(0.2) // 累计 0.6 >= 0.5
	if calls != 1 {
		t.Errorf("Expected callback exactly once at 0.6s, got %d calls", calls)
	}
	if !tl.IsFinished() {
		t.Errorf("Expected timeline finished, state=%v", tl.State())
	}
}

func TestTimelineParallelCompletionGating(t *testing.T) {
	m := tween.NewManager()
	anim := &fakeAnim{}
	target := tween.NewProps(map[string]float64{"x": 0})
	done := false

	tl := NewTimeline().SetRegistry(m).
		AddParallel(
			PlayStep(anim, "flash", true),
			TweenStep(tween.TaskConfig{
				Target:   target,
				End:      map[string]float64{"x": 100},
				Duration: 0.5,
			}, true),
		).
		AddCallback(func() { done = true })
	tl.Play()

	tick := func(dt float64) {
		m.Update(dt)
		tl.Update(dt)
	}

	tick(0.2) // 并行块启动
	anim.finished = true
	tick(0.2) // 动画完成，插值仍在飞行（0.2/0.5）
	if done {
		t.Fatalf("Expected parallel block to keep waiting on the tween")
	}
	tick(0.2) // 插值 0.4/0.5
	if done {
		t.Fatalf("Expected parallel block still waiting at 0.4s")
	}
	tick(0.2) // 插值 0.6 >= 0.5 完成
	if !done {
		t.Errorf("Expected parallel block to advance after slowest child")
	}
	if math.Abs(target.Get("x")-100) > 1e-9 {
		t.Errorf("Expected x=100, got=%v", target.Get("x"))
	}
}

func TestTimelineParallelWaitHasRealTimer(t *testing.T) {
	// 并行块内的等待步骤拥有独立计时器，真实延迟该分支完成
	done := false
	tl := NewTimeline().
		AddParallel(WaitStep(0.3)).
		AddCallback(func() { done = true })
	tl.Play()

	tl.Update(0.2)
	if done {
		t.Errorf("Expected nested wait to gate the parallel block")
	}
	tl.Update(0.2)
	if !done {
		t.Errorf("Expected parallel block done after nested wait elapsed")
	}
}

func TestTimelineStopIdempotenceAndRestartAsymmetry(t *testing.T) {
	t.Run("NonLooping", func(t *testing.T) {
		calls := 0
		tl := NewTimeline().
			AddWait(1).
			AddCallback(func() { calls++ })
		tl.Play()
		tl.Update(0.2)

		tl.Stop()
		tl.Stop() // 幂等：不产生额外回调
		if calls != 0 {
			t.Errorf("Expected no callbacks after stop, got=%d", calls)
		}

		tl.Play() // 非循环已结束：无操作
		if tl.State() != StateFinished {
			t.Errorf("Expected Play to be a no-op on finished non-looping timeline")
		}
		tl.Update(5)
		if calls != 0 {
			t.Errorf("Expected no callbacks after no-op play, got=%d", calls)
		}
	})

	t.Run("Looping", func(t *testing.T) {
		calls := 0
		tl := NewTimeline().SetLoop(true).
			AddWait(0.5).
			AddCallback(func() { calls++ })
		tl.Play()
		tl.Update(0.2)
		tl.Stop()

		tl.Play() // 循环时间轴：从第一步恢复
		if tl.State() != StatePlaying {
			t.Fatalf("Expected looping timeline to resume, state=%v", tl.State())
		}
		tl.Update(0.6)
		if calls != 1 {
			t.Errorf("Expected callback after restart, got=%d", calls)
		}
	})
}

func TestTimelineStopPropagatesToInFlightChildren(t *testing.T) {
	m := tween.NewManager()
	target := tween.NewProps(map[string]float64{"x": 0})
	stopCalls, completeCalls := 0, 0

	tl := NewTimeline().SetRegistry(m).
		AddTween(tween.TaskConfig{
			Target:   target,
			End:      map[string]float64{"x": 100},
			Duration: 1,
			OnStop:   func() { stopCalls++ },
			OnComplete: func() {
				completeCalls++
			},
		}, true)
	tl.Play()
	m.Update(0.3)
	tl.Update(0.3)

	tl.Stop()
	if stopCalls != 1 {
		t.Errorf("Expected in-flight task OnStop once, got=%d", stopCalls)
	}
	if m.Len() != 0 {
		t.Errorf("Expected task removed from registry on stop, Len=%d", m.Len())
	}

	// 取消是彻底的：后续 tick 不得再产生任何回调
	for i := 0; i < 5; i++ {
		m.Update(1)
		tl.Update(1)
	}
	if completeCalls != 0 {
		t.Errorf("Expected no OnComplete after stop, got=%d", completeCalls)
	}
}

func TestTimelinePausePropagatesToTween(t *testing.T) {
	m := tween.NewManager()
	target := tween.NewProps(map[string]float64{"x": 0})

	tl := NewTimeline().SetRegistry(m).
		AddTween(tween.TaskConfig{
			Target:   target,
			End:      map[string]float64{"x": 100},
			Duration: 1,
		}, true)
	tl.Play()
	tl.Update(0) // 启动插值任务
	m.Update(0.3)

	tl.Pause()
	m.Update(10) // 管理器照常 tick，但任务已冻结
	tl.Update(10)
	if math.Abs(target.Get("x")-30) > 1e-9 {
		t.Errorf("Expected frozen x=30 while paused, got=%v", target.Get("x"))
	}

	tl.Play()
	m.Update(0.7)
	tl.Update(0.7)
	if math.Abs(target.Get("x")-100) > 1e-9 {
		t.Errorf("Expected x=100 after resume, got=%v", target.Get("x"))
	}
	if !tl.IsFinished() {
		t.Errorf("Expected timeline finished after tween completes")
	}
}

func TestTimelinePlayStepWaitPollsFinishedFlag(t *testing.T) {
	anim := &fakeAnim{}
	done := false
	tl := NewTimeline().
		AddPlay(anim, "roll", true).
		AddCallback(func() { done = true })
	tl.Play()

	tl.Update(0.1)
	if len(anim.played) != 1 || anim.played[0] != "roll" {
		t.Fatalf("Expected play invoked once with name, got=%v", anim.played)
	}
	if done {
		t.Fatalf("Expected wait on unfinished animation")
	}

	anim.finished = true
	tl.Update(0.1)
	if !done {
		t.Errorf("Expected advancement after animation finished")
	}
}

func TestTimelinePlayStepNoWaitIsInstant(t *testing.T) {
	anim := &fakeAnim{}
	done := false
	tl := NewTimeline().
		AddPlay(anim, "flash", false).
		AddCallback(func() { done = true })
	tl.Play()
	tl.Update(0)

	if !done || !tl.IsFinished() {
		t.Errorf("Expected non-waiting play to advance immediately")
	}
	if len(anim.played) != 1 {
		t.Errorf("Expected animation triggered, got=%v", anim.played)
	}
}

func TestTimelineTweenWithoutRegistryDegrades(t *testing.T) {
	target := tween.NewProps(map[string]float64{"x": 0})
	// 故意不配置任务管理器
	tl := NewTimeline().AddTween(tween.TaskConfig{
		Target:   target,
		End:      map[string]float64{"x": 100},
		Duration: 1,
	}, true)
	tl.Play()
	tl.Update(0)

	// wait=true 但无管理器：记录日志并降级为非等待，时间轴不卡死
	if !tl.IsFinished() {
		t.Errorf("Expected degraded tween step to advance immediately, state=%v", tl.State())
	}
}

func TestTimelineSubTimelineWaiting(t *testing.T) {
	childDone, parentDone := false, false
	child := NewTimeline().
		AddWait(0.2).
		AddCallback(func() { childDone = true })
	tl := NewTimeline().
		AddSubTimeline(child, true).
		AddCallback(func() { parentDone = true })
	tl.Play()

	tl.Update(0.1)
	if childDone || parentDone {
		t.Fatalf("Expected child still waiting")
	}
	tl.Update(0.15)
	if !childDone {
		t.Errorf("Expected child timeline completed")
	}
	if !parentDone {
		t.Errorf("Expected parent advanced after child finished")
	}
}

func TestTimelineLoopFiresOnCompleteEachCycle(t *testing.T) {
	cycleCalls, cbCalls := 0, 0
	tl := NewTimeline().SetLoop(true).
		SetOnComplete(func() { cycleCalls++ }).
		AddWait(0.5).
		AddCallback(func() { cbCalls++ })
	tl.Play()

	tl.Update(0.6) // 第一轮
	tl.Update(0.6) // 第二轮
	if cbCalls != 2 {
		t.Errorf("Expected callback once per cycle, got=%d", cbCalls)
	}
	if cycleCalls != 2 {
		t.Errorf("Expected OnComplete once per cycle, got=%d", cycleCalls)
	}
	if tl.IsFinished() {
		t.Errorf("Expected looping timeline to keep playing")
	}
}

func TestTimelineTimeScale(t *testing.T) {
	done := false
	tl := NewTimeline().SetTimeScale(2).
		AddWait(1).
		AddCallback(func() { done = true })
	tl.Play()

	tl.Update(0.5) // 缩放后等效 1.0 秒
	if !done {
		t.Errorf("Expected time scale to double dt")
	}
}

func TestTimelineAddStepDuringPlayIgnored(t *testing.T) {
	tl := NewTimeline().AddWait(1)
	tl.Play()
	tl.Update(0.1)

	tl.AddWait(5) // 执行期间追加：忽略
	if tl.Len() != 1 {
		t.Errorf("Expected step list unchanged during execution, Len=%d", tl.Len())
	}
}

func TestTimelineCallbackPanicDoesNotStall(t *testing.T) {
	after := false
	tl := NewTimeline().
		AddCallback(func() { panic("bad game logic") }).
		AddCallback(func() { after = true })
	tl.Play()
	tl.Update(0)

	if !after {
		t.Errorf("Expected panicking callback treated as success")
	}
	if !tl.IsFinished() {
		t.Errorf("Expected timeline finished, state=%v", tl.State())
	}
}
