package tween

import "testing"

func newTestTask(t *testing.T, target Tweenable, cfg TaskConfig) *Task {
	t.Helper()
	cfg.Target = target
	if cfg.End == nil {
		cfg.End = map[string]float64{"x": 100}
	}
	if cfg.Duration == 0 {
		cfg.Duration = 1
	}
	task, err := NewTask(cfg)
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	return task
}

func TestManagerAddRejectsNilAndDuplicate(t *testing.T) {
	m := NewManager()
	target := NewProps(map[string]float64{"x": 0})
	task := newTestTask(t, target, TaskConfig{})

	if m.Add(nil) {
		t.Errorf("Expected Add(nil) to be rejected")
	}
	if !m.Add(task) {
		t.Errorf("Expected first Add to succeed")
	}
	if m.Add(task) {
		t.Errorf("Expected duplicate Add to be rejected")
	}
	if m.Len() != 1 {
		t.Errorf("Expected Len=1, got=%d", m.Len())
	}
}

func TestManagerUpdateEvictsFinishedTasks(t *testing.T) {
	m := NewManager()
	target := NewProps(map[string]float64{"x": 0})
	task := newTestTask(t, target, TaskConfig{})
	m.Add(task)
	task.Play()

	m.Update(0)
	if m.Len() != 1 {
		t.Fatalf("Expected task to stay registered mid-flight, Len=%d", m.Len())
	}

	m.Update(1)
	if !task.IsFinished() {
		t.Errorf("Expected task finished")
	}
	if m.Len() != 0 {
		t.Errorf("Expected finished task evicted, Len=%d", m.Len())
	}
	if target.Get("x") != 100 {
		t.Errorf("Expected x=100, got=%v", target.Get("x"))
	}
}

func TestManagerPausedTaskNotEvicted(t *testing.T) {
	m := NewManager()
	target := NewProps(map[string]float64{"x": 0})
	task := newTestTask(t, target, TaskConfig{})
	m.Add(task)
	task.Play()
	m.Update(0.3)
	task.Pause()

	m.Update(10)
	if m.Len() != 1 {
		t.Errorf("Expected paused task to survive eviction, Len=%d", m.Len())
	}
}

func TestManagerRemoveIsIdempotent(t *testing.T) {
	m := NewManager()
	target := NewProps(map[string]float64{"x": 0})
	task := newTestTask(t, target, TaskConfig{})
	m.Add(task)

	m.Remove(task)
	m.Remove(task)
	if m.Len() != 0 {
		t.Errorf("Expected Len=0 after removal, got=%d", m.Len())
	}
}

func TestManagerRemoveAllOfDoesNotFireOnStop(t *testing.T) {
	m := NewManager()
	t1 := NewProps(map[string]float64{"x": 0})
	t2 := NewProps(map[string]float64{"x": 0})
	stopCalls := 0

	a := newTestTask(t, t1, TaskConfig{OnStop: func() { stopCalls++ }})
	b := newTestTask(t, t1, TaskConfig{End: map[string]float64{"y": 1}, OnStop: func() { stopCalls++ }})
	c := newTestTask(t, t2, TaskConfig{OnStop: func() { stopCalls++ }})
	m.Add(a)
	m.Add(b)
	m.Add(c)

	m.RemoveAllOf(t1)
	if m.Len() != 1 {
		t.Errorf("Expected only t2 task left, Len=%d", m.Len())
	}
	if stopCalls != 0 {
		t.Errorf("Expected RemoveAllOf to skip OnStop, got %d calls", stopCalls)
	}
}

func TestManagerStopAllOfFiresOnStop(t *testing.T) {
	m := NewManager()
	t1 := NewProps(map[string]float64{"x": 0})
	stopCalls := 0

	a := newTestTask(t, t1, TaskConfig{OnStop: func() { stopCalls++ }})
	b := newTestTask(t, t1, TaskConfig{End: map[string]float64{"y": 1}, OnStop: func() { stopCalls++ }})
	m.Add(a)
	m.Add(b)
	a.Play()
	b.Play()

	m.StopAllOf(t1)
	if m.Len() != 0 {
		t.Errorf("Expected all tasks removed, Len=%d", m.Len())
	}
	if stopCalls != 2 {
		t.Errorf("Expected OnStop for each task, got %d calls", stopCalls)
	}
	if !a.IsFinished() || !b.IsFinished() {
		t.Errorf("Expected stopped tasks to be finished")
	}
}

func TestManagerConflictCheckKeepsBothTasks(t *testing.T) {
	m := NewManager()
	m.SetConflictCheck(true)
	target := NewProps(map[string]float64{"x": 0})

	a := newTestTask(t, target, TaskConfig{})
	b := newTestTask(t, target, TaskConfig{})
	m.Add(a)
	m.Add(b) // 仅告警，不拒绝

	if m.Len() != 2 {
		t.Errorf("Expected conflict check to warn without rejecting, Len=%d", m.Len())
	}
}
