package tween

import "log"

// Progressable 可被 Manager 驱动的最小能力契约
//
// 源设计中的鸭子类型检查（"有 update 方法和 target 引用"）
// 在这里收紧为编译期接口；不满足契约的值在构造调用点就无法注册。
type Progressable interface {
	// Update 推进一帧
	Update(dt float64)
	// IsActive 返回 false 时会在当帧被 Manager 回收
	IsActive() bool
	// Target 返回插值目标引用（用于按目标批量移除）
	Target() Tweenable
}

// stoppable 可显式停止的任务（StopAllOf 使用）
type stoppable interface {
	Stop()
}

// propertyKeyed 暴露属性键集的任务（争用检测使用）
type propertyKeyed interface {
	PropertyKeys() []string
}

// Manager 插值任务管理器
//
// 持有一组存活任务的扁平集合，宿主每帧调用一次 Update(dt)
// 推进全部任务并回收已结束的。同一帧内任务之间没有顺序保证
// （任务相互独立，共享目标的属性争用是调用方契约）。
//
// Manager 不拥有任何目标对象，生命周期与目标无关。
type Manager struct {
	tasks         []Progressable
	conflictCheck bool
}

// NewManager 创建任务管理器
func NewManager() *Manager {
	return &Manager{}
}

// SetConflictCheck 开关调试模式的属性争用检测
// 开启后，Add 时会对同目标上活动任务的属性键集求交并告警。
func (m *Manager) SetConflictCheck(enable bool) {
	m.conflictCheck = enable
}

// Add 注册任务
//
// 拒绝 nil 和重复注册（按实例同一性判断），拒绝时记录并无操作。
// 返回任务是否被加入。
func (m *Manager) Add(task Progressable) bool {
	if task == nil {
		log.Printf("[TweenManager] Add rejected: nil task")
		return false
	}
	for _, existing := range m.tasks {
		if existing == task {
			log.Printf("[TweenManager] Add rejected: task already registered")
			return false
		}
	}
	if m.conflictCheck {
		m.warnConflicts(task)
	}
	m.tasks = append(m.tasks, task)
	return true
}

// Remove 移除任务（幂等，不触发任务的 OnStop）
func (m *Manager) Remove(task Progressable) {
	for i, existing := range m.tasks {
		if existing == task {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

// RemoveAllOf 移除目标上的全部任务（按目标引用同一性判断）
//
// 注意：只做簿记，不调用任务的 Stop，因此不触发 OnStop。
// 需要完整生命周期回调的调用方使用 StopAllOf。
func (m *Manager) RemoveAllOf(target Tweenable) {
	if target == nil {
		return
	}
	kept := m.tasks[:0]
	for _, task := range m.tasks {
		if task.Target() != target {
			kept = append(kept, task)
		}
	}
	m.tasks = kept
}

// StopAllOf 停止并移除目标上的全部任务
// 与 RemoveAllOf 的区别：对每个任务先调用 Stop（触发其 OnStop）。
func (m *Manager) StopAllOf(target Tweenable) {
	if target == nil {
		return
	}
	kept := m.tasks[:0]
	for _, task := range m.tasks {
		if task.Target() == target {
			if s, ok := task.(stoppable); ok {
				s.Stop()
			}
			continue
		}
		kept = append(kept, task)
	}
	m.tasks = kept
}

// Update 推进全部任务一帧，回收不再存活的任务
//
// 倒序遍历保证回收安全；Update 期间新注册的任务
// 不会在当帧被推进。
func (m *Manager) Update(dt float64) {
	for i := len(m.tasks) - 1; i >= 0; i-- {
		if i >= len(m.tasks) {
			continue
		}
		task := m.tasks[i]
		task.Update(dt)
		if !task.IsActive() {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
		}
	}
}

// Len 返回当前存活任务数
func (m *Manager) Len() int {
	return len(m.tasks)
}

// warnConflicts 检测新任务与已注册活动任务的属性键集重叠
func (m *Manager) warnConflicts(task Progressable) {
	pk, ok := task.(propertyKeyed)
	if !ok {
		return
	}
	newKeys := pk.PropertyKeys()
	for _, existing := range m.tasks {
		if existing.Target() != task.Target() || !existing.IsActive() {
			continue
		}
		epk, ok := existing.(propertyKeyed)
		if !ok {
			continue
		}
		for _, ek := range epk.PropertyKeys() {
			for _, nk := range newKeys {
				if ek == nk {
					log.Printf("[TweenManager] 属性争用: 同一目标上的两个活动任务都在驱动 %q", nk)
				}
			}
		}
	}
}
