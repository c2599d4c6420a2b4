package main

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DemoSettings 演示程序设置
type DemoSettings struct {
	// SlowMotion 慢动作开关（时间缩放 0.25）
	SlowMotion bool `yaml:"slowMotion"`

	// ShowHelp 是否显示操作提示
	ShowHelp bool `yaml:"showHelp"`
}

// DefaultDemoSettings 返回默认设置
func DefaultDemoSettings() *DemoSettings {
	return &DemoSettings{
		SlowMotion: false,
		ShowHelp:   true,
	}
}

// SettingsManager 设置管理器
// gdataManager 可为 nil（降级模式：仅内存设置，不持久化）
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *DemoSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "demo"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultDemoSettings(),
	}
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultDemoSettings()
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultDemoSettings()
		return nil
	}
	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultDemoSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}
	var loaded DemoSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultDemoSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sm.settings = &loaded
	return nil
}

// Save 保存设置到 gdata（降级模式下不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Settings 获取当前设置
func (sm *SettingsManager) Settings() *DemoSettings {
	return sm.settings
}
