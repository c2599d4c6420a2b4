package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Sellitus/chromatic-glitch-sub001/pkg/timeline"
	"github.com/Sellitus/chromatic-glitch-sub001/pkg/tween"
)

// SequenceConfig 动画序列配置（YAML）
//
// 把时间轴的步骤表声明在数据里，运行时解析为 timeline.Timeline。
// 回调步骤无法在数据里表达，仍需在代码里用 AddCallback 插入。
//
// 示例：
//
//	name: card_enter
//	loop: false
//	steps:
//	  - kind: wait
//	    seconds: 0.25
//	  - kind: parallel
//	    steps:
//	      - kind: tween
//	        target: card
//	        duration: 0.6
//	        easing: outBack
//	        to: {x: 320, y: 240}
//	      - kind: play
//	        target: dice
//	        animation: roll
//	        wait: true
type SequenceConfig struct {
	Name  string       `yaml:"name"`  // 序列名称（日志和调试用）
	Loop  bool         `yaml:"loop"`  // 是否循环
	Steps []StepConfig `yaml:"steps"` // 步骤列表（按声明顺序执行）
}

// StepConfig 单个步骤配置
type StepConfig struct {
	// Kind 步骤类型："wait", "tween", "play", "parallel", "timeline"
	Kind string `yaml:"kind"`

	// Target 目标名称，在 BuildContext 的注册表中解析
	// tween 步骤查 Tweenables，play 步骤查 Playables
	Target string `yaml:"target"`

	// Animation 动画名称（play 步骤）
	Animation string `yaml:"animation"`

	// Wait 是否等待本步完成，缺省 true
	Wait *bool `yaml:"wait"`

	// Seconds 等待时长（wait 步骤），单位秒
	Seconds float64 `yaml:"seconds"`

	// Duration / Delay 插值时长与延迟（tween 步骤），单位秒
	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay"`

	// Easing 缓动函数名（tween 步骤），在 BuildContext 的目录中解析
	// 缺省 "linear"
	Easing string `yaml:"easing"`

	// Loop 循环模式（tween 步骤）："none", "repeat", "yoyo"，缺省 "none"
	Loop string `yaml:"loop"`

	// To / From 终点与可选的显式起点（tween 步骤）
	To   map[string]float64 `yaml:"to"`
	From map[string]float64 `yaml:"from"`

	// Steps 子步骤（parallel / timeline 步骤）
	Steps []StepConfig `yaml:"steps"`
}

// BuildContext 序列构建上下文
//
// 目标对象和缓动目录都由宿主应用提供；按名称的解析只发生在
// 这里（构建期），引擎内部永远只接受显式的函数值和对象引用。
type BuildContext struct {
	// Registry 插值任务管理器句柄（含等待型 tween 步骤时必须提供）
	Registry timeline.TaskRegistry

	// Easings 命名缓动目录，nil 时使用 tween.DefaultCatalog
	Easings tween.Catalog

	// Tweenables 可插值目标注册表（名称 → 对象）
	Tweenables map[string]tween.Tweenable

	// Playables 可播放目标注册表（名称 → 对象）
	Playables map[string]timeline.Playable
}

// LoadSequence 从 YAML 数据解析序列配置
func LoadSequence(data []byte) (*SequenceConfig, error) {
	var cfg SequenceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析序列配置失败: %w", err)
	}
	if len(cfg.Steps) == 0 {
		return nil, fmt.Errorf("序列 %q 没有任何步骤", cfg.Name)
	}
	return &cfg, nil
}

// Build 把序列配置解析为可播放的时间轴
//
// 所有名称解析失败（未知目标、未知缓动、未知步骤类型）都是
// 构建期错误，立即返回，绝不推迟到 tick 阶段。
func (c *SequenceConfig) Build(ctx *BuildContext) (*timeline.Timeline, error) {
	if ctx == nil {
		return nil, fmt.Errorf("序列 %q: 缺少构建上下文", c.Name)
	}
	tl := timeline.NewTimeline().SetLoop(c.Loop)
	if ctx.Registry != nil {
		tl.SetRegistry(ctx.Registry)
	}
	for i, sc := range c.Steps {
		step, err := buildStep(c.Name, sc, ctx)
		if err != nil {
			return nil, fmt.Errorf("序列 %q 第 %d 步: %w", c.Name, i+1, err)
		}
		tl.AddStep(step)
	}
	return tl, nil
}

// buildStep 解析单个步骤配置
func buildStep(seqName string, sc StepConfig, ctx *BuildContext) (timeline.Step, error) {
	wait := true
	if sc.Wait != nil {
		wait = *sc.Wait
	}

	switch sc.Kind {
	case "wait":
		if sc.Seconds < 0 {
			return timeline.Step{}, fmt.Errorf("等待时长不能为负: %v", sc.Seconds)
		}
		return timeline.WaitStep(sc.Seconds), nil

	case "tween":
		target, ok := ctx.Tweenables[sc.Target]
		if !ok {
			return timeline.Step{}, fmt.Errorf("未知插值目标 %q", sc.Target)
		}
		easing, err := resolveEasing(sc.Easing, ctx)
		if err != nil {
			return timeline.Step{}, err
		}
		loop, err := parseLoopMode(sc.Loop)
		if err != nil {
			return timeline.Step{}, err
		}
		cfg := tween.TaskConfig{
			Target:   target,
			End:      sc.To,
			Start:    sc.From,
			Duration: sc.Duration,
			Delay:    sc.Delay,
			Easing:   easing,
			Loop:     loop,
		}
		// 在构建期复用构造校验，把时长 / 终点集错误提早暴露
		if _, err := tween.NewTask(cfg); err != nil {
			return timeline.Step{}, err
		}
		return timeline.TweenStep(cfg, wait), nil

	case "play":
		target, ok := ctx.Playables[sc.Target]
		if !ok {
			return timeline.Step{}, fmt.Errorf("未知播放目标 %q", sc.Target)
		}
		return timeline.PlayStep(target, sc.Animation, wait), nil

	case "parallel":
		if len(sc.Steps) == 0 {
			return timeline.Step{}, fmt.Errorf("并行块没有子步骤")
		}
		children := make([]timeline.Step, 0, len(sc.Steps))
		for i, child := range sc.Steps {
			if child.Kind == "parallel" {
				return timeline.Step{}, fmt.Errorf("并行块第 %d 个子步骤: 不支持嵌套并行块", i+1)
			}
			step, err := buildStep(seqName, child, ctx)
			if err != nil {
				return timeline.Step{}, fmt.Errorf("并行块第 %d 个子步骤: %w", i+1, err)
			}
			children = append(children, step)
		}
		return timeline.ParallelStep(children...), nil

	case "timeline":
		if len(sc.Steps) == 0 {
			return timeline.Step{}, fmt.Errorf("嵌套时间轴没有子步骤")
		}
		sub := &SequenceConfig{Name: seqName + "/sub", Steps: sc.Steps}
		child, err := sub.Build(ctx)
		if err != nil {
			return timeline.Step{}, err
		}
		return timeline.SubTimelineStep(child, wait), nil
	}

	return timeline.Step{}, fmt.Errorf("未知步骤类型 %q", sc.Kind)
}

// resolveEasing 按名称解析缓动函数（缺省 linear）
func resolveEasing(name string, ctx *BuildContext) (tween.Easing, error) {
	catalog := ctx.Easings
	if catalog == nil {
		catalog = tween.DefaultCatalog()
	}
	if name == "" {
		name = "linear"
	}
	fn, ok := catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("未知缓动函数 %q", name)
	}
	return fn, nil
}

// parseLoopMode 解析循环模式
func parseLoopMode(s string) (tween.LoopMode, error) {
	switch s {
	case "", "none":
		return tween.LoopNone, nil
	case "repeat":
		return tween.LoopRepeat, nil
	case "yoyo":
		return tween.LoopYoyo, nil
	}
	return tween.LoopNone, fmt.Errorf("未知循环模式 %q", s)
}
