// Package main provides a visual demo of the tween / timeline animation engine.
//
// Usage:
//
//	go run ./cmd/animation_demo
//
// Controls:
//
//	Space - Pause / resume the sequence
//	S     - Toggle slow motion (persisted)
//	R     - Restart the sequence from the beginning
//	H     - Toggle help text (persisted)
//	Q     - Quit
//
// Purpose:
//   - Exercise every step variant (tween, play, wait, callback, parallel, sub-timeline)
//   - Verify pause / stop propagation and loop restart by eye
//   - Demonstrate the Tweenable / Playable collaborator contracts
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/quasilyte/gdata/v2"

	"github.com/Sellitus/chromatic-glitch-sub001/pkg/timeline"
	"github.com/Sellitus/chromatic-glitch-sub001/pkg/tween"
)

const (
	screenWidth  = 800
	screenHeight = 480
)

// DemoGame implements ebiten.Game interface for the animation engine demo.
type DemoGame struct {
	manager  *tween.Manager
	sequence *timeline.Timeline

	hero    *Sprite
	buddy   *Sprite
	flasher *Flasher
	blend   *tween.ColorBlend

	settings *SettingsManager
	status   string
}

// NewDemoGame 组装演示场景
func NewDemoGame(settings *SettingsManager) *DemoGame {
	g := &DemoGame{
		manager:  tween.NewManager(),
		settings: settings,
	}
	g.manager.SetConflictCheck(true)

	g.hero = NewSprite(48, color.White)
	g.hero.X, g.hero.Y = 100, 200
	g.buddy = NewSprite(32, color.RGBA{90, 200, 120, 255})
	g.buddy.X, g.buddy.Y = 640, 120
	g.flasher = NewFlasher(g.buddy, 0.8)
	g.blend = tween.NewColorBlend(
		colorful.Color{R: 0.95, G: 0.35, B: 0.25},
		colorful.Color{R: 0.25, G: 0.55, B: 0.95},
	)

	catalog := tween.DefaultCatalog()
	outBack, _ := catalog.Lookup("outBack")
	inOutQuad, _ := catalog.Lookup("inOutQuad")
	outCubic, _ := catalog.Lookup("outCubic")

	// 背景任务：buddy 上下漂浮（Yoyo 循环，直接挂在管理器上）
	bob, err := tween.NewTask(tween.TaskConfig{
		Target:   g.buddy,
		End:      map[string]float64{"y": 180},
		Duration: 1.2,
		Easing:   inOutQuad,
		Loop:     tween.LoopYoyo,
	})
	if err != nil {
		log.Fatalf("[Demo] 创建漂浮任务失败: %v", err)
	}
	g.manager.Add(bob)
	bob.Play()

	// 缩放弹跳子时间轴
	bounce := timeline.NewTimeline().SetRegistry(g.manager).
		AddTween(tween.TaskConfig{
			Target:   g.hero,
			End:      map[string]float64{"scale": 1.6},
			Duration: 0.25,
			Easing:   outCubic,
		}, true).
		AddTween(tween.TaskConfig{
			Target:   g.hero,
			End:      map[string]float64{"scale": 1.0},
			Duration: 0.25,
			Easing:   inOutQuad,
		}, true)

	// 主序列：依次演示每种步骤变体
	g.sequence = timeline.NewTimeline().SetRegistry(g.manager).SetLoop(true).
		AddCallback(func() { g.status = "穿越屏幕 + 颜色渐变" }).
		AddParallel(
			timeline.TweenStep(tween.TaskConfig{
				Target:   g.hero,
				End:      map[string]float64{"x": 650, "y": 320},
				Duration: 1.4,
				Easing:   outBack,
			}, true),
			timeline.TweenStep(tween.TaskConfig{
				Target:   g.blend,
				End:      map[string]float64{"t": 1},
				Start:    map[string]float64{"t": 0},
				Duration: 1.4,
			}, true),
			timeline.PlayStep(g.flasher, "flash", false),
			timeline.WaitStep(0.5),
		).
		AddCallback(func() { g.status = "等待 + 闪烁" }).
		AddWait(0.3).
		AddPlay(g.flasher, "flash", true).
		AddCallback(func() { g.status = "缩放弹跳（子时间轴）" }).
		AddSubTimeline(bounce, true).
		AddCallback(func() { g.status = "回到起点" }).
		AddTween(tween.TaskConfig{
			Target:   g.hero,
			End:      map[string]float64{"x": 100, "y": 200},
			Duration: 1.0,
			Easing:   inOutQuad,
			Start:    map[string]float64{"x": 650, "y": 320},
		}, true).
		AddWait(0.4)

	g.sequence.Play()
	return g
}

// Update updates the demo logic.
func (g *DemoGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return fmt.Errorf("quit")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.sequence.State() == timeline.StatePaused {
			g.sequence.Play()
		} else {
			g.sequence.Pause()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.settings.Settings().SlowMotion = !g.settings.Settings().SlowMotion
		if err := g.settings.Save(); err != nil {
			log.Printf("[Demo] 保存设置失败: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.settings.Settings().ShowHelp = !g.settings.Settings().ShowHelp
		if err := g.settings.Save(); err != nil {
			log.Printf("[Demo] 保存设置失败: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		// 循环时间轴：Stop 后 Play 从第一步恢复
		g.sequence.Stop()
		g.sequence.Play()
	}

	dt := 1.0 / 60.0
	if g.settings.Settings().SlowMotion {
		dt *= 0.25
	}

	g.manager.Update(dt)
	g.sequence.Update(dt)
	g.flasher.Update(dt)

	c := g.blend.Color()
	g.hero.TintR, g.hero.TintG, g.hero.TintB = c.R, c.G, c.B

	return nil
}

// Draw renders the demo.
func (g *DemoGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 24, 32, 255})
	g.hero.Draw(screen)
	g.buddy.Draw(screen)

	msg := g.status
	if g.settings.Settings().ShowHelp {
		msg += "\nSpace: pause/resume  S: slow-mo  R: restart  H: help  Q: quit"
		msg += fmt.Sprintf("\nactive tasks: %d  slow-mo: %v", g.manager.Len(), g.settings.Settings().SlowMotion)
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout implements ebiten.Game.
func (g *DemoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "chromatic_glitch_animation_demo",
	})
	if err != nil {
		log.Printf("[Demo] gdata 初始化失败: %v（设置将不会持久化）", err)
		gdataManager = nil
	}
	settings := NewSettingsManager(gdataManager)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Animation Engine Demo")

	if err := ebiten.RunGame(NewDemoGame(settings)); err != nil {
		if err.Error() == "quit" {
			return
		}
		log.Fatal(err)
	}
}
