package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite 演示用精灵
//
// 把位置 / 缩放 / 透明度暴露为可插值属性，实现 tween.Tweenable。
// 属性名："x", "y", "scale", "alpha"
type Sprite struct {
	X, Y  float64
	Scale float64
	Alpha float64

	// TintR/G/B 颜色调制（1,1,1 = 原色），供颜色插值演示使用
	TintR, TintG, TintB float64

	img *ebiten.Image
}

// NewSprite 创建指定颜色的方块精灵
func NewSprite(size int, c color.Color) *Sprite {
	img := ebiten.NewImage(size, size)
	img.Fill(c)
	return &Sprite{Scale: 1, Alpha: 1, TintR: 1, TintG: 1, TintB: 1, img: img}
}

// Property 读取属性值
func (s *Sprite) Property(name string) (float64, bool) {
	switch name {
	case "x":
		return s.X, true
	case "y":
		return s.Y, true
	case "scale":
		return s.Scale, true
	case "alpha":
		return s.Alpha, true
	}
	return 0, false
}

// SetProperty 写入属性值（未知属性静默忽略）
func (s *Sprite) SetProperty(name string, v float64) {
	switch name {
	case "x":
		s.X = v
	case "y":
		s.Y = v
	case "scale":
		s.Scale = v
	case "alpha":
		s.Alpha = v
	}
}

// Draw 绘制精灵（以 X/Y 为中心）
func (s *Sprite) Draw(screen *ebiten.Image) {
	alpha := s.Alpha
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	w := float64(s.img.Bounds().Dx())
	h := float64(s.img.Bounds().Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(s.Scale, s.Scale)
	op.GeoM.Translate(s.X, s.Y)
	op.ColorScale.Scale(float32(s.TintR), float32(s.TintG), float32(s.TintB), 1)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(s.img, op)
}

// Flasher 演示用可播放动画（实现 timeline.Playable）
//
// 按名播放一段定长闪烁：宿主每帧调用 Update 推进，
// 时间轴通过 IsFinished 轮询完成。
type Flasher struct {
	sprite   *Sprite
	duration float64
	elapsed  float64
	playing  bool
}

// NewFlasher 创建闪烁动画，绑定到指定精灵
func NewFlasher(sprite *Sprite, duration float64) *Flasher {
	return &Flasher{sprite: sprite, duration: duration}
}

// Play 按名播放（本演示只有一种闪烁，名称仅用于日志）
func (f *Flasher) Play(name string, restart bool) {
	if restart || !f.playing {
		f.elapsed = 0
	}
	f.playing = true
}

// Stop 停止播放
func (f *Flasher) Stop() {
	f.playing = false
	f.sprite.Alpha = 1
}

// IsFinished 是否已播完
func (f *Flasher) IsFinished() bool {
	return !f.playing
}

// Update 推进闪烁动画（由宿主循环驱动）
func (f *Flasher) Update(dt float64) {
	if !f.playing {
		return
	}
	f.elapsed += dt
	if f.elapsed >= f.duration {
		f.playing = false
		f.sprite.Alpha = 1
		return
	}
	// 10Hz 方波闪烁
	if int(f.elapsed*10)%2 == 0 {
		f.sprite.Alpha = 1
	} else {
		f.sprite.Alpha = 0.2
	}
}
