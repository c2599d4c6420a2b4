package tween

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestColorBlendEndpointsAndClamp(t *testing.T) {
	from := colorful.Color{R: 1, G: 0, B: 0}
	to := colorful.Color{R: 0, G: 0, B: 1}
	blend := NewColorBlend(from, to)

	blend.SetProperty("t", 0)
	start := blend.Color()
	if math.Abs(start.R-from.R) > 1e-6 || math.Abs(start.B-from.B) > 1e-6 {
		t.Errorf("Expected from color at t=0, got=%v", start)
	}

	blend.SetProperty("t", 1)
	end := blend.Color()
	if math.Abs(end.R-to.R) > 1e-6 || math.Abs(end.B-to.B) > 1e-6 {
		t.Errorf("Expected to color at t=1, got=%v", end)
	}

	// 缓动过冲：t 超出 [0,1] 时混合结果钳制在终点
	blend.SetProperty("t", 1.4)
	over := blend.Color()
	if math.Abs(over.R-end.R) > 1e-6 || math.Abs(over.B-end.B) > 1e-6 {
		t.Errorf("Expected overshoot clamped to end color, got=%v", over)
	}

	got, ok := blend.Property("t")
	if !ok || got != 1.4 {
		t.Errorf("Expected raw t preserved, got=%v ok=%v", got, ok)
	}
}

func TestColorBlendDrivenByTask(t *testing.T) {
	from, _ := colorful.Hex("#000000")
	to, _ := colorful.Hex("#ffffff")
	blend := NewColorBlend(from, to)

	task, err := NewTask(TaskConfig{
		Target:   blend,
		End:      map[string]float64{"t": 1},
		Start:    map[string]float64{"t": 0},
		Duration: 1,
	})
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	task.Play()
	task.Update(1)

	got := blend.Color()
	if math.Abs(got.R-1) > 1e-6 || math.Abs(got.G-1) > 1e-6 || math.Abs(got.B-1) > 1e-6 {
		t.Errorf("Expected white at completion, got=%v", got)
	}

	// 未知属性写入应被静默忽略
	blend.SetProperty("bogus", 0.5)
	if _, ok := blend.Property("bogus"); ok {
		t.Errorf("Expected unknown property to stay unresolvable")
	}
}
