package game

import (
	"reflect"
	"testing"

	"github.com/decker502/pointswarm/pkg/motion"
)

// TestPresetPersistence 预设保存后可由新的管理器读回
func TestPresetPersistence(t *testing.T) {
	gdataManager := openTestGdata(t, "test_presets")

	pm1 := NewPresetManager(gdataManager)
	calm := motion.Parameters{CircleRadius: 1.5, CircleSpeed: 0.5, MaxDisplacement: 0.2}
	wild := motion.Parameters{CircleRadius: 12, CircleSpeed: 8, MaxDisplacement: 4}
	if err := pm1.Put("calm", calm); err != nil {
		t.Fatalf("Put(calm): %v", err)
	}
	if err := pm1.Put("wild", wild); err != nil {
		t.Fatalf("Put(wild): %v", err)
	}

	pm2 := NewPresetManager(gdataManager)
	if got := pm2.Names(); !reflect.DeepEqual(got, []string{"calm", "wild"}) {
		t.Errorf("Names() = %v, want [calm wild]", got)
	}
	if got, ok := pm2.Get("wild"); !ok || got != wild {
		t.Errorf("Get(wild) = %+v, %v; want %+v", got, ok, wild)
	}

	if err := pm2.Delete("calm"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	pm3 := NewPresetManager(gdataManager)
	if _, ok := pm3.Get("calm"); ok {
		t.Error("deleted preset still present after reload")
	}
}

// TestPresetManagerDegraded nil 存储时仅在内存中工作
func TestPresetManagerDegraded(t *testing.T) {
	pm := NewPresetManager(nil)
	p := motion.Parameters{CircleRadius: 3}
	if err := pm.Put("quick", p); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got, ok := pm.Get("quick"); !ok || got != p {
		t.Errorf("Get(quick) = %+v, %v", got, ok)
	}
	if err := pm.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestPresetEmptyName(t *testing.T) {
	pm := NewPresetManager(nil)
	if err := pm.Put("", motion.Parameters{}); err == nil {
		t.Error("Put with empty name should fail")
	}
}
