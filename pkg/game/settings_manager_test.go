package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 存储
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !settings.ShowOverlay {
		t.Error("ShowOverlay: got false, want true")
	}
	if settings.PointScale != 1.0 {
		t.Errorf("PointScale: got %v, want 1.0", settings.PointScale)
	}
	if settings.LastModel != "" {
		t.Errorf("LastModel: got %q, want empty", settings.LastModel)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail, got %v", err)
	}
	if !sm.GetSettings().Fullscreen {
		t.Error("in-memory setting lost in degraded mode")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_settings_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetFullscreen(true)
	sm1.SetShowOverlay(false)
	sm1.SetPointScale(2.5)
	sm1.SetLastModel("/models/bust.glb")

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if settings.ShowOverlay {
		t.Error("Loaded ShowOverlay: got true, want false")
	}
	if settings.PointScale != 2.5 {
		t.Errorf("Loaded PointScale: got %v, want 2.5", settings.PointScale)
	}
	if settings.LastModel != "/models/bust.glb" {
		t.Errorf("Loaded LastModel: got %q", settings.LastModel)
	}
}

// TestSettingsLoadCorrupted 存储内容损坏时回退到默认值并返回错误
func TestSettingsLoadCorrupted(t *testing.T) {
	gdataManager := openTestGdata(t, "test_settings_corrupted")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("pointScale: [oops")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on corrupted data")
	}
	if sm.GetSettings().PointScale != 1.0 {
		t.Errorf("PointScale after failed load: got %v, want default 1.0", sm.GetSettings().PointScale)
	}
}

// TestSetPointScaleClamp 测试 SetPointScale 范围校验
func TestSetPointScaleClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{1.5, 1.5},   // 正常值
		{0.25, 0.25}, // 下限
		{4.0, 4.0},   // 上限
		{0.1, 0.25},  // 低于下限
		{9, 4.0},     // 高于上限
		{0, 1.0},     // 零值视为默认
		{-3, 1.0},    // 负值视为默认
	}

	for _, tt := range tests {
		sm.SetPointScale(tt.input)
		if sm.GetSettings().PointScale != tt.expected {
			t.Errorf("SetPointScale(%v): got %v, want %v",
				tt.input, sm.GetSettings().PointScale, tt.expected)
		}
	}
}
