package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 查看器的持久化设置
// 这些设置跨运行保留，与动画配置文件无关
type ViewerSettings struct {
	Fullscreen  bool    `yaml:"fullscreen"`  // 启动时是否全屏
	ShowOverlay bool    `yaml:"showOverlay"` // 是否显示参数叠加层
	PointScale  float64 `yaml:"pointScale"`  // 点大小倍率 0.25 ~ 4.0
	LastModel   string  `yaml:"lastModel"`   // 最近打开的模型路径，空表示程序生成的点云
}

// 点大小倍率范围
const (
	minPointScale = 0.25
	maxPointScale = 4.0
)

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		Fullscreen:  false,
		ShowOverlay: true,
		PointScale:  1.0,
	}
}

// SettingsManager 设置管理器
// 负责查看器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方的错误返回（加载失败不视为错误）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，旧版本文件缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.PointScale = clampPointScale(loaded.PointScale)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
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

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowOverlay 设置叠加层开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetShowOverlay(enabled bool) {
	sm.settings.ShowOverlay = enabled
}

// SetPointScale 设置点大小倍率
//
// 倍率会被限制在 0.25 ~ 4.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetPointScale(scale float64) {
	sm.settings.PointScale = clampPointScale(scale)
}

// SetLastModel 记录最近打开的模型
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLastModel(path string) {
	sm.settings.LastModel = path
}

// clampPointScale 将倍率限制在允许范围内，非正值视为默认值
func clampPointScale(scale float64) float64 {
	if scale <= 0 {
		return 1.0
	}
	if scale < minPointScale {
		return minPointScale
	}
	if scale > maxPointScale {
		return maxPointScale
	}
	return scale
}
