package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/pointswarm/pkg/motion"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// PresetManager 运动参数预设管理器
// 负责命名预设的加载、保存和内存管理
type PresetManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	presets      map[string]motion.Parameters
}

// 存储路径常量
const (
	presetsObject   = "presets"
	presetsProperty = "motion"
)

// NewPresetManager 创建预设管理器并尝试加载已保存的预设
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存预设）
//
// 返回：
//   - *PresetManager: 预设管理器实例（加载失败时为空预设）
func NewPresetManager(gdataManager *gdata.Manager) *PresetManager {
	pm := &PresetManager{
		gdataManager: gdataManager,
		presets:      make(map[string]motion.Parameters),
	}
	if err := pm.Load(); err != nil {
		log.Printf("[PresetManager] Warning: Failed to load presets: %v (starting empty)", err)
	}
	return pm
}

// Load 从 gdata 加载全部预设
//
// 如果 gdataManager 为 nil 或数据不存在，保持空预设
//
// 返回：
//   - error: 读取或反序列化失败时返回错误
func (pm *PresetManager) Load() error {
	pm.presets = make(map[string]motion.Parameters)
	if pm.gdataManager == nil {
		return nil
	}
	if !pm.gdataManager.ObjectPropExists(presetsObject, presetsProperty) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(presetsObject, presetsProperty)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	var loaded map[string]motion.Parameters
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal presets: %w", err)
	}
	for name, p := range loaded {
		pm.presets[name] = p
	}
	log.Printf("[PresetManager] Loaded %d presets", len(pm.presets))
	return nil
}

// Save 持久化全部预设
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (pm *PresetManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.presets)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(presetsObject, presetsProperty, data); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	log.Printf("[PresetManager] Saved %d presets", len(pm.presets))
	return nil
}

// Put 记录预设并立即持久化
func (pm *PresetManager) Put(name string, params motion.Parameters) error {
	if name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	pm.presets[name] = params
	return pm.Save()
}

// Get 按名称取预设
func (pm *PresetManager) Get(name string) (motion.Parameters, bool) {
	p, ok := pm.presets[name]
	return p, ok
}

// Delete 删除预设并持久化；不存在时为空操作
func (pm *PresetManager) Delete(name string) error {
	if _, ok := pm.presets[name]; !ok {
		return nil
	}
	delete(pm.presets, name)
	return pm.Save()
}

// Names 全部预设名（排序）
func (pm *PresetManager) Names() []string {
	names := make([]string, 0, len(pm.presets))
	for name := range pm.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
