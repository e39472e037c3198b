// Package motion 定义位移算法每帧读取的运动参数
//
// Parameters 是一个普通的可变记录，由补间引擎和控制面板写入，
// 由位移系统每帧读取。零值（全部为 0）即"合并"静止状态。
package motion

// 参数字段名（补间目标与配置文件共用）
const (
	FieldCircleRadius    = "circleRadius"
	FieldCircleSpeed     = "circleSpeed"
	FieldMaxDisplacement = "maxDisplacement"
)

// FieldNames 全部字段名，顺序固定
var FieldNames = []string{FieldCircleRadius, FieldCircleSpeed, FieldMaxDisplacement}

// Parameters 运动参数
// 不做内部校验：负值虽然看起来奇怪，但算法依然有定义，范围由控制面板负责限制
type Parameters struct {
	CircleRadius    float64 `yaml:"circleRadius"`    // 环绕半径
	CircleSpeed     float64 `yaml:"circleSpeed"`     // 环绕角速度（弧度/秒）
	MaxDisplacement float64 `yaml:"maxDisplacement"` // 随机抖动幅度
}

// Field 实现 tween.Target
func (p *Parameters) Field(name string) *float64 {
	switch name {
	case FieldCircleRadius:
		return &p.CircleRadius
	case FieldCircleSpeed:
		return &p.CircleSpeed
	case FieldMaxDisplacement:
		return &p.MaxDisplacement
	}
	return nil
}

// AtRest 三个参数是否全部为 0
func (p *Parameters) AtRest() bool {
	return p.CircleRadius == 0 && p.CircleSpeed == 0 && p.MaxDisplacement == 0
}

// Values 以字段名 → 值的形式返回当前参数
func (p *Parameters) Values() map[string]float64 {
	return map[string]float64{
		FieldCircleRadius:    p.CircleRadius,
		FieldCircleSpeed:     p.CircleSpeed,
		FieldMaxDisplacement: p.MaxDisplacement,
	}
}

// Zero 全零补间目标，用于"重置"过渡
func Zero() map[string]float64 {
	return map[string]float64{
		FieldCircleRadius:    0,
		FieldCircleSpeed:     0,
		FieldMaxDisplacement: 0,
	}
}
