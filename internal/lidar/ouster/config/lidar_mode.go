package config

import "fmt"

// LidarMode pairs a columns-per-frame value with a rotation rate, exactly
// as the device's own configuration vocabulary does. The distilled
// ConfigParams.LidarMode field is a bare value in the minimal
// specification; this port gives it the full enum the reference
// implementation and device documentation both use, since
// LidarDataFormat.ColumnsPerFrame must agree with it (checked in
// OusterConfig.Validate).
type LidarMode int

const (
	Mode512x10 LidarMode = iota
	Mode512x20
	Mode1024x10
	Mode1024x20
	Mode2048x10
)

// ColumnsPerFrame is the horizontal resolution this mode produces.
func (m LidarMode) ColumnsPerFrame() uint16 {
	switch m {
	case Mode512x10, Mode512x20:
		return 512
	case Mode1024x10, Mode1024x20:
		return 1024
	case Mode2048x10:
		return 2048
	default:
		panic(fmt.Sprintf("ouster/config: unknown lidar mode %d", int(m)))
	}
}

// RotationHz is the motor rotation rate this mode runs at.
func (m LidarMode) RotationHz() float64 {
	switch m {
	case Mode512x10, Mode1024x10, Mode2048x10:
		return 10
	case Mode512x20, Mode1024x20:
		return 20
	default:
		panic(fmt.Sprintf("ouster/config: unknown lidar mode %d", int(m)))
	}
}

func (m LidarMode) String() string {
	switch m {
	case Mode512x10:
		return "512x10"
	case Mode512x20:
		return "512x20"
	case Mode1024x10:
		return "1024x10"
	case Mode1024x20:
		return "1024x20"
	case Mode2048x10:
		return "2048x10"
	default:
		return fmt.Sprintf("LidarMode(%d)", int(m))
	}
}

// ParseLidarMode maps the device's JSON lidar_mode string (e.g. "1024x10")
// to a LidarMode.
func ParseLidarMode(s string) (LidarMode, error) {
	switch s {
	case "512x10":
		return Mode512x10, nil
	case "512x20":
		return Mode512x20, nil
	case "1024x10":
		return Mode1024x10, nil
	case "1024x20":
		return Mode1024x20, nil
	case "2048x10":
		return Mode2048x10, nil
	default:
		return 0, fmt.Errorf("ouster/config: unrecognized lidar mode %q", s)
	}
}
