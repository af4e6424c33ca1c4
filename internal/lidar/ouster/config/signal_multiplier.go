package config

import "fmt"

// SignalMultiplier is a sensor setting that trades azimuth coverage for
// optical signal strength: running above 1x restricts the maximum usable
// azimuth window.
type SignalMultiplier int

const (
	SignalQuarter SignalMultiplier = iota
	SignalHalf
	SignalOne
	SignalTwo
	SignalThree
)

// MaximumSupportedAzimuthAngleDeg is the widest azimuth window this
// multiplier setting permits.
func (m SignalMultiplier) MaximumSupportedAzimuthAngleDeg() uint32 {
	switch m {
	case SignalQuarter, SignalHalf, SignalOne:
		return 360
	case SignalTwo:
		return 180
	case SignalThree:
		return 120
	default:
		panic(fmt.Sprintf("ouster/config: unknown signal multiplier %d", int(m)))
	}
}

func (m SignalMultiplier) Float() float32 {
	switch m {
	case SignalQuarter:
		return 0.25
	case SignalHalf:
		return 0.5
	case SignalOne:
		return 1
	case SignalTwo:
		return 2
	case SignalThree:
		return 3
	default:
		panic(fmt.Sprintf("ouster/config: unknown signal multiplier %d", int(m)))
	}
}

// ParseSignalMultiplier maps the device's JSON numeric signal_multiplier
// value to a SignalMultiplier.
func ParseSignalMultiplier(v float32) (SignalMultiplier, error) {
	switch v {
	case 0.25:
		return SignalQuarter, nil
	case 0.5:
		return SignalHalf, nil
	case 1:
		return SignalOne, nil
	case 2:
		return SignalTwo, nil
	case 3:
		return SignalThree, nil
	default:
		return 0, fmt.Errorf("ouster/config: invalid signal multiplier: %v", v)
	}
}
