package config

import (
	"net/netip"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// ConfigParamsRaw is the as-ingested form of the device's operational
// parameters, before the cross-field validation ConfigParams enforces.
type ConfigParamsRaw struct {
	AzimuthWindow    AzimuthWindow
	LidarMode        LidarMode
	UDPDest          netip.Addr
	UDPPortLidar     uint16
	UDPProfileLidar  profile.Kind
	SignalMultiplier SignalMultiplier
}

// ConfigParams is a validated ConfigParamsRaw: the azimuth window is
// guaranteed to fit within what the signal multiplier setting allows.
type ConfigParams struct {
	raw ConfigParamsRaw
}

// NewConfigParams validates raw and returns a ConfigParams, or
// InvalidConfig if the azimuth window exceeds what the signal multiplier
// permits.
func NewConfigParams(raw ConfigParamsRaw) (ConfigParams, error) {
	allowedDeg := raw.SignalMultiplier.MaximumSupportedAzimuthAngleDeg()
	givenMilliDeg := raw.AzimuthWindow.MilliAngleDeg()
	if allowedDeg*1000 < givenMilliDeg {
		return ConfigParams{}, invalidf(
			"azimuth-angle is too big for signal_multiplier(%v): allowed(%d deg) < window(%d millideg)",
			raw.SignalMultiplier, allowedDeg, givenMilliDeg,
		)
	}
	return ConfigParams{raw: raw}, nil
}

func (c ConfigParams) AzimuthWindow() AzimuthWindow       { return c.raw.AzimuthWindow }
func (c ConfigParams) LidarMode() LidarMode               { return c.raw.LidarMode }
func (c ConfigParams) UDPDest() netip.Addr                { return c.raw.UDPDest }
func (c ConfigParams) UDPPortLidar() uint16               { return c.raw.UDPPortLidar }
func (c ConfigParams) UDPProfileLidar() profile.Kind      { return c.raw.UDPProfileLidar }
func (c ConfigParams) SignalMultiplier() SignalMultiplier { return c.raw.SignalMultiplier }
