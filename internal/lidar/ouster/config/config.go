package config

import "github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"

// OusterConfig is the full device configuration document, as
// already-deserialized JSON (this package never touches encoding/json
// itself — that lives at the CLI boundary per SPEC_FULL.md's ambient
// stack).
type OusterConfig struct {
	BeamIntrinsics  BeamIntrinsics
	ConfigParams    ConfigParams
	LidarDataFormat LidarDataFormat
}

// Validated is a fully validated OusterConfig: its LidarDataFormat has
// been checked against the wire profile and its ValidWindow precomputed.
// This is what every downstream component (aggregator, geometry) takes —
// never the raw OusterConfig.
type Validated struct {
	BeamIntrinsics  BeamIntrinsics
	ConfigParams    ConfigParams
	LidarDataFormat ValidLidarDataFormat
	Profile         profile.Profile
}

// Validate builds a Validated configuration for the given wire profile.
// Profile is supplied explicitly rather than derived from
// ConfigParams.UDPProfileLidar alone because DualLow (the safety-header
// variant) is never self-reported by the device's profile string — see
// profile.ParseString.
func (c OusterConfig) Validate(p profile.Profile) (Validated, error) {
	ldf, err := c.LidarDataFormat.Validate(p)
	if err != nil {
		return Validated{}, err
	}
	if modeCols := c.ConfigParams.LidarMode().ColumnsPerFrame(); modeCols != c.LidarDataFormat.ColumnsPerFrame {
		return Validated{}, invalidf(
			"lidar_mode %v implies %d columns per frame, but lidar_data_format reports %d",
			c.ConfigParams.LidarMode(), modeCols, c.LidarDataFormat.ColumnsPerFrame,
		)
	}
	return Validated{
		BeamIntrinsics:  c.BeamIntrinsics,
		ConfigParams:    c.ConfigParams,
		LidarDataFormat: ldf,
		Profile:         p,
	}, nil
}

// NVec is the range-correction constant derived from BeamIntrinsics.
func (v Validated) NVec() uint32 { return v.BeamIntrinsics.NVec() }
