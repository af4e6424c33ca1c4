// Package ousterconfigio decodes the Ouster sensor's JSON configuration
// document into a validated config.Validated, at the boundary between the
// CLI entry points (ouster-ingest, ouster-pcap) and the config package,
// which deliberately never imports encoding/json itself.
package ousterconfigio

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"os"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/config"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

// jsonOusterConfig mirrors the device's own configuration document
// (beam_intrinsics.json / config_params / lidar_data_format, as returned by
// the sensor's GET /api/v1/sensor/config endpoint), decoded at this CLI
// boundary before being narrowed into config.OusterConfig. The config
// package deliberately never imports encoding/json itself (see its doc
// comments), so that conversion — including the small handful of fields
// the device encodes as strings rather than plain numbers — lives here.
type jsonOusterConfig struct {
	BeamIntrinsics struct {
		BeamAltitudeAngles        []float32   `json:"beam_altitude_angles"`
		BeamAzimuthAngles         []float32   `json:"beam_azimuth_angles"`
		LidarOriginToBeamOriginMM float32     `json:"lidar_origin_to_beam_origin_mm"`
		BeamToLidarTransform      [16]float32 `json:"beam_to_lidar_transform"`
	} `json:"beam_intrinsics"`
	ConfigParams struct {
		AzimuthWindow    [2]uint32 `json:"azimuth_window"`
		LidarMode        string    `json:"lidar_mode"`
		UDPDest          string    `json:"udp_dest"`
		UDPPortLidar     uint16    `json:"udp_port_lidar"`
		UDPProfileLidar  string    `json:"udp_profile_lidar"`
		SignalMultiplier float32   `json:"signal_multiplier"`
	} `json:"config_params"`
	LidarDataFormat struct {
		ColumnsPerPacket uint8     `json:"columns_per_packet"`
		PixelsPerColumn  uint8     `json:"pixels_per_column"`
		ColumnsPerFrame  uint16    `json:"columns_per_frame"`
		PixelShiftByRow  []int8    `json:"pixel_shift_by_row"`
		ColumnWindow     [2]uint16 `json:"column_window"`
		UDPProfileLidar  string    `json:"udp_profile_lidar"`
	} `json:"lidar_data_format"`
}

// Load reads the device's JSON configuration document from path, resolves
// its wire profile, and returns the validated configuration alongside that
// profile.
func Load(path string) (config.Validated, profile.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Validated{}, profile.Profile{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonOusterConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return config.Validated{}, profile.Profile{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	kind, err := profile.ParseString(jc.ConfigParams.UDPProfileLidar)
	if err != nil {
		return config.Validated{}, profile.Profile{}, &config.InvalidConfig{Reason: err.Error()}
	}
	p := profile.Profile{Kind: kind, Columns: int(jc.LidarDataFormat.ColumnsPerPacket), Layers: int(jc.LidarDataFormat.PixelsPerColumn)}

	mode, err := config.ParseLidarMode(jc.ConfigParams.LidarMode)
	if err != nil {
		return config.Validated{}, profile.Profile{}, err
	}
	mult, err := config.ParseSignalMultiplier(jc.ConfigParams.SignalMultiplier)
	if err != nil {
		return config.Validated{}, profile.Profile{}, err
	}
	azWindow, err := config.NewAzimuthWindow(jc.ConfigParams.AzimuthWindow[0], jc.ConfigParams.AzimuthWindow[1])
	if err != nil {
		return config.Validated{}, profile.Profile{}, err
	}
	udpDest, err := netip.ParseAddr(jc.ConfigParams.UDPDest)
	if err != nil {
		return config.Validated{}, profile.Profile{}, fmt.Errorf("parse udp_dest %q: %w", jc.ConfigParams.UDPDest, err)
	}
	cfgParams, err := config.NewConfigParams(config.ConfigParamsRaw{
		AzimuthWindow:    azWindow,
		LidarMode:        mode,
		UDPDest:          udpDest,
		UDPPortLidar:     jc.ConfigParams.UDPPortLidar,
		UDPProfileLidar:  kind,
		SignalMultiplier: mult,
	})
	if err != nil {
		return config.Validated{}, profile.Profile{}, err
	}

	raw := config.OusterConfig{
		BeamIntrinsics: config.BeamIntrinsics{
			BeamAltitudeAngles:        jc.BeamIntrinsics.BeamAltitudeAngles,
			BeamAzimuthAngles:         jc.BeamIntrinsics.BeamAzimuthAngles,
			LidarOriginToBeamOriginMM: jc.BeamIntrinsics.LidarOriginToBeamOriginMM,
			BeamToLidarTransform:      jc.BeamIntrinsics.BeamToLidarTransform,
		},
		ConfigParams: cfgParams,
		LidarDataFormat: config.LidarDataFormat{
			ColumnsPerPacket: jc.LidarDataFormat.ColumnsPerPacket,
			PixelsPerColumn:  jc.LidarDataFormat.PixelsPerColumn,
			ColumnsPerFrame:  jc.LidarDataFormat.ColumnsPerFrame,
			PixelShiftByRow:  jc.LidarDataFormat.PixelShiftByRow,
			ColumnWindowFrom: jc.LidarDataFormat.ColumnWindow[0],
			ColumnWindowTo:   jc.LidarDataFormat.ColumnWindow[1],
			UDPProfileLidar:  kind,
		},
	}

	valid, err := raw.Validate(p)
	if err != nil {
		return config.Validated{}, profile.Profile{}, err
	}
	return valid, p, nil
}
