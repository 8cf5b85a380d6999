/*
Copyright (C) 2025 [GrainArc]

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package GeoTransform

import (
	"encoding/xml"
	"fmt"
	"io"
)

// PlannerConfig 聚合规划配置
type PlannerConfig struct {
	XMLName          xml.Name `xml:"planner"`
	ResolutionDigits int      `xml:"resolutionDigits"` // decimal digits kept when deriving a factor from a resolution
	CheckSquareCells bool     `xml:"checkSquareCells"` // report non-square input cells in resolution mode
}

// DefaultPlannerConfig 默认配置
func DefaultPlannerConfig() *PlannerConfig {
	return &PlannerConfig{
		ResolutionDigits: 8,
		CheckSquareCells: true,
	}
}

// LoadPlannerConfig decodes an XML <planner> document on top of the defaults.
func LoadPlannerConfig(r io.Reader) (*PlannerConfig, error) {
	cfg := DefaultPlannerConfig()
	if err := xml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode planner config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config values.
func (c *PlannerConfig) Validate() error {
	if c.ResolutionDigits < 0 || c.ResolutionDigits > 15 {
		return invalidArgument("resolutionDigits must be within 0..15, got %d", c.ResolutionDigits)
	}
	return nil
}
