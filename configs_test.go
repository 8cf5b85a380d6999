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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlannerConfig(t *testing.T) {
	cfg, err := LoadPlannerConfig(strings.NewReader(`<planner>
  <resolutionDigits>4</resolutionDigits>
  <checkSquareCells>false</checkSquareCells>
</planner>`))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ResolutionDigits)
	assert.False(t, cfg.CheckSquareCells)
}

func TestLoadPlannerConfigKeepsDefaults(t *testing.T) {
	cfg, err := LoadPlannerConfig(strings.NewReader(`<planner><resolutionDigits>6</resolutionDigits></planner>`))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.ResolutionDigits)
	assert.True(t, cfg.CheckSquareCells)
}

func TestLoadPlannerConfigInvalid(t *testing.T) {
	_, err := LoadPlannerConfig(strings.NewReader(`<planner><resolutionDigits>20</resolutionDigits></planner>`))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = LoadPlannerConfig(strings.NewReader(`<planner><resolutionDigits>`))
	assert.Error(t, err)
}
