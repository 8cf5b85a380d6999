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

import "github.com/paulmach/orb"

// ResolvePixelWindow 地理范围转像素窗口
//
// Min edges truncate toward zero, max edges round half up, so a pixel whose centre lies
// just inside the east or south boundary is included.
func ResolvePixelWindow(inGT AffineTransform, bbox GeoBoundingBox) (PixelWindow, error) {
	if err := bbox.Validate(); err != nil {
		return PixelWindow{}, err
	}
	if err := inGT.Validate(); err != nil {
		return PixelWindow{}, err
	}

	xRes := inGT.PixelWidth
	yRes := -inGT.PixelHeight
	west := inGT.OriginX
	north := inGT.OriginY

	return PixelWindow{
		X: IndexRange{
			Min: int((bbox.West - west) / xRes),
			Max: int((bbox.East-west)/xRes + 0.5),
		},
		Y: IndexRange{
			Min: int((north - bbox.North) / yRes),
			Max: int((north-bbox.South)/yRes + 0.5),
		},
	}, nil
}

// PixelWindowForBound ResolvePixelWindow for an orb.Bound.
func PixelWindowForBound(inGT AffineTransform, bound orb.Bound) (PixelWindow, error) {
	return ResolvePixelWindow(inGT, BoundingBoxFromBound(bound))
}
