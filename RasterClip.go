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

// ==================== 裁剪地理变换 ====================

// ClipTransform 裁剪后的地理变换
// Geotransform of the sub-window starting at the window's top-left pixel.
// The window is not checked against any raster extent.
func ClipTransform(inGT AffineTransform, window PixelWindow) AffineTransform {
	return AffineTransform{
		OriginX:     inGT.OriginX + float64(window.X.Min)*inGT.PixelWidth,
		PixelWidth:  inGT.PixelWidth,
		RowRotation: inGT.RowRotation,
		OriginY:     inGT.OriginY + float64(window.Y.Min)*inGT.PixelHeight,
		ColRotation: inGT.ColRotation,
		PixelHeight: inGT.PixelHeight,
	}
}

// ClipToBoundingBox resolves the pixel window of bbox and the geotransform of that window.
func ClipToBoundingBox(inGT AffineTransform, bbox GeoBoundingBox) (PixelWindow, AffineTransform, error) {
	window, err := ResolvePixelWindow(inGT, bbox)
	if err != nil {
		return PixelWindow{}, AffineTransform{}, err
	}
	return window, ClipTransform(inGT, window), nil
}
