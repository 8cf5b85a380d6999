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
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ==================== geotransform data model ====================

// AffineTransform 仿射地理变换
// Axis-aligned raster geotransform in GDAL order.
// PixelHeight is negative for north-up rasters.
type AffineTransform struct {
	OriginX     float64 // top-left X
	PixelWidth  float64 // pixel width
	RowRotation float64 // rotation, must be 0
	OriginY     float64 // top-left Y
	ColRotation float64 // rotation, must be 0
	PixelHeight float64 // pixel height, negative
}

// RasterShape 栅格尺寸（行, 列）
type RasterShape struct {
	Rows int
	Cols int
}

// IndexRange integer pixel bounds along one axis.
type IndexRange struct {
	Min int
	Max int
}

// PixelWindow 像素窗口
// Y.Min is the northern edge.
type PixelWindow struct {
	X IndexRange
	Y IndexRange
}

// GeoBoundingBox 地理范围
// Box in transform units.
// Latitude is given north first, matching raster row order.
type GeoBoundingBox struct {
	West  float64
	East  float64
	North float64
	South float64
}

// NewAffineTransform 从GDAL地理变换数组创建
// Builds a transform from a GDAL geotransform array and checks it.
func NewAffineTransform(gt [6]float64) (AffineTransform, error) {
	t := AffineTransform{
		OriginX:     gt[0],
		PixelWidth:  gt[1],
		RowRotation: gt[2],
		OriginY:     gt[3],
		ColRotation: gt[4],
		PixelHeight: gt[5],
	}
	if err := t.Validate(); err != nil {
		return AffineTransform{}, err
	}
	return t, nil
}

// GDAL returns the transform as a GDAL geotransform array.
func (t AffineTransform) GDAL() [6]float64 {
	return [6]float64{t.OriginX, t.PixelWidth, t.RowRotation, t.OriginY, t.ColRotation, t.PixelHeight}
}

// Validate checks that the transform is axis-aligned and north-up.
func (t AffineTransform) Validate() error {
	for i, v := range t.GDAL() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidArgument("geotransform[%d] is not finite: %v", i, v)
		}
	}
	if t.RowRotation != 0 || t.ColRotation != 0 {
		return invalidArgument("rotated geotransform not supported (rotation %v, %v)", t.RowRotation, t.ColRotation)
	}
	if t.PixelWidth <= 0 {
		return invalidArgument("pixel width must be positive, got %v", t.PixelWidth)
	}
	if t.PixelHeight >= 0 {
		return invalidArgument("pixel height must be negative, got %v", t.PixelHeight)
	}
	return nil
}

// IsSquare reports whether cells have equal width and height.
func (t AffineTransform) IsSquare() bool {
	return math.Abs(t.PixelWidth) == math.Abs(t.PixelHeight)
}

// Extent 地面范围
// Ground width and height covered by a raster of the given shape.
func (t AffineTransform) Extent(shape RasterShape) (width, height float64) {
	minX, minY, maxX, maxY := t.bounds(shape)
	return maxX - minX, maxY - minY
}

// Bound ground extent as an orb.Bound.
func (t AffineTransform) Bound(shape RasterShape) orb.Bound {
	minX, minY, maxX, maxY := t.bounds(shape)
	return orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
}

func (t AffineTransform) bounds(shape RasterShape) (minX, minY, maxX, maxY float64) {
	minX = t.OriginX
	maxY = t.OriginY
	maxX = minX + float64(shape.Cols)*t.PixelWidth
	minY = maxY + float64(shape.Rows)*t.PixelHeight
	return
}

// Footprint 栅格范围的GeoJSON面要素
func (t AffineTransform) Footprint(shape RasterShape) *geojson.Feature {
	f := geojson.NewFeature(t.Bound(shape).ToPolygon())
	f.Properties["geotransform"] = t.GDAL()
	f.Properties["rows"] = shape.Rows
	f.Properties["cols"] = shape.Cols
	return f
}

func (t AffineTransform) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v, %v, %v)",
		t.OriginX, t.PixelWidth, t.RowRotation, t.OriginY, t.ColRotation, t.PixelHeight)
}

// Validate checks both dimensions are positive.
func (s RasterShape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return invalidArgument("raster shape must have positive dimensions, got (%d, %d)", s.Rows, s.Cols)
	}
	return nil
}

// Shape window size as a raster shape.
func (w PixelWindow) Shape() RasterShape {
	return RasterShape{Rows: w.Y.Max - w.Y.Min, Cols: w.X.Max - w.X.Min}
}

// Validate east of west, north of south.
func (b GeoBoundingBox) Validate() error {
	for _, v := range [4]float64{b.West, b.East, b.North, b.South} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidArgument("bounding box is not finite: %+v", b)
		}
	}
	if !(b.East > b.West) {
		return invalidArgument("longitude max %v must exceed min %v", b.East, b.West)
	}
	if !(b.North > b.South) {
		return invalidArgument("latitude north %v must exceed south %v", b.North, b.South)
	}
	return nil
}

// Bound bounding box as an orb.Bound.
func (b GeoBoundingBox) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.West, b.South}, Max: orb.Point{b.East, b.North}}
}

// BoundingBoxFromBound converts an orb.Bound.
func BoundingBoxFromBound(b orb.Bound) GeoBoundingBox {
	return GeoBoundingBox{
		West:  b.Min.X(),
		East:  b.Max.X(),
		North: b.Max.Y(),
		South: b.Min.Y(),
	}
}
