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
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// ==================== 聚合规划 ====================
// aggregation planning

// AggregationMethod 聚合方法
type AggregationMethod int

const (
	AggregateByFactor     AggregationMethod = iota + 1 // cell size times an integer factor
	AggregateToShape                                   // fixed output dimensions, extent held
	AggregateToResolution                              // square cells of a given resolution
)

func (m AggregationMethod) String() string {
	switch m {
	case AggregateByFactor:
		return "factor"
	case AggregateToShape:
		return "size"
	case AggregateToResolution:
		return "resolution"
	default:
		return fmt.Sprintf("AggregationMethod(%d)", int(m))
	}
}

// ParseAggregationMethod parses "factor", "size" or "resolution".
func ParseAggregationMethod(s string) (AggregationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "factor":
		return AggregateByFactor, nil
	case "size", "shape":
		return AggregateToShape, nil
	case "resolution":
		return AggregateToResolution, nil
	}
	return 0, invalidArgument("unknown aggregation method %q", s)
}

// ResolutionPreset 预设分辨率（度）
type ResolutionPreset int

const (
	Preset1k  ResolutionPreset = iota + 1 // 30 arc-seconds
	Preset5k                              // 2.5 arc-minutes
	Preset10k                             // 5 arc-minutes
)

// Resolution canonical cell size of the preset.
func (p ResolutionPreset) Resolution() float64 {
	switch p {
	case Preset1k:
		return 0.008333333333333
	case Preset5k:
		return 0.041666666666667
	case Preset10k:
		return 0.08333333333333
	}
	return 0
}

// CellsPerUnit output cells per transform unit, the exact reciprocal of the resolution.
func (p ResolutionPreset) CellsPerUnit() float64 {
	switch p {
	case Preset1k:
		return 120
	case Preset5k:
		return 24
	case Preset10k:
		return 12
	}
	return 0
}

func (p ResolutionPreset) String() string {
	switch p {
	case Preset1k:
		return "1k"
	case Preset5k:
		return "5k"
	case Preset10k:
		return "10k"
	default:
		return fmt.Sprintf("ResolutionPreset(%d)", int(p))
	}
}

func (p ResolutionPreset) valid() bool {
	return p >= Preset1k && p <= Preset10k
}

// ParseResolutionPreset matches a preset name by case-insensitive prefix, e.g. "1km" is Preset1k.
func ParseResolutionPreset(s string) (ResolutionPreset, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(lower, "1k"):
		return Preset1k, nil
	case strings.HasPrefix(lower, "5k"):
		return Preset5k, nil
	case strings.HasPrefix(lower, "10k"):
		return Preset10k, nil
	}
	return 0, invalidArgument("unknown resolution preset %q", s)
}

// Resolution target resolution: either a number or a named preset.
type Resolution struct {
	value  float64
	preset ResolutionPreset
}

// ResolutionValue numeric target resolution.
func ResolutionValue(v float64) Resolution {
	return Resolution{value: v}
}

// PresetResolution named target resolution.
func PresetResolution(p ResolutionPreset) Resolution {
	return Resolution{preset: p}
}

// ParseResolution accepts a preset name or a positive decimal number.
func ParseResolution(s string) (Resolution, error) {
	if p, err := ParseResolutionPreset(s); err == nil {
		return PresetResolution(p), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Resolution{}, invalidArgument("unknown resolution preset %q", s)
	}
	r := ResolutionValue(v)
	if err := r.validate(); err != nil {
		return Resolution{}, err
	}
	return r, nil
}

// Preset returns the preset, if this resolution is one.
func (r Resolution) Preset() (ResolutionPreset, bool) {
	return r.preset, r.preset != 0
}

// Value output cell size.
func (r Resolution) Value() float64 {
	if r.preset != 0 {
		return r.preset.Resolution()
	}
	return r.value
}

func (r Resolution) String() string {
	if r.preset != 0 {
		return r.preset.String()
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

func (r Resolution) validate() error {
	if r.preset != 0 {
		if !r.preset.valid() {
			return invalidArgument("unknown resolution preset %d", int(r.preset))
		}
		return nil
	}
	if math.IsNaN(r.value) || math.IsInf(r.value, 0) || r.value <= 0 {
		return invalidArgument("target resolution must be positive, got %v", r.value)
	}
	return nil
}

// AggregationSpec 聚合参数
// Selects exactly one aggregation policy and its companion value.
type AggregationSpec struct {
	Method     AggregationMethod
	Factor     int         // AggregateByFactor
	Shape      RasterShape // AggregateToShape
	Resolution Resolution  // AggregateToResolution
}

// AggregateFactor coarsen by an integer factor.
func AggregateFactor(n int) AggregationSpec {
	return AggregationSpec{Method: AggregateByFactor, Factor: n}
}

// AggregateShape resample to fixed output dimensions.
func AggregateShape(shape RasterShape) AggregationSpec {
	return AggregationSpec{Method: AggregateToShape, Shape: shape}
}

// AggregateResolution resample to square cells of the given resolution.
func AggregateResolution(r Resolution) AggregationSpec {
	return AggregationSpec{Method: AggregateToResolution, Resolution: r}
}

// Validate checks the selector and its companion value.
// Companion values belonging to another method are rejected.
func (s AggregationSpec) Validate() error {
	switch s.Method {
	case AggregateByFactor:
		if s.Factor <= 0 {
			return invalidArgument("aggregation factor must be positive, got %d", s.Factor)
		}
	case AggregateToShape:
		if s.Shape.Rows <= 0 || s.Shape.Cols <= 0 {
			return invalidArgument("target shape must have positive dimensions, got (%d, %d)", s.Shape.Rows, s.Shape.Cols)
		}
	case AggregateToResolution:
		if s.Resolution == (Resolution{}) {
			return invalidArgument("target resolution not set")
		}
		if err := s.Resolution.validate(); err != nil {
			return err
		}
	case 0:
		return invalidArgument("aggregation method not set")
	default:
		return invalidArgument("unknown aggregation method %d", int(s.Method))
	}

	if s.Method != AggregateByFactor && s.Factor != 0 {
		return invalidArgument("factor %d given for %s aggregation", s.Factor, s.Method)
	}
	if s.Method != AggregateToShape && s.Shape != (RasterShape{}) {
		return invalidArgument("target shape (%d, %d) given for %s aggregation", s.Shape.Rows, s.Shape.Cols, s.Method)
	}
	if s.Method != AggregateToResolution && s.Resolution != (Resolution{}) {
		return invalidArgument("target resolution %s given for %s aggregation", s.Resolution, s.Method)
	}
	return nil
}

// AggregationResult 聚合结果
// Output geometry of an aggregation plus any diagnostics raised.
type AggregationResult struct {
	Transform   AffineTransform
	Shape       RasterShape
	Diagnostics []Diagnostic
}

// Planner 聚合规划器
// Computes aggregation geometry. Safe for concurrent use.
type Planner struct {
	config *PlannerConfig
	sink   DiagnosticSink
}

var defaultPlanner = &Planner{config: DefaultPlannerConfig(), sink: DiscardDiagnostics}

// NewPlanner creates a planner. nil config means defaults, nil sink discards.
func NewPlanner(config *PlannerConfig, sink DiagnosticSink) (*Planner, error) {
	if config == nil {
		config = DefaultPlannerConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = DiscardDiagnostics
	}
	cfg := *config
	return &Planner{config: &cfg, sink: sink}, nil
}

// PlanAggregation plans with default settings; diagnostics are only on the result.
func PlanAggregation(spec AggregationSpec, inShape RasterShape, inGT AffineTransform) (*AggregationResult, error) {
	return defaultPlanner.Plan(spec, inShape, inGT)
}

// Plan 计算聚合后的地理变换和尺寸
// Computes the output geotransform and shape of aggregating a raster.
// The output origin always equals the input origin.
func (p *Planner) Plan(spec AggregationSpec, inShape RasterShape, inGT AffineTransform) (*AggregationResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := inShape.Validate(); err != nil {
		return nil, err
	}
	if err := inGT.Validate(); err != nil {
		return nil, err
	}

	var (
		result *AggregationResult
		err    error
	)
	switch spec.Method {
	case AggregateByFactor:
		result = planFactor(spec.Factor, inShape, inGT)
	case AggregateToShape:
		result = planShape(spec.Shape, inShape, inGT)
	case AggregateToResolution:
		result, err = p.planResolution(spec.Resolution, inShape, inGT)
	}
	if err != nil {
		return nil, err
	}

	for _, d := range result.Diagnostics {
		p.sink.Report(d)
	}
	return result, nil
}

func planFactor(n int, inShape RasterShape, inGT AffineTransform) *AggregationResult {
	// round up so trailing partial cells are still covered
	result := &AggregationResult{
		Shape: RasterShape{
			Rows: ceilDiv(inShape.Rows, n),
			Cols: ceilDiv(inShape.Cols, n),
		},
		Transform: AffineTransform{
			OriginX:     inGT.OriginX,
			PixelWidth:  inGT.PixelWidth * float64(n),
			OriginY:     inGT.OriginY,
			PixelHeight: inGT.PixelHeight * float64(n),
		},
	}
	if axis := inexactAxis(inShape.Cols%n != 0, inShape.Rows%n != 0); axis != "" {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:        DiagnosticExtentGrown,
			Method:      AggregateByFactor,
			Axis:        axis,
			InputShape:  inShape,
			OutputShape: result.Shape,
			XFactor:     float64(n),
			YFactor:     float64(n),
			CellWidth:   inGT.PixelWidth,
			CellHeight:  inGT.PixelHeight,
			Message: fmt.Sprintf("input size (%d, %d) is not a multiple of factor %d, output extends up to one cell further",
				inShape.Rows, inShape.Cols, n),
		})
	}
	return result
}

func planShape(outShape RasterShape, inShape RasterShape, inGT AffineTransform) *AggregationResult {
	width, height := inGT.Extent(inShape)
	result := &AggregationResult{
		Shape: outShape,
		Transform: AffineTransform{
			OriginX:     inGT.OriginX,
			PixelWidth:  width / float64(outShape.Cols),
			OriginY:     inGT.OriginY,
			PixelHeight: -height / float64(outShape.Rows),
		},
	}
	if inShape.Rows*outShape.Cols != outShape.Rows*inShape.Cols {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:        DiagnosticAspectChanged,
			Method:      AggregateToShape,
			Axis:        "xy",
			InputShape:  inShape,
			OutputShape: outShape,
			XFactor:     float64(inShape.Cols) / float64(outShape.Cols),
			YFactor:     float64(inShape.Rows) / float64(outShape.Rows),
			CellWidth:   inGT.PixelWidth,
			CellHeight:  inGT.PixelHeight,
			Message: fmt.Sprintf("output size (%d, %d) has a different aspect ratio from input (%d, %d), cells will change shape",
				outShape.Rows, outShape.Cols, inShape.Rows, inShape.Cols),
		})
	}
	return result
}

func (p *Planner) planResolution(res Resolution, inShape RasterShape, inGT AffineTransform) (*AggregationResult, error) {
	result := &AggregationResult{}

	if preset, ok := res.Preset(); ok {
		// presets are exact fractions of a unit, so scale the extent instead of dividing by the resolution
		xExtent := float64(inShape.Cols) * inGT.PixelWidth
		yExtent := float64(inShape.Rows) * -inGT.PixelHeight
		result.Shape = RasterShape{
			Rows: int(math.Round(preset.CellsPerUnit() * yExtent)),
			Cols: int(math.Round(preset.CellsPerUnit() * xExtent)),
		}
	} else {
		value := res.Value()
		xFactor := scalar.Round(value/inGT.PixelWidth, p.config.ResolutionDigits)
		yFactor := scalar.Round(-value/inGT.PixelHeight, p.config.ResolutionDigits)
		if xFactor <= 0 || yFactor <= 0 {
			return nil, invalidArgument("target resolution %v is too fine for input cells (%v, %v)",
				value, inGT.PixelWidth, inGT.PixelHeight)
		}
		xExact := float64(inShape.Cols) / xFactor
		yExact := float64(inShape.Rows) / yFactor
		xCeil := math.Ceil(xExact)
		yCeil := math.Ceil(yExact)
		result.Shape = RasterShape{Rows: int(yCeil), Cols: int(xCeil)}
		if axis := inexactAxis(xExact != xCeil, yExact != yCeil); axis != "" {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:        DiagnosticExtentGrown,
				Method:      AggregateToResolution,
				Axis:        axis,
				InputShape:  inShape,
				OutputShape: result.Shape,
				XFactor:     xFactor,
				YFactor:     yFactor,
				CellWidth:   inGT.PixelWidth,
				CellHeight:  inGT.PixelHeight,
				Message: fmt.Sprintf("resolution %v is not a clean multiple of input cells (factors %v, %v), output extends up to one cell further",
					value, xFactor, yFactor),
			})
		}
	}

	if p.config.CheckSquareCells && !inGT.IsSquare() {
		result.Diagnostics = append([]Diagnostic{{
			Kind:        DiagnosticNonSquareInput,
			Method:      AggregateToResolution,
			Axis:        "xy",
			InputShape:  inShape,
			OutputShape: result.Shape,
			CellWidth:   inGT.PixelWidth,
			CellHeight:  inGT.PixelHeight,
			Message: fmt.Sprintf("input cells (%v, %v) are not square, output cells will change shape",
				inGT.PixelWidth, inGT.PixelHeight),
		}}, result.Diagnostics...)
	}

	out := res.Value()
	result.Transform = AffineTransform{
		OriginX:     inGT.OriginX,
		PixelWidth:  out,
		OriginY:     inGT.OriginY,
		PixelHeight: -out,
	}
	return result, nil
}

// inexactAxis names the axes that did not divide cleanly: "x", "y", "xy" or "".
func inexactAxis(x, y bool) string {
	switch {
	case x && y:
		return "xy"
	case x:
		return "x"
	case y:
		return "y"
	}
	return ""
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
