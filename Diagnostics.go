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
	"sync"

	"go.uber.org/zap"
)

// DiagnosticKind 诊断类型
// Non-fatal condition raised while planning.
type DiagnosticKind int

const (
	// DiagnosticExtentGrown output grid covers up to one extra cell per axis.
	DiagnosticExtentGrown DiagnosticKind = iota + 1
	// DiagnosticAspectChanged output cells change shape relative to input cells.
	DiagnosticAspectChanged
	// DiagnosticNonSquareInput input cells are not square but output cells will be.
	DiagnosticNonSquareInput
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticExtentGrown:
		return "extent_grown"
	case DiagnosticAspectChanged:
		return "aspect_changed"
	case DiagnosticNonSquareInput:
		return "non_square_input"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic advisory notice. Never changes the numeric result.
type Diagnostic struct {
	Kind        DiagnosticKind
	Method      AggregationMethod
	Axis        string // affected axes: "x", "y" or "xy"
	InputShape  RasterShape
	OutputShape RasterShape
	XFactor     float64 // input cells per output cell along x, 0 if not applicable
	YFactor     float64
	CellWidth   float64 // input pixel width
	CellHeight  float64 // input pixel height
	Message     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// DiagnosticSink 诊断接收器
type DiagnosticSink interface {
	Report(d Diagnostic)
}

// DiagnosticSinkFunc adapts a function to DiagnosticSink.
type DiagnosticSinkFunc func(d Diagnostic)

func (f DiagnosticSinkFunc) Report(d Diagnostic) { f(d) }

// DiscardDiagnostics drops everything.
var DiscardDiagnostics DiagnosticSink = DiagnosticSinkFunc(func(Diagnostic) {})

// DiagnosticCollector accumulates diagnostics in report order.
type DiagnosticCollector struct {
	mu    sync.Mutex
	items []Diagnostic
}

func (c *DiagnosticCollector) Report(d Diagnostic) {
	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of everything collected so far.
func (c *DiagnosticCollector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Has reports whether a diagnostic of the given kind was collected.
func (c *DiagnosticCollector) Has(kind DiagnosticKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.items {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Reset clears the collector.
func (c *DiagnosticCollector) Reset() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

type zapDiagnosticSink struct {
	logger *zap.Logger
}

// NewZapDiagnosticSink logs each diagnostic as a zap warning.
func NewZapDiagnosticSink(logger *zap.Logger) DiagnosticSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapDiagnosticSink{logger: logger}
}

func (s *zapDiagnosticSink) Report(d Diagnostic) {
	fields := []zap.Field{
		zap.Stringer("kind", d.Kind),
		zap.Stringer("method", d.Method),
		zap.String("axis", d.Axis),
		zap.Int("input_rows", d.InputShape.Rows),
		zap.Int("input_cols", d.InputShape.Cols),
		zap.Int("output_rows", d.OutputShape.Rows),
		zap.Int("output_cols", d.OutputShape.Cols),
		zap.Float64("cell_width", d.CellWidth),
		zap.Float64("cell_height", d.CellHeight),
	}
	if d.XFactor != 0 || d.YFactor != 0 {
		fields = append(fields, zap.Float64("x_factor", d.XFactor), zap.Float64("y_factor", d.YFactor))
	}
	s.logger.Warn(d.Message, fields...)
}

type multiDiagnosticSink []DiagnosticSink

// MultiDiagnosticSink fans each diagnostic out to every non-nil sink.
func MultiDiagnosticSink(sinks ...DiagnosticSink) DiagnosticSink {
	out := make(multiDiagnosticSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiDiagnosticSink) Report(d Diagnostic) {
	for _, s := range m {
		s.Report(d)
	}
}
