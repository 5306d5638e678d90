// Package layout provides the validated page and spacing parameters consumed by renderers.
package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ErrCorruptSnapshot is returned when a persisted layout snapshot is not a JSON object
var ErrCorruptSnapshot = errors.New("corrupt layout snapshot")

// ErrUnknownField is returned by With for a field name that is not part of Settings
var ErrUnknownField = errors.New("unknown layout field")

// Field names as they appear in persisted snapshots and API payloads
const (
	FieldPageSize         = "pageSize"
	FieldPaddingTopBottom = "paddingTopBottom"
	FieldPaddingLeftRight = "paddingLeftRight"
	FieldGapPoints        = "gapPoints"
	FieldGapSectionToSub  = "gapSectionToSub"
	FieldGapSubsections   = "gapSubsections"
)

// Settings holds the page size and spacing of the printed page.
// Paddings are millimeters, gaps are CSS pixels. Ranges live in the validate tags.
type Settings struct {
	PageSize         PageSize `json:"pageSize" validate:"oneof=A4 LETTER"`
	PaddingTopBottom float64  `json:"paddingTopBottom" validate:"min=0,max=30"`
	PaddingLeftRight float64  `json:"paddingLeftRight" validate:"min=0,max=30"`
	GapPoints        float64  `json:"gapPoints" validate:"min=0,max=20"`
	GapSectionToSub  float64  `json:"gapSectionToSub" validate:"min=0,max=40"`
	GapSubsections   float64  `json:"gapSubsections" validate:"min=0,max=40"`
}

var validate = validator.New()

// Default returns the layout used when nothing has been persisted
func Default() Settings {
	return Settings{
		PageSize:         PageA4,
		PaddingTopBottom: 12,
		PaddingLeftRight: 12,
		GapPoints:        4,
		GapSectionToSub:  10,
		GapSubsections:   14,
	}
}

// Validate reports every field outside its documented range
func (s Settings) Validate() error {
	return validate.Struct(s)
}

// Clamp returns a copy with every out-of-range field pulled back to the nearest bound.
// An unknown page size falls back to A4 and NaN values fall back to their defaults.
func (s Settings) Clamp() Settings {
	out := s
	def := Default()
	for _, name := range numericFields {
		if p := out.field(name); math.IsNaN(*p) {
			*p = *def.field(name)
		}
	}

	err := validate.Struct(out)
	if err == nil {
		return out
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return def
	}

	for _, fe := range fieldErrs {
		if fe.StructField() == "PageSize" {
			out.PageSize = def.PageSize
			continue
		}
		p := out.fieldByStruct(fe.StructField())
		if p == nil {
			continue
		}
		bound, perr := strconv.ParseFloat(fe.Param(), 64)
		if perr != nil {
			*p = *def.fieldByStruct(fe.StructField())
			continue
		}
		*p = bound
	}
	return out
}

// With returns a clamped copy with one numeric field replaced
func (s Settings) With(field string, value float64) (Settings, error) {
	out := s
	p := out.field(field)
	if p == nil {
		return s, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	*p = value
	return out.Clamp(), nil
}

// WithPageSize returns a copy using the given page size; unknown sizes fall back to A4
func (s Settings) WithPageSize(size PageSize) Settings {
	out := s
	out.PageSize = size
	return out.Clamp()
}

// Overlay applies the keys present in a JSON object on top of s and clamps the result.
// Keys with unexpected types are ignored. Data that is not a JSON object leaves s unchanged
// and returns an error wrapping ErrCorruptSnapshot.
func (s Settings) Overlay(data []byte) (Settings, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return s.Clamp(), nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return s.Clamp(), fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	out := s
	for key, value := range raw {
		if key == FieldPageSize {
			var size string
			if json.Unmarshal(value, &size) == nil {
				out.PageSize = PageSize(size)
			}
			continue
		}
		p := out.field(key)
		if p == nil {
			continue
		}
		var n float64
		if json.Unmarshal(value, &n) == nil {
			*p = n
		}
	}
	return out.Clamp(), nil
}

// Merge overlays a persisted snapshot on the defaults.
// Missing keys keep their default rather than becoming zero.
func Merge(snapshot []byte) (Settings, error) {
	return Default().Overlay(snapshot)
}

// Snapshot serializes the settings for persistence
func (s Settings) Snapshot() ([]byte, error) {
	return json.Marshal(s)
}

// Dimensions returns the physical page dimensions of the configured page size
func (s Settings) Dimensions() Dimensions {
	return s.PageSize.Dimensions()
}

var numericFields = []string{
	FieldPaddingTopBottom,
	FieldPaddingLeftRight,
	FieldGapPoints,
	FieldGapSectionToSub,
	FieldGapSubsections,
}

// NumericFields returns the names of the numeric settings
func NumericFields() []string {
	return append([]string{}, numericFields...)
}

func (s *Settings) field(name string) *float64 {
	switch name {
	case FieldPaddingTopBottom:
		return &s.PaddingTopBottom
	case FieldPaddingLeftRight:
		return &s.PaddingLeftRight
	case FieldGapPoints:
		return &s.GapPoints
	case FieldGapSectionToSub:
		return &s.GapSectionToSub
	case FieldGapSubsections:
		return &s.GapSubsections
	}
	return nil
}

func (s *Settings) fieldByStruct(name string) *float64 {
	switch name {
	case "PaddingTopBottom":
		return &s.PaddingTopBottom
	case "PaddingLeftRight":
		return &s.PaddingLeftRight
	case "GapPoints":
		return &s.GapPoints
	case "GapSectionToSub":
		return &s.GapSectionToSub
	case "GapSubsections":
		return &s.GapSubsections
	}
	return nil
}
