package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrCorruptCustomPoints is returned when the persisted custom points do not match their schema
var ErrCorruptCustomPoints = errors.New("corrupt custom points snapshot")

// CustomPoint is a point added in the editor, persisted with the section it belongs to
type CustomPoint struct {
	SectionID string   `json:"section_id"`
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
}

// Point returns the catalog point of cp
func (cp CustomPoint) Point() types.Point {
	tags := append([]string{}, cp.Tags...)
	return types.Point{ID: cp.ID, Text: cp.Text, Tags: tags}
}

func (cp CustomPoint) clone() CustomPoint {
	cp.Tags = append([]string{}, cp.Tags...)
	return cp
}

// DecodeCustomPoints validates a snapshot against the custom points schema and decodes it
func DecodeCustomPoints(data []byte) ([]CustomPoint, error) {
	if err := schemas.ValidateCustomPoints(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCustomPoints, err)
	}
	var points []CustomPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCustomPoints, err)
	}
	return points, nil
}

// The persist helpers run after the in-memory change with mu held. A failed write is
// logged and the change stays in effect.

func (e *Editor) persistSelection(ctx context.Context) {
	data, err := e.sel.Snapshot()
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to encode selection")
		return
	}
	e.write(ctx, storage.KeySelectedPoints, data)
}

func (e *Editor) persistLayout(ctx context.Context) {
	data, err := e.layout.Snapshot()
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to encode layout")
		return
	}
	e.write(ctx, storage.KeyLayoutSettings, data)
}

func (e *Editor) persistCustomPoints(ctx context.Context) {
	points := e.custom
	if points == nil {
		points = []CustomPoint{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to encode custom points")
		return
	}
	e.write(ctx, storage.KeyCustomPoints, data)
}

func (e *Editor) write(ctx context.Context, key string, data []byte) {
	if err := e.store.Set(ctx, key, data); err != nil {
		e.logger.Warn().Err(err).Str("key", key).Msg("failed to persist state")
	}
}
