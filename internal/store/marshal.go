package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/roach88/simgraph/internal/entity"
)

// shapeRow is the stored form of one collision shape.
type shapeRow struct {
	Type        string     `json:"type"`
	HalfExtents [3]float64 `json:"half_extents"`
	Radius      float64    `json:"radius"`
	Height      float64    `json:"height"`
	VertexCount int        `json:"vertex_count"`
}

// marshalVec3 converts a vector to JSON TEXT for storage.
func marshalVec3(v mgl64.Vec3) (string, error) {
	data, err := json.Marshal([3]float64(v))
	if err != nil {
		return "", fmt.Errorf("marshal vector: %w", err)
	}
	return string(data), nil
}

// unmarshalVec3 parses JSON TEXT back into a vector.
func unmarshalVec3(s string) (mgl64.Vec3, error) {
	var v [3]float64
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return mgl64.Vec3{}, fmt.Errorf("unmarshal vector: %w", err)
	}
	return mgl64.Vec3(v), nil
}

// marshalShapes converts collision shapes to JSON TEXT for storage.
func marshalShapes(shapes []entity.Shape) (string, error) {
	rows := make([]shapeRow, 0, len(shapes))
	for _, s := range shapes {
		rows = append(rows, shapeRow{
			Type:        string(s.Type),
			HalfExtents: [3]float64(s.HalfExtents),
			Radius:      s.Radius,
			Height:      s.Height,
			VertexCount: s.VertexCount,
		})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("marshal shapes: %w", err)
	}
	return string(data), nil
}

// unmarshalShapes parses JSON TEXT back into collision shapes.
// An empty list yields nil.
func unmarshalShapes(s string) ([]entity.Shape, error) {
	if s == "" {
		return nil, nil
	}
	var rows []shapeRow
	if err := json.Unmarshal([]byte(s), &rows); err != nil {
		return nil, fmt.Errorf("unmarshal shapes: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	shapes := make([]entity.Shape, 0, len(rows))
	for _, r := range rows {
		shapes = append(shapes, entity.Shape{
			Type:        entity.ShapeType(r.Type),
			HalfExtents: mgl64.Vec3(r.HalfExtents),
			Radius:      r.Radius,
			Height:      r.Height,
			VertexCount: r.VertexCount,
		})
	}
	return shapes, nil
}

// marshalIDs converts an identifier list to JSON TEXT for storage.
func marshalIDs(ids []entity.ID) (string, error) {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}
	data, err := json.Marshal(strs)
	if err != nil {
		return "", fmt.Errorf("marshal ids: %w", err)
	}
	return string(data), nil
}

// unmarshalIDs parses JSON TEXT back into identifiers. An empty list
// yields nil.
func unmarshalIDs(s string) ([]entity.ID, error) {
	if s == "" {
		return nil, nil
	}
	var strs []string
	if err := json.Unmarshal([]byte(s), &strs); err != nil {
		return nil, fmt.Errorf("unmarshal ids: %w", err)
	}
	if len(strs) == 0 {
		return nil, nil
	}
	ids := make([]entity.ID, 0, len(strs))
	for _, str := range strs {
		id, err := entity.ParseID(str)
		if err != nil {
			return nil, fmt.Errorf("unmarshal ids: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// nullID maps entity.Nil to SQL NULL.
func nullID(id entity.ID) any {
	if id == entity.Nil {
		return nil
	}
	return id.String()
}

// scanID parses a nullable identifier column.
func scanID(s sql.NullString) (entity.ID, error) {
	if !s.Valid || s.String == "" {
		return entity.Nil, nil
	}
	return entity.ParseID(s.String)
}
