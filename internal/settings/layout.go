package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Minimum floating panel dimensions.
const (
	MinWidth  = 300
	MinHeight = 200
)

// Position is the top-left corner of the floating panel.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is the floating panel's width and height.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Layout is the persisted floating panel geometry.
type Layout struct {
	Position Position `json:"position"`
	Size     Size     `json:"size"`
}

// DefaultLayout is used when nothing has been saved yet.
var DefaultLayout = Layout{
	Position: Position{X: 20, Y: 20},
	Size:     Size{Width: 400, Height: 500},
}

// PositionKey and SizeKey name the two values stored for storageKey.
func PositionKey(storageKey string) string { return storageKey + "-position" }
func SizeKey(storageKey string) string     { return storageKey + "-size" }

// Clamp enforces the minimum size and non-negative coordinates.
func (l Layout) Clamp() Layout {
	l.Position.X = max(l.Position.X, 0)
	l.Position.Y = max(l.Position.Y, 0)
	l.Size.Width = max(l.Size.Width, MinWidth)
	l.Size.Height = max(l.Size.Height, MinHeight)
	return l
}

// LoadLayout reads the layout saved under storageKey. Missing or corrupt
// values fall back to DefaultLayout piecewise.
func LoadLayout(ctx context.Context, s Store, storageKey string) (Layout, error) {
	l := DefaultLayout
	if err := loadJSON(ctx, s, PositionKey(storageKey), &l.Position); err != nil {
		return DefaultLayout, err
	}
	if err := loadJSON(ctx, s, SizeKey(storageKey), &l.Size); err != nil {
		return DefaultLayout, err
	}
	return l.Clamp(), nil
}

// SaveLayout clamps l and writes it under storageKey.
func SaveLayout(ctx context.Context, s Store, storageKey string, l Layout) (Layout, error) {
	l = l.Clamp()
	pos, err := json.Marshal(l.Position)
	if err != nil {
		return l, err
	}
	size, err := json.Marshal(l.Size)
	if err != nil {
		return l, err
	}
	if err := s.Put(ctx, PositionKey(storageKey), pos); err != nil {
		return l, fmt.Errorf("failed to save panel position: %w", err)
	}
	if err := s.Put(ctx, SizeKey(storageKey), size); err != nil {
		return l, fmt.Errorf("failed to save panel size: %w", err)
	}
	return l, nil
}

func loadJSON[T any](ctx context.Context, s Store, key string, dst *T) error {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var v T
	if json.Unmarshal(raw, &v) == nil {
		*dst = v
	}
	return nil
}
