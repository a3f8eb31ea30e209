package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-wizard/internal/db"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "panel-size", []byte(`{"width":400}`)))
	v, err := s.Get(ctx, "panel-size")
	require.NoError(t, err)
	assert.JSONEq(t, `{"width":400}`, string(v))

	require.NoError(t, s.Put(ctx, "panel-size", []byte(`{"width":500}`)))
	v, err = s.Get(ctx, "panel-size")
	require.NoError(t, err)
	assert.JSONEq(t, `{"width":500}`, string(v))

	require.NoError(t, s.Delete(ctx, "panel-size"))
	_, err = s.Get(ctx, "panel-size")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestSQLite_InMemory(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestPostgres_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	ctx := context.Background()
	d, err := db.Connect(ctx, url)
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.Migrate(ctx))
	exerciseStore(t, NewPostgres(d))
}

func TestLayout_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   Layout
		want Layout
	}{
		{
			name: "already valid",
			in:   Layout{Position: Position{X: 10, Y: 30}, Size: Size{Width: 640, Height: 480}},
			want: Layout{Position: Position{X: 10, Y: 30}, Size: Size{Width: 640, Height: 480}},
		},
		{
			name: "too small",
			in:   Layout{Size: Size{Width: 100, Height: 50}},
			want: Layout{Size: Size{Width: MinWidth, Height: MinHeight}},
		},
		{
			name: "negative position",
			in:   Layout{Position: Position{X: -5, Y: -1}, Size: Size{Width: 300, Height: 200}},
			want: Layout{Size: Size{Width: 300, Height: 200}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestLayout_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	l, err := LoadLayout(ctx, s, "resume-panel")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout, l)

	saved, err := SaveLayout(ctx, s, "resume-panel", Layout{Position: Position{X: -10, Y: 40}, Size: Size{Width: 250, Height: 600}})
	require.NoError(t, err)
	assert.Equal(t, Layout{Position: Position{X: 0, Y: 40}, Size: Size{Width: 300, Height: 600}}, saved)

	raw, err := s.Get(ctx, "resume-panel-position")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":0,"y":40}`, string(raw))
	_, err = s.Get(ctx, "resume-panel-size")
	require.NoError(t, err)

	l, err = LoadLayout(ctx, s, "resume-panel")
	require.NoError(t, err)
	assert.Equal(t, saved, l)
}

func TestLayout_CorruptValueFallsBack(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Put(ctx, SizeKey("p"), []byte("not json")))
	require.NoError(t, s.Put(ctx, PositionKey("p"), []byte(`{"x":5,"y":6}`)))

	l, err := LoadLayout(ctx, s, "p")
	require.NoError(t, err)
	assert.Equal(t, Position{X: 5, Y: 6}, l.Position)
	assert.Equal(t, DefaultLayout.Size, l.Size)
}
