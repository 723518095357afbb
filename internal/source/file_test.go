// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashklab/uworld-finder/pkg/types"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	records := []types.Record{
		{ID: 1, Tags: []string{"#AK_Step1_v12::#UWorld::Step::4821"}},
		{ID: 2, Tags: []string{"#AK_Step3_v1::#UWorld::5501", "leech"}},
		{ID: 3},
	}
	require.NoError(t, WriteRecordFile(path, records))

	t.Run("all records", func(t *testing.T) {
		got, err := NewFileSource(path, Selection{}).Records(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, records[1].Tags, got[1].Tags)
	})

	t.Run("selected IDs", func(t *testing.T) {
		got, err := NewFileSource(path, Selection{NoteIDs: []int64{3, 1}}).Records(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, recordIDs(got))
	})

	t.Run("nothing selected", func(t *testing.T) {
		_, err := NewFileSource(path, Selection{NoteIDs: []int64{42}}).Records(context.Background())
		assert.ErrorIs(t, err, ErrNoSelection)
	})
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileSource(filepath.Join(dir, "missing.yaml"), Selection{}).Records(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading record file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("records: [{id: x"), 0o644))
	_, err = NewFileSource(bad, Selection{}).Records(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing record file")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("records: []\n"), 0o644))
	_, err = NewFileSource(empty, Selection{}).Records(context.Background())
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSelectionIsEmpty(t *testing.T) {
	assert.True(t, Selection{}.IsEmpty())
	assert.False(t, Selection{NoteIDs: []int64{1}}.IsEmpty())
	assert.False(t, Selection{CardIDs: []int64{1}}.IsEmpty())
}
