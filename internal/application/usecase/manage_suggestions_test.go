package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bnema/fsearch/internal/application/usecase"
	"github.com/bnema/fsearch/internal/domain/entity"
	repomocks "github.com/bnema/fsearch/internal/domain/repository/mocks"
	"github.com/bnema/fsearch/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// capture records the last value written under key.
func capture(store *repomocks.MockStorageRepository, key string) *[]byte {
	var last []byte
	store.EXPECT().Set(mock.Anything, key, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, value []byte) error {
			last = append([]byte(nil), value...)
			return nil
		}).Maybe()
	return &last
}

func decode(t *testing.T, raw []byte) []entity.Suggestion {
	t.Helper()
	var list []entity.Suggestion
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func TestSuggestionsUseCase_Load_MalformedIsEmpty(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, entity.SuggestionsStorageKey).Return([]byte(`{"not":"a list"}`), nil)

	uc := usecase.NewSuggestionsUseCase(store)
	require.NoError(t, uc.Load(ctx))
	assert.Empty(t, uc.List())
}

func TestSuggestionsUseCase_Load_StorageError(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, entity.SuggestionsStorageKey).Return(nil, errors.New("disk gone"))

	uc := usecase.NewSuggestionsUseCase(store)
	err := uc.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.Empty(t, uc.List())
}

func TestSuggestionsUseCase_RecordDedupsAndPersists(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, entity.SuggestionsStorageKey).Return(nil, nil)
	written := capture(store, entity.SuggestionsStorageKey)

	uc := usecase.NewSuggestionsUseCase(store)
	require.NoError(t, uc.Load(ctx))

	ok, err := uc.Record(ctx, "Golang generics")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.Record(ctx, "g:golang GENERICS")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.Record(ctx, "rust")
	require.NoError(t, err)
	assert.True(t, ok)

	stored := decode(t, *written)
	require.Len(t, stored, 2)
	assert.Equal(t, entity.Suggestion{ID: 0, Text: "golang generics", UseCount: 2}, stored[0])
	assert.Equal(t, entity.Suggestion{ID: 1, Text: "rust", UseCount: 1}, stored[1])
	assert.Equal(t, stored, uc.List())
}

func TestSuggestionsUseCase_RecordBlankIsIgnored(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockStorageRepository(t)

	uc := usecase.NewSuggestionsUseCase(store)
	for _, text := range []string{"", "   ", "g:"} {
		ok, err := uc.Record(ctx, text)
		require.NoError(t, err)
		assert.False(t, ok, "text %q", text)
	}
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestSuggestionsUseCase_FindMatchesRanksByUseCount(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, entity.SuggestionsStorageKey).Return([]byte(`[
		{"id":0,"request":"go modules","typeCount":1},
		{"id":1,"request":"golang tour","typeCount":5},
		{"id":2,"request":"python","typeCount":9}
	]`), nil)

	uc := usecase.NewSuggestionsUseCase(store)
	require.NoError(t, uc.Load(ctx))

	matches := uc.FindMatches("go")
	require.Len(t, matches, 2)
	assert.Equal(t, "golang tour", matches[0].Text)
	assert.Equal(t, "go modules", matches[1].Text)
}

func TestSuggestionsUseCase_RemoveThenReindex(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, entity.SuggestionsStorageKey).Return([]byte(`[
		{"id":0,"request":"alpha","typeCount":1},
		{"id":1,"request":"beta","typeCount":1},
		{"id":2,"request":"gamma","typeCount":1}
	]`), nil)
	written := capture(store, entity.SuggestionsStorageKey)

	uc := usecase.NewSuggestionsUseCase(store)
	require.NoError(t, uc.Load(ctx))

	ok, err := uc.Remove(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, uc.Dirty())

	// Visible rows keep their displayed ids until reindex.
	ok, err = uc.Remove(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.Remove(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, uc.Reindex(ctx))
	assert.False(t, uc.Dirty())
	assert.Equal(t, []entity.Suggestion{{ID: 0, Text: "alpha", UseCount: 1}}, decode(t, *written))
}

func TestSuggestionsUseCase_ReindexCleanIsNoop(t *testing.T) {
	store := repomocks.NewMockStorageRepository(t)
	uc := usecase.NewSuggestionsUseCase(store)

	require.NoError(t, uc.Reindex(testContext()))
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestSuggestionsUseCase_PersistErrorIsReturned(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Set(mock.Anything, entity.SuggestionsStorageKey, mock.Anything).Return(errors.New("locked"))

	uc := usecase.NewSuggestionsUseCase(store)
	ok, err := uc.Record(ctx, "query")
	assert.True(t, ok, "in-memory state still updates")
	require.Error(t, err)
	assert.Len(t, uc.List(), 1)
}

func TestSuggestionsUseCase_Clear(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockStorageRepository(t)
	capture(store, entity.SuggestionsStorageKey)
	store.EXPECT().Delete(mock.Anything, entity.SuggestionsStorageKey).Return(nil)

	uc := usecase.NewSuggestionsUseCase(store)
	_, err := uc.Record(ctx, "query")
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx))
	assert.Empty(t, uc.List())
}
