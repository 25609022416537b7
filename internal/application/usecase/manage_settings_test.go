package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/fsearch/internal/application/usecase"
	"github.com/bnema/fsearch/internal/domain/entity"
	repomocks "github.com/bnema/fsearch/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSettingsUseCase_LoadDefaultsWhenMissing(t *testing.T) {
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, entity.SettingsStorageKey).Return(nil, nil)

	got, err := usecase.NewSettingsUseCase(store).Load(testContext())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), got)
}

func TestSettingsUseCase_LoadMergesStoredBlob(t *testing.T) {
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, entity.SettingsStorageKey).
		Return([]byte(`{"self":true,"lang":"ru","touch":"yes"}`), nil)

	got, err := usecase.NewSettingsUseCase(store).Load(testContext())
	require.NoError(t, err)
	assert.True(t, got.OpenInSelf)
	assert.Equal(t, entity.LangRU, got.Lang)
	assert.True(t, got.Touch, "wrong-typed field keeps its default")
}

func TestSettingsUseCase_LoadStorageError(t *testing.T) {
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Get(mock.Anything, entity.SettingsStorageKey).Return(nil, errors.New("boom"))

	got, err := usecase.NewSettingsUseCase(store).Load(testContext())
	require.Error(t, err)
	assert.Equal(t, entity.DefaultSettings(), got)
}

func TestSettingsUseCase_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
		check   func(t *testing.T, s entity.Settings)
	}{
		{
			name:  "bool",
			key:   "self",
			value: "true",
			check: func(t *testing.T, s entity.Settings) { assert.True(t, s.OpenInSelf) },
		},
		{
			name:  "bare string",
			key:   "search_engine",
			value: "duckduck",
			check: func(t *testing.T, s entity.Settings) { assert.Equal(t, "duckduck", s.SearchEngine) },
		},
		{
			name:  "list",
			key:   "exclude_urls",
			value: `["www.Example.com","example.com"]`,
			check: func(t *testing.T, s entity.Settings) { assert.Equal(t, []string{"example.com"}, s.ExcludeURLs) },
		},
		{
			name:  "custom shortcuts",
			key:   "shortcuts",
			value: `["gh:github.com/bnema/","dev:localhost:8080"]`,
			check: func(t *testing.T, s entity.Settings) { assert.Len(t, s.Shortcuts, 2) },
		},
		{name: "shortcut with scheme", key: "shortcuts", value: `["f:https://facebook.com"]`, wantErr: usecase.ErrInvalidSetting},
		{name: "unknown key", key: "theme", value: "dark", wantErr: usecase.ErrUnknownSetting},
		{name: "unknown engine", key: "search_engine", value: "altavista", wantErr: usecase.ErrInvalidSetting},
		{name: "wrong shape", key: "keys", value: `["Control"]`, wantErr: usecase.ErrInvalidSetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			store := repomocks.NewMockStorageRepository(t)
			store.EXPECT().Get(mock.Anything, entity.SettingsStorageKey).Return(nil, nil).Maybe()
			written := capture(store, entity.SettingsStorageKey)

			got, err := usecase.NewSettingsUseCase(store).Set(ctx, tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, *written)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)

			reread, warnings := entity.MergeSettings(entity.DefaultSettings(), *written)
			assert.Empty(t, warnings)
			assert.Equal(t, got, reread)
		})
	}
}

func TestSettingsUseCase_Reset(t *testing.T) {
	store := repomocks.NewMockStorageRepository(t)
	store.EXPECT().Delete(mock.Anything, entity.SettingsStorageKey).Return(nil)

	require.NoError(t, usecase.NewSettingsUseCase(store).Reset(context.Background()))
}
