package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/domain/repository"
	"github.com/bnema/fsearch/internal/domain/validation"
	"github.com/bnema/fsearch/internal/logging"
)

// ErrUnknownSetting is returned by Set for keys outside the settings blob.
var ErrUnknownSetting = errors.New("unknown setting")

// ErrInvalidSetting is returned by Set when the value does not fit the key.
var ErrInvalidSetting = errors.New("invalid setting value")

// SettingKeys lists the keys of the stored settings blob.
var SettingKeys = []string{
	"self", "background", "bg_animation", "touch", "lang",
	"search_engine", "keys", "keys_tabs", "shortcuts", "exclude_urls",
}

// SettingsUseCase reads and writes the user preferences blob.
type SettingsUseCase struct {
	store repository.StorageRepository
}

// NewSettingsUseCase creates a settings use case over store.
func NewSettingsUseCase(store repository.StorageRepository) *SettingsUseCase {
	return &SettingsUseCase{store: store}
}

// Load returns defaults merged with the stored blob. Bad fields are logged
// and skipped.
func (uc *SettingsUseCase) Load(ctx context.Context) (entity.Settings, error) {
	raw, err := uc.store.Get(ctx, entity.SettingsStorageKey)
	if err != nil {
		return entity.DefaultSettings(), fmt.Errorf("failed to read settings: %w", err)
	}
	return Apply(ctx, entity.DefaultSettings(), raw), nil
}

// Apply merges raw onto base and logs any rejected fields.
func Apply(ctx context.Context, base entity.Settings, raw []byte) entity.Settings {
	merged, warnings := entity.MergeSettings(base, raw)
	if len(warnings) > 0 {
		logging.FromContext(ctx).Warn().Strs("warnings", warnings).Msg("ignored invalid settings fields")
	}
	return merged
}

// Save writes s as the settings blob.
func (uc *SettingsUseCase) Save(ctx context.Context, s entity.Settings) error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := uc.store.Set(ctx, entity.SettingsStorageKey, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Set updates one key. value is JSON; anything that does not parse as JSON
// is taken as a plain string.
func (uc *SettingsUseCase) Set(ctx context.Context, key, value string) (entity.Settings, error) {
	if !lo.Contains(SettingKeys, key) {
		return entity.Settings{}, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	current, err := uc.Load(ctx)
	if err != nil {
		return entity.Settings{}, err
	}

	encoded := json.RawMessage(value)
	if !json.Valid(encoded) {
		quoted, err := json.Marshal(value)
		if err != nil {
			return entity.Settings{}, fmt.Errorf("failed to encode value: %w", err)
		}
		encoded = quoted
	}

	patch, err := json.Marshal(map[string]json.RawMessage{key: encoded})
	if err != nil {
		return entity.Settings{}, fmt.Errorf("failed to encode patch: %w", err)
	}

	merged, warnings := entity.MergeSettings(current, patch)
	for _, w := range warnings {
		if strings.HasPrefix(w, key+":") {
			return entity.Settings{}, fmt.Errorf("%w: %s", ErrInvalidSetting, w)
		}
	}
	if key == "shortcuts" {
		for _, sc := range merged.Shortcuts {
			if errs := validation.ValidateCustomShortcut(sc); len(errs) > 0 {
				return entity.Settings{}, fmt.Errorf("%w: %q: %s", ErrInvalidSetting, sc, strings.Join(errs, "; "))
			}
		}
	}

	if err := uc.Save(ctx, merged); err != nil {
		return entity.Settings{}, err
	}
	logging.FromContext(ctx).Info().Str("key", key).Msg("setting updated")
	return merged, nil
}

// Reset drops the stored blob so defaults apply again.
func (uc *SettingsUseCase) Reset(ctx context.Context) error {
	if err := uc.store.Delete(ctx, entity.SettingsStorageKey); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}
