package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bnema/fsearch/internal/domain/autocomplete"
	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/domain/repository"
	"github.com/bnema/fsearch/internal/logging"
)

// SuggestionsUseCase owns the in-memory suggestion list and mirrors every
// mutation to storage under the suggests key.
type SuggestionsUseCase struct {
	store repository.StorageRepository

	mu    sync.Mutex
	list  []entity.Suggestion
	dirty bool
}

// NewSuggestionsUseCase creates a suggestion store over store.
func NewSuggestionsUseCase(store repository.StorageRepository) *SuggestionsUseCase {
	return &SuggestionsUseCase{store: store}
}

// Load replaces the in-memory list with the persisted one. Missing or
// malformed data leaves the store empty; only storage failures are returned.
func (uc *SuggestionsUseCase) Load(ctx context.Context) error {
	log := logging.FromContext(ctx)

	raw, err := uc.store.Get(ctx, entity.SuggestionsStorageKey)
	if err != nil {
		uc.reset(nil)
		return fmt.Errorf("failed to read suggestions: %w", err)
	}

	list, err := entity.DecodeSuggestions(raw)
	if err != nil {
		log.Warn().Err(err).Msg("stored suggestions are malformed, starting empty")
		list = nil
	}

	uc.reset(list)
	log.Debug().Int("count", len(list)).Msg("suggestions loaded")
	return nil
}

// Refresh re-reads storage so writes made by another page are picked up.
func (uc *SuggestionsUseCase) Refresh(ctx context.Context) error {
	return uc.Load(ctx)
}

func (uc *SuggestionsUseCase) reset(list []entity.Suggestion) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.list = list
	uc.dirty = false
}

// Record remembers a submitted query. It reports false when the query
// normalizes to nothing and nothing was stored.
func (uc *SuggestionsUseCase) Record(ctx context.Context, text string) (bool, error) {
	uc.mu.Lock()
	list, ok := autocomplete.Record(uc.list, text)
	if !ok {
		uc.mu.Unlock()
		return false, nil
	}
	uc.list = list
	snapshot := uc.snapshotLocked()
	uc.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("query", entity.NormalizeQuery(text)).Msg("suggestion recorded")
	return true, uc.persist(ctx, snapshot)
}

// FindMatches ranks stored suggestions against text.
func (uc *SuggestionsUseCase) FindMatches(text string) []entity.MatchCandidate {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return autocomplete.FindMatches(uc.list, text)
}

// Remove deletes the suggestion with the id shown in the dropdown. Ids are
// not renumbered until Reindex, so other visible rows stay addressable.
func (uc *SuggestionsUseCase) Remove(ctx context.Context, id int) (bool, error) {
	uc.mu.Lock()
	list, ok := autocomplete.Remove(uc.list, id)
	if !ok {
		uc.mu.Unlock()
		return false, nil
	}
	uc.list = list
	uc.dirty = true
	snapshot := uc.snapshotLocked()
	uc.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("id", id).Msg("suggestion removed")
	return true, uc.persist(ctx, snapshot)
}

// Reindex assigns dense ids after removals. It is a no-op when nothing was
// removed since the last reindex.
func (uc *SuggestionsUseCase) Reindex(ctx context.Context) error {
	uc.mu.Lock()
	if !uc.dirty {
		uc.mu.Unlock()
		return nil
	}
	autocomplete.Reindex(uc.list)
	uc.dirty = false
	snapshot := uc.snapshotLocked()
	uc.mu.Unlock()

	return uc.persist(ctx, snapshot)
}

// Clear forgets every suggestion.
func (uc *SuggestionsUseCase) Clear(ctx context.Context) error {
	uc.reset(nil)
	if err := uc.store.Delete(ctx, entity.SuggestionsStorageKey); err != nil {
		return fmt.Errorf("failed to clear suggestions: %w", err)
	}
	return nil
}

// List returns a copy of the current suggestions in storage order.
func (uc *SuggestionsUseCase) List() []entity.Suggestion {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshotLocked()
}

// Dirty reports whether ids have gaps awaiting a reindex.
func (uc *SuggestionsUseCase) Dirty() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.dirty
}

func (uc *SuggestionsUseCase) snapshotLocked() []entity.Suggestion {
	out := make([]entity.Suggestion, len(uc.list))
	copy(out, uc.list)
	return out
}

func (uc *SuggestionsUseCase) persist(ctx context.Context, list []entity.Suggestion) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	if err := uc.store.Set(ctx, entity.SuggestionsStorageKey, data); err != nil {
		return fmt.Errorf("failed to save suggestions: %w", err)
	}
	return nil
}
