package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/fsearch/internal/application/port"
	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/domain/url"
	"github.com/bnema/fsearch/internal/logging"
)

// OpenRequestUseCase turns search-box text into an opened destination.
type OpenRequestUseCase struct {
	opener port.URLOpener
}

// NewOpenRequestUseCase creates a new open request use case.
func NewOpenRequestUseCase(opener port.URLOpener) *OpenRequestUseCase {
	return &OpenRequestUseCase{opener: opener}
}

// OpenInput holds the submitted text and the settings in effect.
type OpenInput struct {
	Text     string
	Settings entity.Settings
}

// OpenOutput reports what was opened. Opened is false for blank input.
type OpenOutput struct {
	Resolution url.Resolution
	Opened     bool
}

// Open resolves input.Text and hands the result to the opener.
func (uc *OpenRequestUseCase) Open(ctx context.Context, input OpenInput) (*OpenOutput, error) {
	log := logging.FromContext(ctx)

	resolver := url.NewResolver(entity.NewEngineCatalog(input.Settings.Lang), input.Settings)
	res, ok := resolver.Resolve(input.Text)
	if !ok {
		log.Debug().Msg("blank search input, nothing to open")
		return &OpenOutput{Resolution: res}, nil
	}

	if err := uc.opener.OpenURL(ctx, res.URL, res.Target == url.TargetSelf); err != nil {
		return &OpenOutput{Resolution: res}, fmt.Errorf("failed to open %s: %w", res.URL, err)
	}

	log.Info().
		Str("rule", res.Rule.String()).
		Str("url", res.URL).
		Str("target", string(res.Target)).
		Msg("search resolved")

	return &OpenOutput{Resolution: res, Opened: true}, nil
}
