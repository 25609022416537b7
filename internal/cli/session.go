package cli

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/fsearch/internal/app/messaging"
	"github.com/bnema/fsearch/internal/application/port"
	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/infrastructure/config"
	"github.com/bnema/fsearch/internal/infrastructure/favicon"
	"github.com/bnema/fsearch/internal/logging"
	"github.com/bnema/fsearch/internal/ui/controller"
)

// Session is one running overlay: the controller, its bridge and the
// in-process tab host on the other end of the pipe.
type Session struct {
	Controller *controller.SearchController

	bridge *messaging.Bridge
	cancel context.CancelFunc
	group  *errgroup.Group
}

// StartSession connects a controller to an in-process host. post must
// enqueue work onto the UI loop; the controller is only touched from there.
func (a *App) StartSession(post func(func())) (*Session, error) {
	ctx, cancel := context.WithCancel(logging.WithComponent(a.ctx, "session"))
	log := logging.FromContext(ctx)

	settings, err := a.SettingsUC.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load settings, using defaults")
		settings = entity.DefaultSettings()
	}

	hostConn, ctrlConn := messaging.Pipe()
	host := messaging.NewHost(hostConn, a.Tabs, a.Storage)

	var ctrl *controller.SearchController
	bridge := messaging.NewBridge(ctrlConn, post,
		messaging.WithTimeout(time.Duration(a.Config.UI.RequestTimeoutMs)*time.Millisecond),
		messaging.WithNotificationHandler(func(resp messaging.Response) {
			if ctrl != nil {
				ctrl.HandleNotification(resp)
			}
		}),
	)

	var favicons port.FaviconLoader
	if a.FaviconService != nil {
		favicons = a.FaviconService
	}

	ctrl, err = controller.New(ctx, controller.Config{
		Hostname:        a.Config.Page.Hostname,
		Settings:        settings,
		Channel:         bridge,
		Suggestions:     a.SuggestionsUC,
		Opener:          a.OpenUC,
		Favicons:        favicons,
		Swatch:          favicon.Swatch,
		Post:            post,
		ViewportRows:    a.Config.UI.ViewportRows,
		TouchFocusDelay: time.Duration(a.Config.UI.TouchFocusDelayMs) * time.Millisecond,
	})
	if err != nil {
		cancel()
		_ = bridge.Close()
		_ = hostConn.Close()
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return host.Serve(gctx) })
	g.Go(func() error { return bridge.Run(gctx) })

	if err := a.WatchConfig(func(cfg *config.Config) {
		rows := cfg.UI.ViewportRows
		post(func() { ctrl.Panel().SetViewportRows(rows) })
	}); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	log.Info().Str("hostname", a.Config.Page.Hostname).Msg("session started")
	return &Session{Controller: ctrl, bridge: bridge, cancel: cancel, group: g}, nil
}

// Close stops the bridge and the host and waits for both.
func (s *Session) Close() error {
	_ = s.bridge.Close()
	s.cancel()
	err := s.group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
