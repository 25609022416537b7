package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/fsearch/internal/application/port"
	"github.com/bnema/fsearch/internal/domain/entity"
	"github.com/bnema/fsearch/internal/domain/repository"
	"github.com/bnema/fsearch/internal/logging"
)

const notifyBuffer = 16

// Host is the background side of the channel: it answers tab and storage
// queries and pushes change_tab when the active tab changes.
type Host struct {
	conn  Conn
	tabs  port.TabBrowser
	store repository.StorageRepository

	sendMu sync.Mutex
}

// NewHost creates a host serving tabs and store over conn.
func NewHost(conn Conn, tabs port.TabBrowser, store repository.StorageRepository) *Host {
	return &Host{conn: conn, tabs: tabs, store: store}
}

// Serve handles requests until ctx ends or the peer disconnects.
func (h *Host) Serve(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "host")
	log := logging.FromContext(ctx)

	g, gctx := errgroup.WithContext(ctx)

	activated := make(chan entity.TabID, notifyBuffer)
	unsubscribe := h.tabs.OnActivated(func(id entity.TabID) {
		select {
		case activated <- id:
		default:
			log.Warn().Int("tab_id", int(id)).Msg("dropping change_tab notification, queue full")
		}
	})
	defer unsubscribe()

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case id := <-activated:
				data, _ := json.Marshal(id)
				if err := h.send(gctx, Response{ID: NotificationID, Action: ActionChangeTab, Data: data}); err != nil {
					return err
				}
			}
		}
	})

	g.Go(func() error {
		// Unblock Recv on stream transports once the group is done.
		<-gctx.Done()
		return h.conn.Close()
	})

	g.Go(func() error {
		defer h.conn.Close()
		for {
			raw, err := h.conn.Recv(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
					log.Debug().Msg("controller disconnected")
					return errPeerGone
				}
				return fmt.Errorf("host receive: %w", err)
			}

			var req Request
			if err := json.Unmarshal(raw, &req); err != nil {
				log.Warn().Err(err).Msg("dropping malformed request")
				continue
			}

			resp := h.Handle(logging.WithRequestID(gctx, req.ID), req)
			if err := h.send(gctx, resp); err != nil {
				return err
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, errPeerGone) || errors.Is(err, ErrConnClosed) {
		return nil
	}
	return err
}

var errPeerGone = errors.New("peer gone")

// Handle answers a single request.
func (h *Host) Handle(ctx context.Context, req Request) Response {
	log := logging.FromContext(ctx)
	log.Debug().Str("query", string(req.Query)).Msg("host request")

	resp, err := h.handle(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("query", string(req.Query)).Msg("host request failed")
		return Response{ID: req.ID, Action: ActionError, Error: err.Error()}
	}
	resp.ID = req.ID
	return resp
}

func (h *Host) handle(ctx context.Context, req Request) (Response, error) {
	switch req.Query {
	case QueryTabs:
		tabs, err := h.tabs.List(ctx)
		if err != nil {
			return Response{}, err
		}
		if tabs == nil {
			tabs = []entity.Tab{}
		}
		data, err := json.Marshal(tabs)
		if err != nil {
			return Response{}, err
		}
		return Response{Action: ActionTabs, Data: data}, nil

	case QueryUpdate:
		id, err := req.TabID()
		if err != nil {
			return Response{}, err
		}
		if err := h.tabs.Activate(ctx, id); err != nil {
			return Response{}, err
		}
		logging.FromContext(logging.WithTabID(ctx, int(id))).Debug().Msg("tab activated")
		return Response{Action: ActionUpdate, Data: req.Data}, nil

	case QueryRemove:
		id, err := req.TabID()
		if err != nil {
			return Response{}, err
		}
		if err := h.tabs.Remove(ctx, id); err != nil {
			return Response{}, err
		}
		logging.FromContext(logging.WithTabID(ctx, int(id))).Debug().Msg("tab removed")
		return Response{Action: ActionTabRemoved, Data: req.Data}, nil

	case QueryStorage:
		if req.Key == "" {
			return Response{}, fmt.Errorf("storage query without key")
		}
		value, err := h.store.Get(ctx, req.Key)
		if err != nil {
			return Response{}, err
		}
		if len(value) > 0 && !json.Valid(value) {
			return Response{}, fmt.Errorf("stored value for %q is not JSON", req.Key)
		}
		return Response{Action: ActionGetStorage, Key: req.Key, Data: value}, nil
	}

	return Response{}, fmt.Errorf("unknown query %q", req.Query)
}

func (h *Host) send(ctx context.Context, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	h.sendMu.Lock()
	defer h.sendMu.Unlock()
	if err := h.conn.Send(ctx, data); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("host send: %w", err)
	}
	return nil
}
