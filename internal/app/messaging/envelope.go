// Package messaging carries requests from the search controller to the
// background tab host and routes the host's responses back.
package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/fsearch/internal/domain/entity"
)

// Query names a request the controller can make of the host.
type Query string

const (
	QueryTabs    Query = "tabs"
	QueryUpdate  Query = "update"
	QueryRemove  Query = "remove"
	QueryStorage Query = "storage"
)

// Action names a message sent by the host.
type Action string

const (
	ActionTabs       Action = "tabs"
	ActionUpdate     Action = "update"
	ActionTabRemoved Action = "tab_removed"
	ActionGetStorage Action = "get_storage"
	ActionChangeTab  Action = "change_tab"
	ActionError      Action = "error"
)

// NotificationID is the id of host-initiated messages.
const NotificationID uint64 = 0

// Request is a controller-to-host message.
type Request struct {
	ID    uint64          `json:"id"`
	Query Query           `json:"query"`
	Data  json.RawMessage `json:"data,omitempty"`
	Key   string          `json:"key,omitempty"`
}

// Response is a host-to-controller message. Notifications carry
// NotificationID.
type Response struct {
	ID     uint64          `json:"id"`
	Action Action          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
	Key    string          `json:"key,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// HostError is the error reported by an ActionError response.
type HostError struct {
	Query   Query
	Message string
}

func (e *HostError) Error() string {
	if e.Query == "" {
		return "host: " + e.Message
	}
	return fmt.Sprintf("host %s: %s", e.Query, e.Message)
}

// TabRequest builds an update or remove request for id.
func TabRequest(q Query, id entity.TabID) Request {
	data, _ := json.Marshal(id)
	return Request{Query: q, Data: data}
}

// TabID decodes a tab id payload.
func (r Request) TabID() (entity.TabID, error) {
	return decodeTabID(r.Data)
}

// TabID decodes the tab id carried by update, tab_removed and change_tab.
func (r Response) TabID() (entity.TabID, error) {
	return decodeTabID(r.Data)
}

// Tabs decodes the tab list carried by a tabs response.
func (r Response) Tabs() ([]entity.Tab, error) {
	var tabs []entity.Tab
	if err := json.Unmarshal(r.Data, &tabs); err != nil {
		return nil, fmt.Errorf("decode tabs: %w", err)
	}
	return tabs, nil
}

func decodeTabID(data json.RawMessage) (entity.TabID, error) {
	var id entity.TabID
	if len(data) == 0 {
		return 0, fmt.Errorf("missing tab id")
	}
	if err := json.Unmarshal(data, &id); err != nil {
		return 0, fmt.Errorf("decode tab id: %w", err)
	}
	return id, nil
}
