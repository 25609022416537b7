package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SettingsStorageKey is the storage key of the serialized settings blob.
const SettingsStorageKey = "search_props_"

// Supported UI languages.
const (
	LangEN = "en"
	LangRU = "ru"
)

// Settings are the user preferences written by the settings UI and read by
// the search controller.
type Settings struct {
	OpenInSelf          bool      `json:"self"`
	Background          bool      `json:"background"`
	BackgroundAnimation bool      `json:"bg_animation"`
	Touch               bool      `json:"touch"`
	Lang                string    `json:"lang"`
	SearchEngine        string    `json:"search_engine"`
	Keys                [2]string `json:"keys"`
	TabKeys             []string  `json:"keys_tabs"`
	Shortcuts           []string  `json:"shortcuts"`
	ExcludeURLs         []string  `json:"exclude_urls"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		OpenInSelf:          false,
		Background:          true,
		BackgroundAnimation: true,
		Touch:               true,
		Lang:                LangEN,
		SearchEngine:        DefaultEngineKey,
		Keys:                [2]string{"Control", "Enter"},
		TabKeys:             []string{"ArrowDown", "ArrowUp"},
		Shortcuts:           []string{"f:facebook.com"},
		ExcludeURLs:         []string{"linkedin.com"},
	}
}

// ModifierKey is the key that must be held before a trigger key.
func (s Settings) ModifierKey() string { return s.Keys[0] }

// SearchTriggerKey is the key that toggles the overlay after the modifier.
func (s Settings) SearchTriggerKey() string { return s.Keys[1] }

// IsExcludedHost reports whether the overlay must stay inactive on hostname.
// Matching is exact after stripping a leading "www.".
func (s Settings) IsExcludedHost(hostname string) bool {
	host := strings.TrimPrefix(strings.ToLower(hostname), "www.")
	return lo.Contains(s.ExcludeURLs, host)
}

// MergeSettings applies a stored settings blob onto base. Only the enumerated
// keys are read: unknown keys are ignored, missing keys keep base values, and
// values of the wrong shape are skipped and reported in the returned warnings.
// A blob that is not a JSON object leaves base untouched.
func MergeSettings(base Settings, raw []byte) (Settings, []string) {
	if len(raw) == 0 {
		return base, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base, []string{fmt.Sprintf("settings blob is not an object: %v", err)}
	}

	out := base
	var warnings []string
	warn := func(key string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
	}

	mergeBool := func(key string, dst *bool) {
		if v, ok := fields[key]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				warn(key, err)
			}
		}
	}
	mergeStrings := func(key string, dst *[]string) {
		v, ok := fields[key]
		if !ok {
			return
		}
		var list []string
		if err := json.Unmarshal(v, &list); err != nil {
			warn(key, err)
			return
		}
		*dst = lo.Compact(lo.Map(list, func(s string, _ int) string { return strings.TrimSpace(s) }))
	}

	mergeBool("self", &out.OpenInSelf)
	mergeBool("background", &out.Background)
	mergeBool("bg_animation", &out.BackgroundAnimation)
	mergeBool("touch", &out.Touch)

	if v, ok := fields["lang"]; ok {
		var lang string
		if err := json.Unmarshal(v, &lang); err != nil {
			warn("lang", err)
		} else if lang == LangEN || lang == LangRU {
			out.Lang = lang
		} else {
			warn("lang", fmt.Errorf("unsupported language %q", lang))
			out.Lang = LangEN
		}
	}

	if v, ok := fields["search_engine"]; ok {
		var key string
		if err := json.Unmarshal(v, &key); err != nil {
			warn("search_engine", err)
		} else if _, known := NewEngineCatalog("").ByKey(key); known {
			out.SearchEngine = key
		} else {
			warn("search_engine", fmt.Errorf("unknown engine %q", key))
		}
	}

	if v, ok := fields["keys"]; ok {
		var keys []string
		if err := json.Unmarshal(v, &keys); err != nil {
			warn("keys", err)
		} else if len(keys) != 2 || keys[0] == "" || keys[1] == "" {
			warn("keys", fmt.Errorf("expected two keys, got %v", keys))
		} else {
			out.Keys = [2]string{keys[0], keys[1]}
		}
	}

	mergeStrings("keys_tabs", &out.TabKeys)
	mergeStrings("shortcuts", &out.Shortcuts)
	mergeStrings("exclude_urls", &out.ExcludeURLs)
	out.ExcludeURLs = lo.Uniq(lo.Map(out.ExcludeURLs, func(h string, _ int) string {
		return strings.TrimPrefix(strings.ToLower(h), "www.")
	}))

	return out, warnings
}

// Encode serializes settings in the stored blob format.
func (s Settings) Encode() ([]byte, error) {
	return json.Marshal(s)
}
