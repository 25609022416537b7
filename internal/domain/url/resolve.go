package url

import (
	"strings"

	"github.com/bnema/fsearch/internal/domain/entity"
)

// Rule names the resolution rule that matched, in priority order.
type Rule int

const (
	RuleNone Rule = iota
	RuleEngineHome
	RuleEngineQuery
	RuleCustomShortcut
	RuleDomain
	RuleFullText
)

func (r Rule) String() string {
	switch r {
	case RuleEngineHome:
		return "engine_home"
	case RuleEngineQuery:
		return "engine_query"
	case RuleCustomShortcut:
		return "custom_shortcut"
	case RuleDomain:
		return "domain"
	case RuleFullText:
		return "full_text"
	default:
		return "none"
	}
}

// Target tells the opener where to load the resolved URL.
type Target string

const (
	TargetBlank Target = "_blank"
	TargetSelf  Target = "_self"
)

// Resolution is the outcome of resolving one input. It is a fresh value per
// call; catalog entries are never annotated with per-request state.
type Resolution struct {
	Rule      Rule
	URL       string
	Target    Target
	EngineKey string // set for engine rules
	Query     string // trailing query, if any
}

// Input is the parsed form of the search box text: the part before the
// first colon, and whatever follows it.
type Input struct {
	Raw      string
	Token    string
	Rest     string
	HasColon bool
}

// ParseInput splits raw on its first colon.
func ParseInput(raw string) Input {
	token, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return Input{Raw: raw, Token: raw}
	}
	return Input{Raw: raw, Token: token, Rest: rest, HasColon: true}
}

// Resolver turns search-box input into a destination.
type Resolver struct {
	catalog       *entity.EngineCatalog
	shortcuts     []entity.CustomShortcut
	defaultEngine entity.SearchEngine
	target        Target
}

// NewResolver builds a resolver for the current settings.
func NewResolver(catalog *entity.EngineCatalog, settings entity.Settings) *Resolver {
	shortcuts, _ := entity.ParseCustomShortcuts(settings.Shortcuts)
	target := TargetBlank
	if settings.OpenInSelf {
		target = TargetSelf
	}
	return &Resolver{
		catalog:       catalog,
		shortcuts:     shortcuts,
		defaultEngine: catalog.Default(settings.SearchEngine),
		target:        target,
	}
}

// Resolve applies the rules in priority order and reports whether any matched.
// Blank input never resolves.
func (r *Resolver) Resolve(raw string) (Resolution, bool) {
	in := ParseInput(raw)

	if engine, ok := r.catalog.ByShortcut(raw); ok {
		return r.result(RuleEngineHome, engine.Origin, engine.Key, ""), true
	}

	if in.HasColon && in.Rest != "" {
		if engine, ok := r.catalog.ByShortcut(in.Token); ok {
			return r.result(RuleEngineQuery, engine.SearchURL(in.Rest), engine.Key, in.Rest), true
		}
	}

	// "token:" with nothing after the colon is not a custom shortcut.
	if sc, ok := r.customShortcut(in.Token); ok && (!in.HasColon || in.Rest != "") {
		return r.result(RuleCustomShortcut, WithHTTP(sc.Expand(in.Rest)), "", in.Rest), true
	}

	trimmed := strings.TrimSpace(raw)
	if IsDomainLiteral(trimmed) {
		return r.result(RuleDomain, "http://"+StripHTTPScheme(trimmed), "", ""), true
	}

	if trimmed != "" {
		return r.result(RuleFullText, r.defaultEngine.SearchURL(raw), r.defaultEngine.Key, raw), true
	}

	return Resolution{Rule: RuleNone}, false
}

func (r *Resolver) customShortcut(token string) (entity.CustomShortcut, bool) {
	if token == "" {
		return entity.CustomShortcut{}, false
	}
	for _, sc := range r.shortcuts {
		if sc.Token == token {
			return sc, true
		}
	}
	return entity.CustomShortcut{}, false
}

func (r *Resolver) result(rule Rule, target, engineKey, query string) Resolution {
	return Resolution{
		Rule:      rule,
		URL:       target,
		Target:    r.target,
		EngineKey: engineKey,
		Query:     query,
	}
}
