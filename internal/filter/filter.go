// Package filter turns caller-supplied query parameters into a storage
// predicate. Only whitelisted keys ever reach the storage layer.
package filter

import (
	"maps"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
)

// Clause is an equality constraint on a canonical model field.
type Clause struct {
	Field string
	Value string
}

// Predicate is a conjunction of clauses. The zero value matches everything.
type Predicate struct {
	clauses []Clause
}

func (p Predicate) Clauses() []Clause {
	out := make([]Clause, len(p.clauses))
	copy(out, p.clauses)
	return out
}

func (p Predicate) Len() int {
	return len(p.clauses)
}

// Get returns the value constrained for field, if any.
func (p Predicate) Get(field string) (string, bool) {
	for _, c := range p.clauses {
		if c.Field == field {
			return c.Value, true
		}
	}
	return "", false
}

// Eq returns a copy of p where field must equal value. An existing clause on
// the same field is replaced.
func (p Predicate) Eq(field, value string) Predicate {
	out := Predicate{clauses: make([]Clause, 0, len(p.clauses)+1)}
	for _, c := range p.clauses {
		if c.Field != field {
			out.clauses = append(out.clauses, c)
		}
	}
	out.clauses = append(out.clauses, Clause{Field: field, Value: value})
	return out
}

// Scope selects which records a listing may see.
type Scope int

const (
	// ScopeAll lists every report matching the whitelisted filters.
	ScopeAll Scope = iota
	// ScopeOwn restricts the listing to the caller's own reports.
	ScopeOwn
)

// DefaultReportKeys maps accepted query keys to report fields.
var DefaultReportKeys = map[string]string{
	"type":         models.FieldType,
	"status":       models.FieldStatus,
	"scammerName":  models.FieldScammerName,
	"scammer_name": models.FieldScammerName,
	"location":     models.FieldLocation,
}

type Builder struct {
	keys map[string]string
}

func NewBuilder(keys map[string]string) *Builder {
	copied := make(map[string]string, len(keys))
	for k, v := range keys {
		copied[k] = v
	}
	return &Builder{keys: copied}
}

// NewReportBuilder returns a builder over DefaultReportKeys.
func NewReportBuilder() *Builder {
	return NewBuilder(DefaultReportKeys)
}

// Build derives a predicate from raw query params. Unknown keys and blank
// values are ignored. For ScopeOwn the reporterId clause is always set to
// callerID last, so no parameter can widen the listing.
func (b *Builder) Build(params map[string]string, scope Scope, callerID string) Predicate {
	var p Predicate
	// Iterate the whitelist rather than params so clause order is stable.
	for _, key := range slices.Sorted(maps.Keys(b.keys)) {
		raw, ok := params[key]
		if !ok {
			continue
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		field := b.keys[key]
		if _, exists := p.Get(field); exists {
			continue
		}
		p = p.Eq(field, value)
	}

	if scope == ScopeOwn {
		p = p.Eq(models.FieldReporterID, callerID)
	}
	return p
}
