// Package authz maps caller roles to the report actions they may perform.
package authz

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
)

type Action string

const (
	ActionGetReports     Action = "getReports"
	ActionCreateReport   Action = "createReport"
	ActionGetReport      Action = "getReport"
	ActionUpdateReport   Action = "updateReport"
	ActionDeleteReport   Action = "deleteReport"
	ActionGetUserReports Action = "getUserReports"
	// ActionManageReports lets a role act on reports it does not own.
	ActionManageReports Action = "manageReports"
)

var knownActions = map[Action]bool{
	ActionGetReports:     true,
	ActionCreateReport:   true,
	ActionGetReport:      true,
	ActionUpdateReport:   true,
	ActionDeleteReport:   true,
	ActionGetUserReports: true,
	ActionManageReports:  true,
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultRights is used when no roles file is configured.
func DefaultRights() map[string][]Action {
	userRights := []Action{
		ActionGetReports,
		ActionCreateReport,
		ActionGetReport,
		ActionUpdateReport,
		ActionDeleteReport,
		ActionGetUserReports,
	}
	return map[string][]Action{
		RoleUser:  userRights,
		RoleAdmin: append(append([]Action{}, userRights...), ActionManageReports),
	}
}

// Gate is read-only after construction and safe for concurrent use.
type Gate struct {
	rights map[string]map[Action]struct{}
}

func NewGate(rights map[string][]Action) (*Gate, error) {
	g := &Gate{rights: make(map[string]map[Action]struct{}, len(rights))}
	for role, actions := range rights {
		set := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			if !knownActions[a] {
				return nil, fmt.Errorf("role %q: unknown action %q", role, a)
			}
			set[a] = struct{}{}
		}
		g.rights[role] = set
	}
	return g, nil
}

type rolesFile struct {
	Roles map[string][]Action `json:"roles"`
}

// LoadGate reads a {"roles": {"<role>": ["<action>", ...]}} file. An empty
// path yields DefaultRights.
func LoadGate(path string) (*Gate, error) {
	if path == "" {
		return NewGate(DefaultRights())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roles config: %w", err)
	}

	var file rolesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roles config: %w", err)
	}
	if len(file.Roles) == 0 {
		return nil, fmt.Errorf("roles config %s defines no roles", path)
	}
	return NewGate(file.Roles)
}

func (g *Gate) Can(role string, action Action) bool {
	_, ok := g.rights[role][action]
	return ok
}

// Check returns a Forbidden error when role may not perform action.
func (g *Gate) Check(role string, action Action) error {
	if !g.Can(role, action) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}

// IsElevated reports whether role bypasses per-record ownership checks.
func (g *Gate) IsElevated(role string) bool {
	return g.Can(role, ActionManageReports)
}

func (g *Gate) Roles() []string {
	roles := make([]string, 0, len(g.rights))
	for r := range g.rights {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}
