package authz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGate(t *testing.T) {
	gate, err := LoadGate("")
	require.NoError(t, err)

	for _, a := range []Action{ActionGetReports, ActionCreateReport, ActionGetReport, ActionUpdateReport, ActionDeleteReport, ActionGetUserReports} {
		assert.True(t, gate.Can(RoleUser, a), "user should be allowed %s", a)
		assert.True(t, gate.Can(RoleAdmin, a), "admin should be allowed %s", a)
	}

	assert.False(t, gate.IsElevated(RoleUser))
	assert.True(t, gate.IsElevated(RoleAdmin))
	assert.Equal(t, []string{RoleAdmin, RoleUser}, gate.Roles())
}

func TestUnknownRoleHasNoRights(t *testing.T) {
	gate, err := NewGate(DefaultRights())
	require.NoError(t, err)

	assert.False(t, gate.Can("guest", ActionGetReport))
	err = gate.Check("guest", ActionCreateReport)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	assert.NoError(t, gate.Check(RoleUser, ActionCreateReport))
}

func TestDefaultRightsAreIndependentCopies(t *testing.T) {
	rights := DefaultRights()
	rights[RoleUser][0] = ActionManageReports

	gate, err := LoadGate("")
	require.NoError(t, err)
	assert.False(t, gate.IsElevated(RoleUser))
}

func TestNewGateRejectsUnknownAction(t *testing.T) {
	_, err := NewGate(map[string][]Action{"user": {"launchMissiles"}})
	assert.Error(t, err)
}

func TestLoadGateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"roles": {
			"viewer": ["getReports", "getReport"],
			"moderator": ["getReports", "updateReport", "manageReports"]
		}
	}`), 0o600))

	gate, err := LoadGate(path)
	require.NoError(t, err)

	assert.True(t, gate.Can("viewer", ActionGetReports))
	assert.False(t, gate.Can("viewer", ActionCreateReport))
	assert.True(t, gate.IsElevated("moderator"))
	assert.False(t, gate.Can(RoleUser, ActionGetReports), "file replaces the defaults")
}

func TestLoadGateErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadGate(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o600))
	_, err = LoadGate(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"roles": {}}`), 0o600))
	_, err = LoadGate(empty)
	assert.Error(t, err)
}
