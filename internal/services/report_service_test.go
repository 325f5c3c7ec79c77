package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/filter"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*ReportService, *repository.MemoryReportRepository) {
	t.Helper()
	gate, err := authz.NewGate(authz.DefaultRights())
	require.NoError(t, err)
	repo := repository.NewMemoryReportRepository()
	return NewReportService(repo, gate, config.NewValidator()), repo
}

func validCreate() *dto.CreateReportRequest {
	return &dto.CreateReportRequest{
		Title:       "X",
		Description: "Y",
		Type:        models.ReportTypePhishing,
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreateReport_Defaults(t *testing.T) {
	svc, _ := newTestService(t)
	u1 := uuid.New()

	report, err := svc.CreateReport(context.Background(), u1, validCreate())
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusOpen, report.Status)
	assert.Equal(t, u1, report.ReporterID)
	assert.Zero(t, report.AmountLost)
	assert.Zero(t, report.ViewCount)
	assert.False(t, report.IsTrending)
	assert.NotEqual(t, uuid.Nil, report.ID)
}

func TestCreateReport_IgnoresClientOwner(t *testing.T) {
	svc, _ := newTestService(t)
	caller := uuid.New()

	body := fmt.Sprintf(`{"title":"X","description":"Y","type":"phishing","reporterId":%q,"user_id":%q,"id":%q}`,
		uuid.NewString(), uuid.NewString(), uuid.NewString())
	var req dto.CreateReportRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	report, err := svc.CreateReport(context.Background(), caller, &req)
	require.NoError(t, err)
	assert.Equal(t, caller, report.ReporterID)

	stored, err := svc.GetReportByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, caller, stored.ReporterID)
}

func TestCreateReport_Validation(t *testing.T) {
	cases := map[string]func(r *dto.CreateReportRequest){
		"missing title":       func(r *dto.CreateReportRequest) { r.Title = "" },
		"blank description":   func(r *dto.CreateReportRequest) { r.Description = "   " },
		"missing type":        func(r *dto.CreateReportRequest) { r.Type = "" },
		"unknown type":        func(r *dto.CreateReportRequest) { r.Type = "pyramid" },
		"unknown status":      func(r *dto.CreateReportRequest) { r.Status = "resolved" },
		"negative amount":     func(r *dto.CreateReportRequest) { r.AmountLost = -1 },
		"negative upvotes":    func(r *dto.CreateReportRequest) { r.Upvotes = -2 },
		"bad scammer email":   func(r *dto.CreateReportRequest) { r.ScammerEmail = "not-an-email" },
		"bad scammer website": func(r *dto.CreateReportRequest) { r.ScammerWebsite = "nota url" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo := newTestService(t)
			req := validCreate()
			mutate(req)

			_, err := svc.CreateReport(context.Background(), uuid.New(), req)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)

			n, _ := repo.Count(context.Background(), filter.Predicate{})
			assert.Zero(t, n, "nothing is persisted on validation failure")
		})
	}
}

func TestCreateReport_AcceptsOptionalFields(t *testing.T) {
	svc, _ := newTestService(t)
	req := validCreate()
	req.Status = models.ReportStatusPending
	req.ScammerEmail = "crook@example.com"
	req.ScammerWebsite = "https://totally-legit.example"
	req.AmountLost = 1250.5
	req.Location = "Nairobi"

	report, err := svc.CreateReport(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, 1250.5, report.AmountLost)
	assert.Equal(t, "Nairobi", report.Location)
}

func TestGetReportByID_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetReportByID(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateReport_NonOwnerGetsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u1, u2 := uuid.New(), uuid.New()

	report, err := svc.CreateReport(ctx, u1, validCreate())
	require.NoError(t, err)

	_, err = svc.UpdateReport(ctx, report.ID, u2, authz.RoleUser, &dto.UpdateReportRequest{Title: ptr("hijacked")})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	stored, _ := svc.GetReportByID(ctx, report.ID)
	assert.Equal(t, "X", stored.Title)
}

func TestUpdateReport_AdminBypassesOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	report, err := svc.CreateReport(ctx, owner, validCreate())
	require.NoError(t, err)

	updated, err := svc.UpdateReport(ctx, report.ID, uuid.New(), authz.RoleAdmin, &dto.UpdateReportRequest{
		Status: ptr(models.ReportStatusClosed),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusClosed, updated.Status)
	assert.Equal(t, owner, updated.ReporterID)
}

func TestUpdateReport_PartialPatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	req := validCreate()
	req.ScammerName = "Bob"
	report, err := svc.CreateReport(ctx, owner, req)
	require.NoError(t, err)

	var patch dto.UpdateReportRequest
	body := fmt.Sprintf(`{"status":"in-progress","upvotes":3,"reporterId":%q,"id":%q}`, uuid.NewString(), uuid.NewString())
	require.NoError(t, json.Unmarshal([]byte(body), &patch))

	updated, err := svc.UpdateReport(ctx, report.ID, owner, authz.RoleUser, &patch)
	require.NoError(t, err)

	assert.Equal(t, report.ID, updated.ID)
	assert.Equal(t, owner, updated.ReporterID)
	assert.Equal(t, models.ReportStatusInProgress, updated.Status)
	assert.Equal(t, 3, updated.Upvotes)
	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, "Bob", updated.ScammerName)
	assert.Equal(t, report.CreatedAt, updated.CreatedAt)
}

func TestUpdateReport_ClosedCanBeReopened(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	report, err := svc.CreateReport(ctx, owner, validCreate())
	require.NoError(t, err)

	_, err = svc.UpdateReport(ctx, report.ID, owner, authz.RoleUser, &dto.UpdateReportRequest{Status: ptr(models.ReportStatusClosed)})
	require.NoError(t, err)
	reopened, err := svc.UpdateReport(ctx, report.ID, owner, authz.RoleUser, &dto.UpdateReportRequest{Status: ptr(models.ReportStatusOpen)})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusOpen, reopened.Status)
}

func TestUpdateReport_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	report, err := svc.CreateReport(ctx, owner, validCreate())
	require.NoError(t, err)

	cases := map[string]*dto.UpdateReportRequest{
		"empty body":      {},
		"blank title":     {Title: ptr("  ")},
		"bad status":      {Status: ptr("active")},
		"bad type":        {Type: ptr("ponzi")},
		"negative amount": {AmountLost: ptr(-0.01)},
		"negative views":  {ViewCount: ptr(-1)},
		"bad email":       {ScammerEmail: ptr("nope")},
		"bad website":     {ScammerWebsite: ptr("::::")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.UpdateReport(ctx, report.ID, owner, authz.RoleUser, req)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)
		})
	}

	stored, _ := svc.GetReportByID(ctx, report.ID)
	assert.Equal(t, models.ReportStatusOpen, stored.Status)
}

func TestUpdateReport_ClearsOptionalContact(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	req := validCreate()
	req.ScammerEmail = "crook@example.com"
	report, err := svc.CreateReport(ctx, owner, req)
	require.NoError(t, err)

	updated, err := svc.UpdateReport(ctx, report.ID, owner, authz.RoleUser, &dto.UpdateReportRequest{ScammerEmail: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, updated.ScammerEmail)

	withSite, err := svc.UpdateReport(ctx, report.ID, owner, authz.RoleUser, &dto.UpdateReportRequest{
		ScammerWebsite: ptr("https://fake-exchange.example"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://fake-exchange.example", withSite.ScammerWebsite)

	cleared, err := svc.UpdateReport(ctx, report.ID, owner, authz.RoleUser, &dto.UpdateReportRequest{ScammerWebsite: ptr("  ")})
	require.NoError(t, err)
	assert.Empty(t, cleared.ScammerWebsite)
}

func TestUpdateReport_MissingReport(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.UpdateReport(context.Background(), uuid.New(), uuid.New(), authz.RoleAdmin, &dto.UpdateReportRequest{Title: ptr("t")})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteReport_Twice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	report, err := svc.CreateReport(ctx, owner, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReport(ctx, report.ID, owner, authz.RoleUser))
	err = svc.DeleteReport(ctx, report.ID, owner, authz.RoleUser)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteReport_NonOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	report, err := svc.CreateReport(ctx, owner, validCreate())
	require.NoError(t, err)

	err = svc.DeleteReport(ctx, report.ID, uuid.New(), authz.RoleUser)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.GetReportByID(ctx, report.ID)
	assert.NoError(t, err, "report survives a foreign delete")

	require.NoError(t, svc.DeleteReport(ctx, report.ID, uuid.New(), authz.RoleAdmin))
}

func TestQueryReports_PageBeyondRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	for i := 0; i < 5; i++ {
		_, err := svc.CreateReport(ctx, owner, validCreate())
		require.NoError(t, err)
	}

	res, err := svc.QueryReports(ctx, map[string]string{"page": "3", "limit": "10"})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Equal(t, 1, res.TotalPages)
	assert.EqualValues(t, 5, res.TotalResults)
}

func TestQueryReports_HugePage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()
	for i := 0; i < 5; i++ {
		_, err := svc.CreateReport(ctx, owner, validCreate())
		require.NoError(t, err)
	}

	res, err := svc.QueryReports(ctx, map[string]string{"page": "1000000000000000000", "limit": "10"})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Equal(t, 1, res.TotalPages)
	assert.EqualValues(t, 5, res.TotalResults)
}

func TestQueryReports_FiltersAndSort(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	for i, typ := range []string{models.ReportTypePhishing, models.ReportTypeRomanceScam, models.ReportTypePhishing} {
		req := validCreate()
		req.Type = typ
		req.Title = fmt.Sprintf("r%d", i)
		req.AmountLost = float64(i * 100)
		_, err := svc.CreateReport(ctx, owner, req)
		require.NoError(t, err)
	}

	res, err := svc.QueryReports(ctx, map[string]string{
		"type":    models.ReportTypePhishing,
		"sortBy":  "amountLost:desc",
		"ignored": "value",
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "r2", res.Results[0].Title)
	assert.Equal(t, "r0", res.Results[1].Title)
	assert.Equal(t, 10, res.Limit)
	assert.Equal(t, 1, res.Page)

	_, err = svc.QueryReports(ctx, map[string]string{"sortBy": "reporterSecret:asc"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = svc.QueryReports(ctx, map[string]string{"limit": "0"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestGetUserReports_NeverLeaksOthers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	me, other := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateReport(ctx, me, validCreate())
		require.NoError(t, err)
		_, err = svc.CreateReport(ctx, other, validCreate())
		require.NoError(t, err)
	}

	overrides := []map[string]string{
		{},
		{"reporterId": other.String()},
		{"reporter_id": other.String(), "user_id": other.String()},
		{"type": models.ReportTypePhishing, "reporterId": other.String(), "limit": "100"},
	}
	for _, params := range overrides {
		res, err := svc.GetUserReports(ctx, me, params)
		require.NoError(t, err)
		assert.EqualValues(t, 3, res.TotalResults)
		for _, r := range res.Results {
			assert.Equal(t, me, r.ReporterID)
		}
	}
}
