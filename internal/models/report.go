package models

import (
	"time"

	"github.com/google/uuid"
)

// Report types.
const (
	ReportTypeInvestmentScam = "investment_scam"
	ReportTypePhishing       = "phishing"
	ReportTypeRomanceScam    = "romance_scam"
	ReportTypeLotteryScam    = "lottery_scam"
	ReportTypeScamToken      = "scam_token"
	ReportTypeFakeAirdrop    = "fake_airdrop"
	ReportTypeOther          = "other"
)

// Report lifecycle states. Any state may follow any other through an update.
const (
	ReportStatusOpen       = "open"
	ReportStatusInProgress = "in-progress"
	ReportStatusClosed     = "closed"
	ReportStatusPending    = "pending"
)

var reportTypes = map[string]bool{
	ReportTypeInvestmentScam: true,
	ReportTypePhishing:       true,
	ReportTypeRomanceScam:    true,
	ReportTypeLotteryScam:    true,
	ReportTypeScamToken:      true,
	ReportTypeFakeAirdrop:    true,
	ReportTypeOther:          true,
}

var reportStatuses = map[string]bool{
	ReportStatusOpen:       true,
	ReportStatusInProgress: true,
	ReportStatusClosed:     true,
	ReportStatusPending:    true,
}

func IsValidReportType(t string) bool {
	return reportTypes[t]
}

func IsValidReportStatus(s string) bool {
	return reportStatuses[s]
}

// Report is a scam report submitted by an authenticated user.
type Report struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string    `gorm:"not null;size:255" json:"title"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	Type               string    `gorm:"not null;size:50;index" json:"type"`
	Status             string    `gorm:"not null;default:'open';size:20;index" json:"status"`
	ReporterID         uuid.UUID `gorm:"type:uuid;not null;index" json:"reporterId"`
	ScammerName        string    `gorm:"size:255;index" json:"scammerName"`
	ScammerPhone       string    `gorm:"size:50" json:"scammerPhone"`
	ScammerEmail       string    `gorm:"size:255" json:"scammerEmail"`
	ScammerWebsite     string    `gorm:"size:500" json:"scammerWebsite"`
	ScammerSocialMedia string    `gorm:"size:500" json:"scammerSocialMedia"`
	Location           string    `gorm:"size:255;index" json:"location"`
	AmountLost         float64   `gorm:"not null;default:0" json:"amountLost"`
	Evidence           string    `gorm:"size:1000" json:"evidence"`
	ViewCount          int       `gorm:"not null;default:0" json:"viewCount"`
	Upvotes            int       `gorm:"not null;default:0" json:"upvotes"`
	Downvotes          int       `gorm:"not null;default:0" json:"downvotes"`
	IsTrending         bool      `gorm:"not null;default:false" json:"isTrending"`
	CreatedAt          time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Canonical field names used by filters and sort keys.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldType        = "type"
	FieldStatus      = "status"
	FieldReporterID  = "reporterId"
	FieldScammerName = "scammerName"
	FieldLocation    = "location"
	FieldAmountLost  = "amountLost"
	FieldViewCount   = "viewCount"
	FieldUpvotes     = "upvotes"
	FieldDownvotes   = "downvotes"
	FieldIsTrending  = "isTrending"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

// ReportColumns maps canonical field names to storage column names. Both the
// SQL and the document stores use the same names.
var ReportColumns = map[string]string{
	FieldID:          "id",
	FieldTitle:       "title",
	FieldType:        "type",
	FieldStatus:      "status",
	FieldReporterID:  "reporter_id",
	FieldScammerName: "scammer_name",
	FieldLocation:    "location",
	FieldAmountLost:  "amount_lost",
	FieldViewCount:   "view_count",
	FieldUpvotes:     "upvotes",
	FieldDownvotes:   "downvotes",
	FieldIsTrending:  "is_trending",
	FieldCreatedAt:   "created_at",
	FieldUpdatedAt:   "updated_at",
}

// SortableReportFields lists the fields accepted in sortBy.
var SortableReportFields = []string{
	FieldTitle,
	FieldType,
	FieldStatus,
	FieldScammerName,
	FieldLocation,
	FieldAmountLost,
	FieldViewCount,
	FieldUpvotes,
	FieldDownvotes,
	FieldIsTrending,
	FieldCreatedAt,
	FieldUpdatedAt,
}

// FieldValue returns the value of a canonical field, for stores that evaluate
// predicates in process.
func (r *Report) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return r.ID.String(), true
	case FieldTitle:
		return r.Title, true
	case FieldType:
		return r.Type, true
	case FieldStatus:
		return r.Status, true
	case FieldReporterID:
		return r.ReporterID.String(), true
	case FieldScammerName:
		return r.ScammerName, true
	case FieldLocation:
		return r.Location, true
	case FieldAmountLost:
		return r.AmountLost, true
	case FieldViewCount:
		return r.ViewCount, true
	case FieldUpvotes:
		return r.Upvotes, true
	case FieldDownvotes:
		return r.Downvotes, true
	case FieldIsTrending:
		return r.IsTrending, true
	case FieldCreatedAt:
		return r.CreatedAt, true
	case FieldUpdatedAt:
		return r.UpdatedAt, true
	}
	return nil, false
}
