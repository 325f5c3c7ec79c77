package dto

// CreateReportRequest is the body of POST /api/reports. The owner is taken
// from the caller's token; any reporterId in the body is ignored.
type CreateReportRequest struct {
	Title              string  `json:"title" validate:"required,max=255"`
	Description        string  `json:"description" validate:"required"`
	Type               string  `json:"type" validate:"required,report_type"`
	Status             string  `json:"status" validate:"omitempty,report_status"`
	ScammerName        string  `json:"scammerName" validate:"max=255"`
	ScammerPhone       string  `json:"scammerPhone" validate:"max=50"`
	ScammerEmail       string  `json:"scammerEmail" validate:"omitempty,email,max=255"`
	ScammerWebsite     string  `json:"scammerWebsite" validate:"omitempty,url,max=500"`
	ScammerSocialMedia string  `json:"scammerSocialMedia" validate:"max=500"`
	Location           string  `json:"location" validate:"max=255"`
	AmountLost         float64 `json:"amountLost" validate:"gte=0"`
	Evidence           string  `json:"evidence" validate:"max=1000"`
	ViewCount          int     `json:"viewCount" validate:"gte=0"`
	Upvotes            int     `json:"upvotes" validate:"gte=0"`
	Downvotes          int     `json:"downvotes" validate:"gte=0"`
	IsTrending         bool    `json:"isTrending"`
}

// UpdateReportRequest is a partial update; nil fields are left untouched.
// The owner, id and timestamps are not patchable. An empty scammerEmail or
// scammerWebsite clears the stored value.
type UpdateReportRequest struct {
	Title              *string  `json:"title" validate:"omitnil,min=1,max=255"`
	Description        *string  `json:"description" validate:"omitnil,min=1"`
	Type               *string  `json:"type" validate:"omitnil,report_type"`
	Status             *string  `json:"status" validate:"omitnil,report_status"`
	ScammerName        *string  `json:"scammerName" validate:"omitnil,max=255"`
	ScammerPhone       *string  `json:"scammerPhone" validate:"omitnil,max=50"`
	ScammerEmail       *string  `json:"scammerEmail" validate:"omitnil,email_or_empty,max=255"`
	ScammerWebsite     *string  `json:"scammerWebsite" validate:"omitnil,url_or_empty,max=500"`
	ScammerSocialMedia *string  `json:"scammerSocialMedia" validate:"omitnil,max=500"`
	Location           *string  `json:"location" validate:"omitnil,max=255"`
	AmountLost         *float64 `json:"amountLost" validate:"omitnil,gte=0"`
	Evidence           *string  `json:"evidence" validate:"omitnil,max=1000"`
	ViewCount          *int     `json:"viewCount" validate:"omitnil,gte=0"`
	Upvotes            *int     `json:"upvotes" validate:"omitnil,gte=0"`
	Downvotes          *int     `json:"downvotes" validate:"omitnil,gte=0"`
	IsTrending         *bool    `json:"isTrending"`
}

// IsEmpty reports whether the request sets no mutable field.
func (r *UpdateReportRequest) IsEmpty() bool {
	return r.Title == nil &&
		r.Description == nil &&
		r.Type == nil &&
		r.Status == nil &&
		r.ScammerName == nil &&
		r.ScammerPhone == nil &&
		r.ScammerEmail == nil &&
		r.ScammerWebsite == nil &&
		r.ScammerSocialMedia == nil &&
		r.Location == nil &&
		r.AmountLost == nil &&
		r.Evidence == nil &&
		r.ViewCount == nil &&
		r.Upvotes == nil &&
		r.Downvotes == nil &&
		r.IsTrending == nil
}
