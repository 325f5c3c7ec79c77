package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/filter"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/pagination"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const reportsCollection = "reports"

// reportDocument is the stored shape of a report. IDs are kept as strings so
// documents stay readable from the mongo shell.
type reportDocument struct {
	ID                 string    `bson:"_id"`
	Title              string    `bson:"title"`
	Description        string    `bson:"description"`
	Type               string    `bson:"type"`
	Status             string    `bson:"status"`
	ReporterID         string    `bson:"reporter_id"`
	ScammerName        string    `bson:"scammer_name"`
	ScammerPhone       string    `bson:"scammer_phone"`
	ScammerEmail       string    `bson:"scammer_email"`
	ScammerWebsite     string    `bson:"scammer_website"`
	ScammerSocialMedia string    `bson:"scammer_social_media"`
	Location           string    `bson:"location"`
	AmountLost         float64   `bson:"amount_lost"`
	Evidence           string    `bson:"evidence"`
	ViewCount          int       `bson:"view_count"`
	Upvotes            int       `bson:"upvotes"`
	Downvotes          int       `bson:"downvotes"`
	IsTrending         bool      `bson:"is_trending"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

func toDocument(r *models.Report) reportDocument {
	return reportDocument{
		ID:                 r.ID.String(),
		Title:              r.Title,
		Description:        r.Description,
		Type:               r.Type,
		Status:             r.Status,
		ReporterID:         r.ReporterID.String(),
		ScammerName:        r.ScammerName,
		ScammerPhone:       r.ScammerPhone,
		ScammerEmail:       r.ScammerEmail,
		ScammerWebsite:     r.ScammerWebsite,
		ScammerSocialMedia: r.ScammerSocialMedia,
		Location:           r.Location,
		AmountLost:         r.AmountLost,
		Evidence:           r.Evidence,
		ViewCount:          r.ViewCount,
		Upvotes:            r.Upvotes,
		Downvotes:          r.Downvotes,
		IsTrending:         r.IsTrending,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (d *reportDocument) toModel() (models.Report, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.Report{}, fmt.Errorf("bad report id %q: %w", d.ID, err)
	}
	reporterID, err := uuid.Parse(d.ReporterID)
	if err != nil {
		return models.Report{}, fmt.Errorf("bad reporter id %q: %w", d.ReporterID, err)
	}
	return models.Report{
		ID:                 id,
		Title:              d.Title,
		Description:        d.Description,
		Type:               d.Type,
		Status:             d.Status,
		ReporterID:         reporterID,
		ScammerName:        d.ScammerName,
		ScammerPhone:       d.ScammerPhone,
		ScammerEmail:       d.ScammerEmail,
		ScammerWebsite:     d.ScammerWebsite,
		ScammerSocialMedia: d.ScammerSocialMedia,
		Location:           d.Location,
		AmountLost:         d.AmountLost,
		Evidence:           d.Evidence,
		ViewCount:          d.ViewCount,
		Upvotes:            d.Upvotes,
		Downvotes:          d.Downvotes,
		IsTrending:         d.IsTrending,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

// MongoReportRepository stores reports in a MongoDB collection.
type MongoReportRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoReportRepository(client *mongo.Client, database string) *MongoReportRepository {
	return &MongoReportRepository{
		client: client,
		coll:   client.Database(database).Collection(reportsCollection),
	}
}

// EnsureIndexes creates the indexes backing the list filters.
func (r *MongoReportRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reporter_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create report indexes: %w", err)
	}
	return nil
}

func (r *MongoReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	report.CreatedAt = now
	report.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, toDocument(report)); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *MongoReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var doc reportDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	report, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *MongoReportRepository) Save(ctx context.Context, report *models.Report) error {
	report.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc := toDocument(report)

	// reporter_id and created_at are left out of $set so they keep their
	// stored values.
	update := bson.M{"$set": bson.M{
		"title":                doc.Title,
		"description":          doc.Description,
		"type":                 doc.Type,
		"status":               doc.Status,
		"scammer_name":         doc.ScammerName,
		"scammer_phone":        doc.ScammerPhone,
		"scammer_email":        doc.ScammerEmail,
		"scammer_website":      doc.ScammerWebsite,
		"scammer_social_media": doc.ScammerSocialMedia,
		"location":             doc.Location,
		"amount_lost":          doc.AmountLost,
		"evidence":             doc.Evidence,
		"view_count":           doc.ViewCount,
		"upvotes":              doc.Upvotes,
		"downvotes":            doc.Downvotes,
		"is_trending":          doc.IsTrending,
		"updated_at":           doc.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoReportRepository) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	query, err := mongoFilter(pred)
	if err != nil {
		return 0, err
	}
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return total, nil
}

func (r *MongoReportRepository) Find(ctx context.Context, pred filter.Predicate, window pagination.Window) ([]models.Report, error) {
	query, err := mongoFilter(pred)
	if err != nil {
		return nil, err
	}

	sort := bson.D{}
	for _, s := range window.Sort {
		col, ok := column(s.Field)
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q", s.Field)
		}
		if col == "id" {
			col = "_id"
		}
		dir := 1
		if s.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: col, Value: dir})
	}
	if len(sort) == 0 {
		sort = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(window.Offset)).
		SetLimit(int64(window.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reportDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}

	reports := make([]models.Report, 0, len(docs))
	for i := range docs {
		report, err := docs[i].toModel()
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *MongoReportRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func mongoFilter(pred filter.Predicate) (bson.D, error) {
	query := bson.D{}
	for _, c := range pred.Clauses() {
		col, ok := column(c.Field)
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q", c.Field)
		}
		if col == "id" {
			col = "_id"
		}
		query = append(query, bson.E{Key: col, Value: c.Value})
	}
	return query, nil
}
