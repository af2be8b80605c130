package reportRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a report and returns its ID.
func (r *mongoReportRepo) Create(ctx context.Context, report *models.Report) (string, error) {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.DateReport.IsZero() {
		report.DateReport = time.Now()
	}
	if _, err := r.reportColl.InsertOne(ctx, report); err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}
	return report.ID, nil
}

// Update replaces the mutable report fields.
func (r *mongoReportRepo) Update(ctx context.Context, report *models.Report) error {
	update := bson.M{"$set": bson.M{
		"status":                  report.Status,
		"feedback_client":         report.FeedbackClient,
		"feedback_professional":   report.FeedbackProfessional,
		"flagged_by_professional": report.FlaggedByProfessional,
		"client_seen":             report.ClientSeen,
	}}
	res, err := r.reportColl.UpdateOne(ctx, bson.M{"id": report.ID}, update)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a report.
func (r *mongoReportRepo) Delete(ctx context.Context, id string) error {
	res, err := r.reportColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetFlag sets or clears the professional's flag.
func (r *mongoReportRepo) SetFlag(ctx context.Context, id string, flagged bool) error {
	res, err := r.reportColl.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"flagged_by_professional": flagged}})
	if err != nil {
		return fmt.Errorf("flag report: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkSeenByClient marks the given reports as seen.
func (r *mongoReportRepo) MarkSeenByClient(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.reportColl.UpdateMany(ctx, bson.M{"id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"client_seen": true}})
	if err != nil {
		return fmt.Errorf("mark reports seen: %w", err)
	}
	return nil
}
