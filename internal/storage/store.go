package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"softskill-server/internal/apperr"
)

// Store wraps the two collections the engine mutates. All writes are
// single-document field-set or array-append operations.
type Store struct {
	resumes    *mongo.Collection
	interviews *mongo.Collection
}

// Connect opens and pings a MongoDB client.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return client, nil
}

func New(db *mongo.Database) *Store {
	return &Store{
		resumes:    db.Collection("resume"),
		interviews: db.Collection("interviews"),
	}
}

// ParseID converts a caller-supplied hex id, failing with InvalidArgument on
// malformed input.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidArgumentf("session id %q", hex)
	}
	return id, nil
}

func (s *Store) InsertResume(ctx context.Context, doc *ResumeAnalysis) (primitive.ObjectID, error) {
	doc.CreatedAt = time.Now().UTC()
	res, err := s.resumes.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("inserting resume: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// LatestResume returns the owner's most recent resume analysis.
func (s *Store) LatestResume(ctx context.Context, email string) (*ResumeAnalysis, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc ResumeAnalysis
	err := s.resumes.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("resume for %s", email)
	}
	if err != nil {
		return nil, fmt.Errorf("finding resume: %w", err)
	}
	return &doc, nil
}

// SetSkillsSummary caches the lazily computed skills summary on a resume doc.
func (s *Store) SetSkillsSummary(ctx context.Context, id primitive.ObjectID, summary string) error {
	_, err := s.resumes.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"skills_summary": summary}})
	if err != nil {
		return fmt.Errorf("caching skills summary: %w", err)
	}
	return nil
}

func (s *Store) InsertInterview(ctx context.Context, doc *InterviewSession) (primitive.ObjectID, error) {
	res, err := s.interviews.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("inserting interview: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Interview loads a session by id, scoped to its owner. A session that exists
// but belongs to someone else is indistinguishable from an absent one.
func (s *Store) Interview(ctx context.Context, id primitive.ObjectID, email string) (*InterviewSession, error) {
	var doc InterviewSession
	err := s.interviews.FindOne(ctx, bson.M{"_id": id, "email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFoundf("interview %s", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("finding interview: %w", err)
	}
	return &doc, nil
}

// PushAnswer appends an answer and returns the array index it landed at. The
// index comes from the post-append document, so a later assessment write
// always targets the record it was computed for.
func (s *Store) PushAnswer(ctx context.Context, id primitive.ObjectID, answer AnswerRecord) (int, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated InterviewSession
	err := s.interviews.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"answers": answer}},
		opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, apperr.NotFoundf("interview %s", id.Hex())
	}
	if err != nil {
		return 0, fmt.Errorf("appending answer: %w", err)
	}
	return len(updated.Answers) - 1, nil
}

// SetAssessment stamps the assessment onto the answer at the reserved index.
func (s *Store) SetAssessment(ctx context.Context, id primitive.ObjectID, index int, a Assessment) error {
	field := fmt.Sprintf("answers.%d.assessment", index)
	_, err := s.interviews.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: a}})
	if err != nil {
		return fmt.Errorf("stamping assessment: %w", err)
	}
	return nil
}

// PushEmotion appends one emotion snapshot to the session timeline.
func (s *Store) PushEmotion(ctx context.Context, id primitive.ObjectID, snap EmotionSnapshot) error {
	_, err := s.interviews.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"emotionTimeline": snap}})
	if err != nil {
		return fmt.Errorf("appending emotion snapshot: %w", err)
	}
	return nil
}

// Complete marks the session completed and stamps completed_at. Repeated calls
// simply re-stamp; the status never reverts.
func (s *Store) Complete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.interviews.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": StatusCompleted, "completed_at": now}})
	if err != nil {
		return fmt.Errorf("finalizing interview: %w", err)
	}
	return nil
}
