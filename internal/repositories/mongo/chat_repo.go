package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/dverhoeven/folioagent/internal/apperr"
	"github.com/dverhoeven/folioagent/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, s *models.ChatSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error)
	Touch(ctx context.Context, sessionID string, at time.Time, messageDelta int64) error
	End(ctx context.Context, sessionID string, endedAt time.Time) error
}

type chatSessionRepo struct {
	col *mongo.Collection
}

func NewChatSessionRepo(db *mongo.Database) ChatSessionRepository {
	return &chatSessionRepo{col: db.Collection("chat_sessions")}
}

func (r *chatSessionRepo) Create(ctx context.Context, s *models.ChatSession) error {
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now().UTC()
	}
	if s.LastActiveAt.IsZero() {
		s.LastActiveAt = s.StartedAt
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *chatSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	return &s, err
}

func (r *chatSessionRepo) Touch(ctx context.Context, sessionID string, at time.Time, messageDelta int64) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$set": bson.M{"last_active_at": at.UTC()},
			"$inc": bson.M{"message_count": messageDelta},
		},
	)
	return err
}

func (r *chatSessionRepo) End(ctx context.Context, sessionID string, endedAt time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{
			"status":   "ended",
			"ended_at": endedAt.UTC(),
		}},
	)
	return err
}

type ChatMessageRepository interface {
	Insert(ctx context.Context, m *models.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.ChatMessage, error)
	LatestN(ctx context.Context, sessionID string, n int64) ([]models.ChatMessage, error)
}

type chatMessageRepo struct {
	col *mongo.Collection
}

func NewChatMessageRepo(db *mongo.Database) ChatMessageRepository {
	return &chatMessageRepo{col: db.Collection("chat_messages")}
}

func (r *chatMessageRepo) Insert(ctx context.Context, m *models.ChatMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

// ListBySession returns messages oldest first, the order a transcript reads in.
func (r *chatMessageRepo) ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 200
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ChatMessage
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestN returns the n most recent messages in ascending order, ready to be
// appended to a prompt.
func (r *chatMessageRepo) LatestN(ctx context.Context, sessionID string, n int64) ([]models.ChatMessage, error) {
	if n <= 0 {
		n = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(n)

	cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ChatMessage
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	// newest-first from Mongo; flip to chronological
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
