package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type pollRepository struct {
	coll *mongo.Collection
}

func NewPollRepository(db *mongo.Database) ports.PollRepository {
	return &pollRepository{coll: db.Collection(pollsCollection)}
}

func (r *pollRepository) Create(ctx context.Context, poll *domain.Poll) error {
	doc, err := newPollDocument(poll)
	if err != nil {
		return err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	poll.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id string) (*domain.Poll, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc pollDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *pollRepository) List(ctx context.Context) ([]*domain.Poll, error) {
	return r.find(ctx, bson.M{})
}

func (r *pollRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.Poll, error) {
	return r.find(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

func (r *pollRepository) IncrementViews(ctx context.Context, id string) (*domain.Poll, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc pollDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"viewCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}
	return doc.toDomain(), nil
}

// AppendVoter pushes the voter only when the filter proves the voter is absent from every
// option array, so the check and the append happen in one atomic document update.
func (r *pollRepository) AppendVoter(ctx context.Context, pollID string, optionIndex int, userID string) error {
	oid, err := objectID(pollID)
	if err != nil {
		return err
	}
	voter, err := objectID(userID)
	if err != nil {
		return err
	}
	if optionIndex < 0 {
		return domain.ErrInvalidOption
	}

	option := fmt.Sprintf("options.%d", optionIndex)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"_id":           oid,
			option:          bson.M{"$exists": true},
			"options.votes": bson.M{"$ne": voter},
		},
		bson.M{"$push": bson.M{option + ".votes": voter}},
	)
	if err != nil {
		return fmt.Errorf("failed to append vote: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	poll, err := r.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if optionIndex >= len(poll.Options) {
		return domain.ErrInvalidOption
	}
	return domain.ErrAlreadyVoted
}

func (r *pollRepository) find(ctx context.Context, filter bson.M) ([]*domain.Poll, error) {
	cursor, err := r.coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	var docs []pollDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode polls: %w", err)
	}

	polls := make([]*domain.Poll, 0, len(docs))
	for i := range docs {
		polls = append(polls, docs[i].toDomain())
	}
	return polls, nil
}
