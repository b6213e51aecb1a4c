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

type commentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) ports.CommentRepository {
	return &commentRepository{coll: db.Collection(commentsCollection)}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	poll, err := objectID(comment.PollID)
	if err != nil {
		return err
	}
	author, err := objectID(comment.AuthorID)
	if err != nil {
		return err
	}

	res, err := r.coll.InsertOne(ctx, commentDocument{
		Content:   comment.Content,
		Vote:      poll,
		Author:    author,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	comment.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *commentRepository) ListByPoll(ctx context.Context, pollID string) ([]*domain.Comment, error) {
	oid, err := objectID(pollID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll.Find(ctx, bson.M{"vote": oid}, newestFirst())
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	comments := make([]*domain.Comment, 0, len(docs))
	for i := range docs {
		comments = append(comments, docs[i].toDomain())
	}
	return comments, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*domain.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc commentDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"content": content, "updatedAt": updatedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
