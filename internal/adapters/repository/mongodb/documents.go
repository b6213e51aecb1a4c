package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

type pollDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Options     []optionDocument   `bson:"options"`
	IsAnonymous bool               `bson:"isAnonymous"`
	StartTime   time.Time          `bson:"startTime"`
	EndTime     time.Time          `bson:"endTime"`
	CreatedBy   primitive.ObjectID `bson:"createdBy"`
	ViewCount   int64              `bson:"viewCount"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type optionDocument struct {
	Text  string               `bson:"text"`
	Votes []primitive.ObjectID `bson:"votes"`
}

func newPollDocument(p *domain.Poll) (*pollDocument, error) {
	creator, err := objectID(p.CreatedBy)
	if err != nil {
		return nil, err
	}

	doc := &pollDocument{
		Title:       p.Title,
		Description: p.Description,
		Options:     make([]optionDocument, 0, len(p.Options)),
		IsAnonymous: p.IsAnonymous,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		CreatedBy:   creator,
		ViewCount:   p.ViewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, opt := range p.Options {
		// votes must be an array, never null, for $push to apply.
		od := optionDocument{Text: opt.Text, Votes: []primitive.ObjectID{}}
		for _, voter := range opt.Voters {
			oid, err := objectID(voter)
			if err != nil {
				return nil, err
			}
			od.Votes = append(od.Votes, oid)
		}
		doc.Options = append(doc.Options, od)
	}
	return doc, nil
}

func (d *pollDocument) toDomain() *domain.Poll {
	poll := &domain.Poll{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Options:     make([]domain.Option, 0, len(d.Options)),
		IsAnonymous: d.IsAnonymous,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		CreatedBy:   d.CreatedBy.Hex(),
		ViewCount:   d.ViewCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for _, od := range d.Options {
		opt := domain.Option{Text: od.Text, Voters: make([]string, 0, len(od.Votes))}
		for _, voter := range od.Votes {
			opt.Voters = append(opt.Voters, voter.Hex())
		}
		poll.Options = append(poll.Options, opt)
	}
	return poll
}

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Content   string             `bson:"content"`
	Vote      primitive.ObjectID `bson:"vote"`
	Author    primitive.ObjectID `bson:"author"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *commentDocument) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		PollID:    d.Vote.Hex(),
		AuthorID:  d.Author.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
