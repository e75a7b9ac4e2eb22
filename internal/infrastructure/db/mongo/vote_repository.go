package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linkboard/linkboard-api/internal/core/domain"
	"github.com/linkboard/linkboard-api/internal/core/ports"
)

const collectionVotes = "votes"

// VoteRepository implements ports.VoteRepository using MongoDB.
type VoteRepository struct {
	db *mongo.Database
}

// NewVoteRepository creates a new VoteRepository.
func NewVoteRepository(db *mongo.Database) ports.VoteRepository {
	return &VoteRepository{db: db}
}

// Upsert writes the vote keyed by (post_id, user_id). The unique compound
// index created by EnsureIndexes keeps it to one document per pair.
func (r *VoteRepository) Upsert(ctx context.Context, v *domain.Vote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.db.Collection(collectionPosts).CountDocuments(ctx, bson.M{"_id": v.PostID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check post: %w", err)
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}

	filter := bson.M{"post_id": v.PostID, "user_id": v.UserID}
	update := bson.M{
		"$set":         bson.M{"vote_type": string(v.Type), "updated_at": v.UpdatedAt.UTC()},
		"$setOnInsert": bson.M{"created_at": v.CreatedAt.UTC()},
	}

	_, err = r.db.Collection(collectionVotes).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}
