package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	posts *mongo.Collection
	votes *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		posts: db.Collection(collectionPosts),
		votes: db.Collection(collectionVotes),
	}
}

type mongoPost struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (p mongoPost) toDomain() domain.Post {
	return domain.Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

// mongoPostView is the shape produced by the List aggregation.
type mongoPostView struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
	Username  string    `bson:"username"`
	Votes     int64     `bson:"votes"`
}

// Create inserts a new post document.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
	}
	if _, err := r.posts.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// List joins each post with its author and folds its votes into a score.
func (r *PostRepository) List(ctx context.Context) ([]domain.PostView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: "$author"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionVotes},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "post_id"},
			{Key: "as", Value: "vote_docs"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "content", Value: 1},
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "username", Value: "$author.username"},
			{Key: "votes", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$map", Value: bson.D{
				{Key: "input", Value: "$vote_docs"},
				{Key: "as", Value: "v"},
				{Key: "in", Value: bson.D{{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$$v.vote_type", string(domain.VoteUp)}}},
					domain.VoteUp.Weight(), domain.VoteDown.Weight(),
				}}}},
			}}}}}},
		}}},
	}

	cur, err := r.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPostView
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	out := make([]domain.PostView, len(docs))
	for i, d := range docs {
		post := mongoPost{ID: d.ID, Title: d.Title, Content: d.Content, UserID: d.UserID, CreatedAt: d.CreatedAt}
		out[i] = domain.PostView{Post: post.toDomain(), Username: d.Username, Votes: d.Votes}
	}
	return out, nil
}

// Update edits the post only when the filter on both id and owner matches.
func (r *PostRepository) Update(ctx context.Context, id, ownerID, title, content string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "user_id": ownerID}
	update := bson.M{"$set": bson.M{"title": title, "content": content}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoPost
	if err := r.posts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.missOrForbidden(ctx, id)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	p := doc.toDomain()
	return &p, nil
}

// Delete removes the post, then its votes.
func (r *PostRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return r.missOrForbidden(ctx, id)
	}

	if _, err := r.votes.DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
		return fmt.Errorf("delete post votes: %w", err)
	}
	return nil
}

func (r *PostRepository) missOrForbidden(ctx context.Context, id string) error {
	n, err := r.posts.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check post: %w", err)
	}
	if n == 0 {
		return domain.ErrPostNotFound
	}
	return domain.ErrNotAuthorized
}
