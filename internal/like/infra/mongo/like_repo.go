package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/domain"
)

type likeDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user"`
	ProductID primitive.ObjectID `bson:"product"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d likeDoc) toDomain() domain.Like {
	return domain.Like{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		ProductID: d.ProductID.Hex(),
		CreatedAt: d.CreatedAt,
	}
}

type LikeRepo struct {
	col *mongo.Collection
}

func NewLikeRepo(db *mongo.Database) *LikeRepo {
	return &LikeRepo{col: db.Collection("likes")}
}

// EnsureIndexes makes a like unique per (user, product) so a double
// toggle cannot leave duplicates behind.
func (r *LikeRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "product", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *LikeRepo) Create(ctx context.Context, like domain.Like) (domain.Like, error) {
	uid, err := primitive.ObjectIDFromHex(like.UserID)
	if err != nil {
		return domain.Like{}, err
	}
	pid, err := primitive.ObjectIDFromHex(like.ProductID)
	if err != nil {
		return domain.Like{}, err
	}

	doc := likeDoc{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		ProductID: pid,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Like{}, err
	}

	return doc.toDomain(), nil
}

func (r *LikeRepo) Find(ctx context.Context, userID, productID string) (domain.Like, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.Like{}, app.ErrNotFound
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return domain.Like{}, app.ErrNotFound
	}

	var doc likeDoc
	err = r.col.FindOne(ctx, bson.M{"user": uid, "product": pid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Like{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Like{}, err
	}

	return doc.toDomain(), nil
}

func (r *LikeRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return app.ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *LikeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Like, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, app.ErrNotFound
	}

	cur, err := r.col.Find(ctx, bson.M{"user": uid},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []likeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Like, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
