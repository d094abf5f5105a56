package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/domain"
)

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user"`
	ProductID primitive.ObjectID `bson:"product"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d reviewDoc) toDomain() domain.Review {
	return domain.Review{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		ProductID: d.ProductID.Hex(),
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type ReviewRepo struct {
	col *mongo.Collection
}

func NewReviewRepo(db *mongo.Database) *ReviewRepo {
	return &ReviewRepo{col: db.Collection("reviews")}
}

func (r *ReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	uid, err := primitive.ObjectIDFromHex(rv.UserID)
	if err != nil {
		return domain.Review{}, err
	}
	pid, err := primitive.ObjectIDFromHex(rv.ProductID)
	if err != nil {
		return domain.Review{}, err
	}

	now := time.Now().UTC()
	doc := reviewDoc{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		ProductID: pid,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Review{}, err
	}

	return doc.toDomain(), nil
}

func (r *ReviewRepo) Get(ctx context.Context, id string) (domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Review{}, app.ErrNotFound
	}

	var doc reviewDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Review{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Review{}, err
	}

	return doc.toDomain(), nil
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, app.ErrNotFound
	}

	cur, err := r.col.Find(ctx, bson.M{"product": pid},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Review, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ReviewRepo) Update(ctx context.Context, rv domain.Review) (domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(rv.ID)
	if err != nil {
		return domain.Review{}, app.ErrNotFound
	}

	var doc reviewDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"rating":     rv.Rating,
			"comment":    rv.Comment,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Review{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Review{}, err
	}

	return doc.toDomain(), nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
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
