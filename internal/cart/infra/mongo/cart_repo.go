package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/domain"
)

type cartItemDoc struct {
	ProductID primitive.ObjectID `bson:"product"`
	Quantity  int64              `bson:"quantity"`
}

type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user"`
	Items     []cartItemDoc      `bson:"items"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d cartDoc) toDomain() domain.Cart {
	items := make([]domain.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.CartItem{
			ProductID: it.ProductID.Hex(),
			Quantity:  it.Quantity,
		})
	}
	return domain.Cart{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type CartRepo struct {
	col *mongo.Collection
}

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{col: db.Collection("carts")}
}

// EnsureIndexes enforces one cart per user, which is what makes the
// get-or-create race resolvable by a re-read.
func (r *CartRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *CartRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.Cart{}, app.ErrNotFound
	}

	var doc cartDoc
	err = r.col.FindOne(ctx, bson.M{"user": uid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Cart{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}

	return doc.toDomain(), nil
}

func (r *CartRepo) Create(ctx context.Context, userID string) (domain.Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.Cart{}, app.ErrNotFound
	}

	now := time.Now().UTC()
	doc := cartDoc{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		Items:     []cartItemDoc{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Cart{}, err
	}

	return doc.toDomain(), nil
}

// IncrementItem bumps an existing line in place or appends a new one.
// Two updates rather than one upsert because positional operators do
// not mix with $push on the same array.
func (r *CartRepo) IncrementItem(ctx context.Context, cartID string, item domain.CartItem) error {
	cid, pid, err := parsePair(cartID, item.ProductID)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cid, "items.product": pid},
		bson.M{
			"$inc": bson.M{"items.$.quantity": item.Quantity},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	return r.pushItem(ctx, cid, pid, item.Quantity)
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error {
	cid, pid, err := parsePair(cartID, item.ProductID)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cid, "items.product": pid},
		bson.M{
			"$set": bson.M{
				"items.$.quantity": item.Quantity,
				"updated_at":       time.Now().UTC(),
			},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	return r.pushItem(ctx, cid, pid, item.Quantity)
}

func (r *CartRepo) pushItem(ctx context.Context, cartID, productID primitive.ObjectID, quantity int64) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cartID},
		bson.M{
			"$push": bson.M{"items": cartItemDoc{ProductID: productID, Quantity: quantity}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	cid, pid, err := parsePair(cartID, productID)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cid},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product": pid}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, cartID string) error {
	cid, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return app.ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cid},
		bson.M{"$set": bson.M{"items": []cartItemDoc{}, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return app.ErrNotFound
	}
	return nil
}

// ClearIfUnchanged is the optimistic half of checkout's persist-then-
// clear step: the filter on updated_at makes the clear a no-op when the
// cart moved under us.
func (r *CartRepo) ClearIfUnchanged(ctx context.Context, cartID string, since time.Time) (bool, error) {
	cid, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return false, app.ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cid, "updated_at": since},
		bson.M{"$set": bson.M{"items": []cartItemDoc{}, "updated_at": time.Now().UTC()}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func parsePair(cartID, productID string) (primitive.ObjectID, primitive.ObjectID, error) {
	cid, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, app.ErrNotFound
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, app.ErrNotFound
	}
	return cid, pid, nil
}
