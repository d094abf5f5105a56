package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/domain"
)

type orderLineDoc struct {
	ProductID  primitive.ObjectID `bson:"product"`
	Name       string             `bson:"name"`
	Picture    string             `bson:"picture"`
	Quantity   int64              `bson:"quantity"`
	PriceOfOne float64            `bson:"priceOfOne"`
	LineTotal  float64            `bson:"line_total"`
}

type orderDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"user"`
	Lines      []orderLineDoc     `bson:"products"`
	TotalPrice float64            `bson:"totalPrice"`
	Address    string             `bson:"address"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d orderDoc) toDomain() domain.Order {
	lines := make([]domain.Line, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, domain.Line{
			ProductID:  l.ProductID.Hex(),
			Name:       l.Name,
			Picture:    l.Picture,
			Quantity:   l.Quantity,
			PriceOfOne: l.PriceOfOne,
			LineTotal:  l.LineTotal,
		})
	}
	return domain.Order{
		ID:         d.ID.Hex(),
		UserID:     d.UserID.Hex(),
		Lines:      lines,
		TotalPrice: d.TotalPrice,
		Address:    d.Address,
		Status:     domain.Status(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type OrderRepo struct {
	col *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{col: db.Collection("orders")}
}

func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	uid, err := primitive.ObjectIDFromHex(o.UserID)
	if err != nil {
		return domain.Order{}, err
	}

	lines := make([]orderLineDoc, 0, len(o.Lines))
	for _, l := range o.Lines {
		pid, err := primitive.ObjectIDFromHex(l.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		lines = append(lines, orderLineDoc{
			ProductID:  pid,
			Name:       l.Name,
			Picture:    l.Picture,
			Quantity:   l.Quantity,
			PriceOfOne: l.PriceOfOne,
			LineTotal:  l.LineTotal,
		})
	}

	now := time.Now().UTC()
	doc := orderDoc{
		ID:         primitive.NewObjectID(),
		UserID:     uid,
		Lines:      lines,
		TotalPrice: o.TotalPrice,
		Address:    o.Address,
		Status:     string(o.Status),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Order{}, err
	}

	return doc.toDomain(), nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	var doc orderDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	return doc.toDomain(), nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
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

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	var doc orderDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	return doc.toDomain(), nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
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
