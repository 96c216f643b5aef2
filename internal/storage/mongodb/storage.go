package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/domain/orderid"
	"github.com/polkiloo/courierdesk/internal/domain/repository"
)

const (
	ordersCollection   = "orders"
	countersCollection = "counters"
	orderCounterID     = "orders"
)

// Storage is the MongoDB backed order store.
type Storage struct {
	client   *mongo.Client
	orders   *mongo.Collection
	counters *mongo.Collection
	logger   *slog.Logger
	now      func() time.Time
}

type orderRepository struct {
	storage *Storage
}

type orderSequence struct {
	storage *Storage
}

// New connects to MongoDB and prepares collection indexes.
func New(ctx context.Context, uri, database string, logger *slog.Logger) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	storage := newWithDatabase(client, client.Database(database), logger)
	if err := storage.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return storage, nil
}

func newWithDatabase(client *mongo.Client, db *mongo.Database, logger *slog.Logger) *Storage {
	return &Storage{
		client:   client,
		orders:   db.Collection(ordersCollection),
		counters: db.Collection(countersCollection),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "sequence", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	s.logger.Debug("mongo indexes ready", slog.String("collection", ordersCollection))
	return nil
}

// Close disconnects the client.
func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// HealthCheck pings the primary.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Sequence() repository.OrderSequence {
	return &orderSequence{storage: s}
}

type orderDocument struct {
	ID              string    `bson:"_id"`
	OrderID         string    `bson:"orderId"`
	Sequence        int64     `bson:"sequence"`
	FirstName       string    `bson:"firstName"`
	LastName        string    `bson:"lastName"`
	PhoneNumber     string    `bson:"phoneNumber"`
	PackageName     string    `bson:"packageName"`
	PackageCode     string    `bson:"packageCode,omitempty"`
	PackageSize     string    `bson:"packageSize,omitempty"`
	PickupAddress   string    `bson:"pickupAddress"`
	DeliveryAddress string    `bson:"deliveryAddress"`
	Distance        float64   `bson:"distance"`
	IsUrgent        bool      `bson:"isUrgent"`
	DeliveryTime    string    `bson:"deliveryTime,omitempty"`
	Notes           string    `bson:"notes,omitempty"`
	Price           float64   `bson:"price"`
	Status          string    `bson:"status"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func toDocument(o *model.Order) orderDocument {
	return orderDocument{
		ID:              o.ID,
		OrderID:         o.OrderID,
		Sequence:        o.Sequence,
		FirstName:       o.FirstName,
		LastName:        o.LastName,
		PhoneNumber:     o.PhoneNumber,
		PackageName:     o.PackageName,
		PackageCode:     o.PackageCode,
		PackageSize:     o.PackageSize,
		PickupAddress:   o.PickupAddress,
		DeliveryAddress: o.DeliveryAddress,
		Distance:        o.Distance,
		IsUrgent:        o.IsUrgent,
		DeliveryTime:    o.DeliveryTime,
		Notes:           o.Notes,
		Price:           o.Price,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (d orderDocument) toModel() model.Order {
	return model.Order{
		ID:              d.ID,
		OrderID:         d.OrderID,
		Sequence:        d.Sequence,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		PhoneNumber:     d.PhoneNumber,
		PackageName:     d.PackageName,
		PackageCode:     d.PackageCode,
		PackageSize:     d.PackageSize,
		PickupAddress:   d.PickupAddress,
		DeliveryAddress: d.DeliveryAddress,
		Distance:        d.Distance,
		IsUrgent:        d.IsUrgent,
		DeliveryTime:    d.DeliveryTime,
		Notes:           d.Notes,
		Price:           d.Price,
		Status:          model.OrderStatus(d.Status),
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if _, err := r.storage.orders.InsertOne(ctx, toDocument(order)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	stored := *order
	return &stored, nil
}

func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var doc orderDocument
	err := r.storage.orders.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	order := doc.toModel()
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "sequence", Value: -1}})
	cur, err := r.storage.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	out := []model.Order{}
	for cur.Next(ctx) {
		var doc orderDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		out = append(out, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": r.storage.now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	err := r.storage.orders.FindOneAndUpdate(ctx, bson.M{"orderId": orderID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order := doc.toModel()
	return &order, nil
}

func (r *orderRepository) Stats(ctx context.Context) (*model.OrderStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.storage.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	defer cur.Close(ctx)

	stats := &model.OrderStats{ByStatus: make(map[model.OrderStatus]int64, len(model.OrderStatuses))}
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode stats: %w", err)
		}
		stats.ByStatus[model.OrderStatus(row.Status)] = row.Count
		stats.Total += row.Count
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// --- OrderSequence implementation ---

// NextOrderID increments the shared counter document, creating it on first use.
func (s *orderSequence) NextOrderID(ctx context.Context) (string, int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.storage.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": orderCounterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", 0, fmt.Errorf("next order number: %w", err)
	}
	if counter.Seq < orderid.First {
		return "", 0, fmt.Errorf("next order number: counter at %d", counter.Seq)
	}
	return orderid.Format(counter.Seq), counter.Seq, nil
}

var _ repository.Factory = (*Storage)(nil)
