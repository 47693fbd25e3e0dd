// Package mongodb stores contacts as documents in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/baharkarakas/contact-manager/internal/models"
	"github.com/baharkarakas/contact-manager/internal/repository"
)

const (
	DefaultDatabase = "contact_manager"
	collectionName  = "contacts"
)

type contactDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Phone     string        `bson:"phone"`
	Message   string        `bson:"message"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d contactDoc) model() models.Contact {
	return models.Contact{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ repository.Contacts = (*Store)(nil)

// Connect dials uri and ensures the createdAt index. The database is taken
// from the uri path, falling back to DefaultDatabase.
func Connect(ctx context.Context, uri string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{
		client: client,
		coll:   client.Database(DatabaseName(uri)).Collection(collectionName),
	}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create createdAt index: %w", err)
	}
	return s, nil
}

// DatabaseName extracts the database from a mongodb:// uri.
func DatabaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return DefaultDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return DefaultDatabase
}

func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

func (s *Store) Create(ctx context.Context, c *models.Contact) error {
	doc := contactDoc{
		ID:        bson.NewObjectID(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	var docs []contactDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}

	out := make([]models.Contact, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Contact, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Contact{}, models.ErrNotFound
	}
	var d contactDoc
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d); err != nil {
		return models.Contact{}, translate(err)
	}
	return d.model(), nil
}

func (s *Store) Update(ctx context.Context, c models.Contact) (models.Contact, error) {
	oid, err := bson.ObjectIDFromHex(c.ID)
	if err != nil {
		return models.Contact{}, models.ErrNotFound
	}
	set := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: c.Name},
		{Key: "email", Value: c.Email},
		{Key: "phone", Value: c.Phone},
		{Key: "message", Value: c.Message},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d contactDoc
	if err := s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, set, opts).Decode(&d); err != nil {
		return models.Contact{}, translate(err)
	}
	return d.model(), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, nil) }

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	return err
}
