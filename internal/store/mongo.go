package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"institute-site-backend/internal/model"
)

// mongoStore implements the Store interface on a MongoDB database, one
// collection per record type.
type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to uri and returns a store over the named database.
func NewMongoStore(ctx context.Context, uri, database string) (Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	s := &mongoStore{client: client, db: client.Database(database)}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *mongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(model.CollectionAdmins).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create admins index: %w", err)
	}
	_, err = s.db.Collection(model.CollectionChatbotRules).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "priority", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create chatbot_rules index: %w", err)
	}
	return nil
}

func (s *mongoStore) FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	err := s.db.Collection(model.CollectionAdmins).FindOne(ctx, bson.M{"username": username}, opts).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin %q: %w", username, err)
	}
	return &admin, nil
}

func (s *mongoStore) InsertAdmin(ctx context.Context, admin *model.Admin) error {
	stamp(&admin.CreatedAt)
	return s.insert(ctx, model.CollectionAdmins, admin)
}

func (s *mongoStore) ListFaculty(ctx context.Context) ([]model.Faculty, error) {
	return findAll[model.Faculty](ctx, s.db, model.CollectionFaculty, bson.D{{Key: "_id", Value: 1}})
}

func (s *mongoStore) InsertFaculty(ctx context.Context, f *model.Faculty) error {
	stamp(&f.CreatedAt)
	return s.insert(ctx, model.CollectionFaculty, f)
}

func (s *mongoStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	return findAll[model.Event](ctx, s.db, model.CollectionEvents, bson.D{{Key: "_id", Value: 1}})
}

func (s *mongoStore) InsertEvent(ctx context.Context, e *model.Event) error {
	stamp(&e.CreatedAt)
	return s.insert(ctx, model.CollectionEvents, e)
}

func (s *mongoStore) ListArticles(ctx context.Context) ([]model.Article, error) {
	return findAll[model.Article](ctx, s.db, model.CollectionArticles, bson.D{{Key: "_id", Value: 1}})
}

func (s *mongoStore) InsertArticle(ctx context.Context, a *model.Article) error {
	stamp(&a.CreatedAt)
	return s.insert(ctx, model.CollectionArticles, a)
}

func (s *mongoStore) ListChatbotRules(ctx context.Context) ([]model.ChatbotRule, error) {
	sort := bson.D{{Key: "priority", Value: 1}, {Key: "_id", Value: 1}}
	return findAll[model.ChatbotRule](ctx, s.db, model.CollectionChatbotRules, sort)
}

func (s *mongoStore) InsertChatbotRule(ctx context.Context, r *model.ChatbotRule) error {
	stamp(&r.CreatedAt)
	return s.insert(ctx, model.CollectionChatbotRules, r)
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *mongoStore) insert(ctx context.Context, collection string, doc any) error {
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}

func findAll[T any](ctx context.Context, db *mongo.Database, collection string, sort bson.D) ([]T, error) {
	cur, err := db.Collection(collection).Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	records := []T{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return records, nil
}

// stamp fills a zero creation time, which gorm does on its own.
func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}
