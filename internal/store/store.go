package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"institute-site-backend/internal/model"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// Store defines the document store operations the site needs. Every
// collection is append-only: there are finds and inserts, nothing else.
type Store interface {
	FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	InsertAdmin(ctx context.Context, admin *model.Admin) error

	ListFaculty(ctx context.Context) ([]model.Faculty, error)
	InsertFaculty(ctx context.Context, f *model.Faculty) error

	ListEvents(ctx context.Context) ([]model.Event, error)
	InsertEvent(ctx context.Context, e *model.Event) error

	ListArticles(ctx context.Context) ([]model.Article, error)
	InsertArticle(ctx context.Context, a *model.Article) error

	// ListChatbotRules returns every rule ordered by priority, then insertion order.
	ListChatbotRules(ctx context.Context) ([]model.ChatbotRule, error)
	InsertChatbotRule(ctx context.Context, r *model.ChatbotRule) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).Where("username = ?", username).Order("id").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin %q: %w", username, err)
	}
	return &admin, nil
}

func (s *gormStore) InsertAdmin(ctx context.Context, admin *model.Admin) error {
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("failed to insert admin %q: %w", admin.Username, err)
	}
	return nil
}

func (s *gormStore) ListFaculty(ctx context.Context) ([]model.Faculty, error) {
	return listAll[model.Faculty](ctx, s.db, model.CollectionFaculty)
}

func (s *gormStore) InsertFaculty(ctx context.Context, f *model.Faculty) error {
	return insertOne(ctx, s.db, model.CollectionFaculty, f)
}

func (s *gormStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	return listAll[model.Event](ctx, s.db, model.CollectionEvents)
}

func (s *gormStore) InsertEvent(ctx context.Context, e *model.Event) error {
	return insertOne(ctx, s.db, model.CollectionEvents, e)
}

func (s *gormStore) ListArticles(ctx context.Context) ([]model.Article, error) {
	return listAll[model.Article](ctx, s.db, model.CollectionArticles)
}

func (s *gormStore) InsertArticle(ctx context.Context, a *model.Article) error {
	return insertOne(ctx, s.db, model.CollectionArticles, a)
}

func (s *gormStore) ListChatbotRules(ctx context.Context) ([]model.ChatbotRule, error) {
	var rules []model.ChatbotRule
	if err := s.db.WithContext(ctx).Order("priority ASC").Order("id ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", model.CollectionChatbotRules, err)
	}
	return rules, nil
}

func (s *gormStore) InsertChatbotRule(ctx context.Context, r *model.ChatbotRule) error {
	return insertOne(ctx, s.db, model.CollectionChatbotRules, r)
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// listAll returns the whole collection in insertion order.
func listAll[T any](ctx context.Context, db *gorm.DB, collection string) ([]T, error) {
	var records []T
	if err := db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return records, nil
}

func insertOne[T any](ctx context.Context, db *gorm.DB, collection string, record *T) error {
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}
