// Package storetest provides store backends for tests in other packages.
package storetest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"institute-site-backend/internal/db"
	"institute-site-backend/internal/model"
	"institute-site-backend/internal/store"
)

// NewSQLite returns a migrated store over a private in-memory SQLite database.
func NewSQLite(t *testing.T) store.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return store.NewGormStore(gormDB)
}

// Failing is a store whose every operation returns Err.
type Failing struct {
	Err error
}

func (f Failing) FindAdminByUsername(context.Context, string) (*model.Admin, error) {
	return nil, f.Err
}
func (f Failing) InsertAdmin(context.Context, *model.Admin) error               { return f.Err }
func (f Failing) ListFaculty(context.Context) ([]model.Faculty, error)          { return nil, f.Err }
func (f Failing) InsertFaculty(context.Context, *model.Faculty) error           { return f.Err }
func (f Failing) ListEvents(context.Context) ([]model.Event, error)             { return nil, f.Err }
func (f Failing) InsertEvent(context.Context, *model.Event) error               { return f.Err }
func (f Failing) ListArticles(context.Context) ([]model.Article, error)         { return nil, f.Err }
func (f Failing) InsertArticle(context.Context, *model.Article) error           { return f.Err }
func (f Failing) ListChatbotRules(context.Context) ([]model.ChatbotRule, error) { return nil, f.Err }
func (f Failing) InsertChatbotRule(context.Context, *model.ChatbotRule) error   { return f.Err }
func (f Failing) Ping(context.Context) error                                    { return f.Err }
func (f Failing) Close(context.Context) error                                   { return nil }
