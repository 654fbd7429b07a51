package storage

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"gamebacklog/backend/internal/models"
)

// librarySnapshot is the single-row table holding the serialized collection.
type librarySnapshot struct {
	Key       string `gorm:"primaryKey;size:64"`
	Data      []byte
	UpdatedAt time.Time
}

// SnapshotKey is the well-known key the collection is stored under.
const SnapshotKey = "game-library"

// GormStore keeps the library snapshot in a relational database. Works with
// any gorm dialect; sqlite for a local install, postgres for a server one.
type GormStore struct {
	db  *gorm.DB
	key string
	log *logrus.Logger
}

// OpenSQLite opens a local sqlite database at path.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), gormConfig())
}

// OpenPostgres connects to a postgres database by DSN.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

func gormConfig() *gorm.Config {
	customLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	return &gorm.Config{Logger: customLogger}
}

// NewGormStore migrates the snapshot table and returns the store.
func NewGormStore(db *gorm.DB, logger *logrus.Logger) (*GormStore, error) {
	if err := db.AutoMigrate(&librarySnapshot{}); err != nil {
		return nil, persistErr("migrate", err)
	}
	return &GormStore{db: db, key: SnapshotKey, log: logger}, nil
}

func (s *GormStore) Load(ctx context.Context) ([]models.Game, error) {
	var snap librarySnapshot
	err := s.db.WithContext(ctx).First(&snap, "key = ?", s.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.Game{}, nil
	}
	if err != nil {
		return nil, persistErr("load", err)
	}

	games, err := decodeGames(snap.Data, s.log)
	if err != nil {
		return nil, persistErr("load", err)
	}
	return games, nil
}

func (s *GormStore) Save(ctx context.Context, games []models.Game) error {
	data, err := encodeGames(games)
	if err != nil {
		return persistErr("save", err)
	}

	snap := librarySnapshot{Key: s.key, Data: data, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&snap).Error
	if err != nil {
		return persistErr("save", err)
	}
	return nil
}
