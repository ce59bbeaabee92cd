// Package mongo is the MongoDB record store. It reads and writes the
// games, gm_games and users collections.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/naitik09090/backend-games/internal/config"
	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/lazyconn"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/store/docs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when neither the URL nor the config names one.
const DefaultDatabase = "test"

// Options configures the Mongo store.
type Options struct {
	URL            string
	Database       string        // overrides the database in URL
	ConnectTimeout time.Duration // bound on each dial attempt
}

// Store is the Mongo record store. The client is dialled on first use.
type Store struct {
	conn     *lazyconn.Conn[*mongo.Database]
	url      string
	database string
	logger   logger.Logger
}

// New validates the URL and returns a store without dialling.
func New(opts Options, log logger.Logger) (*Store, error) {
	cs, err := connstring.ParseAndValidate(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo url: %w", err)
	}
	db := opts.Database
	if db == "" {
		db = cs.Database
	}
	if db == "" {
		db = DefaultDatabase
	}

	s := &Store{url: opts.URL, database: db, logger: log}
	s.conn = lazyconn.New(s.open, opts.ConnectTimeout)
	return s, nil
}

func (s *Store) open(ctx context.Context) (*mongo.Database, error) {
	target := config.RedactURL(s.url)
	s.logger.Info("connecting to mongo", logger.String("target", target), logger.String("database", s.database))

	start := time.Now()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.url))
	if err != nil {
		s.logger.Error("mongo unavailable", logger.String("target", target), logger.Error(err))
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		s.logger.Error("mongo unavailable", logger.String("target", target), logger.Error(err))
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}

	db := client.Database(s.database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	s.logger.Info("connected to mongo",
		logger.String("target", target),
		logger.Duration("elapsed", time.Since(start)))
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(docs.UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := db.Collection(docs.LocalCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	return err
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.conn.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return db.Collection(name), nil
}

func (s *Store) Local() domain.LocalGameStore     { return localStore{s} }
func (s *Store) Catalog() domain.CatalogGameStore { return catalogStore{s} }
func (s *Store) Users() domain.UserStore          { return userStore{s} }

func (s *Store) Backend() string { return "mongo" }

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.conn.Get(ctx)
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) Describe(ctx context.Context) (domain.StoreInfo, error) {
	_, connected := s.conn.Peek()
	return domain.StoreInfo{
		Backend:     "mongo",
		Target:      config.RedactURL(s.url),
		Database:    s.database,
		Collections: []string{docs.LocalCollection, docs.CatalogCollection, docs.UserCollection},
		Connected:   connected,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	if db, ok := s.conn.Reset(); ok {
		return db.Client().Disconnect(ctx)
	}
	return nil
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	db, err := s.conn.Get(ctx)
	if err != nil {
		return err
	}
	return db.Drop(ctx)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}
