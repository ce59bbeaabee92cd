package mongo

import (
	"context"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/store/docs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	localSort   = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	catalogSort = bson.D{{Key: "_id", Value: -1}}
)

func page(sort bson.D, skip, limit int) *options.FindOptions {
	return options.Find().SetSort(sort).SetSkip(int64(skip)).SetLimit(int64(limit))
}

// ─────────────────────────────────────────────────────────────────
// Local games
// ─────────────────────────────────────────────────────────────────

type localStore struct{ s *Store }

func (l localStore) Insert(ctx context.Context, g *domain.LocalGame) error {
	return l.InsertMany(ctx, []*domain.LocalGame{g})
}

func (l localStore) InsertMany(ctx context.Context, games []*domain.LocalGame) error {
	if len(games) == 0 {
		return nil
	}
	coll, err := l.s.collection(ctx, docs.LocalCollection)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	batch := make([]interface{}, 0, len(games))
	for _, g := range games {
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		if g.UpdatedAt.IsZero() {
			g.UpdatedAt = g.CreatedAt
		}
		d, err := docs.FromLocal(g)
		if err != nil {
			return err
		}
		g.ID = d.ID.Hex()
		batch = append(batch, d)
	}

	if len(batch) == 1 {
		_, err = coll.InsertOne(ctx, batch[0])
	} else {
		_, err = coll.InsertMany(ctx, batch)
	}
	return duplicate(err)
}

func (l localStore) Get(ctx context.Context, id string) (*domain.LocalGame, error) {
	oid, err := docs.ObjectID(id)
	if err != nil {
		return nil, err
	}
	coll, err := l.s.collection(ctx, docs.LocalCollection)
	if err != nil {
		return nil, err
	}
	var d docs.Local
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, notFound(err)
	}
	return d.Domain(), nil
}

func (l localStore) List(ctx context.Context, skip, limit int) ([]*domain.LocalGame, error) {
	if limit <= 0 {
		return nil, nil
	}
	coll, err := l.s.collection(ctx, docs.LocalCollection)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.D{}, page(localSort, skip, limit))
	if err != nil {
		return nil, err
	}
	var rows []docs.Local
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]*domain.LocalGame, len(rows))
	for i := range rows {
		out[i] = rows[i].Domain()
	}
	return out, nil
}

func (l localStore) Count(ctx context.Context) (int, error) {
	coll, err := l.s.collection(ctx, docs.LocalCollection)
	if err != nil {
		return 0, err
	}
	n, err := coll.CountDocuments(ctx, bson.D{})
	return int(n), err
}

func (l localStore) Update(ctx context.Context, g *domain.LocalGame) error {
	oid, err := docs.ObjectID(g.ID)
	if err != nil {
		return err
	}
	d, err := docs.FromLocal(g)
	if err != nil {
		return err
	}
	coll, err := l.s.collection(ctx, docs.LocalCollection)
	if err != nil {
		return err
	}
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": oid}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (l localStore) Delete(ctx context.Context, id string) error {
	oid, err := docs.ObjectID(id)
	if err != nil {
		return err
	}
	coll, err := l.s.collection(ctx, docs.LocalCollection)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (l localStore) DeleteByNames(ctx context.Context, names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}
	coll, err := l.s.collection(ctx, docs.LocalCollection)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, bson.M{"gameName": bson.M{"$in": names}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

func (l localStore) DeleteAll(ctx context.Context) (int, error) {
	coll, err := l.s.collection(ctx, docs.LocalCollection)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

// ─────────────────────────────────────────────────────────────────
// Catalog games
// ─────────────────────────────────────────────────────────────────

type catalogStore struct{ s *Store }

func (c catalogStore) Insert(ctx context.Context, g *domain.CatalogGame) error {
	return c.InsertMany(ctx, []*domain.CatalogGame{g})
}

func (c catalogStore) InsertMany(ctx context.Context, games []*domain.CatalogGame) error {
	if len(games) == 0 {
		return nil
	}
	coll, err := c.s.collection(ctx, docs.CatalogCollection)
	if err != nil {
		return err
	}

	batch := make([]interface{}, 0, len(games))
	for _, g := range games {
		d, err := docs.FromCatalog(g)
		if err != nil {
			return err
		}
		g.ID = d.ID.Hex()
		batch = append(batch, d)
	}

	if len(batch) == 1 {
		_, err = coll.InsertOne(ctx, batch[0])
	} else {
		_, err = coll.InsertMany(ctx, batch)
	}
	return duplicate(err)
}

func (c catalogStore) Get(ctx context.Context, id string) (*domain.CatalogGame, error) {
	oid, err := docs.ObjectID(id)
	if err != nil {
		return nil, err
	}
	coll, err := c.s.collection(ctx, docs.CatalogCollection)
	if err != nil {
		return nil, err
	}
	var d docs.Catalog
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, notFound(err)
	}
	return d.Domain(), nil
}

func (c catalogStore) List(ctx context.Context, skip, limit int) ([]*domain.CatalogGame, error) {
	if limit <= 0 {
		return nil, nil
	}
	coll, err := c.s.collection(ctx, docs.CatalogCollection)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.D{}, page(catalogSort, skip, limit))
	if err != nil {
		return nil, err
	}
	var rows []docs.Catalog
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]*domain.CatalogGame, len(rows))
	for i := range rows {
		out[i] = rows[i].Domain()
	}
	return out, nil
}

func (c catalogStore) Count(ctx context.Context) (int, error) {
	coll, err := c.s.collection(ctx, docs.CatalogCollection)
	if err != nil {
		return 0, err
	}
	n, err := coll.CountDocuments(ctx, bson.D{})
	return int(n), err
}

func (c catalogStore) Update(ctx context.Context, g *domain.CatalogGame) error {
	oid, err := docs.ObjectID(g.ID)
	if err != nil {
		return err
	}
	d, err := docs.FromCatalog(g)
	if err != nil {
		return err
	}
	coll, err := c.s.collection(ctx, docs.CatalogCollection)
	if err != nil {
		return err
	}
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": oid}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c catalogStore) Delete(ctx context.Context, id string) error {
	oid, err := docs.ObjectID(id)
	if err != nil {
		return err
	}
	coll, err := c.s.collection(ctx, docs.CatalogCollection)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────────

type userStore struct{ s *Store }

func (u userStore) Insert(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	d, err := docs.FromUser(user)
	if err != nil {
		return err
	}
	coll, err := u.s.collection(ctx, docs.UserCollection)
	if err != nil {
		return err
	}
	if _, err := coll.InsertOne(ctx, d); err != nil {
		return duplicate(err)
	}
	user.ID = d.ID.Hex()
	return nil
}

func (u userStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	coll, err := u.s.collection(ctx, docs.UserCollection)
	if err != nil {
		return nil, err
	}
	var d docs.User
	if err := coll.FindOne(ctx, bson.M{"username": username}).Decode(&d); err != nil {
		return nil, notFound(err)
	}
	return d.Domain(), nil
}
