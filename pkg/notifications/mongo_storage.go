package notifications

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultMongoCollection is the collection MongoStorage uses unless told otherwise.
const DefaultMongoCollection = "monits"

// MongoStorage stores notifications as documents keyed by notification id.
type MongoStorage struct {
	coll *mongo.Collection
}

// MongoOption configures a MongoStorage.
type MongoOption func(*mongoOptions)

type mongoOptions struct {
	collection string
}

// WithCollection overrides the collection name.
func WithCollection(name string) MongoOption {
	return func(o *mongoOptions) {
		if name != "" {
			o.collection = name
		}
	}
}

func NewMongoStorage(db *mongo.Database, opts ...MongoOption) *MongoStorage {
	o := mongoOptions{collection: DefaultMongoCollection}
	for _, opt := range opts {
		opt(&o)
	}
	return &MongoStorage{coll: db.Collection(o.collection)}
}

// EnsureIndexes creates the indexes List and CountUnread rely on.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "read", Value: 1}}},
	})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStorage) Create(ctx context.Context, notif Notification) error {
	if err := notif.Validate(); err != nil {
		return err
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now().UTC()
	}
	if notif.Type == "" {
		notif.Type = TypeInfo
	}

	if _, err := s.coll.InsertOne(ctx, notif); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, owner, id string) (*Notification, error) {
	var notif Notification
	err := s.coll.FindOne(ctx, ownedBy(owner, id)).Decode(&notif)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, errors.Join(ErrStorage, err)
	}
	return &notif, nil
}

func (s *MongoStorage) List(ctx context.Context, owner string, opts ListOptions) ([]Notification, error) {
	filter := unexpired(owner)
	if opts.OnlyUnread {
		filter["read"] = false
	}
	if len(opts.Types) > 0 {
		filter["type"] = bson.M{"$in": opts.Types}
	}
	if opts.Since != nil {
		filter["created_at"] = bson.M{"$gte": *opts.Since}
	}

	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		find.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.coll.Find(ctx, filter, find)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	notifs := []Notification{}
	if err := cursor.All(ctx, &notifs); err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return notifs, nil
}

func (s *MongoStorage) CountUnread(ctx context.Context, owner string) (int, error) {
	filter := unexpired(owner)
	filter["read"] = false

	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return int(n), nil
}

func (s *MongoStorage) MarkRead(ctx context.Context, owner, id string) error {
	filter := ownedBy(owner, id)
	filter["read"] = false

	res, err := s.coll.UpdateOne(ctx, filter, markReadUpdate())
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// nothing unread matched: either already read or not ours
	n, err := s.coll.CountDocuments(ctx, ownedBy(owner, id))
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *MongoStorage) MarkAllRead(ctx context.Context, owner string) (int, error) {
	res, err := s.coll.UpdateMany(ctx, bson.M{"owner": owner, "read": false}, markReadUpdate())
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return int(res.ModifiedCount), nil
}

func (s *MongoStorage) Delete(ctx context.Context, owner, id string) error {
	res, err := s.coll.DeleteOne(ctx, ownedBy(owner, id))
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *MongoStorage) DeleteAll(ctx context.Context, owner string) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"owner": owner})
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return int(res.DeletedCount), nil
}

func ownedBy(owner, id string) bson.M {
	return bson.M{"_id": id, "owner": owner}
}

func unexpired(owner string) bson.M {
	return bson.M{
		"owner": owner,
		"$or": bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": time.Now().UTC()}},
		},
	}
}

func markReadUpdate() bson.M {
	return bson.M{"$set": bson.M{"read": true, "read_at": time.Now().UTC()}}
}
