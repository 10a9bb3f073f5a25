package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second

	minWatchBackoff = 500 * time.Millisecond
	maxWatchBackoff = 30 * time.Second
)

type mongoDB struct {
	client   *mongo.Client
	database string
}

// Ping - ping mongo db
func (m mongoDB) Ping() error {
	return m.client.Ping(context.Background(), nil)
}

// Close - close mongo db connections
func (m mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}

// NewMongoStore - return mongo db operations. Live queries rely on change
// streams, so the server must be a replica set or a sharded cluster.
func NewMongoStore(client *mongo.Client, database string) Store {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

func (m *mongoDB) collection(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}
