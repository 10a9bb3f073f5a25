package store

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/beacon-api/schema"
)

// CreateEmergency inserts an open emergency. The creation time is assigned
// by the database server.
func (m *mongoDB) CreateEmergency(ctx context.Context, category string, lat, lng float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.collection(schema.EmergencyCollection)

	id := primitive.NewObjectID().Hex()
	_, err := c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$setOnInsert": bson.M{
				"category": category,
				"lat":      lat,
				"lng":      lng,
				"status":   schema.EmergencyOpen,
			},
			"$currentDate": bson.M{"created_at": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).WithError(err).Error("fail to create emergency")
		return "", persistenceError(err)
	}

	return id, nil
}

// AcknowledgeEmergency claims an open emergency. It returns true only for
// the call which moved the record from open to acknowledged.
func (m *mongoDB) AcknowledgeEmergency(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.collection(schema.EmergencyCollection)

	result, err := c.UpdateOne(ctx,
		bson.M{"_id": id, "status": schema.EmergencyOpen},
		bson.M{"$set": bson.M{"status": schema.EmergencyAcknowledged}},
	)
	if err != nil {
		return false, persistenceError(err)
	}

	if result.ModifiedCount > 0 {
		return true, nil
	}

	count, err := c.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, persistenceError(err)
	}

	if count == 0 {
		return false, ErrEmergencyNotFound
	}

	return false, nil
}

func (m *mongoDB) GetEmergency(ctx context.Context, id string) (*schema.Emergency, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e schema.Emergency
	if err := m.collection(schema.EmergencyCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrEmergencyNotFound
		}
		return nil, persistenceError(err)
	}

	return &e, nil
}

// Subscribe delivers the current result of the query, then watches the
// emergency collection and re-runs the query on every change.
func (m *mongoDB) Subscribe(q EmergencyQuery, onUpdate func([]schema.Emergency)) (Unsubscribe, error) {
	ctx, cancel := context.WithCancel(context.Background())

	result, err := m.findEmergencies(ctx, q)
	if err != nil {
		cancel()
		return nil, persistenceError(err)
	}

	f := newFeed(onUpdate)
	f.offer(result)

	go m.watchEmergencies(ctx, q, f)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			f.close()
		})
	}, nil
}

func (m *mongoDB) findEmergencies(ctx context.Context, q EmergencyQuery) ([]schema.Emergency, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if q.ID != "" {
		filter["_id"] = q.ID
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := m.collection(schema.EmergencyCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	result := make([]schema.Emergency, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (m *mongoDB) watchEmergencies(ctx context.Context, q EmergencyQuery, f *feed) {
	logger := log.WithField("prefix", mongoLogPrefix)

	pipeline := mongo.Pipeline{}
	if q.ID != "" {
		pipeline = append(pipeline, bson.D{
			{Key: "$match", Value: bson.M{"documentKey._id": q.ID}},
		})
	}

	backoff := minWatchBackoff
	for {
		stream, err := m.collection(schema.EmergencyCollection).Watch(ctx, pipeline)
		if err == nil {
			backoff = minWatchBackoff

			// catch up with writes made while the stream was not open
			m.refresh(ctx, q, f)
			for stream.Next(ctx) {
				m.refresh(ctx, q, f)
			}
			err = stream.Err()
			_ = stream.Close(context.Background())
		}

		if ctx.Err() != nil {
			return
		}

		logger.WithError(err).WithField("retry_in", backoff.String()).Warn("emergency change stream interrupted")
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxWatchBackoff {
			backoff = maxWatchBackoff
		}
	}
}

func (m *mongoDB) refresh(ctx context.Context, q EmergencyQuery, f *feed) {
	result, err := m.findEmergencies(ctx, q)
	if err != nil {
		if ctx.Err() == nil {
			log.WithField("prefix", mongoLogPrefix).WithError(err).Warn("fail to refresh emergency query")
		}
		return
	}
	f.offer(result)
}
