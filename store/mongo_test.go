package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/beacon-api/schema"
)

// The mongo suite needs a replica set for change streams, e.g.
// BEACON_TEST_MONGO_URI=mongodb://127.0.0.1:27017/?replicaSet=rs0
const testMongoURIEnv = "BEACON_TEST_MONGO_URI"

type MongoStoreTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
	store        Store
	ctx          context.Context
}

func NewMongoStoreTestSuite(connURI, dbName string) *MongoStoreTestSuite {
	return &MongoStoreTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *MongoStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(s.ctx); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)
	s.store = NewMongoStore(mongoClient, s.testDBName)
}

func (s *MongoStoreTestSuite) SetupTest() {
	// make sure every test is run with a clean environment
	if err := s.testDatabase.Drop(s.ctx); err != nil {
		s.T().Fatal(err)
	}
	schema.NewMongoDBIndexerWithClient(s.mongoClient, s.testDBName).IndexAll()
}

func (s *MongoStoreTestSuite) TearDownSuite() {
	_ = s.testDatabase.Drop(s.ctx)
	s.store.Close()
}

func (s *MongoStoreTestSuite) TestCreateEmergency() {
	before := time.Now().Add(-time.Minute)

	id, err := s.store.CreateEmergency(s.ctx, "Medical", 37.7749, -122.4194)
	s.NoError(err)

	var raw bson.M
	s.NoError(s.testDatabase.Collection(schema.EmergencyCollection).FindOne(s.ctx, bson.M{"_id": id}).Decode(&raw))
	s.Equal("Medical", raw["category"])
	s.Equal("open", raw["status"])
	s.Equal(37.7749, raw["lat"])
	s.Equal(-122.4194, raw["lng"])

	e, err := s.store.GetEmergency(s.ctx, id)
	s.NoError(err)
	s.Equal(schema.EmergencyOpen, e.Status)
	s.True(e.CreatedAt.After(before))
}

func (s *MongoStoreTestSuite) TestAcknowledgeEmergency() {
	id, err := s.store.CreateEmergency(s.ctx, "Fire", 1, 2)
	s.NoError(err)

	claimed, err := s.store.AcknowledgeEmergency(s.ctx, id)
	s.NoError(err)
	s.True(claimed)

	claimed, err = s.store.AcknowledgeEmergency(s.ctx, id)
	s.NoError(err)
	s.False(claimed)

	e, err := s.store.GetEmergency(s.ctx, id)
	s.NoError(err)
	s.Equal(schema.EmergencyAcknowledged, e.Status)
	s.Equal("Fire", e.Category)
}

func (s *MongoStoreTestSuite) TestAcknowledgeUnknownEmergency() {
	_, err := s.store.AcknowledgeEmergency(s.ctx, "5ef0c1a7e7b5f0a1b2c3d4e5")
	s.Equal(ErrEmergencyNotFound, err)

	_, err = s.store.AcknowledgeEmergency(s.ctx, "malformed id")
	s.Equal(ErrEmergencyNotFound, err)
}

func (s *MongoStoreTestSuite) TestResponders() {
	s.NoError(s.store.UpsertResponder(s.ctx, "key-a", "ExponentPushToken[a]"))
	s.NoError(s.store.UpsertResponder(s.ctx, "key-a", "ExponentPushToken[a2]"))
	s.NoError(s.store.UpsertResponder(s.ctx, "key-b", "ExponentPushToken[a2]"))
	s.NoError(s.store.UpsertResponder(s.ctx, "key-c", ""))

	count, err := s.testDatabase.Collection(schema.ResponderCollection).CountDocuments(s.ctx, bson.M{})
	s.NoError(err)
	s.Equal(int64(3), count)

	tokens, err := s.store.ListResponderTokens(s.ctx)
	s.NoError(err)
	s.Equal([]string{"ExponentPushToken[a2]"}, tokens)
}

func (s *MongoStoreTestSuite) TestSubscribeLatestOpenEmergency() {
	r := &emergencyRecorder{}
	unsubscribe, err := SubscribeLatestOpenEmergency(s.store, r.record)
	s.NoError(err)
	defer unsubscribe()

	wait := func(check func(e *schema.Emergency) bool) {
		s.Eventually(func() bool {
			e, n := r.latest()
			return n > 0 && check(e)
		}, 10*time.Second, 20*time.Millisecond)
	}

	wait(func(e *schema.Emergency) bool { return e == nil })

	a, err := s.store.CreateEmergency(s.ctx, "Medical", 1, 1)
	s.NoError(err)
	wait(func(e *schema.Emergency) bool { return e != nil && e.ID == a })

	// server timestamps have millisecond precision
	time.Sleep(10 * time.Millisecond)
	b, err := s.store.CreateEmergency(s.ctx, "Fire", 2, 2)
	s.NoError(err)
	wait(func(e *schema.Emergency) bool { return e != nil && e.ID == b })

	_, err = s.store.AcknowledgeEmergency(s.ctx, b)
	s.NoError(err)
	wait(func(e *schema.Emergency) bool { return e != nil && e.ID == a })
}

func (s *MongoStoreTestSuite) TestSubscribeEmergency() {
	id, err := s.store.CreateEmergency(s.ctx, "Accident", 1, 1)
	s.NoError(err)

	r := &emergencyRecorder{}
	unsubscribe, err := SubscribeEmergency(s.store, id, r.record)
	s.NoError(err)
	defer unsubscribe()

	s.Eventually(func() bool {
		e, n := r.latest()
		return n > 0 && e != nil && e.Status == schema.EmergencyOpen
	}, 10*time.Second, 20*time.Millisecond)

	_, err = s.store.AcknowledgeEmergency(s.ctx, id)
	s.NoError(err)

	s.Eventually(func() bool {
		e, _ := r.latest()
		return e != nil && e.Status == schema.EmergencyAcknowledged
	}, 10*time.Second, 20*time.Millisecond)
}

func TestMongoStoreTestSuite(t *testing.T) {
	connURI := os.Getenv(testMongoURIEnv)
	if connURI == "" {
		t.Skipf("%s is not set", testMongoURIEnv)
	}
	suite.Run(t, NewMongoStoreTestSuite(connURI, "beacon-test-db"))
}
