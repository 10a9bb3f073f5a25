package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/beacon-api/schema"
)

// UpsertResponder stores the latest token registered under a key
func (m *mongoDB) UpsertResponder(ctx context.Context, key, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := m.collection(schema.ResponderCollection).UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{
			"$set":         bson.M{"token": token},
			"$currentDate": bson.M{"updated_at": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return persistenceError(err)
	}
	return nil
}

// ListResponderTokens returns every distinct non-empty token
func (m *mongoDB) ListResponderTokens(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := m.collection(schema.ResponderCollection).Distinct(ctx, "token", bson.M{
		"token": bson.M{"$nin": bson.A{"", nil}},
	})
	if err != nil {
		return nil, persistenceError(err)
	}

	tokens := make([]string, 0, len(values))
	for _, v := range values {
		if token, ok := v.(string); ok && token != "" {
			tokens = append(tokens, token)
		}
	}

	return tokens, nil
}
