package background

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/beacon-api/store"
	"github.com/bitmark-inc/beacon-api/store/mocks"
)

func TestRegisterNormalizesKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mocks.NewMockResponderStore(ctrl)
	s.EXPECT().
		UpsertResponder(gomock.Any(), "ExponentPushToken_xxxxxxxxxxxxxxxxxxxxxx_", "ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx]").
		Return(nil)

	assert.NoError(t, NewRegistry(s).Register(context.Background(), "ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx]"))
}

func TestRegisterIgnoresBlankToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no call is expected on the store
	s := mocks.NewMockResponderStore(ctrl)

	r := NewRegistry(s)
	assert.NoError(t, r.Register(context.Background(), ""))
	assert.NoError(t, r.Register(context.Background(), "   "))
}

func TestRegisterStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mocks.NewMockResponderStore(ctrl)
	s.EXPECT().UpsertResponder(gomock.Any(), gomock.Any(), gomock.Any()).Return(store.ErrPersistence)

	err := NewRegistry(s).Register(context.Background(), "ExponentPushToken[a]")
	assert.True(t, errors.Is(err, store.ErrPersistence))
}

func TestRegisterSameTokenTwice(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(store.NewMemoryStore())

	assert.NoError(t, r.Register(ctx, "ExponentPushToken[a]"))
	assert.NoError(t, r.Register(ctx, "ExponentPushToken[a]"))
	assert.NoError(t, r.Register(ctx, "ExponentPushToken[b]"))

	tokens, err := r.ListTokens(ctx)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"ExponentPushToken[a]", "ExponentPushToken[b]"}, tokens)
}

func TestListTokensDeduplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mocks.NewMockResponderStore(ctrl)
	s.EXPECT().ListResponderTokens(gomock.Any()).Return([]string{"a", "", "b", "a"}, nil)

	tokens, err := NewRegistry(s).ListTokens(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tokens)
}
