package promotion_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintagechord/chorus/internal/promotion"
)

// Mock Repository
type mockRepo struct {
	createFunc     func(ctx context.Context, p *promotion.Promotion) error
	listActiveFunc func(ctx context.Context, limit int) ([]*promotion.Promotion, error)
	contributeFunc func(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error)
}

func (m *mockRepo) Create(ctx context.Context, p *promotion.Promotion) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}

	return nil
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*promotion.Promotion, error) {
	return nil, promotion.ErrNotFound
}

func (m *mockRepo) ListActive(ctx context.Context, limit int) ([]*promotion.Promotion, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx, limit)
	}

	return nil, nil
}

func (m *mockRepo) Contribute(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error) {
	if m.contributeFunc != nil {
		return m.contributeFunc(ctx, id, amount)
	}

	return amount, false, nil
}

func (m *mockRepo) Close(ctx context.Context, id uuid.UUID) error { return nil }

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := &mockRepo{
			createFunc: func(_ context.Context, p *promotion.Promotion) error {
				p.ID = uuid.New()
				return nil
			},
		}

		svc := promotion.NewService(repo)
		p, err := svc.Create(context.Background(), promotion.CreateParams{
			SubmissionRef:   "catalog:4821",
			Title:           "Midnight Chorus",
			Artist:          "The Vintage Chord",
			CreditsRequired: 500,
			Channels:        promotion.ChannelTJ | promotion.ChannelKY,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, promotion.StatusActive, p.Status)
		assert.Zero(t, p.CreditsBalance)
	})

	t.Run("NonPositiveTarget", func(t *testing.T) {
		svc := promotion.NewService(&mockRepo{})
		_, err := svc.Create(context.Background(), promotion.CreateParams{CreditsRequired: 0})

		assert.ErrorIs(t, err, promotion.ErrInvalidTarget)
	})
}

func TestService_ListActive(t *testing.T) {
	var gotLimit int

	repo := &mockRepo{
		listActiveFunc: func(_ context.Context, limit int) ([]*promotion.Promotion, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	svc := promotion.NewService(repo)

	_, err := svc.ListActive(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)

	_, err = svc.ListActive(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
}

func TestService_Contribute(t *testing.T) {
	svc := promotion.NewService(&mockRepo{})

	_, _, err := svc.Contribute(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, promotion.ErrInvalidAmount)

	applied, funded, err := svc.Contribute(context.Background(), uuid.New(), 40)
	require.NoError(t, err)
	assert.Equal(t, int64(40), applied)
	assert.False(t, funded)
}
