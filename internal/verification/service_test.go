package verification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintagechord/chorus/internal/ledger"
	"github.com/vintagechord/chorus/internal/promotion"
	"github.com/vintagechord/chorus/internal/verification"
)

// Mock Repository
type mockRepo struct {
	createFunc  func(ctx context.Context, rec *verification.Recommendation) error
	approveFunc func(ctx context.Context, id uuid.UUID, creditAmount int64) (*verification.ApprovalResult, error)
	rejectFunc  func(ctx context.Context, id uuid.UUID) (*verification.Recommendation, error)
}

func (m *mockRepo) Create(ctx context.Context, rec *verification.Recommendation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, rec)
	}

	rec.ID = uuid.New()

	return nil
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*verification.Recommendation, error) {
	return nil, verification.ErrNotFound
}

func (m *mockRepo) ListPending(ctx context.Context, limit int) ([]*verification.PendingReview, error) {
	return nil, nil
}

func (m *mockRepo) Approve(ctx context.Context, id uuid.UUID, creditAmount int64) (*verification.ApprovalResult, error) {
	if m.approveFunc != nil {
		return m.approveFunc(ctx, id, creditAmount)
	}

	return nil, verification.ErrNotFound
}

func (m *mockRepo) Reject(ctx context.Context, id uuid.UUID) (*verification.Recommendation, error) {
	if m.rejectFunc != nil {
		return m.rejectFunc(ctx, id)
	}

	return nil, verification.ErrNotFound
}

func TestService_Submit(t *testing.T) {
	promotionID := uuid.New()
	submitterID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc := verification.NewService(&mockRepo{})
		rec, err := svc.Submit(context.Background(), promotionID, submitterID, "proofs/2026/rec-889.jpg")

		require.NoError(t, err)
		assert.Equal(t, verification.StatusPending, rec.Status)
		assert.Equal(t, promotionID, rec.PromotionID)
		assert.Equal(t, submitterID, rec.SubmitterID)
	})

	t.Run("MissingProof", func(t *testing.T) {
		svc := verification.NewService(&mockRepo{})
		_, err := svc.Submit(context.Background(), promotionID, submitterID, "   ")

		assert.ErrorIs(t, err, verification.ErrMissingProof)
	})

	t.Run("PromotionNotActive", func(t *testing.T) {
		repo := &mockRepo{
			createFunc: func(_ context.Context, _ *verification.Recommendation) error {
				return promotion.ErrNotActive
			},
		}

		svc := verification.NewService(repo)
		_, err := svc.Submit(context.Background(), promotionID, submitterID, "proofs/x.jpg")

		assert.ErrorIs(t, err, promotion.ErrNotActive)
	})
}

func TestService_Approve(t *testing.T) {
	recID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		award := int64(500)
		repo := &mockRepo{
			approveFunc: func(_ context.Context, id uuid.UUID, creditAmount int64) (*verification.ApprovalResult, error) {
				return &verification.ApprovalResult{
					Recommendation: &verification.Recommendation{
						ID:            id,
						Status:        verification.StatusApproved,
						CreditAwarded: &creditAmount,
					},
					Entry:           &ledger.Entry{Delta: creditAmount},
					PoolApplied:     300, // clamped against the remaining target
					PromotionFunded: true,
				}, nil
			},
		}

		svc := verification.NewService(repo)
		result, err := svc.Approve(context.Background(), recID, award)

		require.NoError(t, err)
		assert.Equal(t, verification.StatusApproved, result.Recommendation.Status)
		assert.Equal(t, award, *result.Recommendation.CreditAwarded)
		assert.Equal(t, award, result.Entry.Delta)
		assert.Equal(t, int64(300), result.PoolApplied)
		assert.True(t, result.PromotionFunded)
	})

	t.Run("NonPositiveAward", func(t *testing.T) {
		svc := verification.NewService(&mockRepo{})
		_, err := svc.Approve(context.Background(), recID, 0)

		assert.ErrorIs(t, err, verification.ErrInvalidAward)
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		repo := &mockRepo{
			approveFunc: func(_ context.Context, _ uuid.UUID, _ int64) (*verification.ApprovalResult, error) {
				return nil, verification.ErrAlreadyResolved
			},
		}

		svc := verification.NewService(repo)
		_, err := svc.Approve(context.Background(), recID, 100)

		assert.ErrorIs(t, err, verification.ErrAlreadyResolved)
	})
}

func TestService_Reject(t *testing.T) {
	recID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := &mockRepo{
			rejectFunc: func(_ context.Context, id uuid.UUID) (*verification.Recommendation, error) {
				return &verification.Recommendation{ID: id, Status: verification.StatusRejected}, nil
			},
		}

		svc := verification.NewService(repo)
		rec, err := svc.Reject(context.Background(), recID)

		require.NoError(t, err)
		assert.Equal(t, verification.StatusRejected, rec.Status)
		assert.Nil(t, rec.CreditAwarded)
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		repo := &mockRepo{
			rejectFunc: func(_ context.Context, _ uuid.UUID) (*verification.Recommendation, error) {
				return nil, verification.ErrAlreadyResolved
			},
		}

		svc := verification.NewService(repo)
		_, err := svc.Reject(context.Background(), recID)

		assert.ErrorIs(t, err, verification.ErrAlreadyResolved)
	})
}
