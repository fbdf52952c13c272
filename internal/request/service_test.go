package request_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintagechord/chorus/internal/ledger"
	"github.com/vintagechord/chorus/internal/request"
)

// Mock Repository
type mockRepo struct {
	createFunc func(ctx context.Context, req *request.KaraokeRequest) error
	fundFunc   func(ctx context.Context, id, userID uuid.UUID, amount int64, referenceID uuid.UUID) (*request.KaraokeRequest, *ledger.Entry, error)
	cancelFunc func(ctx context.Context, id, userID uuid.UUID) (*request.KaraokeRequest, error)
}

func (m *mockRepo) Create(ctx context.Context, req *request.KaraokeRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}

	req.ID = uuid.New()

	return nil
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (*request.KaraokeRequest, error) {
	return nil, request.ErrNotFound
}

func (m *mockRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*request.KaraokeRequest, error) {
	return nil, nil
}

func (m *mockRepo) Fund(ctx context.Context, id, userID uuid.UUID, amount int64, referenceID uuid.UUID) (*request.KaraokeRequest, *ledger.Entry, error) {
	if m.fundFunc != nil {
		return m.fundFunc(ctx, id, userID, amount, referenceID)
	}

	return nil, nil, request.ErrNotFound
}

func (m *mockRepo) Cancel(ctx context.Context, id, userID uuid.UUID) (*request.KaraokeRequest, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id, userID)
	}

	return nil, request.ErrNotFound
}

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc := request.NewService(&mockRepo{})
		req, err := svc.Create(context.Background(), userID, 300, 0)

		require.NoError(t, err)
		assert.Equal(t, request.StatusOpen, req.Status)
		assert.Equal(t, int64(300), req.CostCredits)
		assert.Zero(t, req.FundedCredits)
	})

	t.Run("NonPositiveCost", func(t *testing.T) {
		svc := request.NewService(&mockRepo{})
		_, err := svc.Create(context.Background(), userID, 0, 0)

		assert.ErrorIs(t, err, request.ErrInvalidCost)
	})
}

func TestService_Fund(t *testing.T) {
	requestID := uuid.New()
	userID := uuid.New()

	referenceID := uuid.New()

	t.Run("FullFunding", func(t *testing.T) {
		repo := &mockRepo{
			fundFunc: func(_ context.Context, id, uid uuid.UUID, amount int64, ref uuid.UUID) (*request.KaraokeRequest, *ledger.Entry, error) {
				assert.Equal(t, referenceID, ref)

				return &request.KaraokeRequest{
						ID:            id,
						UserID:        uid,
						CostCredits:   300,
						FundedCredits: 300,
						Status:        request.StatusFunded,
					}, &ledger.Entry{
						Delta:       -amount,
						Reason:      ledger.ReasonSpendRequestFunding,
						ReferenceID: ref,
					}, nil
			},
		}

		svc := request.NewService(repo)
		req, err := svc.Fund(context.Background(), requestID, userID, 300, referenceID)

		require.NoError(t, err)
		assert.Equal(t, request.StatusFunded, req.Status)
		assert.Equal(t, int64(300), req.FundedCredits)
	})

	t.Run("InsufficientBalancePropagated", func(t *testing.T) {
		repo := &mockRepo{
			fundFunc: func(_ context.Context, _, _ uuid.UUID, _ int64, _ uuid.UUID) (*request.KaraokeRequest, *ledger.Entry, error) {
				return nil, nil, ledger.ErrInsufficientBalance
			},
		}

		svc := request.NewService(repo)
		_, err := svc.Fund(context.Background(), requestID, userID, 300, referenceID)

		assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	})

	t.Run("OverfundingPropagated", func(t *testing.T) {
		repo := &mockRepo{
			fundFunc: func(_ context.Context, _, _ uuid.UUID, _ int64, _ uuid.UUID) (*request.KaraokeRequest, *ledger.Entry, error) {
				return nil, nil, request.ErrOverfunding
			},
		}

		svc := request.NewService(repo)
		_, err := svc.Fund(context.Background(), requestID, userID, 100, referenceID)

		assert.ErrorIs(t, err, request.ErrOverfunding)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		svc := request.NewService(&mockRepo{})
		_, err := svc.Fund(context.Background(), requestID, userID, 0, referenceID)

		assert.ErrorIs(t, err, request.ErrInvalidAmount)
	})

	t.Run("MissingReference", func(t *testing.T) {
		svc := request.NewService(&mockRepo{})
		_, err := svc.Fund(context.Background(), requestID, userID, 100, uuid.Nil)

		assert.ErrorIs(t, err, request.ErrMissingReference)
	})

	// A client retrying a timed-out funding call reuses its reference id and
	// must be rejected as a duplicate rather than debited twice.
	t.Run("RetriedReferenceRejected", func(t *testing.T) {
		seen := map[uuid.UUID]bool{}
		repo := &mockRepo{
			fundFunc: func(_ context.Context, id, uid uuid.UUID, amount int64, ref uuid.UUID) (*request.KaraokeRequest, *ledger.Entry, error) {
				if seen[ref] {
					return nil, nil, ledger.ErrDuplicateTransaction
				}
				seen[ref] = true

				return &request.KaraokeRequest{
						ID:            id,
						UserID:        uid,
						CostCredits:   300,
						FundedCredits: amount,
						Status:        request.StatusOpen,
					}, &ledger.Entry{
						Delta:       -amount,
						Reason:      ledger.ReasonSpendRequestFunding,
						ReferenceID: ref,
					}, nil
			},
		}

		svc := request.NewService(repo)

		_, err := svc.Fund(context.Background(), requestID, userID, 100, referenceID)
		require.NoError(t, err)

		_, err = svc.Fund(context.Background(), requestID, userID, 100, referenceID)
		assert.ErrorIs(t, err, ledger.ErrDuplicateTransaction)

		_, err = svc.Fund(context.Background(), requestID, userID, 100, uuid.New())
		assert.NoError(t, err)
	})
}

func TestService_Cancel(t *testing.T) {
	requestID := uuid.New()
	userID := uuid.New()

	repo := &mockRepo{
		cancelFunc: func(_ context.Context, id, _ uuid.UUID) (*request.KaraokeRequest, error) {
			return &request.KaraokeRequest{ID: id, Status: request.StatusCancelled}, nil
		},
	}

	svc := request.NewService(repo)
	req, err := svc.Cancel(context.Background(), requestID, userID)

	require.NoError(t, err)
	assert.Equal(t, request.StatusCancelled, req.Status)
}
