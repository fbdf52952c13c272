package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vintagechord/chorus/internal/ledger"
)

func TestService_Credit(t *testing.T) {
	accountID := uuid.New()
	refID := uuid.New()

	type testCase struct {
		name      string
		amount    int64
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			amount: 500,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					Apply(gomock.Any(), accountID, int64(500), ledger.ReasonEarnVerifiedRecommendation, refID).
					Return(&ledger.Entry{
						ID:          uuid.New(),
						AccountID:   accountID,
						Delta:       500,
						Reason:      ledger.ReasonEarnVerifiedRecommendation,
						ReferenceID: refID,
					}, nil)
			},
		},
		{
			name:    "ZeroAmount",
			amount:  0,
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			amount:  -10,
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:   "Duplicate",
			amount: 500,
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					Apply(gomock.Any(), accountID, int64(500), ledger.ReasonEarnVerifiedRecommendation, refID).
					Return(nil, ledger.ErrDuplicateTransaction)
			},
			wantErr: ledger.ErrDuplicateTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			entry, err := svc.Credit(context.Background(), accountID, tt.amount, ledger.ReasonEarnVerifiedRecommendation, refID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, entry)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.amount, entry.Delta)
		})
	}
}

func TestService_Debit(t *testing.T) {
	accountID := uuid.New()
	refID := uuid.New()

	t.Run("NegatesDelta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		repo.EXPECT().
			Apply(gomock.Any(), accountID, int64(-300), ledger.ReasonSpendRequestFunding, refID).
			Return(&ledger.Entry{Delta: -300}, nil)

		svc := ledger.NewService(repo)
		entry, err := svc.Debit(context.Background(), accountID, 300, ledger.ReasonSpendRequestFunding, refID)

		require.NoError(t, err)
		assert.Equal(t, int64(-300), entry.Delta)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		repo.EXPECT().
			Apply(gomock.Any(), accountID, int64(-300), ledger.ReasonSpendRequestFunding, refID).
			Return(nil, ledger.ErrInsufficientBalance)

		svc := ledger.NewService(repo)
		_, err := svc.Debit(context.Background(), accountID, 300, ledger.ReasonSpendRequestFunding, refID)

		assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := ledger.NewService(ledger.NewMockRepository(ctrl))
		_, err := svc.Debit(context.Background(), accountID, 0, ledger.ReasonSpendRequestFunding, refID)

		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	})
}

func TestService_Adjust(t *testing.T) {
	accountID := uuid.New()
	refID := uuid.New()

	t.Run("NegativeDeltaAllowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		repo.EXPECT().
			Apply(gomock.Any(), accountID, int64(-50), ledger.ReasonAdminAdjustment, refID).
			Return(&ledger.Entry{Delta: -50}, nil)

		svc := ledger.NewService(repo)
		_, err := svc.Adjust(context.Background(), accountID, -50, refID)

		assert.NoError(t, err)
	})

	t.Run("ZeroDeltaRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := ledger.NewService(ledger.NewMockRepository(ctrl))
		_, err := svc.Adjust(context.Background(), accountID, 0, refID)

		assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	})
}

func TestService_Entries(t *testing.T) {
	accountID := uuid.New()

	t.Run("PageMapsToLimitOffset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		repo.EXPECT().
			Entries(gomock.Any(), accountID, 10, 20).
			Return([]*ledger.Entry{{Seq: 3}, {Seq: 2}}, nil)

		svc := ledger.NewService(repo)
		entries, err := svc.Entries(context.Background(), accountID, 3, 10)

		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		repo.EXPECT().
			Entries(gomock.Any(), accountID, 20, 0).
			Return(nil, nil)

		svc := ledger.NewService(repo)
		_, err := svc.Entries(context.Background(), accountID, 0, 0)

		assert.NoError(t, err)
	})
}
