package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSweeper struct {
	mock.Mock
}

func (m *mockSweeper) MarkOverduePayments(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *mockSweeper) MarkUnpaidInvoices(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func newTestScheduler(sw *mockSweeper, spec string) *OverdueScheduler {
	s := NewOverdueScheduler(sw, slog.New(slog.NewTextHandler(io.Discard, nil)), spec, time.UTC)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC) }
	return s
}

func TestRunOnce_SweepsBoth(t *testing.T) {
	sw := new(mockSweeper)
	at := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)
	sw.On("MarkOverduePayments", mock.Anything, at).Return(3, nil).Once()
	sw.On("MarkUnpaidInvoices", mock.Anything, at).Return(2, nil).Once()

	payments, invoices := newTestScheduler(sw, "0 1 * * *").RunOnce(context.Background())

	assert.Equal(t, 3, payments)
	assert.Equal(t, 2, invoices)
	sw.AssertExpectations(t)
}

func TestRunOnce_PaymentFailureStillSweepsInvoices(t *testing.T) {
	sw := new(mockSweeper)
	sw.On("MarkOverduePayments", mock.Anything, mock.Anything).Return(1, errors.New("db down")).Once()
	sw.On("MarkUnpaidInvoices", mock.Anything, mock.Anything).Return(4, nil).Once()

	payments, invoices := newTestScheduler(sw, "").RunOnce(context.Background())

	assert.Equal(t, 1, payments)
	assert.Equal(t, 4, invoices)
	sw.AssertExpectations(t)
}

func TestStart(t *testing.T) {
	t.Run("invalid expression", func(t *testing.T) {
		err := newTestScheduler(new(mockSweeper), "every day").Start()
		assert.Error(t, err)
	})

	t.Run("empty expression disables the job", func(t *testing.T) {
		s := newTestScheduler(new(mockSweeper), "")
		require.NoError(t, s.Start())
		assert.Empty(t, s.cronEngine.Entries())
	})

	t.Run("valid expression registers one job", func(t *testing.T) {
		s := newTestScheduler(new(mockSweeper), "0 1 * * *")
		require.NoError(t, s.Start())
		defer s.Stop()
		assert.Len(t, s.cronEngine.Entries(), 1)
	})
}
