package jobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAutoConfirmHandler struct{ mock.Mock }

func (m *MockAutoConfirmHandler) Handle(
	ctx context.Context,
	cmd commands.AutoConfirmDeliveriesCommand,
) (commands.AutoConfirmResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AutoConfirmResult), args.Error(1)
}

type MockSettleHandler struct{ mock.Mock }

func (m *MockSettleHandler) Handle(ctx context.Context, cmd commands.SettleCommissionsCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}

var sweepAt = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return sweepAt }

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestAutoConfirmJobRunUsesClockAndBatch(t *testing.T) {
	handler := &MockAutoConfirmHandler{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AutoConfirmDeliveriesCommand) bool {
		return cmd.At().Equal(sweepAt) && cmd.BatchSize() == commands.DefaultAutoConfirmBatchSize
	})).Return(commands.AutoConfirmResult{Candidates: 3, Confirmed: 2, Skipped: 1}, nil).Once()

	logger, buf := bufferLogger()
	NewAutoConfirmJob(handler, "", fixedClock, logger).Run(context.Background())

	handler.AssertExpectations(t)
	assert.Contains(t, buf.String(), "confirmed=2")
}

func TestAutoConfirmJobSwallowsUnavailable(t *testing.T) {
	handler := &MockAutoConfirmHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.AutoConfirmResult{}, errs.NewUnavailableError("postgres", errors.New("connection refused"))).Once()

	logger, buf := bufferLogger()
	NewAutoConfirmJob(handler, "", fixedClock, logger).Run(context.Background())

	handler.AssertExpectations(t)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.NotContains(t, buf.String(), "level=ERROR")
}

func TestSettlementJobRun(t *testing.T) {
	tests := []struct {
		name     string
		promoted int64
		err      error
		expect   string
	}{
		{name: "released", promoted: 4, expect: "count=4"},
		{name: "nothing due", promoted: 0, expect: ""},
		{name: "store down", err: errs.NewUnavailableError("postgres", errors.New("timeout")), expect: "level=WARN"},
		{name: "unexpected", err: errors.New("boom"), expect: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &MockSettleHandler{}
			handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SettleCommissionsCommand) bool {
				return cmd.At().Equal(sweepAt)
			})).Return(tt.promoted, tt.err).Once()

			logger, buf := bufferLogger()
			NewSettlementJob(handler, "", fixedClock, logger).Run(context.Background())

			handler.AssertExpectations(t)
			if tt.expect == "" {
				assert.NotContains(t, buf.String(), "released")
				return
			}
			assert.Contains(t, buf.String(), tt.expect)
		})
	}
}

func TestJobManagerStartStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jm := NewJobManager(&MockAutoConfirmHandler{}, &MockSettleHandler{}, Config{}, fixedClock, logger)

	require.NoError(t, jm.StartAll())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, jm.StopAll(ctx))
}

func TestJobManagerRejectsBadSchedule(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	jm := NewJobManager(&MockAutoConfirmHandler{}, &MockSettleHandler{},
		Config{SettlementSchedule: "every now and then"}, fixedClock, logger)
	err := jm.StartAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settlement job")

	jm = NewJobManager(&MockAutoConfirmHandler{}, &MockSettleHandler{},
		Config{AutoConfirmSchedule: "61 * * * *"}, fixedClock, logger)
	require.Error(t, jm.StartAll())
}

func TestJobsRunOnSchedule(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a cron tick")
	}

	fired := make(chan struct{}, 1)
	handler := &MockSettleHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(int64(0), nil).Run(func(mock.Arguments) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	job := NewSettlementJob(handler, "@every 1s", fixedClock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, job.Start())
	defer func() { <-job.Stop().Done() }()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("settlement sweep did not run")
	}
}
