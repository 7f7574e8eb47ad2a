package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/armonia/backend/internal/application/billing"
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/shared"
)

type mockAssessor struct {
	mock.Mock
}

func (m *mockAssessor) AssessLateFees(ctx context.Context, tenantID uuid.UUID, actor billing.Actor) (*billing.LateFeeRunResult, error) {
	args := m.Called(ctx, tenantID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.LateFeeRunResult), args.Error(1)
}

type mockComplexLister struct {
	mock.Mock
}

func (m *mockComplexLister) FindByStatus(ctx context.Context, status complexes.ComplexStatus, filter shared.Filter) ([]complexes.ResidentialComplex, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]complexes.ResidentialComplex), args.Error(1)
}

func testComplex(t *testing.T, code string) complexes.ResidentialComplex {
	t.Helper()
	c, err := complexes.NewResidentialComplex(code, "Conjunto "+code)
	require.NoError(t, err)
	return *c
}

func TestLateFeeScheduler_RunOnceAssessesAllComplexes(t *testing.T) {
	assessor := new(mockAssessor)
	lister := new(mockComplexLister)

	active := testComplex(t, "CONJ-01")
	trial := testComplex(t, "CONJ-02")

	lister.On("FindByStatus", mock.Anything, complexes.ComplexStatusActive, mock.Anything).
		Return([]complexes.ResidentialComplex{active}, nil).Once()
	lister.On("FindByStatus", mock.Anything, complexes.ComplexStatusTrial, mock.Anything).
		Return([]complexes.ResidentialComplex{trial}, nil).Once()

	assessor.On("AssessLateFees", mock.Anything, active.ID, systemActor).
		Return(&billing.LateFeeRunResult{Assessed: 3, Skipped: 1}, nil).Once()
	assessor.On("AssessLateFees", mock.Anything, trial.ID, systemActor).
		Return(&billing.LateFeeRunResult{Assessed: 0, Skipped: 2}, nil).Once()

	s := NewLateFeeScheduler(DefaultLateFeeSchedulerConfig(), assessor, lister, zap.NewNop())
	s.RunOnce(context.Background())

	assessor.AssertExpectations(t)
	lister.AssertExpectations(t)
	require.NotNil(t, s.LastRunAt())
}

func TestLateFeeScheduler_SkipsComplexWithoutLateFeeFeature(t *testing.T) {
	assessor := new(mockAssessor)
	lister := new(mockComplexLister)

	basic := testComplex(t, "CONJ-03")

	lister.On("FindByStatus", mock.Anything, complexes.ComplexStatusActive, mock.Anything).
		Return([]complexes.ResidentialComplex{basic}, nil).Once()
	lister.On("FindByStatus", mock.Anything, complexes.ComplexStatusTrial, mock.Anything).
		Return([]complexes.ResidentialComplex{}, nil).Once()

	assessor.On("AssessLateFees", mock.Anything, basic.ID, systemActor).
		Return(nil, shared.ErrFeatureNotInPlan).Once()

	s := NewLateFeeScheduler(DefaultLateFeeSchedulerConfig(), assessor, lister, zap.NewNop())
	s.RunOnce(context.Background())

	assessor.AssertExpectations(t)
}

func TestLateFeeScheduler_Paginates(t *testing.T) {
	assessor := new(mockAssessor)
	lister := new(mockComplexLister)

	first := make([]complexes.ResidentialComplex, 0, 2)
	for _, code := range []string{"CONJ-10", "CONJ-11"} {
		first = append(first, testComplex(t, code))
	}
	second := []complexes.ResidentialComplex{testComplex(t, "CONJ-12")}

	cfg := DefaultLateFeeSchedulerConfig()
	cfg.PageSize = 2

	lister.On("FindByStatus", mock.Anything, complexes.ComplexStatusActive, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 2
	})).Return(first, nil).Once()
	lister.On("FindByStatus", mock.Anything, complexes.ComplexStatusActive, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 2
	})).Return(second, nil).Once()
	lister.On("FindByStatus", mock.Anything, complexes.ComplexStatusTrial, mock.Anything).
		Return([]complexes.ResidentialComplex{}, nil).Once()

	assessor.On("AssessLateFees", mock.Anything, mock.Anything, systemActor).
		Return(&billing.LateFeeRunResult{Assessed: 1}, nil).Times(3)

	s := NewLateFeeScheduler(cfg, assessor, lister, zap.NewNop())
	s.RunOnce(context.Background())

	assessor.AssertExpectations(t)
	lister.AssertExpectations(t)
}

func TestLateFeeScheduler_ShouldRun(t *testing.T) {
	cfg := DefaultLateFeeSchedulerConfig()
	cfg.RunHour = 3
	cfg.RunMinute = 30
	s := NewLateFeeScheduler(cfg, new(mockAssessor), new(mockComplexLister), zap.NewNop())

	at := func(h, m int) time.Time {
		return time.Date(2026, 8, 31, h, m, 0, 0, time.Local)
	}

	assert.True(t, s.shouldRun(at(3, 30)))
	assert.False(t, s.shouldRun(at(3, 29)))
	assert.False(t, s.shouldRun(at(4, 30)))
}

func TestLateFeeScheduler_NextRunTimeRollsToTomorrow(t *testing.T) {
	now := time.Now()
	cfg := DefaultLateFeeSchedulerConfig()
	cfg.RunHour = now.Hour()
	cfg.RunMinute = now.Minute()
	if cfg.RunMinute == 0 {
		cfg.RunHour = (cfg.RunHour + 23) % 24
		cfg.RunMinute = 59
	} else {
		cfg.RunMinute--
	}

	s := NewLateFeeScheduler(cfg, new(mockAssessor), new(mockComplexLister), zap.NewNop())
	s.calculateNextRunTime()

	next := s.NextRunAt()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
}

func TestLateFeeScheduler_StartStop(t *testing.T) {
	cfg := DefaultLateFeeSchedulerConfig()
	s := NewLateFeeScheduler(cfg, new(mockAssessor), new(mockComplexLister), zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, s.NextRunAt())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestLateFeeScheduler_DisabledDoesNotStart(t *testing.T) {
	cfg := DefaultLateFeeSchedulerConfig()
	cfg.Enabled = false
	s := NewLateFeeScheduler(cfg, new(mockAssessor), new(mockComplexLister), zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	assert.Nil(t, s.NextRunAt())
	require.NoError(t, s.Stop(context.Background()))
}