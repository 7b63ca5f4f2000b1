package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleSchedule() (*domain.PaymentSchedule, []domain.Installment) {
	s := &domain.PaymentSchedule{
		ScheduleID:        "s1",
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Frequency:         1,
		TotalInstallments: 3,
		InstallmentAmount: decimal.NewFromInt(100),
		Status:            domain.ScheduleActive,
	}
	n := 0
	insts, _ := domain.GenerateInstallments(s, nil, comptable, s.StartDate, func() string {
		n++
		return fmt.Sprintf("inst-%d", n)
	})
	s.MarkGenerated(insts, comptable, s.StartDate)
	return s, insts
}

func (s *HandlerTestSuite) TestGetSchedule_DerivesOverdue() {
	sched, insts := sampleSchedule()
	s.schedule.On("GetSchedule", mock.Anything, comptable, "s1").Return(sched, insts, nil).Once()

	w, env := s.do(http.MethodGet, "/api/v1/payment-schedules/s1", comptable, nil)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var data dto.ScheduleResponse
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().Len(data.Installments, 3)
	// Due Jan 1 and Feb 1 have passed on Feb 15; Mar 1 has not.
	s.True(data.Installments[0].IsOverdue)
	s.True(data.Installments[1].IsOverdue)
	s.Equal(domain.InstallmentOverdue, data.Installments[1].Status)
	s.False(data.Installments[2].IsOverdue)
	s.Equal(domain.InstallmentPending, data.Installments[2].Status)
	s.Equal(2, data.Progress.OverdueInstallments)
}

func (s *HandlerTestSuite) TestGetSchedule_OverdueFollowsServiceClock() {
	sched, insts := sampleSchedule()
	s.schedule.On("GetSchedule", mock.Anything, comptable, "s1").Return(sched, insts, nil).Once()
	// First minutes of the due day in UTC: the Mar 1 installment is due today, not overdue.
	s.now = time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC)

	w, env := s.do(http.MethodGet, "/api/v1/payment-schedules/s1", comptable, nil)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var data dto.ScheduleResponse
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().Len(data.Installments, 3)
	s.False(data.Installments[2].IsOverdue)
	s.Equal(2, data.Progress.OverdueInstallments)
}

func (s *HandlerTestSuite) TestGetScheduleStats_RoutesBeforeID() {
	s.schedule.On("GetScheduleStats", mock.Anything, comptable).Return(&domain.ScheduleStats{Total: 4, Active: 3, Paused: 1}, nil).Once()

	w, env := s.do(http.MethodGet, "/api/v1/payment-schedules/stats", comptable, nil)

	s.Equal(http.StatusOK, w.Code)
	var stats domain.ScheduleStats
	s.Require().NoError(json.Unmarshal(env.Data, &stats))
	s.Equal(4, stats.Total)
	s.schedule.AssertNotCalled(s.T(), "GetSchedule")
}

func (s *HandlerTestSuite) TestGenerateInstallments_Twice() {
	sched, insts := sampleSchedule()
	s.schedule.On("GenerateInstallments", mock.Anything, comptable, "s1").Return(sched, insts, nil).Once()
	s.schedule.On("GenerateInstallments", mock.Anything, comptable, "s1").
		Return(nil, nil, fmt.Errorf("%w: schedule s1", apperrors.ErrAlreadyGenerated)).Once()

	w, _ := s.do(http.MethodPost, "/api/v1/payment-schedules/s1/generate", comptable, nil)
	s.Equal(http.StatusOK, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/payment-schedules/s1/generate", comptable, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(env.Message, "already generated")
}

func (s *HandlerTestSuite) TestTransitionSchedule() {
	sched, _ := sampleSchedule()
	sched.Status = domain.SchedulePaused
	s.schedule.On("TransitionSchedule", mock.Anything, comptable, "s1", domain.ActionPause).Return(sched, nil).Once()
	s.schedule.On("TransitionSchedule", mock.Anything, comptable, "s1", domain.ActionResume).
		Return(nil, fmt.Errorf("%w: resume from completed", apperrors.ErrInvalidTransition)).Once()

	w, env := s.do(http.MethodPost, "/api/v1/payment-schedules/s1/pause", comptable, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Payment schedule paused", env.Message)

	w, _ = s.do(http.MethodPost, "/api/v1/payment-schedules/s1/resume", comptable, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestPayInstallment() {
	sched, insts := sampleSchedule()
	now := s.now
	paid := insts[2]
	paid.Status = domain.InstallmentPaid
	paid.PaidAt = &now
	sched.Status = domain.ScheduleCompleted
	sched.PaidInstallments = 3

	s.schedule.On("MarkInstallmentPaid", mock.Anything, comptable, "inst-3", "cash at desk").Return(sched, &paid, nil).Once()

	w, env := s.do(http.MethodPost, "/api/v1/installments/inst-3/pay", comptable, map[string]string{"notes": "cash at desk"})

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var data dto.PayInstallmentResponse
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Equal(domain.InstallmentPaid, data.Installment.Status)
	s.False(data.Installment.IsOverdue)
	s.Equal(domain.ScheduleCompleted, data.Schedule.Status)
}

func (s *HandlerTestSuite) TestPayInstallment_ScheduleNotActive() {
	s.schedule.On("MarkInstallmentPaid", mock.Anything, comptable, "inst-1", "").
		Return(nil, nil, fmt.Errorf("%w: schedule s1 is paused", apperrors.ErrInvalidState)).Once()

	w, env := s.do(http.MethodPost, "/api/v1/installments/inst-1/pay", comptable, nil)

	s.Equal(http.StatusForbidden, w.Code)
	s.False(env.Success)
}

func (s *HandlerTestSuite) TestUpcomingInstallments_Window() {
	s.schedule.On("UpcomingInstallments", mock.Anything, comptable, dto.DefaultUpcomingDays).Return([]domain.Installment{}, nil).Twice()
	s.schedule.On("UpcomingInstallments", mock.Anything, comptable, 30).Return([]domain.Installment{}, nil).Once()

	w, _ := s.do(http.MethodGet, "/api/v1/installments/upcoming", comptable, nil)
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/api/v1/installments/upcoming?days=30", comptable, nil)
	s.Equal(http.StatusOK, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/installments/upcoming?days=0", comptable, nil)
	s.Equal(http.StatusOK, w.Code, env.Message)
	s.schedule.AssertNumberOfCalls(s.T(), "UpcomingInstallments", 3)
}

func (s *HandlerTestSuite) TestDeleteSchedule() {
	s.schedule.On("DeleteSchedule", mock.Anything, comptable, "s1").Return(nil).Once()

	w, _ := s.do(http.MethodDelete, "/api/v1/payment-schedules/s1", comptable, nil)

	s.Equal(http.StatusNoContent, w.Code)
}
