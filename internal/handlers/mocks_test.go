package handlers_test

import (
	"context"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GetPaymentByID(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, actor, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, actor domain.Actor, filter portsrepo.PaymentFilter, params portsrepo.ListParams) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, actor, filter, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Get(1).(*string), args.Error(2)
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, actor domain.Actor, req dto.CreatePaymentRequest) (*domain.Payment, *domain.PaymentSchedule, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	s, _ := args.Get(1).(*domain.PaymentSchedule)
	return args.Get(0).(*domain.Payment), s, args.Error(2)
}

func (m *MockPaymentService) TransitionPayment(ctx context.Context, actor domain.Actor, paymentID string, action domain.Action, meta domain.TransitionMeta) (*domain.Payment, error) {
	args := m.Called(ctx, actor, paymentID, action, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock ScheduleService ---
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetSchedule(ctx context.Context, actor domain.Actor, scheduleID string) (*domain.PaymentSchedule, []domain.Installment, error) {
	args := m.Called(ctx, actor, scheduleID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Get(1).([]domain.Installment), args.Error(2)
}

func (m *MockScheduleService) ListSchedules(ctx context.Context, actor domain.Actor, status *domain.ScheduleStatus, params portsrepo.ListParams) ([]domain.PaymentSchedule, *string, error) {
	args := m.Called(ctx, actor, status, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.PaymentSchedule), args.Get(1).(*string), args.Error(2)
}

func (m *MockScheduleService) GetScheduleStats(ctx context.Context, actor domain.Actor) (*domain.ScheduleStats, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleStats), args.Error(1)
}

func (m *MockScheduleService) UpcomingInstallments(ctx context.Context, actor domain.Actor, days int) ([]domain.Installment, error) {
	args := m.Called(ctx, actor, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockScheduleService) OverdueInstallments(ctx context.Context, actor domain.Actor) ([]domain.Installment, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockScheduleService) CreateSchedule(ctx context.Context, actor domain.Actor, req dto.CreateScheduleRequest) (*domain.PaymentSchedule, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Error(1)
}

func (m *MockScheduleService) GenerateInstallments(ctx context.Context, actor domain.Actor, scheduleID string) (*domain.PaymentSchedule, []domain.Installment, error) {
	args := m.Called(ctx, actor, scheduleID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Get(1).([]domain.Installment), args.Error(2)
}

func (m *MockScheduleService) MarkInstallmentPaid(ctx context.Context, actor domain.Actor, installmentID string, notes string) (*domain.PaymentSchedule, *domain.Installment, error) {
	args := m.Called(ctx, actor, installmentID, notes)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Get(1).(*domain.Installment), args.Error(2)
}

func (m *MockScheduleService) TransitionSchedule(ctx context.Context, actor domain.Actor, scheduleID string, action domain.Action) (*domain.PaymentSchedule, error) {
	args := m.Called(ctx, actor, scheduleID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Error(1)
}

func (m *MockScheduleService) DeleteSchedule(ctx context.Context, actor domain.Actor, scheduleID string) error {
	args := m.Called(ctx, actor, scheduleID)
	return args.Error(0)
}

var _ portssvc.ScheduleSvcFacade = (*MockScheduleService)(nil)

// --- Mock AttendanceService ---
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) Punch(ctx context.Context, actor domain.Actor, req dto.PunchRequest) (*domain.Attendance, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceService) GetAttendanceByID(ctx context.Context, actor domain.Actor, attendanceID string) (*domain.Attendance, error) {
	args := m.Called(ctx, actor, attendanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceService) ListAttendances(ctx context.Context, actor domain.Actor, filter portsrepo.AttendanceFilter, params portsrepo.ListParams) ([]domain.Attendance, *string, error) {
	args := m.Called(ctx, actor, filter, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Attendance), args.Get(1).(*string), args.Error(2)
}

func (m *MockAttendanceService) TransitionAttendance(ctx context.Context, actor domain.Actor, attendanceID string, action domain.Action, meta domain.TransitionMeta) (*domain.Attendance, error) {
	args := m.Called(ctx, actor, attendanceID, action, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

var _ portssvc.AttendanceSvcFacade = (*MockAttendanceService)(nil)

// --- Mock BordereauService ---
type MockBordereauService struct {
	mock.Mock
}

func (m *MockBordereauService) GetBordereauByID(ctx context.Context, actor domain.Actor, bordereauID string) (*domain.Bordereau, error) {
	args := m.Called(ctx, actor, bordereauID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bordereau), args.Error(1)
}

func (m *MockBordereauService) ListBordereaux(ctx context.Context, actor domain.Actor, status *domain.BordereauStatus, params portsrepo.ListParams) ([]domain.Bordereau, *string, error) {
	args := m.Called(ctx, actor, status, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Bordereau), args.Get(1).(*string), args.Error(2)
}

func (m *MockBordereauService) CreateBordereau(ctx context.Context, actor domain.Actor, req dto.BordereauRequest) (*domain.Bordereau, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bordereau), args.Error(1)
}

func (m *MockBordereauService) UpdateBordereau(ctx context.Context, actor domain.Actor, bordereauID string, req dto.BordereauRequest) (*domain.Bordereau, error) {
	args := m.Called(ctx, actor, bordereauID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bordereau), args.Error(1)
}

func (m *MockBordereauService) DeleteBordereau(ctx context.Context, actor domain.Actor, bordereauID string) error {
	args := m.Called(ctx, actor, bordereauID)
	return args.Error(0)
}

func (m *MockBordereauService) TransitionBordereau(ctx context.Context, actor domain.Actor, bordereauID string, action domain.Action, meta domain.TransitionMeta) (*domain.Bordereau, error) {
	args := m.Called(ctx, actor, bordereauID, action, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bordereau), args.Error(1)
}

var _ portssvc.BordereauSvcFacade = (*MockBordereauService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, actor domain.Actor, status *domain.InvoiceStatus, params portsrepo.ListParams) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, actor, status, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Get(1).(*string), args.Error(2)
}

func (m *MockInvoiceService) TransitionInvoice(ctx context.Context, actor domain.Actor, invoiceID string, action domain.Action) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock InterviewService ---
type MockInterviewService struct {
	mock.Mock
}

func (m *MockInterviewService) ScheduleInterview(ctx context.Context, actor domain.Actor, req dto.CreateInterviewRequest) (*domain.Interview, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewService) GetInterviewByID(ctx context.Context, actor domain.Actor, interviewID string) (*domain.Interview, error) {
	args := m.Called(ctx, actor, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewService) CompleteInterview(ctx context.Context, actor domain.Actor, interviewID string, feedback string) (*domain.Interview, error) {
	args := m.Called(ctx, actor, interviewID, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewService) CancelInterview(ctx context.Context, actor domain.Actor, interviewID string, reason string) (*domain.Interview, error) {
	args := m.Called(ctx, actor, interviewID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewService) RescheduleInterview(ctx context.Context, actor domain.Actor, interviewID string, r domain.Reschedule) (*domain.Interview, error) {
	args := m.Called(ctx, actor, interviewID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

var _ portssvc.InterviewSvcFacade = (*MockInterviewService)(nil)

// --- Mock DeviceTokenService ---
type MockDeviceTokenService struct {
	mock.Mock
}

func (m *MockDeviceTokenService) RegisterDeviceToken(ctx context.Context, actor domain.Actor, req dto.RegisterDeviceTokenRequest) (*domain.DeviceToken, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeviceToken), args.Error(1)
}

func (m *MockDeviceTokenService) UnregisterDeviceToken(ctx context.Context, actor domain.Actor, token string) error {
	args := m.Called(ctx, actor, token)
	return args.Error(0)
}

func (m *MockDeviceTokenService) ListDeviceTokens(ctx context.Context, actor domain.Actor) ([]domain.DeviceToken, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeviceToken), args.Error(1)
}

var _ portssvc.DeviceTokenSvcFacade = (*MockDeviceTokenService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", time.Time{}, args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Get(2).(time.Time), args.Error(3)
}

func (m *MockAuthService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, username, password, name string) error {
	args := m.Called(ctx, username, password, name)
	return args.Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock LifecycleService ---
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) Transition(ctx context.Context, entity domain.EntityType, id string, action domain.Action, actor domain.Actor, meta domain.TransitionMeta) (any, error) {
	args := m.Called(ctx, entity, id, action, actor, meta)
	return args.Get(0), args.Error(1)
}

var _ portssvc.LifecycleSvc = (*MockLifecycleService)(nil)
