package services_test

import (
	"context"
	"time"

	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Payment repository ---

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.PaymentFilter, params portsrepo.ListParams) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Get(1).(*string), args.Error(2)
}

func (m *MockPaymentRepository) FindPastDuePayments(ctx context.Context, asOf time.Time, limit int) ([]domain.Payment, error) {
	args := m.Called(ctx, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment, schedule *domain.PaymentSchedule) error {
	args := m.Called(ctx, payment, schedule)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, payment domain.Payment, expectedVersion int64, invoice *domain.Invoice, invoiceExpectedVersion int64) error {
	args := m.Called(ctx, payment, expectedVersion, invoice, invoiceExpectedVersion)
	return args.Error(0)
}

// --- Invoice repository ---

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, status *domain.InvoiceStatus, params portsrepo.ListParams) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Get(1).(*string), args.Error(2)
}

func (m *MockInvoiceRepository) FindPastDueInvoices(ctx context.Context, asOf time.Time, limit int) ([]domain.Invoice, error) {
	args := m.Called(ctx, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error {
	return m.Called(ctx, invoice, expectedVersion).Error(0)
}

// --- Bordereau repository ---

type MockBordereauRepository struct {
	mock.Mock
}

func (m *MockBordereauRepository) FindBordereauByID(ctx context.Context, bordereauID string) (*domain.Bordereau, error) {
	args := m.Called(ctx, bordereauID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bordereau), args.Error(1)
}

func (m *MockBordereauRepository) ListBordereaux(ctx context.Context, status *domain.BordereauStatus, params portsrepo.ListParams) ([]domain.Bordereau, *string, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Bordereau), args.Get(1).(*string), args.Error(2)
}

func (m *MockBordereauRepository) SaveBordereau(ctx context.Context, bordereau domain.Bordereau) error {
	return m.Called(ctx, bordereau).Error(0)
}

func (m *MockBordereauRepository) UpdateBordereau(ctx context.Context, bordereau domain.Bordereau, expectedVersion int64) error {
	return m.Called(ctx, bordereau, expectedVersion).Error(0)
}

func (m *MockBordereauRepository) UpdateBordereauStatus(ctx context.Context, bordereau domain.Bordereau, expectedVersion int64) error {
	return m.Called(ctx, bordereau, expectedVersion).Error(0)
}

func (m *MockBordereauRepository) DeleteBordereau(ctx context.Context, bordereauID string, expectedVersion int64) error {
	return m.Called(ctx, bordereauID, expectedVersion).Error(0)
}

// --- Attendance repository ---

// MockAttendanceRepository runs the PunchDecider against Last so tests exercise
// the real punch rule.
type MockAttendanceRepository struct {
	mock.Mock
	Last *domain.Attendance
}

func (m *MockAttendanceRepository) FindAttendanceByID(ctx context.Context, attendanceID string) (*domain.Attendance, error) {
	args := m.Called(ctx, attendanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ListAttendances(ctx context.Context, filter portsrepo.AttendanceFilter, params portsrepo.ListParams) ([]domain.Attendance, *string, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Attendance), args.Get(1).(*string), args.Error(2)
}

func (m *MockAttendanceRepository) SavePunch(ctx context.Context, userID string, decide portsrepo.PunchDecider) (*domain.Attendance, error) {
	args := m.Called(ctx, userID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	a, err := decide(m.Last)
	if err != nil {
		return nil, err
	}
	m.Last = a
	return a, nil
}

func (m *MockAttendanceRepository) UpdateAttendanceStatus(ctx context.Context, attendance domain.Attendance, expectedVersion int64) error {
	return m.Called(ctx, attendance, expectedVersion).Error(0)
}

// --- Interview repository ---

type MockInterviewRepository struct {
	mock.Mock
}

func (m *MockInterviewRepository) FindInterviewByID(ctx context.Context, interviewID string) (*domain.Interview, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepository) SaveInterview(ctx context.Context, interview domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepository) UpdateInterview(ctx context.Context, interview domain.Interview, expectedVersion int64) error {
	return m.Called(ctx, interview, expectedVersion).Error(0)
}

// --- Schedule repository ---

// MockScheduleRepository keeps Locked and LockedInstallments as the rows
// PayInstallment hands to the payer.
type MockScheduleRepository struct {
	mock.Mock
	Locked             *domain.PaymentSchedule
	LockedInstallments []domain.Installment
}

func (m *MockScheduleRepository) FindScheduleByID(ctx context.Context, scheduleID string) (*domain.PaymentSchedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindInstallmentsBySchedule(ctx context.Context, scheduleID string) ([]domain.Installment, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockScheduleRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	args := m.Called(ctx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockScheduleRepository) ListSchedules(ctx context.Context, status *domain.ScheduleStatus, params portsrepo.ListParams) ([]domain.PaymentSchedule, *string, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.PaymentSchedule), args.Get(1).(*string), args.Error(2)
}

func (m *MockScheduleRepository) GetScheduleStats(ctx context.Context) (*domain.ScheduleStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleStats), args.Error(1)
}

func (m *MockScheduleRepository) ListPendingInstallmentsDue(ctx context.Context, from, to time.Time) ([]domain.Installment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockScheduleRepository) SaveSchedule(ctx context.Context, schedule domain.PaymentSchedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *MockScheduleRepository) SaveGeneratedInstallments(ctx context.Context, schedule domain.PaymentSchedule, expectedVersion int64, installments []domain.Installment) error {
	return m.Called(ctx, schedule, expectedVersion, installments).Error(0)
}

func (m *MockScheduleRepository) UpdateScheduleStatus(ctx context.Context, schedule domain.PaymentSchedule, expectedVersion int64) error {
	return m.Called(ctx, schedule, expectedVersion).Error(0)
}

func (m *MockScheduleRepository) PayInstallment(ctx context.Context, installmentID string, pay portsrepo.InstallmentPayer) (*domain.PaymentSchedule, *domain.Installment, error) {
	args := m.Called(ctx, installmentID)
	if err := args.Error(0); err != nil {
		return nil, nil, err
	}
	// The payer works on copies, mirroring a rolled-back transaction on error.
	sc := *m.Locked
	insts := append([]domain.Installment(nil), m.LockedInstallments...)
	paid, err := pay(&sc, insts)
	if err != nil {
		return nil, nil, err
	}
	m.Locked, m.LockedInstallments = &sc, insts
	return &sc, paid, nil
}

func (m *MockScheduleRepository) DeleteSchedule(ctx context.Context, scheduleID string) error {
	return m.Called(ctx, scheduleID).Error(0)
}

// --- User repository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- Device token repository ---

type MockDeviceTokenRepository struct {
	mock.Mock
}

func (m *MockDeviceTokenRepository) UpsertDeviceToken(ctx context.Context, token domain.DeviceToken) (*domain.DeviceToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeviceToken), args.Error(1)
}

func (m *MockDeviceTokenRepository) DeleteDeviceToken(ctx context.Context, userID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *MockDeviceTokenRepository) ListDeviceTokensByUser(ctx context.Context, userID string) ([]domain.DeviceToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeviceToken), args.Error(1)
}

// --- Transition tracker ---

type recordingTracker struct {
	events []portssvc.TransitionEvent
}

func (r *recordingTracker) TrackTransition(_ context.Context, e portssvc.TransitionEvent) {
	r.events = append(r.events, e)
}

var (
	_ portsrepo.PaymentRepositoryFacade     = (*MockPaymentRepository)(nil)
	_ portsrepo.InvoiceRepositoryFacade     = (*MockInvoiceRepository)(nil)
	_ portsrepo.BordereauRepositoryFacade   = (*MockBordereauRepository)(nil)
	_ portsrepo.AttendanceRepositoryFacade  = (*MockAttendanceRepository)(nil)
	_ portsrepo.InterviewRepositoryFacade   = (*MockInterviewRepository)(nil)
	_ portsrepo.ScheduleRepositoryFacade    = (*MockScheduleRepository)(nil)
	_ portsrepo.UserRepositoryFacade        = (*MockUserRepository)(nil)
	_ portsrepo.DeviceTokenRepositoryFacade = (*MockDeviceTokenRepository)(nil)
)
