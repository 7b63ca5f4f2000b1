package services_test

import (
	"context"
	"testing"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/core/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	paymentRepo *MockPaymentRepository
	invoiceRepo *MockInvoiceRepository
	tracker     *recordingTracker
	service     portssvc.PaymentSvcFacade
	sweeper     portssvc.OverdueSweeperSvc
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.paymentRepo = new(MockPaymentRepository)
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.tracker = &recordingTracker{}
	opts := testOptions(suite.tracker)
	suite.service = services.NewPaymentService(suite.paymentRepo, suite.invoiceRepo, "FCFA", opts...)
	suite.sweeper = services.NewOverdueSweeper(suite.paymentRepo, suite.invoiceRepo, opts...)
}

func (suite *PaymentServiceTestSuite) TearDownTest() {
	suite.paymentRepo.AssertExpectations(suite.T())
	suite.invoiceRepo.AssertExpectations(suite.T())
}

// --- Create ---

func (suite *PaymentServiceTestSuite) TestCreatePayment_OneTimeStartsAsDraft() {
	req := dto.CreatePaymentRequest{
		ClientName: " ACME ",
		Type:       string(domain.PaymentOneTime),
		Method:     string(domain.MethodCash),
		Amount:     decimal.NewFromInt(5000),
	}
	suite.paymentRepo.On("CreatePayment", suite.ctx, mock.AnythingOfType("*domain.Payment"), (*domain.PaymentSchedule)(nil)).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Payment).PaymentNumber = domain.FormatPaymentNumber(fixedNow, 1)
		}).
		Return(nil).Once()

	payment, schedule, err := suite.service.CreatePayment(suite.ctx, commercial, req)

	suite.Require().NoError(err)
	suite.Nil(schedule)
	suite.Equal(domain.PaymentDraft, payment.Status)
	suite.Equal("ACME", payment.ClientName)
	suite.Equal("FCFA", payment.Currency)
	suite.Equal(day(2024, 3, 15), payment.PaymentDate)
	suite.Equal("PAY202403150001", payment.PaymentNumber)
	suite.Equal(int64(1), payment.Version)
	suite.Equal("u-sales", payment.CreatedBy)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_MonthlyGetsDefaultSchedule() {
	due := dto.Date{Time: day(2024, 4, 10)}
	req := dto.CreatePaymentRequest{
		ClientName: "ACME",
		Type:       string(domain.PaymentMonthly),
		Method:     string(domain.MethodDirectDebit),
		Amount:     decimal.NewFromInt(1200),
		DueDate:    &due,
	}
	suite.paymentRepo.On("CreatePayment", suite.ctx, mock.AnythingOfType("*domain.Payment"), mock.AnythingOfType("*domain.PaymentSchedule")).
		Return(nil).Once()

	payment, schedule, err := suite.service.CreatePayment(suite.ctx, comptable, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(schedule)
	suite.Equal(payment.PaymentID, *schedule.PaymentID)
	suite.Equal(domain.DefaultTotalInstallments, schedule.TotalInstallments)
	suite.Equal(domain.DefaultFrequencyMonths, schedule.Frequency)
	suite.True(decimal.NewFromInt(100).Equal(schedule.InstallmentAmount))
	suite.Equal(day(2024, 4, 10), schedule.StartDate)
	suite.Equal(domain.ScheduleActive, schedule.Status)
	suite.False(schedule.InstallmentsGenerated)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_TechnicienIsForbidden() {
	_, _, err := suite.service.CreatePayment(suite.ctx, technicien, dto.CreatePaymentRequest{Amount: decimal.NewFromInt(1)})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.paymentRepo.AssertNotCalled(suite.T(), "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_UnknownInvoice() {
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "inv-x").Return(nil, apperrors.NewNotFoundError("invoice", "inv-x")).Once()

	_, _, err := suite.service.CreatePayment(suite.ctx, comptable, dto.CreatePaymentRequest{
		InvoiceID: strPtr("inv-x"),
		Type:      string(domain.PaymentOneTime),
		Amount:    decimal.NewFromInt(10),
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Transitions ---

func (suite *PaymentServiceTestSuite) TestValidate_DraftIsSubmittedApprovedAndInvoicePaid() {
	payment := &domain.Payment{PaymentID: "p1", InvoiceID: strPtr("inv-1"), Status: domain.PaymentDraft, AuditFields: domain.AuditFields{Version: 3}}
	invoice := &domain.Invoice{InvoiceID: "inv-1", Status: domain.InvoicePending, AuditFields: domain.AuditFields{Version: 2}}
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "p1").Return(payment, nil).Once()
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "inv-1").Return(invoice, nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx,
		mock.MatchedBy(func(p domain.Payment) bool { return p.Status == domain.PaymentApproved && p.SubmittedAt != nil }),
		int64(3),
		mock.MatchedBy(func(inv *domain.Invoice) bool { return inv != nil && inv.Status == domain.InvoicePaid }),
		int64(2),
	).Return(nil).Once()

	got, err := suite.service.TransitionPayment(suite.ctx, comptable, "p1", domain.ActionValidate, domain.TransitionMeta{Comment: "ok"})

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentApproved, got.Status)
	suite.Equal("u-compta", *got.ValidatedBy)
	suite.Equal(int64(4), got.Version)
	suite.Require().Len(suite.tracker.events, 2)
	suite.Equal(domain.EntityPayment, suite.tracker.events[0].Entity)
	suite.Equal("draft", suite.tracker.events[0].From)
	suite.Equal(domain.EntityInvoice, suite.tracker.events[1].Entity)
	suite.Equal("paid", suite.tracker.events[1].To)
}

func (suite *PaymentServiceTestSuite) TestApprove_PaidInvoiceIsLeftAlone() {
	payment := &domain.Payment{PaymentID: "p1", InvoiceID: strPtr("inv-1"), Status: domain.PaymentSubmitted, AuditFields: domain.AuditFields{Version: 1}}
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "p1").Return(payment, nil).Once()
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "inv-1").Return(&domain.Invoice{InvoiceID: "inv-1", Status: domain.InvoicePaid}, nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx, mock.AnythingOfType("domain.Payment"), int64(1), (*domain.Invoice)(nil), int64(0)).Return(nil).Once()

	got, err := suite.service.TransitionPayment(suite.ctx, admin, "p1", domain.ActionApprove, domain.TransitionMeta{})

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentApproved, got.Status)
	suite.Len(suite.tracker.events, 1)
}

func (suite *PaymentServiceTestSuite) TestTransition_CascadeFailureLeavesNothingTracked() {
	payment := &domain.Payment{PaymentID: "p1", InvoiceID: strPtr("inv-1"), Status: domain.PaymentApproved, AuditFields: domain.AuditFields{Version: 5}}
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "p1").Return(payment, nil).Once()
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "inv-1").Return(&domain.Invoice{InvoiceID: "inv-1", Status: domain.InvoiceUnpaid, AuditFields: domain.AuditFields{Version: 7}}, nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx, mock.AnythingOfType("domain.Payment"), int64(5), mock.AnythingOfType("*domain.Invoice"), int64(7)).
		Return(apperrors.NewConflictError("invoice", "inv-1")).Once()

	got, err := suite.service.TransitionPayment(suite.ctx, comptable, "p1", domain.ActionPay, domain.TransitionMeta{})

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(suite.tracker.events)
}

func (suite *PaymentServiceTestSuite) TestTransition_IllegalActionIsNotPersisted() {
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "p1").Return(&domain.Payment{PaymentID: "p1", Status: domain.PaymentPaid}, nil).Once()

	_, err := suite.service.TransitionPayment(suite.ctx, comptable, "p1", domain.ActionApprove, domain.TransitionMeta{})

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.paymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestTransition_RoleChecks() {
	tests := []struct {
		name   string
		actor  domain.Actor
		action domain.Action
	}{
		{"commercial validates", commercial, domain.ActionValidate},
		{"patron approves", patron, domain.ActionApprove},
		{"rh rejects", rh, domain.ActionReject},
		{"technicien marks overdue", technicien, domain.ActionMarkOverdue},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.TransitionPayment(suite.ctx, tt.actor, "p1", tt.action, domain.TransitionMeta{Reason: "r"})
			suite.ErrorIs(err, apperrors.ErrForbidden)
		})
	}
	suite.paymentRepo.AssertNotCalled(suite.T(), "FindPaymentByID", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApproveThenReject_ReopensInvoice() {
	payment := &domain.Payment{PaymentID: "p1", InvoiceID: strPtr("inv-1"), Status: domain.PaymentSubmitted, AuditFields: domain.AuditFields{Version: 1}}
	invoice := &domain.Invoice{InvoiceID: "inv-1", Status: domain.InvoicePending, DueDate: day(2024, 4, 1), AuditFields: domain.AuditFields{Version: 1}}
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "p1").Return(payment, nil).Twice()
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "inv-1").Return(invoice, nil).Twice()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx,
		mock.MatchedBy(func(p domain.Payment) bool { return p.Status == domain.PaymentApproved }),
		int64(1),
		mock.MatchedBy(func(inv *domain.Invoice) bool { return inv != nil && inv.Status == domain.InvoicePaid }),
		int64(1),
	).Return(nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx,
		mock.MatchedBy(func(p domain.Payment) bool { return p.Status == domain.PaymentRejected }),
		int64(2),
		mock.MatchedBy(func(inv *domain.Invoice) bool {
			return inv != nil && inv.Status == domain.InvoicePending && inv.PaidAt == nil
		}),
		int64(2),
	).Return(nil).Once()

	_, err := suite.service.TransitionPayment(suite.ctx, comptable, "p1", domain.ActionApprove, domain.TransitionMeta{})
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, invoice.Status)

	got, err := suite.service.TransitionPayment(suite.ctx, comptable, "p1", domain.ActionReject, domain.TransitionMeta{Reason: "bounced"})

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRejected, got.Status)
	suite.Equal(domain.InvoicePending, invoice.Status)
	suite.Require().Len(suite.tracker.events, 4)
	suite.Equal(domain.EntityInvoice, suite.tracker.events[3].Entity)
	suite.Equal("paid", suite.tracker.events[3].From)
	suite.Equal("pending", suite.tracker.events[3].To)
}

func (suite *PaymentServiceTestSuite) TestRejectApproved_LeavesInvoicePaidByAnotherPayment() {
	approvedAt := day(2024, 3, 10)
	paidAt := day(2024, 3, 1)
	payment := &domain.Payment{PaymentID: "p1", InvoiceID: strPtr("inv-1"), Status: domain.PaymentApproved, ApprovedAt: &approvedAt, AuditFields: domain.AuditFields{Version: 2}}
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "p1").Return(payment, nil).Once()
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, "inv-1").Return(&domain.Invoice{InvoiceID: "inv-1", Status: domain.InvoicePaid, PaidAt: &paidAt}, nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx, mock.AnythingOfType("domain.Payment"), int64(2), (*domain.Invoice)(nil), int64(0)).Return(nil).Once()

	got, err := suite.service.TransitionPayment(suite.ctx, admin, "p1", domain.ActionReject, domain.TransitionMeta{Reason: "duplicate"})

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRejected, got.Status)
	suite.Len(suite.tracker.events, 1)
}

func (suite *PaymentServiceTestSuite) TestReject_RequiresReason() {
	suite.paymentRepo.On("FindPaymentByID", suite.ctx, "p1").Return(&domain.Payment{PaymentID: "p1", Status: domain.PaymentSubmitted}, nil).Once()

	_, err := suite.service.TransitionPayment(suite.ctx, comptable, "p1", domain.ActionReject, domain.TransitionMeta{})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Sweep ---

func (suite *PaymentServiceTestSuite) TestMarkOverduePayments_SkipsConflicts() {
	pastDue := timePtr(day(2024, 3, 1))
	batch := []domain.Payment{
		{PaymentID: "p1", Status: domain.PaymentSubmitted, DueDate: pastDue, AuditFields: domain.AuditFields{Version: 1}},
		{PaymentID: "p2", Status: domain.PaymentApproved, DueDate: pastDue, AuditFields: domain.AuditFields{Version: 4}},
	}
	suite.paymentRepo.On("FindPastDuePayments", suite.ctx, fixedNow, 200).Return(batch, nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx,
		mock.MatchedBy(func(p domain.Payment) bool { return p.PaymentID == "p1" && p.Status == domain.PaymentOverdue && p.LastUpdatedBy == "system" }),
		int64(1), (*domain.Invoice)(nil), int64(0)).Return(nil).Once()
	suite.paymentRepo.On("UpdatePaymentStatus", suite.ctx,
		mock.MatchedBy(func(p domain.Payment) bool { return p.PaymentID == "p2" }),
		int64(4), (*domain.Invoice)(nil), int64(0)).Return(apperrors.NewConflictError("payment", "p2")).Once()

	moved, err := suite.sweeper.MarkOverduePayments(suite.ctx, fixedNow)

	suite.Require().NoError(err)
	suite.Equal(1, moved)
	suite.Require().Len(suite.tracker.events, 1)
	suite.Equal(domain.SystemActor, suite.tracker.events[0].Actor)
}

func (suite *PaymentServiceTestSuite) TestMarkUnpaidInvoices() {
	batch := []domain.Invoice{
		{InvoiceID: "i1", Status: domain.InvoicePending, DueDate: day(2024, 3, 14), AuditFields: domain.AuditFields{Version: 2}},
		{InvoiceID: "i2", Status: domain.InvoicePending, DueDate: day(2024, 3, 15)},
	}
	suite.invoiceRepo.On("FindPastDueInvoices", suite.ctx, fixedNow, 200).Return(batch, nil).Once()
	suite.invoiceRepo.On("UpdateInvoiceStatus", suite.ctx,
		mock.MatchedBy(func(inv domain.Invoice) bool { return inv.InvoiceID == "i1" && inv.Status == domain.InvoiceUnpaid }),
		int64(2)).Return(nil).Once()

	moved, err := suite.sweeper.MarkUnpaidInvoices(suite.ctx, fixedNow)

	suite.Require().NoError(err)
	suite.Equal(1, moved)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
