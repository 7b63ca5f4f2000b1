package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func samplePayment(status domain.PaymentStatus) *domain.Payment {
	return &domain.Payment{
		PaymentID:     "p1",
		PaymentNumber: "PAY202403150001",
		ClientName:    "ACME",
		Type:          domain.PaymentMonthly,
		Method:        domain.MethodCash,
		Amount:        decimal.NewFromInt(1200),
		Currency:      "FCFA",
		PaymentDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:        status,
	}
}

func (s *HandlerTestSuite) TestCreatePayment_MonthlyReturnsSchedule() {
	p := samplePayment(domain.PaymentDraft)
	sched := domain.ScheduleForPayment(p, 12, 1, p.PaymentDate)
	sched.ScheduleID = "s1"

	s.payment.On("CreatePayment", mock.Anything, comptable, mock.MatchedBy(func(req dto.CreatePaymentRequest) bool {
		return req.ClientName == "ACME" && req.Amount.Equal(decimal.NewFromInt(1200)) && req.PaymentDate.Day() == 15
	})).Return(p, &sched, nil).Once()

	w, env := s.do(http.MethodPost, "/api/v1/payments", comptable, map[string]any{
		"clientName":  "ACME",
		"type":        "monthly",
		"method":      "cash",
		"amount":      "1200.00",
		"paymentDate": "2024-03-15",
	})

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	s.True(env.Success)
	var data dto.CreatePaymentResponse
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Equal("PAY202403150001", data.Payment.PaymentNumber)
	s.Require().NotNil(data.Schedule)
	s.Equal(12, data.Schedule.TotalInstallments)
}

func (s *HandlerTestSuite) TestCreatePayment_ValidationErrors() {
	w, env := s.do(http.MethodPost, "/api/v1/payments", comptable, map[string]any{
		"clientName": "ACME",
		"type":       "yearly",
		"method":     "cash",
		"amount":     "-5",
	})

	s.Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())
	s.False(env.Success)
	s.Contains(env.Errors, "amount")
	s.Contains(env.Errors, "type")
	s.payment.AssertNotCalled(s.T(), "CreatePayment")
}

func (s *HandlerTestSuite) TestCreatePayment_MalformedBody() {
	w, env := s.do(http.MethodPost, "/api/v1/payments", comptable, `{"clientName":`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.False(env.Success)
}

func (s *HandlerTestSuite) TestListPayments_Filters() {
	next := "tok2"
	s.payment.On("ListPayments", mock.Anything, comptable, mock.MatchedBy(func(f portsrepo.PaymentFilter) bool {
		return f.Status != nil && *f.Status == domain.PaymentSubmitted && f.InvoiceID == nil
	}), portsrepo.ListParams{Limit: 5}).Return([]domain.Payment{*samplePayment(domain.PaymentSubmitted)}, &next, nil).Once()

	w, env := s.do(http.MethodGet, "/api/v1/payments?status=submitted&limit=5", comptable, nil)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var page dto.Page[dto.PaymentResponse]
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Len(page.Items, 1)
	s.Equal("tok2", *page.NextToken)
}

func (s *HandlerTestSuite) TestTransitionPayment() {
	tests := []struct {
		name       string
		action     domain.Action
		body       any
		meta       domain.TransitionMeta
		err        error
		wantStatus int
	}{
		{"approve without body", domain.ActionApprove, nil, domain.TransitionMeta{}, nil, http.StatusOK},
		{"reject with reason", domain.ActionReject, map[string]string{"reason": "wrong amount"}, domain.TransitionMeta{Reason: "wrong amount"}, nil, http.StatusOK},
		{"illegal transition", domain.ActionPay, nil, domain.TransitionMeta{}, fmt.Errorf("%w: pay from draft", apperrors.ErrInvalidTransition), http.StatusBadRequest},
		{"role not allowed", domain.ActionValidate, nil, domain.TransitionMeta{}, fmt.Errorf("%w: validate", apperrors.ErrForbidden), http.StatusForbidden},
		{"concurrent update", domain.ActionSubmit, nil, domain.TransitionMeta{}, apperrors.NewConflictError("payment", "p1"), http.StatusConflict},
		{"unknown payment", domain.ActionSubmit, nil, domain.TransitionMeta{}, apperrors.NewNotFoundError("payment", "p1"), http.StatusNotFound},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			call := s.payment.On("TransitionPayment", mock.Anything, comptable, "p1", tt.action, tt.meta)
			if tt.err != nil {
				call.Return(nil, tt.err).Once()
			} else {
				call.Return(samplePayment(domain.PaymentApproved), nil).Once()
			}

			w, env := s.do(http.MethodPost, "/api/v1/payments/p1/"+string(tt.action), comptable, tt.body)

			s.Equal(tt.wantStatus, w.Code, w.Body.String())
			s.Equal(tt.err == nil, env.Success)
			s.payment.AssertExpectations(s.T())
		})
	}
}

func (s *HandlerTestSuite) TestTransitionPayment_ReasonTooLong() {
	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'x'
	}
	w, env := s.do(http.MethodPost, "/api/v1/payments/p1/reject", comptable, map[string]string{"reason": string(long)})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(env.Errors, "reason")
}
