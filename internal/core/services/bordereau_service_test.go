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

type BordereauServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *MockBordereauRepository
	tracker *recordingTracker
	service portssvc.BordereauSvcFacade
}

func (suite *BordereauServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = new(MockBordereauRepository)
	suite.tracker = &recordingTracker{}
	suite.service = services.NewBordereauService(suite.repo, testOptions(suite.tracker)...)
}

func (suite *BordereauServiceTestSuite) TearDownTest() {
	suite.repo.AssertExpectations(suite.T())
}

func bordereauRequest() dto.BordereauRequest {
	return dto.BordereauRequest{
		Reference:  " BRD-001 ",
		ClientName: "ACME",
		Items: []dto.BordereauItemRequest{
			{Designation: "Câble", Unit: "m", Quantity: 2, UnitPrice: decimal.NewFromInt(150)},
			{Designation: "Switch", Quantity: 1, UnitPrice: decimal.NewFromInt(200)},
		},
	}
}

func (suite *BordereauServiceTestSuite) TestCreate_DefaultsAndItems() {
	suite.repo.On("SaveBordereau", suite.ctx, mock.AnythingOfType("domain.Bordereau")).Return(nil).Once()

	b, err := suite.service.CreateBordereau(suite.ctx, commercial, bordereauRequest())

	suite.Require().NoError(err)
	suite.Equal("BRD-001", b.Reference)
	suite.Equal(domain.BordereauSubmitted, b.Status)
	suite.True(domain.DefaultVATRate.Equal(b.VATRate))
	suite.True(b.GlobalDiscount.IsZero())
	suite.Require().Len(b.Items, 2)
	suite.Equal("id-2", b.Items[0].ItemID)
	suite.Equal("id-3", b.Items[1].ItemID)
}

func (suite *BordereauServiceTestSuite) TestCreate_DuplicateReference() {
	suite.repo.On("SaveBordereau", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateBordereau(suite.ctx, commercial, bordereauRequest())

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BordereauServiceTestSuite) TestValidatedBordereauIsFrozen() {
	validated := func() *domain.Bordereau {
		return &domain.Bordereau{BordereauID: "b1", Status: domain.BordereauValidated, AuditFields: domain.AuditFields{Version: 2}}
	}
	suite.repo.On("FindBordereauByID", suite.ctx, "b1").Return(validated(), nil).Once()
	_, err := suite.service.UpdateBordereau(suite.ctx, commercial, "b1", bordereauRequest())
	suite.ErrorIs(err, apperrors.ErrInvalidState)

	suite.repo.On("FindBordereauByID", suite.ctx, "b1").Return(validated(), nil).Once()
	suite.ErrorIs(suite.service.DeleteBordereau(suite.ctx, commercial, "b1"), apperrors.ErrInvalidState)

	suite.repo.AssertNotCalled(suite.T(), "UpdateBordereau", mock.Anything, mock.Anything, mock.Anything)
	suite.repo.AssertNotCalled(suite.T(), "DeleteBordereau", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BordereauServiceTestSuite) TestUpdate_SubmittedBordereau() {
	suite.repo.On("FindBordereauByID", suite.ctx, "b1").
		Return(&domain.Bordereau{BordereauID: "b1", Status: domain.BordereauSubmitted, AuditFields: domain.AuditFields{Version: 4}}, nil).Once()
	suite.repo.On("UpdateBordereau", suite.ctx, mock.AnythingOfType("domain.Bordereau"), int64(4)).Return(nil).Once()

	b, err := suite.service.UpdateBordereau(suite.ctx, patron, "b1", bordereauRequest())

	suite.Require().NoError(err)
	suite.Equal(int64(5), b.Version)
	suite.Equal("u-boss", b.LastUpdatedBy)
}

func (suite *BordereauServiceTestSuite) TestValidate() {
	suite.Run("commercial is forbidden", func() {
		_, err := suite.service.TransitionBordereau(suite.ctx, commercial, "b1", domain.ActionValidate, domain.TransitionMeta{})
		suite.ErrorIs(err, apperrors.ErrForbidden)
	})

	suite.Run("patron validates", func() {
		suite.repo.On("FindBordereauByID", suite.ctx, "b1").
			Return(&domain.Bordereau{BordereauID: "b1", Status: domain.BordereauSubmitted, AuditFields: domain.AuditFields{Version: 1}}, nil).Once()
		suite.repo.On("UpdateBordereauStatus", suite.ctx,
			mock.MatchedBy(func(b domain.Bordereau) bool { return b.Status == domain.BordereauValidated }), int64(1)).Return(nil).Once()

		b, err := suite.service.TransitionBordereau(suite.ctx, patron, "b1", domain.ActionValidate, domain.TransitionMeta{})
		suite.Require().NoError(err)
		suite.Equal("u-boss", *b.ValidatedBy)
		suite.Require().Len(suite.tracker.events, 1)
		suite.Equal("validated", suite.tracker.events[0].To)
	})
}

func TestBordereauServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BordereauServiceTestSuite))
}
