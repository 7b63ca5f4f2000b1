package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (s *HandlerTestSuite) TestPunch() {
	punch := &domain.Attendance{
		AttendanceID: "a1",
		UserID:       technicien.UserID,
		Type:         domain.PunchCheckIn,
		PunchedAt:    time.Now(),
		Status:       domain.AttendancePending,
	}
	s.attend.On("Punch", mock.Anything, technicien, mock.MatchedBy(func(req dto.PunchRequest) bool {
		return req.Type == "check_in" && req.Latitude != nil && *req.Latitude == 5.36
	})).Return(punch, nil).Once()
	s.attend.On("Punch", mock.Anything, technicien, mock.MatchedBy(func(req dto.PunchRequest) bool {
		return req.Type == "check_in" && req.Latitude == nil
	})).Return(nil, fmt.Errorf("%w: already checked in", apperrors.ErrInvalidTransition)).Once()

	w, env := s.do(http.MethodPost, "/api/v1/attendances/punch", technicien, map[string]any{
		"type": "check_in", "latitude": 5.36, "longitude": -4.01,
	})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	s.True(env.Success)

	w, _ = s.do(http.MethodPost, "/api/v1/attendances/punch", technicien, map[string]any{"type": "check_in"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestPunch_InvalidCoordinates() {
	w, env := s.do(http.MethodPost, "/api/v1/attendances/punch", technicien, map[string]any{
		"type": "check_in", "latitude": 123.0,
	})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(env.Errors, "latitude")
}

func (s *HandlerTestSuite) TestListAttendances_UserFilter() {
	rh := domain.Actor{UserID: "u-rh", Role: domain.RoleRH}
	s.attend.On("ListAttendances", mock.Anything, rh, mock.MatchedBy(func(f portsrepo.AttendanceFilter) bool {
		return f.UserID != nil && *f.UserID == "u-tech" && f.Status != nil && *f.Status == domain.AttendancePending
	}), portsrepo.ListParams{Limit: dto.DefaultListLimit}).Return([]domain.Attendance{}, (*string)(nil), nil).Once()

	w, _ := s.do(http.MethodGet, "/api/v1/attendances?userID=u-tech&status=pending", rh, nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestRejectAttendance_NeedsReason() {
	rh := domain.Actor{UserID: "u-rh", Role: domain.RoleRH}
	s.attend.On("TransitionAttendance", mock.Anything, rh, "a1", domain.ActionReject, domain.TransitionMeta{}).
		Return(nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)).Once()

	w, env := s.do(http.MethodPost, "/api/v1/attendances/a1/reject", rh, nil)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(env.Message, "reason")
}

func (s *HandlerTestSuite) TestDeviceTokens() {
	tok := &domain.DeviceToken{TokenID: "t1", UserID: technicien.UserID, Token: "fcm-abc", Platform: "android"}
	s.device.On("RegisterDeviceToken", mock.Anything, technicien, mock.MatchedBy(func(req dto.RegisterDeviceTokenRequest) bool {
		return req.Token == "fcm-abc" && req.Metadata["model"] == "Pixel"
	})).Return(tok, nil).Once()
	s.device.On("UnregisterDeviceToken", mock.Anything, technicien, "fcm-abc").Return(nil).Once()
	s.device.On("UnregisterDeviceToken", mock.Anything, technicien, "other").Return(apperrors.NewNotFoundError("device token", "other")).Once()

	w, _ := s.do(http.MethodPost, "/api/v1/device-tokens", technicien, map[string]any{
		"token": "fcm-abc", "platform": "android", "metadata": map[string]string{"model": "Pixel"},
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(http.MethodPost, "/api/v1/device-tokens", technicien, map[string]any{"token": "x", "platform": "symbian"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/v1/device-tokens/fcm-abc", technicien, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/v1/device-tokens/other", technicien, nil)
	s.Equal(http.StatusNotFound, w.Code)
}
