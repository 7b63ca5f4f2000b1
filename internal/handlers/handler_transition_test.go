package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

func (s *HandlerTestSuite) TestGenericTransition() {
	rh := domain.Actor{UserID: "u-rh", Role: domain.RoleRH}
	approved := &domain.Attendance{AttendanceID: "a1", Status: domain.AttendanceApproved}
	s.lifecycle.On("Transition", mock.Anything, domain.EntityAttendance, "a1", domain.ActionApprove, rh,
		domain.TransitionMeta{Comment: "on time"}).Return(approved, nil).Once()

	w, env := s.do(http.MethodPost, "/api/v1/transitions", rh, map[string]string{
		"entityType": "attendance",
		"entityID":   "a1",
		"action":     "approve",
		"comment":    "on time",
	})

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var got domain.Attendance
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal(domain.AttendanceApproved, got.Status)
}

func (s *HandlerTestSuite) TestGenericTransition_Errors() {
	s.lifecycle.On("Transition", mock.Anything, domain.EntityType("widget"), "w1", domain.ActionApprove, comptable, domain.TransitionMeta{}).
		Return(nil, fmt.Errorf("%w: unknown entity type", apperrors.ErrValidation)).Once()

	w, _ := s.do(http.MethodPost, "/api/v1/transitions", comptable, map[string]string{
		"entityType": "widget", "entityID": "w1", "action": "approve",
	})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/transitions", comptable, map[string]string{"entityType": "payment"})
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(env.Errors, "entityID")
	s.Contains(env.Errors, "action")
}
