package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (s *HandlerTestSuite) TestLogin() {
	user := &domain.User{UserID: "u-compta", Username: "awa", Name: "Awa", Role: domain.RoleComptable}
	expires := time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC)
	s.auth.On("Login", mock.Anything, "awa", "secret").Return(user, "signed.jwt.token", expires, nil).Once()

	w, env := s.do(http.MethodPost, "/api/v1/auth/login", domain.Actor{}, map[string]string{"username": "awa", "password": "secret"})

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var data dto.LoginResponse
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Equal("signed.jwt.token", data.Token)
	s.True(expires.Equal(data.ExpiresAt))
	s.Equal("comptable", data.User.RoleName)
}

func (s *HandlerTestSuite) TestLogin_WrongPassword() {
	s.auth.On("Login", mock.Anything, "awa", "nope").
		Return(nil, "", time.Time{}, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)).Once()

	w, env := s.do(http.MethodPost, "/api/v1/auth/login", domain.Actor{}, map[string]string{"username": "awa", "password": "nope"})

	s.Equal(http.StatusUnauthorized, w.Code)
	s.False(env.Success)
}

func (s *HandlerTestSuite) TestLogin_MissingPassword() {
	w, env := s.do(http.MethodPost, "/api/v1/auth/login", domain.Actor{}, map[string]string{"username": "awa"})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("is required", env.Errors["password"])
}

func (s *HandlerTestSuite) TestLogin_RateLimited() {
	s.auth.On("Login", mock.Anything, "awa", "nope").
		Return(nil, "", time.Time{}, apperrors.ErrUnauthorized)

	var last int
	for i := 0; i < 11; i++ {
		w, _ := s.do(http.MethodPost, "/api/v1/auth/login", domain.Actor{}, map[string]string{"username": "awa", "password": "nope"})
		last = w.Code
	}
	s.Equal(http.StatusTooManyRequests, last)
}
