//go:build e2e

package auth_test

import (
	"context"
	"net/http"
	"testing"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/usecase/queries"
	"storefront/tests/common/httptest"
	"storefront/tests/e2e"
	e2ehelper "storefront/tests/e2e/common/helper"

	"github.com/stretchr/testify/suite"
)

const (
	loginURL   = "/api/auth/login"
	refreshURL = "/api/auth/refresh"
	logoutURL  = "/api/auth/logout"
	meURL      = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	authHelper *e2ehelper.AuthTestHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.authHelper = e2ehelper.NewAuthTestHelper(s.DB, s.Config.JWT)
}

func (s *authSuite) TestLogin() {
	s.Run("valid credentials return tokens and cookies", func() {
		s.authHelper.CreateTestUser(s.T(), "buyer@example.com", "customer")

		req := reqdto.LoginRequest{Email: "buyer@example.com", Password: "password123"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, req, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotEmpty(response.AccessToken)
		s.NotEmpty(response.RefreshToken)

		s.Require().NotNil(httptest.ExtractCookie(rec, "access_token"))
		s.Require().NotNil(httptest.ExtractCookie(rec, "refresh_token"))
	})

	s.Run("wrong password is rejected", func() {
		s.authHelper.CreateTestUser(s.T(), "buyer@example.com", "customer")

		req := reqdto.LoginRequest{Email: "buyer@example.com", Password: "wrong-password"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, req, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("unknown email is rejected the same way", func() {
		req := reqdto.LoginRequest{Email: "ghost@example.com", Password: "password123"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, req, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("inactive account is forbidden", func() {
		userID := s.authHelper.CreateTestUser(s.T(), "dormant@example.com", "customer")
		_, err := s.DB.Exec(context.Background(), "UPDATE users SET is_active = FALSE WHERE id = $1", userID)
		s.Require().NoError(err)

		req := reqdto.LoginRequest{Email: "dormant@example.com", Password: "password123"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, req, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Account is inactive")
	})
}

func (s *authSuite) TestRefresh() {
	s.Run("refresh cookie yields a new token pair", func() {
		s.authHelper.CreateTestUser(s.T(), "buyer@example.com", "customer")

		loginRec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Email: "buyer@example.com", Password: "password123"}, "")
		s.Require().Equal(http.StatusOK, loginRec.Code)
		refreshCookie := httptest.ExtractCookie(loginRec, "refresh_token")
		s.Require().NotNil(refreshCookie)

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, refreshURL,
			nil, []*http.Cookie{refreshCookie}, "")

		var response resdto.RefreshResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotEmpty(response.AccessToken)
		s.NotEmpty(response.RefreshToken)
	})

	s.Run("garbage refresh token is rejected", func() {
		body := reqdto.RefreshRequest{RefreshToken: "not-a-token"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, refreshURL, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired refresh token")
	})
}

func (s *authSuite) TestMe() {
	s.Run("returns the authenticated user", func() {
		userID, token := s.authHelper.CreateAndLogin(s.T(), s.Router, "buyer@example.com", "customer")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, token)

		var me queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &me)
		s.Equal(userID, me.ID)
		s.Equal("buyer@example.com", me.Email)
		s.Equal("customer", me.Role)
		s.True(me.IsActive)
	})

	s.Run("missing token is unauthorized", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears the session cookies", func() {
		_, token := s.authHelper.CreateAndLogin(s.T(), s.Router, "buyer@example.com", "customer")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, token)
		s.Equal(http.StatusNoContent, rec.Code)

		accessCookie := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(accessCookie)
		s.Empty(accessCookie.Value)
	})
}
