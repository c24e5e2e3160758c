package api

import (
	"fmt"
	"net/http"

	"github.com/golang/mock/gomock"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service"
	"github.com/fsdevblog/dzstore/internal/transport/api/testutils"
)

func (s *HandlersTestSuite) TestRegister() {
	steamID := testutils.FakeSteamID()
	username := testutils.FakeUsername()
	password := testutils.FakePassword()
	user := &domain.User{ID: 7, Username: username, SteamID: steamID, Role: domain.UserRoleUser}

	cases := []struct {
		name       string
		body       any
		token      string
		setup      func()
		wantStatus int
		wantError  string
	}{
		{
			name: "created",
			body: UserRegisterParams{Username: username, Password: password, SteamID: steamID},
			setup: func() {
				s.users.EXPECT().
					Register(gomock.Any(), service.RegisterUserArgs{
						Username: username,
						Password: password,
						SteamID:  steamID,
					}).
					Return(user, "jwt-token", nil)
			},
			wantStatus: http.StatusCreated,
		}, {
			name:       "malformed steam id",
			body:       UserRegisterParams{Username: username, Password: password, SteamID: "12345"},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "validation failed",
		}, {
			name: "password longer than bcrypt accepts",
			body: UserRegisterParams{
				Username: username,
				Password: testutils.GenerateOverBytesUnderRunes(20),
				SteamID:  steamID,
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "validation failed",
		}, {
			name: "duplicate",
			body: UserRegisterParams{Username: username, Password: password, SteamID: steamID},
			setup: func() {
				s.users.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(nil, "", fmt.Errorf("registering user: %w", domain.ErrDuplicateKey))
			},
			wantStatus: http.StatusConflict,
			wantError:  "username or steam id already registered",
		}, {
			name:       "malformed body",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantError:  "bad request",
		}, {
			name:       "already authorized",
			body:       UserRegisterParams{Username: username, Password: password, SteamID: steamID},
			token:      s.userToken,
			wantStatus: http.StatusUnauthorized,
			wantError:  "already authorized",
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			if t.setup != nil {
				t.setup()
			}
			resp := s.request(http.MethodPost, RegisterRoute, t.body, t.token)
			s.Equal(t.wantStatus, resp.StatusCode)

			if t.wantError != "" {
				s.Equal(t.wantError, s.errorMessage(resp))
				return
			}
			s.Equal("Bearer jwt-token", resp.Header.Get("Authorization"))
			var body AuthResponse
			s.decode(resp, &body)
			s.Equal("jwt-token", body.Token)
			s.Equal(steamID, body.User.SteamID)
			s.Equal(domain.UserRoleUser, body.User.Role)
		})
	}
}

func (s *HandlersTestSuite) TestLogin() {
	params := UserLoginParams{Username: "survivor", Password: "secret-password"}
	args := service.LoginUserArgs{Username: params.Username, Password: params.Password}

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{name: "unknown user", err: domain.ErrRecordNotFound, wantStatus: http.StatusUnauthorized, wantError: "invalid credentials"},
		{name: "wrong password", err: domain.ErrPasswordMissMatch, wantStatus: http.StatusUnauthorized, wantError: "invalid credentials"},
		{name: "banned", err: domain.ErrAccountRestricted, wantStatus: http.StatusForbidden, wantError: domain.ErrAccountRestricted.Error()},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			if t.err != nil {
				s.users.EXPECT().Login(gomock.Any(), args).Return(nil, "", fmt.Errorf("login user: %w", t.err))
			} else {
				s.users.EXPECT().Login(gomock.Any(), args).
					Return(&domain.User{ID: testUserID, Username: params.Username, Points: 250}, "jwt-token", nil)
			}

			resp := s.request(http.MethodPost, LoginRoute, params, "")
			s.Equal(t.wantStatus, resp.StatusCode)
			if t.wantError != "" {
				s.Equal(t.wantError, s.errorMessage(resp))
				return
			}
			var body AuthResponse
			s.decode(resp, &body)
			s.Equal("jwt-token", body.Token)
			s.Equal(int64(250), body.User.Points)
		})
	}
}
