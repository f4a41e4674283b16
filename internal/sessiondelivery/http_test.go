package sessiondelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/cashsplit/cashsplit/internal/domain"
	"github.com/cashsplit/cashsplit/pkg/errorspkg"
	"github.com/cashsplit/cashsplit/pkg/randompkg"
	"github.com/cashsplit/cashsplit/pkg/tokenpkg"
	"github.com/cashsplit/cashsplit/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRenewAccessToken(t *testing.T) {
	refreshToken := randompkg.String(40)
	accessToken := randompkg.String(40)
	expiresAt := time.Now().Add(time.Minute).UTC()

	testCases := []struct {
		name           string
		buildStubs     func(sessionService *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			buildStubs: func(sessionService *MockService) {
				sessionService.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return(accessToken, expiresAt, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "ErrExpiredToken",
			buildStubs: func(sessionService *MockService) {
				sessionService.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return("", time.Time{}, tokenpkg.ErrExpiredToken)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrExpiredToken.Error(),
		},
		{
			name: "ErrSessionNotFound",
			buildStubs: func(sessionService *MockService) {
				sessionService.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return("", time.Time{}, domain.ErrSessionNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrSessionNotFound.Error(),
		},
		{
			name: "ErrBlockedSession",
			buildStubs: func(sessionService *MockService) {
				sessionService.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return("", time.Time{}, domain.ErrBlockedSession)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrBlockedSession.Error(),
		},
		{
			name: "InternalError",
			buildStubs: func(sessionService *MockService) {
				sessionService.EXPECT().
					RenewAccessToken(gomock.Any(), gomock.Eq(refreshToken)).
					Times(1).
					Return("", time.Time{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			sessionService := NewMockService(ctrl)
			sessionHandler := NewHandler(sessionService)

			server := gin.New()
			server.POST("/sessions", sessionHandler.RenewAccessToken)

			tc.buildStubs(sessionService)

			body, err := json.Marshal(gin.H{"refresh_token": refreshToken})
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantStatusCode != http.StatusOK {
				var res web.Response
				if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
					t.Fatalf("Decoding response body error: %v", err)
				}

				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}

				return
			}

			var res renewAccessTokenResponse
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.AccessToken != accessToken {
				t.Errorf("res.AccessToken=%q, want %q", res.AccessToken, accessToken)
			}

			if !res.AccessTokenExpiresAt.Equal(expiresAt) {
				t.Errorf("res.AccessTokenExpiresAt=%v, want %v", res.AccessTokenExpiresAt, expiresAt)
			}
		})
	}
}
