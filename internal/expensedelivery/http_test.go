package expensedelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cashsplit/cashsplit/internal/domain"
	"github.com/cashsplit/cashsplit/internal/expenseservice"
	"github.com/cashsplit/cashsplit/internal/middleware"
	"github.com/cashsplit/cashsplit/pkg/currencypkg"
	"github.com/cashsplit/cashsplit/pkg/errorspkg"
	"github.com/cashsplit/cashsplit/pkg/randompkg"
	"github.com/cashsplit/cashsplit/pkg/tokenpkg"
	"github.com/cashsplit/cashsplit/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	username := randompkg.Owner()
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("currency", currencypkg.ValidCurrency); err != nil {
			t.Fatalf("RegisterValidation(currency) returned error: %v", err)
		}
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	expense := domain.Expense{
		ID:      randompkg.String(10),
		GroupID: "trip",
		Payer:   "Alice",
		For:     []string{"Alice", "Bob"},
		Amount:  30,
		Date:    time.Now().UTC(),
	}

	type requestBody struct {
		GroupID  string   `json:"group_id"`
		Payer    string   `json:"payer"`
		For      []string `json:"for"`
		Amount   string   `json:"amount"`
		Currency string   `json:"currency,omitempty"`
	}

	okBody := requestBody{
		GroupID: expense.GroupID,
		Payer:   expense.Payer,
		For:     expense.For,
		Amount:  "30.00",
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(expenseService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name:        "OK",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Create(gomock.Any(), gomock.Eq(username), gomock.AssignableToTypeOf(expenseservice.CreateParams{})).
					Times(1).
					Return(expense, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*struct {
					Expense domain.Expense `json:"expense"`
				})
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareDate := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(expense, got.Expense, compareDate); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "NoAuthorization",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "MissingAmount",
			requestBody: requestBody{
				GroupID: expense.GroupID,
				Payer:   expense.Payer,
				For:     expense.For,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount field is required",
		},
		{
			name: "UnsupportedCurrency",
			requestBody: requestBody{
				GroupID:  expense.GroupID,
				Payer:    expense.Payer,
				For:      expense.For,
				Amount:   "30.00",
				Currency: "RUB",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Currency field must contain a supported currency",
		},
		{
			name:        "ErrPayerNotMember",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Create(gomock.Any(), gomock.Eq(username), gomock.AssignableToTypeOf(expenseservice.CreateParams{})).
					Times(1).
					Return(domain.Expense{}, domain.ErrPayerNotMember)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrPayerNotMember.Error(),
		},
		{
			name:        "ErrGroupNotFound",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Create(gomock.Any(), gomock.Eq(username), gomock.AssignableToTypeOf(expenseservice.CreateParams{})).
					Times(1).
					Return(domain.Expense{}, domain.ErrGroupNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrGroupNotFound.Error(),
		},
		{
			name:        "InternalError",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, username, duration)
			},
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Create(gomock.Any(), gomock.Eq(username), gomock.AssignableToTypeOf(expenseservice.CreateParams{})).
					Times(1).
					Return(domain.Expense{}, errorspkg.ErrInternal)
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
			expenseService := NewMockService(ctrl)
			expenseHandler := NewHandler(expenseService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.POST("/expenses", expenseHandler.Create)

			tc.buildStubs(expenseService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/expenses", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Expense domain.Expense `json:"expense"`
				}{},
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestList(t *testing.T) {
	username := randompkg.Owner()
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	groupID := "trip"
	expenses := []domain.Expense{
		{ID: "e1", GroupID: groupID, Payer: "Alice", For: []string{"Alice", "Bob"}, Amount: 30, Date: time.Now().UTC()},
		{ID: "e2", GroupID: groupID, Payer: "Bob", For: []string{"Bob"}, Amount: 5, Date: time.Now().UTC()},
	}

	testCases := []struct {
		name           string
		buildStubs     func(expenseService *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(data any)
	}{
		{
			name: "OK",
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					ListByGroup(gomock.Any(), gomock.Eq(username), gomock.Eq(groupID)).
					Times(1).
					Return(expenses, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*struct {
					Expenses []domain.Expense `json:"expenses"`
				})
				if !ok {
					t.Errorf(`res.Data=%v, failed type conversion`, data)
				}

				compareDate := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(expenses, got.Expenses, compareDate); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "ErrGroupOwnerMismatch",
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					ListByGroup(gomock.Any(), gomock.Eq(username), gomock.Eq(groupID)).
					Times(1).
					Return(nil, domain.ErrGroupOwnerMismatch)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrGroupOwnerMismatch.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			expenseService := NewMockService(ctrl)
			expenseHandler := NewHandler(expenseService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/groups/:id/expenses", expenseHandler.List)

			tc.buildStubs(expenseService)

			url := fmt.Sprintf("/groups/%s/expenses", groupID)
			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := middleware.AddAuthorization(req, tokenMaker, authType, username, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{
				Data: &struct {
					Expenses []domain.Expense `json:"expenses"`
				}{},
			}

			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	username := randompkg.Owner()
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	authType := middleware.AuthTypeBearer
	duration := time.Minute

	expenseID := randompkg.String(10)

	testCases := []struct {
		name           string
		buildStubs     func(expenseService *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Delete(gomock.Any(), gomock.Eq(username), gomock.Eq(expenseID)).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "ErrExpenseNotFound",
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Delete(gomock.Any(), gomock.Eq(username), gomock.Eq(expenseID)).
					Times(1).
					Return(domain.ErrExpenseNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrExpenseNotFound.Error(),
		},
		{
			name: "ErrExpenseOwnerMismatch",
			buildStubs: func(expenseService *MockService) {
				expenseService.EXPECT().
					Delete(gomock.Any(), gomock.Eq(username), gomock.Eq(expenseID)).
					Times(1).
					Return(domain.ErrExpenseOwnerMismatch)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrExpenseOwnerMismatch.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			expenseService := NewMockService(ctrl)
			expenseHandler := NewHandler(expenseService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.DELETE("/expenses/:id", expenseHandler.Delete)

			tc.buildStubs(expenseService)

			url := fmt.Sprintf("/expenses/%s", expenseID)
			req, err := http.NewRequest(http.MethodDelete, url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := middleware.AddAuthorization(req, tokenMaker, authType, username, duration); err != nil {
				t.Fatalf("middleware.AddAuthorization returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res web.Response
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
			}
		})
	}
}
