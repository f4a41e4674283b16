// Package expensedelivery manages delivery layer of expenses.
package expensedelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cashsplit/cashsplit/internal/domain"
	"github.com/cashsplit/cashsplit/internal/expenseservice"
	"github.com/cashsplit/cashsplit/internal/middleware"
	"github.com/cashsplit/cashsplit/pkg/errorspkg"
	"github.com/cashsplit/cashsplit/pkg/tokenpkg"
	"github.com/cashsplit/cashsplit/pkg/web"
)

// Service provides service layer interface needed by expense delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package expensedelivery
type Service interface {
	Create(ctx context.Context, owner string, arg expenseservice.CreateParams) (domain.Expense, error)
	ListByGroup(ctx context.Context, owner, groupID string) ([]domain.Expense, error)
	Delete(ctx context.Context, owner, id string) error
}

// Handler facilitates expense delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns expense handler.
func NewHandler(es Service) *Handler {
	return &Handler{service: es}
}

type data struct {
	Expense domain.Expense `json:"expense"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

func bindingError(gctx *gin.Context, l *zerolog.Logger, err error) {
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

func serviceError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrGroupNotFound, domain.ErrExpenseNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrGroupOwnerMismatch, domain.ErrExpenseOwnerMismatch:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case domain.ErrInvalidAmount, domain.ErrNonPositiveAmount, domain.ErrNoBeneficiaries,
		domain.ErrPayerNotMember, domain.ErrBeneficiaryNotMember:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type createRequest struct {
	GroupID  string    `json:"group_id" binding:"required"`
	Payer    string    `json:"payer" binding:"required"`
	For      []string  `json:"for" binding:"required,min=1,dive,required"`
	Amount   string    `json:"amount" binding:"required"`
	Currency string    `json:"currency" binding:"omitempty,currency"`
	Note     string    `json:"note"`
	Date     time.Time `json:"date"`
}

// Create handles http request to record an expense.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindingError(gctx, l, err)

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	expense, err := h.service.Create(ctx, authPayload.Username, expenseservice.CreateParams{
		GroupID:  req.GroupID,
		Payer:    req.Payer,
		For:      req.For,
		Amount:   req.Amount,
		Currency: req.Currency,
		Note:     req.Note,
		Date:     req.Date,
	})
	if err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{expense}})
}

type listRequest struct {
	ID string `uri:"id" binding:"required"`
}

type dataExpenses struct {
	Expenses []domain.Expense `json:"expenses"`
}
type responseExpenses struct {
	Data dataExpenses `json:"data,omitempty"`
}

// List handles http request to list a group's expenses.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindingError(gctx, l, err)

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	expenses, err := h.service.ListByGroup(ctx, authPayload.Username, req.ID)
	if err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, responseExpenses{Data: dataExpenses{expenses}})
}

type deleteRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Delete handles http request to delete an expense.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req deleteRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindingError(gctx, l, err)

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.Delete(ctx, authPayload.Username, req.ID); err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}
