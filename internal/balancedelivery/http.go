// Package balancedelivery manages delivery layer of balances and settlements.
package balancedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cashsplit/cashsplit/internal/domain"
	"github.com/cashsplit/cashsplit/internal/middleware"
	"github.com/cashsplit/cashsplit/pkg/errorspkg"
	"github.com/cashsplit/cashsplit/pkg/tokenpkg"
	"github.com/cashsplit/cashsplit/pkg/web"
)

// Service provides service layer interface needed by balance delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package balancedelivery
type Service interface {
	Balances(ctx context.Context, owner, groupID string) (map[string]float64, []domain.RatePair, error)
	Settlements(ctx context.Context, owner, groupID string) ([]domain.Transaction, []domain.RatePair, error)
}

// Handler facilitates balance delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns balance handler.
func NewHandler(bs Service) *Handler {
	return &Handler{service: bs}
}

type uriRequest struct {
	ID string `uri:"id" binding:"required"`
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
	case domain.ErrGroupNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrGroupOwnerMismatch:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type dataBalances struct {
	Balances     map[string]float64 `json:"balances"`
	MissingRates []domain.RatePair  `json:"missing_rates,omitempty"`
}
type responseBalances struct {
	Data dataBalances `json:"data,omitempty"`
}

// Balances handles http request to get the group's per-member net positions.
func (h *Handler) Balances(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindingError(gctx, l, err)

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	balances, missing, err := h.service.Balances(ctx, authPayload.Username, req.ID)
	if err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, responseBalances{Data: dataBalances{balances, missing}})
}

type dataSettlements struct {
	Settlements  []domain.Transaction `json:"settlements"`
	MissingRates []domain.RatePair    `json:"missing_rates,omitempty"`
}
type responseSettlements struct {
	Data dataSettlements `json:"data,omitempty"`
}

// Settlements handles http request to get the group's settlement plan.
func (h *Handler) Settlements(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindingError(gctx, l, err)

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	plan, missing, err := h.service.Settlements(ctx, authPayload.Username, req.ID)
	if err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, responseSettlements{Data: dataSettlements{plan, missing}})
}
