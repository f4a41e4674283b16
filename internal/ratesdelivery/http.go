// Package ratesdelivery manages delivery layer of conversion rates.
package ratesdelivery

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cashsplit/cashsplit/pkg/errorspkg"
	"github.com/cashsplit/cashsplit/pkg/web"
)

// Service provides service layer interface needed by rates delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ratesdelivery
type Service interface {
	Refresh(ctx context.Context, base string, symbols []string) (map[string]float64, error)
}

// Handler facilitates rates delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns rates handler.
func NewHandler(rs Service) *Handler {
	return &Handler{service: rs}
}

type getRequest struct {
	Base    string `form:"base" binding:"required,currency"`
	Symbols string `form:"symbols" binding:"required"`
}

type data struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Get handles http request to fetch fresh quotes for a base currency.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	rates, err := h.service.Refresh(ctx, req.Base, strings.Split(req.Symbols, ","))
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{Base: req.Base, Rates: rates}})
}
