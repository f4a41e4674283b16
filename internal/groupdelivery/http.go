// Package groupdelivery manages delivery layer of groups.
package groupdelivery

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

// Service provides service layer interface needed by group delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package groupdelivery
type Service interface {
	Create(ctx context.Context, owner, name, currency string, members []string) (domain.Group, error)
	Get(ctx context.Context, owner, id string) (domain.Group, error)
	List(ctx context.Context, owner string) ([]domain.Group, error)
	Update(ctx context.Context, owner, id, name string, members []string) (domain.Group, error)
	Delete(ctx context.Context, owner, id string) error
}

// Handler facilitates group delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns group handler.
func NewHandler(gs Service) *Handler {
	return &Handler{service: gs}
}

type data struct {
	Group domain.Group `json:"group"`
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
	case domain.ErrGroupNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case domain.ErrGroupOwnerMismatch:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case domain.ErrOwnerNotFound, domain.ErrNoMembers, domain.ErrDuplicateMember:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type createRequest struct {
	Name     string   `json:"name" binding:"required"`
	Currency string   `json:"currency" binding:"required,currency"`
	Members  []string `json:"members" binding:"required,min=1,dive,required"`
}

// Create handles http request to create group.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindingError(gctx, l, err)

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	group, err := h.service.Create(ctx, authPayload.Username, req.Name, req.Currency, req.Members)
	if err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{group}})
}

type uriRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Get handles http request to get a single group.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindingError(gctx, l, err)

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	group, err := h.service.Get(ctx, authPayload.Username, req.ID)
	if err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{group}})
}

type dataGroups struct {
	Groups []domain.Group `json:"groups"`
}
type responseGroups struct {
	Data dataGroups `json:"data,omitempty"`
}

// List handles http request to list the user's groups.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	groups, err := h.service.List(ctx, authPayload.Username)
	if err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, responseGroups{Data: dataGroups{groups}})
}

type updateRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members" binding:"omitempty,min=1,dive,required"`
}

// Update handles http request to rename a group or replace its members.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindingError(gctx, l, err)

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindingError(gctx, l, err)

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	group, err := h.service.Update(ctx, authPayload.Username, uri.ID, req.Name, req.Members)
	if err != nil {
		serviceError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{group}})
}

// Delete handles http request to delete a group and its expenses.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
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
