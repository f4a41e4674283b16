// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cashsplit/cashsplit/internal/balancedelivery"
	"github.com/cashsplit/cashsplit/internal/balanceservice"
	"github.com/cashsplit/cashsplit/internal/expensedelivery"
	"github.com/cashsplit/cashsplit/internal/expenserepo"
	"github.com/cashsplit/cashsplit/internal/expenseservice"
	"github.com/cashsplit/cashsplit/internal/groupdelivery"
	"github.com/cashsplit/cashsplit/internal/grouprepo"
	"github.com/cashsplit/cashsplit/internal/groupservice"
	"github.com/cashsplit/cashsplit/internal/middleware"
	"github.com/cashsplit/cashsplit/internal/ratesdelivery"
	"github.com/cashsplit/cashsplit/internal/ratesrepo"
	"github.com/cashsplit/cashsplit/internal/ratesservice"
	"github.com/cashsplit/cashsplit/internal/sessiondelivery"
	"github.com/cashsplit/cashsplit/internal/sessionrepo"
	"github.com/cashsplit/cashsplit/internal/sessionservice"
	"github.com/cashsplit/cashsplit/internal/userdelivery"
	"github.com/cashsplit/cashsplit/internal/userrepo"
	"github.com/cashsplit/cashsplit/internal/userservice"
	"github.com/cashsplit/cashsplit/pkg/configpkg"
	"github.com/cashsplit/cashsplit/pkg/currencypkg"
	"github.com/cashsplit/cashsplit/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	groupRepo := grouprepo.NewRepoPGS(conn)
	expenseRepo := expenserepo.NewRepoPGS(conn)
	ratesRepo := ratesrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	groupService := groupservice.New(groupRepo)
	expenseService := expenseservice.New(expenseRepo, groupService)
	ratesService := ratesservice.New(ratesRepo, config.RatesBaseURL)
	balanceService := balanceservice.New(groupService, expenseRepo, ratesService)
	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)

	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	groupHandler := groupdelivery.NewHandler(groupService)
	expenseHandler := expensedelivery.NewHandler(expenseService)
	balanceHandler := balancedelivery.NewHandler(balanceService)
	ratesHandler := ratesdelivery.NewHandler(ratesService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/groups", groupHandler.Create)
	authRoutes.GET("/groups", groupHandler.List)
	authRoutes.GET("/groups/:id", groupHandler.Get)
	authRoutes.PATCH("/groups/:id", groupHandler.Update)
	authRoutes.DELETE("/groups/:id", groupHandler.Delete)

	authRoutes.POST("/expenses", expenseHandler.Create)
	authRoutes.GET("/groups/:id/expenses", expenseHandler.List)
	authRoutes.DELETE("/expenses/:id", expenseHandler.Delete)

	authRoutes.GET("/groups/:id/balances", balanceHandler.Balances)
	authRoutes.GET("/groups/:id/settlements", balanceHandler.Settlements)

	authRoutes.GET("/rates", ratesHandler.Get)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
