package echoapi

import (
	"context"
	"net/http"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/attendance"
	"github.com/thedigitalbhaiya/ans-sub000/core/auth"
	"github.com/thedigitalbhaiya/ans-sub000/core/circular"
	"github.com/thedigitalbhaiya/ans-sub000/core/settings"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
	"github.com/thedigitalbhaiya/ans-sub000/core/timetable"
)

type (
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		AuthSvc       *auth.Service
		StudentSvc    *student.Service
		AdminSvc      *admin.Service
		SettingsSvc   *settings.Service
		CircularSvc   *circular.Service
		AttendanceSvc *attendance.Service
		TimetableSvc  *timetable.Service
	}

	Server struct {
		addr     string
		deps     *Deps
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

func NewServer(addr string, shutdown chan os.Signal, deps *Deps) *Server {
	initJWT(deps.Conf)
	s := &Server{
		addr:     addr,
		deps:     deps,
		app:      echo.New(),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerLoginAPI(v1, jwt, s.deps)
	registerStudentPortalAPI(v1, jwt, s.deps)
	registerAdminConsoleAPI(v1, jwt, s.deps)
}

func (s *Server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.addr))
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) signalShutdown() {
	if s.shutdown != nil {
		s.shutdown <- os.Interrupt
	}
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+s.deps.Conf.AppName+" API!")
}
