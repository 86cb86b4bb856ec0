package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/access"
	"github.com/ojtrack/ojtrack/core/activity"
	"github.com/ojtrack/ojtrack/core/person"
	"github.com/ojtrack/ojtrack/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		UserSvc     *user.Service
		PersonSvc   *person.Service
		ActivitySvc *activity.Service
		Sessions    access.SessionRepository
		Store       core.Store
		Logger      core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = core.Conf.Debug

	jwt := middleware.JWTWithConfig(appJWTConfig)

	s.app.GET(access.RouteRoot, s.home)
	s.app.POST("/login", s.login)
	s.app.POST("/logout", s.logout, jwt)
	s.app.POST("/token-refresh", s.tokenRefresh, jwt)
	s.app.GET("/access-check", s.accessCheck)
	s.app.GET("/nav", s.nav, jwt)

	hg := s.app.Group(access.RouteHome, jwt, s.guard(access.RouteHome))
	hg.GET("", s.dashboard)

	ug := s.app.Group("/users", jwt, adminMiddleware())
	ug.GET("", s.userQuery)
	ug.GET("/roles", s.userQueryRoles)

	sg := s.app.Group(access.RouteStudents, jwt, s.guard(access.RouteStudents))
	sg.GET("", s.studentQuery)
	sg.POST("", s.studentCreate)
	sg.GET("/:id", s.studentRetrieve)
	sg.PUT("/:id", s.studentUpdate)
	sg.DELETE("/:id", s.studentDestroy, adminMiddleware())

	vg := s.app.Group(access.RouteSupervisors, jwt, s.guard(access.RouteSupervisors))
	vg.GET("", s.supervisorQuery)
	vg.POST("", s.supervisorCreate)
	vg.GET("/:id", s.supervisorRetrieve)
	vg.PUT("/:id", s.supervisorUpdate)
	vg.DELETE("/:id", s.supervisorDestroy, adminMiddleware())

	rg := s.app.Group(access.RouteRecords, jwt, s.guard(access.RouteRecords))
	rg.GET("", s.recordQuery)
	rg.POST("", s.recordCreate)

	eg := s.app.Group(access.RouteEvaluation, jwt, s.guard(access.RouteEvaluation))
	eg.GET("", s.evaluationQuery)
	eg.POST("", s.evaluationCreate)

	ag := s.app.Group(access.RouteAttendance, jwt, s.guard(access.RouteAttendance))
	ag.GET("", s.attendanceQuery)
	ag.POST("", s.attendanceCreate)

	pg := s.app.Group(access.RouteProfileSettings, jwt, s.guard(access.RouteProfileSettings))
	pg.GET("", s.profileRetrieve)
	pg.PUT("", s.profileUpdate)
	pg.PUT("/password", s.profileChangePassword)

	cg := s.app.Group(access.RouteSettings, jwt, s.guard(access.RouteSettings))
	cg.GET("", s.settingsRetrieve)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+core.Conf.AppName+" API!")
}
