package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/beacon-api/lifecycle"
	"github.com/bitmark-inc/beacon-api/logmodule"
	"github.com/bitmark-inc/beacon-api/schema"
	"github.com/bitmark-inc/beacon-api/store"
)

const defaultHeartbeat = 15 * time.Second

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	controller *lifecycle.Controller
	pinger     store.Pinger

	// prometheus exposition of the metrics scope
	metricsHandler http.Handler

	// interval of keep-alive events on event streams
	heartbeat time.Duration
}

// NewServer new instance of server
func NewServer(controller *lifecycle.Controller, pinger store.Pinger, metricsHandler http.Handler) *Server {
	return &Server{
		controller:     controller,
		pinger:         pinger,
		metricsHandler: metricsHandler,
		heartbeat:      defaultHeartbeat,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.GET("/information", s.information)

	// api route other than `/information` will apply the following middleware
	apiRoute.Use(s.clientVersionGateway())

	apiRoute.GET("/categories", s.getCategories)

	emergencyRoute := apiRoute.Group("/emergencies")
	{
		emergencyRoute.POST("", s.signalEmergency)
		emergencyRoute.GET("/latest-open/events", s.streamLatestOpenEmergency)
		emergencyRoute.GET("/:emergencyID", s.getEmergency)
		emergencyRoute.PATCH("/:emergencyID", s.acknowledgeEmergency)
		emergencyRoute.GET("/:emergencyID/events", s.streamEmergency)
	}

	responderRoute := apiRoute.Group("/responders")
	{
		responderRoute.POST("", s.registerResponder)
	}

	if s.metricsHandler != nil {
		metricRoute := r.Group("/metrics")
		metricRoute.Use(cors.New(cors.Config{
			AllowMethods:     []string{"GET"},
			AllowHeaders:     []string{"Origin"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			AllowAllOrigins:  true,
			MaxAge:           12 * time.Hour,
		}))
		metricRoute.GET("", gin.WrapH(s.metricsHandler))
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.pinger.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"android":        viper.GetStringMap("clients.android"),
			"ios":            viper.GetStringMap("clients.ios"),
			"system_version": "Beacon 0.1",
			"categories":     schema.Categories,
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
