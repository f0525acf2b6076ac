package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/misioncampo/visitas-api/aggregator"
	"github.com/misioncampo/visitas-api/scheduler"
	"github.com/misioncampo/visitas-api/store"
	"github.com/misioncampo/visitas-api/validator"
)

const (
	actorKey = "actor"
	roleKey  = "role"

	roleAdministrator = "administrator"
)

// Server exposes the rating engine over HTTP. Authentication happens at the
// upstream gateway, which forwards the verified actor in headers.
type Server struct {
	store        store.VisitasStore
	aggregator   *aggregator.Aggregator
	scheduler    *scheduler.Scheduler
	validatorCfg validator.Config
	traceMode    bool
}

func NewServer(
	visitasStore store.VisitasStore,
	agg *aggregator.Aggregator,
	sched *scheduler.Scheduler,
	validatorCfg validator.Config,
	traceMode bool,
) *Server {
	return &Server{
		store:        visitasStore,
		aggregator:   agg,
		scheduler:    sched,
		validatorCfg: validatorCfg,
		traceMode:    traceMode,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.DumpRequest)
	r.Use(s.recognizeActor)

	v1 := r.Group("/v1")

	v1.POST("/visits/:visitID/ratings", s.createVisitRating)
	v1.GET("/visits/:visitID/rating", s.getVisitRating)

	v1.GET("/churches/:churchID/summary", s.getChurchSummary)
	v1.GET("/churches/:churchID/activity", s.listChurchActivity)
	v1.POST("/churches/:churchID/recalculate", s.forceRecalculate)

	v1.GET("/rankings/top-rated", s.topRatedChurches)
	v1.GET("/rankings/recently-active", s.recentlyActiveChurches)
	v1.GET("/statistics", s.globalStatistics)

	admin := v1.Group("/admin")
	admin.POST("/recalculations/batch", s.batchRecalculate)
	admin.GET("/recalculations/pending", s.pendingRecalculations)
	admin.DELETE("/recalculations/pending", s.cancelPendingRecalculations)

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

// recognizeActor picks up the verified actor identity forwarded by the
// gateway. Handlers that mutate state reject requests without one.
func (s *Server) recognizeActor(c *gin.Context) {
	c.Set(actorKey, c.GetHeader("X-Actor-Id"))
	c.Set(roleKey, c.GetHeader("X-Actor-Role"))
	c.Next()
}

func (s *Server) actor(c *gin.Context) (string, string) {
	return c.GetString(actorKey), c.GetString(roleKey)
}

func (s *Server) requireAdministrator(c *gin.Context) (string, bool) {
	actorID, role := s.actor(c)
	if actorID == "" || role != roleAdministrator {
		abortWithEncoding(c, http.StatusForbidden, errorForbidden)
		return "", false
	}
	return actorID, true
}
