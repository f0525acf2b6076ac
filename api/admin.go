package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/misioncampo/visitas-api/schema"
)

func (s *Server) batchRecalculate(c *gin.Context) {
	actorID, ok := s.requireAdministrator(c)
	if !ok {
		return
	}

	var body struct {
		ChurchIDs []string                     `json:"churchIds"`
		Priority  schema.RecalculationPriority `json:"priority"`
	}
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if len(body.ChurchIDs) == 0 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}
	if body.Priority == "" {
		body.Priority = schema.RecalculationPriorityNormal
	}

	result := s.scheduler.BatchRecalculate(body.ChurchIDs, actorID, body.Priority)

	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (s *Server) pendingRecalculations(c *gin.Context) {
	if _, ok := s.requireAdministrator(c); !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": s.scheduler.PendingCount()})
}

// cancelPendingRecalculations is the emergency stop: it drops every pending
// debounce timer. Recalculations already executing finish on their own.
func (s *Server) cancelPendingRecalculations(c *gin.Context) {
	if _, ok := s.requireAdministrator(c); !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": s.scheduler.CancelAll()})
}
