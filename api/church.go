package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getChurchSummary(c *gin.Context) {
	summary, err := s.aggregator.GetSummary(c.Param("churchID"))
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	if summary == nil {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownChurch)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// forceRecalculate rebuilds a church's summary synchronously, bypassing the
// debounce: the administrator explicitly wants an immediate, blocking result.
func (s *Server) forceRecalculate(c *gin.Context) {
	actorID, ok := s.requireAdministrator(c)
	if !ok {
		return
	}

	churchID := c.Param("churchID")
	summary, err := s.aggregator.Recalculate(churchID)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	if err := s.store.AppendActivityEntry(churchID, actorID, "forced aggregate recalculation"); err != nil {
		c.Error(err)
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (s *Server) listChurchActivity(c *gin.Context) {
	var params struct {
		Limit int64 `form:"limit,default=20"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	entries, err := s.store.ListActivityEntries(c.Param("churchID"), params.Limit)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}

func (s *Server) topRatedChurches(c *gin.Context) {
	var params struct {
		Limit  int64 `form:"limit,default=10"`
		Offset int64 `form:"offset,default=0"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	summaries, err := s.aggregator.TopRated(params.Limit, params.Offset)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"churches": summaries})
}

func (s *Server) recentlyActiveChurches(c *gin.Context) {
	var params struct {
		Limit int64 `form:"limit,default=10"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	summaries, err := s.aggregator.RecentlyActive(params.Limit)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"churches": summaries})
}

func (s *Server) globalStatistics(c *gin.Context) {
	stats, err := s.aggregator.GlobalStatistics()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	// JSON object keys are strings; render histogram buckets as "1".."5"
	histogram := make(map[string]int64, len(stats.RatingHistogram))
	for stars, count := range stats.RatingHistogram {
		histogram[fmt.Sprintf("%d", stars)] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"churchCount":     stats.ChurchCount,
		"meanRating":      stats.MeanRating,
		"totalVisits":     stats.TotalVisits,
		"totalOfferings":  stats.TotalOfferings,
		"ratingHistogram": histogram,
	})
}
