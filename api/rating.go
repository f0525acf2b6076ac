package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/misioncampo/visitas-api/schema"
	"github.com/misioncampo/visitas-api/score"
	"github.com/misioncampo/visitas-api/store"
	"github.com/misioncampo/visitas-api/validator"
)

// createVisitRating is the full create-rating flow: rateability check,
// validation, scoring, persistence and a debounced aggregate refresh for the
// owning church.
func (s *Server) createVisitRating(c *gin.Context) {
	actorID, role := s.actor(c)
	if actorID == "" {
		abortWithEncoding(c, http.StatusForbidden, errorForbidden)
		return
	}

	var params struct {
		Language string `form:"lang"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if "" == params.Language {
		params.Language = "ro"
	}

	visit, err := s.store.GetVisit(c.Param("visitID"))
	if err != nil {
		switch err {
		case store.ErrVisitNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownVisit)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	// a visit is rated by the missionary who conducted it, or by an
	// administrator override
	if visit.MissionaryID != actorID && role != roleAdministrator {
		abortWithEncoding(c, http.StatusForbidden, errorForbidden)
		return
	}

	var input schema.VisitRatingInput
	if err := c.BindJSON(&input); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	input.VisitID = visit.ID.Hex()
	input.RaterID = actorID

	result := validator.New(s.validatorCfg, params.Language).Validate(input)
	if !result.Valid {
		abortWithFieldErrors(c, http.StatusBadRequest, errorValidationFailed, result.Errors)
		return
	}

	calculated, err := score.CalculateVisitRating(input)
	if err != nil {
		// validation ran first, so a calculation failure is a server-side bug
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	// soft validator findings travel with the persisted rating
	for _, w := range result.Warnings {
		calculated.Warnings = append(calculated.Warnings, w.Message)
	}

	record := schema.VisitRatingRecord{
		ChurchID:   visit.ChurchID,
		VisitDate:  visit.VisitDate,
		Input:      input,
		Calculated: *calculated,
	}

	created, err := s.store.CreateVisitRating(record)
	if err != nil {
		switch err {
		case store.ErrRatingExists:
			abortWithEncoding(c, http.StatusConflict, errorRatingExists)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	s.scheduler.RequestRecalculation(schema.RecalculationRequest{
		ChurchID: visit.ChurchID,
		Trigger:  schema.RecalculationTriggerCreate,
		VisitID:  input.VisitID,
		ActorID:  actorID,
		Reason:   fmt.Sprintf("rating created for visit %s", input.VisitID),
	})

	c.JSON(http.StatusCreated, gin.H{
		"rating":   created,
		"warnings": result.Warnings,
	})
}

func (s *Server) getVisitRating(c *gin.Context) {
	record, err := s.store.GetRatingByVisit(c.Param("visitID"))
	if err != nil {
		switch err {
		case store.ErrRatingNotFound:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownVisit)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": record})
}
