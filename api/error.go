package api

import (
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"

	"github.com/misioncampo/visitas-api/utils"
	"github.com/misioncampo/visitas-api/validator"
)

// errorResponse is the coded error body every failure returns. Message is
// the machine-readable English text; LocalizedMessage is the user-facing
// Romanian text.
type errorResponse struct {
	Code             int    `json:"code"`
	Message          string `json:"message"`
	LocalizedMessage string `json:"localizedMessage"`
}

var (
	errorInternalServer    = newErrorResponse(1000, "error.internal")
	errorInvalidParameters = newErrorResponse(1001, "error.invalidParameters")
	errorValidationFailed  = newErrorResponse(1002, "error.validationFailed")
	errorUnknownVisit      = newErrorResponse(1003, "error.visitNotFound")
	errorUnknownChurch     = newErrorResponse(1004, "error.churchNotFound")
	errorRatingExists      = newErrorResponse(1005, "error.ratingExists")
	errorForbidden         = newErrorResponse(1006, "error.notAllowed")
)

func newErrorResponse(code int, messageID string) errorResponse {
	cfg := &i18n.LocalizeConfig{MessageID: messageID}

	message, err := utils.NewLocalizer("en").Localize(cfg)
	if err != nil {
		message = messageID
	}
	localized, err := utils.NewLocalizer("ro").Localize(cfg)
	if err != nil {
		localized = message
	}

	return errorResponse{
		Code:             code,
		Message:          message,
		LocalizedMessage: localized,
	}
}

func abortWithEncoding(c *gin.Context, code int, resp errorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
		log.WithFields(log.Fields{
			"prefix": "api",
			"path":   c.Request.URL.Path,
			"error":  err,
		}).Error(resp.Message)
	}
	c.AbortWithStatusJSON(code, resp)
}

// abortWithFieldErrors reports a failed validation with every offending
// field so the client can fix them in one round trip.
func abortWithFieldErrors(c *gin.Context, code int, resp errorResponse, fieldErrors []validator.FieldError) {
	c.AbortWithStatusJSON(code, gin.H{
		"code":             resp.Code,
		"message":          resp.Message,
		"localizedMessage": resp.LocalizedMessage,
		"errors":           fieldErrors,
	})
}
