package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/entities"
)

// Machine-readable error codes carried in ErrorResponse.Code.
const (
	CodeValidation       = "validation_error"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeInsufficientData = "insufficient_data"
	CodeExternalService  = "external_service_error"
	CodeInternal         = "internal_error"
)

// respondServiceError maps an engine error onto a status code and body.
// Unknown errors are logged and hidden behind a generic 500.
func respondServiceError(c *gin.Context, log logrus.FieldLogger, err error, context string) {
	var (
		validationErr   *entities.ValidationError
		insufficientErr *entities.InsufficientDataError
		externalErr     *entities.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   validationErr.Message,
			Code:    CodeValidation,
			Details: gin.H{"field": validationErr.Field},
		})
	case errors.Is(err, entities.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeValidation})
	case errors.Is(err, entities.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Code: CodeNotFound})
	case errors.Is(err, entities.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeConflict})
	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "not enough translations to start a practice session",
			Code:    CodeInsufficientData,
			Details: gin.H{"have": insufficientErr.Have, "need": insufficientErr.Need},
		})
	case errors.As(err, &externalErr):
		log.WithError(err).WithField("service", externalErr.Service).Warn("collaborator unavailable")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:     externalErr.Service + " service unavailable, try again later",
			Code:      CodeExternalService,
			Details:   gin.H{"service": externalErr.Service},
			Retryable: true,
		})
	default:
		respondInternalError(c, log, err, context)
	}
}
