package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/transport/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnknownChart), errors.Is(err, entity.ErrUnknownVariant):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDecode), errors.Is(err, entity.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrDatasetUnavailable), errors.Is(err, entity.ErrDefaultImageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(middleware.RequestIDKey),
			"error":      err,
		}).Error("Request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message(err)})
}

func message(err error) string {
	switch {
	case errors.Is(err, entity.ErrDecode), errors.Is(err, entity.ErrUnsupportedFormat):
		return "Could not process the uploaded image: " + err.Error()
	case errors.Is(err, entity.ErrDatasetUnavailable):
		return "Dataset is not available"
	case errors.Is(err, entity.ErrDefaultImageUnavailable):
		return "Default image is not available, upload an image instead"
	default:
		return err.Error()
	}
}
