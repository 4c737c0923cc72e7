package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openmerch/shopcore/pkg/errors"
	"github.com/openmerch/shopcore/pkg/validation"
)

// writeError translates a service error into an HTTP response. Validation
// failures carry a field → messages report; anything without a status code
// is an internal error and only gets logged.
func (s *Server) writeError(c *gin.Context, err error) {
	var status errors.StatusCode
	if errors.As(err, &status) {
		var e *errors.Error
		if errors.As(err, &e) && len(e.Fields) > 0 {
			// The 400 body is the field → messages mapping itself.
			c.JSON(int(status), validation.Report(e.Fields))
			return
		}
		message := http.StatusText(int(status))
		if errors.As(err, &e) && e.Message != "" {
			message = e.Message
		}
		c.JSON(int(status), gin.H{"error": message})
		return
	}

	s.logger.Error("handler error",
		zap.String("requestID", c.GetString("requestID")),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// paramID parses the :id path parameter. An id that cannot name a stored
// row reads as a lookup miss, not a malformed request.
func paramID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NotFound.Explain("no record with id %q", c.Param("id"))
	}
	return uint(id), nil
}

// bindError wraps a JSON decoding failure in the standard 400 report shape
func bindError(err error) error {
	return errors.Invalid.Explain("malformed request body").
		WithField("json", "body", err.Error())
}
