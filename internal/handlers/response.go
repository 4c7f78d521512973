package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/reviewtool/internal/apperr"
)

// ErrorBody is the error envelope: a machine-readable kind plus a
// human-readable message the client can surface directly.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondError writes err with the status its kind maps to. Internal
// errors are masked with a generic message.
func RespondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "An unexpected error occurred"
	}
	c.JSON(status, ErrorBody{
		Error:   string(apperr.KindOf(err)),
		Message: msg,
	})
}

// RespondValidation writes a 400 ValidationError with the given message.
func RespondValidation(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   string(apperr.KindValidation),
		Message: msg,
	})
}
