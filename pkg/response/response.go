package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/scoperhq/scoper-api/pkg/errors"
)

// Envelope is the error/metadata contract. Successful list and aggregate
// payloads are sent bare because the frontend consumes them verbatim.
type Envelope struct {
	Error  *appErrors.Error `json:"error,omitempty"`
	Fields interface{}      `json:"fields,omitempty"`
}

// Page wraps a record page with the server-reported total so clients can
// derive "Showing X to Y of Z" from the real row count.
type Page struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

// Raw sends the payload verbatim.
func Raw(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// List sends a paginated page envelope.
func List(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, Page{Data: data, Total: total})
}

// Message sends a simple acknowledgement body.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// ValidationError sends a 422 carrying per-field messages.
func ValidationError(c *gin.Context, fields interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusUnprocessableEntity, Envelope{Error: appErrors.ErrValidation, Fields: fields})
}
