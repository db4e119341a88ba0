package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusFail  = "fail"
	StatusError = "error"
)

type Response struct {
	Status     int    `json:"-"`
	StatusText string `json:"status"`
	Message    string `json:"message"`
	Detail     any    `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	text := StatusFail
	if status >= http.StatusInternalServerError {
		text = StatusError
	}
	return Response{Status: status, StatusText: text, Message: msg, Detail: detail}
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}

	resp := NewResponse(status, msg, detail)

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
