package response

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	ServiceUnavailable  = 503
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	FailWithData(c, businessCode, message, nil)
}

func FailWithData(c *gin.Context, businessCode int, message string, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    data,
	})
}

// Error 按错误类型映射业务码
func Error(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		conflictErr   *service.ConflictError
		notFoundErr   *service.NotFoundError
		authErr       *service.AuthError
		forbiddenErr  *service.ForbiddenError
	)
	switch {
	case errors.As(err, &validationErr):
		FailWithData(c, BadRequest, validationErr.Error(), validationErr.Violations)
	case errors.As(err, &authErr):
		Fail(c, Unauthorized, authErr.Error())
	case errors.As(err, &forbiddenErr):
		Fail(c, Forbidden, forbiddenErr.Error())
	case errors.As(err, &notFoundErr):
		Fail(c, NotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		Fail(c, Conflict, conflictErr.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		Fail(c, ServiceUnavailable, err.Error())
	default:
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, InternalServerError, "internal server error")
	}
}
