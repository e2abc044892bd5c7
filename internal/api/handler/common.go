package handler

import (
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径中的正整数 ID
func pathID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.NewValidationError(name, "id", "must be a positive integer")
	}
	return id, nil
}

// bindJSON 解析请求体并执行字段校验
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return util.BindError(err)
	}
	return util.ValidateDTO(obj)
}
