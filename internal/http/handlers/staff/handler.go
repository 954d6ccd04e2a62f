package staff

import (
	"strings"

	"github.com/taniyakamboj15/lostandfound-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 工作人员接口处理器入口
// 说明：该处理器仅用于柜台/库房侧 API。
type Handler struct {
	*provider.Container
}

// New 创建工作人员处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// actorName 从请求头解析操作者名称，缺省为 staff。
func actorName(c *gin.Context) string {
	if c == nil {
		return "staff"
	}
	if name := strings.TrimSpace(c.GetHeader("X-Staff-Name")); name != "" {
		return name
	}
	return "staff"
}
