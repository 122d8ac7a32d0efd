package controller

import (
	"net/http"
	"os"
	"time"

	"schoolnet_backend/internal/util"
	"schoolnet_backend/pkg/store"

	"github.com/gin-gonic/gin"
)

// HealthController 健康检查
type HealthController struct {
	Store *store.Store
}

func NewHealthController(s *store.Store) *HealthController {
	return &HealthController{Store: s}
}

// Check godoc
// @Summary 健康检查
// @Description 检查数据目录是否可访问
// @Tags 系统
// @Produce  json
// @Success 200 {object} util.Response
// @Failure 500 {object} util.Response "数据目录不可用"
// @Router /api/health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	status := "ok"
	storeStatus := "ok"

	if _, err := os.Stat(c.Store.Dir); err != nil {
		status = "degraded"
		storeStatus = "unavailable"
	}

	payload := gin.H{
		"status":    status,
		"store":     storeStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if status != "ok" {
		util.Error(ctx, http.StatusInternalServerError, "数据目录不可用")
		return
	}

	util.Success(ctx, payload)
}
