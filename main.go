// @title SchoolNet 后端 API
// @version 1.0
// @description 校园社交网络的后端服务器：注册审批、动态、好友与私信。

// @contact.name API支持

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"schoolnet_backend/internal/app"
	"schoolnet_backend/internal/config"
	"schoolnet_backend/pkg/configwatcher"
	"schoolnet_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置热更新：目前用于CORS白名单
	go configwatcher.WatchConfig("configs/config.yaml", application.OnConfigReload)

	application.Run()
}
