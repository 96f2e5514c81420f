// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Share ShareServiceConfig // Share related config // 分享相关配置
}

// ShareServiceConfig share service configuration
// ShareServiceConfig 分享服务配置
type ShareServiceConfig struct {
	BroadcastLimit int // Max concurrent sends for --all, 0 for unlimited // --all 广播时的最大并发数，0 表示不限制
}
