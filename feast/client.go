// Package feast 封装 Feast Feature Store 的在线特征获取。
// 目录条目的营养特征通常随目录一起交付；当目录缺列时，
// 可选地从 Feast 在线存储按食物 ID 拉取补齐（见 catalog.Enricher）。
package feast

import "context"

// Client 是 Feast 在线特征客户端的领域接口。
// 本引擎只消费在线特征（单次请求启动期一次批量拉取），
// 历史特征/物化等训练侧能力不在范围内。
type Client interface {
	// GetOnlineFeatures 获取在线特征。
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["food_stats:protein_g"]
	//   - EntityRows: 实体行，例如 [{"fdc_id": 100001}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表
	Features []string

	// EntityRows 实体行，每行是实体名到实体值的映射
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省用客户端配置）
	Project string
}

// FeatureVector 是一行实体对应的特征向量。
type FeatureVector struct {
	// Values 特征名到特征值的映射
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// GetOnlineFeaturesResponse 获取在线特征响应。
// FeatureVectors 与请求的 EntityRows 顺序一一对应。
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}
