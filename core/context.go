package core

import "github.com/nutrisolve/mealrec/pkg/utils"

// RecommendContext 承载单次请求的用户/查询信息，贯穿整个 Pipeline 透传。
// 引擎按"一次进程一次请求"运行，RecommendContext 不跨请求复用。
type RecommendContext struct {
	// User 是强类型用户画像
	User *UserProfile

	// Query 是请求中的自由文本查询，原样回写到响应
	Query string

	// TopK 是期望返回的推荐条数，<=0 时由引擎取默认值
	TopK int

	// Labels 是请求级标签，可驱动 Pipeline 行为（如记录过滤统计）
	Labels map[string]utils.Label

	// Params 是请求级扩展参数（透传，不参与核心决策）
	Params map[string]any
}

// Profile 返回用户画像，保证非 nil（缺省画像带默认预算）。
func (rctx *RecommendContext) Profile() *UserProfile {
	if rctx == nil || rctx.User == nil {
		return NewUserProfile()
	}
	return rctx.User
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
