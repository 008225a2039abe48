// Package mealrec 是一个餐食推荐引擎（Meal Recommender）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Feature → Rank → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支撑 explain / 观测
// - 约束优先: 膳食限制与预算是硬约束，先过滤再打分，模型分数不会让违禁候选回流
// - 一次性进程: stdin 读一条请求，stdout 写一条结果，工件与目录启动期加载
package mealrec

import "github.com/nutrisolve/mealrec/pipeline"

// 轻量 facade：便于用户直接 import "mealrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindFeature     = pipeline.KindFeature
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
