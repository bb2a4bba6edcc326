// Package sentiment 对标题打情感分，取 VADER 的 compound 分值，范围 [-1, 1]。
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Scorer 对任意文本返回 [-1, 1] 的情感分，空文本返回 0
type Scorer interface {
	Score(text string) float64
}

// VaderScorer 基于词典与规则，无需训练数据；结果只取决于输入文本
type VaderScorer struct {
	compound func(text string) float64
}

func NewVaderScorer() *VaderScorer {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	return &VaderScorer{compound: func(text string) float64 {
		return analyzer.PolarityScores(text).Compound
	}}
}

func (v *VaderScorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return clamp(v.compound(text))
}

func clamp(f float64) float64 {
	switch {
	case f > 1:
		return 1
	case f < -1:
		return -1
	default:
		return f
	}
}

// ScorerFunc 让普通函数满足 Scorer，便于测试替换
type ScorerFunc func(text string) float64

func (f ScorerFunc) Score(text string) float64 { return f(text) }
