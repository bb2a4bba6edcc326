package processor

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"sync"
	"unicode"

	"github.com/LJTian/NewsHorizon/internal/collector"
	"github.com/LJTian/NewsHorizon/internal/sentiment"
	"github.com/cloudflare/ahocorasick"
)

// AdmitThreshold compound 分不低于该值（中性偏正面）才放行
const AdmitThreshold = 0.05

const (
	ReasonKeyword   = "keyword"
	ReasonSentiment = "sentiment"
)

// NegativeKeywords 负面词表，整词匹配，命中直接拒绝，不再打分
var NegativeKeywords = []string{
	"crime", "death", "accident", "murder", "violence", "suicide", "attack", "tragedy",
	"disaster", "fraud", "scandal", "abuse", "corruption", "injury",
}

// keywordMatcher 在标准化后的标题上做整词匹配；词条与文本两端都补空格，
// 命中 " crime " 即代表整词出现
type keywordMatcher struct {
	// Matcher.Match 会修改内部计数，不能并发调用
	mu       sync.Mutex
	matcher  *ahocorasick.Matcher
	keywords []string
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	padded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(normalizeText(kw)); kw != "" {
			padded = append(padded, " "+kw+" ")
		}
	}
	return &keywordMatcher{
		matcher:  ahocorasick.NewStringMatcher(padded),
		keywords: padded,
	}
}

// find 返回标题中第一个命中的负面词，未命中返回空串
func (k *keywordMatcher) find(title string) string {
	text := " " + normalizeText(title) + " "

	k.mu.Lock()
	hits := k.matcher.Match([]byte(text))
	k.mu.Unlock()

	if len(hits) == 0 {
		return ""
	}
	return strings.TrimSpace(k.keywords[hits[0]])
}

// normalizeText 转小写，非字母数字（按 Unicode 判断）一律替换为空格
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Decision 单条新闻的准入结果，不落库
type Decision struct {
	Admitted bool
	Reason   string
	Keyword  string
	Score    float64
}

// DecisionRecorder 接收每次判定结果，metrics 包实现
type DecisionRecorder interface {
	ObserveDecision(reason string)
}

// ContentFilter 两段式准入：负面词预筛 + 情感分阈值
type ContentFilter struct {
	scorer   sentiment.Scorer
	recorder DecisionRecorder
	keywords *keywordMatcher
}

func NewContentFilter(scorer sentiment.Scorer, recorder DecisionRecorder) *ContentFilter {
	if scorer == nil {
		scorer = sentiment.NewVaderScorer()
	}
	return &ContentFilter{
		scorer:   scorer,
		recorder: recorder,
		keywords: newKeywordMatcher(NegativeKeywords),
	}
}

// Evaluate 只看标题；空标题视为中性并放行
func (f *ContentFilter) Evaluate(a collector.Article) Decision {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return Decision{Admitted: true}
	}

	if kw := f.keywords.find(title); kw != "" {
		return Decision{Reason: ReasonKeyword, Keyword: kw}
	}

	// 打分用原始大小写，VADER 会把全大写当作强调
	score := f.scorer.Score(title)
	if score < AdmitThreshold {
		return Decision{Reason: ReasonSentiment, Score: score}
	}
	return Decision{Admitted: true, Score: score}
}

// Filter 保持原有顺序返回通过的新闻，不修改入参
func (f *ContentFilter) Filter(articles []collector.Article) []collector.Article {
	out := make([]collector.Article, 0, len(articles))
	for _, a := range articles {
		d := f.Evaluate(a)
		if f.recorder != nil {
			f.recorder.ObserveDecision(d.Reason)
		}
		if d.Admitted {
			out = append(out, a)
		}
	}
	return out
}

// ArticleID 以链接生成稳定 ID，用作缓存键
func ArticleID(url string) string {
	return hashURL(url)
}

func hashURL(url string) string {
	h := sha1.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}
