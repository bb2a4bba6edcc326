package pager

import "github.com/LJTian/NewsHorizon/internal/collector"

// DefaultPageSize 每页展示的卡片数
const DefaultPageSize = 5

// Page 返回第 pageIndex 页（从 0 开始）；越界返回空切片而不是报错，不回绕
func Page(articles []collector.Article, pageIndex, pageSize int) []collector.Article {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageIndex < 0 {
		pageIndex = 0
	}

	// 先按页数比较，避免 pageIndex*pageSize 溢出
	if pageIndex >= pageCount(len(articles), pageSize) {
		return []collector.Article{}
	}
	start := pageIndex * pageSize
	end := min(start+pageSize, len(articles))

	out := make([]collector.Article, end-start)
	copy(out, articles[start:end])
	return out
}

// HasNext 判断第 pageIndex 页之后是否还有数据
func HasNext(total, pageIndex, pageSize int) bool {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	return pageIndex < pageCount(total, pageSize)-1
}

func pageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total-1)/pageSize + 1
}
