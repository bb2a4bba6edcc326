package category

import (
	"net/url"
	"strings"
)

type Category string

const (
	Home          Category = "Home"
	Technology    Category = "Technology"
	Entertainment Category = "Entertainment"
	Business      Category = "Business"
	Sports        Category = "Sports"
	Health        Category = "Health"
	Politics      Category = "Politics"
	World         Category = "World"
)

// 地区参数固定为印度英文版
const editionQuery = "hl=en-IN&gl=IN&ceid=IN:en"

const entertainmentTopic = "CAAqJggKIiBDQkFTRWdvSUwyMHZNREU0T1Y4U0JYUm9nQVAB"

// 导航栏顺序
var all = []Category{Home, Technology, Entertainment, Business, Sports, Health, Politics, World}

// 按搜索词订阅的分类
var searchTerms = map[Category]string{
	Technology: "technology india",
	Business:   "business india",
	Sports:     "sports india",
	Health:     "health india",
	Politics:   "politics india",
	World:      "world news",
}

func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Parse 不区分大小写；未知或为空时回退到 Home
func Parse(name string) Category {
	name = strings.TrimSpace(name)
	for _, c := range all {
		if strings.EqualFold(string(c), name) {
			return c
		}
	}
	return Home
}

func (c Category) String() string { return string(c) }

// FeedURL 返回分类对应的 RSS 地址，host 形如 https://news.google.com
func (c Category) FeedURL(host string) string {
	host = strings.TrimRight(host, "/")
	switch c {
	case Entertainment:
		return host + "/rss/topics/" + entertainmentTopic + "?" + editionQuery
	case Home:
		return host + "/rss?" + editionQuery
	}
	if terms, ok := searchTerms[c]; ok {
		return SearchURL(host, terms)
	}
	return host + "/rss?" + editionQuery
}

// SearchURL 按关键词拼接搜索 RSS 地址，空格编码为 +
func SearchURL(host, terms string) string {
	host = strings.TrimRight(host, "/")
	return host + "/rss/search?q=" + url.QueryEscape(terms) + "&" + editionQuery
}
