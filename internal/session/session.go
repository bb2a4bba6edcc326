// Package session 描述单个访客的浏览状态。State 是值类型，所有转移函数都返回新状态。
//
// 状态机只有两种模式：
//
//	Browsing(category, page)  按分类分页浏览
//	Searching(query)          搜索结果，不分页
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LJTian/NewsHorizon/internal/category"
)

type Mode string

const (
	Browsing  Mode = "browsing"
	Searching Mode = "searching"
)

type EventType string

const (
	EventCategory EventType = "category"
	EventSearch   EventType = "search"
	EventNext     EventType = "next"
	EventPrev     EventType = "prev"
	EventReset    EventType = "reset"
)

var ErrUnknownEvent = errors.New("unknown session event")

type State struct {
	Mode     Mode              `json:"mode"`
	Category category.Category `json:"category"`
	Page     int               `json:"page"`
	Query    string            `json:"query,omitempty"`
}

// Event 由用户操作触发，Category / Query 只在对应类型下使用
type Event struct {
	Type     EventType `json:"type"`
	Category string    `json:"category,omitempty"`
	Query    string    `json:"query,omitempty"`
}

// Initial 首次访问：首页第 0 页
func Initial() State {
	return State{Mode: Browsing, Category: category.Home}
}

// SetCategory 切换分类会清空搜索并回到第 0 页
func (s State) SetCategory(c category.Category) State {
	return State{Mode: Browsing, Category: c}
}

// SetSearch 空白关键词等同于退出搜索，回到当前分类第 0 页
func (s State) SetSearch(query string) State {
	query = strings.TrimSpace(query)
	if query == "" {
		return State{Mode: Browsing, Category: s.category()}
	}
	return State{Mode: Searching, Category: s.category(), Query: query}
}

// NextPage 搜索结果不分页，此时不变
func (s State) NextPage() State {
	if s.Mode == Searching {
		return s
	}
	s.Page++
	return s
}

// PrevPage 已在第 0 页时不变
func (s State) PrevPage() State {
	if s.Page > 0 {
		s.Page--
	}
	return s
}

// Normalize 修正从外部存储读回的非法值
func (s State) Normalize() State {
	if s.Mode == Searching {
		return s.SetSearch(s.Query)
	}
	return State{Mode: Browsing, Category: s.category(), Page: max(s.Page, 0)}
}

func (s State) category() category.Category {
	return category.Parse(string(s.Category))
}

// Apply 按事件类型分发到对应转移函数
func Apply(s State, e Event) (State, error) {
	switch e.Type {
	case EventCategory:
		return s.SetCategory(category.Parse(e.Category)), nil
	case EventSearch:
		return s.SetSearch(e.Query), nil
	case EventNext:
		return s.NextPage(), nil
	case EventPrev:
		return s.PrevPage(), nil
	case EventReset:
		return Initial(), nil
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
}
