package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/LJTian/NewsHorizon/internal/logger"
	"github.com/LJTian/NewsHorizon/internal/session"
	"github.com/LJTian/NewsHorizon/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "nh_session"
	// 30 天；状态本身的过期由 SESSION_TTL 决定
	sessionCookieMaxAge = 30 * 24 * 3600
)

func (s *Server) getSession(c *gin.Context) {
	id := s.sessionID(c)
	st := s.loadState(c.Request.Context(), id)
	s.renderState(c, st)
}

func (s *Server) postSessionEvent(c *gin.Context) {
	var ev session.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "invalid event body",
		})
		return
	}

	id := s.sessionID(c)
	ctx := c.Request.Context()

	next, err := session.Apply(s.loadState(ctx, id), ev)
	if errors.Is(err, session.ErrUnknownEvent) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "unknown_event",
			"message": err.Error(),
		})
		return
	}

	if err := s.sessions.Save(ctx, id, next); err != nil {
		s.log.Warn("save session failed", logger.String("session", id), logger.Err(err))
	}
	s.renderState(c, next)
}

// sessionID 读取 cookie，缺失或非法时签发新 ID
func (s *Server) sessionID(c *gin.Context) string {
	if v, err := c.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, sessionCookieMaxAge, "/", "", false, true)
	return id
}

// loadState 存储出错时退回初始状态
func (s *Server) loadState(ctx context.Context, id string) session.State {
	st, ok, err := s.sessions.Load(ctx, id)
	if err != nil {
		s.log.Warn("load session failed", logger.String("session", id), logger.Err(err))
		return session.Initial()
	}
	if !ok {
		return session.Initial()
	}
	return st
}

func (s *Server) renderState(c *gin.Context, st session.State) {
	ctx := c.Request.Context()

	if st.Mode == session.Searching {
		results, err := s.news.Search(ctx, st.Query)
		respond(c, err, gin.H{
			"state":   st,
			"hasNext": false,
			"cards":   view.Cards(results, s.now()),
		})
		return
	}

	p, err := s.news.CategoryPage(ctx, st.Category, st.Page)
	respond(c, err, gin.H{
		"state":   st,
		"hasNext": p.HasNext,
		"cards":   view.Cards(p.Articles, s.now()),
	})
}
