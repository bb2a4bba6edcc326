package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/LJTian/NewsHorizon/internal/category"
	"github.com/LJTian/NewsHorizon/internal/logger"
	"github.com/LJTian/NewsHorizon/internal/metrics"
	"github.com/LJTian/NewsHorizon/internal/news"
	"github.com/LJTian/NewsHorizon/internal/session"
	"github.com/LJTian/NewsHorizon/internal/view"
	"github.com/gin-gonic/gin"
)

const fetchErrorMessage = "Could not load news right now. Please try again later."

type Options struct {
	Sessions session.Store
	Metrics  *metrics.Metrics
	Logger   logger.Logger
	// Now 用于计算相对时间，测试中可替换
	Now func() time.Time
}

type Server struct {
	news     *news.Service
	sessions session.Store
	metrics  *metrics.Metrics
	log      logger.Logger
	now      func() time.Time
}

func NewServer(svc *news.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore(24 * time.Hour)
	}
	return &Server{
		news:     svc,
		sessions: opts.Sessions,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		now:      opts.Now,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/categories", s.listCategories)
		v1.GET("/news", s.listNews)
		v1.GET("/search", s.search)
		v1.GET("/session", s.getSession)
		v1.POST("/session/events", s.postSessionEvent)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    category.All(),
	})
}

func (s *Server) listNews(c *gin.Context) {
	cat := category.Parse(c.Query("category"))

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	p, err := s.news.CategoryPage(c.Request.Context(), cat, page)
	respond(c, err, gin.H{
		"category": p.Category,
		"page":     p.Index,
		"hasNext":  p.HasNext,
		"cards":    view.Cards(p.Articles, s.now()),
	})
}

func (s *Server) search(c *gin.Context) {
	q := c.Query("q")

	results, err := s.news.Search(c.Request.Context(), q)
	respond(c, err, gin.H{
		"query": q,
		"cards": view.Cards(results, s.now()),
	})
}

// respond 抓取失败仍返回 200，由 code 区分，页面照常渲染空列表
func respond(c *gin.Context, err error, data gin.H) {
	if err != nil {
		if errors.Is(err, news.ErrFetch) {
			c.JSON(http.StatusOK, gin.H{
				"code":    "fetch_error",
				"message": fetchErrorMessage,
				"data":    data,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}
