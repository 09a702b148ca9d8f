package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/imkrish7/urlshortnerbackend/internal/model"
	"github.com/imkrish7/urlshortnerbackend/internal/repository"
	"github.com/imkrish7/urlshortnerbackend/internal/schema"
	"github.com/imkrish7/urlshortnerbackend/internal/shortcode"
)

const (
	// 重定向缓存的键前缀和过期时间
	cacheKeyPrefix = "shortlink:"
	cacheTTL       = 24 * time.Hour
)

// ShortenerHandler 短链接处理器
type ShortenerHandler struct {
	repo          *repository.ShortLinkRepo
	redis         *redis.Client
	codeGenerator *shortcode.Generator
}

// NewShortenerHandler 创建处理器实例
func NewShortenerHandler(repo *repository.ShortLinkRepo, redisClient *redis.Client, codeGenerator *shortcode.Generator) *ShortenerHandler {
	return &ShortenerHandler{
		repo:          repo,
		redis:         redisClient,
		codeGenerator: codeGenerator,
	}
}

// HealthCheck 健康检查
func (h *ShortenerHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// CreateShortLink godoc
// @Summary 创建短链接
// @Description 为一个长 URL 创建短链接，可选自定义短码
// @Tags Shortener
// @Accept  json
// @Produce  json
// @Param   request  body   schema.ShortenRequest  true  "创建请求"
// @Success 201 {object} gin.H "创建成功"
// @Failure 400 {object} gin.H "请求无效"
// @Failure 403 {object} gin.H "自定义短码已被占用"
// @Failure 409 {object} gin.H "URL 已存在"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/create [post]
func (h *ShortenerHandler) CreateShortLink(c *gin.Context) {
	var req schema.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "URL is not valid"})
		return
	}
	if verr := req.Validate(); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "URL is not valid", "error": verr})
		return
	}

	existing, err := h.repo.FindByOriginalURL(req.URL)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "URL already exist"})
		return
	}

	if req.CustomCode != "" {
		taken, err := h.repo.FindByShortCode(req.CustomCode)
		if err != nil {
			h.internalError(c, err)
			return
		}
		if taken != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "Custom code is taken"})
			return
		}
	}

	code := req.CustomCode
	if code == "" {
		code = h.codeGenerator.GetCode()
	}

	link := model.ShortenedLink{
		ShortCode:   code,
		OriginalURL: req.URL,
		ShortenURL:  fmt.Sprintf("%s://%s/shortener/__redirect/%s", requestScheme(c), c.Request.Host, code),
		OwnerEmail:  req.Email,
	}
	if err := link.SetSecret(req.Secret); err != nil {
		h.internalError(c, err)
		return
	}

	// 先查后插存在竞争窗口，唯一索引冲突在这里兜底转换为 409
	if err := h.repo.Create(&link); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "URL already exist"})
			return
		}
		h.internalError(c, err)
		return
	}

	h.cacheSet(link.ShortCode, link.OriginalURL)
	c.JSON(http.StatusCreated, gin.H{"message": "url has been created successfully", "data": link})
}

// CheckAvailability godoc
// @Summary 检查短码可用性
// @Tags Shortener
// @Produce  json
// @Param   code  path  string  true  "短码"
// @Success 202 {object} gin.H "检查结果"
// @Failure 400 {object} gin.H "短码无效"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/availability/{code} [get]
func (h *ShortenerHandler) CheckAvailability(c *gin.Context) {
	code := c.Param("code")
	if len(code) != schema.CodeLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code is not valid!"})
		return
	}

	existing, err := h.repo.FindByShortCode(code)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"isAvailable": existing == nil})
}

// GetAllLinks godoc
// @Summary 分页列出所有短链接
// @Description 支持偏移分页 (page/limit) 和游标分页 (cursor/forward)
// @Tags Shortener
// @Produce  json
// @Param   page     query  int     false  "页码"  default(1)
// @Param   limit    query  int     false  "每页条数"  default(10)
// @Param   cursor   query  int     false  "上一页最后一条记录的 id"
// @Param   forward  query  bool    false  "翻页方向"  default(true)
// @Success 202 {object} gin.H "分页结果"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/all [get]
func (h *ShortenerHandler) GetAllLinks(c *gin.Context) {
	query := repository.ListQuery{
		Page:    intQueryWithDefault(c, "page", repository.DefaultPage),
		Limit:   intQueryWithDefault(c, "limit", repository.DefaultLimit),
		Forward: boolQueryWithDefault(c, "forward", true),
	}
	if cursor, err := strconv.ParseUint(c.Query("cursor"), 10, 64); err == nil {
		query.Cursor = uint(cursor)
	}

	result, err := h.repo.List(query)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"data": result.Data, "cursor": result.Cursor})
}

// ValidateOwner godoc
// @Summary 校验所有者密钥
// @Tags Shortener
// @Accept  json
// @Produce  json
// @Param   code     path  string  true  "短码"
// @Param   request  body  schema.OwnerSecretRequest  true  "密钥"
// @Success 202 {object} gin.H "已授权"
// @Failure 400 {object} gin.H "短码无效"
// @Failure 401 {object} gin.H "未授权"
// @Failure 404 {object} gin.H "短码不存在"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/validate/{code}/owner [post]
func (h *ShortenerHandler) ValidateOwner(c *gin.Context) {
	code := c.Param("code")
	if len(code) < schema.CodeLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code is not valid"})
		return
	}

	var req schema.OwnerSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	if verr := req.Validate(); verr != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	link, err := h.repo.GetByShortCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "URL does not exist"})
			return
		}
		h.internalError(c, err)
		return
	}

	if !link.CheckSecret(req.Secret) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "authorized"})
}

// EditShortLink godoc
// @Summary 编辑短链接
// @Description 更新原始 URL、所有者邮箱和密钥
// @Tags Shortener
// @Accept  json
// @Produce  json
// @Param   code     path  string  true  "短码"
// @Param   request  body  schema.ShortenRequest  true  "编辑请求"
// @Success 202 {object} gin.H "已编辑"
// @Failure 400 {object} gin.H "请求无效"
// @Failure 404 {object} gin.H "短码不存在"
// @Failure 409 {object} gin.H "URL 已被其他记录占用"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/{code} [put]
func (h *ShortenerHandler) EditShortLink(c *gin.Context) {
	code := c.Param("code")
	if len(code) < schema.CodeLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code is not valid"})
		return
	}

	var req schema.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "URL is not valid"})
		return
	}
	if verr := req.Validate(); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "URL is not valid", "error": verr})
		return
	}

	if _, err := h.repo.GetByShortCode(code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "URL does not exist"})
			return
		}
		h.internalError(c, err)
		return
	}

	updated := model.ShortenedLink{OriginalURL: req.URL, OwnerEmail: req.Email}
	if err := updated.SetSecret(req.Secret); err != nil {
		h.internalError(c, err)
		return
	}

	if err := h.repo.Update(code, &updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "URL does not exist"})
		case errors.Is(err, repository.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"message": "URL already exist"})
		default:
			h.internalError(c, err)
		}
		return
	}

	h.cacheDel(code)
	c.JSON(http.StatusAccepted, gin.H{"message": "edited"})
}

// DeleteShortLink godoc
// @Summary 删除短链接
// @Tags Shortener
// @Produce  json
// @Param   code  path  string  true  "短码"
// @Success 202 {object} gin.H "已删除"
// @Failure 400 {object} gin.H "短码无效"
// @Failure 404 {object} gin.H "短码不存在"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/{code} [delete]
func (h *ShortenerHandler) DeleteShortLink(c *gin.Context) {
	code := c.Param("code")
	if len(code) < schema.CodeLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code is not valid"})
		return
	}

	h.cacheDel(code)
	if err := h.repo.Delete(code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "URL does not exist"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "URL deleted"})
}

// GetShortLink godoc
// @Summary 按短码查询短链接
// @Tags Shortener
// @Produce  json
// @Param   code  path  string  true  "短码"
// @Success 202 {object} gin.H "记录"
// @Failure 400 {object} gin.H "短码无效"
// @Failure 404 {object} gin.H "短码不存在"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/{code} [get]
func (h *ShortenerHandler) GetShortLink(c *gin.Context) {
	code := c.Param("code")
	if len(code) < schema.CodeLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code is not valid"})
		return
	}

	link, err := h.repo.GetByShortCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "URL does not exist"})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"data": link})
}

// RedirectToOriginal godoc
// @Summary 短码重定向
// @Description 累加点击计数后重定向到原始 URL
// @Tags Shortener
// @Param   code  path  string  true  "短码"
// @Success 302 "重定向"
// @Failure 400 {object} gin.H "短码无效"
// @Failure 404 {object} gin.H "短码不存在"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/__redirect/{code} [get]
func (h *ShortenerHandler) RedirectToOriginal(c *gin.Context) {
	code := c.Param("code")
	if len(code) < schema.CodeLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code is not valid"})
		return
	}

	// 命中缓存时省掉一次查询，点击计数仍然同步落库，
	// 保证重定向响应发出之前计数已加一
	if cachedURL, ok := h.cacheGet(code); ok {
		if err := h.repo.IncrementClicks(code); err != nil {
			h.internalError(c, err)
			return
		}
		c.Redirect(http.StatusFound, cachedURL)
		return
	}

	link, err := h.repo.GetByShortCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "URL does not exist"})
			return
		}
		h.internalError(c, err)
		return
	}

	if err := h.repo.IncrementClicks(code); err != nil {
		h.internalError(c, err)
		return
	}

	h.cacheSet(code, link.OriginalURL)
	c.Redirect(http.StatusFound, link.OriginalURL)
}

// GetStats godoc
// @Summary 汇总统计
// @Tags Shortener
// @Produce  json
// @Success 202 {object} gin.H "统计数据"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /shortener/stats [get]
func (h *ShortenerHandler) GetStats(c *gin.Context) {
	totalLinks, totalClicks, err := h.repo.Stats()
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"totalLinks": totalLinks, "totalClicks": totalClicks})
}

// internalError 记录底层错误，对外只返回统一的 500 响应
func (h *ShortenerHandler) internalError(c *gin.Context, err error) {
	zap.S().Errorf("请求处理失败: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "OOPS! Our server is dead"})
}

func (h *ShortenerHandler) cacheGet(code string) (string, bool) {
	if h.redis == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	val, err := h.redis.Get(ctx, cacheKeyPrefix+code).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (h *ShortenerHandler) cacheSet(code, originalURL string) {
	if h.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.redis.Set(ctx, cacheKeyPrefix+code, originalURL, cacheTTL)
}

func (h *ShortenerHandler) cacheDel(code string) {
	if h.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.redis.Del(ctx, cacheKeyPrefix+code)
}

// requestScheme 推断请求协议，优先信任反向代理头
func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// intQueryWithDefault 解析整型查询参数，缺失/非数字/非正数时回退默认值
func intQueryWithDefault(c *gin.Context, key string, def int) int {
	val, err := strconv.Atoi(c.Query(key))
	if err != nil || val < 1 {
		return def
	}
	return val
}

// boolQueryWithDefault 解析布尔查询参数
func boolQueryWithDefault(c *gin.Context, key string, def bool) bool {
	val, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return def
	}
	return val
}
