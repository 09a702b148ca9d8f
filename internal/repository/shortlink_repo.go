package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/imkrish7/urlshortnerbackend/internal/model"
)

var (
	// ErrNotFound 表示指定的短码不存在
	ErrNotFound = errors.New("shortened link not found")
	// ErrDuplicate 表示唯一索引冲突（短码或原始 URL 已存在）
	ErrDuplicate = errors.New("shortened link already exists")
)

// 分页默认值
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListQuery 描述一次分页查询：偏移模式用 Page/Limit，
// 游标模式额外带 Cursor，Forward 控制翻页方向。
type ListQuery struct {
	Page    int
	Limit   int
	Cursor  uint
	Forward bool
}

// ListResult 携带一页记录和下一页游标（空页时为 nil）
type ListResult struct {
	Data   []model.ShortenedLink
	Cursor *uint
}

// ShortLinkRepo 是短链接表的数据访问对象，注入到各个 Handler 中
type ShortLinkRepo struct {
	db *gorm.DB
}

// NewShortLinkRepo 创建数据访问对象
func NewShortLinkRepo(db *gorm.DB) *ShortLinkRepo {
	return &ShortLinkRepo{db: db}
}

// FindByOriginalURL 按原始 URL 查找，不存在时返回 (nil, nil)
func (r *ShortLinkRepo) FindByOriginalURL(originalURL string) (*model.ShortenedLink, error) {
	var link model.ShortenedLink
	err := r.db.Where("original_url = ?", originalURL).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// FindByShortCode 按短码查找，用于可用性检查，不存在时返回 (nil, nil)
func (r *ShortLinkRepo) FindByShortCode(code string) (*model.ShortenedLink, error) {
	var link model.ShortenedLink
	err := r.db.Where("short_code = ?", code).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetByShortCode 按短码查找，不存在时返回 ErrNotFound
func (r *ShortLinkRepo) GetByShortCode(code string) (*model.ShortenedLink, error) {
	var link model.ShortenedLink
	err := r.db.Where("short_code = ?", code).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Create 插入新记录，唯一索引冲突转换为 ErrDuplicate
func (r *ShortLinkRepo) Create(link *model.ShortenedLink) error {
	if err := r.db.Create(link).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Update 按短码更新原始 URL、所有者邮箱和密钥
func (r *ShortLinkRepo) Update(code string, link *model.ShortenedLink) error {
	result := r.db.Model(&model.ShortenedLink{}).
		Where("short_code = ?", code).
		Updates(map[string]interface{}{
			"original_url": link.OriginalURL,
			"owner_email":  link.OwnerEmail,
			"secret":       link.Secret,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicate
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 按短码永久删除记录
func (r *ShortLinkRepo) Delete(code string) error {
	result := r.db.Where("short_code = ?", code).Delete(&model.ShortenedLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementClicks 将点击计数原子地加一
func (r *ShortLinkRepo) IncrementClicks(code string) error {
	return r.db.Model(&model.ShortenedLink{}).
		Where("short_code = ?", code).
		Update("clicks", gorm.Expr("clicks + 1")).Error
}

// List 返回一页记录。游标模式下 Forward 为真时取游标之后的记录，
// 为假时取游标之前的 Limit 条；偏移模式下 skip = (page-1)*limit。
// 返回的记录始终按 id 升序排列。
func (r *ShortLinkRepo) List(q ListQuery) (*ListResult, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}

	var links []model.ShortenedLink
	query := r.db.Model(&model.ShortenedLink{}).Limit(q.Limit)

	switch {
	case q.Cursor > 0 && q.Forward:
		query = query.Where("id > ?", q.Cursor).Order("id ASC")
	case q.Cursor > 0:
		query = query.Where("id < ?", q.Cursor).Order("id DESC")
	case q.Forward:
		query = query.Offset((q.Page - 1) * q.Limit).Order("id ASC")
	default:
		query = query.Offset((q.Page - 1) * q.Limit).Order("id DESC")
	}

	if err := query.Find(&links).Error; err != nil {
		return nil, err
	}

	// 反向翻出来的页按 id 升序返回
	if !q.Forward {
		for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
			links[i], links[j] = links[j], links[i]
		}
	}

	result := &ListResult{Data: links}
	if len(links) > 0 {
		last := links[len(links)-1].ID
		result.Cursor = &last
	}
	return result, nil
}

// Stats 返回链接总数和点击总数
func (r *ShortLinkRepo) Stats() (totalLinks int64, totalClicks int64, err error) {
	if err = r.db.Model(&model.ShortenedLink{}).Count(&totalLinks).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&model.ShortenedLink{}).
		Select("COALESCE(SUM(clicks), 0)").Scan(&totalClicks).Error
	if err != nil {
		return 0, 0, err
	}
	return totalLinks, totalClicks, nil
}

// isUniqueViolation 识别各数据库方言的唯一索引冲突错误
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}
