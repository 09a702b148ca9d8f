package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/imkrish7/urlshortnerbackend/internal/model"
)

func newTestRepo(t *testing.T) *ShortLinkRepo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ShortenedLink{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewShortLinkRepo(db)
}

func seedLink(t *testing.T, repo *ShortLinkRepo, code, url string) *model.ShortenedLink {
	t.Helper()
	link := &model.ShortenedLink{
		ShortCode:   code,
		OriginalURL: url,
		ShortenURL:  "http://localhost:8080/shortener/__redirect/" + code,
		OwnerEmail:  "a@b.com",
		Secret:      "hash",
	}
	require.NoError(t, repo.Create(link))
	return link
}

// TestCreateAndLookup 创建后可以按短码和原始 URL 找回
func TestCreateAndLookup(t *testing.T) {
	repo := newTestRepo(t)
	seedLink(t, repo, "abcdef123X", "https://example.com/1")

	byCode, err := repo.FindByShortCode("abcdef123X")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, "https://example.com/1", byCode.OriginalURL)

	byURL, err := repo.FindByOriginalURL("https://example.com/1")
	require.NoError(t, err)
	require.NotNil(t, byURL)
	assert.Equal(t, "abcdef123X", byURL.ShortCode)

	// 不存在的键：Find* 返回 nil，Get* 返回 ErrNotFound
	missing, err := repo.FindByShortCode("XXXXXXXXXX")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.GetByShortCode("XXXXXXXXXX")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestUniqueConstraints 短码和原始 URL 的唯一索引冲突转换为 ErrDuplicate
func TestUniqueConstraints(t *testing.T) {
	repo := newTestRepo(t)
	seedLink(t, repo, "abcdef123X", "https://example.com/1")

	dup := &model.ShortenedLink{
		ShortCode:   "abcdef123X",
		OriginalURL: "https://example.com/2",
		ShortenURL:  "http://localhost:8080/shortener/__redirect/abcdef123X",
		OwnerEmail:  "a@b.com",
		Secret:      "hash",
	}
	assert.ErrorIs(t, repo.Create(dup), ErrDuplicate)

	dup = &model.ShortenedLink{
		ShortCode:   "XYZ_abcdef",
		OriginalURL: "https://example.com/1",
		ShortenURL:  "http://localhost:8080/shortener/__redirect/XYZ_abcdef",
		OwnerEmail:  "a@b.com",
		Secret:      "hash",
	}
	assert.ErrorIs(t, repo.Create(dup), ErrDuplicate)
}

// TestUpdateAndDelete 更新写入新字段，删除后记录不可见
func TestUpdateAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	seedLink(t, repo, "abcdef123X", "https://example.com/1")

	err := repo.Update("abcdef123X", &model.ShortenedLink{
		OriginalURL: "https://example.com/updated",
		OwnerEmail:  "new@b.com",
		Secret:      "newhash",
	})
	require.NoError(t, err)

	got, err := repo.GetByShortCode("abcdef123X")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/updated", got.OriginalURL)
	assert.Equal(t, "new@b.com", got.OwnerEmail)
	assert.Equal(t, "newhash", got.Secret)

	// 未知短码的更新/删除返回 ErrNotFound
	err = repo.Update("XXXXXXXXXX", &model.ShortenedLink{OriginalURL: "https://example.com/x", OwnerEmail: "x@b.com", Secret: "h"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete("XXXXXXXXXX"), ErrNotFound)

	require.NoError(t, repo.Delete("abcdef123X"))
	_, err = repo.GetByShortCode("abcdef123X")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestIncrementClicks 点击计数只增不减
func TestIncrementClicks(t *testing.T) {
	repo := newTestRepo(t)
	seedLink(t, repo, "abcdef123X", "https://example.com/1")

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.IncrementClicks("abcdef123X"))
		got, err := repo.GetByShortCode("abcdef123X")
		require.NoError(t, err)
		assert.EqualValues(t, i, got.Clicks)
	}
}

// TestListModes 偏移分页、游标分页和方向控制
func TestListModes(t *testing.T) {
	repo := newTestRepo(t)
	var ids []uint
	for i := 0; i < 7; i++ {
		link := seedLink(t, repo, fmt.Sprintf("code%06d", i), fmt.Sprintf("https://example.com/%d", i))
		ids = append(ids, link.ID)
	}

	// 非法输入回退默认值
	result, err := repo.List(ListQuery{Page: -3, Limit: 0, Forward: true})
	require.NoError(t, err)
	assert.Len(t, result.Data, 7)
	require.NotNil(t, result.Cursor)
	assert.Equal(t, ids[6], *result.Cursor)

	// 偏移模式第二页
	result, err = repo.List(ListQuery{Page: 2, Limit: 3, Forward: true})
	require.NoError(t, err)
	require.Len(t, result.Data, 3)
	assert.Equal(t, ids[3], result.Data[0].ID)

	// 游标正向：严格大于游标
	result, err = repo.List(ListQuery{Limit: 2, Cursor: ids[2], Forward: true})
	require.NoError(t, err)
	require.Len(t, result.Data, 2)
	assert.Equal(t, ids[3], result.Data[0].ID)
	assert.Equal(t, ids[4], *result.Cursor)

	// 游标反向：游标之前的 Limit 条，按 id 升序返回
	result, err = repo.List(ListQuery{Limit: 2, Cursor: ids[4], Forward: false})
	require.NoError(t, err)
	require.Len(t, result.Data, 2)
	assert.Equal(t, ids[2], result.Data[0].ID)
	assert.Equal(t, ids[3], result.Data[1].ID)

	// 空页：游标为 nil
	result, err = repo.List(ListQuery{Page: 10, Limit: 5, Forward: true})
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Nil(t, result.Cursor)
}

// TestStats 汇总统计
func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	seedLink(t, repo, "abcdef123X", "https://example.com/1")
	seedLink(t, repo, "XYZ_abcdef", "https://example.com/2")
	require.NoError(t, repo.IncrementClicks("abcdef123X"))
	require.NoError(t, repo.IncrementClicks("XYZ_abcdef"))

	totalLinks, totalClicks, err := repo.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, totalLinks)
	assert.EqualValues(t, 2, totalClicks)
}
