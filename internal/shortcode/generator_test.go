package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/imkrish7/urlshortnerbackend/internal/model"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:generator_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ShortenedLink{}))

	logger, _ := zap.NewDevelopment()
	g := NewGenerator(db, logger.Sugar())
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return g
}

// TestGetCodeShape 生成的短码长度固定，且只包含字母表中的字符
func TestGetCodeShape(t *testing.T) {
	g := newTestGenerator(t)

	for i := 0; i < 50; i++ {
		code := g.GetCode()
		assert.Len(t, code, CodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(Charset, ch), "非法字符: %q", ch)
		}
	}
}

// TestGetCodeAvoidsExistingCodes 生成器不会返回数据库中已存在的短码
func TestGetCodeAvoidsExistingCodes(t *testing.T) {
	g := newTestGenerator(t)

	// 预先占用一批短码
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code := g.GetCode()
		require.False(t, seen[code], "同一次测试中生成了重复短码: %s", code)
		seen[code] = true
		require.NoError(t, g.db.Create(&model.ShortenedLink{
			ShortCode:   code,
			OriginalURL: "https://example.com/" + code,
			ShortenURL:  "http://localhost:8080/shortener/__redirect/" + code,
			OwnerEmail:  "a@b.com",
			Secret:      "hash",
		}).Error)
	}

	for i := 0; i < 20; i++ {
		assert.False(t, seen[g.GetCode()], "生成器返回了已占用的短码")
	}
}

// TestChannelPrefill 启动后通道会被填充，GetCode 从通道中取码
func TestChannelPrefill(t *testing.T) {
	g := newTestGenerator(t)
	g.Start()
	defer g.Stop()

	code := g.GetCode()
	assert.Len(t, code, CodeLength)
}
