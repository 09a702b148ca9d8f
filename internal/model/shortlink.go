package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ShortenedLink 短链接记录模型
type ShortenedLink struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ShortCode   string    `gorm:"size:10;uniqueIndex;not null" json:"shortCode"`
	OriginalURL string    `gorm:"size:512;uniqueIndex;not null" json:"originalURL"`
	ShortenURL  string    `gorm:"size:600;not null" json:"shortenURL"`
	OwnerEmail  string    `gorm:"size:100;not null" json:"ownerEmail"`
	Secret      string    `gorm:"size:255;not null" json:"-"`
	Clicks      int64     `gorm:"default:0" json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (ShortenedLink) TableName() string {
	return "shortened_links"
}

// SetSecret 加密并设置所有者密钥
func (l *ShortenedLink) SetSecret(secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	l.Secret = string(hash)
	return nil
}

// CheckSecret 校验所有者密钥
func (l *ShortenedLink) CheckSecret(secret string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(l.Secret), []byte(secret))
	return err == nil
}
