package schema

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// CodeLength 是短码的固定长度
const CodeLength = 10

// ValidationError 携带字段级别的校验错误
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ShortenRequest 创建/编辑短链接的请求体
type ShortenRequest struct {
	URL        string `json:"url" example:"https://github.com/gin-gonic/gin"`
	Email      string `json:"email" example:"owner@example.com"`
	Secret     string `json:"secret" example:"secretpw"`
	CustomCode string `json:"customCode,omitempty" example:"myCode123_"`
}

// Validate 校验创建/编辑请求的各个字段
func (r *ShortenRequest) Validate() *ValidationError {
	if !isValidURL(r.URL) {
		return &ValidationError{Field: "url", Message: "must include a valid domain (e.g. example.com)"}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil || r.Email == "" {
		return &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if len(r.Secret) < 6 {
		return &ValidationError{Field: "secret", Message: "must be at least 6 characters"}
	}
	if r.CustomCode != "" && len(r.CustomCode) != CodeLength {
		return &ValidationError{Field: "customCode", Message: "should be 10 character long"}
	}
	return nil
}

// OwnerSecretRequest 所有者校验的请求体
type OwnerSecretRequest struct {
	Secret string `json:"secret" example:"secretpw"`
}

// Validate 校验所有者密钥是否存在
func (r *OwnerSecretRequest) Validate() *ValidationError {
	if r.Secret == "" {
		return &ValidationError{Field: "secret", Message: "is required"}
	}
	return nil
}

// isValidURL 要求 http/https 协议，主机名必须包含点且二级段长度 >= 2，
// 或者是带显式端口的回环地址
func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}

	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return u.Port() != ""
	}

	if !strings.Contains(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	parts := strings.Split(host, ".")
	return len(parts[1]) >= 2
}
