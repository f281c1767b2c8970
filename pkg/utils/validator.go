package utils

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidDateFormat = errors.New("日期格式无效，请使用 YYYY-MM-DD 或类似格式")
	ErrInvalidWorkNumber = errors.New("工号只能包含字母、数字、- 和 _")
)

// DateLayout 工作日期的存储与输出格式
const DateLayout = "2006-01-02"

// IsNumeric 检查字符串是否只包含数字
func IsNumeric(s string) bool {
	if s == "" {
		return false // 空字符串不视为数字
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ParseDate 解析日期字符串，支持多种常见格式。
// 支持 YYYY-MM-DD, YYYY/MM/DD, YYYY-M-D, YYYY/M/D 等及其变体，
// 也接受带时间部分的 RFC3339 / "YYYY-MM-DD HH:MM:SS"，只取日期。
func ParseDate(dateStr string) (time.Time, error) {
	trimmed := strings.TrimSpace(dateStr)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDateFormat
	}

	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if i := strings.IndexAny(trimmed, " T"); i > 0 {
		trimmed = trimmed[:i]
	}

	normalized := strings.ReplaceAll(trimmed, "/", "-")

	// 包含补零和不补零的情况
	dateLayouts := []string{
		DateLayout, // YYYY-MM-DD
		"2006-1-2",  // YYYY-M-D
		"2006-01-2", // YYYY-MM-D
		"2006-1-02", // YYYY-M-DD
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, normalized); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}

// ValidateWorkNumber 校验工单号
func ValidateWorkNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrInvalidWorkNumber
	}
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return ErrInvalidWorkNumber
		}
	}
	return nil
}

// RegisterValidators 在 gin 的校验器上注册自定义规则：
// workdate 可解析的日期字符串 (空值跳过)；worknumber 工单号格式。
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 校验器不是 validator/v10")
	}
	if err := v.RegisterValidation("workdate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.TrimSpace(s) == "" {
			return true
		}
		_, err := ParseDate(s)
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("worknumber", func(fl validator.FieldLevel) bool {
		return ValidateWorkNumber(fl.Field().String()) == nil
	})
}
