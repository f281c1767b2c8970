package utils

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch 密码与哈希不匹配
var ErrPasswordMismatch = errors.New("password mismatch")

// BcryptCost 新密码哈希使用的代价，测试中可调低
var BcryptCost = bcrypt.DefaultCost

func HashPassword(s string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(s), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// IsLegacyHash 旧系统遗留的 32 位十六进制 MD5 哈希
func IsLegacyHash(hashed string) bool {
	return len(hashed) == md5.Size*2 && !strings.HasPrefix(hashed, "$2")
}

// ComparePassword 校验密码，同时兼容 bcrypt 与遗留 MD5 哈希。
// 遗留哈希校验通过后调用方应以 bcrypt 重新保存。
func ComparePassword(hashed string, normal string) error {
	if IsLegacyHash(hashed) {
		sum := md5.Sum([]byte(normal))
		if subtle.ConstantTimeCompare([]byte(strings.ToLower(hashed)), []byte(hex.EncodeToString(sum[:]))) == 1 {
			return nil
		}
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(normal)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
