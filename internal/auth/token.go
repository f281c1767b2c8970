package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims 定义了JWT中存储的自定义声明。
// JTI (ID) 会通过内嵌的 jwt.RegisteredClaims 提供
type Claims struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Permissions int    `json:"permissions"`
	Version     int    `json:"ver"`
	jwt.RegisteredClaims
}

// ErrMissingJTI Token 缺少 JWT ID
var ErrMissingJTI = errors.New("token missing JTI (JWT ID)")

// TokenIssuer 签发与校验 HS256 Token
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}
}

// Issue 为会话签发 Token，返回 Token 和过期时间
func (t *TokenIssuer) Issue(s Session) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := &Claims{
		UserID:      s.UserID,
		Username:    s.Username,
		Role:        s.Role,
		Permissions: s.Permissions,
		Version:     s.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.Username,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("签发 Token 失败: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse 校验签名与有效期并返回声明
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 确保token的签名方法是我们期望的 HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.ID == "" {
		return nil, ErrMissingJTI
	}
	return claims, nil
}

// SessionFromClaims 由声明构造会话
func SessionFromClaims(c *Claims) Session {
	return Session{UserID: c.UserID, Username: c.Username, Role: c.Role, Permissions: c.Permissions, TokenVersion: c.Version}
}
