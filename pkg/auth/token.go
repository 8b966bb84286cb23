package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleDriver   = "driver"
)

var (
	// ErrInvalidToken токен не прошел проверку подписи или срока действия
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims полезная нагрузка токена сессии
type Claims struct {
	Role  string `json:"role"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// UserID id пользователя из subject; у водительской сессии его нет
func (c *Claims) UserID() (int64, bool) {
	if c.Subject == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Issuer выпускает и проверяет HS256 токены
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer создает выпускающий объект токенов
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueUser выпускает токен для зарегистрированного пользователя
func (i *Issuer) IssueUser(userID int64, isAdmin bool) (string, time.Time, error) {
	role := RoleCustomer
	if isAdmin {
		role = RoleAdmin
	}
	return i.issue(strconv.FormatInt(userID, 10), role, isAdmin)
}

// IssueDriver выпускает токен водительской сессии (без пользователя)
func (i *Issuer) IssueDriver() (string, time.Time, error) {
	return i.issue("", RoleDriver, false)
}

func (i *Issuer) issue(subject, role string, isAdmin bool) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.ttl)

	claims := Claims{
		Role:  role,
		Admin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse проверяет подпись и срок действия токена
func (i *Issuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
