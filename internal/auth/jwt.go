package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	jwtSecret  string
	accessTTL  = 30 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

func InitJWT(secret string, accessTTLMin, refreshTTLDays int) error {
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	jwtSecret = secret
	if accessTTLMin > 0 {
		accessTTL = time.Duration(accessTTLMin) * time.Minute
	}
	if refreshTTLDays > 0 {
		refreshTTL = time.Duration(refreshTTLDays) * 24 * time.Hour
	}
	return nil
}

func GenerateAccessToken(userID uint) (string, error) {
	return generateToken(userID, TokenTypeAccess, accessTTL)
}

func GenerateRefreshToken(userID uint) (string, error) {
	return generateToken(userID, TokenTypeRefresh, refreshTTL)
}

func generateToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"type": tokenType,
		"exp":  time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyToken parses the token and returns the subject user id. The token
// must carry the expected type claim ("access" or "refresh").
func VerifyToken(tokenString, expectedType string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	if tokenType, _ := claims["type"].(string); tokenType != expectedType {
		return 0, fmt.Errorf("invalid token type")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject in token claims")
	}

	return uint(userID), nil
}
