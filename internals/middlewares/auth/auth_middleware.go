// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"skripsiku_backend/internals/configs"
	authModel "skripsiku_backend/internals/features/users/auth/model"
	"skripsiku_backend/internals/helpers/apperr"
)

// Identity adalah hasil verifikasi access token.
type Identity struct {
	UserID   uuid.UUID
	Role     string
	UserName string
	RawToken string
}

// VerifyAccessToken: parse HS256, cek exp, blacklist, dan status user aktif.
func VerifyAccessToken(db *gorm.DB, raw string) (*Identity, error) {
	secretKey := configs.JWTSecret
	if secretKey == "" {
		log.Println("[ERROR] JWT_SECRET kosong")
		return nil, apperr.Internal("Missing JWT Secret", nil)
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}); err != nil {
		return nil, apperr.Unauthorized("Unauthorized - Token parse error")
	}

	if err := validateTokenExpiry(claims, time.Now(), 30*time.Second); err != nil {
		return nil, apperr.Unauthorized("Unauthorized - Token expired")
	}

	userID, err := extractUserID(claims)
	if err != nil {
		return nil, apperr.Unauthorized("Unauthorized - Invalid or missing user ID")
	}

	var n int64
	if err := db.Model(&authModel.TokenBlacklist{}).
		Where("token_hash = ?", authModel.HashToken(raw)).
		Count(&n).Error; err != nil {
		return nil, apperr.Internal("Gagal cek blacklist token", err)
	}
	if n > 0 {
		return nil, apperr.Unauthorized("Unauthorized - Token is blacklisted")
	}

	if err := ensureUserActive(db, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Unauthorized - User not found")
		}
		if errors.Is(err, errUserInactive) {
			return nil, apperr.Forbidden("Akun Anda telah dinonaktifkan")
		}
		return nil, apperr.Internal("Gagal cek status user", err)
	}

	role, _ := claims["role"].(string)
	userName, _ := claims["user_name"].(string)
	return &Identity{
		UserID:   userID,
		Role:     strings.ToLower(strings.TrimSpace(role)),
		UserName: userName,
		RawToken: raw,
	}, nil
}

// AuthMiddleware: Bearer header atau cookie access_token.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return authHandler(db, false)
}

// AuthMiddlewareWS juga menerima ?token= untuk upgrade websocket.
func AuthMiddlewareWS(db *gorm.DB) fiber.Handler {
	return authHandler(db, true)
}

func authHandler(db *gorm.DB, allowQuery bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c, allowQuery)
		if err != nil {
			return apperr.Unauthorized(err.Error())
		}

		id, err := VerifyAccessToken(db, tokenString)
		if err != nil {
			log.Printf("[WARN] AuthMiddleware %s %s: %v", c.Method(), c.Path(), err)
			return err
		}

		storeBasicClaimsToLocals(c, id)
		return c.Next()
	}
}
