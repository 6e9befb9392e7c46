package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skripsiku_backend/internals/configs"
	"skripsiku_backend/internals/features/users/auth/dto"
	authModel "skripsiku_backend/internals/features/users/auth/model"
	authRepo "skripsiku_backend/internals/features/users/auth/repository"
	userModel "skripsiku_backend/internals/features/users/user/model"
	"skripsiku_backend/internals/helpers/apperr"
)

const accessTTLDefault = 24 * time.Hour

// GoogleIdentity: klaim minimum dari Google ID token.
type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

// GoogleVerifier memverifikasi ID token Google untuk audience (client id).
type GoogleVerifier func(idToken, audience string) (*GoogleIdentity, error)

// VerifyGoogleIDToken memakai verifier futurenda (cek signature, exp, aud).
func VerifyGoogleIDToken(idToken, audience string) (*GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{audience}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleIdentity{Sub: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

type AuthService struct {
	Repo           authRepo.Repository
	Secret         string
	GoogleClientID string
	AccessTTL      time.Duration
	VerifyGoogle   GoogleVerifier
	Now            func() time.Time
}

func NewAuthService(repo authRepo.Repository) *AuthService {
	return &AuthService{
		Repo:           repo,
		Secret:         configs.JWTSecret,
		GoogleClientID: configs.GoogleClientID,
		AccessTTL:      accessTTLDefault,
		VerifyGoogle:   VerifyGoogleIDToken,
		Now:            time.Now,
	}
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.Repo.FindUserByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("Identifier atau password salah")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Identifier atau password salah")
	}
	return s.issue(user)
}

/* ==========================
   LOGIN GOOGLE (hanya user yang sudah terdaftar)
========================== */

func (s *AuthService) LoginGoogle(ctx context.Context, req dto.LoginGoogleRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(s.GoogleClientID) == "" {
		return nil, apperr.Validation("Login Google belum dikonfigurasi")
	}
	gid, err := s.VerifyGoogle(req.IDToken, s.GoogleClientID)
	if err != nil {
		log.Printf("[WARN] verifikasi Google ID token gagal: %v", err)
		return nil, apperr.Unauthorized("Invalid Google ID Token")
	}

	user, err := s.Repo.FindUserByGoogleID(ctx, gid.Sub)
	if errors.Is(err, apperr.ErrNotFound) {
		// akun dibuat admin/import; tautkan google_id lewat email
		user, err = s.Repo.FindUserByEmail(ctx, gid.Email)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Forbidden("Email Google belum terdaftar. Hubungi admin departemen.")
		}
		if err == nil {
			if lerr := s.Repo.LinkGoogleID(ctx, user.ID, gid.Sub); lerr != nil {
				log.Printf("[WARN] gagal menautkan google_id user %s: %v", user.ID, lerr)
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *userModel.UserModel) (*dto.LoginResponse, error) {
	if !user.IsActive {
		return nil, apperr.Forbidden("Akun Anda telah dinonaktifkan. Hubungi admin.")
	}
	if s.Secret == "" {
		return nil, apperr.Internal("JWT_SECRET belum diset", nil)
	}
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	now := s.now()
	exp := now.Add(ttl)

	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
	if err != nil {
		return nil, apperr.Internal("Gagal membuat access token", err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        dto.FromUserModel(user),
	}, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout mem-blacklist access token sampai exp-nya lewat (idempotent).
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil
	}
	return s.Repo.BlacklistToken(ctx, authModel.HashToken(rawToken), s.tokenExpiry(rawToken))
}

func (s *AuthService) tokenExpiry(raw string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(raw, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			return time.Unix(int64(exp), 0).UTC()
		}
	}
	return s.now().Add(accessTTLDefault)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := dto.FromUserModel(user)
	return &out, nil
}

// CleanupBlacklist menghapus baris blacklist yang exp-nya lebih lama dari ttl.
func (s *AuthService) CleanupBlacklist(ctx context.Context, ttl time.Duration) (int64, error) {
	return s.Repo.CleanupExpiredBlacklist(ctx, s.now().Add(-ttl))
}
