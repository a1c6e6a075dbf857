package usecase

import (
	"context"
	"errors"
	"sync"

	"healthcare-records/internal/converter"
	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"
	"healthcare-records/internal/domain/repository"
	"healthcare-records/internal/service"
	"healthcare-records/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	tokenStore   service.TokenStore
	jwtService   *jwt.JWTService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		tokenStore:   tokenStore,
		jwtService:   jwtService,
	}
}

// dummyHash is compared against when the email is unknown so that a failed
// login costs one bcrypt comparison either way.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("healthcare-records-dummy"), bcrypt.DefaultCost)
	return hash
})

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := entity.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	user, err := entity.NewUser(req.Name, req.Email, "")
	if err != nil {
		return nil, err
	}

	// Hash before the transaction is opened
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	user.Password = string(hashedPassword)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(tx, user.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), converter.UserToResponse(user)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.authResponse(ctx, user)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// Find user by email (read-only, no transaction needed)
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), entity.NormalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	res, err := u.authResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	// A lost login audit entry does not block the login itself
	if err := u.auditService.LogEvent(ctx, u.db, user.ID, entity.AuditActionUserLogin, entity.JSON{"email": user.Email}); err != nil {
		u.log.Warnf("Failed to audit login for user %s: %+v", user.ID, err)
	}

	return res, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, refreshToken string) error {
	// A bad refresh token fails the whole logout before anything is revoked
	var refreshTokenID string
	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err != nil || claims.TokenType != jwt.RefreshToken || claims.UserID != userID {
			return ErrInvalidToken
		}
		refreshTokenID = claims.TokenID
	}

	if err := u.tokenStore.Revoke(ctx, userID, jwt.AccessToken, accessTokenID); err != nil {
		return err
	}

	if refreshTokenID != "" {
		if err := u.tokenStore.Revoke(ctx, userID, jwt.RefreshToken, refreshTokenID); err != nil {
			return err
		}
	}

	if err := u.auditService.LogEvent(ctx, u.db, userID, entity.AuditActionUserLogout, nil); err != nil {
		u.log.Warnf("Failed to audit logout for user %s: %+v", userID, err)
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenStore.Exists(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !exists {
		// A rotated refresh token came back: end every session of the user
		if err := u.tokenStore.RevokeAll(ctx, claims.UserID); err != nil {
			u.log.Warnf("Failed to revoke tokens for user %s: %+v", claims.UserID, err)
		}
		return nil, ErrTokenRevoked
	}

	// Refresh tokens are single use
	if err := u.tokenStore.Revoke(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) authResponse(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	tokens, err := u.issueTokens(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         *converter.UserToResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

// issueTokens signs a new token pair and records both in the allow-list.
func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, userID, jwt.AccessToken, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		return nil, err
	}
	if err := u.tokenStore.Store(ctx, userID, jwt.RefreshToken, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
