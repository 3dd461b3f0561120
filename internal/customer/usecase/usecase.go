package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/customer"
	"github.com/fekuna/omnipos-storefront-service/internal/customer/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/message"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("name and phone are required")
	ErrInvalidToken = errors.New("invalid customer token")
	// ErrForeignStore is returned for a valid token issued by another store.
	ErrForeignStore = errors.New("customer session belongs to another store")
)

type sessionClaims struct {
	StoreID string `json:"store_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	jwt.RegisteredClaims
}

type customerUseCase struct {
	repo   customer.Repository
	secret []byte
	ttl    time.Duration
	logger logger.ZapLogger
	now    func() time.Time
}

func NewCustomerUseCase(repo customer.Repository, secret string, ttl time.Duration, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		logger: log,
		now:    time.Now,
	}
}

func (uc *customerUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*dto.SessionResponse, error) {
	name := strings.TrimSpace(input.Name)
	phone := message.SanitizePhone(input.Phone)
	if name == "" || phone == "" || input.StoreID == "" {
		return nil, ErrInvalidInput
	}

	s, err := uc.repo.FindSession(ctx, input.StoreID, phone)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &model.CustomerSession{
			ID:        uuid.New().String(),
			StoreID:   input.StoreID,
			Phone:     phone,
			CreatedAt: uc.now(),
		}
	}
	s.Name = name

	if err := uc.repo.SaveSession(ctx, s); err != nil {
		uc.logger.Error("failed to save customer session", zap.String("store_id", input.StoreID), zap.Error(err))
		return nil, err
	}

	token, err := uc.sign(s)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Session: s, Token: token}, nil
}

func (uc *customerUseCase) Identify(ctx context.Context, token, storeID string) (*model.CustomerSession, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return uc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.StoreID != storeID {
		return nil, ErrForeignStore
	}

	return &model.CustomerSession{
		ID:      claims.Subject,
		Name:    claims.Name,
		Phone:   claims.Phone,
		StoreID: claims.StoreID,
	}, nil
}

func (uc *customerUseCase) SaveContact(ctx context.Context, browserSessionID string, c *model.Contact) error {
	return uc.repo.SaveContact(ctx, browserSessionID, &model.Contact{
		Name:  strings.TrimSpace(c.Name),
		Phone: message.SanitizePhone(c.Phone),
	})
}

func (uc *customerUseCase) GetContact(ctx context.Context, browserSessionID string) (*model.Contact, error) {
	return uc.repo.GetContact(ctx, browserSessionID)
}

func (uc *customerUseCase) sign(s *model.CustomerSession) (string, error) {
	now := uc.now()
	claims := sessionClaims{
		StoreID: s.StoreID,
		Name:    s.Name,
		Phone:   s.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
}
