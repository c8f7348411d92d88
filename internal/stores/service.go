package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexofaq/nexofaq-backend/pkg/db/models"
	pkgerrors "github.com/nexofaq/nexofaq-backend/pkg/errors"
	"github.com/nexofaq/nexofaq-backend/pkg/logger"
	"github.com/nexofaq/nexofaq-backend/pkg/nuvemshop"
	"gorm.io/gorm"
)

type storeRepository interface {
	FindByStoreID(ctx context.Context, storeID uint64) (*models.Store, error)
	Upsert(ctx context.Context, dto UpsertStoreDTO) (*models.Store, error)
}

type oauthClient interface {
	Authorize(ctx context.Context, code string) (*nuvemshop.Authorization, error)
	FetchStoreName(ctx context.Context, storeID uint64, accessToken string) (string, error)
}

// Service exposes tenant resolution and installation.
type Service interface {
	Resolve(ctx context.Context, storeID uint64) (*StoreDTO, error)
	Credentials(ctx context.Context, storeID uint64) (*CredentialsDTO, error)
	Install(ctx context.Context, code string) (*StoreDTO, error)
}

type service struct {
	repo  storeRepository
	oauth oauthClient
	logg  *logger.Logger
}

// NewService builds a store service with the provided dependencies.
func NewService(repo storeRepository, oauth oauthClient, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if oauth == nil {
		return nil, fmt.Errorf("oauth client required")
	}
	return &service{repo: repo, oauth: oauth, logg: logg}, nil
}

func (s *service) Resolve(ctx context.Context, storeID uint64) (*StoreDTO, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) Credentials(ctx context.Context, storeID uint64) (*CredentialsDTO, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &CredentialsDTO{StoreID: store.StoreID, AccessToken: store.AccessToken}, nil
}

func (s *service) Install(ctx context.Context, code string) (*StoreDTO, error) {
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authorization code is required")
	}

	auth, err := s.oauth.Authorize(ctx, code)
	if err != nil {
		return nil, err
	}

	store, err := s.upsertFromAuthorization(ctx, auth)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

// upsertFromAuthorization persists the tenant row for a completed OAuth
// exchange. The store name lookup is best effort; installation never fails
// because of it.
func (s *service) upsertFromAuthorization(ctx context.Context, auth *nuvemshop.Authorization) (*models.Store, error) {
	if auth == nil || auth.StoreID == 0 || auth.AccessToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "authorization payload is incomplete")
	}

	dto := UpsertStoreDTO{
		StoreID:     auth.StoreID,
		AccessToken: auth.AccessToken,
		StoreData:   auth.Raw,
	}
	if auth.RefreshToken != "" {
		refresh := auth.RefreshToken
		dto.RefreshToken = &refresh
	}
	if auth.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(auth.ExpiresIn) * time.Second)
		dto.TokenExpiresAt = &expiresAt
	}

	if name, err := s.oauth.FetchStoreName(ctx, auth.StoreID, auth.AccessToken); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithStoreID(ctx, auth.StoreID), "store name lookup failed during install")
		}
	} else if name != "" {
		dto.StoreName = &name
	}

	store, err := s.repo.Upsert(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert store")
	}
	return store, nil
}

func (s *service) loadStore(ctx context.Context, storeID uint64) (*models.Store, error) {
	if storeID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	store, err := s.repo.FindByStoreID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not installed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return store, nil
}
