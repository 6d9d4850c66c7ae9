package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/validation"
)

// SettingService handles process-wide key/value settings. Values are
// stored as strings; numeric reads parse with a caller-supplied fallback.
type SettingService struct {
	repo *repository.SettingRepository
	qc   cache.Store
}

// NewSettingService creates the setting service
func NewSettingService(repo *repository.SettingRepository, qc cache.Store) *SettingService {
	return &SettingService{repo: repo, qc: qc}
}

// List returns all settings by key
func (s *SettingService) List(ctx context.Context) ([]entity.Setting, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagSetting, "list"), func(ctx context.Context) ([]entity.Setting, error) {
		return s.repo.FindAll(ctx)
	})
}

// Get returns one setting by key
func (s *SettingService) Get(ctx context.Context, key string) (*entity.Setting, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagSetting, "key", key), func(ctx context.Context) (*entity.Setting, error) {
		return s.repo.FindByKey(ctx, key)
	})
}

// GetNumber reads a setting as a float. A missing key or an unparseable
// value yields the fallback, never an error.
func (s *SettingService) GetNumber(ctx context.Context, key string, fallback float64) float64 {
	setting, err := s.Get(ctx, key)
	if err != nil {
		return fallback
	}
	v, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return fallback
	}
	return v
}

// Set upserts one setting
func (s *SettingService) Set(ctx context.Context, key, value string) (*entity.Setting, error) {
	errs := validation.Errors{}
	validation.Required(errs, "key", "Key", key)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	setting := &entity.Setting{Key: validation.Clean(key), Value: value}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("save setting: %w", err)
	}

	invalidate(ctx, s.qc, TagSetting, setting.Key, "updated")
	return setting, nil
}

// SetAll upserts a batch of settings in one call
func (s *SettingService) SetAll(ctx context.Context, values map[string]string) ([]entity.Setting, error) {
	errs := validation.Errors{}
	for key := range values {
		validation.Required(errs, "key", "Key", key)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	saved := make([]entity.Setting, 0, len(values))
	for key, value := range values {
		setting := &entity.Setting{Key: validation.Clean(key), Value: value}
		if err := s.repo.Upsert(ctx, setting); err != nil {
			return nil, fmt.Errorf("save setting %q: %w", key, err)
		}
		saved = append(saved, *setting)
	}

	invalidate(ctx, s.qc, TagSetting, "", "updated")
	return saved, nil
}
