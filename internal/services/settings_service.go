package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/joshua-takyi/celebration/internal/models"
)

const maxSettingValueLength = 4096

type SettingsService struct {
	repo models.SettingsRepo
}

func NewSettingsService(repo models.SettingsRepo) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (models.SiteSettings, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return models.SiteSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return models.NewSiteSettings(all), nil
}

func (s *SettingsService) Set(ctx context.Context, key, value string) (*models.Setting, error) {
	if err := checkSetting(key, value); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, key, value)
}

func (s *SettingsService) SetMany(ctx context.Context, values map[string]string) (models.SiteSettings, error) {
	if len(values) == 0 {
		return models.SiteSettings{}, models.NewValidationError("body", "at least one setting is required")
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	verr := &models.ValidationError{}
	for _, k := range keys {
		if err := checkSetting(k, values[k]); err != nil {
			verr.Fields = append(verr.Fields, err.(*models.ValidationError).Fields...)
		}
	}
	if len(verr.Fields) > 0 {
		return models.SiteSettings{}, verr
	}
	if err := s.repo.UpsertMany(ctx, values); err != nil {
		return models.SiteSettings{}, err
	}
	return s.Get(ctx)
}

func checkSetting(key, value string) error {
	if !models.ValidSettingKey(key) {
		return models.NewValidationError(key, "setting key must start with a letter and contain only letters, digits, '.', '_' or '-'")
	}
	if len(value) > maxSettingValueLength {
		return models.NewValidationError(key, fmt.Sprintf("value must be at most %d bytes", maxSettingValueLength))
	}
	return nil
}
