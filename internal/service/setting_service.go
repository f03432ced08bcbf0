package service

import (
	"context"
	"encoding/json"
	"go-sites-app/internal/data"
)

// contactInfoKey scopes the shared contact block inside the settings table.
// It is language-agnostic, hence the "global" language tag.
const (
	contactInfoKey      = "contact_info"
	contactInfoLanguage = "global"
)

// SettingRepository defines the storage interface for key+language settings.
type SettingRepository interface {
	Get(ctx context.Context, key, language string) (*data.Setting, error)
	List(ctx context.Context, language string) ([]*data.Setting, error)
	Upsert(ctx context.Context, key, language, value string) (*data.Setting, error)
}

// Translator produces a best-effort machine translation of a UI string.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// SettingService manages translatable UI strings and the static contact
// block the frontends render in their footers.
type SettingService struct {
	repo       SettingRepository
	translator Translator
	activity   Recorder
}

// NewSettingService creates a new SettingService.
func NewSettingService(repo SettingRepository, translator Translator, activity Recorder) *SettingService {
	return &SettingService{repo: repo, translator: translator, activity: activity}
}

// ListSettings returns settings, optionally restricted to one language.
func (s *SettingService) ListSettings(ctx context.Context, language string) ([]*data.Setting, error) {
	return s.repo.List(ctx, language)
}

// UpsertSetting stores a value by key and language.
func (s *SettingService) UpsertSetting(ctx context.Context, key, language, value string, userID int64) (*data.Setting, error) {
	if key == "" {
		return nil, ValidationError("setting key is required")
	}
	if !data.IsValidLanguage(language) {
		return nil, ValidationError("invalid language")
	}
	setting, err := s.repo.Upsert(ctx, key, language, value)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, userID, "upsert", "setting", setting.ID,
		data.JSONMap{"key": key, "language": language})
	return setting, nil
}

// TranslateSetting translates a UI string into the target language via the
// external model API. It fails closed when the client is not configured.
func (s *SettingService) TranslateSetting(ctx context.Context, text, targetLanguage string) (string, error) {
	if text == "" {
		return "", ValidationError("text is required")
	}
	if !data.IsValidLanguage(targetLanguage) {
		return "", ValidationError("invalid target language")
	}
	return s.translator.Translate(ctx, text, targetLanguage)
}

// ContactInfo returns the shared contact block, or an empty object when none
// has been stored yet.
func (s *SettingService) ContactInfo(ctx context.Context) (data.JSONMap, error) {
	setting, err := s.repo.Get(ctx, contactInfoKey, contactInfoLanguage)
	if err != nil {
		if data.IsNotFound(err) {
			return data.JSONMap{}, nil
		}
		return nil, err
	}
	var info data.JSONMap
	if err := json.Unmarshal([]byte(setting.Value), &info); err != nil {
		return nil, err
	}
	return info, nil
}

// UpdateContactInfo replaces the shared contact block.
func (s *SettingService) UpdateContactInfo(ctx context.Context, info data.JSONMap, userID int64) (data.JSONMap, error) {
	raw, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	setting, err := s.repo.Upsert(ctx, contactInfoKey, contactInfoLanguage, string(raw))
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, userID, "update", "setting", setting.ID,
		data.JSONMap{"key": contactInfoKey})
	return info, nil
}
