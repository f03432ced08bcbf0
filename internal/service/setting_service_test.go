//go:build unit

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-sites-app/internal/config"
	"go-sites-app/internal/data"
	"go-sites-app/internal/translate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperTranslator struct{}

func (u *upperTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return strings.ToUpper(text) + " [" + targetLanguage + "]", nil
}

func newSettingFixture(tr Translator) *SettingService {
	store := data.NewMemoryStore()
	return NewSettingService(store.Settings(), tr, &stubRecorder{})
}

func TestUpsertSetting(t *testing.T) {
	svc := newSettingFixture(&upperTranslator{})
	ctx := context.Background()

	_, err := svc.UpsertSetting(ctx, "", "pt", "v", 1)
	assert.True(t, IsValidationError(err))
	_, err = svc.UpsertSetting(ctx, "footer.tagline", "xx", "v", 1)
	assert.True(t, IsValidationError(err))

	first, err := svc.UpsertSetting(ctx, "footer.tagline", "pt", "Confiança", 1)
	require.NoError(t, err)

	// Same key+language overwrites in place.
	second, err := svc.UpsertSetting(ctx, "footer.tagline", "pt", "Confiança total", 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Confiança total", second.Value)

	// Another language is a separate row.
	other, err := svc.UpsertSetting(ctx, "footer.tagline", "en", "Trust", 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	pt, err := svc.ListSettings(ctx, "pt")
	require.NoError(t, err)
	assert.Len(t, pt, 1)
	all, err := svc.ListSettings(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTranslateSetting(t *testing.T) {
	svc := newSettingFixture(&upperTranslator{})
	ctx := context.Background()

	_, err := svc.TranslateSetting(ctx, "", "en")
	assert.True(t, IsValidationError(err))
	_, err = svc.TranslateSetting(ctx, "Olá", "xx")
	assert.True(t, IsValidationError(err))

	got, err := svc.TranslateSetting(ctx, "Olá", "en")
	require.NoError(t, err)
	assert.Equal(t, "OLÁ [en]", got)
}

func TestTranslateSetting_FailsClosedWithoutKey(t *testing.T) {
	// A real client without an API key refuses to translate.
	svc := newSettingFixture(translate.New(config.TranslatorConfig{}))

	_, err := svc.TranslateSetting(context.Background(), "Olá", "en")
	assert.True(t, errors.Is(err, translate.ErrUnavailable))
}

func TestContactInfo_DefaultsToEmptyObject(t *testing.T) {
	svc := newSettingFixture(&upperTranslator{})
	ctx := context.Background()

	info, err := svc.ContactInfo(ctx)
	require.NoError(t, err)
	assert.Empty(t, info)

	saved, err := svc.UpdateContactInfo(ctx, data.JSONMap{"email": "hello@trustness.com.br"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello@trustness.com.br", saved["email"])

	info, err = svc.ContactInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello@trustness.com.br", info["email"])
}
