//go:build unit

package service

import (
	"context"
	"sync"
	"testing"

	"go-sites-app/internal/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentFixture() (*ContentService, *data.MemoryStore) {
	store := data.NewMemoryStore()
	svc := NewContentService(store.Contents(), store.Links(), &stubRecorder{})
	return svc, store
}

func strptr(s string) *string { return &s }

func TestGetContent_CreatedPairIsResolvable(t *testing.T) {
	svc, _ := newContentFixture()
	ctx := context.Background()

	_, err := svc.GetContent(ctx, "about", "en", "", FallbackGeneric)
	require.Error(t, err)
	assert.True(t, data.IsNotFound(err))

	_, err = svc.UpdateContent(ctx, "about", "en", ContentPatch{Title: strptr("About us")}, "", 1)
	require.NoError(t, err)

	got, err := svc.GetContent(ctx, "about", "en", "", FallbackGeneric)
	require.NoError(t, err)
	assert.Equal(t, "About us", got.Title)

	// A different language is a different pair.
	_, err = svc.GetContent(ctx, "about", "pt", "", FallbackGeneric)
	assert.True(t, data.IsNotFound(err))
}

func TestGetContent_BrandLinkedRowWins(t *testing.T) {
	svc, store := newContentFixture()
	ctx := context.Background()

	generic := &data.Content{PageID: "home", Language: "en", Title: "Generic"}
	_, err := store.Contents().Create(ctx, generic, "")
	require.NoError(t, err)
	linked := &data.Content{PageID: "home", Language: "en", Title: "Ness home"}
	_, err = store.Contents().Create(ctx, linked, data.SiteNess)
	require.NoError(t, err)

	got, err := svc.GetContent(ctx, "home", "en", data.SiteNess, FallbackGeneric)
	require.NoError(t, err)
	assert.Equal(t, "Ness home", got.Title)

	// No link for trustness, so the lookup falls back to the first row for
	// the pair regardless of brand.
	got, err = svc.GetContent(ctx, "home", "en", data.SiteTrustness, FallbackGeneric)
	require.NoError(t, err)
	assert.Equal(t, "Generic", got.Title)
}

func TestGetContent_StrictPolicyDoesNotFallBack(t *testing.T) {
	svc, store := newContentFixture()
	ctx := context.Background()

	_, err := store.Contents().Create(ctx, &data.Content{PageID: "home", Language: "en", Title: "Generic"}, "")
	require.NoError(t, err)

	_, err = svc.GetContent(ctx, "home", "en", data.SiteForense, FallbackStrict)
	require.Error(t, err)
	assert.True(t, data.IsNotFound(err))
}

func TestContentService_ConcurrentReadsAndWrites(t *testing.T) {
	svc, _ := newContentFixture()
	ctx := context.Background()

	_, err := svc.UpdateContent(ctx, "home", "pt", ContentPatch{Title: strptr("Bem-vindo")}, "", 1)
	require.NoError(t, err)

	// Run under -race: updates patch a fetched row while readers resolve it.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := svc.UpdateContent(ctx, "home", "pt", ContentPatch{Title: strptr("Atualizado")}, "", 1); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := svc.GetContent(ctx, "home", "pt", "", FallbackGeneric); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	wg.Wait()
}

func TestUpdateContent_CreatePathDefaultsAndLinks(t *testing.T) {
	svc, store := newContentFixture()
	ctx := context.Background()

	created, err := svc.UpdateContent(ctx, "services", "pt", ContentPatch{
		Body: strptr(`<p>ok</p><script>alert("x")</script>`),
	}, data.SiteTrustness, 1)
	require.NoError(t, err)

	// Title defaults to the page id, the body is sanitized, and the create
	// path links the new row to the requested brand.
	assert.Equal(t, "services", created.Title)
	assert.True(t, created.Published)
	assert.NotContains(t, created.Body, "<script>")
	assert.Contains(t, created.Body, "<p>ok</p>")

	exists, err := store.Links().Exists(ctx, created.ID, data.EntityContent, data.SiteTrustness)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUpdateContent_UpdatePathDoesNotLink(t *testing.T) {
	svc, store := newContentFixture()
	ctx := context.Background()

	created, err := svc.UpdateContent(ctx, "home", "pt", ContentPatch{Title: strptr("Original")}, "", 1)
	require.NoError(t, err)

	// An update addressed to a brand lands on the generic row via the
	// fallback read and does not create a link.
	updated, err := svc.UpdateContent(ctx, "home", "pt", ContentPatch{Title: strptr("Edited")}, data.SiteNess, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Edited", updated.Title)

	links, err := store.Links().ListForEntity(ctx, created.ID, data.EntityContent)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestAssociateContentToSite_Idempotent(t *testing.T) {
	svc, store := newContentFixture()
	ctx := context.Background()

	created, err := svc.UpdateContent(ctx, "home", "pt", ContentPatch{}, "", 1)
	require.NoError(t, err)

	require.NoError(t, svc.AssociateContentToSite(ctx, created.ID, data.SiteNess, 1))
	require.NoError(t, svc.AssociateContentToSite(ctx, created.ID, data.SiteNess, 1))

	links, err := store.Links().ListForEntity(ctx, created.ID, data.EntityContent)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestAssociateContentToSite_Validation(t *testing.T) {
	svc, _ := newContentFixture()
	ctx := context.Background()

	err := svc.AssociateContentToSite(ctx, 1, "nope", 1)
	assert.True(t, IsValidationError(err))

	err = svc.AssociateContentToSite(ctx, 999, data.SiteNess, 1)
	assert.True(t, data.IsNotFound(err))
}

func TestDeleteContent_PrunesLinks(t *testing.T) {
	svc, store := newContentFixture()
	ctx := context.Background()

	created, err := svc.UpdateContent(ctx, "home", "pt", ContentPatch{}, data.SiteNess, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteContent(ctx, created.ID, 1))

	_, err = svc.GetContent(ctx, "home", "pt", "", FallbackGeneric)
	assert.True(t, data.IsNotFound(err))
	links, err := store.Links().ListForEntity(ctx, created.ID, data.EntityContent)
	require.NoError(t, err)
	assert.Empty(t, links)
}

// End-to-end resolution scenario: a generic page leaks across brands until a
// brand-specific row exists.
func TestGetContent_CrossBrandFallbackScenario(t *testing.T) {
	svc, _ := newContentFixture()
	ctx := context.Background()

	created, err := svc.UpdateContent(ctx, "home", "pt", ContentPatch{Title: strptr("Bem-vindo")}, "", 1)
	require.NoError(t, err)

	got, err := svc.GetContent(ctx, "home", "pt", "", FallbackGeneric)
	require.NoError(t, err)
	assert.Equal(t, "Bem-vindo", got.Title)

	got, err = svc.GetContent(ctx, "home", "pt", data.SiteTrustness, FallbackGeneric)
	require.NoError(t, err)
	assert.Equal(t, "Bem-vindo", got.Title)

	// Linking the row to ness does not stop forense from seeing it through
	// the fallback.
	require.NoError(t, svc.AssociateContentToSite(ctx, created.ID, data.SiteNess, 1))

	got, err = svc.GetContent(ctx, "home", "pt", data.SiteForense, FallbackGeneric)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
