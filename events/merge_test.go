package events

import (
	"testing"

	"eventconnect/models"

	"github.com/stretchr/testify/assert"
)

func existingWithAssets() *models.Event {
	return &models.Event{
		BannerURL: "/old-banner.jpg",
		ImageURL:  "/old-poster.jpg",
		Materials: models.Materials{
			GalleryImages: []string{"/g1.jpg", "/g2.jpg"},
			Documents:     []string{"/agenda.pdf"},
		},
	}
}

func TestCarryForwardAssetsKeepsOmittedFields(t *testing.T) {
	event := &models.Event{Title: "Go Conference"}
	payload := []byte(`{"title":"Go Conference"}`)

	carryForwardAssets(event, existingWithAssets(), payload)

	assert.Equal(t, "/old-banner.jpg", event.BannerURL)
	assert.Equal(t, "/old-poster.jpg", event.ImageURL)
	assert.Equal(t, []string{"/g1.jpg", "/g2.jpg"}, event.Materials.GalleryImages)
	assert.Equal(t, []string{"/agenda.pdf"}, event.Materials.Documents)
}

func TestCarryForwardAssetsHonorsExplicitClear(t *testing.T) {
	event := &models.Event{Title: "Go Conference"}
	payload := []byte(`{"title":"Go Conference","bannerUrl":"","materials":{"galleryImages":[],"documents":[]}}`)

	carryForwardAssets(event, existingWithAssets(), payload)

	assert.Empty(t, event.BannerURL, "an explicit empty banner must clear it")
	assert.Empty(t, event.Materials.GalleryImages, "an explicit empty gallery must clear it")
	assert.Empty(t, event.Materials.Documents)
	// imageUrl was omitted, so it is still carried forward
	assert.Equal(t, "/old-poster.jpg", event.ImageURL)
}

func TestCarryForwardAssetsKeepsNewValues(t *testing.T) {
	event := &models.Event{
		BannerURL: "/new-banner.jpg",
		Materials: models.Materials{GalleryImages: []string{"/new.jpg"}},
	}
	payload := []byte(`{"bannerUrl":"/new-banner.jpg","materials":{"galleryImages":["/new.jpg"]}}`)

	carryForwardAssets(event, existingWithAssets(), payload)

	assert.Equal(t, "/new-banner.jpg", event.BannerURL)
	assert.Equal(t, []string{"/new.jpg"}, event.Materials.GalleryImages)
	// documents omitted inside materials, so the old list survives
	assert.Equal(t, []string{"/agenda.pdf"}, event.Materials.Documents)
}
