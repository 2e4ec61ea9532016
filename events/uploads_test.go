package events

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"eventconnect/filemgr"
	"eventconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu       sync.Mutex
	uploaded []string
	failOn   string
	delays   map[string]time.Duration
}

func (f *fakeUploader) Upload(file multipart.File, header *multipart.FileHeader, entity filemgr.EntityType, pic filemgr.PictureType) (string, error) {
	defer file.Close()
	if d := f.delays[header.Filename]; d > 0 {
		time.Sleep(d)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if header.Filename == f.failOn {
		return "", errors.New("disk full")
	}
	f.uploaded = append(f.uploaded, header.Filename)
	return "/static/uploads/" + string(entity) + "/" + header.Filename, nil
}

func buildMultipart(t *testing.T, files map[string][]string) []PendingAsset {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, names := range files {
		for _, name := range names {
			part, err := writer.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("content of " + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/events", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(10<<20))

	return CollectAssets(req)
}

func TestCollectAssetsMapsSlots(t *testing.T) {
	assets := buildMultipart(t, map[string][]string{
		"banner":            {"banner.jpg"},
		"gallery":           {"one.jpg", "two.jpg"},
		"speaker_image:s-1": {"ada.jpg"},
		"ignored_slot":      {"junk.bin"},
	})

	require.Len(t, assets, 4)

	slots := map[string]int{}
	for _, a := range assets {
		slots[a.Slot]++
		if a.Slot == "speaker_image" {
			assert.Equal(t, "s-1", a.TargetID)
		}
	}
	assert.Equal(t, map[string]int{"banner": 1, "gallery": 2, "speaker_image": 1}, slots)
}

func TestResolveAllUploadsEverything(t *testing.T) {
	assets := buildMultipart(t, map[string][]string{
		"banner":  {"banner.jpg"},
		"gallery": {"one.jpg", "two.jpg"},
	})

	up := &fakeUploader{}
	results, err := ResolveAll(assets, up)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Len(t, up.uploaded, 3)
}

func TestResolveAllKeepsSubmissionOrder(t *testing.T) {
	assets := buildMultipart(t, map[string][]string{
		"gallery": {"g1.jpg", "g2.jpg", "g3.jpg"},
	})

	// The first gallery file finishes last; its URL must still land
	// in the first gallery position.
	up := &fakeUploader{delays: map[string]time.Duration{"g1.jpg": 150 * time.Millisecond}}
	results, err := ResolveAll(assets, up)
	require.NoError(t, err)
	require.Len(t, results, 3)

	event := &models.Event{}
	ApplyAssets(event, results)
	assert.Equal(t, []string{
		"/static/uploads/event/g1.jpg",
		"/static/uploads/event/g2.jpg",
		"/static/uploads/event/g3.jpg",
	}, event.Materials.GalleryImages)
}

func TestResolveAllFailsClosed(t *testing.T) {
	assets := buildMultipart(t, map[string][]string{
		"banner":  {"banner.jpg"},
		"gallery": {"one.jpg", "two.jpg"},
	})

	up := &fakeUploader{failOn: "one.jpg"}
	results, err := ResolveAll(assets, up)
	require.Error(t, err)
	assert.Nil(t, results)
}

func TestResolveAllEmpty(t *testing.T) {
	results, err := ResolveAll(nil, &fakeUploader{})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestApplyAssetsRoutesURLs(t *testing.T) {
	event := &models.Event{
		Speakers: []models.Speaker{{ID: "s-1", Name: "Ada"}},
		Sponsors: []models.Sponsor{{ID: "p-1", Name: "Acme"}},
	}

	ApplyAssets(event, []UploadResult{
		{Slot: "banner", URL: "/b.jpg"},
		{Slot: "poster", URL: "/p.jpg"},
		{Slot: "gallery", URL: "/g1.jpg"},
		{Slot: "gallery", URL: "/g2.jpg"},
		{Slot: "document", URL: "/agenda.pdf"},
		{Slot: "speaker_image", TargetID: "s-1", URL: "/ada.jpg"},
		{Slot: "sponsor_logo", TargetID: "p-1", URL: "/acme.png"},
	})

	assert.Equal(t, "/b.jpg", event.BannerURL)
	assert.Equal(t, "/p.jpg", event.ImageURL)
	assert.Equal(t, []string{"/g1.jpg", "/g2.jpg"}, event.Materials.GalleryImages)
	assert.Equal(t, []string{"/agenda.pdf"}, event.Materials.Documents)
	assert.Equal(t, "/ada.jpg", event.Speakers[0].ImageURL)
	assert.Equal(t, "/acme.png", event.Sponsors[0].LogoURL)
}
