package events

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"eventconnect/filemgr"
	"eventconnect/models"
)

// Uploader stores one uploaded file and returns its public URL.
type Uploader interface {
	Upload(file multipart.File, header *multipart.FileHeader, entity filemgr.EntityType, pic filemgr.PictureType) (string, error)
}

type filemgrUploader struct{}

func (filemgrUploader) Upload(file multipart.File, header *multipart.FileHeader, entity filemgr.EntityType, pic filemgr.PictureType) (string, error) {
	name, err := filemgr.SaveFileForEntity(file, header, entity, pic)
	if err != nil {
		return "", err
	}
	return filemgr.PublicPath(entity, pic, name), nil
}

// DefaultUploader is swapped out in tests.
var DefaultUploader Uploader = filemgrUploader{}

// PendingAsset is one file waiting to be stored, tagged with the slot
// it came from so the result can be written back to the right field.
type PendingAsset struct {
	Slot     string
	TargetID string
	Entity   filemgr.EntityType
	Pic      filemgr.PictureType
	Header   *multipart.FileHeader
}

// UploadResult pairs a resolved public URL with the slot it fills.
type UploadResult struct {
	Slot     string
	TargetID string
	URL      string
}

// CollectAssets scans the multipart form for the asset slots an event
// carries. Unknown part names are ignored.
func CollectAssets(r *http.Request) []PendingAsset {
	var assets []PendingAsset
	if r.MultipartForm == nil {
		return assets
	}

	for name, headers := range r.MultipartForm.File {
		for _, header := range headers {
			switch {
			case name == "banner":
				assets = append(assets, PendingAsset{Slot: "banner", Entity: filemgr.EntityEvent, Pic: filemgr.PicBanner, Header: header})
			case name == "poster":
				assets = append(assets, PendingAsset{Slot: "poster", Entity: filemgr.EntityEvent, Pic: filemgr.PicPoster, Header: header})
			case name == "gallery":
				assets = append(assets, PendingAsset{Slot: "gallery", Entity: filemgr.EntityEvent, Pic: filemgr.PicPhoto, Header: header})
			case name == "document":
				assets = append(assets, PendingAsset{Slot: "document", Entity: filemgr.EntityEvent, Pic: filemgr.PicDocument, Header: header})
			case strings.HasPrefix(name, "speaker_image:"):
				assets = append(assets, PendingAsset{Slot: "speaker_image", TargetID: strings.TrimPrefix(name, "speaker_image:"), Entity: filemgr.EntitySpeaker, Pic: filemgr.PicPhoto, Header: header})
			case strings.HasPrefix(name, "sponsor_logo:"):
				assets = append(assets, PendingAsset{Slot: "sponsor_logo", TargetID: strings.TrimPrefix(name, "sponsor_logo:"), Entity: filemgr.EntitySponsor, Pic: filemgr.PicLogo, Header: header})
			}
		}
	}
	return assets
}

// ResolveAll uploads every pending asset concurrently. Either every
// asset resolves and the results are returned, or the first error is
// reported and no result is handed back, so the event document never
// references a half-uploaded set. Each goroutine writes into its own
// pre-sized slot, so results keep the submission order of the assets
// no matter which upload finishes first.
func ResolveAll(assets []PendingAsset, up Uploader) ([]UploadResult, error) {
	if len(assets) == 0 {
		return nil, nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]UploadResult, len(assets))
		errs    []error
	)

	for i, asset := range assets {
		wg.Add(1)
		go func(i int, a PendingAsset) {
			defer wg.Done()

			file, err := a.Header.Open()
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("open %s: %w", a.Slot, err))
				mu.Unlock()
				return
			}

			url, err := up.Upload(file, a.Header, a.Entity, a.Pic)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("upload %s: %w", a.Slot, err))
				mu.Unlock()
				return
			}
			results[i] = UploadResult{Slot: a.Slot, TargetID: a.TargetID, URL: url}
		}(i, asset)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return results, nil
}

// ApplyAssets writes resolved URLs onto the event aggregate.
func ApplyAssets(event *models.Event, results []UploadResult) {
	for _, res := range results {
		switch res.Slot {
		case "banner":
			event.BannerURL = res.URL
		case "poster":
			event.ImageURL = res.URL
		case "gallery":
			event.Materials.GalleryImages = append(event.Materials.GalleryImages, res.URL)
		case "document":
			event.Materials.Documents = append(event.Materials.Documents, res.URL)
		case "speaker_image":
			for i := range event.Speakers {
				if event.Speakers[i].ID == res.TargetID {
					event.Speakers[i].ImageURL = res.URL
				}
			}
		case "sponsor_logo":
			for i := range event.Sponsors {
				if event.Sponsors[i].ID == res.TargetID {
					event.Sponsors[i].LogoURL = res.URL
				}
			}
		}
	}
}
