package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

type EntityType string
type PictureType string

const (
	EntityEvent   EntityType = "event"
	EntityUser    EntityType = "user"
	EntitySpeaker EntityType = "speaker"
	EntitySponsor EntityType = "sponsor"

	PicBanner   PictureType = "banner"
	PicPoster   PictureType = "poster"
	PicPhoto    PictureType = "photo"
	PicLogo     PictureType = "logo"
	PicThumb    PictureType = "thumb"
	PicDocument PictureType = "document"
)

var (
	AllowedExtensions = map[PictureType][]string{
		PicPhoto:    {".jpg", ".jpeg", ".png", ".gif", ".webp"},
		PicThumb:    {".jpg"},
		PicPoster:   {".jpg", ".jpeg", ".png"},
		PicBanner:   {".jpg", ".jpeg", ".png"},
		PicLogo:     {".jpg", ".jpeg", ".png", ".webp"},
		PicDocument: {".pdf", ".doc", ".docx", ".txt"},
	}

	AllowedMIMEs = map[PictureType][]string{
		PicPhoto:  {"image/jpeg", "image/png", "image/gif", "image/webp"},
		PicThumb:  {"image/jpeg"},
		PicPoster: {"image/jpeg", "image/png"},
		PicBanner: {"image/jpeg", "image/png"},
		PicLogo:   {"image/jpeg", "image/png", "image/webp"},
		PicDocument: {
			"application/pdf", "application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
		},
	}

	PictureSubfolders = map[PictureType]string{
		PicBanner:   "banner",
		PicPoster:   "poster",
		PicPhoto:    "photo",
		PicLogo:     "logo",
		PicThumb:    "thumb",
		PicDocument: "docs",
	}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

// SaveFile saves a file to disk with extension and MIME validation.
func SaveFile(reader io.Reader, header *multipart.FileHeader, destDir string, maxSize int64, customNameFn func(original string) string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	picType := detectPicType(destDir)
	if picType == "" {
		return "", fmt.Errorf("unknown picture type for folder: %s", destDir)
	}

	if !isExtensionAllowed(ext, picType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidExtension, ext, picType)
	}

	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read header: %w", err)
	}
	mimeType := http.DetectContentType(buf[:n])

	if mimeType == "application/octet-stream" {
		if formMime := header.Header.Get("Content-Type"); formMime != "" {
			mimeType = formMime
		}
	}

	if !isMIMEAllowed(mimeType, picType) {
		return "", fmt.Errorf("%w: %s for %s", ErrInvalidMIME, mimeType, picType)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", destDir, err)
	}

	filename := ""
	if customNameFn != nil {
		filename = strings.TrimSpace(customNameFn(header.Filename))
	}
	if filename == "" {
		filename = uuid.New().String() + ext
	} else {
		filename = ensureSafeFilename(filename, ext)
	}

	fullPath := filepath.Join(destDir, filename)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", fullPath, err)
	}
	defer out.Close()

	if _, err := out.Write(buf[:n]); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	written, err := io.Copy(out, io.LimitReader(reader, maxSize-int64(n)))
	if err != nil {
		return "", fmt.Errorf("write body: %w", err)
	}
	if maxSize > 0 && written+int64(n) > maxSize {
		return "", ErrFileTooLarge
	}

	return filename, nil
}

// SaveFileForEntity stores an upload under the entity's folder; images
// are re-encoded (EXIF dropped) and get a thumbnail.
func SaveFileForEntity(file multipart.File, header *multipart.FileHeader, entity EntityType, picType PictureType) (string, error) {
	defer file.Close()
	dest := ResolvePath(entity, picType)

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	if isImageType(picType) {
		img, _, err := image.Decode(bytes.NewReader(buf))
		if err == nil {
			if strip, err := stripEXIF(img); err == nil {
				buf = strip.Bytes()
			}

			fileName, err := SaveFile(bytes.NewReader(buf), header, dest, 10<<20, nil)
			if err != nil {
				return "", err
			}

			_ = generateThumbnail(img, entity, fileName)
			recordUpload(entity, picType, fileName)
			return fileName, nil
		}
		// fallback to normal save if decode fails
	}

	fileName, err := SaveFile(bytes.NewReader(buf), header, dest, 10<<20, nil)
	if err != nil {
		return "", err
	}
	recordUpload(entity, picType, fileName)
	return fileName, nil
}

// PublicPath returns the URL path a saved file is served under.
func PublicPath(entity EntityType, picType PictureType, filename string) string {
	return "/" + strings.ReplaceAll(filepath.Join(ResolvePath(entity, picType), filename), string(os.PathSeparator), "/")
}

func stripEXIF(img image.Image) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf, nil
}

func generateThumbnail(img image.Image, entity EntityType, baseFilename string) error {
	resized := imaging.Resize(img, 200, 0, imaging.Lanczos) // maintain aspect ratio
	name := strings.TrimSuffix(baseFilename, filepath.Ext(baseFilename)) + ".jpg"
	path := filepath.Join(ResolvePath(entity, PicThumb), name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}

func detectPicType(destDir string) PictureType {
	parts := strings.Split(destDir, string(os.PathSeparator))
	if len(parts) == 0 {
		return ""
	}
	last := strings.ToLower(parts[len(parts)-1])
	for picType, folder := range PictureSubfolders {
		if folder == last {
			return picType
		}
	}
	return ""
}

func ensureSafeFilename(name, ext string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	reg := regexp.MustCompile(`[^a-zA-Z0-9_\-]`)
	name = reg.ReplaceAllString(name, "")
	return name + ext
}

func isExtensionAllowed(ext string, picType PictureType) bool {
	for _, a := range AllowedExtensions[picType] {
		if ext == a {
			return true
		}
	}
	return false
}

func isMIMEAllowed(mimeType string, picType PictureType) bool {
	for _, a := range AllowedMIMEs[picType] {
		if mimeType == a {
			return true
		}
	}
	return false
}

func ResolvePath(entity EntityType, picType PictureType) string {
	subfolder := PictureSubfolders[picType]
	if subfolder == "" {
		subfolder = "misc"
	}
	return filepath.Join("static", "uploads", strings.ToLower(string(entity)), subfolder)
}

func isImageType(picType PictureType) bool {
	switch picType {
	case PicBanner, PicPoster, PicPhoto, PicLogo:
		return true
	default:
		return false
	}
}
