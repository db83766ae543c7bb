// service/asset_service.go
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	mg_errors "github.com/campusweb/mediagate/errors"
	logger "github.com/campusweb/mediagate/logging"
	"github.com/campusweb/mediagate/model"
	pdp_model "github.com/campusweb/mediagate/pdp/model"
	"github.com/campusweb/mediagate/util"
)

// sizeSuffixRe matches the trailing render-size suffix of a media path,
// e.g. "photo-150x150.jpg". Paths without it request the original object.
var sizeSuffixRe = regexp.MustCompile(`-(\d+)x(\d+)\.(jpg|jpeg|png|gif)$`)

// ObjectStore is the blob storage surface the asset service needs.
type ObjectStore interface {
	GetObject(ctx context.Context, key string) (*model.StoredObject, error)
	PutObject(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error
}

// SizeTableReader resolves the per-site render size presets.
type SizeTableReader interface {
	GetSizeTable(ctx context.Context, domain, siteName string) (model.SizeTable, error)
}

type IAssetService interface {
	GetOrCreate(ctx context.Context, reqCtx model.RequestContext, site pdp_model.SiteContext) (*model.StoredObject, error)
}

// AssetService serves originals directly and derives sized variants
// lazily, persisting each render under its derived key for reuse.
type AssetService struct {
	objects      ObjectStore
	sizes        SizeTableReader
	eventBus     *util.EventBus
	originalRoot string
	renderRoot   string
}

var _ IAssetService = (*AssetService)(nil)

func NewAssetService(objects ObjectStore, sizes SizeTableReader, eventBus *util.EventBus, originalRoot, renderRoot string) *AssetService {
	return &AssetService{
		objects:      objects,
		sizes:        sizes,
		eventBus:     eventBus,
		originalRoot: originalRoot,
		renderRoot:   renderRoot,
	}
}

// GetOrCreate returns the object for a request path. Paths without a size
// suffix fetch the original by key. Sized paths try the derived key first,
// then derive from the original; a path whose filename legitimately embeds
// dimensions is served as a literal original last.
func (s *AssetService) GetOrCreate(ctx context.Context, reqCtx model.RequestContext, site pdp_model.SiteContext) (*model.StoredObject, error) {
	path := reqCtx.Path
	match := sizeSuffixRe.FindStringSubmatch(path)

	if match == nil {
		return s.objects.GetObject(ctx, s.objectKey(s.originalRoot, site.Domain, path))
	}

	width, _ := strconv.Atoi(match[1])
	height, _ := strconv.Atoi(match[2])
	ext := match[3]

	crop := s.resolveCrop(ctx, reqCtx, site, width, height)

	derivedKey := s.derivedKey(site.Domain, path, crop, ext)
	obj, err := s.objects.GetObject(ctx, derivedKey)
	if err == nil {
		return obj, nil
	}
	if !errors.Is(err, mg_errors.ErrObjectNotFound) {
		return nil, err
	}

	originalPath := sizeSuffixRe.ReplaceAllString(path, ".${3}")
	originalKey := s.objectKey(s.originalRoot, site.Domain, originalPath)
	original, err := s.objects.GetObject(ctx, originalKey)
	if errors.Is(err, mg_errors.ErrObjectNotFound) {
		// Some assets were uploaded with dimensions already in the
		// filename; try the sized path as a literal original.
		return s.objects.GetObject(ctx, s.objectKey(s.originalRoot, site.Domain, path))
	}
	if err != nil {
		return nil, err
	}

	resized, err := s.resample(original.Body, width, height, crop, ext)
	if err != nil {
		logger.Error("Failed to resample original",
			zap.String("originalKey", originalKey),
			zap.Error(err))
		return nil, err
	}

	// The render is still good if the persist fails; the next request
	// simply derives it again.
	if err := s.objects.PutObject(ctx, derivedKey, resized, original.ContentType, map[string]string{
		"original-key": originalKey,
	}); err != nil {
		logger.Error("Failed to persist derived asset", zap.String("derivedKey", derivedKey), zap.Error(err))
	}

	s.eventBus.Publish(ctx, TopicAssetDerived, AssetDerivedEvent{
		Domain:      site.Domain,
		Path:        path,
		DerivedKey:  derivedKey,
		OriginalKey: originalKey,
		Width:       width,
		Height:      height,
		Crop:        crop,
	})

	return &model.StoredObject{Body: resized, ContentType: original.ContentType}, nil
}

// resolveCrop picks the crop alignment: an explicit resize-position query
// parameter wins over a matching site preset; neither means a default
// center resize.
func (s *AssetService) resolveCrop(ctx context.Context, reqCtx model.RequestContext, site pdp_model.SiteContext, width, height int) string {
	if reqCtx.CropParam != "" {
		return reqCtx.CropParam
	}

	table, err := s.sizes.GetSizeTable(ctx, site.Domain, site.SiteName)
	if err != nil {
		// Preset lookup failures degrade to a center crop; they never
		// fail the request.
		logger.Warn("Failed to load size table", zap.String("siteKey", site.SiteKey()), zap.Error(err))
		return ""
	}

	return CropString(FindPreset(table, width, height))
}

// objectKey joins a path root, domain, and decoded request path into a
// storage key, collapsing the double slash left by an empty domain.
func (s *AssetService) objectKey(root, domain, path string) string {
	key := root + "/" + domain + path
	return strings.ReplaceAll(key, "//", "/")
}

// derivedKey builds the render key. Crop anchors are embedded verbatim
// before the extension, so variants with different crops never collide.
func (s *AssetService) derivedKey(domain, path, crop, ext string) string {
	if crop == "" {
		return s.objectKey(s.renderRoot, domain, path)
	}
	withoutExt := path[:strings.LastIndex(path, ".")]
	return s.objectKey(s.renderRoot, domain, fmt.Sprintf("%s*crop-%s.%s", withoutExt, crop, ext))
}

// resample decodes, resizes, and re-encodes the original. Orientation is
// honored at decode time so the derived pixels match the displayed
// original. A crop resolves to a cover-fit against its anchor; height 0
// preserves the aspect ratio.
func (s *AssetService) resample(body []byte, width, height int, crop, ext string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode original: %w", err)
	}

	if height == 0 {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	} else {
		img = imaging.Fill(img, width, height, anchorFor(crop), imaging.Lanczos)
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", mg_errors.ErrUnsupportedFormat, ext)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("failed to encode render: %w", err)
	}
	return buf.Bytes(), nil
}

// anchorFor maps a comma-joined anchor list to the resampler's alignment.
// Unknown or empty input aligns center.
func anchorFor(crop string) imaging.Anchor {
	var vertical, horizontal string
	for _, anchor := range strings.Split(crop, ",") {
		switch strings.TrimSpace(anchor) {
		case "top", "bottom":
			vertical = strings.TrimSpace(anchor)
		case "left", "right":
			horizontal = strings.TrimSpace(anchor)
		}
	}

	switch vertical + "|" + horizontal {
	case "top|":
		return imaging.Top
	case "bottom|":
		return imaging.Bottom
	case "|left":
		return imaging.Left
	case "|right":
		return imaging.Right
	case "top|left":
		return imaging.TopLeft
	case "top|right":
		return imaging.TopRight
	case "bottom|left":
		return imaging.BottomLeft
	case "bottom|right":
		return imaging.BottomRight
	}
	return imaging.Center
}
