package render

import (
	"fmt"
	"strings"

	"github.com/globalite/go-macrobrief/internal/sheet"
)

const (
	defaultExtraImages = 6
	maxExtraImages     = 20
)

// remoteImagePrefixes mark sources that embed or link out directly and
// must never be joined against a local root.
var remoteImagePrefixes = []string{"http://", "https://", "data:", "cid:"}

// ImageOptions address point images through an alternate storage backend
// instead of the local image directory.
type ImageOptions struct {
	BackendEnabled   bool
	BackendPrefix    string
	BackendExtension string
}

// ResolveImagePath picks the lead image source for a point: an explicit
// path wins, else a filename synthesized from the point order when the
// auto-image flag is on. The candidate is routed through the remote and
// join rules; empty means the point renders without a lead image.
func ResolveImagePath(point sheet.Point, meta map[string]string, images ImageOptions) string {
	candidate := strings.TrimSpace(point.ImagePath)
	if candidate == "" {
		if !sheet.ParseBool(meta["auto_image_by_order"]) {
			return ""
		}
		candidate = fmt.Sprintf("%d.%s", point.Order, autoImageExtension(images))
	}
	return finishImagePath(candidate, meta, images)
}

// ResolveExtraImages synthesizes the secondary image sources order.1.ext
// through order.cap.ext, routed through the same remote and join rules.
// Only active when the auto-image flag is on.
func ResolveExtraImages(point sheet.Point, meta map[string]string, images ImageOptions) []string {
	if !sheet.ParseBool(meta["auto_image_by_order"]) {
		return nil
	}
	limit := extraImageCap(meta)
	if limit == 0 {
		return nil
	}
	ext := autoImageExtension(images)
	sources := make([]string, 0, limit)
	for i := 1; i <= limit; i++ {
		candidate := fmt.Sprintf("%d.%d.%s", point.Order, i, ext)
		sources = append(sources, finishImagePath(candidate, meta, images))
	}
	return sources
}

// extraImageCap reads max_extra_images, clamped to [0, 20].
func extraImageCap(meta map[string]string) int {
	limit := int(sheet.ParseNumber(meta["max_extra_images"], defaultExtraImages))
	if limit < 0 {
		return 0
	}
	if limit > maxExtraImages {
		return maxExtraImages
	}
	return limit
}

// autoImageExtension is the extension for synthesized filenames: the
// backend extension when the backend is active and carries one, else png.
func autoImageExtension(images ImageOptions) string {
	if images.BackendEnabled && images.BackendExtension != "" {
		return images.BackendExtension
	}
	return "png"
}

// finishImagePath routes a candidate source: remote sources pass through
// unmodified, backend-addressed sources join the backend prefix, local
// sources join the configured base URL or image directory. An image
// directory of "" or "." leaves the bare name in place.
func finishImagePath(candidate string, meta map[string]string, images ImageOptions) string {
	for _, prefix := range remoteImagePrefixes {
		if strings.HasPrefix(candidate, prefix) {
			return candidate
		}
	}
	if images.BackendEnabled {
		return joinImagePath(images.BackendPrefix, candidate)
	}
	if base := strings.TrimSpace(meta["image_base_url"]); base != "" {
		return joinImagePath(base, candidate)
	}
	dir := strings.TrimSpace(meta["image_dir"])
	if dir == "" || dir == "." {
		return candidate
	}
	return joinImagePath(dir, candidate)
}

// joinImagePath joins with exactly one slash between the parts.
func joinImagePath(prefix, path string) string {
	prefix = strings.TrimRight(prefix, "/")
	path = strings.TrimLeft(path, "/")
	if prefix == "" {
		return path
	}
	return prefix + "/" + path
}
