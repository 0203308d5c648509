package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectKey builds a unique key "<prefix>/<owner>/<uuid><ext>".
func ObjectKey(prefix, ownerHex, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(prefix, ownerHex, uuid.NewString()+ext)
}

// OwnedBy reports whether key was issued by ObjectKey for this prefix and owner.
func OwnedBy(key, prefix, ownerHex string) bool {
	return strings.HasPrefix(key, path.Join(prefix, ownerHex)+"/")
}

// ExtensionForContentType maps common upload MIME types to file extensions.
func ExtensionForContentType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/json":
		return ".json"
	default:
		return ""
	}
}
