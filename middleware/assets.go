package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Static assets referenced by the landing page, relative to the static root
const (
	AssetCSS     = "css/style.css"
	AssetAppJS   = "js/app.js"
	AssetFavicon = "images/favicon.svg"
)

var (
	assetVersions     = map[string]string{}
	assetVersionsMu   sync.RWMutex
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(staticRoot string) {
	assetVersionsOnce.Do(func() {
		loadAssetVersions(staticRoot)
	})
}

func loadAssetVersions(staticRoot string) {
	versions := make(map[string]string)
	for _, asset := range []string{AssetCSS, AssetAppJS, AssetFavicon} {
		if version := computeFileHash(filepath.Join(staticRoot, asset)); version != "" {
			versions[asset] = version
		}
	}

	assetVersionsMu.Lock()
	assetVersions = versions
	assetVersionsMu.Unlock()
	log.Printf("[INFO] Asset versions initialized: %d files", len(versions))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the cache-busting version of a static asset, "1" when unknown
// Note: ctx is unused; it keeps the signature uniform for templates.
func GetAssetVersion(ctx context.Context, asset string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if version, ok := assetVersions[asset]; ok {
		return version
	}
	return "1"
}

// AssetURL returns the versioned URL of a static asset
func AssetURL(ctx context.Context, asset string) string {
	return "/static/" + asset + "?v=" + GetAssetVersion(ctx, asset)
}
