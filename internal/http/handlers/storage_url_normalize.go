package handlers

import (
	"strings"

	"github.com/artcove/artcove-backend/internal/clients/gcp"
	types "github.com/artcove/artcove-backend/internal/domain"
)

// resolveBucketBackedURL rebuilds the public URL from the object key so
// rows written under an old bucket or CDN host keep working after a move.
// Without a bucket or key the stored URL is served untouched.
func resolveBucketBackedURL(
	bucket gcp.BucketService,
	category gcp.BucketCategory,
	objectKey *string,
	currentURL *string,
) *string {
	if bucket == nil || objectKey == nil || strings.TrimSpace(*objectKey) == "" {
		return currentURL
	}
	resolved := strings.TrimSpace(bucket.GetPublicURL(category, strings.TrimSpace(*objectKey)))
	if resolved == "" {
		return currentURL
	}
	return &resolved
}

func normalizeUserAvatarURL(bucket gcp.BucketService, u *types.User) {
	if u == nil {
		return
	}
	u.AvatarURL = resolveBucketBackedURL(bucket, gcp.BucketCategoryAvatar, u.AvatarObjectKey, u.AvatarURL)
}

func normalizeAssetFileURL(bucket gcp.BucketService, a *types.AssetWithDetails) {
	if a == nil {
		return
	}
	a.FileURL = resolveBucketBackedURL(bucket, gcp.BucketCategoryAsset, a.ObjectKey, a.FileURL)
}

func normalizeAssetFileURLs(bucket gcp.BucketService, assets []types.AssetWithDetails) {
	for i := range assets {
		normalizeAssetFileURL(bucket, &assets[i])
	}
}
