package catalog

import (
	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/domain/user"
)

// CreatorSummary is the slice of a user row that catalog responses expose.
type CreatorSummary struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	IsCreator   bool      `json:"is_creator"`
}

func SummarizeCreator(u *user.User) CreatorSummary {
	if u == nil {
		return CreatorSummary{}
	}
	return CreatorSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsCreator:   u.IsCreator,
	}
}

// AssetWithDetails is a read-only projection of an asset together with the
// category and creator rows it references. It is assembled from queries and
// never persisted.
type AssetWithDetails struct {
	Asset
	Creator  CreatorSummary `json:"creator"`
	Category Category       `json:"category"`
}

// NewAssetWithDetails lifts a preloaded asset into its detail view. The
// relation pointers on the embedded row are cleared so the payload carries
// each of them exactly once.
func NewAssetWithDetails(a Asset) AssetWithDetails {
	view := AssetWithDetails{Asset: a, Creator: SummarizeCreator(a.Creator)}
	if a.Category != nil {
		view.Category = *a.Category
	}
	view.Asset.Category = nil
	view.Asset.Creator = nil
	return view
}
