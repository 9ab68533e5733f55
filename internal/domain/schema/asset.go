package schema

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/artcove/artcove-backend/internal/domain/catalog"
)

// InsertAsset is the accepted payload for listing an asset. The id,
// creation stamp, download counter and rating aggregate are maintained by
// the server and are not accepted here.
type InsertAsset struct {
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	PreviewURL  string    `json:"preview_url"`
	Price       *float64  `json:"price"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Tags        []string  `json:"tags,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	Thumbnails  []string  `json:"thumbnails,omitempty"`
	FileURL     *string   `json:"file_url,omitempty"`
	FileType    *string   `json:"file_type,omitempty"`
	FileSize    *int      `json:"file_size,omitempty"`
	ObjectKey   *string   `json:"object_key,omitempty"`
}

func DecodeInsertAsset(r io.Reader) (*InsertAsset, error) {
	var in InsertAsset
	if err := decodeStrict(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *InsertAsset) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return required("title")
	}
	if strings.TrimSpace(in.PreviewURL) == "" {
		return required("preview_url")
	}
	if in.Price == nil {
		return required("price")
	}
	if in.CategoryID == uuid.Nil {
		return required("category_id")
	}
	if in.CreatorID == uuid.Nil {
		return required("creator_id")
	}
	return nil
}

func (in *InsertAsset) Model() catalog.Asset {
	a := catalog.Asset{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		PreviewURL:  strings.TrimSpace(in.PreviewURL),
		CategoryID:  in.CategoryID,
		CreatorID:   in.CreatorID,
		Tags:        datatypes.NewJSONSlice(emptyWhenNil(in.Tags)),
		Thumbnails:  datatypes.NewJSONSlice(emptyWhenNil(in.Thumbnails)),
		FileURL:     in.FileURL,
		FileType:    in.FileType,
		FileSize:    in.FileSize,
		ObjectKey:   in.ObjectKey,
	}
	if in.Price != nil {
		a.Price = *in.Price
	}
	if in.Featured != nil {
		a.Featured = *in.Featured
	}
	return a
}

func emptyWhenNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
