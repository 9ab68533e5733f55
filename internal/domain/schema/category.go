package schema

import (
	"io"
	"strings"

	"github.com/artcove/artcove-backend/internal/domain/catalog"
)

// InsertCategory is the accepted payload for creating a category row.
// The id and the maintained asset_count counter are server generated.
type InsertCategory struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        string  `json:"icon"`
}

func DecodeInsertCategory(r io.Reader) (*InsertCategory, error) {
	var in InsertCategory
	if err := decodeStrict(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *InsertCategory) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return required("name")
	}
	if strings.TrimSpace(in.Icon) == "" {
		return required("icon")
	}
	return nil
}

func (in *InsertCategory) Model() catalog.Category {
	return catalog.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Icon:        strings.TrimSpace(in.Icon),
	}
}
