package schema

import (
	"io"

	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/domain/commerce"
)

// InsertRating is the accepted payload for rating an asset. The id and
// both stamps are server generated. Clients are expected to send a value
// between 1 and 5, but no range check is applied here or by the store.
type InsertRating struct {
	UserID  uuid.UUID `json:"user_id"`
	AssetID uuid.UUID `json:"asset_id"`
	Rating  *int      `json:"rating"`
	Comment *string   `json:"comment,omitempty"`
}

func DecodeInsertRating(r io.Reader) (*InsertRating, error) {
	var in InsertRating
	if err := decodeStrict(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *InsertRating) Validate() error {
	if in.UserID == uuid.Nil {
		return required("user_id")
	}
	if in.AssetID == uuid.Nil {
		return required("asset_id")
	}
	if in.Rating == nil {
		return required("rating")
	}
	return nil
}

func (in *InsertRating) Model() commerce.Rating {
	r := commerce.Rating{
		UserID:  in.UserID,
		AssetID: in.AssetID,
		Comment: in.Comment,
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	return r
}
