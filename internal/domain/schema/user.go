package schema

import (
	"io"
	"strings"

	"github.com/artcove/artcove-backend/internal/domain/user"
)

// InsertUser is the accepted payload for creating a user row. The id,
// join stamp and avatar bookkeeping columns are assigned by the server
// and are not accepted here.
type InsertUser struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	IsCreator   *bool   `json:"is_creator,omitempty"`
}

func DecodeInsertUser(r io.Reader) (*InsertUser, error) {
	var in InsertUser
	if err := decodeStrict(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *InsertUser) Validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return required("username")
	}
	if in.Password == "" {
		return required("password")
	}
	if strings.TrimSpace(in.DisplayName) == "" {
		return required("display_name")
	}
	return nil
}

func (in *InsertUser) Model() user.User {
	u := user.User{
		Username:    strings.TrimSpace(in.Username),
		Password:    in.Password,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Bio:         in.Bio,
		AvatarURL:   in.AvatarURL,
	}
	if in.IsCreator != nil {
		u.IsCreator = *in.IsCreator
	}
	return u
}
