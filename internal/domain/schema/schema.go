// Package schema defines the insert payloads accepted for each persisted
// table. Every type mirrors its table minus the server-generated columns
// (ids, creation stamps, maintained counters and aggregates), and decoding
// is strict: payloads that name an omitted or unknown column are refused.
package schema

import (
	"encoding/json"
	"fmt"
	"io"

	errs "github.com/artcove/artcove-backend/internal/pkg/errors"
)

func decodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidArgument, err)
	}
	return nil
}

func required(field string) error {
	return fmt.Errorf("%w: %s is required", errs.ErrInvalidArgument, field)
}
