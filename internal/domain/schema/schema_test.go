package schema

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	errs "github.com/artcove/artcove-backend/internal/pkg/errors"
)

func TestDecodeRejectsServerGeneratedFields(t *testing.T) {
	cases := []struct {
		name    string
		decode  func(body string) error
		payload string
	}{
		{
			name:    "user_id",
			decode:  decodeUser,
			payload: `{"username":"ana","password":"pw","display_name":"Ana","id":"3f1c8a08-55a4-4a52-9a1c-0a2b7c0d9e1f"}`,
		},
		{
			name:    "user_joined_at",
			decode:  decodeUser,
			payload: `{"username":"ana","password":"pw","display_name":"Ana","joined_at":"2024-01-01T00:00:00Z"}`,
		},
		{
			name:    "user_avatar_object_key",
			decode:  decodeUser,
			payload: `{"username":"ana","password":"pw","display_name":"Ana","avatar_object_key":"avatar/ana.png"}`,
		},
		{
			name:    "category_id",
			decode:  decodeCategory,
			payload: `{"name":"Icons","icon":"grid","id":"3f1c8a08-55a4-4a52-9a1c-0a2b7c0d9e1f"}`,
		},
		{
			name:    "category_asset_count",
			decode:  decodeCategory,
			payload: `{"name":"Icons","icon":"grid","asset_count":7}`,
		},
		{
			name:    "asset_download_count",
			decode:  decodeAsset,
			payload: assetPayload(`"download_count":12`),
		},
		{
			name:    "asset_rating_aggregate",
			decode:  decodeAsset,
			payload: assetPayload(`"rating":4.5`),
		},
		{
			name:    "asset_created_at",
			decode:  decodeAsset,
			payload: assetPayload(`"created_at":"2024-01-01T00:00:00Z"`),
		},
		{
			name:    "cart_item_added_at",
			decode:  decodeCartItem,
			payload: `{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `","added_at":"2024-01-01T00:00:00Z"}`,
		},
		{
			name:    "purchase_download_count",
			decode:  decodePurchase,
			payload: `{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `","amount":9.99,"download_count":2}`,
		},
		{
			name:    "purchase_purchased_at",
			decode:  decodePurchase,
			payload: `{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `","amount":9.99,"purchased_at":"2024-01-01T00:00:00Z"}`,
		},
		{
			name:    "rating_created_at",
			decode:  decodeRating,
			payload: `{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `","rating":4,"created_at":"2024-01-01T00:00:00Z"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.decode(tc.payload)
			if err == nil {
				t.Fatalf("decode accepted payload %s, want rejection", tc.payload)
			}
			if !errors.Is(err, errs.ErrInvalidArgument) {
				t.Fatalf("decode error=%v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestDecodeRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		decode  func(body string) error
		payload string
	}{
		{name: "user_missing_username", decode: decodeUser, payload: `{"password":"pw","display_name":"Ana"}`},
		{name: "user_blank_username", decode: decodeUser, payload: `{"username":"  ","password":"pw","display_name":"Ana"}`},
		{name: "user_missing_password", decode: decodeUser, payload: `{"username":"ana","display_name":"Ana"}`},
		{name: "user_missing_display_name", decode: decodeUser, payload: `{"username":"ana","password":"pw"}`},
		{name: "category_missing_name", decode: decodeCategory, payload: `{"icon":"grid"}`},
		{name: "category_missing_icon", decode: decodeCategory, payload: `{"name":"Icons"}`},
		{name: "asset_missing_title", decode: decodeAsset, payload: `{"preview_url":"https://cdn.test/p.png","price":5,"category_id":"` + uuid.NewString() + `","creator_id":"` + uuid.NewString() + `"}`},
		{name: "asset_missing_price", decode: decodeAsset, payload: `{"title":"Pack","preview_url":"https://cdn.test/p.png","category_id":"` + uuid.NewString() + `","creator_id":"` + uuid.NewString() + `"}`},
		{name: "asset_missing_category", decode: decodeAsset, payload: `{"title":"Pack","preview_url":"https://cdn.test/p.png","price":5,"creator_id":"` + uuid.NewString() + `"}`},
		{name: "asset_missing_creator", decode: decodeAsset, payload: `{"title":"Pack","preview_url":"https://cdn.test/p.png","price":5,"category_id":"` + uuid.NewString() + `"}`},
		{name: "cart_item_missing_user", decode: decodeCartItem, payload: `{"asset_id":"` + uuid.NewString() + `"}`},
		{name: "cart_item_missing_asset", decode: decodeCartItem, payload: `{"user_id":"` + uuid.NewString() + `"}`},
		{name: "purchase_missing_amount", decode: decodePurchase, payload: `{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `"}`},
		{name: "rating_missing_value", decode: decodeRating, payload: `{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.decode(tc.payload)
			if err == nil {
				t.Fatalf("decode accepted payload %s, want rejection", tc.payload)
			}
			if !errors.Is(err, errs.ErrInvalidArgument) {
				t.Fatalf("decode error=%v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestDecodeInsertRatingHasNoRangeCheck(t *testing.T) {
	for _, value := range []int{0, 1, 5, 6, 42, -3} {
		in, err := DecodeInsertRating(strings.NewReader(
			`{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `","rating":` + strconv.Itoa(value) + `}`))
		if err != nil {
			t.Fatalf("rating=%d rejected: %v", value, err)
		}
		if got := in.Model().Rating; got != value {
			t.Fatalf("rating=%d mapped to %d", value, got)
		}
	}
}

func TestInsertCartItemQuantityFallback(t *testing.T) {
	in, err := DecodeInsertCartItem(strings.NewReader(
		`{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := in.Model().Quantity; got != 1 {
		t.Fatalf("quantity fallback=%d, want 1", got)
	}

	in, err = DecodeInsertCartItem(strings.NewReader(
		`{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `","quantity":3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := in.Model().Quantity; got != 3 {
		t.Fatalf("quantity=%d, want 3", got)
	}
}

func TestInsertPurchaseStatusFallback(t *testing.T) {
	in, err := DecodeInsertPurchase(strings.NewReader(
		`{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `","amount":19.99}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := in.Model().Status; got != "completed" {
		t.Fatalf("status fallback=%q, want completed", got)
	}

	in, err = DecodeInsertPurchase(strings.NewReader(
		`{"user_id":"` + uuid.NewString() + `","asset_id":"` + uuid.NewString() + `","amount":19.99,"status":"refunded"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := in.Model().Status; got != "refunded" {
		t.Fatalf("status=%q, want refunded", got)
	}
}

func TestInsertAssetModelDefaults(t *testing.T) {
	in, err := DecodeInsertAsset(strings.NewReader(assetPayload("")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a := in.Model()
	if a.Tags == nil || len(a.Tags) != 0 {
		t.Fatalf("tags default=%v, want empty list", a.Tags)
	}
	if a.Thumbnails == nil || len(a.Thumbnails) != 0 {
		t.Fatalf("thumbnails default=%v, want empty list", a.Thumbnails)
	}
	if a.Featured {
		t.Fatalf("featured defaulted to true")
	}
	if a.DownloadCount != 0 || a.Rating != 0 {
		t.Fatalf("server counters not zero: downloads=%d rating=%v", a.DownloadCount, a.Rating)
	}
}

func TestInsertUserModelDefaults(t *testing.T) {
	in, err := DecodeInsertUser(strings.NewReader(`{"username":" ana ","password":"pw","display_name":"Ana"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	u := in.Model()
	if u.Username != "ana" {
		t.Fatalf("username=%q, want trimmed", u.Username)
	}
	if u.IsCreator {
		t.Fatalf("is_creator defaulted to true")
	}

	in, err = DecodeInsertUser(strings.NewReader(`{"username":"bo","password":"pw","display_name":"Bo","is_creator":true}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !in.Model().IsCreator {
		t.Fatalf("is_creator=false, want true")
	}
}

func assetPayload(extra string) string {
	base := `"title":"Brush Pack","preview_url":"https://cdn.test/p.png","price":12.5,` +
		`"category_id":"` + uuid.NewString() + `","creator_id":"` + uuid.NewString() + `"`
	if extra != "" {
		base += "," + extra
	}
	return "{" + base + "}"
}

func decodeUser(body string) error {
	_, err := DecodeInsertUser(strings.NewReader(body))
	return err
}

func decodeCategory(body string) error {
	_, err := DecodeInsertCategory(strings.NewReader(body))
	return err
}

func decodeAsset(body string) error {
	_, err := DecodeInsertAsset(strings.NewReader(body))
	return err
}

func decodeCartItem(body string) error {
	_, err := DecodeInsertCartItem(strings.NewReader(body))
	return err
}

func decodePurchase(body string) error {
	_, err := DecodeInsertPurchase(strings.NewReader(body))
	return err
}

func decodeRating(body string) error {
	_, err := DecodeInsertRating(strings.NewReader(body))
	return err
}
