package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/repos"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
	"github.com/artcove/artcove-backend/internal/pkg/pointers"
)

type Seeder struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	categoryRepo repos.CategoryRepo
	assetRepo    repos.AssetRepo
}

func NewSeeder(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	categoryRepo repos.CategoryRepo,
	assetRepo repos.AssetRepo,
) *Seeder {
	return &Seeder{
		db:           db,
		log:          log.With("component", "Seeder"),
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		assetRepo:    assetRepo,
	}
}

type Result struct {
	CategoriesCreated int64
	CreatorCreated    bool
	AssetsCreated     int
}

// Apply loads the seed file into the database. Reruns are safe: categories
// insert only where the name is new, and the demo creator with their assets
// is skipped entirely once the username exists.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	if f == nil {
		return Result{}, fmt.Errorf("nil seed file")
	}

	var res Result
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		categories := make([]*types.Category, 0, len(f.Categories))
		for _, c := range f.Categories {
			row := types.Category{
				ID:   uuid.New(),
				Name: c.Name,
				Icon: c.Icon,
			}
			if c.Description != "" {
				row.Description = pointers.Ptr(c.Description)
			}
			categories = append(categories, &row)
		}
		created, err := s.categoryRepo.CreateIfAbsent(dbc, categories)
		if err != nil {
			return err
		}
		res.CategoriesCreated = created

		if f.Creator == nil {
			return nil
		}

		username := strings.ToLower(strings.TrimSpace(f.Creator.Username))
		exists, err := s.userRepo.UsernameExists(dbc, username)
		if err != nil {
			return err
		}
		if exists {
			s.log.Info("Demo creator already present, skipping demo assets", "username", username)
			return nil
		}

		creatorID, err := s.createCreator(dbc, username, f.Creator)
		if err != nil {
			return err
		}
		res.CreatorCreated = true

		n, err := s.createAssets(dbc, creatorID, f.Assets)
		if err != nil {
			return err
		}
		res.AssetsCreated = n
		return nil
	}); err != nil {
		return Result{}, err
	}

	// Rebuild the derived counters outside the insert transaction so they
	// also pick up rows that predate this run.
	dbc := dbctx.Context{Ctx: ctx}
	if err := s.categoryRepo.RecomputeAssetCounts(dbc); err != nil {
		return res, err
	}
	if err := s.assetRepo.RecomputeRatingAggregates(dbc); err != nil {
		return res, err
	}

	s.log.Info("Seed applied",
		"categoriesCreated", res.CategoriesCreated,
		"creatorCreated", res.CreatorCreated,
		"assetsCreated", res.AssetsCreated)
	return res, nil
}

func (s *Seeder) createCreator(dbc dbctx.Context, username string, c *Creator) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash creator password: %w", err)
	}

	in := schema.InsertUser{
		Username:    username,
		Password:    string(hash),
		DisplayName: c.DisplayName,
		IsCreator:   pointers.Ptr(true),
	}
	if c.Bio != "" {
		in.Bio = pointers.Ptr(c.Bio)
	}
	row := in.Model()
	row.ID = uuid.New()

	if _, err := s.userRepo.Create(dbc, []*types.User{&row}); err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}

func (s *Seeder) createAssets(dbc dbctx.Context, creatorID uuid.UUID, assets []Asset) (int, error) {
	if len(assets) == 0 {
		return 0, nil
	}

	rows := make([]*types.Asset, 0, len(assets))
	for _, a := range assets {
		category, err := s.categoryRepo.GetByName(dbc, a.Category)
		if err != nil {
			return 0, err
		}
		if category == nil {
			return 0, fmt.Errorf("category %q not found after seeding", a.Category)
		}

		in := schema.InsertAsset{
			Title:      a.Title,
			PreviewURL: a.PreviewURL,
			Price:      pointers.Ptr(a.Price),
			CategoryID: category.ID,
			CreatorID:  creatorID,
			Tags:       a.Tags,
			Thumbnails: a.Thumbnails,
		}
		if a.Description != "" {
			in.Description = pointers.Ptr(a.Description)
		}
		if a.Featured {
			in.Featured = pointers.Ptr(true)
		}
		row := in.Model()
		row.ID = uuid.New()
		rows = append(rows, &row)
	}

	if _, err := s.assetRepo.Create(dbc, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
