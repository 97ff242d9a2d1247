// Command seed loads or wipes the storefront catalog.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence"
	"storefront/internal/infra/pubsub"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

//go:embed catalog.json
var catalogJSON []byte

type options struct {
	importData    bool
	destroyData   bool
	adminEmail    string
	adminPassword string
}

type seeder struct {
	catalogUC usecase.CatalogUsecase
	adminUC   usecase.AdminUsecase
	logger    *slog.Logger
}

func main() {
	var opts options
	flag.BoolVar(&opts.importData, "import", false, "Wipe the catalog and import the bundled seed data")
	flag.BoolVar(&opts.destroyData, "destroy", false, "Wipe categories and products")
	flag.StringVar(&opts.adminEmail, "admin-email", "", "Create or promote an admin account with this email")
	flag.StringVar(&opts.adminPassword, "admin-password", "", "Password of a newly created admin account")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", slog.Any("error", err))
	}

	var s seeder
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			persistence.New,
			auth.NewBcryptHasher,
			pubsub.NewEventPublisher,
			impl.NewCatalogService,
			impl.NewAdminService,
		),
		fx.Populate(&s.catalogUC, &s.adminUC, &s.logger),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start seeder", slog.Any("error", err))
		os.Exit(1)
	}

	runErr := s.run(ctx, opts)
	stopErr := app.Stop(ctx)
	if err := errors.Join(runErr, stopErr); err != nil {
		slog.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func (s *seeder) run(ctx context.Context, opts options) error {
	if opts.importData && opts.destroyData {
		return errors.New("-import and -destroy are mutually exclusive")
	}
	if !opts.importData && !opts.destroyData && opts.adminEmail == "" {
		return errors.New("nothing to do, pass -import, -destroy or -admin-email")
	}

	var admin *entity.User
	if opts.adminEmail != "" {
		user, err := s.adminUC.EnsureAdmin(ctx, &usecase.RegisterUserInput{
			Email:    opts.adminEmail,
			Password: opts.adminPassword,
		})
		if err != nil {
			return errors.Wrap(err, "failed to ensure admin account")
		}
		admin = user
		s.logger.Info("Admin account ready", slog.String("email", user.Email))
	}

	switch {
	case opts.destroyData:
		if err := s.catalogUC.DestroyCatalog(ctx); err != nil {
			return err
		}
		s.logger.Info("Data destroyed")
	case opts.importData:
		ownerID, err := s.ownerID(ctx, admin)
		if err != nil {
			return err
		}

		catalog, err := loadCatalog(catalogJSON)
		if err != nil {
			return err
		}
		if err := s.catalogUC.ImportCatalog(ctx, ownerID, catalog); err != nil {
			return err
		}
		s.logger.Info("Data imported",
			slog.Int("categories", len(catalog.Categories)),
			slog.Int("products", len(catalog.Products)),
		)
	}

	return nil
}

// ownerID picks the account that owns imported products: the admin named on
// the command line, otherwise the first elevated account listed.
func (s *seeder) ownerID(ctx context.Context, admin *entity.User) (uuid.UUID, error) {
	if admin != nil {
		return admin.ID, nil
	}

	users, err := s.adminUC.ListUsers(ctx)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to list users")
	}
	for _, user := range users {
		if user.Privilege.IsElevated() {
			return user.ID, nil
		}
	}

	return uuid.Nil, errors.New("no admin account to own the products, pass -admin-email and -admin-password")
}

func loadCatalog(data []byte) (*usecase.SeedCatalog, error) {
	var catalog usecase.SeedCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "failed to decode seed catalog")
	}

	return &catalog, nil
}
