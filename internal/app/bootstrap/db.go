// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	assignmentstore "github.com/arenaops/venuehub/internal/app/store/assignments"
	departmentstore "github.com/arenaops/venuehub/internal/app/store/departments"
	levelstore "github.com/arenaops/venuehub/internal/app/store/levels"
	locationstore "github.com/arenaops/venuehub/internal/app/store/locations"
	peoplestore "github.com/arenaops/venuehub/internal/app/store/people"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a
// ping before the rest of startup proceeds.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes every store depends on. It runs
// once at startup, after ConnectDB and before the handler is built.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"people", peoplestore.New(db).EnsureIndexes},
		{"departments", departmentstore.New(db).EnsureIndexes},
		{"assignments", assignmentstore.New(db).EnsureIndexes},
		{"locations", locationstore.New(db).EnsureIndexes},
		{"levels", levelstore.New(db).EnsureIndexes},
	}

	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", e.name, err)
		}
	}

	logger.Info("database indexes ensured")
	return nil
}
