package database

import (
	"context"
	"time"

	"riverwood/config"
	"riverwood/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the shared MongoDB client, set by InitDB before any
// repository is constructed.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies the connection. Startup aborts if
// the database is unreachable; nothing in the service works without it.
func InitDB() {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.DatabaseURL))
	if err != nil {
		logger.Fatal("mongodb connect failed", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("mongodb ping failed", zap.Error(err))
	}

	MongoClient = client
	logger.Info("connected to mongodb")
}
