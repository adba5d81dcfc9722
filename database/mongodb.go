package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"sehatmand-backend/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
)

// DoctorsCollection is where the cleaned doctor directory is uploaded.
const DoctorsCollection = "doctors"

// Connect establishes the MongoDB connection and prepares indexes.
func Connect(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.BuildDatabaseURI()).
		SetMaxPoolSize(uint64(cfg.Database.MaxConnections)).
		SetMinPoolSize(uint64(cfg.Database.MinConnections)).
		SetMaxConnIdleTime(cfg.Database.MaxIdleTime)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.Database.Name)

	log.Printf("Connected to MongoDB database: %s", cfg.Database.Name)

	if err := createIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// IsConnected reports whether a database connection was established. The
// server keeps running without one; doctor lookups just return nothing.
func IsConnected() bool {
	return mongoDB != nil
}

// GetDB returns the MongoDB database instance
func GetDB() *mongo.Database {
	if mongoDB == nil {
		log.Fatal("MongoDB not initialized")
	}
	return mongoDB
}

// createIndexes creates necessary indexes
func createIndexes(ctx context.Context) error {
	doctors := mongoDB.Collection(DoctorsCollection)
	doctorIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "specialization", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "city", Value: 1}},
		},
	}

	if _, err := doctors.Indexes().CreateMany(ctx, doctorIndexes); err != nil {
		return fmt.Errorf("failed to create doctor indexes: %w", err)
	}

	log.Println("Database indexes created successfully")
	return nil
}

// HealthCheck performs a database health check
func HealthCheck() error {
	if mongoClient == nil {
		return fmt.Errorf("mongodb not connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return mongoClient.Ping(ctx, readpref.Primary())
}

// Disconnect closes the MongoDB connection
func Disconnect() error {
	if mongoClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := mongoClient.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
