package config

import (
	"fmt"
	"net/url"
	"sync"
)

var (
	mongoOnce   sync.Once
	mongoConfig *MongoConfig
)

type MongoConfig struct {
	Endpoint              string
	Username              string
	Password              string
	Database              string
	CandidateCollection   string
	UsageLogCollection    string
	CheckpointCollection  string
}

// URI builds the connection string. The password is percent-escaped so
// credentials with special characters survive the round trip.
func (c *MongoConfig) URI() string {
	if c.Username == "" {
		return fmt.Sprintf("mongodb://%s", c.Endpoint)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s", c.Username, url.QueryEscape(c.Password), c.Endpoint)
}

func GetMongoConfig() *MongoConfig {
	mongoOnce.Do(func() {
		loadEnv()

		mongoConfig = &MongoConfig{
			Endpoint:             getEnv("MONGO_ENDPOINT", "localhost:27017"),
			Username:             getEnv("MONGO_USERNAME", ""),
			Password:             getEnv("MONGO_PASSWORD", ""),
			Database:             getEnv("MONGO_DB_NAME", "hiresift"),
			CandidateCollection:  getEnv("MONGO_COLLECTION", "candidates"),
			UsageLogCollection:   getEnv("MONGO_USAGE_COLLECTION", "usage_logs"),
			CheckpointCollection: getEnv("MONGO_CHECKPOINT_COLLECTION", "checkpoints"),
		}
	})
	return mongoConfig
}
