package es

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses []string
	// IndexPrefix is prepended to the collection name to form the index name.
	IndexPrefix string
	Username    string
	Password    string
	MaxBatchOps int
}

const maxRetries = 3

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses:           config.Addresses,
		CompressRequestBody: true,
		// 429 is what a node answers when its bulk queue is full
		RetryOnStatus: []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		MaxRetries:    maxRetries,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}
