package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/es"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage/pg"
	"github.com/DjordjeVuckovic/exam-portal/pkg/utils"
)

const defaultMaxBatchOps = 500

type StorageConfig struct {
	storage.Type
	// MaxBatchOps is the backend's atomic-write limit.
	MaxBatchOps int
	Pg          *pg.PoolConfig
	Es          *es.ClientConfig
}

func LoadEnv() (*StorageConfig, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Info("STORAGE_TYPE environment variable is not set, using in-memory storage")
		storageType = storage.InMem
	}
	if storageType != storage.ES && storageType != storage.PG && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.ES, storage.PG, storage.InMem})
	}

	maxOps := defaultMaxBatchOps
	if v := os.Getenv("ATOMIC_OP_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid ATOMIC_OP_LIMIT value %q: must be a positive integer", v)
		}
		maxOps = n
	}

	var esCfg *es.ClientConfig
	if storageType == storage.ES {
		esCfg = &es.ClientConfig{
			Addresses:   utils.SplitList(os.Getenv("ES_ADDRESSES")),
			IndexPrefix: os.Getenv("ES_INDEX_PREFIX"),
			Username:    os.Getenv("ES_USERNAME"),
			Password:    os.Getenv("ES_PASSWORD"),
			MaxBatchOps: maxOps,
		}
		if len(esCfg.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES is missing")
		}
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr:     os.Getenv("PG_CONNECTION_STRING"),
			MaxBatchOps: maxOps,
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		if v := os.Getenv("PG_MAX_CONNS"); v != "" {
			n, err := strconv.ParseInt(v, 10, 32)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid PG_MAX_CONNS value %q: must be a positive integer", v)
			}
			pgCfg.MaxConns = int32(n)
		}
	}

	return &StorageConfig{
		Type:        storageType,
		MaxBatchOps: maxOps,
		Pg:          pgCfg,
		Es:          esCfg,
	}, nil
}
