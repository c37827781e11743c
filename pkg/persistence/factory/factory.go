// Package factory opens the persistence backend selected in configuration.
package factory

import (
	"fmt"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/config"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence/badger"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence/memory"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/persistence/redis"
	"go.uber.org/zap"
)

func NewPersistence(cfg *config.PersistenceConfig, logger *zap.Logger) (persistence.IAllowlistPersistence, error) {
	switch cfg.Type {
	case config.PersistenceType_Memory, "":
		return memory.NewMemoryPersistence(logger), nil
	case config.PersistenceType_Badger:
		p, err := badger.NewBadgerPersistence(cfg.DataPath, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PersistenceType_Redis:
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis persistence requires redis configuration")
		}
		p, err := redis.NewRedisPersistence(cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s", cfg.Type)
	}
}
