package leaf_go

import (
	"GoEngage/common/infra/leaf-go/segment"
	"GoEngage/common/infra/leaf-go/snowflake"
	"context"
	"errors"
)

var (
	ErrNoModel  = errors.New("no such model")
	ErrNoConfig = errors.New("missing config for model")
)

// NewCore 省略factory的简单工厂模式
func NewCore(ctx context.Context, config Config) (Core, error) {
	switch config.Model {
	case Segment:
		if config.SegmentConfig == nil {
			return nil, ErrNoConfig
		}
		return segment.NewCreator(ctx, &segment.Config{
			Name: config.SegmentConfig.Name,
			DB:   config.SegmentConfig.DB,
		})
	case Snowflake:
		if config.SnowflakeConfig == nil {
			return nil, ErrNoConfig
		}
		return snowflake.NewCreator(ctx, &snowflake.Config{
			CreatorName: config.SnowflakeConfig.CreatorName,
			Addr:        config.SnowflakeConfig.Addr,
			EtcdAddr:    config.SnowflakeConfig.EtcdAddr,
			DialTimeout: config.SnowflakeConfig.DialTimeout,
		})
	case Local:
		if config.LocalConfig == nil {
			return nil, ErrNoConfig
		}
		return snowflake.NewLocalCreator(config.LocalConfig.WorkerId)
	default:
		return nil, ErrNoModel
	}
}
