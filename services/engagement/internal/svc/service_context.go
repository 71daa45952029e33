package svc

import (
	"GoEngage/common/infra/hotkey"
	leaf "GoEngage/common/infra/leaf-go"
	"GoEngage/common/infra/lua"
	syncx "GoEngage/common/infra/sync"
	"GoEngage/common/util"
	"GoEngage/services/engagement/internal/cache"
	"GoEngage/services/engagement/internal/config"
	"GoEngage/services/engagement/internal/event"
	"GoEngage/services/engagement/internal/middleware"
	"GoEngage/services/engagement/internal/script"
	"GoEngage/services/engagement/internal/store"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/redis/go-redis/v9"
	"github.com/zeromicro/go-zero/rest"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type ServiceContext struct {
	Config    config.Config
	DB        *gorm.DB
	Store     *store.Store
	Client    *redis.Client
	Executor  *lua.Executor
	Sync      *syncx.Sync
	Local     *hotkey.Core
	Cache     *cache.PostCache
	Creator   leaf.Core
	Publisher event.Publisher
	Logger    *slog.Logger

	UserMiddleware rest.Middleware

	closers []func() error
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config:         c,
		UserMiddleware: middleware.NewUserMiddleware().Handle,
	}
	ctx := context.Background()

	logger, err := util.InitLog(c.Name, c.Logger.Path, util.ParseLevel(c.Logger.Level))
	if err != nil {
		panic(err.Error())
	}
	svc.Logger = logger

	db, err := gorm.Open(mysql.Open(c.MySQL.DataSource), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		panic(err.Error())
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err.Error())
	}
	sqlDB.SetMaxOpenConns(c.MySQL.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MySQL.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(c.MySQL.ConnMaxLifetime) * time.Second)
	svc.DB = db
	svc.Store = store.New(db)
	svc.closers = append(svc.closers, sqlDB.Close)

	rClient := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})
	if err := rClient.Ping(ctx).Err(); err != nil {
		panic(err.Error())
	}
	svc.Client = rClient
	svc.closers = append(svc.closers, rClient.Close)

	executor := lua.NewExecutor(rClient)
	if _, err = executor.Load(ctx, script.All()); err != nil {
		panic(err.Error())
	}
	svc.Executor = executor

	sync, err := syncx.NewSync(ctx, rClient)
	if err != nil {
		panic(err.Error())
	}
	svc.Sync = sync

	svc.Local = hotkey.NewCore(
		hotkey.WithCacheSize(c.Cache.LocalSize),
		hotkey.WithTTL(c.Cache.LocalTTL),
		hotkey.WithWindow(c.Cache.HotWindow, c.Cache.HotThreshold),
		hotkey.WithObserver(svc),
	)
	svc.Cache = cache.NewPostCache(executor, sync, svc.Local, logger, cache.Options{
		TTL:           time.Duration(c.Cache.TTL) * time.Second,
		RebuildBefore: time.Duration(c.Cache.RebuildBefore) * time.Second,
	})

	creator, err := NewCreator(ctx, c, db)
	if err != nil {
		panic(err.Error())
	}
	svc.Creator = creator
	if closer, ok := creator.(io.Closer); ok {
		svc.closers = append(svc.closers, closer.Close)
	}

	if len(c.Kafka.Brokers) == 0 {
		logger.Warn("kafka brokers not configured, events only logged")
		svc.Publisher = event.LogPublisher{Logger: logger}
	} else {
		kafkaConfig := sarama.NewConfig()
		kafkaConfig.Producer.Return.Successes = true
		kafkaConfig.Producer.RequiredAcks = sarama.WaitForLocal
		producer, err := sarama.NewSyncProducer(c.Kafka.Brokers, kafkaConfig)
		if err != nil {
			panic(err.Error())
		}
		publisher := event.NewKafkaPublisher(producer, c.Kafka.Topic, logger)
		svc.Publisher = publisher
		svc.closers = append(svc.closers, publisher.Close)
	}

	return svc
}

// NewCreator 按配置选择id生成方式
func NewCreator(ctx context.Context, c config.Config, db *gorm.DB) (leaf.Core, error) {
	switch c.IdCreator.Model {
	case "segment":
		return leaf.NewCore(ctx, leaf.Config{
			Model:         leaf.Segment,
			SegmentConfig: &leaf.SegmentConfig{Name: c.IdCreator.Name, DB: db},
		})
	case "snowflake":
		return leaf.NewCore(ctx, leaf.Config{
			Model: leaf.Snowflake,
			SnowflakeConfig: &leaf.SnowflakeConfig{
				CreatorName: c.IdCreator.Name,
				Addr:        c.IdCreator.Addr,
				EtcdAddr:    c.Etcd.Endpoints,
				DialTimeout: time.Duration(c.Etcd.DialTimeout) * time.Second,
			},
		})
	default:
		return leaf.NewCore(ctx, leaf.Config{
			Model:       leaf.Local,
			LocalConfig: &leaf.LocalConfig{WorkerId: c.IdCreator.WorkerId},
		})
	}
}

// Do key成为热key时记录
func (svc *ServiceContext) Do(key string) {
	svc.Logger.Info("hot key detected", "key", key)
}

// Health 数据库与redis均可用
func (svc *ServiceContext) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sqlDB, err := svc.DB.DB()
	if err != nil {
		return err
	}
	return errors.Join(sqlDB.PingContext(ctx), svc.Client.Ping(ctx).Err())
}

// Close 等待后台缓存重建后依次释放资源
func (svc *ServiceContext) Close() error {
	if svc.Cache != nil {
		svc.Cache.Wait()
	}
	if svc.Local != nil {
		svc.Local.Close()
	}
	var errs []error
	for i := len(svc.closers) - 1; i >= 0; i-- {
		errs = append(errs, svc.closers[i]())
	}
	return errors.Join(errs...)
}
