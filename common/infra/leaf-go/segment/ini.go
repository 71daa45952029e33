package segment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoDB = errors.New("segment creator needs a db")

func NewCreator(ctx context.Context, config *Config) (*Creator, error) {
	if config.DB == nil {
		return nil, ErrNoDB
	}
	db := config.DB
	if err := db.WithContext(ctx).AutoMigrate(&IdTable{}); err != nil {
		return nil, err
	}

	timeout, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	var record IdTable
	// select for update 锁住记录，保证多实例并发申请号段安全
	err := db.WithContext(timeout).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("tag = ?", config.Name).
			First(&IdTable{}).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&IdTable{Tag: config.Name, Step: 1024}).Error
		}
		if err != nil {
			return err
		}
		if err = tx.Model(&IdTable{}).Where("tag = ?", config.Name).
			Update("max_id", gorm.Expr("max_id + step")).Error; err != nil {
			return err
		}
		return tx.Where("tag = ?", config.Name).First(&record).Error
	})
	if err != nil {
		return nil, err
	}

	creator := &Creator{
		id:  record.ID,
		db:  db,
		ch:  make(chan struct{}, 1),
		old: newBuffer(record),
	}
	go creator.preApplication()

	return creator, nil
}

func newBuffer(record IdTable) *buffer {
	b := &buffer{
		nextId: record.MaxId - record.Step + 1,
		maxId:  record.MaxId,
	}
	b.preIndex = b.nextId + record.Step/10
	return b
}
