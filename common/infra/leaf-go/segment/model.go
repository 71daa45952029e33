package segment

import (
	"sync"
	"time"

	"gorm.io/gorm"
)

type Creator struct {
	id  int64
	mu  sync.Mutex
	db  *gorm.DB
	ch  chan struct{}
	old *buffer
	new *buffer
}

type buffer struct {
	nextId   int64
	maxId    int64
	preIndex int64
}

// IdTable 每个Tag一条记录，MaxId为已分配出去的最大id
type IdTable struct {
	ID       int64     `gorm:"primaryKey"`
	Tag      string    `gorm:"uniqueIndex;not null;size:191"`
	MaxId    int64     `gorm:"not null;default:0"`
	Step     int64     `gorm:"not null;default:1024"`
	Desc     string    `gorm:"size:255"`
	UpdateAt time.Time `gorm:"autoUpdateTime"`
}

func (IdTable) TableName() string {
	return "id_segments"
}

type Config struct {
	Name string
	DB   *gorm.DB
}
