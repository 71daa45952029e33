package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func Tables() []schema.Tabler {
	return []schema.Tabler{
		&Post{},
		&LikeEdge{},
		&DiscussionThread{},
		&DiscussionReply{},
		&Rating{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	tables := Tables()
	models := make([]interface{}, len(tables))
	for i, t := range tables {
		models[i] = t
	}
	return db.AutoMigrate(models...)
}
