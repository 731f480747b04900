package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"microblog/internal/model"
)

var DB *gorm.DB

func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Migrate creates the schema. Development convenience, same as the rest of
// the bootstrap; production schemas are managed elsewhere.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	)
}
