package m20261018

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//
// First migration, creates the settings document table. The type is a
// snapshot so later changes to settings.Document do not alter this step.
//

const ID = "20261018"

type Document struct {
	Name      string         `gorm:"column:name;primaryKey"`
	Body      datatypes.JSON `gorm:"column:body"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (Document) TableName() string {
	return "settings_documents"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&Document{})
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable(&Document{})
}
