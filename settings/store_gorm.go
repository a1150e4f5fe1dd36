package settings

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const documentName = "settings"

// Document is a settings document row in a SQL database.
type Document struct {
	Name      string         `gorm:"column:name;primaryKey"`
	Body      datatypes.JSON `gorm:"column:body"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (Document) TableName() string {
	return "settings_documents"
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func (s *GormStore) Location() string {
	return Document{}.TableName() + "/" + documentName
}

func (s *GormStore) Read() ([]byte, error) {
	doc := Document{}
	err := s.db.First(&doc, "name = ?", documentName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return []byte(doc.Body), nil
}

func (s *GormStore) Write(data []byte) error {
	// Insert or overwrite the single document row
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&Document{Name: documentName, Body: datatypes.JSON(data)}).Error
}
