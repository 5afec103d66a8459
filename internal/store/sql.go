package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

// recordRow is one catalog entry; Position keeps the catalog order.
type recordRow struct {
	ID            uint   `gorm:"primaryKey"`
	Position      int    `gorm:"index;not null"`
	Name          string `gorm:"size:255;not null"`
	URI           string `gorm:"size:1024;not null"`
	Transcription string `gorm:"type:text"`
}

func (recordRow) TableName() string {
	return "recordings"
}

type implSQL struct {
	db *gorm.DB
}

// OpenSQL opens a gorm database through dialector and migrates the schema.
func OpenSQL(dialector gorm.Dialector) (Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, fmt.Errorf("migrate recordings: %w", err)
	}
	return &implSQL{db: db}, nil
}

func (s *implSQL) LoadAll(ctx context.Context) ([]recording.Recording, error) {
	var rows []recordRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: query recordings: %v", recording.ErrStorage, err)
	}

	recs := make([]recording.Recording, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, recording.Recording{
			Name:          r.Name,
			URI:           r.URI,
			Transcription: r.Transcription,
		})
	}
	return recs, nil
}

func (s *implSQL) SaveAll(ctx context.Context, recs []recording.Recording) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&recordRow{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}

		rows := make([]recordRow, len(recs))
		for i, r := range recs {
			rows[i] = recordRow{
				Position:      i,
				Name:          r.Name,
				URI:           r.URI,
				Transcription: r.Transcription,
			}
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("%w: replace recordings: %v", recording.ErrStorage, err)
	}
	return nil
}

func (s *implSQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
