// Package local guarda los recordatorios en un SQLite del dispositivo y los dispara
// cuando llega su hora. Es el notificador del modo agent (CLI).
package local

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// registration es la fila de un recordatorio registrado.
type registration struct {
	ID           string `gorm:"primaryKey;size:36"`
	AdminID      string `gorm:"index:idx_reg_parent;not null"`
	ParentID     string `gorm:"index:idx_reg_parent;not null"`
	MedicineID   string `gorm:"not null"`
	MedicineName string
	Dosage       string
	DoseTime     string `gorm:"not null"`
	Hour         int
	Minute       int

	// Día (yyyy-MM-dd) del último disparo; vacío si nunca.
	LastFiredOn string
	CreatedAt   time.Time
}

func (registration) TableName() string { return "reminder_registrations" }

// Open abre (o crea) la base y migra la tabla.
func Open(path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("local notifier: path required")
	}
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&registration{}); err != nil {
		return nil, err
	}
	return db, nil
}
