package audit

import (
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

// Logger stores audit rows and mirrors them to the application log.
type Logger struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Logger {
	return &Logger{db: db, log: log.Named("audit")}
}

func (l *Logger) Log(
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		metaJSON = string(b)
	}

	fields := []zap.Field{
		zap.String("action", action),
		zap.String("entity", entity),
	}
	if userID != nil {
		fields = append(fields, zap.Uint("user_id", *userID))
	}
	if entityID != nil {
		fields = append(fields, zap.Uint("entity_id", *entityID))
	}
	if metaJSON != "" {
		fields = append(fields, zap.String("metadata", metaJSON))
	}
	l.log.Info("audit", fields...)

	row := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}
	return l.db.Create(&row).Error
}
