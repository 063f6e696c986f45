package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/clinic-portal/internal/models"
	"github.com/BruksfildServices01/clinic-portal/internal/testutil"
)

func TestDispatcher_WritesEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)
	db := testutil.NewDB(t)

	d := NewDispatcher(New(db, log), log)

	id := uint(7)
	d.Dispatch(Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &id,
		Metadata: map[string]string{"title": "Checkup"},
	})
	d.Close()

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "appointment_created", fields["action"])
	assert.Equal(t, "appointment", fields["entity"])
	assert.EqualValues(t, 7, fields["entity_id"])
	assert.Equal(t, `{"title":"Checkup"}`, fields["metadata"])
	assert.Equal(t, "audit", entries[0].LoggerName)

	var rows []models.AuditLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "appointment_created", rows[0].Action)
	require.NotNil(t, rows[0].EntityID)
	assert.Equal(t, uint(7), *rows[0].EntityID)
	assert.Nil(t, rows[0].UserID)
}

func TestDispatcher_StoreFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)
	db := testutil.NewDB(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	d := NewDispatcher(New(db, log), log)
	d.Dispatch(Event{Action: "patient_deleted", Entity: "patient"})
	d.Close()

	assert.Equal(t, 1, logs.FilterMessage("audit error").Len())
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	log := zap.NewNop()
	d := NewDispatcher(New(testutil.NewDB(t), log), log)

	d.Close()
	d.Close()
}
