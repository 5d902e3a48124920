package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripwise/internal/models/db_models"
)

// newDryRunDB opens a postgres-dialect gorm handle that only builds SQL.
// Nothing connects, so the generated statements can be asserted on
// without a database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

func TestUpsertEmbeddingWritesTourIDAndUpserts(t *testing.T) {
	db := newDryRunDB(t)

	var (
		capturedSQL  string
		capturedVars []interface{}
	)
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("capture_create_sql", func(tx *gorm.DB) {
		capturedSQL = tx.Statement.SQL.String()
		capturedVars = tx.Statement.Vars
	}))

	repo := NewTourRepository(db)
	tourID := uuid.New()
	err := repo.UpsertEmbedding(context.Background(), &db_models.TourEmbedding{
		TourID:     tourID,
		Embedding:  pgvector.NewVector([]float32{0.1, 0.2, 0.3}),
		SourceText: "Tour Đà Lạt | Đà Lạt | nghỉ dưỡng",
	})
	require.NoError(t, err)

	assert.Contains(t, capturedSQL, `INSERT INTO "tour_embeddings"`)
	assert.Contains(t, capturedSQL, `"tour_id"`)
	assert.Contains(t, capturedSQL, `ON CONFLICT ("tour_id") DO UPDATE SET`)
	assert.Contains(t, capturedSQL, `"embedding"="excluded"."embedding"`)
	assert.Contains(t, capturedSQL, `"source_text"="excluded"."source_text"`)

	// the real tour id is bound into the insert, not a zero value
	assert.Contains(t, capturedVars, tourID)
	assert.NotContains(t, capturedVars, uuid.Nil)
}

func TestReleaseSeatsClampsAtZero(t *testing.T) {
	db := newDryRunDB(t)

	var capturedSQL string
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("capture_update_sql", func(tx *gorm.DB) {
		capturedSQL = tx.Statement.SQL.String()
	}))

	repo := NewTourRepository(db)
	require.NoError(t, repo.ReleaseSeats(context.Background(), uuid.NewString(), 3))

	assert.Contains(t, capturedSQL, `UPDATE "tours"`)
	assert.Contains(t, capturedSQL, "GREATEST(seats_booked - ")
}
