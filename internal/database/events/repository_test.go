package events

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_events_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Event{},
		&entities.Edition{},
		&entities.Author{},
		&entities.Article{},
		&entities.Subscription{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_CreateAndGet(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := &entities.Event{Name: "SBES", Description: "Brazilian Symposium on Software Engineering"}
	require.NoError(t, repo.Create(event))
	require.NotZero(t, event.ID)

	found, err := repo.GetByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "SBES", found.Name)
}

func TestRepository_GetOrCreateByName(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.GetOrCreateByName("SBES")
	require.NoError(t, err)

	second, err := repo.GetOrCreateByName("SBES")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&entities.Event{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Update(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := &entities.Event{Name: "SBES"}
	require.NoError(t, repo.Create(event))

	event.Description = "Updated"
	require.NoError(t, repo.Update(event))

	found, err := repo.GetByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", found.Description)
}

func TestRepository_DeleteCascades(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := &entities.Event{Name: "SBES"}
	require.NoError(t, repo.Create(event))

	edition := entities.Edition{EventID: event.ID, Year: 2023}
	require.NoError(t, db.Create(&edition).Error)
	article := entities.Article{Title: "Paper", EditionID: edition.ID}
	require.NoError(t, db.Create(&article).Error)

	require.NoError(t, repo.Delete(event.ID))

	var editionCount, articleCount int64
	db.Model(&entities.Edition{}).Count(&editionCount)
	db.Model(&entities.Article{}).Count(&articleCount)
	assert.Zero(t, editionCount)
	assert.Zero(t, articleCount)

	_, err := repo.GetByID(event.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
