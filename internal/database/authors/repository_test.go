package authors

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
	dbPath := "./test_authors_" + t.Name() + ".db"

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

func TestRepository_GetOrCreateByName_CreatesOnce(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.GetOrCreateByName("Jane Doe")
	require.NoError(t, err)

	second, err := repo.GetOrCreateByName("  Jane Doe  ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&entities.Author{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_FindByName_ExactBeforePartial(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetOrCreateByName("Jane Doe Smith")
	require.NoError(t, err)
	exact, err := repo.GetOrCreateByName("Jane Doe")
	require.NoError(t, err)

	found, err := repo.FindByName("Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, exact.ID, found.ID)
}

func TestRepository_FindByName_PartialFallback(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.GetOrCreateByName("Jane Doe Smith")
	require.NoError(t, err)

	found, err := repo.FindByName("Doe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestRepository_FindByName_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.FindByName("Nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteOrphans(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	event := entities.Event{Name: "SBES"}
	require.NoError(t, db.Create(&event).Error)
	edition := entities.Edition{EventID: event.ID, Year: 2023}
	require.NoError(t, db.Create(&edition).Error)

	withArticle, err := repo.GetOrCreateByName("Has Article")
	require.NoError(t, err)
	article := entities.Article{Title: "Paper", EditionID: edition.ID}
	require.NoError(t, db.Create(&article).Error)
	require.NoError(t, db.Model(&article).Association("Authors").Append(withArticle))

	withSub, err := repo.GetOrCreateByName("Has Subscriber")
	require.NoError(t, err)
	sub := entities.Subscription{Email: "fan@example.com", AuthorID: &withSub.ID}
	require.NoError(t, db.Create(&sub).Error)

	orphan, err := repo.GetOrCreateByName("Orphan")
	require.NoError(t, err)

	deleted, err := repo.DeleteOrphans()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByID(orphan.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	remaining, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
