package books

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/viraatdas/lendy/internal/database/users"
	"github.com/viraatdas/lendy/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *users.Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Book{})
	require.NoError(t, err)

	usersRepo := users.NewRepository(db)
	repo := NewRepository(db, usersRepo)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, usersRepo, cleanup
}

func TestRepository_Add(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("Alice", "Dune", "", "", "")

	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, DefaultAuthor, book.Author)
	assert.Equal(t, "alice", book.OwnerUsername)
	assert.Nil(t, book.LentToName)
	assert.Nil(t, book.BorrowerUsername)
}

func TestRepository_Add_CreatesOwnerLazily(t *testing.T) {
	repo, usersRepo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Add("newowner", "Dune", "Frank Herbert", "", "")
	require.NoError(t, err)

	user, err := usersRepo.GetByUsername("newowner")
	require.NoError(t, err)
	assert.Equal(t, "newowner", user.Username)
}

func TestRepository_Add_EmptyTitle(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Add("alice", "", "", "", "")

	assert.Error(t, err)
}

func TestRepository_Add_KeepsMetadata(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "Dune", "Frank Herbert", "https://covers.example/dune.jpg", "/works/OL893415W")

	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, "https://covers.example/dune.jpg", book.CoverURL)
	assert.Equal(t, "/works/OL893415W", book.CatalogKey)
}

func TestRepository_Lend(t *testing.T) {
	repo, usersRepo, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "1984", "George Orwell", "", "")
	require.NoError(t, err)

	lent, err := repo.Lend(book.ID, "Bob", "Bob")

	require.NoError(t, err)
	require.NotNil(t, lent.LentToName)
	assert.Equal(t, "Bob", *lent.LentToName)
	require.NotNil(t, lent.BorrowerUsername)
	assert.Equal(t, "bob", *lent.BorrowerUsername)

	// The borrower was created lazily
	borrower, err := usersRepo.GetByUsername("bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", borrower.Username)
}

func TestRepository_Lend_NameOnly(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "1984", "", "", "")
	require.NoError(t, err)

	lent, err := repo.Lend(book.ID, "Grandma", "")

	require.NoError(t, err)
	require.NotNil(t, lent.LentToName)
	assert.Equal(t, "Grandma", *lent.LentToName)
	assert.Nil(t, lent.BorrowerUsername)
}

func TestRepository_Lend_OverwritesPreviousRecipient(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "1984", "", "", "")
	require.NoError(t, err)

	_, err = repo.Lend(book.ID, "Bob", "bob")
	require.NoError(t, err)

	lent, err := repo.Lend(book.ID, "Carol", "")

	require.NoError(t, err)
	assert.Equal(t, "Carol", *lent.LentToName)
	assert.Nil(t, lent.BorrowerUsername)
}

func TestRepository_Lend_EmptyRecipient(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "1984", "", "", "")
	require.NoError(t, err)

	_, err = repo.Lend(book.ID, "", "")

	assert.Error(t, err)
}

func TestRepository_Lend_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Lend("nonexistent-id", "Bob", "")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Return_RoundTrip(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "1984", "", "", "")
	require.NoError(t, err)

	_, err = repo.Lend(book.ID, "Bob", "bob")
	require.NoError(t, err)

	returned, err := repo.Return(book.ID)

	require.NoError(t, err)
	assert.Nil(t, returned.LentToName)
	assert.Nil(t, returned.BorrowerUsername)
}

func TestRepository_Return_AvailableBookIsNoOp(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "1984", "", "", "")
	require.NoError(t, err)

	returned, err := repo.Return(book.ID)

	require.NoError(t, err)
	assert.Nil(t, returned.LentToName)
	assert.Nil(t, returned.BorrowerUsername)
}

func TestRepository_Return_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Return("nonexistent-id")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListForUser_Classification(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	owned, err := repo.Add("alice", "The Dispossessed", "", "", "")
	require.NoError(t, err)

	lentOut, err := repo.Add("alice", "1984", "", "", "")
	require.NoError(t, err)
	_, err = repo.Lend(lentOut.ID, "Bob", "bob")
	require.NoError(t, err)

	aliceBooks, err := repo.ListForUser("Alice")
	require.NoError(t, err)

	require.Len(t, aliceBooks.Owned, 1)
	assert.Equal(t, owned.ID, aliceBooks.Owned[0].ID)
	require.Len(t, aliceBooks.Lending, 1)
	assert.Equal(t, lentOut.ID, aliceBooks.Lending[0].ID)
	assert.Empty(t, aliceBooks.Borrowed)

	bobBooks, err := repo.ListForUser("bob")
	require.NoError(t, err)

	assert.Empty(t, bobBooks.Owned)
	assert.Empty(t, bobBooks.Lending)
	require.Len(t, bobBooks.Borrowed, 1)
	assert.Equal(t, lentOut.ID, bobBooks.Borrowed[0].ID)
}

func TestRepository_ListForUser_NameOnlyLendHasNoBorrower(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "1984", "", "", "")
	require.NoError(t, err)
	_, err = repo.Lend(book.ID, "Bob", "")
	require.NoError(t, err)

	aliceBooks, err := repo.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, aliceBooks.Lending, 1)

	bobBooks, err := repo.ListForUser("bob")
	require.NoError(t, err)
	assert.Empty(t, bobBooks.Borrowed)

	// Returning it restores the book to alice's owned list
	_, err = repo.Return(book.ID)
	require.NoError(t, err)

	aliceBooks, err = repo.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, aliceBooks.Owned, 1)
	assert.Equal(t, book.ID, aliceBooks.Owned[0].ID)
	assert.Empty(t, aliceBooks.Lending)
}

func TestRepository_ListForUser_NewestFirst(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.Add("alice", "First", "", "", "")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := repo.Add("alice", "Second", "", "", "")
	require.NoError(t, err)

	collections, err := repo.ListForUser("alice")
	require.NoError(t, err)

	require.Len(t, collections.Owned, 2)
	assert.Equal(t, second.ID, collections.Owned[0].ID)
	assert.Equal(t, first.ID, collections.Owned[1].ID)
}

func TestRepository_ListForUser_EmptyCollectionsAreNotNil(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	collections, err := repo.ListForUser("nobody")

	require.NoError(t, err)
	assert.NotNil(t, collections.Owned)
	assert.NotNil(t, collections.Lending)
	assert.NotNil(t, collections.Borrowed)
}

func TestRepository_Delete_ByOwner(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "Dune", "", "", "")
	require.NoError(t, err)

	err = repo.Delete(book.ID, "Alice")

	require.NoError(t, err)
	_, err = repo.GetByID(book.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Delete_NonOwnerLeavesRecordUnchanged(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book, err := repo.Add("alice", "Dune", "", "", "")
	require.NoError(t, err)

	err = repo.Delete(book.ID, "mallory")

	assert.ErrorIs(t, err, ErrNotFound)

	still, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", still.OwnerUsername)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete("nonexistent-id", "alice")

	assert.ErrorIs(t, err, ErrNotFound)
}
