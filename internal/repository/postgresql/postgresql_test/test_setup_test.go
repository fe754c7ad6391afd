package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/postgresql"
)

// TestDatabaseSetup untuk menginisialisasi test database
type TestDatabaseSetup struct {
	DB      *database.DB
	Backend *postgresql.KVBackend
}

// NewTestDatabase membuat koneksi ke test database. ok=false when TEST_DATABASE_URL is unset.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	backend := postgresql.NewKVBackend(db)
	if err := backend.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, true, err
	}

	return &TestDatabaseSetup{DB: db, Backend: backend}, true, nil
}

// TruncateAllTables menghapus semua data dari tabel
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	_, err := t.DB.Exec(ctx, "TRUNCATE TABLE kv_store")
	return err
}

// Close menutup koneksi database
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
