package shared

import (
	"testing"
)

func TestParseMigrationName(t *testing.T) {
	tc := []struct {
		name      string
		file      string
		version   int
		label     string
		direction string
		ok        bool
	}{
		{"up file", "0001_create_slides_up.sql", 1, "create_slides", "up", true},
		{"down file", "0002_create_file_index_down.sql", 2, "create_file_index", "down", true},
		{"not sql", "0001_create_slides_up.txt", 0, "", "", false},
		{"no direction", "0001_create_slides.sql", 0, "", "", false},
		{"bad version", "abc_create_up.sql", 0, "", "", false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			version, label, direction, ok := parseMigrationName(tt.file)
			if ok != tt.ok || version != tt.version || label != tt.label || direction != tt.direction {
				t.Errorf("parseMigrationName(%q) = (%d, %q, %q, %v)", tt.file, version, label, direction, ok)
			}
		})
	}
}

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration version %d is incomplete", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		ran, err := RunMigrations(db)
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if len(ran) == 0 {
			t.Fatal("expected migrations to be applied")
		}

		if _, err := db.Exec("SELECT 1 FROM slides LIMIT 1"); err != nil {
			t.Errorf("slides table should exist after migrations: %v", err)
		}
		if _, err := db.Exec("SELECT 1 FROM slide_files LIMIT 1"); err != nil {
			t.Errorf("slide_files table should exist after migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		applied, err := AppliedMigrations(db)
		if err != nil {
			t.Fatalf("failed to list applied migrations: %v", err)
		}
		if len(applied) != len(ran)-1 {
			t.Errorf("expected %d applied migrations after rollback, got %d", len(ran)-1, len(applied))
		}

		if _, err := db.Exec("SELECT 1 FROM slide_files LIMIT 1"); err == nil {
			t.Error("slide_files table should be gone after rollback")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if _, err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		ran, err := RunMigrations(db)
		if err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}
		if len(ran) != 0 {
			t.Errorf("second run should apply nothing, applied %v", ran)
		}

		applied, _ := AppliedMigrations(db)
		migrations, _ := loadMigrations()
		if len(applied) != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), len(applied))
		}
	})

	t.Run("Rollback Without Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing has been applied")
		}
	})
}
