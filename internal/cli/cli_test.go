package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"restaurant-floor/internal/connections/database"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateSQLiteFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floor.db")
	t.Setenv("FLOOR_DB_DRIVER", "sqlite")
	t.Setenv("FLOOR_DB_PATH", path)

	out, err := execute(t, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "applied 1 migration(s)") {
		t.Fatalf("output = %q", out)
	}

	out, err = execute(t, "migrate")
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if !strings.Contains(out, "applied 0 migration(s)") {
		t.Fatalf("second output = %q", out)
	}

	db, err := database.OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM wait_list").Scan(&n); err != nil {
		t.Fatalf("wait_list missing: %v", err)
	}
}

func TestMigrateWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "database:\n  driver: sqlite\n  path: " + filepath.Join(dir, "floor.db") + "\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if out, err := execute(t, "migrate", "--config", cfgPath); err != nil {
		t.Fatalf("migrate: %v\n%s", err, out)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := execute(t, "migrate", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}

	t.Setenv("FLOOR_DB_DRIVER", "oracle")
	if _, err := execute(t, "migrate"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestKitchenRequiresBroker(t *testing.T) {
	t.Setenv("FLOOR_DB_DRIVER", "sqlite")
	t.Setenv("FLOOR_DB_PATH", filepath.Join(t.TempDir(), "floor.db"))
	t.Setenv("FLOOR_RABBITMQ_ENABLED", "false")
	if _, err := execute(t, "kitchen"); err == nil {
		t.Fatal("expected error when rabbitmq is disabled")
	}
}
