package nutri

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nelsoncalle/nutricion/internal/service"
	"github.com/nelsoncalle/nutricion/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default; cobra keeps parsed values
// in package variables between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runNutri(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--db", dbPath, "--log-level", "fatal"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := runNutri(t, dbPath, args...)
	if err != nil {
		t.Fatalf("nutri %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	resetFlags(rootCmd)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nutriapp.db")
	for i := 0; i < 2; i++ {
		out := mustRun(t, path, "init")
		if !strings.Contains(out, "Initialized nutri database") {
			t.Fatalf("init run %d unexpected output: %s", i+1, out)
		}
	}
}

func TestDayInTheLife(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutriapp.db")
	mustRun(t, path, "food", "add", "--name", "Pasta", "--calories", "400", "--meal", "lunch", "--date", "2024-05-01")
	mustRun(t, path, "food", "add", "--name", "Apple", "--calories", "100", "--quantity", "2", "--meal", "snack", "--date", "2024-05-01")
	mustRun(t, path, "exercise", "add", "--name", "Walk", "--duration", "40", "--calories", "150", "--date", "2024-05-01")
	mustRun(t, path, "exercise", "add", "--name", "Run", "--duration", "30", "--calories", "300", "--date", "2024-05-01")
	mustRun(t, path, "weight", "add", "--weight", "71.3", "--date", "2024-05-01")

	out := mustRun(t, path, "today", "--date", "2024-05-01")
	for _, want := range []string{"Intake: 600 kcal", "Burned: 450 kcal", "Net: 150 kcal", "lunch\t400 kcal", "snack\t200 kcal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in today output:\n%s", want, out)
		}
	}

	out = mustRun(t, path, "food", "list", "--date", "2024-05-01")
	if !strings.Contains(out, "Total\t600 kcal") {
		t.Fatalf("expected daily total in food list:\n%s", out)
	}
	out = mustRun(t, path, "weight", "list")
	if !strings.Contains(out, "2024-05-01\t71.30 kg") {
		t.Fatalf("expected weight row:\n%s", out)
	}
	out = mustRun(t, path, "weight", "list", "--unit", "lb")
	if !strings.Contains(out, "157.19 lb") {
		t.Fatalf("expected weight in pounds:\n%s", out)
	}
}

func TestFoodAddRejectsUnknownMeal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutriapp.db")
	_, err := runNutri(t, path, "food", "add", "--name", "Cake", "--calories", "300", "--meal", "brunch", "--date", "2024-05-01")
	if err == nil || !strings.Contains(err.Error(), "invalid meal type") {
		t.Fatalf("expected invalid meal type error, got %v", err)
	}
	out := mustRun(t, path, "food", "list")
	if strings.Contains(out, "Cake") {
		t.Fatalf("rejected food was stored:\n%s", out)
	}
}

func TestFoodListByMeal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutriapp.db")
	mustRun(t, path, "food", "add", "--name", "Oats", "--calories", "300", "--meal", "breakfast", "--date", "2024-05-01")
	mustRun(t, path, "food", "add", "--name", "Soup", "--calories", "200", "--meal", "lunch", "--date", "2024-05-01")

	out := mustRun(t, path, "food", "list", "--meal", "breakfast")
	if !strings.Contains(out, "Oats") || strings.Contains(out, "Soup") {
		t.Fatalf("expected only breakfast rows:\n%s", out)
	}

	_, err := runNutri(t, path, "food", "list", "--meal", "brunch")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected invalid meal filter to fail, got %v", err)
	}
}

func TestDeleteMissingIDSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutriapp.db")
	mustRun(t, path, "food", "delete", "42")
	mustRun(t, path, "exercise", "delete", "42")
	mustRun(t, path, "weight", "delete", "42")

	if _, err := runNutri(t, path, "food", "delete", "abc"); err == nil {
		t.Fatalf("expected non-numeric id to be rejected")
	}
}

func TestCommandsReportUnavailableStorage(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	path := filepath.Join(blocker, "nutriapp.db")

	out, err := runNutri(t, path, "weight", "add", "--weight", "70", "--date", "2024-05-01")
	if err == nil || !strings.Contains(err.Error(), store.ErrUnavailable.Error()) {
		t.Fatalf("expected storage unavailable error, got %v", err)
	}
	if strings.Contains(out, "Added weight entry") {
		t.Fatalf("add should not report success in degraded mode:\n%s", out)
	}

	if _, err := runNutri(t, path, "doctor"); err == nil {
		t.Fatalf("expected doctor to refuse to run without storage")
	}
}

func TestExportImportYAML(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	snapshot := filepath.Join(dir, "snapshot.yaml")

	mustRun(t, src, "food", "add", "--name", "Oats", "--calories", "300", "--meal", "breakfast", "--date", "2024-05-01")
	mustRun(t, src, "exercise", "add", "--name", "Swim", "--duration", "30", "--calories", "250", "--date", "2024-05-01")
	mustRun(t, src, "export", "--format", "yaml", "--out", snapshot)

	out := mustRun(t, dst, "import", "--format", "yaml", "--in", snapshot, "--dry-run")
	if !strings.Contains(out, "Dry-run validated weights=0 foods=1 exercises=1") {
		t.Fatalf("unexpected dry-run output: %s", out)
	}
	if out := mustRun(t, dst, "food", "list"); strings.Contains(out, "Oats") {
		t.Fatalf("dry-run import wrote rows:\n%s", out)
	}

	mustRun(t, dst, "import", "--format", "yaml", "--in", snapshot)
	out = mustRun(t, dst, "today", "--date", "2024-05-01")
	if !strings.Contains(out, "Intake: 300 kcal") || !strings.Contains(out, "Burned: 250 kcal") {
		t.Fatalf("imported rows missing from summary:\n%s", out)
	}

	if _, err := runNutri(t, dst, "import", "--in", snapshot, "--format", "yaml", "--mode", "merge"); err == nil {
		t.Fatalf("expected unsupported import mode to fail")
	}
}

func TestDoctorAndBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nutriapp.db")
	backups := filepath.Join(dir, "backups")

	mustRun(t, path, "weight", "add", "--weight", "70", "--date", "2024-05-01")
	out := mustRun(t, path, "doctor")
	if !strings.Contains(out, "Invalid weights: 0") {
		t.Fatalf("unexpected doctor output:\n%s", out)
	}

	out = mustRun(t, path, "backup", "create", "--dir", backups)
	if !strings.Contains(out, "Snapshot "+backups) {
		t.Fatalf("unexpected backup output:\n%s", out)
	}
	items, err := service.ListBackups(backups)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one backup, got %d", len(items))
	}

	restored := filepath.Join(dir, "restored.db")
	mustRun(t, restored, "backup", "restore", "--file", items[0].Path)
	out = mustRun(t, restored, "weight", "list")
	if !strings.Contains(out, "70.00 kg") {
		t.Fatalf("restored database is missing the weight row:\n%s", out)
	}
}

func TestBackupRestoreRejectsForeignFile(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a sqlite database"), 0o644); err != nil {
		t.Fatalf("write bogus file: %v", err)
	}
	target := filepath.Join(dir, "target.db")

	if _, err := runNutri(t, target, "backup", "restore", "--file", bogus); err == nil || !strings.Contains(err.Error(), "--no-verify") {
		t.Fatalf("expected missing sidecar error, got %v", err)
	}
	if _, err := runNutri(t, target, "backup", "restore", "--file", bogus, "--no-verify"); !errors.Is(err, service.ErrBackupUnverified) {
		t.Fatalf("expected schema check to reject the file, got %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("rejected restore created the target: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, filepath.Join(t.TempDir(), "nutriapp.db"), "version")
	if !strings.HasPrefix(out, "nutri dev") {
		t.Fatalf("unexpected version output: %s", out)
	}
}
