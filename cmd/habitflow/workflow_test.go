package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitflow/internal/fakeapi"
)

// buildCLI returns the binary named by HABITFLOW_BIN, or builds one
func buildCLI(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("HABITFLOW_BIN"); p != "" {
		return p
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available to build the CLI")
	}
	path := filepath.Join(t.TempDir(), "habitflow")
	out, err := exec.Command(goBin, "build", "-o", path, ".").CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, out)
	}
	return path
}

func TestEndToEndWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}
	cliPath := buildCLI(t)

	srv := fakeapi.New()
	defer srv.Close()

	home := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "HABITFLOW_") {
			env = append(env, e)
		}
	}
	env = append(env, "HOME="+home)

	base := []string{
		"--config-dir", filepath.Join(home, "habitflow"),
		"--api-url", srv.URL,
		"--credential-backend", "sqlite",
	}
	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command(cliPath, append(base, args...)...)
		cmd.Env = env
		cmd.Dir = home
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("Command %v failed: %v\nOutput: %s", args, err, out)
		}
		return string(out)
	}
	expect := func(out, want string) {
		t.Helper()
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	t.Log("Registering...")
	expect(run("auth", "register", "--name", "Ava", "--email", "ava@example.com", "--password", "secret1"),
		"Account created. Welcome, Ava!")

	t.Log("Adding a habit...")
	expect(run("habit", "add", "Read", "--description", "20 pages"), "Habit created.")
	expect(run("habit", "list"), "Read")

	t.Log("Completing the habit...")
	id := findHabitID(t, run("habit", "list"), "Read")
	expect(run("habit", "complete", id), "Habit marked as completed for today.")
	expect(run("habit", "list"), "✓")

	t.Log("Checking the dashboard...")
	dash := run("dashboard")
	expect(dash, "Ava's dashboard")
	expect(dash, "Last 7 days")

	status := run("auth", "status")
	expect(status, "Signed in as Ava <ava@example.com>")
	expect(status, "sqlite")

	t.Log("Logging out...")
	expect(run("auth", "logout"), "You have been logged out.")

	cmd := exec.Command(cliPath, append(base, "habit", "list")...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("habit list after logout succeeded:\n%s", out)
	}
	expect(string(out), "Not logged in")
}

// findHabitID picks the short id printed next to title by "habit list"
func findHabitID(t *testing.T, list, title string) string {
	t.Helper()
	for _, line := range strings.Split(list, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 3 && fields[2] == title {
			return fields[1]
		}
	}
	t.Fatalf("habit %q not found in list:\n%s", title, list)
	return ""
}
