package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"taskctl/internal/backend/restapi"
	"taskctl/internal/cli"
	"taskctl/internal/commands"
	"taskctl/internal/config"
	"taskctl/internal/exitcode"
	"taskctl/internal/service"
	"taskctl/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// isolate points the default config directory at a temp dir and clears
// the environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvToken, "")
	return filepath.Join(xdg, config.AppName)
}

func run(d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	if svc.TotalCalls() != 0 {
		t.Errorf("expected no backend calls, got %d", svc.TotalCalls())
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskctl 0.1.0\n" {
		t.Errorf("expected 'taskctl 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(dispatcher, "list", "--config")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -config\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask(1, "Buy milk", false)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.Calls("ListTasks") != 1 {
		t.Errorf("expected one list call, got %d", svc.Calls("ListTasks"))
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		stderr string
	}{
		{"backend", errors.New("invalid base url: \"ftp://x\""), exitcode.BackendError, "error: backend error: invalid base url: \"ftp://x\"\n"},
		{"auth", &service.TransportError{StatusCode: 401}, exitcode.AuthError, "error: auth error: http error: status 401\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
				return nil, tt.err
			}
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

			_, stderr, code := run(dispatcher, "list")

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

func TestDispatcher_InsecureCredentials(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	isolate(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.CredentialsFile), []byte("[api]\ntoken = \"x\"\n"), 0644); err != nil {
		t.Fatalf("failed to write credentials: %v", err)
	}

	called := false
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		called = true
		return testutil.NewFakeService(), nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(dispatcher, "list", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: auth error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if called {
		t.Error("factory should not be called")
	}
}

func TestDispatcher_BadConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("timeout: soon\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(dispatcher, "list", "--config", dir)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "bad timeout") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	// help does not read the config file
	_, _, code = run(dispatcher, "help", "--config", dir)
	if code != exitcode.Success {
		t.Errorf("expected help to succeed, got %d", code)
	}
}

func TestDispatcher_BaseURLFlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvBaseURL, "http://env.example.com/api")

	var got string
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		got = cfg.BaseURL
		return testutil.NewFakeService(), nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	if _, _, code := run(dispatcher, "list", "--base-url", "http://flag.example.com/api"); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got != "http://flag.example.com/api" {
		t.Errorf("expected flag base url, got %q", got)
	}
}

func TestDispatcher_DebugLogsTransitions(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(dispatcher, "add", "--debug", "Buy milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	for _, want := range []string{"level=DEBUG", "msg=transition", "component=store", "component=operations"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected debug output to contain %q, got %q", want, stderr)
		}
	}
}

func TestDispatcher_NoDebugOutputByDefault(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(dispatcher, "add", "Buy milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
}

func TestDispatcher_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask(1, "One", false)
	svc.AddTask(2, "Two", false)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	if _, stderr, code := run(dispatcher, "edit", "--title", "renamed", "1"); code != exitcode.Success {
		t.Fatalf("first edit: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if _, stderr, code := run(dispatcher, "edit", "--done", "2"); code != exitcode.Success {
		t.Fatalf("second edit: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}

	tasks := svc.Tasks()
	if tasks[0].Title != "renamed" || tasks[0].Completed {
		t.Errorf("task 1: expected renamed and open, got %+v", tasks[0])
	}
	if tasks[1].Title != "Two" || !tasks[1].Completed {
		t.Errorf("task 2: expected title kept and completed, got %+v", tasks[1])
	}
}

func TestDispatcher_ConfirmReadsInput(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask(4, "Old", false)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	dispatcher.SetInput(strings.NewReader("y\n"))

	stdout, stderr, code := run(dispatcher, "rm", "4")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "Delete task 4 (Old)? [y/N] " {
		t.Errorf("unexpected prompt %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if len(svc.Tasks()) != 0 {
		t.Errorf("expected task removed, got %+v", svc.Tasks())
	}
}

// TestDispatcher_RESTBackend runs commands through the real HTTP gateway.
func TestDispatcher_RESTBackend(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvToken, "env-token")

	var auth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/tasks":
			w.Write([]byte(`{"estado":"ok","data":[{"id":1,"title":"Buy milk","completed":false},{"id":2,"title":"Walk dog","completed":true}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/tasks":
			w.Write([]byte(`{"estado":"ok","data":{"id":3,"title":"New","completed":false}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		c, err := restapi.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	stdout, stderr, code := run(dispatcher, "list", "--base-url", srv.URL+"/api")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] Buy milk\n   2  [x] Walk dog\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	stdout, _, code = run(dispatcher, "add", "--print-id", "--base-url", srv.URL+"/api", "New")
	if code != exitcode.Success || stdout != "3\n" {
		t.Errorf("expected id 3, got %d %q", code, stdout)
	}

	_, stderr, code = run(dispatcher, "show", "--base-url", srv.URL+"/api", "9")
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: http error: status 404\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}

	for _, a := range auth {
		if a != "Bearer env-token" {
			t.Errorf("expected bearer token from environment, got %q", a)
		}
	}
}
