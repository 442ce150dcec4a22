package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"hostdash/cmd"
	"hostdash/internal/credentials"
	"hostdash/internal/server"
	"hostdash/internal/session"
	"hostdash/internal/telemetry"

	msgs "github.com/cucumber/messages/go/v28"
	"github.com/go-bdd/gobdd"
	"github.com/rs/zerolog"
)

func TestBDD(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	suite := gobdd.NewSuite(t,
		gobdd.WithFeaturesPath("features/*.feature"),
		gobdd.WithBeforeScenario(func(ctx gobdd.Context) {
			lastOutput = ""
			stopServer()
		}),
	)

	suite.AddStep(`the dashboard server is running`, givenServerIsRunning)
	suite.AddStep(`these users have logged in:`, givenUsersLoggedIn)
	suite.AddStep(`(\d+) distinct users have logged in`, givenDistinctUsersLoggedIn)
	suite.AddStep(`I run the command "(.*)"`, whenIRunCommand)
	suite.AddStep(`the output should contain "(.*)"`, thenOutputShouldContain)
	suite.AddStep(`the server should have received a request for "(.*)"`, thenServerReceivedRequest)
	suite.AddStep(`the server should have (\d+) current users`, thenCurrentUserCount)
	suite.AddStep(`the history should list "(.*)"`, thenHistoryShouldList)

	suite.Run()
	stopServer()
}

var (
	lastOutput string
	dashServer *httptest.Server
	registry   *session.Registry

	requestsMu       sync.Mutex
	receivedRequests []string
)

func testCredentials() *credentials.Store {
	users := make(map[string]string, 20)
	for i := 1; i <= 20; i++ {
		users[fmt.Sprintf("user%d", i)] = fmt.Sprintf("pass%d", i)
	}
	return credentials.New(users)
}

func stopServer() {
	if dashServer != nil {
		dashServer.Close()
		dashServer = nil
	}
	requestsMu.Lock()
	receivedRequests = nil
	requestsMu.Unlock()
}

func givenServerIsRunning(t gobdd.StepTest, ctx gobdd.Context) {
	registry = session.NewRegistry(testCredentials())
	aggregator := telemetry.New(telemetry.NewHost(), telemetry.Config{LogPaths: []string{}})
	srv := server.New(registry, aggregator, server.Options{Logger: zerolog.Nop()})

	handler := srv.Handler()
	dashServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsMu.Lock()
		receivedRequests = append(receivedRequests, r.URL.Path)
		requestsMu.Unlock()
		handler.ServeHTTP(w, r)
	}))
}

func givenUsersLoggedIn(t gobdd.StepTest, ctx gobdd.Context, table msgs.DataTable) {
	// Skip header row
	for i := 1; i < len(table.Rows); i++ {
		row := table.Rows[i]
		runCommand("login", row.Cells[0].Value, row.Cells[1].Value)
		if !strings.Contains(lastOutput, "Logged in as") {
			t.Errorf("login %s failed: %q", row.Cells[0].Value, lastOutput)
		}
	}
}

func givenDistinctUsersLoggedIn(t gobdd.StepTest, ctx gobdd.Context, n int) {
	for i := 1; i <= n; i++ {
		runCommand("login", fmt.Sprintf("user%d", i), fmt.Sprintf("pass%d", i))
	}
}

func runCommand(args ...string) {
	if dashServer != nil {
		args = append(args, "--server", dashServer.URL)
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	cmd.Execute()

	lastOutput = buf.String()
}

func whenIRunCommand(t gobdd.StepTest, ctx gobdd.Context, commandLine string) {
	runCommand(strings.Fields(commandLine)...)
}

func thenOutputShouldContain(t gobdd.StepTest, ctx gobdd.Context, expected string) {
	if !strings.Contains(lastOutput, expected) {
		t.Errorf("expected output to contain %q, but got %q", expected, lastOutput)
	}
}

func thenServerReceivedRequest(t gobdd.StepTest, ctx gobdd.Context, expectedPath string) {
	requestsMu.Lock()
	defer requestsMu.Unlock()

	for _, path := range receivedRequests {
		if path == expectedPath {
			return
		}
	}
	t.Errorf("expected server to have received request for %q, but it didn't. Received: %v", expectedPath, receivedRequests)
}

func thenCurrentUserCount(t gobdd.StepTest, ctx gobdd.Context, n int) {
	if got := len(registry.ListCurrent()); got != n {
		t.Errorf("expected %d current users, got %d", n, got)
	}
}

func thenHistoryShouldList(t gobdd.StepTest, ctx gobdd.Context, csv string) {
	runCommand("history")

	var got []string
	for _, line := range strings.Split(strings.TrimSpace(lastOutput), "\n") {
		// "[2026-03-14 09:26:53] user1 from 127.0.0.1"
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			got = append(got, fields[2])
		}
	}
	if want := strings.Split(csv, ","); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected history %v, got %v (output %q)", want, got, lastOutput)
	}
}
