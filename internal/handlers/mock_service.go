package handlers

import (
	"context"
	"net/http"
	"time"

	"sentinl"
	"sentinl/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockMonitor struct {
	summary   sentinl.SessionSummary
	tickErr   error
	halted    bool
	runCalls  int
	tickCalls int
}

func (m *mockMonitor) Run(ctx context.Context, tick time.Duration) { m.runCalls++ }
func (m *mockMonitor) Tick(ctx context.Context) error {
	m.tickCalls++
	return m.tickErr
}
func (m *mockMonitor) IsHalted() bool                  { return m.halted }
func (m *mockMonitor) Summary() sentinl.SessionSummary { return m.summary }

type mockMonitoring struct {
	state sentinl.MachineState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (sentinl.MachineState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []sentinl.MonitorEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]sentinl.MonitorEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockAudit struct {
	resp  []sentinl.Reading
	err   error
	calls int
}

func (m *mockAudit) ListReadings() ([]sentinl.Reading, error) {
	m.calls++
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
