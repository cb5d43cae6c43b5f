package dashboard_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/dashboard"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/session"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

// fakeNotifier captures toast messages for assertions.
type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *fakeNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

func (n *fakeNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// fakeRenderer captures every view handed to it.
type fakeRenderer struct {
	mu    sync.Mutex
	views []dashboard.PanelView
}

func (r *fakeRenderer) Render(view dashboard.PanelView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
}

func (r *fakeRenderer) Views() []dashboard.PanelView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dashboard.PanelView(nil), r.views...)
}

func (r *fakeRenderer) Last() (dashboard.PanelView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.views) == 0 {
		return dashboard.PanelView{}, false
	}
	return r.views[len(r.views)-1], true
}

func confirmAlways() dashboard.Confirmer { return dashboard.ConfirmFunc(func(string) bool { return true }) }
func confirmNever() dashboard.Confirmer  { return dashboard.ConfirmFunc(func(string) bool { return false }) }

func adminSession() *session.Session   { return &session.Session{Role: "admin"} }
func studentSession() *session.Session { return &session.Session{Role: "student"} }
func companySession() *session.Session { return &session.Session{Role: "company"} }

func newGateway(t *testing.T, baseURL, token string) *placement.Client {
	t.Helper()
	client, err := placement.NewClient(
		placement.Config{BaseURL: baseURL, Timeout: 2 * time.Second},
		placement.StaticToken(token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}
