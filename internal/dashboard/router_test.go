package dashboard_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/dashboard"
	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/pkg/placement"
)

func TestRouter_VisibilityByRole(t *testing.T) {
	tests := []struct {
		role   string
		panels []dashboard.Panel
	}{
		{"admin", []dashboard.Panel{
			dashboard.PanelOverview, dashboard.PanelMetrics, dashboard.PanelUsers,
			dashboard.PanelStudents, dashboard.PanelPlacements, dashboard.PanelHelp,
		}},
		{"student", []dashboard.Panel{
			dashboard.PanelProfile, dashboard.PanelMyPlacements, dashboard.PanelMyStatus,
			dashboard.PanelMyPrediction, dashboard.PanelMyEvaluation, dashboard.PanelHelp,
		}},
		{"company", []dashboard.Panel{
			dashboard.PanelBrowse, dashboard.PanelCompanyPlacements,
			dashboard.PanelCompanyReports, dashboard.PanelHelp,
		}},
		// an unknown role still gets the role-independent entries
		{"intruder", []dashboard.Panel{dashboard.PanelHelp}},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			sess := adminSession()
			sess.Role = tt.role
			r := dashboard.NewRouter(context.Background(), sess, nil, &fakeNotifier{}, nil)

			var got []dashboard.Panel
			for _, entry := range r.Visible() {
				got = append(got, entry.Panel)
			}
			require.Equal(t, tt.panels, got)
		})
	}
}

func TestRouter_AutoActivatesFirstVisibleOnce(t *testing.T) {
	var calls int32
	loaders := map[dashboard.Panel]dashboard.Loader{
		dashboard.PanelOverview: func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		},
	}
	r := dashboard.NewRouter(context.Background(), adminSession(), loaders, &fakeNotifier{}, nil)
	r.Wait()

	active, ok := r.Active()
	require.True(t, ok)
	require.Equal(t, dashboard.PanelOverview, active)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRouter_HiddenPanelRejected(t *testing.T) {
	r := dashboard.NewRouter(context.Background(), studentSession(), nil, &fakeNotifier{}, nil)
	err := r.Activate(dashboard.PanelUsers)
	require.ErrorIs(t, err, dashboard.ErrPanelHidden)

	// the active panel is untouched by the rejected transition
	active, ok := r.Active()
	require.True(t, ok)
	require.Equal(t, dashboard.PanelProfile, active)
}

func TestRouter_ExactlyOneActive(t *testing.T) {
	r := dashboard.NewRouter(context.Background(), adminSession(), nil, &fakeNotifier{}, nil)
	require.NoError(t, r.Activate(dashboard.PanelStudents))
	require.NoError(t, r.Activate(dashboard.PanelUsers))

	var activeCount int
	for _, entry := range r.Visible() {
		if entry.Active {
			activeCount++
			require.Equal(t, dashboard.PanelUsers, entry.Panel)
		}
	}
	require.Equal(t, 1, activeCount)
}

func TestRouter_StaticPanelActivates(t *testing.T) {
	r := dashboard.NewRouter(context.Background(), companySession(), nil, &fakeNotifier{}, nil)
	require.NoError(t, r.Activate(dashboard.PanelHelp))

	active, ok := r.Active()
	require.True(t, ok)
	require.Equal(t, dashboard.PanelHelp, active)
}

func TestRouter_StaleLoaderDropsSilently(t *testing.T) {
	notifier := &fakeNotifier{}
	started := make(chan struct{})
	loaders := map[dashboard.Panel]dashboard.Loader{
		dashboard.PanelOverview: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		},
		dashboard.PanelUsers: func(ctx context.Context) error { return nil },
	}

	r := dashboard.NewRouter(context.Background(), adminSession(), loaders, notifier, nil)
	<-started
	require.NoError(t, r.Activate(dashboard.PanelUsers))
	r.Wait()

	// the canceled overview loader must not surface an error toast
	require.Empty(t, notifier.Errors())
}

func TestRouter_LoaderFailureSurfacesServerMessage(t *testing.T) {
	notifier := &fakeNotifier{}
	loaders := map[dashboard.Panel]dashboard.Loader{
		dashboard.PanelOverview: func(ctx context.Context) error {
			return &placement.APIError{StatusCode: 500, Message: "Database unavailable"}
		},
	}
	r := dashboard.NewRouter(context.Background(), adminSession(), loaders, notifier, nil)
	r.Wait()

	require.Equal(t, []string{"Database unavailable"}, notifier.Errors())
}

func TestRouter_ReloadRerunsActiveLoader(t *testing.T) {
	var calls int32
	loaders := map[dashboard.Panel]dashboard.Loader{
		dashboard.PanelOverview: func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		},
	}
	r := dashboard.NewRouter(context.Background(), adminSession(), loaders, &fakeNotifier{}, nil)
	r.Wait()
	r.Reload()
	r.Wait()

	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}
