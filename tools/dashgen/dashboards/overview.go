// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/rocketsource-go/tools/dashgen/panels"
)

// UID is the stable identifier of the overview dashboard.
const UID = "rsc-overview"

// BuildOverview constructs the RocketSource client overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("RSC Overview").
		Uid(UID).
		Tags([]string{"rsc", "rocketsource"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Errors").
		WithPanel(panels.RateLimitedStat()).
		WithPanel(panels.AuthFailuresStat()).
		WithPanel(panels.ServerErrorsStat()).
		WithPanel(panels.TimeoutsStat()))

	b.WithRow(dashboard.NewRowBuilder("Client").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorsByKind()).
		WithPanel(panels.ErrorRatio()))

	b.WithRow(dashboard.NewRowBuilder("Batch").
		WithPanel(panels.ChunkRate()).
		WithPanel(panels.ChunkFill()))

	b.WithRow(dashboard.NewRowBuilder("Mock Server").
		WithPanel(panels.MockRequestRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
