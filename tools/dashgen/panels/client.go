package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing API request rate by route.
func RequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Request Rate").
		Description("RocketSource API requests per second by route").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`rsc:client_requests:rate5m`, "{{route}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LatencyPercentiles returns a timeseries panel showing p50, p95 and p99
// API request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	b := timeseries.NewPanelBuilder().
		Title("Latency Percentiles").
		Description("RocketSource API request duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth)

	for i, q := range []string{"0.50", "0.95", "0.99"} {
		expr := fmt.Sprintf(
			`histogram_quantile(%s, sum(rate(rsc_client_request_duration_seconds_bucket{job=%q}[5m])) by (le))`,
			q, ClientJob,
		)
		b = b.WithTarget(PromQuery(expr, "p"+q[2:], string(rune('A'+i))))
	}

	return b.
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ErrorsByKind returns a timeseries panel showing failed requests per second
// split by error kind.
func ErrorsByKind() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Errors by Kind").
		Description("Failed API requests per second by error kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`rsc:client_errors:rate5m`, "{{kind}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ErrorRatio returns a timeseries panel showing failed requests as a
// percentage of all requests.
func ErrorRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Error Rate %").
		Description("Failed API requests as percentage of total requests").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rsc:client_errors:rate5m) / sum(rsc:client_requests:rate5m) * 100`,
			"error %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RateLimitedStat returns a stat panel counting 429 responses over the
// dashboard range.
func RateLimitedStat() *stat.PanelBuilder {
	return errorKindStat("Rate Limited", "Requests rejected with 429 in range", "rate_limit")
}

// AuthFailuresStat returns a stat panel counting 401 and 403 responses over
// the dashboard range.
func AuthFailuresStat() *stat.PanelBuilder {
	return errorKindStat("Auth Failures", "Requests rejected with 401 or 403 in range", "authentication|authorization")
}

// ServerErrorsStat returns a stat panel counting 5xx responses over the
// dashboard range.
func ServerErrorsStat() *stat.PanelBuilder {
	return errorKindStat("Server Errors", "Requests failed with 5xx in range", "server")
}

// TimeoutsStat returns a stat panel counting requests that got no response.
func TimeoutsStat() *stat.PanelBuilder {
	return errorKindStat("Generic Errors", "Timeouts, connection failures and unmapped statuses in range", "generic")
}

func errorKindStat(title, desc, kindRegex string) *stat.PanelBuilder {
	expr := fmt.Sprintf(`sum(increase(rsc_client_errors_total{kind=~%q}[$__range]))`, kindRegex)
	return stat.NewPanelBuilder().
		Title(title).
		Description(desc).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea).
		TextMode(common.BigValueTextModeValue)
}
