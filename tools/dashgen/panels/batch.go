package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ChunkRate returns a timeseries panel showing batch conversion chunks and
// identifiers sent per second.
func ChunkRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Batch Throughput").
		Description("Identifier chunks and identifiers sent for conversion per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`rsc:batch_chunks:rate5m`, "chunks/s", "A")).
		WithTarget(PromQuery(`rsc:batch_identifiers:rate5m`, "ids/s", "B")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ChunkFill returns a timeseries panel showing the average number of
// identifiers per chunk.
func ChunkFill() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Identifiers per Chunk").
		Description("Average identifiers carried by each conversion request").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`rsc:batch_identifiers:rate5m / rsc:batch_chunks:rate5m`,
			"ids/chunk", "A",
		)).
		Unit("short").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MockRequestRate returns a timeseries panel showing requests served by the
// mock API server by status.
func MockRequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Mock Server Requests").
		Description("Requests served by the mock API server by status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum by (status) (rate(rsc_mock_requests_total[$__rate_interval]))`,
			"{{status}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
