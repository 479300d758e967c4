package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

const defaultChartHeight = "360px"

// ChartKind selects which dataset a chart plots.
type ChartKind string

const (
	ChartUsersByRole     ChartKind = "users_by_role"
	ChartUsersByStatus   ChartKind = "users_by_status"
	ChartCardsByColumn   ChartKind = "cards_by_column"
	ChartCardsByPriority ChartKind = "cards_by_priority"
	ChartEventsByType    ChartKind = "events_by_type"
)

// ChartKinds lists the supported datasets.
func ChartKinds() []ChartKind {
	return []ChartKind{ChartUsersByRole, ChartUsersByStatus, ChartCardsByColumn, ChartCardsByPriority, ChartEventsByType}
}

// ChartType selects the rendering.
type ChartType string

const (
	ChartBar   ChartType = "bar"
	ChartLine  ChartType = "line"
	ChartPie   ChartType = "pie"
	ChartGauge ChartType = "gauge"
)

// ChartRequest asks for one dataset rendered as one chart type. An empty
// Theme uses the renderer default.
type ChartRequest struct {
	Kind  ChartKind `json:"kind"`
	Type  ChartType `json:"type"`
	Theme string    `json:"theme,omitempty"`
}

// ChartResult carries rendered chart markup.
type ChartResult struct {
	Kind   ChartKind    `json:"kind"`
	Type   ChartType    `json:"type"`
	Title  string       `json:"title"`
	Theme  string       `json:"theme"`
	Points []ChartPoint `json:"points"`
	HTML   string       `json:"html"`
}

// ChartPoint is one labeled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartDataset is what a chart plots.
type ChartDataset struct {
	Title  string
	Series string
	Points []ChartPoint
}

// ChartRenderer renders datasets through go-echarts.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes a ChartRenderer.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache. Nil disables caching.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the default theme (Westeros unless set).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{theme: types.ThemeWesteros}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render plots ds as the requested chart type.
func (r *ChartRenderer) Render(req ChartRequest, ds ChartDataset) (ChartResult, error) {
	chartType := ChartType(strings.ToLower(string(req.Type)))
	if chartType == "" {
		chartType = ChartBar
	}
	theme := r.theme
	if req.Theme != "" {
		theme = req.Theme
	}
	renderFn := func() (string, error) {
		return r.render(chartType, theme, ds)
	}
	var (
		html string
		err  error
	)
	if r.cache != nil {
		key := fmt.Sprintf("%s:%s:%s:%s", req.Kind, chartType, theme, datasetHash(ds))
		html, err = r.cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return ChartResult{}, err
	}
	return ChartResult{
		Kind:   req.Kind,
		Type:   chartType,
		Title:  ds.Title,
		Theme:  theme,
		Points: ds.Points,
		HTML:   html,
	}, nil
}

func (r *ChartRenderer) render(chartType ChartType, theme string, ds ChartDataset) (string, error) {
	switch chartType {
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(ds.Title, theme)...)
		bar.SetXAxis(labels(ds.Points))
		bar.AddSeries(ds.Series, toBarData(ds.Points))
		return renderChart(bar)
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions(ds.Title, theme)...)
		line.SetXAxis(labels(ds.Points))
		line.AddSeries(ds.Series, toLineData(ds.Points))
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions(ds.Title, theme)...)
		pie.AddSeries(ds.Series, toPieData(ds.Points))
		return renderChart(pie)
	case ChartGauge:
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(r.globalOptions(ds.Title, theme)...)
		gauge.AddSeries(ds.Series, []opts.GaugeData{leadingShare(ds.Points)})
		return renderChart(gauge)
	default:
		return "", storeerr.Invalid("chart", "type", "unsupported chart type "+string(chartType))
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("dashboard: render chart: %w", err)
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalOptions(title, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func labels(points []ChartPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: point.Value}
	}
	return data
}

// leadingShare is the percentage the first point holds of the total.
func leadingShare(points []ChartPoint) opts.GaugeData {
	if len(points) == 0 {
		return opts.GaugeData{Name: "", Value: 0}
	}
	total := 0.0
	for _, p := range points {
		total += p.Value
	}
	share := 0.0
	if total > 0 {
		share = points[0].Value / total * 100
	}
	return opts.GaugeData{Name: points[0].Label, Value: share}
}
