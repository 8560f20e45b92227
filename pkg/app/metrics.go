package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/womat/debug"
)

// gauges exposed to prometheus
var (
	gaugeCo2         = newGauge("co2_ppm", "Air carbon dioxide level (units: ppm)")
	gaugeTemperature = newGauge("temperature_celsius", "Air temperature (units: degrees Celsius)")
	gaugeHumidity    = newGauge("humidity_percent", "Relative humidity (units: %)")
)

func newGauge(name string, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "co2mon",
		Name:      name,
		Help:      help,
	})
}

func init() {
	prometheus.MustRegister(gaugeCo2)
	prometheus.MustRegister(gaugeTemperature)
	prometheus.MustRegister(gaugeHumidity)
}

// runMetricsServer exposes the registered metrics via HTTP on its own
// listener. Disabled when no metrics url is configured.
func (app *App) runMetricsServer() {
	if app.config.Metrics.URL == "" {
		return
	}

	http.Handle("/metrics", promhttp.Handler())
	debug.ErrorLog.Print(http.ListenAndServe(app.config.Metrics.URL, nil))
}

// updateMetrics sets the gauges to the current reading.
func (app *App) updateMetrics(r Reading) {
	gaugeCo2.Set(float64(r.CO2))
	gaugeTemperature.Set(r.Temperature)
	gaugeHumidity.Set(r.Humidity)
}
