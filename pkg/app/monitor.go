package app

import (
	"encoding/json"
	"strconv"
	"time"

	"co2mon/pkg/mqtt"

	"github.com/womat/debug"
)

// csvHeader is the header row bootstrapped into an empty datafile.
var csvHeader = []string{"Time", "CO2(ppm)", "Temperature(C)", "Humidity(%)"}

// Reading is one converted measurement set of the sensor.
type Reading struct {
	TimeStamp   time.Time `json:"time"`
	CO2         uint16    `json:"co2"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// reading snapshots the current sensor values. The fields may stem from
// different poll cycles.
func (app *App) reading() Reading {
	return Reading{
		TimeStamp:   time.Now(),
		CO2:         app.sensor.CO2(),
		Temperature: app.sensor.Temperature(),
		Humidity:    app.sensor.Humidity(),
	}
}

// monitor records one reading per interval: a synchronous sensor read, a row
// to the recorder, a publication to the mqtt broker and the prometheus
// gauges. A failed device read skips the cycle.
func (app *App) monitor() {
	for range time.Tick(app.config.Interval) {
		if !app.sensor.ReadData() {
			debug.ErrorLog.Print("reading co2 sensor failed")
			continue
		}

		r := app.reading()
		debug.InfoLog.Printf("co2: %v ppm, temperature: %.1f °C, humidity: %.1f %%",
			r.CO2, r.Temperature, r.Humidity)

		app.record(r)
		app.sendMQTT(app.config.MQTT.Topic, r)
		app.updateMetrics(r)
	}
}

// record appends the reading to the configured datafile.
func (app *App) record(r Reading) {
	row := []string{
		r.TimeStamp.Format("2006-01-02 15:04:05"),
		strconv.Itoa(int(r.CO2)),
		strconv.FormatFloat(r.Temperature, 'f', 1, 64),
		strconv.FormatFloat(r.Humidity, 'f', 1, 64),
	}

	if err := app.recorder.AppendRow(row); err != nil {
		debug.ErrorLog.Printf("append row: %v", err)
	}
}

// sendMQTT send message struct to the mqtt broker.
func (app *App) sendMQTT(topic string, message interface{}) {
	go func(t string, r interface{}) {
		debug.TraceLog.Printf("prepare mqtt message %v %v", t, r)

		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			debug.ErrorLog.Printf("sendMQTT marshal: %v", err)
			return
		}

		app.mqtt.C <- mqtt.Message{
			Qos:      0,
			Retained: true,
			Topic:    t,
			Payload:  b,
		}
	}(topic, message)
}
