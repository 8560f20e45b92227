package app

import (
	"net/url"

	"co2mon/pkg/app/config"
	"co2mon/pkg/co2mini"
	"co2mon/pkg/hidraw"
	"co2mon/pkg/mqtt"
	"co2mon/pkg/recorder"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
)

// App is the main application struct.
// App is where the application is wired up.
type App struct {
	// web is the fiber web framework instance
	web *fiber.App

	// config is the application configuration
	config *config.Config

	// urlParsed contains the parsed Config.Url parameter
	// and makes it easier to get params out of e.g.
	// url: https://0.0.0.0:7844/?minTls=1.2&bodyLimit=50MB
	urlParsed *url.URL

	// mqtt is the handler to the mqtt broker
	mqtt *mqtt.Handler

	// sensor is the handle to the co2mini sensor
	sensor *co2mini.Sensor

	// recorder is the sink for measurement rows
	recorder recorder.Recorder

	// restart signals application restart
	restart chan struct{}
	// shutdown signals application shutdown
	shutdown chan struct{}
}

// New checks the Web server URL and initialize the main app structure
func New(config *config.Config) (*App, error) {
	u, err := url.Parse(config.Webserver.URL)
	if err != nil {
		debug.ErrorLog.Printf("Error parsing url %q: %s", config.Webserver.URL, err.Error())
		return &App{}, err
	}

	rec := recorder.Recorder(recorder.Discard{})
	if config.DataFile != "" {
		rec = recorder.NewCSV(config.DataFile, csvHeader)
	}

	return &App{
		config:    config,
		urlParsed: u,

		web:      fiber.New(),
		mqtt:     mqtt.New(),
		recorder: rec,

		restart:  make(chan struct{}),
		shutdown: make(chan struct{}),
	}, err
}

// Run starts the application.
func (app *App) Run() error {
	if err := app.init(); err != nil {
		return err
	}

	go app.mqtt.Service()
	go app.runWebServer()
	go app.runMetricsServer()
	go app.monitor()

	return nil
}

// init initializes the application.
func (app *App) init() (err error) {
	if app.sensor, err = app.openSensor(); err != nil {
		debug.ErrorLog.Printf("can't open co2 sensor: %v", err)
		return err
	}

	if err = app.mqtt.Connect(app.config.MQTT.Connection); err != nil {
		debug.ErrorLog.Printf("can't open mqtt broker %v", err)
		return err
	}

	// initDefaultRoutes should always be called last, the handlers it wires
	// read state initialized above
	app.initDefaultRoutes()

	return nil
}

// openSensor opens the configured hidraw node. If the path is "auto" or
// opening it fails, discovery by the usb vendor string decides.
func (app *App) openSensor() (*co2mini.Sensor, error) {
	device := app.config.Device

	if device != "auto" {
		s, err := co2mini.Open(device)
		if err == nil {
			return s, nil
		}
		debug.WarningLog.Printf("can't open %q, trying discovery: %v", device, err)
	}

	device, err := hidraw.Find()
	if err != nil {
		return nil, err
	}

	return co2mini.Open(device)
}

// Restart returns the read only restart channel.
// Restart is used to be able to react on application restart. (see cmd/co2mon.go)
func (app *App) Restart() <-chan struct{} {
	return app.restart
}

// Shutdown returns the read only shutdown channel.
// Shutdown is used to be able to react on application shutdown. (see cmd/co2mon.go)
func (app *App) Shutdown() <-chan struct{} {
	return app.shutdown
}

// Close disconnects the mqtt broker. The sensor poller needs no explicit
// stop, it ends once the sensor handle is unreachable.
func (app *App) Close() error {
	if app.mqtt != nil {
		_ = app.mqtt.Disconnect()
	}

	app.sensor = nil
	return nil
}
