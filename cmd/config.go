package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pumpversuch/internal/charts"
	"pumpversuch/internal/logger"
	"pumpversuch/internal/models"
	"pumpversuch/internal/repository/db"
	"pumpversuch/internal/server"
	"pumpversuch/internal/service"

	"github.com/spf13/viper"
)

const envPrefix = "PUMPVERSUCH"

// loadConfig reads <dir>/config.yml on top of the built-in defaults.
// Environment variables such as PUMPVERSUCH_DB_PATH override both.
// A missing file is not an error.
func loadConfig(v *viper.Viper, dir string) error {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.AddConfigPath(dir) // configs/config.yml
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	p := models.DefaultParameters()

	v.SetDefault("port", server.DefaultPort)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("db.path", db.InMemory)
	v.SetDefault("session.ttl", service.DefaultSessionTTL)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("chart.width", 1000)
	v.SetDefault("chart.unit_height", 250)
	v.SetDefault("defaults.project_name", models.DefaultProjectName)
	v.SetDefault("defaults.static_water_level", p.StaticWaterLevel)
	v.SetDefault("defaults.target_flow_rate", p.TargetFlowRate)
	v.SetDefault("defaults.pump_duration_hours", p.PumpDurationHours)
	v.SetDefault("defaults.total_duration_hours", p.TotalDurationHours)
}

// serviceOptions maps the defaults.* and chart.* keys onto service.Options.
// Keys are read one by one so that env overrides of nested keys apply.
func serviceOptions(v *viper.Viper) (service.Options, error) {
	p := models.Parameters{
		StaticWaterLevel:   v.GetFloat64("defaults.static_water_level"),
		TargetFlowRate:     v.GetFloat64("defaults.target_flow_rate"),
		PumpDurationHours:  v.GetInt("defaults.pump_duration_hours"),
		TotalDurationHours: v.GetInt("defaults.total_duration_hours"),
	}
	if err := p.Validate(); err != nil {
		return service.Options{}, fmt.Errorf("defaults: %w", err)
	}
	return service.Options{
		Defaults: service.Defaults{
			ProjectName: v.GetString("defaults.project_name"),
			Parameters:  p,
		},
		Chart: charts.Options{
			Width:      v.GetInt("chart.width"),
			UnitHeight: v.GetInt("chart.unit_height"),
		},
		SessionTTL: v.GetDuration("session.ttl"),
	}, nil
}
