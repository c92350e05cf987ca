package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/mocktioneer/mocktioneer-server/config"
	"github.com/mocktioneer/mocktioneer-server/router"
	"github.com/mocktioneer/mocktioneer-server/server"
)

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	if err := serve(cfg); err != nil {
		glog.Exitf("mocktioneer-server failed: %v", err)
	}
}

const configFileName = "mocktioneer"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(cfg *config.Configuration) error {
	r, err := router.New(cfg)
	if err != nil {
		return err
	}

	corsRouter := router.SupportCORS(r)
	server.Listen(cfg, router.NoCache{Handler: corsRouter}, router.Admin(r.MetricsEngine))
	return nil
}
