package main

import (
	"fmt"

	"annotator/config"
	dbpkg "annotator/db"
	"annotator/router"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("startup: %v", err)
	}

	database, err := dbpkg.Connect(cfg)
	if err != nil {
		logrus.Fatalf("startup: database: %v", err)
	}
	defer database.Close()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r, cfg)

	logrus.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"env":      cfg.Env,
		"frontend": cfg.FrontendURL,
	}).Info("server listening")

	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logrus.Fatalf("server: %v", err)
	}
}
