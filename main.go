package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tubehub/catalog-api/api"
	"tubehub/catalog-api/config"
	"tubehub/catalog-api/internal/service"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	a, err := api.NewRouter()
	if err != nil {
		panic(err)
	}

	jobs, err := service.StartJobs(a.Deps.Ingest, a.Deps.Votes)
	if err != nil {
		panic(err)
	}
	defer jobs.Stop()

	zap.L().Info("Server starting")

	err = a.Router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
