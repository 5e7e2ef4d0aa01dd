package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rmachado/concilia"
	"github.com/rmachado/concilia/api/middleware"
	"github.com/rmachado/concilia/config"
)

type Api struct {
	concilia *concilia.Concilia
	router   *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/reconciliations", a.RunReconciliation)
	router.GET("/reconciliations/:id", a.GetReconciliation)
	router.GET("/reconciliations/:id/summary", a.GetCategorySummaries)
	router.GET("/reconciliations/:id/divergent", a.GetDivergentAssociates)
	router.GET("/reconciliations/:id/file-only", a.GetFileOnlyNotes)
	router.GET("/reconciliations/:id/bank-only", a.GetBankOnlyNotes)
	router.GET("/reconciliations/:id/export/csv", a.ExportCSV)
	return a.router
}

func NewAPI(engine *concilia.Concilia) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{concilia: engine, router: r}
}
