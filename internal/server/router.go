package server

import (
	"net/http"

	"github.com/emrgen/jobpost/internal/module"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// NewRouter registers every route. Reads are public, writes need an admin token.
func NewRouter(h *Handlers, verifier *module.TokenVerifier) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestTime())
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/healthz", h.Health)
	router.GET("/posts/:id", h.JobPostPage)

	api := router.Group("/v1")
	{
		api.GET("/posts", h.ListJobPosts)
		api.GET("/posts/summaries", h.ListJobPostSummaries)
		api.GET("/posts/admit-cards", h.ListAdmitCardPosts)
		api.GET("/posts/syllabus", h.ListSyllabusRepository)
		api.GET("/posts/:id", h.GetJobPost)
		api.GET("/posts/:id/render", h.RenderJobPost)
		api.POST("/posts/:id/eligibility", h.CheckEligibility)

		api.POST("/blocks/render", h.RenderBlocks)
		api.POST("/blocks/apply", h.ApplyBlockOps)

		api.GET("/schemes", h.ListSchemes)
		api.GET("/schemes/count", h.CountSchemes)
		api.GET("/schemes/:id", h.GetScheme)

		api.GET("/quick-links", h.ListQuickLinks)
		api.GET("/quick-links/:id", h.GetQuickLink)

		api.GET("/simple-jobs", h.ListSimpleJobs)
		api.GET("/home-cards", h.ListHomeCards)

		api.GET("/quiz", h.GetDailyQuiz)
		api.POST("/age", h.CalculateAge)
		api.POST("/chat", h.Ask)
	}

	admin := router.Group("/v1")
	admin.Use(RequireAdmin(verifier))
	{
		admin.POST("/posts", h.CreateJobPost)
		admin.PUT("/posts/:id", h.UpdateJobPost)
		admin.DELETE("/posts/:id", h.DeleteJobPost)
		admin.GET("/posts/:id/revisions", h.ListJobPostRevisions)
		admin.POST("/posts/:id/revisions/:version/restore", h.RestoreJobPostRevision)

		admin.POST("/schemes", h.CreateScheme)
		admin.PUT("/schemes/:id", h.UpdateScheme)
		admin.DELETE("/schemes/:id", h.DeleteScheme)

		admin.POST("/quick-links", h.CreateQuickLink)
		admin.PUT("/quick-links/:id", h.UpdateQuickLink)
		admin.DELETE("/quick-links/:id", h.DeleteQuickLink)

		admin.POST("/simple-jobs", h.CreateSimpleJob)
		admin.DELETE("/simple-jobs/:id", h.DeleteSimpleJob)

		admin.POST("/home-cards", h.CreateHomeCard)
		admin.PUT("/home-cards/:id", h.UpdateHomeCard)
		admin.DELETE("/home-cards/:id", h.DeleteHomeCard)

		admin.PUT("/quiz", h.PublishDailyQuiz)
		admin.DELETE("/quiz", h.ClearDailyQuiz)
	}

	return router
}

// withCors allows the public site and the admin panel to call the api from
// any origin. Admin calls carry a bearer token, never cookies.
func withCors(handler http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"}, // All origins are allowed
		AllowedMethods: []string{"GET", "POST", "DELETE", "PUT"},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
	})

	return c.Handler(handler)
}
