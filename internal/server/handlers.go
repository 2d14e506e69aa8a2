package server

import (
	"errors"
	"net/http"
	"strconv"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/internal/service"
	"github.com/emrgen/jobpost/internal/store"
	"github.com/gin-gonic/gin"
)

// Handlers adapts the services to gin.
type Handlers struct {
	posts       *service.JobPostService
	schemes     *service.SchemeService
	links       *service.QuickLinkService
	quiz        *service.QuizService
	simpleJobs  *service.SimpleJobService
	cards       *service.HomeCardService
	chat        *service.ChatService
	eligibility *service.EligibilityService
}

// NewHandlers builds the content services over s next to the given post and
// chat services.
func NewHandlers(posts *service.JobPostService, s store.Store, chat *service.ChatService) *Handlers {
	return &Handlers{
		posts:       posts,
		schemes:     service.NewSchemeService(s),
		links:       service.NewQuickLinkService(s),
		quiz:        service.NewQuizService(s),
		simpleJobs:  service.NewSimpleJobService(s),
		cards:       service.NewHomeCardService(s),
		chat:        chat,
		eligibility: service.NewEligibilityService(posts),
	}
}

var errInvalidID = errors.New("id must be a positive integer")

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, errInvalidID)
		return 0, false
	}
	return id, true
}

func categoryQuery(c *gin.Context) *v1.Category {
	raw, ok := c.GetQuery("category")
	if !ok || raw == "" {
		return nil
	}
	category := v1.Category(raw)
	return &category
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) CreateJobPost(c *gin.Context) {
	var req v1.CreateJobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.posts.CreateJobPost(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handlers) GetJobPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.posts.GetJobPost(c.Request.Context(), &v1.GetJobPostRequest{ID: id})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ListJobPosts(c *gin.Context) {
	res, err := h.posts.ListJobPosts(c.Request.Context(), &v1.ListJobPostsRequest{Category: categoryQuery(c), Query: c.Query("q")})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ListJobPostSummaries(c *gin.Context) {
	res, err := h.posts.ListJobPostSummaries(c.Request.Context(), &v1.ListJobPostsRequest{Category: categoryQuery(c), Query: c.Query("q")})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ListAdmitCardPosts(c *gin.Context) {
	res, err := h.posts.ListAdmitCardPosts(c.Request.Context(), &v1.ListAdmitCardPostsRequest{Query: c.Query("q")})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ListSyllabusRepository(c *gin.Context) {
	res, err := h.posts.ListSyllabusRepository(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) UpdateJobPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req v1.UpdateJobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.ID = id

	res, err := h.posts.UpdateJobPost(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) DeleteJobPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.posts.DeleteJobPost(c.Request.Context(), &v1.DeleteJobPostRequest{ID: id})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) RenderJobPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.posts.RenderJobPost(c.Request.Context(), &v1.RenderJobPostRequest{
		ID:     id,
		Format: v1.RenderFormat(c.Query("format")),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ListJobPostRevisions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.posts.ListJobPostRevisions(c.Request.Context(), &v1.GetJobPostRequest{ID: id})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) RestoreJobPostRevision(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	version, err := strconv.ParseInt(c.Param("version"), 10, 64)
	if err != nil || version < 0 {
		badRequest(c, errors.New("version must be a non negative integer"))
		return
	}

	res, err := h.posts.RestoreJobPostRevision(c.Request.Context(), &v1.RestoreJobPostRevisionRequest{ID: id, Version: version})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) RenderBlocks(c *gin.Context) {
	var req v1.RenderBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.posts.RenderBlocks(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ApplyBlockOps(c *gin.Context) {
	var req v1.ApplyBlockOpsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.posts.ApplyBlockOps(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) CheckEligibility(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req v1.CheckEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.ID = id

	res, err := h.eligibility.CheckEligibility(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) CalculateAge(c *gin.Context) {
	var req v1.CalculateAgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.eligibility.CalculateAge(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) CreateScheme(c *gin.Context) {
	var req v1.SchemeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.schemes.CreateScheme(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handlers) GetScheme(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.schemes.GetScheme(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ListSchemes(c *gin.Context) {
	res, err := h.schemes.ListSchemes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) CountSchemes(c *gin.Context) {
	res, err := h.schemes.CountSchemes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) UpdateScheme(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req v1.SchemeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.schemes.UpdateScheme(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) DeleteScheme(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.schemes.DeleteScheme(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handlers) CreateQuickLink(c *gin.Context) {
	var req v1.QuickLinkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.links.CreateQuickLink(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handlers) GetQuickLink(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.links.GetQuickLink(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ListQuickLinks(c *gin.Context) {
	var section *v1.Section
	if raw := c.Query("section"); raw != "" {
		s := v1.Section(raw)
		section = &s
	}

	res, err := h.links.ListQuickLinks(c.Request.Context(), section)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) UpdateQuickLink(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req v1.QuickLinkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.links.UpdateQuickLink(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) DeleteQuickLink(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.links.DeleteQuickLink(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handlers) CreateSimpleJob(c *gin.Context) {
	var req v1.SimpleJobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.simpleJobs.CreateSimpleJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handlers) ListSimpleJobs(c *gin.Context) {
	var region *v1.Region
	if raw := c.Query("category"); raw != "" {
		r := v1.Region(raw)
		region = &r
	}

	res, err := h.simpleJobs.ListSimpleJobs(c.Request.Context(), region)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) DeleteSimpleJob(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.simpleJobs.DeleteSimpleJob(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handlers) CreateHomeCard(c *gin.Context) {
	var req v1.HomeCardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.cards.CreateHomeCard(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *Handlers) ListHomeCards(c *gin.Context) {
	var category *v1.CardCategory
	if raw := c.Query("category"); raw != "" {
		cc := v1.CardCategory(raw)
		category = &cc
	}

	res, err := h.cards.ListHomeCards(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) UpdateHomeCard(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req v1.HomeCardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.cards.UpdateHomeCard(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) DeleteHomeCard(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.cards.DeleteHomeCard(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handlers) GetDailyQuiz(c *gin.Context) {
	res, err := h.quiz.GetDailyQuiz(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) PublishDailyQuiz(c *gin.Context) {
	var req v1.PublishDailyQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.quiz.PublishDailyQuiz(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ClearDailyQuiz(c *gin.Context) {
	if err := h.quiz.ClearDailyQuiz(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handlers) Ask(c *gin.Context) {
	var req v1.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.chat.Ask(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
