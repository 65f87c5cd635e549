package content

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"content-sync/core/logger"
	"content-sync/feature/content/models"
	"content-sync/feature/content/sync"
)

// Handler handles HTTP requests for the content pipeline.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the content routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/content")
	group.Post("/plan", h.HandlePlan)
	group.Post("/apply", h.HandleApply)
	group.Get("/courses/:key", h.HandleGetCourse)
}

// SyncRequest is the body of the plan and apply endpoints.
type SyncRequest struct {
	// BestEffort skips entities failing validation instead of aborting the
	// whole batch.
	BestEffort bool `json:"best_effort"`
}

// SyncReport summarizes a plan or apply run.
type SyncReport struct {
	Applied  bool                             `json:"applied"`
	Counts   map[string]sync.CollectionCounts `json:"counts"`
	Failures []Failure                        `json:"failures,omitempty"`
}

// HandlePlan computes what a sync would change, without writing anything.
// @Summary Plan Content Sync
// @Description Load and canonicalize the authored content, then diff it against the last synced state.
// @Tags content
// @Accept json
// @Produce json
// @Param request body SyncRequest false "Sync options"
// @Success 200 {object} SyncReport "Plan Summary"
// @Failure 422 {object} map[string]string "Invalid Content"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /content/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	return h.runSync(c, false)
}

// HandleApply applies the sync plan to the content store.
// @Summary Apply Content Sync
// @Description Load, canonicalize and diff the authored content, then apply the plan transactionally.
// @Tags content
// @Accept json
// @Produce json
// @Param request body SyncRequest false "Sync options"
// @Success 200 {object} SyncReport "Apply Summary"
// @Failure 422 {object} map[string]string "Invalid Content"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /content/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	return h.runSync(c, true)
}

func (h *Handler) runSync(c *fiber.Ctx, apply bool) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	set, err := h.service.LoadSet()
	if err != nil {
		l.Error("Failed to load content batch", zap.Error(err))
		return h.errorResponse(c, err)
	}

	failures, err := h.service.Prepare(c.Context(), set, req.BestEffort)
	if err != nil {
		l.Error("Failed to prepare content batch", zap.Error(err))
		return h.errorResponse(c, err)
	}

	var plan *sync.Plan
	if apply {
		plan, err = h.service.Apply(c.Context(), set)
	} else {
		plan, err = h.service.Plan(c.Context(), set)
	}
	if err != nil {
		l.Error("Content sync failed", zap.Error(err), zap.Bool("apply", apply))
		return h.errorResponse(c, err)
	}

	return c.JSON(SyncReport{
		Applied:  apply && !plan.IsEmpty(),
		Counts:   plan.Counts(),
		Failures: failures,
	})
}

// HandleGetCourse returns a single course in canonical form.
// @Summary Get Canonical Course
// @Description Load and canonicalize one authored course by its key.
// @Tags content
// @Produce json
// @Param key path string true "Course Key (e.g. 'math101')"
// @Success 200 {object} models.RawCourse "Canonical Course"
// @Failure 404 {object} map[string]string "Course Not Found"
// @Failure 422 {object} map[string]string "Invalid Content"
// @Router /content/courses/{key} [get]
func (h *Handler) HandleGetCourse(c *fiber.Ctx) error {
	key := c.Params("key")
	l := logger.WithRayID(h.service.logger, c)

	course, err := h.service.CourseByKey(key)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to load course", zap.String("key", key), zap.Error(err))
		return h.errorResponse(c, err)
	}

	return c.JSON(course.ToRaw())
}

// errorResponse maps pipeline errors to status codes: content problems are the
// author's to fix, everything else is a server error.
func (h *Handler) errorResponse(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	var malformedErr *models.MalformedInputError
	if errors.As(err, &validationErr) || errors.As(err, &malformedErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
