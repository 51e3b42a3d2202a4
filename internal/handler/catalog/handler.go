package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/catalog"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

// Response lists every enumerated value the doctor form accepts.
type Response struct {
	Specialties []catalog.Option    `json:"specialties"`
	Weekdays    []catalog.Option    `json:"weekdays"`
	TimeSlots   []catalog.SlotGroup `json:"time_slots"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts GET /catalog behind middlewares, typically a
// Cache-Control middleware since the catalog never changes at runtime.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, middlewares ...gin.HandlerFunc) {
	r.GET("/catalog", append(middlewares, h.GetCatalog)...)
}

func (h *Handler) GetCatalog(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, Response{
		Specialties: catalog.Specialties(),
		Weekdays:    catalog.Weekdays(),
		TimeSlots:   catalog.SlotGroups(),
	})
}
