package doctor

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/catalog"
	"github.com/jwalitptl/clinic-api/internal/form"
	"github.com/jwalitptl/clinic-api/internal/model"
	doctorService "github.com/jwalitptl/clinic-api/internal/service/doctor"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

// MsgSubmitFailed is shown on the form when an accepted submission could not
// be forwarded.
const MsgSubmitFailed = "Não foi possível salvar o médico. Tente novamente."

type Handler struct {
	service doctorService.DoctorServicer
	form    *form.Form
}

func NewHandler(service doctorService.DoctorServicer) *Handler {
	return &Handler{
		service: service,
		form:    form.NewForm(service.Validator()),
	}
}

// RegisterRoutes mounts the JSON API.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/doctors", h.UpsertDoctor)
}

// RegisterPages mounts the server-rendered form.
func (h *Handler) RegisterPages(r gin.IRoutes) {
	r.GET("/doctors/new", h.NewDoctorPage)
	r.POST("/doctors/new", h.SubmitDoctorPage)
}

// price accepts a JSON number or a BRL string such as "R$1.234,50". Anything
// else decodes to zero so that the price rule reports it.
type price float64

func (p *price) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil && catalog.IsFinite(f) {
		*p = price(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := catalog.ParsePrice(s); err == nil {
			*p = price(v)
			return nil
		}
	}
	*p = 0
	return nil
}

type upsertRequest struct {
	model.DoctorUpsertInput
	AppointmentPrice price `json:"appointmentPrice"`
}

func (r upsertRequest) input() model.DoctorUpsertInput {
	in := r.DoctorUpsertInput
	in.AppointmentPrice = float64(r.AppointmentPrice)
	return in
}

// UpsertDoctor answers 202 with the validated form, or 422 with one message
// per invalid field.
func (h *Handler) UpsertDoctor(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid request body", err))
		return
	}

	out, err := h.service.Submit(c.Request.Context(), req.input())
	if err != nil {
		if _, ok := errors.As(err); !ok {
			err = errors.NewUnavailable("doctor could not be forwarded", err)
		}
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusAccepted, out)
}

func (h *Handler) NewDoctorPage(c *gin.Context) {
	h.render(c, http.StatusOK, form.NewState())
}

// SubmitDoctorPage replays the posted controls through the form state machine
// and renders the resulting state.
func (h *Handler) SubmitDoctorPage(c *gin.Context) {
	s := form.NewState()
	for _, field := range model.DoctorFields {
		if value, ok := c.GetPostForm(field); ok {
			s = h.form.Update(s, form.FieldChanged{Field: field, Value: value})
		}
	}

	s = h.form.Update(s, form.SubmitRequested{})
	if s.Phase == form.PhaseRejected {
		h.render(c, http.StatusUnprocessableEntity, s)
		return
	}

	var submitErr error
	if _, err := h.service.Submit(c.Request.Context(), s.Values.Input()); err != nil {
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Msg("Doctor form submission failed")
		submitErr = errors.NewUnavailable(MsgSubmitFailed, nil)
	}

	s = h.form.Update(s, form.SubmitCompleted{Err: submitErr})
	status := http.StatusOK
	if s.Phase != form.PhaseAccepted {
		status = http.StatusServiceUnavailable
	}
	h.render(c, status, s)
}

func (h *Handler) render(c *gin.Context, status int, s form.State) {
	var buf bytes.Buffer
	if err := form.Render(&buf, s); err != nil {
		httputil.RespondWithError(c, errors.Internal(err))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
