package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/diyhub/backend/database"
	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/models"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

type consultationHandler struct {
	responder        Responder
	logger           zerolog.Logger
	consultationRepo *database.ConsultationRepo
}

func newConsultationHandler(deps handlerDeps, consultationRepo *database.ConsultationRepo) consultationHandler {
	logger, responder := deps.forHandler("consultationHandler")

	return consultationHandler{
		responder:        responder,
		logger:           logger,
		consultationRepo: consultationRepo,
	}
}

func (h consultationHandler) createConsultation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createConsultationRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		required := []struct{ field, value string }{
			{"topic", req.Topic},
			{"meet_link", req.MeetLink},
			{"date", req.Date},
			{"time", req.Time},
		}
		for _, f := range required {
			if strings.TrimSpace(f.value) == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError(f.field))
				return
			}
		}

		date, err := time.Parse(models.ConsultationDateLayout, strings.TrimSpace(req.Date))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("date", "must be YYYY-MM-DD"))
			return
		}
		clock, err := time.Parse(models.ConsultationTimeLayout, strings.TrimSpace(req.Time))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("time", "must be HH:MM"))
			return
		}

		consultation := models.Consultation{
			Topic:       strings.TrimSpace(req.Topic),
			MeetLink:    strings.TrimSpace(req.MeetLink),
			Date:        datatypes.Date(date),
			Time:        clock.Format(models.ConsultationTimeLayout),
			Description: req.Description,
		}
		if err := h.consultationRepo.Add(r.Context(), &consultation); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "consultation", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, ConsultationResponse{
			Message:      "Consultation created successfully!",
			Consultation: newConsultationView(&consultation),
		})
	}
}

func (h consultationHandler) getAllConsultations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consultations, err := h.consultationRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "consultations", err))
			return
		}

		views := make([]ConsultationView, 0, len(consultations))
		for _, c := range consultations {
			views = append(views, newConsultationView(c))
		}

		h.responder.WriteJSON(w, ConsultationCollection{
			Message:       "Consultations fetched successfully",
			Consultations: views,
		})
	}
}

func (h consultationHandler) getConsultation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consultationID, err := parseIDParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		consultation, err := h.consultationRepo.FindByID(r.Context(), consultationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "consultation", err))
			return
		}
		if consultation == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Consultation not found"))
			return
		}

		h.responder.WriteJSON(w, ConsultationResponse{
			Message:      "Consultation details fetched successfully",
			Consultation: newConsultationView(consultation),
		})
	}
}
