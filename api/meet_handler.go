package api

import (
	"net/http"
	"strings"

	"github.com/diyhub/backend/errs"
	"github.com/diyhub/backend/services"
	"github.com/rs/zerolog"
)

// googleTokenHeader carries the caller's Google OAuth access token
const googleTokenHeader = "X-Google-Access-Token"

type meetHandler struct {
	responder Responder
	logger    zerolog.Logger
	meet      meetingScheduler
}

func newMeetHandler(deps handlerDeps) meetHandler {
	logger, responder := deps.forHandler("meetHandler")

	return meetHandler{
		responder: responder,
		logger:    logger,
		meet:      deps.meet,
	}
}

// scheduleMeeting creates a calendar event with a Meet link in the caller's Google calendar
// @Summary Schedule meeting
// @Tags Meet
// @Accept json
// @Produce json
// @Param X-Google-Access-Token header string true "Google OAuth access token"
// @Param meeting body scheduleMeetingRequest true "Meeting"
// @Success 200 {object} MeetingResponse
// @Failure 502 {object} ErrorResponse "Google Calendar rejected the request"
// @Router /api/meet/schedule-meeting [post]
func (h meetHandler) scheduleMeeting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.meet == nil {
			h.responder.WriteError(w, errs.NewInternalError("meeting scheduling is not configured"))
			return
		}

		accessToken := strings.TrimSpace(r.Header.Get(googleTokenHeader))
		if accessToken == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(googleTokenHeader))
			return
		}

		var req scheduleMeetingRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		meeting := services.MeetingRequest{
			Summary:       req.Summary,
			Description:   req.Description,
			AttendeeEmail: strings.TrimSpace(req.AttendeeEmail),
			Start:         req.StartTime,
			End:           req.EndTime,
		}
		if err := meeting.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("startTime", err.Error()))
			return
		}

		link, err := h.meet.Schedule(r.Context(), accessToken, meeting)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to schedule meeting")
			apiErr := errs.NewApiErr(http.StatusBadGateway, "Failed to schedule meeting.")
			apiErr.Cause = err
			h.responder.WriteError(w, apiErr)
			return
		}

		h.responder.WriteJSON(w, MeetingResponse{MeetLink: link})
	}
}
