package api

import (
	"time"

	"github.com/diyhub/backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler         userHandler
	authHandler         authHandler
	projectHandler      projectHandler
	commentHandler      commentHandler
	reactionHandler     reactionHandler
	ratingHandler       ratingHandler
	forumHandler        forumHandler
	consultationHandler consultationHandler
	meetHandler         meetHandler
	wsHandler           wsHandler
	healthHandler       healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"missing required field: Missing required field: title"`
	Message string `json:"message" example:"missing required field"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Missing required field: title"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// MessageResponse is the body of writes that only confirm success
type MessageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Age       *int   `json:"age"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

type createProjectRequest struct {
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
}

// ProjectView is a project with its tag values and engagement counters
type ProjectView struct {
	*models.Project
	Tags     []string `json:"tags"`
	UserName string   `json:"user_name"`
	Likes    int64    `json:"likes"`
	Comments int64    `json:"comments"`
}

type ProjectResponse struct {
	Message string      `json:"message"`
	Project ProjectView `json:"project"`
}

type ProjectCollection struct {
	Message  string        `json:"message"`
	Projects []ProjectView `json:"projects"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

type createCommentRequest struct {
	TargetID        uint   `json:"target_id"`
	TargetType      string `json:"target_type"`
	Content         string `json:"content"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

type CommentResponse struct {
	Message string          `json:"message"`
	Comment *models.Comment `json:"comment"`
}

type CommentsResponse struct {
	Comments []*models.Comment `json:"comments"`
}

type RepliesResponse struct {
	Replies []*models.Comment `json:"replies"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type reactionRequest struct {
	TargetID     uint    `json:"target_id"`
	TargetType   string  `json:"target_type"`
	ReactionType *string `json:"reaction_type"`
}

type ReactionCountsResponse struct {
	Counts models.ReactionCounts `json:"counts"`
}

type ratingRequest struct {
	TargetID uint `json:"target_id"`
	Rating   int  `json:"rating"`
}

type RatingResponse struct {
	Message string         `json:"message"`
	Rating  *models.Rating `json:"rating"`
}

type UserRatingResponse struct {
	Rating *int `json:"rating"`
}

type AverageRatingResponse struct {
	AverageRating int `json:"average_rating"`
}

type createForumRequest struct {
	Topic string   `json:"topic"`
	Tags  []string `json:"tags"`
}

// ForumSummary is a forum listing row
type ForumSummary struct {
	*models.Forum
	UserName     string `json:"user_name"`
	CommentCount int64  `json:"comment_count"`
}

type ForumResponse struct {
	Message string        `json:"message"`
	Forum   *models.Forum `json:"forum"`
}

type ForumCollection struct {
	Message string         `json:"message"`
	Forums  []ForumSummary `json:"forums"`
}

type ForumDetailResponse struct {
	Message  string            `json:"message"`
	Forum    *models.Forum     `json:"forum"`
	Comments []*models.Comment `json:"comments"`
}

type createConsultationRequest struct {
	Topic       string  `json:"topic"`
	MeetLink    string  `json:"meet_link"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Description *string `json:"description"`
}

// ConsultationView renders the date as YYYY-MM-DD
type ConsultationView struct {
	*models.Consultation
	Date string `json:"date"`
}

func newConsultationView(c *models.Consultation) ConsultationView {
	return ConsultationView{Consultation: c, Date: c.DateString()}
}

type ConsultationResponse struct {
	Message      string           `json:"message"`
	Consultation ConsultationView `json:"consultation"`
}

type ConsultationCollection struct {
	Message       string             `json:"message"`
	Consultations []ConsultationView `json:"consultations"`
}

type scheduleMeetingRequest struct {
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Summary       string    `json:"summary"`
	Description   string    `json:"description"`
	AttendeeEmail string    `json:"attendeeEmail"`
}

type MeetingResponse struct {
	MeetLink string `json:"meetLink"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	StartupTime time.Time `json:"startup_time"`
	Uptime      string    `json:"uptime"`
}
