package handlers

import (
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/services"
)

type InstructorHandler struct {
  instructorService services.InstructorService
}

func NewInstructorHandler(instructorService services.InstructorService) *InstructorHandler {
  return &InstructorHandler{instructorService: instructorService}
}

type instructorRequest struct {
  UserID      *uuid.UUID             `json:"user_id"`
  Name        string                 `json:"name" binding:"required"`
  Title       string                 `json:"title"`
  Bio         string                 `json:"bio"`
  Affiliation string                 `json:"affiliation"`
  Email       string                 `json:"email"`
  Phone       string                 `json:"phone"`
  Links       map[string]interface{} `json:"links"`
}

func (req *instructorRequest) toInput() services.InstructorInput {
  input := services.InstructorInput{
    UserID:      req.UserID,
    Name:        req.Name,
    Title:       req.Title,
    Bio:         req.Bio,
    Affiliation: req.Affiliation,
    Email:       req.Email,
    Phone:       req.Phone,
  }
  if req.Links != nil {
    input.Links = mustJSON(req.Links)
  }
  return input
}

func (ih *InstructorHandler) Create(c *gin.Context) {
  var req instructorRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  instructor, err := ih.instructorService.CreateInstructor(c.Request.Context(), req.toInput())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"instructor": instructor})
}

func (ih *InstructorHandler) Update(c *gin.Context) {
  instructorID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgInstructorNotFound))
    return
  }
  var req instructorRequest
  if bErr := c.ShouldBindJSON(&req); bErr != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  instructor, err := ih.instructorService.UpdateInstructor(c.Request.Context(), instructorID, req.toInput())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"instructor": instructor})
}

func (ih *InstructorHandler) Delete(c *gin.Context) {
  instructorID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgInstructorNotFound))
    return
  }
  if dErr := ih.instructorService.DeleteInstructor(c.Request.Context(), instructorID); dErr != nil {
    RespondError(c, dErr)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (ih *InstructorHandler) Get(c *gin.Context) {
  instructorID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgInstructorNotFound))
    return
  }
  instructor, err := ih.instructorService.GetInstructor(c.Request.Context(), instructorID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"instructor": instructor})
}

func (ih *InstructorHandler) List(c *gin.Context) {
  offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
  instructors, err := ih.instructorService.ListInstructors(c.Request.Context(), offset, limit)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"instructors": instructors})
}

type profileRequest struct {
  DisplayName string                 `json:"display_name" binding:"required"`
  Title       string                 `json:"title"`
  Bio         string                 `json:"bio"`
  Affiliation string                 `json:"affiliation"`
  Links       map[string]interface{} `json:"links"`
}

func (ih *InstructorHandler) UpsertMyProfile(c *gin.Context) {
  var req profileRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  input := services.ProfileInput{
    DisplayName: req.DisplayName,
    Title:       req.Title,
    Bio:         req.Bio,
    Affiliation: req.Affiliation,
  }
  if req.Links != nil {
    input.Links = mustJSON(req.Links)
  }
  profile, err := ih.instructorService.UpsertMyProfile(c.Request.Context(), input)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"profile": profile})
}

func (ih *InstructorHandler) GetMyProfile(c *gin.Context) {
  profile, err := ih.instructorService.GetMyProfile(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"profile": profile})
}
