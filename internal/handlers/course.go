package handlers

import (
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/services"
)

type CourseHandler struct {
  courseService   services.CourseService
  scheduleService services.ScheduleService
}

func NewCourseHandler(courseService services.CourseService, scheduleService services.ScheduleService) *CourseHandler {
  return &CourseHandler{courseService: courseService, scheduleService: scheduleService}
}

type courseLectureRequest struct {
  Title     string `json:"title" binding:"required"`
  Content   string `json:"content"`
  SortOrder int    `json:"sort_order"`
}

type courseRequest struct {
  Title         string                 `json:"title" binding:"required"`
  Description   string                 `json:"description"`
  DurationHours int                    `json:"duration_hours"`
  Goal          string                 `json:"goal"`
  Content       string                 `json:"content"`
  CustomFields  map[string]interface{} `json:"custom_fields"`
  InstructorIDs []uuid.UUID            `json:"instructor_ids"`
  Lectures      []courseLectureRequest `json:"lectures"`
}

func (req *courseRequest) toInput() services.CourseCreateInput {
  input := services.CourseCreateInput{
    Title:         req.Title,
    Description:   req.Description,
    DurationHours: req.DurationHours,
    Goal:          req.Goal,
    Content:       req.Content,
    InstructorIDs: req.InstructorIDs,
  }
  if req.CustomFields != nil {
    input.CustomFields = mustJSON(req.CustomFields)
  }
  for _, lecture := range req.Lectures {
    input.Lectures = append(input.Lectures, services.CourseLectureInput{
      Title:     lecture.Title,
      Content:   lecture.Content,
      SortOrder: lecture.SortOrder,
    })
  }
  return input
}

func (ch *CourseHandler) Create(c *gin.Context) {
  var req courseRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  course, err := ch.courseService.CreateCourse(c.Request.Context(), req.toInput())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"course": course})
}

func (ch *CourseHandler) Update(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgCourseNotFound))
    return
  }
  var req courseRequest
  if bErr := c.ShouldBindJSON(&req); bErr != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  course, err := ch.courseService.UpdateCourse(c.Request.Context(), courseID, req.toInput())
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"course": course})
}

func (ch *CourseHandler) Delete(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgCourseNotFound))
    return
  }
  if dErr := ch.courseService.DeleteCourse(c.Request.Context(), courseID); dErr != nil {
    RespondError(c, dErr)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (ch *CourseHandler) Get(c *gin.Context) {
  courseID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgCourseNotFound))
    return
  }
  course, err := ch.courseService.GetCourse(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"course": course})
}

func (ch *CourseHandler) List(c *gin.Context) {
  offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
  courses, err := ch.courseService.ListCourses(c.Request.Context(), offset, limit)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"courses": courses})
}

type scheduleRequest struct {
  CourseID     uuid.UUID  `json:"course_id" binding:"required"`
  InstructorID *uuid.UUID `json:"instructor_id"`
  StartsAt     string     `json:"starts_at" binding:"required"`
  EndsAt       string     `json:"ends_at" binding:"required"`
  Location     string     `json:"location"`
}

func (ch *CourseHandler) CreateSchedule(c *gin.Context) {
  var req scheduleRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  startsAt, err := parseRFC3339(req.StartsAt)
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  endsAt, err := parseRFC3339(req.EndsAt)
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  schedule, err := ch.scheduleService.CreateSchedule(c.Request.Context(), services.ScheduleInput{
    CourseID:     req.CourseID,
    InstructorID: req.InstructorID,
    StartsAt:     startsAt,
    EndsAt:       endsAt,
    Location:     req.Location,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"schedule": schedule})
}

func (ch *CourseHandler) DeleteSchedule(c *gin.Context) {
  scheduleID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  if dErr := ch.scheduleService.DeleteSchedule(c.Request.Context(), scheduleID); dErr != nil {
    RespondError(c, dErr)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}
