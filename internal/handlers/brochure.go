package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/services"
)

type BrochureHandler struct {
  brochureService services.BrochureService
}

func NewBrochureHandler(brochureService services.BrochureService) *BrochureHandler {
  return &BrochureHandler{brochureService: brochureService}
}

type brochureCreateRequest struct {
  Title                  string      `json:"title"`
  Summary                string      `json:"summary"`
  Label                  string      `json:"label"`
  SourceMode             string      `json:"source_mode" binding:"required"`
  IncludeToc             bool        `json:"include_toc"`
  IncludeCourse          bool        `json:"include_course"`
  IncludeInstructor      bool        `json:"include_instructor"`
  ContentOrder           string      `json:"content_order"`
  OutputMode             string      `json:"output_mode"`
  RenderBatchToken       string      `json:"render_batch_token"`
  TemplateID             uuid.UUID   `json:"template_id" binding:"required"`
  CourseTemplateID       *uuid.UUID  `json:"course_template_id"`
  InstructorTemplateID   *uuid.UUID  `json:"instructor_template_id"`
  SourceCourseDocIDs     []uuid.UUID `json:"source_course_doc_ids"`
  SourceInstructorDocIDs []uuid.UUID `json:"source_instructor_doc_ids"`
  SourceCourseIDs        []uuid.UUID `json:"source_course_ids"`
  SourceInstructorIDs    []uuid.UUID `json:"source_instructor_ids"`
}

// CreateTool is the tool-call entry point. It always answers 200; failures
// travel inside the envelope body.
func (bh *BrochureHandler) CreateTool(c *gin.Context) {
  var req brochureCreateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondToolError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  result, err := bh.brochureService.Create(c.Request.Context(), services.BrochureCreateInput{
    Title:                  req.Title,
    Summary:                req.Summary,
    Label:                  req.Label,
    SourceMode:             req.SourceMode,
    IncludeToc:             req.IncludeToc,
    IncludeCourse:          req.IncludeCourse,
    IncludeInstructor:      req.IncludeInstructor,
    ContentOrder:           req.ContentOrder,
    OutputMode:             req.OutputMode,
    RenderBatchToken:       req.RenderBatchToken,
    TemplateID:             req.TemplateID,
    CourseTemplateID:       req.CourseTemplateID,
    InstructorTemplateID:   req.InstructorTemplateID,
    SourceCourseDocIDs:     req.SourceCourseDocIDs,
    SourceInstructorDocIDs: req.SourceInstructorDocIDs,
    SourceCourseIDs:        req.SourceCourseIDs,
    SourceInstructorIDs:    req.SourceInstructorIDs,
  })
  if err != nil {
    RespondToolError(c, err)
    return
  }
  RespondToolJSON(c, result)
}

// GetPackagePage serves the composed package document as a standalone HTML
// page.
func (bh *BrochureHandler) GetPackagePage(c *gin.Context) {
  record, err := bh.brochureService.GetPackage(c.Request.Context(), c.Param("id"))
  if err != nil {
    RespondError(c, err)
    return
  }
  c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(record.HTML))
}

// GetPackage returns the raw package record.
func (bh *BrochureHandler) GetPackage(c *gin.Context) {
  record, err := bh.brochureService.GetPackage(c.Request.Context(), c.Param("id"))
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"package": record})
}
