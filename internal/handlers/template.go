package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/services"
)

type TemplateHandler struct {
  templateService services.TemplateService
}

func NewTemplateHandler(templateService services.TemplateService) *TemplateHandler {
  return &TemplateHandler{templateService: templateService}
}

type templateRequest struct {
  Type string `json:"type" binding:"required"`
  Name string `json:"name" binding:"required"`
  HTML string `json:"html"`
  CSS  string `json:"css"`
}

func (th *TemplateHandler) Create(c *gin.Context) {
  var req templateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  template, err := th.templateService.CreateTemplate(c.Request.Context(), services.TemplateInput{
    Type: req.Type,
    Name: req.Name,
    HTML: req.HTML,
    CSS:  req.CSS,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"template": template})
}

func (th *TemplateHandler) Update(c *gin.Context) {
  templateID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgTemplateNotFound))
    return
  }
  var req templateRequest
  if bErr := c.ShouldBindJSON(&req); bErr != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  template, err := th.templateService.UpdateTemplate(c.Request.Context(), templateID, services.TemplateInput{
    Type: req.Type,
    Name: req.Name,
    HTML: req.HTML,
    CSS:  req.CSS,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"template": template})
}

func (th *TemplateHandler) Delete(c *gin.Context) {
  templateID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, apierr.Validation(apierr.MsgTemplateNotFound))
    return
  }
  if dErr := th.templateService.DeleteTemplate(c.Request.Context(), templateID); dErr != nil {
    RespondError(c, dErr)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

func (th *TemplateHandler) List(c *gin.Context) {
  templates, err := th.templateService.ListTemplates(c.Request.Context(), c.Query("type"))
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"templates": templates})
}
