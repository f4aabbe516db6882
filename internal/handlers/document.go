package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/services"
)

type DocumentHandler struct {
  documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
  return &DocumentHandler{documentService: documentService}
}

func (dh *DocumentHandler) ListMine(c *gin.Context) {
  docs, err := dh.documentService.ListMyDocuments(c.Request.Context(), c.Query("target_type"))
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"documents": docs})
}

type deactivateRequest struct {
  DocumentIDs []uuid.UUID `json:"document_ids" binding:"required"`
}

func (dh *DocumentHandler) Deactivate(c *gin.Context) {
  var req deactivateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  if err := dh.documentService.DeactivateDocuments(c.Request.Context(), req.DocumentIDs); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"ok": true})
}

type renderJobRequest struct {
  TargetType string    `json:"target_type" binding:"required"`
  TargetID   uuid.UUID `json:"target_id" binding:"required"`
  Label      string    `json:"label"`
}

func (dh *DocumentHandler) CreateRenderJob(c *gin.Context) {
  var req renderJobRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, apierr.Validation(apierr.MsgQueryFailed))
    return
  }
  doc, err := dh.documentService.CreateRenderJob(c.Request.Context(), req.TargetType, req.TargetID, req.Label)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"document": doc})
}
