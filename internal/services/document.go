package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/notifier"
  "github.com/eduxhq/edux-backend/internal/repos"
  "github.com/eduxhq/edux-backend/internal/requestdata"
  "github.com/eduxhq/edux-backend/internal/types"
)

type DocumentService interface {
  ListMyDocuments(ctx context.Context, targetType string) ([]*types.UserDocument, error)
  DeactivateDocuments(ctx context.Context, docIDs []uuid.UUID) error
  // CreateRenderJob registers a pending PDF render for a course or an
  // instructor profile. An external worker picks the job up; this service
  // never completes it.
  CreateRenderJob(ctx context.Context, targetType string, targetID uuid.UUID, label string) (*types.UserDocument, error)
}

type documentService struct {
  db            *gorm.DB
  log           *logger.Logger
  authService   AuthService
  docRepo       repos.UserDocumentRepo
  renderJobRepo repos.RenderJobRepo
  bus           notifier.Bus
}

func NewDocumentService(
  db *gorm.DB,
  log *logger.Logger,
  authService AuthService,
  docRepo repos.UserDocumentRepo,
  renderJobRepo repos.RenderJobRepo,
  bus notifier.Bus,
) DocumentService {
  serviceLog := log.With("service", "DocumentService")
  return &documentService{
    db:            db,
    log:           serviceLog,
    authService:   authService,
    docRepo:       docRepo,
    renderJobRepo: renderJobRepo,
    bus:           bus,
  }
}

func (ds *documentService) ListMyDocuments(ctx context.Context, targetType string) ([]*types.UserDocument, error) {
  if err := ds.authService.RequirePermission(ctx, "document.list"); err != nil {
    return nil, err
  }
  rd := requestdata.GetRequestData(ctx)
  docs, err := ds.docRepo.ListByUser(ctx, nil, rd.UserID, targetType)
  if err != nil {
    return nil, fmt.Errorf("list documents: %w", err)
  }
  return docs, nil
}

func (ds *documentService) DeactivateDocuments(ctx context.Context, docIDs []uuid.UUID) error {
  if err := ds.authService.RequirePermission(ctx, "document.manage"); err != nil {
    return err
  }
  rd := requestdata.GetRequestData(ctx)
  return ds.docRepo.DeactivateByIDs(ctx, nil, rd.UserID, docIDs)
}

func (ds *documentService) CreateRenderJob(ctx context.Context, targetType string, targetID uuid.UUID, label string) (*types.UserDocument, error) {
  if err := ds.authService.RequirePermission(ctx, "document.manage"); err != nil {
    return nil, err
  }
  if targetType != types.TargetTypeCourse && targetType != types.TargetTypeInstructorProfile {
    return nil, apierr.Validation("지원하지 않는 문서 대상입니다.")
  }
  rd := requestdata.GetRequestData(ctx)

  now := time.Now()
  job := &types.RenderJob{
    ID:         uuid.New(),
    Status:     types.RenderJobStatusPending,
    TargetType: targetType,
    TargetID:   targetID.String(),
    CreatedAt:  now,
    UpdatedAt:  now,
  }
  doc := &types.UserDocument{
    ID:          uuid.New(),
    UserID:      rd.UserID,
    TargetType:  targetType,
    TargetID:    targetID.String(),
    Label:       label,
    IsActive:    true,
    RenderJobID: &job.ID,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, jErr := ds.renderJobRepo.Create(ctx, tx, []*types.RenderJob{job}); jErr != nil {
      return fmt.Errorf("create render job: %w", jErr)
    }
    if _, dErr := ds.docRepo.Create(ctx, tx, []*types.UserDocument{doc}); dErr != nil {
      return fmt.Errorf("create user document: %w", dErr)
    }
    return nil
  })
  if err != nil {
    ds.log.Error("CreateRenderJob failed", "error", err)
    return nil, err
  }

  if ds.bus != nil {
    evt := notifier.Event{
      Channel: rd.UserID.String(),
      Type:    "render.job.created",
      Data: map[string]interface{}{
        "job_id":      job.ID.String(),
        "target_type": targetType,
        "target_id":   targetID.String(),
      },
    }
    if pErr := ds.bus.Publish(ctx, evt); pErr != nil {
      ds.log.Warn("notifier publish failed", "error", pErr)
    }
  }
  doc.RenderJob = job
  return doc, nil
}
