package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/repos"
  "github.com/eduxhq/edux-backend/internal/types"
)

type TemplateInput struct {
  Type string
  Name string
  HTML string
  CSS  string
}

type TemplateService interface {
  CreateTemplate(ctx context.Context, input TemplateInput) (*types.Template, error)
  UpdateTemplate(ctx context.Context, templateID uuid.UUID, input TemplateInput) (*types.Template, error)
  DeleteTemplate(ctx context.Context, templateID uuid.UUID) error
  ListTemplates(ctx context.Context, templateType string) ([]*types.Template, error)
}

type templateService struct {
  db           *gorm.DB
  log          *logger.Logger
  authService  AuthService
  templateRepo repos.TemplateRepo
}

func NewTemplateService(db *gorm.DB, log *logger.Logger, authService AuthService, templateRepo repos.TemplateRepo) TemplateService {
  serviceLog := log.With("service", "TemplateService")
  return &templateService{db: db, log: serviceLog, authService: authService, templateRepo: templateRepo}
}

func validTemplateType(t string) bool {
  switch t {
  case types.TemplateTypeBrochurePackage, types.TemplateTypeCourseIntro, types.TemplateTypeInstructorProfile:
    return true
  }
  return false
}

func (ts *templateService) CreateTemplate(ctx context.Context, input TemplateInput) (*types.Template, error) {
  if err := ts.authService.RequirePermission(ctx, "template.manage"); err != nil {
    return nil, err
  }
  if !validTemplateType(input.Type) {
    return nil, apierr.Validation("지원하지 않는 템플릿 유형입니다.")
  }
  if input.Name == "" {
    return nil, apierr.Validation("템플릿 이름은 필수입니다.")
  }
  now := time.Now()
  template := &types.Template{
    ID:        uuid.New(),
    Type:      input.Type,
    Name:      input.Name,
    HTML:      input.HTML,
    CSS:       input.CSS,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if _, err := ts.templateRepo.Create(ctx, nil, []*types.Template{template}); err != nil {
    return nil, fmt.Errorf("create template: %w", err)
  }
  return template, nil
}

func (ts *templateService) UpdateTemplate(ctx context.Context, templateID uuid.UUID, input TemplateInput) (*types.Template, error) {
  if err := ts.authService.RequirePermission(ctx, "template.manage"); err != nil {
    return nil, err
  }
  if !validTemplateType(input.Type) {
    return nil, apierr.Validation("지원하지 않는 템플릿 유형입니다.")
  }
  template, err := ts.templateRepo.GetByIDAndType(ctx, nil, templateID, input.Type)
  if err != nil {
    return nil, fmt.Errorf("load template: %w", err)
  }
  if template == nil {
    return nil, apierr.NotFound(apierr.MsgTemplateNotFound)
  }
  template.Name = input.Name
  template.HTML = input.HTML
  template.CSS = input.CSS
  template.UpdatedAt = time.Now()
  if err := ts.templateRepo.Update(ctx, nil, template); err != nil {
    return nil, fmt.Errorf("update template: %w", err)
  }
  return template, nil
}

func (ts *templateService) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
  if err := ts.authService.RequirePermission(ctx, "template.manage"); err != nil {
    return err
  }
  return ts.templateRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{templateID})
}

func (ts *templateService) ListTemplates(ctx context.Context, templateType string) ([]*types.Template, error) {
  templates, err := ts.templateRepo.List(ctx, nil, templateType)
  if err != nil {
    return nil, fmt.Errorf("list templates: %w", err)
  }
  return templates, nil
}
