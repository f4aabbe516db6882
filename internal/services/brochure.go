package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/notifier"
  "github.com/eduxhq/edux-backend/internal/render"
  "github.com/eduxhq/edux-backend/internal/repos"
  "github.com/eduxhq/edux-backend/internal/requestdata"
  "github.com/eduxhq/edux-backend/internal/types"
)

const (
  SourceModeMyDocuments = "my_documents"
  SourceModeEdux        = "edux"

  ContentOrderCourseFirst     = "course-first"
  ContentOrderInstructorFirst = "instructor-first"

  brochureSettingKeyPrefix = "brochure.package."
)

type BrochureCreateInput struct {
  Title                  string
  Summary                string
  Label                  string
  SourceMode             string
  IncludeToc             bool
  IncludeCourse          bool
  IncludeInstructor      bool
  ContentOrder           string
  OutputMode             string
  RenderBatchToken       string
  TemplateID             uuid.UUID
  CourseTemplateID       *uuid.UUID
  InstructorTemplateID   *uuid.UUID
  SourceCourseDocIDs     []uuid.UUID
  SourceInstructorDocIDs []uuid.UUID
  SourceCourseIDs        []uuid.UUID
  SourceInstructorIDs    []uuid.UUID
}

type BrochureCreateResult struct {
  PackageID string              `json:"package_id"`
  URL       string              `json:"url"`
  Document  *types.UserDocument `json:"document"`
}

// PackageRecord is the durable snapshot persisted to the settings store.
// The field set is a compatibility contract with existing readers; do not
// rename or drop keys.
type PackageRecord struct {
  ID                     string    `json:"id"`
  UserID                 string    `json:"userId"`
  Title                  string    `json:"title"`
  Summary                string    `json:"summary"`
  SourceMode             string    `json:"sourceMode"`
  IncludeToc             bool      `json:"includeToc"`
  IncludeCourse          bool      `json:"includeCourse"`
  IncludeInstructor      bool      `json:"includeInstructor"`
  ContentOrder           string    `json:"contentOrder"`
  OutputMode             string    `json:"outputMode"`
  RenderBatchToken       string    `json:"renderBatchToken"`
  TemplateID             string    `json:"templateId"`
  TemplateName           string    `json:"templateName"`
  CourseTemplateID       *string   `json:"courseTemplateId"`
  CourseTemplateName     *string   `json:"courseTemplateName"`
  InstructorTemplateID   *string   `json:"instructorTemplateId"`
  InstructorTemplateName *string   `json:"instructorTemplateName"`
  SourceCourseDocIDs     []string  `json:"sourceCourseDocIds"`
  SourceInstructorDocIDs []string  `json:"sourceInstructorDocIds"`
  SourceCourseIDs        []string  `json:"sourceCourseIds"`
  SourceInstructorIDs    []string  `json:"sourceInstructorIds"`
  HTML                   string    `json:"html"`
  CreatedAt              time.Time `json:"createdAt"`
  UpdatedAt              time.Time `json:"updatedAt"`
}

type BrochureService interface {
  Create(ctx context.Context, input BrochureCreateInput) (*BrochureCreateResult, error)
  GetPackage(ctx context.Context, packageID string) (*PackageRecord, error)
}

type brochureService struct {
  db            *gorm.DB
  log           *logger.Logger
  authService   AuthService
  courseRepo    repos.CourseRepo
  instRepo      repos.InstructorRepo
  profileRepo   repos.InstructorProfileRepo
  docRepo       repos.UserDocumentRepo
  renderJobRepo repos.RenderJobRepo
  templateRepo  repos.TemplateRepo
  settingRepo   repos.AppSettingRepo
  engine        *render.Engine
  bus           notifier.Bus

  // id source for commit rows; swapped out in tests to force write conflicts
  genID func() uuid.UUID
}

func NewBrochureService(
  db *gorm.DB,
  log *logger.Logger,
  authService AuthService,
  courseRepo repos.CourseRepo,
  instRepo repos.InstructorRepo,
  profileRepo repos.InstructorProfileRepo,
  docRepo repos.UserDocumentRepo,
  renderJobRepo repos.RenderJobRepo,
  templateRepo repos.TemplateRepo,
  settingRepo repos.AppSettingRepo,
  engine *render.Engine,
  bus notifier.Bus,
) BrochureService {
  serviceLog := log.With("service", "BrochureService")
  return &brochureService{
    db:            db,
    log:           serviceLog,
    authService:   authService,
    courseRepo:    courseRepo,
    instRepo:      instRepo,
    profileRepo:   profileRepo,
    docRepo:       docRepo,
    renderJobRepo: renderJobRepo,
    templateRepo:  templateRepo,
    settingRepo:   settingRepo,
    engine:        engine,
    bus:           bus,
    genID:         uuid.New,
  }
}

func (bs *brochureService) Create(ctx context.Context, input BrochureCreateInput) (*BrochureCreateResult, error) {
  // Validation happens before any data access.
  if !input.IncludeCourse && !input.IncludeInstructor {
    return nil, apierr.Validation(apierr.MsgIncludeRequired)
  }
  if input.SourceMode != SourceModeMyDocuments && input.SourceMode != SourceModeEdux {
    return nil, apierr.Validation(apierr.MsgBadSourceMode)
  }
  contentOrder := input.ContentOrder
  if contentOrder != ContentOrderInstructorFirst {
    contentOrder = ContentOrderCourseFirst
  }

  if err := bs.authService.RequirePermission(ctx, "document.list"); err != nil {
    return nil, err
  }
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Auth(apierr.MsgTokenInvalid)
  }

  brochureTpl, err := bs.templateRepo.GetByIDAndType(ctx, nil, input.TemplateID, types.TemplateTypeBrochurePackage)
  if err != nil {
    return nil, fmt.Errorf("load brochure template: %w", err)
  }
  if brochureTpl == nil {
    return nil, apierr.NotFound(apierr.MsgTemplateNotFound)
  }
  var courseTpl, instructorTpl *types.Template
  if input.CourseTemplateID != nil {
    courseTpl, err = bs.templateRepo.GetByIDAndType(ctx, nil, *input.CourseTemplateID, types.TemplateTypeCourseIntro)
    if err != nil {
      return nil, fmt.Errorf("load course template: %w", err)
    }
  }
  if input.InstructorTemplateID != nil {
    instructorTpl, err = bs.templateRepo.GetByIDAndType(ctx, nil, *input.InstructorTemplateID, types.TemplateTypeInstructorProfile)
    if err != nil {
      return nil, fmt.Errorf("load instructor template: %w", err)
    }
  }

  sources, err := bs.resolveSources(ctx, rd.UserID, input)
  if err != nil {
    return nil, err
  }

  bs.renderSections(ctx, sources, courseTpl, instructorTpl)

  meta := render.PackageMeta{
    Title:              input.Title,
    Summary:            input.Summary,
    IncludeToc:         input.IncludeToc,
    IncludeCourses:     input.IncludeCourse,
    IncludeInstructors: input.IncludeInstructor,
    CourseFirst:        contentOrder == ContentOrderCourseFirst,
    OutputMode:         input.OutputMode,
  }
  html, err := render.ComposePackage(
    bs.engine,
    brochureTpl.HTML,
    brochureTpl.CSS,
    meta,
    courseSectionContexts(sources.Courses),
    instructorSectionContexts(sources.Instructors),
  )
  if err != nil {
    return nil, apierr.Internal(apierr.MsgSaveFailed, err)
  }

  packageID := render.NewPackageID()
  record := bs.buildPackageRecord(packageID, rd.UserID, input, contentOrder, brochureTpl, courseTpl, instructorTpl, html)

  doc, err := bs.commitPackage(ctx, rd.UserID, packageID, input.Label, record)
  if err != nil {
    bs.log.Error("brochure commit failed", "package_id", packageID, "error", err)
    return nil, apierr.Internal(apierr.MsgSaveFailed, err)
  }

  if bs.bus != nil {
    evt := notifier.Event{
      Channel: rd.UserID.String(),
      Type:    "brochure.package.created",
      Data: map[string]interface{}{
        "package_id": packageID,
        "url":        "/brochure/" + packageID,
      },
    }
    if pErr := bs.bus.Publish(ctx, evt); pErr != nil {
      bs.log.Warn("notifier publish failed", "error", pErr)
    }
  }

  return &BrochureCreateResult{
    PackageID: packageID,
    URL:       "/brochure/" + packageID,
    Document:  doc,
  }, nil
}

func (bs *brochureService) buildPackageRecord(
  packageID string,
  userID uuid.UUID,
  input BrochureCreateInput,
  contentOrder string,
  brochureTpl, courseTpl, instructorTpl *types.Template,
  html string,
) *PackageRecord {
  now := time.Now()
  record := &PackageRecord{
    ID:                     packageID,
    UserID:                 userID.String(),
    Title:                  input.Title,
    Summary:                input.Summary,
    SourceMode:             input.SourceMode,
    IncludeToc:             input.IncludeToc,
    IncludeCourse:          input.IncludeCourse,
    IncludeInstructor:      input.IncludeInstructor,
    ContentOrder:           contentOrder,
    OutputMode:             input.OutputMode,
    RenderBatchToken:       input.RenderBatchToken,
    TemplateID:             brochureTpl.ID.String(),
    TemplateName:           brochureTpl.Name,
    SourceCourseDocIDs:     uuidStrings(input.SourceCourseDocIDs),
    SourceInstructorDocIDs: uuidStrings(input.SourceInstructorDocIDs),
    SourceCourseIDs:        uuidStrings(input.SourceCourseIDs),
    SourceInstructorIDs:    uuidStrings(input.SourceInstructorIDs),
    HTML:                   html,
    CreatedAt:              now,
    UpdatedAt:              now,
  }
  if courseTpl != nil {
    id, name := courseTpl.ID.String(), courseTpl.Name
    record.CourseTemplateID, record.CourseTemplateName = &id, &name
  }
  if instructorTpl != nil {
    id, name := instructorTpl.ID.String(), instructorTpl.Name
    record.InstructorTemplateID, record.InstructorTemplateName = &id, &name
  }
  return record
}

// commitPackage writes the setting blob, the render job and the user
// document in one transaction. Any failure rolls all three back.
func (bs *brochureService) commitPackage(
  ctx context.Context,
  userID uuid.UUID,
  packageID string,
  label string,
  record *PackageRecord,
) (*types.UserDocument, error) {
  raw, err := json.Marshal(record)
  if err != nil {
    return nil, fmt.Errorf("marshal package record: %w", err)
  }

  now := time.Now()
  job := &types.RenderJob{
    ID:         bs.genID(),
    Status:     types.RenderJobStatusDone,
    TargetType: types.TargetTypeBrochurePackage,
    TargetID:   packageID,
    CreatedAt:  now,
    UpdatedAt:  now,
  }
  if label == "" {
    label = record.Title
  }
  doc := &types.UserDocument{
    ID:          bs.genID(),
    UserID:      userID,
    TargetType:  types.TargetTypeBrochurePackage,
    TargetID:    packageID,
    Label:       label,
    PdfURL:      "/brochure/" + packageID,
    IsActive:    true,
    RenderJobID: &job.ID,
    CreatedAt:   now,
    UpdatedAt:   now,
  }

  err = bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    setting := &types.AppSetting{
      Key:       brochureSettingKeyPrefix + packageID,
      Value:     raw,
      CreatedAt: now,
      UpdatedAt: now,
    }
    if sErr := bs.settingRepo.Upsert(ctx, tx, setting); sErr != nil {
      return fmt.Errorf("persist package setting: %w", sErr)
    }
    if _, jErr := bs.renderJobRepo.Create(ctx, tx, []*types.RenderJob{job}); jErr != nil {
      return fmt.Errorf("create render job: %w", jErr)
    }
    if _, dErr := bs.docRepo.Create(ctx, tx, []*types.UserDocument{doc}); dErr != nil {
      return fmt.Errorf("create user document: %w", dErr)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  doc.RenderJob = job
  return doc, nil
}

func (bs *brochureService) GetPackage(ctx context.Context, packageID string) (*PackageRecord, error) {
  if err := bs.authService.RequirePermission(ctx, "document.list"); err != nil {
    return nil, err
  }
  settings, err := bs.settingRepo.GetByKeys(ctx, nil, []string{brochureSettingKeyPrefix + packageID})
  if err != nil {
    return nil, fmt.Errorf("load package setting: %w", err)
  }
  if len(settings) == 0 || settings[0] == nil {
    return nil, apierr.NotFound(apierr.MsgPackageNotFound)
  }
  var record PackageRecord
  if err := json.Unmarshal(settings[0].Value, &record); err != nil {
    return nil, apierr.Internal(apierr.MsgQueryFailed, err)
  }
  return &record, nil
}

func uuidStrings(ids []uuid.UUID) []string {
  out := make([]string, 0, len(ids))
  for _, id := range ids {
    out = append(out, id.String())
  }
  return out
}
