package services

import (
  "encoding/json"
  "strings"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/eduxhq/edux-backend/internal/apierr"
  "github.com/eduxhq/edux-backend/internal/types"
)

func TestBrochureCreateRequiresIncludeFlag(t *testing.T) {
  f := newBrochureFixture(t)
  _, err := f.svc.Create(f.ctx(), BrochureCreateInput{
    SourceMode: SourceModeEdux,
    TemplateID: uuid.New(),
  })
  if err == nil {
    t.Fatal("expected validation error")
  }
  if apierr.KindOf(err) != apierr.KindValidation {
    t.Fatalf("expected validation kind, got %s", apierr.KindOf(err))
  }
  if apierr.UserMessage(err) != apierr.MsgIncludeRequired {
    t.Fatalf("unexpected message: %q", apierr.UserMessage(err))
  }
}

func TestBrochureCreateRejectsBadSourceMode(t *testing.T) {
  f := newBrochureFixture(t)
  _, err := f.svc.Create(f.ctx(), BrochureCreateInput{
    SourceMode:    "magic",
    IncludeCourse: true,
    TemplateID:    uuid.New(),
  })
  if apierr.KindOf(err) != apierr.KindValidation {
    t.Fatalf("expected validation kind, got %v", err)
  }
  if apierr.UserMessage(err) != apierr.MsgBadSourceMode {
    t.Fatalf("unexpected message: %q", apierr.UserMessage(err))
  }
}

func TestBrochureCreateMissingTemplate(t *testing.T) {
  f := newBrochureFixture(t)
  _, err := f.svc.Create(f.ctx(), BrochureCreateInput{
    SourceMode:    SourceModeEdux,
    IncludeCourse: true,
    TemplateID:    uuid.New(),
  })
  if apierr.KindOf(err) != apierr.KindNotFound {
    t.Fatalf("expected not_found kind, got %v", err)
  }
}

func TestBrochureCreateEndToEnd(t *testing.T) {
  f := newBrochureFixture(t)

  packageTpl := f.seedTemplate(t, types.TemplateTypeBrochurePackage, "기본 패키지",
    `<h1>{{brochure.title}}</h1>`+
      `{{#if brochure.courseFirst}}`+
      `{{#each courses}}{{{webHtml}}}{{/each}}{{#each instructors}}{{{webHtml}}}{{/each}}`+
      `{{else}}`+
      `{{#each instructors}}{{{webHtml}}}{{/each}}{{#each courses}}{{{webHtml}}}{{/each}}`+
      `{{/if}}`,
    ".pkg { margin: 0; }")
  courseTpl := f.seedTemplate(t, types.TemplateTypeCourseIntro, "과정 소개",
    `<section class="course"><a href="/courses">{{course.title}}</a></section>`, ".course { color: blue; }")
  instructorTpl := f.seedTemplate(t, types.TemplateTypeInstructorProfile, "강사 소개",
    `<section class="inst">{{instructor.name}}</section>`, "")

  course := f.seedCourse(t, "Go 심화")
  instructor := f.seedInstructor(t, "박강사", nil)

  result, err := f.svc.Create(f.ctx(), BrochureCreateInput{
    Title:                "가을 브로셔",
    Summary:              "요약",
    SourceMode:           SourceModeEdux,
    IncludeCourse:        true,
    IncludeInstructor:    true,
    ContentOrder:         ContentOrderInstructorFirst,
    OutputMode:           "web",
    TemplateID:           packageTpl.ID,
    CourseTemplateID:     &courseTpl.ID,
    InstructorTemplateID: &instructorTpl.ID,
    SourceCourseIDs:      []uuid.UUID{course.ID},
    SourceInstructorIDs:  []uuid.UUID{instructor.ID},
  })
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  if result.PackageID == "" {
    t.Fatal("empty package id")
  }
  if result.URL != "/brochure/"+result.PackageID {
    t.Fatalf("unexpected url: %q", result.URL)
  }

  var setting types.AppSetting
  if err := f.db.Where("key = ?", "brochure.package."+result.PackageID).First(&setting).Error; err != nil {
    t.Fatalf("setting blob missing: %v", err)
  }
  var record PackageRecord
  if err := json.Unmarshal(setting.Value, &record); err != nil {
    t.Fatalf("unmarshal blob: %v", err)
  }
  if record.ID != result.PackageID || record.UserID != f.userID.String() {
    t.Fatalf("record identity mismatch: %+v", record)
  }
  if record.ContentOrder != ContentOrderInstructorFirst {
    t.Fatalf("content order not persisted: %q", record.ContentOrder)
  }
  if record.TemplateName != "기본 패키지" {
    t.Fatalf("template name not snapshotted: %q", record.TemplateName)
  }
  if record.CourseTemplateID == nil || *record.CourseTemplateID != courseTpl.ID.String() {
    t.Fatalf("course template id not snapshotted: %v", record.CourseTemplateID)
  }

  instructorAt := strings.Index(record.HTML, "박강사")
  courseAt := strings.Index(record.HTML, "Go 심화")
  if instructorAt < 0 || courseAt < 0 {
    t.Fatalf("sections missing from composed html")
  }
  if instructorAt > courseAt {
    t.Fatal("instructor-first order not honored in composed html")
  }
  if !strings.Contains(record.HTML, `href="#"`) || strings.Contains(record.HTML, `href="/courses"`) {
    t.Fatal("embedded section links were not sanitized")
  }
  if !strings.Contains(record.HTML, ".course { color: blue; }") {
    t.Fatal("section css not inlined")
  }

  var doc types.UserDocument
  if err := f.db.Where("target_type = ? AND target_id = ?", types.TargetTypeBrochurePackage, result.PackageID).First(&doc).Error; err != nil {
    t.Fatalf("user document missing: %v", err)
  }
  if doc.PdfURL != result.URL {
    t.Fatalf("document url mismatch: %q", doc.PdfURL)
  }
  if doc.RenderJobID == nil {
    t.Fatal("document not linked to a render job")
  }
  var job types.RenderJob
  if err := f.db.Where("id = ?", *doc.RenderJobID).First(&job).Error; err != nil {
    t.Fatalf("render job missing: %v", err)
  }
  if job.Status != types.RenderJobStatusDone {
    t.Fatalf("package render job must be done, got %q", job.Status)
  }

  fetched, err := f.svc.GetPackage(f.ctx(), result.PackageID)
  if err != nil {
    t.Fatalf("get package: %v", err)
  }
  if fetched.HTML != record.HTML {
    t.Fatal("fetched package differs from stored blob")
  }
}

func TestBrochureCommitRollsBackAllWrites(t *testing.T) {
  f := newBrochureFixture(t)

  packageTpl := f.seedTemplate(t, types.TemplateTypeBrochurePackage, "단순", `<h1>{{brochure.title}}</h1>`, "")
  course := f.seedCourse(t, "원자성")

  // Pre-seed a render job under the id the service will generate, so the
  // second of the three commit writes fails on the primary key.
  conflictID := uuid.New()
  now := time.Now()
  if err := f.db.Create(&types.RenderJob{
    ID:         conflictID,
    Status:     types.RenderJobStatusPending,
    TargetType: types.TargetTypeCourse,
    TargetID:   course.ID.String(),
    CreatedAt:  now,
    UpdatedAt:  now,
  }).Error; err != nil {
    t.Fatalf("seed conflicting job: %v", err)
  }
  f.svc.genID = func() uuid.UUID { return conflictID }

  _, err := f.svc.Create(f.ctx(), BrochureCreateInput{
    Title:           "실패 케이스",
    SourceMode:      SourceModeEdux,
    IncludeCourse:   true,
    TemplateID:      packageTpl.ID,
    SourceCourseIDs: []uuid.UUID{course.ID},
  })
  if err == nil {
    t.Fatal("expected commit failure")
  }

  var settingCount, docCount, jobCount int64
  f.db.Model(&types.AppSetting{}).Count(&settingCount)
  f.db.Model(&types.UserDocument{}).Count(&docCount)
  f.db.Model(&types.RenderJob{}).Count(&jobCount)
  if settingCount != 0 {
    t.Fatalf("setting blob leaked out of failed transaction: %d rows", settingCount)
  }
  if docCount != 0 {
    t.Fatalf("user document leaked out of failed transaction: %d rows", docCount)
  }
  if jobCount != 1 {
    t.Fatalf("expected only the pre-seeded job, got %d", jobCount)
  }
}

func TestBrochureGetPackageNotFound(t *testing.T) {
  f := newBrochureFixture(t)
  _, err := f.svc.GetPackage(f.ctx(), "20240101000000-deadbeef")
  if apierr.KindOf(err) != apierr.KindNotFound {
    t.Fatalf("expected not_found, got %v", err)
  }
}

func TestBrochureCreateDeniedForMissingCapability(t *testing.T) {
  f := newBrochureFixture(t)
  ctx := f.ctx()
  // Strip the role down to nothing.
  rdCtx := contextWithRole(ctx, f.userID, "guest")
  _, err := f.svc.Create(rdCtx, BrochureCreateInput{
    SourceMode:    SourceModeEdux,
    IncludeCourse: true,
    TemplateID:    uuid.New(),
  })
  if apierr.KindOf(err) != apierr.KindPermission {
    t.Fatalf("expected permission kind, got %v", err)
  }
}
