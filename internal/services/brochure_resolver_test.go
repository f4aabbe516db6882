package services

import (
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/eduxhq/edux-backend/internal/types"
)

func TestResolveMyDocumentsPreservesCallerOrder(t *testing.T) {
  f := newBrochureFixture(t)
  courseA := f.seedCourse(t, "A")
  courseB := f.seedCourse(t, "B")
  courseC := f.seedCourse(t, "C")

  now := time.Now()
  docA := f.seedDocument(t, types.TargetTypeCourse, courseA.ID.String(), "/a.pdf", types.RenderJobStatusDone, now)
  docB := f.seedDocument(t, types.TargetTypeCourse, courseB.ID.String(), "/b.pdf", types.RenderJobStatusDone, now)
  docC := f.seedDocument(t, types.TargetTypeCourse, courseC.ID.String(), "/c.pdf", types.RenderJobStatusDone, now)

  sources, err := f.svc.resolveSources(f.ctx(), f.userID, BrochureCreateInput{
    SourceMode:         SourceModeMyDocuments,
    IncludeCourse:      true,
    SourceCourseDocIDs: []uuid.UUID{docC.ID, docA.ID, docB.ID},
  })
  if err != nil {
    t.Fatalf("resolve: %v", err)
  }
  if len(sources.Courses) != 3 {
    t.Fatalf("expected 3 courses, got %d", len(sources.Courses))
  }
  gotTitles := []string{sources.Courses[0].Course.Title, sources.Courses[1].Course.Title, sources.Courses[2].Course.Title}
  want := []string{"C", "A", "B"}
  for i := range want {
    if gotTitles[i] != want[i] {
      t.Fatalf("order mismatch at %d: got %v, want %v", i, gotTitles, want)
    }
  }
  if sources.Courses[0].PdfURL != "/c.pdf" {
    t.Fatalf("pdf not attached: %q", sources.Courses[0].PdfURL)
  }
}

func TestResolveMyDocumentsPendingJobHasNoPdf(t *testing.T) {
  f := newBrochureFixture(t)
  course := f.seedCourse(t, "미완료")
  doc := f.seedDocument(t, types.TargetTypeCourse, course.ID.String(), "/stale.pdf", types.RenderJobStatusPending, time.Now())

  sources, err := f.svc.resolveSources(f.ctx(), f.userID, BrochureCreateInput{
    SourceMode:         SourceModeMyDocuments,
    IncludeCourse:      true,
    SourceCourseDocIDs: []uuid.UUID{doc.ID},
  })
  if err != nil {
    t.Fatalf("resolve: %v", err)
  }
  if len(sources.Courses) != 1 {
    t.Fatalf("expected 1 course, got %d", len(sources.Courses))
  }
  if sources.Courses[0].PdfURL != "" {
    t.Fatalf("pending render job must not contribute a pdf, got %q", sources.Courses[0].PdfURL)
  }
}

func TestResolveMyDocumentsRekeysProfilesToInstructors(t *testing.T) {
  f := newBrochureFixture(t)

  backedUser := f.seedProfileUser(t, "backed@example.com")
  backedProfile := f.seedProfile(t, backedUser.ID, "프로필 이름")
  instructor := f.seedInstructor(t, "강사 이름", &backedUser.ID)

  soloUser := f.seedProfileUser(t, "solo@example.com")
  soloProfile := f.seedProfile(t, soloUser.ID, "단독 프로필")

  now := time.Now()
  backedDoc := f.seedDocument(t, types.TargetTypeInstructorProfile, backedProfile.ID.String(), "/backed.pdf", types.RenderJobStatusDone, now)
  soloDoc := f.seedDocument(t, types.TargetTypeInstructorProfile, soloProfile.ID.String(), "/solo.pdf", types.RenderJobStatusDone, now)

  sources, err := f.svc.resolveSources(f.ctx(), f.userID, BrochureCreateInput{
    SourceMode:             SourceModeMyDocuments,
    IncludeInstructor:      true,
    SourceInstructorDocIDs: []uuid.UUID{backedDoc.ID, soloDoc.ID},
  })
  if err != nil {
    t.Fatalf("resolve: %v", err)
  }
  if len(sources.Instructors) != 2 {
    t.Fatalf("expected 2 instructors, got %d", len(sources.Instructors))
  }

  backed := sources.Instructors[0]
  if backed.Instructor.ID != instructor.ID {
    t.Fatalf("profile document should re-key to the instructor row, got id %s", backed.Instructor.ID)
  }
  if backed.PdfURL != "/backed.pdf" {
    t.Fatalf("pdf lost during re-keying: %q", backed.PdfURL)
  }

  solo := sources.Instructors[1]
  if solo.Instructor.ID != soloProfile.ID {
    t.Fatalf("profile-only row should carry the profile id, got %s", solo.Instructor.ID)
  }
  if solo.Instructor.Name != "단독 프로필" {
    t.Fatalf("profile-only row should use the profile display name, got %q", solo.Instructor.Name)
  }
  if solo.Instructor.Email != "solo@example.com" {
    t.Fatalf("profile-only row should fall back to the user email, got %q", solo.Instructor.Email)
  }
}

func TestResolveCatalogUsesOnlyNewestDocument(t *testing.T) {
  f := newBrochureFixture(t)
  course := f.seedCourse(t, "최신만")

  old := time.Now().Add(-time.Hour)
  f.seedDocument(t, types.TargetTypeCourse, course.ID.String(), "/old-done.pdf", types.RenderJobStatusDone, old)
  f.seedDocument(t, types.TargetTypeCourse, course.ID.String(), "/new-pending.pdf", types.RenderJobStatusPending, time.Now())

  sources, err := f.svc.resolveSources(f.ctx(), f.userID, BrochureCreateInput{
    SourceMode:      SourceModeEdux,
    IncludeCourse:   true,
    SourceCourseIDs: []uuid.UUID{course.ID},
  })
  if err != nil {
    t.Fatalf("resolve: %v", err)
  }
  if len(sources.Courses) != 1 {
    t.Fatalf("expected 1 course, got %d", len(sources.Courses))
  }
  // The newest document is pending, so no pdf; the older finished one must
  // not be used as a fallback.
  if sources.Courses[0].PdfURL != "" {
    t.Fatalf("expected no pdf, got %q", sources.Courses[0].PdfURL)
  }
}

func TestResolveCatalogInstructorOrderAndProfilePdf(t *testing.T) {
  f := newBrochureFixture(t)

  firstUser := f.seedProfileUser(t, "first@example.com")
  firstProfile := f.seedProfile(t, firstUser.ID, "첫번째")
  first := f.seedInstructor(t, "첫번째 강사", &firstUser.ID)
  second := f.seedInstructor(t, "두번째 강사", nil)

  f.seedDocument(t, types.TargetTypeInstructorProfile, firstProfile.ID.String(), "/first.pdf", types.RenderJobStatusDone, time.Now())

  sources, err := f.svc.resolveSources(f.ctx(), f.userID, BrochureCreateInput{
    SourceMode:          SourceModeEdux,
    IncludeInstructor:   true,
    SourceInstructorIDs: []uuid.UUID{second.ID, first.ID},
  })
  if err != nil {
    t.Fatalf("resolve: %v", err)
  }
  if len(sources.Instructors) != 2 {
    t.Fatalf("expected 2 instructors, got %d", len(sources.Instructors))
  }
  if sources.Instructors[0].Instructor.ID != second.ID {
    t.Fatal("caller order not preserved")
  }
  if sources.Instructors[1].PdfURL != "/first.pdf" {
    t.Fatalf("profile pdf not attached through user link, got %q", sources.Instructors[1].PdfURL)
  }
  if sources.Instructors[0].PdfURL != "" {
    t.Fatalf("instructor without profile must have no pdf, got %q", sources.Instructors[0].PdfURL)
  }
}

func TestResolveIgnoresExcludedSections(t *testing.T) {
  f := newBrochureFixture(t)
  course := f.seedCourse(t, "제외")
  doc := f.seedDocument(t, types.TargetTypeCourse, course.ID.String(), "/x.pdf", types.RenderJobStatusDone, time.Now())

  sources, err := f.svc.resolveSources(f.ctx(), f.userID, BrochureCreateInput{
    SourceMode:         SourceModeMyDocuments,
    IncludeCourse:      false,
    IncludeInstructor:  true,
    SourceCourseDocIDs: []uuid.UUID{doc.ID},
  })
  if err != nil {
    t.Fatalf("resolve: %v", err)
  }
  if len(sources.Courses) != 0 {
    t.Fatalf("excluded course section must stay empty, got %d", len(sources.Courses))
  }
}
