package services

import (
  "context"
  "encoding/json"

  "golang.org/x/sync/errgroup"
  "gorm.io/datatypes"

  "github.com/eduxhq/edux-backend/internal/render"
  "github.com/eduxhq/edux-backend/internal/types"
)

const sectionRenderConcurrency = 8

// renderSections fills in WebHTML for every resolved entity that has a
// section template. A failed section never fails the whole package; the
// entity falls back to its base record.
func (bs *brochureService) renderSections(ctx context.Context, sources *resolvedSources, courseTpl, instructorTpl *types.Template) {
  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(sectionRenderConcurrency)

  if courseTpl != nil {
    for _, rc := range sources.Courses {
      rc := rc
      g.Go(func() error {
        html, err := bs.renderCourseSection(gctx, rc, courseTpl)
        if err != nil {
          bs.log.Warn("course section render failed", "course_id", rc.Course.ID.String(), "error", err)
          return nil
        }
        rc.WebHTML = html
        return nil
      })
    }
  }
  if instructorTpl != nil {
    for _, ri := range sources.Instructors {
      ri := ri
      g.Go(func() error {
        html, err := bs.renderInstructorSection(gctx, ri, instructorTpl)
        if err != nil {
          bs.log.Warn("instructor section render failed", "instructor_id", ri.Instructor.ID.String(), "error", err)
          return nil
        }
        ri.WebHTML = html
        return nil
      })
    }
  }
  _ = g.Wait()
}

func (bs *brochureService) renderCourseSection(_ context.Context, rc *resolvedCourse, tpl *types.Template) (string, error) {
  course := rc.Course
  lectures := make([]map[string]interface{}, 0, len(course.Lectures))
  for _, lecture := range course.Lectures {
    lectures = append(lectures, map[string]interface{}{
      "title":     lecture.Title,
      "content":   lecture.Content,
      "sortOrder": lecture.SortOrder,
    })
  }
  instructors := make([]map[string]interface{}, 0, len(course.Instructors))
  for _, inst := range course.Instructors {
    instructors = append(instructors, map[string]interface{}{
      "name":        inst.Name,
      "title":       inst.Title,
      "affiliation": inst.Affiliation,
    })
  }
  schedules := make([]map[string]interface{}, 0, len(course.Schedules))
  for _, schedule := range course.Schedules {
    entry := map[string]interface{}{
      "startsAt": schedule.StartsAt,
      "endsAt":   schedule.EndsAt,
      "location": schedule.Location,
    }
    if schedule.Instructor != nil {
      entry["instructorName"] = schedule.Instructor.Name
    }
    schedules = append(schedules, entry)
  }

  renderCtx := map[string]interface{}{
    "course": map[string]interface{}{
      "id":            course.ID.String(),
      "title":         course.Title,
      "description":   course.Description,
      "durationHours": course.DurationHours,
      "goal":          course.Goal,
      "content":       course.Content,
      "customFields":  decodeJSON(course.CustomFields),
    },
    "lectures":    lectures,
    "instructors": instructors,
    "schedules":   schedules,
  }
  return bs.renderSection(tpl, renderCtx)
}

// renderInstructorSection merges the catalog row with the self-service
// profile. The profile fills gaps in the catalog row, never the reverse.
func (bs *brochureService) renderInstructorSection(_ context.Context, ri *resolvedInstructor, tpl *types.Template) (string, error) {
  inst := ri.Instructor
  name := inst.Name
  title := inst.Title
  bio := inst.Bio
  affiliation := inst.Affiliation
  links := inst.Links
  if ri.Profile != nil {
    if name == "" {
      name = ri.Profile.DisplayName
    }
    if title == "" {
      title = ri.Profile.Title
    }
    if bio == "" {
      bio = ri.Profile.Bio
    }
    if affiliation == "" {
      affiliation = ri.Profile.Affiliation
    }
    if len(links) == 0 {
      links = ri.Profile.Links
    }
  }
  email := inst.Email
  phone := inst.Phone
  if inst.User != nil {
    if inst.User.Email != "" {
      email = inst.User.Email
    }
    if phone == "" {
      phone = inst.User.Phone
    }
  }

  courses := make([]map[string]interface{}, 0, len(inst.Courses))
  for _, course := range inst.Courses {
    courses = append(courses, map[string]interface{}{
      "title":         course.Title,
      "durationHours": course.DurationHours,
    })
  }
  schedules := make([]map[string]interface{}, 0, len(inst.Schedules))
  for _, schedule := range inst.Schedules {
    schedules = append(schedules, map[string]interface{}{
      "startsAt": schedule.StartsAt,
      "endsAt":   schedule.EndsAt,
      "location": schedule.Location,
    })
  }

  renderCtx := map[string]interface{}{
    "instructor": map[string]interface{}{
      "id":          inst.ID.String(),
      "name":        name,
      "title":       title,
      "bio":         bio,
      "affiliation": affiliation,
      "email":       email,
      "phone":       phone,
      "links":       decodeJSON(links),
    },
    "courses":   courses,
    "schedules": schedules,
  }
  return bs.renderSection(tpl, renderCtx)
}

// renderSection runs the template, prefixes its stylesheet and scrubs
// app-internal links so the fragment embeds safely in a package page.
func (bs *brochureService) renderSection(tpl *types.Template, renderCtx map[string]interface{}) (string, error) {
  out, err := bs.engine.Render(tpl.HTML, renderCtx)
  if err != nil {
    return "", err
  }
  html := out
  if tpl.CSS != "" {
    html = "<style>" + tpl.CSS + "</style>" + html
  }
  return render.SanitizeEmbeddedHTML(html), nil
}

// courseSectionContexts shapes resolved courses for the package template.
func courseSectionContexts(courses []*resolvedCourse) []map[string]interface{} {
  out := make([]map[string]interface{}, 0, len(courses))
  for _, rc := range courses {
    entry := map[string]interface{}{
      "id":            rc.Course.ID.String(),
      "title":         rc.Course.Title,
      "description":   rc.Course.Description,
      "durationHours": rc.Course.DurationHours,
      "goal":          rc.Course.Goal,
      "pdfUrl":        rc.PdfURL,
    }
    if rc.WebHTML != "" {
      entry["webHtml"] = rc.WebHTML
    }
    out = append(out, entry)
  }
  return out
}

func instructorSectionContexts(instructors []*resolvedInstructor) []map[string]interface{} {
  out := make([]map[string]interface{}, 0, len(instructors))
  for _, ri := range instructors {
    name := ri.Instructor.Name
    if name == "" && ri.Profile != nil {
      name = ri.Profile.DisplayName
    }
    entry := map[string]interface{}{
      "id":          ri.Instructor.ID.String(),
      "name":        name,
      "title":       ri.Instructor.Title,
      "affiliation": ri.Instructor.Affiliation,
      "pdfUrl":      ri.PdfURL,
    }
    if ri.WebHTML != "" {
      entry["webHtml"] = ri.WebHTML
    }
    out = append(out, entry)
  }
  return out
}

func decodeJSON(raw datatypes.JSON) interface{} {
  if len(raw) == 0 {
    return nil
  }
  var value interface{}
  if err := json.Unmarshal(raw, &value); err != nil {
    return nil
  }
  return value
}
