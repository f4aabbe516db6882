package services

import (
  "context"
  "fmt"
  "sort"

  "github.com/google/uuid"

  "github.com/eduxhq/edux-backend/internal/types"
)

// resolvedCourse and resolvedInstructor are the normalized rows the renderer
// and composer consume, in final presentation order.
type resolvedCourse struct {
  Course  *types.Course
  PdfURL  string
  WebHTML string
}

type resolvedInstructor struct {
  Instructor *types.Instructor
  Profile    *types.InstructorProfile
  PdfURL     string
  WebHTML    string
}

type resolvedSources struct {
  Courses     []*resolvedCourse
  Instructors []*resolvedInstructor
}

// instructor rows pass through an intermediate form because profile-backed
// documents have to be re-keyed onto instructor rows, and profiles without
// an instructor row still appear in the output as profile-only rows.
type instructorRow struct {
  instructorID uuid.UUID
  profile      *types.InstructorProfile
  synthetic    *types.Instructor
  pdfURL       string
  order        int
}

const missingOrder = int(^uint(0) >> 1)

func positionMap(ids []uuid.UUID) map[uuid.UUID]int {
  pos := make(map[uuid.UUID]int, len(ids))
  for i, id := range ids {
    if _, seen := pos[id]; !seen {
      pos[id] = i
    }
  }
  return pos
}

func (bs *brochureService) resolveSources(ctx context.Context, userID uuid.UUID, input BrochureCreateInput) (*resolvedSources, error) {
  switch input.SourceMode {
  case SourceModeMyDocuments:
    return bs.resolveFromMyDocuments(ctx, userID, input)
  default:
    return bs.resolveFromCatalog(ctx, input)
  }
}

// resolveFromMyDocuments starts from the caller's own document rows and works
// backwards to the catalog entities. Profile-targeted documents are re-keyed
// to the instructor row sharing the profile's user; profiles with no
// instructor row become synthetic rows carrying the profile id.
func (bs *brochureService) resolveFromMyDocuments(ctx context.Context, userID uuid.UUID, input BrochureCreateInput) (*resolvedSources, error) {
  var docIDs []uuid.UUID
  if input.IncludeCourse {
    docIDs = append(docIDs, input.SourceCourseDocIDs...)
  }
  if input.IncludeInstructor {
    docIDs = append(docIDs, input.SourceInstructorDocIDs...)
  }

  docs, err := bs.docRepo.GetByIDsForUser(ctx, nil, userID, docIDs)
  if err != nil {
    return nil, fmt.Errorf("load source documents: %w", err)
  }
  docPos := positionMap(docIDs)
  sort.SliceStable(docs, func(i, j int) bool {
    return docPos[docs[i].ID] < docPos[docs[j].ID]
  })

  var courseIDs []uuid.UUID
  pdfByCourseID := map[uuid.UUID]string{}
  type profileRef struct {
    profileID uuid.UUID
    pdfURL    string
    order     int
  }
  var profileRefs []profileRef

  for _, doc := range docs {
    targetID, pErr := uuid.Parse(doc.TargetID)
    if pErr != nil {
      continue
    }
    // A document only carries a usable PDF when its own render job
    // finished. Older finished documents for the same target do not count.
    pdfURL := ""
    if doc.RenderJob != nil && doc.RenderJob.Status == types.RenderJobStatusDone {
      pdfURL = doc.PdfURL
    }
    switch doc.TargetType {
    case types.TargetTypeCourse:
      courseIDs = append(courseIDs, targetID)
      if pdfURL != "" {
        pdfByCourseID[targetID] = pdfURL
      }
    case types.TargetTypeInstructorProfile:
      order, ok := docPos[doc.ID]
      if !ok {
        order = missingOrder
      }
      profileRefs = append(profileRefs, profileRef{profileID: targetID, pdfURL: pdfURL, order: order})
    }
  }

  courses, err := bs.finalizeCourses(ctx, courseIDs, pdfByCourseID)
  if err != nil {
    return nil, err
  }

  var profileIDs []uuid.UUID
  for _, ref := range profileRefs {
    profileIDs = append(profileIDs, ref.profileID)
  }
  profiles, err := bs.profileRepo.GetByIDs(ctx, nil, profileIDs)
  if err != nil {
    return nil, fmt.Errorf("load instructor profiles: %w", err)
  }
  profileByID := make(map[uuid.UUID]*types.InstructorProfile, len(profiles))
  var profileUserIDs []uuid.UUID
  for _, profile := range profiles {
    profileByID[profile.ID] = profile
    profileUserIDs = append(profileUserIDs, profile.UserID)
  }
  instructorsByUser, err := bs.instRepo.GetByUserIDs(ctx, nil, profileUserIDs)
  if err != nil {
    return nil, fmt.Errorf("load instructors by user: %w", err)
  }
  instByUserID := make(map[uuid.UUID]*types.Instructor, len(instructorsByUser))
  for _, inst := range instructorsByUser {
    if inst.UserID != nil {
      instByUserID[*inst.UserID] = inst
    }
  }

  var rows []instructorRow
  for _, ref := range profileRefs {
    profile := profileByID[ref.profileID]
    if profile == nil {
      continue
    }
    if inst, ok := instByUserID[profile.UserID]; ok {
      rows = append(rows, instructorRow{
        instructorID: inst.ID,
        profile:      profile,
        pdfURL:       ref.pdfURL,
        order:        ref.order,
      })
      continue
    }
    rows = append(rows, instructorRow{
      profile:   profile,
      synthetic: syntheticInstructor(profile),
      pdfURL:    ref.pdfURL,
      order:     ref.order,
    })
  }

  instructors, err := bs.finalizeInstructors(ctx, rows)
  if err != nil {
    return nil, err
  }
  return &resolvedSources{Courses: courses, Instructors: instructors}, nil
}

// resolveFromCatalog starts from catalog entity ids; PDF attachment goes
// forward through each entity's latest document.
func (bs *brochureService) resolveFromCatalog(ctx context.Context, input BrochureCreateInput) (*resolvedSources, error) {
  var courseIDs, instructorIDs []uuid.UUID
  if input.IncludeCourse {
    courseIDs = input.SourceCourseIDs
  }
  if input.IncludeInstructor {
    instructorIDs = input.SourceInstructorIDs
  }

  pdfByCourseID := map[uuid.UUID]string{}
  if len(courseIDs) > 0 {
    latest, err := bs.docRepo.GetLatestByTargets(ctx, nil, types.TargetTypeCourse, uuidStrings(courseIDs))
    if err != nil {
      return nil, fmt.Errorf("load latest course documents: %w", err)
    }
    for targetID, doc := range latest {
      id, pErr := uuid.Parse(targetID)
      if pErr != nil {
        continue
      }
      if doc.RenderJob != nil && doc.RenderJob.Status == types.RenderJobStatusDone && doc.PdfURL != "" {
        pdfByCourseID[id] = doc.PdfURL
      }
    }
  }
  courses, err := bs.finalizeCourses(ctx, courseIDs, pdfByCourseID)
  if err != nil {
    return nil, err
  }

  var rows []instructorRow
  if len(instructorIDs) > 0 {
    instructors, iErr := bs.instRepo.GetByIDs(ctx, nil, instructorIDs)
    if iErr != nil {
      return nil, fmt.Errorf("load instructors: %w", iErr)
    }
    var userIDs []uuid.UUID
    for _, inst := range instructors {
      if inst.UserID != nil {
        userIDs = append(userIDs, *inst.UserID)
      }
    }
    profiles, pErr := bs.profileRepo.GetByUserIDs(ctx, nil, userIDs)
    if pErr != nil {
      return nil, fmt.Errorf("load profiles by user: %w", pErr)
    }
    profileByUserID := make(map[uuid.UUID]*types.InstructorProfile, len(profiles))
    var profileIDStrs []string
    for _, profile := range profiles {
      profileByUserID[profile.UserID] = profile
      profileIDStrs = append(profileIDStrs, profile.ID.String())
    }
    latest, lErr := bs.docRepo.GetLatestByTargets(ctx, nil, types.TargetTypeInstructorProfile, profileIDStrs)
    if lErr != nil {
      return nil, fmt.Errorf("load latest profile documents: %w", lErr)
    }

    pos := positionMap(instructorIDs)
    for _, inst := range instructors {
      order, ok := pos[inst.ID]
      if !ok {
        order = 0
      }
      row := instructorRow{instructorID: inst.ID, order: order}
      if inst.UserID != nil {
        if profile := profileByUserID[*inst.UserID]; profile != nil {
          row.profile = profile
          if doc := latest[profile.ID.String()]; doc != nil &&
            doc.RenderJob != nil && doc.RenderJob.Status == types.RenderJobStatusDone {
            row.pdfURL = doc.PdfURL
          }
        }
      }
      rows = append(rows, row)
    }
  }
  instructors, err := bs.finalizeInstructors(ctx, rows)
  if err != nil {
    return nil, err
  }
  return &resolvedSources{Courses: courses, Instructors: instructors}, nil
}

// finalizeCourses fetches the full course rows and restores the caller's id
// order; rows the position map does not know default to position 0.
func (bs *brochureService) finalizeCourses(ctx context.Context, courseIDs []uuid.UUID, pdfByID map[uuid.UUID]string) ([]*resolvedCourse, error) {
  if len(courseIDs) == 0 {
    return []*resolvedCourse{}, nil
  }
  rows, err := bs.courseRepo.GetByIDs(ctx, nil, courseIDs)
  if err != nil {
    return nil, fmt.Errorf("load courses: %w", err)
  }
  pos := positionMap(courseIDs)
  sort.SliceStable(rows, func(i, j int) bool {
    return pos[rows[i].ID] < pos[rows[j].ID]
  })
  out := make([]*resolvedCourse, 0, len(rows))
  for _, row := range rows {
    out = append(out, &resolvedCourse{Course: row, PdfURL: pdfByID[row.ID]})
  }
  return out, nil
}

// finalizeInstructors fetches full rows for instructor-backed entries, keeps
// synthetic entries as built, and sorts everything by the caller's order.
func (bs *brochureService) finalizeInstructors(ctx context.Context, rows []instructorRow) ([]*resolvedInstructor, error) {
  if len(rows) == 0 {
    return []*resolvedInstructor{}, nil
  }
  var ids []uuid.UUID
  for _, row := range rows {
    if row.synthetic == nil {
      ids = append(ids, row.instructorID)
    }
  }
  var full []*types.Instructor
  if len(ids) > 0 {
    var err error
    full, err = bs.instRepo.GetByIDs(ctx, nil, ids)
    if err != nil {
      return nil, fmt.Errorf("load instructors: %w", err)
    }
  }
  fullByID := make(map[uuid.UUID]*types.Instructor, len(full))
  for _, inst := range full {
    fullByID[inst.ID] = inst
  }

  sort.SliceStable(rows, func(i, j int) bool { return rows[i].order < rows[j].order })

  out := make([]*resolvedInstructor, 0, len(rows))
  for _, row := range rows {
    if row.synthetic != nil {
      out = append(out, &resolvedInstructor{Instructor: row.synthetic, Profile: row.profile, PdfURL: row.pdfURL})
      continue
    }
    inst := fullByID[row.instructorID]
    if inst == nil {
      continue
    }
    out = append(out, &resolvedInstructor{Instructor: inst, Profile: row.profile, PdfURL: row.pdfURL})
  }
  return out, nil
}

// syntheticInstructor presents a profile with no catalog row as an
// instructor entry. It keeps the profile's own id so downstream consumers
// can still tell the two apart.
func syntheticInstructor(profile *types.InstructorProfile) *types.Instructor {
  userID := profile.UserID
  inst := &types.Instructor{
    ID:          profile.ID,
    UserID:      &userID,
    User:        profile.User,
    Name:        profile.DisplayName,
    Title:       profile.Title,
    Bio:         profile.Bio,
    Affiliation: profile.Affiliation,
    Links:       profile.Links,
    CreatedAt:   profile.CreatedAt,
    UpdatedAt:   profile.UpdatedAt,
  }
  if profile.User != nil {
    inst.Email = profile.User.Email
    inst.Phone = profile.User.Phone
  }
  return inst
}
