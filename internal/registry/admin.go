package registry

import (
	"fmt"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/pubsub"
)

// EnrollmentDetail joins an enrollment record with its user and course
// for the admin listing views.
type EnrollmentDetail struct {
	User   domain.User
	Course domain.Course
}

// AddCourse adds a catalog entry. Admin only. Both the code and the name
// must be unique across the catalog.
func (s *Service) AddCourse(sess Session, code, name string, creditHours, totalSeats int) error {
	if !sess.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	if err := domain.ValidateNewCourse(code, name, creditHours, totalSeats); err != nil {
		return err
	}
	if s.courses.Find(code) != nil {
		return fmt.Errorf("course code %q: %w", code, domain.ErrAlreadyExists)
	}
	for _, c := range s.courses.InOrder() {
		if c.Name == name {
			return fmt.Errorf("course name %q: %w", name, domain.ErrAlreadyExists)
		}
	}

	s.courses.Insert(domain.NewCourse(code, name, creditHours, totalSeats))
	s.persist()
	s.publish(pubsub.CreatedEvent, "course", code)
	log.Info(log.CatRegistry, "course added", "code", code, "seats", totalSeats)
	return nil
}

// DeleteCourse removes a catalog entry and cascades removal of every
// enrollment referencing it. No seat bookkeeping is needed since the
// course itself is gone. Admin only.
func (s *Service) DeleteCourse(sess Session, code string) error {
	if !sess.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	if s.courses.Find(code) == nil {
		return fmt.Errorf("course %q: %w", code, domain.ErrNotFound)
	}

	removed := s.enrollments.RemoveByCourse(code)
	s.courses.Delete(code)

	s.persist()
	s.publish(pubsub.DeletedEvent, "course", code)
	log.Info(log.CatRegistry, "course deleted", "code", code, "enrollments_removed", removed)
	return nil
}

// UpdateCourse adjusts a course in place. Empty or zero values keep the
// current field. Changing TotalSeats shifts AvailableSeats by the same
// delta, which can legally drive AvailableSeats outside [0, TotalSeats]
// when capacity shrinks below current enrollment; that input-trusting
// behavior is deliberate and not corrected here. Admin only.
func (s *Service) UpdateCourse(sess Session, code, newName string, newCreditHours, newTotalSeats int) error {
	if !sess.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	course := s.courses.Find(code)
	if course == nil {
		return fmt.Errorf("course %q: %w", code, domain.ErrNotFound)
	}

	if newName != "" {
		course.Name = newName
	}
	if newCreditHours > 0 {
		course.CreditHours = newCreditHours
	}
	if newTotalSeats > 0 {
		delta := newTotalSeats - course.TotalSeats
		course.TotalSeats = newTotalSeats
		course.AvailableSeats += delta
	}

	s.persist()
	s.publish(pubsub.UpdatedEvent, "course", code)
	log.Info(log.CatRegistry, "course updated", "code", code)
	return nil
}

// ListUsers returns every account in the directory. Admin only.
func (s *Service) ListUsers(sess Session) ([]domain.User, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	return s.users.All(), nil
}

// DeleteUser removes an account, cascading removal of its enrollments
// and returning each affected course's seat. Admins cannot delete their
// own account.
func (s *Service) DeleteUser(sess Session, username string) error {
	if !sess.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	if username == sess.Username {
		return domain.NewValidationError("username", "cannot delete your own account")
	}
	if s.users.FindByUsername(username) == nil {
		return fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}

	removed := s.enrollments.RemoveByUser(username)
	for _, e := range removed {
		if course := s.courses.Find(e.CourseCode); course != nil {
			course.ReturnSeat()
		}
	}
	s.users.Remove(username)

	s.persist()
	s.publish(pubsub.DeletedEvent, "user", username)
	log.Info(log.CatRegistry, "user deleted", "username", username, "enrollments_removed", len(removed))
	return nil
}

// CourseEnrollments lists the users enrolled in the course, in
// enrollment order. Records for users no longer in the directory are
// skipped. Admin only.
func (s *Service) CourseEnrollments(sess Session, code string) ([]domain.User, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}
	if s.courses.Find(code) == nil {
		return nil, fmt.Errorf("course %q: %w", code, domain.ErrNotFound)
	}

	var users []domain.User
	for _, e := range s.enrollments.ByCourse(code) {
		if user := s.users.FindByUsername(e.Username); user != nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

// AllEnrollments lists every enrollment joined with its user and course.
// Records with a dangling side are skipped. Admin only.
func (s *Service) AllEnrollments(sess Session) ([]EnrollmentDetail, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}

	var details []EnrollmentDetail
	for _, e := range s.enrollments.All() {
		user := s.users.FindByUsername(e.Username)
		course := s.courses.Find(e.CourseCode)
		if user != nil && course != nil {
			details = append(details, EnrollmentDetail{User: *user, Course: *course})
		}
	}
	return details, nil
}

// AddPrerequisite records prereq as a direct prerequisite of course.
// Both courses must exist. A course cannot require itself, an existing
// edge cannot be duplicated, and the direct reciprocal edge is rejected
// as circular. Longer cycles are not detected; see store.PrereqGraph.
// Admin only.
func (s *Service) AddPrerequisite(sess Session, course, prereq string) error {
	if !sess.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	if course == "" {
		return domain.NewValidationError("course code", "cannot be empty")
	}
	if prereq == "" {
		return domain.NewValidationError("prerequisite code", "cannot be empty")
	}
	if s.courses.Find(course) == nil {
		return fmt.Errorf("course %q: %w", course, domain.ErrNotFound)
	}
	if s.courses.Find(prereq) == nil {
		return fmt.Errorf("prerequisite course %q: %w", prereq, domain.ErrNotFound)
	}
	if course == prereq {
		return domain.NewValidationError("prerequisite code", "a course cannot be its own prerequisite")
	}
	if s.prereqs.HasEdge(course, prereq) {
		return fmt.Errorf("prerequisite %s -> %s: %w", course, prereq, domain.ErrAlreadyExists)
	}
	if s.prereqs.HasEdge(prereq, course) {
		return fmt.Errorf("%s already requires %s: %w", prereq, course, domain.ErrCircular)
	}

	s.prereqs.AddEdge(course, prereq)
	s.persist()
	s.publish(pubsub.CreatedEvent, "prerequisite", course+"->"+prereq)
	log.Info(log.CatRegistry, "prerequisite added", "course", course, "prereq", prereq)
	return nil
}
