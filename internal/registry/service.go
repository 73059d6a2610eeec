package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/infrastructure/flatfile"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/pubsub"
	"github.com/zjrosen/registrar/internal/store"
)

// SortKey selects the ordering of a course listing.
type SortKey string

const (
	SortByCode SortKey = "code"
	SortByName SortKey = "name"
)

// Change describes a state mutation, published on the service broker
// after each successful mutating operation.
type Change struct {
	Entity string // "user", "course", "enrollment", "prerequisite", "payment"
	Key    string
}

// Service orchestrates the in-memory structures. One session is active
// at a time and every operation runs to completion before the next
// begins, so there is no locking discipline.
type Service struct {
	users       *store.UserDirectory
	courses     *store.CourseTree
	enrollments *store.EnrollmentLedger
	undo        *store.UndoStack
	payments    *store.PaymentTable
	prereqs     *store.PrereqGraph
	files       *flatfile.Store
	broker      *pubsub.Broker[Change]
}

// New creates a service backed by the given flat-file store and loads
// persisted state. Prerequisites and payments are not persisted: the
// graph is rebuilt by seeding or admin action, payments live only for
// the process session.
func New(files *flatfile.Store) (*Service, error) {
	s := &Service{
		users:       store.NewUserDirectory(),
		courses:     store.NewCourseTree(),
		enrollments: store.NewEnrollmentLedger(),
		undo:        store.NewUndoStack(),
		payments:    store.NewPaymentTable(),
		prereqs:     store.NewPrereqGraph(),
		files:       files,
		broker:      pubsub.NewBroker[Change](),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) load() error {
	users, err := s.files.LoadUsers()
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	for _, u := range users {
		s.users.Insert(u)
	}

	courses, err := s.files.LoadCourses()
	if err != nil {
		return fmt.Errorf("loading courses: %w", err)
	}
	for _, c := range courses {
		s.courses.Insert(c)
	}

	enrollments, err := s.files.LoadEnrollments()
	if err != nil {
		return fmt.Errorf("loading enrollments: %w", err)
	}
	for _, e := range enrollments {
		s.enrollments.Append(e)
	}

	log.Info(log.CatRegistry, "state loaded",
		"users", s.users.Len(), "courses", s.courses.Len(), "enrollments", s.enrollments.Len())
	return nil
}

// Reload discards the persisted stores and re-reads them from disk,
// for when another process (or a hand edit) changed the data files.
// The prerequisite graph, payments, and undo log are process state and
// survive untouched; undo entries whose enrollment vanished become
// no-ops when popped.
func (s *Service) Reload() error {
	s.users = store.NewUserDirectory()
	s.courses = store.NewCourseTree()
	s.enrollments = store.NewEnrollmentLedger()
	if err := s.load(); err != nil {
		return err
	}
	s.broker.Publish(pubsub.ReloadEvent, Change{Entity: "state", Key: "reload"})
	return nil
}

// Subscribe returns a channel of change events, closed when ctx ends.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return s.broker.Subscribe(ctx)
}

// Close shuts down the change broker.
func (s *Service) Close() {
	s.broker.Close()
}

// persist rewrites the three persisted resources. Persistence is best
// effort: a failed rewrite is logged but does not fail the operation
// that already mutated in-memory state.
func (s *Service) persist() {
	err := s.files.SaveAll(s.users.All(), s.courses.InOrder(), s.enrollments.All())
	if err != nil {
		log.ErrorErr(log.CatPersist, "state save failed", err)
	}
}

func (s *Service) publish(eventType pubsub.EventType, entity, key string) {
	s.broker.Publish(eventType, Change{Entity: entity, Key: key})
}

// Login authenticates a user by exact password equality and returns a
// fresh session. Failure reports ErrPermissionDenied without revealing
// whether the username exists.
func (s *Service) Login(username, password string) (Session, error) {
	user := s.users.FindByUsername(username)
	if user == nil || !user.CheckPassword(password) {
		log.Warn(log.CatRegistry, "login rejected", "username", username)
		return Anonymous, domain.ErrPermissionDenied
	}
	sess := newSession(*user)
	log.Info(log.CatRegistry, "login", "username", username, "role", sess.Role, "session", sess.GUID)
	return sess, nil
}

// Logout ends the session. The undo log is not cleared here: entries
// keep their session GUID and are dropped lazily when a later session
// pops them.
func (s *Service) Logout(sess Session) Session {
	if sess.Authenticated() {
		log.Info(log.CatRegistry, "logout", "username", sess.Username, "session", sess.GUID)
	}
	return Anonymous
}

// Register creates a student account. Usernames and roll numbers are
// each unique across the directory.
func (s *Service) Register(username, password, fullName, rollNo string) error {
	if err := domain.ValidateNewUser(username, password, fullName, rollNo); err != nil {
		return err
	}
	if s.users.FindByUsername(username) != nil {
		return fmt.Errorf("username %q: %w", username, domain.ErrAlreadyExists)
	}
	if s.users.FindByRoll(rollNo) != nil {
		return fmt.Errorf("roll number %q: %w", rollNo, domain.ErrAlreadyExists)
	}

	s.users.Insert(domain.User{
		Username: username,
		Password: password,
		FullName: fullName,
		RollNo:   rollNo,
		IsAdmin:  false,
	})
	s.persist()
	s.publish(pubsub.CreatedEvent, "user", username)
	log.Info(log.CatRegistry, "user registered", "username", username)
	return nil
}

// ListCourses returns the catalog ordered by the given key. SortByCode
// is the tree's natural in-order traversal; SortByName re-sorts a copy.
func (s *Service) ListCourses(key SortKey) []domain.Course {
	courses := s.courses.InOrder()
	if key == SortByName {
		sort.Slice(courses, func(i, j int) bool {
			return courses[i].Name < courses[j].Name
		})
	}
	return courses
}

// FindCourse returns the course with the given code.
func (s *Service) FindCourse(code string) (domain.Course, error) {
	course := s.courses.Find(code)
	if course == nil {
		return domain.Course{}, fmt.Errorf("course %q: %w", code, domain.ErrNotFound)
	}
	return *course, nil
}

// Prerequisites returns the direct prerequisite codes of a course.
// Prerequisites are never resolved transitively.
func (s *Service) Prerequisites(code string) []string {
	return s.prereqs.PrereqsOf(code)
}

// Enroll enrolls the session's student in the course, enforcing the full
// protocol: role check, existence, duplicate check, direct prerequisite
// check, then seat accounting. The enrollment is appended to the ledger
// and pushed onto the undo log in the same step, then state is persisted.
func (s *Service) Enroll(sess Session, code string) error {
	if !sess.Authenticated() || sess.IsAdmin() {
		return domain.ErrPermissionDenied
	}

	course := s.courses.Find(code)
	if course == nil {
		return fmt.Errorf("course %q: %w", code, domain.ErrNotFound)
	}

	if s.enrollments.Contains(sess.Username, code) {
		return domain.ErrAlreadyEnrolled
	}

	var missing []string
	for _, prereq := range s.prereqs.PrereqsOf(code) {
		if !s.enrollments.Contains(sess.Username, prereq) {
			missing = append(missing, prereq)
		}
	}
	if len(missing) > 0 {
		return &domain.PrereqError{Course: code, Missing: missing}
	}

	if !course.TakeSeat() {
		return domain.ErrNoSeats
	}

	enrollment := domain.Enrollment{Username: sess.Username, CourseCode: code}
	s.enrollments.Append(enrollment)
	s.undo.Push(store.UndoEntry{
		SessionGUID: sess.GUID,
		Username:    sess.Username,
		CourseCode:  code,
	})

	s.persist()
	s.publish(pubsub.CreatedEvent, "enrollment", sess.Username+":"+code)
	log.Info(log.CatRegistry, "enrolled",
		"username", sess.Username, "course", code, "seats_left", course.AvailableSeats)
	return nil
}

// MyEnrollments returns the courses the session's student is enrolled
// in, in enrollment order. Records referencing a course that no longer
// exists are skipped.
func (s *Service) MyEnrollments(sess Session) ([]domain.Course, error) {
	if !sess.Authenticated() || sess.IsAdmin() {
		return nil, domain.ErrPermissionDenied
	}

	var courses []domain.Course
	for _, e := range s.enrollments.ByUser(sess.Username) {
		if course := s.courses.Find(e.CourseCode); course != nil {
			courses = append(courses, *course)
		}
	}
	return courses, nil
}

// Undo reverses the session's most recent enrollment: the record is
// removed from the ledger and the course's seat is returned. An entry
// recorded under a different session GUID belongs to a previous login;
// it is dropped from the stack and reported as nothing to undo.
func (s *Service) Undo(sess Session) (domain.Enrollment, error) {
	if !sess.Authenticated() || sess.IsAdmin() {
		return domain.Enrollment{}, domain.ErrPermissionDenied
	}

	entry, ok := s.undo.Pop()
	if !ok {
		return domain.Enrollment{}, domain.ErrNothingToUndo
	}
	if entry.SessionGUID != sess.GUID {
		log.Debug(log.CatRegistry, "dropped stale undo entry",
			"entry_session", entry.SessionGUID, "current_session", sess.GUID)
		return domain.Enrollment{}, domain.ErrNothingToUndo
	}

	if !s.enrollments.Remove(entry.Username, entry.CourseCode) {
		// Enrollment already gone (course deleted by an admin); nothing
		// to reverse.
		return domain.Enrollment{}, domain.ErrNothingToUndo
	}
	if course := s.courses.Find(entry.CourseCode); course != nil {
		course.ReturnSeat()
	}

	s.persist()
	undone := domain.Enrollment{Username: entry.Username, CourseCode: entry.CourseCode}
	s.publish(pubsub.DeletedEvent, "enrollment", entry.Username+":"+entry.CourseCode)
	log.Info(log.CatRegistry, "enrollment undone",
		"username", entry.Username, "course", entry.CourseCode)
	return undone, nil
}
