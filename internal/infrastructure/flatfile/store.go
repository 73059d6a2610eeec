// Package flatfile persists the user directory, course catalog and
// enrollment ledger as line-oriented text files, one record per line with
// comma-delimited fields. Embedded commas are not escaped; that is an
// accepted limitation of the format. Payments are session-only and are
// never written here.
package flatfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/log"
)

// File names inside the data directory.
const (
	UsersFile       = "users.txt"
	CoursesFile     = "courses.txt"
	EnrollmentsFile = "enrollments.txt"
)

// Store reads and writes the three persisted resources under a single
// data directory. Every Save rewrites the target file fully; there is no
// append log and no atomic rename, so a crash mid-write can corrupt a
// resource. Recovery from that is out of scope.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// UsersPath returns the path of the users resource.
func (s *Store) UsersPath() string {
	return filepath.Join(s.dir, UsersFile)
}

// SaveAll rewrites all three resources.
func (s *Store) SaveAll(users []domain.User, courses []domain.Course, enrollments []domain.Enrollment) error {
	if err := s.SaveUsers(users); err != nil {
		return err
	}
	if err := s.SaveCourses(courses); err != nil {
		return err
	}
	return s.SaveEnrollments(enrollments)
}

// SaveUsers rewrites the users resource.
// Record layout: username,password,fullName,rollNo,isAdminFlag.
func (s *Store) SaveUsers(users []domain.User) error {
	return s.writeLines(UsersFile, len(users), func(w *bufio.Writer) error {
		for _, u := range users {
			flag := "0"
			if u.IsAdmin {
				flag = "1"
			}
			if _, err := fmt.Fprintf(w, "%s,%s,%s,%s,%s\n",
				u.Username, u.Password, u.FullName, u.RollNo, flag); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveCourses rewrites the courses resource.
// Record layout: code,name,creditHours,totalSeats,availableSeats.
func (s *Store) SaveCourses(courses []domain.Course) error {
	return s.writeLines(CoursesFile, len(courses), func(w *bufio.Writer) error {
		for _, c := range courses {
			if _, err := fmt.Fprintf(w, "%s,%s,%d,%d,%d\n",
				c.Code, c.Name, c.CreditHours, c.TotalSeats, c.AvailableSeats); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveEnrollments rewrites the enrollments resource.
// Record layout: username,courseCode.
func (s *Store) SaveEnrollments(enrollments []domain.Enrollment) error {
	return s.writeLines(EnrollmentsFile, len(enrollments), func(w *bufio.Writer) error {
		for _, e := range enrollments {
			if _, err := fmt.Fprintf(w, "%s,%s\n", e.Username, e.CourseCode); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) writeLines(name string, count int, write func(*bufio.Writer) error) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path) //nolint:gosec // G304: path is the configured data directory
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", name, err)
	}
	log.Debug(log.CatPersist, "resource saved", "file", name, "records", count)
	return nil
}

// LoadUsers parses the users resource. Malformed lines are skipped
// individually; a missing file yields an empty slice.
func (s *Store) LoadUsers() ([]domain.User, error) {
	var users []domain.User
	err := s.readLines(UsersFile, func(fields []string) bool {
		fields = pad(fields, 5)
		username, password, fullName, rollNo := fields[0], fields[1], fields[2], fields[3]
		if username == "" || password == "" || fullName == "" || rollNo == "" {
			return false
		}
		users = append(users, domain.User{
			Username: username,
			Password: password,
			FullName: fullName,
			RollNo:   rollNo,
			IsAdmin:  fields[4] == "1",
		})
		return true
	})
	return users, err
}

// LoadCourses parses the courses resource. Lines with empty fields,
// non-numeric numbers, or non-positive credit hours or seats are skipped;
// AvailableSeats above TotalSeats is clamped down.
func (s *Store) LoadCourses() ([]domain.Course, error) {
	var courses []domain.Course
	err := s.readLines(CoursesFile, func(fields []string) bool {
		fields = pad(fields, 5)
		code, name := fields[0], fields[1]
		if code == "" || name == "" || fields[2] == "" || fields[3] == "" || fields[4] == "" {
			return false
		}
		creditHours, err1 := strconv.Atoi(fields[2])
		totalSeats, err2 := strconv.Atoi(fields[3])
		availableSeats, err3 := strconv.Atoi(fields[4])
		if err1 != nil || err2 != nil || err3 != nil {
			return false
		}
		if creditHours <= 0 || totalSeats <= 0 || availableSeats < 0 {
			return false
		}
		if availableSeats > totalSeats {
			availableSeats = totalSeats
		}
		courses = append(courses, domain.Course{
			Code:           code,
			Name:           name,
			CreditHours:    creditHours,
			TotalSeats:     totalSeats,
			AvailableSeats: availableSeats,
		})
		return true
	})
	return courses, err
}

// LoadEnrollments parses the enrollments resource.
func (s *Store) LoadEnrollments() ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := s.readLines(EnrollmentsFile, func(fields []string) bool {
		fields = pad(fields, 2)
		if fields[0] == "" || fields[1] == "" {
			return false
		}
		enrollments = append(enrollments, domain.Enrollment{
			Username:   fields[0],
			CourseCode: fields[1],
		})
		return true
	})
	return enrollments, err
}

// readLines parses a resource line by line, calling handle per
// non-empty line. handle reports whether the record was accepted.
// A missing file is not an error: the resource simply has no records yet.
func (s *Store) readLines(name string, handle func(fields []string) bool) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path) //nolint:gosec // G304: path is the configured data directory
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	skipped := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !handle(strings.Split(line, ",")) {
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if skipped > 0 {
		log.Debug(log.CatPersist, "skipped malformed lines", "file", name, "count", skipped)
	}
	return nil
}

// pad extends fields with empty strings up to n entries, mirroring how
// missing trailing fields read as empty. Extra fields are ignored.
func pad(fields []string, n int) []string {
	for len(fields) < n {
		fields = append(fields, "")
	}
	return fields
}
