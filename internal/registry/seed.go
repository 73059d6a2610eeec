package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/log"
)

// SeedData describes the initial state written on first run. The YAML
// field names match the seed file format accepted by `registrar seed`.
type SeedData struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		FullName string `yaml:"full_name"`
		RollNo   string `yaml:"roll_no"`
		Admin    bool   `yaml:"admin"`
	} `yaml:"users"`
	Courses []struct {
		Code        string `yaml:"code"`
		Name        string `yaml:"name"`
		CreditHours int    `yaml:"credit_hours"`
		TotalSeats  int    `yaml:"total_seats"`
	} `yaml:"courses"`
	Prerequisites []struct {
		Course   string `yaml:"course"`
		Requires string `yaml:"requires"`
	} `yaml:"prerequisites"`
	Enrollments []struct {
		Username string `yaml:"username"`
		Course   string `yaml:"course"`
	} `yaml:"enrollments"`
}

// LoadSeedFile parses a YAML seed file.
func LoadSeedFile(path string) (*SeedData, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied seed file
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &seed, nil
}

// DefaultSeedYAML returns the built-in sample data as a YAML document,
// suitable as a starting point for a custom seed file.
func DefaultSeedYAML() string {
	return defaultSeedYAML[1:]
}

// DefaultSeed returns the built-in sample data: a default administrator,
// five students, six courses with a CS prerequisite chain, and a handful
// of enrollments.
func DefaultSeed() *SeedData {
	var seed SeedData
	if err := yaml.Unmarshal([]byte(defaultSeedYAML), &seed); err != nil {
		// The built-in document is a constant; failing to parse it is a
		// programming error.
		panic(fmt.Sprintf("default seed: %v", err))
	}
	return &seed
}

const defaultSeedYAML = `
users:
  - {username: admin, password: admin123, full_name: System Administrator, roll_no: ADMIN001, admin: true}
  - {username: Ali, password: "123", full_name: Ali Ahmed, roll_no: 02-134242-001}
  - {username: Sara, password: "123", full_name: Sara Khan, roll_no: 02-134242-002}
  - {username: Anas, password: "123", full_name: Anas Khan, roll_no: 02-134242-068}
  - {username: Adil, password: "123", full_name: Adil Shabbir, roll_no: 02-134242-033}
  - {username: Amjad, password: "123", full_name: Amjad Ellahi, roll_no: 02-134242-092}
courses:
  - {code: CS101, name: Introduction to Programming, credit_hours: 3, total_seats: 30}
  - {code: CS201, name: Data Structures and Algorithms, credit_hours: 4, total_seats: 25}
  - {code: CS301, name: Database Systems, credit_hours: 3, total_seats: 20}
  - {code: CS401, name: Software Engineering, credit_hours: 4, total_seats: 15}
  - {code: MATH101, name: Calculus I, credit_hours: 3, total_seats: 35}
  - {code: ENG101, name: English Composition, credit_hours: 2, total_seats: 40}
prerequisites:
  - {course: CS201, requires: CS101}
  - {course: CS301, requires: CS201}
  - {course: CS401, requires: CS301}
enrollments:
  - {username: Ali, course: CS101}
  - {username: Ali, course: MATH101}
  - {username: Sara, course: CS101}
  - {username: Sara, course: ENG101}
  - {username: Anas, course: CS201}
  - {username: Adil, course: CS301}
  - {username: Amjad, course: CS401}
`

// Seed populates the structures from the seed data and persists. Seeding
// only happens on first run: a non-empty user directory makes it a no-op.
func (s *Service) Seed(seed *SeedData) error {
	if s.users.Len() > 0 {
		log.Debug(log.CatRegistry, "seed skipped, directory not empty", "users", s.users.Len())
		return nil
	}

	for _, u := range seed.Users {
		s.users.Insert(domain.User{
			Username: u.Username,
			Password: u.Password,
			FullName: u.FullName,
			RollNo:   u.RollNo,
			IsAdmin:  u.Admin,
		})
	}
	for _, c := range seed.Courses {
		s.courses.Insert(domain.NewCourse(c.Code, c.Name, c.CreditHours, c.TotalSeats))
	}
	for _, p := range seed.Prerequisites {
		s.prereqs.AddEdge(p.Course, p.Requires)
	}
	for _, e := range seed.Enrollments {
		if s.enrollments.Contains(e.Username, e.Course) {
			continue
		}
		s.enrollments.Append(domain.Enrollment{Username: e.Username, CourseCode: e.Course})
		if course := s.courses.Find(e.Course); course != nil {
			course.TakeSeat()
		}
	}

	s.persist()
	log.Info(log.CatRegistry, "seeded",
		"users", s.users.Len(), "courses", s.courses.Len(), "enrollments", s.enrollments.Len())
	return nil
}
