package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"patient-registry-service/internal/registry/models"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const createPatientsTable = `
	CREATE TABLE IF NOT EXISTS patients (
		id INTEGER PRIMARY KEY,
		firstName TEXT NOT NULL,
		lastName TEXT NOT NULL,
		age INTEGER NOT NULL,
		gender TEXT CHECK(gender IN ('Male', 'Female', 'Other')) NOT NULL,
		contactNumber TEXT NOT NULL,
		email TEXT,
		address TEXT,
		bloodGroup TEXT,
		medicalConditions TEXT,
		createdAt TEXT NOT NULL
	)
`

// Store is the process-wide handle to the embedded patients database. The
// connection and schema are set up lazily by the first caller; initialization
// is guarded so concurrent first callers converge on one initialized instance.
type Store struct {
	path     string
	db       *sql.DB
	initOnce sync.Once
	initErr  error
}

// Open constructs a store handle for the given database file path. No disk
// access happens until the first operation.
func Open(path string) *Store {
	return &Store{path: path}
}

func (s *Store) ensureInitialized() error {
	s.initOnce.Do(func() {
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				s.initErr = fmt.Errorf("create db directory: %w", err)
				return
			}
		}
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			s.initErr = fmt.Errorf("open sqlite: %w", err)
			return
		}
		if _, err := db.Exec(createPatientsTable); err != nil {
			db.Close()
			s.initErr = fmt.Errorf("create patients table: %w", err)
			return
		}
		s.db = db
	})
	if s.initErr != nil {
		log.Printf("sqlitedb: initialization failed: %v", s.initErr)
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, s.initErr)
	}
	return nil
}

// Insert appends a patient row, assigns its id and returns the stored record.
// Enumerated and required fields are checked here regardless of what the form
// boundary already validated; the table CHECK constraint backs this up.
func (s *Store) Insert(ctx context.Context, p models.Patient) (models.Patient, error) {
	if err := s.ensureInitialized(); err != nil {
		return models.Patient{}, err
	}
	if p.FirstName == "" || p.LastName == "" || p.Age <= 0 || p.ContactNumber == "" || p.CreatedAt == "" {
		return models.Patient{}, fmt.Errorf("%w: missing required field", models.ErrConstraint)
	}
	if !models.ValidGender(p.Gender) {
		return models.Patient{}, fmt.Errorf("%w: gender %q", models.ErrConstraint, p.Gender)
	}
	if !models.ValidBloodGroup(p.BloodGroup) {
		return models.Patient{}, fmt.Errorf("%w: bloodGroup %q", models.ErrConstraint, p.BloodGroup)
	}

	encoded, err := models.EncodeMedicalConditions(p.MedicalConditions)
	if err != nil {
		return models.Patient{}, fmt.Errorf("encode medicalConditions: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO patients (
			firstName, lastName, age, gender, contactNumber, email, address,
			bloodGroup, medicalConditions, createdAt
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.FirstName, p.LastName, p.Age, p.Gender, p.ContactNumber,
		nullable(p.Email), nullable(p.Address), nullable(p.BloodGroup),
		nullable(encoded), p.CreatedAt)
	if err != nil {
		log.Printf("sqlitedb: insert failed: %v", err)
		if strings.Contains(err.Error(), "constraint") {
			return models.Patient{}, fmt.Errorf("%w: %v", models.ErrConstraint, err)
		}
		return models.Patient{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Patient{}, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	p.ID = id
	return p, nil
}

// ListAll returns every patient ordered by createdAt descending. An empty
// table yields an empty slice, not an error.
func (s *Store) ListAll(ctx context.Context) ([]models.Patient, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, firstName, lastName, age, gender, contactNumber,
		       email, address, bloodGroup, medicalConditions, createdAt
		FROM patients
		ORDER BY createdAt DESC
	`)
	if err != nil {
		log.Printf("sqlitedb: list failed: %v", err)
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	patients := []models.Patient{}
	for rows.Next() {
		var (
			p          models.Patient
			email      sql.NullString
			address    sql.NullString
			bloodGroup sql.NullString
			conditions sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Age, &p.Gender,
			&p.ContactNumber, &email, &address, &bloodGroup, &conditions, &p.CreatedAt); err != nil {
			log.Printf("sqlitedb: scan failed: %v", err)
			return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		p.Email = email.String
		p.Address = address.String
		p.BloodGroup = bloodGroup.String
		p.MedicalConditions = models.ParseMedicalConditions(conditions.String)
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return patients, nil
}

// Close releases the underlying connection if it was ever opened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
