package contact

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/kapu/meal-browser-go/internal/domain"
	"github.com/kapu/meal-browser-go/internal/service/database"
	"github.com/kapu/meal-browser-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past this many bytes and rejects longer passwords.
const maxBcryptPassword = 72

// Store persists contact form submissions.
type Store interface {
	Save(ctx context.Context, submission *domain.ContactSubmission) error
}

type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepository(postgres *database.PostgresService, logger *zap.Logger) *Repository {
	return &Repository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// Save inserts the submission and fills in its ID and CreatedAt.
func (r *Repository) Save(ctx context.Context, submission *domain.ContactSubmission) error {
	query := `
		INSERT INTO contact_messages (name, email, phone, age, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		submission.Name,
		submission.Email,
		submission.Phone,
		submission.Age,
		submission.PasswordHash,
	).Scan(&submission.ID, &submission.CreatedAt)
	if err != nil {
		return errors.NewServiceError("failed to save contact message", "contact", "save", err)
	}

	r.logger.Info("Contact message stored",
		zap.Int64("id", submission.ID),
		zap.String("email", submission.Email),
	)
	return nil
}

// NewSubmission builds a submission from already validated form values. The
// password is stored only as a bcrypt hash.
func NewSubmission(values map[domain.FormField]string) (*domain.ContactSubmission, error) {
	ageText := strings.TrimSpace(values[domain.FieldAge])
	age, err := strconv.Atoi(ageText)
	if err != nil {
		return nil, errors.NewValidationError("age must be a number", domain.FieldAge.String(), ageText)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(values[domain.FieldPassword]), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &domain.ContactSubmission{
		Name:         values[domain.FieldName],
		Email:        values[domain.FieldEmail],
		Phone:        values[domain.FieldPhone],
		Age:          age,
		PasswordHash: string(hash),
	}, nil
}

// passwordKey is the bcrypt input for password. Passwords longer than bcrypt
// accepts are replaced by their base64 SHA-256 digest so every byte counts.
func passwordKey(password string) []byte {
	if len(password) <= maxBcryptPassword {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
