package db

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kidandcat/projectview/internal/model"
)

// Users

func (s *Store) CreateUser(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		username, email, string(hash), now(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &model.User{ID: id, Username: username, Email: email}, nil
}

// Authenticate returns the user whose username and password match, or
// ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	var u model.User
	var hash string
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash FROM users WHERE username = ?", username,
	).Scan(&u.ID, &u.Username, &u.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (s *Store) countUsers(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// Auth tokens

func generateToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// TokenForUser returns the user's API token, creating it on first use. A
// user has at most one token.
func (s *Store) TokenForUser(ctx context.Context, userID int64) (string, error) {
	var token string
	err := s.DB.QueryRowContext(ctx, "SELECT token FROM auth_tokens WHERE user_id = ?", userID).Scan(&token)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("query token: %w", err)
	}

	token, err = generateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO auth_tokens (token, user_id, created_at) VALUES (?, ?, ?) ON CONFLICT(user_id) DO NOTHING",
		token, userID, now(),
	)
	if err != nil {
		return "", fmt.Errorf("insert token: %w", err)
	}
	// A concurrent login may have won the insert; read back the stored token.
	if err := s.DB.QueryRowContext(ctx, "SELECT token FROM auth_tokens WHERE user_id = ?", userID).Scan(&token); err != nil {
		return "", fmt.Errorf("query token: %w", err)
	}
	return token, nil
}

func (s *Store) UserByToken(ctx context.Context, token string) (*model.User, error) {
	var u model.User
	err := s.DB.QueryRowContext(ctx,
		`SELECT u.id, u.username, u.email FROM auth_tokens t
		JOIN users u ON u.id = t.user_id WHERE t.token = ?`, token,
	).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query token user: %w", err)
	}
	return &u, nil
}

// Projects

func (s *Store) CreateProject(ctx context.Context, ownerID int64, name, description string) (int64, error) {
	ts := now()
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO projects (name, description, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		name, description, ownerID, ts, ts,
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) CreateTask(ctx context.Context, projectID, userID int64, title, description string, completed bool) (int64, error) {
	ts := now()
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO tasks (project_id, user_id, title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		projectID, userID, title, description, completed, ts, ts,
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) AddParticipant(ctx context.Context, projectID, userID int64) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO participants (project_id, user_id, joined_at) VALUES (?, ?, ?)",
		projectID, userID, now(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert participant: %w", err)
	}
	return res.LastInsertId()
}

// GetProject loads a project with its owner, tasks and participants. Tasks
// and participants are ordered by id and are never nil.
func (s *Store) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	var createdAt, updatedAt time.Time
	err := s.DB.QueryRowContext(ctx,
		`SELECT p.id, p.name, p.description, p.created_at, p.updated_at, u.id, u.username, u.email
		FROM projects p JOIN users u ON u.id = p.user_id WHERE p.id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &createdAt, &updatedAt, &p.User.ID, &p.User.Username, &p.User.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query project: %w", err)
	}
	p.CreatedAt = formatTime(createdAt)
	p.UpdatedAt = formatTime(updatedAt)

	if p.Tasks, err = s.projectTasks(ctx, id); err != nil {
		return nil, err
	}
	if p.Participants, err = s.projectParticipants(ctx, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) projectTasks(ctx context.Context, projectID int64) ([]model.Task, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT t.id, t.title, t.description, t.completed, t.created_at, t.updated_at, u.id, u.username, u.email
		FROM tasks t JOIN users u ON u.id = t.user_id WHERE t.project_id = ? ORDER BY t.id`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &createdAt, &updatedAt,
			&t.User.ID, &t.User.Username, &t.User.Email); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.CreatedAt = formatTime(createdAt)
		t.UpdatedAt = formatTime(updatedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) projectParticipants(ctx context.Context, projectID int64) ([]model.Participant, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT pt.id, pt.joined_at, u.id, u.username, u.email
		FROM participants pt JOIN users u ON u.id = pt.user_id WHERE pt.project_id = ? ORDER BY pt.id`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	participants := []model.Participant{}
	for rows.Next() {
		var pt model.Participant
		var joinedAt time.Time
		if err := rows.Scan(&pt.ID, &joinedAt, &pt.User.ID, &pt.User.Username, &pt.User.Email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		pt.JoinedAt = formatTime(joinedAt)
		participants = append(participants, pt)
	}
	return participants, rows.Err()
}
