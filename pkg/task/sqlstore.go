package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore is a SQLite-backed task store. Every statement except the schema
// is prepared and bound; nothing is built by string concatenation.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a SQLStore.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// EnsureTable creates the tasks table if it doesn't exist.
func (s *SQLStore) EnsureTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT,
			completed   BOOLEAN DEFAULT 0
		)`)
	if err != nil {
		return storeError("create tasks table", err)
	}
	return nil
}

// Add inserts a new task and returns its id. t.ID is ignored.
func (s *SQLStore) Add(ctx context.Context, t *Task) (int64, error) {
	stmt, err := s.db.PrepareContext(ctx, `INSERT INTO tasks (title, description, completed) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, storeError("prepare insert task", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, t.Title, t.Description, t.Completed)
	if err != nil {
		return 0, storeError("insert task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeError("insert task", err)
	}
	return id, nil
}

// Update overwrites title, description and completed of the task with t.ID.
func (s *SQLStore) Update(ctx context.Context, t *Task) (bool, error) {
	stmt, err := s.db.PrepareContext(ctx, `UPDATE tasks SET title = ?, description = ?, completed = ? WHERE id = ?`)
	if err != nil {
		return false, storeError("prepare update task", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, t.Title, t.Description, t.Completed, t.ID)
	if err != nil {
		return false, storeError(fmt.Sprintf("update task %d", t.ID), err)
	}
	return changedOne(res, t.ID)
}

// Delete removes the task with the given id.
func (s *SQLStore) Delete(ctx context.Context, id int64) (bool, error) {
	stmt, err := s.db.PrepareContext(ctx, `DELETE FROM tasks WHERE id = ?`)
	if err != nil {
		return false, storeError("prepare delete task", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return false, storeError(fmt.Sprintf("delete task %d", id), err)
	}
	return changedOne(res, id)
}

// Get retrieves a single task by id.
func (s *SQLStore) Get(ctx context.Context, id int64) (*Task, error) {
	stmt, err := s.db.PrepareContext(ctx, `SELECT id, title, description, completed FROM tasks WHERE id = ?`)
	if err != nil {
		return nil, storeError("prepare get task", err)
	}
	defer stmt.Close()

	t, err := scanTask(stmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError(id)
	}
	if err != nil {
		return nil, storeError(fmt.Sprintf("get task %d", id), err)
	}
	return t, nil
}

// List returns every task in the table's natural order.
func (s *SQLStore) List(ctx context.Context) ([]Task, error) {
	stmt, err := s.db.PrepareContext(ctx, `SELECT id, title, description, completed FROM tasks`)
	if err != nil {
		return nil, storeError("prepare list tasks", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, storeError("list tasks", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("row iteration", err)
	}
	return tasks, nil
}

func scanTask(row interface{ Scan(dest ...any) error }) (*Task, error) {
	var t Task
	var desc sql.NullString
	if err := row.Scan(&t.ID, &t.Title, &desc, &t.Completed); err != nil {
		return nil, err
	}
	t.Description = desc.String
	return &t, nil
}

func changedOne(res sql.Result, id int64) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeError(fmt.Sprintf("rows affected for task %d", id), err)
	}
	if n == 0 {
		return false, notFoundError(id)
	}
	return true, nil
}
