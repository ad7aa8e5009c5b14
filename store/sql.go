package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"TodoWebService/models"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// dialect holds the statements of one SQL database. Each dialect spells out
// its own placeholders.
type dialect struct {
	name        string
	createTable string
	selectOne   string
	insert      string
	update      string
	delete      string
	// returning is true when insert reports the new id with RETURNING
	// instead of LastInsertId.
	returning bool
}

const selectAll = "SELECT id, title FROM task ORDER BY id"

var (
	mysqlDialect = dialect{
		name: "mysql",
		createTable: `CREATE TABLE IF NOT EXISTS task (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL
		)`,
		selectOne: "SELECT id, title FROM task WHERE id=?",
		insert:    "INSERT INTO task(title) VALUES(?)",
		update:    "UPDATE task SET title=? WHERE id=?",
		delete:    "DELETE FROM task WHERE id=?",
	}
	postgresDialect = dialect{
		name: "postgres",
		createTable: `CREATE TABLE IF NOT EXISTS task (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL
		)`,
		selectOne: "SELECT id, title FROM task WHERE id=$1",
		insert:    "INSERT INTO task(title) VALUES($1) RETURNING id",
		update:    "UPDATE task SET title=$1 WHERE id=$2",
		delete:    "DELETE FROM task WHERE id=$1",
		returning: true,
	}
)

// SQLStore stores tasks in the "task" table of a MySQL or PostgreSQL database.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// OpenMySQL opens a MySQL backed store from the DB_* settings.
func OpenMySQL(cfg Config) (*SQLStore, error) {
	mcfg := mysql.Config{
		User:                 cfg.DBUsername,
		Passwd:               cfg.DBPassword,
		Net:                  "tcp",
		Addr:                 cfg.DBAddress,
		DBName:               cfg.DBName,
		AllowNativePasswords: true,
		// Report matched rather than changed rows so that an update with an
		// unchanged title is not mistaken for a missing task.
		ClientFoundRows: true,
	}
	db, err := sql.Open("mysql", mcfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	return newSQLStore(db, mysqlDialect), nil
}

// OpenPostgres opens a PostgreSQL backed store.
func OpenPostgres(dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return newSQLStore(db, postgresDialect), nil
}

func newSQLStore(db *sql.DB, d dialect) *SQLStore {
	return &SQLStore{db: db, dialect: d}
}

// Migrate creates the task table if it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.createTable); err != nil {
		return fmt.Errorf("failed to create task table: %w", err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, selectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.Id, &task.Title); err != nil {
			return nil, fmt.Errorf("failed to scan row into Task struct: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func (s *SQLStore) Get(ctx context.Context, id int64) (models.Task, error) {
	var task models.Task
	err := s.db.QueryRowContext(ctx, s.dialect.selectOne, id).
		Scan(&task.Id, &task.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to scan row into Task struct: %w", err)
	}
	return task, nil
}

func (s *SQLStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	if s.dialect.returning {
		err := s.db.QueryRowContext(ctx, s.dialect.insert, task.Title).
			Scan(&task.Id)
		if err != nil {
			return models.Task{}, fmt.Errorf("failed to insert task: %w", err)
		}
		return task, nil
	}

	res, err := s.db.ExecContext(ctx, s.dialect.insert, task.Title)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}
	task.Id, err = res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to retrieve the last inserted ID: %w", err)
	}
	return task, nil
}

func (s *SQLStore) Update(ctx context.Context, id int64, task models.Task) (models.Task, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.update, task.Title, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to execute SQL statement: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return models.Task{}, err
	}
	return models.Task{Id: id, Title: task.Title}, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.dialect.delete, id)
	if err != nil {
		return fmt.Errorf("failed to execute SQL statement: %w", err)
	}
	return expectOneRow(res)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
