package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/tamiti-backend/internal/logger"
)

// testSchema mirrors the Postgres tables without the uuid server defaults;
// services set IDs explicitly, so sqlite never needs to generate one.
var testSchema = []string{
	`CREATE TABLE task (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		project_id TEXT,
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'todo',
		priority TEXT NOT NULL DEFAULT 'medium',
		due_date DATETIME,
		start_at DATETIME,
		earliest_start_at DATETIME,
		latest_finish_at DATETIME,
		snoozed_until DATETIME,
		estimated_minutes INTEGER,
		is_hard_due NUMERIC NOT NULL DEFAULT 0,
		context_energy TEXT,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE task_dependency (
		task_id TEXT NOT NULL,
		depends_on_id TEXT NOT NULL,
		PRIMARY KEY (task_id, depends_on_id)
	)`,
	`CREATE TABLE time_block (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		task_id TEXT,
		title TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'task',
		"start" DATETIME NOT NULL,
		"end" DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'planned',
		source TEXT NOT NULL DEFAULT 'auto',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE availability_template (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		weekday INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		is_workday NUMERIC NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE calendar_event (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		"start" DATETIME NOT NULL,
		"end" DATETIME NOT NULL,
		is_busy NUMERIC NOT NULL DEFAULT 1,
		source TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE break_policy (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		focus_minutes INTEGER NOT NULL DEFAULT 25,
		short_break_minutes INTEGER NOT NULL DEFAULT 5,
		long_break_minutes INTEGER NOT NULL DEFAULT 15,
		long_every INTEGER NOT NULL DEFAULT 4,
		max_daily_focus_minutes INTEGER NOT NULL DEFAULT 480,
		active NUMERIC NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE daily_review (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		date DATETIME NOT NULL,
		tasks_planned INTEGER NOT NULL DEFAULT 0,
		tasks_completed INTEGER NOT NULL DEFAULT 0,
		completion_rate REAL NOT NULL DEFAULT 0,
		focus_time_minutes INTEGER NOT NULL DEFAULT 0,
		break_time_minutes INTEGER NOT NULL DEFAULT 0,
		productivity_score REAL NOT NULL DEFAULT 0,
		current_streak INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE UNIQUE INDEX idx_owner_date ON daily_review (owner_id, date)`,
	`CREATE TABLE insight (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		insight_type TEXT NOT NULL,
		data TEXT,
		confidence_score REAL NOT NULL DEFAULT 0,
		sample_size INTEGER NOT NULL DEFAULT 0,
		valid_from DATETIME NOT NULL,
		valid_until DATETIME,
		is_active NUMERIC NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE work_goal (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		target_date DATETIME,
		progress_percentage REAL NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE work_goal_task (
		work_goal_id TEXT NOT NULL,
		task_id TEXT NOT NULL,
		PRIMARY KEY (work_goal_id, task_id)
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, ddl := range testSchema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New("prod")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return log
}
