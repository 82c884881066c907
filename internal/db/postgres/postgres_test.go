package postgres

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOpen_EmptyDSN(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	if up == 0 || up != down {
		t.Errorf("expected paired up/down migrations, got up=%d down=%d", up, down)
	}
}

func TestWaitForReady_Success(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	mock.ExpectPing()

	if err := WaitForReady(context.Background(), conn, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	for range 10 {
		mock.ExpectPing().WillReturnError(context.DeadlineExceeded)
	}

	if err := WaitForReady(context.Background(), conn, 150*time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}
}
