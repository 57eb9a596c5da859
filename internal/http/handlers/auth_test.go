package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "bacalah/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

// A registration that passes the pre-check but loses the insert race
// against a concurrent duplicate must surface as a conflict, not a 500.
func TestRegisterLostUniqueRaceMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("alice@example.com", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice", "alice@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice'"})

	w := postJSON(t, Register, `{"username":"alice","email":"alice@example.com","password":"secret"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterDuplicateFoundByPrecheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("alice@example.com", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := postJSON(t, Register, `{"username":"alice","email":"alice@example.com","password":"secret"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
