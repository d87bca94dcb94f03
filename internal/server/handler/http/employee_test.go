package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/models"
)

// fakeEmployeeService implements EmployeeService for testing.
type fakeEmployeeService struct {
	createID    string
	createErr   error
	list        []models.Employee
	listErr     error
	get         *models.Employee
	getErr      error
	updateErr   error
	deleteErr   error
	byEmail     []models.Employee
	byEmailErr  error
	gotFields   models.Partial
	gotEmployee models.Employee
	deletedID   string
}

func (f *fakeEmployeeService) Create(ctx context.Context, e models.Employee) (string, error) {
	f.gotEmployee = e
	return f.createID, f.createErr
}
func (f *fakeEmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return f.list, f.listErr
}
func (f *fakeEmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	return f.get, f.getErr
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, fields models.Partial) error {
	f.gotFields = fields
	return f.updateErr
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}
func (f *fakeEmployeeService) FindByEmail(ctx context.Context, email string) ([]models.Employee, error) {
	return f.byEmail, f.byEmailErr
}

// allowAll authenticates every token as user "u1".
type allowAll struct{}

func (allowAll) Authenticate(ctx context.Context, token string) (string, error) {
	return "u1", nil
}

func newTestServer(svc *fakeEmployeeService) http.Handler {
	authHandler := &AuthHandler{AuthService: nil}
	employeeHandler := &EmployeeHandler{EmployeeService: svc}
	return NewRouter(authHandler, employeeHandler, allowAll{}, zap.NewNop())
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body == "" {
		buf = bytes.NewBuffer(nil)
	} else {
		buf = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEmployeeList(t *testing.T) {
	svc := &fakeEmployeeService{
		list: []models.Employee{
			{ID: "1", Name: "Ada", Email: "ada@x.com"},
			{ID: "2", Name: "Bob", Email: "bob@x.com"},
		},
	}
	rec := doRequest(t, newTestServer(svc), "GET", "/api/employees", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var got []models.Employee
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Ada" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestEmployeeList_EmailFilter(t *testing.T) {
	svc := &fakeEmployeeService{
		byEmail: []models.Employee{{ID: "1", Email: "ada@x.com"}},
	}
	rec := doRequest(t, newTestServer(svc), "GET", "/api/employees?field=email&value=ada%40x.com", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var got []models.Employee
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(got) != 1 || got[0].Email != "ada@x.com" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestEmployeeList_UnsupportedFilterField(t *testing.T) {
	rec := doRequest(t, newTestServer(&fakeEmployeeService{}), "GET", "/api/employees?field=salary&value=1", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rec.Code)
	}
}

func TestEmployeeCreate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svc      *fakeEmployeeService
		wantCode int
	}{
		{
			name:     "success",
			body:     `{"name":"Ada","email":"ada@x.com","position":"Eng","department":"R&D","salary":1,"hireDate":"2024-01-01"}`,
			svc:      &fakeEmployeeService{createID: "new-id"},
			wantCode: http.StatusCreated,
		},
		{
			name:     "duplicate email",
			body:     `{"name":"Ada","email":"ada@x.com"}`,
			svc:      &fakeEmployeeService{createErr: apperr.ErrConflict},
			wantCode: http.StatusConflict,
		},
		{
			name:     "missing name",
			body:     `{"email":"ada@x.com"}`,
			svc:      &fakeEmployeeService{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid JSON",
			body:     `not json`,
			svc:      &fakeEmployeeService{},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestServer(tt.svc), "POST", "/api/employees", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d; want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusCreated {
				var resp map[string]string
				_ = json.Unmarshal(rec.Body.Bytes(), &resp)
				if resp["id"] != "new-id" {
					t.Errorf("id = %q; want new-id", resp["id"])
				}
			}
		})
	}
}

func TestEmployeeGet_NotFound(t *testing.T) {
	svc := &fakeEmployeeService{getErr: apperr.ErrNotFound}
	rec := doRequest(t, newTestServer(svc), "GET", "/api/employees/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", rec.Code)
	}
}

func TestEmployeeUpdate(t *testing.T) {
	svc := &fakeEmployeeService{}
	rec := doRequest(t, newTestServer(svc), "PATCH", "/api/employees/42", `{"salary":95000,"id":"evil"}`)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", rec.Code)
	}
	if _, ok := svc.gotFields["id"]; ok {
		t.Error("id field was not stripped from the patch")
	}
	if svc.gotFields["salary"] != float64(95000) {
		t.Errorf("salary field = %v; want 95000", svc.gotFields["salary"])
	}
}

func TestEmployeeUpdate_Conflict(t *testing.T) {
	svc := &fakeEmployeeService{updateErr: apperr.ErrConflict}
	rec := doRequest(t, newTestServer(svc), "PATCH", "/api/employees/42", `{"email":"taken@x.com"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d; want 409", rec.Code)
	}
}

func TestEmployeeDelete_AlwaysNoContent(t *testing.T) {
	svc := &fakeEmployeeService{}
	rec := doRequest(t, newTestServer(svc), "DELETE", "/api/employees/anything", "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", rec.Code)
	}
	if svc.deletedID != "anything" {
		t.Errorf("deleted id = %q; want anything", svc.deletedID)
	}
}
