package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop())
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req loginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Unauthorized"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"abc","loggedInUser":{"id":4,"fullName":"Ada","username":"ada","roles":[{"id":1,"code":"Leaders","name":"Leaders"}]}}`)
	})

	res, err := c.Login(context.Background(), ports.Credentials{Username: "ada", Password: "secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.AccessToken != "abc" || res.User.ID != 4 || len(res.User.Roles) != 1 || res.User.Roles[0].Code != "Leaders" {
		t.Fatalf("unexpected login result: %+v", res)
	}

	if _, err := c.Login(context.Background(), ports.Credentials{Username: "ada", Password: "nope"}); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	})

	ctx := ports.WithAccessToken(context.Background(), "tok-1")
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tasks)
	}
	if auth != "Bearer tok-1" {
		t.Fatalf("unexpected Authorization header %q", auth)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"message":"Task not found"}`, domain.ErrNotFound},
		{"bad request", http.StatusBadRequest, `{"message":["title should not be empty"]}`, domain.ErrValidation},
		{"conflict", http.StatusConflict, `{"message":"exists"}`, domain.ErrValidation},
		{"unprocessable", http.StatusUnprocessableEntity, ``, domain.ErrValidation},
		{"unauthorized", http.StatusUnauthorized, `{"message":"jwt expired"}`, domain.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ``, domain.ErrUnauthorized},
		{"server", http.StatusInternalServerError, `oops`, domain.ErrServer},
		{"bad gateway", http.StatusBadGateway, ``, domain.ErrServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.GetTask(context.Background(), 1)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestClient_ValidationFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":["bad input"],"errors":{"title":"Title is required"}}`)
	})

	_, err := c.CreateTask(context.Background(), domain.Task{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["title"] != "Title is required" || verr.Message != "bad input" {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	c := New(Config{BaseURL: url, Timeout: time.Second}, zerolog.Nop())

	if _, err := c.ListUsers(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestClient_CancelledContext(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	err := c.DeleteTask(ctx, 9)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("cancellation must not be reported as a network failure")
	}
}

func TestClient_AddRolesToUser(t *testing.T) {
	var got roleIDsRequest
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})

	u, err := c.AddRolesToUser(context.Background(), 12, []int64{2, 3})
	if err != nil {
		t.Fatalf("AddRolesToUser returned error: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil profile for empty body, got %+v", u)
	}
	if method != http.MethodPut || path != "/security/users/12/add-roles-to-user" {
		t.Fatalf("unexpected request %s %s", method, path)
	}
	if len(got.RoleIDs) != 2 || got.RoleIDs[0] != 2 || got.RoleIDs[1] != 3 {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestClient_TaskDates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/workspaces/tasks/assignee/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":1,"title":"a","status":"to_do","priority":"low","start_date":"2024-03-01","due_date":"2024-03-05T10:00:00.000Z","completed_date":null}]`)
	})

	tasks, err := c.ListTasksByAssignee(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListTasksByAssignee returned error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	if tasks[0].StartDate.DateValue() != "2024-03-01" || tasks[0].DueDate.DateValue() != "2024-03-05" {
		t.Fatalf("unexpected dates: %v %v", tasks[0].StartDate, tasks[0].DueDate)
	}
	if tasks[0].CompletedDate != nil {
		t.Fatalf("expected nil completed date")
	}
}
