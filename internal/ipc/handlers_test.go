package ipc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/matjam/setroot/internal/types"
)

type fakeManager struct {
	mu   sync.Mutex
	cmds []Command
}

func (f *fakeManager) CurrentWallpaper() string { return "/walls/a.png" }
func (f *fakeManager) Background() types.Pixmap { return 0x2a00001 }
func (f *fakeManager) Wallpapers() int          { return 3 }

func (f *fakeManager) EnqueueCommand(cmd Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cmds = append(f.cmds, cmd)
}

func (f *fakeManager) Commands() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.cmds)
}

func serve(t *testing.T, m ManagerInterface, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e, m)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStatusHandler(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	rec := serve(t, &fakeManager{}, http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got.Status != "ok" || got.CurrentWallpaper != "/walls/a.png" || got.Background != "0x2a00001" || got.Wallpapers != 3 {
		t.Fatalf("status = %+v", got)
	}
	if got.Socket != "/run/user/1000/setroot.sock" {
		t.Fatalf("socket = %q", got.Socket)
	}
}

func TestSimpleHandlers(t *testing.T) {
	tests := []struct {
		path string
		want CommandType
	}{
		{path: "/stop", want: CommandStop},
		{path: "/next", want: CommandNext},
	}

	for _, tt := range tests {
		m := &fakeManager{}
		rec := serve(t, m, http.MethodPost, tt.path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.path, rec.Code)
		}
		cmds := m.Commands()
		if len(cmds) != 1 || cmds[0].Type != tt.want {
			t.Fatalf("%s: queued %v, want %s", tt.path, cmds, tt.want)
		}
	}
}

func TestLoadHandler(t *testing.T) {
	m := &fakeManager{}
	rec := serve(t, m, http.MethodPost, "/load", `["/a.png","/b.jpg"]`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	cmds := m.Commands()
	if len(cmds) != 1 || cmds[0].Type != CommandLoad || !slices.Equal(cmds[0].Args, []string{"/a.png", "/b.jpg"}) {
		t.Fatalf("queued %v", cmds)
	}

	for _, body := range []string{`{"not":"an array"}`, `[]`} {
		m := &fakeManager{}
		rec := serve(t, m, http.MethodPost, "/load", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("load %s: status = %d, want 400", body, rec.Code)
		}
		if len(m.Commands()) != 0 {
			t.Fatalf("load %s queued a command", body)
		}
	}
}

func TestCommandHandler(t *testing.T) {
	tests := []struct {
		body      string
		wantCode  int
		wantQueue bool
	}{
		{body: `{"type":"next"}`, wantCode: http.StatusOK, wantQueue: true},
		{body: `{"type":"copy_root"}`, wantCode: http.StatusOK, wantQueue: true},
		{body: `{"type":"set","args":["/a.png"]}`, wantCode: http.StatusOK, wantQueue: true},
		{body: `{"type":"color","args":["#000"]}`, wantCode: http.StatusOK, wantQueue: true},
		{body: `{"type":"set"}`, wantCode: http.StatusBadRequest},
		{body: `{"type":"load","args":[]}`, wantCode: http.StatusBadRequest},
		{body: `{"type":"reboot"}`, wantCode: http.StatusBadRequest},
		{body: `not json`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		m := &fakeManager{}
		rec := serve(t, m, http.MethodPost, "/command", tt.body)
		if rec.Code != tt.wantCode {
			t.Errorf("%s: status = %d, want %d", tt.body, rec.Code, tt.wantCode)
		}
		if queued := len(m.Commands()) == 1; queued != tt.wantQueue {
			t.Errorf("%s: queued = %v, want %v", tt.body, queued, tt.wantQueue)
		}
	}
}

func TestCommandHandler_Status(t *testing.T) {
	m := &fakeManager{}
	rec := serve(t, m, http.MethodPost, "/command", `{"type":"status"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got struct {
		Status string         `json:"status"`
		Data   StatusResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if got.Status != "ok" || got.Data.CurrentWallpaper != "/walls/a.png" {
		t.Fatalf("response = %+v", got)
	}
	if len(m.Commands()) != 0 {
		t.Fatal("status should not be queued")
	}
}
