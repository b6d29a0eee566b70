package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatfolio/internal/domain"
	"chatfolio/internal/domain/models"
	"chatfolio/internal/domain/services"
)

// fakeFolderService returns canned results per method.
type fakeFolderService struct {
	createErr error
	updateErr error
	deleteRes *services.DeleteFolderResult
	deleteErr error
}

func (f *fakeFolderService) CreateFolder(_ context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Folder{ID: "f1", Name: req.Name, Path: "f1"}, nil
}

func (f *fakeFolderService) GetFolder(_ context.Context, id string) (*models.Folder, error) {
	return nil, &domain.NotFoundError{Message: "folder " + id + " not found"}
}

func (f *fakeFolderService) UpdateFolder(_ context.Context, id string, _ *services.UpdateFolderRequest) (*models.Folder, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Folder{ID: id}, nil
}

func (f *fakeFolderService) DeleteFolder(_ context.Context, _ string) (*services.DeleteFolderResult, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteRes, nil
}

func (f *fakeFolderService) ListFolders(_ context.Context) ([]models.Folder, error) {
	return []models.Folder{}, nil
}

func (f *fakeFolderService) GetTree(_ context.Context) (*models.Tree, error) {
	return &models.Tree{}, nil
}

func newTestMux(svc services.FolderService) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewFolderHandler(svc, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/folders", h.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", h.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", h.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.DeleteFolder)
	return mux
}

func TestCreateFolderEndpoint(t *testing.T) {
	mux := newTestMux(&fakeFolderService{})

	req := httptest.NewRequest(http.MethodPost, "/api/folders", strings.NewReader(`{"name":"Work"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var folder models.Folder
	if err := json.NewDecoder(rec.Body).Decode(&folder); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if folder.Name != "Work" {
		t.Errorf("name = %q, want Work", folder.Name)
	}
}

func TestCreateFolderEndpoint_ValidationProblem(t *testing.T) {
	mux := newTestMux(&fakeFolderService{
		createErr: &domain.ValidationError{Message: "name: cannot be blank"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/folders", strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q, want application/problem+json", ct)
	}
}

func TestMoveFolderEndpoint_CycleConflict(t *testing.T) {
	mux := newTestMux(&fakeFolderService{
		updateErr: &domain.CyclicMoveError{FolderID: "a", ParentID: "c"},
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/folders/a", strings.NewReader(`{"parent_id":"c"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestDeleteFolderEndpoint_ReportsBlastRadius(t *testing.T) {
	mux := newTestMux(&fakeFolderService{
		deleteRes: &services.DeleteFolderResult{
			DeletedFolderIDs:      []string{"r", "c1", "c2"},
			DeletedCount:          3,
			OrphanedConversations: 2,
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/folders/r", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body deleteFolderResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.DeletedCount != 3 || body.OrphanedConversations != 2 {
		t.Errorf("counts = %d/%d, want 3/2", body.DeletedCount, body.OrphanedConversations)
	}
	if body.Message != "Deleted folder and 2 subfolders" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestGetFolderEndpoint_NotFound(t *testing.T) {
	mux := newTestMux(&fakeFolderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/folders/ghost", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
