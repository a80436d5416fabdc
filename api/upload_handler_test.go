package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aifashion/wardrobe-backend/models"
	"github.com/aifashion/wardrobe-backend/services"
)

type uploadFile struct {
	name    string
	content []byte
}

func uploadRequest(t *testing.T, userID string, files []uploadFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("user_id", userID); err != nil {
		t.Fatalf("write user_id field: %v", err)
	}
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	h := newTestHandler()
	store := newFakeWardrobeStore()
	ai := &fakeAIClient{}
	h.Wardrobe = store
	h.AI = ai

	files := make([]uploadFile, 11)
	for i := range files {
		files[i] = uploadFile{name: fmt.Sprintf("img%d.jpg", i), content: []byte(fmt.Sprintf("image-%d", i))}
	}

	rec := httptest.NewRecorder()
	h.UploadHandler(rec, uploadRequest(t, "u1", files))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if ai.tagCall != 0 {
		t.Errorf("tagging called %d times, want 0", ai.tagCall)
	}
	if len(store.items) != 0 {
		t.Errorf("%d items saved, want 0", len(store.items))
	}
}

func TestUploadSkipsExistingHash(t *testing.T) {
	h := newTestHandler()
	store := newFakeWardrobeStore()
	ai := &fakeAIClient{}
	h.Wardrobe = store
	h.AI = ai

	image := []byte("a photo of a coat")
	store.items = append(store.items, models.ClothingItem{
		UserID:    "u1",
		Name:      "navy coat",
		ImageHash: services.ImageHash(image),
	})

	rec := httptest.NewRecorder()
	h.UploadHandler(rec, uploadRequest(t, "u1", []uploadFile{{name: "coat.jpg", content: image}}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["duplicate_count"] != float64(1) {
		t.Errorf("duplicate_count = %v, want 1", body["duplicate_count"])
	}
	if body["success_count"] != float64(0) {
		t.Errorf("success_count = %v, want 0", body["success_count"])
	}
	if ai.tagCall != 0 {
		t.Errorf("tagging called %d times for an all-duplicate batch, want 0", ai.tagCall)
	}
	if len(store.items) != 1 {
		t.Errorf("stored item count = %d, want 1", len(store.items))
	}
}

func TestUploadSkipsInBatchDuplicate(t *testing.T) {
	h := newTestHandler()
	store := newFakeWardrobeStore()
	ai := &fakeAIClient{tags: []models.ClothingTags{{Name: "white tee", Category: "top", Warmth: 1}}}
	h.Wardrobe = store
	h.AI = ai

	image := []byte("same photo twice")
	rec := httptest.NewRecorder()
	h.UploadHandler(rec, uploadRequest(t, "u1", []uploadFile{
		{name: "a.jpg", content: image},
		{name: "b.jpg", content: image},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success_count"] != float64(1) || body["duplicate_count"] != float64(1) {
		t.Errorf("counts = success %v / duplicate %v, want 1 / 1",
			body["success_count"], body["duplicate_count"])
	}
	if len(ai.tagged) != 1 {
		t.Errorf("tagging received %d images, want 1", len(ai.tagged))
	}
}

func TestUploadPartialPersistFailure(t *testing.T) {
	h := newTestHandler()
	store := newFakeWardrobeStore()
	store.saveFailures["broken item"] = true
	ai := &fakeAIClient{tags: []models.ClothingTags{
		{Name: "blue jeans", Category: "bottom", Warmth: 2},
		{Name: "broken item", Category: "top", Warmth: 1},
		{Name: "wool coat", Category: "outerwear", Warmth: 5},
	}}
	h.Wardrobe = store
	h.AI = ai

	rec := httptest.NewRecorder()
	h.UploadHandler(rec, uploadRequest(t, "u1", []uploadFile{
		{name: "1.jpg", content: []byte("image one")},
		{name: "2.jpg", content: []byte("image two")},
		{name: "3.jpg", content: []byte("image three")},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success_count"] != float64(2) {
		t.Errorf("success_count = %v, want 2", body["success_count"])
	}
	if body["fail_count"] != float64(1) {
		t.Errorf("fail_count = %v, want 1", body["fail_count"])
	}
	if len(store.items) != 2 {
		t.Errorf("stored item count = %d, want 2", len(store.items))
	}
}

func TestUploadTaggingFailureAbortsBatch(t *testing.T) {
	h := newTestHandler()
	store := newFakeWardrobeStore()
	ai := &fakeAIClient{tagErr: fmt.Errorf("model unavailable")}
	h.Wardrobe = store
	h.AI = ai

	rec := httptest.NewRecorder()
	h.UploadHandler(rec, uploadRequest(t, "u1", []uploadFile{
		{name: "1.jpg", content: []byte("image one")},
	}))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if len(store.items) != 0 {
		t.Errorf("%d items saved after tagging failure, want 0", len(store.items))
	}
}

func TestUploadRequiresUserID(t *testing.T) {
	h := newTestHandler()
	h.Wardrobe = newFakeWardrobeStore()
	h.AI = &fakeAIClient{}

	rec := httptest.NewRecorder()
	h.UploadHandler(rec, uploadRequest(t, "", []uploadFile{{name: "1.jpg", content: []byte("x")}}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
