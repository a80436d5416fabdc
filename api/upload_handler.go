package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aifashion/wardrobe-backend/models"
	"github.com/aifashion/wardrobe-backend/services"
	"github.com/aifashion/wardrobe-backend/utils"
)

// MaxUploadFiles bounds one upload batch.
const MaxUploadFiles = 10

// UploadHandler handles POST /api/upload (multipart: user_id, files[]).
//
// Per image: hash, skip if the user already owns that hash (or an
// earlier image in this batch had it), otherwise include in one batched
// tagging call and persist each tagged result. A failed tagging call
// aborts the whole request since no partial tag data exists; a failed
// persist only increments fail_count.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Upload API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.AI == nil || h.Wardrobe == nil {
		utils.RespondError(w, &logMessageBuilder, "AI service not ready", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		utils.RespondError(w, &logMessageBuilder, "user_id is required", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		utils.RespondError(w, &logMessageBuilder, "No files uploaded", http.StatusBadRequest)
		return
	}
	if len(files) > MaxUploadFiles {
		utils.RespondError(w, &logMessageBuilder,
			fmt.Sprintf("At most %d images per upload", MaxUploadFiles), http.StatusBadRequest)
		return
	}

	successCount := 0
	duplicateCount := 0
	failCount := 0

	// Classify every image before the tagging call so duplicates never
	// reach the AI service.
	var novelImages [][]byte
	var novelHashes []string
	seenInBatch := map[string]bool{}

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error opening %s: %v", fileHeader.Filename, err))
			failCount++
			continue
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error reading %s: %v", fileHeader.Filename, err))
			failCount++
			continue
		}

		imageHash := services.ImageHash(content)
		if seenInBatch[imageHash] {
			duplicateCount++
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Skipping in-batch duplicate %s", fileHeader.Filename))
			continue
		}

		isDuplicate, existingName, err := h.Wardrobe.CheckDuplicate(r.Context(), userID, imageHash)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Duplicate check failed for %s: %v", fileHeader.Filename, err))
			failCount++
			continue
		}
		if isDuplicate {
			duplicateCount++
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Skipping duplicate of %q", existingName))
			continue
		}

		seenInBatch[imageHash] = true
		novelImages = append(novelImages, content)
		novelHashes = append(novelHashes, imageHash)
	}

	savedItems := []models.ClothingItem{}

	if len(novelImages) > 0 {
		tagsList, err := h.AI.BatchAutoTag(r.Context(), novelImages)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Tagging failed: %v", err))
			respondAppError(w, &logMessageBuilder, err)
			return
		}

		for i, tags := range tagsList {
			item := models.ClothingItem{
				UserID:    userID,
				Name:      tags.Name,
				Category:  tags.Category,
				Color:     tags.Color,
				Style:     tags.Style,
				Warmth:    tags.Warmth,
				ImageHash: novelHashes[i],
			}

			if err := h.Wardrobe.SaveItem(r.Context(), &item, novelImages[i]); err != nil {
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save %q: %v", tags.Name, err))
				failCount++
				continue
			}
			successCount++
			savedItems = append(savedItems, item)
		}
	}

	utils.AddToLogMessage(&logMessageBuilder,
		fmt.Sprintf("Upload done: %d saved, %d duplicates, %d failed", successCount, duplicateCount, failCount))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"success_count":   successCount,
		"duplicate_count": duplicateCount,
		"fail_count":      failCount,
		"items":           savedItems,
	})
}
