package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"paperdesk/models"
)

// FileMeta describes the uploaded manuscript file as seen at the service
// boundary. The bytes travel separately as a reader and are never kept
// in the record store.
type FileMeta struct {
	Name        string
	Size        int64
	ContentType string
}

// FileUpload describes where the manuscript file ended up
type FileUpload struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileURL  string `json:"fileUrl"`
}

// Result is the outcome of an external manuscript submission
type Result struct {
	Success    bool       `json:"success"`
	FileUpload FileUpload `json:"fileUpload"`
}

// Uploader pushes a manuscript to external storage. Callers treat a
// failure as non-fatal: local persistence proceeds regardless.
type Uploader interface {
	SubmitManuscript(ctx context.Context, sub *models.Submission, meta FileMeta, r io.Reader) (*Result, error)
}

// StubUploader is used when external uploads are disabled. It reports a
// local placeholder id and no URL, matching a drive folder that is not
// wired up yet.
type StubUploader struct{}

// SubmitManuscript acknowledges the file without transferring it anywhere
func (StubUploader) SubmitManuscript(_ context.Context, _ *models.Submission, meta FileMeta, _ io.Reader) (*Result, error) {
	return &Result{
		Success: true,
		FileUpload: FileUpload{
			FileID:   fmt.Sprintf("local_%d", time.Now().UnixMilli()),
			FileName: meta.Name,
			FileSize: meta.Size,
		},
	}, nil
}
