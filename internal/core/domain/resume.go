package domain

import "time"

type ResumeStatus string

const (
	StatusUploaded   ResumeStatus = "uploaded"
	StatusProcessing ResumeStatus = "processing"
	StatusReady      ResumeStatus = "ready"
	StatusFailed     ResumeStatus = "failed"
)

// Resume is an uploaded resume file plus the text cache the worker fills in.
type Resume struct {
	ID            string       `json:"id"`
	OriginalName  string       `json:"original_name"`
	StoredName    string       `json:"stored_name"`
	StoragePath   string       `json:"storage_path"`
	MimeType      string       `json:"mime_type"`
	Status        ResumeStatus `json:"status"`
	ExtractedText string       `json:"-"`
	Error         string       `json:"error,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// UploadedFile is the wire representation of a stored resume that clients
// pass back to the analyze endpoint.
type UploadedFile struct {
	OriginalName string `json:"original_name"`
	StoredName   string `json:"stored_name"`
	Path         string `json:"path"`
}

func (r *Resume) File() UploadedFile {
	return UploadedFile{
		OriginalName: r.OriginalName,
		StoredName:   r.StoredName,
		Path:         r.StoragePath,
	}
}

type JobDescription struct {
	ID        string    `json:"jd_id"`
	Text      string    `json:"job_description"`
	CreatedAt time.Time `json:"created_at"`
}
