package services

import (
	"fmt"
	"mime/multipart"
	"sync"
)

// MockS3Service is an in-memory S3Interface for testing.
type MockS3Service struct {
	mu sync.Mutex

	// UploadError makes UploadFile fail when set.
	UploadError error

	// Uploaded maps generated keys to original filenames.
	Uploaded map[string]string

	// Deleted records deleted keys.
	Deleted []string
}

// NewMockS3Service creates an empty mock.
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{Uploaded: make(map[string]string)}
}

// UploadFile records the upload and returns a deterministic key.
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader) (string, error) {
	if m.UploadError != nil {
		return "", m.UploadError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("catalog/mock_%d_%s", len(m.Uploaded), fileHeader.Filename)
	m.Uploaded[key] = fileHeader.Filename
	return key, nil
}

// GetPresignedURL returns a fake URL for the key.
func (m *MockS3Service) GetPresignedURL(s3Key string) (string, error) {
	if s3Key == "" {
		return "", nil
	}
	return "https://cdn.example.com/" + s3Key, nil
}

// DeleteFile records the deletion.
func (m *MockS3Service) DeleteFile(s3Key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deleted = append(m.Deleted, s3Key)
	delete(m.Uploaded, s3Key)
	return nil
}
