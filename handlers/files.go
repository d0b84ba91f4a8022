package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
)

const uploadDir = "./uploads"

// maxUploadSize caps a single photo at 10 MB.
const maxUploadSize = 10 << 20

// UploadObraFoto attaches a photo to an obra. The binary goes to GCS in
// production and to ./uploads in development; either way the resulting
// URL is appended to the obra's fotos list.
func UploadObraFoto(w http.ResponseWriter, r *http.Request) {
	obra, ok := fetchObra(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), header.Filename)

	var url string
	if useGCS() {
		url, err = uploadToGCS(r.Context(), file, filename, header.Header.Get("Content-Type"))
	} else {
		url, err = uploadLocal(file, filename)
	}
	if err != nil {
		http.Error(w, "upload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	obra.Fotos = append(obra.Fotos, url)
	if err := db.SaveObra(obra); err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"url":   url,
		"fotos": obra.Fotos,
	})
}

// Google Cloud sets GOOGLE_APPLICATION_CREDENTIALS or K_SERVICE (Cloud
// Run); either one, or an explicit USE_GCS=true, selects bucket storage.
func useGCS() bool {
	return os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""
}

func uploadToGCS(ctx context.Context, src io.Reader, filename, contentType string) (string, error) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		return "", fmt.Errorf("GCS_BUCKET not configured")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	object := "obras/" + filename
	wc := client.Bucket(bucketName).Object(object).NewWriter(ctx)
	if contentType != "" {
		wc.ContentType = contentType
	}
	if _, err := io.Copy(wc, src); err != nil {
		wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, object), nil
}

func uploadLocal(src io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + filename, nil
}
