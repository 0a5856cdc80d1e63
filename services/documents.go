package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// DocumentResult is the per-type outcome reported by the document renderer.
type DocumentResult struct {
	Success     bool   `json:"success"`
	DriveURL    string `json:"driveUrl,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Error       string `json:"error,omitempty"`
}

// GenerateDocumentsResult aggregates the whole batch. Success is true when
// at least one document type succeeded.
type GenerateDocumentsResult struct {
	Success   bool                            `json:"success"`
	Readiness Readiness                       `json:"readiness"`
	Documents map[DocumentType]DocumentResult `json:"documents"`
}

type generateRequest struct {
	Action  string                          `json:"action"`
	Payload map[DocumentType]DocumentPayload `json:"payload"`
}

type generateResponse struct {
	Results map[DocumentType]DocumentResult `json:"results"`
}

// GenerateLeaseDocuments runs the full pipeline for one lease: fetch the
// aggregate, gate on readiness, decide proration, build the payloads and
// call the renderer. Failures in one document type never block the others.
func GenerateLeaseDocuments(leaseID uint) (*GenerateDocumentsResult, error) {
	bundle, err := FetchDocumentBundle(leaseID)
	if err != nil {
		return nil, err
	}

	result := &GenerateDocumentsResult{
		Readiness: CheckReadiness(bundle),
		Documents: map[DocumentType]DocumentResult{},
	}
	if !result.Readiness.CanGenerate() {
		return result, nil
	}
	for _, warning := range result.Readiness.Warnings {
		log.Printf("document generation lease %d: %s", leaseID, warning)
	}

	proration := ResolveProration(bundle)

	payloads := map[DocumentType]DocumentPayload{}
	for _, docType := range AllDocumentTypes {
		docReadiness := CheckDocumentReadiness(bundle, docType)
		if !docReadiness.CanGenerate() {
			result.Documents[docType] = DocumentResult{
				Success: false,
				Error:   docReadiness.Errors[0],
			}
			continue
		}
		payloads[docType] = BuildDocumentPayload(bundle, docType, proration)
	}

	if len(payloads) == 0 {
		return result, nil
	}

	remote, err := callDocumentRenderer(payloads)
	if err != nil {
		// All requested types failed together; report per type so the
		// caller sees a uniform shape.
		for docType := range payloads {
			result.Documents[docType] = DocumentResult{Success: false, Error: err.Error()}
		}
		return result, nil
	}

	for docType := range payloads {
		docResult, ok := remote[docType]
		if !ok {
			docResult = DocumentResult{Success: false, Error: "no result returned for document"}
		}
		result.Documents[docType] = docResult
		if docResult.Success {
			result.Success = true
		}
	}
	return result, nil
}

// callDocumentRenderer posts the generate_all batch to the remote rendering
// service, retried with linear backoff.
func callDocumentRenderer(payloads map[DocumentType]DocumentPayload) (map[DocumentType]DocumentResult, error) {
	url := os.Getenv("DOC_SERVICE_URL")
	if url == "" {
		return nil, fmt.Errorf("DOC_SERVICE_URL is not configured")
	}

	body, err := json.Marshal(generateRequest{Action: "generate_all", Payload: payloads})
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	var parsed generateResponse
	err = utils.WithRetry(3, time.Second, func() error {
		resp, err := client.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return fmt.Errorf("document service returned status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&parsed)
	})
	if err != nil {
		return nil, err
	}
	return parsed.Results, nil
}
