package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// maxIntentAttempts bounds how often the sweeper retries one intent before
// marking it failed for good.
const maxIntentAttempts = 5

// LeaseTriggerRequest is the contract of the remote lease-creation service.
type LeaseTriggerRequest struct {
	ProposalID           uint    `json:"proposalId"`
	IsCounteroffer       bool    `json:"isCounteroffer"`
	FourWeekRent         float64 `json:"fourWeekRent"`
	FourWeekCompensation float64 `json:"fourWeekCompensation"`
	NumberOfZeros        int     `json:"numberOfZeros"`
}

type LeaseTriggerResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CallLeaseTrigger invokes the remote lease-creation procedure, retried with
// linear backoff.
func CallLeaseTrigger(req LeaseTriggerRequest) (*LeaseTriggerResponse, error) {
	url := os.Getenv("LEASE_SERVICE_URL")
	if url == "" {
		return nil, fmt.Errorf("LEASE_SERVICE_URL is not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	var parsed LeaseTriggerResponse
	err = utils.WithRetry(3, time.Second, func() error {
		resp, err := client.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return fmt.Errorf("lease service returned status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&parsed)
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Success {
		return &parsed, fmt.Errorf("lease creation rejected: %s", parsed.Error)
	}
	return &parsed, nil
}

// ProcessLeaseIntent consumes one outbox row: call the trigger and record
// the outcome. A failure leaves the intent pending for the sweeper until the
// attempt budget runs out.
func ProcessLeaseIntent(intent *models.LeaseIntent) error {
	_, err := CallLeaseTrigger(LeaseTriggerRequest{
		ProposalID:           intent.ProposalID,
		IsCounteroffer:       intent.IsCounteroffer,
		FourWeekRent:         intent.FourWeekRent,
		FourWeekCompensation: intent.FourWeekCompensation,
		NumberOfZeros:        intent.NumberOfZeros,
	})

	intent.Attempts++
	if err != nil {
		intent.LastError = err.Error()
		if intent.Attempts >= maxIntentAttempts {
			intent.State = models.LeaseIntentFailed
		}
		storage.DB.Save(intent)
		return err
	}

	intent.State = models.LeaseIntentSucceeded
	intent.LastError = ""
	storage.DB.Save(intent)
	return nil
}

// SweepPendingLeaseIntents retries every pending outbox row once. Called
// periodically so a trigger failure after an accepted counteroffer is never
// silently lost.
func SweepPendingLeaseIntents() {
	var intents []models.LeaseIntent
	if err := storage.DB.Where("state = ?", models.LeaseIntentPending).Find(&intents).Error; err != nil {
		log.Printf("lease intent sweep: query failed: %v", err)
		return
	}
	for i := range intents {
		if err := ProcessLeaseIntent(&intents[i]); err != nil {
			log.Printf("lease intent sweep: intent %d (proposal %d) failed: %v",
				intents[i].ID, intents[i].ProposalID, err)
		}
	}
}

// StartLeaseIntentSweeper runs the sweep on a fixed interval until the
// process exits.
func StartLeaseIntentSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			SweepPendingLeaseIntents()
		}
	}()
}
