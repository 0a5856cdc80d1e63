package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/models"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// NotificationService handles all push notification logic
type NotificationService struct{}

// NewNotificationService creates a new notification service instance
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotificationData represents the data payload for notifications
type NotificationData struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	ProposalID string `json:"proposalId,omitempty"`
	ListingID  string `json:"listingId,omitempty"`
	UserID     string `json:"userId,omitempty"`
	// Deep linking data
	Screen string `json:"screen"`
	Params string `json:"params"`
	Action string `json:"action,omitempty"`
}

// getUserPushTokens retrieves all push tokens for a user
func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user has notifications disabled or no tokens")
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}
	return tokens, nil
}

// SendNotificationToUser sends a push notification to every registered
// device of a user and records an in-app notification row.
func (ns *NotificationService) SendNotificationToUser(userID uint, title, body string, data NotificationData) error {
	record := models.Notification{
		UserID:  userID,
		Type:    data.Type,
		Title:   title,
		Message: body,
		RefType: "proposal",
		RefID:   parseRefID(data.ProposalID),
	}
	storage.DB.Create(&record)

	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		log.Printf("Failed to get push tokens for user %d: %v", userID, err)
		return err
	}

	dataMap := map[string]string{
		"type":       data.Type,
		"id":         data.ID,
		"proposalId": data.ProposalID,
		"listingId":  data.ListingID,
		"userId":     data.UserID,
		"screen":     data.Screen,
		"params":     data.Params,
	}

	var lastError error
	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, dataMap); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token, err)
			lastError = err
		}
	}
	return lastError
}

func parseRefID(s string) uint {
	var id uint
	fmt.Sscanf(s, "%d", &id)
	return id
}

// SendProposalNotificationToHost notifies a host that a guest submitted a
// new proposal for their listing.
func (ns *NotificationService) SendProposalNotificationToHost(proposalID, listingID, hostID, guestID uint, guestName, listingTitle string) error {
	title := "New Stay Proposal"
	body := fmt.Sprintf("%s sent a proposal for %s", guestName, listingTitle)

	params := fmt.Sprintf(`{"proposalId": %d, "listingId": %d, "guestId": %d}`, proposalID, listingID, guestID)
	data := NotificationData{
		Type:       "proposal_received",
		ID:         fmt.Sprintf("%d", proposalID),
		ProposalID: fmt.Sprintf("%d", proposalID),
		ListingID:  fmt.Sprintf("%d", listingID),
		UserID:     fmt.Sprintf("%d", guestID),
		Screen:     "HostProposals",
		Params:     params,
		Action:     "view_proposal",
	}
	return ns.SendNotificationToUser(hostID, title, body, data)
}

// SendCounterofferNotificationToGuest notifies a guest that the host
// countered their proposal.
func (ns *NotificationService) SendCounterofferNotificationToGuest(proposalID, guestID uint, hostName, listingTitle string) error {
	title := "Counteroffer Received"
	body := fmt.Sprintf("%s sent a counteroffer for %s", hostName, listingTitle)

	params := fmt.Sprintf(`{"proposalId": %d}`, proposalID)
	data := NotificationData{
		Type:       "counteroffer_ready",
		ID:         fmt.Sprintf("%d", proposalID),
		ProposalID: fmt.Sprintf("%d", proposalID),
		Screen:     "ProposalReview",
		Params:     params,
		Action:     "review_counteroffer",
	}
	return ns.SendNotificationToUser(guestID, title, body, data)
}

// SendCancellationNotificationToHost notifies a host that a proposal was
// cancelled or a counteroffer declined.
func (ns *NotificationService) SendCancellationNotificationToHost(proposalID, hostID uint, guestName, reason string) error {
	title := "Proposal Cancelled"
	body := fmt.Sprintf("%s cancelled their proposal", guestName)
	if reason != "" {
		body += ": " + reason
	}

	params := fmt.Sprintf(`{"proposalId": %d}`, proposalID)
	data := NotificationData{
		Type:       "proposal_cancelled",
		ID:         fmt.Sprintf("%d", proposalID),
		ProposalID: fmt.Sprintf("%d", proposalID),
		Screen:     "HostProposals",
		Params:     params,
	}
	return ns.SendNotificationToUser(hostID, title, body, data)
}

// SendLeaseDraftedNotificationToGuest notifies a guest that acceptance went
// through and their lease is being drafted.
func (ns *NotificationService) SendLeaseDraftedNotificationToGuest(proposalID, guestID uint, listingTitle string) error {
	title := "Lease In Progress"
	body := fmt.Sprintf("Your lease for %s is being drafted", listingTitle)

	params := fmt.Sprintf(`{"proposalId": %d}`, proposalID)
	data := NotificationData{
		Type:       "lease_drafted",
		ID:         fmt.Sprintf("%d", proposalID),
		ProposalID: fmt.Sprintf("%d", proposalID),
		Screen:     "GuestProposals",
		Params:     params,
	}
	return ns.SendNotificationToUser(guestID, title, body, data)
}
