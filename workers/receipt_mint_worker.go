package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bounty-board-service/logger"
	"bounty-board-service/models"

	"gorm.io/gorm"
)

// ReceiptMintClient drives pending receipt rows to minted by calling the
// token issuance service. The token id is deterministic per bounty, so the
// issuance side can treat a retried mint as a duplicate and succeed.
type ReceiptMintClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewReceiptMintClient(db *gorm.DB, baseURL, token string) *ReceiptMintClient {
	return &ReceiptMintClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type mintRequest struct {
	TokenID  string `json:"token_id"`
	Owner    string `json:"owner"`
	BountyID uint64 `json:"bounty_id"`
	ClaimID  uint64 `json:"claim_id"`
}

// Mint posts one receipt to the issuance service.
func (c *ReceiptMintClient) Mint(ctx context.Context, receipt models.ReceiptToken) error {
	payload, err := json.Marshal(mintRequest{
		TokenID:  receipt.TokenID,
		Owner:    receipt.Winner,
		BountyID: receipt.BountyID,
		ClaimID:  receipt.ClaimID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mint request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/receipts/mint", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call issuance service: %w", err)
	}
	defer resp.Body.Close()

	// 409 means the token already exists: a previous attempt landed but the
	// status update was lost. Treat as success.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated &&
		resp.StatusCode != http.StatusConflict {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("issuance service returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// PollReceipts scans for pending receipts on a fixed interval and mints them.
func PollReceipts(ctx context.Context, client *ReceiptMintClient, pollInterval time.Duration) {
	logger.Info("Starting receipt mint polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Receipt mint polling stopped.")
			return
		case <-ticker.C:
			var pending []models.ReceiptToken
			err := client.DB.Where("status = ?", models.ReceiptStatusPending).
				Order("created_at asc").
				Limit(50).
				Find(&pending).Error
			if err != nil {
				logger.Error("Failed to load pending receipts: %v", err)
				continue
			}
			if len(pending) == 0 {
				continue
			}

			logger.Info("Minting %d pending receipt(s)...", len(pending))
			for _, receipt := range pending {
				if err := client.Mint(ctx, receipt); err != nil {
					logger.Error("Failed to mint receipt %s: %v", receipt.TokenID, err)
					client.DB.Model(&receipt).Updates(map[string]interface{}{
						"attempts":   gorm.Expr("attempts + 1"),
						"last_error": err.Error(),
					})
					continue
				}

				now := time.Now().UTC()
				if err := client.DB.Model(&receipt).Updates(map[string]interface{}{
					"status":     models.ReceiptStatusMinted,
					"minted_at":  &now,
					"last_error": "",
				}).Error; err != nil {
					logger.Error("Failed to mark receipt %s minted: %v", receipt.TokenID, err)
					continue
				}
				logger.Info("Minted receipt %s for bounty %d (owner %s)",
					receipt.TokenID, receipt.BountyID, receipt.Winner)
			}
		}
	}
}
