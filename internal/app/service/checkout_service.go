package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"contest_hub/internal/common"
)

// SessionRecorder keeps track of checkout sessions handed out by the payment
// provider so a later confirmation can be reconciled against the session that
// initiated it.
type SessionRecorder interface {
	Save(ctx context.Context, sessionID string, session interface{}, ttl time.Duration) error
}

type CheckoutConfig struct {
	ProviderURL    string
	ProviderSecret string
	SiteDomain     string
	SessionTTL     time.Duration
}

type CheckoutService struct {
	cfg        CheckoutConfig
	httpClient *http.Client
	sessions   SessionRecorder
}

func NewCheckoutService(cfg CheckoutConfig, sessions SessionRecorder) *CheckoutService {
	return &CheckoutService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sessions:   sessions,
	}
}

type CreateSessionRequest struct {
	ContestID   string `json:"contest_id"`
	ContestName string `json:"contest_name"`
	ContestSlug string `json:"contest_slug"`
	Amount      int64  `json:"amount"` // smallest currency unit
	Email       string `json:"email"`
}

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	ContestID string `json:"contest_id"`
	Email     string `json:"email"`
	Amount    int64  `json:"amount"`
	URL       string `json:"url"`
}

type providerSessionRequest struct {
	Amount        int64  `json:"amount"`
	ProductName   string `json:"product_name"`
	ProductRef    string `json:"product_ref"`
	CustomerEmail string `json:"customer_email"`
	SuccessURL    string `json:"success_url"`
	CancelURL     string `json:"cancel_url"`
}

type providerSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSession is a thin pass-through to the external payment provider: it
// validates the amount, forwards product and customer metadata, and returns
// the provider's redirect URL.
func (s *CheckoutService) CreateSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be a positive integer: %w", common.ErrValidation)
	}

	payload := providerSessionRequest{
		Amount:        req.Amount,
		ProductName:   req.ContestName,
		ProductRef:    req.ContestSlug,
		CustomerEmail: req.Email,
		SuccessURL:    s.cfg.SiteDomain + "/payment/success",
		CancelURL:     s.cfg.SiteDomain + "/payment/cancel",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ProviderURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build session request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.ProviderSecret)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment provider unreachable: %w", common.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("payment provider returned status %d: %w", resp.StatusCode, common.ErrUpstream)
	}

	var providerResp providerSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&providerResp); err != nil {
		return nil, fmt.Errorf("malformed payment provider response: %w", common.ErrUpstream)
	}

	session := CheckoutSession{
		SessionID: providerResp.ID,
		ContestID: req.ContestID,
		Email:     req.Email,
		Amount:    req.Amount,
		URL:       providerResp.URL,
	}

	// Session tracking is best effort: losing the record only costs later
	// reconciliation, never the checkout itself.
	if err := s.sessions.Save(ctx, session.SessionID, session, s.cfg.SessionTTL); err != nil {
		log.Printf("WARN: failed to record checkout session %s: %v", session.SessionID, err)
	}

	return &session, nil
}
