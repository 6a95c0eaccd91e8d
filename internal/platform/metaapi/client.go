// Package metaapi is a REST client for the MetaAPI cloud platform, which
// proxies MT4/MT5 broker accounts.
//
// Two MetaAPI services are involved: the provisioning API registers and
// deploys accounts, the client API reads state and executes trades. The
// original SDK hides the deploy/connect wait loop; here it is an explicit
// poll against the provisioning API.
package metaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	accountsentity "kanairy_backend/internal/feature/accounts/domain/entity"
	tradingentity "kanairy_backend/internal/feature/trading/domain/entity"
	"kanairy_backend/internal/platform/metaapi/dto"
	"kanairy_backend/internal/shared/ratelimiter"
)

const (
	defaultProvisioningURL = "https://mt-provisioning-api-v1.agiliumtrade.agiliumtrade.ai"
	defaultClientURL       = "https://mt-client-api-v1.agiliumtrade.agiliumtrade.ai"
	defaultRegion          = "new-york"

	// tradeRetcodeDone is the MT5 return code for a fully executed order.
	tradeRetcodeDone = "TRADE_RETCODE_DONE"

	applicationName = "KanAIRY"
	magicNumber     = 123456

	// requestsPerMinute caps outbound calls to stay under the MetaAPI
	// account quota.
	requestsPerMinute = 120
)

// ErrNotConnected is returned when an operation references a broker login
// that has not gone through ConnectAccount in this process.
var ErrNotConnected = errors.New("metaapi: account not connected")

// Config holds MetaAPI connection settings.
type Config struct {
	Token           string
	ProvisioningURL string
	ClientURL       string
	Region          string
	PollInterval    time.Duration // deploy/connect poll cadence
	DeployTimeout   time.Duration // upper bound on the deploy wait
}

// LoadConfig builds a Config with production defaults for the given token.
func LoadConfig(token string) Config {
	return Config{
		Token:           token,
		ProvisioningURL: defaultProvisioningURL,
		ClientURL:       defaultClientURL,
		Region:          defaultRegion,
		PollInterval:    2 * time.Second,
		DeployTimeout:   5 * time.Minute,
	}
}

// Client talks to MetaAPI on behalf of all connected broker accounts.
// It caches the login to MetaAPI account ID mapping so repeat operations
// skip the provisioning lookup.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface

	mu         sync.Mutex
	accountIDs map[string]string // broker login -> MetaAPI account id
}

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{
		cfg:        cfg,
		client:     client,
		limiter:    ratelimiter.NewRateLimiter(requestsPerMinute, time.Minute),
		accountIDs: make(map[string]string),
	}
}

// ConnectAccount registers (or finds) the broker account with MetaAPI,
// deploys it, waits until it is connected to the broker, and returns the
// live account information.
func (c *Client) ConnectAccount(ctx context.Context, login, password, server, platform string) (accountsentity.AccountInfo, error) {
	account, err := c.findAccount(ctx, login, server)
	if err != nil {
		return accountsentity.AccountInfo{}, err
	}

	var accountID string
	if account != nil {
		accountID = account.ID
		slog.Info("found existing MetaAPI account", "login", login, "account_id", accountID)
	} else {
		accountID, err = c.createAccount(ctx, login, password, server, platform)
		if err != nil {
			return accountsentity.AccountInfo{}, err
		}
		slog.Info("created MetaAPI account", "login", login, "account_id", accountID)
	}

	if err := c.deploy(ctx, accountID); err != nil {
		return accountsentity.AccountInfo{}, err
	}
	if err := c.waitConnected(ctx, accountID); err != nil {
		return accountsentity.AccountInfo{}, err
	}

	c.mu.Lock()
	c.accountIDs[login] = accountID
	c.mu.Unlock()

	return c.accountInformation(ctx, accountID)
}

// AccountInformation returns live account state for a previously connected
// login.
func (c *Client) AccountInformation(ctx context.Context, login string) (accountsentity.AccountInfo, error) {
	accountID, err := c.lookup(ctx, login)
	if err != nil {
		return accountsentity.AccountInfo{}, err
	}
	return c.accountInformation(ctx, accountID)
}

// PlaceOrder submits a market order for a previously connected login.
func (c *Client) PlaceOrder(ctx context.Context, login string, order tradingentity.OrderRequest) (tradingentity.BrokerExecution, error) {
	accountID, err := c.lookup(ctx, login)
	if err != nil {
		return tradingentity.BrokerExecution{}, err
	}

	actionType := "ORDER_TYPE_BUY"
	if order.Side == tradingentity.SideSell {
		actionType = "ORDER_TYPE_SELL"
	}

	res, err := c.trade(ctx, accountID, dto.TradeRequest{
		ActionType: actionType,
		Symbol:     order.Symbol,
		Volume:     order.Volume,
		StopLoss:   order.StopLoss,
		TakeProfit: order.TakeProfit,
	})
	if err != nil {
		return tradingentity.BrokerExecution{}, err
	}

	openPrice := res.OpenPrice
	if openPrice == 0 {
		openPrice = res.Price
	}
	return tradingentity.BrokerExecution{
		OrderID:    res.OrderID,
		PositionID: res.PositionID,
		OpenPrice:  openPrice,
	}, nil
}

// ClosePosition closes a broker position by its broker-side identifier.
func (c *Client) ClosePosition(ctx context.Context, login, brokerPositionID string) (tradingentity.BrokerClose, error) {
	accountID, err := c.lookup(ctx, login)
	if err != nil {
		return tradingentity.BrokerClose{}, err
	}

	res, err := c.trade(ctx, accountID, dto.TradeRequest{
		ActionType: "POSITION_CLOSE_ID",
		PositionID: brokerPositionID,
	})
	if err != nil {
		return tradingentity.BrokerClose{}, err
	}

	return tradingentity.BrokerClose{
		ClosePrice: res.ClosePrice,
		Profit:     res.Profit,
	}, nil
}

// Positions lists the live positions of a previously connected login.
func (c *Client) Positions(ctx context.Context, login string) ([]tradingentity.BrokerPosition, error) {
	accountID, err := c.lookup(ctx, login)
	if err != nil {
		return nil, err
	}

	var body []dto.Position
	path := fmt.Sprintf("/users/current/accounts/%s/positions", accountID)
	if err := c.do(ctx, c.cfg.ClientURL, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}

	out := make([]tradingentity.BrokerPosition, 0, len(body))
	for _, p := range body {
		out = append(out, tradingentity.BrokerPosition{
			ID:           p.ID,
			Symbol:       p.Symbol,
			CurrentPrice: p.CurrentPrice,
			Profit:       p.Profit,
		})
	}
	return out, nil
}

// lookup resolves a broker login to a MetaAPI account ID, falling back to a
// provisioning query for logins connected by a previous process.
func (c *Client) lookup(ctx context.Context, login string) (string, error) {
	c.mu.Lock()
	id, ok := c.accountIDs[login]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	account, err := c.findAccount(ctx, login, "")
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrNotConnected
	}

	c.mu.Lock()
	c.accountIDs[login] = account.ID
	c.mu.Unlock()
	return account.ID, nil
}

// findAccount returns the registered account matching login (and server,
// when non-empty), or nil when none exists.
func (c *Client) findAccount(ctx context.Context, login, server string) (*dto.Account, error) {
	var accounts []dto.Account
	if err := c.do(ctx, c.cfg.ProvisioningURL, http.MethodGet, "/users/current/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Login != login {
			continue
		}
		if server != "" && accounts[i].Server != server {
			continue
		}
		return &accounts[i], nil
	}
	return nil, nil
}

func (c *Client) createAccount(ctx context.Context, login, password, server, platform string) (string, error) {
	req := dto.CreateAccountRequest{
		Name:        fmt.Sprintf("%s_%s", applicationName, login),
		Type:        "cloud",
		Login:       login,
		Password:    password,
		Server:      server,
		Platform:    platform,
		Application: applicationName,
		Magic:       magicNumber,
		Region:      c.cfg.Region,
	}
	var res dto.CreateAccountResponse
	if err := c.do(ctx, c.cfg.ProvisioningURL, http.MethodPost, "/users/current/accounts", req, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

func (c *Client) deploy(ctx context.Context, accountID string) error {
	path := fmt.Sprintf("/users/current/accounts/%s/deploy", accountID)
	return c.do(ctx, c.cfg.ProvisioningURL, http.MethodPost, path, nil, nil)
}

// waitConnected polls the provisioning API until the account is deployed and
// connected to the broker, or the deadline passes.
func (c *Client) waitConnected(ctx context.Context, accountID string) error {
	deadline := time.Now().Add(c.cfg.DeployTimeout)
	path := fmt.Sprintf("/users/current/accounts/%s", accountID)

	for {
		var account dto.Account
		if err := c.do(ctx, c.cfg.ProvisioningURL, http.MethodGet, path, nil, &account); err != nil {
			return err
		}
		if account.State == "DEPLOYED" && account.ConnectionStatus == "CONNECTED" {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("metaapi: account %s not connected after %s (state %s, connection %s)",
				accountID, c.cfg.DeployTimeout, account.State, account.ConnectionStatus)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}
	}
}

func (c *Client) accountInformation(ctx context.Context, accountID string) (accountsentity.AccountInfo, error) {
	var body dto.AccountInformation
	path := fmt.Sprintf("/users/current/accounts/%s/account-information", accountID)
	if err := c.do(ctx, c.cfg.ClientURL, http.MethodGet, path, nil, &body); err != nil {
		return accountsentity.AccountInfo{}, err
	}

	currency := body.Currency
	if currency == "" {
		currency = "USD"
	}
	leverage := body.Leverage
	if leverage == 0 {
		leverage = 100
	}
	return accountsentity.AccountInfo{
		Balance:    body.Balance,
		Equity:     body.Equity,
		Margin:     body.Margin,
		FreeMargin: body.FreeMargin,
		Currency:   currency,
		Leverage:   leverage,
		Name:       body.Name,
	}, nil
}

// trade posts to the client API trade endpoint and checks the MT5 return
// code.
func (c *Client) trade(ctx context.Context, accountID string, req dto.TradeRequest) (dto.TradeResponse, error) {
	var res dto.TradeResponse
	path := fmt.Sprintf("/users/current/accounts/%s/trade", accountID)
	if err := c.do(ctx, c.cfg.ClientURL, http.MethodPost, path, req, &res); err != nil {
		return dto.TradeResponse{}, err
	}
	if res.StringCode != "" && res.StringCode != tradeRetcodeDone {
		return dto.TradeResponse{}, fmt.Errorf("metaapi: trade rejected: %s (%s)", res.Message, res.StringCode)
	}
	return res, nil
}

// do performs a request against one of the MetaAPI services.
func (c *Client) do(ctx context.Context, base, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	if c.limiter != nil {
		c.limiter.WaitIfNeeded()
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("auth-token", c.cfg.Token)

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("metaapi http %d: %s", res.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("metaapi http %d", res.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
