package placement

import (
	"context"
	"net/http"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the credential bundle returned by a successful login or
// company registration.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Username    string `json:"username"`
}

// Login exchanges credentials for a bearer token. The token is not stored
// here; the session layer owns persistence.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{Username: username, Password: password}, &out)
	return out, err
}

// Me resolves the identity behind the current credential.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out)
	return out, err
}

type registerCompanyRequest struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Password    string `json:"password"`
}

// RegisterCompany creates a company account against a verified company id.
func (c *Client) RegisterCompany(ctx context.Context, companyID, companyName, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register/company", nil,
		registerCompanyRequest{CompanyID: companyID, CompanyName: companyName, Password: password}, &out)
	return out, err
}

// CompanyIDs returns the list of company ids accepted at registration.
func (c *Client) CompanyIDs(ctx context.Context) ([]string, error) {
	var out struct {
		CompanyIDs []string `json:"company_ids"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/company-ids", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.CompanyIDs, nil
}

// Logout tells the backend the session is over. Best effort; the client side
// of logout is clearing the stored credential.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}
