package exchangeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/sessionguard/lib/myerrors"
)

const (
	grantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	scopePassthrough   = "passthrough"
	apiTypeAuth0       = "auth0"
)

type ExchangeRequest struct {
	ClientID  string `json:"client_id"`
	IDToken   string `json:"id_token"`
	Scope     string `json:"scope"`
	GrantType string `json:"grant_type"`
	APIType   string `json:"api_type"`
}

type ExchangeResponse struct {
	IDToken          string `json:"id_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

//go:generate mockgen -source=exchange_client.go -package exchangeclient -destination exchange_client_mock.go ExchangeClient
type ExchangeClient interface {
	Exchange(c context.Context, req ExchangeRequest) (ExchangeResponse, error)
}

type exchangeClient struct {
	baseURL string
}

func NewExchangeClient(baseURL string) *exchangeClient {
	return &exchangeClient{
		baseURL: baseURL,
	}
}

func (ec exchangeClient) Exchange(c context.Context, req ExchangeRequest) (ExchangeResponse, error) {
	req.Scope = scopePassthrough
	req.GrantType = grantTypeJWTBearer
	req.APIType = apiTypeAuth0

	requestBody, err := json.Marshal(req)
	if err != nil {
		return ExchangeResponse{}, myerrors.NewInternalError(fmt.Errorf("error marshalling delegation request: %s", err))
	}

	delegationURL := ec.baseURL + "/delegation"

	httpClient := newHTTPClient()
	httpRespCode, respBody, err := httpClient.Send(c, http.MethodPost, delegationURL, requestBody)
	if err != nil {
		return ExchangeResponse{}, myerrors.NewBadGatewayError(fmt.Errorf("error calling delegation endpoint: %s", err))
	}

	resp := ExchangeResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return ExchangeResponse{}, myerrors.NewBadGatewayError(fmt.Errorf("error parsing delegation response: %s", err))
	}

	if httpRespCode != 200 || resp.Error != "" {
		return resp, myerrors.NewAuthenticationError(fmt.Errorf("delegation rejected (%d): %s: %s",
			httpRespCode, resp.Error, resp.ErrorDescription))
	}

	return resp, nil
}
