package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client fetches products from the remote storefront API over
// GraphQL. Calls go through a circuit breaker so a flapping catalog
// cannot tie up every request with timeouts.
type Client struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name: "catalog",
		}),
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

func (c *Client) GetProducts(ctx context.Context, query ProductQuery) ([]Product, error) {
	variables := map[string]interface{}{}
	if query.Limit > 0 {
		variables["limit"] = query.Limit
	}
	if query.Offset > 0 {
		variables["offset"] = query.Offset
	}

	var resp productsResponseDTO
	if err := c.do(ctx, getProductsQuery, variables, &resp); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(resp.Products))
	for _, dto := range resp.Products {
		if err := dto.validate(); err != nil {
			return nil, err
		}
		products = append(products, dto.toDomain())
	}

	log.Printf("products loaded: count=%d", len(products))
	return products, nil
}

func (c *Client) GetProductByID(ctx context.Context, id int64) (Product, error) {
	variables := map[string]interface{}{"id": id}

	var resp productResponseDTO
	if err := c.do(ctx, getProductByIDQuery, variables, &resp); err != nil {
		return Product{}, err
	}

	if resp.Product == nil {
		return Product{}, ErrProductNotFound
	}
	if err := resp.Product.validate(); err != nil {
		return Product{}, err
	}

	return resp.Product.toDomain(), nil
}

// do posts the query and decodes the data payload into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	raw, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}

		var envelope struct {
			Data   json.RawMessage `json:"data"`
			Errors []graphqlError  `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		if len(envelope.Errors) > 0 {
			return nil, fmt.Errorf("catalog query failed: %s", envelope.Errors[0].Message)
		}
		return envelope.Data, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
