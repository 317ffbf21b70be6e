package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wholesale-be/internal/config"
	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

const odooPageSize = 500

// OdooClient pulls the product catalog over Odoo's JSON-RPC 2.0 endpoint.
type OdooClient struct {
	url      string
	db       string
	user     string
	password string
	http     *http.Client
}

func NewOdooClient(cfg *config.Config) *OdooClient {
	return &OdooClient{
		url:      cfg.OdooURL,
		db:       cfg.OdooDB,
		user:     cfg.OdooUser,
		password: cfg.OdooPassword,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int       `json:"id"`
}

type rpcParams struct {
	Service string        `json:"service"`
	Method  string        `json:"method"`
	Args    []interface{} `json:"args"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

func (e *rpcError) Error() string {
	if e.Data.Message != "" {
		return e.Data.Message
	}
	return e.Message
}

// odooProduct is the subset of product.product fields the catalog needs.
// Odoo encodes absent many2one fields as boolean false, hence the raw
// handling in categName.
type odooProduct struct {
	DefaultCode     string          `json:"default_code"`
	Name            string          `json:"name"`
	DescriptionSale string          `json:"description_sale"`
	QtyAvailable    float64         `json:"qty_available"`
	CategID         json.RawMessage `json:"categ_id"`
	ListPrice       float64         `json:"list_price"`
	Barcode         string          `json:"barcode"`
}

// FetchAll pages through product.product until Odoo returns a short page.
func (c *OdooClient) FetchAll(ctx context.Context) ([]Record, error) {
	if c.url == "" {
		return nil, errors.New("odoo url is not configured")
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "importer"),
		zap.String("method", "FetchAll"),
	)

	uid, err := c.login(ctx)
	if err != nil {
		return nil, fmt.Errorf("odoo login: %w", err)
	}

	var records []Record
	for offset := 0; ; offset += odooPageSize {
		page, err := c.searchRead(ctx, uid, offset)
		if err != nil {
			return nil, fmt.Errorf("odoo search_read offset %d: %w", offset, err)
		}

		for _, p := range page {
			if p.DefaultCode == "" {
				continue
			}
			rec := Record{
				Item:        p.DefaultCode,
				Description: p.Name,
				Stock:       int(p.QtyAvailable),
				Category:    categName(p.CategID),
				RRP:         p.ListPrice,
				EAN:         p.Barcode,
			}
			if p.DescriptionSale != "" {
				rec.PackDescription = p.DescriptionSale
			}
			rec.Prices[0] = p.ListPrice
			records = append(records, rec)
		}

		if len(page) < odooPageSize {
			break
		}
	}

	log.Info("odoo catalog fetched", zap.Int("products", len(records)))
	return records, nil
}

func (c *OdooClient) login(ctx context.Context) (int, error) {
	var uid int
	err := c.call(ctx, "common", "login", []interface{}{c.db, c.user, c.password}, &uid)
	if err != nil {
		return 0, err
	}
	if uid == 0 {
		return 0, errors.New("invalid credentials")
	}
	return uid, nil
}

func (c *OdooClient) searchRead(ctx context.Context, uid, offset int) ([]odooProduct, error) {
	args := []interface{}{
		c.db, uid, c.password,
		"product.product", "search_read",
		[]interface{}{[]interface{}{[]interface{}{"sale_ok", "=", true}}},
		map[string]interface{}{
			"fields": []string{"default_code", "name", "description_sale",
				"qty_available", "categ_id", "list_price", "barcode"},
			"limit":  odooPageSize,
			"offset": offset,
			"order":  "default_code asc",
		},
	}

	var page []odooProduct
	if err := c.call(ctx, "object", "execute_kw", args, &page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *OdooClient) call(ctx context.Context, service, method string, args []interface{}, result interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      1,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/jsonrpc", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	return json.Unmarshal(rpcResp.Result, result)
}

// categName extracts the display name from Odoo's [id, "name"] many2one
// encoding. Returns "" for the boolean false Odoo sends when unset.
func categName(raw json.RawMessage) string {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) < 2 {
		return ""
	}
	var name string
	if err := json.Unmarshal(pair[1], &name); err != nil {
		return ""
	}
	return name
}
