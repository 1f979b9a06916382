package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/vladislavdragonenkov/bakery/internal/dto"
)

const scenarioName = "scenario"

// apiClient вызывает HTTP API и учитывает каждый вызов в collector.
type apiClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	col     *collector
}

// runScenario создаёт клиента, товар и заказ; в зависимости от режима читает, перепривязывает и удаляет заказ.
func runScenario(ctx context.Context, api *apiClient, cfg config, index int) error {
	start := time.Now()
	ok := false
	defer func() {
		label := "ok"
		if !ok {
			label = "failed"
		}
		api.col.record(scenarioName, time.Since(start), label, ok)
	}()

	var client dto.ClientDto
	if err := api.call(ctx, "CreateClient", http.MethodPost, "/clients", dto.ClientDto{
		Name:    fmt.Sprintf("%s-%d", cfg.namePrefix, index),
		Surname: "Load",
		Phone:   fmt.Sprintf("+7900%07d", index%10000000),
	}, http.StatusCreated, &client); err != nil {
		return err
	}
	if client.ID == nil {
		return errors.New("create client returned null id")
	}

	if err := api.call(ctx, "CreateProduct", http.MethodPost, "/products", dto.ProductDto{
		Title: fmt.Sprintf("%s-bread-%d", cfg.namePrefix, index),
		Price: cfg.price,
	}, http.StatusCreated, nil); err != nil {
		return err
	}

	var order dto.OrderDto
	if err := api.call(ctx, "CreateOrder", http.MethodPost, "/orders", dto.OrderDto{
		ClientID: client.ID,
	}, http.StatusCreated, &order); err != nil {
		return err
	}
	if order.ID == nil {
		return errors.New("create order returned null id")
	}

	if cfg.mode == modeCreate {
		ok = true
		return nil
	}

	orderPath := fmt.Sprintf("/orders/%d", *order.ID)
	var fetched *dto.OrderDto
	if err := api.call(ctx, "GetOrder", http.MethodGet, orderPath, nil, http.StatusOK, &fetched); err != nil {
		return err
	}
	if fetched == nil {
		return fmt.Errorf("order %d not found after create", *order.ID)
	}

	if cfg.mode == modeFull {
		if err := api.call(ctx, "UpdateOrder", http.MethodPut, "/orders", dto.OrderDto{
			ID:       order.ID,
			ClientID: client.ID,
		}, http.StatusOK, nil); err != nil {
			return err
		}
		if err := api.call(ctx, "DeleteOrder", http.MethodDelete, orderPath, nil, http.StatusOK, nil); err != nil {
			return err
		}
	}

	ok = true
	return nil
}

func (a *apiClient) call(ctx context.Context, name, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", name, err)
		}
		reader = bytes.NewReader(raw)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", name, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		a.col.record(name, time.Since(start), statusLabel(0), false)
		return fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()

	payload, readErr := io.ReadAll(resp.Body)
	success := resp.StatusCode == want && readErr == nil
	a.col.record(name, time.Since(start), statusLabel(resp.StatusCode), success)

	if readErr != nil {
		return fmt.Errorf("%s: read body: %w", name, readErr)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%s: unexpected status %d: %s", name, resp.StatusCode, payload)
	}
	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("%s: decode body: %w", name, err)
		}
	}
	return nil
}
