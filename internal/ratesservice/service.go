// Package ratesservice fetches currency conversion rates from an external
// provider and caches them in storage.
package ratesservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cashsplit/cashsplit/internal/domain"
	"github.com/cashsplit/cashsplit/pkg/currencypkg"
	"github.com/cashsplit/cashsplit/pkg/errorspkg"
)

// Repo provides data access layer interface needed by rates service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ratesservice
type Repo interface {
	Upsert(ctx context.Context, rate domain.Rate) error
	Table(ctx context.Context) (domain.RateTable, error)
}

// Service facilitates rates service layer logic.
type Service struct {
	repo    Repo
	client  *http.Client
	baseURL string
}

// New returns rates service struct to manage rates business logic.
func New(rr Repo, baseURL string) *Service {
	return &Service{
		repo:    rr,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Refresh fetches the latest quotes for the base currency against the given
// symbols and stores both directions of every pair. It returns the fetched
// forward rates keyed by symbol.
func (s *Service) Refresh(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	l := zerolog.Ctx(ctx)

	q := url.Values{}
	q.Set("base", base)
	q.Set("symbols", strings.Join(symbols, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/latest?"+q.Encode(), nil)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	resp, err := s.client.Do(req)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.Error().Err(fmt.Errorf("rates provider returned %s", resp.Status)).Send()
		return nil, errorspkg.ErrInternal
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	fetchedAt := time.Now().UTC()

	for sym, rate := range body.Rates {
		if rate <= 0 || sym == base {
			continue
		}

		err := s.repo.Upsert(ctx, domain.Rate{From: base, To: sym, Rate: rate, FetchedAt: fetchedAt})
		if err != nil {
			return nil, err
		}

		err = s.repo.Upsert(ctx, domain.Rate{From: sym, To: base, Rate: 1 / rate, FetchedAt: fetchedAt})
		if err != nil {
			return nil, err
		}
	}

	return body.Rates, nil
}

// RefreshAll refreshes every supported currency against all the others,
// fetching the bases concurrently.
func (s *Service) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, base := range currencypkg.SupportedCurrencies {
		base := base

		symbols := make([]string, 0, len(currencypkg.SupportedCurrencies)-1)
		for _, sym := range currencypkg.SupportedCurrencies {
			if sym != base {
				symbols = append(symbols, sym)
			}
		}

		g.Go(func() error {
			_, err := s.Refresh(ctx, base, symbols)
			return err
		})
	}

	return g.Wait()
}

// Table returns every stored conversion pair.
func (s *Service) Table(ctx context.Context) (domain.RateTable, error) {
	return s.repo.Table(ctx)
}
