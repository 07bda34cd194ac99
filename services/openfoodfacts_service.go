package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Marino59/dieta/utils"
)

// OpenFoodFactsService resolves EAN barcodes against the public
// OpenFoodFacts database. Nutriments come back per 100g, which matches the
// estimate basis directly.
type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

func NewOpenFoodFactsService() *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL: "https://world.openfoodfacts.org",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type offResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Nutriments  struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
			Proteins100g   float64 `json:"proteins_100g"`
			Carbs100g      float64 `json:"carbohydrates_100g"`
			Fat100g        float64 `json:"fat_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// LookupBarcode fetches the product behind a barcode and maps it onto the
// same per-100g estimate the AI paths produce, with the default 100g
// portion since the package size is unknown.
func (s *OpenFoodFactsService) LookupBarcode(ctx context.Context, barcode string) (*MealEstimate, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, fmt.Errorf("empty barcode")
	}

	u := fmt.Sprintf("%s/api/v2/product/%s.json", s.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create openfoodfacts request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call openfoodfacts API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prodotto non trovato")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read openfoodfacts response: %w", err)
	}

	var off offResponse
	if err := json.Unmarshal(body, &off); err != nil {
		return nil, fmt.Errorf("failed to parse openfoodfacts JSON: %w", err)
	}
	if off.Status != 1 || off.Product == nil {
		return nil, fmt.Errorf("prodotto non trovato")
	}

	p := off.Product
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = "Sconosciuto"
	}
	n := p.Nutriments
	return &MealEstimate{
		Name:           name,
		QuantityGrams:  100,
		CaloriesPer100: math.Round(clampNonNegative(n.EnergyKcal100g)),
		ProteinPer100:  math.Round(clampNonNegative(n.Proteins100g)),
		CarbsPer100:    math.Round(clampNonNegative(n.Carbs100g)),
		FatPer100:      math.Round(clampNonNegative(n.Fat100g)),
		Note:           strings.TrimSpace(fmt.Sprintf("Prodotto scansionato: %s %s. Valori per 100g.", p.Brands, name)),
		Hint:           utils.MealTimeHint{},
	}, nil
}
