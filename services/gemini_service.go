package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Marino59/dieta/models"
	"github.com/Marino59/dieta/utils"
)

// GeminiService talks to the Gemini REST API for everything the app asks an
// AI for: nutrition estimates from photos and free text, free-text goal
// interpretation and the daily coach advice. Its output is untrusted data:
// every numeric field is validated and defaulted at this boundary before it
// reaches the core.
type GeminiService struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		apiKey: os.Getenv("GEMINI_API_KEY"),
		model:  "gemini-1.5-flash",
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// MealEstimate is a sanitized AI/database nutrition estimate, per 100g, plus
// the optional relative date/time hint extracted from free text.
type MealEstimate struct {
	Name           string             `json:"name"`
	QuantityGrams  int                `json:"quantity_grams"`
	CaloriesPer100 float64            `json:"calories_per_100g"`
	ProteinPer100  float64            `json:"protein_per_100g"`
	CarbsPer100    float64            `json:"carbs_per_100g"`
	FatPer100      float64            `json:"fat_per_100g"`
	Note           string             `json:"note"`
	Hint           utils.MealTimeHint `json:"hint"`
}

func (e *MealEstimate) Basis() utils.NutritionBasis {
	return utils.NutritionBasis{
		Calories: e.CaloriesPer100,
		Protein:  e.ProteinPer100,
		Carbs:    e.CarbsPer100,
		Fat:      e.FatPer100,
	}
}

// GoalTargets is the AI interpretation of a free-text fitness goal.
type GoalTargets struct {
	TargetCalories int    `json:"targetCalories"`
	Protein        int    `json:"protein"`
	Carbs          int    `json:"carbs"`
	Fat            int    `json:"fat"`
	Explanation    string `json:"explanation"`
}

// CoachAdvice is the once-per-day motivational tip plus a recipe suggestion.
type CoachAdvice struct {
	Tip    string `json:"tip"`
	Recipe struct {
		Name    string `json:"name"`
		Content string `json:"content"`
		Why     string `json:"why"`
	} `json:"recipe"`
}

// SnackAdvice answers the "ho fame" button.
type SnackAdvice struct {
	Message string `json:"message"`
	Snack   string `json:"snack"`
	Reason  string `json:"reason"`
}

const estimateSchema = `Rispondi ESCLUSIVAMENTE con un oggetto JSON:
{
  "name": "Nome del piatto",
  "quantity": quantità stimata in grammi (numero intero),
  "calories": calorie per 100g (numero intero),
  "protein": proteine per 100g in grammi (numero intero),
  "carbs": carboidrati per 100g in grammi (numero intero),
  "fat": grassi per 100g in grammi (numero intero),
  "analysis": "Breve commento nutrizionale (max 2 frasi, in italiano)"`

// EstimateFromImage asks the model to identify the dish in a photo and
// estimate its per-100g nutrition and portion size.
func (s *GeminiService) EstimateFromImage(ctx context.Context, imageB64, mimeType string) (*MealEstimate, error) {
	prompt := `Analizza questa immagine di cibo. Identifica il piatto principale e stima i valori nutrizionali per 100g e la porzione visibile.
` + estimateSchema + `
}`

	parts := []geminiPart{
		{Text: prompt},
		{InlineData: &geminiBlob{MimeType: mimeType, Data: imageB64}},
	}
	text, err := s.generate(ctx, parts)
	if err != nil {
		return nil, err
	}
	return decodeEstimate(text)
}

// EstimateFromText handles free-text descriptions like "ieri a pranzo 150g di
// pasta". Besides the nutrition estimate the model may extract a relative
// date and time, returned as a hint for the timestamp resolver; the
// reference date anchors words like "ieri".
func (s *GeminiService) EstimateFromText(ctx context.Context, description string, referenceDate time.Time) (*MealEstimate, error) {
	prompt := fmt.Sprintf(`Analizza questa descrizione di cibo: %q
Data di riferimento (oggi): %s

Compiti:
1. Estrai i valori nutrizionali stimati per 100g e la quantità in grammi.
2. Se l'utente specifica un orario (es. "ore 7", "a pranzo") o un giorno relativo (es. "ieri", "stamattina"), calcola data e ora precise.
%s,
  "time": "HH:MM" (opzionale, o null),
  "date": "YYYY-MM-DD" (calcolata dalla descrizione e dalla data di riferimento)
}`, description, referenceDate.Format("Monday, 2 January 2006"), estimateSchema)

	text, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return nil, err
	}
	return decodeEstimate(text)
}

// TargetsFromGoal interprets a free-text fitness goal against the current
// profile. The numbers come back as untrusted data; an unusable calorie
// target is a collaborator failure, not something to default around.
func (s *GeminiService) TargetsFromGoal(ctx context.Context, goal string, p *models.Profile) (*GoalTargets, error) {
	prompt := fmt.Sprintf(`Analizza l'obiettivo di fitness dell'utente: %q
Dati attuali: peso %.1f kg, altezza %.0f cm, età %d, sesso %s, livello attività %.3f.

Compiti:
1. Calcola BMR (Mifflin-St Jeor) e TDEE.
2. Determina il deficit o surplus calorico ideale per raggiungere l'obiettivo in modo sano (max 0.5-1kg a settimana).
3. Calcola i macro suggeriti (Proteine: 1.8-2.2g/kg, Grassi: 20-30%% kcal, Carbo: rimanenti).

Rispondi ESCLUSIVAMENTE con un oggetto JSON:
{
  "targetCalories": intero,
  "protein": intero (grammi),
  "carbs": intero (grammi),
  "fat": intero (grammi),
  "explanation": "Breve spiegazione tecnica del calcolo (max 3 frasi, in italiano)"
}`, goal, p.WeightKg, p.HeightCm, p.Age, p.Sex, p.ActivityFactor)

	text, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return nil, err
	}

	var out GoalTargets
	if err := json.Unmarshal([]byte(extractJSON(text)), &out); err != nil {
		return nil, fmt.Errorf("unusable goal interpretation: %w", err)
	}
	if out.TargetCalories <= 0 {
		return nil, fmt.Errorf("unusable goal interpretation: target calories %d", out.TargetCalories)
	}
	if out.Protein < 0 {
		out.Protein = 0
	}
	if out.Carbs < 0 {
		out.Carbs = 0
	}
	if out.Fat < 0 {
		out.Fat = 0
	}
	return &out, nil
}

// DailyCoachAdvice never fails: quota errors and malformed output fall back
// to a fixed encouragement so the dashboard card always renders.
func (s *GeminiService) DailyCoachAdvice(ctx context.Context, p *models.Profile, caloriesConsumed int) *CoachAdvice {
	prompt := fmt.Sprintf(`Sei un coach nutrizionale amichevole e incoraggiante.
Obiettivo: %q. Calorie obiettivo: %d. Consumate oggi: %d. Rimanenti: %d.

Compiti:
1. Fornisci un breve consiglio motivazionale (max 2 frasi).
2. Proponi una ricetta salutare e veloce adatta alle calorie rimanenti.

Rispondi ESCLUSIVAMENTE con un oggetto JSON:
{
  "tip": "Testo del consiglio motivazionale",
  "recipe": {"name": "Titolo ricetta", "content": "Ingredienti e preparazione (max 3 frasi)", "why": "Perché è adatta a te oggi"}
}`, p.GoalDescription, p.TargetCalories, caloriesConsumed, p.TargetCalories-caloriesConsumed)

	fallback := &CoachAdvice{Tip: "Ogni pasto sano è un mattone per la tua nuova versione. Continua così!"}
	fallback.Recipe.Name = "Spuntino Equilibrio"
	fallback.Recipe.Content = "Uno yogurt greco con una manciata di noci e un pizzico di cannella. Veloce e nutriente!"
	fallback.Recipe.Why = "Perfetto per darti energia costante senza appesantirti."

	text, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return fallback
	}
	var out CoachAdvice
	if err := json.Unmarshal([]byte(extractJSON(text)), &out); err != nil || out.Tip == "" {
		return fallback
	}
	return &out
}

// HungryAdvice suggests a snack fitting the remaining calories. Fail-soft
// like DailyCoachAdvice.
func (s *GeminiService) HungryAdvice(ctx context.Context, p *models.Profile, caloriesConsumed int) *SnackAdvice {
	now := time.Now()
	prompt := fmt.Sprintf(`L'utente ha cliccato sul tasto "HO FAME" alle %s.
Obiettivo: %q. Calorie obiettivo: %d. Consumate: %d. Rimanenti: %d.

Compiti:
1. Valuta se è un orario appropriato per uno spuntino.
2. Suggerisci uno spuntino specifico, veloce e salutare in base alle calorie rimanenti.
3. Se le calorie sono già superate, suggerisci qualcosa di leggerissimo o un'attività alternativa.

Rispondi ESCLUSIVAMENTE con un oggetto JSON:
{
  "message": "Un commento empatico e breve (max 15 parole)",
  "snack": "Nome dello spuntino consigliato",
  "reason": "Perché questo spuntino è perfetto ora (max 1 frase)"
}`, now.Format("15:04"), p.GoalDescription, p.TargetCalories, caloriesConsumed, p.TargetCalories-caloriesConsumed)

	fallback := &SnackAdvice{
		Message: "Sentire un po' di fame è normale. Bevi un bicchiere d'acqua!",
		Snack:   "Una mela o poche mandorle",
		Reason:  "Uno spuntino leggero e croccante per placare l'appetito.",
	}

	text, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return fallback
	}
	var out SnackAdvice
	if err := json.Unmarshal([]byte(extractJSON(text)), &out); err != nil || out.Snack == "" {
		return fallback
	}
	return &out
}

// RegenerateNote refreshes the free-text comment after a serving-size edit.
// Any failure returns a fixed fallback instead of an error.
func (s *GeminiService) RegenerateNote(ctx context.Context, mealName string, grams int) string {
	prompt := fmt.Sprintf(`L'utente sta modificando la quantità di un pasto registrato.
Piatto: %q. Nuova quantità: %dg.

Fornisci SOLO un nuovo commento nutrizionale aggiornato per questa quantità.
Se la quantità è eccessiva avvisa l'utente; se è scarsa, fallo notare.
Sii conciso (max 2 frasi) e parla in italiano. Non restituire JSON, solo il testo.`, mealName, grams)

	text, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return "Impossibile aggiornare l'analisi al momento."
	}
	return strings.TrimSpace(text)
}

// ---------- wire format ----------

type geminiBlob struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *geminiBlob `json:"inline_data,omitempty"`
}

type generateRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *GeminiService) generate(ctx context.Context, parts []geminiPart) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	var payload generateRequest
	payload.Contents = make([]struct {
		Parts []geminiPart `json:"parts"`
	}, 1)
	payload.Contents[0].Parts = parts

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini payload: %w", err)
	}

	u := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		s.model, s.apiKey,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("limite richieste AI raggiunto, riprova tra poco")
	case http.StatusNotFound:
		return "", fmt.Errorf("modello AI non disponibile")
	default:
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse gemini JSON: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// extractJSON strips markdown fences and anything outside the outermost
// braces. The model is told to answer with pure JSON but wraps it in
// ```json fences or commentary often enough that decoding raw text fails.
func extractJSON(text string) string {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```JSON", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	first := strings.Index(clean, "{")
	last := strings.LastIndex(clean, "}")
	if first != -1 && last != -1 && last > first {
		clean = clean[first : last+1]
	}
	return clean
}

// rawEstimate is the model's wire shape: absolute values per 100g under the
// original field names, plus the optional date/time extraction.
type rawEstimate struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Analysis string  `json:"analysis"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
}

// decodeEstimate parses and sanitizes a model answer. Missing numerics come
// out as 0 (JSON zero value), negatives are clamped and the quantity falls
// back to the 100g default, so the scaler's total contract holds downstream.
func decodeEstimate(text string) (*MealEstimate, error) {
	var raw rawEstimate
	if err := json.Unmarshal([]byte(extractJSON(text)), &raw); err != nil {
		return nil, fmt.Errorf("l'IA non è riuscita a capire, riprova con qualcosa di più semplice")
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = "Pasto sconosciuto"
	}
	est := &MealEstimate{
		Name:           name,
		QuantityGrams:  utils.CoerceGrams(int(raw.Quantity)),
		CaloriesPer100: clampNonNegative(raw.Calories),
		ProteinPer100:  clampNonNegative(raw.Protein),
		CarbsPer100:    clampNonNegative(raw.Carbs),
		FatPer100:      clampNonNegative(raw.Fat),
		Note:           strings.TrimSpace(raw.Analysis),
		Hint:           utils.MealTimeHint{Date: raw.Date, Time: raw.Time},
	}
	return est, nil
}

func clampNonNegative(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	return v
}
