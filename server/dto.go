package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// transactionRequest is the JSON body of POST /api/transactions. The
// fields used depend on the command, like the CSV interchange format.
type transactionRequest struct {
	Command  string `json:"command" validate:"required,oneof=buy sell dividend deposit withdraw convert declare init update-price split"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Account  string `json:"account"`
	Security string `json:"security"`
	Ticker   string `json:"ticker"`
	ID       string `json:"id"`
	Quantity string `json:"quantity"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Fee      string `json:"fee"`
	To       string `json:"to"`         // convert: destination amount
	ToCur    string `json:"toCurrency"` // convert: destination currency
	Num      int64  `json:"num"`        // split numerator
	Den      int64  `json:"den"`        // split denominator
	Memo     string `json:"memo"`
}

// alertRequest is the JSON body of POST /api/alerts.
type alertRequest struct {
	Ticker    string `json:"ticker" validate:"required"`
	Op        string `json:"op" validate:"required,oneof=above below"`
	Threshold string `json:"threshold" validate:"required"`
	Note      string `json:"note"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeAndValidate reads a JSON body and runs struct validation.
func decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}
