package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"

	"folio"
	"folio/date"
	"folio/renderer"
)

// Server owns the ledger and serves the dashboard API. All access to
// the ledger goes through the mutex: reads are concurrent, writes are
// exclusive and persisted before they are acknowledged.
type Server struct {
	cfg    *Config
	mu     sync.RWMutex
	ledger *folio.Ledger
	alerts *folio.Alerts
	hub    *Hub
}

// journal builds a fresh journal from the current ledger. Callers must
// hold at least a read lock.
func (s *Server) journal() (*folio.Journal, error) {
	return folio.NewJournal(s.ledger, s.cfg.Currency)
}

// parseDateParam reads a ?date=2006-01-02 query parameter, defaulting
// to today.
func parseDateParam(r *http.Request, name string) (folio.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return folio.Today(), nil
	}
	return folio.ParseDate(v)
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	on, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, err := s.journal()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, folio.NewHoldingReport(j, on, r.URL.Query().Get("account")))
}

func (s *Server) handleGains(w http.ResponseWriter, r *http.Request) {
	on, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	period := date.Monthly
	if v := r.URL.Query().Get("period"); v != "" {
		period, err = date.ParsePeriod(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	method := folio.FIFO
	if v := r.URL.Query().Get("method"); v != "" {
		method, err = folio.ParseCostBasisMethod(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, err := s.journal()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	report := folio.NewGainsReport(j, date.NewRange(on, period), method, r.URL.Query().Get("account"))
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	on, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, err := s.journal()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, folio.NewSummaryReport(j, on, r.URL.Query().Get("account")))
}

// transactionEntry pairs a transaction with its stable index, which is
// what DELETE takes.
type transactionEntry struct {
	Index       int               `json:"index"`
	Transaction folio.Transaction `json:"transaction"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []transactionEntry{}
	for i, tx := range s.ledger.Search(r.URL.Query().Get("q")) {
		entries = append(entries, transactionEntry{Index: i, Transaction: tx})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := req.transaction()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err = s.ledger.Validate(tx)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.ledger.Append(tx)
	if err := folio.SaveLedger(s.cfg.LedgerPath, s.ledger); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.hub.Broadcast("transaction", tx)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction index")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.Delete(index); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := folio.SaveLedger(s.cfg.LedgerPath, s.ledger); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.ledger.Name()+".csv"))
	if err := folio.ExportCSV(w, s.ledger); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleExportGainsCSV(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	on, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	j, err := s.journal()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	period := date.NewRange(on, date.Yearly)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "gains-"+period.Identifier()+".csv"))
	report := folio.NewGainsReport(j, period, folio.FIFO, r.URL.Query().Get("account"))
	if err := folio.ExportGainsCSV(w, report); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := folio.ImportCSV(r.Body, s.ledger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := folio.SaveLedger(s.cfg.LedgerPath, s.ledger); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(txs)})
}

// handleReport renders one of the markdown reports as HTML.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	on, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	account := r.URL.Query().Get("account")

	s.mu.RLock()
	j, jErr := s.journal()
	var md string
	if jErr == nil {
		switch kind := chi.URLParam(r, "kind"); kind {
		case "holding":
			md = renderer.HoldingMarkdown(folio.NewHoldingReport(j, on, account))
		case "gains":
			md = renderer.GainsMarkdown(folio.NewGainsReport(j, date.NewRange(on, date.Monthly), folio.FIFO, account))
		case "summary":
			md = renderer.SummaryMarkdown(folio.NewSummaryReport(j, on, account))
		case "alerts":
			md = renderer.AlertsMarkdown(s.alerts)
		default:
			s.mu.RUnlock()
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown report %q", kind))
			return
		}
	}
	s.mu.RUnlock()
	if jErr != nil {
		writeError(w, http.StatusInternalServerError, jErr.Error())
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.alerts.All())
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	op, err := folio.ParseAlertOp(req.Op)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	threshold, err := decimal.NewFromString(req.Threshold)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid threshold %q", req.Threshold))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger.Security(req.Ticker) == nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("security %q is not declared", req.Ticker))
		return
	}
	a := s.alerts.Add(req.Ticker, op, threshold, req.Note)
	if err := s.saveAlerts(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.alerts.Remove(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.saveAlerts(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRearmAlert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid alert id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.alerts.Rearm(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.saveAlerts(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a, _ := s.alerts.Get(id)
	writeJSON(w, http.StatusOK, a)
}

// saveAlerts persists the alert set next to the ledger. Callers hold
// the write lock.
func (s *Server) saveAlerts() error {
	return folio.SaveAlerts(folio.AlertsPath(s.cfg.LedgerPath), s.alerts)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	n := s.ledger.Len()
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "transactions": n})
}

// transaction converts the request to a ledger transaction. Quick fix
// resolution (missing dates, sell-all) is left to ledger validation.
func (req transactionRequest) transaction() (folio.Transaction, error) {
	var on folio.Date
	if req.Date != "" {
		var err error
		on, err = folio.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
	}

	parse := func(s string) (decimal.Decimal, error) {
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	}
	quantity, err := parse(req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", req.Quantity, err)
	}
	amount, err := parse(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", req.Amount, err)
	}
	fee, err := parse(req.Fee)
	if err != nil {
		return nil, fmt.Errorf("invalid fee %q: %w", req.Fee, err)
	}
	feeMoney := folio.Money{}
	if !fee.IsZero() {
		feeMoney = folio.M(fee, req.Currency)
	}

	switch folio.CommandType(req.Command) {
	case folio.CmdInit:
		return folio.NewInit(on, req.Memo, req.Currency), nil
	case folio.CmdDeclare:
		return folio.NewDeclare(on, req.Memo, req.Ticker, folio.ID(req.ID), req.Currency), nil
	case folio.CmdBuy:
		return folio.NewBuy(on, req.Memo, req.Account, req.Security, folio.Q(quantity), folio.M(amount, req.Currency), feeMoney), nil
	case folio.CmdSell:
		return folio.NewSell(on, req.Memo, req.Account, req.Security, folio.Q(quantity), folio.M(amount, req.Currency), feeMoney), nil
	case folio.CmdDividend:
		return folio.NewDividend(on, req.Memo, req.Account, req.Security, folio.M(amount, req.Currency)), nil
	case folio.CmdDeposit:
		return folio.NewDeposit(on, req.Memo, req.Account, folio.M(amount, req.Currency)), nil
	case folio.CmdWithdraw:
		return folio.NewWithdraw(on, req.Memo, req.Account, folio.M(amount, req.Currency)), nil
	case folio.CmdConvert:
		to, err := parse(req.To)
		if err != nil {
			return nil, fmt.Errorf("invalid destination amount %q: %w", req.To, err)
		}
		return folio.NewConvert(on, req.Memo, req.Account, folio.M(amount, req.Currency), folio.M(to, req.ToCur)), nil
	case folio.CmdUpdatePrice:
		return folio.NewUpdatePrice(on, req.Security, folio.M(amount, req.Currency)), nil
	case folio.CmdSplit:
		return folio.NewSplit(on, req.Security, req.Num, req.Den), nil
	}
	return nil, fmt.Errorf("unsupported command %q", req.Command)
}
