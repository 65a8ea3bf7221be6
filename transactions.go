package folio

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CommandType identifies the kind of a ledger transaction.
type CommandType string

const (
	CmdInit        CommandType = "init"
	CmdDeclare     CommandType = "declare"
	CmdBuy         CommandType = "buy"
	CmdSell        CommandType = "sell"
	CmdDividend    CommandType = "dividend"
	CmdDeposit     CommandType = "deposit"
	CmdWithdraw    CommandType = "withdraw"
	CmdConvert     CommandType = "convert"
	CmdUpdatePrice CommandType = "update-price"
	CmdSplit       CommandType = "split"
)

// Transaction is a single record in the ledger.
type Transaction interface {
	What() CommandType // the command, e.g. "buy"
	When() Date        // the day it happened
	Where() string     // the account it happened in, "" for the default account
	Note() string      // the free form memo
	Equal(Transaction) bool
	Validate(l *Ledger) (Transaction, error)
}

// baseCmd carries the fields every transaction has. It is embedded by
// all transaction types.
type baseCmd struct {
	Command CommandType `json:"command"`
	Date    Date        `json:"date"`
	Account string      `json:"account,omitempty"` // brokerage or exchange account
	Memo    string      `json:"memo,omitempty"`
}

func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() Date        { return t.Date }
func (t baseCmd) Where() string     { return t.Account }
func (t baseCmd) Note() string      { return t.Memo }

// Validate applies the shared quick fix (a missing date becomes today)
// and checks the account name.
func (t *baseCmd) Validate() error {
	if t.Date.IsZero() {
		t.Date = Today()
	}
	return ValidateAccount(t.Account)
}

func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("account", t.Account)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// secCmd extends baseCmd for transactions about one security.
type secCmd struct {
	baseCmd
	Security string `json:"security"`
}

// Which returns the security ticker the transaction is about.
func (t secCmd) Which() string { return t.Security }

func (t *secCmd) Validate(l *Ledger) error {
	if err := t.baseCmd.Validate(); err != nil {
		return err
	}
	if t.Security == "" {
		return errors.New("security ticker is missing")
	}
	if l.Security(t.Security) == nil {
		return fmt.Errorf("security %q not declared in ledger", t.Security)
	}
	return nil
}

func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("security", t.Security)
	return w.MarshalJSON()
}

// --- Init ---

// Init sets the reporting currency of the ledger. It must be the first
// transaction; appending another Init updates the existing one.
type Init struct {
	baseCmd
	Currency string `json:"currency"`
}

// NewInit creates an Init transaction.
func NewInit(on Date, memo, currency string) Init {
	return Init{baseCmd: baseCmd{Command: CmdInit, Date: on, Memo: memo}, Currency: currency}
}

func (t Init) Equal(other Transaction) bool {
	o, ok := other.(Init)
	return ok && t.baseCmd == o.baseCmd && t.Currency == o.Currency
}

func (t Init) Validate(l *Ledger) (Transaction, error) {
	if err := ValidateCurrency(t.Currency); err != nil {
		return t, fmt.Errorf("invalid currency for init: %w", err)
	}
	if len(l.transactions) > 0 {
		if existing, ok := l.transactions[0].(Init); ok {
			// Idempotent update of the existing init.
			if !t.Date.IsZero() {
				existing.Date = t.Date
			}
			if t.Currency != "" {
				existing.Currency = t.Currency
			}
			if t.Memo != "" {
				existing.Memo = t.Memo
			}
			return existing, nil
		}
		first := l.transactions[0].When()
		if t.Date.IsZero() {
			t.Date = first
		} else if t.Date.After(first) {
			return t, fmt.Errorf("init date %s must not be after the first transaction date %s", t.Date, first)
		}
	} else if t.Date.IsZero() {
		t.Date = Today()
	}
	return t, nil
}

func (t Init) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("currency", t.Currency)
	return w.MarshalJSON()
}

// --- Declare ---

// Declare maps a ledger-local ticker to a globally unique security ID
// and the currency it trades in.
type Declare struct {
	baseCmd
	Ticker   string `json:"ticker"`
	ID       ID     `json:"id"`
	Currency string `json:"currency"`
}

// Which returns the declared ticker.
func (t Declare) Which() string { return t.Ticker }

// NewDeclare creates a Declare transaction.
func NewDeclare(on Date, memo, ticker string, id ID, currency string) Declare {
	return Declare{
		baseCmd:  baseCmd{Command: CmdDeclare, Date: on, Memo: memo},
		Ticker:   ticker,
		ID:       id,
		Currency: currency,
	}
}

func (t Declare) Equal(other Transaction) bool {
	o, ok := other.(Declare)
	return ok && t.baseCmd == o.baseCmd && t.Ticker == o.Ticker && t.ID == o.ID && t.Currency == o.Currency
}

func (t Declare) Validate(l *Ledger) (Transaction, error) {
	if err := t.baseCmd.Validate(); err != nil {
		return t, err
	}
	if err := ValidateTicker(t.Ticker); err != nil {
		return t, err
	}
	if t.ID == "" {
		return t, errors.New("declaration security ID is missing")
	}
	if _, err := ParseID(t.ID.String()); err != nil {
		return t, fmt.Errorf("invalid security ID %q: %w", t.ID, err)
	}
	if err := ValidateCurrency(t.Currency); err != nil {
		return t, fmt.Errorf("invalid currency for declaration: %w", err)
	}
	if l.Security(t.Ticker) != nil {
		return t, fmt.Errorf("security %q already declared in ledger", t.Ticker)
	}
	return t, nil
}

func (t Declare) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	w.Append("id", t.ID)
	w.Append("currency", t.Currency)
	return w.MarshalJSON()
}

// --- Buy ---

// Buy records the purchase of a quantity of a security for a total
// amount, plus an optional commission.
type Buy struct {
	secCmd
	Quantity Quantity
	Amount   Money // total paid for the shares, fee excluded
	Fee      Money // optional commission, same currency as Amount
}

// NewBuy creates a Buy transaction.
func NewBuy(on Date, memo, account, security string, quantity Quantity, amount, fee Money) Buy {
	return Buy{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: on, Account: account, Memo: memo}, Security: security},
		Quantity: quantity,
		Amount:   amount,
		Fee:      fee,
	}
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) &&
		t.Amount.Equal(o.Amount) && t.Fee.Equal(o.Fee)
}

func (t Buy) Currency() string { return t.Amount.Currency() }

func (t Buy) Validate(l *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(l); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("buy quantity must be positive, got %s", t.Quantity)
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("buy amount must be positive, got %s", t.Amount)
	}
	currency := l.Security(t.Security).Currency()
	if t.Currency() == "" {
		t.Amount = M(t.Amount.value, currency)
	} else if t.Currency() != currency {
		return t, fmt.Errorf("buy currency %s does not match security currency %s", t.Currency(), currency)
	}
	if t.Fee.IsNegative() {
		return t, fmt.Errorf("buy fee cannot be negative, got %s", t.Fee)
	}
	if !t.Fee.IsZero() {
		if t.Fee.Currency() == "" {
			t.Fee = M(t.Fee.value, currency)
		} else if t.Fee.Currency() != currency {
			return t, fmt.Errorf("buy fee currency %s does not match amount currency %s", t.Fee.Currency(), currency)
		}
	}
	cash, cost := l.CashBalance(currency, t.Date, t.Account), t.Amount.Add(t.Fee)
	if cash.LessThan(cost) {
		return t, fmt.Errorf("on %s, cannot buy for %s, cash balance is %s", t.Date, cost, cash)
	}
	return t, nil
}

func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.EmbedFrom(t.Amount)
	w.Optional("fee", t.Fee.value)
	return w.MarshalJSON()
}

func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.Amount = temp.Money()
	t.Fee = temp.FeeMoney()
	return nil
}

// --- Sell ---

// Sell records the sale of a quantity of a security. A zero quantity
// means "sell everything held on that date"; it is resolved during
// validation.
type Sell struct {
	secCmd
	Quantity Quantity
	Amount   Money // total proceeds, fee excluded
	Fee      Money // optional commission, same currency as Amount
}

// NewSell creates a Sell transaction.
func NewSell(on Date, memo, account, security string, quantity Quantity, amount, fee Money) Sell {
	return Sell{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdSell, Date: on, Account: account, Memo: memo}, Security: security},
		Quantity: quantity,
		Amount:   amount,
		Fee:      fee,
	}
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.secCmd == o.secCmd && t.Quantity.Equal(o.Quantity) &&
		t.Amount.Equal(o.Amount) && t.Fee.Equal(o.Fee)
}

func (t Sell) Currency() string { return t.Amount.Currency() }

func (t Sell) Validate(l *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(l); err != nil {
		return t, err
	}
	currency := l.Security(t.Security).Currency()
	if t.Currency() == "" {
		t.Amount = M(t.Amount.value, currency)
	} else if t.Currency() != currency {
		return t, fmt.Errorf("sell currency %s does not match security currency %s", t.Currency(), currency)
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("sell amount must be positive, got %s", t.Amount)
	}
	if t.Fee.IsNegative() {
		return t, fmt.Errorf("sell fee cannot be negative, got %s", t.Fee)
	}
	if !t.Fee.IsZero() {
		if t.Fee.Currency() == "" {
			t.Fee = M(t.Fee.value, currency)
		} else if t.Fee.Currency() != currency {
			return t, fmt.Errorf("sell fee currency %s does not match amount currency %s", t.Fee.Currency(), currency)
		}
	}

	pos := l.Position(t.Security, t.Date, t.Account)
	if t.Quantity.IsZero() {
		// Quick fix: sell all.
		t.Quantity = pos
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("sell quantity must be positive, got %s", t.Quantity)
	}
	if pos.LessThan(t.Quantity) {
		return t, fmt.Errorf("on %s, cannot sell %s of %s, position is only %s", t.Date, t.Quantity, t.Security, pos)
	}
	return t, nil
}

func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("quantity", t.Quantity)
	w.EmbedFrom(t.Amount)
	w.Optional("fee", t.Fee.value)
	return w.MarshalJSON()
}

func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Quantity = temp.Quantity
	t.Amount = temp.Money()
	t.Fee = temp.FeeMoney()
	return nil
}

// --- Dividend ---

// Dividend records a cash dividend received for a held security. The
// amount is the total cash credited, not a per-share rate.
type Dividend struct {
	secCmd
	Amount Money
}

// NewDividend creates a Dividend transaction.
func NewDividend(on Date, memo, account, security string, amount Money) Dividend {
	return Dividend{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdDividend, Date: on, Account: account, Memo: memo}, Security: security},
		Amount: amount,
	}
}

func (t Dividend) Equal(other Transaction) bool {
	o, ok := other.(Dividend)
	return ok && t.secCmd == o.secCmd && t.Amount.Equal(o.Amount)
}

func (t Dividend) Validate(l *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(l); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("dividend amount must be positive, got %s", t.Amount)
	}
	if t.Amount.Currency() == "" {
		t.Amount = M(t.Amount.value, l.Security(t.Security).Currency())
	} else if err := ValidateCurrency(t.Amount.Currency()); err != nil {
		return t, fmt.Errorf("invalid currency for dividend: %w", err)
	}
	return t, nil
}

func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

func (t *Dividend) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Amount = temp.Money()
	return nil
}

// --- Deposit ---

// Deposit records external cash added to an account.
type Deposit struct {
	baseCmd
	Amount Money
}

// NewDeposit creates a Deposit transaction.
func NewDeposit(on Date, memo, account string, amount Money) Deposit {
	return Deposit{baseCmd: baseCmd{Command: CmdDeposit, Date: on, Account: account, Memo: memo}, Amount: amount}
}

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount)
}

func (t Deposit) Currency() string { return t.Amount.Currency() }

func (t Deposit) Validate(l *Ledger) (Transaction, error) {
	if err := t.baseCmd.Validate(); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("deposit amount must be positive, got %s", t.Amount)
	}
	if err := ValidateCurrency(t.Amount.Currency()); err != nil {
		return t, fmt.Errorf("invalid currency for deposit: %w", err)
	}
	return t, nil
}

func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

func (t *Deposit) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseCmd = temp.baseCmd
	t.Amount = temp.Money()
	return nil
}

// --- Withdraw ---

// Withdraw records external cash removed from an account. A zero amount
// with a currency means "withdraw the whole balance"; it is resolved
// during validation.
type Withdraw struct {
	baseCmd
	Amount Money
}

// NewWithdraw creates a Withdraw transaction.
func NewWithdraw(on Date, memo, account string, amount Money) Withdraw {
	return Withdraw{baseCmd: baseCmd{Command: CmdWithdraw, Date: on, Account: account, Memo: memo}, Amount: amount}
}

func (t Withdraw) Equal(other Transaction) bool {
	o, ok := other.(Withdraw)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount)
}

func (t Withdraw) Currency() string { return t.Amount.Currency() }

func (t Withdraw) Validate(l *Ledger) (Transaction, error) {
	if err := t.baseCmd.Validate(); err != nil {
		return t, err
	}
	if err := ValidateCurrency(t.Amount.Currency()); err != nil {
		return t, fmt.Errorf("invalid currency for withdraw: %w", err)
	}
	if t.Amount.IsZero() {
		// Quick fix: withdraw all.
		t.Amount = l.CashBalance(t.Amount.Currency(), t.Date, t.Account)
	}
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("withdraw amount must be positive, got %s", t.Amount)
	}
	cash := l.CashBalance(t.Amount.Currency(), t.Date, t.Account)
	if cash.LessThan(t.Amount) {
		return t, fmt.Errorf("on %s, cannot withdraw %s, cash balance is %s", t.Date, t.Amount, cash)
	}
	return t, nil
}

func (t Withdraw) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

func (t *Withdraw) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseCmd = temp.baseCmd
	t.Amount = temp.Money()
	return nil
}

// --- Convert ---

// Convert records an in-account exchange of one currency for another.
type Convert struct {
	baseCmd
	FromAmount Money
	ToAmount   Money
}

// NewConvert creates a Convert transaction.
func NewConvert(on Date, memo, account string, from, to Money) Convert {
	return Convert{baseCmd: baseCmd{Command: CmdConvert, Date: on, Account: account, Memo: memo}, FromAmount: from, ToAmount: to}
}

func (t Convert) Equal(other Transaction) bool {
	o, ok := other.(Convert)
	return ok && t.baseCmd == o.baseCmd && t.FromAmount.Equal(o.FromAmount) && t.ToAmount.Equal(o.ToAmount)
}

func (t Convert) FromCurrency() string { return t.FromAmount.Currency() }
func (t Convert) ToCurrency() string   { return t.ToAmount.Currency() }

func (t Convert) Validate(l *Ledger) (Transaction, error) {
	if err := t.baseCmd.Validate(); err != nil {
		return t, err
	}
	if err := ValidateCurrency(t.FromCurrency()); err != nil {
		return t, fmt.Errorf("invalid 'from' currency: %w", err)
	}
	if err := ValidateCurrency(t.ToCurrency()); err != nil {
		return t, fmt.Errorf("invalid 'to' currency: %w", err)
	}
	if t.FromCurrency() == t.ToCurrency() {
		return t, fmt.Errorf("cannot convert %s to itself", t.FromCurrency())
	}
	if !t.ToAmount.IsPositive() {
		return t, fmt.Errorf("convert 'to' amount must be positive, got %s", t.ToAmount)
	}
	if t.FromAmount.IsZero() {
		// Quick fix: convert the whole balance.
		t.FromAmount = l.CashBalance(t.FromCurrency(), t.Date, t.Account)
	}
	if !t.FromAmount.IsPositive() {
		return t, fmt.Errorf("convert 'from' amount must be positive, got %s", t.FromAmount)
	}
	cash := l.CashBalance(t.FromCurrency(), t.Date, t.Account)
	if cash.LessThan(t.FromAmount) {
		return t, fmt.Errorf("on %s, cannot convert %s, cash balance is %s", t.Date, t.FromAmount, cash)
	}
	return t, nil
}

func (t Convert) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("fromAmount", t.FromAmount.value)
	w.Append("fromCurrency", t.FromAmount.cur)
	w.Append("toAmount", t.ToAmount.value)
	w.Append("toCurrency", t.ToAmount.cur)
	return w.MarshalJSON()
}

func (t *Convert) UnmarshalJSON(data []byte) error {
	var temp convertCmd
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseCmd = temp.baseCmd
	t.FromAmount = temp.FromMoney()
	t.ToAmount = temp.ToMoney()
	return nil
}

// --- UpdatePrice ---

// UpdatePrice records the observed price of one security on a day.
// When the ticker is a declared currency pair (like "USDEUR"), the price
// doubles as the exchange rate of one base unit in the quote currency.
type UpdatePrice struct {
	secCmd
	Price Money
}

// NewUpdatePrice creates an UpdatePrice transaction.
func NewUpdatePrice(on Date, security string, price Money) UpdatePrice {
	return UpdatePrice{
		secCmd: secCmd{baseCmd: baseCmd{Command: CmdUpdatePrice, Date: on}, Security: security},
		Price:  price,
	}
}

func (t UpdatePrice) Equal(other Transaction) bool {
	o, ok := other.(UpdatePrice)
	return ok && t.secCmd == o.secCmd && t.Price.Equal(o.Price)
}

func (t UpdatePrice) Validate(l *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(l); err != nil {
		return t, err
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("price for %s must be positive, got %s", t.Security, t.Price)
	}
	currency := l.Security(t.Security).Currency()
	if t.Price.Currency() == "" {
		t.Price = M(t.Price.value, currency)
	} else if t.Price.Currency() != currency {
		return t, fmt.Errorf("price currency %s does not match security currency %s", t.Price.Currency(), currency)
	}
	return t, nil
}

func (t UpdatePrice) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("price", t.Price.value)
	w.Optional("currency", t.Price.cur)
	return w.MarshalJSON()
}

func (t *UpdatePrice) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		priceCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.secCmd = temp.secCmd
	t.Price = temp.PriceMoney()
	return nil
}

// --- Split ---

// Split records a stock split: each den existing shares become num
// shares. A reverse split has num < den.
type Split struct {
	secCmd
	Numerator   int64 `json:"num"`
	Denominator int64 `json:"den"`
}

// NewSplit creates a Split transaction.
func NewSplit(on Date, security string, num, den int64) Split {
	return Split{
		secCmd:      secCmd{baseCmd: baseCmd{Command: CmdSplit, Date: on}, Security: security},
		Numerator:   num,
		Denominator: den,
	}
}

func (t Split) Equal(other Transaction) bool {
	o, ok := other.(Split)
	return ok && t.secCmd == o.secCmd && t.Numerator == o.Numerator && t.Denominator == o.Denominator
}

func (t Split) Validate(l *Ledger) (Transaction, error) {
	if err := t.secCmd.Validate(l); err != nil {
		return t, err
	}
	if t.Numerator <= 0 {
		return t, fmt.Errorf("split numerator must be positive, got %d", t.Numerator)
	}
	if t.Denominator <= 0 {
		return t, fmt.Errorf("split denominator must be positive, got %d", t.Denominator)
	}
	return t, nil
}

func (t Split) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("num", t.Numerator)
	w.Append("den", t.Denominator)
	return w.MarshalJSON()
}

func (t *Split) UnmarshalJSON(data []byte) error {
	var temp struct {
		secCmd
		Numerator   int64 `json:"num"`
		Denominator int64 `json:"den"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Denominator == 0 {
		temp.Denominator = 1
	}
	t.secCmd = temp.secCmd
	t.Numerator = temp.Numerator
	t.Denominator = temp.Denominator
	return nil
}
