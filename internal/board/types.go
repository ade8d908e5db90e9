package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrMalformed    = errors.New("malformed leaderboard data")
	ErrZeroBaseline = errors.New("baseline balance is zero")
)

// Holding is one leaderboard position, encoded on disk as a JSON tuple
// [symbol, quantity, valueLabel]. Only the symbol participates in trade
// detection; quantity and the value label are carried through verbatim.
type Holding struct {
	Symbol     string
	Quantity   string
	ValueLabel string
}

func (h *Holding) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: holding is not an array: %v", ErrMalformed, err)
	}
	if len(parts) < 3 {
		return fmt.Errorf("%w: holding has %d fields, want 3", ErrMalformed, len(parts))
	}
	if err := json.Unmarshal(parts[0], &h.Symbol); err != nil {
		return fmt.Errorf("%w: holding symbol: %v", ErrMalformed, err)
	}
	quantity, err := flexibleString(parts[1])
	if err != nil {
		return fmt.Errorf("%w: holding quantity for %s: %v", ErrMalformed, h.Symbol, err)
	}
	h.Quantity = quantity
	if err := json.Unmarshal(parts[2], &h.ValueLabel); err != nil {
		return fmt.Errorf("%w: holding value label for %s: %v", ErrMalformed, h.Symbol, err)
	}
	return nil
}

func (h Holding) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{h.Symbol, h.Quantity, h.ValueLabel})
}

// UserRecord is one leaderboard row, encoded on disk as a JSON tuple
// [balance, profileLink, holdings]. The refresher emits the balance either
// as a number or a numeric string depending on its scrape path.
type UserRecord struct {
	Balance     float64
	ProfileLink string
	Holdings    []Holding
}

func (r *UserRecord) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: record is not an array: %v", ErrMalformed, err)
	}
	if len(parts) < 3 {
		return fmt.Errorf("%w: record has %d fields, want 3", ErrMalformed, len(parts))
	}
	rawBalance, err := flexibleString(parts[0])
	if err != nil {
		return fmt.Errorf("%w: balance: %v", ErrMalformed, err)
	}
	balance, err := strconv.ParseFloat(rawBalance, 64)
	if err != nil {
		return fmt.Errorf("%w: balance %q is not numeric", ErrMalformed, rawBalance)
	}
	r.Balance = balance
	if err := json.Unmarshal(parts[1], &r.ProfileLink); err != nil {
		return fmt.Errorf("%w: profile link: %v", ErrMalformed, err)
	}
	if err := json.Unmarshal(parts[2], &r.Holdings); err != nil {
		return err
	}
	return nil
}

func (r UserRecord) MarshalJSON() ([]byte, error) {
	holdings := r.Holdings
	if holdings == nil {
		holdings = []Holding{}
	}
	return json.Marshal([]any{r.Balance, r.ProfileLink, holdings})
}

// Snapshot is a full leaderboard capture keyed by username. Records are
// replaced wholesale on every refresh; nothing mutates them in place.
type Snapshot map[string]UserRecord

func (s Snapshot) User(username string) (UserRecord, bool) {
	rec, ok := s[username]
	return rec, ok
}

// flexibleString accepts a JSON string or number and returns its text form.
func flexibleString(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("unexpected type %T", v)
	}
}
