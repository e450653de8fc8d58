package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the portable backup form of every stored row. Field names of
// the records match the table columns, including ids and timestamps.
type Snapshot struct {
	Clients  []Client      `json:"clients"`
	Actions  []LegalAction `json:"actions"`
	Payments []Payment     `json:"payments"`
}

// Snapshot collection names.
const (
	CollectionClients  = "clients"
	CollectionActions  = "actions"
	CollectionPayments = "payments"
)

// Fields that must be present on the first element of each collection.
var requiredFields = map[string][]string{
	CollectionClients:  {"id", "full_name", "created_at"},
	CollectionActions:  {"id", "client_id", "action_type", "created_at"},
	CollectionPayments: {"id", "client_id", "action_id", "payment_date", "amount"},
}

var currentCollections = map[string]string{
	CollectionClients:  CollectionClients,
	CollectionActions:  CollectionActions,
	CollectionPayments: CollectionPayments,
}

// Collection keys and required fields of snapshots written by the desktop
// application that predates this service.
var legacyCollections = map[string]string{
	CollectionClients:  "clientes",
	CollectionActions:  "acoesJudiciais",
	CollectionPayments: "pagamentos",
}

var legacyRequiredFields = map[string][]string{
	CollectionClients:  {"id", "nomeCompleto", "dataCadastro"},
	CollectionActions:  {"id", "clienteId", "tipoAcao", "dataCadastro"},
	CollectionPayments: {"id", "clienteId", "acaoId", "dataPagamento", "valorPago"},
}

// legacyTimestampLayout is how the desktop application stamped rows (local time).
const legacyTimestampLayout = "2006-01-02 15:04:05"

// FormatError reports a snapshot that is not shaped like a backup. It is
// returned before any stored data is touched.
type FormatError struct {
	// Collection is the offending collection, empty when the document itself is malformed.
	Collection string
	// Missing lists required field names absent from the first record.
	Missing []string
	Reason  string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("invalid backup file")
	if e.Collection != "" {
		b.WriteString(": ")
		b.WriteString(e.Collection)
	}
	if len(e.Missing) > 0 {
		b.WriteString(": missing fields: ")
		b.WriteString(strings.Join(e.Missing, ", "))
	} else if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Normalize replaces nil collections with empty ones so the encoded form
// always carries three arrays.
func (s *Snapshot) Normalize() {
	if s.Clients == nil {
		s.Clients = []Client{}
	}
	if s.Actions == nil {
		s.Actions = []LegalAction{}
	}
	if s.Payments == nil {
		s.Payments = []Payment{}
	}
}

// DecodeSnapshot validates and decodes a backup document.
//
// The document must be a JSON object with array fields clients, actions and
// payments. The first record of each non-empty collection is spot-checked
// for required fields. Documents using the legacy collection names are
// translated to the current model.
func DecodeSnapshot(raw []byte) (*Snapshot, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, &FormatError{Reason: "expected an object with clients, actions and payments arrays"}
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}

	if isLegacy(doc) {
		snap, err := decodeLegacy(doc)
		if err != nil {
			return nil, err
		}
		if err := snap.checkIDs(legacyCollections); err != nil {
			return nil, err
		}
		return snap, nil
	}

	cols, err := collections(doc, currentCollections, requiredFields)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{}
	if err := decodeCollection(CollectionClients, cols[CollectionClients], &snap.Clients); err != nil {
		return nil, err
	}
	if err := decodeCollection(CollectionActions, cols[CollectionActions], &snap.Actions); err != nil {
		return nil, err
	}
	if err := decodeCollection(CollectionPayments, cols[CollectionPayments], &snap.Payments); err != nil {
		return nil, err
	}
	if err := snap.checkIDs(currentCollections); err != nil {
		return nil, err
	}
	snap.Normalize()
	return snap, nil
}

// checkIDs rejects any record with a missing or zero id, which the database
// would otherwise replace with a fresh one. names maps each collection to
// the key it was read from.
func (s *Snapshot) checkIDs(names map[string]string) error {
	for i, c := range s.Clients {
		if c.ID == 0 {
			return missingID(names[CollectionClients], i)
		}
	}
	for i, a := range s.Actions {
		if a.ID == 0 {
			return missingID(names[CollectionActions], i)
		}
	}
	for i, p := range s.Payments {
		if p.ID == 0 {
			return missingID(names[CollectionPayments], i)
		}
	}
	return nil
}

func missingID(collection string, i int) error {
	return &FormatError{Collection: collection, Reason: fmt.Sprintf("record %d has no id", i+1)}
}

func isLegacy(doc map[string]json.RawMessage) bool {
	for name := range requiredFields {
		if _, ok := doc[name]; ok {
			return false
		}
	}
	for _, key := range legacyCollections {
		if _, ok := doc[key]; ok {
			return true
		}
	}
	return false
}

// collections extracts the three arrays (keyed by their canonical name) and
// runs the first-record field check on each.
func collections(doc map[string]json.RawMessage, keys map[string]string, required map[string][]string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(keys))
	for _, name := range []string{CollectionClients, CollectionActions, CollectionPayments} {
		key := keys[name]
		v, ok := doc[key]
		if !ok {
			return nil, &FormatError{Collection: key, Reason: "collection is missing"}
		}
		v = bytes.TrimSpace(v)
		if len(v) == 0 || v[0] != '[' {
			return nil, &FormatError{Collection: key, Reason: "collection is not an array"}
		}
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			return nil, &FormatError{Collection: key, Reason: err.Error()}
		}
		if len(items) > 0 {
			var missing []string
			for _, f := range required[name] {
				if _, ok := items[0][f]; !ok {
					missing = append(missing, f)
				}
			}
			if len(missing) > 0 {
				return nil, &FormatError{Collection: key, Missing: missing}
			}
		}
		out[name] = v
	}
	return out, nil
}

func decodeCollection(name string, raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return &FormatError{Collection: name, Reason: err.Error()}
	}
	return nil
}

type legacyClient struct {
	ID           uint    `json:"id"`
	NomeCompleto string  `json:"nomeCompleto"`
	CpfCnpj      *string `json:"cpfCnpj"`
	Telefone     *string `json:"telefone"`
	Email        *string `json:"email"`
	Endereco     *string `json:"endereco"`
	DataCadastro string  `json:"dataCadastro"`
}

type legacyAction struct {
	ID             uint                `json:"id"`
	ClienteID      uint                `json:"clienteId"`
	TipoAcao       *string             `json:"tipoAcao"`
	NumeroProcesso *string             `json:"numeroProcesso"`
	ValorAcao      decimal.NullDecimal `json:"valorAcao"`
	Observacoes    *string             `json:"observacoes"`
	DataCadastro   string              `json:"dataCadastro"`
}

type legacyPayment struct {
	ID            uint            `json:"id"`
	ClienteID     uint            `json:"clienteId"`
	AcaoID        uint            `json:"acaoId"`
	DataPagamento Date            `json:"dataPagamento"`
	ValorPago     decimal.Decimal `json:"valorPago"`
	Observacao    *string         `json:"observacao"`
}

func decodeLegacy(doc map[string]json.RawMessage) (*Snapshot, error) {
	cols, err := collections(doc, legacyCollections, legacyRequiredFields)
	if err != nil {
		return nil, err
	}

	var (
		clients  []legacyClient
		actions  []legacyAction
		payments []legacyPayment
	)
	if err := decodeCollection(legacyCollections[CollectionClients], cols[CollectionClients], &clients); err != nil {
		return nil, err
	}
	if err := decodeCollection(legacyCollections[CollectionActions], cols[CollectionActions], &actions); err != nil {
		return nil, err
	}
	if err := decodeCollection(legacyCollections[CollectionPayments], cols[CollectionPayments], &payments); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Clients:  make([]Client, 0, len(clients)),
		Actions:  make([]LegalAction, 0, len(actions)),
		Payments: make([]Payment, 0, len(payments)),
	}
	for _, c := range clients {
		created, err := parseLegacyTimestamp(c.DataCadastro)
		if err != nil {
			return nil, &FormatError{Collection: legacyCollections[CollectionClients], Reason: err.Error()}
		}
		var tax *string
		if v := deref(c.CpfCnpj); strings.TrimSpace(v) != "" {
			tax = &v
		}
		snap.Clients = append(snap.Clients, Client{
			ID:        c.ID,
			FullName:  c.NomeCompleto,
			TaxID:     tax,
			Phone:     deref(c.Telefone),
			Email:     deref(c.Email),
			Address:   deref(c.Endereco),
			CreatedAt: created,
		})
	}
	for _, a := range actions {
		created, err := parseLegacyTimestamp(a.DataCadastro)
		if err != nil {
			return nil, &FormatError{Collection: legacyCollections[CollectionActions], Reason: err.Error()}
		}
		snap.Actions = append(snap.Actions, LegalAction{
			ID:           a.ID,
			ClientID:     a.ClienteID,
			ActionType:   deref(a.TipoAcao),
			CaseNumber:   deref(a.NumeroProcesso),
			NominalValue: a.ValorAcao,
			Notes:        a.Observacoes,
			CreatedAt:    created,
		})
	}
	for _, p := range payments {
		snap.Payments = append(snap.Payments, Payment{
			ID:          p.ID,
			ClientID:    p.ClienteID,
			ActionID:    p.AcaoID,
			PaymentDate: p.DataPagamento,
			Amount:      p.ValorPago,
			Note:        deref(p.Observacao),
		})
	}
	return snap, nil
}

func parseLegacyTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty dataCadastro")
	}
	if t, err := time.ParseInLocation(legacyTimestampLayout, s, time.Local); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid dataCadastro %q", s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
