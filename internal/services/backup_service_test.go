package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/juris-ledger/internal/events"
	"github.com/tbourn/juris-ledger/internal/repo"
)

type ledgerFixture struct {
	st       *repo.Store
	clients  *ClientService
	actions  *ActionService
	payments *PaymentService
	backup   *BackupService
	rec      *recorder
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	st := newSvcStore(t)
	rec := &recorder{}
	f := &ledgerFixture{
		st:       st,
		clients:  NewClientService(st, nil),
		actions:  NewActionService(st, nil),
		payments: NewPaymentService(st, nil),
		backup:   NewBackupService(st, rec, t.TempDir()),
		rec:      rec,
	}
	f.backup.Now = func() time.Time { return time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC) }

	ana := mustClient(t, f.clients, "Ana", strp("111"))
	bruno := mustClient(t, f.clients, "Bruno", nil)
	a := mustAction(t, f.actions, ana.ID, "1000")
	b := mustAction(t, f.actions, bruno.ID, "")
	mustPayment(t, f.payments, a.ID, "100")
	mustPayment(t, f.payments, b.ID, "5.5")
	return f
}

func (f *ledgerFixture) dump(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := f.backup.WriteSnapshot(context.Background(), &buf); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	return buf.String()
}

func TestBackupService_BackupToDirectoryAndRestore(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	before := f.dump(t)

	res, err := f.backup.Backup(ctx, FixedPath(f.backup.Dir))
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	want := filepath.Join(f.backup.Dir, "juris-payment-backup-2024-05-20.json")
	if res.Cancelled || res.Location != want {
		t.Fatalf("result = %+v", res)
	}
	if res.Clients != 2 || res.Actions != 2 || res.Payments != 2 {
		t.Fatalf("counts = %+v", res)
	}
	written, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(written) != before {
		t.Fatalf("backup differs from snapshot:\n%s\nvs\n%s", written, before)
	}

	// Mutate, then restore by relative name.
	if _, err := f.clients.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	mustClient(t, f.clients, "Carla", nil)

	rres, err := f.backup.Restore(ctx, FixedPath(filepath.Base(want)))
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if rres.Cancelled || rres.Source != want || rres.Clients != 2 || rres.Payments != 2 {
		t.Fatalf("restore result = %+v", rres)
	}
	if after := f.dump(t); after != before {
		t.Fatalf("restored data differs:\n%s\nvs\n%s", after, before)
	}
	ev := f.rec.events()
	if len(ev) != 1 || ev[0].Kind != events.DataImported {
		t.Fatalf("events = %+v", ev)
	}

	// New rows continue after the restored ids.
	c := mustClient(t, f.clients, "Diego", nil)
	if c.ID != 3 {
		t.Fatalf("next client id = %d, want 3", c.ID)
	}
}

func TestBackupService_Cancelled(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	before := f.dump(t)

	b, err := f.backup.Backup(ctx, FixedPath(""))
	if err != nil || !b.Cancelled {
		t.Fatalf("Backup cancelled = %+v, %v", b, err)
	}
	declined := ChooserFunc(func(context.Context) (string, bool, error) { return "", false, nil })
	r, err := f.backup.Restore(ctx, declined)
	if err != nil || !r.Cancelled {
		t.Fatalf("Restore cancelled = %+v, %v", r, err)
	}
	entries, _ := os.ReadDir(f.backup.Dir)
	if len(entries) != 0 {
		t.Fatalf("no file expected, found %d", len(entries))
	}
	if f.dump(t) != before {
		t.Fatal("data changed on cancel")
	}
	if len(f.rec.events()) != 0 {
		t.Fatal("no event expected on cancel")
	}
}

func TestBackupService_ChooserError(t *testing.T) {
	f := newLedgerFixture(t)
	boom := errors.New("dialog failed")
	_, err := f.backup.Backup(context.Background(), ChooserFunc(func(context.Context) (string, bool, error) {
		return "", false, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected chooser error, got %v", err)
	}
}

func TestBackupService_RestoreRejectsMalformed(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	before := f.dump(t)

	cases := map[string]string{
		"missing payments": `{"clients":[],"actions":[]}`,
		"not an object":    `[1,2,3]`,
		"missing fields":   `{"clients":[{"id":1}],"actions":[],"payments":[]}`,
		"not json":         `hello`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.backup.RestoreFrom(ctx, strings.NewReader(doc))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FormatError, got %T %v", err, err)
			}
		})
	}
	if f.dump(t) != before {
		t.Fatal("data changed after rejected restore")
	}
	if len(f.rec.events()) != 0 {
		t.Fatal("no event expected")
	}
}

func TestBackupService_RestoreRollsBackOnConstraint(t *testing.T) {
	f := newLedgerFixture(t)
	before := f.dump(t)

	// Payment references an action that is not in the snapshot.
	doc := `{
	  "clients":[{"id":1,"full_name":"X","created_at":"2024-01-01T00:00:00Z"}],
	  "actions":[],
	  "payments":[{"id":1,"client_id":1,"action_id":7,"payment_date":"2024-01-02","amount":"10"}]
	}`
	_, err := f.backup.Apply(context.Background(), []byte(doc))
	var re *RestoreError
	if !errors.As(err, &re) {
		t.Fatalf("expected RestoreError, got %T %v", err, err)
	}
	if f.dump(t) != before {
		t.Fatal("data changed after failed restore")
	}
}

func TestBackupService_RestoreCancelledBeforeReplace(t *testing.T) {
	f := newLedgerFixture(t)
	before := f.dump(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.backup.Apply(ctx, []byte(`{"clients":[],"actions":[],"payments":[]}`))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.dump(t) != before {
		t.Fatal("data changed")
	}
}

func TestBackupService_RestoreRejectsRecordWithoutID(t *testing.T) {
	f := newLedgerFixture(t)
	before := f.dump(t)

	doc := `{"clients":[
	    {"id":1,"full_name":"X","created_at":"2024-01-01T00:00:00Z"},
	    {"id":0,"full_name":"Y","created_at":"2024-01-01T00:00:00Z"}
	  ],"actions":[],"payments":[]}`
	_, err := f.backup.Apply(context.Background(), []byte(doc))
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Collection != "clients" {
		t.Fatalf("expected FormatError on clients, got %v", err)
	}
	if f.dump(t) != before {
		t.Fatal("data changed")
	}
	if len(f.rec.events()) != 0 {
		t.Fatalf("unexpected events: %+v", f.rec.events())
	}
}

func TestBackupService_PathsStayInsideBackupDir(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	outside := filepath.Join(t.TempDir(), "stolen.json")

	for _, p := range []string{outside, "../stolen.json", "sub/../../stolen.json"} {
		_, err := f.backup.Backup(ctx, FixedPath(p))
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "path" {
			t.Fatalf("Backup(%q): expected path ValidationError, got %v", p, err)
		}
		if _, err := f.backup.Restore(ctx, FixedPath(p)); !errors.As(err, &ve) {
			t.Fatalf("Restore(%q): expected ValidationError, got %v", p, err)
		}
	}
	if _, err := os.Stat(outside); !os.IsNotExist(err) {
		t.Fatalf("file written outside the backup dir: %v", err)
	}

	// Absolute paths inside the directory remain usable.
	inside := filepath.Join(f.backup.Dir, "nested.json")
	res, err := f.backup.Backup(ctx, FixedPath(inside))
	if err != nil || res.Location != inside {
		t.Fatalf("Backup inside = %+v, %v", res, err)
	}
}

func TestBackupService_RestoreMissingFile(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.backup.Restore(context.Background(), FixedPath("nope.json"))
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %T %v", err, err)
	}
}

func TestBackupService_RestoreLegacyDocument(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	doc := `{
	  "clientes":[{"id":5,"nomeCompleto":"Joana","cpfCnpj":"","dataCadastro":"2023-02-01T10:00:00Z"}],
	  "acoesJudiciais":[{"id":9,"clienteId":5,"tipoAcao":"Cível","valorAcao":"300","dataCadastro":"2023-02-02T10:00:00Z"}],
	  "pagamentos":[{"id":4,"clienteId":5,"acaoId":9,"dataPagamento":"2023-03-01","valorPago":"120.5"}]
	}`
	res, err := f.backup.RestoreFrom(ctx, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("RestoreFrom: %v", err)
	}
	if res.Clients != 1 || res.Actions != 1 || res.Payments != 1 {
		t.Fatalf("counts = %+v", res)
	}
	c, found, err := f.clients.Get(ctx, 5)
	if err != nil || !found || c.FullName != "Joana" || c.TaxID != nil {
		t.Fatalf("client = %+v %v %v", c, found, err)
	}
	got, found, err := f.actions.Get(ctx, 9)
	if err != nil || !found {
		t.Fatalf("action: %v %v", found, err)
	}
	if got.TotalPaid.String() != "120.5" || got.Remaining.String() != "179.5" {
		t.Fatalf("totals = %s / %s", got.TotalPaid, got.Remaining)
	}
	if _, found, _ := f.clients.Get(ctx, 1); found {
		t.Fatal("previous data should be gone")
	}
}

func TestDefaultBackupName(t *testing.T) {
	got := DefaultBackupName(time.Date(2025, 1, 2, 23, 0, 0, 0, time.UTC))
	if got != "juris-payment-backup-2025-01-02.json" {
		t.Fatalf("got %q", got)
	}
}
