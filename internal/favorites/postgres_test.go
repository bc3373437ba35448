package favorites

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows drives scanRows without a live connection. Each element of
// rows is handed out through one Next/Scan cycle; iterErr is what the
// driver reports after iteration stops.
type fakeRows struct {
	rows    []Row
	pos     int
	iterErr error
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	r := f.rows[f.pos-1]
	*dest[0].(*string) = r.UserID
	*dest[1].(*string) = r.EntityID
	*dest[2].(*int) = int(r.EntityType)
	*dest[3].(*string) = string(r.Kind)
	*dest[4].(*time.Time) = r.AddedDate
	*dest[5].(*time.Time) = r.UpdatedDate
	*dest[6].(*bool) = r.Enabled
	return nil
}

func (f *fakeRows) Err() error                                   { return f.iterErr }
func (f *fakeRows) Close()                                       {}
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func TestScanRows_SurfacesIterationError(t *testing.T) {
	wantErr := errors.New("connection reset")
	rows, err := scanRows(&fakeRows{iterErr: wantErr})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected iteration error to surface, got err=%v rows=%v", err, rows)
	}
}

func TestScanRows_PartialSetThenError(t *testing.T) {
	wantErr := errors.New("connection reset")
	src := &fakeRows{
		rows:    []Row{{UserID: "u1", EntityID: "b1", EntityType: 1, Kind: KindFavorite, Enabled: true}},
		iterErr: wantErr,
	}
	_, err := scanRows(src)
	if !errors.Is(err, wantErr) {
		t.Fatalf("a partial row set must not pass as success, got err=%v", err)
	}
}

func TestScanRows_CleanIteration(t *testing.T) {
	src := &fakeRows{
		rows: []Row{
			{UserID: "u1", EntityID: "b1", EntityType: 1, Kind: KindFavorite, Enabled: true},
			{UserID: "u1", EntityID: "e2", EntityType: 5, Kind: KindLike, Enabled: true},
		},
	}
	out, err := scanRows(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].EntityID != "b1" || out[1].Kind != KindLike {
		t.Fatalf("unexpected rows: %+v", out)
	}
}
