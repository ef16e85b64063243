package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwise1/lifegroup_locator/internal/geocode"
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/bwise1/lifegroup_locator/internal/source"
	"github.com/pkg/errors"
)

var header = []string{" Nome do Life ", "Endereço", "Líderes", "Telefone", "Dia da Semana", "Horário de Início", "Tipo de Life"}

// fakeGeocoder resolves addresses from a table; unknown queries are not found.
type fakeGeocoder struct {
	mu      sync.Mutex
	known   map[string]model.ResolvedLocation
	queries []string
	delay   time.Duration
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (model.ResolvedLocation, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return model.ResolvedLocation{}, ctx.Err()
		}
	}
	loc, ok := f.known[query]
	if !ok {
		return model.ResolvedLocation{}, errors.Wrap(geocode.ErrNotFound, query)
	}
	return loc, nil
}

type fakeSource struct {
	calls atomic.Int32
	tbl   source.Table
	err   error
	wait  chan struct{}
}

func (s *fakeSource) Fetch(ctx context.Context) (source.Table, error) {
	s.calls.Add(1)
	if s.wait != nil {
		<-s.wait
	}
	return s.tbl, s.err
}

func testTable() source.Table {
	return source.Table{
		Header: header,
		Rows: [][]string{
			{"Alfa", "Rua A, 1", "Ana", "(11) 99999-0000", "Terça", "20:00", "Jovens"},
			{"", "Rua B, 2", "Bia"},
			{"Gama", "  ", "Caio"},
			{"Delta", "Rua Perdida", "Davi"},
			{"Épsilon", "Rua E, 5", "Eva", "", "Sexta", "19:30"},
		},
	}
}

func testGeocoder() *fakeGeocoder {
	return &fakeGeocoder{known: map[string]model.ResolvedLocation{
		"Rua A, 1, Brasil": {Latitude: -23.55, Longitude: -46.63},
		"Rua E, 5, Brasil": {Latitude: -23.60, Longitude: -46.70},
	}}
}

func TestLoaderLoad(t *testing.T) {
	for _, workers := range []int{1, 4} {
		g := testGeocoder()
		l := &Loader{Geocoder: g, Country: "Brasil", Timeout: time.Second, Workers: workers}

		snap := l.Load(context.Background(), testTable())
		if snap.Err != nil {
			t.Fatalf("workers=%d: Err = %v", workers, snap.Err)
		}

		want := model.LoadStats{Rows: 5, MissingName: 1, MissingAddress: 1, GeocodeFailed: 1, Usable: 2}
		if snap.Stats != want {
			t.Errorf("workers=%d: Stats = %+v, want %+v", workers, snap.Stats, want)
		}
		if len(snap.Meetings) != 2 || snap.Meetings[0].Name != "Alfa" || snap.Meetings[1].Name != "Épsilon" {
			t.Fatalf("workers=%d: meetings out of source order: %+v", workers, snap.Meetings)
		}

		alfa := snap.Meetings[0]
		if alfa.Row != 1 || alfa.LeaderNames != "Ana" || alfa.AudienceType != "Jovens" || alfa.StartTime != "20:00" {
			t.Errorf("workers=%d: unexpected record %+v", workers, alfa)
		}
		if alfa.Modality != model.DefaultModality {
			t.Errorf("workers=%d: Modality = %q, want default", workers, alfa.Modality)
		}
		if alfa.Coordinates == nil || alfa.Coordinates.Latitude != -23.55 {
			t.Errorf("workers=%d: Coordinates = %+v", workers, alfa.Coordinates)
		}
		if snap.Meetings[1].Row != 5 {
			t.Errorf("workers=%d: Row = %d, want 5", workers, snap.Meetings[1].Row)
		}

		// one attempt per geocodable row
		if len(g.queries) != 3 {
			t.Errorf("workers=%d: %d geocode calls, want 3: %v", workers, len(g.queries), g.queries)
		}
	}
}

func TestLoaderTimeoutDropsRow(t *testing.T) {
	g := testGeocoder()
	g.delay = 50 * time.Millisecond
	l := &Loader{Geocoder: g, Country: "Brasil", Timeout: 5 * time.Millisecond}

	snap := l.Load(context.Background(), testTable())
	if !errors.Is(snap.Err, ErrDataUnavailable) {
		t.Fatalf("Err = %v, want ErrDataUnavailable", snap.Err)
	}
	if snap.Stats.GeocodeFailed != 3 {
		t.Errorf("GeocodeFailed = %d, want 3", snap.Stats.GeocodeFailed)
	}
}

func TestLoaderMissingColumns(t *testing.T) {
	l := &Loader{Geocoder: testGeocoder(), Country: "Brasil"}
	snap := l.Load(context.Background(), source.Table{Header: []string{"Foo"}, Rows: [][]string{{"bar"}}})
	if !errors.Is(snap.Err, ErrDataUnavailable) {
		t.Fatalf("Err = %v, want ErrDataUnavailable", snap.Err)
	}
	if snap.Available() {
		t.Error("snapshot should not be available")
	}
}

func TestNormalizeModality(t *testing.T) {
	schema := model.ResolveSchema([]string{"Name", "Address", "Modalidade"})
	tests := []struct {
		row  []string
		want string
	}{
		{[]string{"A", "B", "Online"}, "Online"},
		{[]string{"A", "B", ""}, model.DefaultModality},
		{[]string{"A", "B"}, model.DefaultModality},
	}
	for _, tt := range tests {
		if got := Normalize(schema, tt.row).Modality; got != tt.want {
			t.Errorf("Normalize(%v).Modality = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestCacheTTL(t *testing.T) {
	src := &fakeSource{tbl: testTable()}
	c := NewCache(src, &Loader{Geocoder: testGeocoder(), Country: "Brasil"}, time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	first := c.Get(context.Background())
	second := c.Get(context.Background())
	if src.calls.Load() != 1 {
		t.Fatalf("Fetch called %d times within TTL, want 1", src.calls.Load())
	}
	if first.ID != second.ID {
		t.Error("snapshot replaced within TTL")
	}

	now = now.Add(2 * time.Minute)
	third := c.Get(context.Background())
	if src.calls.Load() != 2 {
		t.Fatalf("Fetch called %d times after expiry, want 2", src.calls.Load())
	}
	if third.ID == first.ID {
		t.Error("expired snapshot was not rebuilt")
	}

	c.Invalidate()
	c.Get(context.Background())
	if src.calls.Load() != 3 {
		t.Errorf("Fetch called %d times after Invalidate, want 3", src.calls.Load())
	}
}

func TestCacheCachesFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("sheet down")}
	c := NewCache(src, &Loader{Geocoder: testGeocoder(), Country: "Brasil"}, time.Minute)

	snap := c.Get(context.Background())
	if !errors.Is(snap.Err, ErrDataUnavailable) {
		t.Fatalf("Err = %v, want ErrDataUnavailable", snap.Err)
	}
	c.Get(context.Background())
	if src.calls.Load() != 1 {
		t.Errorf("failed load not cached: %d fetches", src.calls.Load())
	}

	src.err = nil
	src.tbl = testTable()
	if snap := c.Refresh(context.Background()); !snap.Available() {
		t.Errorf("Refresh() did not recover: %v", snap.Err)
	}
}

func TestCacheCoalescesRebuilds(t *testing.T) {
	src := &fakeSource{tbl: testTable(), wait: make(chan struct{})}
	c := NewCache(src, &Loader{Geocoder: testGeocoder(), Country: "Brasil"}, time.Minute)

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = c.Get(context.Background()).ID.String()
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(src.wait)
	wg.Wait()

	if n := src.calls.Load(); n != 1 {
		t.Errorf("Fetch called %d times, want 1", n)
	}
	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatal("callers received different snapshots")
		}
	}
}
