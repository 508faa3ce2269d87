package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/planport/daextract"
)

func TestNullableTime(t *testing.T) {
	if got := nullableTime(time.Time{}); got.Valid {
		t.Error("nullableTime(zero).Valid = true, want false")
	}

	stamp := time.Date(2019, time.May, 1, 0, 0, 0, 0, time.UTC)
	got := nullableTime(stamp)
	if !got.Valid || !got.Time.Equal(stamp) {
		t.Errorf("nullableTime(%v) = %+v", stamp, got)
	}
}

// TestRoundTrip exercises the schema and upsert against a real database.
// Set TEST_DATABASE_URL to run it.
func TestRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	rec := daextract.Record{
		CouncilReference: "test-123/2019",
		Address:          "1 MAIN STREET, MENINGIE SA 5264",
		Description:      "Garage",
		InfoURL:          "http://example.com/register.pdf",
		CommentURL:       "mailto:council@example.com",
		DateScraped:      time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	rec.Description = "Garage and carport"
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() update failed: %v", err)
	}

	got, err := s.Get(ctx, rec.CouncilReference)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Description != "Garage and carport" {
		t.Errorf("Description = %q after update", got.Description)
	}
	if !got.DateReceived.IsZero() {
		t.Errorf("DateReceived = %v, want zero from NULL", got.DateReceived)
	}

	if _, err := s.Get(ctx, "no-such-reference"); err != ErrNotFound {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}
